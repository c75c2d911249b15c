package persistence

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/lib/pq"

	"creatorlens/internal/core"
)

// postgresVideoRepo implements VideoRepository for PostgreSQL
type postgresVideoRepo struct {
	db *sql.DB
}

func (r *postgresVideoRepo) Get(ctx context.Context, videoID string) (*core.CompetitorVideoRecord, error) {
	query := `
		SELECT video_id, title, description, tags, duration_sec, category_id,
		       channel_id, channel_title, thumbnail_url, published_at,
		       analysis_json, analysis_content_hash, analysis_captured_at, updated_at
		FROM competitor_videos WHERE video_id = $1
	`
	row := r.db.QueryRowContext(ctx, query, videoID)

	var rec core.CompetitorVideoRecord
	var analysisJSON []byte
	err := row.Scan(
		&rec.VideoID, &rec.Title, &rec.Description, pq.Array(&rec.Tags),
		&rec.DurationSec, &rec.CategoryID, &rec.ChannelID, &rec.ChannelTitle,
		&rec.ThumbnailURL, &rec.PublishedAt,
		&analysisJSON, &rec.AnalysisContentHash, &rec.AnalysisCapturedAt, &rec.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get video %s: %w", videoID, err)
	}
	rec.AnalysisJSON = json.RawMessage(analysisJSON)
	return &rec, nil
}

func (r *postgresVideoRepo) UpsertMetadata(ctx context.Context, rec *core.CompetitorVideoRecord) error {
	query := `
		INSERT INTO competitor_videos (
			video_id, title, description, tags, duration_sec, category_id,
			channel_id, channel_title, thumbnail_url, published_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NOW())
		ON CONFLICT (video_id) DO UPDATE SET
			title = EXCLUDED.title,
			description = EXCLUDED.description,
			tags = EXCLUDED.tags,
			duration_sec = EXCLUDED.duration_sec,
			category_id = EXCLUDED.category_id,
			channel_id = EXCLUDED.channel_id,
			channel_title = EXCLUDED.channel_title,
			thumbnail_url = EXCLUDED.thumbnail_url,
			published_at = EXCLUDED.published_at,
			updated_at = NOW()
	`
	_, err := r.db.ExecContext(ctx, query,
		rec.VideoID, rec.Title, rec.Description, pq.Array(rec.Tags),
		rec.DurationSec, rec.CategoryID, rec.ChannelID, rec.ChannelTitle,
		rec.ThumbnailURL, rec.PublishedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert video %s: %w", rec.VideoID, err)
	}
	return nil
}

func (r *postgresVideoRepo) UpsertAnalysis(ctx context.Context, videoID string, analysisJSON []byte, contentHash string, capturedAt time.Time) error {
	query := `
		UPDATE competitor_videos SET
			analysis_json = $2,
			analysis_content_hash = $3,
			analysis_captured_at = $4,
			updated_at = NOW()
		WHERE video_id = $1
	`
	result, err := r.db.ExecContext(ctx, query, videoID, analysisJSON, contentHash, capturedAt)
	if err != nil {
		return fmt.Errorf("failed to upsert analysis for %s: %w", videoID, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return fmt.Errorf("failed to upsert analysis for %s: %w", videoID, ErrNotFound)
	}
	return nil
}

func (r *postgresVideoRepo) UpdateAnalysisPayload(ctx context.Context, videoID string, analysisJSON []byte) error {
	query := `
		UPDATE competitor_videos SET analysis_json = $2, updated_at = NOW()
		WHERE video_id = $1
	`
	_, err := r.db.ExecContext(ctx, query, videoID, analysisJSON)
	if err != nil {
		return fmt.Errorf("failed to update analysis payload for %s: %w", videoID, err)
	}
	return nil
}

func (r *postgresVideoRepo) List(ctx context.Context, limit int) ([]core.CompetitorVideoRecord, error) {
	query := `
		SELECT video_id, title, description, tags, duration_sec, category_id,
		       channel_id, channel_title, thumbnail_url, published_at,
		       analysis_json, analysis_content_hash, analysis_captured_at, updated_at
		FROM competitor_videos
		WHERE analysis_captured_at IS NOT NULL
		ORDER BY analysis_captured_at DESC
		LIMIT $1
	`
	if limit == 0 {
		limit = 50
	}
	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []core.CompetitorVideoRecord
	for rows.Next() {
		var rec core.CompetitorVideoRecord
		var analysisJSON []byte
		err := rows.Scan(
			&rec.VideoID, &rec.Title, &rec.Description, pq.Array(&rec.Tags),
			&rec.DurationSec, &rec.CategoryID, &rec.ChannelID, &rec.ChannelTitle,
			&rec.ThumbnailURL, &rec.PublishedAt,
			&analysisJSON, &rec.AnalysisContentHash, &rec.AnalysisCapturedAt, &rec.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		rec.AnalysisJSON = json.RawMessage(analysisJSON)
		records = append(records, rec)
	}
	return records, rows.Err()
}

// postgresCommentAnalysisRepo implements CommentAnalysisRepository for PostgreSQL
type postgresCommentAnalysisRepo struct {
	db *sql.DB
}

func (r *postgresCommentAnalysisRepo) Get(ctx context.Context, videoID string) (*core.CommentAnalysisRecord, error) {
	query := `
		SELECT video_id, analysis_json, content_hash, captured_at,
		       sentiment_positive, sentiment_neutral, sentiment_negative, themes_json
		FROM video_comment_analyses WHERE video_id = $1
	`
	row := r.db.QueryRowContext(ctx, query, videoID)

	var rec core.CommentAnalysisRecord
	var analysisJSON, themesJSON []byte
	err := row.Scan(
		&rec.VideoID, &analysisJSON, &rec.ContentHash, &rec.CapturedAt,
		&rec.SentimentPositive, &rec.SentimentNeutral, &rec.SentimentNegative, &themesJSON,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get comment analysis for %s: %w", videoID, err)
	}
	rec.AnalysisJSON = json.RawMessage(analysisJSON)
	rec.ThemesJSON = json.RawMessage(themesJSON)
	return &rec, nil
}

func (r *postgresCommentAnalysisRepo) Upsert(ctx context.Context, rec *core.CommentAnalysisRecord) error {
	query := `
		INSERT INTO video_comment_analyses (
			video_id, analysis_json, content_hash, captured_at,
			sentiment_positive, sentiment_neutral, sentiment_negative, themes_json
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (video_id) DO UPDATE SET
			analysis_json = EXCLUDED.analysis_json,
			content_hash = EXCLUDED.content_hash,
			captured_at = EXCLUDED.captured_at,
			sentiment_positive = EXCLUDED.sentiment_positive,
			sentiment_neutral = EXCLUDED.sentiment_neutral,
			sentiment_negative = EXCLUDED.sentiment_negative,
			themes_json = EXCLUDED.themes_json
	`
	_, err := r.db.ExecContext(ctx, query,
		rec.VideoID, []byte(rec.AnalysisJSON), rec.ContentHash, rec.CapturedAt,
		rec.SentimentPositive, rec.SentimentNeutral, rec.SentimentNegative, []byte(rec.ThemesJSON),
	)
	if err != nil {
		return fmt.Errorf("failed to upsert comment analysis for %s: %w", rec.VideoID, err)
	}
	return nil
}

// postgresSnapshotRepo implements SnapshotRepository for PostgreSQL
type postgresSnapshotRepo struct {
	db *sql.DB
}

func (r *postgresSnapshotRepo) Insert(ctx context.Context, snap *core.VideoSnapshot) error {
	query := `
		INSERT INTO video_snapshots (video_id, captured_at, view_count)
		VALUES ($1, $2, $3)
	`
	_, err := r.db.ExecContext(ctx, query, snap.VideoID, snap.CapturedAt, snap.ViewCount)
	if err != nil {
		return fmt.Errorf("failed to insert snapshot for %s: %w", snap.VideoID, err)
	}
	return nil
}

func (r *postgresSnapshotRepo) ListRecent(ctx context.Context, videoID string, limit int) ([]core.VideoSnapshot, error) {
	query := `
		SELECT video_id, captured_at, view_count
		FROM video_snapshots
		WHERE video_id = $1
		ORDER BY captured_at DESC
		LIMIT $2
	`
	rows, err := r.db.QueryContext(ctx, query, videoID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var snapshots []core.VideoSnapshot
	for rows.Next() {
		var snap core.VideoSnapshot
		if err := rows.Scan(&snap.VideoID, &snap.CapturedAt, &snap.ViewCount); err != nil {
			return nil, err
		}
		snapshots = append(snapshots, snap)
	}
	return snapshots, rows.Err()
}

func (r *postgresSnapshotRepo) TrackedVideoIDs(ctx context.Context) ([]string, error) {
	query := `
		SELECT video_id FROM competitor_videos
		WHERE analysis_captured_at IS NOT NULL
		ORDER BY analysis_captured_at DESC
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// postgresUserRepo implements UserRepository for PostgreSQL
type postgresUserRepo struct {
	db *sql.DB
}

func (r *postgresUserRepo) Create(ctx context.Context, user *core.User) error {
	query := `INSERT INTO users (id, api_token, plan) VALUES ($1, $2, $3)`
	_, err := r.db.ExecContext(ctx, query, user.ID, user.APIToken, user.Plan)
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

func (r *postgresUserRepo) GetByToken(ctx context.Context, token string) (*core.User, error) {
	query := `SELECT id, api_token, plan FROM users WHERE api_token = $1`
	row := r.db.QueryRowContext(ctx, query, token)

	var user core.User
	if err := row.Scan(&user.ID, &user.APIToken, &user.Plan); err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	return &user, nil
}

// postgresChannelRepo implements ChannelRepository for PostgreSQL
type postgresChannelRepo struct {
	db *sql.DB
}

func (r *postgresChannelRepo) Create(ctx context.Context, channel *core.Channel) error {
	query := `
		INSERT INTO channels (id, user_id, youtube_channel_id, title)
		VALUES ($1, $2, $3, $4)
	`
	_, err := r.db.ExecContext(ctx, query, channel.ID, channel.UserID, channel.YouTubeChannelID, channel.Title)
	if err != nil {
		return fmt.Errorf("failed to create channel: %w", err)
	}
	return nil
}

func (r *postgresChannelRepo) GetForUser(ctx context.Context, userID, youtubeChannelID string) (*core.Channel, error) {
	query := `
		SELECT id, user_id, youtube_channel_id, title
		FROM channels WHERE user_id = $1 AND youtube_channel_id = $2
	`
	row := r.db.QueryRowContext(ctx, query, userID, youtubeChannelID)

	var channel core.Channel
	err := row.Scan(&channel.ID, &channel.UserID, &channel.YouTubeChannelID, &channel.Title)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get channel %s: %w", youtubeChannelID, err)
	}
	return &channel, nil
}

func (r *postgresChannelRepo) CountForUser(ctx context.Context, userID string) (int, error) {
	query := `SELECT COUNT(*) FROM channels WHERE user_id = $1`

	var count int
	if err := r.db.QueryRowContext(ctx, query, userID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count channels for user %s: %w", userID, err)
	}
	return count, nil
}

// postgresUsageRepo implements UsageRepository for PostgreSQL
type postgresUsageRepo struct {
	db *sql.DB
}

func (r *postgresUsageRepo) Record(ctx context.Context, userID, feature string, at time.Time) error {
	query := `
		INSERT INTO feature_usage (user_id, feature, used_at)
		VALUES ($1, $2, $3)
	`
	_, err := r.db.ExecContext(ctx, query, userID, feature, at)
	if err != nil {
		return fmt.Errorf("failed to record usage: %w", err)
	}
	return nil
}

func (r *postgresUsageRepo) CountSince(ctx context.Context, userID, feature string, since time.Time) (int, error) {
	query := `
		SELECT COUNT(*) FROM feature_usage
		WHERE user_id = $1 AND feature = $2 AND used_at >= $3
	`
	var count int
	err := r.db.QueryRowContext(ctx, query, userID, feature, since).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count usage: %w", err)
	}
	return count, nil
}
