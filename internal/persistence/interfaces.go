// Package persistence provides database abstraction interfaces for the
// analysis cache, snapshot history, and account data.
package persistence

import (
	"context"
	"errors"
	"time"

	"creatorlens/internal/core"
)

// ErrNotFound is returned by Get-style methods when no row matches.
var ErrNotFound = errors.New("not found")

// VideoRepository handles competitor video rows and their analysis cache slot.
type VideoRepository interface {
	// Get retrieves a video record by YouTube video id
	Get(ctx context.Context, videoID string) (*core.CompetitorVideoRecord, error)

	// UpsertMetadata inserts or refreshes the metadata columns of a video
	// record without touching the analysis cache slot
	UpsertMetadata(ctx context.Context, rec *core.CompetitorVideoRecord) error

	// UpsertAnalysis writes the analysis cache slot (payload, content hash,
	// captured-at) for a video, creating the row if needed
	UpsertAnalysis(ctx context.Context, videoID string, analysisJSON []byte, contentHash string, capturedAt time.Time) error

	// UpdateAnalysisPayload replaces just the cached payload, leaving the
	// content hash and captured-at untouched. Used when a checklist is
	// backfilled into an otherwise fresh cache entry
	UpdateAnalysisPayload(ctx context.Context, videoID string, analysisJSON []byte) error

	// List retrieves recently analyzed videos, newest analysis first
	List(ctx context.Context, limit int) ([]core.CompetitorVideoRecord, error)
}

// CommentAnalysisRepository handles the comments-analysis cache, one row per
// video, keyed and refreshed independently of the full analysis cache.
type CommentAnalysisRepository interface {
	// Get retrieves the cached comments analysis for a video
	Get(ctx context.Context, videoID string) (*core.CommentAnalysisRecord, error)

	// Upsert inserts or replaces the cached comments analysis for a video
	Upsert(ctx context.Context, rec *core.CommentAnalysisRecord) error
}

// SnapshotRepository handles immutable view-count snapshots.
type SnapshotRepository interface {
	// Insert records a new snapshot; snapshots are never updated or deleted
	Insert(ctx context.Context, snap *core.VideoSnapshot) error

	// ListRecent retrieves the most recent snapshots for a video, newest first
	ListRecent(ctx context.Context, videoID string, limit int) ([]core.VideoSnapshot, error)

	// TrackedVideoIDs retrieves the ids of videos with an analysis cache
	// entry, for the snapshot collector to iterate
	TrackedVideoIDs(ctx context.Context) ([]string, error)
}

// UserRepository handles account records.
type UserRepository interface {
	// Create inserts a new user
	Create(ctx context.Context, user *core.User) error

	// GetByToken retrieves a user by API token
	GetByToken(ctx context.Context, token string) (*core.User, error)
}

// ChannelRepository handles creator channel records.
type ChannelRepository interface {
	// Create links a channel to a user account
	Create(ctx context.Context, channel *core.Channel) error

	// GetForUser retrieves the channel owned by a user with the given
	// YouTube channel id
	GetForUser(ctx context.Context, userID, youtubeChannelID string) (*core.Channel, error)

	// CountForUser counts the channels linked to a user account
	CountForUser(ctx context.Context, userID string) (int, error)
}

// UsageRepository tracks per-user feature usage for entitlement checks.
type UsageRepository interface {
	// Record logs one use of a feature by a user
	Record(ctx context.Context, userID, feature string, at time.Time) error

	// CountSince counts a user's uses of a feature at or after the given time
	CountSince(ctx context.Context, userID, feature string, since time.Time) (int, error)
}

// Database aggregates all repositories behind one connection.
type Database interface {
	// Videos returns the competitor video repository
	Videos() VideoRepository

	// CommentAnalyses returns the comments-analysis repository
	CommentAnalyses() CommentAnalysisRepository

	// Snapshots returns the snapshot repository
	Snapshots() SnapshotRepository

	// Users returns the user repository
	Users() UserRepository

	// Channels returns the channel repository
	Channels() ChannelRepository

	// Usage returns the feature usage repository
	Usage() UsageRepository

	// Close closes the database connection
	Close() error

	// Ping verifies the database connection
	Ping(ctx context.Context) error
}
