package handlers

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"creatorlens/internal/config"
	"creatorlens/internal/core"
	"creatorlens/internal/logger"
	"creatorlens/internal/youtube"
)

// NewSnapshotCmd creates the snapshot command for the view-count collector
func NewSnapshotCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "snapshot",
		Short: "Capture view-count snapshots for tracked videos",
		Long: `Capture a view-count snapshot for every tracked video.

Velocity metrics compare the current view count against snapshots roughly
24 hours and 7 days old, so this command is meant to run on a schedule
(e.g. hourly via cron). Videos without snapshot history report their
velocity as "building" until enough history accumulates.

Example:
  creatorlens snapshot`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSnapshot(cmd.Context(), limit)
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 0, "maximum videos to snapshot (0 = all tracked)")

	return cmd
}

func runSnapshot(ctx context.Context, limit int) error {
	log := logger.Get()

	cfg, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	db, err := connectDB()
	if err != nil {
		return err
	}
	defer db.Close()

	fetcher, err := youtube.NewClient(ctx, cfg.YouTube.APIKey)
	if err != nil {
		return fmt.Errorf("failed to create YouTube client: %w", err)
	}

	ids, err := db.Snapshots().TrackedVideoIDs(ctx)
	if err != nil {
		return fmt.Errorf("failed to list tracked videos: %w", err)
	}
	if limit > 0 && len(ids) > limit {
		ids = ids[:limit]
	}

	log.Info("Capturing snapshots", "videos", len(ids))

	now := time.Now().UTC()
	captured, failed := 0, 0
	for _, id := range ids {
		video, err := fetcher.VideoDetail(ctx, id)
		if err != nil {
			// A deleted or private video is expected over time; keep going.
			log.Warn("Snapshot fetch failed", "videoId", id, "error", err)
			failed++
			continue
		}

		snap := &core.VideoSnapshot{
			VideoID:    id,
			CapturedAt: now,
			ViewCount:  video.ViewCount,
		}
		if err := db.Snapshots().Insert(ctx, snap); err != nil {
			log.Warn("Snapshot write failed", "videoId", id, "error", err)
			failed++
			continue
		}
		captured++
	}

	log.Info("Snapshot run complete", "captured", captured, "failed", failed)
	fmt.Printf("Captured %d snapshots (%d failed) across %d tracked videos\n", captured, failed, len(ids))
	return nil
}
