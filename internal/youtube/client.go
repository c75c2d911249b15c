// Package youtube wraps the YouTube Data API v3 calls the analysis pipeline
// depends on: video detail, comment threads, and a channel's recent uploads.
package youtube

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"

	"creatorlens/internal/core"
)

// ErrVideoNotFound is returned when the platform has no video for the id.
var ErrVideoNotFound = fmt.Errorf("video not found")

// Fetcher is the contract the composer uses; tests substitute a fake.
// Comments reports disabled=true when the video has comments turned off.
type Fetcher interface {
	VideoDetail(ctx context.Context, videoID string) (*core.Video, error)
	Comments(ctx context.Context, videoID string, max int64) (comments []core.Comment, disabled bool, err error)
	RecentChannelVideos(ctx context.Context, channelID string, max int64) ([]core.Video, error)
}

// Client is the API-key backed Data API implementation of Fetcher.
type Client struct {
	service *youtube.Service
}

// NewClient creates a YouTube Data API client using an API key. Read-only
// public data needs no OAuth flow.
func NewClient(ctx context.Context, apiKey string) (*Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("youtube API key is required: set YOUTUBE_API_KEY or youtube.api_key in the config file")
	}

	service, err := youtube.NewService(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create YouTube service: %w", err)
	}

	return &Client{service: service}, nil
}

// VideoDetail fetches current metadata and statistics for one video.
func (c *Client) VideoDetail(ctx context.Context, videoID string) (*core.Video, error) {
	call := c.service.Videos.List([]string{"snippet", "contentDetails", "statistics"}).
		Id(videoID).
		Context(ctx)

	resp, err := call.Do()
	if err != nil {
		return nil, fmt.Errorf("failed to fetch video %s: %w", videoID, err)
	}
	if len(resp.Items) == 0 {
		return nil, ErrVideoNotFound
	}

	item := resp.Items[0]
	video := &core.Video{
		ID:           item.Id,
		Title:        item.Snippet.Title,
		Description:  item.Snippet.Description,
		Tags:         item.Snippet.Tags,
		DurationSec:  ParseDurationSeconds(item.ContentDetails.Duration),
		CategoryID:   item.Snippet.CategoryId,
		ChannelID:    item.Snippet.ChannelId,
		ChannelTitle: item.Snippet.ChannelTitle,
	}
	if video.Tags == nil {
		video.Tags = []string{}
	}

	if item.Snippet.Thumbnails != nil && item.Snippet.Thumbnails.High != nil {
		video.ThumbnailURL = item.Snippet.Thumbnails.High.Url
	}
	if publishedAt, err := time.Parse(time.RFC3339, item.Snippet.PublishedAt); err == nil {
		video.PublishedAt = publishedAt
	}
	if item.Statistics != nil {
		video.ViewCount = int64(item.Statistics.ViewCount)
		video.LikeCount = int64(item.Statistics.LikeCount)
		video.CommentCount = int64(item.Statistics.CommentCount)
	}

	return video, nil
}

// Comments fetches up to max top-level comments ordered by relevance. A 403
// from the API means the creator disabled comments; that is reported as
// disabled rather than an error so the pipeline can degrade.
func (c *Client) Comments(ctx context.Context, videoID string, max int64) ([]core.Comment, bool, error) {
	call := c.service.CommentThreads.List([]string{"snippet"}).
		VideoId(videoID).
		Order("relevance").
		MaxResults(max).
		TextFormat("plainText").
		Context(ctx)

	resp, err := call.Do()
	if err != nil {
		if apiErr, ok := err.(*googleapi.Error); ok && apiErr.Code == 403 {
			return nil, true, nil
		}
		return nil, false, fmt.Errorf("failed to fetch comments for %s: %w", videoID, err)
	}

	comments := make([]core.Comment, 0, len(resp.Items))
	for _, item := range resp.Items {
		if item.Snippet == nil || item.Snippet.TopLevelComment == nil || item.Snippet.TopLevelComment.Snippet == nil {
			continue
		}
		s := item.Snippet.TopLevelComment.Snippet
		comment := core.Comment{
			Author:    s.AuthorDisplayName,
			Text:      s.TextDisplay,
			LikeCount: s.LikeCount,
		}
		if publishedAt, err := time.Parse(time.RFC3339, s.PublishedAt); err == nil {
			comment.PublishedAt = publishedAt
		}
		comments = append(comments, comment)
	}

	return comments, false, nil
}

// RecentChannelVideos fetches the channel's latest uploads via its uploads
// playlist, then resolves full statistics in one batched Videos.List call.
func (c *Client) RecentChannelVideos(ctx context.Context, channelID string, max int64) ([]core.Video, error) {
	channelsResp, err := c.service.Channels.List([]string{"contentDetails"}).
		Id(channelID).
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("failed to fetch channel %s: %w", channelID, err)
	}
	if len(channelsResp.Items) == 0 || channelsResp.Items[0].ContentDetails == nil {
		return nil, fmt.Errorf("channel %s has no uploads playlist", channelID)
	}

	playlistID := channelsResp.Items[0].ContentDetails.RelatedPlaylists.Uploads
	playlistResp, err := c.service.PlaylistItems.List([]string{"snippet"}).
		PlaylistId(playlistID).
		MaxResults(max).
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("failed to fetch uploads for channel %s: %w", channelID, err)
	}

	var ids []string
	for _, item := range playlistResp.Items {
		if item.Snippet != nil && item.Snippet.ResourceId != nil {
			ids = append(ids, item.Snippet.ResourceId.VideoId)
		}
	}
	if len(ids) == 0 {
		return []core.Video{}, nil
	}

	videosResp, err := c.service.Videos.List([]string{"snippet", "contentDetails", "statistics"}).
		Id(strings.Join(ids, ",")).
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("failed to fetch video details: %w", err)
	}

	videos := make([]core.Video, 0, len(videosResp.Items))
	for _, item := range videosResp.Items {
		video := core.Video{
			ID:           item.Id,
			Title:        item.Snippet.Title,
			ChannelID:    item.Snippet.ChannelId,
			ChannelTitle: item.Snippet.ChannelTitle,
			DurationSec:  ParseDurationSeconds(item.ContentDetails.Duration),
		}
		if item.Snippet.Thumbnails != nil && item.Snippet.Thumbnails.High != nil {
			video.ThumbnailURL = item.Snippet.Thumbnails.High.Url
		}
		if publishedAt, err := time.Parse(time.RFC3339, item.Snippet.PublishedAt); err == nil {
			video.PublishedAt = publishedAt
		}
		if item.Statistics != nil {
			video.ViewCount = int64(item.Statistics.ViewCount)
			video.LikeCount = int64(item.Statistics.LikeCount)
			video.CommentCount = int64(item.Statistics.CommentCount)
		}
		videos = append(videos, video)
	}

	return videos, nil
}

var durationPattern = regexp.MustCompile(`PT(?:(\d+)H)?(?:(\d+)M)?(?:(\d+)S)?`)

// ParseDurationSeconds converts an ISO 8601 duration like "PT2H15M30S" to
// seconds. Unparseable input yields 0.
func ParseDurationSeconds(duration string) int {
	if duration == "" {
		return 0
	}

	matches := durationPattern.FindStringSubmatch(duration)
	if len(matches) == 0 {
		return 0
	}

	var total int
	if matches[1] != "" {
		if hours, err := strconv.Atoi(matches[1]); err == nil {
			total += hours * 3600
		}
	}
	if matches[2] != "" {
		if minutes, err := strconv.Atoi(matches[2]); err == nil {
			total += minutes * 60
		}
	}
	if matches[3] != "" {
		if seconds, err := strconv.Atoi(matches[3]); err == nil {
			total += seconds
		}
	}
	return total
}

// ValidVideoID reports whether s looks like a YouTube video id.
var videoIDPattern = regexp.MustCompile(`^[a-zA-Z0-9_-]{11}$`)

func ValidVideoID(s string) bool {
	return videoIDPattern.MatchString(s)
}
