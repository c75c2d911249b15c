// Package fingerprint computes stable digests of the semantically meaningful
// fields of a video and of its comment set. Fingerprints detect content drift
// independent of wall-clock cache age: a cached analysis is only trusted when
// the stored fingerprint still matches the current one.
package fingerprint

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"

	"creatorlens/internal/core"
)

// Record separators for the canonical form. Unit separator between fields,
// record separator between list entries, so no tag or comment content can
// collide with a field boundary.
const (
	fieldSep  = "\x1f"
	recordSep = "\x1e"
)

// Video returns the fingerprint of a video's content identity: title,
// description, tags, duration and category. Volatile counters (views, likes,
// comments) are deliberately excluded so the hash only changes when the
// creator edits the video.
func Video(v core.Video) string {
	parts := []string{
		"title" + fieldSep + v.Title,
		"description" + fieldSep + v.Description,
		"tags" + fieldSep + strings.Join(v.Tags, recordSep),
		"duration" + fieldSep + fmt.Sprintf("%d", v.DurationSec),
		"category" + fieldSep + v.CategoryID,
	}
	return digest(strings.Join(parts, recordSep))
}

// Comments returns the fingerprint of a fetched comment set. Author and text
// identify a comment; like counts and timestamps are volatile and excluded.
func Comments(comments []core.Comment) string {
	parts := make([]string, 0, len(comments))
	for _, c := range comments {
		parts = append(parts, c.Author+fieldSep+c.Text)
	}
	return digest(strings.Join(parts, recordSep))
}

func digest(canonical string) string {
	sum := sha256.Sum256([]byte(canonical))
	return hex.EncodeToString(sum[:])
}
