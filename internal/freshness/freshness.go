// Package freshness decides whether a cached derived-analysis result is still
// usable. The decision combines a TTL window with a content-fingerprint match
// and is returned as an explicit state rather than nested booleans so every
// transition is auditable in isolation from any I/O.
package freshness

import "time"

// State is the evaluated condition of one cache slot.
type State int

const (
	// StateEmpty means nothing was ever cached.
	StateEmpty State = iota
	// StateFresh means the entry is inside its window and its stored
	// fingerprint matches the current content.
	StateFresh
	// StateLegacyFresh means the entry is inside its window but predates
	// fingerprinting (no stored hash). Such entries are trusted for
	// backward compatibility. If the content changed during the hash-less
	// era this can serve stale analysis for the remainder of the window;
	// that behavior is preserved deliberately pending product confirmation.
	StateLegacyFresh
	// StateExpired means the entry aged out of its window, regardless of hash.
	StateExpired
	// StateContentChanged means the entry is inside its window but the
	// stored fingerprint no longer matches the current content.
	StateContentChanged
)

func (s State) String() string {
	switch s {
	case StateEmpty:
		return "empty"
	case StateFresh:
		return "fresh"
	case StateLegacyFresh:
		return "legacy_fresh"
	case StateExpired:
		return "expired"
	case StateContentChanged:
		return "content_changed"
	default:
		return "unknown"
	}
}

// Usable reports whether a cached result in this state may be served.
func (s State) Usable() bool {
	return s == StateFresh || s == StateLegacyFresh
}

// Evaluate classifies one cache slot. cachedAt is the time the slot was
// written (zero value means no entry), ttl is the freshness window,
// storedHash is the fingerprint recorded at write time (nil for rows written
// before fingerprinting existed), currentHash is the fingerprint of the
// content as it is now. The window check wins over the hash check: an expired
// entry is expired even if content never changed.
func Evaluate(now, cachedAt time.Time, ttl time.Duration, storedHash *string, currentHash string) State {
	if cachedAt.IsZero() {
		return StateEmpty
	}
	if now.Sub(cachedAt) >= ttl {
		return StateExpired
	}
	if storedHash == nil {
		return StateLegacyFresh
	}
	if *storedHash != currentHash {
		return StateContentChanged
	}
	return StateFresh
}
