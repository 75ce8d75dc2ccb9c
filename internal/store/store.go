// Package store keeps per-session and per-tenant state: sessions, login
// challenges, seen reply IDs and UI preferences.
package store

import (
	"context"
	"errors"
	"time"
)

// ErrClosed is returned by a store used after Close
var ErrClosed = errors.New("store: closed")

// Store is a string key/value store with optional expiry. A ttl of zero
// keeps the value until it is cleared.
type Store interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Clear(ctx context.Context, key string) error
	Close() error
}

// Sweeper is implemented by stores that do not expire keys on their own
type Sweeper interface {
	DeleteExpired(ctx context.Context) (int64, error)
}

// Key helpers keep the key layout in one place.

// SessionKey is where a session lives
func SessionKey(sid string) string { return "session:" + sid }

// ChallengeKey is where the answer of a login challenge lives
func ChallengeKey(id string) string { return "challenge:" + id }

// PreferenceKey is where one preference of one tenant lives
func PreferenceKey(owner, name string) string { return "pref:" + owner + ":" + name }

// SeenRepliesKey is where the reply IDs last shown to a session live
func SeenRepliesKey(sid string) string { return "contact_seen:" + sid }
