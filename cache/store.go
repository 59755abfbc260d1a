package cache

import (
	"context"
	"errors"
	"time"
)

// KeyLength is the exact length of a cache key (hex SHA-256).
const KeyLength = 64

// Sentinel errors for cache operations.
var (
	ErrNilStore     = errors.New("cache: store is nil")
	ErrInvalidKey   = errors.New("cache: key is invalid")
	ErrStoreFailed  = errors.New("cache: artifact store failure")
	ErrNilComputeFn = errors.New("cache: compute function is nil")
)

// Entry is one stored artifact pair.
type Entry struct {
	// Key is the cache key the pair is stored under.
	Key string

	// JSON is the serialized chart result.
	JSON []byte

	// Image is the rendered chart image.
	Image []byte

	// CreatedAt is when the pair was committed.
	CreatedAt time.Time
}

// Store persists artifact pairs.
//
// Contract:
// - Concurrency: implementations must be safe for concurrent use.
// - Atomicity: a reader must never observe one artifact of a pair without
//   the other; a half-written pair is a miss, not an error.
// - Errors: Lookup never errors; it reports (nil, false) on miss.
type Store interface {
	// Lookup returns the pair for a key. A hit requires both artifacts.
	Lookup(ctx context.Context, key string) (*Entry, bool)

	// Put commits both artifacts so that the pair becomes visible at once.
	Put(ctx context.Context, key string, jsonBytes, imageBytes []byte) error

	// Delete removes a pair. Idempotent, no error on miss.
	Delete(ctx context.Context, key string) error

	// Sweep removes every pair older than ttl, returning how many were
	// deleted. Sweeping must not block lookups or puts of unrelated keys.
	Sweep(ctx context.Context, ttl time.Duration) (int, error)
}

// ValidateKey checks that a key is a well-formed hex digest. Keys appear in
// URLs and filenames, so anything else is rejected outright.
func ValidateKey(key string) error {
	if len(key) != KeyLength {
		return ErrInvalidKey
	}
	for _, c := range key {
		if (c < '0' || c > '9') && (c < 'a' || c > 'f') {
			return ErrInvalidKey
		}
	}
	return nil
}
