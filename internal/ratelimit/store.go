package ratelimit

import (
	"context"
	"time"
)

// WindowStore defines the ordered-list storage backing a sliding window.
// Each key holds the epoch-millisecond timestamps of admitted requests,
// appended at the end in non-decreasing order.
type WindowStore interface {
	// Entries returns the full ordered timestamp list stored under key.
	Entries(ctx context.Context, key string) ([]int64, error)

	// Trim retains only the entries in the inclusive index range [start, stop].
	// Negative indexes count from the end, -1 being the last entry.
	Trim(ctx context.Context, key string, start, stop int64) error

	// Append pushes a timestamp to the end of the list, creating the key if needed.
	Append(ctx context.Context, key string, ts int64) error

	// Expire sets or refreshes the key's time-to-live so abandoned
	// identifiers are eventually reclaimed.
	Expire(ctx context.Context, key string, ttl time.Duration) error

	// Keys returns all keys matching the glob pattern. Used by Cleanup only.
	Keys(ctx context.Context, pattern string) ([]string, error)

	// Delete removes the given keys in one batch. Used by Cleanup only.
	Delete(ctx context.Context, keys ...string) error
}
