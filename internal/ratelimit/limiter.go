package ratelimit

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// Config is the immutable configuration of one limiter instance.
type Config struct {
	// MaxRequests is the admission ceiling within one window.
	MaxRequests int
	// Window is the sliding window length.
	Window time.Duration
	// KeyPrefix namespaces this limiter's keys so instances
	// sharing one store don't collide.
	KeyPrefix string
}

// Result is the outcome of a single admission check.
type Result struct {
	// Allowed reports whether this request is admitted.
	Allowed bool
	// Remaining is the number of requests still permitted in the
	// current window after this decision.
	Remaining int
	// ResetAt is when the oldest counted request falls outside the
	// window, or now+Window as an upper bound when nothing is counted.
	ResetAt time.Time
}

// Limiter is the admission interface route middleware depends on.
type Limiter interface {
	Check(ctx context.Context, identifier string) Result
	Config() Config
}

// SlidingWindowLimiter admits requests under a fixed ceiling within a
// sliding time window, keyed by a caller-supplied identifier.
//
// The limiter is deliberately fail-open: when no store is available, or
// when any store operation errors, the request is admitted. Availability
// of the protected endpoint takes priority over strict enforcement; an
// attacker who can take the store down must not gain a denial-of-service
// vector against legitimate traffic.
//
// Two concurrent checks for the same identifier may both observe a count
// below the ceiling and both admit. That bounded overshoot is an accepted
// approximation of this design, traded for not locking across requests.
type SlidingWindowLimiter struct {
	cfg    Config
	store  WindowStore
	logger *zap.Logger
	now    func() time.Time
}

// NewSlidingWindowLimiter creates a limiter over the given window store.
// A nil store is valid and puts the instance in permanent fail-open mode;
// construction never fails.
func NewSlidingWindowLimiter(cfg Config, store WindowStore, logger *zap.Logger) *SlidingWindowLimiter {
	if store == nil {
		logger.Warn("rate limit store unavailable, limiter will fail open",
			zap.String("prefix", cfg.KeyPrefix),
		)
	}

	return &SlidingWindowLimiter{
		cfg:    cfg,
		store:  store,
		logger: logger,
		now:    time.Now,
	}
}

// Config returns the limiter's configuration.
func (l *SlidingWindowLimiter) Config() Config {
	return l.cfg
}

// Check decides whether one more request for identifier is admitted and,
// if so, records it. The identifier must be non-empty; it may name a
// client (per-IP budgets) or an action (one shared budget).
//
// Check never returns an error: store failures are logged and converted
// into an admit, per the fail-open contract.
func (l *SlidingWindowLimiter) Check(ctx context.Context, identifier string) Result {
	now := l.now()

	if l.store == nil {
		l.logger.Warn("rate limit check skipped, no store available",
			zap.String("identifier", identifier),
		)

		return l.failOpen(now)
	}

	key := l.cfg.KeyPrefix + identifier
	nowMs := now.UnixMilli()
	windowStart := nowMs - l.cfg.Window.Milliseconds()

	entries, err := l.store.Entries(ctx, key)
	if err != nil {
		return l.failOpenErr(now, identifier, "fetch window entries", err)
	}

	// Entries are in insertion order, so the live portion is a suffix.
	firstLive := len(entries)

	for i, ts := range entries {
		if ts >= windowStart {
			firstLive = i

			break
		}
	}

	// Trim stale entries. Maintenance only: the decision below is made
	// from the live count either way, trimming just bounds list growth.
	if firstLive > 0 {
		if err := l.store.Trim(ctx, key, int64(firstLive), -1); err != nil {
			return l.failOpenErr(now, identifier, "trim stale entries", err)
		}
	}

	live := entries[firstLive:]

	if len(live) >= l.cfg.MaxRequests {
		// Rejected requests leave no trace in the window.
		return Result{
			Allowed:   false,
			Remaining: 0,
			ResetAt:   time.UnixMilli(live[0] + l.cfg.Window.Milliseconds()),
		}
	}

	if err := l.store.Append(ctx, key, nowMs); err != nil {
		return l.failOpenErr(now, identifier, "append entry", err)
	}

	if err := l.store.Expire(ctx, key, l.cfg.Window); err != nil {
		return l.failOpenErr(now, identifier, "refresh expiry", err)
	}

	return Result{
		Allowed:   true,
		Remaining: l.cfg.MaxRequests - len(live) - 1,
		ResetAt:   now.Add(l.cfg.Window),
	}
}

// Cleanup removes every key under this limiter's prefix. It is
// best-effort administrative/test support: errors are logged, never
// returned, and a store-less limiter has nothing to do.
func (l *SlidingWindowLimiter) Cleanup(ctx context.Context) {
	if l.store == nil {
		return
	}

	keys, err := l.store.Keys(ctx, l.cfg.KeyPrefix+"*")
	if err != nil {
		l.logger.Error("rate limit cleanup failed to list keys",
			zap.String("prefix", l.cfg.KeyPrefix),
			zap.Error(err),
		)

		return
	}

	if len(keys) == 0 {
		return
	}

	if err := l.store.Delete(ctx, keys...); err != nil {
		l.logger.Error("rate limit cleanup failed to delete keys",
			zap.String("prefix", l.cfg.KeyPrefix),
			zap.Int("keys", len(keys)),
			zap.Error(err),
		)
	}
}

func (l *SlidingWindowLimiter) failOpen(now time.Time) Result {
	return Result{
		Allowed:   true,
		Remaining: l.cfg.MaxRequests,
		ResetAt:   now.Add(l.cfg.Window),
	}
}

func (l *SlidingWindowLimiter) failOpenErr(now time.Time, identifier, op string, err error) Result {
	l.logger.Error("rate limit store operation failed, failing open",
		zap.String("identifier", identifier),
		zap.String("op", op),
		zap.Error(err),
	)

	return l.failOpen(now)
}
