package ephemeris

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/yanqian/kundli/internal/domain/sidereal"
	"github.com/yanqian/kundli/internal/domain/zodiac"
	"github.com/yanqian/kundli/pkg/metrics"
)

// Cached memoises another provider by (body, unix second). Cache failures are
// logged and never fail a lookup.
type Cached struct {
	next    sidereal.Ephemeris
	store   Store
	ttl     time.Duration
	metrics *metrics.Registry
	logger  *slog.Logger
}

// NewCached wraps next with store.
func NewCached(next sidereal.Ephemeris, store Store, ttl time.Duration, reg *metrics.Registry, logger *slog.Logger) *Cached {
	return &Cached{
		next:    next,
		store:   store,
		ttl:     ttl,
		metrics: reg,
		logger:  logger.With("component", "ephemeris.cache"),
	}
}

// TropicalLongitude implements sidereal.Ephemeris.
func (c *Cached) TropicalLongitude(ctx context.Context, body zodiac.Planet, at time.Time) (float64, error) {
	key := cacheKey(body, at)
	long, ok, err := c.store.Get(ctx, key)
	switch {
	case err != nil:
		c.metrics.ObserveCache(metrics.CacheError)
		c.logger.Warn("ephemeris cache read failed", "key", key, "error", err)
	case ok:
		c.metrics.ObserveCache(metrics.CacheHit)
		return long, nil
	default:
		c.metrics.ObserveCache(metrics.CacheMiss)
	}

	long, err = c.next.TropicalLongitude(ctx, body, at)
	if err != nil {
		return 0, err
	}
	if err := c.store.Set(ctx, key, long, c.ttl); err != nil {
		c.metrics.ObserveCache(metrics.CacheError)
		c.logger.Warn("ephemeris cache write failed", "key", key, "error", err)
	}
	return long, nil
}

func cacheKey(body zodiac.Planet, at time.Time) string {
	return fmt.Sprintf("%s:%d", body, at.UnixMilli())
}

var _ sidereal.Ephemeris = (*Cached)(nil)
