package ephemeris

import (
	"context"
	"time"
)

// Store caches longitudes by key.
type Store interface {
	Get(ctx context.Context, key string) (float64, bool, error)
	Set(ctx context.Context, key string, long float64, ttl time.Duration) error
}
