package ephemeris

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"

	"github.com/yanqian/kundli/internal/domain/zodiac"
	"github.com/yanqian/kundli/pkg/metrics"
)

type countingEphemeris struct {
	calls int
	long  float64
	err   error
}

func (c *countingEphemeris) TropicalLongitude(context.Context, zodiac.Planet, time.Time) (float64, error) {
	c.calls++
	return c.long, c.err
}

type brokenStore struct{}

func (brokenStore) Get(context.Context, string) (float64, bool, error) {
	return 0, false, errors.New("connection refused")
}

func (brokenStore) Set(context.Context, string, float64, time.Duration) error {
	return errors.New("connection refused")
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestCachedServesRepeatLookupsFromStore(t *testing.T) {
	next := &countingEphemeris{long: 123.4}
	store, err := NewMemoryStore(16)
	require.NoError(t, err)
	reg := metrics.New()
	cached := NewCached(next, store, time.Hour, reg, discardLogger())

	for i := 0; i < 3; i++ {
		got, err := cached.TropicalLongitude(context.Background(), zodiac.Mars, j2000)
		require.NoError(t, err)
		require.Equal(t, 123.4, got)
	}
	require.Equal(t, 1, next.calls)
	require.Equal(t, 1.0, testutil.ToFloat64(reg.EphemerisCache.WithLabelValues(metrics.CacheMiss)))
	require.Equal(t, 2.0, testutil.ToFloat64(reg.EphemerisCache.WithLabelValues(metrics.CacheHit)))

	// A different second is a different key.
	_, err = cached.TropicalLongitude(context.Background(), zodiac.Mars, j2000.Add(time.Second))
	require.NoError(t, err)
	require.Equal(t, 2, next.calls)
}

func TestCachedFallsThroughWhenStoreFails(t *testing.T) {
	next := &countingEphemeris{long: 10}
	reg := metrics.New()
	cached := NewCached(next, brokenStore{}, time.Hour, reg, discardLogger())

	got, err := cached.TropicalLongitude(context.Background(), zodiac.Sun, j2000)
	require.NoError(t, err)
	require.Equal(t, 10.0, got)
	require.Equal(t, 2.0, testutil.ToFloat64(reg.EphemerisCache.WithLabelValues(metrics.CacheError)))
}

func TestCachedDoesNotStoreFailures(t *testing.T) {
	next := &countingEphemeris{err: errors.New("unsupported")}
	store, err := NewMemoryStore(4)
	require.NoError(t, err)
	cached := NewCached(next, store, 0, nil, discardLogger())

	_, err = cached.TropicalLongitude(context.Background(), zodiac.Sun, j2000)
	require.Error(t, err)
	require.Equal(t, 0, store.Len())
}

func TestMemoryStoreExpiresAndEvicts(t *testing.T) {
	store, err := NewMemoryStore(2)
	require.NoError(t, err)
	now := j2000
	store.now = func() time.Time { return now }
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "a", 1, time.Minute))
	got, ok, err := store.Get(ctx, "a")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, 1.0, got)

	now = now.Add(2 * time.Minute)
	_, ok, err = store.Get(ctx, "a")
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, store.Set(ctx, "b", 2, 0))
	require.NoError(t, store.Set(ctx, "c", 3, 0))
	require.NoError(t, store.Set(ctx, "d", 4, 0))
	_, ok, _ = store.Get(ctx, "b")
	require.False(t, ok)
	require.Equal(t, 2, store.Len())
}

func TestNewMemoryStoreRejectsNonPositiveSize(t *testing.T) {
	_, err := NewMemoryStore(0)
	require.Error(t, err)
}

func TestCacheKey(t *testing.T) {
	require.Equal(t, "Moon:946728000000", cacheKey(zodiac.Moon, j2000))
	// The Moon moves about 0.00015° per second; sub-second instants stay distinct.
	require.NotEqual(t, cacheKey(zodiac.Moon, j2000), cacheKey(zodiac.Moon, j2000.Add(500*time.Millisecond)))
	require.Equal(t, "ephemeris:Moon:1", NewValkeyStore(nil, "").entryKey("Moon:1"))
}
