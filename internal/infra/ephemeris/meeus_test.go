package ephemeris

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/yanqian/kundli/internal/domain/zodiac"
)

type fixedEphemeris struct {
	long  float64
	calls int
}

func (f *fixedEphemeris) TropicalLongitude(ctx context.Context, body zodiac.Planet, at time.Time) (float64, error) {
	f.calls++
	return f.long, nil
}

func TestMeeusMatchesWorkedExamples(t *testing.T) {
	m := NewMeeus(NewKepler())

	// Example 25.a: apparent Sun on 1992-10-13 0h TD.
	sun, err := m.TropicalLongitude(context.Background(), zodiac.Sun, time.Date(1992, time.October, 13, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.InDelta(t, 199.90895, sun, 0.001)

	// Example 47.a: apparent Moon on 1992-04-12 0h TD (133.162655 + Δψ 0.004610).
	moon, err := m.TropicalLongitude(context.Background(), zodiac.Moon, time.Date(1992, time.April, 12, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.InDelta(t, 133.167265, moon, 0.001)
}

func TestMeeusMatchesPublishedPositionsAtJ2000(t *testing.T) {
	published := map[zodiac.Planet]float64{zodiac.Sun: 280.37, zodiac.Moon: 223.32}
	m := NewMeeus(nil)
	for body, want := range published {
		got, err := m.TropicalLongitude(context.Background(), body, j2000)
		require.NoError(t, err, body)
		require.InDelta(t, want, got, 0.02, body)
	}
}

func TestMeeusDelegatesPlanets(t *testing.T) {
	fallback := &fixedEphemeris{long: 42}
	m := NewMeeus(fallback)

	got, err := m.TropicalLongitude(context.Background(), zodiac.Jupiter, j2000)
	require.NoError(t, err)
	require.Equal(t, 42.0, got)

	_, err = m.TropicalLongitude(context.Background(), zodiac.Moon, j2000)
	require.NoError(t, err)
	require.Equal(t, 1, fallback.calls)
}

func TestMeeusWithoutFallbackRejectsPlanets(t *testing.T) {
	_, err := NewMeeus(nil).TropicalLongitude(context.Background(), zodiac.Mars, j2000)
	require.Error(t, err)
}

func TestMeeusHonoursCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewMeeus(NewKepler()).TropicalLongitude(ctx, zodiac.Sun, j2000)
	require.ErrorIs(t, err, context.Canceled)
}
