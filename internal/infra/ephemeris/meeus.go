package ephemeris

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/soniakeys/meeus/v3/base"
	"github.com/soniakeys/meeus/v3/julian"
	"github.com/soniakeys/meeus/v3/moonposition"
	"github.com/soniakeys/meeus/v3/nutation"
	"github.com/soniakeys/meeus/v3/solar"

	"github.com/yanqian/kundli/internal/domain/sidereal"
	"github.com/yanqian/kundli/internal/domain/zodiac"
)

// Meeus serves apparent Sun and Moon longitudes from the theories in
// Meeus' Astronomical Algorithms (chapters 25 and 47) and hands the five
// planets to a fallback provider. The planetary theory in the same library
// needs VSOP87 data files on disk, so planets stay on the fallback.
//
// Civil time is taken as dynamical time; ΔT (about a minute today) moves
// the Moon by well under a hundredth of a degree.
type Meeus struct {
	planets sidereal.Ephemeris
}

// NewMeeus wraps planets, which answers for every body other than the Sun
// and the Moon.
func NewMeeus(planets sidereal.Ephemeris) *Meeus {
	return &Meeus{planets: planets}
}

// TropicalLongitude implements sidereal.Ephemeris.
func (m *Meeus) TropicalLongitude(ctx context.Context, body zodiac.Planet, at time.Time) (float64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	jde := julian.TimeToJD(at.UTC())

	var long float64
	switch body {
	case zodiac.Sun:
		long = solar.ApparentLongitude(base.J2000Century(jde)).Deg()
	case zodiac.Moon:
		λ, _, _ := moonposition.Position(jde)
		Δψ, _ := nutation.Nutation(jde)
		long = (λ + Δψ).Deg()
	default:
		if m.planets == nil {
			return 0, fmt.Errorf("ephemeris: unsupported body %q", body)
		}
		return m.planets.TropicalLongitude(ctx, body, at)
	}
	if math.IsNaN(long) || math.IsInf(long, 0) {
		return 0, fmt.Errorf("ephemeris: non-finite longitude for %s at %s", body, at.Format(time.RFC3339))
	}
	return zodiac.Normalize360(long), nil
}
