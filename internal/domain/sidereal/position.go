package sidereal

import (
	"context"
	"fmt"
	"time"

	"github.com/yanqian/kundli/internal/domain/zodiac"
	apperrors "github.com/yanqian/kundli/pkg/errors"
)

// Ephemeris supplies tropical geocentric ecliptic longitudes.
type Ephemeris interface {
	TropicalLongitude(ctx context.Context, body zodiac.Planet, at time.Time) (float64, error)
}

// EphemerisBodies are the bodies looked up from the Ephemeris; the nodes are
// computed from the mean-node polynomial instead.
var EphemerisBodies = [7]zodiac.Planet{
	zodiac.Sun, zodiac.Moon, zodiac.Mercury, zodiac.Venus, zodiac.Mars, zodiac.Jupiter, zodiac.Saturn,
}

// velocityStep is the finite difference used to detect retrograde motion.
const velocityStep = time.Hour

// BodyPosition is a sidereal placement of one graha.
type BodyPosition struct {
	Body         zodiac.Planet    `json:"body"`
	Longitude    float64          `json:"longitude"`
	Rashi        zodiac.Rashi     `json:"rashi"`
	Nakshatra    zodiac.Nakshatra `json:"nakshatra"`
	IsRetrograde bool             `json:"isRetrograde"`
}

// NewBodyPosition derives the sign and nakshatra breakdown of a sidereal longitude.
func NewBodyPosition(body zodiac.Planet, long float64, retrograde bool) BodyPosition {
	long = zodiac.Normalize360(long)
	return BodyPosition{
		Body:         body,
		Longitude:    long,
		Rashi:        zodiac.RashiOf(long),
		Nakshatra:    zodiac.NakshatraOf(long),
		IsRetrograde: retrograde,
	}
}

// Positions holds all nine grahas of one chart.
type Positions map[zodiac.Planet]BodyPosition

// Ordered returns the positions in zodiac.Planets order, skipping absent bodies.
func (p Positions) Ordered() []BodyPosition {
	out := make([]BodyPosition, 0, len(p))
	for _, body := range zodiac.Planets {
		if pos, ok := p[body]; ok {
			out = append(out, pos)
		}
	}
	return out
}

// Engine turns ephemeris output into sidereal positions.
type Engine struct {
	ephemeris Ephemeris
}

// NewEngine wires the engine to an ephemeris.
func NewEngine(ephemeris Ephemeris) *Engine {
	return &Engine{ephemeris: ephemeris}
}

// Positions computes all nine grahas at the instant. Any ephemeris failure
// fails the whole call; a chart is never returned with a body missing.
func (e *Engine) Positions(ctx context.Context, at Instant) (Positions, error) {
	ayanamsa := Ayanamsa(at)
	next := at.Add(velocityStep)
	nextAyanamsa := Ayanamsa(next)

	positions := make(Positions, len(zodiac.Planets))
	for _, body := range EphemerisBodies {
		now, err := e.tropical(ctx, body, at)
		if err != nil {
			return nil, err
		}
		later, err := e.tropical(ctx, body, next)
		if err != nil {
			return nil, err
		}
		long := ToSidereal(now, ayanamsa)
		velocity := circularDelta(long, ToSidereal(later, nextAyanamsa))
		positions[body] = NewBodyPosition(body, long, velocity < 0)
	}

	rahu := ToSidereal(MeanNode(at), ayanamsa)
	positions[zodiac.Rahu] = NewBodyPosition(zodiac.Rahu, rahu, true)
	positions[zodiac.Ketu] = NewBodyPosition(zodiac.Ketu, zodiac.Normalize360(rahu+180), true)
	return positions, nil
}

// Longitude returns the sidereal longitude of one ephemeris body.
func (e *Engine) Longitude(ctx context.Context, body zodiac.Planet, at Instant) (float64, error) {
	if body == zodiac.Rahu || body == zodiac.Ketu {
		rahu := ToSidereal(MeanNode(at), Ayanamsa(at))
		if body == zodiac.Ketu {
			return zodiac.Normalize360(rahu + 180), nil
		}
		return rahu, nil
	}
	tropical, err := e.tropical(ctx, body, at)
	if err != nil {
		return 0, err
	}
	return ToSidereal(tropical, Ayanamsa(at)), nil
}

func (e *Engine) tropical(ctx context.Context, body zodiac.Planet, at Instant) (float64, error) {
	if e.ephemeris == nil {
		return 0, apperrors.Wrap(apperrors.CodeUpstreamUnavailable, "ephemeris not configured", nil)
	}
	long, err := e.ephemeris.TropicalLongitude(ctx, body, at.Time())
	if err != nil {
		return 0, apperrors.Wrap(apperrors.CodeUpstreamUnavailable, fmt.Sprintf("ephemeris lookup failed for %s", body), err)
	}
	if !isFinite(long) {
		return 0, apperrors.Wrap(apperrors.CodeUpstreamUnavailable, fmt.Sprintf("ephemeris returned non-finite longitude for %s", body), nil)
	}
	return long, nil
}

// MeanNode is the tropical longitude of the mean lunar ascending node (Rahu).
func MeanNode(at Instant) float64 {
	t := at.Centuries()
	return zodiac.Normalize360(125.04452 - 1934.136261*t + 0.0020708*t*t)
}

// circularDelta returns to-from wrapped into [-180, 180].
func circularDelta(from, to float64) float64 {
	d := to - from
	if d > 180 {
		d -= 360
	}
	if d < -180 {
		d += 360
	}
	return d
}
