// Package sidereal converts civil instants and observer positions into
// sidereal longitudes: the Lahiri style ayanamsa, the nine graha positions
// and the Lagna.
package sidereal

import (
	"math"
	"time"

	apperrors "github.com/yanqian/kundli/pkg/errors"
)

const (
	secondsPerDay  = 86400.0
	daysPerCentury = 36525.0
)

// j2000Unix is 2000-01-01T12:00:00Z, the J2000.0 epoch.
var j2000Unix = time.Date(2000, time.January, 1, 12, 0, 0, 0, time.UTC).Unix()

// Instant is an immutable civil timestamp. The location carried by the
// wrapped time decides the civil weekday; astronomy always runs on UT.
type Instant struct {
	t time.Time
}

// NewInstant wraps t.
func NewInstant(t time.Time) Instant {
	return Instant{t: t}
}

// Time returns the civil timestamp.
func (i Instant) Time() time.Time {
	return i.t
}

// Add returns the instant shifted by d.
func (i Instant) Add(d time.Duration) Instant {
	return Instant{t: i.t.Add(d)}
}

// Weekday is the civil day of week at the instant's own location.
func (i Instant) Weekday() time.Weekday {
	return i.t.Weekday()
}

// DaysSinceJ2000 is the UT day count from J2000.0. It avoids time.Duration
// so dates centuries away from the epoch do not overflow.
func (i Instant) DaysSinceJ2000() float64 {
	secs := float64(i.t.Unix()-j2000Unix) + float64(i.t.Nanosecond())/1e9
	return secs / secondsPerDay
}

// Centuries is the Julian century count T from J2000.0.
func (i Instant) Centuries() float64 {
	return i.DaysSinceJ2000() / daysPerCentury
}

// GeoCoordinate is an observer position in degrees.
type GeoCoordinate struct {
	Latitude  float64 `json:"lat"`
	Longitude float64 `json:"lon"`
}

// Validate rejects non-finite and out of range coordinates.
func (g GeoCoordinate) Validate() error {
	if !isFinite(g.Latitude) || !isFinite(g.Longitude) {
		return apperrors.Wrap(apperrors.CodeInvalidInput, "latitude and longitude must be valid numbers", nil)
	}
	if g.Latitude < -90 || g.Latitude > 90 {
		return apperrors.Wrap(apperrors.CodeInvalidInput, "latitude must be within [-90, 90]", nil)
	}
	if g.Longitude < -180 || g.Longitude > 180 {
		return apperrors.Wrap(apperrors.CodeInvalidInput, "longitude must be within [-180, 180]", nil)
	}
	return nil
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
