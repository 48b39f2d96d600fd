package sidereal

import (
	"math"

	"github.com/yanqian/kundli/internal/domain/zodiac"
	apperrors "github.com/yanqian/kundli/pkg/errors"
)

const deg2rad = math.Pi / 180

// GreenwichSiderealHours is the mean sidereal time at Greenwich in hours.
func GreenwichSiderealHours(at Instant) float64 {
	d := at.DaysSinceJ2000()
	t := d / daysPerCentury
	gmst := 280.46061837 + 360.98564736629*d + 0.000387933*t*t - t*t*t/38710000
	return zodiac.Normalize360(gmst) / 15
}

// Obliquity is the mean obliquity of the ecliptic in degrees for century T.
func Obliquity(t float64) float64 {
	return 23.4392911 - 0.01300416*t - 0.00000016*t*t + 0.000000503*t*t*t
}

// Lagna returns the sidereal ascendant for an instant and observer.
// The poles are rejected because tan(latitude) is singular there.
func Lagna(at Instant, geo GeoCoordinate) (float64, error) {
	if err := geo.Validate(); err != nil {
		return 0, err
	}
	if math.Abs(geo.Latitude) >= 90 {
		return 0, apperrors.Wrap(apperrors.CodeInvalidInput, "ascendant is undefined at the poles", nil)
	}

	lstHours := GreenwichSiderealHours(at) + geo.Longitude/15
	lst := zodiac.Normalize360(lstHours*15) * deg2rad
	eps := Obliquity(at.Centuries()) * deg2rad
	lat := geo.Latitude * deg2rad

	y := math.Cos(lst)
	x := -math.Sin(lst)*math.Cos(eps) - math.Tan(lat)*math.Sin(eps)
	tropical := zodiac.Normalize360(math.Atan2(y, x) / deg2rad)
	return ToSidereal(tropical, Ayanamsa(at)), nil
}
