package sidereal

import "github.com/yanqian/kundli/internal/domain/zodiac"

// Ayanamsa returns the Lahiri style offset in degrees: 23.85° at J2000.0
// advancing by 1.396041° per century. Nutation is not applied.
func Ayanamsa(i Instant) float64 {
	t := i.Centuries()
	return 23.85 + 1.396041*t + 0.000307*t*t
}

// ToSidereal subtracts the ayanamsa from a tropical longitude.
func ToSidereal(tropical, ayanamsa float64) float64 {
	return zodiac.Normalize360(tropical - ayanamsa)
}
