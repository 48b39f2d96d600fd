package zodiac

import (
	"fmt"
	"math"
	"strings"
)

// Normalize360 folds any finite angle into [0, 360).
func Normalize360(deg float64) float64 {
	m := math.Mod(deg, 360)
	if m < 0 {
		m += 360
	}
	if m >= 360 {
		// -1e-15 + 360 rounds back up to 360.
		m = 0
	}
	return m
}

// SignIndex returns the rashi (0-11) occupied by a longitude.
func SignIndex(long float64) int {
	return int(math.Floor(Normalize360(long)/30)) % 12
}

// NakshatraIndex returns the nakshatra (0-26) occupied by a longitude.
func NakshatraIndex(long float64) int {
	idx, _ := NakshatraProgress(long)
	return idx
}

// NakshatraProgress returns the nakshatra index and the fraction [0, 1) of it
// already traversed. The fraction comes from the quotient rather than
// math.Mod, which returns almost a full span at exact boundaries such as 40°.
func NakshatraProgress(long float64) (int, float64) {
	q := Normalize360(long) / NakshatraSpan
	whole := math.Floor(q)
	progress := q - whole
	idx := int(whole) % 27
	if progress < 0 {
		progress = 0
	}
	return idx, progress
}

// NakshatraLord returns the Vimshottari lord of the nakshatra containing long.
func NakshatraLord(long float64) Planet {
	return LordCycle[NakshatraIndex(long)%9]
}

// Rashi is the sign breakdown of a longitude.
type Rashi struct {
	Index     int     `json:"index"`
	Name      string  `json:"name"`
	Degree    float64 `json:"degree"`
	Formatted string  `json:"formatted"`
}

// RashiOf splits a longitude into sign and degree within the sign.
func RashiOf(long float64) Rashi {
	norm := Normalize360(long)
	idx := SignIndex(norm)
	degree := math.Mod(norm, 30)
	return Rashi{
		Index:     idx,
		Name:      Signs[idx],
		Degree:    degree,
		Formatted: FormatDMS(degree),
	}
}

// Nakshatra is the lunar mansion breakdown of a longitude.
type Nakshatra struct {
	Index int    `json:"index"`
	Name  string `json:"name"`
	Pada  int    `json:"pada"`
	Lord  Planet `json:"lord"`
}

// NakshatraOf returns nakshatra, pada (1-4) and lord for a longitude.
func NakshatraOf(long float64) Nakshatra {
	idx, progress := NakshatraProgress(long)
	pada := int(math.Floor(progress*4)) + 1
	if pada > 4 {
		pada = 4
	}
	return Nakshatra{
		Index: idx,
		Name:  Nakshatras[idx],
		Pada:  pada,
		Lord:  LordCycle[idx%9],
	}
}

// FormatDMS renders a degree value as `D° M' S"`, truncating each part.
func FormatDMS(deg float64) string {
	d := math.Floor(deg)
	minutes := (deg - d) * 60
	m := math.Floor(minutes)
	s := math.Floor((minutes - m) * 60)
	return fmt.Sprintf("%d° %d' %d\"", int(d), int(m), int(s))
}

// ParseSign resolves a sign name case-insensitively.
func ParseSign(name string) (int, bool) {
	clean := strings.TrimSpace(name)
	for i, sign := range Signs {
		if strings.EqualFold(sign, clean) {
			return i, true
		}
	}
	return -1, false
}
