// Package varga maps sidereal longitudes into the sixteen Shodashvarga
// divisional charts and buckets bodies into houses.
package varga

import (
	"math"

	"github.com/yanqian/kundli/internal/domain/zodiac"
)

// slot is a longitude resolved against one division factor.
type slot struct {
	long   float64
	sign   int
	degree float64
	part   int
	odd    bool // Aries, Gemini, Leo ... (even sign index)
}

// Scheme is one classical subdivision rule.
type Scheme struct {
	Division int
	Key      string
	Name     string
	rashi    func(s slot) int
}

// Starting sign tables. Modality order is movable, fixed, dual; element order
// is fire, earth, air, water.
var (
	horaOdd               = [2]int{4, 3} // Leo (Sun) then Cancer (Moon)
	horaEven              = [2]int{3, 4}
	shodashamsaStarts     = [3]int{0, 4, 8} // Aries, Leo, Sagittarius
	vimshamsaStarts       = [3]int{0, 8, 4} // Aries, Sagittarius, Leo
	akshavedamsaStarts    = [3]int{0, 4, 8} // Aries, Leo, Sagittarius
	bhamsaStarts          = [4]int{0, 9, 6, 3}
	chaturvimshamsaStarts = [2]int{4, 3} // odd: Leo, even: Cancer
	khavedamsaStarts      = [2]int{0, 6} // odd: Aries, even: Libra
	saptamsaEvenOffset    = 6
	dashamsaEvenOffset    = 8
	drekkanaStride        = 4
	chaturthamsaStride    = 3
	trimsamsaOddBands     = []band{{5, 0}, {10, 10}, {18, 8}, {25, 2}, {30, 6}}
	// Even signs: Venus, Mercury, Jupiter, Saturn, Mars; Jupiter's band is Pisces.
	trimsamsaEvenBands = []band{{5, 1}, {12, 5}, {20, 11}, {25, 9}, {30, 7}}
)

// band maps degrees below upTo to a fixed sign.
type band struct {
	upTo float64
	sign int
}

// Schemes lists every supported division in presentation order.
var Schemes = []Scheme{
	{1, "d1", "Lagna Chart", func(s slot) int { return s.sign }},
	{2, "d2", "Hora (D2)", hora},
	{3, "d3", "Drekkana (D3)", stride(drekkanaStride)},
	{4, "d4", "Chaturthamsa (D4)", stride(chaturthamsaStride)},
	{7, "d7", "Saptamsa (D7)", parityOffset(saptamsaEvenOffset)},
	{9, "d9", "Navamsa (D9)", navamsa},
	{10, "d10", "Dashamsa (D10)", parityOffset(dashamsaEvenOffset)},
	{12, "d12", "Dwadasamsa (D12)", stride(1)},
	{16, "d16", "Shodashamsa (D16)", byModality(shodashamsaStarts)},
	{20, "d20", "Vimshamsa (D20)", byModality(vimshamsaStarts)},
	{24, "d24", "Chaturvimshamsa (D24)", byParity(chaturvimshamsaStarts)},
	{27, "d27", "Bhamsa (D27)", byElement(bhamsaStarts)},
	{30, "d30", "Trimsamsa (D30)", trimsamsa},
	{40, "d40", "Khavedamsa (D40)", byParity(khavedamsaStarts)},
	{45, "d45", "Akshavedamsa (D45)", byModality(akshavedamsaStarts)},
	{60, "d60", "Shashtyamsa (D60)", stride(1)},
}

var schemesByDivision = func() map[int]Scheme {
	m := make(map[int]Scheme, len(Schemes))
	for _, s := range Schemes {
		m[s.Division] = s
	}
	return m
}()

// Lookup returns the scheme for a division factor.
func Lookup(division int) (Scheme, bool) {
	s, ok := schemesByDivision[division]
	return s, ok
}

// Rashi returns the divisional sign (0-11) of a sidereal longitude.
// Division 1 and unknown divisions return the natal sign.
func Rashi(long float64, division int) int {
	long = zodiac.Normalize360(long)
	sign := int(math.Floor(long / 30))
	degree := math.Mod(long, 30)
	scheme, ok := schemesByDivision[division]
	if !ok {
		return sign
	}
	part := int(math.Floor(degree / (30 / float64(division))))
	if part >= division {
		part = division - 1
	}
	return scheme.rashi(slot{
		long:   long,
		sign:   sign,
		degree: degree,
		part:   part,
		odd:    sign%2 == 0,
	})
}

func hora(s slot) int {
	if s.odd {
		return horaOdd[s.part]
	}
	return horaEven[s.part]
}

// stride walks part*step signs from the natal sign.
func stride(step int) func(slot) int {
	return func(s slot) int {
		return (s.sign + s.part*step) % 12
	}
}

// parityOffset counts from the sign itself for odd signs and from the sign
// offset places away for even ones.
func parityOffset(evenOffset int) func(slot) int {
	return func(s slot) int {
		start := s.sign
		if !s.odd {
			start = (s.sign + evenOffset) % 12
		}
		return (start + s.part) % 12
	}
}

func byParity(starts [2]int) func(slot) int {
	return func(s slot) int {
		start := starts[1]
		if s.odd {
			start = starts[0]
		}
		return (start + s.part) % 12
	}
}

func byModality(starts [3]int) func(slot) int {
	return func(s slot) int {
		return (starts[s.sign%3] + s.part) % 12
	}
}

func byElement(starts [4]int) func(slot) int {
	return func(s slot) int {
		return (starts[s.sign%4] + s.part) % 12
	}
}

// navamsa counts ninths continuously around the zodiac.
func navamsa(s slot) int {
	return int(math.Floor(s.long/(30.0/9))) % 12
}

func trimsamsa(s slot) int {
	bands := trimsamsaEvenBands
	if s.odd {
		bands = trimsamsaOddBands
	}
	for _, b := range bands {
		if s.degree < b.upTo {
			return b.sign
		}
	}
	return bands[len(bands)-1].sign
}
