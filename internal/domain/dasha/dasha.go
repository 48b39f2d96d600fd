// Package dasha builds planetary period timelines: Vimshottari with nested
// Antardashas, Yogini and a simplified sign-based Chara dasha.
package dasha

import (
	"math"
	"time"

	"github.com/yanqian/kundli/internal/domain/zodiac"
	apperrors "github.com/yanqian/kundli/pkg/errors"
)

// Period is one ruling interval. Ruler is a planet, a Yogini or a sign.
type Period struct {
	Ruler string    `json:"planet"`
	Years float64   `json:"years"`
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
	Sub   []Period  `json:"sub,omitempty"`
}

// Timeline groups the three systems computed for a chart.
type Timeline struct {
	Vimshottari []Period `json:"vimshottari"`
	Yogini      []Period `json:"yogini"`
	Chara       []Period `json:"chara"`
}

// Calculate builds all three systems from the Moon's sidereal longitude.
func Calculate(moonLong float64, birth time.Time) (Timeline, error) {
	vim, err := Vimshottari(moonLong, birth)
	if err != nil {
		return Timeline{}, err
	}
	yog, err := Yogini(moonLong, birth)
	if err != nil {
		return Timeline{}, err
	}
	return Timeline{
		Vimshottari: vim,
		Yogini:      yog,
		Chara:       Chara(birth),
	}, nil
}

// Vimshottari returns nine Mahadashas, each holding nine Antardashas. The
// first Mahadasha is shortened by the part of the birth nakshatra the Moon has
// already crossed; Antardashas always use the full Mahadasha length.
func Vimshottari(moonLong float64, birth time.Time) ([]Period, error) {
	if err := checkLongitude(moonLong); err != nil {
		return nil, err
	}
	nakIdx, progress := zodiac.NakshatraProgress(moonLong)
	startIdx := nakIdx % 9

	periods := make([]Period, 0, 9)
	start := birth
	for i := 0; i < 9; i++ {
		idx := (startIdx + i) % 9
		lord := zodiac.LordCycle[idx]
		full := zodiac.VimshottariYears[lord]
		years := full
		if i == 0 {
			years = full * (1 - progress)
		}
		end := AddYears(start, years)

		subs := make([]Period, 0, 9)
		subStart := start
		for j := 0; j < 9; j++ {
			subLord := zodiac.LordCycle[(idx+j)%9]
			subYears := full * zodiac.VimshottariYears[subLord] / zodiac.VimshottariTotal
			subEnd := AddYears(subStart, subYears)
			subs = append(subs, Period{Ruler: string(subLord), Years: subYears, Start: subStart, End: subEnd})
			subStart = subEnd
		}

		periods = append(periods, Period{Ruler: string(lord), Years: years, Start: start, End: end, Sub: subs})
		start = end
	}
	return periods, nil
}

type yogini struct {
	name  string
	years float64
}

// yoginis sum to 36 years.
var yoginis = [8]yogini{
	{"Mangala", 1}, {"Pingala", 2}, {"Dhanya", 3}, {"Bhramari", 4},
	{"Bhadrika", 5}, {"Ulka", 6}, {"Siddha", 7}, {"Sankata", 8},
}

// YoginiCycles is the number of full 36 year cycles generated.
const YoginiCycles = 2

// Yogini returns sixteen consecutive Yogini periods (two full cycles).
func Yogini(moonLong float64, birth time.Time) ([]Period, error) {
	if err := checkLongitude(moonLong); err != nil {
		return nil, err
	}
	startIdx := (zodiac.NakshatraIndex(moonLong) + 3) % 8

	count := len(yoginis) * YoginiCycles
	periods := make([]Period, 0, count)
	start := birth
	for i := 0; i < count; i++ {
		y := yoginis[(startIdx+i)%8]
		end := AddYears(start, y.years)
		periods = append(periods, Period{Ruler: y.name, Years: y.years, Start: start, End: end})
		start = end
	}
	return periods, nil
}

// CharaYears is the fixed length given to every sign.
const CharaYears = 9

// Chara returns twelve nine-year sign periods from Aries onward. This is a
// placeholder for Jaimini Chara dasha, whose lengths depend on where each
// sign's lord sits.
func Chara(birth time.Time) []Period {
	periods := make([]Period, 0, len(zodiac.Signs))
	start := birth
	for _, sign := range zodiac.Signs {
		end := AddYears(start, CharaYears)
		periods = append(periods, Period{Ruler: sign, Years: CharaYears, Start: start, End: end})
		start = end
	}
	return periods
}

// AddYears advances t by whole years, then by the whole months contained in
// the fractional year. Days below a month are dropped.
func AddYears(t time.Time, years float64) time.Time {
	whole := math.Floor(years)
	months := int(math.Floor((years-whole)*12)) % 12
	return t.AddDate(int(whole), 0, 0).AddDate(0, months, 0)
}

func checkLongitude(long float64) error {
	if math.IsNaN(long) || math.IsInf(long, 0) {
		return apperrors.Wrap(apperrors.CodeInvalidInput, "moon longitude must be finite", nil)
	}
	return nil
}
