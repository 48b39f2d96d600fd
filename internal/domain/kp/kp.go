// Package kp implements the Krishnamurti Paddhati star and sub-lord tables.
package kp

import (
	"math"
	"time"

	"github.com/yanqian/kundli/internal/domain/sidereal"
	"github.com/yanqian/kundli/internal/domain/zodiac"
)

const houseSpan = 30.0

// NakshatraLord returns the star lord of the nakshatra containing long.
func NakshatraLord(long float64) zodiac.Planet {
	return zodiac.NakshatraLord(long)
}

// SubLord walks the nine lords from the star lord, each owning a slice of the
// nakshatra proportional to its Vimshottari years, and returns the lord whose
// slice contains long.
func SubLord(long float64) zodiac.Planet {
	idx, progress := zodiac.NakshatraProgress(long)
	start := idx % len(zodiac.LordCycle)
	// Measured in Vimshottari years, so the cumulative bounds are exact.
	target := progress * zodiac.VimshottariTotal
	cumulative := 0.0
	for i := range zodiac.LordCycle {
		lord := zodiac.LordCycle[(start+i)%len(zodiac.LordCycle)]
		cumulative += zodiac.VimshottariYears[lord]
		if target < cumulative {
			return lord
		}
	}
	return zodiac.LordCycle[(start+len(zodiac.LordCycle)-1)%len(zodiac.LordCycle)]
}

// Cusp is one KP house cusp.
type Cusp struct {
	Cusp      int     `json:"cusp"`
	Longitude float64 `json:"longitude"`
	Degree    string  `json:"degree"`
	Sign      string  `json:"sign"`
	SignLord  string  `json:"signLord"`
	StarLord  string  `json:"starLord"`
	SubLord   string  `json:"subLord"`
}

// Cusps returns twelve cusps spaced 30° apart starting at the ascendant.
// This is an equal-house division, not Placidus.
func Cusps(ascendant float64) []Cusp {
	cusps := make([]Cusp, 0, 12)
	for i := 0; i < 12; i++ {
		long := zodiac.Normalize360(ascendant + float64(i)*houseSpan)
		sign := zodiac.SignIndex(long)
		cusps = append(cusps, Cusp{
			Cusp:      i + 1,
			Longitude: long,
			Degree:    zodiac.FormatDMS(long - float64(sign)*houseSpan),
			Sign:      zodiac.Signs[sign],
			SignLord:  zodiac.SignLords[sign].Abbr(),
			StarLord:  NakshatraLord(long).Abbr(),
			SubLord:   SubLord(long).Abbr(),
		})
	}
	return cusps
}

// PlanetRow is the KP significator row of one graha. House is the Bhav
// Chalit house, which can differ from the whole-sign house in the D1 chart.
type PlanetRow struct {
	Planet   zodiac.Planet `json:"planet"`
	House    int           `json:"bhavHouse"`
	Sign     string        `json:"sign"`
	SignLord string        `json:"signLord"`
	StarLord string        `json:"starLord"`
	SubLord  string        `json:"subLord"`
}

// Planets builds the KP rows for the bodies, placing each in its Bhav Chalit
// house.
func Planets(ascendant float64, bodies []sidereal.BodyPosition) []PlanetRow {
	rows := make([]PlanetRow, 0, len(bodies))
	for _, b := range bodies {
		sign := zodiac.SignIndex(b.Longitude)
		rows = append(rows, PlanetRow{
			Planet:   b.Body,
			House:    HouseOf(ascendant, b.Longitude),
			Sign:     zodiac.Signs[sign],
			SignLord: zodiac.SignLords[sign].Abbr(),
			StarLord: NakshatraLord(b.Longitude).Abbr(),
			SubLord:  SubLord(b.Longitude).Abbr(),
		})
	}
	return rows
}

// AscendantLords are the ruling lords of the Lagna.
type AscendantLords struct {
	SignLord zodiac.Planet `json:"signLord"`
	StarLord zodiac.Planet `json:"starLord"`
	SubLord  zodiac.Planet `json:"subLord"`
}

// MoonLords are the ruling lords of the Moon.
type MoonLords struct {
	SignLord zodiac.Planet `json:"signLord"`
	StarLord zodiac.Planet `json:"starLord"`
}

// RulingPlanets is the KP ruling planet set for a moment.
type RulingPlanets struct {
	Ascendant AscendantLords `json:"ascendant"`
	Moon      MoonLords      `json:"moon"`
	DayLord   zodiac.Planet  `json:"dayLord"`
}

// Ruling computes the ruling planets; the day lord follows the civil weekday.
func Ruling(ascendant, moonLong float64, weekday time.Weekday) RulingPlanets {
	return RulingPlanets{
		Ascendant: AscendantLords{
			SignLord: zodiac.SignLords[zodiac.SignIndex(ascendant)],
			StarLord: NakshatraLord(ascendant),
			SubLord:  SubLord(ascendant),
		},
		Moon: MoonLords{
			SignLord: zodiac.SignLords[zodiac.SignIndex(moonLong)],
			StarLord: NakshatraLord(moonLong),
		},
		DayLord: zodiac.WeekdayLords[int(weekday)%7],
	}
}

// Occupant is a body inside a Bhav Chalit house.
type Occupant struct {
	Name   string  `json:"name"`
	Degree float64 `json:"degree"`
}

// BhavHouse is one equal Bhav Chalit house covering [Start, End).
type BhavHouse struct {
	House   int        `json:"house"`
	Start   float64    `json:"start"`
	End     float64    `json:"end"`
	Planets []Occupant `json:"planets"`
}

// BhavChalit places each body in one of twelve 30° houses measured from the
// ascendant. A house whose end wraps past 360° covers both sides of 0°.
func BhavChalit(ascendant float64, bodies []sidereal.BodyPosition) []BhavHouse {
	houses := make([]BhavHouse, 12)
	for i := range houses {
		houses[i] = BhavHouse{
			House:   i + 1,
			Start:   zodiac.Normalize360(ascendant + float64(i)*houseSpan),
			End:     zodiac.Normalize360(ascendant + float64(i+1)*houseSpan),
			Planets: []Occupant{},
		}
	}
	for _, b := range bodies {
		i := HouseOf(ascendant, b.Longitude) - 1
		houses[i].Planets = append(houses[i].Planets, Occupant{
			Name:   b.Body.Abbr(),
			Degree: math.Mod(zodiac.Normalize360(b.Longitude), houseSpan),
		})
	}
	return houses
}

// HouseOf returns the Bhav Chalit house (1-12) whose [start, end) arc
// contains long.
func HouseOf(ascendant, long float64) int {
	offset := zodiac.Normalize360(long - ascendant)
	house := int(math.Floor(offset/houseSpan)) + 1
	switch {
	case house < 1:
		return 1
	case house > 12:
		return 12
	}
	return house
}
