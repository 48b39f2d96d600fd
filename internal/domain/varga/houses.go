package varga

import (
	"math"

	"github.com/yanqian/kundli/internal/domain/sidereal"
	"github.com/yanqian/kundli/internal/domain/zodiac"
)

// AscendantName labels the Lagna when it is placed alongside the grahas.
const AscendantName = "Ascendant"

// Point is anything that can be placed in a house.
type Point struct {
	Name         string
	Longitude    float64
	IsRetrograde bool
}

// Points returns the ascendant followed by the bodies, the order in which
// houses are filled.
func Points(ascendant float64, bodies []sidereal.BodyPosition) []Point {
	points := make([]Point, 0, len(bodies)+1)
	points = append(points, Point{Name: AscendantName, Longitude: ascendant})
	for _, b := range bodies {
		points = append(points, Point{Name: string(b.Body), Longitude: b.Longitude, IsRetrograde: b.IsRetrograde})
	}
	return points
}

// BodyPoints converts bodies without adding the ascendant.
func BodyPoints(bodies []sidereal.BodyPosition) []Point {
	points := make([]Point, 0, len(bodies))
	for _, b := range bodies {
		points = append(points, Point{Name: string(b.Body), Longitude: b.Longitude, IsRetrograde: b.IsRetrograde})
	}
	return points
}

// Placement is a body summary inside a house. Degree is the natal degree
// within the sign, not the divisional one.
type Placement struct {
	Name            string  `json:"name"`
	Degree          float64 `json:"degree"`
	FormattedDegree string  `json:"formattedDegree"`
	IsRetrograde    bool    `json:"isRetrograde"`
}

// House is one of the twelve houses of a chart.
type House struct {
	House     int         `json:"house"`
	Rashi     int         `json:"rashi"`
	RashiName string      `json:"rashiName"`
	Planets   []Placement `json:"planets"`
}

// Chart is a divisional chart.
type Chart struct {
	Key      string  `json:"key"`
	Name     string  `json:"name"`
	Division int     `json:"division"`
	Houses   []House `json:"houses"`
}

// CalculateHouses places every point into one of twelve houses counted from
// ascSign. Points with a non-finite longitude cannot be placed and are left
// out of the chart.
func CalculateHouses(ascSign int, points []Point, division int) []House {
	ascSign = ((ascSign % 12) + 12) % 12
	houses := make([]House, 12)
	for i := range houses {
		sign := (ascSign + i) % 12
		houses[i] = House{
			House:     i + 1,
			Rashi:     sign,
			RashiName: zodiac.Signs[sign],
			Planets:   []Placement{},
		}
	}

	for _, p := range points {
		if math.IsNaN(p.Longitude) || math.IsInf(p.Longitude, 0) {
			continue
		}
		idx := (Rashi(p.Longitude, division) - ascSign + 12) % 12
		if idx < 0 || idx >= len(houses) {
			continue
		}
		rashi := zodiac.RashiOf(p.Longitude)
		houses[idx].Planets = append(houses[idx].Planets, Placement{
			Name:            p.Name,
			Degree:          rashi.Degree,
			FormattedDegree: rashi.Formatted,
			IsRetrograde:    p.IsRetrograde,
		})
	}
	return houses
}

// Build computes one divisional chart. The first point is expected to be the
// ascendant, which always lands in house 1.
func Build(scheme Scheme, ascendant float64, points []Point) Chart {
	return Chart{
		Key:      scheme.Key,
		Name:     scheme.Name,
		Division: scheme.Division,
		Houses:   CalculateHouses(Rashi(ascendant, scheme.Division), points, scheme.Division),
	}
}

// BuildAll computes every Shodashvarga chart keyed by scheme key.
func BuildAll(ascendant float64, points []Point) map[string]Chart {
	charts := make(map[string]Chart, len(Schemes))
	for _, scheme := range Schemes {
		charts[scheme.Key] = Build(scheme, ascendant, points)
	}
	return charts
}
