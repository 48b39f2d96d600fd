package chart

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/yanqian/kundli/internal/domain/dasha"
	"github.com/yanqian/kundli/internal/domain/kp"
	"github.com/yanqian/kundli/internal/domain/panchang"
	"github.com/yanqian/kundli/internal/domain/sidereal"
	"github.com/yanqian/kundli/internal/domain/varga"
	"github.com/yanqian/kundli/internal/domain/zodiac"
)

// FlexFloat decodes from a JSON number or a numeric string.
type FlexFloat float64

// UnmarshalJSON implements json.Unmarshaler.
func (f *FlexFloat) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		data = []byte(strings.TrimSpace(s))
	}
	v, err := strconv.ParseFloat(string(data), 64)
	if err != nil {
		return fmt.Errorf("coordinate %q is not a number", string(data))
	}
	*f = FlexFloat(v)
	return nil
}

// Request is a birth chart request. Name and City are only echoed back.
type Request struct {
	Name      string     `json:"name"`
	City      string     `json:"city"`
	Date      string     `json:"date"`
	Time      string     `json:"time"`
	Timezone  string     `json:"timezone"`
	Latitude  *FlexFloat `json:"latitude"`
	Longitude *FlexFloat `json:"longitude"`
}

// Response is the complete computed chart.
type Response struct {
	Metadata      Metadata               `json:"metadata"`
	BasicDetails  BasicDetails           `json:"basicDetails"`
	Lagna         zodiac.Rashi           `json:"lagna"`
	Ascendant     sidereal.BodyPosition  `json:"ascendant"`
	Planets       sidereal.Positions     `json:"planets"`
	Dashas        dasha.Timeline         `json:"dashas"`
	Panchang      panchang.Snapshot      `json:"panchang"`
	Vargas        map[string]varga.Chart `json:"vargas"`
	ChandraHouses []varga.House          `json:"chandraHouses"`
	SuryaHouses   []varga.House          `json:"suryaHouses"`
	KP            KP                     `json:"kp"`
}

// Metadata describes the computed instant.
type Metadata struct {
	Name     string                 `json:"name"`
	Date     string                 `json:"date"`
	Location sidereal.GeoCoordinate `json:"location"`
	Ayanamsa string                 `json:"ayanamsa"`
}

// BasicDetails is the birth summary shown alongside the chart.
type BasicDetails struct {
	Name      string  `json:"name"`
	Date      string  `json:"date"`
	Time      string  `json:"time"`
	Place     string  `json:"place"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Timezone  string  `json:"timezone"`
	Ayanamsha string  `json:"ayanamsha"`
}

// KP bundles the Krishnamurti tables.
type KP struct {
	Cusps         []kp.Cusp        `json:"cusps"`
	Planets       []kp.PlanetRow   `json:"planets"`
	RulingPlanets kp.RulingPlanets `json:"rulingPlanets"`
	BhavChalit    []kp.BhavHouse   `json:"bhavChalit"`
}
