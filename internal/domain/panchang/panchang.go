// Package panchang derives the five daily almanac elements from the civil
// weekday and the sidereal Sun and Moon.
package panchang

import (
	"fmt"
	"math"
	"time"

	"github.com/yanqian/kundli/internal/domain/zodiac"
)

// Snapshot is the Panchang for one instant.
type Snapshot struct {
	Vara      string `json:"vara"`
	Tithi     string `json:"tithi"`
	Nakshatra string `json:"nakshatra"`
	Yoga      string `json:"yoga"`
	Karana    string `json:"karana"`
}

// Yogas are the 27 Sun+Moon yogas starting at Vishkumbha.
var Yogas = [27]string{
	"Vishkumbha", "Priti", "Ayushman", "Saubhagya", "Shobhana", "Atiganda", "Sukarma", "Dhriti", "Shula",
	"Ganda", "Vriddhi", "Dhruva", "Vyaghata", "Harshana", "Vajra", "Siddhi", "Vyatipata", "Variyan",
	"Parigha", "Shiva", "Siddha", "Sadhya", "Shubha", "Shukla", "Brahma", "Indra", "Vaidhriti",
}

// Karanas holds the seven movable karanas followed by the four fixed ones.
var Karanas = [11]string{
	"Bava", "Balava", "Kaulava", "Taitila", "Gara", "Vanija", "Vishti",
	"Shakuni", "Chatushpada", "Nagava", "Kintughna",
}

const (
	tithiSpan     = 12.0
	karanaSpan    = 6.0
	movableCount  = 7
	firstFixedIdx = 57 // half-tithis 57-59 take Shakuni, Chatushpada, Nagava
	kintughnaIdx  = 10
)

// Calculate returns the Panchang for the weekday and sidereal longitudes.
func Calculate(weekday time.Weekday, sunLong, moonLong float64) Snapshot {
	elongation := zodiac.Normalize360(moonLong - sunLong)
	return Snapshot{
		Vara:      zodiac.Weekdays[int(weekday)%7],
		Tithi:     TithiName(TithiIndex(elongation)),
		Nakshatra: zodiac.Nakshatras[zodiac.NakshatraIndex(moonLong)],
		Yoga:      Yogas[zodiac.NakshatraIndex(sunLong+moonLong)],
		Karana:    KaranaName(KaranaIndex(elongation)),
	}
}

// TithiIndex is the lunar day (0-29) for a Moon-Sun elongation.
func TithiIndex(elongation float64) int {
	return clamp(int(math.Floor(zodiac.Normalize360(elongation)/tithiSpan)), 29)
}

// TithiName labels a tithi index within its paksha.
func TithiName(idx int) string {
	if idx < 15 {
		return fmt.Sprintf("Shukla %d", idx+1)
	}
	return fmt.Sprintf("Krishna %d", idx-14)
}

// KaranaIndex is the half-tithi (0-59) for a Moon-Sun elongation.
func KaranaIndex(elongation float64) int {
	return clamp(int(math.Floor(zodiac.Normalize360(elongation)/karanaSpan)), 59)
}

// KaranaName maps a half-tithi onto the karana table. Half-tithi 0 is
// Kintughna, 1-56 cycle through the movable karanas and 57-59 are the
// remaining fixed karanas.
func KaranaName(idx int) string {
	switch {
	case idx <= 0:
		return Karanas[kintughnaIdx]
	case idx >= firstFixedIdx:
		return Karanas[movableCount+clamp(idx-firstFixedIdx, 2)]
	default:
		return Karanas[(idx-1)%movableCount]
	}
}

func clamp(v, max int) int {
	if v < 0 {
		return 0
	}
	if v > max {
		return max
	}
	return v
}
