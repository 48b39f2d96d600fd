// Package zodiac holds the read-only lookup tables shared by every chart
// engine: signs, sign lords, nakshatras, the Vimshottari lord cycle and the
// weekday lords. Nothing in this package is ever mutated after init.
package zodiac

// Planet names one of the nine classical grahas.
type Planet string

const (
	Sun     Planet = "Sun"
	Moon    Planet = "Moon"
	Mars    Planet = "Mars"
	Mercury Planet = "Mercury"
	Jupiter Planet = "Jupiter"
	Venus   Planet = "Venus"
	Saturn  Planet = "Saturn"
	Rahu    Planet = "Rahu"
	Ketu    Planet = "Ketu"
)

// Abbr returns the two letter abbreviation used in KP tables.
func (p Planet) Abbr() string {
	if abbr, ok := planetAbbr[p]; ok {
		return abbr
	}
	return string(p)
}

var planetAbbr = map[Planet]string{
	Sun:     "Su",
	Moon:    "Mo",
	Mars:    "Ma",
	Mercury: "Me",
	Jupiter: "Ju",
	Venus:   "Ve",
	Saturn:  "Sa",
	Rahu:    "Ra",
	Ketu:    "Ke",
}

// Planets lists the nine bodies in the order charts present them.
var Planets = [9]Planet{Sun, Moon, Mars, Mercury, Jupiter, Venus, Saturn, Rahu, Ketu}

// Signs are the twelve rashis starting at Aries.
var Signs = [12]string{
	"Aries", "Taurus", "Gemini", "Cancer", "Leo", "Virgo",
	"Libra", "Scorpio", "Sagittarius", "Capricorn", "Aquarius", "Pisces",
}

// SignLords maps a sign index to its ruling planet.
var SignLords = [12]Planet{
	Mars, Venus, Mercury, Moon, Sun, Mercury,
	Venus, Mars, Jupiter, Saturn, Saturn, Jupiter,
}

// Nakshatras are the 27 lunar mansions starting at Ashwini.
var Nakshatras = [27]string{
	"Ashwini", "Bharani", "Krittika", "Rohini", "Mrigashira", "Ardra", "Punarvasu", "Pushya", "Ashlesha",
	"Magha", "Purva Phalguni", "Uttara Phalguni", "Hasta", "Chitra", "Swati", "Vishakha", "Anuradha", "Jyeshtha",
	"Mula", "Purva Ashadha", "Uttara Ashadha", "Shravana", "Dhanishta", "Shatabhisha", "Purva Bhadrapada", "Uttara Bhadrapada", "Revati",
}

// NakshatraSpan is the width of one nakshatra (13°20′).
const NakshatraSpan = 360.0 / 27

// LordCycle is the Vimshottari order. Nakshatra i is ruled by LordCycle[i%9]
// and both the Vimshottari dasha and the KP sub division walk it cyclically.
var LordCycle = [9]Planet{Ketu, Venus, Sun, Moon, Mars, Rahu, Jupiter, Saturn, Mercury}

// VimshottariYears is each lord's Mahadasha length; the values sum to 120.
var VimshottariYears = map[Planet]float64{
	Ketu:    7,
	Venus:   20,
	Sun:     6,
	Moon:    10,
	Mars:    7,
	Rahu:    18,
	Jupiter: 16,
	Saturn:  19,
	Mercury: 17,
}

// VimshottariTotal is the length of the full cycle in years.
const VimshottariTotal = 120.0

// WeekdayLords is indexed by time.Weekday (Sunday = 0).
var WeekdayLords = [7]Planet{Sun, Moon, Mars, Mercury, Jupiter, Venus, Saturn}

// Weekdays is indexed by time.Weekday.
var Weekdays = [7]string{"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"}

// CycleIndex returns the position of p in LordCycle, or -1.
func CycleIndex(p Planet) int {
	for i, lord := range LordCycle {
		if lord == p {
			return i
		}
	}
	return -1
}
