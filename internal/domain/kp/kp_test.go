package kp

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/yanqian/kundli/internal/domain/sidereal"
	"github.com/yanqian/kundli/internal/domain/zodiac"
)

func TestNakshatraLord(t *testing.T) {
	require.Equal(t, zodiac.Ketu, NakshatraLord(0))
	require.Equal(t, zodiac.Ketu, NakshatraLord(13))
	require.Equal(t, zodiac.Venus, NakshatraLord(14))
	require.Equal(t, zodiac.Moon, NakshatraLord(45))
	require.Equal(t, zodiac.Mercury, NakshatraLord(359.9))
}

func TestSubLordWalksFromStarLord(t *testing.T) {
	// Ashwini: Ketu owns the first 7/120 of the star (0.7778°), then Venus.
	require.Equal(t, zodiac.Ketu, SubLord(0))
	require.Equal(t, zodiac.Ketu, SubLord(0.7))
	require.Equal(t, zodiac.Venus, SubLord(1.0))
	// Rohini starts with its own lord, the Moon.
	require.Equal(t, zodiac.Moon, SubLord(40.1))
	// The last slice of Ashwini belongs to Mercury.
	require.Equal(t, zodiac.Mercury, SubLord(13.3))
}

func TestSubLordCoversEveryLordOnce(t *testing.T) {
	seen := map[zodiac.Planet]bool{}
	var order []zodiac.Planet
	for long := 80.005; long < 80+zodiac.NakshatraSpan; long += 0.01 {
		lord := SubLord(long)
		if !seen[lord] {
			seen[lord] = true
			order = append(order, lord)
		}
	}
	require.Equal(t, []zodiac.Planet{
		zodiac.Jupiter, zodiac.Saturn, zodiac.Mercury, zodiac.Ketu, zodiac.Venus,
		zodiac.Sun, zodiac.Moon, zodiac.Mars, zodiac.Rahu,
	}, order)
}

func TestCuspsAreEqualHouses(t *testing.T) {
	cusps := Cusps(350)
	require.Len(t, cusps, 12)

	require.Equal(t, 1, cusps[0].Cusp)
	require.Equal(t, "Pisces", cusps[0].Sign)
	require.Equal(t, "Ju", cusps[0].SignLord)
	require.Equal(t, "Me", cusps[0].StarLord)

	require.InDelta(t, 20.0, cusps[1].Longitude, 1e-9)
	require.Equal(t, "Aries", cusps[1].Sign)
	require.Equal(t, "Ma", cusps[1].SignLord)
	require.Equal(t, "Ve", cusps[1].StarLord)

	for i := 1; i < len(cusps); i++ {
		delta := zodiac.Normalize360(cusps[i].Longitude - cusps[i-1].Longitude)
		require.InDelta(t, 30.0, delta, 1e-9)
	}
}

func TestRulingPlanets(t *testing.T) {
	rp := Ruling(0, 40.1, time.Sunday)
	require.Equal(t, zodiac.Mars, rp.Ascendant.SignLord)
	require.Equal(t, zodiac.Ketu, rp.Ascendant.StarLord)
	require.Equal(t, zodiac.Ketu, rp.Ascendant.SubLord)
	require.Equal(t, zodiac.Venus, rp.Moon.SignLord)
	require.Equal(t, zodiac.Moon, rp.Moon.StarLord)
	require.Equal(t, zodiac.Sun, rp.DayLord)

	require.Equal(t, zodiac.Saturn, Ruling(0, 0, time.Saturday).DayLord)
}

func TestBhavChalitWrapsAroundZero(t *testing.T) {
	bodies := []sidereal.BodyPosition{
		sidereal.NewBodyPosition(zodiac.Sun, 5, false),
		sidereal.NewBodyPosition(zodiac.Moon, 349, false),
		sidereal.NewBodyPosition(zodiac.Mars, 350, false),
		sidereal.NewBodyPosition(zodiac.Saturn, 100, true),
	}
	houses := BhavChalit(350, bodies)
	require.Len(t, houses, 12)
	require.InDelta(t, 350.0, houses[0].Start, 1e-9)
	require.InDelta(t, 20.0, houses[0].End, 1e-9)

	require.Equal(t, []Occupant{{Name: "Su", Degree: 5}, {Name: "Ma", Degree: 20}}, houses[0].Planets)
	require.Equal(t, []Occupant{{Name: "Mo", Degree: 19}}, houses[11].Planets)
	require.Len(t, houses[3].Planets, 1)
	require.Equal(t, "Sa", houses[3].Planets[0].Name)

	total := 0
	for _, h := range houses {
		total += len(h.Planets)
	}
	require.Equal(t, len(bodies), total)
}

func TestPlanetRowsUseBhavChalitHouse(t *testing.T) {
	rows := Planets(350, []sidereal.BodyPosition{
		sidereal.NewBodyPosition(zodiac.Rahu, 5, true),
	})
	require.Equal(t, []PlanetRow{{
		Planet:   zodiac.Rahu,
		House:    1,
		Sign:     "Aries",
		SignLord: "Ma",
		StarLord: "Ke",
		SubLord:  "Ma",
	}}, rows)
}

func TestPlanetRowNamesBhavHouse(t *testing.T) {
	// 40° is Taurus, whole-sign house 3 from a Pisces Lagna at 350°, but only 50° past the Lagna: Bhav house 2.
	rows := Planets(350, []sidereal.BodyPosition{
		sidereal.NewBodyPosition(zodiac.Mars, 40, false),
	})
	require.Equal(t, 2, rows[0].House)

	raw, err := json.Marshal(rows[0])
	require.NoError(t, err)
	var fields map[string]any
	require.NoError(t, json.Unmarshal(raw, &fields))
	require.EqualValues(t, 2, fields["bhavHouse"])
	require.NotContains(t, fields, "house")
}
