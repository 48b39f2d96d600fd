// Package matchmaking scores Ashta-Koota (Guna Milan) compatibility between
// two natal Moons.
package matchmaking

import "github.com/yanqian/kundli/internal/domain/zodiac"

// MaxScore is the sum of all koota caps.
const MaxScore = 36.0

// Verdict thresholds on the total score.
const (
	ModerateThreshold = 18.0
	HighThreshold     = 25.0

	VerdictLow      = "Low Compatibility"
	VerdictModerate = "Moderately Compatible"
	VerdictHigh     = "Highly Compatible"
)

// varnas assigns each sign a pseudo varna rank.
var varnas = [12]int{0, 1, 2, 3, 0, 1, 2, 3, 0, 1, 2, 3}

// bhakootPoints is indexed by the sign distance girl-from-boy modulo 7.
var bhakootPoints = [7]float64{0, 7, 0, 0, 7, 0, 7}

type moon struct {
	nak  int
	sign int
}

func moonOf(long float64) moon {
	return moon{nak: zodiac.NakshatraIndex(long), sign: zodiac.SignIndex(long)}
}

// Score compares two sidereal Moon longitudes.
func Score(boyMoon, girlMoon float64) Result {
	boy, girl := moonOf(boyMoon), moonOf(girlMoon)
	details := []Koota{
		varna(boy, girl),
		vasya(boy, girl),
		tara(boy, girl),
		yoni(boy, girl),
		maitri(boy, girl),
		gana(boy, girl),
		bhakoot(boy, girl),
		nadi(boy, girl),
	}
	total := 0.0
	for _, k := range details {
		total += k.Score
	}
	return Result{
		TotalScore: total,
		MaxScore:   MaxScore,
		Details:    details,
		Verdict:    VerdictFor(total),
	}
}

// VerdictFor maps a total onto the three verdict bands.
func VerdictFor(total float64) string {
	switch {
	case total >= HighThreshold:
		return VerdictHigh
	case total >= ModerateThreshold:
		return VerdictModerate
	default:
		return VerdictLow
	}
}

func pick(name string, max float64, ok bool, otherwise float64) Koota {
	if ok {
		return Koota{Name: name, Score: max, Max: max}
	}
	return Koota{Name: name, Score: otherwise, Max: max}
}

func varna(boy, girl moon) Koota {
	return pick("Varna", 1, varnas[boy.sign] >= varnas[girl.sign], 0)
}

func vasya(boy, girl moon) Koota {
	return pick("Vasya", 2, boy.sign == girl.sign, 1)
}

func tara(boy, girl moon) Koota {
	count := (girl.nak - boy.nak + 27) % 9
	return pick("Tara", 3, count%3 == 0, 1.5)
}

func yoni(boy, girl moon) Koota {
	return pick("Yoni", 4, boy.nak%14 == girl.nak%14, 2)
}

func maitri(boy, girl moon) Koota {
	return pick("Maitri", 5, boy.sign == girl.sign, 3)
}

func gana(boy, girl moon) Koota {
	return pick("Gana", 6, boy.nak%3 == girl.nak%3, 3)
}

func bhakoot(boy, girl moon) Koota {
	dist := (girl.sign - boy.sign + 12) % 12
	return Koota{Name: "Bhakoot", Score: bhakootPoints[dist%7], Max: 7}
}

func nadi(boy, girl moon) Koota {
	return pick("Nadi", 8, boy.nak%3 != girl.nak%3, 0)
}
