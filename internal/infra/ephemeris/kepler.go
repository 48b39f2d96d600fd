// Package ephemeris provides tropical geocentric longitudes for the seven
// visible grahas and the caching layer in front of them.
package ephemeris

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/yanqian/kundli/internal/domain/sidereal"
	"github.com/yanqian/kundli/internal/domain/zodiac"
)

const (
	deg2rad = math.Pi / 180

	// unixEpochJD is the Julian day of 1970-01-01T00:00:00Z.
	unixEpochJD = 2440587.5
	// elementEpochJD is 1999-12-31T00:00:00Z, day zero of the element series.
	elementEpochJD = 2451543.5

	keplerTolerance  = 1e-12
	keplerIterations = 12
)

// linear is a + rate*d for d days past the element epoch.
type linear struct {
	base, rate float64
}

func (l linear) at(d float64) float64 {
	return l.base + l.rate*d
}

// orbitalElements are mean elements of date: ascending node, inclination,
// argument of perihelion, semi-major axis, eccentricity and mean anomaly.
type orbitalElements struct {
	node, incl, peri linear
	axis             float64
	ecc, anomaly     linear
}

type elementsOfDate struct {
	node, incl, peri, axis, ecc, anomaly float64
}

func (o orbitalElements) of(d float64) elementsOfDate {
	return elementsOfDate{
		node:    o.node.at(d),
		incl:    o.incl.at(d),
		peri:    o.peri.at(d),
		axis:    o.axis,
		ecc:     o.ecc.at(d),
		anomaly: o.anomaly.at(d),
	}
}

var elements = map[zodiac.Planet]orbitalElements{
	zodiac.Sun: {
		peri: linear{282.9404, 4.70935e-5}, axis: 1,
		ecc: linear{0.016709, -1.151e-9}, anomaly: linear{356.0470, 0.9856002585},
	},
	zodiac.Moon: {
		node: linear{125.1228, -0.0529538083}, incl: linear{5.1454, 0}, peri: linear{318.0634, 0.1643573223},
		axis: 60.2666, ecc: linear{0.054900, 0}, anomaly: linear{115.3654, 13.0649929509},
	},
	zodiac.Mercury: {
		node: linear{48.3313, 3.24587e-5}, incl: linear{7.0047, 5.00e-8}, peri: linear{29.1241, 1.01444e-5},
		axis: 0.387098, ecc: linear{0.205635, 5.59e-10}, anomaly: linear{168.6562, 4.0923344368},
	},
	zodiac.Venus: {
		node: linear{76.6799, 2.46590e-5}, incl: linear{3.3946, 2.75e-8}, peri: linear{54.8910, 1.38374e-5},
		axis: 0.723330, ecc: linear{0.006773, -1.302e-9}, anomaly: linear{48.0052, 1.6021302244},
	},
	zodiac.Mars: {
		node: linear{49.5574, 2.11081e-5}, incl: linear{1.8497, -1.78e-8}, peri: linear{286.5016, 2.92961e-5},
		axis: 1.523688, ecc: linear{0.093405, 2.516e-9}, anomaly: linear{18.6021, 0.5240207766},
	},
	zodiac.Jupiter: {
		node: linear{100.4542, 2.76854e-5}, incl: linear{1.3030, -1.557e-7}, peri: linear{273.8777, 1.64505e-5},
		axis: 5.20256, ecc: linear{0.048498, 4.469e-9}, anomaly: linear{19.8950, 0.0830853001},
	},
	zodiac.Saturn: {
		node: linear{113.6634, 2.38980e-5}, incl: linear{2.4886, -1.081e-7}, peri: linear{339.3939, 2.97661e-5},
		axis: 9.55475, ecc: linear{0.055546, -9.499e-9}, anomaly: linear{316.9670, 0.0334442282},
	},
}

// Kepler computes positions from mean orbital elements with the principal
// lunar and Jupiter/Saturn perturbations. Against Meeus' worked examples it
// lands within about 0.003° for the Sun and Venus and 0.02° for the Moon.
type Kepler struct{}

// NewKepler returns the built-in provider.
func NewKepler() *Kepler {
	return &Kepler{}
}

// TropicalLongitude implements sidereal.Ephemeris.
func (k *Kepler) TropicalLongitude(ctx context.Context, body zodiac.Planet, at time.Time) (float64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if _, ok := elements[body]; !ok {
		return 0, fmt.Errorf("ephemeris: unsupported body %q", body)
	}
	d := dayNumber(at)

	var long float64
	switch body {
	case zodiac.Sun:
		x, y, _ := heliocentric(elements[zodiac.Sun].of(d))
		long = math.Atan2(y, x) / deg2rad
	case zodiac.Moon:
		long = moonLongitude(d)
	default:
		long = planetLongitude(body, d)
	}
	if math.IsNaN(long) || math.IsInf(long, 0) {
		return 0, fmt.Errorf("ephemeris: non-finite longitude for %s at %s", body, at.Format(time.RFC3339))
	}
	return zodiac.Normalize360(long), nil
}

func dayNumber(at time.Time) float64 {
	secs := float64(at.Unix()) + float64(at.Nanosecond())/1e9
	return secs/86400 + unixEpochJD - elementEpochJD
}

// eccentricAnomaly solves M = E - e sin E by Newton iteration. M is in
// degrees, the result in radians.
func eccentricAnomaly(meanAnomaly, ecc float64) float64 {
	m := zodiac.Normalize360(meanAnomaly) * deg2rad
	e := m + ecc*math.Sin(m)*(1+ecc*math.Cos(m))
	for i := 0; i < keplerIterations; i++ {
		step := (e - ecc*math.Sin(e) - m) / (1 - ecc*math.Cos(e))
		e -= step
		if math.Abs(step) < keplerTolerance {
			break
		}
	}
	return e
}

// heliocentric returns ecliptic rectangular coordinates around the orbit's
// primary: the Sun for planets, the Earth for the Sun and the Moon.
func heliocentric(el elementsOfDate) (x, y, z float64) {
	ea := eccentricAnomaly(el.anomaly, el.ecc)
	xv := el.axis * (math.Cos(ea) - el.ecc)
	yv := el.axis * math.Sqrt(1-el.ecc*el.ecc) * math.Sin(ea)
	v := math.Atan2(yv, xv)
	r := math.Hypot(xv, yv)

	arg := v + el.peri*deg2rad
	node := el.node * deg2rad
	incl := el.incl * deg2rad
	x = r * (math.Cos(node)*math.Cos(arg) - math.Sin(node)*math.Sin(arg)*math.Cos(incl))
	y = r * (math.Sin(node)*math.Cos(arg) + math.Cos(node)*math.Sin(arg)*math.Cos(incl))
	z = r * math.Sin(arg) * math.Sin(incl)
	return x, y, z
}

func sind(deg float64) float64 { return math.Sin(deg * deg2rad) }
func cosd(deg float64) float64 { return math.Cos(deg * deg2rad) }

func moonLongitude(d float64) float64 {
	moon := elements[zodiac.Moon].of(d)
	sun := elements[zodiac.Sun].of(d)
	x, y, _ := heliocentric(moon)
	long := math.Atan2(y, x) / deg2rad

	ms, mm := sun.anomaly, moon.anomaly
	ls := ms + sun.peri
	lm := mm + moon.peri + moon.node
	elong := lm - ls
	arg := lm - moon.node

	long += -1.274*sind(mm-2*elong) + // evection
		0.658*sind(2*elong) + // variation
		-0.186*sind(ms) + // yearly equation
		-0.059*sind(2*mm-2*elong) +
		-0.057*sind(mm-2*elong+ms) +
		0.053*sind(mm+2*elong) +
		0.046*sind(2*elong-ms) +
		0.041*sind(mm-ms) +
		-0.035*sind(elong) + // parallactic equation
		-0.031*sind(mm+ms) +
		-0.015*sind(2*arg-2*elong) +
		0.011*sind(mm-4*elong)
	return long
}

func planetLongitude(body zodiac.Planet, d float64) float64 {
	x, y, z := heliocentric(elements[body].of(d))
	long := math.Atan2(y, x) / deg2rad
	lat := math.Atan2(z, math.Hypot(x, y))
	r := math.Sqrt(x*x + y*y + z*z)

	mj := elements[zodiac.Jupiter].of(d).anomaly
	msa := elements[zodiac.Saturn].of(d).anomaly
	switch body {
	case zodiac.Jupiter:
		long += -0.332*sind(2*mj-5*msa-67.6) +
			-0.056*sind(2*mj-2*msa+21) +
			0.042*sind(3*mj-5*msa+21) +
			-0.036*sind(mj-2*msa) +
			0.022*cosd(mj-msa) +
			0.023*sind(2*mj-3*msa+52) +
			-0.016*sind(mj-5*msa-69)
	case zodiac.Saturn:
		long += 0.812*sind(2*mj-5*msa-67.6) +
			-0.229*cosd(2*mj-4*msa-2) +
			0.119*sind(mj-2*msa-3) +
			0.046*sind(2*mj-6*msa-69) +
			0.014*sind(mj-3*msa+32)
	}

	x = r * math.Cos(long*deg2rad) * math.Cos(lat)
	y = r * math.Sin(long*deg2rad) * math.Cos(lat)
	sx, sy, _ := heliocentric(elements[zodiac.Sun].of(d))
	return math.Atan2(y+sy, x+sx) / deg2rad
}

var _ sidereal.Ephemeris = (*Kepler)(nil)
