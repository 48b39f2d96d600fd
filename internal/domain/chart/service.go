// Package chart orchestrates a complete birth chart: positions, Lagna,
// divisional charts, dashas, Panchang and the KP tables.
package chart

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/yanqian/kundli/internal/domain/dasha"
	"github.com/yanqian/kundli/internal/domain/kp"
	"github.com/yanqian/kundli/internal/domain/panchang"
	"github.com/yanqian/kundli/internal/domain/sidereal"
	"github.com/yanqian/kundli/internal/domain/varga"
	"github.com/yanqian/kundli/internal/domain/zodiac"
	apperrors "github.com/yanqian/kundli/pkg/errors"
	"github.com/yanqian/kundli/pkg/metrics"
	"github.com/yanqian/kundli/pkg/util"
)

// Service computes birth charts.
type Service interface {
	Compute(ctx context.Context, req Request) (Response, error)
}

// PositionEngine supplies the nine sidereal grahas; *sidereal.Engine
// implements it.
type PositionEngine interface {
	Positions(ctx context.Context, at sidereal.Instant) (sidereal.Positions, error)
}

type service struct {
	clock   sidereal.Clock
	engine  PositionEngine
	metrics *metrics.Registry
	logger  *slog.Logger
}

// NewService wires up the chart domain.
func NewService(clock sidereal.Clock, engine PositionEngine, reg *metrics.Registry, logger *slog.Logger) Service {
	return &service{
		clock:   clock,
		engine:  engine,
		metrics: reg,
		logger:  logger.With("component", "chart.service"),
	}
}

func (s *service) Compute(ctx context.Context, req Request) (resp Response, err error) {
	started := time.Now()
	defer func() { s.metrics.ObserveComputation("chart", err) }()

	if req.Latitude == nil || req.Longitude == nil {
		return Response{}, apperrors.Wrap(apperrors.CodeInvalidInput, "latitude and longitude are required", nil)
	}
	geo := sidereal.GeoCoordinate{Latitude: float64(*req.Latitude), Longitude: float64(*req.Longitude)}
	if err := geo.Validate(); err != nil {
		return Response{}, err
	}
	at, err := s.clock.Resolve(req.Date, req.Time, req.Timezone)
	if err != nil {
		return Response{}, err
	}

	lagna, err := sidereal.Lagna(at, geo)
	if err != nil {
		return Response{}, err
	}
	positions, err := s.engine.Positions(ctx, at)
	if err != nil {
		s.logger.Warn("planetary positions failed", "error", err)
		return Response{}, err
	}
	moon, okMoon := positions[zodiac.Moon]
	sun, okSun := positions[zodiac.Sun]
	if !okMoon || !okSun || len(positions) != len(zodiac.Planets) {
		return Response{}, apperrors.Wrap(apperrors.CodeInternalInconsistency,
			fmt.Sprintf("expected %d bodies, got %d", len(zodiac.Planets), len(positions)), nil)
	}

	dashas, err := dasha.Calculate(moon.Longitude, at.Time())
	if err != nil {
		return Response{}, err
	}

	bodies := positions.Ordered()
	points := varga.Points(lagna, bodies)
	ayanamsa := sidereal.Ayanamsa(at)

	resp = Response{
		Metadata: Metadata{
			Name:     req.Name,
			Date:     at.Time().UTC().Format(time.RFC3339),
			Location: geo,
			Ayanamsa: fmt.Sprintf("%.4f", ayanamsa),
		},
		BasicDetails: BasicDetails{
			Name:      req.Name,
			Date:      util.CivilDate(at.Time()),
			Time:      util.CivilClock(at.Time()),
			Place:     placeLabel(req.City, geo),
			Latitude:  geo.Latitude,
			Longitude: geo.Longitude,
			Timezone:  zoneLabel(at.Time()),
			Ayanamsha: fmt.Sprintf("%.6f", ayanamsa),
		},
		Lagna:         zodiac.RashiOf(lagna),
		Ascendant:     sidereal.NewBodyPosition(zodiac.Planet(varga.AscendantName), lagna, false),
		Planets:       positions,
		Dashas:        dashas,
		Panchang:      panchang.Calculate(at.Weekday(), sun.Longitude, moon.Longitude),
		Vargas:        varga.BuildAll(lagna, points),
		ChandraHouses: varga.CalculateHouses(moon.Rashi.Index, points, 1),
		SuryaHouses:   varga.CalculateHouses(sun.Rashi.Index, points, 1),
		KP: KP{
			Cusps:         kp.Cusps(lagna),
			Planets:       kp.Planets(lagna, bodies),
			RulingPlanets: kp.Ruling(lagna, moon.Longitude, at.Weekday()),
			BhavChalit:    kp.BhavChalit(lagna, bodies),
		},
	}

	s.logger.Info("chart computed",
		"lagna", resp.Lagna.Name,
		"moon", moon.Rashi.Name,
		"latency_ms", time.Since(started).Milliseconds(),
	)
	return resp, nil
}

func placeLabel(city string, geo sidereal.GeoCoordinate) string {
	if city != "" {
		return city
	}
	return fmt.Sprintf("%.2f, %.2f", geo.Latitude, geo.Longitude)
}

// zoneLabel renders the UTC offset in effect at t as GMT+hh:mm.
func zoneLabel(t time.Time) string {
	_, offset := t.Zone()
	sign := '+'
	if offset < 0 {
		sign = '-'
		offset = -offset
	}
	return fmt.Sprintf("GMT%c%02d:%02d", sign, offset/3600, offset%3600/60)
}
