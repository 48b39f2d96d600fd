package matchmaking

import (
	"context"
	"log/slog"
	"time"

	"github.com/yanqian/kundli/internal/domain/sidereal"
	"github.com/yanqian/kundli/internal/domain/zodiac"
	apperrors "github.com/yanqian/kundli/pkg/errors"
	"github.com/yanqian/kundli/pkg/metrics"
)

// Service resolves two birth moments and scores them.
type Service interface {
	Match(ctx context.Context, req Request) (Result, error)
}

// MoonLocator supplies sidereal longitudes; *sidereal.Engine implements it.
type MoonLocator interface {
	Longitude(ctx context.Context, body zodiac.Planet, at sidereal.Instant) (float64, error)
}

type service struct {
	clock   sidereal.Clock
	locator MoonLocator
	metrics *metrics.Registry
	logger  *slog.Logger
}

// NewService wires up the matchmaking domain.
func NewService(clock sidereal.Clock, locator MoonLocator, reg *metrics.Registry, logger *slog.Logger) Service {
	return &service{
		clock:   clock,
		locator: locator,
		metrics: reg,
		logger:  logger.With("component", "matchmaking.service"),
	}
}

func (s *service) Match(ctx context.Context, req Request) (res Result, err error) {
	defer func() { s.metrics.ObserveComputation("matchmaking", err) }()

	boy, err := s.moon(ctx, "boy", req.BoyDate, req.BoyTime, req.Timezone)
	if err != nil {
		return Result{}, err
	}
	girl, err := s.moon(ctx, "girl", req.GirlDate, req.GirlTime, req.Timezone)
	if err != nil {
		return Result{}, err
	}

	res = Score(boy.Longitude, girl.Longitude)
	res.Boy, res.Girl = &boy, &girl
	s.logger.Info("matchmaking scored", "total", res.TotalScore, "verdict", res.Verdict)
	return res, nil
}

func (s *service) moon(ctx context.Context, who, date, clock, zone string) (MoonSign, error) {
	if date == "" {
		return MoonSign{}, apperrors.Wrap(apperrors.CodeInvalidInput, who+" birth date is required", nil)
	}
	at, err := s.clock.Resolve(date, clock, zone)
	if err != nil {
		return MoonSign{}, err
	}
	long, err := s.locator.Longitude(ctx, zodiac.Moon, at)
	if err != nil {
		return MoonSign{}, err
	}
	s.logger.Debug("natal moon resolved", "who", who, "at", at.Time().Format(time.RFC3339), "longitude", long)
	return MoonSign{
		Longitude: long,
		Rashi:     zodiac.RashiOf(long),
		Nakshatra: zodiac.NakshatraOf(long),
	}, nil
}
