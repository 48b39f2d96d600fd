// Package horoscope produces the daily Moon transit reading for a sign.
package horoscope

import (
	"context"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/yanqian/kundli/internal/domain/sidereal"
	"github.com/yanqian/kundli/internal/domain/zodiac"
	apperrors "github.com/yanqian/kundli/pkg/errors"
	"github.com/yanqian/kundli/pkg/metrics"
	"github.com/yanqian/kundli/pkg/util"
)

const sourceAlgorithm = "Algorithm"

// Service exposes daily horoscopes.
type Service interface {
	Daily(ctx context.Context, req Request) (Response, error)
}

// Locator supplies sidereal longitudes; *sidereal.Engine implements it.
type Locator interface {
	Longitude(ctx context.Context, body zodiac.Planet, at sidereal.Instant) (float64, error)
}

type service struct {
	clock   sidereal.Clock
	locator Locator
	metrics *metrics.Registry
	logger  *slog.Logger
	now     func() time.Time
}

// NewService wires up the horoscope domain.
func NewService(clock sidereal.Clock, locator Locator, reg *metrics.Registry, logger *slog.Logger) Service {
	return &service{
		clock:   clock,
		locator: locator,
		metrics: reg,
		logger:  logger.With("component", "horoscope.service"),
		now:     util.NowUTC,
	}
}

func (s *service) Daily(ctx context.Context, req Request) (resp Response, err error) {
	defer func() { s.metrics.ObserveComputation("horoscope", err) }()

	if strings.TrimSpace(req.Sign) == "" {
		return Response{}, apperrors.Wrap(apperrors.CodeInvalidInput, "sign is required", nil)
	}
	userSign, ok := zodiac.ParseSign(req.Sign)
	if !ok {
		return Response{}, apperrors.Wrap(apperrors.CodeInvalidInput, "invalid zodiac sign", nil)
	}

	at, err := s.resolveInstant(req.Date)
	if err != nil {
		return Response{}, err
	}
	moon, err := s.locator.Longitude(ctx, zodiac.Moon, at)
	if err != nil {
		return Response{}, err
	}
	sun, err := s.locator.Longitude(ctx, zodiac.Sun, at)
	if err != nil {
		return Response{}, err
	}

	moonSign, sunSign := zodiac.SignIndex(moon), zodiac.SignIndex(sun)
	house := MoonHouse(userSign, moonSign)
	score := DailyScore(userSign, moonSign)
	s.logger.Debug("horoscope transit resolved", "sign", zodiac.Signs[userSign], "moon", zodiac.Signs[moonSign], "house", house)

	return Response{
		Sign:           zodiac.Signs[userSign],
		Date:           util.CivilDate(at.Time()),
		Prediction:     prediction(zodiac.Signs[moonSign], house, req.Category),
		LuckyColor:     "White",
		LuckyNumbers:   strconv.Itoa(score),
		LuckyAlphabets: "A, S",
		CosmicTip:      "Trust the timing of your life.",
		SingleTip:      "Love yourself first.",
		CoupleTip:      "Listen with your heart.",
		LuckyScore:     score,
		MoonSign:       zodiac.Signs[moonSign],
		SunSign:        zodiac.Signs[sunSign],
		MoonHouse:      house,
		Source:         sourceAlgorithm,
	}, nil
}

// resolveInstant reads the date at the default clock time, or uses the
// current moment when no date is given.
func (s *service) resolveInstant(date string) (sidereal.Instant, error) {
	if strings.TrimSpace(date) == "" {
		loc := s.clock.Location
		if loc == nil {
			loc = time.UTC
		}
		return sidereal.NewInstant(s.now().In(loc)), nil
	}
	return s.clock.Resolve(date, "", "")
}
