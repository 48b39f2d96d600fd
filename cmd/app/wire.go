//go:build wireinject
// +build wireinject

package main

import (
	"github.com/google/wire"

	"github.com/yanqian/kundli/internal/bootstrap"
	"github.com/yanqian/kundli/internal/domain/chart"
	"github.com/yanqian/kundli/internal/domain/horoscope"
	"github.com/yanqian/kundli/internal/domain/matchmaking"
	"github.com/yanqian/kundli/internal/domain/sidereal"
	"github.com/yanqian/kundli/internal/infra/config"
	httpiface "github.com/yanqian/kundli/internal/interface/http"
	"github.com/yanqian/kundli/pkg/logger"
	"github.com/yanqian/kundli/pkg/metrics"
)

func initializeApp() (*bootstrap.App, error) {
	wire.Build(
		config.Load,
		logger.New,
		metrics.New,
		provideClock,
		provideEphemeris,
		sidereal.NewEngine,
		chart.NewService,
		matchmaking.NewService,
		horoscope.NewService,
		wire.Bind(new(chart.PositionEngine), new(*sidereal.Engine)),
		wire.Bind(new(matchmaking.MoonLocator), new(*sidereal.Engine)),
		wire.Bind(new(horoscope.Locator), new(*sidereal.Engine)),
		httpiface.NewHandler,
		httpiface.NewRouter,
		bootstrap.NewApp,
	)
	return nil, nil
}
