package main

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/valkey-io/valkey-go"

	"github.com/yanqian/kundli/internal/domain/sidereal"
	"github.com/yanqian/kundli/internal/infra/config"
	"github.com/yanqian/kundli/internal/infra/ephemeris"
	"github.com/yanqian/kundli/pkg/metrics"
)

func provideClock(cfg *config.Config) (sidereal.Clock, error) {
	return sidereal.NewClock(cfg.Chart.DefaultTime, cfg.Chart.Timezone)
}

func provideEphemeris(cfg *config.Config, reg *metrics.Registry, logger *slog.Logger) (sidereal.Ephemeris, error) {
	var provider sidereal.Ephemeris
	switch cfg.Ephemeris.Provider {
	case config.ProviderKepler:
		provider = ephemeris.NewKepler()
	default:
		provider = ephemeris.NewMeeus(ephemeris.NewKepler())
	}
	logger.Info("ephemeris provider selected", "provider", cfg.Ephemeris.Provider)
	cacheCfg := cfg.Ephemeris.Cache
	if !cacheCfg.Enabled {
		logger.Info("ephemeris cache disabled")
		return provider, nil
	}
	store, err := provideEphemerisStore(cfg, logger)
	if err != nil {
		return nil, err
	}
	return ephemeris.NewCached(provider, store, cacheCfg.TTL, reg, logger), nil
}

func provideEphemerisStore(cfg *config.Config, logger *slog.Logger) (ephemeris.Store, error) {
	cacheCfg := cfg.Ephemeris.Cache
	if cacheCfg.Valkey.Enabled {
		opt, err := buildValkeyOptions(cacheCfg.Valkey.Addr)
		if err != nil {
			logger.Error("invalid valkey configuration, falling back to memory store", "error", err)
			return ephemeris.NewMemoryStore(cacheCfg.Size)
		}
		client, err := valkey.NewClient(opt)
		if err != nil {
			logger.Error("failed to create valkey client, falling back to memory store", "error", err)
			return ephemeris.NewMemoryStore(cacheCfg.Size)
		}
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := client.Do(ctx, client.B().Ping().Build()).Error(); err != nil {
			logger.Error("valkey ping failed, falling back to memory store", "error", err)
			client.Close()
		} else {
			logger.Info("ephemeris valkey store enabled", "addr", cacheCfg.Valkey.Addr)
			return ephemeris.NewValkeyStore(client, cacheCfg.Valkey.Prefix), nil
		}
	}
	logger.Info("ephemeris memory store enabled", "size", cacheCfg.Size)
	return ephemeris.NewMemoryStore(cacheCfg.Size)
}

func buildValkeyOptions(addr string) (valkey.ClientOption, error) {
	if strings.Contains(addr, "://") {
		return valkey.ParseURL(addr)
	}
	return valkey.ClientOption{InitAddress: []string{addr}}, nil
}
