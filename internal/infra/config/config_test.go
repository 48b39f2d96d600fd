package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("CONFIG_PATH", filepath.Join(t.TempDir(), "absent.yaml"))
	_, err := Load()
	require.Error(t, err)

	cfg := defaultConfig()
	require.NoError(t, cfg.Validate())
	require.Equal(t, "12:00:00", cfg.Chart.DefaultTime)
	require.Equal(t, "Asia/Kolkata", cfg.Chart.Timezone)
	require.Equal(t, "/metrics", cfg.Metrics.Path)
	require.Equal(t, ProviderMeeus, cfg.Ephemeris.Provider)
}

func TestLoadFileThenEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
http:
  address: ":9090"
  allowedOrigins: ["https://kundli.example"]
chart:
  timezone: "UTC"
ephemeris:
  cache:
    size: 128
    ttl: 1h
`), 0o600))
	t.Setenv("CONFIG_PATH", path)
	t.Setenv("CHART_DEFAULT_TIME", "06:00")
	t.Setenv("HTTP_RATE_LIMIT_RPM", "30")
	t.Setenv("HTTP_SHUTDOWN_GRACE", "3s")
	t.Setenv("EPHEMERIS_PROVIDER", " Kepler ")
	t.Setenv("EPHEMERIS_VALKEY_ENABLED", "true")
	t.Setenv("EPHEMERIS_VALKEY_ADDR", "localhost:6379")
	t.Setenv("HTTP_ALLOWED_ORIGINS", "https://a.example, https://b.example")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, ":9090", cfg.HTTP.Address)
	require.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.HTTP.AllowedOrigins)
	require.Equal(t, "UTC", cfg.Chart.Timezone)
	require.Equal(t, "06:00", cfg.Chart.DefaultTime)
	require.Equal(t, 30, cfg.HTTP.RateLimit.RequestsPerMinute)
	require.Equal(t, 3*time.Second, cfg.HTTP.ShutdownGrace)
	require.Equal(t, ProviderKepler, cfg.Ephemeris.Provider)
	require.Equal(t, 128, cfg.Ephemeris.Cache.Size)
	require.Equal(t, time.Hour, cfg.Ephemeris.Cache.TTL)
	require.True(t, cfg.Ephemeris.Cache.Valkey.Enabled)
	require.Equal(t, "kundli:ephemeris", cfg.Ephemeris.Cache.Valkey.Prefix)
}

func TestValidateRejectsBadValues(t *testing.T) {
	cases := map[string]func(*Config){
		"empty address":   func(c *Config) { c.HTTP.Address = "" },
		"zero rpm":        func(c *Config) { c.HTTP.RateLimit.RequestsPerMinute = 0 },
		"zero grace":      func(c *Config) { c.HTTP.ShutdownGrace = 0 },
		"unknown zone":    func(c *Config) { c.Chart.Timezone = "Atlantis/Capital" },
		"zero cache size": func(c *Config) { c.Ephemeris.Cache.Size = 0 },
		"provider":        func(c *Config) { c.Ephemeris.Provider = "swisseph" },
		"valkey no addr":  func(c *Config) { c.Ephemeris.Cache.Valkey.Enabled = true },
		"metrics path":    func(c *Config) { c.Metrics.Path = "metrics" },
	}
	for name, mutate := range cases {
		cfg := defaultConfig()
		mutate(cfg)
		require.Error(t, cfg.Validate(), name)
	}
}
