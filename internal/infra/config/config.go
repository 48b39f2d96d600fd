package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata"

	"gopkg.in/yaml.v3"
)

// Config aggregates runtime configuration used across the service.
type Config struct {
	HTTP      HTTPConfig      `yaml:"http"`
	Chart     ChartConfig     `yaml:"chart"`
	Ephemeris EphemerisConfig `yaml:"ephemeris"`
	Metrics   MetricsConfig   `yaml:"metrics"`
}

// HTTPConfig controls server level behavior.
type HTTPConfig struct {
	Address        string          `yaml:"address"`
	ReadTimeout    time.Duration   `yaml:"readTimeout"`
	WriteTimeout   time.Duration   `yaml:"writeTimeout"`
	ShutdownGrace  time.Duration   `yaml:"shutdownGrace"`
	AllowedOrigins []string        `yaml:"allowedOrigins"`
	RateLimit      RateLimitConfig `yaml:"rateLimit"`
}

// RateLimitConfig drives the request limiting middleware.
type RateLimitConfig struct {
	Enabled           bool `yaml:"enabled"`
	RequestsPerMinute int  `yaml:"requestsPerMinute"`
	Burst             int  `yaml:"burst"`
}

// ChartConfig fills in birth data a request leaves out.
type ChartConfig struct {
	DefaultTime string `yaml:"defaultTime"`
	Timezone    string `yaml:"timezone"`
}

// EphemerisConfig controls the planetary position provider.
type EphemerisConfig struct {
	// Provider is "meeus" (Sun and Moon from Meeus, planets from Kepler
	// elements) or "kepler" (elements only).
	Provider string      `yaml:"provider"`
	Cache    CacheConfig `yaml:"cache"`
}

// Ephemeris provider names.
const (
	ProviderMeeus  = "meeus"
	ProviderKepler = "kepler"
)

// CacheConfig sizes the longitude cache.
type CacheConfig struct {
	Enabled bool          `yaml:"enabled"`
	Size    int           `yaml:"size"`
	TTL     time.Duration `yaml:"ttl"`
	Valkey  ValkeyConfig  `yaml:"valkey"`
}

// ValkeyConfig contains connection information for the shared cache.
type ValkeyConfig struct {
	Enabled bool   `yaml:"enabled"`
	Addr    string `yaml:"addr"`
	Prefix  string `yaml:"prefix"`
}

// MetricsConfig exposes the Prometheus endpoint.
type MetricsConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"`
}

// Load reads configuration from a YAML file and environment variables.
func Load() (*Config, error) {
	cfg := defaultConfig()

	if path := os.Getenv("CONFIG_PATH"); path != "" {
		if err := hydrateFromFile(cfg, path); err != nil {
			return nil, err
		}
	} else if _, err := os.Stat("configs/config.yaml"); err == nil {
		if err := hydrateFromFile(cfg, "configs/config.yaml"); err != nil {
			return nil, err
		}
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

func hydrateFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("HTTP_ADDRESS"); v != "" {
		cfg.HTTP.Address = v
	}
	if v := os.Getenv("HTTP_SHUTDOWN_GRACE"); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			cfg.HTTP.ShutdownGrace = parsed
		}
	}
	if v := os.Getenv("HTTP_ALLOWED_ORIGINS"); v != "" {
		cfg.HTTP.AllowedOrigins = splitList(v)
	}
	if v := os.Getenv("HTTP_RATE_LIMIT_ENABLED"); v != "" {
		cfg.HTTP.RateLimit.Enabled = parseBool(v)
	}
	if v := os.Getenv("HTTP_RATE_LIMIT_RPM"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.HTTP.RateLimit.RequestsPerMinute = parsed
		}
	}
	if v := os.Getenv("HTTP_RATE_LIMIT_BURST"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.HTTP.RateLimit.Burst = parsed
		}
	}
	if v := os.Getenv("CHART_DEFAULT_TIME"); v != "" {
		cfg.Chart.DefaultTime = v
	}
	if v := os.Getenv("CHART_TIMEZONE"); v != "" {
		cfg.Chart.Timezone = v
	}
	if v := os.Getenv("EPHEMERIS_PROVIDER"); v != "" {
		cfg.Ephemeris.Provider = strings.ToLower(strings.TrimSpace(v))
	}
	if v := os.Getenv("EPHEMERIS_CACHE_ENABLED"); v != "" {
		cfg.Ephemeris.Cache.Enabled = parseBool(v)
	}
	if v := os.Getenv("EPHEMERIS_CACHE_SIZE"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.Ephemeris.Cache.Size = parsed
		}
	}
	if v := os.Getenv("EPHEMERIS_CACHE_TTL"); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			cfg.Ephemeris.Cache.TTL = parsed
		}
	}
	if v := os.Getenv("EPHEMERIS_VALKEY_ENABLED"); v != "" {
		cfg.Ephemeris.Cache.Valkey.Enabled = parseBool(v)
	}
	if v := os.Getenv("EPHEMERIS_VALKEY_ADDR"); v != "" {
		cfg.Ephemeris.Cache.Valkey.Addr = v
	}
	if v := os.Getenv("EPHEMERIS_VALKEY_PREFIX"); v != "" {
		cfg.Ephemeris.Cache.Valkey.Prefix = v
	}
	if v := os.Getenv("METRICS_ENABLED"); v != "" {
		cfg.Metrics.Enabled = parseBool(v)
	}
	if v := os.Getenv("METRICS_PATH"); v != "" {
		cfg.Metrics.Path = v
	}
}

func parseBool(v string) bool {
	return v == "1" || strings.EqualFold(v, "true")
}

func splitList(v string) []string {
	var out []string
	for _, item := range strings.Split(v, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

func defaultConfig() *Config {
	return &Config{
		HTTP: HTTPConfig{
			Address:        ":8080",
			ReadTimeout:    5 * time.Second,
			WriteTimeout:   10 * time.Second,
			ShutdownGrace:  10 * time.Second,
			AllowedOrigins: []string{"*"},
			RateLimit: RateLimitConfig{
				Enabled:           true,
				RequestsPerMinute: 120,
				Burst:             30,
			},
		},
		Chart: ChartConfig{
			DefaultTime: "12:00:00",
			Timezone:    "Asia/Kolkata",
		},
		Ephemeris: EphemerisConfig{
			Provider: ProviderMeeus,
			Cache: CacheConfig{
				Enabled: true,
				Size:    4096,
				TTL:     24 * time.Hour,
				Valkey: ValkeyConfig{
					Enabled: false,
					Prefix:  "kundli:ephemeris",
				},
			},
		},
		Metrics: MetricsConfig{
			Enabled: true,
			Path:    "/metrics",
		},
	}
}

// Validate ensures the configuration is safe to use.
func (c *Config) Validate() error {
	if c.HTTP.Address == "" {
		return errors.New("http.address cannot be empty")
	}
	if c.HTTP.ShutdownGrace <= 0 {
		return errors.New("http.shutdownGrace must be positive")
	}
	if c.HTTP.RateLimit.Enabled {
		if c.HTTP.RateLimit.RequestsPerMinute <= 0 {
			return errors.New("http.rateLimit.requestsPerMinute must be positive")
		}
		if c.HTTP.RateLimit.Burst <= 0 {
			return errors.New("http.rateLimit.burst must be positive")
		}
	}
	if strings.TrimSpace(c.Chart.DefaultTime) == "" {
		return errors.New("chart.defaultTime cannot be empty")
	}
	if _, err := time.LoadLocation(strings.TrimSpace(c.Chart.Timezone)); err != nil {
		return fmt.Errorf("chart.timezone: %w", err)
	}
	switch c.Ephemeris.Provider {
	case ProviderMeeus, ProviderKepler:
	default:
		return fmt.Errorf("ephemeris.provider %q must be %q or %q", c.Ephemeris.Provider, ProviderMeeus, ProviderKepler)
	}
	if c.Ephemeris.Cache.Enabled && c.Ephemeris.Cache.Size <= 0 {
		return errors.New("ephemeris.cache.size must be positive when the cache is enabled")
	}
	if c.Ephemeris.Cache.TTL < 0 {
		return errors.New("ephemeris.cache.ttl cannot be negative")
	}
	if c.Ephemeris.Cache.Valkey.Enabled && strings.TrimSpace(c.Ephemeris.Cache.Valkey.Addr) == "" {
		return errors.New("ephemeris.cache.valkey.addr cannot be empty when valkey is enabled")
	}
	if c.Metrics.Enabled && !strings.HasPrefix(c.Metrics.Path, "/") {
		return errors.New("metrics.path must start with /")
	}
	return nil
}
