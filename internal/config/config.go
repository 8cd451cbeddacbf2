package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"
)

// Global singleton so legacy call sites can reach the active configuration.
var globalConfig *Config

// Config holds all environment backed configuration for catalog-api.
type Config struct {
	// HTTP Server
	HTTPPort    int           `env:"HTTP_PORT" envDefault:"8080"`
	MetricsPort int           `env:"METRICS_PORT" envDefault:"9091"`
	HTTPTimeout time.Duration `env:"HTTP_TIMEOUT" envDefault:"30s"`

	// PostgreSQL
	DatabaseURL     string `env:"DATABASE_URL,notEmpty"`
	DatabaseURLRead string `env:"DATABASE_URL_READ"`

	// Shared secrets
	AdminSecret   string `env:"ADMIN_SECRET"`
	RefreshAPIKey string `env:"REFRESH_API_KEY"`
	DemoAPIKey    string `env:"DEMO_API_KEY"`

	// Upstream catalog source
	OpenRouterBaseURL  string             `env:"OPENROUTER_BASE_URL" envDefault:"https://openrouter.ai/api/v1"`
	OpenRouterAPIKey   string             `env:"OPENROUTER_API_KEY"`
	UpstreamTimeout    time.Duration      `env:"UPSTREAM_TIMEOUT" envDefault:"8s"`
	UpstreamConfigFile string             `env:"UPSTREAM_CONFIG_FILE"`
	Upstream           *UpstreamBootstrap `env:"-"`

	// Catalog sync
	SyncEnabled           bool          `env:"MODEL_SYNC_ENABLED" envDefault:"true"`
	SyncIntervalMinutes   int           `env:"MODEL_SYNC_INTERVAL_MINUTES" envDefault:"15"`
	StaleAfter            time.Duration `env:"STALE_AFTER" envDefault:"15m"`
	CriticalStaleAfter    time.Duration `env:"CRITICAL_STALE_AFTER" envDefault:"2h"`
	DeactivationSafetyPct float64       `env:"DEACTIVATION_SAFETY_PCT" envDefault:"0.5"`

	// Rate limiting (best effort, per instance)
	RateLimitPerMinute float64 `env:"RATE_LIMIT_PER_MINUTE" envDefault:"60"`

	// Retention
	FeedbackRetentionDays   int `env:"FEEDBACK_RETENTION_DAYS" envDefault:"90"`
	RequestLogRetentionDays int `env:"REQUEST_LOG_RETENTION_DAYS" envDefault:"30"`

	// Demo probe
	DemoModel    string        `env:"DEMO_MODEL"`
	DemoCacheTTL time.Duration `env:"DEMO_CACHE_TTL" envDefault:"5m"`

	// Observability / Logging
	OTLPEndpoint     string `env:"OTEL_EXPORTER_OTLP_ENDPOINT"`
	OTLPHeaders      string `env:"OTEL_EXPORTER_OTLP_HEADERS"`
	ServiceName      string `env:"SERVICE_NAME" envDefault:"catalog-api"`
	ServiceNamespace string `env:"SERVICE_NAMESPACE" envDefault:"freemodels"`
	Environment      string `env:"ENVIRONMENT" envDefault:"development"`
	LogLevel         string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat        string `env:"LOG_FORMAT" envDefault:"console"`

	// Features
	AutoMigrate   bool `env:"AUTO_MIGRATE" envDefault:"true"`
	EnableSwagger bool `env:"ENABLE_SWAGGER" envDefault:"true"`

	// Internal
	EnvReloadedAt time.Time
}

// Load parses environment variables into Config and performs minimal validation.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	if _, err := url.ParseRequestURI(cfg.OpenRouterBaseURL); err != nil {
		return nil, fmt.Errorf("invalid OPENROUTER_BASE_URL: %w", err)
	}

	if cfg.StaleAfter <= 0 {
		return nil, errors.New("STALE_AFTER must be positive")
	}
	if cfg.CriticalStaleAfter < cfg.StaleAfter {
		return nil, errors.New("CRITICAL_STALE_AFTER must not be shorter than STALE_AFTER")
	}
	if cfg.DeactivationSafetyPct < 0 || cfg.DeactivationSafetyPct > 1 {
		return nil, errors.New("DEACTIVATION_SAFETY_PCT must be within [0,1]")
	}

	if file := strings.TrimSpace(cfg.UpstreamConfigFile); file != "" {
		upstream, err := LoadUpstreamBootstrap(file)
		if err != nil {
			return nil, fmt.Errorf("load upstream config: %w", err)
		}
		cfg.Upstream = upstream
	}

	cfg.LogLevel = strings.ToLower(cfg.LogLevel)
	cfg.LogFormat = strings.ToLower(cfg.LogFormat)
	cfg.EnvReloadedAt = time.Now()

	globalConfig = cfg

	return cfg, nil
}

// GetGlobal returns the global config instance for backwards compatibility.
// Deprecated: Use dependency injection with Load() instead.
func GetGlobal() *Config {
	return globalConfig
}

var Version = "dev"

func IsDev() bool {
	return strings.HasPrefix(Version, "dev")
}
