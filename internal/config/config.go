package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/tournevent/rateshop/pkg/carrier/factory"
	"go.opentelemetry.io/otel/attribute"
)

// Config holds all configuration for the service.
type Config struct {
	// Server
	Port     int    `envconfig:"PORT" default:"8080"`
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`

	// UPS
	UPSClientID           string        `envconfig:"UPS_CLIENT_ID"`
	UPSClientSecret       string        `envconfig:"UPS_CLIENT_SECRET"`
	UPSBaseURL            string        `envconfig:"UPS_BASE_URL" default:"https://onlinetools.ups.com"`
	UPSHTTPTimeout        time.Duration `envconfig:"UPS_HTTP_TIMEOUT" default:"30s"`
	UPSTokenRefreshBuffer time.Duration `envconfig:"UPS_TOKEN_REFRESH_BUFFER" default:"60s"`
	UPSEnabled            bool          `envconfig:"UPS_ENABLED" default:"true"`
	UPSUseMock            bool          `envconfig:"UPS_USE_MOCK" default:"false"`

	// Telemetry
	OTELEnabled  bool   `envconfig:"OTEL_ENABLED" default:"true"`
	OTELEndpoint string `envconfig:"OTEL_ENDPOINT" default:"http://localhost:4318"`
	ServiceName  string `envconfig:"SERVICE_NAME" default:"rateshop"`
	Version      string `envconfig:"SERVICE_VERSION" default:"0.0.1"`
}

// Load reads configuration from environment variables and rejects
// configurations that cannot produce a working carrier set.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	if cfg.UPSEnabled && !cfg.UPSUseMock {
		if cfg.UPSClientID == "" || cfg.UPSClientSecret == "" {
			return nil, fmt.Errorf("UPS_CLIENT_ID and UPS_CLIENT_SECRET are required when UPS is enabled")
		}
	}

	return &cfg, nil
}

// Carriers returns the factory configuration blocks for every enabled
// carrier. Disabled carriers have no block and are skipped by the factory.
func (c *Config) Carriers() map[string]factory.BackendConfig {
	cfgs := make(map[string]factory.BackendConfig)
	if c.UPSEnabled {
		cfgs["ups"] = factory.BackendConfig{
			ClientID:           c.UPSClientID,
			ClientSecret:       c.UPSClientSecret,
			BaseURL:            c.UPSBaseURL,
			HTTPTimeout:        c.UPSHTTPTimeout,
			TokenRefreshBuffer: c.UPSTokenRefreshBuffer,
			UseMock:            c.UPSUseMock,
		}
	}
	return cfgs
}

// Attributes returns OpenTelemetry attributes for this configuration.
func (c *Config) Attributes() []attribute.KeyValue {
	return []attribute.KeyValue{
		attribute.String("service.name", c.ServiceName),
		attribute.String("service.version", c.Version),
		attribute.Bool("ups.enabled", c.UPSEnabled),
	}
}
