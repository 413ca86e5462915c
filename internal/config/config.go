package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"go.opentelemetry.io/otel/attribute"
)

// Config holds all configuration for the service.
type Config struct {
	// Server
	Port               int      `envconfig:"PORT" default:"3000"`
	LogLevel           string   `envconfig:"LOG_LEVEL" default:"info"`
	CORSAllowedOrigins []string `envconfig:"CORS_ALLOWED_ORIGINS" default:"zendesk.com,localhost,github.io"`

	// Shopify
	ShopifyStoreDomain string        `envconfig:"SHOPIFY_STORE_DOMAIN"`
	ShopifyAccessToken string        `envconfig:"SHOPIFY_ADMIN_ACCESS_TOKEN"`
	ShopifyAPIVersion  string        `envconfig:"SHOPIFY_API_VERSION" default:"2024-07"`
	ShopifyTimeout     time.Duration `envconfig:"SHOPIFY_TIMEOUT" default:"15s"`
	ShopifyUseMock     bool          `envconfig:"SHOPIFY_USE_MOCK" default:"false"`

	// Lookup
	EmailLookupLimit int `envconfig:"EMAIL_LOOKUP_LIMIT" default:"20"`

	// Telemetry
	OTELEnabled  bool   `envconfig:"OTEL_ENABLED" default:"false"`
	OTELEndpoint string `envconfig:"OTEL_ENDPOINT" default:"http://localhost:4318"`
	ServiceName  string `envconfig:"SERVICE_NAME" default:"order-tracker"`
	Version      string `envconfig:"SERVICE_VERSION" default:"0.0.1"`
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	if cfg.EmailLookupLimit <= 0 {
		return nil, fmt.Errorf("loading config: EMAIL_LOOKUP_LIMIT must be positive, got %d", cfg.EmailLookupLimit)
	}
	return &cfg, nil
}

// Mode reports which order backend the service talks to.
func (c *Config) Mode() string {
	if c.ShopifyUseMock {
		return "mock"
	}
	return "shopify"
}

// HasShopifyCredentials reports whether both the store domain and the access
// token are set.
func (c *Config) HasShopifyCredentials() bool {
	return strings.TrimSpace(c.ShopifyStoreDomain) != "" && strings.TrimSpace(c.ShopifyAccessToken) != ""
}

// Attributes returns OpenTelemetry attributes for this configuration.
func (c *Config) Attributes() []attribute.KeyValue {
	return []attribute.KeyValue{
		attribute.String("service.name", c.ServiceName),
		attribute.String("service.version", c.Version),
		attribute.String("ordertrack.mode", c.Mode()),
		attribute.String("shopify.api_version", c.ShopifyAPIVersion),
		attribute.String("shopify.store_domain", c.ShopifyStoreDomain),
	}
}
