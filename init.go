package main

import (
	"context"

	"github.com/tournevent/ordertrack/internal/config"
	"github.com/tournevent/ordertrack/internal/telemetry"
	"github.com/tournevent/ordertrack/pkg/orders"
	"github.com/tournevent/ordertrack/pkg/orders/shopify"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.opentelemetry.io/otel"
)

func loadConfig() (*config.Config, error) {
	return config.Load()
}

func initLogger(cfg *config.Config) (*otelzap.Logger, error) {
	return telemetry.NewLogger(cfg.LogLevel, cfg.ServiceName)
}

func initTracer(ctx context.Context, cfg *config.Config) (func(context.Context) error, error) {
	if !cfg.OTELEnabled {
		return func(context.Context) error { return nil }, nil
	}

	_, shutdown, err := telemetry.InitTracer(ctx, cfg.OTELEndpoint, cfg.Attributes()...)
	return shutdown, err
}

func initPipeline(cfg *config.Config, logger *otelzap.Logger) *orders.Pipeline {
	provider := shopify.New(shopify.Config{
		StoreDomain: cfg.ShopifyStoreDomain,
		AccessToken: cfg.ShopifyAccessToken,
		APIVersion:  cfg.ShopifyAPIVersion,
		Timeout:     cfg.ShopifyTimeout,
		UseMock:     cfg.ShopifyUseMock,
	}, logger, otel.Tracer(cfg.ServiceName))

	return orders.NewPipeline(provider, logger, orders.WithEmailLimit(cfg.EmailLookupLimit))
}
