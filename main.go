package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/tournevent/ordertrack/internal/server"
	"github.com/tournevent/ordertrack/pkg/orders"
	"go.uber.org/zap"
)

var version = "0.0.1"

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(),
		syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:     "ordertrack",
	Short:   "Order Tracker - resolves order names and emails into shipment tracking links",
	Version: version,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	RunE:  runServe,
}

var lookupEmail string

var lookupCmd = &cobra.Command{
	Use:   "lookup [order names...]",
	Short: "Resolve tracking links for orders and print them as JSON",
	Example: `  ordertrack lookup 1042 "#1043"
  ordertrack lookup --email jane@example.com`,
	RunE: runLookup,
}

func init() {
	lookupCmd.Flags().StringVar(&lookupEmail, "email", "", "list the orders placed with this email instead")
	rootCmd.AddCommand(serveCmd, lookupCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	logger, err := initLogger(cfg)
	if err != nil {
		return err
	}
	defer logger.Sync()

	tracerShutdown, err := initTracer(ctx, cfg)
	if err != nil {
		logger.Warn("Failed to initialize tracer", zap.Error(err))
	} else {
		defer tracerShutdown(context.Background())
	}

	if !cfg.ShopifyUseMock && !cfg.HasShopifyCredentials() {
		logger.Warn("Shopify credentials are not set; lookups will fail until SHOPIFY_STORE_DOMAIN and SHOPIFY_ADMIN_ACCESS_TOKEN are provided")
	}

	pipeline := initPipeline(cfg, logger)

	logger.Info("Starting Order Tracker",
		zap.Int("port", cfg.Port),
		zap.String("mode", cfg.Mode()),
		zap.String("version", cfg.Version),
	)

	srv := server.New(server.Config{
		Port:           cfg.Port,
		AllowedOrigins: cfg.CORSAllowedOrigins,
		Mode:           cfg.Mode(),
	}, pipeline, logger)
	if err := srv.Run(ctx); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

func runLookup(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	if lookupEmail == "" && len(args) == 0 {
		return orders.ErrInvalidInput
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	// stdout carries the JSON result; only errors are logged.
	cfg.LogLevel = "error"
	logger, err := initLogger(cfg)
	if err != nil {
		return err
	}
	defer logger.Sync()

	pipeline := initPipeline(cfg, logger)

	var result any
	if lookupEmail != "" {
		result, err = pipeline.LookupByEmail(ctx, lookupEmail)
	} else {
		result, err = pipeline.LookupByOrderNames(ctx, args)
	}
	if err != nil {
		if errors.Is(err, orders.ErrInvalidInput) {
			return err
		}
		return fmt.Errorf("lookup failed: %w", err)
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}
