package api

import (
	"context"
	"errors"
	"time"

	"github.com/tournevent/ordertrack/internal/telemetry"
	"github.com/tournevent/ordertrack/pkg/orders"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"
)

// Resolver answers the HTTP boundary's queries.
// It holds dependencies needed by all handlers.
type Resolver struct {
	Pipeline *orders.Pipeline
	Logger   *otelzap.Logger
	Metrics  *telemetry.Metrics
	Mode     string
}

// NewResolver creates a new resolver with the given dependencies.
func NewResolver(pipeline *orders.Pipeline, logger *otelzap.Logger, metrics *telemetry.Metrics, mode string) *Resolver {
	return &Resolver{
		Pipeline: pipeline,
		Logger:   logger,
		Metrics:  metrics,
		Mode:     mode,
	}
}

// OrderLinks resolves a single order name into its tracking links.
func (r *Resolver) OrderLinks(ctx context.Context, orderName string) (*OrderLinks, error) {
	start := time.Now()
	summary, err := r.Pipeline.LookupByOrderName(ctx, orderName)
	r.observe(ctx, telemetry.EntryOrderName, start, err, summary != nil)
	if err != nil {
		return nil, err
	}
	r.recordResolution(*summary)
	return toOrderLinks(*summary), nil
}

// EmailOrders lists a customer's orders, newest first. An email with no
// orders yields a result with an empty Orders slice and a nil LatestOrder.
func (r *Resolver) EmailOrders(ctx context.Context, email string) (*EmailOrders, error) {
	start := time.Now()
	summaries, err := r.Pipeline.LookupByEmail(ctx, email)
	r.observe(ctx, telemetry.EntryEmail, start, err, len(summaries) > 0)
	if err != nil {
		return nil, err
	}
	for _, s := range summaries {
		r.recordResolution(s)
	}
	return toEmailOrders(orders.NormalizeEmail(email), summaries), nil
}

// Lookup returns the full summaries, tracking included, for every order of
// email.
func (r *Resolver) Lookup(ctx context.Context, email string) (*LookupResult, error) {
	start := time.Now()
	summaries, err := r.Pipeline.LookupByEmail(ctx, email)
	r.observe(ctx, telemetry.EntryEmail, start, err, len(summaries) > 0)
	if err != nil {
		return nil, err
	}

	result := &LookupResult{
		Email:      orders.NormalizeEmail(email),
		OrderCount: len(summaries),
		Orders:     make([]OrderSummary, 0, len(summaries)),
	}
	for _, s := range summaries {
		r.recordResolution(s)
		result.Orders = append(result.Orders, toOrderSummary(s))
	}
	return result, nil
}

// Health reports service liveness and which order backend is in use.
func (r *Resolver) Health(ctx context.Context) *Health {
	return &Health{Status: "ok", Mode: r.Mode}
}

func (r *Resolver) observe(ctx context.Context, entry string, start time.Time, err error, found bool) {
	outcome := telemetry.OutcomeFound
	switch {
	case errors.Is(err, orders.ErrInvalidInput):
		outcome = telemetry.OutcomeInvalidInput
	case errors.Is(err, orders.ErrOrderNotFound):
		outcome = telemetry.OutcomeNotFound
	case err != nil:
		outcome = telemetry.OutcomeProviderError
		code := orders.ProviderErrorCode(err)
		if code == "" {
			code = "UNKNOWN"
		}
		r.Metrics.RecordProviderError(r.Pipeline.ProviderName(), code)
		r.Logger.Ctx(ctx).Warn("Lookup failed",
			zap.String("entry", entry),
			zap.String("code", code),
			zap.Error(err),
		)
	case !found:
		outcome = telemetry.OutcomeNotFound
	}
	r.Metrics.RecordLookup(entry, outcome, time.Since(start).Seconds())
}

func (r *Resolver) recordResolution(s orders.Summary) {
	if !s.Tracking.HasNumber() {
		return
	}
	r.Metrics.RecordResolution(s.Tracking.Key.String(), string(s.Tracking.Source))
}
