package orders

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	// DefaultEmailLimit bounds how many orders an email lookup returns.
	DefaultEmailLimit = 20

	batchConcurrency = 4
)

// Pipeline looks up orders by name or email and resolves their tracking links.
// It holds no mutable state, so a single Pipeline serves concurrent requests.
type Pipeline struct {
	provider   Provider
	logger     *otelzap.Logger
	emailLimit int
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithEmailLimit overrides DefaultEmailLimit. Non-positive values are ignored.
func WithEmailLimit(limit int) Option {
	return func(p *Pipeline) {
		if limit > 0 {
			p.emailLimit = limit
		}
	}
}

// NewPipeline creates a lookup pipeline over provider.
func NewPipeline(provider Provider, logger *otelzap.Logger, opts ...Option) *Pipeline {
	p := &Pipeline{
		provider:   provider,
		logger:     logger,
		emailLimit: DefaultEmailLimit,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// EmailLimit returns the maximum number of orders an email lookup returns.
func (p *Pipeline) EmailLimit() int {
	return p.emailLimit
}

// ProviderName returns the name of the underlying order provider.
func (p *Pipeline) ProviderName() string {
	return p.provider.Name()
}

// LookupByOrderName finds a single order by display name. "1001" and "#1001"
// are the same query. It returns ErrOrderNotFound when nothing matches and
// the provider's error unchanged when the provider fails.
func (p *Pipeline) LookupByOrderName(ctx context.Context, name string) (*Summary, error) {
	normalized := NormalizeOrderName(name)
	if normalized == "" {
		return nil, ErrInvalidInput
	}

	start := time.Now()
	order, err := p.provider.FindOrderByName(ctx, normalized)
	if err != nil {
		p.logger.Ctx(ctx).Error("Order lookup failed",
			zap.String("provider", p.provider.Name()),
			zap.String("order_name", normalized),
			zap.Error(err),
		)
		return nil, err
	}
	if order == nil {
		p.logger.Ctx(ctx).Info("Order not found",
			zap.String("order_name", normalized),
			zap.Duration("duration", time.Since(start)),
		)
		return nil, fmt.Errorf("%w: %s", ErrOrderNotFound, normalized)
	}

	summary := Summarize(*order)
	p.logger.Ctx(ctx).Info("Order resolved",
		zap.String("order_name", summary.OrderName),
		zap.Bool("has_tracking", summary.Tracking.HasNumber()),
		zap.String("carrier", summary.Tracking.Key.String()),
		zap.Duration("duration", time.Since(start)),
	)
	return &summary, nil
}

// LookupByEmail returns up to EmailLimit orders for email, newest first, in
// the order the provider returned them. No orders is an empty slice, not an
// error.
func (p *Pipeline) LookupByEmail(ctx context.Context, email string) ([]Summary, error) {
	normalized := NormalizeEmail(email)
	if normalized == "" {
		return nil, ErrInvalidInput
	}

	start := time.Now()
	found, err := p.provider.FindOrdersByEmail(ctx, normalized, ListOptions{
		Limit:       p.emailLimit,
		NewestFirst: true,
	})
	if err != nil {
		p.logger.Ctx(ctx).Error("Email lookup failed",
			zap.String("provider", p.provider.Name()),
			zap.Error(err),
		)
		return nil, err
	}

	summaries := make([]Summary, 0, len(found))
	for _, o := range found {
		summaries = append(summaries, Summarize(o))
	}

	p.logger.Ctx(ctx).Info("Email lookup complete",
		zap.Int("order_count", len(summaries)),
		zap.Duration("duration", time.Since(start)),
	)
	return summaries, nil
}

// LookupByOrderNames resolves several order names concurrently. The result
// has one entry per input name in the same order; blank names and names that
// match no order yield nil. Any other error aborts the batch.
func (p *Pipeline) LookupByOrderNames(ctx context.Context, names []string) ([]*Summary, error) {
	results := make([]*Summary, len(names))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(batchConcurrency)

	for i, name := range names {
		i, name := i, name // per-iteration copies (go 1.21 loop semantics)
		g.Go(func() error {
			summary, err := p.LookupByOrderName(ctx, name)
			if errors.Is(err, ErrOrderNotFound) || errors.Is(err, ErrInvalidInput) {
				return nil
			}
			if err != nil {
				return fmt.Errorf("%s: %w", name, err)
			}
			results[i] = summary
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
