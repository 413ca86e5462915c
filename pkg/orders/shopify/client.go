// Package shopify provides an orders.Provider backed by the Shopify Admin
// GraphQL API.
package shopify

import (
	"context"
	"time"

	"github.com/tournevent/ordertrack/pkg/orders"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

const (
	providerName = "shopify"
	tracerName   = "github.com/tournevent/ordertrack/pkg/orders/shopify"
)

// Config holds Shopify configuration. Credentials are passed in explicitly;
// the package never reads the environment.
type Config struct {
	StoreDomain string
	AccessToken string
	APIVersion  string
	Timeout     time.Duration
	UseMock     bool
}

// Client is the Shopify order provider.
type Client struct {
	config    Config
	apiClient APIClient
	logger    *otelzap.Logger
	tracer    trace.Tracer
}

// New creates a new Shopify client.
func New(cfg Config, logger *otelzap.Logger, tracer trace.Tracer) *Client {
	var apiClient APIClient

	if cfg.UseMock {
		apiClient = NewMockAPIClient()
	} else {
		apiClient = NewHTTPAPIClient(HTTPAPIClientConfig{
			StoreDomain: cfg.StoreDomain,
			AccessToken: cfg.AccessToken,
			APIVersion:  cfg.APIVersion,
			Timeout:     cfg.Timeout,
		})
	}

	return NewWithAPIClient(cfg, apiClient, logger, tracer)
}

// NewWithAPIClient creates a new Shopify client with a custom API client.
func NewWithAPIClient(cfg Config, apiClient APIClient, logger *otelzap.Logger, tracer trace.Tracer) *Client {
	if tracer == nil {
		tracer = otel.Tracer(tracerName)
	}
	return &Client{
		config:    cfg,
		apiClient: apiClient,
		logger:    logger,
		tracer:    tracer,
	}
}

// Name returns the provider name.
func (c *Client) Name() string {
	return providerName
}

// FindOrderByName returns the order with the given display name, or nil.
func (c *Client) FindOrderByName(ctx context.Context, name string) (*orders.Order, error) {
	ctx, span := c.tracer.Start(ctx, "shopify.FindOrderByName",
		trace.WithAttributes(attribute.String("shopify.order_name", name)))
	defer span.End()

	c.logger.Ctx(ctx).Debug("Searching Shopify order by name", zap.String("order_name", name))

	resp, err := c.apiClient.SearchOrders(ctx, &OrdersRequest{
		Search: "name:" + name,
		First:  1,
	})
	if err != nil {
		c.fail(ctx, span, err)
		return nil, err
	}

	span.SetAttributes(attribute.Int("shopify.order_count", len(resp.Orders)))
	if len(resp.Orders) == 0 {
		return nil, nil
	}
	order := nodeToOrder(resp.Orders[0])
	return &order, nil
}

// FindOrdersByEmail returns up to opts.Limit orders placed with email.
func (c *Client) FindOrdersByEmail(ctx context.Context, email string, opts orders.ListOptions) ([]orders.Order, error) {
	ctx, span := c.tracer.Start(ctx, "shopify.FindOrdersByEmail",
		trace.WithAttributes(attribute.Int("shopify.limit", opts.Limit)))
	defer span.End()

	limit := opts.Limit
	if limit <= 0 {
		limit = orders.DefaultEmailLimit
	}
	req := &OrdersRequest{
		Search: "email:" + email,
		First:  limit,
	}
	if opts.NewestFirst {
		req.SortKey = SortCreatedAt
		req.Reverse = true
	}

	c.logger.Ctx(ctx).Debug("Searching Shopify orders by email", zap.Int("limit", limit))

	resp, err := c.apiClient.SearchOrders(ctx, req)
	if err != nil {
		c.fail(ctx, span, err)
		return nil, err
	}

	span.SetAttributes(attribute.Int("shopify.order_count", len(resp.Orders)))
	result := make([]orders.Order, 0, len(resp.Orders))
	for _, n := range resp.Orders {
		result = append(result, nodeToOrder(n))
	}
	return result, nil
}

func (c *Client) fail(ctx context.Context, span trace.Span, err error) {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	c.logger.Ctx(ctx).Error("Shopify API error",
		zap.String("code", orders.ProviderErrorCode(err)),
		zap.Error(err),
	)
}

// ============================================================================
// Conversion helpers
// ============================================================================

func nodeToOrder(n OrderNode) orders.Order {
	fulfillments := make([]orders.Fulfillment, len(n.Fulfillments))
	for i, f := range n.Fulfillments {
		infos := make([]orders.TrackingInfo, len(f.TrackingInfo))
		for j, t := range f.TrackingInfo {
			infos[j] = orders.TrackingInfo{
				Number:  t.Number,
				Company: t.Company,
				URL:     t.URL,
			}
		}
		fulfillments[i] = orders.Fulfillment{TrackingInfo: infos}
	}

	return orders.Order{
		ID:                n.ID,
		Name:              n.Name,
		Email:             n.Email,
		CreatedAt:         n.CreatedAt,
		FulfillmentStatus: orders.FulfillmentStatus(n.DisplayFulfillmentStatus),
		Fulfillments:      fulfillments,
	}
}

var _ orders.Provider = (*Client)(nil)
