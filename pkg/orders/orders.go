// Package orders resolves customer order identifiers into tracking summaries
// using an external order data provider.
package orders

import (
	"context"
)

// Provider is the order platform the lookups run against.
type Provider interface {
	// Name returns the provider identifier (e.g., "shopify").
	Name() string

	// FindOrderByName returns the single order whose display name equals name,
	// or nil when there is none.
	FindOrderByName(ctx context.Context, name string) (*Order, error)

	// FindOrdersByEmail returns at most opts.Limit orders placed with email.
	FindOrdersByEmail(ctx context.Context, email string, opts ListOptions) ([]Order, error)
}
