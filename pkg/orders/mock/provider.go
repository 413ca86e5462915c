// Package mock provides an in-memory order provider for testing.
package mock

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/tournevent/ordertrack/pkg/orders"
)

// Provider is an in-memory orders.Provider.
type Provider struct {
	name string
	// Err, when set, is returned by every call.
	Err error

	mu      sync.Mutex
	orders  []orders.Order
	queries []string
}

// New creates a mock provider seeded with the given orders.
func New(name string, seed ...orders.Order) *Provider {
	return &Provider{
		name:   name,
		orders: append([]orders.Order(nil), seed...),
	}
}

// Name returns the provider name.
func (p *Provider) Name() string {
	return p.name
}

// Add appends an order to the store.
func (p *Provider) Add(o orders.Order) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.orders = append(p.orders, o)
}

// Queries returns the search strings received so far, in call order.
func (p *Provider) Queries() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.queries...)
}

// FindOrderByName returns the order whose name matches exactly.
func (p *Provider) FindOrderByName(ctx context.Context, name string) (*orders.Order, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.queries = append(p.queries, "name:"+name)

	if p.Err != nil {
		return nil, p.Err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	for _, o := range p.orders {
		if o.Name == name {
			found := o
			return &found, nil
		}
	}
	return nil, nil
}

// FindOrdersByEmail returns the orders placed with email.
func (p *Provider) FindOrdersByEmail(ctx context.Context, email string, opts orders.ListOptions) ([]orders.Order, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.queries = append(p.queries, "email:"+email)

	if p.Err != nil {
		return nil, p.Err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var matched []orders.Order
	for _, o := range p.orders {
		if strings.EqualFold(o.Email, email) {
			matched = append(matched, o)
		}
	}
	if opts.NewestFirst {
		sort.SliceStable(matched, func(i, j int) bool {
			return matched[i].CreatedAt.After(matched[j].CreatedAt)
		})
	}
	if opts.Limit > 0 && len(matched) > opts.Limit {
		matched = matched[:opts.Limit]
	}
	return matched, nil
}

var _ orders.Provider = (*Provider)(nil)
