package shopify

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/tournevent/ordertrack/pkg/orders"
)

// MockAPIClient is a mock implementation of APIClient for testing and local
// development without store credentials. It is safe for concurrent use once
// configured; Orders and Requests must not be touched while calls are in flight.
type MockAPIClient struct {
	mu sync.Mutex


	SimulateErrors  bool
	SimulateLatency time.Duration

	// Orders is the searchable data set. NewMockAPIClient seeds demo orders.
	Orders []OrderNode

	OnSearchOrders func(ctx context.Context, req *OrdersRequest) (*OrdersResponse, error)

	Requests []OrdersRequest
}

// NewMockAPIClient creates a new mock API client with a small demo store.
func NewMockAPIClient() *MockAPIClient {
	base := time.Date(2024, 7, 1, 15, 4, 5, 0, time.UTC)
	return &MockAPIClient{
		Orders: []OrderNode{
			{
				ID:                       "gid://shopify/Order/5600000001",
				Name:                     "#1001",
				Email:                    "demo@example.com",
				CreatedAt:                base,
				DisplayFulfillmentStatus: "FULFILLED",
				Fulfillments: []FulfillmentNode{{TrackingInfo: []TrackingInfoNode{
					{Number: "9400111899223817476923", Company: "USPS"},
				}}},
			},
			{
				ID:                       "gid://shopify/Order/5600000002",
				Name:                     "#1002",
				Email:                    "demo@example.com",
				CreatedAt:                base.Add(72 * time.Hour),
				DisplayFulfillmentStatus: "FULFILLED",
				Fulfillments: []FulfillmentNode{{TrackingInfo: []TrackingInfoNode{
					{Number: "1Z999AA10123456784"},
				}}},
			},
			{
				ID:                       "gid://shopify/Order/5600000003",
				Name:                     "#1003",
				Email:                    "demo@example.com",
				CreatedAt:                base.Add(144 * time.Hour),
				DisplayFulfillmentStatus: "UNFULFILLED",
			},
		},
	}
}

// SearchOrders evaluates "name:" and "email:" searches against Orders.
func (m *MockAPIClient) SearchOrders(ctx context.Context, req *OrdersRequest) (*OrdersResponse, error) {
	m.mu.Lock()
	m.Requests = append(m.Requests, *req)
	m.mu.Unlock()

	if m.SimulateLatency > 0 {
		select {
		case <-time.After(m.SimulateLatency):
		case <-ctx.Done():
			return nil, orders.NewProviderError(providerName, orders.CodeTimeout, "Shopify request timed out").
				WithCause(fmt.Errorf("%w: %w", orders.ErrProviderTimeout, ctx.Err()))
		}
	}

	if m.SimulateErrors {
		return nil, orders.NewProviderError(providerName, "MOCK_ERROR", "Simulated API error")
	}

	if m.OnSearchOrders != nil {
		return m.OnSearchOrders(ctx, req)
	}

	field, value, _ := strings.Cut(req.Search, ":")
	var matched []OrderNode
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, o := range m.Orders {
		switch field {
		case "name":
			if o.Name == value {
				matched = append(matched, o)
			}
		case "email":
			if strings.EqualFold(o.Email, value) {
				matched = append(matched, o)
			}
		}
	}

	if req.SortKey == SortCreatedAt {
		sort.SliceStable(matched, func(i, j int) bool {
			if req.Reverse {
				return matched[i].CreatedAt.After(matched[j].CreatedAt)
			}
			return matched[i].CreatedAt.Before(matched[j].CreatedAt)
		})
	}
	if req.First > 0 && len(matched) > req.First {
		matched = matched[:req.First]
	}
	return &OrdersResponse{Orders: matched}, nil
}

var _ APIClient = (*MockAPIClient)(nil)
