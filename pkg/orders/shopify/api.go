package shopify

import (
	"context"
	"time"
)

// APIClient defines the Shopify Admin API operations the provider needs.
// This abstraction allows for mock implementations during testing
// and real implementations in production.
type APIClient interface {
	// SearchOrders runs the orders connection query with a search string.
	SearchOrders(ctx context.Context, req *OrdersRequest) (*OrdersResponse, error)
}

// Sort keys accepted by the orders connection.
const (
	SortCreatedAt = "CREATED_AT"
)

// OrdersRequest is an orders connection query.
type OrdersRequest struct {
	Search  string // Shopify search syntax, e.g. "name:#1001" or "email:a@b.com"
	First   int
	SortKey string // empty keeps the platform default
	Reverse bool
}

// OrdersResponse holds the order nodes of an orders connection.
type OrdersResponse struct {
	Orders []OrderNode
}

// OrderNode mirrors the Order fields selected by the orders query.
type OrderNode struct {
	ID                       string            `json:"id"`
	Name                     string            `json:"name"`
	Email                    string            `json:"email"`
	CreatedAt                time.Time         `json:"createdAt"`
	DisplayFulfillmentStatus string            `json:"displayFulfillmentStatus"`
	Fulfillments             []FulfillmentNode `json:"fulfillments"`
}

// FulfillmentNode mirrors Fulfillment.
type FulfillmentNode struct {
	TrackingInfo []TrackingInfoNode `json:"trackingInfo"`
}

// TrackingInfoNode mirrors FulfillmentTrackingInfo. Null fields decode as "".
type TrackingInfoNode struct {
	Number  string `json:"number"`
	Company string `json:"company"`
	URL     string `json:"url"`
}
