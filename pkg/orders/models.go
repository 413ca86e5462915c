package orders

import (
	"strings"
	"time"

	"github.com/tournevent/ordertrack/pkg/tracking"
)

// FulfillmentStatus is the platform's display fulfillment status.
type FulfillmentStatus string

const (
	StatusUnfulfilled        FulfillmentStatus = "UNFULFILLED"
	StatusPartiallyFulfilled FulfillmentStatus = "PARTIALLY_FULFILLED"
	StatusFulfilled          FulfillmentStatus = "FULFILLED"
	StatusInProgress         FulfillmentStatus = "IN_PROGRESS"
	StatusOnHold             FulfillmentStatus = "ON_HOLD"
	StatusScheduled          FulfillmentStatus = "SCHEDULED"
	StatusRestocked          FulfillmentStatus = "RESTOCKED"
)

// TrackingInfo is one tracking entry attached to a fulfillment.
type TrackingInfo struct {
	Number  string
	Company string
	URL     string
}

// Fulfillment is a shipped portion of an order.
type Fulfillment struct {
	TrackingInfo []TrackingInfo
}

// Order is a raw order record as returned by a Provider.
type Order struct {
	ID                string // composite platform id, e.g. gid://shopify/Order/5501234567
	Name              string // display name, e.g. #1042
	Email             string
	CreatedAt         time.Time
	FulfillmentStatus FulfillmentStatus
	Fulfillments      []Fulfillment
}

// FirstTracking returns the first fulfillment's first tracking entry. Orders
// with several parcels are reduced to that entry.
func (o Order) FirstTracking() (TrackingInfo, bool) {
	if len(o.Fulfillments) == 0 || len(o.Fulfillments[0].TrackingInfo) == 0 {
		return TrackingInfo{}, false
	}
	return o.Fulfillments[0].TrackingInfo[0], true
}

// ListOptions controls FindOrdersByEmail.
type ListOptions struct {
	Limit       int
	NewestFirst bool
}

// Summary is the per-request view of an order and its tracking links.
type Summary struct {
	OrderName      string            `json:"orderName"`
	OrderNumericID string            `json:"orderNumericId"`
	Status         FulfillmentStatus `json:"status"`
	CreatedAt      time.Time         `json:"createdAt"`
	Tracking       tracking.Result   `json:"tracking"`
}

// Summarize resolves the order's first tracking entry into a Summary.
func Summarize(o Order) Summary {
	info, _ := o.FirstTracking()
	status := o.FulfillmentStatus
	if status == "" {
		status = StatusUnfulfilled
	}
	return Summary{
		OrderName:      o.Name,
		OrderNumericID: NumericID(o.ID),
		Status:         status,
		CreatedAt:      o.CreatedAt,
		Tracking:       tracking.Resolve(info.Number, info.Company),
	}
}

// NumericID returns the trailing segment of a slash-delimited composite id.
func NumericID(id string) string {
	if i := strings.LastIndexByte(id, '/'); i >= 0 {
		return id[i+1:]
	}
	return id
}

// NormalizeOrderName trims name and makes sure it carries exactly one leading
// '#'. A blank name normalizes to "".
func NormalizeOrderName(name string) string {
	n := strings.TrimLeft(strings.TrimSpace(name), "#")
	n = strings.TrimSpace(n)
	if n == "" {
		return ""
	}
	return "#" + n
}

// NormalizeEmail trims and lower-cases an email address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
