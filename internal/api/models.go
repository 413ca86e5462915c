package api

import (
	"time"

	"github.com/tournevent/ordertrack/pkg/orders"
)

// Absent values are nil pointers so they encode as JSON null.

// OrderLinks is the single-order response. CourierQueryLink and ParcelsLink
// repeat CarrierURL and UniversalURL under the names older widget builds read.
type OrderLinks struct {
	OrderNumericID   *string `json:"orderNumericId"`
	TrackingNumber   *string `json:"trackingNumber"`
	CarrierURL       *string `json:"carrierUrl"`
	UniversalURL     *string `json:"universalUrl"`
	CourierQueryLink *string `json:"courierQueryLink"`
	ParcelsLink      *string `json:"parcelsLink"`
}

// OrderRef is the compact per-order entry of an email listing.
type OrderRef struct {
	OrderName      string  `json:"orderName"`
	OrderNumericID *string `json:"orderNumericId"`
	TrackingNumber *string `json:"trackingNumber"`
	CreatedAt      *string `json:"createdAt,omitempty"`
}

// EmailOrders is the list response for an email lookup.
type EmailOrders struct {
	Email       string     `json:"email"`
	Orders      []OrderRef `json:"orders"`
	LatestOrder *OrderRef  `json:"latestOrder"`
}

// Tracking is the wire form of a resolved tracking entry.
type Tracking struct {
	Number       *string `json:"number"`
	Carrier      *string `json:"carrier"`
	CarrierKey   *string `json:"carrierKey"`
	Source       string  `json:"source"`
	CarrierURL   *string `json:"carrierUrl"`
	UniversalURL *string `json:"universalUrl"`
}

// OrderSummary is the full per-order view returned by /api/lookup.
type OrderSummary struct {
	OrderName      string   `json:"orderName"`
	OrderNumericID *string  `json:"orderNumericId"`
	Status         string   `json:"status"`
	CreatedAt      *string  `json:"createdAt"`
	Tracking       Tracking `json:"tracking"`
}

// LookupResult is the /api/lookup response.
type LookupResult struct {
	Email      string         `json:"email"`
	OrderCount int            `json:"orderCount"`
	Orders     []OrderSummary `json:"orders"`
}

// Health is the /api/health response.
type Health struct {
	Status string `json:"status"`
	Mode   string `json:"mode"`
}

// ErrorResponse is the body of every non-2xx JSON response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// NoOrdersResponse is the 404 body of an email lookup that matched nothing.
// Orders is always an empty array so the widget can iterate it.
type NoOrdersResponse struct {
	Error  string     `json:"error"`
	Orders []OrderRef `json:"orders"`
}

// NewNoOrdersResponse returns the email not-found body.
func NewNoOrdersResponse() NoOrdersResponse {
	return NoOrdersResponse{Error: "No orders found", Orders: []OrderRef{}}
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func timestamp(t time.Time) *string {
	if t.IsZero() {
		return nil
	}
	return optional(t.UTC().Format(time.RFC3339))
}

func toOrderLinks(s orders.Summary) *OrderLinks {
	return &OrderLinks{
		OrderNumericID:   optional(s.OrderNumericID),
		TrackingNumber:   optional(s.Tracking.Number),
		CarrierURL:       optional(s.Tracking.CarrierURL),
		UniversalURL:     optional(s.Tracking.UniversalURL),
		CourierQueryLink: optional(s.Tracking.CarrierURL),
		ParcelsLink:      optional(s.Tracking.UniversalURL),
	}
}

func toOrderRef(s orders.Summary) OrderRef {
	return OrderRef{
		OrderName:      s.OrderName,
		OrderNumericID: optional(s.OrderNumericID),
		TrackingNumber: optional(s.Tracking.Number),
		CreatedAt:      timestamp(s.CreatedAt),
	}
}

func toEmailOrders(email string, summaries []orders.Summary) *EmailOrders {
	result := &EmailOrders{
		Email:  email,
		Orders: make([]OrderRef, 0, len(summaries)),
	}
	for _, s := range summaries {
		result.Orders = append(result.Orders, toOrderRef(s))
	}
	if len(summaries) > 0 {
		latest := toOrderRef(summaries[0])
		latest.CreatedAt = nil
		result.LatestOrder = &latest
	}
	return result
}

func toOrderSummary(s orders.Summary) OrderSummary {
	t := s.Tracking
	var key *string
	if t.Key.Known() {
		key = optional(t.Key.String())
	}
	return OrderSummary{
		OrderName:      s.OrderName,
		OrderNumericID: optional(s.OrderNumericID),
		Status:         string(s.Status),
		CreatedAt:      timestamp(s.CreatedAt),
		Tracking: Tracking{
			Number:       optional(t.Number),
			Carrier:      optional(t.Carrier),
			CarrierKey:   key,
			Source:       string(t.Source),
			CarrierURL:   optional(t.CarrierURL),
			UniversalURL: optional(t.UniversalURL),
		},
	}
}
