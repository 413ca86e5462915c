package orders_test

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/tournevent/ordertrack/pkg/carrier"
	"github.com/tournevent/ordertrack/pkg/orders"
	"github.com/tournevent/ordertrack/pkg/tracking"
)

func TestNumericID(t *testing.T) {
	assert.Equal(t, "5501234567", orders.NumericID("gid://shopify/Order/5501234567"))
	assert.Equal(t, "42", orders.NumericID("42"))
	assert.Equal(t, "", orders.NumericID(""))
	assert.Equal(t, "", orders.NumericID("gid://shopify/Order/"))
}

func TestNormalizeOrderName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"1001", "#1001"},
		{"#1001", "#1001"},
		{"  #1001 ", "#1001"},
		{"##1001", "#1001"},
		{"# 1001", "#1001"},
		{"", ""},
		{"   ", ""},
		{"#", ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, orders.NormalizeOrderName(tt.in))
		})
	}
}

func TestNormalizeEmail(t *testing.T) {
	assert.Equal(t, "jane@example.com", orders.NormalizeEmail("  Jane@Example.COM "))
	assert.Equal(t, "", orders.NormalizeEmail("   "))
}

func TestSummarize(t *testing.T) {
	created := time.Date(2024, 5, 3, 14, 0, 0, 0, time.UTC)
	order := orders.Order{
		ID:                "gid://shopify/Order/777",
		Name:              "#1042",
		CreatedAt:         created,
		FulfillmentStatus: orders.StatusFulfilled,
		Fulfillments: []orders.Fulfillment{
			{TrackingInfo: []orders.TrackingInfo{
				{Number: "1Z999AA10123456784", Company: "UPS"},
				{Number: "9400111899223817476923", Company: "USPS"},
			}},
			{TrackingInfo: []orders.TrackingInfo{{Number: "123456789012", Company: "FedEx"}}},
		},
	}

	want := orders.Summary{
		OrderName:      "#1042",
		OrderNumericID: "777",
		Status:         orders.StatusFulfilled,
		CreatedAt:      created,
		Tracking: tracking.Result{
			Number:       "1Z999AA10123456784",
			Carrier:      "UPS",
			Key:          carrier.UPS,
			Source:       tracking.SourceLabel,
			CarrierURL:   "https://www.ups.com/track?loc=en_US&tracknum=1Z999AA10123456784",
			UniversalURL: "https://parcelsapp.com/en/tracking/1Z999AA10123456784",
		},
	}

	if diff := cmp.Diff(want, orders.Summarize(order)); diff != "" {
		t.Errorf("Summarize() mismatch (-want +got):\n%s", diff)
	}
}

func TestSummarize_NoFulfillments(t *testing.T) {
	summary := orders.Summarize(orders.Order{ID: "gid://shopify/Order/1", Name: "#1"})

	assert.Equal(t, orders.StatusUnfulfilled, summary.Status)
	assert.False(t, summary.Tracking.HasNumber())
	assert.Empty(t, summary.Tracking.CarrierURL)
	assert.Empty(t, summary.Tracking.UniversalURL)
}

func TestSummarize_FulfillmentWithoutTracking(t *testing.T) {
	summary := orders.Summarize(orders.Order{
		Name:         "#2",
		Fulfillments: []orders.Fulfillment{{}},
	})
	assert.False(t, summary.Tracking.HasNumber())
}
