package server_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tournevent/ordertrack/internal/server"
	"github.com/tournevent/ordertrack/pkg/orders"
	"github.com/tournevent/ordertrack/pkg/orders/mock"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"
)

func newTestServer(t *testing.T) (*httptest.Server, *mock.Provider) {
	t.Helper()

	provider := mock.New("shopify",
		orders.Order{
			ID:                "gid://shopify/Order/5501",
			Name:              "#1042",
			Email:             "jane@example.com",
			CreatedAt:         time.Date(2024, 6, 1, 9, 30, 0, 0, time.UTC),
			FulfillmentStatus: orders.StatusFulfilled,
			Fulfillments: []orders.Fulfillment{{
				TrackingInfo: []orders.TrackingInfo{{Number: "EZ123456789US"}},
			}},
		},
		orders.Order{
			ID:        "gid://shopify/Order/5502",
			Name:      "#1043",
			Email:     "jane@example.com",
			CreatedAt: time.Date(2024, 6, 3, 9, 30, 0, 0, time.UTC),
		},
	)
	logger := otelzap.New(zap.NewNop())
	pipeline := orders.NewPipeline(provider, logger)

	srv := server.New(server.Config{
		Port:           8080,
		AllowedOrigins: []string{"zendesk.com", "localhost", "github.io"},
		Mode:           "shopify",
	}, pipeline, logger)

	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return ts, provider
}

func postJSON(t *testing.T, url, body string) (*http.Response, map[string]any) {
	t.Helper()
	resp, err := http.Post(url, "application/json", strings.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()

	var decoded map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&decoded))
	return resp, decoded
}

func TestServer_Health(t *testing.T) {
	ts, _ := newTestServer(t)

	resp, err := http.Get(ts.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "ok", string(body))
	assert.NotEmpty(t, resp.Header.Get("X-Request-ID"))
}

func TestServer_APIHealth(t *testing.T) {
	ts, _ := newTestServer(t)

	resp, err := http.Get(ts.URL + "/api/health")
	require.NoError(t, err)
	defer resp.Body.Close()

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, map[string]string{"status": "ok", "mode": "shopify"}, body)
}

func TestServer_Links_ByOrderName(t *testing.T) {
	ts, provider := newTestServer(t)

	resp, body := postJSON(t, ts.URL+"/api/links", `{"orderName":"1042"}`)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))
	assert.Equal(t, "5501", body["orderNumericId"])
	assert.Equal(t, "EZ123456789US", body["trackingNumber"])
	assert.Equal(t, "https://tools.usps.com/go/TrackConfirmAction?qtc_tLabels1=EZ123456789US", body["carrierUrl"])
	assert.Equal(t, "https://parcelsapp.com/en/tracking/EZ123456789US", body["universalUrl"])
	assert.Equal(t, body["carrierUrl"], body["courierQueryLink"])
	assert.Equal(t, []string{"name:#1042"}, provider.Queries())
}

func TestServer_Links_NoTrackingIsNull(t *testing.T) {
	ts, _ := newTestServer(t)

	resp, body := postJSON(t, ts.URL+"/api/links", `{"orderName":"#1043"}`)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	require.Contains(t, body, "carrierUrl")
	assert.Nil(t, body["carrierUrl"])
	assert.Nil(t, body["universalUrl"])
	assert.Nil(t, body["trackingNumber"])
}

func TestServer_Links_ByEmail(t *testing.T) {
	ts, _ := newTestServer(t)

	resp, body := postJSON(t, ts.URL+"/api/links", `{"email":"  JANE@example.com","orderName":"#1042"}`)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "jane@example.com", body["email"])

	list, ok := body["orders"].([]any)
	require.True(t, ok)
	require.Len(t, list, 2)
	first := list[0].(map[string]any)
	assert.Equal(t, "#1043", first["orderName"])
	assert.Equal(t, "2024-06-03T09:30:00Z", first["createdAt"])

	latest, ok := body["latestOrder"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "#1043", latest["orderName"])
}

func TestServer_Links_EmailNoOrders(t *testing.T) {
	ts, _ := newTestServer(t)

	resp, body := postJSON(t, ts.URL+"/api/links", `{"email":"nobody@example.com"}`)

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "No orders found", body["error"])
	assert.Equal(t, []any{}, body["orders"])
}

func TestServer_Links_OrderNotFound(t *testing.T) {
	ts, _ := newTestServer(t)

	resp, body := postJSON(t, ts.URL+"/api/links", `{"orderName":"#404"}`)

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "Order not found", body["error"])
}

func TestServer_Links_MissingIdentifiers(t *testing.T) {
	ts, _ := newTestServer(t)

	for _, payload := range []string{`{}`, `{"orderName":"  "}`, ``} {
		resp, body := postJSON(t, ts.URL+"/api/links", payload)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, payload)
		assert.Equal(t, "orderName or email required", body["error"], payload)
	}
}

func TestServer_Links_InvalidRequests(t *testing.T) {
	ts, _ := newTestServer(t)

	resp, body := postJSON(t, ts.URL+"/api/links", `{"orderName":`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "invalid JSON body", body["error"])

	resp, body = postJSON(t, ts.URL+"/api/links", `{"email":"not-an-email"}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "invalid email", body["error"])
}

func TestServer_Links_ProviderError(t *testing.T) {
	ts, provider := newTestServer(t)
	provider.Err = orders.NewProviderError("shopify", "HTTP_401", "Invalid API key").WithStatusCode(401)

	resp, body := postJSON(t, ts.URL+"/api/links", `{"orderName":"#1042"}`)

	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Contains(t, body["error"], "Invalid API key")
}

func TestServer_Lookup(t *testing.T) {
	ts, _ := newTestServer(t)

	resp, body := postJSON(t, ts.URL+"/api/lookup", `{"email":"jane@example.com"}`)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, float64(2), body["orderCount"])

	list := body["orders"].([]any)
	shipped := list[1].(map[string]any)
	tracking := shipped["tracking"].(map[string]any)
	assert.Equal(t, "usps", tracking["carrierKey"])
	assert.Equal(t, "shape", tracking["source"])
	assert.Nil(t, tracking["carrier"])
}

func TestServer_Lookup_MissingEmail(t *testing.T) {
	ts, _ := newTestServer(t)

	resp, body := postJSON(t, ts.URL+"/api/lookup", `{}`)

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "email required", body["error"])
}

func TestServer_Lookup_NoOrders(t *testing.T) {
	ts, _ := newTestServer(t)

	resp, body := postJSON(t, ts.URL+"/api/lookup", `{"email":"nobody@example.com"}`)

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, []any{}, body["orders"])
}

func TestServer_CORS(t *testing.T) {
	ts, _ := newTestServer(t)

	tests := []struct {
		origin  string
		allowed bool
	}{
		{"https://acme.zendesk.com", true},
		{"http://localhost:5173", true},
		{"https://acme.github.io", true},
		{"https://evil.example.com", false},
	}

	for _, tt := range tests {
		t.Run(tt.origin, func(t *testing.T) {
			req, err := http.NewRequest(http.MethodOptions, ts.URL+"/api/links", nil)
			require.NoError(t, err)
			req.Header.Set("Origin", tt.origin)
			req.Header.Set("Access-Control-Request-Method", http.MethodPost)
			req.Header.Set("Access-Control-Request-Headers", "Content-Type")

			resp, err := http.DefaultClient.Do(req)
			require.NoError(t, err)
			resp.Body.Close()

			assert.Equal(t, http.StatusOK, resp.StatusCode)
			if tt.allowed {
				assert.Equal(t, tt.origin, resp.Header.Get("Access-Control-Allow-Origin"))
				assert.Contains(t, resp.Header.Get("Access-Control-Allow-Methods"), http.MethodPost)
			} else {
				assert.Empty(t, resp.Header.Get("Access-Control-Allow-Origin"))
			}
		})
	}
}

func TestServer_Metrics(t *testing.T) {
	ts, _ := newTestServer(t)

	postJSON(t, ts.URL+"/api/links", `{"orderName":"#1042"}`)

	resp, err := http.Get(ts.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), `ordertrack_lookups_total{entry="order_name",outcome="found"} 1`)
	assert.Contains(t, string(body), `ordertrack_carrier_resolutions_total{carrier="usps",source="shape"} 1`)
}

func TestServer_RequestIDPropagated(t *testing.T) {
	ts, _ := newTestServer(t)

	req, err := http.NewRequest(http.MethodGet, ts.URL+"/health", nil)
	require.NoError(t, err)
	req.Header.Set("X-Request-ID", "abc-123")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, "abc-123", resp.Header.Get("X-Request-ID"))
}
