package shopify

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/tournevent/ordertrack/pkg/orders"
	"github.com/vektah/gqlparser/v2/gqlerror"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const (
	defaultAPIVersion = "2024-07"
	defaultTimeout    = 15 * time.Second
	maxErrorBody      = 4 << 10
)

// HTTPAPIClient is the production implementation of APIClient using the
// Admin GraphQL endpoint.
type HTTPAPIClient struct {
	baseURL     string
	storeDomain string
	accessToken string
	apiVersion  string
	timeout     time.Duration
	httpClient  *http.Client
}

// HTTPAPIClientConfig holds configuration for the HTTP client.
type HTTPAPIClientConfig struct {
	StoreDomain string // e.g. example.myshopify.com
	AccessToken string
	APIVersion  string
	Timeout     time.Duration
	// BaseURL replaces https://<StoreDomain> when set.
	BaseURL   string
	Transport http.RoundTripper
}

// NewHTTPAPIClient creates a new HTTP-based API client for production use.
func NewHTTPAPIClient(cfg HTTPAPIClientConfig) *HTTPAPIClient {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = defaultTimeout
	}
	version := cfg.APIVersion
	if version == "" {
		version = defaultAPIVersion
	}
	transport := cfg.Transport
	if transport == nil {
		transport = otelhttp.NewTransport(http.DefaultTransport)
	}

	return &HTTPAPIClient{
		baseURL:     strings.TrimRight(cfg.BaseURL, "/"),
		storeDomain: strings.TrimSpace(cfg.StoreDomain),
		accessToken: cfg.AccessToken,
		apiVersion:  version,
		timeout:     timeout,
		httpClient:  &http.Client{Transport: transport},
	}
}

type graphQLRequest struct {
	Query         string         `json:"query"`
	OperationName string         `json:"operationName,omitempty"`
	Variables     map[string]any `json:"variables,omitempty"`
}

type graphQLResponse struct {
	Data   *ordersData   `json:"data"`
	Errors gqlerror.List `json:"errors,omitempty"`
}

type ordersData struct {
	Orders struct {
		Edges []struct {
			Node OrderNode `json:"node"`
		} `json:"edges"`
	} `json:"orders"`
}

// SearchOrders runs the OrdersBySearch query.
func (c *HTTPAPIClient) SearchOrders(ctx context.Context, req *OrdersRequest) (*OrdersResponse, error) {
	if c.storeDomain == "" || c.accessToken == "" {
		return nil, orders.NewProviderError(providerName, orders.CodeMissingCredentials, "Missing Shopify credentials").
			WithCause(orders.ErrMissingCredentials)
	}

	vars := map[string]any{
		"search": req.Search,
		"first":  req.First,
	}
	if req.SortKey != "" {
		vars["sortKey"] = req.SortKey
		vars["reverse"] = req.Reverse
	}

	body, err := json.Marshal(graphQLRequest{
		Query:         ordersQuery.Text,
		OperationName: ordersQuery.OperationName,
		Variables:     vars,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	resp, err := c.doRequest(ctx, body)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, orders.NewProviderError(providerName, orders.CodeTimeout, "Shopify request timed out").
				WithCause(fmt.Errorf("%w: %w", orders.ErrProviderTimeout, err))
		}
		return nil, orders.NewProviderError(providerName, orders.CodeTransport, "Shopify request failed").WithCause(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, c.parseError(resp)
	}

	var gqlResp graphQLResponse
	if err := json.NewDecoder(resp.Body).Decode(&gqlResp); err != nil {
		return nil, orders.NewProviderError(providerName, orders.CodeDecode, "failed to decode response").WithCause(err)
	}
	if len(gqlResp.Errors) > 0 {
		return nil, orders.NewProviderError(providerName, orders.CodeQuery, "Shopify error").WithCause(gqlResp.Errors)
	}

	out := &OrdersResponse{}
	if gqlResp.Data != nil {
		out.Orders = make([]OrderNode, 0, len(gqlResp.Data.Orders.Edges))
		for _, edge := range gqlResp.Data.Orders.Edges {
			out.Orders = append(out.Orders, edge.Node)
		}
	}
	return out, nil
}

func (c *HTTPAPIClient) endpoint() string {
	base := c.baseURL
	if base == "" {
		base = "https://" + c.storeDomain
	}
	return base + "/admin/api/" + c.apiVersion + "/graphql.json"
}

func (c *HTTPAPIClient) doRequest(ctx context.Context, body []byte) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint(), bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Shopify-Access-Token", c.accessToken)

	return c.httpClient.Do(req)
}

func (c *HTTPAPIClient) parseError(resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))

	message := strings.TrimSpace(string(body))
	// Shopify reports auth and throttling failures as {"errors": "..."}.
	var envelope struct {
		Errors json.RawMessage `json:"errors"`
	}
	if err := json.Unmarshal(body, &envelope); err == nil && len(envelope.Errors) > 0 {
		var text string
		if json.Unmarshal(envelope.Errors, &text) == nil {
			message = text
		}
	}
	if message == "" {
		message = http.StatusText(resp.StatusCode)
	}

	return orders.NewProviderError(providerName, fmt.Sprintf("HTTP_%d", resp.StatusCode), message).
		WithStatusCode(resp.StatusCode)
}

var _ APIClient = (*HTTPAPIClient)(nil)
