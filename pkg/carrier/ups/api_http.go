package ups

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

	"github.com/tournevent/rateshop/pkg/carrier"
)

const ratePath = "/rating/v2/Shop/Rates"

// HTTPAPIClient is the production implementation of APIClient using HTTP.
type HTTPAPIClient struct {
	baseURL    string
	httpClient *http.Client
	tokens     *TokenManager
}

// HTTPAPIClientConfig holds configuration for the HTTP client.
type HTTPAPIClientConfig struct {
	BaseURL       string
	ClientID      string
	ClientSecret  string
	Timeout       time.Duration
	RefreshBuffer time.Duration
}

// NewHTTPAPIClient creates a new HTTP-based API client for production use.
// The client owns its TokenManager; tokens are never shared between clients.
func NewHTTPAPIClient(cfg HTTPAPIClientConfig) *HTTPAPIClient {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}

	return &HTTPAPIClient{
		baseURL:    cfg.BaseURL,
		httpClient: &http.Client{Timeout: timeout},
		tokens: NewTokenManager(TokenManagerConfig{
			BaseURL:       cfg.BaseURL,
			ClientID:      cfg.ClientID,
			ClientSecret:  cfg.ClientSecret,
			Timeout:       timeout,
			RefreshBuffer: cfg.RefreshBuffer,
		}),
	}
}

// Tokens exposes the client's token manager for forced rotation.
func (c *HTTPAPIClient) Tokens() *TokenManager {
	return c.tokens
}

// ShopRates fetches rates for every available UPS service.
// An auth failure at the token step surfaces before the rate endpoint is
// ever called.
func (c *HTTPAPIClient) ShopRates(ctx context.Context, req *RateWireRequest) (*RateWireResponse, error) {
	token, err := c.tokens.GetAccessToken(ctx)
	if err != nil {
		return nil, err
	}

	body, err := json.Marshal(req)
	if err != nil {
		return nil, carrier.NewRateError(carrierName, "failed to marshal rate request").WithCause(err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+ratePath, bytes.NewReader(body))
	if err != nil {
		return nil, carrier.NewNetworkError(carrierName, "failed to build rate request").WithCause(err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		if isTimeout(err) {
			return nil, carrier.NewNetworkError(carrierName, "request timed out").WithCause(err)
		}
		return nil, carrier.NewNetworkError(carrierName, "rate request failed").WithCause(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, c.parseError(resp)
	}

	var result RateWireResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, carrier.NewRateError(carrierName, "failed to parse response").
			WithStatusCode(resp.StatusCode).
			WithCause(err)
	}
	return &result, nil
}

// parseError extracts error detail from a non-2xx rate response. The UPS
// error envelope is best-effort; raw text is the fallback.
func (c *HTTPAPIClient) parseError(resp *http.Response) error {
	body, _ := io.ReadAll(resp.Body)

	var wire wireError
	if err := json.Unmarshal(body, &wire); err == nil && len(wire.Response.Errors) > 0 {
		first := wire.Response.Errors[0]
		msg := first.Message
		if first.Code != "" {
			msg = fmt.Sprintf("%s: %s", first.Code, first.Message)
		}
		return carrier.NewRateError(carrierName, msg).WithStatusCode(resp.StatusCode)
	}

	msg := strings.TrimSpace(string(body))
	if msg == "" {
		msg = fmt.Sprintf("rate endpoint returned status %d", resp.StatusCode)
	}
	return carrier.NewRateError(carrierName, msg).WithStatusCode(resp.StatusCode)
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr interface{ Timeout() bool }
	return errors.As(err, &netErr) && netErr.Timeout()
}

// Ensure HTTPAPIClient implements APIClient interface
var _ APIClient = (*HTTPAPIClient)(nil)
