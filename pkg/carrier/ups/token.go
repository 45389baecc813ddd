package ups

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/tournevent/rateshop/pkg/carrier"
)

const tokenPath = "/security/v1/oauth/token"

// DefaultRefreshBuffer is how long before nominal expiry a cached token is
// considered stale. The margin absorbs clock skew and in-flight latency so a
// token never expires mid-request.
const DefaultRefreshBuffer = 60 * time.Second

// Token is an immutable OAuth2 bearer token. A refresh constructs a new
// Token and replaces the cached pointer; an issued Token is never mutated.
type Token struct {
	AccessToken string
	TokenType   string
	ExpiresIn   int64 // lifetime in seconds
	IssuedAt    time.Time
}

// valid reports whether the token is still usable at now, leaving buffer
// before nominal expiry.
func (t *Token) valid(now time.Time, buffer time.Duration) bool {
	expiry := t.IssuedAt.Add(time.Duration(t.ExpiresIn) * time.Second)
	return now.Add(buffer).Before(expiry)
}

// TokenManagerConfig holds configuration for a TokenManager.
type TokenManagerConfig struct {
	BaseURL       string
	ClientID      string
	ClientSecret  string
	Timeout       time.Duration
	RefreshBuffer time.Duration
}

// TokenManager owns the OAuth2 client-credentials token cache for one UPS
// client instance. Tokens live in memory only and are never shared across
// carrier instances.
type TokenManager struct {
	baseURL       string
	clientID      string
	clientSecret  string
	refreshBuffer time.Duration
	httpClient    *http.Client

	now func() time.Time // stubbed in tests

	mu    sync.Mutex
	token *Token
}

// NewTokenManager creates a token manager against the UPS token endpoint.
func NewTokenManager(cfg TokenManagerConfig) *TokenManager {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	buffer := cfg.RefreshBuffer
	if buffer == 0 {
		buffer = DefaultRefreshBuffer
	}

	return &TokenManager{
		baseURL:       cfg.BaseURL,
		clientID:      cfg.ClientID,
		clientSecret:  cfg.ClientSecret,
		refreshBuffer: buffer,
		httpClient:    &http.Client{Timeout: timeout},
		now:           time.Now,
	}
}

// GetAccessToken returns a valid bearer token string, reusing the cached
// token when it has not entered the refresh buffer and acquiring a fresh one
// otherwise. Concurrent callers are serialized so at most one acquisition is
// in flight.
func (m *TokenManager) GetAccessToken(ctx context.Context) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.token != nil && m.token.valid(m.now(), m.refreshBuffer) {
		return m.token.AccessToken, nil
	}

	token, err := m.acquireToken(ctx)
	if err != nil {
		return "", err
	}
	m.token = token
	return token.AccessToken, nil
}

// ClearToken discards the cached token, forcing the next GetAccessToken call
// to re-acquire. Used for forced rotation and test setup.
func (m *TokenManager) ClearToken() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = nil
}

// acquireToken performs the client-credentials grant. Every failure mode
// here — transport error, timeout, non-2xx status, malformed body — is an
// auth error so callers can tell "couldn't authenticate" from a failed rate
// call.
func (m *TokenManager) acquireToken(ctx context.Context) (*Token, error) {
	form := url.Values{}
	form.Set("grant_type", "client_credentials")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.baseURL+tokenPath, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, carrier.NewAuthError(carrierName, "failed to build token request").WithCause(err)
	}
	req.SetBasicAuth(m.clientID, m.clientSecret)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	issuedAt := m.now()
	resp, err := m.httpClient.Do(req)
	if err != nil {
		return nil, carrier.NewAuthError(carrierName, "token request failed").WithCause(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(resp.Body)
		msg := fmt.Sprintf("token endpoint returned status %d", resp.StatusCode)
		if len(body) > 0 {
			msg = fmt.Sprintf("%s: %s", msg, strings.TrimSpace(string(body)))
		}
		return nil, carrier.NewAuthError(carrierName, msg).WithStatusCode(resp.StatusCode)
	}

	var wire struct {
		AccessToken string      `json:"access_token"`
		TokenType   string      `json:"token_type"`
		ExpiresIn   json.Number `json:"expires_in"` // UPS serializes this as a string
	}
	if err := json.NewDecoder(resp.Body).Decode(&wire); err != nil {
		return nil, carrier.NewAuthError(carrierName, "failed to parse token response").WithCause(err)
	}
	if wire.AccessToken == "" {
		return nil, carrier.NewAuthError(carrierName, "token response missing access_token")
	}

	expiresIn, err := wire.ExpiresIn.Int64()
	if err != nil {
		return nil, carrier.NewAuthError(carrierName, "token response has invalid expires_in").WithCause(err)
	}

	return &Token{
		AccessToken: wire.AccessToken,
		TokenType:   wire.TokenType,
		ExpiresIn:   expiresIn,
		IssuedAt:    issuedAt,
	}, nil
}
