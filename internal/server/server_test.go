package server_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tournevent/rateshop/internal/server"
	"github.com/tournevent/rateshop/pkg/carrier"
	"github.com/tournevent/rateshop/pkg/carrier/mock"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"
)

func newTestHandler(t *testing.T, carriers ...carrier.Carrier) http.Handler {
	t.Helper()

	if len(carriers) == 0 {
		carriers = []carrier.Carrier{mock.New("test-carrier")}
	}
	orchestrator, err := carrier.NewOrchestrator(carriers...)
	require.NoError(t, err)

	logger := otelzap.New(zap.NewNop())
	return server.New(server.Config{Port: 8080}, orchestrator, logger).Handler()
}

const rateBody = `{
	"origin": {"line1": "123 Main St", "city": "Toronto", "provinceCode": "ON", "postalCode": "M5V 1A1", "countryCode": "CA"},
	"destination": {"line1": "456 Oak Ave", "city": "Vancouver", "provinceCode": "BC", "postalCode": "V6B 2W2", "countryCode": "CA"},
	"packages": [{"length": 10, "width": 10, "height": 10, "dimensionUnit": "in", "weight": 5, "weightUnit": "lb"}]
}`

func TestServer_Health(t *testing.T) {
	handler := newTestHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
}

func TestServer_Carriers(t *testing.T) {
	handler := newTestHandler(t, mock.New("first"), mock.New("second"))

	req := httptest.NewRequest(http.MethodGet, "/v1/carriers", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Carriers []string `json:"carriers"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, []string{"first", "second"}, resp.Carriers)
}

func TestServer_Rates_Success(t *testing.T) {
	handler := newTestHandler(t)

	req := httptest.NewRequest(http.MethodPost, "/v1/rates", strings.NewReader(rateBody))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Responses []struct {
			Carrier string `json:"carrier"`
			Quotes  []struct {
				ServiceCode string  `json:"serviceCode"`
				Total       struct{ Amount float64 } `json:"total"`
			} `json:"quotes"`
		} `json:"responses"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.Len(t, resp.Responses, 1)
	assert.Equal(t, "test-carrier", resp.Responses[0].Carrier)
	assert.NotEmpty(t, resp.Responses[0].Quotes)
}

func TestServer_Rates_MethodNotAllowed(t *testing.T) {
	handler := newTestHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/v1/rates", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestServer_Rates_InvalidJSON(t *testing.T) {
	handler := newTestHandler(t)

	req := httptest.NewRequest(http.MethodPost, "/v1/rates", strings.NewReader("invalid json"))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestServer_Rates_ValidationErrorIs400(t *testing.T) {
	handler := newTestHandler(t)

	body := `{"origin": {"line1": "123 Main St"}, "destination": {}, "packages": []}`
	req := httptest.NewRequest(http.MethodPost, "/v1/rates", strings.NewReader(body))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var resp struct {
		Error string `json:"error"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Contains(t, resp.Error, "at least one package")
}

func TestServer_Rates_UnknownCarrierIs400(t *testing.T) {
	handler := newTestHandler(t)

	body := `{
		"carrier": "nonexistent",
		"origin": {"line1": "123 Main St", "city": "Toronto", "provinceCode": "ON", "postalCode": "M5V 1A1", "countryCode": "CA"},
		"destination": {"line1": "456 Oak Ave", "city": "Vancouver", "provinceCode": "BC", "postalCode": "V6B 2W2", "countryCode": "CA"},
		"packages": [{"length": 10, "width": 10, "height": 10, "dimensionUnit": "in", "weight": 5, "weightUnit": "lb"}]
	}`
	req := httptest.NewRequest(http.MethodPost, "/v1/rates", strings.NewReader(body))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestServer_Rates_AuthErrorIs502(t *testing.T) {
	failing := mock.New("failing")
	failing.OnGetRate = func(ctx context.Context, req *carrier.RateRequest) (*carrier.RateResponse, error) {
		return nil, carrier.NewAuthError("failing", "token endpoint returned status 401")
	}
	handler := newTestHandler(t, failing)

	req := httptest.NewRequest(http.MethodPost, "/v1/rates", strings.NewReader(rateBody))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadGateway, rec.Code)
}

func TestServer_Rates_NetworkErrorIs504(t *testing.T) {
	failing := mock.New("failing")
	failing.OnGetRate = func(ctx context.Context, req *carrier.RateRequest) (*carrier.RateResponse, error) {
		return nil, carrier.NewNetworkError("failing", "request timed out")
	}
	handler := newTestHandler(t, failing)

	req := httptest.NewRequest(http.MethodPost, "/v1/rates", strings.NewReader(rateBody))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusGatewayTimeout, rec.Code)
}
