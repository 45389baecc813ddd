package factory_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tournevent/rateshop/pkg/carrier/factory"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"
)

func testLogger() *otelzap.Logger {
	return otelzap.New(zap.NewNop())
}

func TestNew_BuildsConfiguredCarriers(t *testing.T) {
	cfgs := map[string]factory.BackendConfig{
		"ups": {
			ClientID:     "client-id",
			ClientSecret: "client-secret",
			BaseURL:      "https://onlinetools.ups.com",
			HTTPTimeout:  10 * time.Second,
		},
	}

	o, err := factory.New(cfgs, testLogger(), nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"ups"}, o.Names())
}

func TestNew_AbsentBlocksAreSkipped(t *testing.T) {
	// Only the mock block is present; ups is simply not registered.
	cfgs := map[string]factory.BackendConfig{
		"mock": {},
	}

	o, err := factory.New(cfgs, testLogger(), nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"mock"}, o.Names())
}

func TestNew_ZeroBlocksFailsAtConstruction(t *testing.T) {
	_, err := factory.New(map[string]factory.BackendConfig{}, testLogger(), nil)
	require.Error(t, err)
}

func TestNew_UnknownCarrierName(t *testing.T) {
	cfgs := map[string]factory.BackendConfig{
		"fedex": {ClientID: "id", ClientSecret: "secret"},
	}

	_, err := factory.New(cfgs, testLogger(), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown carrier")
}

func TestNew_DeterministicOrder(t *testing.T) {
	cfgs := map[string]factory.BackendConfig{
		"ups":  {ClientID: "id", ClientSecret: "secret"},
		"mock": {},
	}

	o, err := factory.New(cfgs, testLogger(), nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"mock", "ups"}, o.Names(), "registration order is sorted key order")
}
