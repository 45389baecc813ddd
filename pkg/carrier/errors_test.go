package carrier_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tournevent/rateshop/pkg/carrier"
)

func TestError_Message(t *testing.T) {
	err := carrier.NewAuthError("ups", "token endpoint returned status 401")
	assert.Equal(t, "ups auth error: token endpoint returned status 401", err.Error())
}

func TestError_MessageWithCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := carrier.NewNetworkError("ups", "rate request failed").WithCause(cause)

	assert.Contains(t, err.Error(), "rate request failed")
	assert.Contains(t, err.Error(), "connection refused")
}

func TestError_Unwrap(t *testing.T) {
	cause := errors.New("underlying")
	err := carrier.NewRateError("ups", "failed to parse response").WithCause(cause)

	assert.True(t, errors.Is(err, cause))
}

func TestError_IsMatchesKind(t *testing.T) {
	err := carrier.NewValidationError("country code must be exactly 2 characters")

	assert.True(t, errors.Is(err, carrier.NewValidationError("")))
	assert.False(t, errors.Is(err, carrier.NewAuthError("", "")))
}

func TestError_KindSurvivesWrapping(t *testing.T) {
	err := fmt.Errorf("orchestrator: %w", carrier.NewAuthError("ups", "no token"))

	assert.True(t, carrier.IsAuth(err))
	assert.Equal(t, carrier.KindAuth, carrier.KindOf(err))
}

func TestKindOf_ForeignError(t *testing.T) {
	assert.Equal(t, carrier.Kind(""), carrier.KindOf(errors.New("plain")))
	assert.False(t, carrier.IsRate(errors.New("plain")))
}

func TestError_StatusCode(t *testing.T) {
	err := carrier.NewRateError("ups", "bad request").WithStatusCode(400)

	var ce *carrier.Error
	require.True(t, errors.As(err, &ce))
	assert.Equal(t, 400, ce.StatusCode)
	assert.Equal(t, carrier.KindRate, ce.Kind)
}
