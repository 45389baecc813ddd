// Package carrier provides an abstraction layer for shipping-rate backends.
package carrier

import (
	"context"
)

// Carrier defines the interface that all rate backends must implement.
type Carrier interface {
	// Name returns the carrier identifier (e.g., "ups").
	Name() string

	// GetRate returns normalized rate quotes for a shipment. Implementations
	// must re-validate both addresses before any network call and never
	// return a partially populated response.
	GetRate(ctx context.Context, req *RateRequest) (*RateResponse, error)

	// ValidateAddress performs the carrier-specific acceptability check for
	// an address, distinct from the structural validation in this package.
	ValidateAddress(ctx context.Context, addr *Address) error
}
