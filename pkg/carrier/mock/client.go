// Package mock provides a mock carrier implementation for testing.
package mock

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/tournevent/rateshop/pkg/carrier"
)

// Client is a mock carrier for testing and local development.
type Client struct {
	name string

	// Hooks override the default canned behavior per operation.
	OnGetRate         func(ctx context.Context, req *carrier.RateRequest) (*carrier.RateResponse, error)
	OnValidateAddress func(ctx context.Context, addr *carrier.Address) error

	getRateCalls         atomic.Int64
	validateAddressCalls atomic.Int64
}

// New creates a new mock carrier.
func New(name string) *Client {
	return &Client{name: name}
}

// Name returns the carrier name.
func (c *Client) Name() string {
	return c.name
}

// GetRateCalls returns how many times GetRate was invoked.
func (c *Client) GetRateCalls() int {
	return int(c.getRateCalls.Load())
}

// ValidateAddressCalls returns how many times ValidateAddress was invoked.
func (c *Client) ValidateAddressCalls() int {
	return int(c.validateAddressCalls.Load())
}

// ValidateAddress accepts every address by default.
func (c *Client) ValidateAddress(ctx context.Context, addr *carrier.Address) error {
	c.validateAddressCalls.Add(1)
	if c.OnValidateAddress != nil {
		return c.OnValidateAddress(ctx, addr)
	}
	return nil
}

// GetRate returns canned quotes.
func (c *Client) GetRate(ctx context.Context, req *carrier.RateRequest) (*carrier.RateResponse, error) {
	c.getRateCalls.Add(1)
	if c.OnGetRate != nil {
		return c.OnGetRate(ctx, req)
	}

	now := time.Now()
	expiresAt := now.Add(30 * time.Minute)
	ground := 3
	express := 1

	return &carrier.RateResponse{
		Carrier:     c.name,
		RequestedAt: now,
		ExpiresAt:   &expiresAt,
		Quotes: []carrier.RateQuote{
			{
				ServiceCode: "GROUND",
				ServiceName: fmt.Sprintf("%s Ground", c.name),
				Cost: carrier.RateCost{
					Base:      carrier.Money{Amount: 12.50, Currency: "USD"},
					Surcharge: &carrier.Money{Amount: 1.50, Currency: "USD"},
					Tax:       &carrier.Money{Amount: 1.82, Currency: "USD"},
					Total:     carrier.Money{Amount: 15.82, Currency: "USD"},
				},
				TransitDays: &ground,
			},
			{
				ServiceCode: "EXPRESS",
				ServiceName: fmt.Sprintf("%s Express", c.name),
				Cost: carrier.RateCost{
					Base:  carrier.Money{Amount: 28.40, Currency: "USD"},
					Total: carrier.Money{Amount: 28.40, Currency: "USD"},
				},
				TransitDays: &express,
				Warnings:    []string{fmt.Sprintf("mock quote %s", uuid.New().String()[:8])},
			},
		},
	}, nil
}

var _ carrier.Carrier = (*Client)(nil)
