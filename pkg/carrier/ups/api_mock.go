package ups

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/tournevent/rateshop/pkg/carrier"
)

// MockAPIClient is a mock implementation of APIClient for testing.
type MockAPIClient struct {
	SimulateErrors  bool
	SimulateLatency time.Duration

	OnShopRates func(ctx context.Context, req *RateWireRequest) (*RateWireResponse, error)

	// Calls records every request passed to ShopRates, in order.
	Calls []*RateWireRequest
}

// NewMockAPIClient creates a new mock API client with default behavior.
func NewMockAPIClient() *MockAPIClient {
	return &MockAPIClient{}
}

// ShopRates returns mock UPS rates.
func (m *MockAPIClient) ShopRates(ctx context.Context, req *RateWireRequest) (*RateWireResponse, error) {
	m.Calls = append(m.Calls, req)

	if m.SimulateLatency > 0 {
		time.Sleep(m.SimulateLatency)
	}

	if m.SimulateErrors {
		return nil, carrier.NewRateError(carrierName, "simulated API error: "+uuid.New().String()[:8])
	}

	if m.OnShopRates != nil {
		return m.OnShopRates(ctx, req)
	}

	return &RateWireResponse{
		RateResponse: WireRateResponse{
			RatedShipment: []RatedShipment{
				{
					Service:               WireCode{Code: "03"},
					TransportationCharges: &WireCharge{CurrencyCode: "USD", MonetaryValue: "14.50"},
					ServiceOptionsCharges: &WireCharge{CurrencyCode: "USD", MonetaryValue: "1.74"},
					TotalCharges:          WireCharge{CurrencyCode: "USD", MonetaryValue: "16.24"},
				},
				{
					Service:               WireCode{Code: "02"},
					TransportationCharges: &WireCharge{CurrencyCode: "USD", MonetaryValue: "28.99"},
					ServiceOptionsCharges: &WireCharge{CurrencyCode: "USD", MonetaryValue: "0.00"},
					TotalCharges:          WireCharge{CurrencyCode: "USD", MonetaryValue: "28.99"},
					GuaranteedDelivery:    &GuaranteedDelivery{BusinessDaysInTransit: "2"},
				},
				{
					Service:            WireCode{Code: "01"},
					TotalCharges:       WireCharge{CurrencyCode: "USD", MonetaryValue: "54.10"},
					GuaranteedDelivery: &GuaranteedDelivery{BusinessDaysInTransit: "1", DeliveryByTime: "10:30 A.M."},
					RatedShipmentAlert: []WireCode{
						{Code: "110971", Description: "Your invoice may vary from the displayed reference rates"},
					},
				},
			},
		},
	}, nil
}

var _ APIClient = (*MockAPIClient)(nil)
