package ups

import (
	"context"
)

// APIClient defines the interface for UPS Rating API operations. The
// production implementation owns the OAuth token lifecycle; mocks bypass it.
type APIClient interface {
	// ShopRates fetches rates for every available service.
	// POST /rating/v2/Shop/Rates
	ShopRates(ctx context.Context, req *RateWireRequest) (*RateWireResponse, error)
}

// ============================================================================
// API Request/Response Types (match UPS Rating API JSON structure)
// ============================================================================

// RateWireRequest is the top-level UPS rating request envelope.
type RateWireRequest struct {
	RateRequest WireRateRequest `json:"RateRequest"`
}

// WireRateRequest wraps the shipment to be rated.
type WireRateRequest struct {
	Shipment WireShipment `json:"Shipment"`
}

// WireShipment describes the shipment being rated.
type WireShipment struct {
	Shipper  WireParty     `json:"Shipper"`
	ShipTo   WireParty     `json:"ShipTo"`
	ShipFrom WireParty     `json:"ShipFrom"`
	Package  []WirePackage `json:"Package"`
}

// WireParty represents shipper, ship-from or ship-to.
type WireParty struct {
	Name    string      `json:"Name,omitempty"`
	Address WireAddress `json:"Address"`
}

// WireAddress is the UPS address block. AddressLine is a single field;
// multi-line domain addresses are joined before mapping.
type WireAddress struct {
	AddressLine       string `json:"AddressLine"`
	City              string `json:"City"`
	StateProvinceCode string `json:"StateProvinceCode,omitempty"`
	PostalCode        string `json:"PostalCode"`
	CountryCode       string `json:"CountryCode"`
}

// WireCode is the UPS code/description pair used throughout the schema.
type WireCode struct {
	Code        string `json:"Code"`
	Description string `json:"Description,omitempty"`
}

// WirePackage is one rated package. UPS expects numeric fields as strings.
type WirePackage struct {
	PackagingType WireCode       `json:"PackagingType"`
	Dimensions    WireDimensions `json:"Dimensions"`
	PackageWeight WireWeight     `json:"PackageWeight"`
}

// WireDimensions holds string-formatted package dimensions.
type WireDimensions struct {
	UnitOfMeasurement WireCode `json:"UnitOfMeasurement"`
	Length            string   `json:"Length"`
	Width             string   `json:"Width"`
	Height            string   `json:"Height"`
}

// WireWeight holds the string-formatted package weight.
type WireWeight struct {
	UnitOfMeasurement WireCode `json:"UnitOfMeasurement"`
	Weight            string   `json:"Weight"`
}

// RateWireResponse is the top-level UPS rating response envelope.
type RateWireResponse struct {
	RateResponse WireRateResponse `json:"RateResponse"`
}

// WireRateResponse carries one entry per rated service.
type WireRateResponse struct {
	RatedShipment []RatedShipment `json:"RatedShipment"`
}

// RatedShipment is one service-level rate entry.
type RatedShipment struct {
	Service               WireCode            `json:"Service"`
	TransportationCharges *WireCharge         `json:"TransportationCharges,omitempty"`
	ServiceOptionsCharges *WireCharge         `json:"ServiceOptionsCharges,omitempty"`
	TotalCharges          WireCharge          `json:"TotalCharges"`
	GuaranteedDelivery    *GuaranteedDelivery `json:"GuaranteedDelivery,omitempty"`
	RatedShipmentAlert    []WireCode          `json:"RatedShipmentAlert,omitempty"`
}

// WireCharge is a monetary amount as UPS reports it.
type WireCharge struct {
	CurrencyCode  string `json:"CurrencyCode"`
	MonetaryValue string `json:"MonetaryValue"`
}

// GuaranteedDelivery is present only for services with a delivery guarantee.
type GuaranteedDelivery struct {
	BusinessDaysInTransit string `json:"BusinessDaysInTransit,omitempty"`
	DeliveryByTime        string `json:"DeliveryByTime,omitempty"`
}

// wireError is the UPS error envelope returned on non-2xx responses.
type wireError struct {
	Response struct {
		Errors []struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		} `json:"errors"`
	} `json:"response"`
}
