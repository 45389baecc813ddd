// Package ups provides integration with the UPS Rating API.
package ups

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/tournevent/rateshop/pkg/carrier"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

const carrierName = "ups"

// fallbackCurrency is used when UPS omits a currency code on a charge.
const fallbackCurrency = "USD"

// Config holds UPS configuration.
type Config struct {
	ClientID      string
	ClientSecret  string
	BaseURL       string
	HTTPTimeout   time.Duration
	RefreshBuffer time.Duration
	UseMock       bool // When true, uses mock API client
}

// Client is the UPS carrier client.
// It implements the carrier.Carrier interface and delegates
// API calls to the underlying APIClient (mock or HTTP).
type Client struct {
	config    Config
	apiClient APIClient
	logger    *otelzap.Logger
	tracer    trace.Tracer
}

// New creates a new UPS client.
// If cfg.UseMock is true, it uses a mock API client for testing.
// Otherwise, it uses the real HTTP API client.
func New(cfg Config, logger *otelzap.Logger, tracer trace.Tracer) *Client {
	var apiClient APIClient

	if cfg.UseMock {
		apiClient = NewMockAPIClient()
	} else {
		apiClient = NewHTTPAPIClient(HTTPAPIClientConfig{
			BaseURL:       cfg.BaseURL,
			ClientID:      cfg.ClientID,
			ClientSecret:  cfg.ClientSecret,
			Timeout:       cfg.HTTPTimeout,
			RefreshBuffer: cfg.RefreshBuffer,
		})
	}

	return &Client{
		config:    cfg,
		apiClient: apiClient,
		logger:    logger,
		tracer:    tracer,
	}
}

// NewWithAPIClient creates a new UPS client with a custom API client.
// This is useful for injecting mock clients in tests.
func NewWithAPIClient(cfg Config, apiClient APIClient, logger *otelzap.Logger, tracer trace.Tracer) *Client {
	return &Client{
		config:    cfg,
		apiClient: apiClient,
		logger:    logger,
		tracer:    tracer,
	}
}

// Name returns the carrier name.
func (c *Client) Name() string {
	return carrierName
}

// ValidateAddress applies UPS-specific acceptability rules on top of the
// generic structural validation.
func (c *Client) ValidateAddress(ctx context.Context, addr *carrier.Address) error {
	if err := carrier.ValidateAddress(addr); err != nil {
		return err
	}
	country := strings.ToUpper(addr.CountryCode)
	if _, ok := supportedCountries[country]; !ok {
		return carrier.NewValidationError(fmt.Sprintf("country not supported by ups: %s", country)).
			WithCarrier(carrierName)
	}
	if stateRequired[country] && addr.ProvinceCode == "" {
		return carrier.NewValidationError(fmt.Sprintf("state/province code is required for %s addresses", country)).
			WithCarrier(carrierName)
	}
	return nil
}

// GetRate returns normalized rate quotes from UPS.
func (c *Client) GetRate(ctx context.Context, req *carrier.RateRequest) (*carrier.RateResponse, error) {
	if err := c.ValidateAddress(ctx, &req.Origin); err != nil {
		return nil, err
	}
	if err := c.ValidateAddress(ctx, &req.Destination); err != nil {
		return nil, err
	}

	c.logger.Info("Getting UPS rates",
		zap.String("origin_postal", req.Origin.PostalCode),
		zap.String("destination_postal", req.Destination.PostalCode),
		zap.Int("package_count", len(req.Packages)),
	)

	apiResp, err := c.apiClient.ShopRates(ctx, mapRequestToWire(req))
	if err != nil {
		c.logger.Error("UPS API error", zap.Error(err))
		return nil, err
	}

	resp, err := mapWireToResponse(apiResp)
	if err != nil {
		c.logger.Error("UPS response mapping error", zap.Error(err))
		return nil, err
	}

	if req.ServiceCode != "" {
		resp.Quotes = filterQuotes(resp.Quotes, req.ServiceCode)
	}
	return resp, nil
}

// ============================================================================
// Conversion helpers: carrier models -> API models
// ============================================================================

// mapRequestToWire is deterministic and pure: field order, package order and
// numeric-to-string formatting do not depend on anything but the input.
func mapRequestToWire(req *carrier.RateRequest) *RateWireRequest {
	return &RateWireRequest{
		RateRequest: WireRateRequest{
			Shipment: WireShipment{
				Shipper:  addressToParty(req.Origin),
				ShipFrom: addressToParty(req.Origin),
				ShipTo:   addressToParty(req.Destination),
				Package:  packagesToWire(req.Packages),
			},
		},
	}
}

func addressToParty(addr carrier.Address) WireParty {
	name := addr.Company
	if name == "" {
		name = addr.ContactName
	}

	line := addr.Line1
	if addr.Line2 != "" {
		line = addr.Line1 + ", " + addr.Line2
	}

	return WireParty{
		Name: name,
		Address: WireAddress{
			AddressLine:       line,
			City:              addr.City,
			StateProvinceCode: addr.ProvinceCode,
			PostalCode:        addr.PostalCode,
			CountryCode:       strings.ToUpper(addr.CountryCode),
		},
	}
}

func packagesToWire(pkgs []carrier.Package) []WirePackage {
	result := make([]WirePackage, len(pkgs))
	for i, p := range pkgs {
		result[i] = WirePackage{
			PackagingType: WireCode{Code: "02", Description: "Customer Supplied Package"},
			Dimensions: WireDimensions{
				UnitOfMeasurement: dimensionUnitToWire(p.DimensionUnit),
				Length:            formatMeasure(p.Length),
				Width:             formatMeasure(p.Width),
				Height:            formatMeasure(p.Height),
			},
			PackageWeight: WireWeight{
				UnitOfMeasurement: weightUnitToWire(p.WeightUnit),
				Weight:            formatMeasure(p.Weight),
			},
		}
	}
	return result
}

func dimensionUnitToWire(u carrier.DimensionUnit) WireCode {
	if u == carrier.DimensionCM {
		return WireCode{Code: "CM", Description: "Centimeters"}
	}
	return WireCode{Code: "IN", Description: "Inches"}
}

func weightUnitToWire(u carrier.WeightUnit) WireCode {
	if u == carrier.WeightKG {
		return WireCode{Code: "KGS", Description: "Kilograms"}
	}
	return WireCode{Code: "LBS", Description: "Pounds"}
}

func formatMeasure(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// ============================================================================
// Conversion helpers: API models -> carrier models
// ============================================================================

func mapWireToResponse(resp *RateWireResponse) (*carrier.RateResponse, error) {
	quotes := make([]carrier.RateQuote, 0, len(resp.RateResponse.RatedShipment))

	for _, rated := range resp.RateResponse.RatedShipment {
		total, err := parseCharge(rated.TotalCharges)
		if err != nil {
			return nil, err
		}

		cost := carrier.RateCost{Total: total}

		// Base charge falls back to the total when UPS omits the
		// transportation-charge breakdown.
		cost.Base = total
		if rated.TransportationCharges != nil {
			base, err := parseCharge(*rated.TransportationCharges)
			if err != nil {
				return nil, err
			}
			cost.Base = base
		}

		// UPS reports one accessorial figure; it feeds both the surcharge
		// and tax fields, and only when nonzero.
		if rated.ServiceOptionsCharges != nil {
			extra, err := parseCharge(*rated.ServiceOptionsCharges)
			if err != nil {
				return nil, err
			}
			if extra.Amount != 0 {
				surcharge := extra
				tax := extra
				cost.Surcharge = &surcharge
				cost.Tax = &tax
			}
		}

		quote := carrier.RateQuote{
			ServiceCode: rated.Service.Code,
			ServiceName: serviceName(rated.Service),
			Cost:        cost,
		}

		if rated.GuaranteedDelivery != nil && rated.GuaranteedDelivery.BusinessDaysInTransit != "" {
			if days, err := strconv.Atoi(rated.GuaranteedDelivery.BusinessDaysInTransit); err == nil {
				quote.TransitDays = &days
			}
		}

		for _, alert := range rated.RatedShipmentAlert {
			if alert.Description != "" {
				quote.Warnings = append(quote.Warnings, alert.Description)
			}
		}

		quotes = append(quotes, quote)
	}

	return &carrier.RateResponse{
		Carrier:     carrierName,
		Quotes:      quotes,
		RequestedAt: time.Now(),
	}, nil
}

func parseCharge(charge WireCharge) (carrier.Money, error) {
	amount, err := strconv.ParseFloat(strings.TrimSpace(charge.MonetaryValue), 64)
	if err != nil {
		return carrier.Money{}, carrier.NewRateError(carrierName,
			fmt.Sprintf("failed to parse monetary value %q", charge.MonetaryValue)).WithCause(err)
	}

	currency := charge.CurrencyCode
	if currency == "" {
		currency = fallbackCurrency
	}
	return carrier.Money{Amount: amount, Currency: currency}, nil
}

func filterQuotes(quotes []carrier.RateQuote, serviceCode string) []carrier.RateQuote {
	filtered := make([]carrier.RateQuote, 0, len(quotes))
	for _, q := range quotes {
		if q.ServiceCode == serviceCode {
			filtered = append(filtered, q)
		}
	}
	return filtered
}

// ============================================================================
// Mapping tables
// ============================================================================

// supportedCountries is the UPS small-package serviceable set this
// integration accepts.
var supportedCountries = map[string]struct{}{
	"US": {}, "CA": {}, "MX": {}, "PR": {},
	"GB": {}, "DE": {}, "FR": {}, "IT": {}, "ES": {}, "NL": {}, "BE": {},
	"PL": {}, "AT": {}, "CH": {}, "SE": {}, "DK": {}, "NO": {}, "FI": {},
	"IE": {}, "PT": {}, "JP": {}, "CN": {}, "HK": {}, "SG": {}, "AU": {},
	"NZ": {}, "KR": {}, "IN": {}, "BR": {},
}

// stateRequired lists countries where UPS rejects addresses without a
// state/province code.
var stateRequired = map[string]bool{
	"US": true,
	"CA": true,
}

var serviceNames = map[string]string{
	"01": "UPS Next Day Air",
	"02": "UPS 2nd Day Air",
	"03": "UPS Ground",
	"07": "UPS Worldwide Express",
	"08": "UPS Worldwide Expedited",
	"11": "UPS Standard",
	"12": "UPS 3 Day Select",
	"13": "UPS Next Day Air Saver",
	"14": "UPS Next Day Air Early",
	"54": "UPS Worldwide Express Plus",
	"59": "UPS 2nd Day Air A.M.",
	"65": "UPS Worldwide Saver",
}

func serviceName(service WireCode) string {
	if service.Description != "" {
		return service.Description
	}
	if name, ok := serviceNames[service.Code]; ok {
		return name
	}
	return "UPS Service " + service.Code
}

var _ carrier.Carrier = (*Client)(nil)
