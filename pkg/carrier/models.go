package carrier

import (
	"time"
)

// WeightUnit represents weight measurement unit.
type WeightUnit string

const (
	WeightKG WeightUnit = "kg"
	WeightLB WeightUnit = "lb"
)

// DimensionUnit represents dimension measurement unit.
type DimensionUnit string

const (
	DimensionCM DimensionUnit = "cm"
	DimensionIN DimensionUnit = "in"
)

// Address represents a shipping address.
type Address struct {
	Company      string
	Line1        string
	Line2        string
	City         string
	ProvinceCode string // e.g., "ON", "NY"
	PostalCode   string
	CountryCode  string // ISO 3166-1 alpha-2, e.g., "CA", "US"
	ContactName  string
	ContactPhone string
	ContactEmail string
}

// Package represents a package to be rated.
type Package struct {
	Length        float64
	Width         float64
	Height        float64
	DimensionUnit DimensionUnit
	Weight        float64
	WeightUnit    WeightUnit
}

// Money represents a monetary amount.
type Money struct {
	Amount   float64
	Currency string
}

// RateCost breaks down the price of a single quote. Surcharge and Tax are
// nil when the backend does not report them, never zero-valued.
type RateCost struct {
	Base      Money
	Surcharge *Money
	Tax       *Money
	Total     Money
}

// RateQuote represents one service-level offer from a carrier.
type RateQuote struct {
	ServiceCode string
	ServiceName string
	Cost        RateCost
	TransitDays *int // nil when the carrier reports no guaranteed transit time
	Warnings    []string
}

// RateRequest is the normalized request for rate quotes.
type RateRequest struct {
	Origin      Address
	Destination Address
	Packages    []Package
	ServiceCode string // optional filter; empty means all services
}

// RateResponse is one carrier's answer to a RateRequest. Quote order is the
// carrier's own and is preserved; quotes are never merged across carriers.
type RateResponse struct {
	Carrier     string
	Quotes      []RateQuote
	RequestedAt time.Time
	ExpiresAt   *time.Time // nil when the carrier reports no validity window
}
