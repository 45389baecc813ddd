package carrier_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tournevent/rateshop/pkg/carrier"
)

func validAddress() carrier.Address {
	return carrier.Address{
		Line1:        "123 Main St",
		City:         "Toronto",
		ProvinceCode: "ON",
		PostalCode:   "M5V 1A1",
		CountryCode:  "CA",
	}
}

func validPackage() carrier.Package {
	return carrier.Package{
		Length:        10,
		Width:         10,
		Height:        10,
		DimensionUnit: carrier.DimensionIN,
		Weight:        5,
		WeightUnit:    carrier.WeightLB,
	}
}

func validRequest() *carrier.RateRequest {
	return &carrier.RateRequest{
		Origin:      validAddress(),
		Destination: validAddress(),
		Packages:    []carrier.Package{validPackage()},
	}
}

func TestValidateAddress_Valid(t *testing.T) {
	addr := validAddress()
	require.NoError(t, carrier.ValidateAddress(&addr))
}

func TestValidateAddress_DoesNotMutateInput(t *testing.T) {
	addr := validAddress()
	addr.CountryCode = "ca"
	before := addr

	require.NoError(t, carrier.ValidateAddress(&addr))
	assert.Equal(t, before, addr, "structural validation is read-only")
}

func TestValidateAddress_MissingFields(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*carrier.Address)
	}{
		{"missing street", func(a *carrier.Address) { a.Line1 = "" }},
		{"missing city", func(a *carrier.Address) { a.City = "" }},
		{"missing postal code", func(a *carrier.Address) { a.PostalCode = "" }},
		{"country code too long", func(a *carrier.Address) { a.CountryCode = "CAN" }},
		{"country code too short", func(a *carrier.Address) { a.CountryCode = "C" }},
		{"province code too long", func(a *carrier.Address) { a.ProvinceCode = "ONTA" }},
		{"province code too short", func(a *carrier.Address) { a.ProvinceCode = "O" }},
		{"bad email", func(a *carrier.Address) { a.ContactEmail = "not-an-email" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			addr := validAddress()
			tt.mutate(&addr)

			err := carrier.ValidateAddress(&addr)
			require.Error(t, err)
			assert.True(t, carrier.IsValidation(err))
		})
	}
}

func TestValidateAddress_ValidEmail(t *testing.T) {
	addr := validAddress()
	addr.ContactEmail = "shipping@example.com"
	require.NoError(t, carrier.ValidateAddress(&addr))
}

func TestValidatePackage_Invalid(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*carrier.Package)
	}{
		{"zero length", func(p *carrier.Package) { p.Length = 0 }},
		{"negative width", func(p *carrier.Package) { p.Width = -1 }},
		{"zero weight", func(p *carrier.Package) { p.Weight = 0 }},
		{"unknown dimension unit", func(p *carrier.Package) { p.DimensionUnit = "ft" }},
		{"unknown weight unit", func(p *carrier.Package) { p.WeightUnit = "oz" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pkg := validPackage()
			tt.mutate(&pkg)

			err := carrier.ValidatePackage(&pkg)
			require.Error(t, err)
			assert.True(t, carrier.IsValidation(err))
		})
	}
}

func TestValidateRateRequest_Valid(t *testing.T) {
	require.NoError(t, carrier.ValidateRateRequest(validRequest()))
}

func TestValidateRateRequest_NormalizesCountryCodes(t *testing.T) {
	req := validRequest()
	req.Origin.CountryCode = "ca"
	req.Destination.CountryCode = "us"
	req.Destination.ProvinceCode = "NY"

	require.NoError(t, carrier.ValidateRateRequest(req))
	assert.Equal(t, "CA", req.Origin.CountryCode)
	assert.Equal(t, "US", req.Destination.CountryCode)
}

func TestValidateRateRequest_NoPackages(t *testing.T) {
	req := validRequest()
	req.Packages = nil

	err := carrier.ValidateRateRequest(req)
	require.Error(t, err)
	assert.True(t, carrier.IsValidation(err))
	assert.Contains(t, err.Error(), "at least one package")
}

func TestValidateRateRequest_CollectsAllViolations(t *testing.T) {
	req := validRequest()
	req.Origin.City = ""
	req.Destination.PostalCode = ""
	req.Packages[0].Weight = 0

	err := carrier.ValidateRateRequest(req)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "origin city is required")
	assert.Contains(t, err.Error(), "destination postal code is required")
	assert.Contains(t, err.Error(), "weight must be positive")
}
