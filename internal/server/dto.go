package server

import (
	"time"

	"github.com/tournevent/rateshop/pkg/carrier"
)

// Transport shapes for the JSON API, converted to and from the carrier
// domain model at the boundary.

type rateRequestDTO struct {
	Carrier     string       `json:"carrier,omitempty"`
	Origin      addressDTO   `json:"origin"`
	Destination addressDTO   `json:"destination"`
	Packages    []packageDTO `json:"packages"`
	ServiceCode string       `json:"serviceCode,omitempty"`
}

type addressDTO struct {
	Company      string `json:"company,omitempty"`
	Line1        string `json:"line1"`
	Line2        string `json:"line2,omitempty"`
	City         string `json:"city"`
	ProvinceCode string `json:"provinceCode,omitempty"`
	PostalCode   string `json:"postalCode"`
	CountryCode  string `json:"countryCode"`
	ContactName  string `json:"contactName,omitempty"`
	ContactPhone string `json:"contactPhone,omitempty"`
	ContactEmail string `json:"contactEmail,omitempty"`
}

type packageDTO struct {
	Length        float64 `json:"length"`
	Width         float64 `json:"width"`
	Height        float64 `json:"height"`
	DimensionUnit string  `json:"dimensionUnit"`
	Weight        float64 `json:"weight"`
	WeightUnit    string  `json:"weightUnit"`
}

type rateResponseDTO struct {
	Carrier     string         `json:"carrier"`
	Quotes      []rateQuoteDTO `json:"quotes"`
	RequestedAt time.Time      `json:"requestedAt"`
	ExpiresAt   *time.Time     `json:"expiresAt,omitempty"`
}

type rateQuoteDTO struct {
	ServiceCode string    `json:"serviceCode"`
	ServiceName string    `json:"serviceName"`
	Base        moneyDTO  `json:"base"`
	Surcharge   *moneyDTO `json:"surcharge,omitempty"`
	Tax         *moneyDTO `json:"tax,omitempty"`
	Total       moneyDTO  `json:"total"`
	TransitDays *int      `json:"transitDays,omitempty"`
	Warnings    []string  `json:"warnings,omitempty"`
}

type moneyDTO struct {
	Amount   float64 `json:"amount"`
	Currency string  `json:"currency"`
}

func (d *rateRequestDTO) toDomain() *carrier.RateRequest {
	req := &carrier.RateRequest{
		Origin:      d.Origin.toDomain(),
		Destination: d.Destination.toDomain(),
		ServiceCode: d.ServiceCode,
		Packages:    make([]carrier.Package, len(d.Packages)),
	}
	for i, p := range d.Packages {
		req.Packages[i] = carrier.Package{
			Length:        p.Length,
			Width:         p.Width,
			Height:        p.Height,
			DimensionUnit: carrier.DimensionUnit(p.DimensionUnit),
			Weight:        p.Weight,
			WeightUnit:    carrier.WeightUnit(p.WeightUnit),
		}
	}
	return req
}

func (d *addressDTO) toDomain() carrier.Address {
	return carrier.Address{
		Company:      d.Company,
		Line1:        d.Line1,
		Line2:        d.Line2,
		City:         d.City,
		ProvinceCode: d.ProvinceCode,
		PostalCode:   d.PostalCode,
		CountryCode:  d.CountryCode,
		ContactName:  d.ContactName,
		ContactPhone: d.ContactPhone,
		ContactEmail: d.ContactEmail,
	}
}

func toResponseDTO(resp *carrier.RateResponse) rateResponseDTO {
	out := rateResponseDTO{
		Carrier:     resp.Carrier,
		RequestedAt: resp.RequestedAt,
		ExpiresAt:   resp.ExpiresAt,
		Quotes:      make([]rateQuoteDTO, len(resp.Quotes)),
	}
	for i, q := range resp.Quotes {
		out.Quotes[i] = rateQuoteDTO{
			ServiceCode: q.ServiceCode,
			ServiceName: q.ServiceName,
			Base:        moneyDTO(q.Cost.Base),
			Total:       moneyDTO(q.Cost.Total),
			TransitDays: q.TransitDays,
			Warnings:    q.Warnings,
		}
		if q.Cost.Surcharge != nil {
			m := moneyDTO(*q.Cost.Surcharge)
			out.Quotes[i].Surcharge = &m
		}
		if q.Cost.Tax != nil {
			m := moneyDTO(*q.Cost.Tax)
			out.Quotes[i].Tax = &m
		}
	}
	return out
}
