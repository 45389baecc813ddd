package carrier

import (
	"fmt"
	"net/mail"
	"strings"
)

// ValidateAddress checks the structural invariants of an address. The check
// is generic and read-only, so carriers may run it concurrently against a
// shared request; carrier-specific acceptability rules go in
// Carrier.ValidateAddress.
func ValidateAddress(a *Address) error {
	violations := addressViolations(a, "")
	if len(violations) > 0 {
		return NewValidationError(strings.Join(violations, "; "))
	}
	return nil
}

// ValidatePackage checks the structural invariants of a package.
func ValidatePackage(p *Package) error {
	violations := packageViolations(p, "")
	if len(violations) > 0 {
		return NewValidationError(strings.Join(violations, "; "))
	}
	return nil
}

// ValidateRateRequest checks a full rate request, collecting every violation
// into a single validation error. It must succeed before any network call.
func ValidateRateRequest(req *RateRequest) error {
	var violations []string
	violations = append(violations, addressViolations(&req.Origin, "origin ")...)
	violations = append(violations, addressViolations(&req.Destination, "destination ")...)

	if len(req.Packages) == 0 {
		violations = append(violations, "at least one package is required")
	}
	for i := range req.Packages {
		prefix := fmt.Sprintf("package %d ", i+1)
		violations = append(violations, packageViolations(&req.Packages[i], prefix)...)
	}

	if len(violations) > 0 {
		return NewValidationError(strings.Join(violations, "; "))
	}

	// Country codes are normalized here, before any fan-out, so the
	// per-carrier checks that run concurrently afterwards never write to
	// the request.
	req.Origin.CountryCode = strings.ToUpper(req.Origin.CountryCode)
	req.Destination.CountryCode = strings.ToUpper(req.Destination.CountryCode)
	return nil
}

func addressViolations(a *Address, prefix string) []string {
	var violations []string

	if strings.TrimSpace(a.Line1) == "" {
		violations = append(violations, prefix+"street line 1 is required")
	}
	if strings.TrimSpace(a.City) == "" {
		violations = append(violations, prefix+"city is required")
	}
	if strings.TrimSpace(a.PostalCode) == "" {
		violations = append(violations, prefix+"postal code is required")
	}
	if a.ProvinceCode != "" && (len(a.ProvinceCode) < 2 || len(a.ProvinceCode) > 3) {
		violations = append(violations, prefix+"state/province code must be 2-3 characters")
	}
	if len(a.CountryCode) != 2 {
		violations = append(violations, prefix+"country code must be exactly 2 characters")
	}
	if a.ContactEmail != "" {
		if _, err := mail.ParseAddress(a.ContactEmail); err != nil {
			violations = append(violations, prefix+"contact email is not a valid email address")
		}
	}

	return violations
}

func packageViolations(p *Package, prefix string) []string {
	var violations []string

	if p.Length <= 0 || p.Width <= 0 || p.Height <= 0 {
		violations = append(violations, prefix+"dimensions must be positive")
	}
	if p.Weight <= 0 {
		violations = append(violations, prefix+"weight must be positive")
	}
	switch p.DimensionUnit {
	case DimensionIN, DimensionCM:
	default:
		violations = append(violations, fmt.Sprintf("%sdimension unit must be %q or %q", prefix, DimensionIN, DimensionCM))
	}
	switch p.WeightUnit {
	case WeightLB, WeightKG:
	default:
		violations = append(violations, fmt.Sprintf("%sweight unit must be %q or %q", prefix, WeightLB, WeightKG))
	}

	return violations
}
