// Package phone provides phone number utilities.
// This is part of the platform layer and contains no business logic.
package phone

import (
	"strings"

	"github.com/nyaruka/phonenumbers"
)

// DefaultRegion is used when no region is configured.
const DefaultRegion = "NL"

// Info is descriptive metadata about an international number.
type Info struct {
	Region      string
	CountryCode int
	E164        string
	Valid       bool
}

// Normalizer formats numbers given in national notation against a default region.
type Normalizer struct {
	region string
}

// NewNormalizer returns a Normalizer for region, falling back to DefaultRegion.
func NewNormalizer(region string) *Normalizer {
	region = strings.ToUpper(strings.TrimSpace(region))
	if region == "" {
		region = DefaultRegion
	}
	return &Normalizer{region: region}
}

// Region returns the default region in use.
func (n *Normalizer) Region() string {
	return n.region
}

// NormalizeE164 formats a phone number to E.164. If parsing fails, it returns the trimmed input.
func (n *Normalizer) NormalizeE164(input string) string {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return trimmed
	}

	number, err := phonenumbers.Parse(trimmed, n.region)
	if err != nil {
		return trimmed
	}

	if !phonenumbers.IsValidNumber(number) {
		return trimmed
	}

	return phonenumbers.Format(number, phonenumbers.E164)
}

// Lookup describes digits given in international form without the leading
// '+'. It returns a zero Info when the digits cannot be parsed.
func Lookup(digits string) Info {
	if digits == "" {
		return Info{}
	}

	number, err := phonenumbers.Parse("+"+digits, "")
	if err != nil {
		return Info{}
	}

	return Info{
		Region:      phonenumbers.GetRegionCodeForNumber(number),
		CountryCode: int(number.GetCountryCode()),
		E164:        phonenumbers.Format(number, phonenumbers.E164),
		Valid:       phonenumbers.IsValidNumber(number),
	}
}
