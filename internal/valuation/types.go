package valuation

import "strings"

// Thresholds maps policy types to total-loss threshold fractions.
// Default applies to any policy type without an explicit entry.
type Thresholds struct {
	PerPolicyType map[string]float64
	Default       float64
}

// Fraction returns the threshold fraction for a policy type.
func (t Thresholds) Fraction(policyType string) float64 {
	if f, ok := t.PerPolicyType[strings.ToLower(policyType)]; ok {
		return f
	}
	return t.Default
}

// DefaultThresholds returns the production threshold table.
func DefaultThresholds() Thresholds {
	return Thresholds{
		PerPolicyType: map[string]float64{
			"comprehensive":          0.70,
			"third_party_property":   0.70,
			"third_party_fire_theft": 0.70,
			"commercial":             0.65,
			"luxury":                 0.75,
		},
		Default: 0.70,
	}
}
