package validator

// Rules carries the monetary bounds and enumerations the validator enforces.
// It is plain data so tests can vary bounds without touching shared state.
type Rules struct {
	MinPolicyValue      float64
	MaxPolicyValue      float64
	MinSalvageValue     float64
	MinRepairQuote      float64
	MaxRepairQuoteRatio float64
	PolicyTypes         []string
}

// DefaultRules returns the production rule set.
func DefaultRules() Rules {
	return Rules{
		MinPolicyValue:      1000,
		MaxPolicyValue:      500000,
		MinSalvageValue:     0,
		MinRepairQuote:      0,
		MaxRepairQuoteRatio: 2.0,
		PolicyTypes: []string{
			"comprehensive",
			"third_party_property",
			"third_party_fire_theft",
			"commercial",
		},
	}
}
