package model

// CaseInput carries the raw inputs of one assessment case. It is constructed
// per call, validated, consumed by the decision engine and discarded; it is
// never mutated after validation.
type CaseInput struct {
	VIN          string  `json:"vin"`
	PolicyType   string  `json:"policy_type"`
	PolicyValue  float64 `json:"policy_value"`
	SalvageValue float64 `json:"salvage_value"`
	RepairQuote  float64 `json:"repair_quote"`
	LossType     string  `json:"loss_type"`

	// Optional contact details, validated only when present.
	OwnerEmail string `json:"owner_email,omitempty"`
	OwnerPhone string `json:"owner_phone,omitempty"`
}
