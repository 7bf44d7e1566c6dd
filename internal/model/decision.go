package model

import "time"

// Decision is the flat persisted record of one total-loss evaluation.
// The key set is the serialization contract consumed by storage, CSV export
// and the dashboard; ID and StoredAt are assigned by the storage layer.
type Decision struct {
	ID                  string    `json:"id,omitempty"`
	StoredAt            time.Time `json:"stored_at,omitempty"`
	VIN                 string    `json:"vin"`
	Timestamp           time.Time `json:"timestamp"`
	Decision            string    `json:"decision"`
	LossType            string    `json:"loss_type"`
	PolicyType          string    `json:"policy_type"`
	PolicyValue         float64   `json:"policy_value"`
	SalvageValue        float64   `json:"salvage_value"`
	RepairQuote         float64   `json:"repair_quote"`
	Threshold           float64   `json:"threshold"`
	ThresholdPercentage float64   `json:"threshold_percentage"`
	DecisionMargin      float64   `json:"decision_margin"`
	CalculationMethod   string    `json:"calculation_method"`
}

// Vehicle holds descriptive vehicle attributes returned by the valuation
// lookup collaborator and echoed in salvage-request emails.
type Vehicle struct {
	VIN      string `json:"vin"`
	Year     int    `json:"year,omitempty"`
	Make     string `json:"make,omitempty"`
	Model    string `json:"model,omitempty"`
	Variant  string `json:"variant,omitempty"`
	Odometer int    `json:"odometer,omitempty"`
	Location string `json:"location,omitempty"`
}
