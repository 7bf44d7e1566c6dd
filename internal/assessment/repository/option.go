package repository

import "time"

// SearchOptions holds the filters for searching stored decisions. Nil or
// zero-valued fields are not applied.
type SearchOptions struct {
	MinPolicyValue *float64
	MaxPolicyValue *float64
	LossType       string
	Decision       string
	From           *time.Time // stored_at lower bound, inclusive
	To             *time.Time // stored_at upper bound, inclusive
	VIN            string
}

// Statistics aggregates the stored decision history.
type Statistics struct {
	TotalDecisions      int            `json:"total_decisions"`
	TotalLosses         int            `json:"total_losses"`
	Repairable          int            `json:"repairable"`
	TotalLossPercentage float64        `json:"total_loss_percentage"`
	AvgPolicyValue      float64        `json:"avg_policy_value"`
	AvgRepairQuote      float64        `json:"avg_repair_quote"`
	LossTypes           map[string]int `json:"loss_types"`
	FirstDecision       *time.Time     `json:"first_decision,omitempty"`
	LastDecision        *time.Time     `json:"last_decision,omitempty"`
}
