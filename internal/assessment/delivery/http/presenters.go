package http

import (
	"time"

	"crashify360/internal/assessment"
	"crashify360/internal/assessment/repository"
	"crashify360/internal/model"
	"crashify360/internal/valuation"
	"crashify360/pkg/autograp"
	"crashify360/pkg/salvageparse"
)

// --- Request DTOs ---

// caseReq carries no binding rules on purpose: missing or zero fields flow
// through to the validator, which attributes every failure to its field.
type caseReq struct {
	VIN          string  `json:"vin"`
	PolicyType   string  `json:"policy_type"`
	PolicyValue  float64 `json:"policy_value"`
	SalvageValue float64 `json:"salvage_value"`
	RepairQuote  float64 `json:"repair_quote"`
	LossType     string  `json:"loss_type"`
	OwnerEmail   string  `json:"owner_email"`
	OwnerPhone   string  `json:"owner_phone"`
}

func (r caseReq) toCase() model.CaseInput {
	return model.CaseInput{
		VIN:          r.VIN,
		PolicyType:   r.PolicyType,
		PolicyValue:  r.PolicyValue,
		SalvageValue: r.SalvageValue,
		RepairQuote:  r.RepairQuote,
		LossType:     r.LossType,
		OwnerEmail:   r.OwnerEmail,
		OwnerPhone:   r.OwnerPhone,
	}
}

type assessReq struct {
	caseReq
	Notes string `json:"notes"`
}

func (r assessReq) toInput() assessment.AssessInput {
	return assessment.AssessInput{
		Case:  r.toCase(),
		Notes: r.Notes,
	}
}

type batchReq struct {
	Cases []caseReq `json:"cases" binding:"required"`
}

func (r batchReq) toInput() assessment.BatchInput {
	cases := make([]model.CaseInput, len(r.Cases))
	for i, c := range r.Cases {
		cases[i] = c.toCase()
	}
	return assessment.BatchInput{Cases: cases}
}

type searchReq struct {
	VIN            string   `form:"vin"`
	MinPolicyValue *float64 `form:"min_policy_value"`
	MaxPolicyValue *float64 `form:"max_policy_value"`
	LossType       string   `form:"loss_type"`
	Decision       string   `form:"decision"`
	From           string   `form:"from"` // RFC3339
	To             string   `form:"to"`   // RFC3339
}

func (r searchReq) toInput() (assessment.SearchInput, error) {
	input := assessment.SearchInput{
		VIN:            r.VIN,
		MinPolicyValue: r.MinPolicyValue,
		MaxPolicyValue: r.MaxPolicyValue,
		LossType:       r.LossType,
		Decision:       r.Decision,
	}
	if r.From != "" {
		from, err := time.Parse(time.RFC3339, r.From)
		if err != nil {
			return input, errInvalidDateRange
		}
		input.From = &from
	}
	if r.To != "" {
		to, err := time.Parse(time.RFC3339, r.To)
		if err != nil {
			return input, errInvalidDateRange
		}
		input.To = &to
	}
	return input, nil
}

type exportReq struct {
	Path string `json:"path"`
}

type parseSalvageReq struct {
	Text        string  `json:"text" binding:"required"`
	PolicyValue float64 `json:"policy_value"`
}

func (r parseSalvageReq) toInput() assessment.ParseSalvageInput {
	return assessment.ParseSalvageInput{
		Text:        r.Text,
		PolicyValue: r.PolicyValue,
	}
}

type vehicleReq struct {
	VIN      string `json:"vin"      binding:"required"`
	Year     int    `json:"year"`
	Make     string `json:"make"`
	Model    string `json:"model"`
	Variant  string `json:"variant"`
	Odometer int    `json:"odometer"`
	Location string `json:"location"`
}

type sendSalvageReq struct {
	Vehicle        vehicleReq `json:"vehicle"     binding:"required"`
	PolicyValue    float64    `json:"policy_value"`
	LossType       string     `json:"loss_type"   binding:"required"`
	Recipients     []string   `json:"recipients"  binding:"required"`
	CC             []string   `json:"cc"`
	Photos         []string   `json:"photos"`
	AdditionalInfo string     `json:"additional_info"`
}

func (r sendSalvageReq) toInput() assessment.SendSalvageInput {
	return assessment.SendSalvageInput{
		Vehicle: model.Vehicle{
			VIN:      r.Vehicle.VIN,
			Year:     r.Vehicle.Year,
			Make:     r.Vehicle.Make,
			Model:    r.Vehicle.Model,
			Variant:  r.Vehicle.Variant,
			Odometer: r.Vehicle.Odometer,
			Location: r.Vehicle.Location,
		},
		PolicyValue:    r.PolicyValue,
		LossType:       model.LossType(r.LossType),
		Recipients:     r.Recipients,
		CC:             r.CC,
		Photos:         r.Photos,
		AdditionalInfo: r.AdditionalInfo,
	}
}

// --- Response DTOs ---

type decisionResp struct {
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

func newDecisionResp(d model.Decision) decisionResp {
	return decisionResp{
		ID:                  d.ID,
		StoredAt:            d.StoredAt,
		VIN:                 d.VIN,
		Timestamp:           d.Timestamp,
		Decision:            d.Decision,
		LossType:            d.LossType,
		PolicyType:          d.PolicyType,
		PolicyValue:         d.PolicyValue,
		SalvageValue:        d.SalvageValue,
		RepairQuote:         d.RepairQuote,
		Threshold:           d.Threshold,
		ThresholdPercentage: d.ThresholdPercentage,
		DecisionMargin:      d.DecisionMargin,
		CalculationMethod:   d.CalculationMethod,
	}
}

type assessResp struct {
	ID          string        `json:"id,omitempty"`
	Decision    *decisionResp `json:"decision,omitempty"`
	Explanation string        `json:"explanation,omitempty"`
	Warnings    any           `json:"warnings,omitempty"`
	Persisted   bool          `json:"persisted"`
}

func (h *handler) newAssessResp(out assessment.AssessOutput) assessResp {
	resp := assessResp{
		ID:          out.ID,
		Explanation: out.Explanation,
		Persisted:   out.Persisted,
	}
	if out.Record != nil {
		d := newDecisionResp(*out.Record)
		resp.Decision = &d
	}
	if len(out.Validation.Warnings) > 0 {
		resp.Warnings = out.Validation.Warnings
	}
	return resp
}

type batchItemResp struct {
	Case       model.CaseInput `json:"case"`
	Decision   *decisionResp   `json:"decision,omitempty"`
	Validation string          `json:"validation"`
}

type batchResp struct {
	RunID   string                 `json:"run_id"`
	Summary valuation.BatchSummary `json:"summary"`
	Items   []batchItemResp        `json:"items"`
}

func (h *handler) newBatchResp(out assessment.BatchOutput) batchResp {
	items := make([]batchItemResp, len(out.Items))
	for i, item := range out.Items {
		items[i] = batchItemResp{
			Case:       item.Case,
			Validation: item.ValidationSummary,
		}
		if item.Record != nil {
			d := newDecisionResp(*item.Record)
			items[i].Decision = &d
		}
	}
	return batchResp{
		RunID:   out.RunID,
		Summary: out.Summary,
		Items:   items,
	}
}

type decisionListResp struct {
	Decisions []decisionResp `json:"decisions"`
	Count     int            `json:"count"`
}

func newDecisionListResp(decisions []model.Decision) decisionListResp {
	items := make([]decisionResp, len(decisions))
	for i, d := range decisions {
		items[i] = newDecisionResp(d)
	}
	return decisionListResp{Decisions: items, Count: len(items)}
}

type statisticsResp struct {
	Statistics repository.Statistics `json:"statistics"`
}

type exportResp struct {
	Path  string `json:"path"`
	Count int    `json:"count"`
}

type lookupResp struct {
	Valuation autograp.Valuation `json:"valuation"`
	History   []decisionResp     `json:"history"`
}

func (h *handler) newLookupResp(out assessment.LookupOutput) lookupResp {
	history := make([]decisionResp, len(out.History))
	for i, d := range out.History {
		history[i] = newDecisionResp(d)
	}
	return lookupResp{
		Valuation: out.Valuation,
		History:   history,
	}
}

type parseSalvageResp struct {
	Result  salvageparse.ParseResult `json:"result"`
	Valid   bool                     `json:"valid"`
	Message string                   `json:"message,omitempty"`
}

type sendSalvageResp struct {
	Sent   int      `json:"sent"`
	Failed int      `json:"failed"`
	Errors []string `json:"errors,omitempty"`
}
