package valuation

import (
	"context"

	"crashify360/internal/model"
)

// BatchItem pairs one input case with its outcome: either a computed result
// or a failed-validation summary.
type BatchItem struct {
	Case              model.CaseInput `json:"case"`
	Result            *Result         `json:"-"`
	Record            *model.Decision `json:"result"`
	ValidationSummary string          `json:"validation"`
}

// BatchSummary is the post-pass aggregate over a batch run.
type BatchSummary struct {
	Total       int `json:"total"`
	Successful  int `json:"successful"`
	Failed      int `json:"failed"`
	TotalLosses int `json:"total_losses"`
	Repairable  int `json:"repairable"`
}

// EvaluateBatch applies the full validate-then-compute pipeline to each case
// independently. One case's failure never aborts or affects another case's
// outcome, and outcomes do not depend on ordering or co-presence of other
// cases — there is no shared state between items.
func (e Engine) EvaluateBatch(ctx context.Context, cases []model.CaseInput) []BatchItem {
	items := make([]BatchItem, 0, len(cases))

	for _, c := range cases {
		item := BatchItem{Case: c}

		result, vres, err := e.Evaluate(ctx, c)
		switch {
		case err != nil:
			e.l.Errorf(ctx, "EvaluateBatch: vin=%s: %v", c.VIN, err)
			item.ValidationSummary = "evaluation error: " + err.Error()
		case result != nil:
			record := result.ToDecision()
			item.Result = result
			item.Record = &record
			item.ValidationSummary = vres.Summary()
		default:
			item.ValidationSummary = vres.Summary()
		}

		items = append(items, item)
	}

	return items
}

// Summarize reduces batch items to aggregate counts. It is a pure post-pass
// over the produced list; nothing feeds back into individual outcomes.
func Summarize(items []BatchItem) BatchSummary {
	summary := BatchSummary{Total: len(items)}
	for _, item := range items {
		if item.Result == nil {
			summary.Failed++
			continue
		}
		summary.Successful++
		if item.Result.IsTotalLoss {
			summary.TotalLosses++
		} else {
			summary.Repairable++
		}
	}
	return summary
}
