package usecase

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"crashify360/internal/assessment"
	"crashify360/internal/validator"
	"crashify360/internal/valuation"
)

const maxNotesLength = 1000

// Assess validates one case, computes the decision and persists the record.
// A validation failure is returned as a result, not an error; a persistence
// failure never invalidates a computed decision.
func (uc *implUseCase) Assess(ctx context.Context, input assessment.AssessInput) (assessment.AssessOutput, error) {
	notes := validator.Sanitize(input.Notes, maxNotesLength)
	if notes != "" {
		uc.l.Debugf(ctx, "Assess: vin=%s notes=%q", input.Case.VIN, notes)
	}

	result, vres, err := uc.engine.Evaluate(ctx, input.Case)
	if err != nil {
		return assessment.AssessOutput{}, fmt.Errorf("evaluate case: %w", err)
	}
	if result == nil {
		uc.l.Infof(ctx, "Assess: rejected vin=%s errors=%d", input.Case.VIN, len(vres.Errors))
		return assessment.AssessOutput{Validation: vres}, nil
	}

	output := assessment.AssessOutput{
		Explanation: result.Explanation(),
		Validation:  vres,
	}

	record := result.ToDecision()
	saved, saveErr := uc.repo.Save(ctx, record)
	if saveErr != nil {
		// The decision stands even when it could not be stored.
		uc.l.Errorf(ctx, "Assess: persist failed vin=%s: %v", record.VIN, saveErr)
		output.Record = &record
		return output, nil
	}

	output.ID = saved.ID
	output.Record = &saved
	output.Persisted = true
	return output, nil
}

// AssessBatch runs the pipeline over many cases and persists the successful
// outcomes. Per-case isolation holds throughout: one invalid case or one
// failed save never affects its neighbours.
func (uc *implUseCase) AssessBatch(ctx context.Context, input assessment.BatchInput) (assessment.BatchOutput, error) {
	if len(input.Cases) == 0 {
		return assessment.BatchOutput{}, assessment.ErrEmptyBatch
	}

	runID := uuid.NewString()
	uc.l.Infof(ctx, "AssessBatch: run=%s cases=%d", runID, len(input.Cases))

	items := uc.engine.EvaluateBatch(ctx, input.Cases)
	for i := range items {
		if items[i].Record == nil {
			continue
		}
		saved, err := uc.repo.Save(ctx, *items[i].Record)
		if err != nil {
			uc.l.Errorf(ctx, "AssessBatch: run=%s persist failed vin=%s: %v", runID, items[i].Record.VIN, err)
			continue
		}
		items[i].Record = &saved
	}

	summary := valuation.Summarize(items)
	uc.l.Infof(ctx, "AssessBatch: run=%s total=%d successful=%d failed=%d total_losses=%d",
		runID, summary.Total, summary.Successful, summary.Failed, summary.TotalLosses)

	return assessment.BatchOutput{
		RunID:   runID,
		Items:   items,
		Summary: summary,
	}, nil
}
