package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"crashify360/internal/assessment"
	"crashify360/internal/assessment/repository"
	"crashify360/internal/model"
)

// Detail retrieves a stored decision by its identifier.
func (uc *implUseCase) Detail(ctx context.Context, id string) (model.Decision, error) {
	decision, err := uc.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return model.Decision{}, assessment.ErrDecisionNotFound
		}
		return model.Decision{}, fmt.Errorf("get decision: %w", err)
	}
	return decision, nil
}

// History lists the stored decisions for a VIN, newest first.
func (uc *implUseCase) History(ctx context.Context, vin string) ([]model.Decision, error) {
	vin = strings.ToUpper(strings.TrimSpace(vin))
	if !uc.validator.ValidateVIN(vin) {
		return nil, assessment.ErrInvalidVIN
	}

	decisions, err := uc.repo.GetByVIN(ctx, vin)
	if err != nil {
		return nil, fmt.Errorf("get decisions by vin: %w", err)
	}
	return decisions, nil
}

// defaultRecentLimit bounds an unqualified recent-decisions listing.
const defaultRecentLimit = 20

// Recent lists the most recently stored decisions, newest first.
func (uc *implUseCase) Recent(ctx context.Context, limit int) ([]model.Decision, error) {
	if limit <= 0 {
		limit = defaultRecentLimit
	}

	decisions, err := uc.repo.Recent(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("get recent decisions: %w", err)
	}
	return decisions, nil
}

// Search filters the decision history.
func (uc *implUseCase) Search(ctx context.Context, input assessment.SearchInput) ([]model.Decision, error) {
	decisions, err := uc.repo.Search(ctx, repository.SearchOptions{
		MinPolicyValue: input.MinPolicyValue,
		MaxPolicyValue: input.MaxPolicyValue,
		LossType:       input.LossType,
		Decision:       input.Decision,
		From:           input.From,
		To:             input.To,
		VIN:            strings.ToUpper(strings.TrimSpace(input.VIN)),
	})
	if err != nil {
		return nil, fmt.Errorf("search decisions: %w", err)
	}
	return decisions, nil
}

// Statistics aggregates the stored decision history.
func (uc *implUseCase) Statistics(ctx context.Context) (repository.Statistics, error) {
	stats, err := uc.repo.Statistics(ctx)
	if err != nil {
		return repository.Statistics{}, fmt.Errorf("compute statistics: %w", err)
	}
	return stats, nil
}
