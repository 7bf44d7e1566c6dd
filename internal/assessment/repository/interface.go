package repository

import (
	"context"
	"errors"

	"crashify360/internal/model"
)

// ErrNotFound is returned when no decision matches the requested identifier.
var ErrNotFound = errors.New("decision not found")

// DecisionRepository is the interface for decision persistence.
type DecisionRepository interface {
	// Save appends a decision and returns it with the assigned ID and
	// stored-at timestamp. Computed fields are never modified.
	Save(ctx context.Context, decision model.Decision) (model.Decision, error)

	Get(ctx context.Context, id string) (model.Decision, error)
	GetByVIN(ctx context.Context, vin string) ([]model.Decision, error)
	Recent(ctx context.Context, limit int) ([]model.Decision, error)
	Search(ctx context.Context, opt SearchOptions) ([]model.Decision, error)

	Statistics(ctx context.Context) (Statistics, error)

	// ExportCSV writes all stored decisions to path and returns the row count.
	ExportCSV(ctx context.Context, path string) (int, error)

	// Clear removes every stored decision.
	Clear(ctx context.Context) error
}
