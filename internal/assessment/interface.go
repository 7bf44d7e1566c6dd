package assessment

import (
	"context"

	"crashify360/internal/assessment/repository"
	"crashify360/internal/model"
)

// UseCase defines the business logic interface for the assessment domain.
type UseCase interface {
	// Assess validates one case, computes the total-loss decision and persists
	// it. Validation failure is a defined outcome, not an error.
	Assess(ctx context.Context, input AssessInput) (AssessOutput, error)

	// AssessBatch runs the full pipeline over many cases with per-case
	// isolation and persists the successful ones.
	AssessBatch(ctx context.Context, input BatchInput) (BatchOutput, error)

	// Detail retrieves a stored decision by its identifier.
	Detail(ctx context.Context, id string) (model.Decision, error)

	// History lists all stored decisions for a VIN, newest first.
	History(ctx context.Context, vin string) ([]model.Decision, error)

	// Recent lists the most recently stored decisions, newest first.
	Recent(ctx context.Context, limit int) ([]model.Decision, error)

	// Search filters the decision history.
	Search(ctx context.Context, input SearchInput) ([]model.Decision, error)

	// Statistics aggregates the stored decision history.
	Statistics(ctx context.Context) (repository.Statistics, error)

	// ExportCSV writes the stored decisions to a CSV file.
	ExportCSV(ctx context.Context, input ExportInput) (ExportOutput, error)

	// Lookup fetches the external market valuation for a VIN.
	Lookup(ctx context.Context, vin string) (LookupOutput, error)

	// ParseSalvage extracts salvage values from free-form offer text.
	ParseSalvage(ctx context.Context, input ParseSalvageInput) (ParseSalvageOutput, error)

	// SendSalvageRequest emails salvage tender requests for a vehicle.
	SendSalvageRequest(ctx context.Context, input SendSalvageInput) (SendSalvageOutput, error)
}
