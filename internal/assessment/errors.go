package assessment

import "errors"

// Domain-specific errors for the assessment package.
var (
	ErrDecisionNotFound = errors.New("decision not found")
	ErrEmptyBatch       = errors.New("batch contains no cases")
	ErrEmptyText        = errors.New("salvage text is empty")
	ErrNoRecipients     = errors.New("no recipients given")
	ErrInvalidVIN       = errors.New("invalid vin format")
)
