package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"crashify360/internal/assessment"
)

// ErrLookupUnavailable is returned when no valuation client is configured.
var ErrLookupUnavailable = errors.New("valuation lookup not configured")

// Lookup fetches the external market valuation for a VIN. Decision history
// for the same VIN is attached best-effort; a storage hiccup never fails the
// lookup.
func (uc *implUseCase) Lookup(ctx context.Context, vin string) (assessment.LookupOutput, error) {
	vin = strings.ToUpper(strings.TrimSpace(vin))
	if !uc.validator.ValidateVIN(vin) {
		return assessment.LookupOutput{}, assessment.ErrInvalidVIN
	}
	if uc.valuer == nil {
		return assessment.LookupOutput{}, ErrLookupUnavailable
	}

	valuation, err := uc.valuer.MarketValue(ctx, vin)
	if err != nil {
		return assessment.LookupOutput{}, fmt.Errorf("market value lookup: %w", err)
	}

	output := assessment.LookupOutput{Valuation: valuation}

	history, histErr := uc.repo.GetByVIN(ctx, vin)
	if histErr != nil {
		uc.l.Warnf(ctx, "Lookup: history unavailable for vin=%s (non-fatal): %v", vin, histErr)
	} else {
		output.History = history
	}

	return output, nil
}
