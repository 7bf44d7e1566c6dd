// Package valuation holds the total-loss decision engine: the threshold
// arithmetic that turns a validated assessment case into a binary
// classification with a margin and rationale.
package valuation

import (
	"context"
	"fmt"
	"strings"
	"time"

	"crashify360/internal/model"
	"crashify360/internal/validator"
	pkgLog "crashify360/pkg/log"
)

// Engine computes total-loss decisions. It is a stateless value component
// carrying only static configuration; construct one per threshold table and
// share freely.
type Engine struct {
	thresholds Thresholds
	validator  validator.Validator
	l          pkgLog.Logger
}

// New creates an Engine with the given threshold table and validator.
func New(thresholds Thresholds, v validator.Validator, l pkgLog.Logger) Engine {
	return Engine{
		thresholds: thresholds,
		validator:  v,
		l:          l,
	}
}

// Evaluate validates the case and, when valid, computes the decision.
// An invalid case yields (nil, outcome, nil): a defined, non-exceptional
// result, not a failure. The error return is reserved for invariant
// violations (ErrUnknownLossType).
func (e Engine) Evaluate(ctx context.Context, in model.CaseInput) (*Result, validator.Result, error) {
	vres := e.validator.ValidateCase(in)
	if !vres.IsValid() {
		e.l.Warnf(ctx, "Evaluate: validation failed vin=%s errors=%d", in.VIN, len(vres.Errors))
		return nil, vres, nil
	}

	result, err := e.compute(ctx, in)
	return result, vres, err
}

// EvaluatePrevalidated computes a decision without re-validating. Reserved
// for trusted callers that validated the case upstream.
func (e Engine) EvaluatePrevalidated(ctx context.Context, in model.CaseInput) (*Result, error) {
	return e.compute(ctx, in)
}

func (e Engine) compute(ctx context.Context, in model.CaseInput) (*Result, error) {
	fraction := e.thresholds.Fraction(in.PolicyType)

	var (
		threshold float64
		method    string
	)

	lossType := model.LossType(strings.ToLower(in.LossType))
	switch lossType {
	case model.LossTypeClient:
		threshold = in.PolicyValue * fraction
		method = fmt.Sprintf("%.0f%% of Policy Value", fraction*100)
	case model.LossTypeThirdParty:
		// Net value is policy minus salvage; validation guarantees it is
		// never negative (salvage <= policy).
		netValue := in.PolicyValue - in.SalvageValue
		threshold = netValue * fraction
		method = fmt.Sprintf("%.0f%% of Net Value (Policy - Salvage)", fraction*100)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownLossType, in.LossType)
	}

	// Strict inequality: a repair quote exactly equal to the threshold is
	// REPAIRABLE.
	isTotalLoss := in.RepairQuote > threshold

	thresholdPercentage := 0.0
	if threshold > 0 {
		thresholdPercentage = in.RepairQuote / threshold * 100
	}

	result := &Result{
		IsTotalLoss:         isTotalLoss,
		Threshold:           threshold,
		PolicyValue:         in.PolicyValue,
		SalvageValue:        in.SalvageValue,
		RepairQuote:         in.RepairQuote,
		LossType:            lossType,
		PolicyType:          strings.ToLower(in.PolicyType),
		VIN:                 strings.ToUpper(strings.TrimSpace(in.VIN)),
		CalculationMethod:   method,
		Timestamp:           time.Now(),
		ThresholdPercentage: thresholdPercentage,
		DecisionMargin:      in.RepairQuote - threshold,
	}

	e.l.Infof(ctx, "Evaluate: vin=%s decision=%s threshold=%.2f repair=%.2f margin=%.2f method=%q",
		result.VIN, result.Decision(), threshold, in.RepairQuote, result.DecisionMargin, method)

	return result, nil
}
