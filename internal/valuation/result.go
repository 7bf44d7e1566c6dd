package valuation

import (
	"fmt"
	"strings"
	"time"

	"crashify360/internal/model"
	"crashify360/pkg/money"
)

// Result is the immutable outcome of one total-loss evaluation. It is created
// once per successful computation and never mutated; the storage layer assigns
// an identifier to the serialized record without touching computed fields.
type Result struct {
	IsTotalLoss         bool
	Threshold           float64
	PolicyValue         float64
	SalvageValue        float64
	RepairQuote         float64
	LossType            model.LossType
	PolicyType          string
	VIN                 string
	CalculationMethod   string
	Timestamp           time.Time
	ThresholdPercentage float64
	DecisionMargin      float64
}

// Decision returns the classification label.
func (r Result) Decision() string {
	if r.IsTotalLoss {
		return model.DecisionTotalLoss
	}
	return model.DecisionRepairable
}

// basis names the value the threshold was computed from, per loss type.
// The distinct phrasing per loss type is part of the observable contract.
func (r Result) basis() string {
	if r.LossType == model.LossTypeThirdParty {
		return "net value (policy - salvage)"
	}
	return "policy value"
}

// ToDecision serializes the result into the flat persisted record.
// Monetary values are rounded to cents.
func (r Result) ToDecision() model.Decision {
	return model.Decision{
		VIN:                 r.VIN,
		Timestamp:           r.Timestamp,
		Decision:            r.Decision(),
		LossType:            string(r.LossType),
		PolicyType:          r.PolicyType,
		PolicyValue:         money.Round(r.PolicyValue),
		SalvageValue:        money.Round(r.SalvageValue),
		RepairQuote:         money.Round(r.RepairQuote),
		Threshold:           money.Round(r.Threshold),
		ThresholdPercentage: money.Round(r.ThresholdPercentage),
		DecisionMargin:      money.Round(r.DecisionMargin),
		CalculationMethod:   r.CalculationMethod,
	}
}

// Explanation renders the deterministic human-readable evaluation report.
func (r Result) Explanation() string {
	divider := strings.Repeat("-", 68)
	marginSide := "under"
	if r.DecisionMargin > 0 {
		marginSide = "over"
	}
	margin := r.DecisionMargin
	if margin < 0 {
		margin = -margin
	}

	var sb strings.Builder

	sb.WriteString("TOTAL LOSS EVALUATION REPORT\n")
	sb.WriteString(divider + "\n\n")

	sb.WriteString("CASE INFORMATION\n")
	fmt.Fprintf(&sb, "  VIN:                 %s\n", r.VIN)
	fmt.Fprintf(&sb, "  Evaluation Date:     %s\n", r.Timestamp.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(&sb, "  Loss Type:           %s\n", model.LossTypeLabels[r.LossType])
	fmt.Fprintf(&sb, "  Policy Type:         %s\n\n", policyTypeLabel(r.PolicyType))

	sb.WriteString("FINANCIAL BREAKDOWN\n")
	fmt.Fprintf(&sb, "  Policy Value:        %s\n", money.Format(r.PolicyValue))
	fmt.Fprintf(&sb, "  Salvage Value:       %s\n", money.Format(r.SalvageValue))
	fmt.Fprintf(&sb, "  Repair Quote:        %s\n\n", money.Format(r.RepairQuote))

	fmt.Fprintf(&sb, "CALCULATION METHOD: %s\n", r.CalculationMethod)
	fmt.Fprintf(&sb, "  Threshold:           %s\n", money.Format(r.Threshold))
	fmt.Fprintf(&sb, "  Repair vs Threshold: %.1f%%\n", r.ThresholdPercentage)
	fmt.Fprintf(&sb, "  Decision Margin:     %s %s threshold\n\n", money.Format(margin), marginSide)

	sb.WriteString("DECISION\n")
	fmt.Fprintf(&sb, "  %s\n\n", r.Decision())

	sb.WriteString("RATIONALE\n")
	if r.IsTotalLoss {
		fmt.Fprintf(&sb,
			"  The repair quote of %s exceeds the threshold of %s,\n"+
				"  computed as %s.\n\n"+
				"  This vehicle is classified as an ECONOMIC TOTAL LOSS as repair\n"+
				"  costs are not economically viable compared to the %s.\n",
			money.Format(r.RepairQuote), money.Format(r.Threshold),
			r.CalculationMethod, r.basis())
	} else {
		fmt.Fprintf(&sb,
			"  The repair quote of %s does not exceed the threshold of %s,\n"+
				"  computed as %s.\n\n"+
				"  This vehicle is REPAIRABLE and repair is the economically viable\n"+
				"  option relative to the %s.\n",
			money.Format(r.RepairQuote), money.Format(r.Threshold),
			r.CalculationMethod, r.basis())
	}

	sb.WriteString("\n" + divider)
	return sb.String()
}

func policyTypeLabel(policyType string) string {
	words := strings.Split(policyType, "_")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
