package valuation_test

import (
	"context"
	"strings"
	"testing"

	"crashify360/internal/model"
	"crashify360/internal/valuation"
)

func TestEvaluateBatch(t *testing.T) {
	engine := newEngine()
	ctx := context.Background()

	cases := []model.CaseInput{
		{
			VIN:         "1HGBH41JXMN109186",
			PolicyType:  "comprehensive",
			PolicyValue: 20000, SalvageValue: 5000, RepairQuote: 15000,
			LossType: "client",
		},
		{
			VIN:         "BADVIN",
			PolicyType:  "comprehensive",
			PolicyValue: 20000, SalvageValue: 5000, RepairQuote: 15000,
			LossType: "client",
		},
		{
			VIN:         "2HGBH41JXMN109187",
			PolicyType:  "comprehensive",
			PolicyValue: 30000, SalvageValue: 5000, RepairQuote: 18000,
			LossType: "client",
		},
	}

	items := engine.EvaluateBatch(ctx, cases)
	if len(items) != len(cases) {
		t.Fatalf("got %d items, want %d", len(items), len(cases))
	}

	t.Run("Per Case Isolation", func(t *testing.T) {
		if items[0].Result == nil || !items[0].Result.IsTotalLoss {
			t.Error("first case must be TOTAL LOSS despite the invalid neighbour")
		}
		if items[1].Result != nil {
			t.Error("invalid case must carry no result")
		}
		if items[1].Record != nil {
			t.Error("invalid case must carry no record")
		}
		if items[2].Result == nil || items[2].Result.IsTotalLoss {
			t.Error("third case must be REPAIRABLE")
		}
	})

	t.Run("Matches Single Evaluation", func(t *testing.T) {
		for i, c := range cases {
			single, _, err := engine.Evaluate(ctx, c)
			if err != nil {
				t.Fatalf("case %d: %v", i, err)
			}
			batch := items[i].Result
			if (single == nil) != (batch == nil) {
				t.Fatalf("case %d: single=%v batch=%v", i, single, batch)
			}
			if single == nil {
				continue
			}
			if single.IsTotalLoss != batch.IsTotalLoss ||
				!almostEqual(single.Threshold, batch.Threshold) ||
				!almostEqual(single.DecisionMargin, batch.DecisionMargin) {
				t.Errorf("case %d: batch outcome diverges from single evaluation", i)
			}
		}
	})

	t.Run("Validation Summary", func(t *testing.T) {
		if !strings.Contains(items[0].ValidationSummary, "All validations passed") {
			t.Errorf("summary = %q", items[0].ValidationSummary)
		}
		if !strings.Contains(items[1].ValidationSummary, "Validation failed") {
			t.Errorf("summary = %q", items[1].ValidationSummary)
		}
	})

	t.Run("Summarize", func(t *testing.T) {
		summary := valuation.Summarize(items)
		if summary.Total != 3 || summary.Successful != 2 || summary.Failed != 1 {
			t.Errorf("counts = %+v", summary)
		}
		if summary.TotalLosses != 1 || summary.Repairable != 1 {
			t.Errorf("decision counts = %+v", summary)
		}
	})
}

func TestExplanation(t *testing.T) {
	engine := newEngine()
	ctx := context.Background()

	clientResult, _, err := engine.Evaluate(ctx, model.CaseInput{
		VIN:         "1HGBH41JXMN109186",
		PolicyType:  "comprehensive",
		PolicyValue: 20000, SalvageValue: 5000, RepairQuote: 15000,
		LossType: "client",
	})
	if err != nil {
		t.Fatal(err)
	}
	thirdPartyResult, _, err := engine.Evaluate(ctx, model.CaseInput{
		VIN:         "1HGBH41JXMN109186",
		PolicyType:  "comprehensive",
		PolicyValue: 25000, SalvageValue: 7000, RepairQuote: 13000,
		LossType: "third_party",
	})
	if err != nil {
		t.Fatal(err)
	}

	t.Run("Basis Phrasing Distinguishes Loss Types", func(t *testing.T) {
		client := clientResult.Explanation()
		thirdParty := thirdPartyResult.Explanation()

		if !strings.Contains(thirdParty, "net value (policy - salvage)") {
			t.Error("third party rationale must name the net value basis")
		}
		if strings.Contains(client, "net value (policy - salvage)") {
			t.Error("client rationale must not name the net value basis")
		}
		if !strings.Contains(client, "policy value") {
			t.Error("client rationale must name the policy value basis")
		}
	})

	t.Run("Report Content", func(t *testing.T) {
		report := clientResult.Explanation()
		for _, want := range []string{
			"TOTAL LOSS EVALUATION REPORT",
			"1HGBH41JXMN109186",
			"Client Vehicle (Own Damage)",
			"$20,000.00",
			"$14,000.00",
			"70% of Policy Value",
			"TOTAL LOSS",
			"exceeds the threshold",
		} {
			if !strings.Contains(report, want) {
				t.Errorf("report missing %q", want)
			}
		}
	})

	t.Run("Repairable Phrasing", func(t *testing.T) {
		result, _, err := engine.Evaluate(ctx, model.CaseInput{
			VIN:         "1HGBH41JXMN109186",
			PolicyType:  "comprehensive",
			PolicyValue: 30000, SalvageValue: 5000, RepairQuote: 18000,
			LossType: "client",
		})
		if err != nil {
			t.Fatal(err)
		}
		report := result.Explanation()
		if !strings.Contains(report, "does not exceed the threshold") {
			t.Error("repairable rationale must say the threshold was not exceeded")
		}
		if !strings.Contains(report, "REPAIRABLE") {
			t.Error("report missing REPAIRABLE")
		}
	})
}

func TestToDecisionRounding(t *testing.T) {
	engine := newEngine()

	result, _, err := engine.Evaluate(context.Background(), model.CaseInput{
		VIN:         "1HGBH41JXMN109186",
		PolicyType:  "comprehensive",
		PolicyValue: 20000.005, SalvageValue: 5000, RepairQuote: 15000.333,
		LossType: "client",
	})
	if err != nil {
		t.Fatal(err)
	}
	record := result.ToDecision()
	if record.RepairQuote != 15000.33 {
		t.Errorf("repair quote = %v, want rounded to cents", record.RepairQuote)
	}
	if record.Decision != "TOTAL LOSS" {
		t.Errorf("decision = %q", record.Decision)
	}
	if record.LossType != "client" {
		t.Errorf("loss type = %q", record.LossType)
	}
}
