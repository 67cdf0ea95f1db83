package architect

import (
	"strings"
	"testing"
)

func TestRenderReportSuccess(t *testing.T) {
	r := &Result{
		Status:  StatusSuccess,
		UseCase: "support chatbot",
		Volume:  Volume{MonthlyInputTokens: 10_000_000, MonthlyOutputTokens: 2_000_000},
		CurrentModel: &CurrentModel{
			Name:           "gpt-4",
			MonthlyCost:    "$420.00",
			MonthlyCostRaw: 420,
		},
		Recommendation: &Recommendation{
			Model:          "OpenAI gpt-4o-mini",
			MonthlyCost:    "$2.70",
			MonthlyCostRaw: 2.7,
			Reasoning:      "Supports function calling",
			Action:         "Switch to gpt-4o-mini to save $417.30/month",
		},
		Savings: &Savings{
			Monthly:    "$417.30",
			MonthlyRaw: 417.3,
			Annual:     "$5,007.60",
			AnnualRaw:  5007.6,
			Percentage: "99.4%",
		},
		Alternatives: []Alternative{
			{Provider: "OpenAI", ModelName: "gpt-3.5-turbo", MonthlyCost: "$8.00", Reasons: []string{"Supports function calling"}},
		},
	}

	out := RenderReport(r)

	for _, want := range []string{
		"Use Case: support chatbot",
		"10,000,000 input / 2,000,000 output",
		"Current Model: gpt-4",
		"Recommended: OpenAI gpt-4o-mini",
		"Reasoning: Supports function calling",
		"Action: Switch to gpt-4o-mini",
		"Monthly: $417.30 (99.4%)",
		"Annual: $5,007.60",
		"1. OpenAI gpt-3.5-turbo: $8.00/month",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("report missing %q:\n%s", want, out)
		}
	}
}

func TestRenderReportNoMatch(t *testing.T) {
	r := &Result{
		Status:  StatusNoMatch,
		UseCase: "vision workload",
		Volume:  Volume{MonthlyInputTokens: 1_000_000, MonthlyOutputTokens: 200_000},
	}

	out := RenderReport(r)
	if !strings.Contains(out, "No suitable model found") {
		t.Errorf("missing no-match message:\n%s", out)
	}
	if strings.Contains(out, "Recommended:") {
		t.Errorf("no-match report should not recommend:\n%s", out)
	}
}

func TestRenderReportOmitsNegativeSavings(t *testing.T) {
	r := &Result{
		Status:  StatusSuccess,
		UseCase: "premium workload",
		Volume:  Volume{MonthlyInputTokens: 1_000_000, MonthlyOutputTokens: 200_000},
		Recommendation: &Recommendation{
			Model:       "OpenAI gpt-4",
			MonthlyCost: "$42.00",
			Reasoning:   "Premium quality tier",
		},
		Savings: &Savings{Monthly: "-$10.00", MonthlyRaw: -10, Annual: "-$120.00", AnnualRaw: -120, Percentage: "-31.3%"},
	}

	out := RenderReport(r)
	if strings.Contains(out, "Savings:") {
		t.Errorf("negative savings should not be rendered as a savings section:\n%s", out)
	}
}
