package architect

import (
	"fmt"
	"strings"
)

const reportRule = "============================================================"

// RenderReport formats a result as a human-readable text report for CLI
// output.
func RenderReport(r *Result) string {
	var b strings.Builder

	b.WriteString(reportRule + "\n")
	b.WriteString("Cost Optimization Report\n")
	b.WriteString(reportRule + "\n\n")

	b.WriteString(fmt.Sprintf("Use Case: %s\n", r.UseCase))
	b.WriteString(fmt.Sprintf("Volume: %s input / %s output tokens/month\n\n",
		groupThousands(fmt.Sprintf("%d", r.Volume.MonthlyInputTokens)),
		groupThousands(fmt.Sprintf("%d", r.Volume.MonthlyOutputTokens))))

	if r.Status == StatusNoMatch {
		b.WriteString("No suitable model found for the extracted requirements.\n")
		b.WriteString(reportRule + "\n")
		return b.String()
	}

	if r.CurrentModel != nil {
		b.WriteString(fmt.Sprintf("Current Model: %s\n", r.CurrentModel.Name))
		b.WriteString(fmt.Sprintf("Current Cost: %s/month\n\n", r.CurrentModel.MonthlyCost))
	}

	if r.Recommendation != nil {
		b.WriteString(fmt.Sprintf("Recommended: %s\n", r.Recommendation.Model))
		b.WriteString(fmt.Sprintf("Estimated Cost: %s/month\n", r.Recommendation.MonthlyCost))
		b.WriteString(fmt.Sprintf("Reasoning: %s\n", r.Recommendation.Reasoning))
		if r.Recommendation.Action != "" {
			b.WriteString(fmt.Sprintf("Action: %s\n", r.Recommendation.Action))
		}
		b.WriteString("\n")
	}

	if r.Savings != nil && r.Savings.MonthlyRaw > 0 {
		b.WriteString("Savings:\n")
		b.WriteString(fmt.Sprintf("  Monthly: %s (%s)\n", r.Savings.Monthly, r.Savings.Percentage))
		b.WriteString(fmt.Sprintf("  Annual: %s\n\n", r.Savings.Annual))
	}

	if len(r.Alternatives) > 0 {
		b.WriteString("Alternative Options:\n")
		for i, alt := range r.Alternatives {
			b.WriteString(fmt.Sprintf("  %d. %s %s: %s/month\n", i+1, alt.Provider, alt.ModelName, alt.MonthlyCost))
			if len(alt.Reasons) > 0 {
				b.WriteString(fmt.Sprintf("     %s\n", strings.Join(alt.Reasons, ", ")))
			}
		}
		b.WriteString("\n")
	}

	b.WriteString(reportRule + "\n")
	return b.String()
}
