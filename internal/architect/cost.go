package architect

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/everstacklabs/costpilot/internal/catalog"
)

// DefaultOutputTokens is the documented heuristic used when the caller does
// not supply an output-token volume: 20% of the input volume.
func DefaultOutputTokens(inputTokens int64) int64 {
	return inputTokens / 5
}

// MonthlyCost computes the exact monthly cost in USD for an offering at the
// given token volumes. No rounding happens here; display formatting rounds.
func MonthlyCost(o catalog.Offering, inputTokens, outputTokens int64) float64 {
	inputCost := float64(inputTokens) / 1_000_000 * o.InputCostPer1M
	outputCost := float64(outputTokens) / 1_000_000 * o.OutputCostPer1M
	return inputCost + outputCost
}

// SavingsFigures compares a current monthly cost against a recommended one.
// Monthly may be negative: a more expensive recommendation is reported
// truthfully, never clamped.
type SavingsFigures struct {
	Monthly float64
	Annual  float64
	// Percentage is only meaningful when the current cost is positive;
	// callers must check HasPercentage.
	Percentage    float64
	HasPercentage bool
}

// ComputeSavings derives the savings comparison between a current and a
// recommended monthly cost.
func ComputeSavings(currentMonthly, recommendedMonthly float64) SavingsFigures {
	monthly := currentMonthly - recommendedMonthly
	s := SavingsFigures{
		Monthly: monthly,
		Annual:  monthly * 12,
	}
	if currentMonthly > 0 {
		s.Percentage = monthly / currentMonthly * 100
		s.HasPercentage = true
	}
	return s
}

// FormatUSD renders a dollar amount with thousands grouping and two decimal
// places, e.g. "$1,234.50" or "-$0.35".
func FormatUSD(v float64) string {
	sign := ""
	if v < 0 || (v == 0 && math.Signbit(v)) {
		sign = "-"
		v = math.Abs(v)
	}

	s := strconv.FormatFloat(v, 'f', 2, 64)
	parts := strings.SplitN(s, ".", 2)
	return sign + "$" + groupThousands(parts[0]) + "." + parts[1]
}

// FormatPercent renders a percentage with one decimal place, e.g. "42.5%".
func FormatPercent(v float64) string {
	return fmt.Sprintf("%.1f%%", v)
}

func groupThousands(digits string) string {
	n := len(digits)
	if n <= 3 {
		return digits
	}

	var b strings.Builder
	head := n % 3
	if head > 0 {
		b.WriteString(digits[:head])
	}
	for i := head; i < n; i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}
