package validate

import (
	"fmt"
	"strings"

	"github.com/everstacklabs/costpilot/internal/catalog"
)

// Severity classifies validation issues.
type Severity int

const (
	SeverityError   Severity = iota // Offering is unusable for optimization
	SeverityWarning                 // Suspicious but usable
)

// Issue represents a single validation problem.
type Issue struct {
	Severity Severity
	Offering string
	Field    string
	Message  string
}

func (i Issue) String() string {
	sev := "ERROR"
	if i.Severity == SeverityWarning {
		sev = "WARN"
	}
	return fmt.Sprintf("[%s] %s: %s: %s", sev, i.Offering, i.Field, i.Message)
}

// Result holds all validation issues.
type Result struct {
	Issues []Issue
}

// HasErrors returns true if there are any blocking errors.
func (r *Result) HasErrors() bool {
	for _, i := range r.Issues {
		if i.Severity == SeverityError {
			return true
		}
	}
	return false
}

// Errors returns only error-severity issues.
func (r *Result) Errors() []Issue {
	var errs []Issue
	for _, i := range r.Issues {
		if i.Severity == SeverityError {
			errs = append(errs, i)
		}
	}
	return errs
}

// Warnings returns only warning-severity issues.
func (r *Result) Warnings() []Issue {
	var warns []Issue
	for _, i := range r.Issues {
		if i.Severity == SeverityWarning {
			warns = append(warns, i)
		}
	}
	return warns
}

// ValidateOffering checks a single offering for schema compliance.
func ValidateOffering(o catalog.Offering) *Result {
	r := &Result{}
	key := o.Key()

	// Required fields
	if o.Provider == "" {
		r.Issues = append(r.Issues, Issue{SeverityError, key, "provider", "required field is empty"})
	}
	if o.Name == "" {
		r.Issues = append(r.Issues, Issue{SeverityError, key, "name", "required field is empty"})
	}
	if o.DisplayName == "" {
		r.Issues = append(r.Issues, Issue{SeverityWarning, key, "display_name", "missing display name"})
	}

	// Pricing sanity
	if o.InputCostPer1M < 0 {
		r.Issues = append(r.Issues, Issue{SeverityError, key, "input_cost_per_1m",
			fmt.Sprintf("value %.6f is negative", o.InputCostPer1M)})
	}
	if o.OutputCostPer1M < 0 {
		r.Issues = append(r.Issues, Issue{SeverityError, key, "output_cost_per_1m",
			fmt.Sprintf("value %.6f is negative", o.OutputCostPer1M)})
	}
	if o.InputCostPer1M > 0 && o.OutputCostPer1M == 0 {
		r.Issues = append(r.Issues, Issue{SeverityWarning, key, "output_cost_per_1m",
			"priced model has zero output cost"})
	}

	// Context window sanity
	if o.ContextWindow <= 0 {
		r.Issues = append(r.Issues, Issue{SeverityError, key, "context_window",
			fmt.Sprintf("value %d must be positive", o.ContextWindow)})
	} else if o.ContextWindow > 10_000_000 {
		r.Issues = append(r.Issues, Issue{SeverityWarning, key, "context_window",
			fmt.Sprintf("value %d is implausibly large", o.ContextWindow)})
	}
	if o.MaxOutputTokens < 0 {
		r.Issues = append(r.Issues, Issue{SeverityError, key, "max_output_tokens",
			fmt.Sprintf("value %d is negative", o.MaxOutputTokens)})
	}
	if o.MaxOutputTokens > 0 && o.ContextWindow > 0 && o.MaxOutputTokens > o.ContextWindow {
		r.Issues = append(r.Issues, Issue{SeverityError, key, "max_output_tokens",
			fmt.Sprintf("value %d exceeds context_window %d", o.MaxOutputTokens, o.ContextWindow)})
	}

	return r
}

// ValidateCatalog validates all offerings plus cross-offering invariants.
func ValidateCatalog(offerings []catalog.Offering) *Result {
	r := &Result{}
	seen := make(map[string]bool, len(offerings))

	for _, o := range offerings {
		key := o.Key()
		if seen[key] {
			r.Issues = append(r.Issues, Issue{SeverityError, key, "name",
				"duplicate (provider, name) pair"})
		}
		seen[key] = true

		r.Issues = append(r.Issues, ValidateOffering(o).Issues...)
	}
	return r
}

// FormatResult formats validation results for display.
func FormatResult(r *Result) string {
	if len(r.Issues) == 0 {
		return "Validation passed: no issues found."
	}

	var b strings.Builder
	errors := r.Errors()
	warnings := r.Warnings()

	if len(errors) > 0 {
		b.WriteString(fmt.Sprintf("Errors (%d):\n", len(errors)))
		for _, e := range errors {
			b.WriteString(fmt.Sprintf("  %s\n", e))
		}
	}

	if len(warnings) > 0 {
		b.WriteString(fmt.Sprintf("Warnings (%d):\n", len(warnings)))
		for _, w := range warnings {
			b.WriteString(fmt.Sprintf("  %s\n", w))
		}
	}

	return b.String()
}
