package architect

import (
	"context"
	"strings"
)

// Level grades latency tolerance, quality requirements, and budget priority.
type Level string

const (
	LevelLow    Level = "low"
	LevelMedium Level = "medium"
	LevelHigh   Level = "high"
)

// Valid reports whether the level is one of the known grades.
func (l Level) Valid() bool {
	switch l {
	case LevelLow, LevelMedium, LevelHigh:
		return true
	}
	return false
}

// Requirements is the structured intent derived from a use-case description.
// Every field has a defined default, so a Requirements value is always fully
// populated; extraction never returns partial data.
type Requirements struct {
	NeedsFunctionCalling bool  `json:"needs_function_calling"`
	NeedsVision          bool  `json:"needs_vision"`
	NeedsLargeContext    bool  `json:"needs_large_context"`
	MaxLatencyTolerance  Level `json:"max_latency_tolerance"`
	QualityRequirement   Level `json:"quality_requirement"`
	BudgetPriority       Level `json:"budget_priority"`
}

// DefaultRequirements returns the baseline record: all capability needs false,
// all levels medium.
func DefaultRequirements() Requirements {
	return Requirements{
		MaxLatencyTolerance: LevelMedium,
		QualityRequirement:  LevelMedium,
		BudgetPriority:      LevelMedium,
	}
}

// Extractor converts a free-text use-case description into Requirements.
// Implementations must return a fully populated record and must not fail for
// any non-empty input.
type Extractor interface {
	Extract(ctx context.Context, description string) Requirements
}

// keyword trigger tables, matched as case-insensitive substrings
var (
	visionKeywords       = []string{"image", "vision", "photo", "picture"}
	functionKeywords     = []string{"function", "tool", "api call", "action"}
	largeContextKeywords = []string{"large document", "book", "long context", "pdf"}
	budgetKeywords       = []string{"cheap", "budget", "affordable", "low cost"}
	latencyKeywords      = []string{"fast", "real-time", "realtime", "low latency"}
	qualityKeywords      = []string{"high quality", "best", "accurate", "premium"}
)

// KeywordExtractor derives requirements with deterministic keyword matching.
// Identical input always yields identical output.
type KeywordExtractor struct{}

// Extract implements Extractor.
func (KeywordExtractor) Extract(_ context.Context, description string) Requirements {
	req := DefaultRequirements()
	desc := strings.ToLower(description)

	if containsAny(desc, visionKeywords) {
		req.NeedsVision = true
	}
	if containsAny(desc, functionKeywords) {
		req.NeedsFunctionCalling = true
	}
	if containsAny(desc, largeContextKeywords) {
		req.NeedsLargeContext = true
	}
	if containsAny(desc, budgetKeywords) {
		req.BudgetPriority = LevelHigh
	}
	if containsAny(desc, latencyKeywords) {
		req.MaxLatencyTolerance = LevelLow
	}
	if containsAny(desc, qualityKeywords) {
		req.QualityRequirement = LevelHigh
	}

	return req
}

func containsAny(s string, words []string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}
