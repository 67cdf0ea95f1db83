package architect

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/everstacklabs/costpilot/internal/llm"
)

const extractionSystemPrompt = `You are a technical requirements analyst. Extract key requirements from use case descriptions.

Return a JSON object with exactly these fields (use null for unknown):
{
  "needs_function_calling": true/false/null,
  "needs_vision": true/false/null,
  "needs_large_context": true/false/null,
  "max_latency_tolerance": "low"/"medium"/"high"/null,
  "quality_requirement": "low"/"medium"/"high"/null,
  "budget_priority": "low"/"medium"/"high"/null
}

Examples:
- "chatbot for customer support" -> function_calling: true, latency: low
- "analyze PDFs with images" -> vision: true, large_context: true
- "simple text classification" -> quality: low, budget_priority: high

Respond ONLY with the JSON object, no other text.`

// LLMExtractor derives requirements by asking an LLM for a structured record.
// Malformed or missing fields degrade per-field to their defaults; only a
// response with no parseable JSON at all is an error.
type LLMExtractor struct {
	client llm.Client
}

// NewLLMExtractor creates an extractor backed by the given LLM client.
func NewLLMExtractor(client llm.Client) *LLMExtractor {
	return &LLMExtractor{client: client}
}

// rawRequirements uses pointers so absent and null fields are distinguishable
// from explicit values.
type rawRequirements struct {
	NeedsFunctionCalling *bool   `json:"needs_function_calling"`
	NeedsVision          *bool   `json:"needs_vision"`
	NeedsLargeContext    *bool   `json:"needs_large_context"`
	MaxLatencyTolerance  *string `json:"max_latency_tolerance"`
	QualityRequirement   *string `json:"quality_requirement"`
	BudgetPriority       *string `json:"budget_priority"`
}

// ExtractStrict runs one LLM completion and parses the result. Callers that
// need the never-fails Extractor contract should wrap this in a
// FallbackExtractor.
func (e *LLMExtractor) ExtractStrict(ctx context.Context, description string) (Requirements, error) {
	userPrompt := fmt.Sprintf("Use case: %s\n\nExtract requirements as JSON:", description)

	resp, err := e.client.Complete(ctx, extractionSystemPrompt, userPrompt)
	if err != nil {
		return Requirements{}, fmt.Errorf("LLM call failed: %w", err)
	}

	jsonStr, err := llm.ExtractJSON(resp.Content)
	if err != nil {
		return Requirements{}, fmt.Errorf("parsing LLM response: %w", err)
	}

	var raw rawRequirements
	if err := json.Unmarshal([]byte(jsonStr), &raw); err != nil {
		return Requirements{}, fmt.Errorf("unmarshaling requirements: %w", err)
	}

	req := DefaultRequirements()
	if raw.NeedsFunctionCalling != nil {
		req.NeedsFunctionCalling = *raw.NeedsFunctionCalling
	}
	if raw.NeedsVision != nil {
		req.NeedsVision = *raw.NeedsVision
	}
	if raw.NeedsLargeContext != nil {
		req.NeedsLargeContext = *raw.NeedsLargeContext
	}
	if raw.MaxLatencyTolerance != nil {
		if l := Level(*raw.MaxLatencyTolerance); l.Valid() {
			req.MaxLatencyTolerance = l
		}
	}
	if raw.QualityRequirement != nil {
		if l := Level(*raw.QualityRequirement); l.Valid() {
			req.QualityRequirement = l
		}
	}
	if raw.BudgetPriority != nil {
		if l := Level(*raw.BudgetPriority); l.Valid() {
			req.BudgetPriority = l
		}
	}

	return req, nil
}
