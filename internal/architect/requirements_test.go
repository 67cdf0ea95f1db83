package architect

import (
	"context"
	"errors"
	"testing"

	"github.com/everstacklabs/costpilot/internal/llm"
)

// mockLLM implements llm.Client for testing.
type mockLLM struct {
	response string
	err      error
}

func (m *mockLLM) Complete(_ context.Context, _, _ string) (*llm.Response, error) {
	if m.err != nil {
		return nil, m.err
	}
	return &llm.Response{Content: m.response}, nil
}

func TestKeywordExtractorDefaults(t *testing.T) {
	req := KeywordExtractor{}.Extract(context.Background(), "simple text summarizer")

	want := DefaultRequirements()
	if req != want {
		t.Errorf("got %+v, want all defaults %+v", req, want)
	}
}

func TestKeywordExtractorTriggers(t *testing.T) {
	tests := []struct {
		name        string
		description string
		check       func(Requirements) bool
	}{
		{"vision via image", "classify product images", func(r Requirements) bool { return r.NeedsVision }},
		{"vision via photo", "tag PHOTO uploads", func(r Requirements) bool { return r.NeedsVision }},
		{"vision via picture", "describe each picture", func(r Requirements) bool { return r.NeedsVision }},
		{"function calling via tool", "agent with tool use", func(r Requirements) bool { return r.NeedsFunctionCalling }},
		{"function calling via api call", "needs to make an API call", func(r Requirements) bool { return r.NeedsFunctionCalling }},
		{"large context via book", "summarize a whole book", func(r Requirements) bool { return r.NeedsLargeContext }},
		{"large context via pdf", "answer questions over a PDF", func(r Requirements) bool { return r.NeedsLargeContext }},
		{"budget via cheap", "as cheap as possible", func(r Requirements) bool { return r.BudgetPriority == LevelHigh }},
		{"budget via low cost", "low cost classification", func(r Requirements) bool { return r.BudgetPriority == LevelHigh }},
		{"latency via realtime", "realtime transcription", func(r Requirements) bool { return r.MaxLatencyTolerance == LevelLow }},
		{"latency via fast", "must be fast", func(r Requirements) bool { return r.MaxLatencyTolerance == LevelLow }},
		{"quality via best", "the best possible answers", func(r Requirements) bool { return r.QualityRequirement == LevelHigh }},
		{"quality via accurate", "accurate legal analysis", func(r Requirements) bool { return r.QualityRequirement == LevelHigh }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := KeywordExtractor{}.Extract(context.Background(), tt.description)
			if !tt.check(req) {
				t.Errorf("trigger not applied for %q: %+v", tt.description, req)
			}
		})
	}
}

func TestKeywordExtractorDeterministic(t *testing.T) {
	desc := "cheap chatbot with function calling and image support"
	a := KeywordExtractor{}.Extract(context.Background(), desc)
	b := KeywordExtractor{}.Extract(context.Background(), desc)
	if a != b {
		t.Errorf("identical input produced different output: %+v vs %+v", a, b)
	}
}

func TestLLMExtractorFullRecord(t *testing.T) {
	client := &mockLLM{response: `{
		"needs_function_calling": true,
		"needs_vision": false,
		"needs_large_context": true,
		"max_latency_tolerance": "low",
		"quality_requirement": "high",
		"budget_priority": "low"
	}`}

	req, err := NewLLMExtractor(client).ExtractStrict(context.Background(), "anything")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !req.NeedsFunctionCalling || req.NeedsVision || !req.NeedsLargeContext {
		t.Errorf("bool fields wrong: %+v", req)
	}
	if req.MaxLatencyTolerance != LevelLow || req.QualityRequirement != LevelHigh || req.BudgetPriority != LevelLow {
		t.Errorf("level fields wrong: %+v", req)
	}
}

func TestLLMExtractorDegradesPerField(t *testing.T) {
	// Nulls, an unknown level, and a missing field all fall back to the
	// field default without failing the extraction.
	client := &mockLLM{response: `{
		"needs_function_calling": null,
		"needs_vision": true,
		"max_latency_tolerance": "ultra",
		"quality_requirement": "high"
	}`}

	req, err := NewLLMExtractor(client).ExtractStrict(context.Background(), "anything")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if req.NeedsFunctionCalling {
		t.Error("null field should take default false")
	}
	if !req.NeedsVision {
		t.Error("explicit true lost")
	}
	if req.MaxLatencyTolerance != LevelMedium {
		t.Errorf("unknown level should default to medium, got %q", req.MaxLatencyTolerance)
	}
	if req.BudgetPriority != LevelMedium {
		t.Errorf("missing field should default to medium, got %q", req.BudgetPriority)
	}
	if req.QualityRequirement != LevelHigh {
		t.Errorf("valid level lost, got %q", req.QualityRequirement)
	}
}

func TestLLMExtractorFencedResponse(t *testing.T) {
	client := &mockLLM{response: "Sure, here are the requirements:\n```json\n{\"needs_vision\": true}\n```"}

	req, err := NewLLMExtractor(client).ExtractStrict(context.Background(), "anything")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !req.NeedsVision {
		t.Error("fenced JSON not parsed")
	}
}

func TestLLMExtractorUnparseable(t *testing.T) {
	client := &mockLLM{response: "I cannot help with that"}

	if _, err := NewLLMExtractor(client).ExtractStrict(context.Background(), "anything"); err == nil {
		t.Fatal("expected error for unparseable response")
	}
}

func TestFallbackExtractorUsesLLMResult(t *testing.T) {
	client := &mockLLM{response: `{"needs_vision": true}`}
	f := NewFallbackExtractor(NewLLMExtractor(client), 0)

	req := f.Extract(context.Background(), "no vision keywords here")
	if !req.NeedsVision {
		t.Error("LLM result not used")
	}
}

func TestFallbackExtractorFallsBackOnError(t *testing.T) {
	client := &mockLLM{err: errors.New("connection refused")}
	f := NewFallbackExtractor(NewLLMExtractor(client), 0)

	req := f.Extract(context.Background(), "classify product images cheaply... cheap")
	if !req.NeedsVision {
		t.Error("keyword fallback not applied")
	}
	if req.BudgetPriority != LevelHigh {
		t.Error("keyword fallback missed budget trigger")
	}
}

func TestFallbackExtractorNilPrimary(t *testing.T) {
	f := NewFallbackExtractor(nil, 0)

	req := f.Extract(context.Background(), "fast summaries")
	if req.MaxLatencyTolerance != LevelLow {
		t.Error("keyword extraction not applied with nil primary")
	}
}
