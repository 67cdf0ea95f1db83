package architect

import (
	"context"
	"log/slog"
	"time"
)

// FallbackExtractor tries the LLM-backed extractor once under a bounded
// timeout and falls back to deterministic keyword extraction on any failure.
// The failure is logged, never surfaced; there is no retry, so latency stays
// bounded and behavior stays deterministic under repeated failures.
type FallbackExtractor struct {
	primary  *LLMExtractor
	fallback KeywordExtractor
	timeout  time.Duration
}

// NewFallbackExtractor wires the fallback policy. A nil primary means
// keyword-only extraction (no LLM configured).
func NewFallbackExtractor(primary *LLMExtractor, timeout time.Duration) *FallbackExtractor {
	return &FallbackExtractor{primary: primary, timeout: timeout}
}

// Extract implements Extractor.
func (f *FallbackExtractor) Extract(ctx context.Context, description string) Requirements {
	if f.primary == nil {
		return f.fallback.Extract(ctx, description)
	}

	callCtx := ctx
	if f.timeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, f.timeout)
		defer cancel()
	}

	req, err := f.primary.ExtractStrict(callCtx, description)
	if err != nil {
		slog.Warn("requirement extraction degraded to keyword matching", "error", err)
		return f.fallback.Extract(ctx, description)
	}
	return req
}
