package llm

import "context"

// Response is the raw response from an LLM provider.
type Response struct {
	Content string
}

// Client abstracts LLM API calls for testability.
type Client interface {
	Complete(ctx context.Context, systemPrompt, userPrompt string) (*Response, error)
}
