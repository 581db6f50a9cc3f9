package llm

import "context"

// Response is what a provider returns for one generation request.
// Content is trimmed of surrounding whitespace by the provider.
type Response struct {
	Content string
	Model   string
}

// Client abstracts a hosted generative model. One prompt in, one text
// response out; a single attempt with no retry or backoff, so callers
// see provider failures directly.
type Client interface {
	Generate(ctx context.Context, prompt string) (Response, error)
}
