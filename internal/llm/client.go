// Package llm provides a uniform single-operation interface over the
// supported LLM providers. The adapter never retries; retry policy
// belongs to the caller.
package llm

import "context"

// Client is the one-operation abstraction every provider implements.
type Client interface {
	// Complete sends a prompt and returns the raw text completion.
	Complete(ctx context.Context, prompt string) (string, error)
}

// Supported backend names.
const (
	BackendOpenAI Backend = "openai"
	BackendClaude Backend = "claude"
	BackendGemini Backend = "gemini"
)

// Backend names a supported LLM provider.
type Backend string

// New creates a Client for the named backend. An unknown name fails
// with *UnsupportedBackendError; provider construction failures surface
// verbatim.
func New(ctx context.Context, backend Backend, apiKey string) (Client, error) {
	switch backend {
	case BackendOpenAI:
		return NewOpenAIClient(apiKey)
	case BackendClaude:
		return NewClaudeClient(apiKey)
	case BackendGemini:
		return NewGeminiClient(ctx, apiKey)
	default:
		return nil, &UnsupportedBackendError{Backend: string(backend)}
	}
}
