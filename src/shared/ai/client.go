package ai

import "context"

// Options controls model behavior; fields are optional per provider.
type Options struct {
	Model        string
	Temperature  float64
	MaxTokens    int
	SystemPrompt string
}

// Client is a provider-agnostic interface for the one LLM operation we
// need: a single completion for a system/user prompt pair.
type Client interface {
	Complete(ctx context.Context, input string, opts Options) (string, error)
}
