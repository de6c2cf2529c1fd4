package llm

import "context"

// DisabledProvider stands in when no completion backend is configured.
type DisabledProvider struct{}

func NewDisabledProvider() LLMProvider {
	return &DisabledProvider{}
}

func (p *DisabledProvider) Enabled() bool {
	return false
}

func (p *DisabledProvider) Chat(ctx context.Context, history []Message, options ...Option) (string, error) {
	return "", ErrNotConfigured
}

func (p *DisabledProvider) Generate(ctx context.Context, prompt string, options ...Option) (string, error) {
	return "", ErrNotConfigured
}
