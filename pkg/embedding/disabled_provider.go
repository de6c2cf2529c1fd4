package embedding

import "context"

// DisabledProvider stands in when no embedding backend is configured.
// The rest of the system degrades to keyword-only behavior.
type DisabledProvider struct{}

func NewDisabledProvider() EmbeddingProvider {
	return &DisabledProvider{}
}

func (p *DisabledProvider) Enabled() bool {
	return false
}

func (p *DisabledProvider) Generate(ctx context.Context, text string) ([]float32, error) {
	return nil, ErrNotConfigured
}
