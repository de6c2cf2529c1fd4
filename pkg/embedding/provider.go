package embedding

import (
	"context"
	"errors"
)

// ErrNotConfigured is returned by the disabled provider. Callers treat it
// as "run without semantic features", not as a failure.
var ErrNotConfigured = errors.New("embedding provider not configured")

// EmbeddingProvider defines the interface for generating text embeddings
type EmbeddingProvider interface {
	Generate(ctx context.Context, text string) ([]float32, error)
	// Enabled reports whether the provider is backed by a real model.
	Enabled() bool
}
