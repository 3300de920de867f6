package llm

import (
	"context"
	"errors"
)

// Generator abstracts the external text-generation model.
type Generator interface {
	Generate(ctx context.Context, prompt string, temperature float32) (string, error)
}

// Embedder abstracts the external embedding model.
type Embedder interface {
	EmbedTexts(ctx context.Context, texts []string) ([][]float32, error)
	EmbedQuery(ctx context.Context, text string) ([]float32, error)
}

// ErrNotConfigured is returned by the placeholder implementations.
var ErrNotConfigured = errors.New("llm provider not configured")

// PlaceholderGenerator is a stub until provider wiring is added.
type PlaceholderGenerator struct{}

// Generate returns ErrNotConfigured.
func (PlaceholderGenerator) Generate(ctx context.Context, prompt string, temperature float32) (string, error) {
	_ = ctx
	_ = prompt
	_ = temperature
	return "", ErrNotConfigured
}

// PlaceholderEmbedder is a stub until provider wiring is added.
type PlaceholderEmbedder struct{}

// EmbedTexts returns ErrNotConfigured.
func (PlaceholderEmbedder) EmbedTexts(ctx context.Context, texts []string) ([][]float32, error) {
	_ = ctx
	_ = texts
	return nil, ErrNotConfigured
}

// EmbedQuery returns ErrNotConfigured.
func (PlaceholderEmbedder) EmbedQuery(ctx context.Context, text string) ([]float32, error) {
	_ = ctx
	_ = text
	return nil, ErrNotConfigured
}
