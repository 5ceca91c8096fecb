package embedding

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

const (
	defaultGeminiModel = "gemini-embedding-001"
	maxEmbedTextBytes  = 10000
)

// GeminiProvider embeds text through the Gemini embedding API.
type GeminiProvider struct {
	client *genai.Client
	model  string
}

// GeminiOption applies a configuration option to the GeminiProvider.
type GeminiOption func(*GeminiProvider)

// WithModel sets the embedding model name.
func WithModel(model string) GeminiOption {
	return func(p *GeminiProvider) {
		if model != "" {
			p.model = model
		}
	}
}

// NewGeminiProvider creates a Gemini-backed embedding provider.
func NewGeminiProvider(ctx context.Context, apiKey string, opts ...GeminiOption) (*GeminiProvider, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("%w: missing API key", ErrProviderInit)
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrProviderInit, err)
	}

	p := &GeminiProvider{client: client, model: defaultGeminiModel}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

// Embed requests an embedding vector from the Gemini API.
func (p *GeminiProvider) Embed(ctx context.Context, text string) ([]float64, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil, fmt.Errorf("%w: empty text", ErrEmbed)
	}
	if len(trimmed) > maxEmbedTextBytes {
		trimmed = trimmed[:maxEmbedTextBytes]
	}

	content := []*genai.Content{genai.NewContentFromText(trimmed, genai.RoleUser)}
	result, err := p.client.Models.EmbedContent(ctx, p.model, content, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrEmbed, err)
	}
	if len(result.Embeddings) == 0 || len(result.Embeddings[0].Values) == 0 {
		return nil, fmt.Errorf("%w: empty embedding response", ErrEmbed)
	}

	values := result.Embeddings[0].Values
	vec := make([]float64, len(values))
	for i, v := range values {
		vec[i] = float64(v)
	}
	return vec, nil
}

// Version identifies the remote embedding model in use.
func (p *GeminiProvider) Version() string {
	return "gemini/" + p.model
}
