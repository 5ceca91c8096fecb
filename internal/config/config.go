// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New(ctx) to build a Config with defaults and Load(ctx) to layer
//   file and environment overrides on top.
// - External errors must be wrapped via this package's sentinel errors.
package config

import (
	"context"

	"github.com/elocute/elocute/internal/domain/rubric"
)

// Embedding provider selectors.
const (
	// ProviderLocal selects the deterministic in-process feature-hashing
	// embedder. No external calls, no credentials.
	ProviderLocal = "local"
	// ProviderGemini selects the Gemini embedding API and requires
	// GeminiAPIKey.
	ProviderGemini = "gemini"
)

// Config contains process configuration. Extend as needed.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// ScorePrecision sets decimal places of the final score.
	ScorePrecision int `koanf:"score_precision"`

	// GrammarBaseURL points at a LanguageTool-compatible checker.
	GrammarBaseURL string `koanf:"grammar_base_url"`

	// GrammarTimeoutMS bounds a single grammar check round trip.
	GrammarTimeoutMS int `koanf:"grammar_timeout_ms"`

	// GrammarLanguage is the language code sent to the checker.
	GrammarLanguage string `koanf:"grammar_language"`

	// GrammarMaxExamples caps issue examples surfaced in feedback.
	GrammarMaxExamples int `koanf:"grammar_max_examples"`

	// EmbeddingProvider selects "local" or "gemini".
	EmbeddingProvider string `koanf:"embedding_provider"`

	// EmbeddingModel names the remote embedding model when provider is
	// "gemini".
	EmbeddingModel string `koanf:"embedding_model"`

	// EmbeddingDimensions sizes the local feature-hash vectors.
	EmbeddingDimensions int `koanf:"embedding_dimensions"`

	// EmbeddingCacheSize bounds the in-memory embedding LRU.
	EmbeddingCacheSize int `koanf:"embedding_cache_size"`

	// GeminiAPIKey authenticates against the Gemini API. Usually supplied
	// via ELOCUTE_GEMINI_API_KEY rather than a config file.
	GeminiAPIKey string `koanf:"gemini_api_key"`

	// Rubric holds the full scoring rubric. Any field can be overridden
	// from the YAML config file.
	Rubric rubric.Definition `koanf:"rubric"`
}

// New creates a Config populated with defaults. Context is accepted first to
// satisfy the project-wide convention; it is currently unused.
func New(_ context.Context) *Config {
	return &Config{
		LogLevel:            "info",
		Addr:                ":9090",
		ScorePrecision:      1,
		GrammarBaseURL:      "http://localhost:8010",
		GrammarTimeoutMS:    5_000,
		GrammarLanguage:     "en-US",
		GrammarMaxExamples:  3,
		EmbeddingProvider:   ProviderLocal,
		EmbeddingModel:      "gemini-embedding-001",
		EmbeddingDimensions: 256,
		EmbeddingCacheSize:  1024,
		Rubric:              rubric.Default(),
	}
}
