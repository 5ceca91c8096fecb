package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/elocute/elocute/internal/domain/rubric"
)

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):.
//  1. defaults (New(ctx))
//  2. file (YAML) if ELOCUTE_CONFIG is set
//  3. env (prefix ELOCUTE_)
func Load(ctx context.Context) (*Config, error) {
	base := New(ctx)

	k := koanf.New(".")

	if path := os.Getenv("ELOCUTE_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrLoadConfig, err)
		}
	}

	// Environment variables: ELOCUTE_ADDR, ELOCUTE_GRAMMAR_BASE_URL, ...
	// Map env keys like ELOCUTE_SCORE_PRECISION -> score_precision (flat
	// keys). Preserve underscores to match koanf tags on the struct.
	envProvider := env.Provider("ELOCUTE_", ".", func(s string) string {
		s = strings.ToLower(s)
		s = strings.TrimPrefix(s, "elocute_")
		return s
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoadConfig, err)
	}

	// Unmarshal into a copy
	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoadConfig, err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.Addr == "" {
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	}
	if c.ScorePrecision < 0 {
		return fmt.Errorf("%w: score_precision must not be negative", ErrInvalidConfig)
	}
	if c.GrammarTimeoutMS <= 0 {
		return fmt.Errorf("%w: grammar_timeout_ms must be positive", ErrInvalidConfig)
	}
	switch c.EmbeddingProvider {
	case ProviderLocal:
		if c.EmbeddingDimensions <= 0 {
			return fmt.Errorf("%w: embedding_dimensions must be positive", ErrInvalidConfig)
		}
	case ProviderGemini:
		if c.GeminiAPIKey == "" {
			return fmt.Errorf("%w: gemini_api_key is required for the gemini provider", ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("%w: unknown embedding_provider %q", ErrInvalidConfig, c.EmbeddingProvider)
	}
	if c.EmbeddingCacheSize <= 0 {
		return fmt.Errorf("%w: embedding_cache_size must be positive", ErrInvalidConfig)
	}
	if err := c.Rubric.Validate(); err != nil {
		if errors.Is(err, rubric.ErrInvalidRubric) {
			return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
		}
		return err
	}
	return nil
}
