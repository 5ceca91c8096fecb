// Package embedding provides similarity.Provider implementations: a
// deterministic local feature-hashing provider and a Gemini-backed provider.
package embedding

import (
	"context"
	"hash/fnv"
	"math"

	"github.com/elocute/elocute/internal/domain/lexicon"
)

const defaultDimensions = 256

// HashingProvider embeds text by hashing word tokens into a fixed-width
// count vector (the hashing trick). It is fully offline and deterministic,
// which makes it both the default provider and the test stub.
type HashingProvider struct {
	dimensions int
}

// HashingOption applies a configuration option to the HashingProvider.
type HashingOption func(*HashingProvider)

// WithDimensions sets the embedding vector width.
func WithDimensions(n int) HashingOption {
	return func(p *HashingProvider) {
		if n > 0 {
			p.dimensions = n
		}
	}
}

// NewHashingProvider creates a feature-hashing provider.
func NewHashingProvider(opts ...HashingOption) *HashingProvider {
	p := &HashingProvider{dimensions: defaultDimensions}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Embed maps each token into a bucket by FNV-1a hash and L2-normalizes the
// resulting count vector. Empty text yields the zero vector.
func (p *HashingProvider) Embed(_ context.Context, text string) ([]float64, error) {
	vec := make([]float64, p.dimensions)
	var norm float64
	for _, token := range lexicon.Tokenize(text) {
		h := fnv.New64a()
		_, _ = h.Write([]byte(token))
		vec[h.Sum64()%uint64(p.dimensions)]++
	}
	for _, v := range vec {
		norm += v * v
	}
	if norm > 0 {
		norm = math.Sqrt(norm)
		for i := range vec {
			vec[i] /= norm
		}
	}
	return vec, nil
}

// Version identifies this embedding function and its dimensionality.
func (p *HashingProvider) Version() string {
	return "feature-hash/v1"
}
