// Package similarity measures semantic closeness between a transcript and a
// reference description via embedding vectors and cosine similarity.
package similarity

import (
	"container/list"
	"context"
	"crypto/sha256"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/elocute/elocute/pkg/metrics"
)

const defaultCacheSize = 1024

// Provider produces embedding vectors for text. Implementations must be
// deterministic within a process lifetime: the same text always yields the
// same vector.
type Provider interface {
	// Embed returns the embedding vector for text, honoring ctx.
	Embed(ctx context.Context, text string) ([]float64, error)

	// Version identifies the embedding function; bump it when vectors change.
	Version() string
}

// Cosine returns the cosine similarity of a and b in [-1, 1].
// Zero-magnitude or mismatched vectors yield 0.
func Cosine(a, b []float64) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	var dot, magA, magB float64
	for i := range a {
		dot += a[i] * b[i]
		magA += a[i] * a[i]
		magB += b[i] * b[i]
	}
	if magA == 0 || magB == 0 {
		return 0
	}
	return dot / (math.Sqrt(magA) * math.Sqrt(magB))
}

// Scorer computes cached, clamped similarity scores. Embeddings are cached
// in a bounded LRU keyed by a hash of the text, safe for concurrent use.
type Scorer struct {
	provider Provider

	mu       sync.Mutex
	cache    map[[sha256.Size]byte]*list.Element
	order    *list.List // front = most recently used
	capacity int
}

type cacheEntry struct {
	key    [sha256.Size]byte
	vector []float64
}

// Option applies a configuration option to the Scorer.
type Option func(*Scorer)

// WithCacheSize bounds the embedding cache. Sizes below one disable caching.
func WithCacheSize(n int) Option {
	return func(s *Scorer) {
		s.capacity = n
	}
}

// NewScorer creates a similarity scorer backed by the given provider.
func NewScorer(provider Provider, opts ...Option) *Scorer {
	s := &Scorer{
		provider: provider,
		cache:    make(map[[sha256.Size]byte]*list.Element),
		order:    list.New(),
		capacity: defaultCacheSize,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Similarity embeds both texts and returns their cosine similarity clamped
// to [0, 1]: negative similarity carries no scoring signal here.
func (s *Scorer) Similarity(ctx context.Context, text, reference string) (float64, error) {
	a, err := s.embed(ctx, text)
	if err != nil {
		return 0, fmt.Errorf("embed transcript: %w", err)
	}
	b, err := s.embed(ctx, reference)
	if err != nil {
		return 0, fmt.Errorf("embed reference: %w", err)
	}
	return math.Max(0, Cosine(a, b)), nil
}

// CacheLen returns the current number of cached embeddings.
func (s *Scorer) CacheLen() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.cache)
}

func (s *Scorer) embed(ctx context.Context, text string) ([]float64, error) {
	key := sha256.Sum256([]byte(s.provider.Version() + "\x00" + text))

	if vec, ok := s.lookup(key); ok {
		metrics.RecordEmbeddingCacheHit()
		return vec, nil
	}
	metrics.RecordEmbeddingCacheMiss()

	start := time.Now()
	vec, err := s.provider.Embed(ctx, text)
	metrics.RecordEmbeddingLatency(float64(time.Since(start).Milliseconds()))
	if err != nil {
		metrics.RecordEmbeddingError()
		return nil, err
	}

	s.store(key, vec)
	return vec, nil
}

func (s *Scorer) lookup(key [sha256.Size]byte) ([]float64, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	elem, ok := s.cache[key]
	if !ok {
		return nil, false
	}
	s.order.MoveToFront(elem)
	return elem.Value.(*cacheEntry).vector, true
}

func (s *Scorer) store(key [sha256.Size]byte, vec []float64) {
	if s.capacity < 1 {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if elem, ok := s.cache[key]; ok {
		s.order.MoveToFront(elem)
		elem.Value.(*cacheEntry).vector = vec
		return
	}
	for len(s.cache) >= s.capacity {
		oldest := s.order.Back()
		if oldest == nil {
			break
		}
		s.order.Remove(oldest)
		delete(s.cache, oldest.Value.(*cacheEntry).key)
	}
	s.cache[key] = s.order.PushFront(&cacheEntry{key: key, vector: vec})
	metrics.UpdateEmbeddingCacheSize(len(s.cache))
}
