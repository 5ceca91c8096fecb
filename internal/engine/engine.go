// Package engine orchestrates one scoring invocation: it gathers the four
// independent signals from a transcript, runs the criterion scorers, and
// aggregates the normalized report.
//
// Conventions:
// - The rubric is validated at construction; ErrInvalidRubric is the only
//   error a scoring call can return.
// - Signal failures never abort scoring; they degrade the affected
//   criterion with explanatory feedback.
package engine

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/elocute/elocute/internal/adapters/embedding"
	"github.com/elocute/elocute/internal/adapters/grammar"
	"github.com/elocute/elocute/internal/domain/criteria"
	"github.com/elocute/elocute/internal/domain/lexicon"
	"github.com/elocute/elocute/internal/domain/model"
	"github.com/elocute/elocute/internal/domain/rate"
	"github.com/elocute/elocute/internal/domain/rubric"
	"github.com/elocute/elocute/internal/domain/similarity"
	"github.com/elocute/elocute/pkg/logger"
	"github.com/elocute/elocute/pkg/metrics"
)

const defaultPrecision = 1

// Engine scores self-introduction transcripts against a rubric. It is safe
// for concurrent use: the rubric is immutable after construction and the
// embedding cache is internally synchronized.
type Engine struct {
	def       rubric.Definition
	matcher   *lexicon.Matcher
	sim       *similarity.Scorer
	checker   grammar.Checker
	precision int
	log       logger.Logger

	// construction inputs, resolved in New
	provider  similarity.Provider
	cacheSize int

	reportsScored    atomic.Int64
	emptyTranscripts atomic.Int64
}

// Option applies a configuration option to the Engine.
type Option func(*Engine)

// WithRubric replaces the default rubric definition.
func WithRubric(def rubric.Definition) Option {
	return func(e *Engine) {
		e.def = def
	}
}

// WithGrammarChecker sets the grammar checker implementation.
func WithGrammarChecker(c grammar.Checker) Option {
	return func(e *Engine) {
		if c != nil {
			e.checker = c
		}
	}
}

// WithEmbeddingProvider sets the embedding provider backing similarity.
func WithEmbeddingProvider(p similarity.Provider) Option {
	return func(e *Engine) {
		if p != nil {
			e.provider = p
		}
	}
}

// WithEmbeddingCacheSize bounds the embedding LRU cache.
func WithEmbeddingCacheSize(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.cacheSize = n
		}
	}
}

// WithPrecision sets the decimal precision of the final score.
func WithPrecision(p int) Option {
	return func(e *Engine) {
		if p >= 0 {
			e.precision = p
		}
	}
}

// WithLogger sets a custom logger.
func WithLogger(log logger.Logger) Option {
	return func(e *Engine) {
		if log != nil {
			e.log = log
		}
	}
}

// New constructs an Engine. The rubric is validated up front: a
// misconfigured rubric fails here with ErrInvalidRubric rather than on the
// first scoring call.
func New(opts ...Option) (*Engine, error) {
	e := &Engine{
		def:       rubric.Default(),
		checker:   grammar.NewLanguageTool(),
		provider:  embedding.NewHashingProvider(),
		cacheSize: 1024,
		precision: defaultPrecision,
	}
	for _, opt := range opts {
		opt(e)
	}

	if err := e.def.Validate(); err != nil {
		return nil, err
	}
	if e.log == nil {
		e.log = logger.Get().Named("engine")
	}
	e.matcher = lexicon.NewMatcher(lexicon.WithWindowWords(e.def.Salutation.WindowWords))
	e.sim = similarity.NewScorer(e.provider, similarity.WithCacheSize(e.cacheSize))
	return e, nil
}

// Rubric returns the active rubric definition.
func (e *Engine) Rubric() rubric.Definition {
	return e.def
}

// Score evaluates one transcript. An empty transcript yields the all-zero
// "empty transcript" report; signal failures yield degraded criterion
// results. Only a rubric invalidated after construction can return an error.
func (e *Engine) Score(ctx context.Context, text string, durationSeconds float64) (model.ScoreReport, error) {
	start := time.Now()
	tr := model.NewTranscript(text, durationSeconds)

	if tr.Empty() {
		e.emptyTranscripts.Add(1)
		metrics.RecordEmptyTranscript()
		report, err := criteria.EmptyReport(e.def)
		if err != nil {
			return model.ScoreReport{}, err
		}
		report.ReportID = reportID(tr)
		return report, nil
	}

	sig := e.gatherSignals(ctx, tr)
	results := criteria.ScoreAll(e.def, sig)
	report, err := criteria.Aggregate(e.def, results, e.precision)
	if err != nil {
		return model.ScoreReport{}, err
	}
	report.ReportID = reportID(tr)
	report.WordCount = sig.WordCount

	e.reportsScored.Add(1)
	metrics.RecordReportScored()
	metrics.RecordFinalScore(report.FinalScore)
	metrics.RecordScoringLatency(float64(time.Since(start).Milliseconds()))

	e.log.Debug(ctx, "transcript scored",
		logger.String("reportID", report.ReportID),
		logger.Float64("finalScore", report.FinalScore),
		logger.Int("wordCount", report.WordCount),
		logger.Int("degradedSignals", len(report.DegradedSignals)),
	)
	return report, nil
}

// gatherSignals runs the four independent measurements. The two that touch
// external services run concurrently; the lexicon and rate measurements are
// cheap and run inline. All consume the same immutable transcript, so
// ordering does not affect results.
func (e *Engine) gatherSignals(ctx context.Context, tr model.Transcript) criteria.Signals {
	sig := criteria.Signals{WordCount: tr.WordCount()}

	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		result, err := e.checker.Check(ctx, tr.Text)
		if err != nil {
			metrics.RecordSignalDegraded("grammar")
			e.log.Warn(ctx, "grammar check degraded", logger.Error(err))
			return
		}
		sig.Grammar = criteria.GrammarSignal{
			Available:  true,
			IssueCount: result.IssueCount,
			Examples:   result.Examples,
		}
	}()

	go func() {
		defer wg.Done()
		value, err := e.sim.Similarity(ctx, tr.Text, e.def.Content.Reference)
		if err != nil {
			metrics.RecordSignalDegraded("similarity")
			e.log.Warn(ctx, "similarity degraded", logger.Error(err))
			return
		}
		sig.Similarity = criteria.SimilaritySignal{Available: true, Value: value}
	}()

	sig.Greeting = e.matcher.MatchOpening(tr.Text, e.def.Salutation.Greetings)
	sig.Fillers = e.matcher.Match(tr.Text, e.def.Clarity.Fillers)
	sig.Positive = e.matcher.Match(tr.Text, e.def.Engagement.PositiveWords)

	matched := make(map[string][]string, len(e.def.Content.Topics))
	for topic, terms := range e.def.Content.Topics {
		if res := e.matcher.Match(tr.Text, terms); res.Matched() {
			matched[topic] = res.Terms
		}
	}
	sig.Topics = criteria.BuildTopicsSignal(e.def.Content.Topics, matched)

	sig.Rate = rate.Score(sig.WordCount, tr.DurationSeconds, e.def.SpeechRate)
	if !sig.Rate.Available {
		metrics.RecordSignalDegraded("duration")
	}

	wg.Wait()
	return sig
}

// GetStats returns engine statistics for monitoring.
func (e *Engine) GetStats() map[string]interface{} {
	return map[string]interface{}{
		"reportsScored":    e.reportsScored.Load(),
		"emptyTranscripts": e.emptyTranscripts.Load(),
		"embeddingCache":   e.sim.CacheLen(),
		"embeddingVersion": e.provider.Version(),
		"weightSum":        e.def.WeightSum(),
		"precision":        e.precision,
	}
}

// reportID derives a deterministic identifier from the scoring input so
// identical submissions produce bit-identical reports.
func reportID(tr model.Transcript) string {
	seed := fmt.Sprintf("elocute:%g:%s", tr.DurationSeconds, tr.Text)
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte(seed)).String()
}
