// Package criteria implements the six rubric criterion scorers and the
// aggregator that folds their results into a normalized report.
package criteria

import (
	"github.com/elocute/elocute/internal/domain/lexicon"
	"github.com/elocute/elocute/internal/domain/rate"
)

// GrammarSignal is the grammar checker's contribution. Available is false
// when the checker could not be reached; the criterion then substitutes its
// neutral default.
type GrammarSignal struct {
	Available  bool
	IssueCount int
	Examples   []string
}

// SimilaritySignal is the semantic similarity contribution, already clamped
// to [0, 1]. Available is false when embedding failed.
type SimilaritySignal struct {
	Available bool
	Value     float64
}

// TopicsSignal summarizes required-topic coverage.
type TopicsSignal struct {
	Found int
	Total int
	// Missing lists the topic names with no matching terms, for feedback.
	Missing []string
	// Terms lists matched terms across all topics, bounded by the caller.
	Terms []string
}

// Coverage returns the covered fraction of required topics in [0, 1].
func (t TopicsSignal) Coverage() float64 {
	if t.Total == 0 {
		return 0
	}
	return float64(t.Found) / float64(t.Total)
}

// Signals bundles the independent measurements the criterion scorers
// consume. All fields derive from the same immutable transcript, so the
// gathering order never affects results.
type Signals struct {
	WordCount int

	Greeting lexicon.Result
	Topics   TopicsSignal
	Fillers  lexicon.Result
	Positive lexicon.Result

	Rate       rate.Result
	Grammar    GrammarSignal
	Similarity SimilaritySignal
}
