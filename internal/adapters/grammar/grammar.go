// Package grammar wraps an external grammar-checking service behind a
// capability interface so the scoring engine never depends on a concrete
// checker. A failing checker surfaces ErrUnavailable; callers substitute a
// neutral score instead of aborting the scoring pipeline.
package grammar

import "context"

// Result is the outcome of one grammar check.
type Result struct {
	// IssueCount is the number of distinct grammar/spelling issues found.
	IssueCount int
	// Examples holds up to a configured number of issue descriptions for
	// feedback text.
	Examples []string
}

// Checker detects grammar and spelling issues in text.
type Checker interface {
	// Check analyzes text, honoring ctx for cancellation. Unreachable
	// backends return an error matching ErrUnavailable.
	Check(ctx context.Context, text string) (Result, error)
}
