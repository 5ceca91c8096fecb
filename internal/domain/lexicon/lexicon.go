// Package lexicon implements keyword and phrase matching over transcripts.
//
// Matching is case-insensitive and word-boundary aware: "good" never matches
// inside "goods". Multi-word phrases match as contiguous token sequences.
// All functions are pure; an empty transcript yields an empty result.
package lexicon

import (
	"strings"
	"unicode"
)

const defaultWindowWords = 12

// Result reports the matches of one term group against a text.
type Result struct {
	// Occurrences counts every match, including repeats of the same term.
	Occurrences int
	// Terms lists the distinct matched terms in group order.
	Terms []string
}

// Matched reports whether at least one term matched.
func (r Result) Matched() bool { return r.Occurrences > 0 }

// Matcher matches configured term groups against transcript text.
type Matcher struct {
	windowWords int
}

// Option applies a configuration option to the Matcher.
type Option func(*Matcher)

// WithWindowWords sets the opening-window word count used when the text has
// no sentence-terminal punctuation.
func WithWindowWords(n int) Option {
	return func(m *Matcher) {
		if n > 0 {
			m.windowWords = n
		}
	}
}

// NewMatcher creates a matcher with configuration options.
func NewMatcher(opts ...Option) *Matcher {
	m := &Matcher{windowWords: defaultWindowWords}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Match counts occurrences of the given terms anywhere in text.
func (m *Matcher) Match(text string, terms []string) Result {
	return match(Tokenize(text), terms)
}

// MatchOpening counts occurrences of the given terms in the opening window:
// the text up to the first sentence-terminal punctuation mark, or the first
// windowWords words when no such mark exists.
func (m *Matcher) MatchOpening(text string, terms []string) Result {
	return match(Tokenize(m.opening(text)), terms)
}

// opening returns the first sentence of text, falling back to a bounded
// word window.
func (m *Matcher) opening(text string) string {
	if i := strings.IndexAny(text, ".!?"); i >= 0 {
		return text[:i]
	}
	words := strings.Fields(text)
	if len(words) > m.windowWords {
		words = words[:m.windowWords]
	}
	return strings.Join(words, " ")
}

// Tokenize lowercases text and splits it into word tokens. Apostrophes stay
// inside tokens so contractions like "i'm" survive as single words.
func Tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '\''
	})
}

func match(tokens []string, terms []string) Result {
	if len(tokens) == 0 {
		return Result{}
	}
	var res Result
	for _, term := range terms {
		phrase := Tokenize(term)
		if len(phrase) == 0 {
			continue
		}
		n := countPhrase(tokens, phrase)
		if n > 0 {
			res.Occurrences += n
			res.Terms = append(res.Terms, term)
		}
	}
	return res
}

// countPhrase counts non-overlapping contiguous occurrences of phrase in tokens.
func countPhrase(tokens, phrase []string) int {
	count := 0
	for i := 0; i+len(phrase) <= len(tokens); i++ {
		if tokensEqual(tokens[i:i+len(phrase)], phrase) {
			count++
			i += len(phrase) - 1
		}
	}
	return count
}

func tokensEqual(a, b []string) bool {
	for i := range b {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
