// Package model contains domain models passed between layers.
package model

import "strings"

// Transcript is the immutable scoring input: the spoken text plus an
// optional duration. DurationSeconds <= 0 means the duration is unknown.
type Transcript struct {
	Text            string
	DurationSeconds float64
}

// NewTranscript builds a Transcript, trimming surrounding whitespace.
func NewTranscript(text string, durationSeconds float64) Transcript {
	return Transcript{
		Text:            strings.TrimSpace(text),
		DurationSeconds: durationSeconds,
	}
}

// Words returns the whitespace-separated words of the transcript.
func (t Transcript) Words() []string {
	return strings.Fields(t.Text)
}

// WordCount returns the number of whitespace-separated words.
func (t Transcript) WordCount() int {
	return len(t.Words())
}

// Empty reports whether the transcript holds no scoreable text.
func (t Transcript) Empty() bool {
	return strings.TrimSpace(t.Text) == ""
}

// HasDuration reports whether a usable spoken duration was supplied.
func (t Transcript) HasDuration() bool {
	return t.DurationSeconds > 0
}
