// Package rate computes words-per-minute and scores it against a target range.
package rate

import (
	"math"

	"github.com/elocute/elocute/internal/domain/rubric"
)

const secondsPerMinute = 60

// Result is the outcome of a speech-rate measurement.
//
// When Available is false the duration was missing or non-positive: WPM and
// Fraction are meaningless and callers must degrade to a neutral default
// rather than treat the zero values as a measurement.
type Result struct {
	Available bool
	WPM       float64
	// Fraction is the earned share of the criterion budget in [0,1].
	Fraction float64
}

// Score computes WPM = wordCount / (durationSeconds/60) and the earned
// fraction. Full marks inside [MinWPM, MaxWPM] (boundaries inclusive);
// outside, the fraction decays linearly by DecayPerWPM per WPM of distance
// from the nearest boundary, floored at zero.
func Score(wordCount int, durationSeconds float64, spec rubric.SpeechRateSpec) Result {
	if durationSeconds <= 0 {
		return Result{Available: false}
	}

	wpm := float64(wordCount) / (durationSeconds / secondsPerMinute)

	var distance float64
	switch {
	case wpm < spec.MinWPM:
		distance = spec.MinWPM - wpm
	case wpm > spec.MaxWPM:
		distance = wpm - spec.MaxWPM
	}

	fraction := math.Max(0, 1-spec.DecayPerWPM*distance)
	return Result{Available: true, WPM: wpm, Fraction: fraction}
}
