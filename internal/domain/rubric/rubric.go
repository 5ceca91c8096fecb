// Package rubric defines the scoring policy: the ordered set of criteria,
// their weights, and their scoring parameters.
//
// Conventions:
// - The Definition is loaded once at startup and treated as immutable.
// - Weights are absolute point budgets; the aggregator normalizes by the
//   actual weight sum, never by an assumed total of 100.
package rubric

import (
	"fmt"
)

// Criterion names, in rubric order.
const (
	NameSalutation = "Salutation"
	NameContent    = "Content & Structure"
	NameSpeechRate = "Speech Rate"
	NameGrammar    = "Language & Grammar"
	NameClarity    = "Clarity"
	NameEngagement = "Engagement"
)

// SalutationSpec configures the greeting criterion.
type SalutationSpec struct {
	Weight float64 `koanf:"weight" json:"weight"`
	// Greetings are the accepted greeting terms and phrases.
	Greetings []string `koanf:"greetings" json:"greetings"`
	// WindowWords bounds the opening window when the transcript has no
	// sentence-terminal punctuation.
	WindowWords int `koanf:"window_words" json:"window_words"`
}

// ContentSpec configures the content-and-structure criterion.
type ContentSpec struct {
	Weight float64 `koanf:"weight" json:"weight"`
	// Topics maps a topic name to the terms that evidence it.
	Topics map[string][]string `koanf:"topics" json:"topics"`
	// Reference is the ideal-introduction description embedded for
	// semantic comparison.
	Reference string `koanf:"reference" json:"reference"`
	// SimilarityBlend is the fraction of the budget driven by semantic
	// similarity; the remainder is driven by topic coverage.
	SimilarityBlend float64 `koanf:"similarity_blend" json:"similarity_blend"`
	// NeutralSimilarity substitutes for the similarity fraction when the
	// embedding provider is unavailable.
	NeutralSimilarity float64 `koanf:"neutral_similarity" json:"neutral_similarity"`
}

// SpeechRateSpec configures the words-per-minute criterion.
type SpeechRateSpec struct {
	Weight float64 `koanf:"weight" json:"weight"`
	MinWPM float64 `koanf:"min_wpm" json:"min_wpm"`
	MaxWPM float64 `koanf:"max_wpm" json:"max_wpm"`
	// DecayPerWPM is the score fraction lost per WPM of distance from the
	// nearest range boundary.
	DecayPerWPM float64 `koanf:"decay_per_wpm" json:"decay_per_wpm"`
	// NeutralFraction substitutes when the duration is unknown.
	NeutralFraction float64 `koanf:"neutral_fraction" json:"neutral_fraction"`
}

// GrammarSpec configures the language-and-grammar criterion.
type GrammarSpec struct {
	Weight float64 `koanf:"weight" json:"weight"`
	// PenaltyPerDensity is the score fraction lost per issue per 100 words.
	PenaltyPerDensity float64 `koanf:"penalty_per_density" json:"penalty_per_density"`
	// NeutralFraction substitutes when the checker is unavailable.
	NeutralFraction float64 `koanf:"neutral_fraction" json:"neutral_fraction"`
	// MaxExamples bounds the number of issue descriptions quoted in feedback.
	MaxExamples int `koanf:"max_examples" json:"max_examples"`
}

// ClaritySpec configures the filler-word criterion.
type ClaritySpec struct {
	Weight  float64  `koanf:"weight" json:"weight"`
	Fillers []string `koanf:"fillers" json:"fillers"`
	// PenaltyPerDensity is the score fraction lost per filler per 100 words.
	PenaltyPerDensity float64 `koanf:"penalty_per_density" json:"penalty_per_density"`
}

// EngagementSpec configures the positive-tone criterion.
type EngagementSpec struct {
	Weight        float64  `koanf:"weight" json:"weight"`
	PositiveWords []string `koanf:"positive_words" json:"positive_words"`
	// TargetMatches is the distinct positive-term count that earns full marks.
	TargetMatches int `koanf:"target_matches" json:"target_matches"`
}

// Definition is the full rubric configuration. Field order is rubric order.
type Definition struct {
	Salutation SalutationSpec `koanf:"salutation" json:"salutation"`
	Content    ContentSpec    `koanf:"content" json:"content"`
	SpeechRate SpeechRateSpec `koanf:"speech_rate" json:"speech_rate"`
	Grammar    GrammarSpec    `koanf:"grammar" json:"grammar"`
	Clarity    ClaritySpec    `koanf:"clarity" json:"clarity"`
	Engagement EngagementSpec `koanf:"engagement" json:"engagement"`
}

// Default returns the documented rubric: weights 5/20/15/30/20/10 and a
// target speech rate of 100-150 WPM.
func Default() Definition {
	return Definition{
		Salutation: SalutationSpec{
			Weight: 5,
			Greetings: []string{
				"hi", "hello", "hey", "good morning", "good afternoon",
				"good evening", "good day", "greetings",
			},
			WindowWords: 12,
		},
		Content: ContentSpec{
			Weight: 20,
			Topics: map[string][]string{
				"name":         {"name", "i am", "i'm", "myself"},
				"school_class": {"school", "class", "grade", "studying", "student"},
				"family":       {"family", "father", "mother", "parents", "brother", "sister", "siblings"},
				"location":     {"from", "live", "city", "town", "village", "place"},
				"hobbies":      {"hobby", "hobbies", "enjoy", "love", "like", "interest", "passion", "free time"},
			},
			Reference: "My name is [name], I am [age] years old studying in [class]. " +
				"I come from [location]. My family consists of my parents and siblings. " +
				"In my free time, I enjoy [hobbies].",
			SimilarityBlend:   0.6,
			NeutralSimilarity: 0.5,
		},
		SpeechRate: SpeechRateSpec{
			Weight:          15,
			MinWPM:          100,
			MaxWPM:          150,
			DecayPerWPM:     0.02,
			NeutralFraction: 0.6,
		},
		Grammar: GrammarSpec{
			Weight:            30,
			PenaltyPerDensity: 0.15,
			NeutralFraction:   0.6,
			MaxExamples:       3,
		},
		Clarity: ClaritySpec{
			Weight: 20,
			Fillers: []string{
				"um", "uh", "like", "you know", "actually", "basically",
				"i mean", "kind of", "sort of",
			},
			PenaltyPerDensity: 0.12,
		},
		Engagement: EngagementSpec{
			Weight: 10,
			PositiveWords: []string{
				"happy", "excited", "passionate", "love", "enjoy", "great",
				"wonderful", "amazing", "excellent", "enthusiastic", "proud",
				"grateful", "thankful",
			},
			TargetMatches: 3,
		},
	}
}

// WeightSum returns the total configured weight, the normalization denominator.
func (d Definition) WeightSum() float64 {
	return d.Salutation.Weight + d.Content.Weight + d.SpeechRate.Weight +
		d.Grammar.Weight + d.Clarity.Weight + d.Engagement.Weight
}

// Weights returns the per-criterion weights in rubric order.
func (d Definition) Weights() map[string]float64 {
	return map[string]float64{
		NameSalutation: d.Salutation.Weight,
		NameContent:    d.Content.Weight,
		NameSpeechRate: d.SpeechRate.Weight,
		NameGrammar:    d.Grammar.Weight,
		NameClarity:    d.Clarity.Weight,
		NameEngagement: d.Engagement.Weight,
	}
}

// Validate checks the definition is usable for scoring. Any violation is
// reported as ErrInvalidRubric; scoring must not proceed on failure.
func (d Definition) Validate() error {
	for name, w := range d.Weights() {
		if w < 0 {
			return fmt.Errorf("%w: criterion %q has negative weight %v", ErrInvalidRubric, name, w)
		}
	}
	if d.WeightSum() <= 0 {
		return fmt.Errorf("%w: weight sum %v must be positive", ErrInvalidRubric, d.WeightSum())
	}
	if d.Content.SimilarityBlend < 0 || d.Content.SimilarityBlend > 1 {
		return fmt.Errorf("%w: similarity_blend %v must be in [0,1]", ErrInvalidRubric, d.Content.SimilarityBlend)
	}
	if d.SpeechRate.MinWPM <= 0 || d.SpeechRate.MaxWPM <= d.SpeechRate.MinWPM {
		return fmt.Errorf("%w: speech rate range [%v,%v] is not a valid interval",
			ErrInvalidRubric, d.SpeechRate.MinWPM, d.SpeechRate.MaxWPM)
	}
	if d.SpeechRate.DecayPerWPM < 0 {
		return fmt.Errorf("%w: decay_per_wpm %v must be non-negative", ErrInvalidRubric, d.SpeechRate.DecayPerWPM)
	}
	if d.Grammar.PenaltyPerDensity < 0 || d.Clarity.PenaltyPerDensity < 0 {
		return fmt.Errorf("%w: density penalties must be non-negative", ErrInvalidRubric)
	}
	if d.Salutation.WindowWords <= 0 {
		return fmt.Errorf("%w: salutation window_words %d must be positive", ErrInvalidRubric, d.Salutation.WindowWords)
	}
	if d.Engagement.TargetMatches <= 0 {
		return fmt.Errorf("%w: engagement target_matches %d must be positive", ErrInvalidRubric, d.Engagement.TargetMatches)
	}
	for _, f := range []struct {
		name string
		v    float64
	}{
		{"content.neutral_similarity", d.Content.NeutralSimilarity},
		{"speech_rate.neutral_fraction", d.SpeechRate.NeutralFraction},
		{"grammar.neutral_fraction", d.Grammar.NeutralFraction},
	} {
		if f.v < 0 || f.v > 1 {
			return fmt.Errorf("%w: %s %v must be in [0,1]", ErrInvalidRubric, f.name, f.v)
		}
	}
	return nil
}
