package criteria

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/elocute/elocute/internal/domain/model"
	"github.com/elocute/elocute/internal/domain/rubric"
)

const wordsPerDensityUnit = 100

// ScoreAll runs every criterion scorer in rubric order. Each result carries
// a score in [0, weight] and at least one feedback string.
func ScoreAll(def rubric.Definition, sig Signals) []model.CriterionResult {
	return []model.CriterionResult{
		ScoreSalutation(def.Salutation, sig),
		ScoreContent(def.Content, sig),
		ScoreSpeechRate(def.SpeechRate, sig),
		ScoreGrammar(def.Grammar, sig),
		ScoreClarity(def.Clarity, sig),
		ScoreEngagement(def.Engagement, sig),
	}
}

// ScoreSalutation awards the full budget when at least one greeting appears
// in the opening window, and zero otherwise.
func ScoreSalutation(spec rubric.SalutationSpec, sig Signals) model.CriterionResult {
	res := model.CriterionResult{Name: rubric.NameSalutation, Weight: spec.Weight}
	if sig.Greeting.Matched() {
		res.Score = spec.Weight
		res.Feedback = []string{fmt.Sprintf("Greeting present: %s.", strings.Join(sig.Greeting.Terms, ", "))}
		res.Detail = map[string]string{"greetings_found": strings.Join(sig.Greeting.Terms, ", ")}
		return res
	}
	res.Feedback = []string{`No greeting found in the opening. Consider starting with "Hello" or "Good morning".`}
	return res
}

// ScoreContent blends semantic similarity with required-topic coverage.
// The blend ratio is configured, not hardcoded; when similarity is
// unavailable the configured neutral value substitutes and the result is
// marked degraded.
func ScoreContent(spec rubric.ContentSpec, sig Signals) model.CriterionResult {
	res := model.CriterionResult{Name: rubric.NameContent, Weight: spec.Weight}

	simValue := spec.NeutralSimilarity
	if sig.Similarity.Available {
		simValue = sig.Similarity.Value
	} else {
		res.Degraded = true
	}

	coverage := sig.Topics.Coverage()
	fraction := spec.SimilarityBlend*simValue + (1-spec.SimilarityBlend)*coverage
	res.Score = clamp(fraction*spec.Weight, spec.Weight)

	switch {
	case sig.Topics.Found == sig.Topics.Total && sig.Topics.Total > 0:
		res.Feedback = append(res.Feedback,
			fmt.Sprintf("Excellent coverage: all %d key topics included.", sig.Topics.Total))
	case sig.Topics.Found > 0:
		res.Feedback = append(res.Feedback,
			fmt.Sprintf("Covers %d/%d key topics. Consider adding: %s.",
				sig.Topics.Found, sig.Topics.Total, strings.Join(sig.Topics.Missing, ", ")))
	default:
		res.Feedback = append(res.Feedback,
			fmt.Sprintf("Content needs work. Missing topics: %s.", strings.Join(sig.Topics.Missing, ", ")))
	}
	if !sig.Similarity.Available {
		res.Feedback = append(res.Feedback,
			"Semantic similarity was unavailable; a neutral default was used for that portion.")
	}

	res.Detail = map[string]string{
		"topics_found": fmt.Sprintf("%d/%d", sig.Topics.Found, sig.Topics.Total),
		"similarity":   fmt.Sprintf("%.2f", simValue),
	}
	if len(sig.Topics.Terms) > 0 {
		res.Detail["keywords_found"] = strings.Join(sig.Topics.Terms, ", ")
	}
	return res
}

// ScoreSpeechRate scales the rate measurement into the criterion budget.
// A missing duration degrades to the configured neutral fraction.
func ScoreSpeechRate(spec rubric.SpeechRateSpec, sig Signals) model.CriterionResult {
	res := model.CriterionResult{Name: rubric.NameSpeechRate, Weight: spec.Weight}

	if !sig.Rate.Available {
		res.Score = clamp(spec.NeutralFraction*spec.Weight, spec.Weight)
		res.Degraded = true
		res.Feedback = []string{"Speech duration unavailable; words-per-minute could not be measured and a neutral score was applied."}
		return res
	}

	res.Score = clamp(sig.Rate.Fraction*spec.Weight, spec.Weight)
	res.Detail = map[string]string{
		"wpm":         fmt.Sprintf("%.0f", sig.Rate.WPM),
		"ideal_range": fmt.Sprintf("%.0f-%.0f WPM", spec.MinWPM, spec.MaxWPM),
	}
	switch {
	case sig.Rate.WPM < spec.MinWPM:
		res.Feedback = []string{fmt.Sprintf("Speech rate is slow (%.0f WPM). Try to speak a bit faster.", sig.Rate.WPM)}
	case sig.Rate.WPM > spec.MaxWPM:
		res.Feedback = []string{fmt.Sprintf("Speech rate is fast (%.0f WPM). Try to slow down slightly.", sig.Rate.WPM)}
	default:
		res.Feedback = []string{fmt.Sprintf("Good speech rate at %.0f WPM.", sig.Rate.WPM)}
	}
	return res
}

// ScoreGrammar applies the density-penalized grammar formula: full marks at
// zero density, minus PenaltyPerDensity per issue per 100 words, floored at
// zero. An unavailable checker degrades to the configured neutral fraction.
func ScoreGrammar(spec rubric.GrammarSpec, sig Signals) model.CriterionResult {
	res := model.CriterionResult{Name: rubric.NameGrammar, Weight: spec.Weight}

	if !sig.Grammar.Available {
		res.Score = clamp(spec.NeutralFraction*spec.Weight, spec.Weight)
		res.Degraded = true
		res.Feedback = []string{"Grammar checking was unavailable; a neutral score was applied."}
		return res
	}

	density := densityPer100Words(sig.Grammar.IssueCount, sig.WordCount)
	res.Score = clamp(math.Max(0, 1-spec.PenaltyPerDensity*density)*spec.Weight, spec.Weight)
	res.Detail = map[string]string{
		"issues":  fmt.Sprintf("%d", sig.Grammar.IssueCount),
		"density": fmt.Sprintf("%.2f per 100 words", density),
	}

	if sig.Grammar.IssueCount == 0 {
		res.Feedback = []string{"No grammar issues detected."}
		return res
	}
	res.Feedback = []string{fmt.Sprintf("%d grammar issue(s) detected. Review and correct.", sig.Grammar.IssueCount)}
	for _, example := range sig.Grammar.Examples {
		res.Feedback = append(res.Feedback, "Example: "+example)
	}
	return res
}

// ScoreClarity penalizes filler-word density with the same linear curve as
// the grammar criterion: full marks at zero density, floored at zero.
func ScoreClarity(spec rubric.ClaritySpec, sig Signals) model.CriterionResult {
	res := model.CriterionResult{Name: rubric.NameClarity, Weight: spec.Weight}

	density := densityPer100Words(sig.Fillers.Occurrences, sig.WordCount)
	res.Score = clamp(math.Max(0, 1-spec.PenaltyPerDensity*density)*spec.Weight, spec.Weight)
	res.Detail = map[string]string{
		"filler_count": fmt.Sprintf("%d", sig.Fillers.Occurrences),
		"density":      fmt.Sprintf("%.2f per 100 words", density),
	}

	if sig.Fillers.Occurrences == 0 {
		res.Feedback = []string{"Excellent clarity with no filler words."}
		return res
	}
	res.Feedback = []string{fmt.Sprintf("%d filler word(s) found (%s). Practice reducing them for better clarity.",
		sig.Fillers.Occurrences, strings.Join(sig.Fillers.Terms, ", "))}
	return res
}

// ScoreEngagement awards the budget fraction of distinct positive terms
// found against the configured target, capped at one.
func ScoreEngagement(spec rubric.EngagementSpec, sig Signals) model.CriterionResult {
	res := model.CriterionResult{Name: rubric.NameEngagement, Weight: spec.Weight}

	distinct := len(sig.Positive.Terms)
	fraction := float64(distinct) / float64(max(spec.TargetMatches, 1))
	res.Score = clamp(math.Min(1, fraction)*spec.Weight, spec.Weight)
	res.Detail = map[string]string{"positive_words": fmt.Sprintf("%d", distinct)}

	switch {
	case distinct >= spec.TargetMatches:
		res.Feedback = []string{"Highly engaging with a positive, enthusiastic tone."}
	case distinct > 0:
		res.Feedback = []string{fmt.Sprintf("Some engagement present (%s). Consider expressing more enthusiasm.",
			strings.Join(sig.Positive.Terms, ", "))}
	default:
		res.Feedback = []string{"Low engagement. Try to show more enthusiasm and positivity."}
	}
	return res
}

// BuildTopicsSignal folds per-topic match results into one coverage signal.
// Matched terms are capped to keep feedback readable.
func BuildTopicsSignal(topics map[string][]string, matched map[string][]string) TopicsSignal {
	const maxTerms = 10

	sig := TopicsSignal{Total: len(topics)}
	names := make([]string, 0, len(topics))
	for name := range topics {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		terms := matched[name]
		if len(terms) == 0 {
			sig.Missing = append(sig.Missing, name)
			continue
		}
		sig.Found++
		for _, t := range terms {
			if len(sig.Terms) < maxTerms {
				sig.Terms = append(sig.Terms, t)
			}
		}
	}
	return sig
}

func densityPer100Words(count, wordCount int) float64 {
	if wordCount <= 0 {
		return 0
	}
	return float64(count) / (float64(wordCount) / wordsPerDensityUnit)
}

func clamp(score, weight float64) float64 {
	return math.Max(0, math.Min(weight, score))
}
