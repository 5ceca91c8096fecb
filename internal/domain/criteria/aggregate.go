package criteria

import (
	"fmt"
	"math"

	"github.com/elocute/elocute/internal/domain/model"
	"github.com/elocute/elocute/internal/domain/rubric"
)

// Overall feedback thresholds on the normalized score.
const (
	excellentThreshold = 85
	goodThreshold      = 70
	fairThreshold      = 50
)

// Aggregate folds criterion results into a ScoreReport. Scores are already
// weight-scaled, so this is a straight sum normalized by the configured
// weight sum, never by an assumed 100. Aggregation is pure: the same
// results always produce the same report.
//
// The rubric is re-validated here so a misconfigured weight sum fails with
// ErrInvalidRubric instead of dividing by zero.
func Aggregate(def rubric.Definition, results []model.CriterionResult, precision int) (model.ScoreReport, error) {
	if err := def.Validate(); err != nil {
		return model.ScoreReport{}, err
	}

	var sum float64
	var degraded []string
	for _, r := range results {
		sum += r.Score
		if r.Degraded {
			degraded = append(degraded, r.Name)
		}
	}

	final := round(sum/def.WeightSum()*100, precision)
	report := model.ScoreReport{
		FinalScore:      final,
		Criteria:        results,
		OverallFeedback: overallFeedback(final),
		DegradedSignals: degraded,
	}
	return report, nil
}

// EmptyReport builds the all-zero report returned for blank transcripts.
func EmptyReport(def rubric.Definition) (model.ScoreReport, error) {
	if err := def.Validate(); err != nil {
		return model.ScoreReport{}, err
	}

	weights := []struct {
		name   string
		weight float64
	}{
		{rubric.NameSalutation, def.Salutation.Weight},
		{rubric.NameContent, def.Content.Weight},
		{rubric.NameSpeechRate, def.SpeechRate.Weight},
		{rubric.NameGrammar, def.Grammar.Weight},
		{rubric.NameClarity, def.Clarity.Weight},
		{rubric.NameEngagement, def.Engagement.Weight},
	}

	results := make([]model.CriterionResult, 0, len(weights))
	for _, w := range weights {
		results = append(results, model.CriterionResult{
			Name:     w.name,
			Weight:   w.weight,
			Feedback: []string{"No transcript text to evaluate."},
		})
	}
	return model.ScoreReport{
		OverallFeedback: "empty transcript",
		Criteria:        results,
	}, nil
}

func overallFeedback(final float64) string {
	switch {
	case final >= excellentThreshold:
		return fmt.Sprintf("Excellent introduction (%.1f/100).", final)
	case final >= goodThreshold:
		return fmt.Sprintf("Good introduction (%.1f/100) with room to polish.", final)
	case final >= fairThreshold:
		return fmt.Sprintf("Fair introduction (%.1f/100); several criteria need work.", final)
	default:
		return fmt.Sprintf("Needs improvement (%.1f/100) across most criteria.", final)
	}
}

func round(v float64, precision int) float64 {
	if precision < 0 {
		precision = 0
	}
	factor := math.Pow(10, float64(precision))
	return math.Round(v*factor) / factor
}
