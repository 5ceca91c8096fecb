package model

// CriterionResult holds one criterion's outcome. Score is already scaled
// into [0, Weight]; the aggregator sums results without re-weighting.
type CriterionResult struct {
	Name     string            `json:"name"`
	Score    float64           `json:"score"`
	Weight   float64           `json:"max_weight"`
	Feedback []string          `json:"feedback"`
	Detail   map[string]string `json:"detail,omitempty"`
	Degraded bool              `json:"degraded,omitempty"`
}

// ScoreReport is the final serializable output of one scoring invocation.
// Criteria preserve rubric order.
type ScoreReport struct {
	ReportID        string            `json:"report_id"`
	FinalScore      float64           `json:"final_score"`
	WordCount       int               `json:"word_count"`
	OverallFeedback string            `json:"overall_feedback"`
	Criteria        []CriterionResult `json:"criteria"`
	DegradedSignals []string          `json:"degraded_signals,omitempty"`
}
