package criteria_test

import (
	"errors"
	"testing"

	"github.com/elocute/elocute/internal/domain/criteria"
	"github.com/elocute/elocute/internal/domain/model"
	"github.com/elocute/elocute/internal/domain/rubric"
	. "github.com/smartystreets/goconvey/convey"
)

func TestAggregate(t *testing.T) {
	Convey("Given the default rubric", t, func() {
		def := rubric.Default()

		Convey("When every criterion scores at half its weight", func() {
			var results []model.CriterionResult
			for name, weight := range def.Weights() {
				results = append(results, model.CriterionResult{
					Name: name, Score: weight / 2, Weight: weight,
					Feedback: []string{"ok"},
				})
			}

			report, err := criteria.Aggregate(def, results, 1)

			Convey("Then the final score is exactly 50.0", func() {
				So(err, ShouldBeNil)
				So(report.FinalScore, ShouldEqual, 50.0)
			})
		})

		Convey("When every criterion scores full weight", func() {
			results := criteria.ScoreAll(def, healthySignals())
			report, err := criteria.Aggregate(def, results, 1)

			Convey("Then the final score is 100", func() {
				So(err, ShouldBeNil)
				So(report.FinalScore, ShouldEqual, 100.0)
			})
		})

		Convey("When the weight sum is not 100", func() {
			small := def
			small.Grammar.Weight = 10 // sum becomes 80
			results := criteria.ScoreAll(small, healthySignals())

			report, err := criteria.Aggregate(small, results, 1)

			Convey("Then normalization divides by the actual sum", func() {
				So(err, ShouldBeNil)
				So(report.FinalScore, ShouldEqual, 100.0)
			})
		})

		Convey("When aggregation runs twice on the same results", func() {
			results := criteria.ScoreAll(def, healthySignals())
			first, err1 := criteria.Aggregate(def, results, 1)
			second, err2 := criteria.Aggregate(def, results, 1)

			Convey("Then the reports are identical", func() {
				So(err1, ShouldBeNil)
				So(err2, ShouldBeNil)
				So(first, ShouldResemble, second)
			})
		})

		Convey("When criterion results carry degraded flags", func() {
			sig := healthySignals()
			sig.Grammar = criteria.GrammarSignal{Available: false}
			results := criteria.ScoreAll(def, sig)

			report, err := criteria.Aggregate(def, results, 1)

			Convey("Then the degraded criteria are listed", func() {
				So(err, ShouldBeNil)
				So(report.DegradedSignals, ShouldContain, rubric.NameGrammar)
			})
		})

		Convey("When all weights are zero", func() {
			invalid := rubric.Definition{}

			_, err := criteria.Aggregate(invalid, nil, 1)

			Convey("Then aggregation fails with ErrInvalidRubric and no report", func() {
				So(err, ShouldNotBeNil)
				So(errors.Is(err, rubric.ErrInvalidRubric), ShouldBeTrue)
			})
		})

		Convey("When the precision is configured", func() {
			results := []model.CriterionResult{
				{Name: rubric.NameSalutation, Score: 1, Weight: 5, Feedback: []string{"x"}},
			}
			small := def

			report, err := criteria.Aggregate(small, results, 2)

			Convey("Then the final score is rounded to that precision", func() {
				So(err, ShouldBeNil)
				So(report.FinalScore, ShouldEqual, 1.0) // 1/100*100 = 1.00
			})
		})
	})
}

func TestOverallFeedbackBands(t *testing.T) {
	Convey("Given aggregated reports at different levels", t, func() {
		def := rubric.Default()

		reportFor := func(fraction float64) model.ScoreReport {
			var results []model.CriterionResult
			for name, weight := range def.Weights() {
				results = append(results, model.CriterionResult{
					Name: name, Score: weight * fraction, Weight: weight,
					Feedback: []string{"ok"},
				})
			}
			report, err := criteria.Aggregate(def, results, 1)
			So(err, ShouldBeNil)
			return report
		}

		Convey("Then each band produces distinct overall feedback", func() {
			So(reportFor(0.9).OverallFeedback, ShouldContainSubstring, "Excellent")
			So(reportFor(0.75).OverallFeedback, ShouldContainSubstring, "Good")
			So(reportFor(0.55).OverallFeedback, ShouldContainSubstring, "Fair")
			So(reportFor(0.2).OverallFeedback, ShouldContainSubstring, "Needs improvement")
		})
	})
}

func TestEmptyReport(t *testing.T) {
	Convey("Given the default rubric", t, func() {
		def := rubric.Default()

		Convey("When building the empty-transcript report", func() {
			report, err := criteria.EmptyReport(def)

			Convey("Then all criteria are zero with the empty flag", func() {
				So(err, ShouldBeNil)
				So(report.FinalScore, ShouldEqual, 0)
				So(report.OverallFeedback, ShouldEqual, "empty transcript")
				So(len(report.Criteria), ShouldEqual, 6)
				for _, c := range report.Criteria {
					So(c.Score, ShouldEqual, 0)
					So(c.Feedback, ShouldNotBeEmpty)
				}
			})
		})

		Convey("When the rubric is invalid", func() {
			_, err := criteria.EmptyReport(rubric.Definition{})

			Convey("Then even the empty report fails with ErrInvalidRubric", func() {
				So(errors.Is(err, rubric.ErrInvalidRubric), ShouldBeTrue)
			})
		})
	})
}
