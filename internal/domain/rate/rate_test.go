package rate_test

import (
	"testing"

	"github.com/elocute/elocute/internal/domain/rate"
	"github.com/elocute/elocute/internal/domain/rubric"
	. "github.com/smartystreets/goconvey/convey"
)

func TestScore(t *testing.T) {
	Convey("Given the default speech rate spec", t, func() {
		spec := rubric.Default().SpeechRate

		Convey("When 120 words are spoken in 60 seconds", func() {
			res := rate.Score(120, 60, spec)

			Convey("Then WPM is 120 and the fraction is full", func() {
				So(res.Available, ShouldBeTrue)
				So(res.WPM, ShouldEqual, 120)
				So(res.Fraction, ShouldEqual, 1)
			})
		})

		Convey("When WPM lands exactly on a range boundary", func() {
			low := rate.Score(100, 60, spec)
			high := rate.Score(150, 60, spec)

			Convey("Then both boundaries earn full marks", func() {
				So(low.Fraction, ShouldEqual, 1)
				So(high.Fraction, ShouldEqual, 1)
			})
		})

		Convey("When the rate is outside the range", func() {
			slow := rate.Score(80, 60, spec) // 80 WPM, 20 below the floor
			fast := rate.Score(170, 60, spec)

			Convey("Then the fraction decays by the configured slope", func() {
				So(slow.Fraction, ShouldAlmostEqual, 1-spec.DecayPerWPM*20, 1e-9)
				So(fast.Fraction, ShouldAlmostEqual, 1-spec.DecayPerWPM*20, 1e-9)
			})

			Convey("Then farther distances score strictly lower", func() {
				slower := rate.Score(40, 60, spec)
				So(slower.Fraction, ShouldBeLessThan, slow.Fraction)
			})
		})

		Convey("When the rate is extremely far from the range", func() {
			res := rate.Score(1000, 60, spec)

			Convey("Then the fraction floors at zero, never negative", func() {
				So(res.Fraction, ShouldEqual, 0)
			})
		})

		Convey("When the duration is missing", func() {
			res := rate.Score(120, 0, spec)

			Convey("Then the result is unavailable, not zero-scored", func() {
				So(res.Available, ShouldBeFalse)
			})
		})

		Convey("When the duration is negative", func() {
			res := rate.Score(120, -10, spec)

			Convey("Then the result is unavailable", func() {
				So(res.Available, ShouldBeFalse)
			})
		})

		Convey("When the transcript has zero words", func() {
			res := rate.Score(0, 60, spec)

			Convey("Then WPM is zero and the fraction is floored", func() {
				So(res.Available, ShouldBeTrue)
				So(res.WPM, ShouldEqual, 0)
				So(res.Fraction, ShouldEqual, 0)
			})
		})
	})
}
