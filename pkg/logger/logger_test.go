package logger_test

import (
	"context"
	"testing"

	"github.com/elocute/elocute/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func TestLogger(t *testing.T) {
	Convey("Given an initialized logger", t, func() {
		err := logger.Init()
		So(err, ShouldBeNil)

		ctx := context.Background()
		log := logger.Get()

		Convey("When logging at each level", func() {
			Convey("Then it should not panic", func() {
				So(func() {
					log.Debug(ctx, "debug message", logger.String("k", "v"))
					log.Info(ctx, "info message", logger.Int("n", 1))
					log.Warn(ctx, "warn message", logger.Float64("f", 1.5))
					log.Error(ctx, "error message", logger.Bool("b", true))
				}, ShouldNotPanic)
			})
		})

		Convey("When creating a named logger", func() {
			named := log.Named("scorer")

			Convey("Then it should be usable", func() {
				So(named, ShouldNotBeNil)
				So(func() { named.Info(ctx, "named message") }, ShouldNotPanic)
			})
		})

		Convey("When setting the level from a string", func() {
			Convey("Then known levels should parse", func() {
				So(logger.SetLevelString("debug"), ShouldBeNil)
				So(logger.SetLevelString("INFO"), ShouldBeNil)
				So(logger.SetLevelString("warning"), ShouldBeNil)
				So(logger.SetLevelString("error"), ShouldBeNil)
				So(logger.SetLevelString(""), ShouldBeNil)
			})

			Convey("Then unknown levels should fail", func() {
				So(logger.SetLevelString("verbose"), ShouldNotBeNil)
			})
		})
	})
}
