package grammar_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/elocute/elocute/internal/adapters/grammar"
	. "github.com/smartystreets/goconvey/convey"
)

const checkResponse = `{
	"matches": [
		{"message": "Possible spelling mistake found.", "offset": 4, "length": 5, "rule": {"id": "MORFOLOGIK_RULE_EN_US"}},
		{"message": "This sentence does not start with an uppercase letter.", "offset": 0, "length": 2, "rule": {"id": "UPPERCASE_SENTENCE_START"}},
		{"message": "Possible agreement error.", "offset": 20, "length": 3, "rule": {"id": "HE_VERB_AGR"}},
		{"message": "Two consecutive spaces.", "offset": 31, "length": 2, "rule": {"id": "CONSECUTIVE_SPACES"}}
	]
}`

func TestLanguageToolCheck(t *testing.T) {
	Convey("Given a LanguageTool-compatible server", t, func() {
		ctx := context.Background()

		Convey("When the server reports issues", func() {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.Method != http.MethodPost || r.URL.Path != "/v2/check" {
					http.NotFound(w, r)
					return
				}
				if err := r.ParseForm(); err != nil || r.Form.Get("text") == "" {
					http.Error(w, "missing text", http.StatusBadRequest)
					return
				}
				w.Header().Set("Content-Type", "application/json")
				_, _ = w.Write([]byte(checkResponse))
			}))
			defer srv.Close()

			lt := grammar.NewLanguageTool(
				grammar.WithBaseURL(srv.URL),
				grammar.WithMaxExamples(2),
			)

			result, err := lt.Check(ctx, "he go to school  yesterday")

			Convey("Then it returns the full issue count", func() {
				So(err, ShouldBeNil)
				So(result.IssueCount, ShouldEqual, 4)
			})

			Convey("Then examples are bounded by the configured limit", func() {
				So(len(result.Examples), ShouldEqual, 2)
				So(result.Examples[0], ShouldEqual, "Possible spelling mistake found.")
			})
		})

		Convey("When the server finds nothing", func() {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write([]byte(`{"matches": []}`))
			}))
			defer srv.Close()

			lt := grammar.NewLanguageTool(grammar.WithBaseURL(srv.URL))
			result, err := lt.Check(ctx, "This sentence is fine.")

			Convey("Then the result is clean", func() {
				So(err, ShouldBeNil)
				So(result.IssueCount, ShouldEqual, 0)
				So(result.Examples, ShouldBeEmpty)
			})
		})

		Convey("When the server is unreachable", func() {
			lt := grammar.NewLanguageTool(
				grammar.WithBaseURL("http://127.0.0.1:1"),
				grammar.WithTimeout(200*time.Millisecond),
			)

			_, err := lt.Check(ctx, "anything")

			Convey("Then the error matches ErrUnavailable", func() {
				So(err, ShouldNotBeNil)
				So(errors.Is(err, grammar.ErrUnavailable), ShouldBeTrue)
			})
		})

		Convey("When the server returns a non-200 status", func() {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				http.Error(w, "boom", http.StatusInternalServerError)
			}))
			defer srv.Close()

			lt := grammar.NewLanguageTool(grammar.WithBaseURL(srv.URL))
			_, err := lt.Check(ctx, "anything")

			Convey("Then the error matches ErrUnavailable", func() {
				So(errors.Is(err, grammar.ErrUnavailable), ShouldBeTrue)
			})
		})

		Convey("When the server returns a malformed body", func() {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write([]byte(`{"software": {"name": "LanguageTool"}}`))
			}))
			defer srv.Close()

			lt := grammar.NewLanguageTool(grammar.WithBaseURL(srv.URL))
			_, err := lt.Check(ctx, "anything")

			Convey("Then the error matches ErrUnavailable", func() {
				So(errors.Is(err, grammar.ErrUnavailable), ShouldBeTrue)
			})
		})

		Convey("When many goroutines hit a fresh checker at once", func() {
			var requests sync.WaitGroup
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write([]byte(`{"matches": []}`))
			}))
			defer srv.Close()

			lt := grammar.NewLanguageTool(grammar.WithBaseURL(srv.URL))
			errs := make([]error, 8)
			for i := 0; i < 8; i++ {
				requests.Add(1)
				go func(i int) {
					defer requests.Done()
					_, errs[i] = lt.Check(ctx, "concurrent first use")
				}(i)
			}
			requests.Wait()

			Convey("Then lazy client init is race-free and all calls succeed", func() {
				for _, err := range errs {
					So(err, ShouldBeNil)
				}
			})
		})
	})
}

func TestStaticChecker(t *testing.T) {
	Convey("Given static checkers", t, func() {
		ctx := context.Background()

		Convey("When configured with a fixed result", func() {
			c := grammar.NewStatic(grammar.Result{IssueCount: 2, Examples: []string{"x"}})
			result, err := c.Check(ctx, "text")

			Convey("Then it always returns that result", func() {
				So(err, ShouldBeNil)
				So(result.IssueCount, ShouldEqual, 2)
			})
		})

		Convey("When configured with an error", func() {
			c := grammar.NewStaticError(grammar.ErrUnavailable)
			_, err := c.Check(ctx, "text")

			Convey("Then it always fails with that error", func() {
				So(errors.Is(err, grammar.ErrUnavailable), ShouldBeTrue)
			})
		})
	})
}
