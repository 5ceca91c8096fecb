package grammar

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/tidwall/gjson"

	"github.com/elocute/elocute/pkg/metrics"
)

// Default LanguageTool client configuration.
const (
	defaultBaseURL     = "http://localhost:8010"
	defaultLanguage    = "en-US"
	defaultTimeout     = 5 * time.Second
	defaultMaxExamples = 3
)

// LanguageTool checks text against a LanguageTool-compatible HTTP service
// (POST /v2/check). The HTTP client is created lazily on first use; creation
// is guarded so concurrent first calls share a single client.
type LanguageTool struct {
	baseURL     string
	language    string
	timeout     time.Duration
	maxExamples int

	once   sync.Once
	client *resty.Client
}

// LanguageToolOption applies a configuration option to the LanguageTool checker.
type LanguageToolOption func(*LanguageTool)

// WithBaseURL sets the service base URL, e.g. "http://localhost:8010".
func WithBaseURL(url string) LanguageToolOption {
	return func(lt *LanguageTool) {
		if url != "" {
			lt.baseURL = url
		}
	}
}

// WithLanguage sets the language code sent to the checker.
func WithLanguage(lang string) LanguageToolOption {
	return func(lt *LanguageTool) {
		if lang != "" {
			lt.language = lang
		}
	}
}

// WithTimeout bounds each check call. The checker degrades rather than
// blocking the scoring pipeline indefinitely.
func WithTimeout(d time.Duration) LanguageToolOption {
	return func(lt *LanguageTool) {
		if d > 0 {
			lt.timeout = d
		}
	}
}

// WithMaxExamples bounds the number of issue descriptions returned.
func WithMaxExamples(n int) LanguageToolOption {
	return func(lt *LanguageTool) {
		if n > 0 {
			lt.maxExamples = n
		}
	}
}

// NewLanguageTool creates a LanguageTool checker with configuration options.
func NewLanguageTool(opts ...LanguageToolOption) *LanguageTool {
	lt := &LanguageTool{
		baseURL:     defaultBaseURL,
		language:    defaultLanguage,
		timeout:     defaultTimeout,
		maxExamples: defaultMaxExamples,
	}
	for _, opt := range opts {
		opt(lt)
	}
	return lt
}

// Check posts text to the LanguageTool service and converts the response.
// Connection failures, timeouts, non-200 statuses, and unparseable bodies
// all surface as ErrUnavailable.
func (lt *LanguageTool) Check(ctx context.Context, text string) (Result, error) {
	lt.once.Do(func() {
		lt.client = resty.New().
			SetBaseURL(lt.baseURL).
			SetTimeout(lt.timeout)
	})

	start := time.Now()
	resp, err := lt.client.R().
		SetContext(ctx).
		SetFormData(map[string]string{
			"language": lt.language,
			"text":     text,
		}).
		Post("/v2/check")
	metrics.RecordGrammarCheckLatency(float64(time.Since(start).Milliseconds()))

	if err != nil {
		metrics.RecordGrammarCheckError()
		return Result{}, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	if resp.StatusCode() != http.StatusOK {
		metrics.RecordGrammarCheckError()
		return Result{}, fmt.Errorf("%w: unexpected status %d", ErrUnavailable, resp.StatusCode())
	}

	body := resp.String()
	matches := gjson.Get(body, "matches")
	if !matches.Exists() || !matches.IsArray() {
		metrics.RecordGrammarCheckError()
		return Result{}, fmt.Errorf("%w: malformed response", ErrUnavailable)
	}

	result := Result{IssueCount: int(gjson.Get(body, "matches.#").Int())}
	matches.ForEach(func(_, match gjson.Result) bool {
		if len(result.Examples) >= lt.maxExamples {
			return false
		}
		if msg := match.Get("message").String(); msg != "" {
			result.Examples = append(result.Examples, msg)
		}
		return true
	})
	return result, nil
}
