// Command score submits a transcript to a running elocute service and prints
// the resulting report.
//
// Usage:
//
//	score -file intro.txt -duration 62
//	cat intro.txt | score -duration 62
//	score -file intro.txt -json
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/elocute/elocute/internal/domain/model"
)

const defaultTimeout = 30 * time.Second

func main() {
	var (
		baseURL  = flag.String("url", "http://localhost:9090", "Base URL of the service")
		file     = flag.String("file", "", "Transcript file (default: stdin)")
		duration = flag.Float64("duration", 0, "Spoken duration in seconds (0 = unknown)")
		timeout  = flag.Duration("timeout", defaultTimeout, "HTTP request timeout")
		rawJSON  = flag.Bool("json", false, "Print the raw JSON report")
	)
	flag.Parse()

	text, err := readTranscript(*file)
	if err != nil {
		os.Stderr.WriteString("failed to read transcript: " + err.Error() + "\n")
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	report, err := submit(ctx, *baseURL, text, *duration)
	if err != nil {
		os.Stderr.WriteString("scoring failed: " + err.Error() + "\n")
		os.Exit(1)
	}

	if *rawJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		_ = enc.Encode(report)
		return
	}
	printReport(report)
}

func readTranscript(path string) (string, error) {
	if path == "" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	return string(data), nil
}

func submit(ctx context.Context, baseURL, text string, durationSeconds float64) (model.ScoreReport, error) {
	var report model.ScoreReport
	resp, err := resty.New().R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(map[string]any{
			"transcript":       text,
			"duration_seconds": durationSeconds,
		}).
		SetResult(&report).
		Post(strings.TrimRight(baseURL, "/") + "/score")
	if err != nil {
		return model.ScoreReport{}, fmt.Errorf("post score: %w", err)
	}
	if resp.IsError() {
		return model.ScoreReport{}, fmt.Errorf("service returned %s: %s", resp.Status(), resp.String())
	}
	return report, nil
}

func printReport(report model.ScoreReport) {
	fmt.Printf("Final score: %.1f / 100  (%s)\n", report.FinalScore, report.OverallFeedback)
	fmt.Printf("Words: %d   Report: %s\n\n", report.WordCount, report.ReportID)
	for _, c := range report.Criteria {
		marker := ""
		if c.Degraded {
			marker = "  [degraded]"
		}
		fmt.Printf("%-22s %5.1f / %-5.4g%s\n", c.Name, c.Score, c.Weight, marker)
		for _, f := range c.Feedback {
			fmt.Printf("    - %s\n", f)
		}
	}
	if len(report.DegradedSignals) > 0 {
		fmt.Printf("\nDegraded signals: %s\n", strings.Join(report.DegradedSignals, ", "))
	}
}
