package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/elocute/elocute/internal/adapters/embedding"
	"github.com/elocute/elocute/internal/adapters/grammar"
	"github.com/elocute/elocute/internal/adapters/http/api"
	"github.com/elocute/elocute/internal/adapters/http/site"
	"github.com/elocute/elocute/internal/adapters/http/swagger"
	"github.com/elocute/elocute/internal/config"
	"github.com/elocute/elocute/internal/domain/similarity"
	"github.com/elocute/elocute/internal/engine"
	"github.com/elocute/elocute/pkg/logger"
	"github.com/elocute/elocute/pkg/metrics"
)

// HTTP server timeout constants.
const (
	readTimeout               = 10 * time.Second
	writeTimeout              = 30 * time.Second
	idleTimeout               = 60 * time.Second
	readHeaderTimeout         = 5 * time.Second
	shutdownTimeout           = 30 * time.Second
	systemMetricsInterval     = 10 * time.Second
	serviceMetricsInterval    = 5 * time.Second
	nanosecondsPerMillisecond = 1e6
)

func main() {
	// Disable default Go metrics collection to avoid duplicate metrics.
	// We collect our own custom system metrics instead.
	prometheus.Unregister(collectors.NewGoCollector())
	prometheus.Unregister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	// Local development convenience; absence of a .env file is fine.
	_ = godotenv.Load()

	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		return
	}
	log := logger.Get()

	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load configuration (defaults -> optional file -> env)
	cfg, err := config.Load(ctx)
	if err != nil {
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		return
	}

	// Apply configured log level (fallback to info on invalid input)
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		log.Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	provider, err := buildEmbeddingProvider(ctx, cfg)
	if err != nil {
		log.Error(ctx, "failed to initialize embedding provider", logger.Error(err))
		return
	}

	checker := grammar.NewLanguageTool(
		grammar.WithBaseURL(cfg.GrammarBaseURL),
		grammar.WithLanguage(cfg.GrammarLanguage),
		grammar.WithTimeout(time.Duration(cfg.GrammarTimeoutMS)*time.Millisecond),
		grammar.WithMaxExamples(cfg.GrammarMaxExamples),
	)

	eng, err := engine.New(
		engine.WithRubric(cfg.Rubric),
		engine.WithGrammarChecker(checker),
		engine.WithEmbeddingProvider(provider),
		engine.WithEmbeddingCacheSize(cfg.EmbeddingCacheSize),
		engine.WithPrecision(cfg.ScorePrecision),
		engine.WithLogger(log.Named("engine")),
	)
	if err != nil {
		log.Error(ctx, "failed to build scoring engine", logger.Error(err))
		return
	}

	go startSystemMetricsUpdater(ctx)
	go startServiceMetricsUpdater(ctx, eng)

	// HTTP mux and routes.
	mux := http.NewServeMux()

	site.Register(ctx, mux)
	swagger.Register(ctx, mux)

	apiServer := api.NewServer(eng, eng)
	apiServer.Register(ctx, mux)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           mux,
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	go func() {
		log.Info(ctx, "starting HTTP server",
			logger.String("addr", cfg.Addr),
			logger.String("embedding", provider.Version()),
			logger.String("grammar", cfg.GrammarBaseURL),
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			os.Stderr.WriteString("HTTP server failed: " + err.Error() + "\n")
			return
		}
	}()

	<-ctx.Done()
	log.Info(ctx, "shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error(ctx, "server shutdown failed", logger.Error(err))
	}

	log.Info(ctx, "server stopped")
}

// buildEmbeddingProvider selects the similarity backend from configuration.
func buildEmbeddingProvider(ctx context.Context, cfg *config.Config) (similarity.Provider, error) {
	switch cfg.EmbeddingProvider {
	case config.ProviderGemini:
		return embedding.NewGeminiProvider(ctx, cfg.GeminiAPIKey, embedding.WithModel(cfg.EmbeddingModel))
	default:
		return embedding.NewHashingProvider(embedding.WithDimensions(cfg.EmbeddingDimensions)), nil
	}
}

// startSystemMetricsUpdater starts a background goroutine that updates system metrics.
func startSystemMetricsUpdater(ctx context.Context) {
	ticker := time.NewTicker(systemMetricsInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			updateSystemMetrics()
		}
	}
}

// startServiceMetricsUpdater starts a background goroutine that refreshes
// gauges derived from engine statistics.
func startServiceMetricsUpdater(ctx context.Context, eng *engine.Engine) {
	ticker := time.NewTicker(serviceMetricsInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			stats := eng.GetStats()
			if cacheLen, ok := stats["embeddingCache"].(int); ok {
				metrics.UpdateEmbeddingCacheSize(cacheLen)
			}
		}
	}
}

// updateSystemMetrics updates system-level metrics.
func updateSystemMetrics() {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	metrics.UpdateSystemMemoryUsage(m.Alloc)
	metrics.UpdateSystemGoroutineCount(runtime.NumGoroutine())

	if m.NumGC > 0 {
		avgPauseMs := float64(m.PauseTotalNs) / float64(m.NumGC) / nanosecondsPerMillisecond
		metrics.RecordSystemGCPauseTime(avgPauseMs)
	}
}
