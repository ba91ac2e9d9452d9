package main

import (
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/AngelCh415/dayparting-go/internal/completion"
	"github.com/AngelCh415/dayparting-go/internal/config"
	"github.com/AngelCh415/dayparting-go/internal/httpx"
	"github.com/AngelCh415/dayparting-go/internal/metrics"
	"github.com/AngelCh415/dayparting-go/internal/pipeline"
)

func main() {
	// .env es opcional
	_ = godotenv.Load()

	cfg, err := config.FromEnv()
	if err != nil {
		slog.Error("config error", slog.String("err", err.Error()))
		os.Exit(1)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel}))
	slog.SetDefault(logger)
	if cfg.OpenAIKey == "" {
		logger.Warn("OPENAI_API_KEY not set, analyses will fail until it is configured")
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	mc := metrics.NewCollectors(reg)

	llm := completion.New(completion.Config{
		APIKey:       cfg.OpenAIKey,
		BaseURL:      cfg.OpenAIBaseURL,
		Model:        cfg.OpenAIModel,
		MaxRetries:   retries(cfg.RetryMax),
		InitialDelay: cfg.RetryInitialDelay,
		Multiplier:   cfg.RetryMultiplier,
		HTTPClient:   completion.NewHTTPClient(cfg.HTTPTimeout),
	}, logger, mc)
	svc := pipeline.NewService(llm, logger, mc, cfg.AnalysisTimeout)

	r := httpx.NewRouter(logger, svc, cfg, reg)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	logger.Info("starting server", slog.String("port", cfg.Port), slog.String("model", cfg.OpenAIModel))
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("server error", slog.String("err", err.Error()))
		os.Exit(1)
	}
}

// RETRY_MAX=0 means no retries; the client reads 0 as "use the default".
func retries(n int) int {
	if n == 0 {
		return -1
	}
	return n
}
