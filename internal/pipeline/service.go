package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/AngelCh415/dayparting-go/internal/apperr"
	"github.com/AngelCh415/dayparting-go/internal/ingest"
	"github.com/AngelCh415/dayparting-go/internal/metrics"
	"github.com/AngelCh415/dayparting-go/internal/models"
)

type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

type Variant string

const (
	VariantHourly  Variant = "hourly"
	VariantRecords Variant = "records"
)

type Service struct {
	llm     Completer
	log     *slog.Logger
	m       *metrics.Collectors
	timeout time.Duration
}

// NewService wires the pipeline. timeout bounds one run including every
// backoff wait; zero leaves only the caller's context.
func NewService(llm Completer, log *slog.Logger, m *metrics.Collectors, timeout time.Duration) *Service {
	if log == nil {
		log = slog.Default()
	}
	return &Service{llm: llm, log: log.With(slog.String("component", "pipeline")), m: m, timeout: timeout}
}

// Process runs the hourly variant and never returns an error: every
// failure comes back as {success:false}.
func (s *Service) Process(ctx context.Context, raw []models.RawRecord) models.AnalysisResult {
	return Result(s.Run(ctx, raw, VariantHourly))
}

func (s *Service) Run(ctx context.Context, raw []models.RawRecord, v Variant) (analysis string, err error) {
	defer func() {
		if p := recover(); p != nil {
			s.log.Error("pipeline panic", slog.String("panic", fmt.Sprint(p)))
			analysis, err = "", apperr.New(apperr.KindUnknown, "error processing file", fmt.Errorf("panic: %v", p))
		}
	}()

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	records := ingest.NormalizeAll(raw)
	agg := metrics.Build(records)
	if agg.Dropped > 0 {
		s.log.Warn("rows without a parsable start date/time left out",
			slog.Int("dropped", agg.Dropped), slog.Int("rows", len(records)))
	}
	s.log.Info("aggregate ready",
		slog.Int("rows", len(records)),
		slog.Int("hours", len(agg.Metrics)),
		slog.String("variant", string(v)))

	var prompt string
	switch v {
	case VariantRecords:
		prompt, err = RecordsPrompt(records)
	default:
		prompt, err = HourlyPrompt(agg.Metrics)
	}
	if err != nil {
		s.m.ObserveUpload(false, len(records), agg.Dropped, len(agg.Metrics))
		return "", apperr.New(apperr.KindUnknown, "error processing file", err)
	}

	analysis, err = s.llm.Complete(ctx, prompt)
	s.m.ObserveUpload(err == nil, len(records), agg.Dropped, len(agg.Metrics))
	if err != nil {
		s.log.Error("analysis failed",
			slog.String("kind", apperr.KindOf(err).String()),
			slog.String("err", err.Error()))
		return "", err
	}
	return analysis, nil
}

func Result(analysis string, err error) models.AnalysisResult {
	if err != nil {
		return models.AnalysisResult{Success: false, Error: err.Error()}
	}
	return models.AnalysisResult{Success: true, Analysis: analysis}
}
