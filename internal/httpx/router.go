package httpx

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/render"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/AngelCh415/dayparting-go/internal/apperr"
	"github.com/AngelCh415/dayparting-go/internal/config"
	"github.com/AngelCh415/dayparting-go/internal/ingest"
	"github.com/AngelCh415/dayparting-go/internal/models"
	"github.com/AngelCh415/dayparting-go/internal/pipeline"
	"github.com/AngelCh415/dayparting-go/internal/utils"
)

type Analyzer interface {
	Run(ctx context.Context, raw []models.RawRecord, v pipeline.Variant) (string, error)
}

func NewRouter(log *slog.Logger, svc Analyzer, cfg config.Config, gatherer prometheus.Gatherer) http.Handler {
	mux := chi.NewRouter()
	mux.Use(utils.RequestID)
	mux.Use(utils.Logger(log))
	mux.Use(middleware.Recoverer)
	mux.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders: []string{"X-Request-ID"},
		MaxAge:         300,
	}))

	mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); w.Write([]byte("ok")) })
	mux.Get("/readyz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); w.Write([]byte("ready")) })
	if gatherer != nil {
		mux.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	}

	mux.Route("/api", func(r chi.Router) {
		r.Use(utils.RateLimit(cfg.RateLimitRPS, cfg.RateLimitBurst, log))
		r.Post("/process", uploadHandler(log, svc, cfg.MaxUploadBytes, pipeline.VariantHourly))
		r.Post("/analyze", uploadHandler(log, svc, cfg.MaxUploadBytes, pipeline.VariantRecords))
		r.Post("/upload", uploadHandler(log, svc, cfg.MaxUploadBytes, pipeline.VariantRecords))
	})

	return mux
}

func uploadHandler(log *slog.Logger, svc Analyzer, maxBytes int64, v pipeline.Variant) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
		if err := r.ParseMultipartForm(maxBytes); err != nil {
			log.Warn("bad multipart form", slog.String("rid", utils.RID(r.Context())), slog.String("err", err.Error()))
			writeResult(w, r, http.StatusBadRequest, models.AnalysisResult{Error: "error parsing form"})
			return
		}
		// temporales del multipart
		defer r.MultipartForm.RemoveAll()

		f, hdr, err := r.FormFile("file")
		if err != nil {
			writeResult(w, r, http.StatusBadRequest, models.AnalysisResult{Error: "no file uploaded"})
			return
		}
		defer f.Close()

		raw, err := ingest.ReadRecords(hdr.Filename, f)
		if err != nil {
			log.Warn("unreadable upload",
				slog.String("rid", utils.RID(r.Context())),
				slog.String("file", hdr.Filename),
				slog.String("err", cause(err).Error()))
			writeResult(w, r, http.StatusBadRequest, pipeline.Result("", err))
			return
		}

		analysis, err := svc.Run(r.Context(), raw, v)
		writeResult(w, r, statusFor(err), pipeline.Result(analysis, err))
	}
}

func cause(err error) error {
	if u := errors.Unwrap(err); u != nil {
		return u
	}
	return err
}

func statusFor(err error) int {
	switch apperr.KindOf(err) {
	case apperr.KindUnknown:
		if err == nil {
			return http.StatusOK
		}
		return http.StatusInternalServerError
	case apperr.KindInput:
		return http.StatusBadRequest
	case apperr.KindCanceled:
		return http.StatusGatewayTimeout
	default:
		return http.StatusBadGateway
	}
}

func writeResult(w http.ResponseWriter, r *http.Request, status int, res models.AnalysisResult) {
	render.Status(r, status)
	render.JSON(w, r, res)
}
