package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/AngelCh415/dayparting-go/internal/apperr"
)

// Collectors groups the process-wide Prometheus instruments. All methods
// are safe on a nil receiver so tests can skip wiring them.
type Collectors struct {
	uploads         *prometheus.CounterVec
	rows            prometheus.Counter
	droppedRows     prometheus.Counter
	hours           prometheus.Histogram
	retries         prometheus.Counter
	completions     *prometheus.CounterVec
	completionDelay prometheus.Histogram
}

func NewCollectors(reg prometheus.Registerer) *Collectors {
	f := promauto.With(reg)
	return &Collectors{
		uploads: f.NewCounterVec(prometheus.CounterOpts{
			Name: "dayparting_uploads_total",
			Help: "Processed uploads by outcome.",
		}, []string{"result"}),
		rows: f.NewCounter(prometheus.CounterOpts{
			Name: "dayparting_rows_total",
			Help: "Rows read from uploads.",
		}),
		droppedRows: f.NewCounter(prometheus.CounterOpts{
			Name: "dayparting_rows_dropped_total",
			Help: "Rows left out of aggregation because the start date/time did not parse.",
		}),
		hours: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "dayparting_hour_buckets",
			Help:    "Distinct hours observed per upload.",
			Buckets: []float64{0, 1, 4, 8, 12, 16, 20, 24},
		}),
		retries: f.NewCounter(prometheus.CounterOpts{
			Name: "completion_retries_total",
			Help: "Completion calls retried after a 429.",
		}),
		completions: f.NewCounterVec(prometheus.CounterOpts{
			Name: "completion_requests_total",
			Help: "Completion calls by final outcome.",
		}, []string{"outcome"}),
		completionDelay: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "completion_duration_seconds",
			Help:    "Wall time of Complete including backoff.",
			Buckets: prometheus.ExponentialBuckets(0.25, 2, 10),
		}),
	}
}

func (c *Collectors) ObserveUpload(success bool, rows, dropped, hours int) {
	if c == nil {
		return
	}
	res := "failure"
	if success {
		res = "success"
	}
	c.uploads.WithLabelValues(res).Inc()
	c.rows.Add(float64(rows))
	c.droppedRows.Add(float64(dropped))
	c.hours.Observe(float64(hours))
}

func (c *Collectors) ObserveRetry() {
	if c == nil {
		return
	}
	c.retries.Inc()
}

func (c *Collectors) ObserveCompletion(err error, took time.Duration) {
	if c == nil {
		return
	}
	outcome := "ok"
	if err != nil {
		outcome = apperr.KindOf(err).String()
	}
	c.completions.WithLabelValues(outcome).Inc()
	c.completionDelay.Observe(took.Seconds())
}
