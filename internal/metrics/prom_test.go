package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"github.com/AngelCh415/dayparting-go/internal/apperr"
)

func TestCollectors(t *testing.T) {
	c := NewCollectors(prometheus.NewRegistry())

	c.ObserveUpload(true, 10, 2, 3)
	c.ObserveUpload(false, 4, 0, 1)
	c.ObserveRetry()
	c.ObserveRetry()
	c.ObserveCompletion(nil, time.Second)
	c.ObserveCompletion(apperr.New(apperr.KindExhaustedRetries, "x", errors.New("429")), time.Second)

	assert.Equal(t, 1.0, testutil.ToFloat64(c.uploads.WithLabelValues("success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.uploads.WithLabelValues("failure")))
	assert.Equal(t, 14.0, testutil.ToFloat64(c.rows))
	assert.Equal(t, 2.0, testutil.ToFloat64(c.droppedRows))
	assert.Equal(t, 2.0, testutil.ToFloat64(c.retries))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.completions.WithLabelValues("ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.completions.WithLabelValues("exhausted_retries")))
}

func TestCollectorsNilSafe(t *testing.T) {
	var c *Collectors
	assert.NotPanics(t, func() {
		c.ObserveUpload(true, 1, 0, 1)
		c.ObserveRetry()
		c.ObserveCompletion(nil, 0)
	})
}
