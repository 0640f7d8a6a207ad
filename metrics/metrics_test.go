package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecorderCounts(t *testing.T) {
	reg := prometheus.NewRegistry()
	r := New(reg)

	r.Attempt(OutcomeFailed)
	r.Attempt(OutcomeCompleted)
	r.Attempt(OutcomeCompleted)
	r.Extraction("regex_full_text")
	r.BrowserStarted()
	r.BrowserStarted()
	r.BrowserStopped()
	r.RunFinished(3 * time.Second)

	assert.Equal(t, 2.0, testutil.ToFloat64(r.attempts.WithLabelValues(OutcomeCompleted)))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.attempts.WithLabelValues(OutcomeFailed)))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.extractions.WithLabelValues("regex_full_text")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.browsersActive))

	n, err := testutil.GatherAndCount(reg, "mtn_run_duration_seconds")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestNilRecorder(t *testing.T) {
	var r *Recorder
	assert.NotPanics(t, func() {
		r.Attempt(OutcomeFailed)
		r.Extraction("none")
		r.BrowserStarted()
		r.BrowserStopped()
		r.RunFinished(time.Second)
	})
}
