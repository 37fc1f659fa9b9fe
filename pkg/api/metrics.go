package api

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	statusPass = "pass"
	statusFail = "fail"
)

// Metrics holds all Prometheus metrics for the verifier. It implements
// verify.Metrics.
type Metrics struct {
	filesVerifiedTotal  *prometheus.CounterVec
	recordsReadTotal    prometheus.Counter
	sequenceErrorsTotal prometheus.Counter
	verifyDuration      prometheus.Histogram
}

// NewMetrics creates and registers all Prometheus metrics
func NewMetrics() *Metrics {
	return &Metrics{
		filesVerifiedTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "mktverify_files_verified_total",
				Help: "Total number of capture files verified",
			},
			[]string{"status"},
		),

		recordsReadTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "mktverify_records_read_total",
				Help: "Total number of records decoded across all files",
			},
		),

		sequenceErrorsTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "mktverify_sequence_errors_total",
				Help: "Total number of sequence-continuity violations observed",
			},
		),

		verifyDuration: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "mktverify_file_verification_duration_seconds",
				Help:    "Per-file verification duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
		),
	}
}

// RecordFileVerified records one completed file verification
func (m *Metrics) RecordFileVerified(passed bool, duration time.Duration) {
	status := statusPass
	if !passed {
		status = statusFail
	}
	m.filesVerifiedTotal.WithLabelValues(status).Inc()
	m.verifyDuration.Observe(duration.Seconds())
}

// RecordRecordsRead records how many records one file contributed
func (m *Metrics) RecordRecordsRead(n int64) {
	m.recordsReadTotal.Add(float64(n))
}

// RecordSequenceErrors records sequence violations found in one file
func (m *Metrics) RecordSequenceErrors(n int64) {
	m.sequenceErrorsTotal.Add(float64(n))
}
