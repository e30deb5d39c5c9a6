package worker

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Job run statuses.
const (
	StatusStarted = "started"
	StatusSuccess = "success"
	StatusFailure = "failure"
)

// WorkerMetrics holds the scheduled job metrics.
type WorkerMetrics struct {
	JobRunsTotal        *prometheus.CounterVec
	JobDurationSeconds  prometheus.Histogram
	JobLastSuccessStamp prometheus.Gauge
}

// NewWorkerMetrics registers the job metrics on reg. Pass
// prometheus.DefaultRegisterer in production and a fresh registry in tests.
func NewWorkerMetrics(reg prometheus.Registerer) *WorkerMetrics {
	f := promauto.With(reg)
	return &WorkerMetrics{
		JobRunsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Name: "stats_job_runs_total",
			Help: "Total number of stats job runs by status (started/success/failure)",
		}, []string{"status"}),

		JobDurationSeconds: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "stats_job_duration_seconds",
			Help:    "Duration of stats job execution in seconds",
			Buckets: []float64{.005, .01, .05, .1, .5, 1, 5},
		}),

		JobLastSuccessStamp: f.NewGauge(prometheus.GaugeOpts{
			Name: "stats_job_last_success_timestamp_seconds",
			Help: "Unix timestamp of the last successful stats job run",
		}),
	}
}

func (m *WorkerMetrics) RecordJobRun(status string) {
	m.JobRunsTotal.WithLabelValues(status).Inc()
}

func (m *WorkerMetrics) RecordJobDuration(seconds float64) {
	m.JobDurationSeconds.Observe(seconds)
}

func (m *WorkerMetrics) RecordLastSuccess() {
	m.JobLastSuccessStamp.SetToCurrentTime()
}
