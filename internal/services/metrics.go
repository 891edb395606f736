package services

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus instruments for report pipeline runs.
type Metrics struct {
	RunsStarted       prometheus.Counter
	RunsSucceeded     prometheus.Counter
	RunsFailed        *prometheus.CounterVec
	RunDuration       prometheus.Histogram
	ArtifactsProduced prometheus.Counter
}

var (
	metricsOnce     sync.Once
	metricsInstance *Metrics
)

// sharedMetrics returns the process-wide pipeline metrics, registering
// them on the default registry exactly once.
func sharedMetrics() *Metrics {
	metricsOnce.Do(func() {
		metricsInstance = &Metrics{
			RunsStarted: promauto.NewCounter(prometheus.CounterOpts{
				Name: "salesreport_runs_started_total",
				Help: "Number of report pipeline runs started.",
			}),
			RunsSucceeded: promauto.NewCounter(prometheus.CounterOpts{
				Name: "salesreport_runs_succeeded_total",
				Help: "Number of report pipeline runs that produced a bundle.",
			}),
			RunsFailed: promauto.NewCounterVec(prometheus.CounterOpts{
				Name: "salesreport_runs_failed_total",
				Help: "Number of failed report pipeline runs by stage.",
			}, []string{"stage"}),
			RunDuration: promauto.NewHistogram(prometheus.HistogramOpts{
				Name:    "salesreport_run_duration_seconds",
				Help:    "Wall time of successful report pipeline runs.",
				Buckets: prometheus.DefBuckets,
			}),
			ArtifactsProduced: promauto.NewCounter(prometheus.CounterOpts{
				Name: "salesreport_artifacts_produced_total",
				Help: "Total number of artifacts written into bundles.",
			}),
		}
	})
	return metricsInstance
}
