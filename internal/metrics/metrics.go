// Package metrics records crawl counters in a private Prometheus registry.
//
// A nil *Recorder is valid and records nothing, so components can take one
// unconditionally.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Pipeline stage names used with SetStage.
const (
	StageDiscovered = "discovered"
	StageUnique     = "unique"
	StageFiltered   = "filtered"
	StageClassified = "classified"
)

// Recorder holds the crawl metrics.
type Recorder struct {
	registry *prometheus.Registry

	searchRequests     *prometheus.CounterVec
	rateLimitWaits     prometheus.Counter
	rateLimitWaitTime  prometheus.Counter
	stageRepositories  *prometheus.GaugeVec
	classifications    *prometheus.CounterVec
	classifyDuration   *prometheus.HistogramVec
	checkpointFailures prometheus.Counter
}

// New creates a Recorder with its own registry.
func New() *Recorder {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Recorder{
		registry: reg,
		searchRequests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "reposift_search_requests_total",
				Help: "Total number of repository search requests by HTTP status",
			},
			[]string{"status"},
		),
		rateLimitWaits: factory.NewCounter(prometheus.CounterOpts{
			Name: "reposift_rate_limit_waits_total",
			Help: "Number of times the search client blocked on the rate limit",
		}),
		rateLimitWaitTime: factory.NewCounter(prometheus.CounterOpts{
			Name: "reposift_rate_limit_wait_seconds_total",
			Help: "Time spent blocked on the rate limit",
		}),
		stageRepositories: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "reposift_repositories",
				Help: "Repositories remaining after each pipeline stage",
			},
			[]string{"stage"},
		),
		classifications: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "reposift_classifications_total",
				Help: "Classification verdicts by backend, outcome and fallback",
			},
			[]string{"backend", "outcome", "fallback"},
		),
		classifyDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "reposift_classification_duration_seconds",
				Help:    "Duration of classification calls in seconds",
				Buckets: []float64{0.1, 0.5, 1, 2, 5, 10, 30, 60, 180},
			},
			[]string{"backend"},
		),
		checkpointFailures: factory.NewCounter(prometheus.CounterOpts{
			Name: "reposift_checkpoint_failures_total",
			Help: "Number of batch checkpoints that could not be written",
		}),
	}
}

// ObserveSearch counts one search request. Status 0 means a transport failure.
func (r *Recorder) ObserveSearch(status int) {
	if r == nil {
		return
	}
	label := strconv.Itoa(status)
	if status == 0 {
		label = "error"
	}
	r.searchRequests.WithLabelValues(label).Inc()
}

// ObserveRateLimitWait records a blocking wait on the rate limit.
func (r *Recorder) ObserveRateLimitWait(d time.Duration) {
	if r == nil {
		return
	}
	r.rateLimitWaits.Inc()
	r.rateLimitWaitTime.Add(d.Seconds())
}

// SetStage records how many repositories a pipeline stage produced.
func (r *Recorder) SetStage(stage string, n int) {
	if r == nil {
		return
	}
	r.stageRepositories.WithLabelValues(stage).Set(float64(n))
}

// ObserveClassification records one verdict and the time it took.
func (r *Recorder) ObserveClassification(backend, outcome string, fallback bool, d time.Duration) {
	if r == nil {
		return
	}
	r.classifications.WithLabelValues(backend, outcome, strconv.FormatBool(fallback)).Inc()
	r.classifyDuration.WithLabelValues(backend).Observe(d.Seconds())
}

// ObserveCheckpointFailure counts a failed checkpoint write.
func (r *Recorder) ObserveCheckpointFailure() {
	if r == nil {
		return
	}
	r.checkpointFailures.Inc()
}

// Registry exposes the underlying registry.
func (r *Recorder) Registry() *prometheus.Registry {
	if r == nil {
		return nil
	}
	return r.registry
}

// Handler returns an HTTP handler serving the recorder's metrics.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}

// WriteTextfile writes the metrics in the node exporter textfile format.
func (r *Recorder) WriteTextfile(path string) error {
	if r == nil {
		return nil
	}
	return prometheus.WriteToTextfile(path, r.registry)
}
