// Package metrics defines the Prometheus collectors for the HTTP layer, the
// index builds, autocomplete and background jobs.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/gcbaptista/termindex/model"
)

// Metrics holds all Prometheus collectors and the registry they live in.
type Metrics struct {
	registry *prometheus.Registry

	HTTPRequestsTotal      *prometheus.CounterVec
	HTTPRequestDuration    *prometheus.HistogramVec
	SuggestionsTotal       *prometheus.CounterVec
	SearchQueriesTotal     *prometheus.CounterVec
	IndexBuildsTotal       *prometheus.CounterVec
	IndexBuildDuration     prometheus.Histogram
	IndexedDocuments       prometheus.Gauge
	IndexedTerms           prometheus.Gauge
	VocabularyWords        prometheus.Gauge
	VocabularySkippedTotal prometheus.Counter
	JobsTotal              *prometheus.CounterVec
	JobDuration            *prometheus.HistogramVec
}

// New creates the collectors and registers them on a private registry, so
// several instances can coexist (tests, multiple engines in one process).
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		HTTPRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "termindex_http_requests_total",
				Help: "Total number of HTTP requests by method, route, and status.",
			},
			[]string{"method", "route", "status"},
		),
		HTTPRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "termindex_http_request_duration_seconds",
				Help:    "HTTP request latency in seconds.",
				Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
			},
			[]string{"method", "route"},
		),
		SuggestionsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "termindex_suggestions_total",
				Help: "Autocomplete queries by outcome (hit, empty).",
			},
			[]string{"outcome"},
		),
		SearchQueriesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "termindex_search_queries_total",
				Help: "Article searches by outcome (found, not_found, not_built).",
			},
			[]string{"outcome"},
		),
		IndexBuildsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "termindex_index_builds_total",
				Help: "Index builds by status.",
			},
			[]string{"status"},
		),
		IndexBuildDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "termindex_index_build_duration_seconds",
				Help:    "Time spent building forward, inverted and homepage indexes.",
				Buckets: prometheus.ExponentialBuckets(0.001, 4, 10),
			},
		),
		IndexedDocuments: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "termindex_indexed_documents",
				Help: "Documents in the current index snapshot.",
			},
		),
		IndexedTerms: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "termindex_indexed_terms",
				Help: "Distinct terms in the current index snapshot.",
			},
		),
		VocabularyWords: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "termindex_vocabulary_words",
				Help: "Distinct words in the autocomplete trie.",
			},
		),
		VocabularySkippedTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "termindex_vocabulary_skipped_records_total",
				Help: "Vocabulary records rejected during bulk loads.",
			},
		),
		JobsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "termindex_jobs_total",
				Help: "Finished background jobs by type and status.",
			},
			[]string{"type", "status"},
		),
		JobDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "termindex_job_duration_seconds",
				Help:    "Background job execution time.",
				Buckets: prometheus.ExponentialBuckets(0.001, 4, 10),
			},
			[]string{"type"},
		),
	}

	m.registry.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.SuggestionsTotal,
		m.SearchQueriesTotal,
		m.IndexBuildsTotal,
		m.IndexBuildDuration,
		m.IndexedDocuments,
		m.IndexedTerms,
		m.VocabularyWords,
		m.VocabularySkippedTotal,
		m.JobsTotal,
		m.JobDuration,
	)

	return m
}

// Handler returns the Prometheus scrape HTTP handler for this registry.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registry exposes the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// ObserveJob records a finished job. It satisfies jobs.Observer.
func (m *Metrics) ObserveJob(jobType model.JobType, status model.JobStatus, took time.Duration) {
	m.JobsTotal.WithLabelValues(string(jobType), string(status)).Inc()
	m.JobDuration.WithLabelValues(string(jobType)).Observe(took.Seconds())
}

// ObserveBuild records an index build and, when it succeeded, the snapshot size.
func (m *Metrics) ObserveBuild(err error, took time.Duration, documents, terms int) {
	if err != nil {
		m.IndexBuildsTotal.WithLabelValues("failed").Inc()
		return
	}
	m.IndexBuildsTotal.WithLabelValues("completed").Inc()
	m.IndexBuildDuration.Observe(took.Seconds())
	m.IndexedDocuments.Set(float64(documents))
	m.IndexedTerms.Set(float64(terms))
}
