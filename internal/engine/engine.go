// Package engine wires the autocomplete trie, the index builders, the
// snapshot store and the job manager into one service.
package engine

import (
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/gcbaptista/termindex/config"
	"github.com/gcbaptista/termindex/index"
	"github.com/gcbaptista/termindex/internal/analytics"
	"github.com/gcbaptista/termindex/internal/autocomplete"
	"github.com/gcbaptista/termindex/internal/errors"
	"github.com/gcbaptista/termindex/internal/indexing"
	"github.com/gcbaptista/termindex/internal/jobs"
	"github.com/gcbaptista/termindex/internal/logger"
	"github.com/gcbaptista/termindex/internal/metrics"
	"github.com/gcbaptista/termindex/internal/search"
	"github.com/gcbaptista/termindex/model"
	"github.com/gcbaptista/termindex/services"
	"github.com/gcbaptista/termindex/store"
)

// Engine serves autocomplete and the term index.
// It implements the services.Engine interface.
type Engine struct {
	settings     *config.Settings
	autocomplete *autocomplete.Engine
	indexer      *indexing.Service
	snapshots    *store.SnapshotStore
	jobManager   *jobs.Manager
	analytics    *analytics.Service
	metrics      *metrics.Metrics
	log          *log.Logger

	buildMu sync.Mutex // Serializes rebuilds
}

var _ services.Engine = (*Engine)(nil)

// NewEngine creates a new engine orchestrator and starts its job manager.
// Nil settings get the defaults; nil metrics get a private registry.
func NewEngine(settings *config.Settings, m *metrics.Metrics, l *log.Logger) *Engine {
	if settings == nil {
		settings = config.Default()
	}
	if m == nil {
		m = metrics.New()
	}
	if l == nil {
		l = logger.New("engine")
	}

	ac := autocomplete.New(l.WithPrefix("autocomplete"))
	ac.SetMaxSuggestions(settings.Autocomplete.MaxSuggestions)

	e := &Engine{
		settings:     settings,
		autocomplete: ac,
		indexer:      indexing.NewService(settings.Index.Workers, settings.Index.Stopwords, l.WithPrefix("indexing")),
		snapshots:    store.NewSnapshotStore(),
		jobManager:   jobs.NewManager(settings.Jobs.Workers, m, l.WithPrefix("jobs")),
		metrics:      m,
		log:          l,
	}
	e.analytics = analytics.NewService(e, l.WithPrefix("analytics"))
	e.jobManager.Start()
	return e
}

// Close stops the job manager, waiting for running jobs.
func (e *Engine) Close() {
	e.jobManager.Stop()
}

// Settings returns the settings the engine was created with.
func (e *Engine) Settings() *config.Settings {
	return e.settings
}

// Metrics returns the collectors the engine records to.
func (e *Engine) Metrics() *metrics.Metrics {
	return e.metrics
}

func (e *Engine) current() (*index.Snapshot, error) {
	snap := e.snapshots.Current()
	if snap == nil {
		return nil, errors.ErrIndexNotBuilt
	}
	return snap, nil
}

// Search returns the documents indexed under term in ranking order.
func (e *Engine) Search(term string) (services.SearchResult, error) {
	snap, err := e.current()
	if err != nil {
		e.metrics.SearchQueriesTotal.WithLabelValues("not_built").Inc()
		return services.SearchResult{}, err
	}

	searcher, err := search.NewService(snap.Inverted)
	if err != nil {
		return services.SearchResult{}, err
	}

	start := time.Now()
	result, err := searcher.Search(term)
	event := model.QueryEvent{
		Kind:         model.QueryKindSearch,
		Query:        term,
		ResponseTime: time.Since(start),
		ResultCount:  result.Total,
	}
	e.analytics.Track(event)

	if err != nil {
		e.metrics.SearchQueriesTotal.WithLabelValues("not_found").Inc()
		return services.SearchResult{}, err
	}
	e.metrics.SearchQueriesTotal.WithLabelValues("found").Inc()
	return result, nil
}

// AnalyticsDashboard summarizes recent search and autocomplete queries.
func (e *Engine) AnalyticsDashboard() model.AnalyticsDashboard {
	return e.analytics.GetDashboardData()
}

// Homepage returns the ranked homepage of the current snapshot.
func (e *Engine) Homepage() (index.Homepage, error) {
	snap, err := e.current()
	if err != nil {
		return nil, err
	}
	return snap.Homepage, nil
}

// Postings returns the ranked postings for term.
func (e *Engine) Postings(term string) (index.PostingList, error) {
	snap, err := e.current()
	if err != nil {
		return nil, err
	}
	postings, ok := snap.Inverted.Lookup(term)
	if !ok {
		return nil, errors.NewTermNotFoundError(term)
	}
	return postings, nil
}

// Forward returns the TF-IDF scores of one document.
func (e *Engine) Forward(docID string) (index.TermScores, error) {
	snap, err := e.current()
	if err != nil {
		return nil, err
	}
	scores, ok := snap.Forward[docID]
	if !ok {
		return nil, errors.NewDocumentNotFoundError(docID)
	}
	return scores, nil
}

// Vocabulary returns the distinct homepage terms of the current snapshot.
func (e *Engine) Vocabulary() ([]string, error) {
	snap, err := e.current()
	if err != nil {
		return nil, err
	}
	return indexing.Vocabulary(snap.Homepage), nil
}

// WriteVocabulary writes the vocabulary dump of the current snapshot to w.
func (e *Engine) WriteVocabulary(w io.Writer) ([]string, error) {
	snap, err := e.current()
	if err != nil {
		return nil, err
	}
	return indexing.WriteVocabulary(w, snap.Homepage)
}

// IndexStats describes the current snapshot.
func (e *Engine) IndexStats() services.IndexStats {
	snap := e.snapshots.Current()
	if snap == nil {
		return services.IndexStats{}
	}
	return services.IndexStats{
		Built:     true,
		BuildID:   snap.BuildID,
		Documents: snap.Documents,
		Terms:     snap.Terms,
		Homepage:  len(snap.Homepage),
		Swaps:     e.snapshots.Swaps(),
	}
}

// GetJob retrieves a job by ID
func (e *Engine) GetJob(jobID string) (*model.Job, error) {
	return e.jobManager.GetJob(jobID)
}

// ListJobs lists jobs, optionally filtered by status
func (e *Engine) ListJobs(status *model.JobStatus) []*model.Job {
	return e.jobManager.ListJobs(status)
}

// GetJobMetrics returns job performance metrics
func (e *Engine) GetJobMetrics() jobs.JobMetricsData {
	return e.jobManager.GetMetrics()
}

// GetCurrentWorkload returns running and pending job counts
func (e *Engine) GetCurrentWorkload() map[string]int {
	return e.jobManager.GetCurrentWorkload()
}
