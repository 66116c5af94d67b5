package services

import (
	"context"
	"io"

	"github.com/gcbaptista/termindex/index"
	"github.com/gcbaptista/termindex/internal/autocomplete"
	"github.com/gcbaptista/termindex/internal/jobs"
	"github.com/gcbaptista/termindex/model"
)

// SearchResult is the answer to an article search for a single term.
// DocIDs keeps the inverted index ranking; a found term may have no documents.
type SearchResult struct {
	Term    string   `json:"term"`
	DocIDs  []string `json:"doc_ids"`
	Total   int      `json:"total"`
	Took    int64    `json:"took"`     // microseconds
	QueryId string   `json:"query_id"` // unique UUID for this search query
}

// IndexStats describes the snapshot currently served.
type IndexStats struct {
	Built     bool   `json:"built"`
	BuildID   string `json:"build_id,omitempty"`
	Documents int    `json:"documents"`
	Terms     int    `json:"terms"`
	Homepage  int    `json:"homepage_terms"`
	Swaps     int    `json:"swaps"` // Snapshots installed since startup
}

// Searcher defines article search over the current index
type Searcher interface {
	Search(term string) (SearchResult, error)
}

// Suggester defines autocomplete queries and vocabulary mutation
type Suggester interface {
	Suggest(prefix string, limit int) []model.Term
	CountPrefixes(prefix string) int
	AddWord(word string, weight int64) bool
	LoadVocabulary(r io.Reader) (autocomplete.LoadReport, error)
	SeedAutocompleteAsync() (string, error) // Returns job ID
	AutocompleteStats() autocomplete.Stats
}

// IndexManager builds and exposes the term index
type IndexManager interface {
	Rebuild(ctx context.Context, docs model.Corpus) (*index.Snapshot, error)
	RebuildAsync(docs model.Corpus) (string, error) // Returns job ID
	Rollback() (*index.Snapshot, error)
	Homepage() (index.Homepage, error)
	Postings(term string) (index.PostingList, error)
	Forward(docID string) (index.TermScores, error)
	WriteVocabulary(w io.Writer) ([]string, error)
	IndexStats() IndexStats
}

// JobManager defines operations for inspecting background jobs
type JobManager interface {
	GetJob(jobID string) (*model.Job, error)
	ListJobs(status *model.JobStatus) []*model.Job
	GetJobMetrics() jobs.JobMetricsData
	GetCurrentWorkload() map[string]int
}

// Analyzer summarizes the query history
type Analyzer interface {
	AnalyticsDashboard() model.AnalyticsDashboard
}

// Engine is everything the HTTP layer needs.
type Engine interface {
	Searcher
	Suggester
	IndexManager
	JobManager
	Analyzer
}
