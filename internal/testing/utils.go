// Package testing provides utilities and helpers for testing the term index.
package testing

import (
	"context"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gcbaptista/termindex/config"
	"github.com/gcbaptista/termindex/index"
	"github.com/gcbaptista/termindex/internal/corpus"
	"github.com/gcbaptista/termindex/internal/engine"
	"github.com/gcbaptista/termindex/internal/logger"
	"github.com/gcbaptista/termindex/internal/metrics"
	"github.com/gcbaptista/termindex/model"
	"github.com/gcbaptista/termindex/services"
)

// SampleCorpusJSON is a three page corpus mixing raw text and pre-tokenized
// records. Its homepage is trees, structures, data, red, linear, heaps,
// black, binary.
const SampleCorpusJSON = `[
	{"id": "http://example.com/page1", "text": "data structures: linear data structures"},
	{"id": "http://example.com/page2", "text": "Binary trees and binary heaps are data structures"},
	{"id": "http://example.com/page3", "tokens": ["the", "red", "black", "trees"]}
]`

// Sample page IDs
const (
	Page1 = "http://example.com/page1"
	Page2 = "http://example.com/page2"
	Page3 = "http://example.com/page3"
)

// SampleCorpus decodes SampleCorpusJSON.
func SampleCorpus(t *testing.T) model.Corpus {
	t.Helper()
	docs, err := corpus.LoadJSON(strings.NewReader(SampleCorpusJSON))
	require.NoError(t, err, "Failed to decode sample corpus")
	return docs
}

// CreateTestEngine creates an engine with default settings, optionally
// adjusted by mutate, and closes it when the test ends.
func CreateTestEngine(t *testing.T, mutate func(s *config.Settings)) (*engine.Engine, *metrics.Metrics) {
	t.Helper()
	settings := config.Default()
	if mutate != nil {
		mutate(settings)
	}

	m := metrics.New()
	eng := engine.NewEngine(settings, m, logger.Discard())
	t.Cleanup(eng.Close)
	return eng, m
}

// BuildSampleIndex rebuilds eng from SampleCorpus.
func BuildSampleIndex(t *testing.T, eng services.IndexManager) *index.Snapshot {
	t.Helper()
	snapshot, err := eng.Rebuild(context.Background(), SampleCorpus(t))
	require.NoError(t, err, "Failed to build sample index")
	return snapshot
}

// JobPollingOptions configures job polling behavior
type JobPollingOptions struct {
	Timeout      time.Duration
	PollInterval time.Duration
	LogProgress  bool
}

// DefaultJobPollingOptions returns sensible defaults for job polling
func DefaultJobPollingOptions() JobPollingOptions {
	return JobPollingOptions{
		Timeout:      5 * time.Second,
		PollInterval: 10 * time.Millisecond,
		LogProgress:  false,
	}
}

// WaitForJobCompletion polls a job until it reaches a terminal status or
// times out. Unlike the job itself, a failed job does not fail the test.
func WaitForJobCompletion(t *testing.T, jobManager services.JobManager, jobID string, opts JobPollingOptions) *model.Job {
	t.Helper()
	timeout := time.After(opts.Timeout)
	ticker := time.NewTicker(opts.PollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-timeout:
			t.Fatalf("Job %s did not finish within %v timeout", jobID, opts.Timeout)
			return nil
		case <-ticker.C:
			job, err := jobManager.GetJob(jobID)
			require.NoError(t, err, "Failed to get job status")

			if job.Status.IsTerminal() {
				return job
			}
			if opts.LogProgress && job.Progress != nil {
				t.Logf("Job %s progress: %d/%d - %s",
					jobID,
					job.Progress.Current,
					job.Progress.Total,
					job.Progress.Message)
			}
		}
	}
}

// AssertJobCompleted verifies that a job completed successfully
func AssertJobCompleted(t *testing.T, job *model.Job, expectedType model.JobType) {
	t.Helper()
	assert.Equal(t, model.JobStatusCompleted, job.Status, "Job should be completed")
	assert.Equal(t, expectedType, job.Type, "Job type should match")
	assert.NotNil(t, job.CompletedAt, "Job should have completion timestamp")
	assert.Empty(t, job.Error, "Job should not have error")
}

// SearchTestCase represents a test case for article search
type SearchTestCase struct {
	Name           string
	Term           string
	ExpectedDocIDs []string
	ExpectedErr    error // matched with errors.Is
}

// RunSearchTests runs a suite of search tests against a searcher
func RunSearchTests(t *testing.T, searcher services.Searcher, tests []SearchTestCase) {
	t.Helper()
	for _, tt := range tests {
		t.Run(tt.Name, func(t *testing.T) {
			result, err := searcher.Search(tt.Term)
			if tt.ExpectedErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.ExpectedErr)
				return
			}
			require.NoError(t, err, "Search should not fail")

			assert.Equal(t, tt.Term, result.Term)
			assert.Equal(t, tt.ExpectedDocIDs, result.DocIDs, "Documents should be in ranking order")
			assert.Equal(t, len(tt.ExpectedDocIDs), result.Total)
		})
	}
}

// AssertHomepageOrdered checks that entries run from most to fewest
// documents, equal counts in reverse term order, with no repeated term.
func AssertHomepageOrdered(t *testing.T, homepage index.Homepage) {
	t.Helper()
	seen := make(map[string]bool, len(homepage))
	for i, entry := range homepage {
		assert.False(t, seen[entry.Term], "term %q listed twice", entry.Term)
		seen[entry.Term] = true
		assert.NotEmpty(t, entry.DocIDs, "term %q has no documents", entry.Term)

		if i == 0 {
			continue
		}
		prev := homepage[i-1]
		if len(prev.DocIDs) == len(entry.DocIDs) {
			assert.Greater(t, prev.Term, entry.Term, "equal counts must be in reverse term order")
		} else {
			assert.Greater(t, len(prev.DocIDs), len(entry.DocIDs), "entries must be ordered by document count")
		}
	}
}

// AssertPostingsRanked checks that a posting list is sorted by descending
// score, ties by ascending document ID.
func AssertPostingsRanked(t *testing.T, postings index.PostingList) {
	t.Helper()
	assert.True(t, sort.SliceIsSorted(postings, postings.Less), "postings out of order: %v", postings)
}
