package engine

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gcbaptista/termindex/config"
	"github.com/gcbaptista/termindex/internal/errors"
	"github.com/gcbaptista/termindex/internal/logger"
	"github.com/gcbaptista/termindex/model"
)

// testCorpus: "binary" appears in d1 and d2 with equal scores, "the" is a stopword.
func testCorpus() model.Corpus {
	return model.Corpus{
		"d1": {"binary", "trees", "data"},
		"d2": {"binary", "heap", "the"},
		"d3": {},
	}
}

func newTestEngine(t *testing.T, mutate func(s *config.Settings)) *Engine {
	t.Helper()
	settings := config.Default()
	if mutate != nil {
		mutate(settings)
	}
	e := NewEngine(settings, nil, logger.Discard())
	t.Cleanup(e.Close)
	return e
}

func waitForJob(t *testing.T, e *Engine, jobID string) *model.Job {
	t.Helper()
	var job *model.Job
	require.Eventually(t, func() bool {
		var err error
		job, err = e.GetJob(jobID)
		return err == nil && job.Status.IsTerminal()
	}, 2*time.Second, 5*time.Millisecond)
	return job
}

func TestEngine_BeforeFirstBuild(t *testing.T) {
	e := newTestEngine(t, nil)

	_, err := e.Search("binary")
	assert.ErrorIs(t, err, errors.ErrIndexNotBuilt)
	_, err = e.Homepage()
	assert.ErrorIs(t, err, errors.ErrIndexNotBuilt)
	_, err = e.Postings("binary")
	assert.ErrorIs(t, err, errors.ErrIndexNotBuilt)
	_, err = e.Forward("d1")
	assert.ErrorIs(t, err, errors.ErrIndexNotBuilt)
	_, err = e.Vocabulary()
	assert.ErrorIs(t, err, errors.ErrIndexNotBuilt)
	_, err = e.SeedAutocompleteAsync()
	assert.ErrorIs(t, err, errors.ErrIndexNotBuilt)

	assert.False(t, e.IndexStats().Built)
	assert.Equal(t, 1.0, testutil.ToFloat64(e.Metrics().SearchQueriesTotal.WithLabelValues("not_built")))
}

func TestEngine_Rebuild(t *testing.T) {
	e := newTestEngine(t, nil)

	snap, err := e.Rebuild(context.Background(), testCorpus())
	require.NoError(t, err)
	assert.Equal(t, 3, snap.Documents)
	assert.Equal(t, 5, snap.Terms)

	result, err := e.Search("binary")
	require.NoError(t, err)
	assert.Equal(t, []string{"d1", "d2"}, result.DocIDs, "equal scores fall back to document id order")
	assert.Equal(t, 2, result.Total)
	assert.NotEmpty(t, result.QueryId)

	_, err = e.Search("missing")
	assert.ErrorIs(t, err, errors.ErrTermNotFound)

	homepage, err := e.Homepage()
	require.NoError(t, err)
	assert.Equal(t, []string{"binary", "trees", "heap", "data"}, homepage.Terms())

	postings, err := e.Postings("trees")
	require.NoError(t, err)
	assert.Equal(t, []string{"d1"}, postings.DocIDs())

	_, err = e.Postings("nothing")
	assert.ErrorIs(t, err, errors.ErrTermNotFound)

	scores, err := e.Forward("d3")
	require.NoError(t, err)
	assert.Empty(t, scores, "empty documents are indexed without terms")

	_, err = e.Forward("d9")
	assert.ErrorIs(t, err, errors.ErrDocumentNotFound)

	words, err := e.Vocabulary()
	require.NoError(t, err)
	assert.Equal(t, []string{"binary", "data", "heap", "trees"}, words)

	stats := e.IndexStats()
	assert.True(t, stats.Built)
	assert.Equal(t, snap.BuildID, stats.BuildID)
	assert.Equal(t, 4, stats.Homepage)

	assert.Equal(t, 1.0, testutil.ToFloat64(e.Metrics().IndexBuildsTotal.WithLabelValues("completed")))
	assert.Equal(t, 5.0, testutil.ToFloat64(e.Metrics().IndexedTerms))
}

func TestEngine_RebuildReplacesSnapshot(t *testing.T) {
	e := newTestEngine(t, nil)

	first, err := e.Rebuild(context.Background(), testCorpus())
	require.NoError(t, err)
	second, err := e.Rebuild(context.Background(), model.Corpus{"x": {"stacks", "queues"}})
	require.NoError(t, err)
	assert.NotEqual(t, first.BuildID, second.BuildID)

	_, err = e.Search("binary")
	assert.ErrorIs(t, err, errors.ErrTermNotFound)

	result, err := e.Search("stacks")
	require.NoError(t, err)
	assert.Equal(t, []string{"x"}, result.DocIDs)
}

func TestEngine_Rollback(t *testing.T) {
	e := newTestEngine(t, nil)

	_, err := e.Rollback()
	assert.ErrorIs(t, err, errors.ErrIndexNotBuilt)

	first, err := e.Rebuild(context.Background(), testCorpus())
	require.NoError(t, err)
	_, err = e.Rollback()
	assert.ErrorIs(t, err, errors.ErrNoPreviousSnapshot)

	_, err = e.Rebuild(context.Background(), model.Corpus{"x": {"stacks", "queues"}})
	require.NoError(t, err)

	restored, err := e.Rollback()
	require.NoError(t, err)
	assert.Equal(t, first.BuildID, restored.BuildID)

	result, err := e.Search("binary")
	require.NoError(t, err)
	assert.Equal(t, []string{"d1", "d2"}, result.DocIDs)

	stats := e.IndexStats()
	assert.Equal(t, first.BuildID, stats.BuildID)
	assert.Equal(t, 2, stats.Swaps)

	_, err = e.Rollback()
	assert.ErrorIs(t, err, errors.ErrNoPreviousSnapshot)
}

func TestEngine_CancelledRebuildKeepsSnapshot(t *testing.T) {
	e := newTestEngine(t, nil)
	_, err := e.Rebuild(context.Background(), testCorpus())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = e.Rebuild(ctx, model.Corpus{"x": {"stacks"}})
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)

	result, err := e.Search("binary")
	require.NoError(t, err)
	assert.Equal(t, 2, result.Total)
	assert.Equal(t, 1.0, testutil.ToFloat64(e.Metrics().IndexBuildsTotal.WithLabelValues("failed")))
}

func TestEngine_RebuildWritesVocabularyDump(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "data")
	e := newTestEngine(t, func(s *config.Settings) { s.DataDir = dir })

	_, err := e.Rebuild(context.Background(), testCorpus())
	require.NoError(t, err)

	content, err := os.ReadFile(filepath.Join(dir, config.VocabularyFileName))
	require.NoError(t, err)
	assert.Equal(t, "4\n 0 binary\n 0 data\n 0 heap\n 0 trees", string(content))

	var buf bytes.Buffer
	words, err := e.WriteVocabulary(&buf)
	require.NoError(t, err)
	assert.Len(t, words, 4)
	assert.Equal(t, string(content), buf.String())

	other := newTestEngine(t, nil)
	report, err := other.LoadVocabularyFile(filepath.Join(dir, config.VocabularyFileName))
	require.NoError(t, err)
	assert.Equal(t, 4, report.Loaded)
	assert.Equal(t, 1, other.CountPrefixes("tr"))
}

func TestEngine_SeedFromIndex(t *testing.T) {
	e := newTestEngine(t, func(s *config.Settings) { s.Autocomplete.SeedFromIndex = true })

	_, err := e.Rebuild(context.Background(), testCorpus())
	require.NoError(t, err)

	assert.Equal(t, []model.Term{{Query: "binary", Weight: 0}}, e.Suggest("bi", 0))
	assert.Equal(t, 4, e.AutocompleteStats().Words)
}

func TestEngine_RebuildAsync(t *testing.T) {
	e := newTestEngine(t, nil)

	jobID, err := e.RebuildAsync(testCorpus())
	require.NoError(t, err)

	job := waitForJob(t, e, jobID)
	assert.Equal(t, model.JobStatusCompleted, job.Status)
	assert.Equal(t, model.JobTypeBuildIndex, job.Type)
	assert.Equal(t, "3", job.Metadata["documents"])
	require.NotNil(t, job.Progress)
	assert.Equal(t, 3, job.Progress.Current)

	assert.True(t, e.IndexStats().Built)
	assert.Equal(t, int64(1), e.GetJobMetrics().JobsCompleted)
	assert.Equal(t, 1.0, testutil.ToFloat64(e.Metrics().JobsTotal.WithLabelValues("build_index", "completed")))
}

func TestEngine_SeedAutocompleteAsync(t *testing.T) {
	e := newTestEngine(t, nil)
	_, err := e.Rebuild(context.Background(), testCorpus())
	require.NoError(t, err)

	jobID, err := e.SeedAutocompleteAsync()
	require.NoError(t, err)
	job := waitForJob(t, e, jobID)
	assert.Equal(t, model.JobStatusCompleted, job.Status)

	assert.Equal(t, 1, e.CountPrefixes("heap"))
}

func TestEngine_LoadVocabularyFileAsync_MissingFile(t *testing.T) {
	e := newTestEngine(t, nil)

	jobID, err := e.LoadVocabularyFileAsync(filepath.Join(t.TempDir(), "absent.txt"))
	require.NoError(t, err)

	job := waitForJob(t, e, jobID)
	assert.Equal(t, model.JobStatusFailed, job.Status)
	assert.Contains(t, job.Error, "absent.txt")
}

func TestEngine_Autocomplete(t *testing.T) {
	e := newTestEngine(t, func(s *config.Settings) { s.Autocomplete.MaxSuggestions = 2 })

	report, err := e.LoadVocabulary(strings.NewReader("5\n1 ant\n2 anchor\n3 angle\n4 anvil\nbad line here"))
	require.NoError(t, err)
	assert.Equal(t, 4, report.Loaded)
	require.Len(t, report.Skipped, 1)
	assert.Equal(t, 6, report.Skipped[0].Line)

	assert.Len(t, e.Suggest("an", 0), 2, "configured maximum applies without a limit")
	assert.Len(t, e.Suggest("an", 3), 3, "explicit limit wins")
	assert.Empty(t, e.Suggest("zz", 0))

	assert.True(t, e.AddWord("antelope", 10))
	assert.False(t, e.AddWord("ant-eater", 1))
	assert.Equal(t, "antelope", e.Suggest("ant", 1)[0].Query)
	assert.Equal(t, 5, e.CountPrefixes("an"))

	m := e.Metrics()
	assert.Equal(t, 1.0, testutil.ToFloat64(m.VocabularySkippedTotal))
	assert.Equal(t, 5.0, testutil.ToFloat64(m.VocabularyWords))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.SuggestionsTotal.WithLabelValues("empty")))
}

func TestEngine_AnalyticsTracksQueries(t *testing.T) {
	e := newTestEngine(t, func(s *config.Settings) { s.Autocomplete.SeedFromIndex = true })
	_, err := e.Rebuild(context.Background(), testCorpus())
	require.NoError(t, err)

	_, err = e.Search("binary")
	require.NoError(t, err)
	_, err = e.Search("zebra")
	require.Error(t, err)
	require.Len(t, e.Suggest("bin", 0), 1)

	dashboard := e.AnalyticsDashboard()
	assert.Equal(t, 3, dashboard.TotalQueries)
	assert.Equal(t, model.QueryKindStats{Search: 2, Suggest: 1}, dashboard.QueryKinds)
	assert.Equal(t, 3, dashboard.IndexedDocuments)
	assert.Equal(t, 5, dashboard.IndexedTerms)
	assert.Equal(t, []model.PopularQuery{{Query: "zebra", Count: 1, TrendChange: "up"}}, dashboard.ZeroResultQueries)
}
