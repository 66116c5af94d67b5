package engine

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/gcbaptista/termindex/index"
	"github.com/gcbaptista/termindex/internal/errors"
	"github.com/gcbaptista/termindex/internal/persistence"
	"github.com/gcbaptista/termindex/model"
)

// Rebuild indexes docs into a fresh snapshot and serves it. The previous
// snapshot keeps answering queries until the swap. Rebuilds are serialized.
func (e *Engine) Rebuild(ctx context.Context, docs model.Corpus) (*index.Snapshot, error) {
	e.buildMu.Lock()
	defer e.buildMu.Unlock()

	start := time.Now()
	snap, err := e.indexer.Build(ctx, docs)
	e.metrics.ObserveBuild(err, time.Since(start), len(docs), termCount(snap))
	if err != nil {
		return nil, err
	}

	e.snapshots.Swap(snap)
	e.afterBuild(snap)
	return snap, nil
}

// RebuildAsync runs Rebuild as a background job and returns its ID.
func (e *Engine) RebuildAsync(docs model.Corpus) (string, error) {
	jobID := e.jobManager.CreateJob(model.JobTypeBuildIndex, map[string]string{
		"operation": "build_index",
		"documents": strconv.Itoa(len(docs)),
		"tokens":    strconv.Itoa(docs.TokenCount()),
	})

	err := e.jobManager.ExecuteJob(jobID, func(ctx context.Context, job *model.Job) error {
		e.jobManager.UpdateJobProgress(jobID, 0, len(docs), "Building index")
		snap, err := e.Rebuild(ctx, docs)
		if err != nil {
			return err
		}
		e.jobManager.UpdateJobProgress(jobID, snap.Documents, len(docs),
			fmt.Sprintf("Indexed %d terms (build %s)", snap.Terms, snap.BuildID))
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("failed to start build index job: %w", err)
	}

	return jobID, nil
}

// Rollback serves the snapshot replaced by the last rebuild again. Only one
// level is kept, so a second Rollback fails until the next rebuild.
func (e *Engine) Rollback() (*index.Snapshot, error) {
	e.buildMu.Lock()
	defer e.buildMu.Unlock()

	if _, err := e.current(); err != nil {
		return nil, err
	}
	if !e.snapshots.Rollback() {
		return nil, errors.ErrNoPreviousSnapshot
	}

	snap := e.snapshots.Current()
	e.metrics.IndexedDocuments.Set(float64(snap.Documents))
	e.metrics.IndexedTerms.Set(float64(snap.Terms))
	e.log.Info("index rolled back", "build_id", snap.BuildID)
	e.afterBuild(snap)
	return snap, nil
}

// afterBuild writes the vocabulary dump and seeds autocomplete when configured.
// Failures are logged; the new snapshot is already being served.
func (e *Engine) afterBuild(snap *index.Snapshot) {
	if path := e.settings.VocabularyPath(); path != "" {
		words, err := persistence.SaveVocabulary(path, snap.Homepage)
		if err != nil {
			e.log.Warn("failed to save vocabulary", "path", path, "err", err)
		} else {
			e.log.Info("vocabulary saved", "path", path, "words", len(words))
		}
	}

	if e.settings.Autocomplete.SeedFromIndex {
		if _, err := e.SeedAutocompleteFromIndex(); err != nil {
			e.log.Warn("failed to seed autocomplete from index", "build_id", snap.BuildID, "err", err)
		}
	}
}

func termCount(snap *index.Snapshot) int {
	if snap == nil {
		return 0
	}
	return snap.Terms
}
