package engine

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"time"

	"github.com/gcbaptista/termindex/internal/autocomplete"
	"github.com/gcbaptista/termindex/internal/persistence"
	"github.com/gcbaptista/termindex/model"
)

// Suggest returns the terms starting with prefix, highest weight first.
// A positive limit caps the result; otherwise the configured maximum applies.
func (e *Engine) Suggest(prefix string, limit int) []model.Term {
	start := time.Now()
	var terms []model.Term
	if limit > 0 {
		terms = e.autocomplete.Suggest(prefix)
		if len(terms) > limit {
			terms = terms[:limit]
		}
	} else {
		terms = e.autocomplete.Top(prefix)
	}

	if len(terms) == 0 {
		e.metrics.SuggestionsTotal.WithLabelValues("empty").Inc()
	} else {
		e.metrics.SuggestionsTotal.WithLabelValues("hit").Inc()
	}
	e.analytics.Track(model.QueryEvent{
		Kind:         model.QueryKindSuggest,
		Query:        prefix,
		ResponseTime: time.Since(start),
		ResultCount:  len(terms),
	})
	return terms
}

// CountPrefixes returns how many inserted words start with prefix.
func (e *Engine) CountPrefixes(prefix string) int {
	return e.autocomplete.CountPrefixes(prefix)
}

// AddWord inserts one word into the autocomplete vocabulary.
func (e *Engine) AddWord(word string, weight int64) bool {
	ok := e.autocomplete.AddWord(word, weight)
	if ok {
		e.metrics.VocabularyWords.Set(float64(e.autocomplete.Stats().Words))
	}
	return ok
}

// LoadVocabulary bulk-loads a vocabulary stream with the configured suggestion limit.
func (e *Engine) LoadVocabulary(r io.Reader) (autocomplete.LoadReport, error) {
	report, err := e.autocomplete.Load(r, e.settings.Autocomplete.MaxSuggestions)
	e.recordLoad(report)
	return report, err
}

// LoadVocabularyFile bulk-loads the vocabulary file at path.
func (e *Engine) LoadVocabularyFile(path string) (autocomplete.LoadReport, error) {
	report, err := persistence.LoadVocabulary(path, e.autocomplete, e.settings.Autocomplete.MaxSuggestions)
	e.recordLoad(report)
	return report, err
}

// LoadVocabularyFileAsync runs LoadVocabularyFile as a background job and returns its ID.
func (e *Engine) LoadVocabularyFileAsync(path string) (string, error) {
	jobID := e.jobManager.CreateJob(model.JobTypeLoadVocabulary, map[string]string{
		"operation": "load_vocabulary",
		"path":      path,
	})

	err := e.jobManager.ExecuteJob(jobID, func(ctx context.Context, job *model.Job) error {
		report, err := e.LoadVocabularyFile(path)
		if err != nil {
			return err
		}
		e.jobManager.UpdateJobProgress(jobID, report.Loaded, report.Lines,
			fmt.Sprintf("Loaded %d words, skipped %d records", report.Loaded, len(report.Skipped)))
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("failed to start load vocabulary job: %w", err)
	}

	return jobID, nil
}

// SeedAutocompleteFromIndex loads the vocabulary dump of the current
// snapshot into the trie. Dumped words carry weight 0, so a word already in
// the trie has its weight reset and its prefixes counted again.
func (e *Engine) SeedAutocompleteFromIndex() (autocomplete.LoadReport, error) {
	var buf bytes.Buffer
	if _, err := e.WriteVocabulary(&buf); err != nil {
		return autocomplete.LoadReport{}, err
	}
	return e.LoadVocabulary(&buf)
}

// SeedAutocompleteAsync runs SeedAutocompleteFromIndex as a background job and returns its ID.
func (e *Engine) SeedAutocompleteAsync() (string, error) {
	if _, err := e.current(); err != nil {
		return "", err
	}

	jobID := e.jobManager.CreateJob(model.JobTypeSeedAutocomplete, map[string]string{
		"operation": "seed_autocomplete",
	})

	err := e.jobManager.ExecuteJob(jobID, func(ctx context.Context, job *model.Job) error {
		report, err := e.SeedAutocompleteFromIndex()
		if err != nil {
			return err
		}
		e.jobManager.UpdateJobProgress(jobID, report.Loaded, report.Lines,
			fmt.Sprintf("Seeded %d words, skipped %d records", report.Loaded, len(report.Skipped)))
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("failed to start seed autocomplete job: %w", err)
	}

	return jobID, nil
}

// AutocompleteStats describes the autocomplete vocabulary.
func (e *Engine) AutocompleteStats() autocomplete.Stats {
	return e.autocomplete.Stats()
}

func (e *Engine) recordLoad(report autocomplete.LoadReport) {
	e.metrics.VocabularySkippedTotal.Add(float64(len(report.Skipped)))
	e.metrics.VocabularyWords.Set(float64(e.autocomplete.Stats().Words))
}
