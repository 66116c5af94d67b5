// Package persistence writes and reads the vocabulary dump file.
package persistence

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/gcbaptista/termindex/index"
	"github.com/gcbaptista/termindex/internal/autocomplete"
	"github.com/gcbaptista/termindex/internal/indexing"
)

// VocabularyLoader accepts a vocabulary stream in the bulk-load format.
type VocabularyLoader interface {
	Load(r io.Reader, maxSuggestions int) (autocomplete.LoadReport, error)
}

// SaveVocabulary writes the homepage vocabulary dump to filePath and returns
// the words written. It creates necessary directories if they don't exist and
// replaces the file only once the dump is complete.
func SaveVocabulary(filePath string, homepage index.Homepage) ([]string, error) {
	dir := filepath.Dir(filePath)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return nil, fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(filePath)+".*.tmp")
	if err != nil {
		return nil, fmt.Errorf("failed to create temp file in %s: %w", dir, err)
	}
	tmpPath := tmp.Name()
	defer func() {
		// No-op once the rename succeeded
		_ = os.Remove(tmpPath)
	}()

	words, err := indexing.WriteVocabulary(tmp, homepage)
	if err != nil {
		_ = tmp.Close()
		return nil, fmt.Errorf("failed to write vocabulary to %s: %w", tmpPath, err)
	}
	if err := tmp.Close(); err != nil {
		return nil, fmt.Errorf("failed to close %s: %w", tmpPath, err)
	}
	if err := os.Rename(tmpPath, filePath); err != nil {
		return nil, fmt.Errorf("failed to move vocabulary into %s: %w", filePath, err)
	}
	return words, nil
}

// LoadVocabulary feeds the dump at filePath into loader. If the file does not
// exist, it returns an error matching os.ErrNotExist so callers can treat a
// fresh start gracefully.
func LoadVocabulary(filePath string, loader VocabularyLoader, maxSuggestions int) (autocomplete.LoadReport, error) {
	file, err := os.Open(filePath) // #nosec G304 -- filePath comes from settings, not user input
	if err != nil {
		if os.IsNotExist(err) {
			return autocomplete.LoadReport{}, fmt.Errorf("vocabulary file %s: %w", filePath, os.ErrNotExist)
		}
		return autocomplete.LoadReport{}, fmt.Errorf("failed to open file %s: %w", filePath, err)
	}
	defer func() {
		_ = file.Close()
	}()

	report, err := loader.Load(file, maxSuggestions)
	if err != nil {
		return report, fmt.Errorf("failed to load vocabulary from %s: %w", filePath, err)
	}
	return report, nil
}
