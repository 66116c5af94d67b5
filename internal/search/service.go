package search

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/gcbaptista/termindex/index"
	"github.com/gcbaptista/termindex/internal/errors"
	"github.com/gcbaptista/termindex/services"
)

// Articles returns the documents carrying term, in the order the inverted
// index ranked them. It returns a TermNotFoundError when the term is absent;
// a term that is present with no documents yields an empty, non-nil slice.
func Articles(term string, inverted index.InvertedIndex) ([]string, error) {
	postings, ok := inverted.Lookup(term)
	if !ok {
		return nil, errors.NewTermNotFoundError(term)
	}
	return postings.DocIDs(), nil
}

// Service answers article searches against one inverted index.
// It fulfills the services.Searcher interface.
type Service struct {
	invertedIndex index.InvertedIndex
}

// NewService creates a new search Service.
func NewService(inverted index.InvertedIndex) (*Service, error) {
	if inverted == nil {
		return nil, fmt.Errorf("inverted index cannot be nil")
	}
	return &Service{invertedIndex: inverted}, nil
}

// Search looks up a single term. Terms are matched exactly; callers are
// expected to pass normalized (lowercase) tokens.
func (s *Service) Search(term string) (services.SearchResult, error) {
	startTime := time.Now()

	docIDs, err := Articles(term, s.invertedIndex)
	if err != nil {
		return services.SearchResult{}, err
	}

	return services.SearchResult{
		Term:    term,
		DocIDs:  docIDs,
		Total:   len(docIDs),
		Took:    time.Since(startTime).Microseconds(),
		QueryId: uuid.New().String(),
	}, nil
}
