package indexing

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/gcbaptista/termindex/index"
	"github.com/gcbaptista/termindex/internal/logger"
	"github.com/gcbaptista/termindex/model"
)

// Service runs the full build pipeline: forward index, inverted index and
// homepage ranking. It keeps no state between builds.
type Service struct {
	workers   int
	stopwords map[string]struct{}
	log       *log.Logger
}

// NewService creates a new indexing Service. workers < 1 selects GOMAXPROCS.
// A nil logger gets the default one.
func NewService(workers int, stopwords []string, l *log.Logger) *Service {
	if workers < 1 {
		workers = runtime.GOMAXPROCS(0)
	}
	if l == nil {
		l = logger.New("indexing")
	}
	return &Service{
		workers:   workers,
		stopwords: StopwordSet(stopwords),
		log:       l,
	}
}

// Build turns a tokenized corpus into a fresh, immutable Snapshot.
func (s *Service) Build(ctx context.Context, docs model.Corpus) (*index.Snapshot, error) {
	start := time.Now()

	forward, err := BuildForwardIndex(ctx, docs, s.workers)
	if err != nil {
		return nil, fmt.Errorf("failed to build forward index: %w", err)
	}
	inverted := BuildInvertedIndex(forward)
	homepage := BuildHomepage(inverted, s.stopwords)

	snapshot := &index.Snapshot{
		BuildID:   uuid.New().String(),
		BuiltAt:   time.Now(),
		Documents: len(forward),
		Terms:     len(inverted),
		Forward:   forward,
		Inverted:  inverted,
		Homepage:  homepage,
	}

	s.log.Info("index built",
		"build_id", snapshot.BuildID,
		"documents", snapshot.Documents,
		"terms", snapshot.Terms,
		"homepage_terms", len(homepage),
		"took", time.Since(start))
	return snapshot, nil
}
