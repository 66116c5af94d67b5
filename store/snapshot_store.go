// Package store holds the index snapshot currently served.
package store

import (
	"sync"

	"github.com/gcbaptista/termindex/index"
)

// SnapshotStore swaps whole index snapshots. Readers always see either the
// previous or the new snapshot, never a partially built one.
type SnapshotStore struct {
	mu       sync.RWMutex
	current  *index.Snapshot
	previous *index.Snapshot
	swaps    int
}

// NewSnapshotStore creates an empty store.
func NewSnapshotStore() *SnapshotStore {
	return &SnapshotStore{}
}

// Current returns the served snapshot, or nil before the first Swap.
func (s *SnapshotStore) Current() *index.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Swap installs next and returns the snapshot it replaced.
func (s *SnapshotStore) Swap(next *index.Snapshot) *index.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.previous = s.current
	s.current = next
	s.swaps++
	return s.previous
}

// Rollback reinstates the snapshot replaced by the last Swap. It reports
// false when there is nothing to roll back to.
func (s *SnapshotStore) Rollback() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.previous == nil {
		return false
	}
	s.current, s.previous = s.previous, nil
	return true
}

// Swaps returns how many snapshots have been installed.
func (s *SnapshotStore) Swaps() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.swaps
}
