package indexing

import (
	"sort"

	"github.com/gcbaptista/termindex/index"
)

// BuildInvertedIndex groups the forward index by term. Each posting list is
// sorted by descending score; equal scores are ordered by ascending document
// ID so the output is fully deterministic.
func BuildInvertedIndex(forward index.ForwardIndex) index.InvertedIndex {
	inverted := make(index.InvertedIndex)
	for docID, scores := range forward {
		for term, score := range scores {
			inverted[term] = append(inverted[term], index.Posting{DocID: docID, Score: score})
		}
	}

	for _, postings := range inverted {
		sort.Slice(postings, postings.Less)
	}
	return inverted
}
