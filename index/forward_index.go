package index

import (
	"sort"
)

// TermScores maps a term to its TF-IDF score within one document.
type TermScores map[string]float64

// TermScore is a single (term, score) pair.
type TermScore struct {
	Term  string  `json:"term"`
	Score float64 `json:"score"`
}

// Terms returns the document's terms in lexicographic order.
func (ts TermScores) Terms() []string {
	terms := make([]string, 0, len(ts))
	for term := range ts {
		terms = append(terms, term)
	}
	sort.Strings(terms)
	return terms
}

// Entries returns the (term, score) pairs in lexicographic term order.
func (ts TermScores) Entries() []TermScore {
	terms := ts.Terms()
	entries := make([]TermScore, len(terms))
	for i, term := range terms {
		entries[i] = TermScore{Term: term, Score: ts[term]}
	}
	return entries
}

// ForwardIndex maps a document ID to the TF-IDF scores of its terms.
type ForwardIndex map[string]TermScores

// DocIDs returns every document ID in ascending order.
func (fi ForwardIndex) DocIDs() []string {
	ids := make([]string, 0, len(fi))
	for id := range fi {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
