package index

import (
	"sort"
)

// InvertedIndex maps a term to the documents containing it, best score first.
type InvertedIndex map[string]PostingList

// Terms returns every indexed term in ascending lexicographic order.
func (ii InvertedIndex) Terms() []string {
	terms := make([]string, 0, len(ii))
	for term := range ii {
		terms = append(terms, term)
	}
	sort.Strings(terms)
	return terms
}

// Lookup returns the posting list for term and whether the term is indexed.
// A present term with an empty list is distinct from an absent one.
func (ii InvertedIndex) Lookup(term string) (PostingList, bool) {
	pl, ok := ii[term]
	return pl, ok
}
