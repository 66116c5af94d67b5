package indexing

import (
	"sort"

	"github.com/gcbaptista/termindex/index"
)

// BuildHomepage ranks every non-stopword term of the inverted index. Terms
// carried by more documents come first; equal counts are ordered by
// descending (reverse lexicographic) term.
func BuildHomepage(inverted index.InvertedIndex, stopwords map[string]struct{}) index.Homepage {
	homepage := make(index.Homepage, 0, len(inverted))
	for term, postings := range inverted {
		if _, stop := stopwords[term]; stop {
			continue
		}
		homepage = append(homepage, index.HomepageEntry{
			Term:   term,
			DocIDs: postings.DocIDs(),
		})
	}

	sort.Slice(homepage, func(i, j int) bool {
		if len(homepage[i].DocIDs) != len(homepage[j].DocIDs) {
			return len(homepage[i].DocIDs) > len(homepage[j].DocIDs)
		}
		return homepage[i].Term > homepage[j].Term
	})
	return homepage
}

// StopwordSet converts a list of stopwords into a lookup set.
func StopwordSet(words []string) map[string]struct{} {
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}
