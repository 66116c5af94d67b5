package index

// HomepageEntry is a term together with the documents carrying it, in
// posting order.
type HomepageEntry struct {
	Term   string   `json:"term"`
	DocIDs []string `json:"doc_ids"`
}

// Homepage is the stopword-free term ranking: most documents first, equal
// counts in reverse lexicographic term order.
type Homepage []HomepageEntry

// Terms returns the terms in ranking order.
func (h Homepage) Terms() []string {
	terms := make([]string, len(h))
	for i, entry := range h {
		terms[i] = entry.Term
	}
	return terms
}
