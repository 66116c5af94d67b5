package index

// Posting pairs a document with the TF-IDF score a term has in it.
type Posting struct {
	DocID string  `json:"doc_id"`
	Score float64 `json:"score"`
}

// PostingList is a slice of Posting sorted by descending score, ties broken
// by ascending DocID.
type PostingList []Posting

// DocIDs returns the document IDs in posting order.
func (pl PostingList) DocIDs() []string {
	ids := make([]string, len(pl))
	for i, p := range pl {
		ids[i] = p.DocID
	}
	return ids
}

// Less reports whether posting i ranks before posting j.
func (pl PostingList) Less(i, j int) bool {
	if pl[i].Score != pl[j].Score {
		return pl[i].Score > pl[j].Score
	}
	return pl[i].DocID < pl[j].DocID
}
