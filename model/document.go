package model

// Document is a tokenized document handed to the index builders.
// ID is a stable external identifier (typically a URL); Tokens are already
// normalized (lowercase alphanumeric, punctuation stripped).
type Document struct {
	ID     string   `json:"id"`
	Tokens []string `json:"tokens"`
}

// Corpus maps a document ID to its ordered token sequence.
type Corpus map[string][]string

// NewCorpus builds a Corpus from a slice of documents. A later document with
// the same ID replaces an earlier one.
func NewCorpus(docs []Document) Corpus {
	corpus := make(Corpus, len(docs))
	for _, doc := range docs {
		corpus[doc.ID] = doc.Tokens
	}
	return corpus
}

// TokenCount returns the total number of tokens across the corpus.
func (c Corpus) TokenCount() int {
	total := 0
	for _, tokens := range c {
		total += len(tokens)
	}
	return total
}
