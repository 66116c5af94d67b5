// Package corpus reads document collections into the tokenized form the index builders take.
package corpus

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/gcbaptista/termindex/internal/errors"
	"github.com/gcbaptista/termindex/internal/tokenizer"
	"github.com/gcbaptista/termindex/model"
)

// Record is one document in a JSON corpus. Tokens, when present, are used as
// given; otherwise Text is run through the tokenizer.
type Record struct {
	ID     string   `json:"id"`
	Text   string   `json:"text,omitempty"`
	Tokens []string `json:"tokens,omitempty"`
}

// Document converts the record into a tokenized document.
func (r Record) Document() model.Document {
	if r.Tokens != nil {
		return model.Document{ID: r.ID, Tokens: r.Tokens}
	}
	return model.Document{ID: r.ID, Tokens: tokenizer.Tokenize(r.Text)}
}

// LoadJSON decodes a JSON array of records from r. Records are decoded one at
// a time. An empty id rejects the whole corpus; a repeated id replaces the
// earlier document.
func LoadJSON(r io.Reader) (model.Corpus, error) {
	dec := json.NewDecoder(r)

	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("failed to read corpus: %w", err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '[' {
		return nil, errors.NewValidationError("corpus", "must be a JSON array of documents")
	}

	records := make([]Record, 0)
	for i := 0; dec.More(); i++ {
		var rec Record
		if err := dec.Decode(&rec); err != nil {
			return nil, fmt.Errorf("failed to decode document %d: %w", i, err)
		}
		records = append(records, rec)
	}

	if _, err := dec.Token(); err != nil {
		return nil, fmt.Errorf("failed to read end of corpus: %w", err)
	}
	return FromRecords(records)
}

// FromRecords builds a corpus from already decoded records, applying the
// same rules as LoadJSON.
func FromRecords(records []Record) (model.Corpus, error) {
	docs := make([]model.Document, 0, len(records))
	for i, rec := range records {
		if rec.ID == "" {
			return nil, errors.NewValidationError(fmt.Sprintf("documents[%d].id", i), "cannot be empty")
		}
		docs = append(docs, rec.Document())
	}
	return model.NewCorpus(docs), nil
}
