package model

import (
	"fmt"
	"strings"

	"github.com/gcbaptista/termindex/internal/errors"
)

// Term is a weighted vocabulary entry served by autocomplete.
// Terms are ordered lexicographically by Query.
type Term struct {
	Query  string `json:"query"`
	Weight int64  `json:"weight"`
}

// NewTerm validates and creates a Term.
func NewTerm(query string, weight int64) (Term, error) {
	if query == "" {
		return Term{}, errors.NewValidationError("query", "cannot be empty")
	}
	if weight < 0 {
		return Term{}, errors.NewValidationError("weight", "must be non-negative")
	}
	return Term{Query: query, Weight: weight}, nil
}

// Compare orders terms lexicographically by query.
func (t Term) Compare(other Term) int {
	return strings.Compare(t.Query, other.Query)
}

// String renders the term as the weight, a tab, then the query.
func (t Term) String() string {
	return fmt.Sprintf("%d\t%s", t.Weight, t.Query)
}
