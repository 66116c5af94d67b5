package model

import (
	stderrors "errors"
	"testing"

	"github.com/gcbaptista/termindex/internal/errors"
)

func TestNewTerm(t *testing.T) {
	tests := []struct {
		name    string
		query   string
		weight  int64
		wantErr bool
	}{
		{"valid term", "binary", 12, false},
		{"zero weight", "trees", 0, false},
		{"empty query", "", 3, true},
		{"negative weight", "heap", -1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			term, err := NewTerm(tt.query, tt.weight)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("NewTerm(%q, %d) expected error", tt.query, tt.weight)
				}
				if !stderrors.Is(err, errors.ErrInvalidInput) {
					t.Errorf("expected ErrInvalidInput, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("NewTerm(%q, %d) unexpected error: %v", tt.query, tt.weight, err)
			}
			if term.Query != tt.query || term.Weight != tt.weight {
				t.Errorf("NewTerm() = %+v", term)
			}
		})
	}
}

func TestTermCompareAndString(t *testing.T) {
	a := Term{Query: "car", Weight: 9}
	b := Term{Query: "care", Weight: 1}

	if a.Compare(b) >= 0 || b.Compare(a) <= 0 || a.Compare(a) != 0 {
		t.Error("terms must order lexicographically by query")
	}
	if got := a.String(); got != "9\tcar" {
		t.Errorf("String() = %q, want %q", got, "9\tcar")
	}
}

func TestNewCorpus(t *testing.T) {
	corpus := NewCorpus([]Document{
		{ID: "a", Tokens: []string{"x", "y"}},
		{ID: "b", Tokens: []string{"z"}},
		{ID: "a", Tokens: []string{"w"}},
	})

	if len(corpus) != 2 {
		t.Fatalf("expected 2 documents, got %d", len(corpus))
	}
	if got := corpus["a"]; len(got) != 1 || got[0] != "w" {
		t.Errorf("later document should replace earlier one, got %v", got)
	}
	if corpus.TokenCount() != 2 {
		t.Errorf("TokenCount() = %d, want 2", corpus.TokenCount())
	}
}

func TestJobProgressAndStatus(t *testing.T) {
	p := &JobProgress{Current: 1, Total: 4}
	if p.GetProgressPercentage() != 25 {
		t.Errorf("expected 25%%, got %v", p.GetProgressPercentage())
	}
	if (&JobProgress{}).GetProgressPercentage() != 0 {
		t.Error("empty progress should be 0%")
	}
	if JobStatusRunning.IsTerminal() || !JobStatusFailed.IsTerminal() {
		t.Error("IsTerminal mismatch")
	}
}
