package indexing

import (
	"bufio"
	"fmt"
	"io"
	"sort"

	"github.com/gcbaptista/termindex/index"
)

// Vocabulary returns the distinct homepage terms in ascending order.
func Vocabulary(homepage index.Homepage) []string {
	seen := make(map[string]struct{}, len(homepage))
	words := make([]string, 0, len(homepage))
	for _, entry := range homepage {
		if _, dup := seen[entry.Term]; dup {
			continue
		}
		seen[entry.Term] = struct{}{}
		words = append(words, entry.Term)
	}
	sort.Strings(words)
	return words
}

// WriteVocabulary writes the autocomplete dump for homepage to w: the number
// of distinct terms on the first line, then one " 0 <term>" line per term in
// ascending order. The dump is readable by autocomplete.Engine.Load.
func WriteVocabulary(w io.Writer, homepage index.Homepage) ([]string, error) {
	words := Vocabulary(homepage)

	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintf(bw, "%d", len(words)); err != nil {
		return nil, fmt.Errorf("failed to write vocabulary header: %w", err)
	}
	for _, word := range words {
		if _, err := fmt.Fprintf(bw, "\n 0 %s", word); err != nil {
			return nil, fmt.Errorf("failed to write vocabulary term %q: %w", word, err)
		}
	}
	if err := bw.Flush(); err != nil {
		return nil, fmt.Errorf("failed to flush vocabulary: %w", err)
	}
	return words, nil
}
