// Package autocomplete serves ranked prefix suggestions over a weighted vocabulary.
package autocomplete

import (
	"bufio"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/gcbaptista/termindex/internal/errors"
	"github.com/gcbaptista/termindex/internal/logger"
	"github.com/gcbaptista/termindex/internal/trie"
	"github.com/gcbaptista/termindex/model"
)

// LoadReport summarizes a bulk vocabulary load.
type LoadReport struct {
	Lines   int                   `json:"lines"`   // data lines read, header excluded
	Loaded  int                   `json:"loaded"`  // records inserted into the trie
	Skipped []*errors.RecordError `json:"skipped"` // records rejected, in input order
}

// Stats describes the current vocabulary.
type Stats struct {
	Words          int `json:"words"`
	Insertions     int `json:"insertions"`
	Nodes          int `json:"nodes"`
	MaxSuggestions int `json:"max_suggestions"`
}

// Engine owns a single prefix trie and guards it with a reader/writer lock:
// AddWord and Load are exclusive, queries may run concurrently with each other.
type Engine struct {
	mu             sync.RWMutex
	trie           *trie.Trie
	maxSuggestions int
	log            *log.Logger
}

// New creates an engine with an empty vocabulary. A nil logger gets the default one.
func New(l *log.Logger) *Engine {
	if l == nil {
		l = logger.New("autocomplete")
	}
	return &Engine{
		trie: trie.New(),
		log:  l,
	}
}

// AddWord inserts a single word. It returns false when the word was rejected.
func (e *Engine) AddWord(word string, weight int64) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.trie.Insert(word, weight)
}

// Load reads "<weight> <word>" records from r, skipping the first (header)
// line, and stores maxSuggestions. Malformed records are collected in the
// report instead of aborting the load. On a read error, the records processed
// before the failure stay in the trie and the partial report is returned
// alongside the error.
func (e *Engine) Load(r io.Reader, maxSuggestions int) (LoadReport, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.maxSuggestions = maxSuggestions
	report := LoadReport{Skipped: make([]*errors.RecordError, 0)}

	reader := bufio.NewReader(r)
	lineNo := 0
	var readErr error
	for {
		raw, err := reader.ReadString('\n')
		if err != nil && err != io.EOF {
			readErr = err
			break
		}
		if raw == "" && err == io.EOF {
			break
		}
		lineNo++
		if lineNo == 1 {
			if err == io.EOF {
				break
			}
			continue
		}
		report.Lines++

		e.loadRecord(&report, lineNo, raw)
		if err == io.EOF {
			break
		}
	}

	if len(report.Skipped) > 0 {
		e.log.Warn("skipped malformed vocabulary records", "skipped", len(report.Skipped))
		for _, rec := range report.Skipped {
			e.log.Debug("skipped record", "line", rec.Line, "reason", rec.Reason)
		}
	}

	if readErr != nil {
		return report, fmt.Errorf("failed to read vocabulary after line %d: %w", lineNo, readErr)
	}

	e.log.Info("vocabulary loaded", "loaded", report.Loaded, "words", e.trie.Len())
	return report, nil
}

// loadRecord parses one data line and inserts it, or appends a RecordError.
// Lines have no length limit; an oversized line is just another bad record.
func (e *Engine) loadRecord(report *LoadReport, lineNo int, raw string) {
	line := strings.TrimSpace(raw)
	fields := strings.Fields(line)
	if len(fields) != 2 {
		report.Skipped = append(report.Skipped,
			errors.NewRecordError(lineNo, line, fmt.Sprintf("expected 2 fields, got %d", len(fields))))
		return
	}

	weight, err := strconv.ParseInt(fields[0], 10, 64)
	if err != nil || weight < 0 {
		report.Skipped = append(report.Skipped,
			errors.NewRecordError(lineNo, line, "weight must be a non-negative integer"))
		return
	}

	if !e.trie.Insert(fields[1], weight) {
		report.Skipped = append(report.Skipped,
			errors.NewRecordError(lineNo, line, "word must be alphabetic"))
		return
	}
	report.Loaded++
}

// Suggest returns every term starting with prefix, highest weight first and
// ties in ascending query order. Invalid or unknown prefixes yield an empty slice.
func (e *Engine) Suggest(prefix string) []model.Term {
	e.mu.RLock()
	terms := e.trie.CollectTerms(prefix)
	e.mu.RUnlock()

	sortByWeight(terms)
	return terms
}

// Top returns Suggest capped at the configured maximum; a maximum of zero or
// less means no cap.
func (e *Engine) Top(prefix string) []model.Term {
	terms := e.Suggest(prefix)
	limit := e.MaxSuggestions()
	if limit > 0 && len(terms) > limit {
		terms = terms[:limit]
	}
	return terms
}

// CountPrefixes returns the number of insertions whose word starts with prefix.
func (e *Engine) CountPrefixes(prefix string) int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.trie.CountPrefixes(prefix)
}

// MaxSuggestions returns the limit recorded by the last Load or SetMaxSuggestions.
func (e *Engine) MaxSuggestions() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.maxSuggestions
}

// SetMaxSuggestions overrides the suggestion limit.
func (e *Engine) SetMaxSuggestions(n int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.maxSuggestions = n
}

// Stats returns vocabulary statistics.
func (e *Engine) Stats() Stats {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return Stats{
		Words:          e.trie.Len(),
		Insertions:     e.trie.CountPrefixes(""),
		Nodes:          e.trie.Size(),
		MaxSuggestions: e.maxSuggestions,
	}
}

func sortByWeight(terms []model.Term) {
	sort.Slice(terms, func(i, j int) bool {
		if terms[i].Weight != terms[j].Weight {
			return terms[i].Weight > terms[j].Weight
		}
		return terms[i].Query < terms[j].Query
	})
}
