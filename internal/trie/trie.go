// Package trie implements the weighted prefix trie behind autocomplete.
//
// Nodes live in a single arena slice and reference their children by index,
// so absent letters cost nothing beyond a zero slot. The root is always node 0
// and is never a child, which makes 0 usable as the "absent" sentinel.
//
// A Trie is not safe for concurrent mutation. Callers that share one across
// goroutines must serialize Insert and keep reads out while it runs.
package trie

import (
	"github.com/gcbaptista/termindex/model"
)

// AlphabetSize is the branching factor: one slot per lowercase letter.
const AlphabetSize = 26

const rootID int32 = 0

type node struct {
	children  [AlphabetSize]int32
	term      model.Term
	wordCount int
	// prefixCount counts every insertion whose path passes through or ends here.
	prefixCount int
}

// Trie is a weighted prefix trie over lowercase alphabetic words.
type Trie struct {
	nodes []node
	words int
}

// New creates an empty trie holding only the root.
func New() *Trie {
	return &Trie{nodes: make([]node, 1, 64)}
}

// NodeRef is a read-only handle to a node of the trie.
// It stays valid until the next Insert. The zero NodeRef, returned by
// Subtrie on a miss, reads as an empty leaf.
type NodeRef struct {
	trie *Trie
	id   int32
}

var emptyNode node

func (r NodeRef) node() *node {
	if r.trie == nil {
		return &emptyNode
	}
	return &r.trie.nodes[r.id]
}

// PrefixCount returns the number of insertions that pass through or end at this node.
func (r NodeRef) PrefixCount() int {
	return r.node().prefixCount
}

// WordCount returns 1 if a word ends at this node, 0 otherwise.
func (r NodeRef) WordCount() int {
	return r.node().wordCount
}

// Term returns the terminal term stored at this node, if any.
func (r NodeRef) Term() (model.Term, bool) {
	n := r.node()
	return n.term, n.wordCount != 0
}

// IsLeaf reports whether the node has no children.
func (r NodeRef) IsLeaf() bool {
	for _, child := range r.node().children {
		if child != rootID {
			return false
		}
	}
	return true
}

// Insert adds word with the given weight. It is a no-op returning false when
// word is empty, contains anything outside [A-Za-z], or weight is negative.
//
// Inserting a word that is already present overwrites its term but increments
// the prefix counts along its path again (multiset semantics).
func (t *Trie) Insert(word string, weight int64) bool {
	if weight < 0 || !isAlphabetic(word) {
		return false
	}
	lower := toLower(word)

	current := rootID
	for i := 0; i < len(lower); i++ {
		t.nodes[current].prefixCount++
		slot := lower[i] - 'a'
		next := t.nodes[current].children[slot]
		if next == rootID {
			t.nodes = append(t.nodes, node{})
			next = int32(len(t.nodes) - 1)
			t.nodes[current].children[slot] = next
		}
		current = next
	}

	terminal := &t.nodes[current]
	terminal.prefixCount++
	if terminal.wordCount == 0 {
		t.words++
	}
	terminal.wordCount = 1
	terminal.term = model.Term{Query: lower, Weight: weight}
	return true
}

// Subtrie returns the node reached by walking prefix from the root.
// The empty prefix yields the root. It reports false when any character is
// outside the alphabet or has no child; it never fails otherwise.
func (t *Trie) Subtrie(prefix string) (NodeRef, bool) {
	current := rootID
	for i := 0; i < len(prefix); i++ {
		c := prefix[i]
		if c >= 'A' && c <= 'Z' {
			c += 'a' - 'A'
		}
		if c < 'a' || c > 'z' {
			return NodeRef{}, false
		}
		next := t.nodes[current].children[c-'a']
		if next == rootID {
			return NodeRef{}, false
		}
		current = next
	}
	return NodeRef{trie: t, id: current}, true
}

// CountPrefixes returns the number of insertions whose word starts with prefix.
func (t *Trie) CountPrefixes(prefix string) int {
	ref, ok := t.Subtrie(prefix)
	if !ok {
		return 0
	}
	return ref.PrefixCount()
}

// CollectTerms returns every terminal term below prefix, in traversal order.
// The result is empty (not nil) when prefix is not in the trie.
func (t *Trie) CollectTerms(prefix string) []model.Term {
	terms := make([]model.Term, 0)
	ref, ok := t.Subtrie(prefix)
	if !ok {
		return terms
	}
	return t.collect(ref.id, terms)
}

func (t *Trie) collect(id int32, terms []model.Term) []model.Term {
	n := &t.nodes[id]
	if n.wordCount != 0 {
		terms = append(terms, n.term)
	}
	for _, child := range n.children {
		if child == rootID || t.nodes[child].prefixCount == 0 {
			continue
		}
		terms = t.collect(child, terms)
	}
	return terms
}

// Len returns the number of distinct words stored.
func (t *Trie) Len() int {
	return t.words
}

// Size returns the number of allocated nodes, root included.
func (t *Trie) Size() int {
	return len(t.nodes)
}

func isAlphabetic(word string) bool {
	if word == "" {
		return false
	}
	for i := 0; i < len(word); i++ {
		c := word[i]
		if (c < 'a' || c > 'z') && (c < 'A' || c > 'Z') {
			return false
		}
	}
	return true
}

// toLower folds ASCII letters; callers have already checked the alphabet.
func toLower(word string) string {
	b := []byte(word)
	for i, c := range b {
		if c >= 'A' && c <= 'Z' {
			b[i] = c + 'a' - 'A'
		}
	}
	return string(b)
}
