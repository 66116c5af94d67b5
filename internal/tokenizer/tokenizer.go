// Package tokenizer normalizes raw document text into the token form the
// index builders expect: lowercase alphanumeric words, punctuation removed.
package tokenizer

import (
	"regexp"
	"strings"
)

// whitespaceRegex matches any run of whitespace, including newlines and tabs.
var whitespaceRegex = regexp.MustCompile(`\s+`)

// strippedRegex matches every character that is neither alphanumeric nor a space.
// Punctuation is deleted rather than treated as a separator, so "don't" becomes "dont".
var strippedRegex = regexp.MustCompile(`[^a-z0-9 ]`)

// Tokenize lowercases text, strips punctuation and splits it on whitespace.
func Tokenize(text string) []string {
	// 1. Collapse all whitespace to single spaces
	processed := whitespaceRegex.ReplaceAllString(text, " ")

	// 2. Lowercase
	processed = strings.ToLower(processed)

	// 3. Delete everything outside [a-z0-9 ]
	processed = strippedRegex.ReplaceAllString(processed, "")

	tokens := make([]string, 0) // Initialize as empty slice, not nil
	for _, s := range strings.Split(processed, " ") {
		if s != "" {
			tokens = append(tokens, s)
		}
	}
	return tokens
}
