package tokenizer

import (
	"reflect"
	"testing"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"empty string", "", []string{}},
		{"simple lowercase", "hello world", []string{"hello", "world"}},
		{"with punctuation", "hello, world!", []string{"hello", "world"}},
		{"with numbers", "item123 test", []string{"item123", "test"}},
		{"leading/trailing spaces", "  hello world  ", []string{"hello", "world"}},
		{"multiple spaces between words", "hello   world", []string{"hello", "world"}},
		{"tabs and newlines", "hello\tworld\nagain", []string{"hello", "world", "again"}},
		{"all caps word", "HELLO WORLD", []string{"hello", "world"}},
		{"apostrophe is removed", "Let's see", []string{"lets", "see"}},
		{"hyphen is removed", "red-black trees", []string{"redblack", "trees"}},
		{"parentheses", "(total order)", []string{"total", "order"}},
		{"only symbols", "!@#$%^", []string{}},
		{"only numbers", "12345 67890", []string{"12345", "67890"}},
		{"non-ascii letters are dropped", "café crème", []string{"caf", "crme"}},
		{"course code", "CIT594 topics", []string{"cit594", "topics"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Tokenize(tt.input)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Tokenize(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}
