package api

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidationResult_AddError(t *testing.T) {
	result := &ValidationResult{Valid: true}
	assert.False(t, result.HasErrors())

	result.AddError("field1", "error message")

	assert.False(t, result.Valid)
	assert.True(t, result.HasErrors())
	assert.Equal(t, []ValidationError{{Field: "field1", Message: "error message"}}, result.Errors)
}

func TestValidateSuggestRequest(t *testing.T) {
	tests := []struct {
		name      string
		req       SuggestRequest
		wantValid bool
	}{
		{name: "empty prefix", req: SuggestRequest{}, wantValid: true},
		{name: "prefix and limit", req: SuggestRequest{Prefix: "ca", Limit: 5}, wantValid: true},
		{name: "negative limit", req: SuggestRequest{Prefix: "ca", Limit: -1}, wantValid: false},
		{name: "limit too large", req: SuggestRequest{Prefix: "ca", Limit: maxSuggestionLimit + 1}, wantValid: false},
		{name: "two words", req: SuggestRequest{Prefix: "binary tr"}, wantValid: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantValid, !ValidateSuggestRequest(tt.req).HasErrors())
		})
	}
}

func TestValidateWords(t *testing.T) {
	tests := []struct {
		name       string
		words      []WordRequest
		wantErrors int
	}{
		{name: "valid words", words: []WordRequest{{Query: "Tree", Weight: 1}, {Query: "heap"}}, wantErrors: 0},
		{name: "no words", words: nil, wantErrors: 1},
		{name: "empty query", words: []WordRequest{{Query: ""}}, wantErrors: 1},
		{name: "digits", words: []WordRequest{{Query: "r2d2"}}, wantErrors: 1},
		{name: "accented letter", words: []WordRequest{{Query: "café"}}, wantErrors: 1},
		{name: "negative weight and bad query", words: []WordRequest{{Query: "a-b", Weight: -3}}, wantErrors: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Len(t, ValidateWords(tt.words).Errors, tt.wantErrors)
		})
	}
}

func TestValidateTerm(t *testing.T) {
	tests := []struct {
		name      string
		term      string
		wantValid bool
		wantError string
	}{
		{name: "valid term", term: "binary", wantValid: true},
		{name: "empty term", term: "", wantValid: false, wantError: "Term is required"},
		{name: "surrounding whitespace", term: " binary", wantValid: false, wantError: "Term cannot have leading or trailing whitespace"},
		{name: "two tokens", term: "binary\ttrees", wantValid: false, wantError: "Term must be a single token"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ValidateTerm("term", tt.term)
			assert.Equal(t, tt.wantValid, !result.HasErrors())
			if tt.wantError != "" {
				assert.Equal(t, tt.wantError, result.Errors[0].Message)
			}
		})
	}
}

func TestValidateDocumentID(t *testing.T) {
	assert.False(t, ValidateDocumentID("http://example.com/page1").HasErrors())
	assert.True(t, ValidateDocumentID("").HasErrors())
	assert.True(t, ValidateDocumentID("page1 ").HasErrors())
}
