// Package api exposes the engine over HTTP with gin.
package api

import (
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
)

// maxSuggestionLimit bounds the limit query parameter of /autocomplete.
const maxSuggestionLimit = 1000

// ValidationError represents a validation error with field context
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationResult holds the result of validation operations
type ValidationResult struct {
	Valid  bool              `json:"valid"`
	Errors []ValidationError `json:"errors,omitempty"`
}

// AddError adds a validation error to the result
func (vr *ValidationResult) AddError(field, message string) {
	vr.Valid = false
	vr.Errors = append(vr.Errors, ValidationError{
		Field:   field,
		Message: message,
	})
}

// HasErrors returns true if there are validation errors
func (vr *ValidationResult) HasErrors() bool {
	return len(vr.Errors) > 0
}

// ValidateSuggestRequest validates autocomplete query parameters.
// An empty prefix is allowed and matches the whole vocabulary.
func ValidateSuggestRequest(req SuggestRequest) *ValidationResult {
	result := &ValidationResult{Valid: true}

	if req.Limit < 0 {
		result.AddError("limit", "Limit cannot be negative")
	}
	if req.Limit > maxSuggestionLimit {
		result.AddError("limit", fmt.Sprintf("Limit cannot exceed %d", maxSuggestionLimit))
	}
	if strings.ContainsAny(req.Prefix, " \t\n") {
		result.AddError("prefix", "Prefix must be a single word")
	}

	return result
}

// ValidateWords validates a batch of words to insert into the vocabulary
func ValidateWords(words []WordRequest) *ValidationResult {
	result := &ValidationResult{Valid: true}

	if len(words) == 0 {
		result.AddError("words", "No words provided")
		return result
	}

	for i, word := range words {
		field := fmt.Sprintf("words[%d]", i)
		if word.Query == "" {
			result.AddError(field+".query", "Query cannot be empty")
			continue
		}
		for _, r := range word.Query {
			if (r < 'a' || r > 'z') && (r < 'A' || r > 'Z') {
				result.AddError(field+".query", "Query must contain only letters a-z")
				break
			}
		}
		if word.Weight < 0 {
			result.AddError(field+".weight", "Weight cannot be negative")
		}
	}

	return result
}

// ValidateTerm validates a search term
func ValidateTerm(field, term string) *ValidationResult {
	result := &ValidationResult{Valid: true}

	if term == "" {
		result.AddError(field, "Term is required")
		return result
	}

	if strings.TrimSpace(term) != term {
		result.AddError(field, "Term cannot have leading or trailing whitespace")
		return result
	}

	if strings.ContainsAny(term, " \t\n") {
		result.AddError(field, "Term must be a single token")
	}

	return result
}

// ValidateDocumentID validates a document ID
func ValidateDocumentID(documentID string) *ValidationResult {
	result := &ValidationResult{Valid: true}

	if documentID == "" {
		result.AddError("id", "Document ID is required")
		return result
	}

	if strings.TrimSpace(documentID) != documentID {
		result.AddError("id", "Document ID cannot have leading or trailing whitespace")
	}

	return result
}

// SendValidationError sends a standardized validation error response
func SendValidationError(c *gin.Context, result *ValidationResult) {
	SendStructuredValidationError(c, result)
}

// ValidateQueryBinding validates query parameter binding
func ValidateQueryBinding(c *gin.Context, target interface{}) *ValidationResult {
	result := &ValidationResult{Valid: true}

	if err := c.ShouldBindQuery(target); err != nil {
		result.AddError("query_parameters", "Invalid query parameters: "+err.Error())
	}

	return result
}
