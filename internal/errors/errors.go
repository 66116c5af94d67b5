package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors for common error conditions
var (
	// ErrTermNotFound is returned when a term is not present in the inverted index
	ErrTermNotFound = errors.New("term not found")

	// ErrDocumentNotFound is returned when a document is not present in the forward index
	ErrDocumentNotFound = errors.New("document not found")

	// ErrIndexNotBuilt is returned when the index is queried before the first build
	ErrIndexNotBuilt = errors.New("index not built")

	// ErrNoPreviousSnapshot is returned when a rollback has nothing to restore
	ErrNoPreviousSnapshot = errors.New("no previous snapshot")

	// ErrJobNotFound is returned when a job is not found
	ErrJobNotFound = errors.New("job not found")

	// ErrInvalidInput is returned when input validation fails
	ErrInvalidInput = errors.New("invalid input")
)

// TermNotFoundError represents a search for a term the index does not carry
type TermNotFoundError struct {
	Term string
}

func (e *TermNotFoundError) Error() string {
	return fmt.Sprintf("term '%s' not found", e.Term)
}

func (e *TermNotFoundError) Is(target error) bool {
	return target == ErrTermNotFound
}

// NewTermNotFoundError creates a new TermNotFoundError
func NewTermNotFoundError(term string) *TermNotFoundError {
	return &TermNotFoundError{Term: term}
}

// DocumentNotFoundError represents a document not found error with context
type DocumentNotFoundError struct {
	DocumentID string
}

func (e *DocumentNotFoundError) Error() string {
	return fmt.Sprintf("document with ID '%s' not found", e.DocumentID)
}

func (e *DocumentNotFoundError) Is(target error) bool {
	return target == ErrDocumentNotFound
}

// NewDocumentNotFoundError creates a new DocumentNotFoundError
func NewDocumentNotFoundError(documentID string) *DocumentNotFoundError {
	return &DocumentNotFoundError{DocumentID: documentID}
}

// JobNotFoundError represents a job not found error with context
type JobNotFoundError struct {
	JobID string
}

func (e *JobNotFoundError) Error() string {
	return fmt.Sprintf("job with ID '%s' not found", e.JobID)
}

func (e *JobNotFoundError) Is(target error) bool {
	return target == ErrJobNotFound
}

// NewJobNotFoundError creates a new JobNotFoundError
func NewJobNotFoundError(jobID string) *JobNotFoundError {
	return &JobNotFoundError{JobID: jobID}
}

// ValidationError represents an input validation error with context
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation error for field '%s': %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation error: %s", e.Message)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// NewValidationError creates a new ValidationError
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// RecordError describes a vocabulary record that was skipped during a bulk load.
// It is accumulated by the loader rather than aborting the batch.
type RecordError struct {
	Line   int    `json:"line"`
	Record string `json:"record"`
	Reason string `json:"reason"`
}

func (e *RecordError) Error() string {
	return fmt.Sprintf("line %d: %s (%q)", e.Line, e.Reason, e.Record)
}

func (e *RecordError) Is(target error) bool {
	return target == ErrInvalidInput
}

// NewRecordError creates a new RecordError
func NewRecordError(line int, record, reason string) *RecordError {
	return &RecordError{Line: line, Record: record, Reason: reason}
}
