package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors for common error conditions
var (
	// ErrEmptyQuery is returned when a query has no tokens left to resolve
	ErrEmptyQuery = errors.New("empty query")

	// ErrUnknownStrategy is returned when a ranking strategy name is not recognized
	ErrUnknownStrategy = errors.New("unknown strategy")

	// ErrInvalidDocumentID is returned when a document id falls outside the corpus
	ErrInvalidDocumentID = errors.New("invalid document id")

	// ErrJobNotFound is returned when a job is not found
	ErrJobNotFound = errors.New("job not found")

	// ErrInvalidInput is returned when input validation fails
	ErrInvalidInput = errors.New("invalid input")
)

// UnknownStrategyError represents an unknown strategy error with context
type UnknownStrategyError struct {
	Strategy string
}

func (e *UnknownStrategyError) Error() string {
	return fmt.Sprintf("unknown strategy '%s' (expected normal, simple or healthy)", e.Strategy)
}

func (e *UnknownStrategyError) Is(target error) bool {
	return target == ErrUnknownStrategy
}

// NewUnknownStrategyError creates a new UnknownStrategyError
func NewUnknownStrategyError(strategy string) *UnknownStrategyError {
	return &UnknownStrategyError{Strategy: strategy}
}

// InvalidDocumentIDError represents a document id outside [0, CorpusSize)
type InvalidDocumentIDError struct {
	DocumentID int
	CorpusSize int
}

func (e *InvalidDocumentIDError) Error() string {
	return fmt.Sprintf("document id %d is out of range for a corpus of %d recipes", e.DocumentID, e.CorpusSize)
}

func (e *InvalidDocumentIDError) Is(target error) bool {
	return target == ErrInvalidDocumentID
}

// NewInvalidDocumentIDError creates a new InvalidDocumentIDError
func NewInvalidDocumentIDError(documentID, corpusSize int) *InvalidDocumentIDError {
	return &InvalidDocumentIDError{DocumentID: documentID, CorpusSize: corpusSize}
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
