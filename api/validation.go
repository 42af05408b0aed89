// Package api provides the HTTP surface of the recipe search engine.
package api

import (
	"strconv"
	"strings"
	"unicode/utf8"
)

// MaxQueryLength bounds the query text accepted by the search endpoint.
const MaxQueryLength = 1000

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

// ValidateSearchRequest checks the request shape and fills in the default strategy.
// Whether the query leaves any searchable words is decided by the engine.
func ValidateSearchRequest(req *SearchRequest) *ValidationResult {
	result := &ValidationResult{Valid: true}

	if req == nil {
		result.AddError("request", "Search request is required")
		return result
	}

	if utf8.RuneCountInString(req.Query) > MaxQueryLength {
		result.AddError("query", "Query cannot be longer than "+strconv.Itoa(MaxQueryLength)+" characters")
	}

	req.Strategy = strings.ToLower(strings.TrimSpace(req.Strategy))
	if req.Strategy == "" {
		req.Strategy = DefaultStrategy
	}

	return result
}

// ValidateDocumentID parses a document id path parameter.
// Range checks against the corpus happen in the engine.
func ValidateDocumentID(raw string) (int, *ValidationResult) {
	result := &ValidationResult{Valid: true}

	if raw == "" {
		result.AddError("id", "Document ID is required")
		return 0, result
	}

	docID, err := strconv.Atoi(raw)
	if err != nil {
		result.AddError("id", "Document ID must be an integer, got '"+raw+"'")
		return 0, result
	}

	return docID, result
}
