package api

import (
	"strings"
	"testing"
)

func TestValidationResult_AddError(t *testing.T) {
	result := &ValidationResult{Valid: true}

	result.AddError("field1", "error message")

	if result.Valid {
		t.Error("Expected Valid to be false after adding error")
	}

	if len(result.Errors) != 1 {
		t.Errorf("Expected 1 error, got %d", len(result.Errors))
	}

	if result.Errors[0].Field != "field1" {
		t.Errorf("Expected field 'field1', got '%s'", result.Errors[0].Field)
	}

	if result.Errors[0].Message != "error message" {
		t.Errorf("Expected message 'error message', got '%s'", result.Errors[0].Message)
	}
}

func TestValidationResult_HasErrors(t *testing.T) {
	result := &ValidationResult{Valid: true}

	if result.HasErrors() {
		t.Error("Expected HasErrors to be false for empty result")
	}

	result.AddError("field", "message")

	if !result.HasErrors() {
		t.Error("Expected HasErrors to be true after adding error")
	}
}

func TestValidateSearchRequest(t *testing.T) {
	tests := []struct {
		name         string
		request      *SearchRequest
		wantValid    bool
		wantStrategy string
	}{
		{
			name:         "default strategy",
			request:      &SearchRequest{Query: "apple pie"},
			wantValid:    true,
			wantStrategy: "normal",
		},
		{
			name:         "strategy is normalized",
			request:      &SearchRequest{Query: "apple pie", Strategy: "  Healthy "},
			wantValid:    true,
			wantStrategy: "healthy",
		},
		{
			name:         "unknown strategy is left for the engine",
			request:      &SearchRequest{Query: "apple pie", Strategy: "fancy"},
			wantValid:    true,
			wantStrategy: "fancy",
		},
		{
			name:         "empty query is left for the engine",
			request:      &SearchRequest{Query: ""},
			wantValid:    true,
			wantStrategy: "normal",
		},
		{
			name:         "query too long",
			request:      &SearchRequest{Query: strings.Repeat("a", MaxQueryLength+1)},
			wantValid:    false,
			wantStrategy: "normal",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ValidateSearchRequest(tt.request)
			if result.Valid != tt.wantValid {
				t.Errorf("Expected valid=%v, got %v (%v)", tt.wantValid, result.Valid, result.Errors)
			}
			if tt.request.Strategy != tt.wantStrategy {
				t.Errorf("Expected strategy '%s', got '%s'", tt.wantStrategy, tt.request.Strategy)
			}
		})
	}

	if result := ValidateSearchRequest(nil); result.Valid {
		t.Error("Expected nil request to be invalid")
	}
}

func TestValidateDocumentID(t *testing.T) {
	tests := []struct {
		name      string
		raw       string
		wantID    int
		wantValid bool
	}{
		{name: "valid id", raw: "42", wantID: 42, wantValid: true},
		{name: "negative id parses", raw: "-1", wantID: -1, wantValid: true},
		{name: "empty", raw: "", wantValid: false},
		{name: "not a number", raw: "apple", wantValid: false},
		{name: "float", raw: "1.5", wantValid: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, result := ValidateDocumentID(tt.raw)
			if result.Valid != tt.wantValid {
				t.Errorf("Expected valid=%v, got %v", tt.wantValid, result.Valid)
			}
			if tt.wantValid && id != tt.wantID {
				t.Errorf("Expected id %d, got %d", tt.wantID, id)
			}
		})
	}
}
