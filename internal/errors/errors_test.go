package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestEmptyQuerySentinel(t *testing.T) {
	wrapped := fmt.Errorf("resolving query: %w", ErrEmptyQuery)

	if !errors.Is(wrapped, ErrEmptyQuery) {
		t.Error("Expected wrapped error to match ErrEmptyQuery sentinel")
	}
	if errors.Is(wrapped, ErrUnknownStrategy) {
		t.Error("Error should not match ErrUnknownStrategy")
	}
}

func TestUnknownStrategyError(t *testing.T) {
	err := NewUnknownStrategyError("fancy")

	expectedMsg := "unknown strategy 'fancy' (expected normal, simple or healthy)"
	if err.Error() != expectedMsg {
		t.Errorf("Expected error message '%s', got '%s'", expectedMsg, err.Error())
	}

	if !errors.Is(err, ErrUnknownStrategy) {
		t.Error("Expected error to match ErrUnknownStrategy sentinel")
	}
	if errors.Is(err, ErrEmptyQuery) {
		t.Error("Error should not match ErrEmptyQuery")
	}
}

func TestInvalidDocumentIDError(t *testing.T) {
	err := NewInvalidDocumentIDError(12, 10)

	expectedMsg := "document id 12 is out of range for a corpus of 10 recipes"
	if err.Error() != expectedMsg {
		t.Errorf("Expected error message '%s', got '%s'", expectedMsg, err.Error())
	}

	if !errors.Is(err, ErrInvalidDocumentID) {
		t.Error("Expected error to match ErrInvalidDocumentID sentinel")
	}
}

func TestValidationError(t *testing.T) {
	err := NewValidationError("query", "cannot be empty")

	expectedMsg := "validation error for field 'query': cannot be empty"
	if err.Error() != expectedMsg {
		t.Errorf("Expected error message '%s', got '%s'", expectedMsg, err.Error())
	}

	err2 := NewValidationError("", "cannot be empty")

	expectedMsg2 := "validation error: cannot be empty"
	if err2.Error() != expectedMsg2 {
		t.Errorf("Expected error message '%s', got '%s'", expectedMsg2, err2.Error())
	}

	if !errors.Is(err, ErrInvalidInput) {
		t.Error("Expected error to match ErrInvalidInput sentinel")
	}
	if !errors.Is(err2, ErrInvalidInput) {
		t.Error("Expected error without field to match ErrInvalidInput sentinel")
	}
}

func TestErrorChaining(t *testing.T) {
	originalErr := NewInvalidDocumentIDError(-1, 3)
	wrappedErr := errors.Join(originalErr, errors.New("additional context"))

	if !errors.Is(wrappedErr, ErrInvalidDocumentID) {
		t.Error("Expected wrapped error to still match ErrInvalidDocumentID sentinel")
	}

	var idErr *InvalidDocumentIDError
	if !errors.As(wrappedErr, &idErr) {
		t.Fatal("Expected to be able to unwrap to InvalidDocumentIDError")
	}

	if idErr.DocumentID != -1 || idErr.CorpusSize != 3 {
		t.Errorf("Expected id -1 and size 3, got %d and %d", idErr.DocumentID, idErr.CorpusSize)
	}
}

func TestJobNotFoundError(t *testing.T) {
	err := NewJobNotFoundError("1b4e28ba")

	expectedMsg := "job with ID '1b4e28ba' not found"
	if err.Error() != expectedMsg {
		t.Errorf("Expected error message '%s', got '%s'", expectedMsg, err.Error())
	}
	if !errors.Is(err, ErrJobNotFound) {
		t.Error("Expected error to match ErrJobNotFound sentinel")
	}
}
