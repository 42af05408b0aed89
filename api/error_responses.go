package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	internalErrors "github.com/gcbaptista/recipe-search/internal/errors"
)

// ErrorCode represents standardized error codes for the API
type ErrorCode string

const (
	// Client Error Codes (4xx)
	ErrorCodeValidationFailed  ErrorCode = "VALIDATION_FAILED"
	ErrorCodeInvalidJSON       ErrorCode = "INVALID_JSON"
	ErrorCodeInvalidQuery      ErrorCode = "INVALID_QUERY"
	ErrorCodeEmptyQuery        ErrorCode = "EMPTY_QUERY"
	ErrorCodeUnknownStrategy   ErrorCode = "UNKNOWN_STRATEGY"
	ErrorCodeInvalidDocumentID ErrorCode = "INVALID_DOCUMENT_ID"
	ErrorCodeJobNotFound       ErrorCode = "JOB_NOT_FOUND"

	// Server Error Codes (5xx)
	ErrorCodeInternalError      ErrorCode = "INTERNAL_ERROR"
	ErrorCodeIndexingFailed     ErrorCode = "INDEXING_FAILED"
	ErrorCodeSearchFailed       ErrorCode = "SEARCH_FAILED"
	ErrorCodeJobExecutionFailed ErrorCode = "JOB_EXECUTION_FAILED"
)

// ErrorDetail points at the request field that caused an error
type ErrorDetail struct {
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

// APIError is the body of every non-2xx response
type APIError struct {
	Error     string        `json:"error"`
	Code      ErrorCode     `json:"code"`
	Message   string        `json:"message"`
	Details   []ErrorDetail `json:"details,omitempty"`
	Timestamp time.Time     `json:"timestamp"`
	RequestID string        `json:"request_id,omitempty"`
}

// SendError writes an APIError tagged with the request ID, if any
func SendError(c *gin.Context, statusCode int, code ErrorCode, message string, details ...ErrorDetail) {
	body := &APIError{
		Error:     http.StatusText(statusCode),
		Code:      code,
		Message:   message,
		Details:   details,
		Timestamp: time.Now(),
	}
	if id, ok := c.Get(requestIDKey); ok {
		body.RequestID, _ = id.(string)
	}
	c.JSON(statusCode, body)
}

// SendStructuredValidationError reports every failed field at once
func SendStructuredValidationError(c *gin.Context, result *ValidationResult) {
	details := make([]ErrorDetail, 0, len(result.Errors))
	for _, fieldErr := range result.Errors {
		details = append(details, ErrorDetail{
			Field:   fieldErr.Field,
			Message: fieldErr.Message,
			Code:    "VALIDATION_ERROR",
		})
	}
	SendError(c, http.StatusBadRequest, ErrorCodeValidationFailed, "Request validation failed", details...)
}

// SendInvalidJSONError reports a request body that could not be decoded
func SendInvalidJSONError(c *gin.Context, err error) {
	SendError(c, http.StatusBadRequest, ErrorCodeInvalidJSON, "Invalid JSON in request body: "+err.Error())
}

// callerError maps an error the caller can fix to its response.
// An empty message means the error text is used.
type callerError struct {
	target  error
	status  int
	code    ErrorCode
	message string
}

// Search failures the caller can fix. Anything else, including an index
// pointing outside the corpus, is a server error.
var searchCallerErrors = []callerError{
	{
		target:  internalErrors.ErrEmptyQuery,
		status:  http.StatusBadRequest,
		code:    ErrorCodeEmptyQuery,
		message: "Query has no searchable words left after removing stop words",
	},
	{
		target: internalErrors.ErrUnknownStrategy,
		status: http.StatusBadRequest,
		code:   ErrorCodeUnknownStrategy,
	},
	{
		target: internalErrors.ErrInvalidInput,
		status: http.StatusBadRequest,
		code:   ErrorCodeInvalidQuery,
	},
}

var recipeCallerErrors = []callerError{
	{
		target: internalErrors.ErrInvalidDocumentID,
		status: http.StatusNotFound,
		code:   ErrorCodeInvalidDocumentID,
	},
}

var jobCallerErrors = []callerError{
	{
		target: internalErrors.ErrJobNotFound,
		status: http.StatusNotFound,
		code:   ErrorCodeJobNotFound,
	},
}

func isCallerError(err error, mapping []callerError) bool {
	for _, m := range mapping {
		if errors.Is(err, m.target) {
			return true
		}
	}
	return false
}

// sendMappedError answers with the first matching caller error and reports
// whether one matched.
func sendMappedError(c *gin.Context, err error, mapping []callerError) bool {
	for _, m := range mapping {
		if !errors.Is(err, m.target) {
			continue
		}
		message := m.message
		if message == "" {
			message = err.Error()
		}
		SendError(c, m.status, m.code, message)
		return true
	}
	return false
}

// SendServerError reports a failed operation with a 500
func SendServerError(c *gin.Context, code ErrorCode, operation string, err error) {
	SendError(c, http.StatusInternalServerError, code, operation+" failed: "+err.Error())
}

// SendSearchError maps search failures to client or server errors.
func SendSearchError(c *gin.Context, err error) {
	if !sendMappedError(c, err, searchCallerErrors) {
		SendServerError(c, ErrorCodeSearchFailed, "Search", err)
	}
}
