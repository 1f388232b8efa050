package errors

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewErrorResponse(t *testing.T) {
	response := NewErrorResponse(ExpenditureNotFound, "trace-123")

	assert.Equal(t, "EXPENDITURE_001", response.Error.Code)
	assert.Equal(t, "Expenditure not found", response.Error.Message)
	assert.Equal(t, "trace-123", response.Error.TraceID)
	assert.Empty(t, response.Error.Details)
}

func TestNewErrorResponse_WithOptions(t *testing.T) {
	response := NewErrorResponse(
		ValidationOutOfRange,
		"trace-123",
		WithDetails("min_m and max_m must be provided together"),
		WithMessage("Amount bounds are incomplete"),
	)

	assert.Equal(t, "Amount bounds are incomplete", response.Error.Message)
	require.Len(t, response.Error.Details, 1)
	assert.Equal(t, "min_m and max_m must be provided together", response.Error.Details[0])
}

func TestNewValidationError(t *testing.T) {
	response := NewValidationError(map[string]string{
		"Amount":      "must be greater than 0",
		"ExpenseDate": "is required",
	}, "trace-123")

	assert.Equal(t, "VALIDATION_001", response.Error.Code)
	assert.Len(t, response.Error.Details, 2)
}

func TestWrapSystemError(t *testing.T) {
	response, internal := WrapSystemError(assert.AnError, "trace-123")

	assert.Equal(t, "SYSTEM_001", response.Error.Code)
	// The internal error is returned for logging, never exposed to the client
	assert.Equal(t, assert.AnError, internal)
	assert.NotContains(t, response.Error.Message, assert.AnError.Error())
}

func TestGetHTTPStatus(t *testing.T) {
	tests := []struct {
		code     ErrorCode
		expected int
	}{
		{ValidationGeneral, http.StatusBadRequest},
		{ValidationMissingPeriod, http.StatusBadRequest},
		{BudgetInvalidPeriod, http.StatusBadRequest},
		{AuthInvalidCredentials, http.StatusUnauthorized},
		{AuthExpiredToken, http.StatusUnauthorized},
		{UserInactive, http.StatusForbidden},
		{CategoryNotFound, http.StatusNotFound},
		{ExpenditureNotFound, http.StatusNotFound},
		// An empty query result is a 404, not an empty 200
		{ExpenditureNoResults, http.StatusNotFound},
		{UserAlreadyExists, http.StatusUnprocessableEntity},
		{SystemRateLimitExceeded, http.StatusTooManyRequests},
		{SystemServiceUnavailable, http.StatusServiceUnavailable},
		{SystemInternalError, http.StatusInternalServerError},
		{ErrorCode("NOPE_999"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, GetHTTPStatus(tt.code), string(tt.code))
	}
}

func TestErrorResponse_ClientServerClassification(t *testing.T) {
	notFound := NewErrorResponse(ExpenditureNoResults, "")
	assert.True(t, notFound.IsClientError())
	assert.False(t, notFound.IsServerError())

	internal := NewErrorResponse(SystemInternalError, "")
	assert.False(t, internal.IsClientError())
	assert.True(t, internal.IsServerError())
}

func TestErrorResponse_ToJSON(t *testing.T) {
	response := NewErrorResponse(CategoryNotFound, "trace-123")

	data, err := response.ToJSON()
	require.NoError(t, err)

	var decoded ErrorResponse
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "CATEGORY_001", decoded.Error.Code)
	assert.Equal(t, "trace-123", decoded.Error.TraceID)
}

func TestErrorResponse_String(t *testing.T) {
	response := NewErrorResponse(BudgetNotFound, "trace-123")
	assert.Equal(t, "[BUDGET_001] Budget not found (trace: trace-123)", response.String())
}
