package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	apierrors "budgetbook/internal/errors"
	"budgetbook/internal/validation"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newErrorHandlerContext(t *testing.T) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/expenditures", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set(TraceIDContextKey, "trace-123")
	return c, rec
}

func decodeErrorResponse(t *testing.T, rec *httptest.ResponseRecorder) apierrors.ErrorResponse {
	t.Helper()
	var response apierrors.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	return response
}

func TestCustomHTTPErrorHandler_EchoHTTPError(t *testing.T) {
	c, rec := newErrorHandlerContext(t)

	CustomHTTPErrorHandler(echo.NewHTTPError(http.StatusNotFound, "route not found"), c)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	response := decodeErrorResponse(t, rec)
	assert.Equal(t, "EXPENDITURE_001", response.Error.Code)
	assert.Equal(t, "route not found", response.Error.Message)
	assert.Equal(t, "trace-123", response.Error.TraceID)
}

func TestCustomHTTPErrorHandler_ValidationErrors(t *testing.T) {
	c, rec := newErrorHandlerContext(t)

	type payload struct {
		Amount int64 `validate:"required,gt=0"`
	}
	err := validator.New().Struct(payload{})
	require.Error(t, err)

	CustomHTTPErrorHandler(err, c)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	response := decodeErrorResponse(t, rec)
	assert.Equal(t, "VALIDATION_001", response.Error.Code)
	require.Len(t, response.Error.Details, 1)
	assert.Contains(t, response.Error.Details[0], "Amount")
}

func TestCustomHTTPErrorHandler_CustomTagMessage(t *testing.T) {
	c, rec := newErrorHandlerContext(t)

	type payload struct {
		Amount int64 `validate:"positive_amount"`
	}
	err := validation.GetValidator().GetValidate().Struct(payload{Amount: -5})
	require.Error(t, err)

	CustomHTTPErrorHandler(err, c)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	response := decodeErrorResponse(t, rec)
	assert.Equal(t, "VALIDATION_001", response.Error.Code)
	require.Len(t, response.Error.Details, 1)
	assert.Contains(t, response.Error.Details[0], "must be a positive amount")
}

func TestCustomHTTPErrorHandler_UnexpectedError(t *testing.T) {
	c, rec := newErrorHandlerContext(t)

	CustomHTTPErrorHandler(assert.AnError, c)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	response := decodeErrorResponse(t, rec)
	assert.Equal(t, "SYSTEM_001", response.Error.Code)
	// Internal details must not leak to the client
	assert.NotContains(t, response.Error.Message, assert.AnError.Error())
}

func TestCustomHTTPErrorHandler_CommittedResponse(t *testing.T) {
	c, rec := newErrorHandlerContext(t)

	require.NoError(t, c.JSON(http.StatusOK, map[string]string{"status": "ok"}))
	body := rec.Body.String()

	CustomHTTPErrorHandler(assert.AnError, c)

	// Nothing is appended once the response is committed
	assert.Equal(t, body, rec.Body.String())
}

func TestMapHTTPStatusToErrorCode(t *testing.T) {
	tests := []struct {
		status   int
		expected apierrors.ErrorCode
	}{
		{http.StatusBadRequest, apierrors.ValidationGeneral},
		{http.StatusUnauthorized, apierrors.AuthMissingToken},
		{http.StatusForbidden, apierrors.AuthInsufficientPermission},
		{http.StatusNotFound, apierrors.ExpenditureNotFound},
		{http.StatusTooManyRequests, apierrors.SystemRateLimitExceeded},
		{http.StatusServiceUnavailable, apierrors.SystemServiceUnavailable},
		{http.StatusTeapot, apierrors.SystemInternalError},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, mapHTTPStatusToErrorCode(tt.status), "status %d", tt.status)
	}
}
