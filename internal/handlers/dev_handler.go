package handlers

import (
	"net/http"
	"time"

	"budgetbook/internal/services"

	"github.com/labstack/echo/v4"
)

// DevHandler handles development-only endpoints
// These endpoints should only be available in development environments
type DevHandler struct {
	generator services.SampleDataGeneratorInterface
}

// NewDevHandler creates a new development handler
func NewDevHandler(generator services.SampleDataGeneratorInterface) *DevHandler {
	return &DevHandler{
		generator: generator,
	}
}

// GenerateSampleData seeds plausible expenditure records for the caller
//
// Method: POST /api/v1/dev/expenditures/generate
// Authentication: Required
// Environment: Development only
//
// Query parameters:
//   - count: Number of records to generate (default: 100, max: 1000)
//   - days: Number of days of history to cover (default: 30, max: 365)
func (h *DevHandler) GenerateSampleData(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	count := getIntParam(c, "count", 100)
	if count < 1 {
		count = 1
	}
	if count > 1000 {
		count = 1000
	}

	days := getIntParam(c, "days", 30)
	if days < 1 {
		days = 1
	}
	if days > 365 {
		days = 365
	}

	endDate := time.Now()
	startDate := endDate.AddDate(0, 0, -days)

	created, err := h.generator.GenerateExpenditures(userID, startDate, endDate, count)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to generate sample data")
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message":         "sample data generated successfully",
		"records_created": created,
	})
}
