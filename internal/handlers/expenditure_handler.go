package handlers

import (
	"errors"
	"net/http"

	"budgetbook/internal/dto"
	apierrors "budgetbook/internal/errors"
	"budgetbook/internal/models"
	"budgetbook/internal/repositories"
	"budgetbook/internal/services"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// ExpenditureHandler handles expenditure record endpoints
type ExpenditureHandler struct {
	expenditureService services.ExpenditureServiceInterface
}

// NewExpenditureHandler creates a new expenditure handler
func NewExpenditureHandler(expenditureService services.ExpenditureServiceInterface) *ExpenditureHandler {
	return &ExpenditureHandler{
		expenditureService: expenditureService,
	}
}

// Query handles the filter-and-aggregate endpoint
// @Summary Query expenditures
// @Description List the caller's expenditures inside a date range with per-category sums and a grand total. Optional category and amount-range filters narrow the set; the amount bounds must be given together.
// @Tags Expenditures
// @Security BearerAuth
// @Produce json
// @Param start_date query string true "Range start (YYYY-MM-DD, inclusive)"
// @Param end_date query string true "Range end (YYYY-MM-DD, inclusive)"
// @Param category query string false "Category name filter"
// @Param min_m query int false "Minimum amount (requires max_m)"
// @Param max_m query int false "Maximum amount (requires min_m)"
// @Success 200 {object} dto.ExpenditureQueryResult "Matching records with aggregates"
// @Failure 400 {object} errors.ErrorResponse "Missing or malformed filters - VALIDATION_*"
// @Failure 404 {object} errors.ErrorResponse "No matches - EXPENDITURE_002, or unknown category - CATEGORY_001"
// @Router /expenditures [get]
func (h *ExpenditureHandler) Query(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, apierrors.AuthMissingToken)
	}

	var params dto.ExpenditureQueryParams
	if err := c.Bind(&params); err != nil {
		return SendError(c, apierrors.ValidationGeneral, apierrors.WithDetails("Invalid query parameters"))
	}

	result, err := h.expenditureService.Query(userID, &params)
	if err != nil {
		return h.sendQueryError(c, err)
	}

	return c.JSON(http.StatusOK, result)
}

// Create handles expenditure creation
// @Summary Record an expenditure
// @Description Record a new spending entry for the caller. The category must name an existing directory entry.
// @Tags Expenditures
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.CreateExpenditureRequest true "Expenditure details"
// @Success 201 {object} dto.ExpenditureDetailResponse "Expenditure created"
// @Failure 404 {object} errors.ErrorResponse "Unknown category - CATEGORY_001"
// @Router /expenditures [post]
func (h *ExpenditureHandler) Create(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, apierrors.AuthMissingToken)
	}

	var req dto.CreateExpenditureRequest
	if err := c.Bind(&req); err != nil {
		return SendError(c, apierrors.ValidationGeneral, apierrors.WithDetails("Invalid request body"))
	}

	if err := c.Validate(req); err != nil {
		return err
	}

	expenditure, err := h.expenditureService.Create(userID, &req)
	if err != nil {
		if errors.Is(err, services.ErrUnknownCategory) {
			return SendError(c, apierrors.CategoryNotFound)
		}
		if errors.Is(err, services.ErrInvalidDate) {
			return SendError(c, apierrors.ValidationInvalidDate)
		}
		if errors.Is(err, models.ErrNonPositiveAmount) {
			return SendError(c, apierrors.ExpenditureInvalidAmount)
		}
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusCreated, toExpenditureDetail(expenditure, getUsernameFromContext(c)))
}

// GetByID handles single-record retrieval
// @Summary Get an expenditure
// @Description Retrieve one of the caller's expenditure records by ID
// @Tags Expenditures
// @Security BearerAuth
// @Produce json
// @Param id path string true "Expenditure ID"
// @Success 200 {object} dto.ExpenditureDetailResponse "Expenditure details"
// @Failure 404 {object} errors.ErrorResponse "Not found or owned by another user - EXPENDITURE_001"
// @Router /expenditures/{id} [get]
func (h *ExpenditureHandler) GetByID(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, apierrors.AuthMissingToken)
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return SendError(c, apierrors.ValidationInvalidFormat, apierrors.WithDetails("Invalid expenditure ID"))
	}

	expenditure, err := h.expenditureService.GetByID(id, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrExpenditureNotFound) {
			return SendError(c, apierrors.ExpenditureNotFound)
		}
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusOK, toExpenditureDetail(expenditure, expenditure.User.Username))
}

// Update handles partial record updates
// @Summary Update an expenditure
// @Description Apply a partial update to one of the caller's records. An unknown category leaves the record untouched.
// @Tags Expenditures
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Expenditure ID"
// @Param request body dto.UpdateExpenditureRequest true "Fields to change"
// @Success 200 {object} dto.ExpenditureDetailResponse "Updated expenditure"
// @Failure 404 {object} errors.ErrorResponse "EXPENDITURE_001 or CATEGORY_001"
// @Router /expenditures/{id} [put]
func (h *ExpenditureHandler) Update(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, apierrors.AuthMissingToken)
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return SendError(c, apierrors.ValidationInvalidFormat, apierrors.WithDetails("Invalid expenditure ID"))
	}

	var req dto.UpdateExpenditureRequest
	if err := c.Bind(&req); err != nil {
		return SendError(c, apierrors.ValidationGeneral, apierrors.WithDetails("Invalid request body"))
	}

	if err := c.Validate(req); err != nil {
		return err
	}

	expenditure, err := h.expenditureService.Update(id, userID, &req)
	if err != nil {
		// An absent record and an unknown category are different 404s: the
		// error code tells the client which reference was bad
		if errors.Is(err, repositories.ErrExpenditureNotFound) {
			return SendError(c, apierrors.ExpenditureNotFound)
		}
		if errors.Is(err, services.ErrUnknownCategory) {
			return SendError(c, apierrors.CategoryNotFound)
		}
		if errors.Is(err, services.ErrInvalidDate) {
			return SendError(c, apierrors.ValidationInvalidDate)
		}
		if errors.Is(err, models.ErrNonPositiveAmount) {
			return SendError(c, apierrors.ExpenditureInvalidAmount)
		}
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusOK, toExpenditureDetail(expenditure, expenditure.User.Username))
}

// Delete handles record removal
// @Summary Delete an expenditure
// @Description Remove one of the caller's expenditure records
// @Tags Expenditures
// @Security BearerAuth
// @Produce json
// @Param id path string true "Expenditure ID"
// @Success 200 {object} SuccessResponse "Expenditure deleted"
// @Failure 404 {object} errors.ErrorResponse "Not found or owned by another user - EXPENDITURE_001"
// @Router /expenditures/{id} [delete]
func (h *ExpenditureHandler) Delete(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, apierrors.AuthMissingToken)
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return SendError(c, apierrors.ValidationInvalidFormat, apierrors.WithDetails("Invalid expenditure ID"))
	}

	if err := h.expenditureService.Delete(id, userID); err != nil {
		if errors.Is(err, repositories.ErrExpenditureNotFound) {
			return SendError(c, apierrors.ExpenditureNotFound)
		}
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusOK, SuccessResponse{
		Message: "Expenditure deleted successfully",
	})
}

func (h *ExpenditureHandler) sendQueryError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, services.ErrMissingDateRange):
		return SendError(c, apierrors.ValidationMissingPeriod)
	case errors.Is(err, services.ErrInvalidDate):
		return SendError(c, apierrors.ValidationInvalidDate, apierrors.WithDetails(err.Error()))
	case errors.Is(err, services.ErrHalfOpenAmountRange):
		return SendError(c, apierrors.ValidationOutOfRange, apierrors.WithDetails("min_m and max_m must be provided together"))
	case errors.Is(err, services.ErrInvalidAmountFilter):
		return SendError(c, apierrors.ValidationInvalidFormat, apierrors.WithDetails(err.Error()))
	case errors.Is(err, services.ErrUnknownCategory):
		return SendError(c, apierrors.CategoryNotFound)
	case errors.Is(err, services.ErrNoExpenditures):
		return SendError(c, apierrors.ExpenditureNoResults)
	default:
		return SendSystemError(c, err)
	}
}

func toExpenditureDetail(e *models.Expenditure, username string) dto.ExpenditureDetailResponse {
	return dto.ExpenditureDetailResponse{
		ID:           e.ID,
		User:         username,
		Category:     e.Category.Name,
		Amount:       e.Amount,
		Memo:         e.Memo,
		ExpenseDate:  e.ExpenseDate.Format(services.DateLayout),
		IncludeInSum: e.IncludeInSum,
		CreatedAt:    e.CreatedAt,
		UpdatedAt:    e.UpdatedAt,
	}
}
