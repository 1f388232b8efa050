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

// BudgetHandler handles budget allotment endpoints
type BudgetHandler struct {
	budgetService services.BudgetServiceInterface
}

// NewBudgetHandler creates a new budget handler
func NewBudgetHandler(budgetService services.BudgetServiceInterface) *BudgetHandler {
	return &BudgetHandler{
		budgetService: budgetService,
	}
}

// List handles budget listing
// @Summary List budgets
// @Description List all of the caller's budget allotments ordered by start date
// @Tags Budgets
// @Security BearerAuth
// @Produce json
// @Success 200 {array} dto.BudgetDetailResponse "Budgets"
// @Router /budgets [get]
func (h *BudgetHandler) List(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, apierrors.AuthMissingToken)
	}

	budgets, err := h.budgetService.List(userID)
	if err != nil {
		return SendSystemError(c, err)
	}

	responses := make([]dto.BudgetDetailResponse, 0, len(budgets))
	for i := range budgets {
		responses = append(responses, toBudgetDetail(&budgets[i]))
	}

	return c.JSON(http.StatusOK, responses)
}

// Create handles budget creation
// @Summary Create a budget
// @Description Create a date-ranged budget allotment for one category
// @Tags Budgets
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.CreateBudgetRequest true "Budget details"
// @Success 201 {object} dto.BudgetDetailResponse "Budget created"
// @Failure 404 {object} errors.ErrorResponse "Unknown category - CATEGORY_001"
// @Router /budgets [post]
func (h *BudgetHandler) Create(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, apierrors.AuthMissingToken)
	}

	var req dto.CreateBudgetRequest
	if err := c.Bind(&req); err != nil {
		return SendError(c, apierrors.ValidationGeneral, apierrors.WithDetails("Invalid request body"))
	}

	if err := c.Validate(req); err != nil {
		return err
	}

	budget, err := h.budgetService.Create(userID, &req)
	if err != nil {
		return h.sendBudgetError(c, err)
	}

	return c.JSON(http.StatusCreated, toBudgetDetail(budget))
}

// GetByID handles single-budget retrieval
// @Summary Get a budget
// @Description Retrieve one of the caller's budgets by ID
// @Tags Budgets
// @Security BearerAuth
// @Produce json
// @Param id path string true "Budget ID"
// @Success 200 {object} dto.BudgetDetailResponse "Budget details"
// @Failure 404 {object} errors.ErrorResponse "Not found or owned by another user - BUDGET_001"
// @Router /budgets/{id} [get]
func (h *BudgetHandler) GetByID(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, apierrors.AuthMissingToken)
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return SendError(c, apierrors.ValidationInvalidFormat, apierrors.WithDetails("Invalid budget ID"))
	}

	budget, err := h.budgetService.GetByID(id, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrBudgetNotFound) {
			return SendError(c, apierrors.BudgetNotFound)
		}
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusOK, toBudgetDetail(budget))
}

// Update handles partial budget updates
// @Summary Update a budget
// @Description Apply a partial update to one of the caller's budgets
// @Tags Budgets
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Budget ID"
// @Param request body dto.UpdateBudgetRequest true "Fields to change"
// @Success 200 {object} dto.BudgetDetailResponse "Updated budget"
// @Failure 404 {object} errors.ErrorResponse "BUDGET_001 or CATEGORY_001"
// @Router /budgets/{id} [put]
func (h *BudgetHandler) Update(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, apierrors.AuthMissingToken)
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return SendError(c, apierrors.ValidationInvalidFormat, apierrors.WithDetails("Invalid budget ID"))
	}

	var req dto.UpdateBudgetRequest
	if err := c.Bind(&req); err != nil {
		return SendError(c, apierrors.ValidationGeneral, apierrors.WithDetails("Invalid request body"))
	}

	if err := c.Validate(req); err != nil {
		return err
	}

	budget, err := h.budgetService.Update(id, userID, &req)
	if err != nil {
		return h.sendBudgetError(c, err)
	}

	return c.JSON(http.StatusOK, toBudgetDetail(budget))
}

// Delete handles budget removal
// @Summary Delete a budget
// @Description Remove one of the caller's budgets
// @Tags Budgets
// @Security BearerAuth
// @Produce json
// @Param id path string true "Budget ID"
// @Success 200 {object} SuccessResponse "Budget deleted"
// @Failure 404 {object} errors.ErrorResponse "Not found or owned by another user - BUDGET_001"
// @Router /budgets/{id} [delete]
func (h *BudgetHandler) Delete(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, apierrors.AuthMissingToken)
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return SendError(c, apierrors.ValidationInvalidFormat, apierrors.WithDetails("Invalid budget ID"))
	}

	if err := h.budgetService.Delete(id, userID); err != nil {
		if errors.Is(err, repositories.ErrBudgetNotFound) {
			return SendError(c, apierrors.BudgetNotFound)
		}
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusOK, SuccessResponse{
		Message: "Budget deleted successfully",
	})
}

// Usage handles budget usage reporting
// @Summary Budget usage
// @Description Report countable spending against a budget's allotment inside its date window
// @Tags Budgets
// @Security BearerAuth
// @Produce json
// @Param id path string true "Budget ID"
// @Success 200 {object} dto.BudgetUsageResponse "Usage report"
// @Failure 404 {object} errors.ErrorResponse "Not found or owned by another user - BUDGET_001"
// @Router /budgets/{id}/usage [get]
func (h *BudgetHandler) Usage(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, apierrors.AuthMissingToken)
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return SendError(c, apierrors.ValidationInvalidFormat, apierrors.WithDetails("Invalid budget ID"))
	}

	usage, err := h.budgetService.Usage(id, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrBudgetNotFound) {
			return SendError(c, apierrors.BudgetNotFound)
		}
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusOK, usage)
}

func (h *BudgetHandler) sendBudgetError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, repositories.ErrBudgetNotFound):
		return SendError(c, apierrors.BudgetNotFound)
	case errors.Is(err, services.ErrUnknownCategory):
		return SendError(c, apierrors.CategoryNotFound)
	case errors.Is(err, services.ErrInvalidDate):
		return SendError(c, apierrors.ValidationInvalidDate, apierrors.WithDetails(err.Error()))
	case errors.Is(err, models.ErrInvalidBudgetPeriod):
		return SendError(c, apierrors.BudgetInvalidPeriod)
	case errors.Is(err, models.ErrNonPositiveBudget):
		return SendError(c, apierrors.BudgetInvalidAmount)
	default:
		return SendSystemError(c, err)
	}
}

func toBudgetDetail(b *models.Budget) dto.BudgetDetailResponse {
	return dto.BudgetDetailResponse{
		ID:        b.ID,
		User:      b.User.Username,
		Category:  b.Category.Name,
		Amount:    b.Amount,
		StartDate: b.StartDate.Format(services.DateLayout),
		EndDate:   b.EndDate.Format(services.DateLayout),
		CreatedAt: b.CreatedAt,
		UpdatedAt: b.UpdatedAt,
	}
}
