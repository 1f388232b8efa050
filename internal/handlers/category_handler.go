package handlers

import (
	"net/http"

	"budgetbook/internal/dto"
	"budgetbook/internal/services"

	"github.com/labstack/echo/v4"
)

// CategoryHandler handles category directory endpoints
type CategoryHandler struct {
	categoryService services.CategoryServiceInterface
}

// NewCategoryHandler creates a new category handler
func NewCategoryHandler(categoryService services.CategoryServiceInterface) *CategoryHandler {
	return &CategoryHandler{
		categoryService: categoryService,
	}
}

// List handles directory listing. The directory is shared by all users and
// requires no authentication.
// @Summary List categories
// @Description List all spending categories ordered by name
// @Tags Categories
// @Produce json
// @Success 200 {array} dto.CategoryResponse "Categories"
// @Router /categories [get]
func (h *CategoryHandler) List(c echo.Context) error {
	categories, err := h.categoryService.ListAll()
	if err != nil {
		return SendSystemError(c, err)
	}

	responses := make([]dto.CategoryResponse, 0, len(categories))
	for _, category := range categories {
		responses = append(responses, dto.CategoryResponse{
			ID:          category.ID,
			Name:        category.Name,
			Description: category.Description,
		})
	}

	return c.JSON(http.StatusOK, responses)
}
