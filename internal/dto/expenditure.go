package dto

import (
	"time"

	"budgetbook/internal/models"

	"github.com/google/uuid"
)

// Expenditure Request DTOs

// CreateExpenditureRequest contains the fields for recording an expenditure.
// Amount, category, and expenseDate are jointly mandatory.
type CreateExpenditureRequest struct {
	Amount       int64  `json:"amount" validate:"required,positive_amount"`
	Category     string `json:"category" validate:"required"`
	ExpenseDate  string `json:"expenseDate" validate:"required,expense_date"`
	Memo         string `json:"memo" validate:"omitempty,max=100"`
	IncludeInSum *bool  `json:"includeInSum"`
}

// UpdateExpenditureRequest is a partial patch; only non-nil fields are applied
type UpdateExpenditureRequest struct {
	Amount       *int64  `json:"amount" validate:"omitempty,positive_amount"`
	Category     *string `json:"category"`
	ExpenseDate  *string `json:"expenseDate" validate:"omitempty,expense_date"`
	Memo         *string `json:"memo" validate:"omitempty,max=100"`
	IncludeInSum *bool   `json:"includeInSum"`
}

// ExpenditureQueryParams are the query-string filters for the aggregation
// endpoint. The owner is never part of these: it is injected from the
// authenticated context.
type ExpenditureQueryParams struct {
	StartDate string `query:"start_date"`
	EndDate   string `query:"end_date"`
	Category  string `query:"category"`
	MinAmount string `query:"min_m"`
	MaxAmount string `query:"max_m"`
}

// Expenditure Response DTOs

// ExpenditureDetailResponse is the full single-record projection
type ExpenditureDetailResponse struct {
	ID           uuid.UUID `json:"id"`
	User         string    `json:"user"`
	Category     string    `json:"category"`
	Amount       int64     `json:"amount"`
	Memo         string    `json:"memo,omitempty"`
	ExpenseDate  string    `json:"expenseDate"`
	IncludeInSum bool      `json:"includeInSum"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// ExpenditureListItem is the compact projection used inside query results
type ExpenditureListItem struct {
	ID          uuid.UUID `json:"id"`
	Category    string    `json:"category"`
	Amount      int64     `json:"money"`
	ExpenseDate string    `json:"expense_date"`
}

// ExpenditureQueryResult is the aggregation response. The record list, the
// per-category sums, and the grand total are all computed from the same
// filtered set. total_sum keeps the single-element array shape of the
// original client contract.
type ExpenditureQueryResult struct {
	ExpenseList []ExpenditureListItem      `json:"expense_list"`
	SumCategory []models.CategoryAggregate `json:"sum_category"`
	TotalSum    []int64                    `json:"total_sum"`
}
