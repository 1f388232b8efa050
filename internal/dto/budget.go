package dto

import (
	"time"

	"github.com/google/uuid"
)

// Budget Request DTOs

// CreateBudgetRequest contains the fields for creating a budget allotment
type CreateBudgetRequest struct {
	Amount    int64  `json:"amount" validate:"required,positive_amount"`
	Category  string `json:"category" validate:"required"`
	StartDate string `json:"startDate" validate:"required,expense_date"`
	EndDate   string `json:"endDate" validate:"required,expense_date"`
}

// UpdateBudgetRequest is a partial patch; only non-nil fields are applied
type UpdateBudgetRequest struct {
	Amount    *int64  `json:"amount" validate:"omitempty,positive_amount"`
	Category  *string `json:"category"`
	StartDate *string `json:"startDate" validate:"omitempty,expense_date"`
	EndDate   *string `json:"endDate" validate:"omitempty,expense_date"`
}

// Budget Response DTOs

// BudgetDetailResponse is the full single-budget projection
type BudgetDetailResponse struct {
	ID        uuid.UUID `json:"id"`
	User      string    `json:"user"`
	Category  string    `json:"category"`
	Amount    int64     `json:"amount"`
	StartDate string    `json:"startDate"`
	EndDate   string    `json:"endDate"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BudgetUsageResponse reports spending against a budget's allotment inside
// its date window
type BudgetUsageResponse struct {
	BudgetID    uuid.UUID `json:"budgetId"`
	Category    string    `json:"category"`
	Amount      int64     `json:"amount"`
	Spent       int64     `json:"spent"`
	Remaining   int64     `json:"remaining"`
	Utilization string    `json:"utilization"`
}
