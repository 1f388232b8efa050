package models

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func validBudget() *Budget {
	return &Budget{
		UserID:     uuid.New(),
		CategoryID: uuid.New(),
		Amount:     100000,
		StartDate:  time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC),
		EndDate:    time.Date(2025, 4, 30, 0, 0, 0, 0, time.UTC),
	}
}

func TestBudget_Validate(t *testing.T) {
	assert.NoError(t, validBudget().Validate())
}

func TestBudget_Validate_Amount(t *testing.T) {
	b := validBudget()
	b.Amount = 0
	assert.ErrorIs(t, b.Validate(), ErrNonPositiveBudget)
}

func TestBudget_Validate_MissingPeriod(t *testing.T) {
	b := validBudget()
	b.EndDate = time.Time{}
	assert.ErrorIs(t, b.Validate(), ErrMissingBudgetPeriod)
}

func TestBudget_Validate_InvertedPeriod(t *testing.T) {
	b := validBudget()
	b.StartDate, b.EndDate = b.EndDate, b.StartDate
	assert.ErrorIs(t, b.Validate(), ErrInvalidBudgetPeriod)
}

// A single-day budget is a valid period.
func TestBudget_Validate_SingleDayPeriod(t *testing.T) {
	b := validBudget()
	b.EndDate = b.StartDate
	assert.NoError(t, b.Validate())
}

func TestBudget_TableName(t *testing.T) {
	assert.Equal(t, "budgets", (&Budget{}).TableName())
}
