package models

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrNonPositiveBudget   = errors.New("budget amount must be positive")
	ErrMissingBudgetPeriod = errors.New("budget start and end dates are required")
	ErrInvalidBudgetPeriod = errors.New("budget start date must not be after end date")
)

// Budget is a date-ranged allotment per category. It shares the expenditure
// record's owner/category shape without the aggregation step.
type Budget struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	UserID     uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	CategoryID uuid.UUID `gorm:"type:uuid;not null;index" json:"category_id"`
	Amount     int64     `gorm:"not null;check:amount > 0" json:"amount"`
	StartDate  time.Time `gorm:"type:date;not null" json:"start_date"`
	EndDate    time.Time `gorm:"type:date;not null" json:"end_date"`
	CreatedAt  time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt  time.Time `gorm:"not null" json:"updated_at"`

	User     User     `gorm:"foreignKey:UserID" json:"-"`
	Category Category `gorm:"foreignKey:CategoryID" json:"-"`
}

func (b *Budget) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}

	now := time.Now()
	if b.CreatedAt.IsZero() {
		b.CreatedAt = now
	}
	if b.UpdatedAt.IsZero() {
		b.UpdatedAt = now
	}

	return b.Validate()
}

func (b *Budget) BeforeUpdate(tx *gorm.DB) error {
	if tx.Statement.Dest != nil {
		if _, ok := tx.Statement.Dest.(map[string]interface{}); ok {
			return nil
		}
	}

	b.UpdatedAt = time.Now()
	return b.Validate()
}

func (b *Budget) Validate() error {
	if b.UserID == uuid.Nil {
		return errors.New("budget owner is required")
	}

	if b.CategoryID == uuid.Nil {
		return errors.New("budget category is required")
	}

	if b.Amount <= 0 {
		return ErrNonPositiveBudget
	}

	if b.StartDate.IsZero() || b.EndDate.IsZero() {
		return ErrMissingBudgetPeriod
	}

	if b.StartDate.After(b.EndDate) {
		return ErrInvalidBudgetPeriod
	}

	return nil
}

func (b *Budget) TableName() string {
	return "budgets"
}
