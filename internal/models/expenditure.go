package models

import (
	"errors"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	MaxMemoLength = 100
)

var (
	ErrNonPositiveAmount  = errors.New("expenditure amount must be positive")
	ErrMissingExpenseDate = errors.New("expense date is required")
	ErrMissingOwner       = errors.New("expenditure owner is required")
	ErrMissingCategory    = errors.New("expenditure category is required")
	ErrMemoTooLong        = errors.New("expenditure memo too long")
)

// Expenditure is a single spending record. It belongs to exactly one owner
// and one category for its whole lifetime; the owner is set at creation and
// never changes.
type Expenditure struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	UserID     uuid.UUID `gorm:"type:uuid;not null;index:idx_expenditures_user_date,priority:1" json:"user_id"`
	CategoryID uuid.UUID `gorm:"type:uuid;not null;index" json:"category_id"`
	Amount     int64     `gorm:"not null;check:amount > 0" json:"amount"`
	Memo       string    `gorm:"type:varchar(100)" json:"memo,omitempty"`
	// ExpenseDate is a calendar date; the time component is always midnight UTC.
	ExpenseDate time.Time `gorm:"type:date;not null;index:idx_expenditures_user_date,priority:2" json:"expense_date"`
	// IncludeInSum excludes the record from aggregate totals when false while
	// keeping it individually retrievable. No gorm default tag: a false value
	// must survive the INSERT.
	IncludeInSum bool      `gorm:"not null" json:"include_in_sum"`
	CreatedAt    time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt    time.Time `gorm:"not null" json:"updated_at"`

	User     User     `gorm:"foreignKey:UserID" json:"-"`
	Category Category `gorm:"foreignKey:CategoryID" json:"-"`
}

func (e *Expenditure) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}

	now := time.Now()
	if e.CreatedAt.IsZero() {
		e.CreatedAt = now
	}
	if e.UpdatedAt.IsZero() {
		e.UpdatedAt = now
	}

	return e.Validate()
}

func (e *Expenditure) BeforeUpdate(tx *gorm.DB) error {
	if tx.Statement.Dest != nil {
		if _, ok := tx.Statement.Dest.(map[string]interface{}); ok {
			return nil
		}
	}

	e.UpdatedAt = time.Now()
	return e.Validate()
}

func (e *Expenditure) Validate() error {
	if e.UserID == uuid.Nil {
		return ErrMissingOwner
	}

	if e.CategoryID == uuid.Nil {
		return ErrMissingCategory
	}

	if e.Amount <= 0 {
		return ErrNonPositiveAmount
	}

	if e.ExpenseDate.IsZero() {
		return ErrMissingExpenseDate
	}

	// Counted in runes to match both the request validator and the
	// varchar(100) column; a multibyte memo is not shorter than it looks
	if utf8.RuneCountInString(e.Memo) > MaxMemoLength {
		return ErrMemoTooLong
	}

	return nil
}

func (e *Expenditure) TableName() string {
	return "expenditures"
}
