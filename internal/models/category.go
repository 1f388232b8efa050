package models

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	MaxCategoryNameLength        = 50
	MaxCategoryDescriptionLength = 100
)

var (
	ErrCategoryNameRequired = errors.New("category name is required")
	ErrCategoryNameTooLong  = errors.New("category name too long")
)

// Category is a directory entry mapping a human-readable name to an identifier.
// The directory is read-only at runtime; entries are seeded by migration.
type Category struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Name        string    `gorm:"type:varchar(50);uniqueIndex;not null" json:"name"`
	Description string    `gorm:"type:varchar(100)" json:"description"`

	Expenditures []Expenditure `gorm:"foreignKey:CategoryID" json:"-"`
	Budgets      []Budget      `gorm:"foreignKey:CategoryID" json:"-"`
}

func (c *Category) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return c.Validate()
}

func (c *Category) Validate() error {
	if c.Name == "" {
		return ErrCategoryNameRequired
	}

	if len(c.Name) > MaxCategoryNameLength {
		return ErrCategoryNameTooLong
	}

	if len(c.Description) > MaxCategoryDescriptionLength {
		return errors.New("category description too long")
	}

	return nil
}

func (c *Category) TableName() string {
	return "categories"
}
