package repositories

import (
	"time"

	"budgetbook/internal/models"

	"github.com/google/uuid"
)

// UserRepositoryInterface defines the contract for user repository operations
type UserRepositoryInterface interface {
	Create(user *models.User) error
	GetByID(id uuid.UUID) (*models.User, error)
	GetByUsername(username string) (*models.User, error)
	UpdateLastLogin(userID uuid.UUID) error
	Delete(userID uuid.UUID) error
}

// RefreshTokenRepositoryInterface defines the contract for refresh token repository operations
type RefreshTokenRepositoryInterface interface {
	Create(token *models.RefreshToken) error
	GetByTokenHash(tokenHash string) (*models.RefreshToken, error)
	Revoke(tokenID uuid.UUID) error
	RevokeAllForUser(userID uuid.UUID) error
	DeleteExpired() (int64, error)
}

// CategoryRepositoryInterface defines the contract for the category directory.
// The directory is read-mostly; Create exists for seeding and tests.
type CategoryRepositoryInterface interface {
	Create(category *models.Category) error
	GetByID(id uuid.UUID) (*models.Category, error)
	GetByName(name string) (*models.Category, error)
	List() ([]models.Category, error)
}

// ExpenditureRepositoryInterface defines the contract for expenditure record
// store operations. Every read/write below the create path is owner-scoped:
// the user ID is part of the WHERE clause, never checked after the fact.
type ExpenditureRepositoryInterface interface {
	Create(expenditure *models.Expenditure) error
	GetByIDAndOwner(id, userID uuid.UUID) (*models.Expenditure, error)
	UpdateFields(id, userID uuid.UUID, fields map[string]interface{}) error
	Delete(id, userID uuid.UUID) error
	GetWithFilters(filters models.ExpenditureFilters) ([]models.Expenditure, error)
	GetTotalForPeriod(userID, categoryID uuid.UUID, startDate, endDate time.Time) (int64, error)
}

// BudgetRepositoryInterface defines the contract for budget repository operations
type BudgetRepositoryInterface interface {
	Create(budget *models.Budget) error
	GetByIDAndOwner(id, userID uuid.UUID) (*models.Budget, error)
	GetByOwner(userID uuid.UUID) ([]models.Budget, error)
	UpdateFields(id, userID uuid.UUID, fields map[string]interface{}) error
	Delete(id, userID uuid.UUID) error
}
