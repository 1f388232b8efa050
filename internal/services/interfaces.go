package services

import (
	"time"

	"budgetbook/internal/dto"
	"budgetbook/internal/models"

	"github.com/google/uuid"
)

type AuthServiceInterface interface {
	Register(req *dto.RegisterRequest, ipAddress, userAgent string) (*models.User, error)
	Login(req *dto.LoginRequest, ipAddress, userAgent string) (*dto.TokenResponse, error)
	RefreshTokens(refreshToken, ipAddress, userAgent string) (*dto.TokenResponse, error)
	Logout(accessToken, ipAddress, userAgent string) error
}

type TokenServiceInterface interface {
	GenerateAccessToken(user *models.User) (string, time.Time, error)
	GenerateRefreshToken(userID uuid.UUID) (string, time.Time, error)
	ValidateAccessToken(tokenString string) (*models.CustomClaims, error)
	ValidateRefreshToken(tokenString string) (*models.CustomClaims, error)
	ExtractTokenFromHeader(authHeader string) (string, error)
}

type PasswordServiceInterface interface {
	ValidatePassword(password string) error
	HashPassword(password string) (string, error)
	ComparePassword(password, hash string) bool
}

// CategoryServiceInterface resolves between category names used on the wire
// and the directory entries they stand for
type CategoryServiceInterface interface {
	ResolveByName(name string) (*models.Category, error)
	GetByID(id uuid.UUID) (*models.Category, error)
	ListAll() ([]models.Category, error)
}

// ExpenditureServiceInterface defines expenditure record operations. Query is
// the aggregation entry point; the rest are single-record lifecycle operations.
// Every operation is scoped to the calling owner.
type ExpenditureServiceInterface interface {
	Query(userID uuid.UUID, params *dto.ExpenditureQueryParams) (*dto.ExpenditureQueryResult, error)
	Create(userID uuid.UUID, req *dto.CreateExpenditureRequest) (*models.Expenditure, error)
	GetByID(id, userID uuid.UUID) (*models.Expenditure, error)
	Update(id, userID uuid.UUID, req *dto.UpdateExpenditureRequest) (*models.Expenditure, error)
	Delete(id, userID uuid.UUID) error
}

// BudgetServiceInterface defines budget allotment operations
type BudgetServiceInterface interface {
	List(userID uuid.UUID) ([]models.Budget, error)
	Create(userID uuid.UUID, req *dto.CreateBudgetRequest) (*models.Budget, error)
	GetByID(id, userID uuid.UUID) (*models.Budget, error)
	Update(id, userID uuid.UUID, req *dto.UpdateBudgetRequest) (*models.Budget, error)
	Delete(id, userID uuid.UUID) error
	Usage(id, userID uuid.UUID) (*dto.BudgetUsageResponse, error)
}

// SampleDataGeneratorInterface seeds realistic spending records for
// development environments
type SampleDataGeneratorInterface interface {
	GenerateExpenditures(userID uuid.UUID, startDate, endDate time.Time, count int) (int, error)
}

type MetricsRecorderInterface interface {
	IncrementCounter(name string, tags map[string]string)
	RecordProcessingTime(name string, duration time.Duration)
	RecordGauge(name string, value float64, tags map[string]string)
}
