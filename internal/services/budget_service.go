package services

import (
	"fmt"
	"log/slog"
	"time"

	"budgetbook/internal/dto"
	"budgetbook/internal/models"
	"budgetbook/internal/repositories"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BudgetService implements budget allotment lifecycle and usage reporting
type BudgetService struct {
	budgetRepo      repositories.BudgetRepositoryInterface
	expenditureRepo repositories.ExpenditureRepositoryInterface
	categoryService CategoryServiceInterface
	metrics         MetricsRecorderInterface
	logger          *slog.Logger
}

// NewBudgetService creates a new budget service
func NewBudgetService(
	budgetRepo repositories.BudgetRepositoryInterface,
	expenditureRepo repositories.ExpenditureRepositoryInterface,
	categoryService CategoryServiceInterface,
	metrics MetricsRecorderInterface,
	logger *slog.Logger,
) BudgetServiceInterface {
	return &BudgetService{
		budgetRepo:      budgetRepo,
		expenditureRepo: expenditureRepo,
		categoryService: categoryService,
		metrics:         metrics,
		logger:          logger,
	}
}

// List returns all budgets owned by the caller
func (s *BudgetService) List(userID uuid.UUID) ([]models.Budget, error) {
	return s.budgetRepo.GetByOwner(userID)
}

// Create records a new budget allotment for the owner
func (s *BudgetService) Create(userID uuid.UUID, req *dto.CreateBudgetRequest) (*models.Budget, error) {
	category, err := s.categoryService.ResolveByName(req.Category)
	if err != nil {
		return nil, err
	}

	startDate, err := time.Parse(DateLayout, req.StartDate)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidDate, req.StartDate)
	}
	endDate, err := time.Parse(DateLayout, req.EndDate)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidDate, req.EndDate)
	}
	if startDate.After(endDate) {
		return nil, models.ErrInvalidBudgetPeriod
	}

	budget := &models.Budget{
		UserID:     userID,
		CategoryID: category.ID,
		Amount:     req.Amount,
		StartDate:  startDate,
		EndDate:    endDate,
	}

	if err := s.budgetRepo.Create(budget); err != nil {
		return nil, fmt.Errorf("failed to create budget: %w", err)
	}

	// Re-read so the owner and category associations are populated
	return s.budgetRepo.GetByIDAndOwner(budget.ID, userID)
}

// GetByID retrieves a single owner-scoped budget
func (s *BudgetService) GetByID(id, userID uuid.UUID) (*models.Budget, error) {
	return s.budgetRepo.GetByIDAndOwner(id, userID)
}

// Update applies a partial patch to an owner-scoped budget. The resulting
// period must remain valid, so date changes are checked against the stored
// budget before anything is written.
func (s *BudgetService) Update(id, userID uuid.UUID, req *dto.UpdateBudgetRequest) (*models.Budget, error) {
	existing, err := s.budgetRepo.GetByIDAndOwner(id, userID)
	if err != nil {
		return nil, err
	}

	fields := map[string]interface{}{}

	if req.Category != nil {
		category, err := s.categoryService.ResolveByName(*req.Category)
		if err != nil {
			return nil, err
		}
		fields["category_id"] = category.ID
	}
	if req.Amount != nil {
		fields["amount"] = *req.Amount
	}

	startDate := existing.StartDate
	endDate := existing.EndDate
	if req.StartDate != nil {
		startDate, err = time.Parse(DateLayout, *req.StartDate)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", ErrInvalidDate, *req.StartDate)
		}
		fields["start_date"] = startDate
	}
	if req.EndDate != nil {
		endDate, err = time.Parse(DateLayout, *req.EndDate)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", ErrInvalidDate, *req.EndDate)
		}
		fields["end_date"] = endDate
	}
	if startDate.After(endDate) {
		return nil, models.ErrInvalidBudgetPeriod
	}

	if len(fields) > 0 {
		if err := s.budgetRepo.UpdateFields(id, userID, fields); err != nil {
			return nil, err
		}
	}

	return s.budgetRepo.GetByIDAndOwner(id, userID)
}

// Delete removes an owner-scoped budget
func (s *BudgetService) Delete(id, userID uuid.UUID) error {
	return s.budgetRepo.Delete(id, userID)
}

// Usage reports countable spending against a budget's allotment inside its
// date window. Utilization is a percentage with one decimal place; exact
// division is done in decimal space to avoid float drift on display.
func (s *BudgetService) Usage(id, userID uuid.UUID) (*dto.BudgetUsageResponse, error) {
	budget, err := s.budgetRepo.GetByIDAndOwner(id, userID)
	if err != nil {
		return nil, err
	}

	spent, err := s.expenditureRepo.GetTotalForPeriod(userID, budget.CategoryID, budget.StartDate, budget.EndDate)
	if err != nil {
		return nil, fmt.Errorf("failed to compute budget usage: %w", err)
	}

	utilization := decimal.NewFromInt(spent).
		Div(decimal.NewFromInt(budget.Amount)).
		Mul(decimal.NewFromInt(100)).
		Round(1)

	if s.metrics != nil {
		s.metrics.IncrementCounter("budget_usage_request", nil)
	}

	return &dto.BudgetUsageResponse{
		BudgetID:    budget.ID,
		Category:    budget.Category.Name,
		Amount:      budget.Amount,
		Spent:       spent,
		Remaining:   budget.Amount - spent,
		Utilization: utilization.String() + "%",
	}, nil
}
