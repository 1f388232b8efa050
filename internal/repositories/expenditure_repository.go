package repositories

import (
	"errors"
	"fmt"
	"time"

	"budgetbook/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrExpenditureNotFound = errors.New("expenditure not found")
)

// expenditureRepository implements ExpenditureRepositoryInterface
type expenditureRepository struct {
	db *gorm.DB
}

// NewExpenditureRepository creates a new expenditure repository
func NewExpenditureRepository(db *gorm.DB) ExpenditureRepositoryInterface {
	return &expenditureRepository{
		db: db,
	}
}

// Create persists a new expenditure record
func (r *expenditureRepository) Create(expenditure *models.Expenditure) error {
	if err := r.db.Create(expenditure).Error; err != nil {
		return fmt.Errorf("failed to create expenditure: %w", err)
	}
	return nil
}

// GetByIDAndOwner retrieves a single record scoped to its owner. A record
// owned by another user is indistinguishable from an absent one.
func (r *expenditureRepository) GetByIDAndOwner(id, userID uuid.UUID) (*models.Expenditure, error) {
	var expenditure models.Expenditure
	if err := r.db.Preload("Category").Preload("User").
		Where("id = ? AND user_id = ?", id, userID).
		First(&expenditure).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrExpenditureNotFound
		}
		return nil, fmt.Errorf("failed to get expenditure: %w", err)
	}
	return &expenditure, nil
}

// UpdateFields applies a partial update to an owner-scoped record. A map is
// used rather than a model struct so that zero values (include_in_sum=false)
// are written.
func (r *expenditureRepository) UpdateFields(id, userID uuid.UUID, fields map[string]interface{}) error {
	if len(fields) == 0 {
		return nil
	}

	fields["updated_at"] = time.Now()

	result := r.db.Model(&models.Expenditure{}).
		Where("id = ? AND user_id = ?", id, userID).
		Updates(fields)

	if result.Error != nil {
		return fmt.Errorf("failed to update expenditure: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrExpenditureNotFound
	}
	return nil
}

// Delete removes an owner-scoped record. Deletion is immediate; there is no
// soft delete or audit trail.
func (r *expenditureRepository) Delete(id, userID uuid.UUID) error {
	result := r.db.Where("id = ? AND user_id = ?", id, userID).
		Delete(&models.Expenditure{})

	if result.Error != nil {
		return fmt.Errorf("failed to delete expenditure: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrExpenditureNotFound
	}
	return nil
}

// GetWithFilters scans records matching the filter conjunction. The owner and
// date-range clauses are unconditional; category and amount-range clauses are
// added only when set. Results are ordered by expense date then creation time
// so the "store order" of a result set is stable.
func (r *expenditureRepository) GetWithFilters(filters models.ExpenditureFilters) ([]models.Expenditure, error) {
	query := r.db.Preload("Category").
		Where("user_id = ?", filters.UserID).
		Where("expense_date BETWEEN ? AND ?", filters.StartDate, filters.EndDate)

	if filters.SumOnly {
		query = query.Where("include_in_sum = ?", true)
	}
	if filters.CategoryID != nil {
		query = query.Where("category_id = ?", *filters.CategoryID)
	}
	if filters.MinAmount != nil && filters.MaxAmount != nil {
		query = query.Where("amount BETWEEN ? AND ?", *filters.MinAmount, *filters.MaxAmount)
	}

	var expenditures []models.Expenditure
	if err := query.Order("expense_date ASC, created_at ASC").
		Find(&expenditures).Error; err != nil {
		return nil, fmt.Errorf("failed to get filtered expenditures: %w", err)
	}

	return expenditures, nil
}

// GetTotalForPeriod sums the countable spending for one owner and category
// inside an inclusive date window. Used by the budget usage path; the
// aggregation endpoint computes its sums from the scanned records instead so
// list and totals can never diverge.
func (r *expenditureRepository) GetTotalForPeriod(userID, categoryID uuid.UUID, startDate, endDate time.Time) (int64, error) {
	var result struct {
		Total int64
	}

	if err := r.db.Model(&models.Expenditure{}).
		Select("COALESCE(SUM(amount), 0) as total").
		Where("user_id = ? AND category_id = ? AND include_in_sum = ? AND expense_date BETWEEN ? AND ?",
			userID, categoryID, true, startDate, endDate).
		Scan(&result).Error; err != nil {
		return 0, fmt.Errorf("failed to sum expenditures for period: %w", err)
	}

	return result.Total, nil
}
