package services

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strconv"
	"time"

	"budgetbook/internal/dto"
	"budgetbook/internal/models"
	"budgetbook/internal/repositories"

	"github.com/google/uuid"
)

// DateLayout is the calendar-date wire format used everywhere dates cross the
// API boundary.
const DateLayout = "2006-01-02"

var (
	ErrMissingDateRange    = errors.New("start and end dates are both required")
	ErrInvalidDate         = errors.New("invalid date")
	ErrInvalidAmountFilter = errors.New("invalid amount filter")
	ErrHalfOpenAmountRange = errors.New("min and max amounts must be provided together")
	ErrNoExpenditures      = errors.New("no expenditures matched the filters")
)

// ExpenditureService implements the record lifecycle and the query-and-sum
// pipeline over a user's spending records
type ExpenditureService struct {
	expenditureRepo repositories.ExpenditureRepositoryInterface
	categoryService CategoryServiceInterface
	metrics         MetricsRecorderInterface
	logger          *slog.Logger
}

// NewExpenditureService creates a new expenditure service
func NewExpenditureService(
	expenditureRepo repositories.ExpenditureRepositoryInterface,
	categoryService CategoryServiceInterface,
	metrics MetricsRecorderInterface,
	logger *slog.Logger,
) ExpenditureServiceInterface {
	return &ExpenditureService{
		expenditureRepo: expenditureRepo,
		categoryService: categoryService,
		metrics:         metrics,
		logger:          logger,
	}
}

// Query runs the filter conjunction for one owner and aggregates the result.
// The record list, the per-category sums, and the grand total all come from a
// single scan, so the three sections of the result can never disagree.
func (s *ExpenditureService) Query(userID uuid.UUID, params *dto.ExpenditureQueryParams) (*dto.ExpenditureQueryResult, error) {
	start := time.Now()

	filters, err := s.buildFilters(userID, params)
	if err != nil {
		s.recordQuery("rejected", start)
		return nil, err
	}

	expenditures, err := s.expenditureRepo.GetWithFilters(*filters)
	if err != nil {
		s.recordQuery("error", start)
		return nil, fmt.Errorf("failed to query expenditures: %w", err)
	}

	if len(expenditures) == 0 {
		s.recordQuery("empty", start)
		return nil, ErrNoExpenditures
	}

	result := s.aggregate(expenditures)

	s.recordQuery("success", start)
	s.logger.Debug("expenditure query completed",
		"user_id", userID,
		"records", len(result.ExpenseList),
		"total", result.TotalSum[0])

	return result, nil
}

// Create records a new expenditure for the owner. The category name is
// resolved before anything is written; an unknown name persists nothing.
func (s *ExpenditureService) Create(userID uuid.UUID, req *dto.CreateExpenditureRequest) (*models.Expenditure, error) {
	category, err := s.categoryService.ResolveByName(req.Category)
	if err != nil {
		return nil, err
	}

	expenseDate, err := time.Parse(DateLayout, req.ExpenseDate)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidDate, req.ExpenseDate)
	}

	// Records count toward totals unless the caller opts out
	includeInSum := true
	if req.IncludeInSum != nil {
		includeInSum = *req.IncludeInSum
	}

	expenditure := &models.Expenditure{
		UserID:       userID,
		CategoryID:   category.ID,
		Amount:       req.Amount,
		Memo:         req.Memo,
		ExpenseDate:  expenseDate,
		IncludeInSum: includeInSum,
	}

	if err := s.expenditureRepo.Create(expenditure); err != nil {
		return nil, fmt.Errorf("failed to create expenditure: %w", err)
	}
	expenditure.Category = *category

	if s.metrics != nil {
		s.metrics.IncrementCounter("expenditure_created", nil)
	}

	return expenditure, nil
}

// GetByID retrieves a single owner-scoped record
func (s *ExpenditureService) GetByID(id, userID uuid.UUID) (*models.Expenditure, error) {
	return s.expenditureRepo.GetByIDAndOwner(id, userID)
}

// Update applies a partial patch to an owner-scoped record. The category, if
// present, is resolved before any field is written so a bad name cannot leave
// a half-applied patch behind.
func (s *ExpenditureService) Update(id, userID uuid.UUID, req *dto.UpdateExpenditureRequest) (*models.Expenditure, error) {
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
	if req.ExpenseDate != nil {
		expenseDate, err := time.Parse(DateLayout, *req.ExpenseDate)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", ErrInvalidDate, *req.ExpenseDate)
		}
		fields["expense_date"] = expenseDate
	}
	if req.Memo != nil {
		fields["memo"] = *req.Memo
	}
	if req.IncludeInSum != nil {
		fields["include_in_sum"] = *req.IncludeInSum
	}

	if len(fields) > 0 {
		if err := s.expenditureRepo.UpdateFields(id, userID, fields); err != nil {
			return nil, err
		}
	}

	return s.expenditureRepo.GetByIDAndOwner(id, userID)
}

// Delete removes an owner-scoped record
func (s *ExpenditureService) Delete(id, userID uuid.UUID) error {
	return s.expenditureRepo.Delete(id, userID)
}

// buildFilters validates and translates query parameters into a filter set.
// The date range is mandatory; the category and amount bounds are optional,
// but the two amount bounds must be given together.
func (s *ExpenditureService) buildFilters(userID uuid.UUID, params *dto.ExpenditureQueryParams) (*models.ExpenditureFilters, error) {
	if params.StartDate == "" || params.EndDate == "" {
		return nil, ErrMissingDateRange
	}

	startDate, err := time.Parse(DateLayout, params.StartDate)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidDate, params.StartDate)
	}
	endDate, err := time.Parse(DateLayout, params.EndDate)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidDate, params.EndDate)
	}

	filters := &models.ExpenditureFilters{
		UserID:    userID,
		StartDate: startDate,
		EndDate:   endDate,
		SumOnly:   true,
	}

	if params.Category != "" {
		category, err := s.categoryService.ResolveByName(params.Category)
		if err != nil {
			return nil, err
		}
		filters.CategoryID = &category.ID
	}

	if (params.MinAmount == "") != (params.MaxAmount == "") {
		return nil, ErrHalfOpenAmountRange
	}
	if params.MinAmount != "" {
		minAmount, err := strconv.ParseInt(params.MinAmount, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", ErrInvalidAmountFilter, params.MinAmount)
		}
		maxAmount, err := strconv.ParseInt(params.MaxAmount, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", ErrInvalidAmountFilter, params.MaxAmount)
		}
		filters.MinAmount = &minAmount
		filters.MaxAmount = &maxAmount
	}

	return filters, nil
}

// aggregate folds one scan into the three result sections in a single pass
func (s *ExpenditureService) aggregate(expenditures []models.Expenditure) *dto.ExpenditureQueryResult {
	items := make([]dto.ExpenditureListItem, 0, len(expenditures))
	sums := make(map[uuid.UUID]int64)
	var total int64

	for _, e := range expenditures {
		items = append(items, dto.ExpenditureListItem{
			ID:          e.ID,
			Category:    e.Category.Name,
			Amount:      e.Amount,
			ExpenseDate: e.ExpenseDate.Format(DateLayout),
		})
		sums[e.CategoryID] += e.Amount
		total += e.Amount
	}

	sumCategory := make([]models.CategoryAggregate, 0, len(sums))
	for categoryID, categoryTotal := range sums {
		sumCategory = append(sumCategory, models.CategoryAggregate{
			CategoryID: categoryID,
			Total:      categoryTotal,
		})
	}
	sort.Slice(sumCategory, func(i, j int) bool {
		return bytes.Compare(sumCategory[i].CategoryID[:], sumCategory[j].CategoryID[:]) < 0
	})

	return &dto.ExpenditureQueryResult{
		ExpenseList: items,
		SumCategory: sumCategory,
		TotalSum:    []int64{total},
	}
}

func (s *ExpenditureService) recordQuery(status string, start time.Time) {
	if s.metrics == nil {
		return
	}
	s.metrics.IncrementCounter("expenditure_query", map[string]string{"status": status})
	s.metrics.RecordProcessingTime("expenditure_query", time.Since(start))
}
