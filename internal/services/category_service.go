package services

import (
	"errors"
	"fmt"

	"budgetbook/internal/models"
	"budgetbook/internal/repositories"

	"github.com/google/uuid"
)

var (
	ErrUnknownCategory = errors.New("unknown category")
)

// CategoryService resolves category names against the seeded directory
type CategoryService struct {
	categoryRepo repositories.CategoryRepositoryInterface
}

// NewCategoryService creates a new category service
func NewCategoryService(categoryRepo repositories.CategoryRepositoryInterface) CategoryServiceInterface {
	return &CategoryService{
		categoryRepo: categoryRepo,
	}
}

// ResolveByName maps a wire-level category name to its directory entry
func (s *CategoryService) ResolveByName(name string) (*models.Category, error) {
	category, err := s.categoryRepo.GetByName(name)
	if err != nil {
		if errors.Is(err, repositories.ErrCategoryNotFound) {
			return nil, ErrUnknownCategory
		}
		return nil, fmt.Errorf("failed to resolve category: %w", err)
	}
	return category, nil
}

// GetByID retrieves a single directory entry
func (s *CategoryService) GetByID(id uuid.UUID) (*models.Category, error) {
	category, err := s.categoryRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrCategoryNotFound) {
			return nil, ErrUnknownCategory
		}
		return nil, fmt.Errorf("failed to get category: %w", err)
	}
	return category, nil
}

// ListAll returns the whole directory ordered by name
func (s *CategoryService) ListAll() ([]models.Category, error) {
	categories, err := s.categoryRepo.List()
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	return categories, nil
}
