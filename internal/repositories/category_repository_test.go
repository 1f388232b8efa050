package repositories

import (
	"testing"

	"budgetbook/internal/database"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
)

func TestCategoryRepository(t *testing.T) {
	suite.Run(t, new(CategoryRepositorySuite))
}

type CategoryRepositorySuite struct {
	suite.Suite
	db   *database.DB
	repo CategoryRepositoryInterface
}

func (s *CategoryRepositorySuite) SetupTest() {
	s.db = database.SetupTestDB(s.T())
	s.repo = NewCategoryRepository(s.db.DB)
}

func (s *CategoryRepositorySuite) TearDownTest() {
	database.CleanupTestDB(s.T(), s.db)
}

func (s *CategoryRepositorySuite) TestGetByName() {
	created := database.CreateTestCategory(s.T(), s.db, "food")

	found, err := s.repo.GetByName("food")
	s.NoError(err)
	s.Equal(created.ID, found.ID)

	_, err = s.repo.GetByName("gambling")
	s.Equal(ErrCategoryNotFound, err)
}

func (s *CategoryRepositorySuite) TestGetByID() {
	created := database.CreateTestCategory(s.T(), s.db, "food")

	found, err := s.repo.GetByID(created.ID)
	s.NoError(err)
	s.Equal("food", found.Name)

	_, err = s.repo.GetByID(uuid.New())
	s.Equal(ErrCategoryNotFound, err)
}

func (s *CategoryRepositorySuite) TestList_OrderedByName() {
	database.CreateTestCategory(s.T(), s.db, "traffic")
	database.CreateTestCategory(s.T(), s.db, "food")
	database.CreateTestCategory(s.T(), s.db, "clothes")

	categories, err := s.repo.List()
	s.Require().NoError(err)
	s.Require().Len(categories, 3)
	s.Equal("clothes", categories[0].Name)
	s.Equal("food", categories[1].Name)
	s.Equal("traffic", categories[2].Name)
}
