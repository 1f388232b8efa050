package services

import (
	"testing"
	"time"

	"budgetbook/internal/models"
	"budgetbook/internal/repositories/repository_mocks"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
)

type SampleDataGeneratorTestSuite struct {
	suite.Suite
	ctrl            *gomock.Controller
	expenditureRepo *repository_mocks.MockExpenditureRepositoryInterface
	categoryRepo    *repository_mocks.MockCategoryRepositoryInterface
	generator       SampleDataGeneratorInterface

	userID    uuid.UUID
	directory []models.Category
}

func TestSampleDataGeneratorSuite(t *testing.T) {
	suite.Run(t, new(SampleDataGeneratorTestSuite))
}

func (s *SampleDataGeneratorTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.expenditureRepo = repository_mocks.NewMockExpenditureRepositoryInterface(s.ctrl)
	s.categoryRepo = repository_mocks.NewMockCategoryRepositoryInterface(s.ctrl)
	s.generator = NewSampleDataGenerator(s.expenditureRepo, s.categoryRepo)

	s.userID = uuid.New()
	s.directory = []models.Category{
		{ID: uuid.New(), Name: "food"},
		{ID: uuid.New(), Name: "traffic"},
		{ID: uuid.New(), Name: "etc"},
	}
}

func (s *SampleDataGeneratorTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *SampleDataGeneratorTestSuite) TestGenerateExpenditures() {
	start := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC)
	knownCategoryIDs := map[uuid.UUID]string{}
	for _, category := range s.directory {
		knownCategoryIDs[category.ID] = category.Name
	}

	s.categoryRepo.EXPECT().List().Return(s.directory, nil).Times(1)
	s.expenditureRepo.EXPECT().Create(gomock.Any()).DoAndReturn(
		func(expenditure *models.Expenditure) error {
			s.Equal(s.userID, expenditure.UserID)
			s.Contains(knownCategoryIDs, expenditure.CategoryID)
			s.Positive(expenditure.Amount)
			s.LessOrEqual(len(expenditure.Memo), models.MaxMemoLength)
			s.False(expenditure.ExpenseDate.Before(start))
			s.False(expenditure.ExpenseDate.After(end))

			band, ok := amountBands[knownCategoryIDs[expenditure.CategoryID]]
			s.Require().True(ok)
			s.GreaterOrEqual(expenditure.Amount, band[0])
			s.LessOrEqual(expenditure.Amount, band[1])
			return nil
		}).Times(50)

	created, err := s.generator.GenerateExpenditures(s.userID, start, end, 50)
	s.Require().NoError(err)
	s.Equal(50, created)
}

func (s *SampleDataGeneratorTestSuite) TestGenerateExpenditures_ZeroCount() {
	created, err := s.generator.GenerateExpenditures(s.userID, time.Now(), time.Now(), 0)
	s.NoError(err)
	s.Zero(created)
}

func (s *SampleDataGeneratorTestSuite) TestGenerateExpenditures_InvertedWindow() {
	start := time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)

	created, err := s.generator.GenerateExpenditures(s.userID, start, end, 10)
	s.Error(err)
	s.Zero(created)
}

func (s *SampleDataGeneratorTestSuite) TestGenerateExpenditures_EmptyDirectory() {
	s.categoryRepo.EXPECT().List().Return([]models.Category{}, nil).Times(1)

	created, err := s.generator.GenerateExpenditures(s.userID, time.Now(), time.Now(), 10)
	s.Error(err)
	s.Zero(created)
}
