package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"budgetbook/internal/dto"
	"budgetbook/internal/models"
	"budgetbook/internal/services/service_mocks"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/suite"
)

// CategoryHandlerTestSuite is the test suite for CategoryHandler
type CategoryHandlerTestSuite struct {
	suite.Suite
	ctrl        *gomock.Controller
	mockService *service_mocks.MockCategoryServiceInterface
}

func (s *CategoryHandlerTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.mockService = service_mocks.NewMockCategoryServiceInterface(s.ctrl)
}

func (s *CategoryHandlerTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func TestCategoryHandlerSuite(t *testing.T) {
	suite.Run(t, new(CategoryHandlerTestSuite))
}

// The directory endpoint needs no user in context: it is public data.
func (s *CategoryHandlerTestSuite) TestList_Success() {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/categories", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	categories := []models.Category{
		{ID: uuid.New(), Name: "food", Description: "Meals, groceries, and snacks"},
		{ID: uuid.New(), Name: "traffic", Description: "Transit fares and fuel"},
	}

	s.mockService.EXPECT().
		ListAll().
		Return(categories, nil)

	handler := NewCategoryHandler(s.mockService)
	err := handler.List(c)

	s.NoError(err)
	s.Equal(http.StatusOK, rec.Code)

	var response []dto.CategoryResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &response))
	s.Require().Len(response, 2)
	s.Equal("food", response[0].Name)
	s.Equal("traffic", response[1].Name)
}

func (s *CategoryHandlerTestSuite) TestList_ServiceError() {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/categories", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	s.mockService.EXPECT().
		ListAll().
		Return(nil, errors.New("database connection lost"))

	handler := NewCategoryHandler(s.mockService)
	err := handler.List(c)

	s.NoError(err)
	s.Equal(http.StatusInternalServerError, rec.Code)
}
