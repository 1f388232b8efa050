package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"budgetbook/internal/dto"
	"budgetbook/internal/models"
	"budgetbook/internal/repositories"
	"budgetbook/internal/services"
	"budgetbook/internal/services/service_mocks"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/suite"
)

// BudgetHandlerTestSuite is the test suite for BudgetHandler
type BudgetHandlerTestSuite struct {
	suite.Suite
	ctrl        *gomock.Controller
	mockService *service_mocks.MockBudgetServiceInterface
}

func (s *BudgetHandlerTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.mockService = service_mocks.NewMockBudgetServiceInterface(s.ctrl)
}

func (s *BudgetHandlerTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func TestBudgetHandlerSuite(t *testing.T) {
	suite.Run(t, new(BudgetHandlerTestSuite))
}

func (s *BudgetHandlerTestSuite) newContext(method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = NewValidator()

	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func (s *BudgetHandlerTestSuite) decodeError(rec *httptest.ResponseRecorder) ErrorResponse {
	var response ErrorResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &response))
	return response
}

func (s *BudgetHandlerTestSuite) newBudget(userID uuid.UUID) *models.Budget {
	start, _ := time.Parse("2006-01-02", "2025-04-01")
	end, _ := time.Parse("2006-01-02", "2025-04-30")
	return &models.Budget{
		ID:         uuid.New(),
		UserID:     userID,
		User:       models.User{Username: "spender"},
		Category:   models.Category{Name: "food"},
		Amount:     100000,
		StartDate:  start,
		EndDate:    end,
		CreatedAt:  time.Now(),
		UpdatedAt:  time.Now(),
	}
}

func (s *BudgetHandlerTestSuite) TestList_Success() {
	userID := uuid.New()

	c, rec := s.newContext(http.MethodGet, "/api/v1/budgets", "")
	c.Set("user_id", userID)

	budget := s.newBudget(userID)
	s.mockService.EXPECT().
		List(userID).
		Return([]models.Budget{*budget}, nil)

	handler := NewBudgetHandler(s.mockService)
	err := handler.List(c)

	s.NoError(err)
	s.Equal(http.StatusOK, rec.Code)

	var response []dto.BudgetDetailResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &response))
	s.Require().Len(response, 1)
	s.Equal("food", response[0].Category)
	s.Equal("2025-04-01", response[0].StartDate)
}

func (s *BudgetHandlerTestSuite) TestList_Empty() {
	userID := uuid.New()

	c, rec := s.newContext(http.MethodGet, "/api/v1/budgets", "")
	c.Set("user_id", userID)

	s.mockService.EXPECT().
		List(userID).
		Return([]models.Budget{}, nil)

	handler := NewBudgetHandler(s.mockService)
	err := handler.List(c)

	s.NoError(err)
	s.Equal(http.StatusOK, rec.Code)
	// An empty list is a 200 with an empty array, never a 404
	s.Equal("[]\n", rec.Body.String())
}

func (s *BudgetHandlerTestSuite) TestCreate_Success() {
	userID := uuid.New()

	body := `{"amount": 100000, "category": "food", "startDate": "2025-04-01", "endDate": "2025-04-30"}`
	c, rec := s.newContext(http.MethodPost, "/api/v1/budgets", body)
	c.Set("user_id", userID)

	budget := s.newBudget(userID)
	s.mockService.EXPECT().
		Create(userID, gomock.Any()).
		DoAndReturn(func(_ uuid.UUID, req *dto.CreateBudgetRequest) (*models.Budget, error) {
			s.Equal(int64(100000), req.Amount)
			s.Equal("food", req.Category)
			return budget, nil
		})

	handler := NewBudgetHandler(s.mockService)
	err := handler.Create(c)

	s.NoError(err)
	s.Equal(http.StatusCreated, rec.Code)

	var response dto.BudgetDetailResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &response))
	s.Equal(budget.ID, response.ID)
	s.Equal("spender", response.User)
}

func (s *BudgetHandlerTestSuite) TestCreate_InvalidPeriod() {
	userID := uuid.New()

	body := `{"amount": 100000, "category": "food", "startDate": "2025-04-30", "endDate": "2025-04-01"}`
	c, rec := s.newContext(http.MethodPost, "/api/v1/budgets", body)
	c.Set("user_id", userID)

	s.mockService.EXPECT().
		Create(userID, gomock.Any()).
		Return(nil, models.ErrInvalidBudgetPeriod)

	handler := NewBudgetHandler(s.mockService)
	err := handler.Create(c)

	s.NoError(err)
	s.Equal(http.StatusBadRequest, rec.Code)
	s.Equal("BUDGET_003", s.decodeError(rec).Error.Code)
}

func (s *BudgetHandlerTestSuite) TestCreate_UnknownCategory() {
	userID := uuid.New()

	body := `{"amount": 100000, "category": "gambling", "startDate": "2025-04-01", "endDate": "2025-04-30"}`
	c, rec := s.newContext(http.MethodPost, "/api/v1/budgets", body)
	c.Set("user_id", userID)

	s.mockService.EXPECT().
		Create(userID, gomock.Any()).
		Return(nil, services.ErrUnknownCategory)

	handler := NewBudgetHandler(s.mockService)
	err := handler.Create(c)

	s.NoError(err)
	s.Equal(http.StatusNotFound, rec.Code)
	s.Equal("CATEGORY_001", s.decodeError(rec).Error.Code)
}

func (s *BudgetHandlerTestSuite) TestGetByID_NotFound() {
	userID := uuid.New()
	budgetID := uuid.New()

	c, rec := s.newContext(http.MethodGet, "/api/v1/budgets/"+budgetID.String(), "")
	c.SetParamNames("id")
	c.SetParamValues(budgetID.String())
	c.Set("user_id", userID)

	s.mockService.EXPECT().
		GetByID(budgetID, userID).
		Return(nil, repositories.ErrBudgetNotFound)

	handler := NewBudgetHandler(s.mockService)
	err := handler.GetByID(c)

	s.NoError(err)
	s.Equal(http.StatusNotFound, rec.Code)
	s.Equal("BUDGET_001", s.decodeError(rec).Error.Code)
}

func (s *BudgetHandlerTestSuite) TestUpdate_Success() {
	userID := uuid.New()
	budgetID := uuid.New()

	body := `{"amount": 150000}`
	c, rec := s.newContext(http.MethodPut, "/api/v1/budgets/"+budgetID.String(), body)
	c.SetParamNames("id")
	c.SetParamValues(budgetID.String())
	c.Set("user_id", userID)

	budget := s.newBudget(userID)
	budget.ID = budgetID
	budget.Amount = 150000

	s.mockService.EXPECT().
		Update(budgetID, userID, gomock.Any()).
		DoAndReturn(func(_, _ uuid.UUID, req *dto.UpdateBudgetRequest) (*models.Budget, error) {
			s.Require().NotNil(req.Amount)
			s.Equal(int64(150000), *req.Amount)
			s.Nil(req.StartDate)
			return budget, nil
		})

	handler := NewBudgetHandler(s.mockService)
	err := handler.Update(c)

	s.NoError(err)
	s.Equal(http.StatusOK, rec.Code)

	var response dto.BudgetDetailResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &response))
	s.Equal(int64(150000), response.Amount)
}

// An allotment the store refuses for its amount maps to BUDGET_002.
func (s *BudgetHandlerTestSuite) TestUpdate_RejectedAmount() {
	userID := uuid.New()
	budgetID := uuid.New()

	body := `{"amount": 150000}`
	c, rec := s.newContext(http.MethodPut, "/api/v1/budgets/"+budgetID.String(), body)
	c.SetParamNames("id")
	c.SetParamValues(budgetID.String())
	c.Set("user_id", userID)

	s.mockService.EXPECT().
		Update(budgetID, userID, gomock.Any()).
		Return(nil, models.ErrNonPositiveBudget)

	handler := NewBudgetHandler(s.mockService)
	err := handler.Update(c)

	s.NoError(err)
	s.Equal(http.StatusBadRequest, rec.Code)
	s.Equal("BUDGET_002", s.decodeError(rec).Error.Code)
}

func (s *BudgetHandlerTestSuite) TestDelete_Success() {
	userID := uuid.New()
	budgetID := uuid.New()

	c, rec := s.newContext(http.MethodDelete, "/api/v1/budgets/"+budgetID.String(), "")
	c.SetParamNames("id")
	c.SetParamValues(budgetID.String())
	c.Set("user_id", userID)

	s.mockService.EXPECT().
		Delete(budgetID, userID).
		Return(nil)

	handler := NewBudgetHandler(s.mockService)
	err := handler.Delete(c)

	s.NoError(err)
	s.Equal(http.StatusOK, rec.Code)
}

func (s *BudgetHandlerTestSuite) TestUsage_Success() {
	userID := uuid.New()
	budgetID := uuid.New()

	c, rec := s.newContext(http.MethodGet, "/api/v1/budgets/"+budgetID.String()+"/usage", "")
	c.SetParamNames("id")
	c.SetParamValues(budgetID.String())
	c.Set("user_id", userID)

	usage := &dto.BudgetUsageResponse{
		BudgetID:    budgetID,
		Category:    "food",
		Amount:      100000,
		Spent:       33333,
		Remaining:   66667,
		Utilization: "33.3%",
	}

	s.mockService.EXPECT().
		Usage(budgetID, userID).
		Return(usage, nil)

	handler := NewBudgetHandler(s.mockService)
	err := handler.Usage(c)

	s.NoError(err)
	s.Equal(http.StatusOK, rec.Code)

	var response dto.BudgetUsageResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &response))
	s.Equal(int64(66667), response.Remaining)
	s.Equal("33.3%", response.Utilization)
}

func (s *BudgetHandlerTestSuite) TestUsage_NotFound() {
	userID := uuid.New()
	budgetID := uuid.New()

	c, rec := s.newContext(http.MethodGet, "/api/v1/budgets/"+budgetID.String()+"/usage", "")
	c.SetParamNames("id")
	c.SetParamValues(budgetID.String())
	c.Set("user_id", userID)

	s.mockService.EXPECT().
		Usage(budgetID, userID).
		Return(nil, repositories.ErrBudgetNotFound)

	handler := NewBudgetHandler(s.mockService)
	err := handler.Usage(c)

	s.NoError(err)
	s.Equal(http.StatusNotFound, rec.Code)
	s.Equal("BUDGET_001", s.decodeError(rec).Error.Code)
}

func (s *BudgetHandlerTestSuite) TestMissingUserContext() {
	c, rec := s.newContext(http.MethodGet, "/api/v1/budgets", "")

	handler := NewBudgetHandler(s.mockService)
	err := handler.List(c)

	s.NoError(err)
	s.Equal(http.StatusUnauthorized, rec.Code)
	s.Equal("AUTH_002", s.decodeError(rec).Error.Code)
}
