package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"budgetbook/internal/services/service_mocks"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/suite"
)

// DevHandlerTestSuite is the test suite for DevHandler
type DevHandlerTestSuite struct {
	suite.Suite
	ctrl          *gomock.Controller
	mockGenerator *service_mocks.MockSampleDataGeneratorInterface
}

func (s *DevHandlerTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.mockGenerator = service_mocks.NewMockSampleDataGeneratorInterface(s.ctrl)
}

func (s *DevHandlerTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func TestDevHandlerSuite(t *testing.T) {
	suite.Run(t, new(DevHandlerTestSuite))
}

func (s *DevHandlerTestSuite) newContext(target string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, target, nil)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func (s *DevHandlerTestSuite) TestGenerateSampleData_Defaults() {
	userID := uuid.New()

	c, rec := s.newContext("/api/v1/dev/expenditures/generate")
	c.Set("user_id", userID)

	s.mockGenerator.EXPECT().
		GenerateExpenditures(userID, gomock.Any(), gomock.Any(), 100).
		DoAndReturn(func(_ uuid.UUID, startDate, endDate time.Time, count int) (int, error) {
			s.WithinDuration(time.Now(), endDate, time.Minute)
			s.WithinDuration(time.Now().AddDate(0, 0, -30), startDate, time.Minute)
			return count, nil
		})

	handler := NewDevHandler(s.mockGenerator)
	err := handler.GenerateSampleData(c)

	s.NoError(err)
	s.Equal(http.StatusOK, rec.Code)

	var response map[string]interface{}
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &response))
	s.Equal(float64(100), response["records_created"])
}

func (s *DevHandlerTestSuite) TestGenerateSampleData_ClampsParameters() {
	userID := uuid.New()

	c, rec := s.newContext("/api/v1/dev/expenditures/generate?count=5000&days=9000")
	c.Set("user_id", userID)

	s.mockGenerator.EXPECT().
		GenerateExpenditures(userID, gomock.Any(), gomock.Any(), 1000).
		DoAndReturn(func(_ uuid.UUID, startDate, endDate time.Time, count int) (int, error) {
			s.WithinDuration(time.Now().AddDate(0, 0, -365), startDate, time.Minute)
			return count, nil
		})

	handler := NewDevHandler(s.mockGenerator)
	err := handler.GenerateSampleData(c)

	s.NoError(err)
	s.Equal(http.StatusOK, rec.Code)
}

func (s *DevHandlerTestSuite) TestGenerateSampleData_MissingUserContext() {
	c, _ := s.newContext("/api/v1/dev/expenditures/generate")

	handler := NewDevHandler(s.mockGenerator)
	err := handler.GenerateSampleData(c)

	s.Error(err)
	httpErr, ok := err.(*echo.HTTPError)
	s.Require().True(ok)
	s.Equal(http.StatusUnauthorized, httpErr.Code)
}
