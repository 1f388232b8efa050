package services

import (
	"log/slog"
	"testing"
	"time"

	"budgetbook/internal/dto"
	"budgetbook/internal/models"
	"budgetbook/internal/repositories"
	"budgetbook/internal/repositories/repository_mocks"
	"budgetbook/internal/services/service_mocks"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
)

type AuthServiceTestSuite struct {
	suite.Suite
	ctrl             *gomock.Controller
	userRepo         *repository_mocks.MockUserRepositoryInterface
	refreshTokenRepo *repository_mocks.MockRefreshTokenRepositoryInterface
	passwordService  *service_mocks.MockPasswordServiceInterface
	tokenService     *service_mocks.MockTokenServiceInterface
	authService      AuthServiceInterface
}

func TestAuthServiceSuite(t *testing.T) {
	suite.Run(t, new(AuthServiceTestSuite))
}

func (s *AuthServiceTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.userRepo = repository_mocks.NewMockUserRepositoryInterface(s.ctrl)
	s.refreshTokenRepo = repository_mocks.NewMockRefreshTokenRepositoryInterface(s.ctrl)
	s.passwordService = service_mocks.NewMockPasswordServiceInterface(s.ctrl)
	s.tokenService = service_mocks.NewMockTokenServiceInterface(s.ctrl)
	s.authService = NewAuthService(s.userRepo, s.refreshTokenRepo, s.passwordService, s.tokenService, nil, slog.Default())
}

func (s *AuthServiceTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *AuthServiceTestSuite) activeUser() *models.User {
	return &models.User{
		ID:           uuid.New(),
		Username:     "spender",
		PasswordHash: "hashed_password",
		IsActive:     true,
	}
}

func (s *AuthServiceTestSuite) expectTokenPair(user *models.User) {
	s.tokenService.EXPECT().GenerateAccessToken(user).
		Return("access-token", time.Now().Add(24*time.Hour), nil).Times(1)
	s.tokenService.EXPECT().GenerateRefreshToken(user.ID).
		Return("refresh-token", time.Now().Add(7*24*time.Hour), nil).Times(1)
	s.refreshTokenRepo.EXPECT().Create(gomock.Any()).DoAndReturn(
		func(token *models.RefreshToken) error {
			s.Equal(user.ID, token.UserID)
			s.NotEqual("refresh-token", token.TokenHash) // only the hash is stored
			return nil
		}).Times(1)
}

func (s *AuthServiceTestSuite) TestRegister_Success() {
	req := &dto.RegisterRequest{Username: "spender", Password: "correct-horse"}

	s.userRepo.EXPECT().GetByUsername("spender").Return(nil, repositories.ErrUserNotFound).Times(1)
	s.passwordService.EXPECT().HashPassword("correct-horse").Return("hashed_password", nil).Times(1)
	s.userRepo.EXPECT().Create(gomock.Any()).Return(nil).Times(1)

	user, err := s.authService.Register(req, "203.0.113.1", "test-agent")
	s.Require().NoError(err)
	s.Equal("spender", user.Username)
	s.Equal("hashed_password", user.PasswordHash)
	s.True(user.IsActive)
}

func (s *AuthServiceTestSuite) TestRegister_UsernameTaken() {
	req := &dto.RegisterRequest{Username: "spender", Password: "correct-horse"}

	s.userRepo.EXPECT().GetByUsername("spender").Return(s.activeUser(), nil).Times(1)

	user, err := s.authService.Register(req, "203.0.113.1", "test-agent")
	s.ErrorIs(err, ErrUserAlreadyExists)
	s.Nil(user)
}

func (s *AuthServiceTestSuite) TestRegister_PasswordRejected() {
	req := &dto.RegisterRequest{Username: "spender", Password: "short"}

	s.userRepo.EXPECT().GetByUsername("spender").Return(nil, repositories.ErrUserNotFound).Times(1)
	s.passwordService.EXPECT().HashPassword("short").Return("", ErrPasswordTooShort).Times(1)

	user, err := s.authService.Register(req, "203.0.113.1", "test-agent")
	s.ErrorIs(err, ErrPasswordTooShort)
	s.Nil(user)
}

func (s *AuthServiceTestSuite) TestLogin_Success() {
	user := s.activeUser()
	req := &dto.LoginRequest{Username: "spender", Password: "correct-horse"}

	s.userRepo.EXPECT().GetByUsername("spender").Return(user, nil).Times(1)
	s.passwordService.EXPECT().ComparePassword("correct-horse", user.PasswordHash).Return(true).Times(1)
	s.userRepo.EXPECT().UpdateLastLogin(user.ID).Return(nil).Times(1)
	s.expectTokenPair(user)

	tokens, err := s.authService.Login(req, "203.0.113.1", "test-agent")
	s.Require().NoError(err)
	s.Equal("access-token", tokens.AccessToken)
	s.Equal("refresh-token", tokens.RefreshToken)
	s.Equal("Bearer", tokens.TokenType)
}

func (s *AuthServiceTestSuite) TestLogin_UnknownUsername() {
	req := &dto.LoginRequest{Username: "nobody", Password: "whatever"}

	s.userRepo.EXPECT().GetByUsername("nobody").Return(nil, repositories.ErrUserNotFound).Times(1)

	tokens, err := s.authService.Login(req, "203.0.113.1", "test-agent")
	s.ErrorIs(err, ErrInvalidCredentials)
	s.Nil(tokens)
}

func (s *AuthServiceTestSuite) TestLogin_WrongPassword() {
	user := s.activeUser()
	req := &dto.LoginRequest{Username: "spender", Password: "wrong"}

	s.userRepo.EXPECT().GetByUsername("spender").Return(user, nil).Times(1)
	s.passwordService.EXPECT().ComparePassword("wrong", user.PasswordHash).Return(false).Times(1)

	tokens, err := s.authService.Login(req, "203.0.113.1", "test-agent")
	s.ErrorIs(err, ErrInvalidCredentials)
	s.Nil(tokens)
}

func (s *AuthServiceTestSuite) TestLogin_InactiveUser() {
	user := s.activeUser()
	user.IsActive = false
	req := &dto.LoginRequest{Username: "spender", Password: "correct-horse"}

	s.userRepo.EXPECT().GetByUsername("spender").Return(user, nil).Times(1)

	tokens, err := s.authService.Login(req, "203.0.113.1", "test-agent")
	s.ErrorIs(err, ErrUserInactive)
	s.Nil(tokens)
}

func (s *AuthServiceTestSuite) TestRefreshTokens_RotatesStoredToken() {
	user := s.activeUser()
	storedToken := &models.RefreshToken{
		ID:        uuid.New(),
		UserID:    user.ID,
		ExpiresAt: time.Now().Add(time.Hour),
	}
	claims := &models.CustomClaims{UserID: user.ID.String(), TokenType: TokenTypeRefresh}

	s.tokenService.EXPECT().ValidateRefreshToken("old-refresh").Return(claims, nil).Times(1)
	s.refreshTokenRepo.EXPECT().GetByTokenHash(gomock.Any()).Return(storedToken, nil).Times(1)
	s.userRepo.EXPECT().GetByID(user.ID).Return(user, nil).Times(1)
	s.refreshTokenRepo.EXPECT().Revoke(storedToken.ID).Return(nil).Times(1)
	s.expectTokenPair(user)

	tokens, err := s.authService.RefreshTokens("old-refresh", "203.0.113.1", "test-agent")
	s.Require().NoError(err)
	s.Equal("refresh-token", tokens.RefreshToken)
}

func (s *AuthServiceTestSuite) TestRefreshTokens_InvalidToken() {
	s.tokenService.EXPECT().ValidateRefreshToken("garbage").Return(nil, ErrInvalidToken).Times(1)

	tokens, err := s.authService.RefreshTokens("garbage", "203.0.113.1", "test-agent")
	s.ErrorIs(err, ErrInvalidRefreshToken)
	s.Nil(tokens)
}

func (s *AuthServiceTestSuite) TestRefreshTokens_RevokedStoredToken() {
	user := s.activeUser()
	revokedAt := time.Now().Add(-time.Minute)
	storedToken := &models.RefreshToken{
		ID:        uuid.New(),
		UserID:    user.ID,
		ExpiresAt: time.Now().Add(time.Hour),
		RevokedAt: &revokedAt,
	}
	claims := &models.CustomClaims{UserID: user.ID.String(), TokenType: TokenTypeRefresh}

	s.tokenService.EXPECT().ValidateRefreshToken("revoked-refresh").Return(claims, nil).Times(1)
	s.refreshTokenRepo.EXPECT().GetByTokenHash(gomock.Any()).Return(storedToken, nil).Times(1)

	tokens, err := s.authService.RefreshTokens("revoked-refresh", "203.0.113.1", "test-agent")
	s.ErrorIs(err, ErrInvalidRefreshToken)
	s.Nil(tokens)
}

func (s *AuthServiceTestSuite) TestLogout_RevokesAllRefreshTokens() {
	user := s.activeUser()
	claims := &models.CustomClaims{UserID: user.ID.String(), TokenType: TokenTypeAccess}

	s.tokenService.EXPECT().ValidateAccessToken("access-token").Return(claims, nil).Times(1)
	s.refreshTokenRepo.EXPECT().RevokeAllForUser(user.ID).Return(nil).Times(1)

	s.NoError(s.authService.Logout("access-token", "203.0.113.1", "test-agent"))
}

func (s *AuthServiceTestSuite) TestLogout_InvalidTokenIsANoOp() {
	s.tokenService.EXPECT().ValidateAccessToken("garbage").Return(nil, ErrInvalidToken).Times(1)

	s.NoError(s.authService.Logout("garbage", "203.0.113.1", "test-agent"))
}
