package services

import (
	"testing"
	"time"

	"budgetbook/internal/config"
	"budgetbook/internal/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
)

type TokenServiceTestSuite struct {
	suite.Suite
	jwtConfig *config.JWTConfig
	service   TokenServiceInterface
	user      *models.User
}

func TestTokenServiceSuite(t *testing.T) {
	suite.Run(t, new(TokenServiceTestSuite))
}

func (s *TokenServiceTestSuite) SetupTest() {
	privateKey, publicKey, err := config.GenerateRSAKeyPair()
	s.Require().NoError(err)

	s.jwtConfig = &config.JWTConfig{
		AccessTokenDuration:  time.Hour,
		RefreshTokenDuration: 24 * time.Hour,
		PrivateKey:           privateKey,
		PublicKey:            publicKey,
		Issuer:               "budgetbook-api",
	}
	s.service = NewTokenService(s.jwtConfig)
	s.user = &models.User{
		ID:       uuid.New(),
		Username: "spender",
		IsActive: true,
	}
}

func (s *TokenServiceTestSuite) TestGenerateAndValidateAccessToken() {
	tokenString, expiresAt, err := s.service.GenerateAccessToken(s.user)
	s.Require().NoError(err)
	s.NotEmpty(tokenString)
	s.WithinDuration(time.Now().Add(time.Hour), expiresAt, 5*time.Second)

	claims, err := s.service.ValidateAccessToken(tokenString)
	s.Require().NoError(err)
	s.Equal(s.user.ID.String(), claims.UserID)
	s.Equal("spender", claims.Username)
	s.Equal(TokenTypeAccess, claims.TokenType)
	s.Equal("budgetbook-api", claims.Issuer)
}

func (s *TokenServiceTestSuite) TestGenerateAccessToken_NilUser() {
	_, _, err := s.service.GenerateAccessToken(nil)
	s.Error(err)
}

func (s *TokenServiceTestSuite) TestGenerateAndValidateRefreshToken() {
	tokenString, expiresAt, err := s.service.GenerateRefreshToken(s.user.ID)
	s.Require().NoError(err)
	s.NotEmpty(tokenString)
	s.WithinDuration(time.Now().Add(24*time.Hour), expiresAt, 5*time.Second)

	claims, err := s.service.ValidateRefreshToken(tokenString)
	s.Require().NoError(err)
	s.Equal(s.user.ID.String(), claims.UserID)
	s.Equal(TokenTypeRefresh, claims.TokenType)
}

func (s *TokenServiceTestSuite) TestGenerateRefreshToken_NilUserID() {
	_, _, err := s.service.GenerateRefreshToken(uuid.Nil)
	s.Error(err)
}

func (s *TokenServiceTestSuite) TestValidate_TokenTypeMismatch() {
	accessToken, _, err := s.service.GenerateAccessToken(s.user)
	s.Require().NoError(err)
	refreshToken, _, err := s.service.GenerateRefreshToken(s.user.ID)
	s.Require().NoError(err)

	_, err = s.service.ValidateRefreshToken(accessToken)
	s.ErrorIs(err, ErrInvalidTokenType)

	_, err = s.service.ValidateAccessToken(refreshToken)
	s.ErrorIs(err, ErrInvalidTokenType)
}

func (s *TokenServiceTestSuite) TestValidate_EmptyToken() {
	_, err := s.service.ValidateAccessToken("")
	s.ErrorIs(err, ErrEmptyToken)
}

func (s *TokenServiceTestSuite) TestValidate_GarbledToken() {
	_, err := s.service.ValidateAccessToken("not.a.token")
	s.ErrorIs(err, ErrInvalidToken)
}

func (s *TokenServiceTestSuite) TestValidate_ExpiredToken() {
	expiredConfig := *s.jwtConfig
	expiredConfig.AccessTokenDuration = -time.Minute
	expiredService := NewTokenService(&expiredConfig)

	tokenString, _, err := expiredService.GenerateAccessToken(s.user)
	s.Require().NoError(err)

	_, err = s.service.ValidateAccessToken(tokenString)
	s.ErrorIs(err, ErrExpiredToken)
}

func (s *TokenServiceTestSuite) TestValidate_WrongIssuer() {
	otherConfig := *s.jwtConfig
	otherConfig.Issuer = "someone-else"
	otherService := NewTokenService(&otherConfig)

	tokenString, _, err := otherService.GenerateAccessToken(s.user)
	s.Require().NoError(err)

	_, err = s.service.ValidateAccessToken(tokenString)
	s.ErrorIs(err, ErrInvalidIssuer)
}

func (s *TokenServiceTestSuite) TestValidate_WrongKey() {
	otherPrivate, otherPublic, err := config.GenerateRSAKeyPair()
	s.Require().NoError(err)
	otherConfig := *s.jwtConfig
	otherConfig.PrivateKey = otherPrivate
	otherConfig.PublicKey = otherPublic
	otherService := NewTokenService(&otherConfig)

	tokenString, _, err := otherService.GenerateAccessToken(s.user)
	s.Require().NoError(err)

	_, err = s.service.ValidateAccessToken(tokenString)
	s.ErrorIs(err, ErrInvalidToken)
}

func (s *TokenServiceTestSuite) TestValidate_RejectsHS256() {
	claims := models.CustomClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.jwtConfig.Issuer,
			Subject:   s.user.ID.String(),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
		UserID:    s.user.ID.String(),
		TokenType: TokenTypeAccess,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte("symmetric-secret"))
	s.Require().NoError(err)

	_, err = s.service.ValidateAccessToken(tokenString)
	s.ErrorIs(err, ErrInvalidToken)
}

func (s *TokenServiceTestSuite) TestExtractTokenFromHeader() {
	token, err := s.service.ExtractTokenFromHeader("Bearer abc.def.ghi")
	s.NoError(err)
	s.Equal("abc.def.ghi", token)

	token, err = s.service.ExtractTokenFromHeader("bearer abc.def.ghi")
	s.NoError(err)
	s.Equal("abc.def.ghi", token)

	_, err = s.service.ExtractTokenFromHeader("")
	s.ErrorIs(err, ErrInvalidAuthHeader)

	_, err = s.service.ExtractTokenFromHeader("Basic abc")
	s.ErrorIs(err, ErrInvalidAuthHeader)

	_, err = s.service.ExtractTokenFromHeader("Bearer ")
	s.ErrorIs(err, ErrInvalidAuthHeader)
}
