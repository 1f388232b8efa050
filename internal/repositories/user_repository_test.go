package repositories

import (
	"testing"

	"budgetbook/internal/database"
	"budgetbook/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
)

func TestUserRepository(t *testing.T) {
	suite.Run(t, new(UserRepositorySuite))
}

type UserRepositorySuite struct {
	suite.Suite
	db   *database.DB
	repo UserRepositoryInterface
}

func (s *UserRepositorySuite) SetupTest() {
	s.db = database.SetupTestDB(s.T())
	s.repo = NewUserRepository(s.db.DB)
}

func (s *UserRepositorySuite) TearDownTest() {
	database.CleanupTestDB(s.T(), s.db)
}

func (s *UserRepositorySuite) TestUserRepository_Create() {
	user := &models.User{
		Username:     "spender",
		PasswordHash: "hashed_password",
		IsActive:     true,
	}

	err := s.repo.Create(user)
	s.NoError(err)
	s.NotEqual(uuid.Nil, user.ID)
	s.NotZero(user.CreatedAt)
	s.NotZero(user.UpdatedAt)
}

func (s *UserRepositorySuite) TestUserRepository_Create_InvalidUsername() {
	user := &models.User{
		Username:     "bad name!",
		PasswordHash: "hashed_password",
		IsActive:     true,
	}

	err := s.repo.Create(user)
	s.Error(err)
	s.Contains(err.Error(), "letters, numbers, and underscores")
}

func (s *UserRepositorySuite) TestUserRepository_GetByUsername() {
	user := &models.User{
		Username:     "spender",
		PasswordHash: "hashed_password",
		IsActive:     true,
	}
	s.Require().NoError(s.repo.Create(user))

	found, err := s.repo.GetByUsername("spender")
	s.NoError(err)
	s.Equal(user.ID, found.ID)

	_, err = s.repo.GetByUsername("nobody")
	s.Equal(ErrUserNotFound, err)
}

func (s *UserRepositorySuite) TestUserRepository_GetByID() {
	user := &models.User{
		Username:     "spender",
		PasswordHash: "hashed_password",
		IsActive:     true,
	}
	s.Require().NoError(s.repo.Create(user))

	found, err := s.repo.GetByID(user.ID)
	s.NoError(err)
	s.Equal("spender", found.Username)

	_, err = s.repo.GetByID(uuid.New())
	s.Equal(ErrUserNotFound, err)
}

func (s *UserRepositorySuite) TestUserRepository_UpdateLastLogin() {
	user := &models.User{
		Username:     "spender",
		PasswordHash: "hashed_password",
		IsActive:     true,
	}
	s.Require().NoError(s.repo.Create(user))
	s.Nil(user.LastLoginAt)

	err := s.repo.UpdateLastLogin(user.ID)
	s.NoError(err)

	stamped, err := s.repo.GetByID(user.ID)
	s.NoError(err)
	s.NotNil(stamped.LastLoginAt)

	s.Equal(ErrUserNotFound, s.repo.UpdateLastLogin(uuid.New()))
}

func (s *UserRepositorySuite) TestUserRepository_Delete() {
	user := &models.User{
		Username:     "spender",
		PasswordHash: "hashed_password",
		IsActive:     true,
	}
	s.Require().NoError(s.repo.Create(user))

	s.NoError(s.repo.Delete(user.ID))

	// Soft deleted: not found by normal queries
	_, err := s.repo.GetByID(user.ID)
	s.Equal(ErrUserNotFound, err)

	s.Equal(ErrUserNotFound, s.repo.Delete(uuid.New()))
}
