package service_test

import (
	"context"
	"testing"

	. "github.com/onsi/gomega"
	"github.com/stretchr/testify/suite"

	. "tasktracker/pkg/test"

	"github.com/stretchr/testify/assert"

	"tasktracker/internal/adapter/database/sqlite/repository"
	"tasktracker/internal/core/domain"
	"tasktracker/internal/core/model/request"
	"tasktracker/internal/core/port"
	"tasktracker/internal/core/service"
)

type AuthUseCaseTestSuite struct {
	suite.Suite
	UseCase port.AuthService
	repo    port.UserRepository
}

func (s *AuthUseCaseTestSuite) SetupTest() {
	db := InitTestDatabase()

	repo := repository.NewUserRepository(db)

	s.UseCase = service.NewAuthService(repo)
	s.repo = repo
}

func TestAuthUseCaseTestSuite(t *testing.T) {
	RegisterTestingT(t)
	suite.Run(t, new(AuthUseCaseTestSuite))
}

func (s *AuthUseCaseTestSuite) TestUseCase_Registration_Success() {
	req := &request.SignUpRequest{
		Login:    "test@example.com",
		Password: "password123",
	}

	user, err := s.UseCase.Registration(context.Background(), req)

	assert.NoError(s.T(), err)
	assert.NotNil(s.T(), user)
	assert.Equal(s.T(), "test@example.com", user.Login)
	assert.NotEqual(s.T(), "password123", user.EncryptedPassword)
}

func (s *AuthUseCaseTestSuite) TestUseCase_Registration_DuplicateLogin() {
	req := &request.SignUpRequest{
		Login:    "test@example.com",
		Password: "password123",
	}

	_, err := s.UseCase.Registration(context.Background(), req)
	assert.NoError(s.T(), err)

	_, err = s.UseCase.Registration(context.Background(), req)
	assert.ErrorIs(s.T(), err, domain.ErrDuplicateLogin)
}

func (s *AuthUseCaseTestSuite) TestUseCase_Authenticate_Success() {
	signUpReq := &request.SignUpRequest{
		Login:    "test@example.com",
		Password: "password123",
	}

	loginReq := &request.LoginRequest{
		Login:    "test@example.com",
		Password: "password123",
	}

	createdUser, err := s.UseCase.Registration(context.Background(), signUpReq)
	assert.NoError(s.T(), err)

	authenticatedUser, err := s.UseCase.Authenticate(context.Background(), loginReq)

	assert.NoError(s.T(), err)
	assert.NotNil(s.T(), authenticatedUser)
	assert.Equal(s.T(), createdUser.Login, authenticatedUser.Login)
	assert.Equal(s.T(), createdUser.UUID, authenticatedUser.UUID)
}

func (s *AuthUseCaseTestSuite) TestUseCase_Authenticate_InvalidPassword() {
	signUpReq := &request.SignUpRequest{
		Login:    "test@example.com",
		Password: "password123",
	}

	loginFailedReq := &request.LoginRequest{
		Login:    "test@example.com",
		Password: "unknown-password",
	}

	_, err := s.UseCase.Registration(context.Background(), signUpReq)
	assert.NoError(s.T(), err)

	_, err = s.UseCase.Authenticate(context.Background(), loginFailedReq)

	assert.Error(s.T(), err)
	assert.Contains(s.T(), err.Error(), "compare password failed")
}

func (s *AuthUseCaseTestSuite) TestUseCase_Authenticate_UserNotFound() {
	loginReq := &request.LoginRequest{
		Login:    "test@example.com",
		Password: "password123",
	}

	_, err := s.UseCase.Authenticate(context.Background(), loginReq)

	assert.Error(s.T(), err)
	assert.Contains(s.T(), err.Error(), "authentication failed")
}
