package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"tasktracker/internal/core/domain"
	"tasktracker/internal/core/model/request"
	"tasktracker/internal/core/port"
	"tasktracker/internal/core/util"
)

type AuthService struct {
	repo port.UserRepository
}

func NewAuthService(repo port.UserRepository) *AuthService {
	return &AuthService{repo}
}

func (us *AuthService) Registration(ctx context.Context, req *request.SignUpRequest) (*domain.User, error) {
	oldUser, err := us.repo.GetByLogin(ctx, req.Login)

	if err == nil && oldUser.Login != "" {
		return nil, domain.ErrDuplicateLogin
	}

	encrypted, err := util.GenerateEncrypt(req.Password)

	if err != nil {
		return nil, fmt.Errorf("error creating encrypted password")
	}

	user := domain.User{
		UUID:              uuid.New(),
		Login:             req.Login,
		EncryptedPassword: encrypted,
		CreatedAt:         time.Now(),
		UpdatedAt:         time.Now(),
	}

	savedUser, err := us.repo.Create(ctx, user)

	if err != nil {
		return nil, err
	}

	return &savedUser, nil
}

func (us *AuthService) Authenticate(ctx context.Context, req *request.LoginRequest) (*domain.User, error) {
	user, err := us.repo.GetByLogin(ctx, req.Login)

	if err != nil {
		slog.Error("Auth#Authenticate", "get_by_login", err)
		return nil, fmt.Errorf("authentication failed")
	}

	if err := util.ComparePassword(req.Password, user.EncryptedPassword); err != nil {
		slog.Error("Auth#Authenticate", "compare_password", err)
		return nil, fmt.Errorf("compare password failed")
	}

	return &user, nil
}
