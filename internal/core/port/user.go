package port

import (
	"context"

	"tasktracker/internal/core/domain"
)

type UserRepository interface {
	GetByUUID(ctx context.Context, uuid string) (domain.User, error)
	GetByLogin(ctx context.Context, login string) (domain.User, error)
	Create(ctx context.Context, user domain.User) (domain.User, error)
	DeleteByUUID(ctx context.Context, uuid string) error
}
