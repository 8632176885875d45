package port

import (
	"context"

	"tasktracker/internal/core/domain"
	"tasktracker/internal/core/model/response"
)

type TaskRepository interface {
	GetAllWithCursor(ctx context.Context, userId int, limit int, cursor string) ([]domain.Task, bool, error)
	GetByUUID(ctx context.Context, uuid string) (domain.Task, error)
	Create(ctx context.Context, task domain.Task) (domain.Task, error)
	UpdateByUUID(ctx context.Context, task domain.Task) (domain.Task, error)
	DeleteByUUID(ctx context.Context, uuid string) error
}

type TaskService interface {
	GetTasksWithPagination(ctx context.Context, userId int, limit int, cursor string) (*response.CursorResponse, error)
	GetByUUID(ctx context.Context, uuid string) (domain.Task, error)
	Create(ctx context.Context, task domain.Task) (domain.Task, error)
	UpdateByUUID(ctx context.Context, task domain.Task) (domain.Task, error)
	DeleteByUUID(ctx context.Context, uuid string) error
}
