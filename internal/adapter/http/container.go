package http

import (
	database "tasktracker/internal/adapter/database/sqlite"
	repository "tasktracker/internal/adapter/database/sqlite/repository"

	"tasktracker/internal/adapter/http/handler"
	"tasktracker/internal/core/port"
	"tasktracker/internal/core/service"
	"tasktracker/internal/shared"
)

type Container struct {
	UserRepo port.UserRepository
	TaskRepo port.TaskRepository

	TaskUseCase port.TaskService
	AuthUseCase port.AuthService

	TaskHandler *handler.TaskHandler
	AuthHandler *handler.AuthHandler
}

func NewContainer(db *database.DB, logger *shared.LokiLogger) *Container {
	userRepo := repository.NewUserRepository(db)
	taskRepo := repository.NewTaskRepository(db)

	authSvc := service.NewAuthService(userRepo)
	taskSvc := service.NewTaskService(taskRepo)

	return &Container{
		UserRepo: userRepo,
		TaskRepo: taskRepo,

		TaskUseCase: taskSvc,
		AuthUseCase: authSvc,

		TaskHandler: handler.NewTaskHandler(taskSvc, logger),
		AuthHandler: handler.NewAuthHandler(authSvc),
	}
}
