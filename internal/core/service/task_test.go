package service_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	. "github.com/onsi/gomega"
	"github.com/stretchr/testify/suite"

	. "tasktracker/pkg/test"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"tasktracker/internal/adapter/database/sqlite/repository"
	"tasktracker/internal/core/domain"
	"tasktracker/internal/core/port"
	"tasktracker/internal/core/service"
	"tasktracker/pkg/test/factory"
)

type TaskUseCaseTestSuite struct {
	suite.Suite
	UseCase port.TaskService
	repo    port.TaskRepository
	userId  int
}

func (s *TaskUseCaseTestSuite) SetupTest() {
	db := InitTestDatabase()

	userRepo := repository.NewUserRepository(db)
	taskRepo := repository.NewTaskRepository(db)

	user, err := userRepo.Create(context.Background(), factory.NewUser[domain.User](map[string]any{
		"Login": "owner@example.com",
	}))
	s.Require().NoError(err)

	s.UseCase = service.NewTaskService(taskRepo)
	s.repo = taskRepo
	s.userId = user.ID
}

func TestTaskUseCaseTestSuite(t *testing.T) {
	RegisterTestingT(t)
	suite.Run(t, new(TaskUseCaseTestSuite))
}

func (s *TaskUseCaseTestSuite) createTask(custom map[string]any) domain.Task {
	data := map[string]any{"UserId": s.userId}
	for k, v := range custom {
		data[k] = v
	}

	task, err := s.UseCase.Create(context.Background(), factory.NewTask[domain.Task](data))
	s.Require().NoError(err)

	return task
}

func (s *TaskUseCaseTestSuite) TestUseCase_Create_AssignsIdentityAndTimestamps() {
	task := s.createTask(map[string]any{"Title": "Buy groceries"})

	assert.NotEqual(s.T(), uuid.Nil, task.UUID)
	assert.NotZero(s.T(), task.ID)
	assert.Equal(s.T(), "Buy groceries", task.Title)
	assert.Equal(s.T(), s.userId, task.UserId)
	assert.False(s.T(), task.CreatedAt.IsZero())
	assert.False(s.T(), task.UpdatedAt.IsZero())
}

func (s *TaskUseCaseTestSuite) TestUseCase_GetByUUID() {
	created := s.createTask(nil)

	found, err := s.UseCase.GetByUUID(context.Background(), created.UUID.String())

	assert.NoError(s.T(), err)
	assert.Equal(s.T(), created.UUID, found.UUID)
	assert.Equal(s.T(), created.Title, found.Title)
}

func (s *TaskUseCaseTestSuite) TestUseCase_GetByUUID_NotFound() {
	_, err := s.UseCase.GetByUUID(context.Background(), uuid.New().String())

	assert.ErrorIs(s.T(), err, domain.ErrTaskNotFound)
}

func (s *TaskUseCaseTestSuite) TestUseCase_UpdateByUUID() {
	created := s.createTask(map[string]any{"Title": "Buy groceries"})

	created.Title = "Buy groceries and fruit"
	created.Status = int(domain.TaskStatusCompleted)

	updated, err := s.UseCase.UpdateByUUID(context.Background(), created)

	assert.NoError(s.T(), err)
	assert.Equal(s.T(), "Buy groceries and fruit", updated.Title)
	assert.Equal(s.T(), int(domain.TaskStatusCompleted), updated.Status)
}

func (s *TaskUseCaseTestSuite) TestUseCase_DeleteByUUID() {
	created := s.createTask(nil)

	err := s.UseCase.DeleteByUUID(context.Background(), created.UUID.String())
	assert.NoError(s.T(), err)

	_, err = s.UseCase.GetByUUID(context.Background(), created.UUID.String())
	assert.ErrorIs(s.T(), err, domain.ErrTaskNotFound)

	err = s.UseCase.DeleteByUUID(context.Background(), created.UUID.String())
	assert.ErrorIs(s.T(), err, domain.ErrTaskNotFound)
}

func (s *TaskUseCaseTestSuite) TestUseCase_Pagination() {
	// Seeded through the repository so each row keeps its own creation
	// time; the cursor orders on (created_date, id).
	base := time.Now().Add(-time.Hour).Truncate(time.Second)

	for i := 0; i < 15; i++ {
		created := base.Add(time.Duration(i) * time.Minute)

		_, err := s.repo.Create(context.Background(), factory.NewTask[domain.Task](map[string]any{
			"UserId":    s.userId,
			"Title":     fmt.Sprintf("Task number %02d", i),
			"CreatedAt": created,
			"UpdatedAt": created,
		}))
		s.Require().NoError(err)
	}

	firstPage, err := s.UseCase.GetTasksWithPagination(context.Background(), s.userId, 10, "")

	assert.NoError(s.T(), err)
	assert.Equal(s.T(), 10, firstPage.Size)
	assert.True(s.T(), firstPage.Pagination.HasNext)
	assert.NotEmpty(s.T(), firstPage.Pagination.NextCursor)

	secondPage, err := s.UseCase.GetTasksWithPagination(context.Background(), s.userId, 10, firstPage.Pagination.NextCursor)

	assert.NoError(s.T(), err)
	assert.Equal(s.T(), 5, secondPage.Size)
	assert.False(s.T(), secondPage.Pagination.HasNext)
	assert.Empty(s.T(), secondPage.Pagination.NextCursor)
}

func (s *TaskUseCaseTestSuite) TestUseCase_PaginationScopedToOwner() {
	s.createTask(nil)

	page, err := s.UseCase.GetTasksWithPagination(context.Background(), s.userId+1, 10, "")

	assert.NoError(s.T(), err)
	assert.Equal(s.T(), 0, page.Size)
	assert.False(s.T(), page.Pagination.HasNext)
}
