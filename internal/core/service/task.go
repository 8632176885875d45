package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"tasktracker/internal/core/domain"
	"tasktracker/internal/core/model/response"
	"tasktracker/internal/core/port"
	"tasktracker/internal/core/util"
)

type TaskService struct {
	repo port.TaskRepository
}

func NewTaskService(repo port.TaskRepository) *TaskService {
	return &TaskService{repo}
}

func (ts *TaskService) GetTasksWithPagination(ctx context.Context, userId int, limit int, cursor string) (*response.CursorResponse, error) {
	rows, hasNext, err := ts.repo.GetAllWithCursor(ctx, userId, limit, cursor)

	data := make([]response.TaskResponse, 0)

	if err != nil {
		dataBytes, _ := util.Serialize(data)

		resp := response.CursorResponse{
			Size: 0,
			Data: dataBytes,
			Pagination: struct {
				HasNext    bool   `json:"has_next"`
				NextCursor string `json:"next_cursor"`
			}{
				HasNext:    false,
				NextCursor: "",
			},
		}

		return &resp, err
	}

	for _, task := range rows {
		data = append(data, taskToResponse(task))
	}

	var nextCursor string

	if hasNext && len(rows) > 0 {
		lastTask := rows[len(rows)-1]
		nextCursor = util.EncodeCursor(lastTask.CreatedAt.Format(time.RFC3339), lastTask.ID)
	}

	dataBytes, _ := util.Serialize(data)

	responsable := response.CursorResponse{
		Size: len(data),
		Data: dataBytes,
		Pagination: struct {
			HasNext    bool   `json:"has_next"`
			NextCursor string `json:"next_cursor"`
		}{
			HasNext:    hasNext,
			NextCursor: nextCursor,
		},
	}

	return &responsable, nil
}

func (ts *TaskService) GetByUUID(ctx context.Context, uid string) (domain.Task, error) {
	task, err := ts.repo.GetByUUID(ctx, uid)

	if err != nil {
		return domain.Task{}, err
	}

	return task, nil
}

func (ts *TaskService) Create(ctx context.Context, task domain.Task) (domain.Task, error) {
	now := time.Now()

	newTask := domain.Task{
		UUID:          uuid.New(),
		Title:         task.Title,
		Description:   task.Description,
		Deadline:      task.Deadline,
		Priority:      task.Priority,
		Status:        task.Status,
		Category:      task.Category,
		AssignedTo:    task.AssignedTo,
		EstimatedTime: task.EstimatedTime,
		Notes:         task.Notes,
		UserId:        task.UserId,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	task, err := ts.repo.Create(ctx, newTask)

	if err != nil {
		slog.Error("Repository create failed", "error", err, "title", newTask.Title)
		return domain.Task{}, err
	}

	return task, nil
}

func (ts *TaskService) UpdateByUUID(ctx context.Context, task domain.Task) (domain.Task, error) {
	task.UpdatedAt = time.Now()

	task, err := ts.repo.UpdateByUUID(ctx, task)

	if err != nil {
		return domain.Task{}, err
	}

	return task, nil
}

func (ts *TaskService) DeleteByUUID(ctx context.Context, uid string) error {
	err := ts.repo.DeleteByUUID(ctx, uid)

	if err != nil {
		return err
	}

	return nil
}

func taskToResponse(task domain.Task) response.TaskResponse {
	return response.TaskResponse{
		UUID:          task.UUID,
		Title:         task.Title,
		Description:   task.Description,
		DeadlineDate:  task.Deadline,
		Priority:      task.PriorityOrFallback(),
		Status:        task.StatusOrFallback(),
		Category:      task.Category,
		AssignedTo:    task.AssignedTo,
		EstimatedTime: task.EstimatedTime,
		Notes:         task.Notes,
		CreatedAt:     task.CreatedAt,
		UpdatedAt:     task.UpdatedAt,
	}
}
