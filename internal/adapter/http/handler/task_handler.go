package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	. "tasktracker/internal/adapter/http/helper"
	. "tasktracker/internal/adapter/http/validation"
	"tasktracker/internal/core/domain"
	"tasktracker/internal/core/model/request"
	"tasktracker/internal/core/model/response"
	"tasktracker/internal/core/port"
	"tasktracker/internal/core/util"
	"tasktracker/internal/core/validation"
	"tasktracker/internal/shared"
	. "tasktracker/pkg/tracing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

type TaskHandler struct {
	svc    port.TaskService
	Logger *shared.LokiLogger
}

func NewTaskHandler(svc port.TaskService, logger *shared.LokiLogger) *TaskHandler {
	return &TaskHandler{
		svc:    svc,
		Logger: logger,
	}
}

func (t *TaskHandler) GetAllTasks(c *gin.Context) {
	ctx, span := CreateChildSpan(c.Request.Context(), "handler.task.GetAllTasks", []attribute.KeyValue{
		attribute.String("handler.operation", "GetAllTasks"),
		attribute.String("handler.method", c.Request.Method),
		attribute.String("handler.path", c.FullPath()),
	})

	defer span.End()

	userId := c.GetInt("x-user-id")
	cursor := c.Query("cursor")
	limit, _ := strconv.Atoi(c.Query("limit"))

	if limit <= 0 {
		limit = 10
	}

	span.SetAttributes(
		attribute.Int("user.id", userId),
		attribute.String("task.cursor", cursor),
		attribute.Int("task.limit", limit),
	)

	data, err := t.svc.GetTasksWithPagination(ctx, userId, limit, cursor)

	if err != nil {
		AddSpanError(span, err)

		t.Logger.Logger.Ctx(ctx).Error("Failed to get tasks",
			zap.Error(err),
			zap.Int("user_id", userId),
		)

		SendInternalError(c)
		return
	}

	c.JSON(http.StatusOK, data)
}

func (t *TaskHandler) GetTask(c *gin.Context) {
	ctx := c.Request.Context()
	userId := c.GetInt("x-user-id")

	task, err := t.svc.GetByUUID(ctx, c.Param("uuid"))

	if errors.Is(err, domain.ErrTaskNotFound) {
		SendNotFoundError(c, "Task not found")
		return
	}

	if err != nil {
		slog.Error("Error getting task", "error", err)
		SendInternalError(c)
		return
	}

	if !task.BelongsToUser(userId) {
		SendForbiddenError(c, "Task belongs to another user")
		return
	}

	SendSuccess(c, http.StatusOK, toTaskResponse(task))
}

func (t *TaskHandler) CreateTask(c *gin.Context) {
	ctx := c.Request.Context()
	userId := c.GetInt("x-user-id")

	vals, err := util.ParamsToValues(c)

	if err != nil {
		SendBadRequestError(c, "Invalid request body")
		return
	}

	if errs := validation.Validate(validation.TaskRules, vals); len(errs) > 0 {
		SendValidationErrors(c, errs)
		return
	}

	params := request.TaskFromValues(vals)

	task, ok := t.buildTask(c, params)

	if !ok {
		return
	}

	task.UserId = userId

	if err := Validator.Struct(task); err != nil {
		SendValidationError(c, err)
		return
	}

	task, err = t.svc.Create(ctx, task)

	if err != nil {
		slog.Error("Error creating task", "error", err)
		SendInternalError(c)
		return
	}

	SendSuccess(c, http.StatusCreated, toTaskResponse(task))
}

func (t *TaskHandler) UpdateTask(c *gin.Context) {
	ctx := c.Request.Context()
	userId := c.GetInt("x-user-id")

	uid, err := uuid.Parse(c.Param("uuid"))

	if err != nil {
		SendBadRequestError(c, "Invalid task id")
		return
	}

	vals, err := util.ParamsToValues(c)

	if err != nil {
		SendBadRequestError(c, "Invalid request body")
		return
	}

	if errs := validation.Validate(validation.TaskRules, vals); len(errs) > 0 {
		SendValidationErrors(c, errs)
		return
	}

	existing, err := t.svc.GetByUUID(ctx, uid.String())

	if errors.Is(err, domain.ErrTaskNotFound) {
		SendNotFoundError(c, "Task not found")
		return
	}

	if err != nil {
		slog.Error("Error getting task", "error", err)
		SendInternalError(c)
		return
	}

	if !existing.BelongsToUser(userId) {
		SendForbiddenError(c, "Task belongs to another user")
		return
	}

	params := request.TaskFromValues(vals)

	task, ok := t.buildTask(c, params)

	if !ok {
		return
	}

	task.UUID = uid
	task.UserId = userId

	if err := Validator.Struct(task); err != nil {
		SendValidationError(c, err)
		return
	}

	task, err = t.svc.UpdateByUUID(ctx, task)

	if err != nil {
		slog.Error("Error updating task", "error", err)
		SendInternalError(c)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": toTaskResponse(task)})
}

func (t *TaskHandler) DeleteByUUID(c *gin.Context) {
	ctx := c.Request.Context()
	userId := c.GetInt("x-user-id")

	task, err := t.svc.GetByUUID(ctx, c.Param("uuid"))

	if errors.Is(err, domain.ErrTaskNotFound) {
		SendNotFoundError(c, "Task not found")
		return
	}

	if err != nil {
		slog.Error("Error getting task", "error", err)
		SendInternalError(c)
		return
	}

	if !task.BelongsToUser(userId) {
		SendForbiddenError(c, "Task belongs to another user")
		return
	}

	if err := t.svc.DeleteByUUID(ctx, c.Param("uuid")); err != nil {
		if errors.Is(err, domain.ErrTaskNotFound) {
			SendNotFoundError(c, "Task not found")
			return
		}

		slog.Error("Error deleting task", "error", err)
		SendInternalError(c)
		return
	}

	c.Status(http.StatusNoContent)
}

// buildTask lifts validated params into a domain task. Enum values outside
// their sets are rejected with 400 before any write.
func (t *TaskHandler) buildTask(c *gin.Context, params request.TaskRequest) (domain.Task, bool) {
	status, err := domain.StatusToEnum(params.Status)

	if err != nil {
		SendBadRequestError(c, err.Error())
		return domain.Task{}, false
	}

	priority, err := domain.PriorityToEnum(params.Priority)

	if err != nil {
		SendBadRequestError(c, err.Error())
		return domain.Task{}, false
	}

	return domain.Task{
		Title:         params.Title,
		Description:   params.Description,
		Deadline:      parseDeadline(params.DeadlineDate),
		Priority:      priority,
		Status:        status,
		Category:      params.Category,
		AssignedTo:    params.AssignedTo,
		EstimatedTime: params.EstimatedTime,
		Notes:         params.Notes,
	}, true
}

// parseDeadline tolerates unparseable dates the way the validator does:
// they pass validation and are stored as no deadline.
func parseDeadline(raw string) *time.Time {
	if raw == "" {
		return nil
	}

	parsed, err := time.Parse("2006-01-02", raw)

	if err != nil {
		return nil
	}

	return &parsed
}

func toTaskResponse(task domain.Task) response.TaskResponse {
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
