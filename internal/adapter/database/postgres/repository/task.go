package repository

import (
	"context"
	"errors"
	"log/slog"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"go.opentelemetry.io/otel/attribute"

	"tasktracker/internal/adapter/database/postgres"
	"tasktracker/internal/core/domain"
	"tasktracker/internal/core/port"
	"tasktracker/internal/core/util"
	"tasktracker/pkg/tracing"
)

const taskColumns = "id, uuid, title_name, description, deadline_date, priority, status, category, assigned_to, estimated_time, notes, user_id, created_date, update_date"

type TaskRepository struct {
	db *postgres.DB
}

func NewTaskRepository(db *postgres.DB) port.TaskRepository {
	return &TaskRepository{db: db}
}

func scanTask(row pgx.Row, task *domain.Task) error {
	return row.Scan(
		&task.ID,
		&task.UUID,
		&task.Title,
		&task.Description,
		&task.Deadline,
		&task.Priority,
		&task.Status,
		&task.Category,
		&task.AssignedTo,
		&task.EstimatedTime,
		&task.Notes,
		&task.UserId,
		&task.CreatedAt,
		&task.UpdatedAt,
	)
}

func (tr *TaskRepository) GetAllWithCursor(ctx context.Context, userId int, limit int, cursor string) ([]domain.Task, bool, error) {
	ctx, span := tracing.CreateChildSpan(ctx, "db.task.GetAllWithCursor", []attribute.KeyValue{
		attribute.String("db.table", "tasks"),
		attribute.String("db.operation", "SELECT"),
		attribute.Int("user.id", userId),
		attribute.Int("task.limit", limit),
		attribute.String("task.cursor", cursor),
	})

	defer span.End()

	actualLimit := limit + 1

	query := tr.db.QueryBuilder.Select(taskColumns).
		From("tasks").
		Where(sq.Eq{"user_id": userId}).
		Where("deleted_at IS NULL").
		OrderBy("created_date DESC, id DESC").
		Limit(uint64(actualLimit))

	if cursor != "" {
		datetimeStr, id, err := util.DecodeCursor(cursor)

		if err != nil {
			tracing.AddSpanError(span, err)
			slog.Error("Error decoding cursor", "error", err)

			return []domain.Task{}, false, err
		}

		datetime, err := time.Parse(time.RFC3339, datetimeStr)

		if err != nil {
			slog.Error("Error parsing cursor datetime", "error", err, "datetime", datetimeStr)
			return []domain.Task{}, false, err
		}

		query = query.Where(sq.Or{
			sq.Lt{"created_date": datetime},
			sq.And{
				sq.Eq{"created_date": datetime},
				sq.Lt{"id": id},
			},
		})
	}

	stmt, args, err := query.ToSql()

	if err != nil {
		return []domain.Task{}, false, err
	}

	rows, err := tr.db.Query(ctx, stmt, args...)

	if err != nil {
		slog.Error("Error fetching tasks", "error", err)
		return []domain.Task{}, false, err
	}

	defer rows.Close()

	data := []domain.Task{}

	for rows.Next() {
		var task domain.Task

		if err := scanTask(rows, &task); err != nil {
			return []domain.Task{}, false, err
		}

		data = append(data, task)
	}

	hasNext := len(data) == actualLimit

	if hasNext {
		data = data[:limit]
	}

	span.SetAttributes(
		attribute.Int("db.rows_returned", len(data)),
		attribute.Bool("db.has_next", hasNext),
	)

	return data, hasNext, nil
}

func (tr *TaskRepository) GetByUUID(ctx context.Context, uid string) (domain.Task, error) {
	query := tr.db.QueryBuilder.Select(taskColumns).
		From("tasks").
		Where(sq.Eq{"uuid": uid}).
		Where(sq.Eq{"deleted_at": nil}).
		Limit(1)

	stmt, args, err := query.ToSql()

	if err != nil {
		return domain.Task{}, err
	}

	var task domain.Task
	err = scanTask(tr.db.QueryRow(ctx, stmt, args...), &task)

	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Task{}, domain.ErrTaskNotFound
	}

	if err != nil {
		slog.Error("Error getting task by uuid", "error", err)
		return domain.Task{}, err
	}

	return task, nil
}

func (tr *TaskRepository) Create(ctx context.Context, task domain.Task) (domain.Task, error) {
	query := tr.db.QueryBuilder.Insert("tasks").
		Columns(
			"uuid", "title_name", "description", "deadline_date", "priority",
			"status", "category", "assigned_to", "estimated_time", "notes",
			"user_id", "created_date", "update_date",
		).
		Values(
			task.UUID.String(), task.Title, task.Description, task.Deadline, task.Priority,
			task.Status, task.Category, task.AssignedTo, task.EstimatedTime, task.Notes,
			task.UserId, task.CreatedAt, task.UpdatedAt,
		).
		Suffix("RETURNING " + taskColumns)

	stmt, args, err := query.ToSql()

	if err != nil {
		return domain.Task{}, err
	}

	var saved domain.Task
	if err := scanTask(tr.db.QueryRow(ctx, stmt, args...), &saved); err != nil {
		slog.Error("Error creating task", "error", err)
		return domain.Task{}, err
	}

	return saved, nil
}

func (tr *TaskRepository) UpdateByUUID(ctx context.Context, task domain.Task) (domain.Task, error) {
	query := tr.db.QueryBuilder.Update("tasks").
		SetMap(map[string]interface{}{
			"title_name":     task.Title,
			"description":    task.Description,
			"deadline_date":  task.Deadline,
			"priority":       task.Priority,
			"status":         task.Status,
			"category":       task.Category,
			"assigned_to":    task.AssignedTo,
			"estimated_time": task.EstimatedTime,
			"notes":          task.Notes,
			"update_date":    task.UpdatedAt,
		}).
		Where(sq.Eq{"uuid": task.UUID.String()}).
		Where(sq.Eq{"deleted_at": nil}).
		Suffix("RETURNING " + taskColumns)

	stmt, args, err := query.ToSql()

	if err != nil {
		return domain.Task{}, err
	}

	var updated domain.Task
	err = scanTask(tr.db.QueryRow(ctx, stmt, args...), &updated)

	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Task{}, domain.ErrTaskNotFound
	}

	if err != nil {
		slog.Error("Error updating task", "error", err)
		return domain.Task{}, err
	}

	return updated, nil
}

func (tr *TaskRepository) DeleteByUUID(ctx context.Context, uid string) error {
	query := tr.db.QueryBuilder.Update("tasks").
		Set("deleted_at", time.Now()).
		Where(sq.Eq{"uuid": uid}).
		Where(sq.Eq{"deleted_at": nil}).
		Suffix("RETURNING uuid")

	stmt, args, err := query.ToSql()

	if err != nil {
		return err
	}

	var deleted string
	if err := tr.db.QueryRow(ctx, stmt, args...).Scan(&deleted); err != nil {
		return domain.ErrTaskNotFound
	}

	return nil
}
