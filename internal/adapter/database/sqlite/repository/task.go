package repository

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"time"

	sq "github.com/Masterminds/squirrel"

	"tasktracker/internal/adapter/database/sqlite"
	"tasktracker/internal/core/domain"
	"tasktracker/internal/core/port"
	"tasktracker/internal/core/util"
)

type TaskRepository struct {
	db      *sqlite.DB
	scanner *sqlite.Scanner
}

func NewTaskRepository(db *sqlite.DB) port.TaskRepository {
	return &TaskRepository{
		db:      db,
		scanner: sqlite.NewScanner(),
	}
}

func (tr *TaskRepository) GetAllWithCursor(ctx context.Context, userId int, limit int, cursor string) ([]domain.Task, bool, error) {
	actualLimit := limit + 1

	query := tr.db.QueryBuilder.Select("*").
		From("tasks").
		Where(sq.Eq{"user_id": userId}).
		Where("deleted_at IS NULL").
		OrderBy("created_date DESC, id DESC").
		Limit(uint64(actualLimit))

	if cursor != "" {
		datetimeStr, id, err := util.DecodeCursor(cursor)
		if err != nil {
			return []domain.Task{}, false, err
		}

		datetime, err := time.Parse(time.RFC3339, datetimeStr)
		if err != nil {
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

	rows, err := tr.db.QueryContext(ctx, stmt, args...)
	if err != nil {
		return []domain.Task{}, false, err
	}
	defer rows.Close()

	var tasks []domain.Task
	if err := tr.scanner.ScanRowsToSlice(rows, &tasks); err != nil {
		return []domain.Task{}, false, err
	}

	hasNext := len(tasks) == actualLimit
	if hasNext {
		tasks = tasks[:limit]
	}

	return tasks, hasNext, nil
}

func (tr *TaskRepository) GetByUUID(ctx context.Context, uid string) (domain.Task, error) {
	query := tr.db.QueryBuilder.Select("*").
		From("tasks").
		Where(sq.Eq{"uuid": uid}).
		Where("deleted_at IS NULL").
		Limit(1)

	stmt, args, err := query.ToSql()

	if err != nil {
		return domain.Task{}, err
	}

	rows, err := tr.db.QueryContext(ctx, stmt, args...)

	if err != nil {
		return domain.Task{}, err
	}

	defer rows.Close()

	var task domain.Task
	err = tr.scanner.ScanRowToStruct(rows, &task)

	if errors.Is(err, sql.ErrNoRows) {
		return domain.Task{}, domain.ErrTaskNotFound
	}

	if err != nil {
		slog.Error("Error getting task by uuid", "error", err)
		return domain.Task{}, err
	}

	return task, nil
}

func (tr *TaskRepository) Create(ctx context.Context, task domain.Task) (domain.Task, error) {
	uid := task.UUID.String()

	stmt, args, err := tr.db.QueryBuilder.Insert("tasks").
		Columns(
			"uuid", "title_name", "description", "deadline_date", "priority",
			"status", "category", "assigned_to", "estimated_time", "notes",
			"user_id", "created_date", "update_date",
		).
		Values(
			uid, task.Title, task.Description, task.Deadline, task.Priority,
			task.Status, task.Category, task.AssignedTo, task.EstimatedTime, task.Notes,
			task.UserId, task.CreatedAt, task.UpdatedAt,
		).
		ToSql()

	if err != nil {
		slog.Error("Query build failed", "error", err)
		return domain.Task{}, err
	}

	if _, err := tr.db.ExecContext(ctx, stmt, args...); err != nil {
		slog.Error("Insert failed", "error", err, "uuid", uid)
		return domain.Task{}, err
	}

	saved, err := tr.GetByUUID(ctx, uid)

	if err != nil {
		slog.Error("GetByUUID failed after insert", "error", err, "uuid", uid)
		return domain.Task{}, err
	}

	return saved, nil
}

func (tr *TaskRepository) UpdateByUUID(ctx context.Context, task domain.Task) (domain.Task, error) {
	oldTask, err := tr.GetByUUID(ctx, task.UUID.String())

	if err != nil {
		return domain.Task{}, err
	}

	oldTask.Title = task.Title
	oldTask.Description = task.Description
	oldTask.Deadline = task.Deadline
	oldTask.Priority = task.Priority
	oldTask.Status = task.Status
	oldTask.Category = task.Category
	oldTask.AssignedTo = task.AssignedTo
	oldTask.EstimatedTime = task.EstimatedTime
	oldTask.Notes = task.Notes
	oldTask.UpdatedAt = task.UpdatedAt

	stmt, args, err := tr.db.QueryBuilder.Update("tasks").
		SetMap(oldTask.ToMap()).
		Where(sq.Eq{"uuid": task.UUID.String()}).
		Where("deleted_at IS NULL").
		ToSql()

	if err != nil {
		return domain.Task{}, err
	}

	result, err := tr.db.ExecContext(ctx, stmt, args...)

	if err != nil {
		return domain.Task{}, err
	}

	rowsAffected, _ := result.RowsAffected()

	if rowsAffected == 0 {
		return domain.Task{}, domain.ErrTaskNotFound
	}

	return tr.GetByUUID(ctx, task.UUID.String())
}

func (tr *TaskRepository) DeleteByUUID(ctx context.Context, uid string) error {
	stmt, err := tr.db.PrepareContext(ctx, "UPDATE tasks SET deleted_at = ? WHERE uuid = ? AND deleted_at IS NULL")

	if err != nil {
		return err
	}

	defer stmt.Close()

	result, err := stmt.ExecContext(ctx, time.Now(), uid)

	if err != nil {
		return err
	}

	rowsAffected, _ := result.RowsAffected()

	if rowsAffected == 0 {
		return domain.ErrTaskNotFound
	}

	return nil
}
