package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

type TaskPriority int

const (
	TaskPriorityLow TaskPriority = iota
	TaskPriorityMedium
	TaskPriorityHigh
)

type TaskStatus int

const (
	TaskStatusPending TaskStatus = iota
	TaskStatusInProgress
	TaskStatusCompleted
)

// Task column names follow the legacy schema (title_name, deadline_date,
// assigned_to, created_date, update_date).
type Task struct {
	ID            int          `db:"id"`
	UUID          uuid.UUID    `db:"uuid"`
	Title         string       `db:"title_name" validate:"required,min=3,max=50"`
	Description   string       `db:"description" validate:"max=500"`
	Deadline      *time.Time   `db:"deadline_date"`
	Priority      int          `db:"priority" validate:"oneof=0 1 2"`
	Status        int          `db:"status" validate:"oneof=0 1 2"`
	Category      string       `db:"category" validate:"omitempty,min=2,max=30"`
	AssignedTo    string       `db:"assigned_to" validate:"max=50"`
	EstimatedTime *float64     `db:"estimated_time" validate:"omitempty,gte=0,lte=1000"`
	Notes         string       `db:"notes" validate:"max=200"`
	UserId        int          `db:"user_id"`
	CreatedAt     time.Time    `db:"created_date"`
	UpdatedAt     time.Time    `db:"update_date"`
	DeletedAt     *time.Time   `db:"deleted_at"`
}

func (t *Task) ToMap() map[string]interface{} {
	return map[string]interface{}{
		"id":             t.ID,
		"uuid":           t.UUID,
		"title_name":     t.Title,
		"description":    t.Description,
		"deadline_date":  t.Deadline,
		"priority":       t.Priority,
		"status":         t.Status,
		"category":       t.Category,
		"assigned_to":    t.AssignedTo,
		"estimated_time": t.EstimatedTime,
		"notes":          t.Notes,
		"user_id":        t.UserId,
		"created_date":   t.CreatedAt,
		"update_date":    t.UpdatedAt,
	}
}

func (t *Task) IsDeleted() bool {
	return t.DeletedAt != nil
}

func (t *Task) BelongsToUser(userID int) bool {
	return t.UserId == userID
}

func (t *Task) StatusOrFallback(fallback ...string) string {
	status := func() string {
		defer func() {
			recover()
		}()

		return TaskStatus(t.Status).String()
	}()

	if status == "" {
		if len(fallback) > 0 && fallback[0] != "" {
			status = fallback[0]
		} else {
			status = "unknown"
		}
	}

	return status
}

func (t *Task) PriorityOrFallback(fallback ...string) string {
	priority := func() string {
		defer func() {
			recover()
		}()

		return TaskPriority(t.Priority).String()
	}()

	if priority == "" {
		if len(fallback) > 0 && fallback[0] != "" {
			priority = fallback[0]
		} else {
			priority = "unknown"
		}
	}

	return priority
}

func (s TaskStatus) String() string {
	return []string{"pending", "in_progress", "completed"}[s]
}

func (p TaskPriority) String() string {
	return []string{"low", "medium", "high"}[p]
}

func StatusToEnum(status string) (int, error) {
	switch status {
	case "pending", "":
		return int(TaskStatusPending), nil
	case "in_progress":
		return int(TaskStatusInProgress), nil
	case "completed":
		return int(TaskStatusCompleted), nil
	default:
		return -1, fmt.Errorf("invalid status: %s", status)
	}
}

func PriorityToEnum(priority string) (int, error) {
	switch priority {
	case "medium", "":
		return int(TaskPriorityMedium), nil
	case "low":
		return int(TaskPriorityLow), nil
	case "high":
		return int(TaskPriorityHigh), nil
	default:
		return -1, fmt.Errorf("invalid priority: %s", priority)
	}
}
