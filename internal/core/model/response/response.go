package response

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type UserResponse struct {
	UUID      string    `json:"uuid,omitempty"`
	Login     string    `json:"login,omitempty"`
	CreatedAt time.Time `json:"created_date,omitempty"`
	UpdatedAt time.Time `json:"update_date,omitempty"`
}

type TaskResponse struct {
	UUID          uuid.UUID  `json:"uuid"`
	Title         string     `json:"title_name,omitempty"`
	Description   string     `json:"description,omitempty"`
	DeadlineDate  *time.Time `json:"deadline_date,omitempty"`
	Priority      string     `json:"priority,omitempty"`
	Status        string     `json:"status,omitempty"`
	Category      string     `json:"category,omitempty"`
	AssignedTo    string     `json:"assigned_to,omitempty"`
	EstimatedTime *float64   `json:"estimated_time,omitempty"`
	Notes         string     `json:"notes,omitempty"`
	CreatedAt     time.Time  `json:"created_date"`
	UpdatedAt     time.Time  `json:"update_date"`
}

type CursorData struct {
	Datetime string `json:"datetime"`
	ID       int    `json:"id,omitempty"`
}

type CursorResponse struct {
	Size       int             `json:"size"`
	Data       json.RawMessage `json:"data"`
	Pagination struct {
		HasNext    bool   `json:"has_next"`
		NextCursor string `json:"next_cursor"`
	} `json:"pagination"`
}

type SuccessResponse struct {
	Data    any    `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
}
