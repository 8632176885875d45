package factory

import (
	"time"

	fab "github.com/Goldziher/fabricator"
	"github.com/google/uuid"
)

// NewTask builds a task with defaults that satisfy the struct constraints.
// Fabricator fills the scalar fields; identifiers and timestamps need
// explicit values.
func NewTask[T any](customData ...map[string]any) T {
	instance := fab.New(*new(T))

	defaults := map[string]any{
		"UUID":          uuid.New(),
		"Title":         "Buy groceries",
		"Description":   "Milk, bread, eggs",
		"Priority":      1,
		"Status":        0,
		"Category":      "home",
		"AssignedTo":    "Me",
		"Notes":         "",
		"Deadline":      (*time.Time)(nil),
		"EstimatedTime": (*float64)(nil),
		"DeletedAt":     (*time.Time)(nil),
		"CreatedAt":     time.Now(),
		"UpdatedAt":     time.Now(),
	}

	merged := append([]map[string]any{defaults}, customData...)

	return instance.Build(merged...)
}
