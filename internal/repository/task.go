package repository

import (
	"context"
	"time"

	"github.com/dayboard/dayboard-api/internal/model"
)

// TaskRepository is the store contract for tasks. Unlike categories, tasks
// are hard-deleted.
type TaskRepository interface {
	Create(ctx context.Context, task model.Task) (model.Task, error)
	GetByID(ctx context.Context, userID, taskID string) (model.Task, error)
	Update(ctx context.Context, task model.Task) (model.Task, error)
	Delete(ctx context.Context, userID, taskID string) error

	// ListForDay returns the tasks eligible for the given day: due that day,
	// undated, or overdue and still incomplete (carryover). Single fetch, no
	// per-category filtering.
	ListForDay(ctx context.Context, userID string, day time.Time) ([]model.Task, error)

	UpdateCompletion(ctx context.Context, userID, taskID string, change model.CompletionChange) (model.Task, error)
	SetCategory(ctx context.Context, userID, taskID string, categoryID *string) (model.Task, error)
}
