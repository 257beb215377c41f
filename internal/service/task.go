package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dayboard/dayboard-api/internal/model"
	"github.com/dayboard/dayboard-api/internal/repository"
)

// parseDay parses a YYYY-MM-DD string into *time.Time.
// Returns nil for nil or empty input.
func parseDay(s *string) (*time.Time, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	t, err := time.Parse(model.DateLayout, *s)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid date format, expected YYYY-MM-DD", ErrInvalidInput)
	}
	return &t, nil
}

// parseClock validates an HH:MM string. Returns nil for nil or empty input.
func parseClock(s *string) (*string, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	if _, err := time.Parse("15:04", *s); err != nil {
		return nil, fmt.Errorf("%w: invalid time format, expected HH:MM", ErrInvalidInput)
	}
	v := *s
	return &v, nil
}

type CreateTaskInput struct {
	Title      string
	Priority   string  // low|medium|high, defaults to medium
	DueDate    *string // YYYY-MM-DD; nil means undated
	DueTime    *string // HH:MM
	CategoryID *string
	Notes      string
}

// UpdateTaskInput patches mutable task fields. Pointer fields: nil leaves the
// field unchanged, an empty string clears nullable ones. Completion is
// deliberately absent — it must go through ToggleCompletion so completed_date
// bookkeeping cannot be bypassed, and category moves go through
// MoveToCategory.
type UpdateTaskInput struct {
	Title    *string
	Priority *string
	DueDate  *string
	DueTime  *string
	Notes    *string
}

// TaskService covers task mutations: create, edit, hard delete, reparenting,
// and completion toggling with recurring-aware completed_date tracking.
type TaskService struct {
	tasks      repository.TaskRepository
	categories repository.CategoryRepository
	now        func() time.Time
}

func NewTaskService(tasks repository.TaskRepository, categories repository.CategoryRepository) *TaskService {
	return &TaskService{tasks: tasks, categories: categories, now: time.Now}
}

// WithClock overrides the time source. Used by tests.
func (s *TaskService) WithClock(now func() time.Time) *TaskService {
	s.now = now
	return s
}

// Create inserts a new task. The task starts incomplete with a NULL
// completed_date regardless of the target category's recurring flag — a
// freshly created task is never "already completed today".
func (s *TaskService) Create(ctx context.Context, userID string, input CreateTaskInput) (model.Task, error) {
	if userID == "" {
		return model.Task{}, ErrUnauthenticated
	}
	if strings.TrimSpace(input.Title) == "" {
		return model.Task{}, fmt.Errorf("%w: title is required", ErrInvalidInput)
	}

	priority := model.Priority(input.Priority)
	if input.Priority == "" {
		priority = model.PriorityMedium
	}
	if !priority.IsValid() {
		return model.Task{}, fmt.Errorf("%w: priority must be low, medium, or high", ErrInvalidInput)
	}

	dueDate, err := parseDay(input.DueDate)
	if err != nil {
		return model.Task{}, err
	}
	dueTime, err := parseClock(input.DueTime)
	if err != nil {
		return model.Task{}, err
	}

	if input.CategoryID != nil {
		if _, err := s.categories.GetByID(ctx, userID, *input.CategoryID); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return model.Task{}, fmt.Errorf("%w: unknown category", ErrInvalidInput)
			}
			return model.Task{}, fmt.Errorf("failed to check category: %w", err)
		}
	}

	task := model.Task{
		UserID:     userID,
		Title:      input.Title,
		Priority:   priority,
		DueDate:    dueDate,
		DueTime:    dueTime,
		CategoryID: input.CategoryID,
		Notes:      input.Notes,
	}

	created, err := s.tasks.Create(ctx, task)
	if err != nil {
		return model.Task{}, fmt.Errorf("failed to create task: %w", err)
	}
	return created, nil
}

func (s *TaskService) Update(ctx context.Context, userID, taskID string, input UpdateTaskInput) (model.Task, error) {
	if userID == "" {
		return model.Task{}, ErrUnauthenticated
	}

	existing, err := s.tasks.GetByID(ctx, userID, taskID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Task{}, ErrNotFound
		}
		return model.Task{}, fmt.Errorf("failed to get task for update: %w", err)
	}

	if input.Title != nil {
		if strings.TrimSpace(*input.Title) == "" {
			return model.Task{}, fmt.Errorf("%w: title cannot be empty", ErrInvalidInput)
		}
		existing.Title = *input.Title
	}
	if input.Priority != nil {
		priority := model.Priority(*input.Priority)
		if !priority.IsValid() {
			return model.Task{}, fmt.Errorf("%w: priority must be low, medium, or high", ErrInvalidInput)
		}
		existing.Priority = priority
	}
	if input.DueDate != nil {
		dueDate, err := parseDay(input.DueDate)
		if err != nil {
			return model.Task{}, err
		}
		existing.DueDate = dueDate
	}
	if input.DueTime != nil {
		dueTime, err := parseClock(input.DueTime)
		if err != nil {
			return model.Task{}, err
		}
		existing.DueTime = dueTime
	}
	if input.Notes != nil {
		existing.Notes = *input.Notes
	}

	updated, err := s.tasks.Update(ctx, existing)
	if err != nil {
		return model.Task{}, fmt.Errorf("failed to update task: %w", err)
	}
	return updated, nil
}

// ToggleCompletion persists the completed flag. For recurring categories it
// also stamps completed_date with today on completion and clears it on
// un-completion — the only code path that writes completed_date. The caller
// resolves whether the task's category is recurring before calling; the
// toggler does not re-read the category (documented contract, saves a round
// trip). No retries: a failure surfaces so the caller can revert optimistic
// state.
func (s *TaskService) ToggleCompletion(ctx context.Context, userID, taskID string, completed, recurringCategory bool) (model.Task, error) {
	if userID == "" {
		return model.Task{}, ErrUnauthenticated
	}

	change := model.CompletionChange{Completed: completed}
	if recurringCategory {
		change.TrackDate = true
		if completed {
			today := model.DayOf(s.now())
			change.CompletedDate = &today
		}
	}

	updated, err := s.tasks.UpdateCompletion(ctx, userID, taskID, change)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Task{}, ErrNotFound
		}
		return model.Task{}, fmt.Errorf("failed to toggle completion: %w", err)
	}
	return updated, nil
}

// Delete removes the task row permanently. Tasks hard-delete; only categories
// archive.
func (s *TaskService) Delete(ctx context.Context, userID, taskID string) error {
	if userID == "" {
		return ErrUnauthenticated
	}

	if err := s.tasks.Delete(ctx, userID, taskID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to delete task: %w", err)
	}
	return nil
}

// MoveToCategory reparents a task; nil moves it to the uncategorized bucket.
// completed and completed_date are left as-is even across recurring
// boundaries: the next aggregation reinterprets them under the new category's
// rules.
func (s *TaskService) MoveToCategory(ctx context.Context, userID, taskID string, categoryID *string) (model.Task, error) {
	if userID == "" {
		return model.Task{}, ErrUnauthenticated
	}

	if categoryID != nil {
		category, err := s.categories.GetByID(ctx, userID, *categoryID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return model.Task{}, fmt.Errorf("%w: unknown category", ErrInvalidInput)
			}
			return model.Task{}, fmt.Errorf("failed to check category: %w", err)
		}
		if !category.IsActive {
			return model.Task{}, fmt.Errorf("%w: category is archived", ErrInvalidInput)
		}
	}

	moved, err := s.tasks.SetCategory(ctx, userID, taskID, categoryID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Task{}, ErrNotFound
		}
		return model.Task{}, fmt.Errorf("failed to move task: %w", err)
	}
	return moved, nil
}
