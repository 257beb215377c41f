package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/dayboard/dayboard-api/internal/model"
)

type PostgresTaskRepository struct {
	db *sql.DB
}

func NewPostgresTask(db *sql.DB) *PostgresTaskRepository {
	return &PostgresTaskRepository{db: db}
}

const taskColumns = `id, user_id, title, completed, priority, due_date, due_time, category_id, completed_date, notes, created_at, updated_at`

func (r *PostgresTaskRepository) Create(ctx context.Context, task model.Task) (model.Task, error) {
	query := `
		INSERT INTO tasks (user_id, title, priority, due_date, due_time, category_id, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + taskColumns

	row := r.db.QueryRowContext(ctx, query,
		task.UserID, task.Title, task.Priority,
		task.DueDate, task.DueTime, task.CategoryID, task.Notes,
	)
	return scanTask(row)
}

func (r *PostgresTaskRepository) GetByID(ctx context.Context, userID, taskID string) (model.Task, error) {
	query := `
		SELECT ` + taskColumns + `
		FROM tasks
		WHERE id = $1 AND user_id = $2`

	row := r.db.QueryRowContext(ctx, query, taskID, userID)
	return scanTask(row)
}

func (r *PostgresTaskRepository) Update(ctx context.Context, task model.Task) (model.Task, error) {
	query := `
		UPDATE tasks
		SET title = $1, priority = $2, due_date = $3, due_time = $4, notes = $5, updated_at = now()
		WHERE id = $6 AND user_id = $7
		RETURNING ` + taskColumns

	row := r.db.QueryRowContext(ctx, query,
		task.Title, task.Priority, task.DueDate, task.DueTime, task.Notes,
		task.ID, task.UserID,
	)
	return scanTask(row)
}

func (r *PostgresTaskRepository) Delete(ctx context.Context, userID, taskID string) error {
	query := `DELETE FROM tasks WHERE id = $1 AND user_id = $2`

	result, err := r.db.ExecContext(ctx, query, taskID, userID)
	if err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return sql.ErrNoRows
	}

	return nil
}

// ListForDay fetches with the union of three predicates: due on the day,
// undated, or overdue and still incomplete. Completed carryover is excluded
// on the raw completed flag, not the recurring projection.
func (r *PostgresTaskRepository) ListForDay(ctx context.Context, userID string, day time.Time) ([]model.Task, error) {
	query := `
		SELECT ` + taskColumns + `
		FROM tasks
		WHERE user_id = $1
		  AND (due_date = $2 OR due_date IS NULL OR (due_date < $2 AND completed = FALSE))
		ORDER BY created_at ASC`

	rows, err := r.db.QueryContext(ctx, query, userID, model.DayOf(day))
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	defer rows.Close()

	tasks := []model.Task{}
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate tasks: %w", err)
	}

	return tasks, nil
}

func (r *PostgresTaskRepository) UpdateCompletion(ctx context.Context, userID, taskID string, change model.CompletionChange) (model.Task, error) {
	if change.TrackDate {
		query := `
			UPDATE tasks
			SET completed = $1, completed_date = $2, updated_at = now()
			WHERE id = $3 AND user_id = $4
			RETURNING ` + taskColumns

		row := r.db.QueryRowContext(ctx, query, change.Completed, change.CompletedDate, taskID, userID)
		return scanTask(row)
	}

	// completed_date intentionally untouched for non-recurring categories.
	query := `
		UPDATE tasks
		SET completed = $1, updated_at = now()
		WHERE id = $2 AND user_id = $3
		RETURNING ` + taskColumns

	row := r.db.QueryRowContext(ctx, query, change.Completed, taskID, userID)
	return scanTask(row)
}

func (r *PostgresTaskRepository) SetCategory(ctx context.Context, userID, taskID string, categoryID *string) (model.Task, error) {
	query := `
		UPDATE tasks
		SET category_id = $1, updated_at = now()
		WHERE id = $2 AND user_id = $3
		RETURNING ` + taskColumns

	row := r.db.QueryRowContext(ctx, query, categoryID, taskID, userID)
	return scanTask(row)
}

func scanTask(row scannable) (model.Task, error) {
	var t model.Task
	var dueDate, completedDate sql.NullTime
	var dueTime, categoryID sql.NullString

	err := row.Scan(
		&t.ID, &t.UserID, &t.Title, &t.Completed, &t.Priority,
		&dueDate, &dueTime, &categoryID, &completedDate,
		&t.Notes, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		return model.Task{}, fmt.Errorf("failed to scan task: %w", err)
	}

	if dueDate.Valid {
		t.DueDate = &dueDate.Time
	}
	if dueTime.Valid {
		t.DueTime = &dueTime.String
	}
	if categoryID.Valid {
		t.CategoryID = &categoryID.String
	}
	if completedDate.Valid {
		t.CompletedDate = &completedDate.Time
	}

	return t, nil
}

var _ TaskRepository = (*PostgresTaskRepository)(nil)
