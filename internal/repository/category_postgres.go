package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dayboard/dayboard-api/internal/model"
)

type PostgresCategoryRepository struct {
	db *sql.DB
}

func NewPostgresCategory(db *sql.DB) *PostgresCategoryRepository {
	return &PostgresCategoryRepository{db: db}
}

const categoryColumns = `id, user_id, name, icon, color, sort_order, is_recurring, is_active, created_at, updated_at`

func (r *PostgresCategoryRepository) Create(ctx context.Context, category model.Category) (model.Category, error) {
	query := `
		INSERT INTO categories (user_id, name, icon, color, sort_order, is_recurring)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + categoryColumns

	row := r.db.QueryRowContext(ctx, query,
		category.UserID, category.Name, category.Icon, category.Color,
		category.SortOrder, category.IsRecurring,
	)
	return scanCategory(row)
}

func (r *PostgresCategoryRepository) GetByID(ctx context.Context, userID, categoryID string) (model.Category, error) {
	query := `
		SELECT ` + categoryColumns + `
		FROM categories
		WHERE id = $1 AND user_id = $2`

	row := r.db.QueryRowContext(ctx, query, categoryID, userID)
	return scanCategory(row)
}

func (r *PostgresCategoryRepository) ListActive(ctx context.Context, userID string) ([]model.Category, error) {
	query := `
		SELECT ` + categoryColumns + `
		FROM categories
		WHERE user_id = $1 AND is_active = TRUE
		ORDER BY sort_order ASC, created_at ASC`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	defer rows.Close()

	categories := []model.Category{}
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate categories: %w", err)
	}

	return categories, nil
}

func (r *PostgresCategoryRepository) HasAnyActive(ctx context.Context, userID string) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM categories WHERE user_id = $1 AND is_active = TRUE)`

	var exists bool
	if err := r.db.QueryRowContext(ctx, query, userID).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check categories: %w", err)
	}
	return exists, nil
}

func (r *PostgresCategoryRepository) Update(ctx context.Context, category model.Category) (model.Category, error) {
	query := `
		UPDATE categories
		SET name = $1, icon = $2, color = $3, is_recurring = $4, updated_at = now()
		WHERE id = $5 AND user_id = $6
		RETURNING ` + categoryColumns

	row := r.db.QueryRowContext(ctx, query,
		category.Name, category.Icon, category.Color, category.IsRecurring,
		category.ID, category.UserID,
	)
	return scanCategory(row)
}

// Archive soft-deletes: the row and its tasks stay in place. Re-archiving an
// already-archived category matches the row again, so the call is idempotent.
func (r *PostgresCategoryRepository) Archive(ctx context.Context, userID, categoryID string) error {
	query := `
		UPDATE categories
		SET is_active = FALSE, updated_at = now()
		WHERE id = $1 AND user_id = $2`

	result, err := r.db.ExecContext(ctx, query, categoryID, userID)
	if err != nil {
		return fmt.Errorf("failed to archive category: %w", err)
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

func (r *PostgresCategoryRepository) SetSortOrder(ctx context.Context, userID, categoryID string, sortOrder int) error {
	query := `
		UPDATE categories
		SET sort_order = $1, updated_at = now()
		WHERE id = $2 AND user_id = $3`

	result, err := r.db.ExecContext(ctx, query, sortOrder, categoryID, userID)
	if err != nil {
		return fmt.Errorf("failed to set sort order: %w", err)
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

type scannable interface {
	Scan(dest ...any) error
}

func scanCategory(row scannable) (model.Category, error) {
	var c model.Category
	err := row.Scan(
		&c.ID, &c.UserID, &c.Name, &c.Icon, &c.Color,
		&c.SortOrder, &c.IsRecurring, &c.IsActive, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return model.Category{}, fmt.Errorf("failed to scan category: %w", err)
	}
	return c, nil
}

// ensure compile-time interface compliance
var _ CategoryRepository = (*PostgresCategoryRepository)(nil)
