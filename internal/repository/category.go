package repository

import (
	"context"

	"github.com/dayboard/dayboard-api/internal/model"
)

// CategoryRepository is the store contract for categories. Categories are
// soft-deleted only: Archive flips is_active, nothing ever removes a row.
type CategoryRepository interface {
	Create(ctx context.Context, category model.Category) (model.Category, error)
	GetByID(ctx context.Context, userID, categoryID string) (model.Category, error)
	ListActive(ctx context.Context, userID string) ([]model.Category, error)
	HasAnyActive(ctx context.Context, userID string) (bool, error)
	Update(ctx context.Context, category model.Category) (model.Category, error)
	Archive(ctx context.Context, userID, categoryID string) error
	SetSortOrder(ctx context.Context, userID, categoryID string, sortOrder int) error
}
