package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/dayboard/dayboard-api/internal/model"
	"github.com/dayboard/dayboard-api/internal/repository"
)

// defaultCategories is the starter set created once per user by
// EnsureBootstrap. Habits is recurring: its tasks reset every day.
var defaultCategories = []model.Category{
	{Name: "Today", Icon: "sun", Color: "#F59E0B"},
	{Name: "Habits", Icon: "repeat", Color: "#10B981", IsRecurring: true},
	{Name: "Work", Icon: "briefcase", Color: "#3B82F6"},
	{Name: "Personal", Icon: "home", Color: "#8B5CF6"},
}

type CreateCategoryInput struct {
	Name        string
	Icon        string
	Color       string
	IsRecurring bool
}

type UpdateCategoryInput struct {
	Name        *string
	Icon        *string
	Color       *string
	IsRecurring *bool
}

// ReorderResult reports the outcome of one per-id sort order update.
// Reorder is a best-effort batch: some updates may succeed while others fail,
// and nothing is rolled back.
type ReorderResult struct {
	ID  string
	Err error
}

// CategoryService owns the category lifecycle: create, update, archive,
// reorder, and the one-time bootstrap of the starter set.
type CategoryService struct {
	repo repository.CategoryRepository
}

func NewCategoryService(repo repository.CategoryRepository) *CategoryService {
	return &CategoryService{repo: repo}
}

// List returns the caller's active categories in display order. A missing
// owner degrades to an empty list rather than an error: read paths treat
// "no owner" as "nothing to show".
func (s *CategoryService) List(ctx context.Context, userID string) ([]model.Category, error) {
	if userID == "" {
		return []model.Category{}, nil
	}

	categories, err := s.repo.ListActive(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	return categories, nil
}

func (s *CategoryService) Create(ctx context.Context, userID string, input CreateCategoryInput) (model.Category, error) {
	if userID == "" {
		return model.Category{}, ErrUnauthenticated
	}
	if strings.TrimSpace(input.Name) == "" {
		return model.Category{}, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}

	category := model.Category{
		UserID:      userID,
		Name:        input.Name,
		Icon:        input.Icon,
		Color:       input.Color,
		IsRecurring: input.IsRecurring,
	}

	created, err := s.repo.Create(ctx, category)
	if err != nil {
		return model.Category{}, fmt.Errorf("failed to create category: %w", err)
	}
	return created, nil
}

func (s *CategoryService) Update(ctx context.Context, userID, categoryID string, input UpdateCategoryInput) (model.Category, error) {
	if userID == "" {
		return model.Category{}, ErrUnauthenticated
	}

	existing, err := s.repo.GetByID(ctx, userID, categoryID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Category{}, ErrNotFound
		}
		return model.Category{}, fmt.Errorf("failed to get category for update: %w", err)
	}

	if input.Name != nil {
		if strings.TrimSpace(*input.Name) == "" {
			return model.Category{}, fmt.Errorf("%w: name cannot be empty", ErrInvalidInput)
		}
		existing.Name = *input.Name
	}
	if input.Icon != nil {
		existing.Icon = *input.Icon
	}
	if input.Color != nil {
		existing.Color = *input.Color
	}
	if input.IsRecurring != nil {
		existing.IsRecurring = *input.IsRecurring
	}

	updated, err := s.repo.Update(ctx, existing)
	if err != nil {
		return model.Category{}, fmt.Errorf("failed to update category: %w", err)
	}
	return updated, nil
}

// Archive soft-deletes a category. Its tasks are never touched; they surface
// in the day view's uncategorized bucket until moved. Archiving an archived
// category is a no-op success.
func (s *CategoryService) Archive(ctx context.Context, userID, categoryID string) error {
	if userID == "" {
		return ErrUnauthenticated
	}

	if err := s.repo.Archive(ctx, userID, categoryID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to archive category: %w", err)
	}
	return nil
}

// Reorder assigns sort_order = position for each id, issuing independent
// single-row updates. The store offers no multi-row transaction, so a failure
// mid-batch leaves earlier updates in place; callers get a per-id result list
// instead of a fake all-or-nothing answer.
func (s *CategoryService) Reorder(ctx context.Context, userID string, orderedIDs []string) ([]ReorderResult, error) {
	if userID == "" {
		return nil, ErrUnauthenticated
	}
	if len(orderedIDs) == 0 {
		return nil, fmt.Errorf("%w: ordered ids are required", ErrInvalidInput)
	}

	results := make([]ReorderResult, 0, len(orderedIDs))
	for pos, id := range orderedIDs {
		err := s.repo.SetSortOrder(ctx, userID, id, pos)
		if errors.Is(err, sql.ErrNoRows) {
			err = ErrNotFound
		}
		results = append(results, ReorderResult{ID: id, Err: err})
	}
	return results, nil
}

// EnsureBootstrap creates the starter categories for owners that have none.
// The existence check makes repeated calls no-ops; without a transactional
// guard two concurrent first calls can race, which is accepted as a narrow
// known limitation.
func (s *CategoryService) EnsureBootstrap(ctx context.Context, userID string) ([]model.Category, error) {
	if userID == "" {
		return nil, ErrUnauthenticated
	}

	exists, err := s.repo.HasAnyActive(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing categories: %w", err)
	}
	if exists {
		return []model.Category{}, nil
	}

	created := make([]model.Category, 0, len(defaultCategories))
	for pos, def := range defaultCategories {
		def.UserID = userID
		def.SortOrder = pos
		c, err := s.repo.Create(ctx, def)
		if err != nil {
			return created, fmt.Errorf("failed to bootstrap category %q: %w", def.Name, err)
		}
		created = append(created, c)
	}
	return created, nil
}
