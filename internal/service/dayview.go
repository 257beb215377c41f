package service

import (
	"context"
	"fmt"
	"time"

	"github.com/dayboard/dayboard-api/internal/model"
	"github.com/dayboard/dayboard-api/internal/repository"
)

// EligibleOn reports whether a task belongs in the view for the given day:
// due that day, undated (always eligible), or overdue and still incomplete
// (carryover). Carryover checks the raw completed flag, not the recurring
// projection — a recurring task with a stale completed=true from a prior
// toggle is excluded from carryover even though its projected state for the
// day is "not done".
func EligibleOn(t model.Task, day time.Time) bool {
	if t.DueDate == nil {
		return true
	}
	due := model.DayOf(*t.DueDate)
	d := model.DayOf(day)
	if due.Equal(d) {
		return true
	}
	return due.Before(d) && !t.Completed
}

// ProjectCompletion computes the completion state a task displays on the
// given day, without touching the stored row. Tasks in recurring categories
// complete per calendar day: done only when completed_date matches the viewed
// day. Everything else passes the stored flag through.
func ProjectCompletion(t model.Task, recurring bool, day time.Time) bool {
	if !recurring {
		return t.Completed
	}
	return t.CompletedDate != nil && model.SameDay(*t.CompletedDate, day)
}

// DayViewService aggregates the categorized task view for a single calendar
// day. Recurring categories never generate new task rows per day; only their
// completion semantics differ, so the view is recomputed on every read.
type DayViewService struct {
	categories repository.CategoryRepository
	tasks      repository.TaskRepository
}

func NewDayViewService(categories repository.CategoryRepository, tasks repository.TaskRepository) *DayViewService {
	return &DayViewService{categories: categories, tasks: tasks}
}

// GetDayView returns the ordered category→tasks groups for the given day.
// A missing owner yields an empty-but-valid view, not an error. The
// uncategorized bucket is always the last group, even when empty — callers
// render it unconditionally. Tasks whose category is archived or unknown
// fold into the uncategorized bucket with their raw completion.
func (s *DayViewService) GetDayView(ctx context.Context, userID string, day time.Time) (model.DayView, error) {
	day = model.DayOf(day)
	view := model.DayView{Date: day.Format(model.DateLayout)}

	if userID == "" {
		view.Groups = []model.CategoryGroup{{Category: model.Uncategorized(), Tasks: []model.Task{}}}
		return view, nil
	}

	categories, err := s.categories.ListActive(ctx, userID)
	if err != nil {
		return model.DayView{}, fmt.Errorf("failed to list categories: %w", err)
	}

	recurring := make(map[string]bool, len(categories))
	active := make(map[string]bool, len(categories))
	for _, c := range categories {
		active[c.ID] = true
		if c.IsRecurring {
			recurring[c.ID] = true
		}
	}

	tasks, err := s.tasks.ListForDay(ctx, userID, day)
	if err != nil {
		return model.DayView{}, fmt.Errorf("failed to list tasks: %w", err)
	}

	byCategory := make(map[string][]model.Task)
	unfiled := []model.Task{}
	for _, t := range tasks {
		if !EligibleOn(t, day) {
			continue
		}
		if t.CategoryID == nil || !active[*t.CategoryID] {
			unfiled = append(unfiled, t)
			continue
		}
		t.Completed = ProjectCompletion(t, recurring[*t.CategoryID], day)
		byCategory[*t.CategoryID] = append(byCategory[*t.CategoryID], t)
	}

	groups := make([]model.CategoryGroup, 0, len(categories)+1)
	for _, c := range categories {
		grouped := byCategory[c.ID]
		if grouped == nil {
			grouped = []model.Task{}
		}
		groups = append(groups, model.CategoryGroup{Category: c, Tasks: grouped})
	}
	groups = append(groups, model.CategoryGroup{Category: model.Uncategorized(), Tasks: unfiled})

	view.Groups = groups
	return view, nil
}
