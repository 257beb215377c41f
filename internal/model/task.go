package model

import "time"

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

func (p Priority) IsValid() bool {
	return p == PriorityLow || p == PriorityMedium || p == PriorityHigh
}

// DateLayout is the wire format for calendar dates (due dates, completed
// dates). Dates are day-granular; the DB stores them as DATE columns and
// they scan into midnight-UTC time.Time values.
const DateLayout = "2006-01-02"

// SameDay reports whether two timestamps fall on the same calendar day in UTC.
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.UTC().Date()
	by, bm, bd := b.UTC().Date()
	return ay == by && am == bm && ad == bd
}

// DayOf truncates a timestamp to its calendar day (midnight UTC).
func DayOf(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

type Task struct {
	ID     string `json:"id"`
	UserID string `json:"user_id"`
	Title  string `json:"title"`

	// Completed is the raw stored flag. In a day view this field carries the
	// projected value for tasks in recurring categories; the stored row is
	// never mutated by projection.
	Completed bool     `json:"completed"`
	Priority  Priority `json:"priority"`

	// DueDate is nil for undated tasks, which are eligible for every day view.
	DueDate *time.Time `json:"due_date,omitempty"`
	// DueTime is an optional HH:MM display time, independent of DueDate.
	DueTime *string `json:"due_time,omitempty"`

	// CategoryID is nil for uncategorized tasks.
	CategoryID *string `json:"category_id,omitempty"`

	// CompletedDate records the day the task was last marked complete.
	// Only ToggleCompletion writes it, and only for recurring categories;
	// for non-recurring categories any stored value is stale and ignored.
	CompletedDate *time.Time `json:"completed_date,omitempty"`

	Notes     string    `json:"notes,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CompletionChange describes a completion toggle against the store.
// CompletedDate is only written when TrackDate is set; otherwise the stored
// completed_date is left untouched.
type CompletionChange struct {
	Completed     bool
	CompletedDate *time.Time
	TrackDate     bool
}
