package model

import "time"

// UncategorizedID is the fixed identity of the synthetic bucket that holds
// tasks without a category. It never exists as a row in the store.
const UncategorizedID = "uncategorized"

type Category struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	Name        string    `json:"name"`
	Icon        string    `json:"icon"`
	Color       string    `json:"color"`
	SortOrder   int       `json:"sort_order"`
	IsRecurring bool      `json:"is_recurring"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Uncategorized returns the synthetic category appended to every day view.
// It is always non-recurring: tasks without a category keep their stored
// completion flag.
func Uncategorized() Category {
	return Category{
		ID:       UncategorizedID,
		Name:     "Uncategorized",
		IsActive: true,
	}
}
