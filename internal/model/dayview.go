package model

// CategoryGroup is one section of a day view: a category and the tasks that
// belong to it on the viewed day, with recurring completion already projected.
type CategoryGroup struct {
	Category Category `json:"category"`
	Tasks    []Task   `json:"tasks"`
}

// DayView is the ephemeral aggregation result for one calendar day. Groups
// follow category sort order; the uncategorized bucket is always last and
// always present.
type DayView struct {
	Date   string          `json:"date"`
	Groups []CategoryGroup `json:"groups"`
}
