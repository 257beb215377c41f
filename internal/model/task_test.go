package model_test

import (
	"testing"
	"time"

	"github.com/dayboard/dayboard-api/internal/model"
)

func TestPriority_IsValid(t *testing.T) {
	tests := []struct {
		name     string
		priority model.Priority
		want     bool
	}{
		{"low", model.PriorityLow, true},
		{"medium", model.PriorityMedium, true},
		{"high", model.PriorityHigh, true},
		{"empty", model.Priority(""), false},
		{"invalid", model.Priority("urgent"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.priority.IsValid(); got != tt.want {
				t.Errorf("Priority(%q).IsValid() = %v, want %v", tt.priority, got, tt.want)
			}
		})
	}
}

func TestSameDay(t *testing.T) {
	tests := []struct {
		name string
		a    time.Time
		b    time.Time
		want bool
	}{
		{
			"same instant",
			time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC),
			time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC),
			true,
		},
		{
			"same day different hours",
			time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC),
			time.Date(2025, 6, 15, 23, 59, 59, 0, time.UTC),
			true,
		},
		{
			"adjacent days",
			time.Date(2025, 6, 15, 23, 59, 59, 0, time.UTC),
			time.Date(2025, 6, 16, 0, 0, 0, 0, time.UTC),
			false,
		},
		{
			"zone normalized to UTC",
			time.Date(2025, 6, 15, 23, 0, 0, 0, time.FixedZone("JST", 9*3600)),
			time.Date(2025, 6, 15, 14, 0, 0, 0, time.UTC),
			true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := model.SameDay(tt.a, tt.b); got != tt.want {
				t.Errorf("SameDay(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestDayOf(t *testing.T) {
	in := time.Date(2025, 6, 15, 18, 30, 45, 123, time.UTC)
	want := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)
	if got := model.DayOf(in); !got.Equal(want) {
		t.Errorf("DayOf(%v) = %v, want %v", in, got, want)
	}
}

func TestUncategorized(t *testing.T) {
	c := model.Uncategorized()
	if c.ID != model.UncategorizedID {
		t.Errorf("expected id %q, got %q", model.UncategorizedID, c.ID)
	}
	if c.IsRecurring {
		t.Error("uncategorized bucket must never be recurring")
	}
	if !c.IsActive {
		t.Error("uncategorized bucket must be active")
	}
}
