package model

import (
	"time"

	"github.com/Tiliavir/trivial-day-planner/internal/category"
)

// Activity is a named, categorized task whose time is tracked.
type Activity struct {
	ID       string            `json:"id" yaml:"id"`
	Name     string            `json:"name" yaml:"name"`
	Category category.Category `json:"category" yaml:"category"`
	// DurationSeconds is the committed total across all paused/stopped sessions.
	DurationSeconds int64 `json:"duration_seconds" yaml:"duration_seconds"`
	Running         bool  `json:"running" yaml:"-"`
	// StartedAt is set only while Running.
	StartedAt *time.Time `json:"started_at,omitempty" yaml:"-"`
}

// Event is a calendar entry shown in the week grid.
type Event struct {
	ID       string            `json:"id"`
	Title    string            `json:"title"`
	Start    time.Time         `json:"start"`
	End      time.Time         `json:"end"`
	Category category.Category `json:"category,omitempty"`
	// Color overrides the category color when set.
	Color  string `json:"color,omitempty"`
	AllDay bool   `json:"all_day,omitempty"`
}

// DisplayColor returns the explicit color or the category's color.
func (e Event) DisplayColor() string {
	if e.Color != "" {
		return e.Color
	}
	return e.Category.Color()
}

// Priority ranks a suggestion.
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// TimeBlock is a proposed scheduled activity that is not yet on the calendar.
type TimeBlock struct {
	ID              string            `json:"id" yaml:"id"`
	Category        category.Category `json:"category" yaml:"category"`
	Title           string            `json:"title" yaml:"title"`
	DurationMinutes int               `json:"duration_minutes" yaml:"duration_minutes"`
	StartTime       string            `json:"start_time" yaml:"start_time"`
	EndTime         string            `json:"end_time" yaml:"end_time"`
	Description     string            `json:"description" yaml:"description"`
	Priority        Priority          `json:"priority" yaml:"priority"`
}

// User is the display identity attached to a feed post.
type User struct {
	Name   string `json:"name" yaml:"name"`
	Avatar string `json:"avatar" yaml:"avatar"`
}

// ActivitySnapshot is the copy of an activity embedded in a post.
type ActivitySnapshot struct {
	Name            string            `json:"name" yaml:"name"`
	Category        category.Category `json:"category" yaml:"category"`
	DurationSeconds int64             `json:"duration_seconds" yaml:"duration_seconds"`
	Description     string            `json:"description,omitempty" yaml:"description"`
}

// Post is one social feed card.
type Post struct {
	ID        string           `json:"id"`
	User      User             `json:"user"`
	Activity  ActivitySnapshot `json:"activity"`
	Timestamp time.Time        `json:"timestamp"`
	Likes     int              `json:"likes"`
	Comments  int              `json:"comments"`
	Liked     bool             `json:"liked"`
}
