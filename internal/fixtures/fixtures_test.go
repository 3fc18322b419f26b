package fixtures_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Tiliavir/trivial-day-planner/internal/category"
	"github.com/Tiliavir/trivial-day-planner/internal/fixtures"
	"github.com/Tiliavir/trivial-day-planner/internal/model"
)

var now = time.Date(2026, 10, 19, 9, 30, 0, 0, time.UTC)

func TestDefault(t *testing.T) {
	set, err := fixtures.Default(now)
	require.NoError(t, err)

	require.Len(t, set.Activities, 3)
	require.Equal(t, "CS Study Session", set.Activities[0].Name)
	require.Equal(t, category.Gym, set.Activities[1].Category)
	for _, a := range set.Activities {
		require.False(t, a.Running)
		require.Nil(t, a.StartedAt)
		require.Zero(t, a.DurationSeconds)
	}

	require.Len(t, set.Suggestions, 5)
	require.Equal(t, model.PriorityHigh, set.Suggestions[0].Priority)
	require.Equal(t, 90, set.Suggestions[0].DurationMinutes)
	require.Equal(t, category.Personal, set.Suggestions[4].Category)

	lecture := set.Events[0]
	require.Equal(t, "CS 106 Lecture", lecture.Title)
	require.Equal(t, time.Date(2026, 10, 19, 10, 0, 0, 0, time.UTC), lecture.Start)
	require.Equal(t, time.Date(2026, 10, 19, 11, 30, 0, 0, time.UTC), lecture.End)
	require.Equal(t, "#3B82F6", lecture.DisplayColor())

	require.Len(t, set.Posts, 3)
	require.Equal(t, now.Add(-2*time.Hour), set.Posts[0].Timestamp)
	require.Equal(t, int64(7200), set.Posts[0].Activity.DurationSeconds)
	require.True(t, set.Posts[1].Liked)
	require.Equal(t, "👩‍🎓", set.Posts[1].User.Avatar)
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"duplicate activity", "activities:\n  - {id: a, name: x, category: gym}\n  - {id: a, name: y, category: gym}\n"},
		{"missing id", "posts:\n  - {likes: 1}\n"},
		{"unknown category", "activities:\n  - {id: a, name: x, category: knitting}\n"},
		{"bad priority", "suggestions:\n  - {id: s, category: gym, priority: urgent}\n"},
		{"bad clock", "events:\n  - {id: e, title: t, day: 0, start: \"25:00\", end: \"26:00\"}\n"},
		{"end before start", "events:\n  - {id: e, title: t, day: 0, start: \"10:00\", end: \"09:00\"}\n"},
		{"negative age", "posts:\n  - {id: p, age: -1h}\n"},
		{"malformed", "activities: ["},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := fixtures.Parse([]byte(tt.doc), now)
			require.Error(t, err)
		})
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fixtures.yaml")
	doc := "activities:\n  - {id: x, name: Thesis, category: cs-study}\nevents:\n  - {id: e, title: Lab, day: 1, start: \"08:00\", end: \"09:00\", color: \"#000000\"}\n"
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o600))

	set, err := fixtures.Load(path, now)
	require.NoError(t, err)
	require.Len(t, set.Activities, 1)
	require.Empty(t, set.Posts)
	require.Equal(t, time.Date(2026, 10, 20, 8, 0, 0, 0, time.UTC), set.Events[0].Start)
	require.Equal(t, "#000000", set.Events[0].DisplayColor())

	_, err = fixtures.Load(filepath.Join(t.TempDir(), "missing.yaml"), now)
	require.Error(t, err)
}

func TestLoadEmptyPathUsesDefault(t *testing.T) {
	set, err := fixtures.Load("", now)
	require.NoError(t, err)
	require.Len(t, set.Events, 7)
}
