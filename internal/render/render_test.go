package render_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Tiliavir/trivial-day-planner/internal/calendar"
	"github.com/Tiliavir/trivial-day-planner/internal/category"
	"github.com/Tiliavir/trivial-day-planner/internal/model"
	"github.com/Tiliavir/trivial-day-planner/internal/render"
	"github.com/Tiliavir/trivial-day-planner/internal/tracker"
)

var now = time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC)

func at(day, hour int, title string) model.Event {
	start := time.Date(2026, 10, day, hour, 0, 0, 0, time.UTC)
	return model.Event{ID: title, Title: title, Start: start, End: start.Add(time.Hour), Category: category.Gym}
}

func TestCalendarShowsOverflow(t *testing.T) {
	v := calendar.NewView(now, time.Sunday, 2)
	week := v.Build([]model.Event{at(19, 8, "A"), at(19, 9, "B"), at(19, 10, "C")}, now)

	out := render.Calendar(week, 14)
	require.Contains(t, out, "October 2026")
	require.Contains(t, out, "08:00 A")
	require.Contains(t, out, "09:00 B")
	require.NotContains(t, out, "10:00 C")
	require.Contains(t, out, "+1 more")
	require.Contains(t, out, "Mon 19 •")
}

func TestDayAgendaListsCollapsedEvents(t *testing.T) {
	out := render.DayAgenda(now, []model.Event{at(19, 8, "A"), at(19, 10, "C"), at(20, 8, "Tomorrow")})
	require.Contains(t, out, "Monday, October 19")
	require.Contains(t, out, "10:00–11:00")
	require.Contains(t, out, "C")
	require.NotContains(t, out, "Tomorrow")

	require.Contains(t, render.DayAgenda(now.AddDate(0, 0, 5), nil), "No events")
}

func TestSuggestions(t *testing.T) {
	require.Contains(t, render.Suggestions(nil, 0, false), "No suggestions yet")
	require.Contains(t, render.Suggestions(nil, 0, true), "Generating...")

	blocks := []model.TimeBlock{{
		ID: "1", Category: category.CSStudy, Title: "Review", DurationMinutes: 90,
		StartTime: "09:00", EndTime: "10:30", Description: "Sorting", Priority: model.PriorityHigh,
	}}
	out := render.Suggestions(blocks, 0, false)
	require.Contains(t, out, "Review")
	require.Contains(t, out, "09:00-10:30")
	require.Contains(t, out, "1h 30m")
	require.Contains(t, out, "high")
	require.Contains(t, out, "CS Study")
}

func TestTracker(t *testing.T) {
	tr := tracker.New([]model.Activity{
		{ID: "1", Name: "CS Study Session", Category: category.CSStudy},
		{ID: "2", Name: "Gym Workout", Category: category.Gym},
	}, tracker.WithClock(func() time.Time { return now }))

	out := render.Tracker(tr.Snapshot(), 0)
	require.Contains(t, out, "00:00:00")
	require.NotContains(t, out, "Currently tracking")

	require.NoError(t, tr.Start("2"))
	for i := 0; i < 61; i++ {
		tr.Tick()
	}
	out = render.Tracker(tr.Snapshot(), 1)
	require.Contains(t, out, "Currently tracking: Gym Workout")
	require.Contains(t, out, "00:01:01")
	require.Contains(t, out, "Started at 09:00:00")
	require.Contains(t, out, "> ")
}

func TestFeed(t *testing.T) {
	require.Contains(t, render.Feed(nil, now, 0, ""), "No activities yet")

	posts := []model.Post{{
		ID: "1", User: model.User{Name: "Alex Chen", Avatar: "A"},
		Activity:  model.ActivitySnapshot{Name: "CS Study Session", Category: category.CSStudy, DurationSeconds: 7200, Description: "Algorithms"},
		Timestamp: now.Add(-2 * time.Hour), Likes: 12, Comments: 3, Liked: true,
	}}
	out := render.Feed(posts, now, 0, "shared!")
	require.Contains(t, out, "2h ago")
	require.Contains(t, out, "2h 0m")
	require.Contains(t, out, "♥ 12")
	require.Contains(t, out, "shared!")
}

func TestTabsAndHeader(t *testing.T) {
	out := render.Tabs([]string{"Calendar", "Feed"}, 1)
	require.True(t, strings.Contains(out, "1 Calendar") && strings.Contains(out, "2 Feed"))
	require.Contains(t, render.Header(true), "Connected")
	require.Contains(t, render.Connect(true, ""), "Connecting...")
	require.Contains(t, render.Connect(false, "boom"), "boom")
}
