// Package calendar partitions events into a navigable seven-day grid.
package calendar

import (
	"fmt"
	"time"

	"github.com/Tiliavir/trivial-day-planner/internal/model"
	"github.com/Tiliavir/trivial-day-planner/internal/timecalc"
)

// DefaultLimit is how many events a day cell shows before collapsing the rest.
const DefaultLimit = 3

// View is the navigation state of the week grid.
type View struct {
	// Anchor is any instant inside the displayed week.
	Anchor    time.Time
	Selected  time.Time
	WeekStart time.Weekday
	Limit     int
}

// NewView returns a view of the week containing now with now selected.
func NewView(now time.Time, weekStart time.Weekday, limit int) *View {
	if limit <= 0 {
		limit = DefaultLimit
	}
	return &View{Anchor: now, Selected: now, WeekStart: weekStart, Limit: limit}
}

// NextWeek moves the anchor seven days forward. The selection stays put.
func (v *View) NextWeek() { v.Anchor = v.Anchor.AddDate(0, 0, 7) }

// PrevWeek moves the anchor seven days back.
func (v *View) PrevWeek() { v.Anchor = v.Anchor.AddDate(0, 0, -7) }

// SelectOffset moves the selection by days. If the selection leaves the
// displayed week the anchor follows it.
func (v *View) SelectOffset(days int) {
	v.Selected = v.Selected.AddDate(0, 0, days)
	first, last := timecalc.WeekRange(v.Anchor, v.WeekStart)
	if v.Selected.Before(first) || v.Selected.After(last) {
		v.Anchor = v.Selected
	}
}

// Select picks a day by its index inside the displayed week (0..6).
func (v *View) Select(index int) {
	if index < 0 || index > 6 {
		return
	}
	v.Selected = timecalc.WeekStart(v.Anchor, v.WeekStart).AddDate(0, 0, index)
}

// Day is one cell of the grid.
type Day struct {
	Date time.Time
	// Shown holds at most Limit events in input order.
	Shown    []model.Event
	Overflow int
	Total    int
	Selected bool
	Today    bool
}

// Week is the seven-day partition produced by Build.
type Week struct {
	Anchor time.Time
	Days   [7]Day
}

// Title is the month heading, e.g. "October 2026".
func (w Week) Title() string {
	return w.Anchor.Format("January 2006")
}

// Label names the displayed dates, e.g. "October 2026 · Oct 18 – Oct 24".
func (w Week) Label() string {
	return fmt.Sprintf("%s · %s – %s", w.Title(),
		w.Days[0].Date.Format("Jan 2"), w.Days[6].Date.Format("Jan 2"))
}

// Headers returns the abbreviated weekday names in grid order.
func (w Week) Headers() []string {
	out := make([]string, 0, len(w.Days))
	for _, d := range w.Days {
		out = append(out, d.Date.Weekday().String()[:3])
	}
	return out
}

// Build assigns each event to the day its start falls on. Events outside the
// displayed week are ignored.
func (v *View) Build(events []model.Event, today time.Time) Week {
	limit := v.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}
	w := Week{Anchor: v.Anchor}
	first := timecalc.WeekStart(v.Anchor, v.WeekStart)
	for i := range w.Days {
		date := first.AddDate(0, 0, i)
		w.Days[i] = Day{
			Date:     date,
			Selected: timecalc.SameDay(date, v.Selected),
			Today:    timecalc.SameDay(date, today),
		}
	}

	for _, ev := range events {
		start := ev.Start.In(first.Location())
		for i := range w.Days {
			d := &w.Days[i]
			if !timecalc.SameDay(start, d.Date) {
				continue
			}
			d.Total++
			if len(d.Shown) < limit {
				d.Shown = append(d.Shown, ev)
			} else {
				d.Overflow++
			}
			break
		}
	}
	return w
}
