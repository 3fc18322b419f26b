// Package tracker times a single running activity among a fixed set.
//
// A Tracker is owned by exactly one goroutine (the UI loop). Periodic ticks
// produced elsewhere, e.g. by a Scheduler, must be handed to that goroutine
// and applied with Tick.
package tracker

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	appLog "github.com/Tiliavir/trivial-day-planner/internal/log"
	"github.com/Tiliavir/trivial-day-planner/internal/model"
	"github.com/Tiliavir/trivial-day-planner/internal/timecalc"
)

// ErrNotFound is returned when an operation names an activity that is not tracked.
var ErrNotFound = errors.New("activity not found")

// Tracker holds the activities and the elapsed seconds of the current session.
type Tracker struct {
	order      []string
	activities map[string]*model.Activity
	// currentElapsed survives Pause and is only cleared by Start and Stop.
	currentElapsed int64
	running        string
	sessionID      string
	now            func() time.Time
}

// Option configures a Tracker.
type Option func(*Tracker)

// WithClock replaces time.Now for session start timestamps.
func WithClock(now func() time.Time) Option {
	return func(t *Tracker) {
		t.now = now
	}
}

// New builds a Tracker over activities. Running flags and start timestamps in
// the input are ignored; every activity starts idle. Duplicate ids keep the
// first occurrence.
func New(activities []model.Activity, opts ...Option) *Tracker {
	t := &Tracker{
		activities: make(map[string]*model.Activity, len(activities)),
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(t)
	}
	for _, a := range activities {
		if _, dup := t.activities[a.ID]; dup {
			appLog.Warn("tracker: duplicate activity id ignored", "id", a.ID)
			continue
		}
		a.Running = false
		a.StartedAt = nil
		if a.DurationSeconds < 0 {
			a.DurationSeconds = 0
		}
		t.activities[a.ID] = &a
		t.order = append(t.order, a.ID)
	}
	return t
}

func (t *Tracker) lookup(id string) (*model.Activity, error) {
	a, ok := t.activities[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, id)
	}
	return a, nil
}

// Start makes id the single running activity. Any in-flight session,
// including one on id itself, is discarded without being committed.
func (t *Tracker) Start(id string) error {
	target, err := t.lookup(id)
	if err != nil {
		return err
	}

	if t.running != "" && t.currentElapsed > 0 {
		appLog.Info("tracker: discarding uncommitted session",
			"id", t.running, "session", t.sessionID, "elapsed", t.currentElapsed)
	}

	for _, a := range t.activities {
		a.Running = false
		a.StartedAt = nil
	}
	startedAt := t.now()
	target.Running = true
	target.StartedAt = &startedAt
	t.running = id
	t.currentElapsed = 0
	t.sessionID = uuid.NewString()

	appLog.Info("tracker: session started", "id", id, "session", t.sessionID,
		"at", startedAt.Format("15:04:05"))
	return nil
}

// Pause commits the current session to id and leaves currentElapsed as is.
// It is a no-op when id is not running.
func (t *Tracker) Pause(id string) error {
	_, err := t.commit(id, "paused")
	return err
}

// Stop commits like Pause and then resets currentElapsed.
func (t *Tracker) Stop(id string) error {
	committed, err := t.commit(id, "stopped")
	if err != nil || !committed {
		return err
	}
	t.currentElapsed = 0
	return nil
}

func (t *Tracker) commit(id, verb string) (bool, error) {
	a, err := t.lookup(id)
	if err != nil {
		return false, err
	}
	if !a.Running {
		appLog.Debug("tracker: "+verb+" ignored, not running", "id", id)
		return false, nil
	}
	a.DurationSeconds += t.currentElapsed
	a.Running = false
	a.StartedAt = nil
	t.running = ""

	appLog.Info("tracker: session "+verb, "id", id, "session", t.sessionID,
		"elapsed", timecalc.FormatElapsed(t.currentElapsed),
		"total", timecalc.FormatDurationHHMMSS(a.DurationSeconds))
	t.sessionID = ""
	return true, nil
}

// Tick adds one second to the current session. It is a no-op while nothing runs.
func (t *Tracker) Tick() {
	if t.running == "" {
		return
	}
	t.currentElapsed++
}

// Running returns the running activity, if any.
func (t *Tracker) Running() (model.Activity, bool) {
	if t.running == "" {
		return model.Activity{}, false
	}
	return copyActivity(t.activities[t.running]), true
}

// CurrentElapsed returns the seconds counted for the current (or last paused) session.
func (t *Tracker) CurrentElapsed() int64 {
	return t.currentElapsed
}

// TotalAccumulated sums committed durations; the in-flight session is not included.
func (t *Tracker) TotalAccumulated() int64 {
	var total int64
	for _, a := range t.activities {
		total += a.DurationSeconds
	}
	return total
}

// CompletedCount counts activities with a non-zero committed duration.
func (t *Tracker) CompletedCount() int {
	n := 0
	for _, a := range t.activities {
		if a.DurationSeconds > 0 {
			n++
		}
	}
	return n
}

// Activity returns a copy of the activity with the given id.
func (t *Tracker) Activity(id string) (model.Activity, error) {
	a, err := t.lookup(id)
	if err != nil {
		return model.Activity{}, err
	}
	return copyActivity(a), nil
}

// Snapshot is a read-only copy of the tracker state for rendering.
type Snapshot struct {
	Activities     []model.Activity `json:"activities"`
	CurrentElapsed int64            `json:"current_elapsed"`
}

// Snapshot copies the tracker state in construction order.
func (t *Tracker) Snapshot() Snapshot {
	s := Snapshot{
		Activities:     make([]model.Activity, 0, len(t.order)),
		CurrentElapsed: t.currentElapsed,
	}
	for _, id := range t.order {
		s.Activities = append(s.Activities, copyActivity(t.activities[id]))
	}
	return s
}

// Running returns the running activity in the snapshot, if any.
func (s Snapshot) Running() (model.Activity, bool) {
	for _, a := range s.Activities {
		if a.Running {
			return a, true
		}
	}
	return model.Activity{}, false
}

// Total sums committed durations in the snapshot.
func (s Snapshot) Total() int64 {
	var total int64
	for _, a := range s.Activities {
		total += a.DurationSeconds
	}
	return total
}

// Completed counts activities in the snapshot with a non-zero committed duration.
func (s Snapshot) Completed() int {
	n := 0
	for _, a := range s.Activities {
		if a.DurationSeconds > 0 {
			n++
		}
	}
	return n
}

// SessionDisplay is the "current session" clock: the elapsed time while
// something runs, zero otherwise.
func (s Snapshot) SessionDisplay() string {
	if _, ok := s.Running(); !ok {
		return timecalc.FormatDurationHHMMSS(0)
	}
	return timecalc.FormatDurationHHMMSS(s.CurrentElapsed)
}

func copyActivity(a *model.Activity) model.Activity {
	c := *a
	if a.StartedAt != nil {
		ts := *a.StartedAt
		c.StartedAt = &ts
	}
	return c
}
