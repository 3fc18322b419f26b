// Package app owns the planner state that the terminal UI and the headless
// commands drive. An App is not safe for concurrent use: ticks arrive on the
// channel returned by Ticks and must be applied from the goroutine that owns
// the App.
package app

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/Tiliavir/trivial-day-planner/internal/auth"
	"github.com/Tiliavir/trivial-day-planner/internal/calendar"
	"github.com/Tiliavir/trivial-day-planner/internal/config"
	"github.com/Tiliavir/trivial-day-planner/internal/feed"
	"github.com/Tiliavir/trivial-day-planner/internal/fixtures"
	appLog "github.com/Tiliavir/trivial-day-planner/internal/log"
	"github.com/Tiliavir/trivial-day-planner/internal/model"
	"github.com/Tiliavir/trivial-day-planner/internal/observability"
	"github.com/Tiliavir/trivial-day-planner/internal/suggest"
	"github.com/Tiliavir/trivial-day-planner/internal/tracker"
)

// App wires every view's state together.
type App struct {
	Auth     *auth.Stub
	Tracker  *tracker.Tracker
	Panel    *suggest.Panel
	Feed     *feed.Feed
	Calendar *calendar.View
	Metrics  *observability.Metrics

	generator suggest.Generator
	inserter  suggest.Inserter
	ticks     tracker.TickSource
	tickCh    chan Tick
	events    []model.Event
	now       func() time.Time

	// session numbers timer sessions. Ticks carry the number they were
	// scheduled for and are ignored once it moves on.
	session uint64
}

type Option func(*App)

// WithClock replaces time.Now for every component that reads the clock.
func WithClock(now func() time.Time) Option {
	return func(a *App) { a.now = now }
}

// WithTickSource replaces the cron-backed scheduler.
func WithTickSource(ts tracker.TickSource) Option {
	return func(a *App) { a.ticks = ts }
}

func WithGenerator(g suggest.Generator) Option {
	return func(a *App) { a.generator = g }
}

func WithInserter(i suggest.Inserter) Option {
	return func(a *App) { a.inserter = i }
}

func WithMetrics(m *observability.Metrics) Option {
	return func(a *App) { a.Metrics = m }
}

// New builds the application state from cfg and the loaded sample data.
func New(cfg config.Config, set fixtures.Set, opts ...Option) *App {
	a := &App{
		now:    time.Now,
		tickCh: make(chan Tick, 1),
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.generator == nil {
		a.generator = suggest.Fixed{Blocks: set.Suggestions, Delay: cfg.GenerateDelay()}
	}
	if a.ticks == nil {
		a.ticks = tracker.NewScheduler(tracker.TickInterval)
	}
	if a.Metrics == nil {
		a.Metrics = observability.New()
	}

	a.Auth = auth.New(cfg.ConnectDelay())
	a.Tracker = tracker.New(set.Activities, tracker.WithClock(a.now))
	a.Panel = suggest.NewPanel(a.inserter)
	a.Feed = feed.New(set.Posts)
	a.Calendar = calendar.NewView(a.now(), cfg.WeekStart(), cfg.Calendar.MaxEventsPerDay)
	a.events = append([]model.Event(nil), set.Events...)
	return a
}

// Now returns the App's clock reading.
func (a *App) Now() time.Time { return a.now() }

// Connect runs the auth stub.
func (a *App) Connect(ctx context.Context) error {
	return a.Auth.Connect(ctx)
}

func (a *App) Authenticated() bool { return a.Auth.Authenticated() }

// Events returns a copy of every known calendar event.
func (a *App) Events() []model.Event {
	return append([]model.Event(nil), a.events...)
}

// AddEvents merges imported events, keeping the list ordered by start.
// Events whose id is already known are skipped.
func (a *App) AddEvents(evs []model.Event) int {
	known := make(map[string]bool, len(a.events))
	for _, e := range a.events {
		known[e.ID] = true
	}
	added := 0
	for _, e := range evs {
		if known[e.ID] {
			continue
		}
		known[e.ID] = true
		a.events = append(a.events, e)
		added++
	}
	sort.SliceStable(a.events, func(i, j int) bool { return a.events[i].Start.Before(a.events[j].Start) })
	return added
}

// Week builds the grid for the calendar view's current week.
func (a *App) Week() calendar.Week {
	return a.Calendar.Build(a.events, a.now())
}

// Generate asks the generator for a fresh list and replaces the panel's.
// The panel is left untouched on error.
func (a *App) Generate(ctx context.Context) ([]model.TimeBlock, error) {
	blocks, err := a.Suggest(ctx)
	if err != nil {
		return nil, err
	}
	a.ApplySuggestions(blocks)
	return a.Panel.Suggestions(), nil
}

// Suggest runs the generator without touching the panel, so it may be called
// off the owning goroutine.
func (a *App) Suggest(ctx context.Context) ([]model.TimeBlock, error) {
	blocks, err := a.generator.Generate(ctx)
	if err != nil {
		return nil, fmt.Errorf("generating suggestions: %w", err)
	}
	return blocks, nil
}

// ApplySuggestions replaces the panel's list.
func (a *App) ApplySuggestions(blocks []model.TimeBlock) {
	a.Panel.Replace(blocks)
	appLog.Info("app: suggestions generated", "count", len(blocks))
}

func (a *App) AcceptSuggestion(ctx context.Context, id string) (model.TimeBlock, error) {
	b, err := a.Panel.Accept(ctx, id)
	if err != nil {
		return model.TimeBlock{}, err
	}
	a.Metrics.SuggestionDecision("accepted")
	return b, nil
}

func (a *App) RejectSuggestion(id string) (model.TimeBlock, error) {
	b, err := a.Panel.Reject(id)
	if err != nil {
		return model.TimeBlock{}, err
	}
	a.Metrics.SuggestionDecision("rejected")
	return b, nil
}

func (a *App) ToggleLike(id string) (model.Post, error) {
	p, err := a.Feed.ToggleLike(id)
	if err != nil {
		return model.Post{}, err
	}
	a.Metrics.LikeToggled()
	return p, nil
}

// Share returns the share notice for a post.
func (a *App) Share(id string) (string, error) {
	for _, p := range a.Feed.Posts() {
		if p.ID == id {
			appLog.Info("app: share requested", "post", id)
			return feed.ShareNotice, nil
		}
	}
	return "", fmt.Errorf("%w: %q", feed.ErrNotFound, id)
}

// StartActivity starts id on a fresh tick handle, so the first tick of the
// new session arrives one full interval after the start.
func (a *App) StartActivity(id string) error {
	if err := a.Tracker.Start(id); err != nil {
		return err
	}
	act, _ := a.Tracker.Running()
	a.Metrics.SessionStarted(act.Category)
	a.releaseTicks()
	a.acquireTicks()
	return nil
}

// PauseActivity commits the running session of id and drops the tick handle.
func (a *App) PauseActivity(id string) error {
	return a.commit(id, a.Tracker.Pause)
}

// StopActivity is PauseActivity followed by a reset of the session clock.
func (a *App) StopActivity(id string) error {
	return a.commit(id, a.Tracker.Stop)
}

func (a *App) commit(id string, op func(string) error) error {
	running, wasRunning := a.Tracker.Running()
	elapsed := a.Tracker.CurrentElapsed()
	if err := op(id); err != nil {
		return err
	}
	if wasRunning && running.ID == id {
		a.Metrics.Committed(running.Category, elapsed, a.now())
	}
	a.syncTicks()
	return nil
}

// syncTicks holds the tick handle exactly while an activity runs.
func (a *App) syncTicks() {
	_, running := a.Tracker.Running()
	switch {
	case running && !a.ticks.Active():
		a.acquireTicks()
	case !running:
		a.releaseTicks()
	}
}

func (a *App) acquireTicks() {
	session := a.session
	a.ticks.Acquire(func() { a.sendTick(Tick{Session: session}) })
}

// releaseTicks drops the handle, ends the tick session and discards a tick
// that was sent but not yet applied.
func (a *App) releaseTicks() {
	a.ticks.Release()
	a.session++
	select {
	case <-a.tickCh:
	default:
	}
}

// Tick is one scheduler interval of the session it was scheduled for.
type Tick struct {
	Session uint64
}

// sendTick runs on the scheduler goroutine. A tick that finds the previous
// one still unapplied is dropped.
func (a *App) sendTick(t Tick) {
	select {
	case a.tickCh <- t:
	default:
		appLog.Debug("app: tick dropped, previous one pending")
	}
}

// Ticks delivers one value per scheduler interval while an activity runs.
func (a *App) Ticks() <-chan Tick { return a.tickCh }

// ApplyTick adds t to the tracker. Ticks from an earlier session are ignored
// and reported as not applied.
func (a *App) ApplyTick(t Tick) bool {
	if t.Session != a.session {
		appLog.Debug("app: stale tick ignored", "session", t.Session, "current", a.session)
		return false
	}
	a.Tracker.Tick()
	return true
}

// TickActive reports whether the tick handle is held.
func (a *App) TickActive() bool { return a.ticks.Active() }

// Close releases the tick handle and stops the scheduler.
func (a *App) Close() {
	a.releaseTicks()
	a.ticks.Close()
}
