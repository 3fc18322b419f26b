// Package tui is the interactive planner: a connect screen followed by the
// calendar, suggestion, tracker and feed tabs.
package tui

import (
	"context"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Tiliavir/trivial-day-planner/internal/app"
	appLog "github.com/Tiliavir/trivial-day-planner/internal/log"
	"github.com/Tiliavir/trivial-day-planner/internal/model"
	"github.com/Tiliavir/trivial-day-planner/internal/render"
)

// Tab identifies a view.
type Tab int

const (
	TabCalendar Tab = iota
	TabSuggestions
	TabTracker
	TabFeed
)

var tabNames = []string{"Calendar", "AI Suggestions", "Activity Tracker", "Social Feed"}

type (
	tickMsg      app.Tick
	connectedMsg struct{ err error }
	generatedMsg struct {
		blocks []model.TimeBlock
		err    error
	}
)

// Model is the bubbletea model. The App is only touched from Update.
type Model struct {
	app    *app.App
	ctx    context.Context
	cancel context.CancelFunc

	tab        Tab
	connecting bool
	generating bool

	suggestCursor int
	trackCursor   int
	feedCursor    int

	status string
	notice string
	width  int
}

func New(a *app.App) Model {
	ctx, cancel := context.WithCancel(context.Background())
	return Model{app: a, ctx: ctx, cancel: cancel}
}

// Run starts the program on the alternate screen and blocks until it quits.
func Run(a *app.App) error {
	m := New(a)
	defer m.cancel()
	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}

func (m Model) Init() tea.Cmd {
	return waitForTick(m.app.Ticks())
}

// waitForTick turns the next scheduler tick into a message on the UI loop.
func waitForTick(ch <-chan app.Tick) tea.Cmd {
	return func() tea.Msg {
		return tickMsg(<-ch)
	}
}

func (m Model) connect() tea.Cmd {
	a, ctx := m.app, m.ctx
	return func() tea.Msg {
		return connectedMsg{err: a.Connect(ctx)}
	}
}

func (m Model) generate() tea.Cmd {
	a, ctx := m.app, m.ctx
	return func() tea.Msg {
		blocks, err := a.Suggest(ctx)
		return generatedMsg{blocks: blocks, err: err}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case tickMsg:
		// A tick already queued when its session ended is dropped here.
		m.app.ApplyTick(app.Tick(msg))
		return m, waitForTick(m.app.Ticks())

	case connectedMsg:
		m.connecting = false
		if msg.err != nil {
			m.status = "Connection failed: " + msg.err.Error()
			appLog.Error("tui: connect failed", msg.err)
		}
		return m, nil

	case generatedMsg:
		m.generating = false
		if msg.err != nil {
			m.status = msg.err.Error()
			return m, nil
		}
		m.app.ApplySuggestions(msg.blocks)
		m.suggestCursor = 0
		m.status = ""
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	switch key {
	case "q", "ctrl+c":
		m.cancel()
		m.app.Close()
		return m, tea.Quit
	}

	if !m.app.Authenticated() {
		if key == "c" && !m.connecting {
			m.connecting = true
			m.status = ""
			return m, m.connect()
		}
		return m, nil
	}

	switch key {
	case "tab":
		m.tab = (m.tab + 1) % Tab(len(tabNames))
		return m, nil
	case "shift+tab":
		m.tab = (m.tab + Tab(len(tabNames)) - 1) % Tab(len(tabNames))
		return m, nil
	case "1", "2", "3", "4":
		m.tab = Tab(key[0] - '1')
		m.notice = ""
		return m, nil
	}

	m.status = ""
	switch m.tab {
	case TabCalendar:
		m.calendarKey(key)
	case TabSuggestions:
		return m.suggestionsKey(key)
	case TabTracker:
		m.trackerKey(key)
	case TabFeed:
		m.feedKey(key)
	}
	return m, nil
}

func (m *Model) calendarKey(key string) {
	v := m.app.Calendar
	switch key {
	case "]":
		v.NextWeek()
	case "[":
		v.PrevWeek()
	case "l", "right":
		v.SelectOffset(1)
	case "h", "left":
		v.SelectOffset(-1)
	case "t":
		now := m.app.Now()
		v.Anchor, v.Selected = now, now
	}
}

func (m Model) suggestionsKey(key string) (tea.Model, tea.Cmd) {
	blocks := m.app.Panel.Suggestions()
	switch key {
	case "g":
		if m.generating {
			return m, nil
		}
		m.generating = true
		return m, m.generate()
	case "j", "down":
		m.suggestCursor = clamp(m.suggestCursor+1, len(blocks))
	case "k", "up":
		m.suggestCursor = clamp(m.suggestCursor-1, len(blocks))
	case "a", "r":
		if len(blocks) == 0 {
			return m, nil
		}
		id := blocks[m.suggestCursor].ID
		var err error
		if key == "a" {
			_, err = m.app.AcceptSuggestion(m.ctx, id)
		} else {
			_, err = m.app.RejectSuggestion(id)
		}
		if err != nil {
			m.status = err.Error()
		}
		m.suggestCursor = clamp(m.suggestCursor, len(blocks)-1)
	}
	return m, nil
}

func (m *Model) trackerKey(key string) {
	acts := m.app.Tracker.Snapshot().Activities
	switch key {
	case "j", "down":
		m.trackCursor = clamp(m.trackCursor+1, len(acts))
		return
	case "k", "up":
		m.trackCursor = clamp(m.trackCursor-1, len(acts))
		return
	}
	if len(acts) == 0 {
		return
	}
	id := acts[m.trackCursor].ID
	var err error
	switch key {
	case "s":
		err = m.app.StartActivity(id)
	case "p":
		err = m.app.PauseActivity(id)
	case "x":
		err = m.app.StopActivity(id)
	}
	if err != nil {
		m.status = err.Error()
	}
}

func (m *Model) feedKey(key string) {
	posts := m.app.Feed.Posts()
	m.notice = ""
	switch key {
	case "j", "down":
		m.feedCursor = clamp(m.feedCursor+1, len(posts))
		return
	case "k", "up":
		m.feedCursor = clamp(m.feedCursor-1, len(posts))
		return
	}
	if len(posts) == 0 {
		return
	}
	id := posts[m.feedCursor].ID
	var err error
	switch key {
	case "l":
		_, err = m.app.ToggleLike(id)
	case "S":
		m.notice, err = m.app.Share(id)
	}
	if err != nil {
		m.status = err.Error()
	}
}

// clamp keeps i inside [0, n).
func clamp(i, n int) int {
	if n <= 0 || i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}

func (m Model) View() string {
	header := render.Header(m.app.Authenticated())
	if !m.app.Authenticated() {
		body := render.Connect(m.connecting, m.status)
		return lipgloss.JoinVertical(lipgloss.Left, header, "", body, "", render.Help("c connect · q quit"))
	}

	var body string
	switch m.tab {
	case TabCalendar:
		cell := 16
		if m.width > 0 {
			cell = max(m.width/7-2, 8)
		}
		body = render.Calendar(m.app.Week(), cell) + "\n" +
			render.DayAgenda(m.app.Calendar.Selected, m.app.Events()) +
			render.Help("[ ] week · h l day · t today")
	case TabSuggestions:
		body = render.Suggestions(m.app.Panel.Suggestions(), m.suggestCursor, m.generating)
	case TabTracker:
		body = render.Tracker(m.app.Tracker.Snapshot(), m.trackCursor)
	case TabFeed:
		body = render.Feed(m.app.Feed.Posts(), m.app.Now(), m.feedCursor, m.notice)
	}

	parts := []string{header, render.Tabs(tabNames, int(m.tab)), "", body}
	if m.status != "" {
		parts = append(parts, "", render.Error(m.status))
	}
	parts = append(parts, render.Help("tab/1-4 switch · q quit"))
	return strings.Join(parts, "\n")
}
