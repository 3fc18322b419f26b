// Package render draws every planner view as a string with lipgloss. The
// terminal UI and the one-shot commands share these functions.
package render

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/Tiliavir/trivial-day-planner/internal/calendar"
	"github.com/Tiliavir/trivial-day-planner/internal/category"
	"github.com/Tiliavir/trivial-day-planner/internal/feed"
	"github.com/Tiliavir/trivial-day-planner/internal/model"
	"github.com/Tiliavir/trivial-day-planner/internal/suggest"
	"github.com/Tiliavir/trivial-day-planner/internal/timecalc"
	"github.com/Tiliavir/trivial-day-planner/internal/tracker"
)

const primary = "#2563EB"

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color(primary)).
			Padding(0, 1)

	headingStyle = lipgloss.NewStyle().Bold(true)

	mutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280"))

	activeTabStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(primary)).
			Underline(true).
			Padding(0, 1)

	tabStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6B7280")).
			Padding(0, 1)

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#D1D5DB")).
			Padding(0, 1)

	cursorBoxStyle = boxStyle.BorderForeground(lipgloss.Color(primary))

	bannerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(lipgloss.Color(primary)).
			Padding(0, 2)

	connectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#16A34A")).Bold(true)

	errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#DC2626"))
)

// Help renders a key hint line.
func Help(s string) string { return mutedStyle.Render(s) }

// Error renders a status line for a failed action.
func Error(s string) string { return errorStyle.Render(s) }

// CategoryStyle colors text with the category's color.
func CategoryStyle(c category.Category) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(c.Color()))
}

// Chip is a one-line event label in the event's display color.
func Chip(e model.Event, width int) string {
	title := e.Title
	if !e.AllDay {
		title = e.Start.Format("15:04") + " " + title
	}
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(e.DisplayColor())).
		Render(truncate(title, width))
}

func truncate(s string, width int) string {
	if width <= 0 || lipgloss.Width(s) <= width {
		return s
	}
	r := []rune(s)
	for len(r) > 0 && lipgloss.Width(string(r))+1 > width {
		r = r[:len(r)-1]
	}
	return string(r) + "…"
}

// Header is the application title bar with the connection state.
func Header(connected bool) string {
	state := mutedStyle.Render("Not connected")
	if connected {
		state = connectedStyle.Render("Connected")
	}
	return lipgloss.JoinHorizontal(lipgloss.Center, titleStyle.Render("Smart Calendar"), "  ", state)
}

// Tabs renders the tab bar with active highlighted.
func Tabs(names []string, active int) string {
	parts := make([]string, 0, len(names))
	for i, n := range names {
		label := fmt.Sprintf("%d %s", i+1, n)
		if i == active {
			parts = append(parts, activeTabStyle.Render(label))
		} else {
			parts = append(parts, tabStyle.Render(label))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

// Connect is the screen shown until the calendar is connected.
func Connect(connecting bool, errMsg string) string {
	button := "[c] Connect Google Calendar"
	if connecting {
		button = "Connecting..."
	}
	lines := []string{
		headingStyle.Render("Connect Your Google Calendar"),
		mutedStyle.Render("Import your calendar to get AI-powered time blocking suggestions"),
		"",
		bannerStyle.Render(button),
	}
	if errMsg != "" {
		lines = append(lines, "", errMsg)
	}
	return lipgloss.JoinVertical(lipgloss.Center, lines...)
}

// Calendar draws the seven-day grid. cellWidth is the width of a day column
// without its border.
func Calendar(w calendar.Week, cellWidth int) string {
	if cellWidth < 8 {
		cellWidth = 8
	}
	cols := make([]string, 0, len(w.Days))
	headers := w.Headers()
	for i, d := range w.Days {
		label := fmt.Sprintf("%s %2d", headers[i], d.Date.Day())
		if d.Today {
			label += " •"
		}
		lines := []string{headingStyle.Render(label)}
		for _, e := range d.Shown {
			lines = append(lines, Chip(e, cellWidth-2))
		}
		if d.Overflow > 0 {
			lines = append(lines, mutedStyle.Render(fmt.Sprintf("+%d more", d.Overflow)))
		}
		style := boxStyle
		if d.Selected {
			style = cursorBoxStyle
		}
		cols = append(cols, style.Width(cellWidth).Height(5).Render(strings.Join(lines, "\n")))
	}
	title := headingStyle.Render(w.Title())
	return lipgloss.JoinVertical(lipgloss.Left, title, lipgloss.JoinHorizontal(lipgloss.Top, cols...))
}

// DayAgenda lists every event of the selected day, including the ones the
// grid collapsed.
func DayAgenda(day time.Time, events []model.Event) string {
	var b strings.Builder
	b.WriteString(headingStyle.Render(day.Format("Monday, January 2")))
	b.WriteString("\n")
	n := 0
	for _, e := range events {
		if !timecalc.SameDay(e.Start.In(day.Location()), day) {
			continue
		}
		n++
		span := e.Start.Format("15:04") + "–" + e.End.Format("15:04")
		if e.AllDay {
			span = "all day"
		}
		fmt.Fprintf(&b, "  %s  %s  %s\n", span, lipgloss.NewStyle().Foreground(lipgloss.Color(e.DisplayColor())).Render(e.Title), mutedStyle.Render(e.Category.Label()))
	}
	if n == 0 {
		b.WriteString(mutedStyle.Render("  No events"))
		b.WriteString("\n")
	}
	return b.String()
}

func priorityStyle(p model.Priority) lipgloss.Style {
	switch p {
	case model.PriorityHigh:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("#DC2626")).Bold(true)
	case model.PriorityMedium:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("#CA8A04"))
	default:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("#16A34A"))
	}
}

// Suggestions draws the suggestion panel. cursor marks the selected card.
func Suggestions(blocks []model.TimeBlock, cursor int, generating bool) string {
	button := "[g] Generate Suggestions"
	if generating {
		button = "Generating..."
	}
	head := lipgloss.JoinVertical(lipgloss.Left,
		headingStyle.Render("AI Time Block Suggestions"),
		mutedStyle.Render("Get personalized suggestions for your free time based on your goals"),
		button,
	)
	if len(blocks) == 0 {
		return lipgloss.JoinVertical(lipgloss.Left, head, "",
			headingStyle.Render("No suggestions yet"),
			mutedStyle.Render(`Press "g" to get AI-powered time block recommendations`))
	}

	cards := []string{head}
	for i, b := range blocks {
		meta := b.Category.Meta()
		lines := []string{
			fmt.Sprintf("%s %s  %s", meta.Icon, headingStyle.Render(b.Title), priorityStyle(b.Priority).Render(string(b.Priority))),
			mutedStyle.Render(b.Description),
			fmt.Sprintf("%s-%s  %s  %s", b.StartTime, b.EndTime,
				timecalc.FormatHoursMinutes(int64(b.DurationMinutes)*60),
				CategoryStyle(b.Category).Render(meta.Label)),
		}
		style := boxStyle
		if i == cursor {
			style = cursorBoxStyle
		}
		cards = append(cards, style.Render(strings.Join(lines, "\n")))
	}

	totals, grand := suggest.Summarize(blocks)
	var sum []string
	for _, t := range totals {
		sum = append(sum, fmt.Sprintf("%s %s", CategoryStyle(t.Category).Render(t.Category.Label()), timecalc.FormatHoursMinutes(int64(t.Minutes)*60)))
	}
	cards = append(cards, mutedStyle.Render("Planned: "+strings.Join(sum, " · ")+" · total "+timecalc.FormatHoursMinutes(int64(grand)*60)),
		mutedStyle.Render("[a] accept  [r] reject  [j/k] move"))
	return lipgloss.JoinVertical(lipgloss.Left, cards...)
}

// Tracker draws the summary cards, the running banner and the activity list.
func Tracker(s tracker.Snapshot, cursor int) string {
	stats := lipgloss.JoinHorizontal(lipgloss.Top,
		boxStyle.Render("Total Time Today\n"+headingStyle.Render(timecalc.FormatDurationHHMMSS(s.Total()))),
		boxStyle.Render("Activities Completed\n"+headingStyle.Render(fmt.Sprint(s.Completed()))),
		boxStyle.Render("Current Session\n"+headingStyle.Render(s.SessionDisplay())),
	)
	parts := []string{stats}

	if a, ok := s.Running(); ok {
		started := ""
		if a.StartedAt != nil {
			started = " • Started at " + a.StartedAt.Format("15:04:05")
		}
		parts = append(parts, bannerStyle.Render(fmt.Sprintf("Currently tracking: %s  %s\n%s%s",
			a.Name, timecalc.FormatDurationHHMMSS(s.CurrentElapsed), a.Category.Label(), started)))
	}

	var list []string
	for i, a := range s.Activities {
		marker := "  "
		if i == cursor {
			marker = "> "
		}
		state := mutedStyle.Render("idle")
		if a.Running {
			state = connectedStyle.Render("running")
		}
		list = append(list, fmt.Sprintf("%s%s %s  %s • Total: %s  %s", marker,
			a.Category.Meta().Icon, headingStyle.Render(a.Name),
			CategoryStyle(a.Category).Render(a.Category.Label()),
			timecalc.FormatDurationHHMMSS(a.DurationSeconds), state))
	}
	if len(list) == 0 {
		list = append(list, mutedStyle.Render("No activities"))
	}
	parts = append(parts, boxStyle.Render(headingStyle.Render("Activity Tracker")+"\n"+strings.Join(list, "\n")),
		mutedStyle.Render("[s] start  [p] pause  [x] stop  [j/k] move"))
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

// Feed draws the social feed cards relative to now.
func Feed(posts []model.Post, now time.Time, cursor int, notice string) string {
	head := lipgloss.JoinVertical(lipgloss.Left,
		headingStyle.Render("Activity Feed"),
		mutedStyle.Render("Share your achievements and see what your friends are up to"),
	)
	if len(posts) == 0 {
		return lipgloss.JoinVertical(lipgloss.Left, head, "",
			headingStyle.Render("No activities yet"),
			mutedStyle.Render("Start tracking activities and share them with your friends!"))
	}
	cards := []string{head}
	for i, p := range posts {
		heart := "♡"
		if p.Liked {
			heart = "♥"
		}
		dur := timecalc.FormatHoursMinutes(p.Activity.DurationSeconds)
		lines := []string{
			fmt.Sprintf("%s %s  %s", p.User.Avatar, headingStyle.Render(p.User.Name), mutedStyle.Render(feed.RelativeTime(now, p.Timestamp))),
			fmt.Sprintf("%s  %s • %s", headingStyle.Render(p.Activity.Name), CategoryStyle(p.Activity.Category).Render(p.Activity.Category.Label()), dur),
		}
		if p.Activity.Description != "" {
			lines = append(lines, p.Activity.Description)
		}
		lines = append(lines, fmt.Sprintf("%s %d   💬 %d", heart, p.Likes, p.Comments))
		style := boxStyle
		if i == cursor {
			style = cursorBoxStyle
		}
		cards = append(cards, style.Render(strings.Join(lines, "\n")))
	}
	if notice != "" {
		cards = append(cards, bannerStyle.Render(notice))
	}
	cards = append(cards, mutedStyle.Render("[l] like  [S] share  [j/k] move"))
	return lipgloss.JoinVertical(lipgloss.Left, cards...)
}
