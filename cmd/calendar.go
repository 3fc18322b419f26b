package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/trivial-day-planner/internal/app"
	"github.com/Tiliavir/trivial-day-planner/internal/calendar"
	"github.com/Tiliavir/trivial-day-planner/internal/model"
	"github.com/Tiliavir/trivial-day-planner/internal/render"
	"github.com/Tiliavir/trivial-day-planner/internal/timecalc"
)

// icsWindow bounds recurrence expansion around today.
const icsWindow = 26 * 7 * 24 * time.Hour

var (
	calendarDate      string
	calendarWeek      int
	calendarICS       string
	calendarWeekStart string
)

var calendarCmd = &cobra.Command{
	Use:   "calendar",
	Short: "Print the week grid and the selected day's agenda",
	Args:  cobra.NoArgs,
	RunE:  runCalendar,
}

func init() {
	calendarCmd.Flags().StringVar(&calendarDate, "date", "", "Selected day, YYYY-MM-DD (default today)")
	calendarCmd.Flags().IntVar(&calendarWeek, "week", 0, "Week offset from the selected day, e.g. -1 or 2")
	calendarCmd.Flags().StringVar(&calendarICS, "ics", "", "Import events from a local .ics file")
	calendarCmd.Flags().StringVar(&calendarWeekStart, "week-start", "", "First weekday: sunday or monday (overrides config)")
}

func runCalendar(cmd *cobra.Command, args []string) error {
	now := time.Now()

	if calendarWeekStart != "" {
		if _, err := timecalc.ParseWeekday(calendarWeekStart); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(2)
		}
		cfg.Calendar.WeekStart = calendarWeekStart
	}

	a := app.New(cfg, loadFixtures(now))
	defer a.Close()

	if calendarDate != "" {
		day, err := time.ParseInLocation("2006-01-02", calendarDate, now.Location())
		if err != nil {
			fmt.Fprintf(os.Stderr, "invalid --date %q: %v\n", calendarDate, err)
			os.Exit(2)
		}
		a.Calendar.Anchor, a.Calendar.Selected = day, day
	}
	for i := 0; i < calendarWeek; i++ {
		a.Calendar.NextWeek()
	}
	for i := 0; i > calendarWeek; i-- {
		a.Calendar.PrevWeek()
	}

	if calendarICS != "" {
		evs, err := importICS(calendarICS, a.Calendar.Anchor)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(2)
		}
		fmt.Fprintf(os.Stderr, "Imported %d events from %s\n", a.AddEvents(evs), calendarICS)
	}

	week := a.Week()
	fmt.Println(week.Label())
	fmt.Println(render.Calendar(week, 16))
	fmt.Println()
	fmt.Print(render.DayAgenda(a.Calendar.Selected, a.Events()))
	return nil
}

// importICS reads a local iCalendar file and expands it around center.
func importICS(path string, center time.Time) ([]model.Event, error) {
	loc, err := cfg.Location()
	if err != nil {
		return nil, fmt.Errorf("calendar.timezone: %w", err)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	evs, err := calendar.ParseICS(f, calendar.ImportOptions{
		From:     center.Add(-icsWindow),
		To:       center.Add(icsWindow),
		Location: loc,
	})
	if err != nil {
		return nil, fmt.Errorf("importing %s: %w", path, err)
	}
	return evs, nil
}
