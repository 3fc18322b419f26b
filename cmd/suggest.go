package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/trivial-day-planner/internal/app"
	"github.com/Tiliavir/trivial-day-planner/internal/model"
	"github.com/Tiliavir/trivial-day-planner/internal/render"
	"github.com/Tiliavir/trivial-day-planner/internal/suggest"
	"github.com/Tiliavir/trivial-day-planner/internal/timecalc"
)

var (
	suggestFormat  string
	suggestNoDelay bool
)

var suggestCmd = &cobra.Command{
	Use:   "suggest",
	Short: "Generate time block suggestions and show planned time per category",
	Args:  cobra.NoArgs,
	RunE:  runSuggest,
}

func init() {
	suggestCmd.Flags().StringVar(&suggestFormat, "format", "md", "Output format: md, csv, json")
	suggestCmd.Flags().BoolVar(&suggestNoDelay, "no-delay", false, "Skip the simulated generation delay")
}

type suggestReport struct {
	Date         string                  `json:"date"`
	Suggestions  []model.TimeBlock       `json:"suggestions"`
	Categories   []suggest.CategoryTotal `json:"categories"`
	TotalMinutes int                     `json:"total_minutes"`
}

func runSuggest(cmd *cobra.Command, args []string) error {
	now := time.Now()
	if suggestNoDelay {
		cfg.Suggestions.GenerateDelay = "0s"
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	a := app.New(cfg, loadFixtures(now))
	defer a.Close()

	if suggestFormat == "md" && !suggestNoDelay {
		fmt.Fprintln(os.Stderr, "Generating...")
	}
	blocks, err := a.Generate(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	totals, grand := suggest.Summarize(blocks)

	switch suggestFormat {
	case "csv":
		fmt.Println("id,category,title,start,end,duration_minutes,priority")
		for _, b := range blocks {
			fmt.Printf("%s,%s,%s,%s,%s,%d,%s\n",
				csvEscape(b.ID),
				csvEscape(string(b.Category)),
				csvEscape(b.Title),
				csvEscape(b.StartTime),
				csvEscape(b.EndTime),
				b.DurationMinutes,
				csvEscape(string(b.Priority)),
			)
		}
	case "json":
		data, err := json.MarshalIndent(suggestReport{
			Date:         now.Format("2006-01-02"),
			Suggestions:  blocks,
			Categories:   totals,
			TotalMinutes: grand,
		}, "", "  ")
		if err != nil {
			fmt.Fprintln(os.Stderr, "error encoding JSON:", err)
			os.Exit(2)
		}
		fmt.Println(string(data))
	default: // md
		fmt.Println(render.Suggestions(blocks, -1, false))
		fmt.Println()
		fmt.Printf("Planned for %s\n", now.Format("Mon Jan 2"))
		fmt.Println("--------------------------------")
		for _, t := range totals {
			fmt.Printf("%-20s%s\n", t.Category.Label(), timecalc.FormatHoursMinutes(int64(t.Minutes)*60))
		}
		fmt.Println("--------------------------------")
		fmt.Printf("%-20s%s\n", "Total", timecalc.FormatHoursMinutes(int64(grand)*60))
	}

	return nil
}
