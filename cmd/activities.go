package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/trivial-day-planner/internal/model"
	"github.com/Tiliavir/trivial-day-planner/internal/timecalc"
)

var activitiesFormat string

var activitiesCmd = &cobra.Command{
	Use:   "activities",
	Short: "List the trackable activities",
	Args:  cobra.NoArgs,
	RunE:  runActivities,
}

func init() {
	activitiesCmd.Flags().StringVar(&activitiesFormat, "format", "md", "Output format: md, csv, json")
}

func runActivities(cmd *cobra.Command, args []string) error {
	acts := loadFixtures(time.Now()).Activities

	switch activitiesFormat {
	case "json":
		data, err := json.MarshalIndent(acts, "", "  ")
		if err != nil {
			fmt.Fprintln(os.Stderr, "error encoding JSON:", err)
			os.Exit(2)
		}
		fmt.Println(string(data))
	case "csv":
		writeActivitiesCSV(os.Stdout, acts)
	default: // md
		for _, a := range acts {
			fmt.Printf("%-4s %-24s %-12s %s\n", a.ID, a.Name, a.Category.Label(), timecalc.FormatDuration(a.DurationSeconds))
		}
	}
	return nil
}

func writeActivitiesCSV(w io.Writer, acts []model.Activity) {
	fmt.Fprintln(w, "id,name,category,duration_minutes")
	for _, a := range acts {
		fmt.Fprintf(w, "%s,%s,%s,%d\n",
			csvEscape(a.ID),
			csvEscape(a.Name),
			csvEscape(string(a.Category)),
			a.DurationSeconds/60,
		)
	}
}

// csvEscape wraps a field in quotes if it contains a comma, quote, or newline.
func csvEscape(s string) string {
	needsQuote := false
	for _, c := range s {
		if c == ',' || c == '"' || c == '\n' || c == '\r' {
			needsQuote = true
			break
		}
	}
	if !needsQuote {
		return s
	}
	// Escape internal double quotes by doubling them.
	escaped := ""
	for _, c := range s {
		if c == '"' {
			escaped += "\""
		}
		escaped += string(c)
	}
	return `"` + escaped + `"`
}
