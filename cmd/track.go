package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/trivial-day-planner/internal/app"
	"github.com/Tiliavir/trivial-day-planner/internal/render"
	"github.com/Tiliavir/trivial-day-planner/internal/timecalc"
	"github.com/Tiliavir/trivial-day-planner/internal/tracker"
)

var (
	trackFor    time.Duration
	trackFormat string
	trackQuiet  bool
)

var trackCmd = &cobra.Command{
	Use:   "track <activity-id>",
	Short: "Time an activity until interrupted (Ctrl+C)",
	Args:  cobra.ExactArgs(1),
	RunE:  runTrack,
}

func init() {
	trackCmd.Flags().DurationVar(&trackFor, "for", 0, "Stop automatically after this long, e.g. 25m")
	trackCmd.Flags().StringVar(&trackFormat, "format", "md", "Summary format: md, json")
	trackCmd.Flags().BoolVar(&trackQuiet, "quiet", false, "Do not print the running clock")
}

func runTrack(cmd *cobra.Command, args []string) error {
	id := args[0]
	now := time.Now()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if trackFor > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, trackFor)
		defer cancel()
	}

	a := app.New(cfg, loadFixtures(now))
	defer a.Close()

	if err := a.StartActivity(id); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	act, _ := a.Tracker.Running()
	fmt.Fprintf(os.Stderr, "Started %q at %s. Ctrl+C to stop.\n", act.Name, now.Format("15:04:05"))

	elapsed := runSession(ctx, a)
	if !trackQuiet {
		fmt.Fprintln(os.Stderr)
	}

	if err := a.StopActivity(id); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	fmt.Fprintf(os.Stderr, "Stopped %q after %s\n", act.Name, timecalc.FormatElapsed(elapsed))

	if err := printTrackSummary(a.Tracker.Snapshot()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	if err := a.Metrics.WriteTextfile(cfg.Metrics.Textfile); err != nil {
		fmt.Fprintln(os.Stderr, "Warning:", err)
	}
	return nil
}

// runSession applies scheduler ticks until ctx ends and returns the session length.
func runSession(ctx context.Context, a *app.App) int64 {
	for {
		select {
		case <-ctx.Done():
			return a.Tracker.CurrentElapsed()
		case tick := <-a.Ticks():
			a.ApplyTick(tick)
			if !trackQuiet {
				fmt.Fprintf(os.Stderr, "\r%s", timecalc.FormatDurationHHMMSS(a.Tracker.CurrentElapsed()))
			}
		}
	}
}

func printTrackSummary(s tracker.Snapshot) error {
	switch trackFormat {
	case "json":
		data, err := json.MarshalIndent(s, "", "  ")
		if err != nil {
			return fmt.Errorf("error encoding JSON: %w", err)
		}
		fmt.Println(string(data))
	default: // md
		fmt.Println(render.Tracker(s, -1))
	}
	return nil
}
