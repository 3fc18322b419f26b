package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/trivial-day-planner/internal/app"
	"github.com/Tiliavir/trivial-day-planner/internal/config"
	appLog "github.com/Tiliavir/trivial-day-planner/internal/log"
	"github.com/Tiliavir/trivial-day-planner/internal/tui"
)

var uiICS string

var uiCmd = &cobra.Command{
	Use:   "ui",
	Short: "Open the interactive planner",
	Args:  cobra.NoArgs,
	RunE:  runUI,
}

func init() {
	uiCmd.Flags().StringVar(&uiICS, "ics", "", "Import events from a local .ics file")
}

func runUI(cmd *cobra.Command, args []string) error {
	now := time.Now()

	// The screen belongs to the UI, so logs always go to a file.
	logOut, owned, err := uiLogOutput(logFile)
	switch {
	case err != nil:
		fmt.Fprintf(os.Stderr, "Warning: %v; logs are discarded\n", err)
		appLog.SetOutput(io.Discard)
	case owned:
		defer logOut.Close()
		appLog.SetOutput(logOut)
	}

	a := app.New(cfg, loadFixtures(now))
	defer a.Close()

	if uiICS != "" {
		evs, err := importICS(uiICS, now)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(2)
		}
		a.AddEvents(evs)
	}

	if err := tui.Run(a); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	if err := a.Metrics.WriteTextfile(cfg.Metrics.Textfile); err != nil {
		fmt.Fprintln(os.Stderr, "Warning:", err)
	}
	return nil
}

// uiLogOutput returns the file UI logs go to. An already open log.file is
// reused as is; otherwise ~/.tdp/tdp.log is opened and owned by the caller.
func uiLogOutput(configured *os.File) (f *os.File, owned bool, err error) {
	if configured != nil {
		return configured, false, nil
	}
	dir, err := config.Dir()
	if err != nil {
		return nil, false, err
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, false, fmt.Errorf("creating %s: %w", dir, err)
	}
	f, err = openLogFile(filepath.Join(dir, "tdp.log"))
	if err != nil {
		return nil, false, err
	}
	return f, true, nil
}
