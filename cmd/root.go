package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/trivial-day-planner/internal/config"
	"github.com/Tiliavir/trivial-day-planner/internal/fixtures"
	appLog "github.com/Tiliavir/trivial-day-planner/internal/log"
)

var (
	configPath string
	logLevel   string

	// cfg is loaded before any subcommand runs.
	cfg = config.Default()

	// logFile is the open log.file, if one is configured.
	logFile *os.File
)

var rootCmd = &cobra.Command{
	Use:   "tdp",
	Short: "Trivial Day Planner – calendar, time blocks and activity timer in the terminal",
	Long: `tdp is a single-binary terminal day planner. It shows a week calendar,
suggests time blocks for free slots, times activities and shows a feed of
what friends have been up to. Sample data is built in; see ~/.tdp/config.json.`,
	SilenceUsage:      true,
	PersistentPreRunE: loadConfig,
}

// Execute is the entry point called from main.
func Execute() {
	err := rootCmd.Execute()
	if logFile != nil {
		logFile.Close()
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default ~/.tdp/config.json)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error (overrides config)")

	rootCmd.AddCommand(uiCmd)
	rootCmd.AddCommand(calendarCmd)
	rootCmd.AddCommand(suggestCmd)
	rootCmd.AddCommand(feedCmd)
	rootCmd.AddCommand(activitiesCmd)
	rootCmd.AddCommand(trackCmd)
}

func loadConfig(cmd *cobra.Command, args []string) error {
	loaded, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	cfg = loaded

	level := cfg.Log.Level
	if logLevel != "" {
		level = logLevel
	}
	appLog.SetLevel(appLog.ParseLevel(level))

	if cfg.Log.File != "" {
		f, err := openLogFile(cfg.Log.File)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: %v; logging to stderr\n", err)
			return nil
		}
		logFile = f
		appLog.SetOutput(f)
	}
	return nil
}

func openLogFile(path string) (*os.File, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, fmt.Errorf("opening log file %s: %w", path, err)
	}
	return f, nil
}

// loadFixtures resolves the configured sample data against now.
func loadFixtures(now time.Time) fixtures.Set {
	set, err := fixtures.Load(cfg.Fixtures.Path, now)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	return set
}
