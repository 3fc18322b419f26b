package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/trivial-day-planner/internal/feed"
	"github.com/Tiliavir/trivial-day-planner/internal/render"
)

var feedCmd = &cobra.Command{
	Use:   "feed",
	Short: "Show the activity feed",
	Args:  cobra.NoArgs,
	RunE:  runFeed,
}

func runFeed(cmd *cobra.Command, args []string) error {
	now := time.Now()
	f := feed.New(loadFixtures(now).Posts)
	fmt.Println(render.Feed(f.Posts(), now, -1, ""))
	return nil
}
