// Package fixtures loads the sample data every view starts from.
package fixtures

import (
	_ "embed"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/Tiliavir/trivial-day-planner/internal/category"
	appLog "github.com/Tiliavir/trivial-day-planner/internal/log"
	"github.com/Tiliavir/trivial-day-planner/internal/model"
	"github.com/Tiliavir/trivial-day-planner/internal/timecalc"
)

//go:embed default.yaml
var defaultYAML []byte

// Set is the resolved sample data.
type Set struct {
	Activities  []model.Activity
	Events      []model.Event
	Suggestions []model.TimeBlock
	Posts       []model.Post
}

// file mirrors the YAML layout before relative times are resolved.
type file struct {
	Activities  []model.Activity  `yaml:"activities"`
	Events      []eventSpec       `yaml:"events"`
	Suggestions []model.TimeBlock `yaml:"suggestions"`
	Posts       []postSpec        `yaml:"posts"`
}

type eventSpec struct {
	ID       string            `yaml:"id"`
	Title    string            `yaml:"title"`
	Day      int               `yaml:"day"`
	Start    string            `yaml:"start"`
	End      string            `yaml:"end"`
	Category category.Category `yaml:"category"`
	Color    string            `yaml:"color"`
}

type postSpec struct {
	ID       string                 `yaml:"id"`
	User     model.User             `yaml:"user"`
	Activity model.ActivitySnapshot `yaml:"activity"`
	Age      time.Duration          `yaml:"age"`
	Likes    int                    `yaml:"likes"`
	Comments int                    `yaml:"comments"`
	Liked    bool                   `yaml:"liked"`
}

// Default returns the built-in sample data resolved against now.
func Default(now time.Time) (Set, error) {
	return Parse(defaultYAML, now)
}

// Load reads path, or the built-in data when path is empty.
func Load(path string, now time.Time) (Set, error) {
	if path == "" {
		return Default(now)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Set{}, fmt.Errorf("reading fixtures %s: %w", path, err)
	}
	set, err := Parse(data, now)
	if err != nil {
		return Set{}, fmt.Errorf("fixtures %s: %w", path, err)
	}
	appLog.Info("fixtures loaded", "path", path,
		"activities", len(set.Activities), "events", len(set.Events),
		"suggestions", len(set.Suggestions), "posts", len(set.Posts))
	return set, nil
}

// Parse decodes and validates a fixture document.
func Parse(data []byte, now time.Time) (Set, error) {
	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return Set{}, fmt.Errorf("parsing YAML: %w", err)
	}

	set := Set{
		Activities:  f.Activities,
		Suggestions: f.Suggestions,
	}
	if err := uniqueIDs("activity", len(f.Activities), func(i int) string { return f.Activities[i].ID }); err != nil {
		return Set{}, err
	}
	if err := uniqueIDs("event", len(f.Events), func(i int) string { return f.Events[i].ID }); err != nil {
		return Set{}, err
	}
	if err := uniqueIDs("suggestion", len(f.Suggestions), func(i int) string { return f.Suggestions[i].ID }); err != nil {
		return Set{}, err
	}
	if err := uniqueIDs("post", len(f.Posts), func(i int) string { return f.Posts[i].ID }); err != nil {
		return Set{}, err
	}

	for _, s := range f.Suggestions {
		switch s.Priority {
		case model.PriorityHigh, model.PriorityMedium, model.PriorityLow:
		default:
			return Set{}, fmt.Errorf("suggestion %q: unknown priority %q", s.ID, s.Priority)
		}
	}

	for _, e := range f.Events {
		ev, err := e.resolve(now)
		if err != nil {
			return Set{}, err
		}
		set.Events = append(set.Events, ev)
	}

	for _, p := range f.Posts {
		if p.Age < 0 {
			return Set{}, fmt.Errorf("post %q: negative age", p.ID)
		}
		set.Posts = append(set.Posts, model.Post{
			ID:        p.ID,
			User:      p.User,
			Activity:  p.Activity,
			Timestamp: now.Add(-p.Age),
			Likes:     p.Likes,
			Comments:  p.Comments,
			Liked:     p.Liked,
		})
	}
	return set, nil
}

func (e eventSpec) resolve(now time.Time) (model.Event, error) {
	day := now.AddDate(0, 0, e.Day)
	start, err := timecalc.AtClock(day, e.Start)
	if err != nil {
		return model.Event{}, fmt.Errorf("event %q: %w", e.ID, err)
	}
	end, err := timecalc.AtClock(day, e.End)
	if err != nil {
		return model.Event{}, fmt.Errorf("event %q: %w", e.ID, err)
	}
	if !end.After(start) {
		return model.Event{}, fmt.Errorf("event %q: end %s is not after start %s", e.ID, e.End, e.Start)
	}
	return model.Event{
		ID:       e.ID,
		Title:    e.Title,
		Start:    start,
		End:      end,
		Category: e.Category,
		Color:    e.Color,
	}, nil
}

func uniqueIDs(kind string, n int, id func(int) string) error {
	seen := make(map[string]bool, n)
	for i := 0; i < n; i++ {
		v := id(i)
		if v == "" {
			return fmt.Errorf("%s #%d: missing id", kind, i+1)
		}
		if seen[v] {
			return fmt.Errorf("duplicate %s id %q", kind, v)
		}
		seen[v] = true
	}
	return nil
}
