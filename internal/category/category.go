// Package category holds the closed set of activity categories and the
// display metadata every view renders them with.
package category

import (
	"fmt"
	"strings"
)

// Category identifies what kind of activity something is. It is used only
// for label and color lookup.
type Category string

const (
	CSStudy   Category = "cs-study"
	EconStudy Category = "econ-study"
	Gym       Category = "gym"
	Reading   Category = "reading"
	Personal  Category = "personal"
)

// Meta is the presentation data for one category.
type Meta struct {
	Label string
	// Color is a hex RGB string usable by lipgloss.
	Color string
	Icon  string
}

// fallback is used for anything outside the closed set (e.g. imported ICS events).
var fallback = Meta{Label: "Other", Color: "#6B7280", Icon: "•"}

var table = map[Category]Meta{
	CSStudy:   {Label: "CS Study", Color: "#3B82F6", Icon: "🧠"},
	EconStudy: {Label: "Econ Study", Color: "#22C55E", Icon: "📘"},
	Gym:       {Label: "Gym", Color: "#EF4444", Icon: "🏋"},
	Reading:   {Label: "Reading", Color: "#A855F7", Icon: "📖"},
	Personal:  {Label: "Personal", Color: "#EAB308", Icon: "☕"},
}

// aliases accepts the identifiers older fixture files used.
var aliases = map[string]Category{
	"study-cs":   CSStudy,
	"study-econ": EconStudy,
}

// All returns the closed set in display order.
func All() []Category {
	return []Category{CSStudy, EconStudy, Gym, Reading, Personal}
}

// Parse resolves s (case-insensitive, aliases allowed) to a Category.
func Parse(s string) (Category, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	if c, ok := aliases[key]; ok {
		return c, nil
	}
	c := Category(key)
	if _, ok := table[c]; ok {
		return c, nil
	}
	return "", fmt.Errorf("unknown category %q", s)
}

// Valid reports whether c belongs to the closed set.
func (c Category) Valid() bool {
	_, ok := table[c]
	return ok
}

// Meta returns the display metadata for c, or the neutral fallback.
func (c Category) Meta() Meta {
	if m, ok := table[c]; ok {
		return m
	}
	if c != "" {
		m := fallback
		m.Label = string(c)
		return m
	}
	return fallback
}

func (c Category) Label() string { return c.Meta().Label }

func (c Category) Color() string { return c.Meta().Color }

// UnmarshalText lets fixture files and JSON use either canonical names or aliases.
func (c *Category) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

func (c Category) MarshalText() ([]byte, error) {
	return []byte(c), nil
}
