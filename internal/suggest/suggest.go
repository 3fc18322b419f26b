// Package suggest holds the time-block suggestion panel.
package suggest

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/Tiliavir/trivial-day-planner/internal/category"
	appLog "github.com/Tiliavir/trivial-day-planner/internal/log"
	"github.com/Tiliavir/trivial-day-planner/internal/model"
)

// ErrNotFound is returned when a suggestion id is not in the panel.
var ErrNotFound = errors.New("suggestion not found")

// DefaultDelay mimics the time a real planner would take.
const DefaultDelay = 2 * time.Second

// Generator produces a fresh list of suggestions.
type Generator interface {
	Generate(ctx context.Context) ([]model.TimeBlock, error)
}

// Fixed returns the same list every time after Delay.
type Fixed struct {
	Blocks []model.TimeBlock
	Delay  time.Duration
}

func (f Fixed) Generate(ctx context.Context) ([]model.TimeBlock, error) {
	if f.Delay > 0 {
		timer := time.NewTimer(f.Delay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-timer.C:
		}
	}
	out := make([]model.TimeBlock, len(f.Blocks))
	copy(out, f.Blocks)
	return out, nil
}

// Inserter puts an accepted suggestion on the calendar.
type Inserter interface {
	Insert(ctx context.Context, block model.TimeBlock) error
}

// LogInserter records the acceptance and writes nothing.
type LogInserter struct{}

func (LogInserter) Insert(_ context.Context, block model.TimeBlock) error {
	appLog.Info("suggest: accepted suggestion", "id", block.ID, "title", block.Title,
		"start", block.StartTime, "end", block.EndTime)
	return nil
}

// Panel is the ordered list of pending suggestions.
type Panel struct {
	blocks   []model.TimeBlock
	inserter Inserter
}

// NewPanel returns an empty panel. A nil inserter means LogInserter.
func NewPanel(inserter Inserter) *Panel {
	if inserter == nil {
		inserter = LogInserter{}
	}
	return &Panel{inserter: inserter}
}

// Suggestions returns a copy of the pending list.
func (p *Panel) Suggestions() []model.TimeBlock {
	out := make([]model.TimeBlock, len(p.blocks))
	copy(out, p.blocks)
	return out
}

// Replace swaps in a freshly generated list.
func (p *Panel) Replace(blocks []model.TimeBlock) {
	p.blocks = make([]model.TimeBlock, len(blocks))
	copy(p.blocks, blocks)
}

func (p *Panel) index(id string) (int, error) {
	for i, b := range p.blocks {
		if b.ID == id {
			return i, nil
		}
	}
	return -1, fmt.Errorf("%w: %q", ErrNotFound, id)
}

// Accept hands the suggestion to the inserter and removes it. If the
// inserter fails the suggestion stays in the panel.
func (p *Panel) Accept(ctx context.Context, id string) (model.TimeBlock, error) {
	i, err := p.index(id)
	if err != nil {
		return model.TimeBlock{}, err
	}
	block := p.blocks[i]
	if err := p.inserter.Insert(ctx, block); err != nil {
		return model.TimeBlock{}, fmt.Errorf("inserting suggestion %q: %w", id, err)
	}
	p.remove(i)
	return block, nil
}

// Reject drops the suggestion.
func (p *Panel) Reject(id string) (model.TimeBlock, error) {
	i, err := p.index(id)
	if err != nil {
		return model.TimeBlock{}, err
	}
	block := p.blocks[i]
	p.remove(i)
	appLog.Info("suggest: rejected suggestion", "id", id)
	return block, nil
}

func (p *Panel) remove(i int) {
	p.blocks = append(p.blocks[:i], p.blocks[i+1:]...)
}

// CategoryTotal is the planned minutes for one category.
type CategoryTotal struct {
	Category category.Category `json:"category"`
	Minutes  int               `json:"minutes"`
}

// Summarize aggregates planned minutes by category, sorted by category name,
// and returns the grand total.
func Summarize(blocks []model.TimeBlock) ([]CategoryTotal, int) {
	totals := map[category.Category]int{}
	var order []category.Category
	grand := 0
	for _, b := range blocks {
		if _, seen := totals[b.Category]; !seen {
			order = append(order, b.Category)
		}
		totals[b.Category] += b.DurationMinutes
		grand += b.DurationMinutes
	}
	sort.Slice(order, func(i, j int) bool { return order[i] < order[j] })

	out := make([]CategoryTotal, 0, len(order))
	for _, c := range order {
		out = append(out, CategoryTotal{Category: c, Minutes: totals[c]})
	}
	return out, grand
}
