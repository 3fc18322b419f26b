package suggest_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Tiliavir/trivial-day-planner/internal/category"
	"github.com/Tiliavir/trivial-day-planner/internal/model"
	"github.com/Tiliavir/trivial-day-planner/internal/suggest"
)

var blocks = []model.TimeBlock{
	{ID: "1", Category: category.CSStudy, Title: "Review CS 106 Algorithms", DurationMinutes: 90, StartTime: "09:00", EndTime: "10:30", Priority: model.PriorityHigh},
	{ID: "2", Category: category.EconStudy, Title: "Econ Problem Set", DurationMinutes: 60, StartTime: "11:00", EndTime: "12:00", Priority: model.PriorityMedium},
	{ID: "3", Category: category.Gym, Title: "Morning Workout", DurationMinutes: 45, StartTime: "07:00", EndTime: "07:45", Priority: model.PriorityMedium},
	{ID: "4", Category: category.CSStudy, Title: "Lab prep", DurationMinutes: 30, StartTime: "13:00", EndTime: "13:30", Priority: model.PriorityLow},
}

type recordingInserter struct {
	got []model.TimeBlock
	err error
}

func (r *recordingInserter) Insert(_ context.Context, b model.TimeBlock) error {
	if r.err != nil {
		return r.err
	}
	r.got = append(r.got, b)
	return nil
}

func ids(bs []model.TimeBlock) []string {
	out := make([]string, 0, len(bs))
	for _, b := range bs {
		out = append(out, b.ID)
	}
	return out
}

func TestFixedGenerateReturnsCopy(t *testing.T) {
	gen := suggest.Fixed{Blocks: blocks}
	got, err := gen.Generate(context.Background())
	require.NoError(t, err)
	require.Equal(t, blocks, got)

	got[0].Title = "mutated"
	require.Equal(t, "Review CS 106 Algorithms", blocks[0].Title)
}

func TestFixedGenerateWaitsForDelay(t *testing.T) {
	gen := suggest.Fixed{Blocks: blocks, Delay: 50 * time.Millisecond}
	start := time.Now()
	_, err := gen.Generate(context.Background())
	require.NoError(t, err)
	require.GreaterOrEqual(t, time.Since(start), 50*time.Millisecond)
}

func TestFixedGenerateHonorsCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := suggest.Fixed{Blocks: blocks, Delay: time.Hour}.Generate(ctx)
	require.ErrorIs(t, err, context.Canceled)
}

func TestAcceptRemovesAndInserts(t *testing.T) {
	ins := &recordingInserter{}
	p := suggest.NewPanel(ins)
	p.Replace(blocks)

	got, err := p.Accept(context.Background(), "2")
	require.NoError(t, err)
	require.Equal(t, "Econ Problem Set", got.Title)
	require.Equal(t, []string{"1", "3", "4"}, ids(p.Suggestions()))
	require.Equal(t, []string{"2"}, ids(ins.got))
}

func TestAcceptKeepsSuggestionWhenInsertFails(t *testing.T) {
	p := suggest.NewPanel(&recordingInserter{err: errors.New("calendar unavailable")})
	p.Replace(blocks)

	_, err := p.Accept(context.Background(), "1")
	require.ErrorContains(t, err, "calendar unavailable")
	require.Len(t, p.Suggestions(), 4)
}

func TestRejectRemoves(t *testing.T) {
	p := suggest.NewPanel(nil)
	p.Replace(blocks)

	_, err := p.Reject("1")
	require.NoError(t, err)
	_, err = p.Reject("4")
	require.NoError(t, err)
	require.Equal(t, []string{"2", "3"}, ids(p.Suggestions()))
}

func TestUnknownSuggestion(t *testing.T) {
	p := suggest.NewPanel(nil)
	p.Replace(blocks)

	_, err := p.Accept(context.Background(), "9")
	require.ErrorIs(t, err, suggest.ErrNotFound)
	_, err = p.Reject("9")
	require.ErrorIs(t, err, suggest.ErrNotFound)
	require.Len(t, p.Suggestions(), 4)
}

func TestReplaceDoesNotAliasInput(t *testing.T) {
	in := append([]model.TimeBlock(nil), blocks...)
	p := suggest.NewPanel(nil)
	p.Replace(in)
	_, err := p.Reject("1")
	require.NoError(t, err)
	require.Equal(t, "1", in[0].ID)
}

func TestSummarize(t *testing.T) {
	totals, grand := suggest.Summarize(blocks)
	require.Equal(t, 225, grand)
	require.Equal(t, []suggest.CategoryTotal{
		{Category: category.CSStudy, Minutes: 120},
		{Category: category.EconStudy, Minutes: 60},
		{Category: category.Gym, Minutes: 45},
	}, totals)

	totals, grand = suggest.Summarize(nil)
	require.Empty(t, totals)
	require.Zero(t, grand)
}
