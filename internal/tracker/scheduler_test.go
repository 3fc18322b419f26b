package tracker_test

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Tiliavir/trivial-day-planner/internal/tracker"
)

func TestSchedulerFiresWhileHeld(t *testing.T) {
	s := tracker.NewScheduler(time.Second)
	t.Cleanup(s.Close)

	var fired atomic.Int32
	require.True(t, s.Acquire(func() { fired.Add(1) }))
	require.True(t, s.Active())
	require.Equal(t, 1, s.Entries())

	require.Eventually(t, func() bool { return fired.Load() >= 1 }, 3*time.Second, 50*time.Millisecond)

	s.Release()
	require.False(t, s.Active())
	require.Zero(t, s.Entries())
}

func TestSchedulerSingleHandle(t *testing.T) {
	s := tracker.NewScheduler(time.Second)
	t.Cleanup(s.Close)

	require.True(t, s.Acquire(func() {}))
	require.False(t, s.Acquire(func() {}))
	require.Equal(t, 1, s.Entries())

	s.Release()
	s.Release()
	require.True(t, s.Acquire(func() {}))
}

func TestSchedulerClose(t *testing.T) {
	s := tracker.NewScheduler(0)
	require.True(t, s.Acquire(func() {}))

	s.Close()
	require.False(t, s.Active())
	require.False(t, s.Acquire(func() {}))
	s.Close()
}
