package tracker

import (
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	appLog "github.com/Tiliavir/trivial-day-planner/internal/log"
)

// TickInterval is the scheduler period the tracker expects: Tick adds one
// second, so one tick must be one wall-clock second.
const TickInterval = time.Second

// TickSource hands out a single periodic job handle.
type TickSource interface {
	// Acquire schedules fn to run once per interval. It returns false if a
	// handle is already held.
	Acquire(fn func()) bool
	// Release cancels the held handle, if any.
	Release()
	Active() bool
	Close()
}

// Scheduler runs at most one periodic job on a cron runner.
// Intervals below one second are rounded up to one second.
type Scheduler struct {
	mu       sync.Mutex
	cron     *cron.Cron
	interval time.Duration
	entry    cron.EntryID
	held     bool
	closed   bool
}

// NewScheduler starts a cron runner that will fire an acquired job every interval.
func NewScheduler(interval time.Duration) *Scheduler {
	if interval < time.Second {
		interval = time.Second
	}
	c := cron.New()
	c.Start()
	return &Scheduler{cron: c, interval: interval}
}

func (s *Scheduler) Acquire(fn func()) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.held || s.closed {
		return false
	}
	s.entry = s.cron.Schedule(cron.Every(s.interval), cron.FuncJob(fn))
	s.held = true
	appLog.Debug("scheduler: tick acquired", "entry", s.entry, "interval", s.interval)
	return true
}

func (s *Scheduler) Release() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.held {
		return
	}
	s.cron.Remove(s.entry)
	appLog.Debug("scheduler: tick released", "entry", s.entry)
	s.held = false
	s.entry = 0
}

func (s *Scheduler) Active() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.held
}

// Close releases any handle, stops the runner and waits for a running job to return.
func (s *Scheduler) Close() {
	s.Release()
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	s.mu.Unlock()

	<-s.cron.Stop().Done()
}

// Entries reports how many jobs the runner currently holds.
func (s *Scheduler) Entries() int {
	return len(s.cron.Entries())
}
