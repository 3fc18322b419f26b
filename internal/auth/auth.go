// Package auth is the calendar connection stub. Connecting flips a flag
// after a delay; nothing leaves the process.
package auth

import (
	"context"
	"sync"
	"time"

	appLog "github.com/Tiliavir/trivial-day-planner/internal/log"
)

// DefaultDelay matches the time the connect button spends in "Connecting...".
const DefaultDelay = 1500 * time.Millisecond

// Stub holds the authenticated flag. It is safe for concurrent use.
type Stub struct {
	Delay time.Duration

	mu            sync.Mutex
	authenticated bool
}

func New(delay time.Duration) *Stub {
	return &Stub{Delay: delay}
}

// Connect waits for Delay and marks the stub authenticated. A cancelled
// context aborts the wait and leaves the flag untouched.
func (s *Stub) Connect(ctx context.Context) error {
	if s.Delay > 0 {
		timer := time.NewTimer(s.Delay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timer.C:
		}
	}
	s.mu.Lock()
	s.authenticated = true
	s.mu.Unlock()
	appLog.Info("auth: calendar connected")
	return nil
}

func (s *Stub) Authenticated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.authenticated
}
