package testutil

import (
	"context"
	"sync"
	"time"

	"github.com/specialistvlad/baton/internal/model"
)

// Sleeper is a procedure for concurrency tests. It sleeps and records the
// execution window per system.
type Sleeper struct {
	ExecutionTimes map[string]*ExecutionRecord
	mu             sync.Mutex
	sleepDuration  time.Duration
}

// NewSleeper creates a sleeper that sleeps for d on each execution.
func NewSleeper(d time.Duration) *Sleeper {
	return &Sleeper{
		ExecutionTimes: make(map[string]*ExecutionRecord),
		sleepDuration:  d,
	}
}

// Execute sleeps, honouring ctx, and records the window under the system name.
func (s *Sleeper) Execute(ctx context.Context, sys *model.System, _ model.Connection) error {
	start := time.Now()
	select {
	case <-time.After(s.sleepDuration):
	case <-ctx.Done():
		return ctx.Err()
	}
	end := time.Now()

	s.mu.Lock()
	s.ExecutionTimes[sys.Name] = &ExecutionRecord{Start: start, End: end}
	s.mu.Unlock()
	return nil
}

// Record returns the execution window for a system, or nil.
func (s *Sleeper) Record(system string) *ExecutionRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ExecutionTimes[system]
}
