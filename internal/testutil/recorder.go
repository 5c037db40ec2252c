package testutil

import (
	"context"
	"slices"
	"sync"

	"github.com/specialistvlad/baton/internal/model"
)

// Recorder collects the names of procedures in the order they executed.
type Recorder struct {
	mu    sync.Mutex
	names []string
}

// RecordedProcedure records its name into a Recorder when executed. It is a
// comparable value so steps holding it can be checked with assert.Equal.
type RecordedProcedure struct {
	recorder *Recorder
	name     string
	err      error
}

// Execute records the procedure name and returns the configured error.
func (p *RecordedProcedure) Execute(context.Context, *model.System, model.Connection) error {
	p.recorder.Record(p.name)
	return p.err
}

// Name returns the recorded name.
func (p *RecordedProcedure) Name() string {
	return p.name
}

// Procedure returns a procedure that records name when executed.
func (r *Recorder) Procedure(name string) *RecordedProcedure {
	return r.Failing(name, nil)
}

// Failing returns a procedure that records name and then returns err.
func (r *Recorder) Failing(name string, err error) *RecordedProcedure {
	return &RecordedProcedure{recorder: r, name: name, err: err}
}

// Record appends name to the log.
func (r *Recorder) Record(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.names = append(r.names, name)
}

// Names returns the recorded names in execution order.
func (r *Recorder) Names() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.names)
}

// FakeConn is a Connection that records commands and returns canned output.
type FakeConn struct {
	mu       sync.Mutex
	Commands [][]string
	Output   []byte
	Err      error
	Closed   bool
}

// Run records the command.
func (c *FakeConn) Run(_ context.Context, name string, args ...string) ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Commands = append(c.Commands, append([]string{name}, args...))
	return c.Output, c.Err
}

// Close marks the connection closed.
func (c *FakeConn) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Closed = true
	return nil
}
