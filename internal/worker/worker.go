package worker

import (
	"context"
	"fmt"
	"runtime/debug"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/specialistvlad/baton/internal/blueprint"
	"github.com/specialistvlad/baton/internal/ctxlog"
	"github.com/specialistvlad/baton/internal/metrics"
	"github.com/specialistvlad/baton/internal/model"
)

// ProcedureFactory resolves a resource declaration into the procedure that
// converges it. Implementations must be deterministic in (typ, attrs).
type ProcedureFactory interface {
	Resolve(typ string, attrs map[string]any) (model.Procedure, error)
}

// Worker builds one system over one connection. Builds on the same Worker are
// serialized.
type Worker struct {
	sys     *model.System
	conn    model.Connection
	factory ProcedureFactory
	metrics *metrics.Collector
	newID   func() string

	mu    sync.Mutex
	state atomic.Int32
}

// Option configures a Worker.
type Option func(*Worker)

// WithMetrics records build and stage metrics into c.
func WithMetrics(c *metrics.Collector) Option {
	return func(w *Worker) {
		w.metrics = c
	}
}

// WithBuildID overrides how build identifiers are generated.
func WithBuildID(fn func() string) Option {
	return func(w *Worker) {
		w.newID = fn
	}
}

// New creates a worker for sys. The worker never opens or closes conn; it only
// hands it to procedures.
func New(sys *model.System, conn model.Connection, factory ProcedureFactory, opts ...Option) *Worker {
	w := &Worker{
		sys:     sys,
		conn:    conn,
		factory: factory,
		newID:   uuid.NewString,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// System returns the system this worker builds.
func (w *Worker) System() *model.System {
	return w.sys
}

// State returns the state of the current or most recent build.
func (w *Worker) State() State {
	return State(w.state.Load())
}

func (w *Worker) transition(to State) {
	from := w.State()
	if !canTransition(from, to) {
		panic(fmt.Sprintf("worker: illegal build transition %s -> %s", from, to))
	}
	w.state.Store(int32(to))
}

type stage struct {
	state State
	run   func(ctx context.Context, steps []model.Step) ([]model.Step, error)
}

// Build runs the full pipeline against bp and returns the first error, or nil
// once every procedure has executed. bp must not change during the build.
//
// A panic in a component, the factory or a procedure fails the build and is
// returned as an ErrBuildPanicked error; the worker stays usable.
func (w *Worker) Build(ctx context.Context, bp *blueprint.Blueprint) (err error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	ctx, logger := ctxlog.With(ctx, "build_id", w.newID(), "system", w.sys.Name)

	stages := []stage{
		{Sequencing, func(ctx context.Context, steps []model.Step) ([]model.Step, error) {
			return sequence(steps, bp)
		}},
		{Assembling, func(ctx context.Context, steps []model.Step) ([]model.Step, error) {
			return w.assemble(ctx, steps, bp)
		}},
		{Compiling, func(ctx context.Context, steps []model.Step) ([]model.Step, error) {
			return compile(steps, w.factory)
		}},
		{Applying, func(ctx context.Context, steps []model.Step) ([]model.Step, error) {
			return nil, w.apply(ctx, steps)
		}},
	}

	w.metrics.BuildStarted()
	logger.Info("Build started.")
	started := time.Now()
	stageStarted := started

	defer func() {
		r := recover()
		if r == nil {
			return
		}
		state := w.State()
		err = fmt.Errorf("%w in %s: %v", ErrBuildPanicked, state, r)
		if canTransition(state, Failed) {
			w.transition(Failed)
		}
		w.metrics.ObserveStage(state.String(), time.Since(stageStarted), true)
		w.metrics.BuildFinished(metrics.OutcomeFailed)
		logger.Error("Build failed.", "stage", state.String(), "error", err, "stack", string(debug.Stack()))
	}()

	steps := w.sys.Steps()
	for _, st := range stages {
		w.transition(st.state)
		stageCtx, stageLogger := ctxlog.With(ctx, "stage", st.state.String())
		stageLogger.Debug("Stage started.", "steps", len(steps))

		stageStarted = time.Now()
		out, err := st.run(stageCtx, steps)
		w.metrics.ObserveStage(st.state.String(), time.Since(stageStarted), err != nil)

		if err != nil {
			w.transition(Failed)
			w.metrics.BuildFinished(metrics.OutcomeFailed)
			stageLogger.Error("Build failed.", "error", err)
			return err
		}
		stageLogger.Debug("Stage finished.", "steps", len(out))
		steps = out
	}

	w.transition(Done)
	w.metrics.BuildFinished(metrics.OutcomeDone)
	logger.Info("Build finished.", "duration", time.Since(started))
	return nil
}
