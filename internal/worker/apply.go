package worker

import (
	"context"
	"fmt"

	"github.com/specialistvlad/baton/internal/ctxlog"
	"github.com/specialistvlad/baton/internal/model"
)

// apply executes procedures in order and stops at the first error, which is
// returned unchanged. Earlier procedures are not undone.
func (w *Worker) apply(ctx context.Context, steps []model.Step) error {
	logger := ctxlog.FromContext(ctx)
	for i, step := range steps {
		p, ok := step.Procedure()
		if !ok {
			return fmt.Errorf("%w: apply got %s at position %d", ErrUnexpectedStep, step, i)
		}
		logger.Debug("Executing procedure.", "procedure", model.ProcedureName(p.Procedure), "position", i)
		if err := p.Procedure.Execute(ctx, w.sys, w.conn); err != nil {
			return err
		}
		w.metrics.ProcedureApplied()
	}
	return nil
}
