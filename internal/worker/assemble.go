package worker

import (
	"context"
	"fmt"

	"github.com/specialistvlad/baton/internal/blueprint"
	"github.com/specialistvlad/baton/internal/ctxlog"
	"github.com/specialistvlad/baton/internal/model"
)

// assemble builds every Component step, in order, and splices the returned
// declarations in as Resource steps. Component errors are returned unchanged.
// Resource steps declared directly on the system are already assembled.
func (w *Worker) assemble(ctx context.Context, steps []model.Step, bp *blueprint.Blueprint) ([]model.Step, error) {
	logger := ctxlog.FromContext(ctx)
	out := make([]model.Step, 0, len(steps))

	for i, step := range steps {
		switch step.Kind() {
		case model.KindProcedure, model.KindResource:
			out = append(out, step)

		case model.KindComponent:
			c, _ := step.Component()
			id, descriptor := blueprint.SplitName(c.Name)

			component, err := bp.Component(id)
			if err != nil {
				return nil, err
			}

			logger.Debug("Building component.", "component", id, "descriptor", descriptor)
			decls, err := component.Build(ctx, descriptor, c.Options, w.sys, bp)
			if err != nil {
				return nil, err
			}
			for _, rd := range decls {
				out = append(out, model.Resource(rd))
			}
			w.metrics.AddResources(len(decls))

		default:
			return nil, fmt.Errorf("%w: assemble got %s at position %d", ErrUnexpectedStep, step, i)
		}
	}
	return out, nil
}
