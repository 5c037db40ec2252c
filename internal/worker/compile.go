package worker

import (
	"fmt"

	"github.com/specialistvlad/baton/internal/model"
)

// compile resolves every Resource step into a Procedure step at the same
// position. Nothing executes until every declaration has resolved.
func compile(steps []model.Step, factory ProcedureFactory) ([]model.Step, error) {
	out := make([]model.Step, 0, len(steps))
	for i, step := range steps {
		switch step.Kind() {
		case model.KindProcedure:
			out = append(out, step)
		case model.KindResource:
			r, _ := step.Resource()
			proc, err := factory.Resolve(r.Declaration.Type, r.Declaration.Attributes)
			if err != nil {
				return nil, err
			}
			out = append(out, model.Proc(proc))
		default:
			return nil, fmt.Errorf("%w: compile got %s at position %d", ErrUnexpectedStep, step, i)
		}
	}
	return out, nil
}
