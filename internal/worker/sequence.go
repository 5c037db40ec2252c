package worker

import (
	"github.com/specialistvlad/baton/internal/blueprint"
	"github.com/specialistvlad/baton/internal/model"
)

// sequence replaces each Role step with the role's steps. Expansion is a
// single pass; the blueprint guarantees roles hold no Role steps.
func sequence(steps []model.Step, bp *blueprint.Blueprint) ([]model.Step, error) {
	out := make([]model.Step, 0, len(steps))
	for _, step := range steps {
		r, ok := step.Role()
		if !ok {
			out = append(out, step)
			continue
		}
		role, err := bp.Role(r.Name)
		if err != nil {
			return nil, err
		}
		out = append(out, role.Steps()...)
	}
	return out, nil
}
