package blueprint

import (
	"fmt"
	"slices"

	"github.com/specialistvlad/baton/internal/model"
)

// Role is a reusable, named, ordered group of Component and Procedure steps.
type Role struct {
	name  string
	steps []model.Step
}

// NewRole creates a role from steps, kept in the given order.
func NewRole(name string, steps ...model.Step) Role {
	return Role{name: name, steps: slices.Clone(steps)}
}

// Name returns the role name.
func (r Role) Name() string {
	return r.name
}

// Steps returns a copy of the role's steps.
func (r Role) Steps() []model.Step {
	return slices.Clone(r.steps)
}

// validate enforces that expansion is single-level: a role holds only
// Component and Procedure steps.
func (r Role) validate() error {
	for i, step := range r.steps {
		switch step.Kind() {
		case model.KindComponent, model.KindProcedure:
		default:
			return fmt.Errorf("%w: role %q step %d is %s", ErrNestedRole, r.name, i, step.Kind())
		}
	}
	return nil
}
