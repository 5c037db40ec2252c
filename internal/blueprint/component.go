package blueprint

import (
	"context"

	"github.com/specialistvlad/baton/internal/model"
)

// Component expands one declarative reference into resource declarations.
//
// descriptor is the part of the step name after the first "/" (empty when the
// name has none). The returned declarations keep their order; an empty result
// is valid. Build may do I/O and is called once per Component step.
type Component interface {
	Build(ctx context.Context, descriptor string, options map[string]any, sys *model.System, bp *Blueprint) ([]model.ResourceDeclaration, error)
}

// ComponentFunc adapts a function to the Component interface.
type ComponentFunc func(ctx context.Context, descriptor string, options map[string]any, sys *model.System, bp *Blueprint) ([]model.ResourceDeclaration, error)

// Build calls f.
func (f ComponentFunc) Build(ctx context.Context, descriptor string, options map[string]any, sys *model.System, bp *Blueprint) ([]model.ResourceDeclaration, error) {
	return f(ctx, descriptor, options, sys, bp)
}
