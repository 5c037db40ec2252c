package registry

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"slices"

	"github.com/specialistvlad/baton/internal/blueprint"
	"github.com/specialistvlad/baton/internal/ctxlog"
)

// Validate checks that every component name can be referenced and that every
// registered role is well formed and only references registered components. All problems are reported together.
func (r *Registry) Validate(ctx context.Context) error {
	logger := ctxlog.FromContext(ctx)
	var errs []error

	for _, name := range slices.Sorted(maps.Keys(r.components)) {
		if err := blueprint.New().AddComponent(name, r.components[name]); err != nil {
			errs = append(errs, err)
		}
	}

	for _, role := range r.roles {
		steps := role.Steps()
		if len(steps) == 0 {
			logger.Warn("Role has no steps.", "role", role.Name())
		}
		if err := blueprint.New().AddRole(role); err != nil {
			errs = append(errs, err)
			continue
		}
		for _, ref := range blueprint.ComponentRefs(role) {
			if _, ok := r.components[ref]; !ok {
				errs = append(errs, fmt.Errorf("role %q: %w: %q", role.Name(), blueprint.ErrComponentNotFound, ref))
			}
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("registry validation failed: %w", errors.Join(errs...))
	}
	logger.Debug("Registry validation passed.",
		"roles", len(r.roles),
		"components", len(r.components),
		"procedures", len(r.procedures))
	return nil
}
