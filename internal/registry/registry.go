package registry

import (
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"slices"

	"github.com/specialistvlad/baton/internal/blueprint"
	"github.com/specialistvlad/baton/internal/model"
)

// ErrUnknownResourceType is returned by Resolve for a type with no registered
// procedure constructor.
var ErrUnknownResourceType = errors.New("unknown resource type")

// Module is the interface that all core modules must implement to be registered.
type Module interface {
	Register(r *Registry)
}

// ProcedureConstructor builds the procedure that converges one resource
// declaration of a given type. attrs is a private copy.
type ProcedureConstructor func(attrs map[string]any) (model.Procedure, error)

// Registry holds all the registered procedures, components, and roles for a
// single application instance.
type Registry struct {
	procedures map[string]ProcedureConstructor
	components map[string]blueprint.Component
	roles      []blueprint.Role
	roleNames  map[string]struct{}
}

// New creates and initializes a new Registry instance.
func New() *Registry {
	return &Registry{
		procedures: make(map[string]ProcedureConstructor),
		components: make(map[string]blueprint.Component),
		roleNames:  make(map[string]struct{}),
	}
}

// Use registers each module with the registry.
func (r *Registry) Use(modules ...Module) *Registry {
	for _, m := range modules {
		m.Register(r)
	}
	return r
}

// RegisterProcedure registers the constructor for a resource type.
func (r *Registry) RegisterProcedure(typ string, ctor ProcedureConstructor) {
	if _, exists := r.procedures[typ]; exists {
		panic(fmt.Sprintf("procedure for resource type '%s' already registered", typ))
	}
	slog.Debug("Registering procedure.", "type", typ)
	r.procedures[typ] = ctor
}

// RegisterComponent registers a component under name.
func (r *Registry) RegisterComponent(name string, c blueprint.Component) {
	if _, exists := r.components[name]; exists {
		panic(fmt.Sprintf("component with name '%s' already registered", name))
	}
	slog.Debug("Registering component.", "name", name)
	r.components[name] = c
}

// RegisterRole registers a role. Roles are handed to blueprints in
// registration order.
func (r *Registry) RegisterRole(role blueprint.Role) {
	if _, exists := r.roleNames[role.Name()]; exists {
		panic(fmt.Sprintf("role with name '%s' already registered", role.Name()))
	}
	slog.Debug("Registering role.", "name", role.Name())
	r.roleNames[role.Name()] = struct{}{}
	r.roles = append(r.roles, role)
}

// Resolve maps a resource declaration to the procedure that converges it.
// The same inputs always produce an equivalent procedure.
func (r *Registry) Resolve(typ string, attrs map[string]any) (model.Procedure, error) {
	ctor, ok := r.procedures[typ]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownResourceType, typ)
	}
	proc, err := ctor(model.CloneAttributes(attrs))
	if err != nil {
		return nil, fmt.Errorf("resource type %q: %w", typ, err)
	}
	return model.Named(typ, proc), nil
}

// Blueprint returns a new blueprint holding every registered role and
// component. Each build gets its own.
func (r *Registry) Blueprint(opts ...blueprint.Option) (*blueprint.Blueprint, error) {
	bp := blueprint.New(opts...)
	for _, name := range slices.Sorted(maps.Keys(r.components)) {
		if err := bp.AddComponent(name, r.components[name]); err != nil {
			return nil, err
		}
	}
	for _, role := range r.roles {
		if err := bp.AddRole(role); err != nil {
			return nil, err
		}
	}
	return bp, nil
}

// ProcedureTypes returns the registered resource types, sorted.
func (r *Registry) ProcedureTypes() []string {
	return slices.Sorted(maps.Keys(r.procedures))
}
