package blueprint

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/specialistvlad/baton/internal/template"
)

// Blueprint maps role names to Roles and component names to Components.
type Blueprint struct {
	roles      map[string]Role
	components map[string]Component
	templates  template.Options
}

// Option configures a Blueprint.
type Option func(*Blueprint)

// WithTemplates sets how Template resolves names.
func WithTemplates(opts template.Options) Option {
	return func(bp *Blueprint) {
		bp.templates = opts
	}
}

// New creates an empty blueprint.
func New(opts ...Option) *Blueprint {
	bp := &Blueprint{
		roles:      make(map[string]Role),
		components: make(map[string]Component),
	}
	for _, opt := range opts {
		opt(bp)
	}
	return bp
}

// AddRole defines a role. Roles may not contain Role or Resource steps.
func (bp *Blueprint) AddRole(role Role) error {
	if _, exists := bp.roles[role.name]; exists {
		return fmt.Errorf("%w: role %q", ErrDuplicate, role.name)
	}
	if err := role.validate(); err != nil {
		return err
	}
	bp.roles[role.name] = role
	return nil
}

// AddComponent defines a component under name. Names may not contain "/".
func (bp *Blueprint) AddComponent(name string, c Component) error {
	if name == "" || c == nil {
		return fmt.Errorf("component %q: name and implementation are required", name)
	}
	if strings.Contains(name, "/") {
		return fmt.Errorf("%w: %q contains \"/\"", ErrInvalidName, name)
	}
	if _, exists := bp.components[name]; exists {
		return fmt.Errorf("%w: component %q", ErrDuplicate, name)
	}
	bp.components[name] = c
	return nil
}

// Role returns the named role or an ErrMissingRole error.
func (bp *Blueprint) Role(name string) (Role, error) {
	role, ok := bp.roles[name]
	if !ok {
		return Role{}, fmt.Errorf("%w: %q", ErrMissingRole, name)
	}
	return role, nil
}

// Component returns the named component or an ErrComponentNotFound error.
func (bp *Blueprint) Component(name string) (Component, error) {
	c, ok := bp.components[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrComponentNotFound, name)
	}
	return c, nil
}

// Roles returns the defined role names, sorted.
func (bp *Blueprint) Roles() []string {
	return slices.Sorted(maps.Keys(bp.roles))
}

// Components returns the defined component names, sorted.
func (bp *Blueprint) Components() []string {
	return slices.Sorted(maps.Keys(bp.components))
}

// Template resolves a template for a component to render.
func (bp *Blueprint) Template(name string) (*template.Template, error) {
	return template.New(name, bp.templates)
}

// ComponentRefs returns the component identifiers referenced by the role's
// Component steps, in order. It is used to validate a blueprint before a build.
func ComponentRefs(role Role) []string {
	var refs []string
	for _, step := range role.steps {
		if c, ok := step.Component(); ok {
			id, _ := SplitName(c.Name)
			refs = append(refs, id)
		}
	}
	return refs
}

// SplitName splits a component step name into the component identifier and
// the descriptor: "pkg/nginx" -> ("pkg", "nginx"), "a/b/c" -> ("a", "b/c"),
// "pkg" -> ("pkg", "").
func SplitName(name string) (id, descriptor string) {
	id, descriptor, _ = strings.Cut(name, "/")
	return id, descriptor
}
