package inventory

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strconv"

	"github.com/specialistvlad/baton/internal/blueprint"
	"github.com/specialistvlad/baton/internal/model"
)

var (
	// ErrDuplicateHost is returned when a host name is declared twice.
	ErrDuplicateHost = errors.New("duplicate host")
	// ErrUnknownHost is returned by Select for a name that is not declared.
	ErrUnknownHost = errors.New("unknown host")
	// ErrInvalidHost is returned for a host entry that cannot be used.
	ErrInvalidHost = errors.New("invalid host")
	// ErrInvalidRole is returned for a role entry that cannot be used.
	ErrInvalidRole = errors.New("invalid role")
	// ErrDuplicateRole is returned when a role name is declared twice.
	ErrDuplicateRole = errors.New("duplicate role")
)

// Host is one inventory entry as it appears in a file.
type Host struct {
	Name       string         `toml:"name" yaml:"name" json:"name"`
	Address    string         `toml:"address" yaml:"address" json:"address"`
	User       string         `toml:"user" yaml:"user" json:"user"`
	Port       int            `toml:"port" yaml:"port" json:"port"`
	Transport  string         `toml:"transport" yaml:"transport" json:"transport"`
	Roles      []string       `toml:"roles" yaml:"roles" json:"roles"`
	Components []ComponentRef `toml:"components" yaml:"components" json:"components"`
	Attributes map[string]any `toml:"attributes" yaml:"attributes" json:"attributes"`
}

// system converts the entry into a System. Connection fields override keys of
// the same name in Attributes.
func (h Host) system() *model.System {
	attrs := model.CloneAttributes(h.Attributes)
	if attrs == nil {
		attrs = make(map[string]any)
	}
	set := func(key, val string) {
		if val != "" {
			attrs[key] = val
		}
	}
	set("address", h.Address)
	set("user", h.User)
	set("transport", h.Transport)
	if h.Port != 0 {
		attrs["port"] = strconv.Itoa(h.Port)
	}

	sys := model.NewSystem(h.Name, attrs)
	for _, role := range h.Roles {
		sys.Role(role)
	}
	for _, comp := range h.Components {
		sys.Append(comp.Step())
	}
	return sys
}

// RoleDef is a role declared in an inventory file: a named, ordered list of
// components.
type RoleDef struct {
	Name       string         `toml:"name" yaml:"name" json:"name"`
	Components []ComponentRef `toml:"components" yaml:"components" json:"components"`
}

// role converts the entry into a blueprint role.
func (r RoleDef) role() blueprint.Role {
	steps := make([]model.Step, 0, len(r.Components))
	for _, comp := range r.Components {
		steps = append(steps, comp.Step())
	}
	return blueprint.NewRole(r.Name, steps...)
}

// Project accumulates the systems declared by one or more inventory files.
type Project struct {
	systems []*model.System
	byName  map[string]*model.System
	roles   []blueprint.Role
}

// NewProject creates an empty project.
func NewProject() *Project {
	return &Project{byName: make(map[string]*model.System)}
}

// AddRole declares a role. Roles declared here are added to every build's
// blueprint next to the roles registered in Go.
func (p *Project) AddRole(r RoleDef) error {
	if r.Name == "" {
		return fmt.Errorf("%w: role name is required", ErrInvalidRole)
	}
	if len(r.Components) == 0 {
		return fmt.Errorf("%w: role %q has no components", ErrInvalidRole, r.Name)
	}
	for _, existing := range p.roles {
		if existing.Name() == r.Name {
			return fmt.Errorf("%w: %q", ErrDuplicateRole, r.Name)
		}
	}
	p.roles = append(p.roles, r.role())
	return nil
}

// Roles returns the declared roles in declaration order.
func (p *Project) Roles() []blueprint.Role {
	return slices.Clone(p.roles)
}

// AddHost declares a host.
func (p *Project) AddHost(h Host) error {
	if h.Name == "" {
		return fmt.Errorf("%w: host name is required", ErrInvalidHost)
	}
	if h.Port < 0 || h.Port > 65535 {
		return fmt.Errorf("%w: host %q: port %d out of range", ErrInvalidHost, h.Name, h.Port)
	}
	if _, exists := p.byName[h.Name]; exists {
		return fmt.Errorf("%w: %q", ErrDuplicateHost, h.Name)
	}
	sys := h.system()
	p.systems = append(p.systems, sys)
	p.byName[h.Name] = sys
	return nil
}

// Systems returns every declared system in declaration order.
func (p *Project) Systems() []*model.System {
	return slices.Clone(p.systems)
}

// System returns the named system.
func (p *Project) System(name string) (*model.System, bool) {
	sys, ok := p.byName[name]
	return sys, ok
}

// Names returns the declared host names, sorted.
func (p *Project) Names() []string {
	return slices.Sorted(maps.Keys(p.byName))
}

// Select returns the named systems in declaration order. With no names it
// returns every system.
func (p *Project) Select(names ...string) ([]*model.System, error) {
	if len(names) == 0 {
		return p.Systems(), nil
	}
	want := make(map[string]bool, len(names))
	for _, name := range names {
		if _, ok := p.byName[name]; !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownHost, name)
		}
		want[name] = true
	}
	var out []*model.System
	for _, sys := range p.systems {
		if want[sys.Name] {
			out = append(out, sys)
		}
	}
	return out, nil
}
