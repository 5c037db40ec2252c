// Package command provides the "command" component and procedure, which run
// one command on the managed system through its connection.
package command

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/specialistvlad/baton/internal/blueprint"
	"github.com/specialistvlad/baton/internal/ctxlog"
	"github.com/specialistvlad/baton/internal/model"
	"github.com/specialistvlad/baton/internal/registry"
)

// Type is the resource type and component name registered by this module.
const Type = "command"

// ErrInvalidAttributes is returned for a command resource that cannot run.
var ErrInvalidAttributes = errors.New("invalid command attributes")

// Module implements the registry.Module interface for this package.
type Module struct{}

// Register registers the component and procedure with the registry.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterComponent(Type, blueprint.ComponentFunc(Build))
	r.RegisterProcedure(Type, New)
}

// Build is the "command" component: "command/uptime" with options
// {args: [...]} declares one command resource.
func Build(_ context.Context, descriptor string, options map[string]any, _ *model.System, _ *blueprint.Blueprint) ([]model.ResourceDeclaration, error) {
	attrs := model.CloneAttributes(options)
	if attrs == nil {
		attrs = make(map[string]any)
	}
	if descriptor != "" {
		attrs["command"] = descriptor
	}
	return []model.ResourceDeclaration{{Type: Type, Attributes: attrs}}, nil
}

// Procedure runs Name with Args.
type Procedure struct {
	Name string
	Args []string
}

// New builds a Procedure from resource attributes: "command" (string) and an
// optional "args" list of strings.
func New(attrs map[string]any) (model.Procedure, error) {
	name, _ := attrs["command"].(string)
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("%w: command is required", ErrInvalidAttributes)
	}

	var args []string
	switch v := attrs["args"].(type) {
	case nil:
	case []string:
		args = v
	case []any:
		for i, a := range v {
			s, ok := a.(string)
			if !ok {
				return nil, fmt.Errorf("%w: args[%d] is %T, want string", ErrInvalidAttributes, i, a)
			}
			args = append(args, s)
		}
	default:
		return nil, fmt.Errorf("%w: args is %T, want a list", ErrInvalidAttributes, v)
	}
	return &Procedure{Name: name, Args: args}, nil
}

// Execute runs the command. A failing command's output is part of the error.
func (p *Procedure) Execute(ctx context.Context, sys *model.System, conn model.Connection) error {
	logger := ctxlog.FromContext(ctx).With("command", p.Name)
	logger.Debug("Running command.", "args", p.Args)

	out, err := conn.Run(ctx, p.Name, p.Args...)
	if err != nil {
		return fmt.Errorf("command %q on %s: %w: %s", p.Name, sys.Name, err, strings.TrimSpace(string(out)))
	}
	logger.Debug("Command finished.", "output", strings.TrimSpace(string(out)))
	return nil
}
