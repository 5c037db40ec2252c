// Package print provides the diagnostic "print" component and procedure.
//
// The component turns its descriptor and options into one "print" resource;
// with a "template" option the message is rendered from a blueprint template.
// The procedure writes the resource attributes, one per line, sorted by key.
package print

import (
	"context"
	"fmt"
	"io"
	"maps"
	"os"
	"slices"

	"github.com/specialistvlad/baton/internal/blueprint"
	"github.com/specialistvlad/baton/internal/ctxlog"
	"github.com/specialistvlad/baton/internal/model"
	"github.com/specialistvlad/baton/internal/registry"
)

// Type is the resource type and component name registered by this module.
const Type = "print"

// Module implements the registry.Module interface for this package.
type Module struct {
	// Out receives printed attributes. Nil means os.Stdout.
	Out io.Writer
}

// Register registers the component and procedure with the registry.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterComponent(Type, blueprint.ComponentFunc(Build))
	r.RegisterProcedure(Type, func(attrs map[string]any) (model.Procedure, error) {
		return &Procedure{Attributes: attrs, out: m.Out}, nil
	})
}

// Build is the "print" component. "print/hello" yields a resource with
// message "hello"; options are copied into the attributes.
func Build(ctx context.Context, descriptor string, options map[string]any, sys *model.System, bp *blueprint.Blueprint) ([]model.ResourceDeclaration, error) {
	attrs := model.CloneAttributes(options)
	if attrs == nil {
		attrs = make(map[string]any)
	}
	if descriptor != "" {
		attrs["message"] = descriptor
	}

	if name, ok := attrs["template"].(string); ok {
		tmpl, err := bp.Template(name)
		if err != nil {
			return nil, err
		}
		msg, err := tmpl.RenderString(map[string]any{
			"system":     sys.Name,
			"attributes": sys.Attributes,
			"options":    options,
			"descriptor": descriptor,
		})
		if err != nil {
			return nil, err
		}
		delete(attrs, "template")
		attrs["message"] = msg
	}

	ctxlog.FromContext(ctx).Debug("Print component built.", "keys", len(attrs))
	return []model.ResourceDeclaration{{Type: Type, Attributes: attrs}}, nil
}

// Procedure writes its attributes.
type Procedure struct {
	Attributes map[string]any
	out        io.Writer
}

// Execute prints the attributes of the resource for the system.
func (p *Procedure) Execute(ctx context.Context, sys *model.System, _ model.Connection) error {
	logger := ctxlog.FromContext(ctx)
	logger.Info("Printing input", "system", sys.Name)

	out := p.out
	if out == nil {
		out = os.Stdout
	}

	if len(p.Attributes) == 0 {
		_, err := fmt.Fprintf(out, "[%s]      (null)\n", sys.Name)
		return err
	}

	for _, k := range slices.Sorted(maps.Keys(p.Attributes)) {
		if _, err := fmt.Fprintf(out, "[%s]      %s = %q\n", sys.Name, k, fmt.Sprint(p.Attributes[k])); err != nil {
			return err
		}
	}
	return nil
}
