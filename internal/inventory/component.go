package inventory

import (
	"encoding/json"
	"fmt"

	"github.com/specialistvlad/baton/internal/model"
	"gopkg.in/yaml.v3"
)

// ComponentRef is one "components" entry. In a file it is either a bare
// component name or a table with "name" and "options":
//
//	components = ["pkg/htop", { name = "command/uptime", options = { args = ["-p"] } }]
type ComponentRef struct {
	Name    string
	Options map[string]any
}

// Step returns the component step for the entry.
func (c ComponentRef) Step() model.Step {
	return model.Component(c.Name, model.CloneAttributes(c.Options))
}

// UnmarshalJSON accepts a string or an object.
func (c *ComponentRef) UnmarshalJSON(data []byte) error {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	return c.set(v)
}

// UnmarshalYAML accepts a scalar or a mapping.
func (c *ComponentRef) UnmarshalYAML(node *yaml.Node) error {
	var v any
	if err := node.Decode(&v); err != nil {
		return err
	}
	return c.set(v)
}

// UnmarshalTOML accepts a string or an inline table.
func (c *ComponentRef) UnmarshalTOML(v any) error {
	return c.set(v)
}

func (c *ComponentRef) set(v any) error {
	ref, err := componentRef(v)
	if err != nil {
		return err
	}
	*c = ref
	return nil
}

// componentRef converts a decoded entry into a ComponentRef.
func componentRef(v any) (ComponentRef, error) {
	switch v := v.(type) {
	case string:
		if v == "" {
			return ComponentRef{}, fmt.Errorf("%w: empty component name", ErrInvalidHost)
		}
		return ComponentRef{Name: v}, nil
	case map[string]any:
		var ref ComponentRef
		for key, val := range v {
			switch key {
			case "name":
				ref.Name, _ = val.(string)
			case "options":
				if val == nil {
					continue
				}
				opts, ok := val.(map[string]any)
				if !ok {
					return ComponentRef{}, fmt.Errorf("%w: component options must be a table, got %T", ErrInvalidHost, val)
				}
				ref.Options = opts
			default:
				return ComponentRef{}, fmt.Errorf("%w: unknown component key %q", ErrInvalidHost, key)
			}
		}
		if ref.Name == "" {
			return ComponentRef{}, fmt.Errorf("%w: component entry needs a name", ErrInvalidHost)
		}
		return ref, nil
	default:
		return ComponentRef{}, fmt.Errorf("%w: component entry must be a name or a table, got %T", ErrInvalidHost, v)
	}
}

// componentRefs converts a decoded list of entries.
func componentRefs(v any) ([]ComponentRef, error) {
	if v == nil {
		return nil, nil
	}
	list, ok := v.([]any)
	if !ok {
		return nil, fmt.Errorf("%w: components must be a list, got %T", ErrInvalidHost, v)
	}
	refs := make([]ComponentRef, 0, len(list))
	for _, item := range list {
		ref, err := componentRef(item)
		if err != nil {
			return nil, err
		}
		refs = append(refs, ref)
	}
	return refs, nil
}
