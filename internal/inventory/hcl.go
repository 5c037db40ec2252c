package inventory

import (
	"fmt"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"
)

// hclFile represents the top-level structure of an inventory file for decoding.
type hclFile struct {
	Roles []*hclRole `hcl:"role,block"`
	Hosts []*hclHost `hcl:"host,block"`
}

type hclRole struct {
	Name       string    `hcl:"name,label"`
	Components cty.Value `hcl:"components"`
}

type hclHost struct {
	Name       string    `hcl:"name,label"`
	Address    string    `hcl:"address,optional"`
	User       string    `hcl:"user,optional"`
	Port       int       `hcl:"port,optional"`
	Transport  string    `hcl:"transport,optional"`
	Roles      []string  `hcl:"roles,optional"`
	Components cty.Value `hcl:"components,optional"`
	Attributes cty.Value `hcl:"attributes,optional"`
}

// HCL reads role and host blocks:
//
//	role "web" {
//	  components = ["pkg/nginx", { name = "command/reload", options = { args = ["nginx"] } }]
//	}
//
//	host "web1" {
//	  address    = "10.0.0.5"
//	  roles      = ["web"]
//	  attributes = { env = "prod" }
//	}
func HCL(data []byte, filename string, p *Project) error {
	file, diags := hclparse.NewParser().ParseHCL(data, filename)
	if diags.HasErrors() {
		return fmt.Errorf("failed to parse HCL file %s: %w", filename, diags)
	}

	var parsed hclFile
	if diags := gohcl.DecodeBody(file.Body, nil, &parsed); diags.HasErrors() {
		return fmt.Errorf("failed to decode HCL file %s: %w", filename, diags)
	}

	for _, r := range parsed.Roles {
		comps, err := hclComponents(r.Components)
		if err != nil {
			return fmt.Errorf("role %q: %w", r.Name, err)
		}
		if err := p.AddRole(RoleDef{Name: r.Name, Components: comps}); err != nil {
			return err
		}
	}

	for _, h := range parsed.Hosts {
		attrs, err := hclAttributes(h.Attributes)
		if err != nil {
			return fmt.Errorf("host %q: %w", h.Name, err)
		}
		comps, err := hclComponents(h.Components)
		if err != nil {
			return fmt.Errorf("host %q: %w", h.Name, err)
		}
		host := Host{
			Name:       h.Name,
			Address:    h.Address,
			User:       h.User,
			Port:       h.Port,
			Transport:  h.Transport,
			Roles:      h.Roles,
			Components: comps,
			Attributes: attrs,
		}
		if err := p.AddHost(host); err != nil {
			return err
		}
	}
	return nil
}

func hclAttributes(v cty.Value) (map[string]any, error) {
	if v.IsNull() {
		return nil, nil
	}
	if !v.Type().IsObjectType() && !v.Type().IsMapType() {
		return nil, fmt.Errorf("attributes must be an object, got %s", v.Type().FriendlyName())
	}
	native, err := ctyToNative(v)
	if err != nil {
		return nil, err
	}
	attrs, _ := native.(map[string]any)
	return attrs, nil
}

func hclComponents(v cty.Value) ([]ComponentRef, error) {
	native, err := ctyToNative(v)
	if err != nil {
		return nil, err
	}
	return componentRefs(native)
}
