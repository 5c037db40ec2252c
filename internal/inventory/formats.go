package inventory

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

type tomlFile struct {
	Role []RoleDef `toml:"role"`
	Host []Host    `toml:"host"`
}

// TOML reads [[role]] and [[host]] tables.
func TOML(data []byte, _ string, p *Project) error {
	var f tomlFile
	if _, err := toml.Decode(string(data), &f); err != nil {
		return fmt.Errorf("parse toml: %w", err)
	}
	return add(p, f.Role, f.Host)
}

type listFile struct {
	Roles []RoleDef `yaml:"roles" json:"roles"`
	Hosts []Host    `yaml:"hosts" json:"hosts"`
}

// YAML reads top-level "roles" and "hosts" lists. An empty file declares
// nothing.
func YAML(data []byte, _ string, p *Project) error {
	var f listFile
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("parse yaml: %w", err)
	}
	return add(p, f.Roles, f.Hosts)
}

// JSON reads top-level "roles" and "hosts" arrays. An empty file declares
// nothing, as with YAML.
func JSON(data []byte, _ string, p *Project) error {
	var f listFile
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("parse json: %w", err)
	}
	return add(p, f.Roles, f.Hosts)
}

func add(p *Project, roles []RoleDef, hosts []Host) error {
	for _, r := range roles {
		if err := p.AddRole(r); err != nil {
			return err
		}
	}
	for _, h := range hosts {
		if err := p.AddHost(h); err != nil {
			return err
		}
	}
	return nil
}
