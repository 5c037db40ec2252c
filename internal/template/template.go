// Package template resolves template files by name and renders them with an
// engine chosen from the file extension.
//
// The package does not render anything itself. An Engine is registered per
// extension and receives the resolved file path; Text is the built-in engine
// for ".tmpl" files.
package template

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

var (
	// ErrNoEngine is returned when no engine is registered for a template's
	// extension.
	ErrNoEngine = errors.New("template: no engine registered for extension")
	// ErrNotFound is returned when the resolved template file does not exist
	// or is a directory.
	ErrNotFound = errors.New("template: file not found")
)

// DefaultEngine is the engine extension used when a name has none.
const DefaultEngine = "tmpl"

// Engine renders one template file.
type Engine interface {
	RenderFile(path string, data any, w io.Writer) error
}

// EngineFunc adapts a function to the Engine interface.
type EngineFunc func(path string, data any, w io.Writer) error

// RenderFile calls f(path, data, w).
func (f EngineFunc) RenderFile(path string, data any, w io.Writer) error {
	return f(path, data, w)
}

// Options controls name resolution.
type Options struct {
	// Root is joined to relative template names.
	Root string
	// DefaultEngine is appended as the extension when a name has none.
	// Defaults to DefaultEngine.
	DefaultEngine string
	// Engines maps extensions (".tmpl") to engines. Defaults to DefaultEngines().
	Engines map[string]Engine
}

// DefaultEngines returns the built-in engine set.
func DefaultEngines() map[string]Engine {
	return map[string]Engine{"." + DefaultEngine: Text{}}
}

// Template is a resolved template file bound to its engine.
type Template struct {
	Name   string
	Ext    string
	Path   string
	engine Engine
}

// New resolves name against opts. A name without extension gets the default
// engine's extension; relative names are looked up under opts.Root.
func New(name string, opts Options) (*Template, error) {
	defaultEngine := strings.TrimPrefix(opts.DefaultEngine, ".")
	if defaultEngine == "" {
		defaultEngine = DefaultEngine
	}
	engines := opts.Engines
	if engines == nil {
		engines = DefaultEngines()
	}

	file := name
	ext := filepath.Ext(file)
	if ext == "" {
		ext = "." + defaultEngine
		file += ext
	}

	engine, ok := engines[ext]
	if !ok {
		return nil, fmt.Errorf("%w: %q (template %q)", ErrNoEngine, ext, name)
	}

	path, err := lookup(file, opts.Root)
	if err != nil {
		return nil, err
	}

	return &Template{Name: name, Ext: ext, Path: path, engine: engine}, nil
}

func lookup(file, root string) (string, error) {
	path := file
	if !filepath.IsAbs(path) {
		path = filepath.Join(root, path)
	}
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return "", err
	}
	if info.IsDir() {
		return "", fmt.Errorf("%w: %s is a directory", ErrNotFound, path)
	}
	return path, nil
}

// Render writes the rendered template to w.
func (t *Template) Render(w io.Writer, data any) error {
	if err := t.engine.RenderFile(t.Path, data, w); err != nil {
		return fmt.Errorf("render %s: %w", t.Name, err)
	}
	return nil
}

// RenderString renders the template into a string.
func (t *Template) RenderString(data any) (string, error) {
	var buf bytes.Buffer
	if err := t.Render(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
