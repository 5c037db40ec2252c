package template

import (
	"encoding/json"
	"io"
	"path/filepath"
	"text/template"
)

// Text renders files with text/template. Missing map keys are errors so a
// typo in a template does not silently produce an empty value.
type Text struct {
	Funcs template.FuncMap
}

var textFuncs = template.FuncMap{
	"json": func(v any) (string, error) {
		b, err := json.Marshal(v)
		return string(b), err
	},
	"default": func(def, val any) any {
		if val == nil || val == "" {
			return def
		}
		return val
	},
}

// RenderFile implements Engine.
func (e Text) RenderFile(path string, data any, w io.Writer) error {
	tmpl := template.New(filepath.Base(path)).Option("missingkey=error").Funcs(textFuncs)
	if e.Funcs != nil {
		tmpl = tmpl.Funcs(e.Funcs)
	}
	tmpl, err := tmpl.ParseFiles(path)
	if err != nil {
		return err
	}
	return tmpl.Execute(w, data)
}
