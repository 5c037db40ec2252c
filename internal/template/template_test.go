package template

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestNewAppendsDefaultEngineExtension(t *testing.T) {
	root := t.TempDir()
	path := writeFile(t, root, "nginx/site.tmpl", "server_name {{ .host }};")

	tmpl, err := New("nginx/site", Options{Root: root})
	require.NoError(t, err)
	assert.Equal(t, ".tmpl", tmpl.Ext)
	assert.Equal(t, path, tmpl.Path)

	out, err := tmpl.RenderString(map[string]any{"host": "example.org"})
	require.NoError(t, err)
	assert.Equal(t, "server_name example.org;", out)
}

func TestNewAbsolutePathIgnoresRoot(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "motd.tmpl", "hi")

	tmpl, err := New(path, Options{Root: "/does/not/matter"})
	require.NoError(t, err)
	assert.Equal(t, path, tmpl.Path)
}

func TestNewUnknownEngine(t *testing.T) {
	_, err := New("site.mustache", Options{Root: t.TempDir()})
	require.ErrorIs(t, err, ErrNoEngine)
}

func TestNewMissingFile(t *testing.T) {
	_, err := New("absent", Options{Root: t.TempDir()})
	require.ErrorIs(t, err, ErrNotFound)
}

func TestCustomEngineAndDefault(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "banner.up", "hello")

	upper := EngineFunc(func(path string, _ any, w io.Writer) error {
		b, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		_, err = io.WriteString(w, strings.ToUpper(string(b)))
		return err
	})

	tmpl, err := New("banner", Options{
		Root:          root,
		DefaultEngine: ".up",
		Engines:       map[string]Engine{".up": upper},
	})
	require.NoError(t, err)

	out, err := tmpl.RenderString(nil)
	require.NoError(t, err)
	assert.Equal(t, "HELLO", out)
}

func TestTextEngineMissingKeyFails(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "conf.tmpl", "{{ .missing }}")

	tmpl, err := New("conf", Options{Root: root})
	require.NoError(t, err)

	_, err = tmpl.RenderString(map[string]any{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "render conf")
}

func TestTextEngineHelpers(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "h.tmpl", `{{ json .list }} {{ default "x" .empty }}`)

	tmpl, err := New("h", Options{Root: root})
	require.NoError(t, err)

	out, err := tmpl.RenderString(map[string]any{"list": []int{1, 2}, "empty": ""})
	require.NoError(t, err)
	assert.Equal(t, "[1,2] x", out)
}
