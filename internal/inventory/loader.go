package inventory

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/specialistvlad/baton/internal/ctxlog"
	"github.com/specialistvlad/baton/internal/fsutil"
)

// ErrUnsupportedFormat is returned for a file whose extension has no format.
var ErrUnsupportedFormat = errors.New("unsupported inventory format")

// FormatFunc parses the contents of one file into p. filename is used for
// diagnostics only.
type FormatFunc func(data []byte, filename string, p *Project) error

// Loader reads inventory files, choosing the format by extension.
type Loader struct {
	formats map[string]FormatFunc
}

// NewLoader creates a loader with the HCL, TOML, YAML and JSON formats.
func NewLoader() *Loader {
	return (&Loader{formats: make(map[string]FormatFunc)}).
		Use("hcl", HCL).
		Use("toml", TOML).
		Use("yaml", YAML).
		Use("yml", YAML).
		Use("json", JSON)
}

// Use registers format for ext, replacing any previous one. The leading dot
// is optional.
func (l *Loader) Use(ext string, format FormatFunc) *Loader {
	if l.formats == nil {
		l.formats = make(map[string]FormatFunc)
	}
	l.formats[normalizeExt(ext)] = format
	return l
}

// Extensions returns the registered extensions, sorted.
func (l *Loader) Extensions() []string {
	return slices.Sorted(maps.Keys(l.formats))
}

// Load reads path and adds its hosts to p.
func (l *Loader) Load(ctx context.Context, path string, p *Project) error {
	ext := normalizeExt(filepath.Ext(path))
	format, ok := l.formats[ext]
	if !ok {
		return fmt.Errorf("%w: %q (%s)", ErrUnsupportedFormat, ext, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("load inventory: %w", err)
	}
	before := len(p.systems)
	if err := format(data, path, p); err != nil {
		return fmt.Errorf("load inventory %s: %w", path, err)
	}
	ctxlog.FromContext(ctx).Debug("Loaded inventory file.", "path", path, "hosts", len(p.systems)-before)
	return nil
}

// LoadPath loads a single file, or every supported file under a directory.
func (l *Loader) LoadPath(ctx context.Context, path string, p *Project) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("load inventory: %w", err)
	}
	if info.IsDir() {
		return l.LoadDir(ctx, path, p)
	}
	return l.Load(ctx, path, p)
}

// LoadDir loads every file under dir with a registered extension, in lexical
// path order.
func (l *Loader) LoadDir(ctx context.Context, dir string, p *Project) error {
	logger := ctxlog.FromContext(ctx)

	exts := l.Extensions()
	if len(exts) == 0 {
		return fmt.Errorf("%w: no formats registered", ErrUnsupportedFormat)
	}
	files, err := fsutil.FindFilesByExtension(dir, exts...)
	if err != nil {
		return fmt.Errorf("load inventory: %w", err)
	}
	if len(files) == 0 {
		logger.Warn("No inventory files found in path.", "path", dir)
		return nil
	}
	for _, file := range files {
		if err := l.Load(ctx, file, p); err != nil {
			return err
		}
	}
	return nil
}

func normalizeExt(ext string) string {
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}
