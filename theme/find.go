package theme

import (
	"bytes"
	"embed"
	"errors"
	"io/fs"
	"log/slog"
	"maps"
	"os"
	"path"
	"path/filepath"
	"slices"
	"strings"

	"github.com/ardnew/ecstasy/log"
)

// DefaultName names the theme used when none is selected.
const DefaultName = "default"

// Extensions recognized for theme files, in search order.
var Extensions = []string{".yaml", ".yml"}

//go:embed builtin/*.yaml
var builtinFS embed.FS

const builtinPrefix = "builtin:"

// Builtin returns the embedded theme with the given name.
func Builtin(name string) (*Theme, error) {
	data, err := builtinFS.ReadFile(path.Join("builtin", name+".yaml"))
	if err != nil {
		return nil, ErrNotFound.With(slog.String("name", name)).Wrap(err)
	}

	t, err := Decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}

	t.Source = builtinPrefix + name

	return t, nil
}

// Builtins returns the names of all embedded themes, sorted.
func Builtins() []string {
	entries, _ := fs.ReadDir(builtinFS, "builtin")

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, strings.TrimSuffix(e.Name(), path.Ext(e.Name())))
	}

	slices.Sort(names)

	return names
}

// Find resolves a theme by name. A name that refers to an existing file is
// loaded directly. Otherwise each directory in dirs is searched in order for
// a file named after the theme, and the embedded themes are tried last.
func Find(name string, dirs ...string) (*Theme, error) {
	if name == "" {
		name = DefaultName
	}

	if fi, err := os.Stat(name); err == nil && !fi.IsDir() {
		return Load(name)
	}

	for _, dir := range dirs {
		for _, ext := range Extensions {
			file := filepath.Join(dir, name+ext)

			if _, err := os.Stat(file); err != nil {
				continue
			}

			log.Debug("theme found", slog.String("name", name), slog.String("path", file))

			return Load(file)
		}
	}

	t, err := Builtin(name)
	if errors.Is(err, ErrNotFound) {
		return nil, ErrNotFound.With(
			slog.String("name", name),
			slog.Any("dirs", dirs),
		)
	}

	return t, err
}

// Info describes an available theme.
type Info struct {
	Name   string `json:"name"   yaml:"name"`
	Source string `json:"source" yaml:"source"`
}

// List returns every theme reachable by [Find], sorted by name. A theme in
// dirs hides an embedded theme of the same name, and an earlier directory
// hides a later one.
func List(dirs ...string) []Info {
	found := make(map[string]string)

	for _, name := range Builtins() {
		found[name] = builtinPrefix + name
	}

	for _, dir := range slices.Backward(dirs) {
		for _, ext := range slices.Backward(Extensions) {
			matches, err := filepath.Glob(filepath.Join(dir, "*"+ext))
			if err != nil {
				continue
			}

			for _, m := range matches {
				found[strings.TrimSuffix(filepath.Base(m), ext)] = m
			}
		}
	}

	info := make([]Info, 0, len(found))
	for _, name := range slices.Sorted(maps.Keys(found)) {
		info = append(info, Info{Name: name, Source: found[name]})
	}

	return info
}

// BuiltinName reports the embedded theme name of a source reported by
// [List] or stored in [Theme.Source].
func BuiltinName(source string) (string, bool) {
	return strings.CutPrefix(source, builtinPrefix)
}
