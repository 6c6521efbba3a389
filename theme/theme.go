// Package theme builds style catalogs from YAML documents.
//
// A theme lists positional styles, name-keyed styles, and groups of names
// sharing one style:
//
//	name: default
//	positional:
//	  - bold + fg.red
//	  - [underline, fg.blue]   # nested lists are flattened
//	  - 2                      # raw combination
//	always:
//	  error: bold + fg.red
//	groups:
//	  - names: [warn, caution]
//	    style: fg.yellow
//
// Strings are style expressions (see [style.Parse]); integers are raw flag
// combinations.
package theme

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"maps"
	"os"
	"slices"

	"github.com/goccy/go-yaml"
	"go.uber.org/multierr"

	"github.com/ardnew/ecstasy/markup"
	"github.com/ardnew/ecstasy/style"
)

// Theme is a decoded theme document.
type Theme struct {
	Name        string         `yaml:"name"`
	Description string         `yaml:"description,omitempty"`
	Positional  []any          `yaml:"positional,omitempty"`
	Always      map[string]any `yaml:"always,omitempty"`
	Groups      []Group        `yaml:"groups,omitempty"`

	// Source names where the theme was loaded from.
	Source string `yaml:"-"`
}

// Group binds several names to one style.
type Group struct {
	Names []string `yaml:"names"`
	Style any      `yaml:"style"`
}

// Decode reads one theme document from r.
func Decode(r io.Reader) (*Theme, error) {
	var t Theme

	if err := yaml.NewDecoder(r, yaml.DisallowUnknownField()).Decode(&t); err != nil {
		return nil, ErrDecode.Wrap(err)
	}

	return &t, nil
}

// Load reads the theme document at path.
func Load(path string) (*Theme, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, ErrNotFound.With(slog.String("path", path)).Wrap(err)
	}

	t, err := Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	t.Source = path

	return t, nil
}

// Encode writes t as YAML.
func (t *Theme) Encode(w io.Writer) error {
	return yaml.NewEncoder(w, yaml.IndentSequence(true)).Encode(t)
}

// Extend returns a copy of t with extra positional styles appended and
// extra names bound. Extra bindings replace the theme's own.
func (t *Theme) Extend(positional []string, always map[string]string) *Theme {
	c := *t
	c.Positional = slices.Clone(t.Positional)
	c.Always = maps.Clone(t.Always)

	for _, s := range positional {
		c.Positional = append(c.Positional, s)
	}

	if len(always) > 0 && c.Always == nil {
		c.Always = make(map[string]any, len(always))
	}

	for k, v := range always {
		c.Always[k] = v
	}

	return &c
}

// Catalog compiles the theme into a catalog. Every invalid element is
// reported, not only the first.
func (t *Theme) Catalog() (*markup.Catalog, error) {
	var (
		errs       error
		positional []style.Combination
	)

	var flatten func(path string, v any)

	flatten = func(path string, v any) {
		if list, ok := v.([]any); ok {
			for i, e := range list {
				flatten(fmt.Sprintf("%s[%d]", path, i), e)
			}

			return
		}

		c, err := combination(path, v)
		errs = multierr.Append(errs, err)
		positional = append(positional, c)
	}

	for i, v := range t.Positional {
		flatten(fmt.Sprintf("positional[%d]", i), v)
	}

	always := make(map[string]style.Combination, len(t.Always))

	// Groups first, so that always entries take precedence.
	for i, g := range t.Groups {
		c, err := combination(fmt.Sprintf("groups[%d].style", i), g.Style)
		errs = multierr.Append(errs, err)

		for _, name := range g.Names {
			always[name] = c
		}
	}

	for _, k := range slices.Sorted(maps.Keys(t.Always)) {
		c, err := combination("always."+k, t.Always[k])
		errs = multierr.Append(errs, err)
		always[k] = c
	}

	if errs != nil {
		return nil, errs
	}

	return markup.NewCatalog(markup.Styles(positional...), markup.Named(always))
}

// combination converts one scalar element.
func combination(path string, v any) (style.Combination, error) {
	switch n := v.(type) {
	case string:
		c, err := style.Parse(n)
		if err != nil {
			return 0, ErrEntry.With(slog.String("path", path)).
				Wrap(fmt.Errorf("%s: %w", path, err))
		}

		return c, nil

	case int:
		return integer(path, int64(n))

	case int64:
		return integer(path, n)

	case uint64:
		if !style.Valid(style.Combination(n)) {
			return 0, outOfRange(path, n)
		}

		return style.Combination(n), nil
	}

	return 0, ErrEntry.With(
		slog.String("path", path),
		slog.String("type", fmt.Sprintf("%T", v)),
	).Wrap(fmt.Errorf("%s: %v", path, v))
}

func integer(path string, n int64) (style.Combination, error) {
	if n < 0 || !style.Valid(style.Combination(n)) {
		return 0, outOfRange(path, n)
	}

	return style.Combination(n), nil
}

func outOfRange[T int64 | uint64](path string, n T) error {
	return markup.ErrFlag.With(slog.String("path", path)).
		Wrap(fmt.Errorf("%s: flag value %d is out of range", path, n))
}
