package cmd

import (
	"context"
	"io"
	"os"
	"sync"

	"github.com/alecthomas/kong"

	"github.com/ardnew/ecstasy/markup"
	"github.com/ardnew/ecstasy/theme"
)

// contextKey is used to store a [kong.Context] value in [context.Context].
type contextKey struct{}

// WithContext returns a new context.Context containing the given kong.Context.
func WithContext(ctx context.Context, ktx *kong.Context) context.Context {
	return context.WithValue(ctx, contextKey{}, ktx)
}

func kongContextFrom(ctx context.Context) *kong.Context {
	ktx, ok := ctx.Value(contextKey{}).(*kong.Context)
	if !ok || ktx == nil {
		return nil
	}

	return ktx
}

type envKey struct{}

// Env is the state shared by all commands, assembled from the global flags.
type Env struct {
	// Out receives command output.
	Out io.Writer
	// Color enables escape sequences in command output.
	Color bool
	// CacheDir holds transient files such as the preview history.
	CacheDir string

	// ThemeName selects the theme, resolved with [theme.Find].
	ThemeName string
	// ThemeDirs are searched for theme files.
	ThemeDirs []string
	// Styles are appended to the theme's positional styles.
	Styles []string
	// Always are bound by name in addition to the theme's own names.
	Always map[string]string

	once  sync.Once
	theme *theme.Theme
	err   error
}

// WithEnv returns a new context.Context containing env.
func WithEnv(ctx context.Context, env *Env) context.Context {
	return context.WithValue(ctx, envKey{}, env)
}

// envFrom returns the Env stored in ctx, or an Env writing plain text to
// stdout with the default theme.
func envFrom(ctx context.Context) *Env {
	if env, ok := ctx.Value(envKey{}).(*Env); ok && env != nil {
		return env
	}

	return &Env{Out: os.Stdout}
}

// Theme resolves the selected theme and applies the extra styles. The
// result is computed once.
func (e *Env) Theme() (*theme.Theme, error) {
	e.once.Do(func() {
		t, err := theme.Find(e.ThemeName, e.ThemeDirs...)
		if err != nil {
			e.err = err

			return
		}

		e.theme = t.Extend(e.Styles, e.Always)
	})

	return e.theme, e.err
}

// Catalog compiles the selected theme.
func (e *Env) Catalog() (*markup.Catalog, error) {
	t, err := e.Theme()
	if err != nil {
		return nil, err
	}

	return t.Catalog()
}
