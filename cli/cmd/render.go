package cmd

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ardnew/ecstasy/log"
	"github.com/ardnew/ecstasy/markup"
)

// Render beautifies marked-up text.
type Render struct {
	Input `embed:""`
	Meta  `embed:"" group:"markup"`
}

// Run executes the render command.
func (r *Render) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	env := envFrom(ctx)

	text, fromArgs, err := r.read(ctx)
	if err != nil {
		return err
	}

	out, err := r.render(ctx, env, text)
	if err != nil {
		return err
	}

	if fromArgs {
		out += "\n"
	}

	_, err = fmt.Fprint(env.Out, out)

	return err
}

// render styles text, or strips its markup when color is disabled.
func (r *Render) render(ctx context.Context, env *Env, text string) (string, error) {
	opts, err := r.options()
	if err != nil {
		return "", err
	}

	if !env.Color {
		tree, err := markup.Parse(ctx, text, opts...)
		if err != nil {
			return "", err
		}

		warn(ctx, tree.Diagnostics())

		return tree.Plain(), nil
	}

	cat, err := env.Catalog()
	if err != nil {
		return "", err
	}

	res, err := markup.Beautify(ctx, text, cat, opts...)
	if err != nil {
		return "", err
	}

	warn(ctx, res.Diagnostics)

	log.DebugContext(ctx, "rendered",
		slog.Int("phrases", res.Tree.Len()),
		slog.Int("diagnostics", len(res.Diagnostics)),
	)

	return res.Text, nil
}
