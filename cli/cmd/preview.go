package cmd

import (
	"context"
	"log/slog"

	"github.com/ardnew/ecstasy/cli/cmd/preview"
	"github.com/ardnew/ecstasy/log"
)

// Preview starts an interactive live preview of typed markup.
type Preview struct {
	Meta `embed:"" group:"markup"`
}

// Run executes the preview command.
func (p *Preview) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	env := envFrom(ctx)

	opts, err := p.options()
	if err != nil {
		return err
	}

	cat, err := env.Catalog()
	if err != nil {
		return err
	}

	opening, closing := p.delimiters()

	logger := log.With(slog.String("command", "preview"))

	return preview.Run(ctx, preview.Config{
		Catalog:   cat,
		Theme:     env.ThemeName,
		ThemeDirs: env.ThemeDirs,
		Open:      opening,
		Close:     closing,
		Options:   opts,
		CacheDir:  env.CacheDir,
		Logger:    logger,
	})
}
