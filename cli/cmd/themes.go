package cmd

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/ardnew/ecstasy/log"
	"github.com/ardnew/ecstasy/markup"
	"github.com/ardnew/ecstasy/theme"
)

// sampleMarkup previews a theme's first positional styles.
const sampleMarkup = "<one> <two> <three>"

// Themes lists the available themes or prints one of them.
type Themes struct {
	Name   string `arg:"" help:"Print the theme document with this name or path." optional:""`
	Format string `default:"table" enum:"table,json,yaml" help:"Listing format (${enum})." short:"o"`
}

// Run executes the themes command.
func (t *Themes) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	env := envFrom(ctx)

	if t.Name != "" {
		th, err := theme.Find(t.Name, env.ThemeDirs...)
		if err != nil {
			return err
		}

		return th.Encode(env.Out)
	}

	list := theme.List(env.ThemeDirs...)

	log.DebugContext(ctx, "themes found",
		slog.Int("count", len(list)),
		slog.Any("dirs", env.ThemeDirs),
	)

	if t.Format != "table" {
		data, err := encode(t.Format, 2, list)
		if err != nil {
			return err
		}

		_, err = fmt.Fprintln(env.Out, string(data))

		return err
	}

	_, err = fmt.Fprintln(env.Out, themeTable(ctx, list, env.Color))

	return err
}

// themeTable renders list as a bordered table. With color enabled, each row
// carries a sample rendered with its theme.
func themeTable(ctx context.Context, list []theme.Info, color bool) string {
	headers := []string{"NAME", "SOURCE"}
	if color {
		headers = append(headers, "SAMPLE")
	}

	rows := make([][]string, 0, len(list))

	for _, info := range list {
		row := []string{info.Name, info.Source}

		if color {
			row = append(row, sample(ctx, info))
		}

		rows = append(rows, row)
	}

	header := lipgloss.NewStyle().Bold(color).Padding(0, 1)
	cell := lipgloss.NewStyle().Padding(0, 1)

	return table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return header
			}

			return cell
		}).
		String()
}

func sample(ctx context.Context, info theme.Info) string {
	var (
		th  *theme.Theme
		err error
	)

	if name, ok := theme.BuiltinName(info.Source); ok {
		th, err = theme.Builtin(name)
	} else {
		th, err = theme.Load(info.Source)
	}

	if err != nil {
		return "(invalid)"
	}

	cat, err := th.Catalog()
	if err != nil {
		return "(invalid)"
	}

	res, err := markup.Beautify(ctx, sampleMarkup, cat)
	if err != nil {
		return "(" + err.Error() + ")"
	}

	return res.Text
}
