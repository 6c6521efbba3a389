package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/goccy/go-yaml"

	"github.com/ardnew/ecstasy/markup"
)

// Tree prints the phrase tree of marked-up text.
type Tree struct {
	Format string `default:"json" enum:"json,yaml" help:"Output format (${enum})." short:"o"`
	Indent int    `default:"2"                      help:"Indent width."          short:"i"`

	Input `embed:""`
	Meta  `embed:"" group:"markup"`
}

// Run executes the tree command.
func (t *Tree) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	env := envFrom(ctx)

	text, _, err := t.read(ctx)
	if err != nil {
		return err
	}

	opts, err := t.options()
	if err != nil {
		return err
	}

	tree, err := markup.Parse(ctx, text, opts...)
	if err != nil {
		return err
	}

	warn(ctx, tree.Diagnostics())

	data, err := encode(t.Format, t.Indent, tree.ToMap())
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(env.Out, string(data))

	return err
}

// encode marshals v as JSON or YAML without a trailing newline.
func encode(format string, indent int, v any) ([]byte, error) {
	if indent < 0 {
		indent = 0
	}

	switch format {
	case "yaml":
		data, err := yaml.MarshalWithOptions(v,
			yaml.Indent(max(indent, 1)),
			yaml.IndentSequence(true),
		)
		if err != nil {
			return nil, ErrYAMLMarshal.Wrap(err)
		}

		return trimNewline(data), nil

	default:
		data, err := json.MarshalIndent(v, "", fmt.Sprintf("%*s", indent, ""))
		if err != nil {
			return nil, ErrJSONMarshal.With(slog.String("format", format)).Wrap(err)
		}

		return data, nil
	}
}

func trimNewline(b []byte) []byte {
	for len(b) > 0 && b[len(b)-1] == '\n' {
		b = b[:len(b)-1]
	}

	return b
}
