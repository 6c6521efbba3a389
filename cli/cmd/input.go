package cmd

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/ardnew/ecstasy/log"
	"github.com/ardnew/ecstasy/markup"
)

// Input selects where marked-up text is read from.
type Input struct {
	Text []string `arg:"" help:"Marked-up text, joined with spaces. Read from --file or stdin if omitted." optional:""`
	File []string `help:"Read marked-up text from file(s) or '-' for stdin." placeholder:"PATH" short:"f" type:"existingfile"`

	stdin io.Reader
}

// read returns the input text and whether it came from arguments.
func (in *Input) read(ctx context.Context) (string, bool, error) {
	if len(in.Text) > 0 {
		return strings.Join(in.Text, " "), true, nil
	}

	stdin := in.stdin
	if stdin == nil {
		stdin = os.Stdin
	}

	files := in.File
	if len(files) == 0 {
		files = []string{stdinSource}
	}

	src := OpenSources(stdin, files)
	if src == nil {
		return "", false, ErrReadInput.With(slog.Any("files", files))
	}
	defer src.Close()

	var buf bytes.Buffer
	if _, err := src.WriteTo(&buf); err != nil {
		return "", false, ErrReadInput.With(slog.Any("files", files)).Wrap(err)
	}

	log.TraceContext(ctx, "input read",
		slog.Any("files", files),
		slog.Int("bytes", buf.Len()),
	)

	return buf.String(), false, nil
}

// Meta overrides the markup meta-characters and scanning mode.
type Meta struct {
	Open     string `help:"Phrase opening delimiter (default '<')."       placeholder:"CHAR"`
	Close    string `help:"Phrase closing delimiter (default '>')."       placeholder:"CHAR"`
	ArgOpen  string `help:"Argument opening bracket (default '(')."       placeholder:"CHAR"`
	ArgClose string `help:"Argument closing bracket (default ')')."       placeholder:"CHAR"`
	Escape   string `help:"Escape character (default backslash)."       placeholder:"CHAR"`
	Strict   bool   `help:"Fail on unescaped meta-characters."            short:"S"`
}

// delimiters returns the phrase delimiters, ignoring invalid overrides.
func (m Meta) delimiters() (open, close rune) {
	runes, _ := m.runes()

	return runes[0], runes[1]
}

// options converts the overrides into scanner options.
func (m Meta) options() ([]markup.Option, error) {
	runes, err := m.runes()
	if err != nil {
		return nil, err
	}

	return []markup.Option{
		markup.WithDelimiters(runes[0], runes[1]),
		markup.WithArgumentBrackets(runes[2], runes[3]),
		markup.WithEscape(runes[4]),
		markup.WithStrict(m.Strict),
		markup.WithLogger(log.Default()),
	}, nil
}

// runes returns the meta-characters in option order with defaults applied.
func (m Meta) runes() ([5]rune, error) {
	runes := [5]rune{
		markup.DefaultOpen,
		markup.DefaultClose,
		markup.DefaultArgOpen,
		markup.DefaultArgClose,
		markup.DefaultEscape,
	}

	for i, s := range []struct{ name, value string }{
		{"open", m.Open},
		{"close", m.Close},
		{"arg-open", m.ArgOpen},
		{"arg-close", m.ArgClose},
		{"escape", m.Escape},
	} {
		if s.value == "" {
			continue
		}

		r, size := utf8.DecodeRuneInString(s.value)
		if r == utf8.RuneError || size != len(s.value) {
			return runes, ErrMetaChar.With(
				slog.String("flag", s.name),
				slog.String("value", s.value),
			)
		}

		runes[i] = r
	}

	return runes, nil
}

// warn logs each diagnostic.
func warn(ctx context.Context, diags []markup.Diagnostic) {
	for _, d := range diags {
		log.WarnContext(ctx, d.Message,
			slog.String("at", d.Position.String()),
			slog.String("char", d.Char),
		)
	}
}
