package cli

import (
	"os"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"

	"github.com/ardnew/ecstasy/theme"
)

// colorMode selects when output carries escape sequences.
type colorMode string

const (
	colorAuto   colorMode = "auto"
	colorAlways colorMode = "always"
	colorNever  colorMode = "never"
)

// enabled reports whether output written to f should be styled. In auto
// mode that requires a terminal that supports color and no NO_COLOR in the
// environment.
func (m colorMode) enabled(f *os.File) bool {
	switch m {
	case colorAlways:
		return true
	case colorNever:
		return false
	}

	if termenv.EnvNoColor() {
		return false
	}

	fd := f.Fd()
	if !isatty.IsTerminal(fd) && !isatty.IsCygwinTerminal(fd) {
		return false
	}

	return termenv.NewOutput(f).EnvColorProfile() != termenv.Ascii
}

type styleConfig struct {
	Theme  string            `default:"${theme}"                     env:"ECSTASY_THEME"      help:"Theme name or path to a theme file." short:"t"`
	Style  []string          `help:"Append a positional style expression (repeatable)." placeholder:"EXPR"      sep:"none"    short:"s"`
	Always map[string]string `help:"Bind a phrase name to a style expression (repeatable)." mapsep:"none" placeholder:"NAME=EXPR" short:"a"`
	Color  colorMode         `default:"auto" enum:"auto,always,never" help:"When to emit escape sequences (${enum})."`
}

func (*styleConfig) vars() kong.Vars {
	return kong.Vars{
		"theme": theme.DefaultName,
	}
}

func (*styleConfig) group() kong.Group {
	var group kong.Group

	group.Key = "style"
	group.Title = "Style options"

	return group
}

// start applies the color decision to the terminal styling libraries and
// reports it.
func (s *styleConfig) start(out *os.File) bool {
	color := s.Color.enabled(out)

	if !color {
		lipgloss.SetColorProfile(termenv.Ascii)
	}

	return color
}
