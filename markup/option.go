package markup

import (
	"log/slog"
	"strconv"

	"github.com/ardnew/ecstasy/log"
)

// Default meta characters.
const (
	DefaultOpen     = '<'
	DefaultClose    = '>'
	DefaultArgOpen  = '('
	DefaultArgClose = ')'
	DefaultEscape   = '\\'
)

// config holds scanner and renderer settings.
type config struct {
	open, close       rune
	argOpen, argClose rune
	escape            rune
	strict            bool
	logger            log.Logger
}

// Option applies a configuration option to config.
type Option func(config) config

func makeConfig(opts ...Option) config {
	c := config{
		open:     DefaultOpen,
		close:    DefaultClose,
		argOpen:  DefaultArgOpen,
		argClose: DefaultArgClose,
		escape:   DefaultEscape,
		logger:   log.Discard(),
	}

	for _, opt := range opts {
		c = opt(c)
	}

	return c
}

// validate reports an error unless all five meta characters are distinct.
func (c config) validate() error {
	seen := make(map[rune]string, 5)

	for _, m := range []struct {
		name string
		r    rune
	}{
		{"open", c.open},
		{"close", c.close},
		{"arg-open", c.argOpen},
		{"arg-close", c.argClose},
		{"escape", c.escape},
	} {
		if prev, dup := seen[m.r]; dup {
			return ErrSyntax.With(
				slog.String("char", strconv.QuoteRune(m.r)),
				slog.String("first", prev),
				slog.String("second", m.name),
			)
		}

		seen[m.r] = m.name
	}

	return nil
}

// isMeta reports whether r has syntactic meaning to the scanner.
func (c config) isMeta(r rune) bool {
	return r == c.open || r == c.close || r == c.argOpen || r == c.argClose
}

// WithDelimiters sets the phrase delimiters.
func WithDelimiters(open, close rune) Option {
	return func(c config) config {
		c.open, c.close = open, close

		return c
	}
}

// WithArgumentBrackets sets the characters bounding a phrase's arguments.
func WithArgumentBrackets(open, close rune) Option {
	return func(c config) config {
		c.argOpen, c.argClose = open, close

		return c
	}
}

// WithEscape sets the escape marker.
func WithEscape(r rune) Option {
	return func(c config) config {
		c.escape = r

		return c
	}
}

// WithStrict makes unescaped meta-characters a fatal error.
func WithStrict(strict bool) Option {
	return func(c config) config {
		c.strict = strict

		return c
	}
}

// WithLogger traces scanning and rendering to logger.
func WithLogger(logger log.Logger) Option {
	return func(c config) config {
		c.logger = logger

		return c
	}
}
