package log

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/ardnew/ecstasy/style"
)

// palette holds the escape sequences used by the pretty handlers.
type palette struct {
	reset, key, str, num, yes, no, dur, when, null string
	level                                          [4]string // error, warn, info, debug
}

func sgr(c style.Combination) string {
	codes, err := style.Encode(c)
	if err != nil {
		return ""
	}

	return "\033[" + codes + "m"
}

var colors = sync.OnceValue(func() palette {
	return palette{
		reset: sgr(style.Reset),
		key:   sgr(style.FgDarkGray),
		str:   sgr(style.FgDarkCyan),
		num:   sgr(style.FgDarkYellow),
		yes:   sgr(style.FgDarkGreen),
		no:    sgr(style.FgDarkRed),
		dur:   sgr(style.FgDarkMagenta),
		when:  sgr(style.FgDarkBlue),
		null:  sgr(style.FgDarkGray),
		level: [4]string{
			sgr(style.Bold | style.FgRed),
			sgr(style.Bold | style.FgYellow),
			sgr(style.FgGreen),
			sgr(style.FgBlue),
		},
	}
})

func (p palette) forLevel(level slog.Level) string {
	switch {
	case level >= slog.LevelError:
		return p.level[0]
	case level >= slog.LevelWarn:
		return p.level[1]
	case level >= slog.LevelInfo:
		return p.level[2]
	default:
		return p.level[3]
	}
}

// replace resolves a and applies rep to it. Levels keep their type so they
// can be colored by severity.
func replace(
	rep func([]string, slog.Attr) slog.Attr,
	groups []string,
	a slog.Attr,
) slog.Attr {
	a.Value = a.Value.Resolve()

	if rep == nil || a.Value.Kind() == slog.KindGroup {
		return a
	}

	if _, ok := a.Value.Any().(slog.Level); ok {
		return a
	}

	return rep(groups, a)
}

// prefixed is an attribute already resolved and qualified by its groups.
type prefixed struct {
	groups []string
	attr   slog.Attr
}

// prettyTextHandler implements a colorized text handler for log messages.
type prettyTextHandler struct {
	opts   slog.HandlerOptions
	mu     *sync.Mutex
	w      io.Writer
	groups []string
	attrs  []prefixed
}

func newPrettyTextHandler(
	w io.Writer,
	opts *slog.HandlerOptions,
) *prettyTextHandler {
	return &prettyTextHandler{
		opts: *opts,
		mu:   &sync.Mutex{},
		w:    w,
	}
}

func (h *prettyTextHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.opts.Level.Level()
}

func (h *prettyTextHandler) Handle(_ context.Context, r slog.Record) error {
	buf := new(bytes.Buffer)

	if !r.Time.IsZero() {
		h.writeAttr(buf, nil, slog.Time(slog.TimeKey, r.Time))
	}

	h.writeAttr(buf, nil, slog.Any(slog.LevelKey, r.Level))

	if h.opts.AddSource {
		if src := r.Source(); src != nil {
			h.writeAttr(buf, nil, slog.String(slog.SourceKey,
				fmt.Sprintf("%s:%d", src.File, src.Line)))
		}
	}

	h.writeAttr(buf, nil, slog.String(slog.MessageKey, r.Message))

	for _, p := range h.attrs {
		h.writeAttr(buf, p.groups, p.attr)
	}

	r.Attrs(func(a slog.Attr) bool {
		h.writeAttr(buf, h.groups, a)

		return true
	})

	buf.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()

	_, err := h.w.Write(buf.Bytes())

	return err
}

func (h *prettyTextHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	c := *h
	c.attrs = slices.Clip(c.attrs)

	for _, a := range attrs {
		c.attrs = append(c.attrs, prefixed{groups: h.groups, attr: a})
	}

	return &c
}

func (h *prettyTextHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}

	c := *h
	c.groups = append(slices.Clip(h.groups), name)

	return &c
}

func (h *prettyTextHandler) writeAttr(
	buf *bytes.Buffer,
	groups []string,
	a slog.Attr,
) {
	a = replace(h.opts.ReplaceAttr, groups, a)

	if a.Equal(slog.Attr{}) {
		return
	}

	if a.Value.Kind() == slog.KindGroup {
		inner := groups
		if a.Key != "" {
			inner = append(slices.Clip(groups), a.Key)
		}

		for _, g := range a.Value.Group() {
			h.writeAttr(buf, inner, g)
		}

		return
	}

	p := colors()

	if buf.Len() > 0 {
		buf.WriteByte(' ')
	}

	buf.WriteString(p.key)

	for _, g := range groups {
		buf.WriteString(g)
		buf.WriteByte('.')
	}

	buf.WriteString(a.Key)
	buf.WriteString(p.reset)
	buf.WriteByte('=')

	writeValue(buf, p, a.Value)
}

func writeValue(buf *bytes.Buffer, p palette, v slog.Value) {
	var color, text string

	switch v.Kind() {
	case slog.KindString:
		color, text = p.str, v.String()

	case slog.KindInt64:
		color, text = p.num, strconv.FormatInt(v.Int64(), 10)

	case slog.KindUint64:
		color, text = p.num, strconv.FormatUint(v.Uint64(), 10)

	case slog.KindFloat64:
		color, text = p.num, strconv.FormatFloat(v.Float64(), 'g', -1, 64)

	case slog.KindBool:
		color, text = p.no, "false"
		if v.Bool() {
			color, text = p.yes, "true"
		}

	case slog.KindDuration:
		color, text = p.dur, v.Duration().String()

	case slog.KindTime:
		color, text = p.when, v.Time().Format(time.RFC3339)

	default:
		if level, ok := v.Any().(slog.Level); ok {
			color, text = p.forLevel(level), strings.ToUpper(Level(level).String())
		} else {
			color, text = p.str, v.String()
		}
	}

	buf.WriteString(color)
	buf.WriteString(text)
	buf.WriteString(p.reset)
}

// prettyJSONHandler implements an indented, colorized JSON-like handler.
type prettyJSONHandler struct {
	opts   slog.HandlerOptions
	mu     *sync.Mutex
	w      io.Writer
	groups []string
	attrs  []prefixed
}

func newPrettyJSONHandler(
	w io.Writer,
	opts *slog.HandlerOptions,
) *prettyJSONHandler {
	return &prettyJSONHandler{
		opts: *opts,
		mu:   &sync.Mutex{},
		w:    w,
	}
}

func (h *prettyJSONHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.opts.Level.Level()
}

func (h *prettyJSONHandler) Handle(_ context.Context, r slog.Record) error {
	buf := new(bytes.Buffer)
	first := true

	buf.WriteString("{")

	if !r.Time.IsZero() {
		h.writeField(buf, 1, nil, slog.Time(slog.TimeKey, r.Time), &first)
	}

	h.writeField(buf, 1, nil, slog.Any(slog.LevelKey, r.Level), &first)

	if h.opts.AddSource {
		if src := r.Source(); src != nil {
			h.writeField(buf, 1, nil, slog.String(slog.SourceKey,
				fmt.Sprintf("%s:%d", src.File, src.Line)), &first)
		}
	}

	h.writeField(buf, 1, nil, slog.String(slog.MessageKey, r.Message), &first)

	for _, p := range h.attrs {
		h.writeField(buf, 1, p.groups, p.attr, &first)
	}

	r.Attrs(func(a slog.Attr) bool {
		h.writeField(buf, 1, h.groups, a, &first)

		return true
	})

	buf.WriteString("\n}\n")

	h.mu.Lock()
	defer h.mu.Unlock()

	_, err := h.w.Write(buf.Bytes())

	return err
}

func (h *prettyJSONHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	c := *h
	c.attrs = slices.Clip(c.attrs)

	for _, a := range attrs {
		c.attrs = append(c.attrs, prefixed{groups: h.groups, attr: a})
	}

	return &c
}

func (h *prettyJSONHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}

	c := *h
	c.groups = append(slices.Clip(h.groups), name)

	return &c
}

// writeField writes one member. Group qualifiers are flattened into a dotted
// key; group values nest as objects.
func (h *prettyJSONHandler) writeField(
	buf *bytes.Buffer,
	depth int,
	groups []string,
	a slog.Attr,
	first *bool,
) {
	a = replace(h.opts.ReplaceAttr, groups, a)

	if a.Equal(slog.Attr{}) {
		return
	}

	p := colors()

	if !*first {
		buf.WriteByte(',')
	}

	*first = false

	buf.WriteByte('\n')
	indent(buf, depth)
	buf.WriteString(p.key)

	for _, g := range groups {
		buf.WriteString(g)
		buf.WriteByte('.')
	}

	buf.WriteString(a.Key)
	buf.WriteString(p.reset)
	buf.WriteString(": ")

	if a.Value.Kind() != slog.KindGroup {
		writeValue(buf, p, a.Value)

		return
	}

	buf.WriteByte('{')

	inner := true
	for _, g := range a.Value.Group() {
		h.writeField(buf, depth+1, nil, g, &inner)
	}

	buf.WriteByte('\n')
	indent(buf, depth)
	buf.WriteByte('}')
}

func indent(buf *bytes.Buffer, depth int) {
	for range depth {
		buf.WriteString("  ")
	}
}
