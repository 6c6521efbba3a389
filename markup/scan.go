package markup

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"unicode"
	"unicode/utf8"
)

// scanner builds a [Tree] in a single forward pass over src.
// Output is appended to buf, which becomes [Tree.Text].
type scanner struct {
	ctx   context.Context
	cfg   config
	src   string
	pos   int
	lines lineIndex
	buf   []byte
	tree  *Tree
}

// Parse scans text into a phrase tree.
//
// Escape markers immediately preceding a meta character are resolved by
// parity: an odd run makes the meta character literal, an even run leaves it
// functional, and in both cases one marker of the run is consumed. Markers
// not followed by a meta character are literal.
//
// Unterminated phrases and malformed argument sequences are fatal. Stray
// meta characters are kept literally and reported as diagnostics, or fail
// with [ErrStrict] when [WithStrict] is set.
func Parse(ctx context.Context, text string, opts ...Option) (*Tree, error) {
	cfg := makeConfig(opts...)

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	s := &scanner{
		ctx:   ctx,
		cfg:   cfg,
		src:   text,
		lines: newLineIndex(text),
		buf:   make([]byte, 0, len(text)),
		tree:  &Tree{cfg: cfg},
	}

	if err := s.scan(NoParent); err != nil {
		cfg.logger.DebugContext(ctx, "scan failed", slog.Any("error", err))

		return nil, err
	}

	s.tree.text = string(s.buf)

	cfg.logger.TraceContext(ctx, "scanned",
		slog.Int("bytes", len(text)),
		slog.Int("phrases", s.tree.Len()),
		slog.Int("diagnostics", len(s.tree.diags)))

	if cfg.strict && len(s.tree.diags) > 0 {
		attrs := make([]slog.Attr, len(s.tree.diags))
		for i, d := range s.tree.diags {
			attrs[i] = slog.Any(d.Position.String(), d)
		}

		return nil, ErrStrict.With(attrs...).Wrap(diagnostics(s.tree.diags))
	}

	return s.tree, nil
}

// special reports whether r needs the scanner's attention.
func (s *scanner) special(r rune) bool {
	return r == s.cfg.escape || s.cfg.isMeta(r)
}

// scan consumes input until the phrase id is closed, or until the end of
// input when id is [NoParent].
func (s *scanner) scan(id PhraseID) error {
	argsDone := id == NoParent

	for s.pos < len(s.src) {
		if n := strings.IndexFunc(s.src[s.pos:], s.special); n != 0 {
			if n < 0 {
				n = len(s.src) - s.pos
			}

			s.literal(n)

			continue
		}

		r, size := utf8.DecodeRuneInString(s.src[s.pos:])
		escaped := false

		if r == s.cfg.escape {
			var ok bool

			if r, size, escaped, ok = s.escapeRun(size); !ok {
				continue
			}
		}

		switch {
		case escaped:
			s.literal(size)

		case r == s.cfg.open:
			if err := s.open(id, size); err != nil {
				return err
			}

		case r == s.cfg.close && id != NoParent:
			s.close(id, size)

			return nil

		case r == s.cfg.argOpen && !argsDone && len(s.buf) == s.contentStart(id):
			argsDone = true

			ok, err := s.arguments(id, size)
			if err != nil {
				return err
			}

			if !ok {
				s.stray(r, size)
			}

		default:
			s.stray(r, size)
		}

		argsDone = true
	}

	if id == NoParent {
		return nil
	}

	return s.unterminated(id)
}

// escapeRun consumes a run of escape markers at s.pos. If a meta character
// follows, one marker is dropped, the rest are kept, and the meta character
// is returned with whether it is escaped. Otherwise the whole run is kept
// and ok is false.
func (s *scanner) escapeRun(size int) (meta rune, metaSize int, escaped, ok bool) {
	n := 0
	for strings.HasPrefix(s.src[s.pos+n*size:], s.src[s.pos:s.pos+size]) {
		n++
	}

	meta, metaSize = utf8.DecodeRuneInString(s.src[s.pos+n*size:])
	if metaSize == 0 || !s.cfg.isMeta(meta) {
		s.literal(n * size)

		return 0, 0, false, false
	}

	s.literal((n - 1) * size)
	s.pos += size

	return meta, metaSize, n%2 == 1, true
}

// literal copies the next n bytes of input to the output.
func (s *scanner) literal(n int) {
	s.buf = append(s.buf, s.src[s.pos:s.pos+n]...)
	s.pos += n
}

func (s *scanner) contentStart(id PhraseID) int {
	return s.tree.phrases[id].Open + runeLen(s.cfg.open)
}

// open starts a phrase at s.pos and scans it through its close.
func (s *scanner) open(parent PhraseID, size int) error {
	depth := 0
	if parent != NoParent {
		depth = s.tree.phrases[parent].Depth + 1
	}

	id := PhraseID(len(s.tree.phrases))

	s.tree.phrases = append(s.tree.phrases, Phrase{
		Open:     len(s.buf),
		Close:    -1,
		Position: s.lines.position(s.pos),
		Parent:   parent,
		Depth:    depth,
	})

	s.literal(size)

	if err := s.scan(id); err != nil {
		return err
	}

	if parent == NoParent {
		s.tree.roots = append(s.tree.roots, id)
	} else {
		s.tree.phrases[parent].Children = append(s.tree.phrases[parent].Children, id)
	}

	return nil
}

// close completes phrase id at s.pos.
func (s *scanner) close(id PhraseID, size int) {
	p := &s.tree.phrases[id]
	p.Close = len(s.buf)
	p.Text = string(s.buf[s.contentStart(id):])

	s.literal(size)

	s.cfg.logger.TraceContext(s.ctx, "phrase",
		slog.Int("id", int(id)),
		slog.Any("pos", p.Position),
		slog.String("text", p.Text))
}

// arguments consumes an argument sequence at s.pos if the next meta
// character is the closing bracket. A sequence that fails the grammar is
// fatal.
func (s *scanner) arguments(id PhraseID, size int) (bool, error) {
	rest := s.src[s.pos+size:]

	n := strings.IndexFunc(rest, s.cfg.isMeta)
	if n < 0 {
		return false, nil
	}

	r, closeSize := utf8.DecodeRuneInString(rest[n:])
	if r != s.cfg.argClose {
		return false, nil
	}

	body := rest[:n]

	args, ok := parseArguments(body)
	if !ok {
		pos := s.lines.position(s.pos)

		return false, ErrInvalidArguments.With(
			slog.Any("pos", pos),
			slog.String("arguments", body),
		).Wrap(fmt.Errorf("%q at %s", body, pos))
	}

	p := &s.tree.phrases[id]
	p.Arguments = args.indices
	p.Override = args.override
	p.Increment = args.increment

	s.pos += size + n + closeSize

	return true, nil
}

// stray keeps an unescaped meta character literally and records it.
func (s *scanner) stray(r rune, size int) {
	d := Diagnostic{
		Position: s.lines.position(s.pos),
		Char:     string(r),
		Message:  msgUnescaped,
	}

	s.tree.diags = append(s.tree.diags, d)
	s.cfg.logger.DebugContext(s.ctx, d.Message, slog.Any("at", d))

	s.literal(size)
}

func (s *scanner) unterminated(id PhraseID) error {
	p := s.tree.phrases[id]
	word := nearbyWord(string(s.buf[s.contentStart(id):]))

	err := ErrUnterminated.With(slog.Any("pos", p.Position))
	if word == "" {
		return err.Wrap(fmt.Errorf("opened at %s", p.Position))
	}

	return err.With(slog.String("near", word)).
		Wrap(fmt.Errorf("opened at %s after expression %q", p.Position, word))
}

// maxWord bounds the context quoted in an unterminated phrase error.
const maxWord = 32

// nearbyWord returns the first run of words in s.
func nearbyWord(s string) string {
	isWord := func(r rune) bool {
		return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
	}

	start := strings.IndexFunc(s, isWord)
	if start < 0 {
		return ""
	}

	end := strings.IndexFunc(s[start:], func(r rune) bool {
		return !isWord(r) && !unicode.IsSpace(r)
	})
	if end < 0 {
		end = len(s) - start
	}

	word := strings.TrimSpace(s[start : start+end])
	if utf8.RuneCountInString(word) > maxWord {
		word = string([]rune(word)[:maxWord])
	}

	return word
}

func runeLen(r rune) int { return utf8.RuneLen(r) }

type diagnostics []Diagnostic

func (d diagnostics) Error() string {
	part := make([]string, len(d))
	for i, x := range d {
		part[i] = x.String()
	}

	return strings.Join(part, "; ")
}
