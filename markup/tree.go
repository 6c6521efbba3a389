package markup

import (
	"iter"
	"strings"
)

// PhraseID addresses a phrase within its [Tree].
type PhraseID int

// NoParent is the Parent of a top-level phrase.
const NoParent PhraseID = -1

// Phrase is a delimited region of the scanned text.
//
// Open and Close are byte offsets of the opening and closing delimiters in
// [Tree.Text]. Text is the content between them: escapes and argument
// syntax removed, nested phrases (with their delimiters) retained.
type Phrase struct {
	Open      int
	Close     int
	Text      string
	Arguments []int
	Override  bool
	Increment bool
	Position  Position
	Parent    PhraseID
	Depth     int
	Children  []PhraseID
}

// Explicit reports whether the phrase names its positional styles.
func (p Phrase) Explicit() bool { return len(p.Arguments) > 0 }

// Tree is the result of scanning: the canonical text and an arena of phrases.
// Phrase delimiters remain in the text; everything else is literal.
type Tree struct {
	cfg     config
	text    string
	phrases []Phrase
	roots   []PhraseID
	diags   []Diagnostic
}

// Text returns the canonical de-escaped text, phrase delimiters included.
func (t *Tree) Text() string { return t.text }

// Len returns the number of phrases.
func (t *Tree) Len() int { return len(t.phrases) }

// Roots returns the top-level phrases in document order.
func (t *Tree) Roots() []PhraseID { return t.roots }

// Phrase returns the phrase with the given id.
func (t *Tree) Phrase(id PhraseID) Phrase { return t.phrases[id] }

// Diagnostics returns every recoverable irregularity found while scanning.
func (t *Tree) Diagnostics() []Diagnostic { return t.diags }

// content returns the byte span of a phrase's content in t.text.
func (t *Tree) content(p Phrase) (int, int) {
	return p.Open + runeLen(t.cfg.open), p.Close
}

// Walk yields every phrase depth-first in document order.
func (t *Tree) Walk() iter.Seq2[PhraseID, Phrase] {
	return func(yield func(PhraseID, Phrase) bool) {
		var visit func(ids []PhraseID) bool

		visit = func(ids []PhraseID) bool {
			for _, id := range ids {
				if !yield(id, t.phrases[id]) || !visit(t.phrases[id].Children) {
					return false
				}
			}

			return true
		}

		visit(t.roots)
	}
}

// Plain returns the text with phrase delimiters removed.
func (t *Tree) Plain() string {
	if len(t.roots) == 0 {
		return t.text
	}

	var sb strings.Builder

	sb.Grow(len(t.text))

	t.plain(&sb, 0, len(t.text), t.roots)

	return sb.String()
}

func (t *Tree) plain(sb *strings.Builder, from, to int, ids []PhraseID) {
	for _, id := range ids {
		p := t.phrases[id]
		sb.WriteString(t.text[from:p.Open])

		start, end := t.content(p)
		t.plain(sb, start, end, p.Children)

		from = p.Close + runeLen(t.cfg.close)
	}

	sb.WriteString(t.text[from:to])
}

// ToMap returns a representation of the tree suitable for encoding.
func (t *Tree) ToMap() map[string]any {
	var phrases func(ids []PhraseID) []any

	phrases = func(ids []PhraseID) []any {
		out := make([]any, 0, len(ids))

		for _, id := range ids {
			p := t.phrases[id]
			m := map[string]any{
				"id":       int(id),
				"open":     p.Open,
				"close":    p.Close,
				"text":     p.Text,
				"position": p.Position.String(),
			}

			if p.Explicit() {
				m["arguments"] = p.Arguments
			}

			if p.Override {
				m["override"] = true
			}

			if p.Increment {
				m["increment"] = true
			}

			if len(p.Children) > 0 {
				m["children"] = phrases(p.Children)
			}

			out = append(out, m)
		}

		return out
	}

	m := map[string]any{
		"text":    t.text,
		"plain":   t.Plain(),
		"phrases": phrases(t.roots),
	}

	if len(t.diags) > 0 {
		diags := make([]any, len(t.diags))
		for i, d := range t.diags {
			diags[i] = map[string]any{
				"position": d.Position.String(),
				"char":     d.Char,
				"message":  d.Message,
			}
		}

		m["diagnostics"] = diags
	}

	return m
}
