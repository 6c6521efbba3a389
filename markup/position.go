package markup

import (
	"log/slog"
	"sort"
	"strconv"
	"unicode/utf8"
)

// Position locates a character in the scanned input.
// Line and Column are 1-based; Column counts runes.
type Position struct {
	Offset int `json:"offset" yaml:"offset"`
	Line   int `json:"line"   yaml:"line"`
	Column int `json:"column" yaml:"column"`
}

func (p Position) String() string {
	return strconv.Itoa(p.Line) + ":" + strconv.Itoa(p.Column)
}

// LogValue implements slog.LogValuer.
func (p Position) LogValue() slog.Value { return slog.StringValue(p.String()) }

// lineIndex maps byte offsets of a text to positions.
type lineIndex struct {
	text   string
	starts []int
}

func newLineIndex(text string) lineIndex {
	starts := []int{0}

	for i := range len(text) {
		if text[i] == '\n' {
			starts = append(starts, i+1)
		}
	}

	return lineIndex{text: text, starts: starts}
}

func (x lineIndex) position(offset int) Position {
	line := sort.Search(len(x.starts), func(i int) bool {
		return x.starts[i] > offset
	})

	start := x.starts[line-1]

	return Position{
		Offset: offset,
		Line:   line,
		Column: utf8.RuneCountInString(x.text[start:offset]) + 1,
	}
}

// Diagnostic is a recoverable irregularity found while scanning.
type Diagnostic struct {
	Position Position `json:"position" yaml:"position"`
	Char     string   `json:"char"     yaml:"char"`
	Message  string   `json:"message"  yaml:"message"`
}

// Diagnostic messages.
const (
	msgUnescaped = "unescaped meta-character"
)

func (d Diagnostic) String() string {
	return d.Position.String() + ": " + d.Message + " " + strconv.Quote(d.Char)
}

// LogValue implements slog.LogValuer.
func (d Diagnostic) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("pos", d.Position.String()),
		slog.String("char", d.Char),
	)
}
