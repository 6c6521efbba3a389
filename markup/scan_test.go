package markup

import (
	"errors"
	"slices"
	"strings"
	"testing"
)

func mustParse(t *testing.T, text string, opts ...Option) *Tree {
	t.Helper()

	tree, err := Parse(t.Context(), text, opts...)
	if err != nil {
		t.Fatalf("Parse(%q) error: %v", text, err)
	}

	return tree
}

func TestParse_PlainTextUnchanged(t *testing.T) {
	for _, text := range []string{"", "hello", "a\\b", "multi\nline text", "ünïcödé"} {
		tree := mustParse(t, text)

		if tree.Text() != text || tree.Plain() != text {
			t.Errorf("Parse(%q): Text=%q Plain=%q", text, tree.Text(), tree.Plain())
		}

		if tree.Len() != 0 || len(tree.Diagnostics()) != 0 {
			t.Errorf("Parse(%q): %d phrases, %d diagnostics", text, tree.Len(), len(tree.Diagnostics()))
		}
	}
}

func TestParse_Escaping(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		text    string
		phrases int
	}{
		{"one marker makes open literal", `\<x\>`, `<x>`, 0},
		{"two markers keep one and stay functional", `\\<x>`, `\<x>`, 1},
		{"three markers keep two and make literal", `\\\<x\>`, `\\<x>`, 0},
		{"four markers keep three and stay functional", `\\\\<x>`, `\\\<x>`, 1},
		{"marker before plain text is literal", `a\b\\c`, `a\b\\c`, 0},
		{"trailing marker is literal", `abc\`, `abc\`, 0},
		{"escaped close inside phrase", `<a\>b>`, `<a>b>`, 1},
		{"escaped argument bracket", `<\(1)x>`, `<(1)x>`, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tree := mustParse(t, tt.in)

			if tree.Text() != tt.text {
				t.Errorf("Text() = %q, want %q", tree.Text(), tt.text)
			}

			if tree.Len() != tt.phrases {
				t.Errorf("Len() = %d, want %d", tree.Len(), tt.phrases)
			}

			if tt.phrases == 1 && tree.Phrase(0).Explicit() {
				t.Errorf("escaped argument bracket parsed as arguments")
			}
		})
	}
}

func TestParse_Offsets(t *testing.T) {
	tree := mustParse(t, `<(1)ab<c>d> e<\>f>`)

	if got, want := tree.Text(), `<ab<c>d> e<>f>`; got != want {
		t.Fatalf("Text() = %q, want %q", got, want)
	}

	roots := tree.Roots()
	if len(roots) != 2 {
		t.Fatalf("Roots() = %v, want 2 phrases", roots)
	}

	outer := tree.Phrase(roots[0])
	if outer.Open != 0 || outer.Close != 7 || outer.Text != "ab<c>d" {
		t.Errorf("outer = %+v", outer)
	}

	if !slices.Equal(outer.Arguments, []int{1}) {
		t.Errorf("outer.Arguments = %v", outer.Arguments)
	}

	inner := tree.Phrase(outer.Children[0])
	if inner.Open != 3 || inner.Close != 5 || inner.Text != "c" || inner.Parent != roots[0] || inner.Depth != 1 {
		t.Errorf("inner = %+v", inner)
	}

	last := tree.Phrase(roots[1])
	if last.Text != ">f" {
		t.Errorf("last.Text = %q", last.Text)
	}
}

func TestParse_OffsetRoundTrip(t *testing.T) {
	inputs := []string{
		`<a>`,
		`x <(0)a<(1!)b> <c>> y`,
		`<(+)a\<<b<\\c>>d>`,
		`pre (<a(b)>) <(!)<<x>>>`,
		"line\n<one\n<two>>\n<(-1) three>",
		`<ü<ñ>>`,
	}

	for _, in := range inputs {
		tree := mustParse(t, in)
		text := tree.Text()

		for id, p := range tree.Walk() {
			if !strings.HasPrefix(text[p.Open:], "<") || !strings.HasPrefix(text[p.Close:], ">") {
				t.Errorf("%q: phrase %d offsets [%d,%d] not on delimiters", in, id, p.Open, p.Close)
			}

			if got := text[p.Open+1 : p.Close]; got != p.Text {
				t.Errorf("%q: phrase %d text %q, slice %q", in, id, p.Text, got)
			}

			prev := p.Open
			for _, cid := range p.Children {
				c := tree.Phrase(cid)
				if c.Open <= prev || c.Close >= p.Close {
					t.Errorf("%q: child %d [%d,%d] not inside parent [%d,%d] after %d",
						in, cid, c.Open, c.Close, p.Open, p.Close, prev)
				}

				prev = c.Close
			}
		}
	}
}

func TestParse_BalancedNesting(t *testing.T) {
	tree := mustParse(t, `<a<b<c>><d>><e>`)

	var (
		order []string
		opens int
	)

	for _, p := range tree.Walk() {
		order = append(order, p.Text[:1])
		opens++
	}

	if !slices.Equal(order, []string{"a", "b", "c", "d", "e"}) {
		t.Errorf("Walk order = %v", order)
	}

	text := tree.Text()
	if opens != strings.Count(text, "<") || opens != strings.Count(text, ">") {
		t.Errorf("%d phrases for text %q", opens, text)
	}
}

func TestParse_StrayMetaCharacters(t *testing.T) {
	tests := []struct {
		name  string
		in    string
		text  string
		chars []string
		pos   []string
	}{
		{"close without open", "a > b", "a > b", []string{">"}, []string{"1:3"}},
		{"brackets outside phrase", "f(x)", "f(x)", []string{"(", ")"}, []string{"1:2", "1:4"}},
		{"brackets not at phrase start", "<a(1)>", "<a(1)>", []string{"(", ")"}, []string{"1:3", "1:5"}},
		{"bracket without close", "<(1 a>", "<(1 a>", []string{"("}, []string{"1:2"}},
		{"second argument sequence", "<(1)(2)a>", "<(2)a>", []string{"(", ")"}, []string{"1:5", "1:7"}},
		{"escaped stray is silent", `a \> b`, "a > b", nil, nil},
		{"position on later line", "ok\n  >", "ok\n  >", []string{">"}, []string{"2:3"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tree := mustParse(t, tt.in)

			if tree.Text() != tt.text {
				t.Errorf("Text() = %q, want %q", tree.Text(), tt.text)
			}

			var chars, pos []string
			for _, d := range tree.Diagnostics() {
				if d.Message != "unescaped meta-character" {
					t.Errorf("diagnostic message = %q", d.Message)
				}

				chars = append(chars, d.Char)
				pos = append(pos, d.Position.String())
			}

			if !slices.Equal(chars, tt.chars) || !slices.Equal(pos, tt.pos) {
				t.Errorf("diagnostics %v at %v, want %v at %v", chars, pos, tt.chars, tt.pos)
			}
		})
	}
}

func TestParse_Unterminated(t *testing.T) {
	tests := []struct {
		in   string
		pos  string
		near string
	}{
		{"<abc", "1:1", "abc"},
		{"x <a <b> c", "1:3", "a"},
		{"ok\n  <(1) two words", "2:3", "two words"},
		{"<a <b", "1:4", "b"},
		{"<", "1:1", ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			_, err := Parse(t.Context(), tt.in)
			if !errors.Is(err, ErrUnterminated) {
				t.Fatalf("Parse(%q) error = %v, want ErrUnterminated", tt.in, err)
			}

			msg := err.Error()
			if !strings.Contains(msg, "no closing tag found for opening tag") ||
				!strings.Contains(msg, tt.pos) ||
				!strings.Contains(msg, tt.near) {
				t.Errorf("error %q lacks position %s or word %q", msg, tt.pos, tt.near)
			}
		})
	}
}

func TestParse_InvalidArguments(t *testing.T) {
	for _, in := range []string{"<(x)a>", "<()a>", "<(1,)a>", "<(!!)a>", "<(1\\)a>"} {
		_, err := Parse(t.Context(), in)
		if !errors.Is(err, ErrInvalidArguments) {
			t.Errorf("Parse(%q) error = %v, want ErrInvalidArguments", in, err)
		}
	}
}

func TestParse_Strict(t *testing.T) {
	_, err := Parse(t.Context(), "a > b", WithStrict(true))
	if !errors.Is(err, ErrStrict) {
		t.Fatalf("error = %v, want ErrStrict", err)
	}

	if !strings.Contains(err.Error(), "1:3") {
		t.Errorf("error %q does not locate the stray character", err)
	}

	if _, err := Parse(t.Context(), "<a>", WithStrict(true)); err != nil {
		t.Errorf("clean input failed in strict mode: %v", err)
	}
}

func TestParse_CustomMetaCharacters(t *testing.T) {
	tree := mustParse(t, `[{0}a] <b> %[c`,
		WithDelimiters('[', ']'),
		WithArgumentBrackets('{', '}'),
		WithEscape('%'))

	if got, want := tree.Text(), `[a] <b> [c`; got != want {
		t.Errorf("Text() = %q, want %q", got, want)
	}

	if tree.Len() != 1 || !slices.Equal(tree.Phrase(0).Arguments, []int{0}) {
		t.Errorf("phrases = %d, first = %+v", tree.Len(), tree.Phrase(0))
	}
}

func TestParse_DuplicateMetaCharacters(t *testing.T) {
	for _, opt := range []Option{
		WithDelimiters('(', ')'),
		WithDelimiters('<', '<'),
		WithEscape('>'),
	} {
		if _, err := Parse(t.Context(), "x", opt); !errors.Is(err, ErrSyntax) {
			t.Errorf("error = %v, want ErrSyntax", err)
		}
	}
}

func TestTree_Plain(t *testing.T) {
	tree := mustParse(t, `<(1)a<b>c> d \<e\>`)

	if got, want := tree.Plain(), "abc d <e>"; got != want {
		t.Errorf("Plain() = %q, want %q", got, want)
	}
}

func TestTree_ToMap(t *testing.T) {
	m := mustParse(t, `<(0!)a<b>> >`).ToMap()

	phrases, _ := m["phrases"].([]any)
	if len(phrases) != 1 {
		t.Fatalf("phrases = %v", m["phrases"])
	}

	root, _ := phrases[0].(map[string]any)
	if root["override"] != true || root["text"] != "a<b>" {
		t.Errorf("root = %v", root)
	}

	if _, ok := m["diagnostics"]; !ok {
		t.Error("diagnostics missing")
	}
}

func BenchmarkParse(b *testing.B) {
	text := strings.Repeat(`plain <(0)bold> and <nested <(1!)inner> text> \<lit\> `, 64)

	for b.Loop() {
		if _, err := Parse(b.Context(), text); err != nil {
			b.Fatal(err)
		}
	}
}
