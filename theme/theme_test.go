package theme

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/multierr"

	"github.com/ardnew/ecstasy/markup"
	"github.com/ardnew/ecstasy/style"
)

func TestDecodeCatalog(t *testing.T) {
	doc := `
name: sample
positional:
  - bold + fg.red
  - [underline, fg.blue]
  - 2
always:
  error: bold
groups:
  - names: [warn, caution]
    style: fg.yellow
`

	th, err := Decode(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}

	if th.Name != "sample" {
		t.Errorf("Name = %q, want %q", th.Name, "sample")
	}

	cat, err := th.Catalog()
	if err != nil {
		t.Fatalf("Catalog() error = %v", err)
	}

	wantPos := []style.Combination{
		style.Bold | style.FgRed,
		style.Underline,
		style.FgBlue,
		style.Combination(2),
	}

	if cat.Len() != len(wantPos) {
		t.Fatalf("Len() = %d, want %d", cat.Len(), len(wantPos))
	}

	for i, want := range wantPos {
		if got, _ := cat.Positional(i); got != want {
			t.Errorf("Positional(%d) = %v, want %v", i, got, want)
		}
	}

	wantNamed := map[string]style.Combination{
		"error":   style.Bold,
		"warn":    style.FgYellow,
		"caution": style.FgYellow,
	}

	for name, want := range wantNamed {
		if got, ok := cat.Named(name); !ok || got != want {
			t.Errorf("Named(%q) = %v, %v; want %v", name, got, ok, want)
		}
	}
}

func TestAlwaysOverridesGroup(t *testing.T) {
	doc := `
always:
  warn: bold
groups:
  - names: [warn]
    style: dim
`

	th, err := Decode(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}

	cat, err := th.Catalog()
	if err != nil {
		t.Fatalf("Catalog() error = %v", err)
	}

	if got, _ := cat.Named("warn"); got != style.Bold {
		t.Errorf("Named(warn) = %v, want %v", got, style.Bold)
	}
}

func TestCatalogErrors(t *testing.T) {
	tests := []struct {
		name    string
		doc     string
		want    error
		count   int
		mention string
	}{
		{
			name:    "float element",
			doc:     "positional: [1.5]",
			want:    ErrEntry,
			count:   1,
			mention: "positional[0]",
		},
		{
			name:    "map element",
			doc:     "positional:\n  - {a: b}",
			want:    ErrEntry,
			count:   1,
			mention: "positional[0]",
		},
		{
			name:    "unknown name",
			doc:     "always:\n  x: bodl",
			want:    ErrEntry,
			count:   1,
			mention: "always.x",
		},
		{
			name:    "out of range",
			doc:     "positional: [4398046511104]",
			want:    markup.ErrFlag,
			count:   1,
			mention: "positional[0]",
		},
		{
			name:    "negative",
			doc:     "positional: [-1]",
			want:    markup.ErrFlag,
			count:   1,
			mention: "positional[0]",
		},
		{
			name:    "all reported",
			doc:     "positional: [true, [bold, 1.5]]\ngroups:\n  - names: [a]\n    style: nope",
			want:    ErrEntry,
			count:   3,
			mention: "positional[1][1]",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			th, err := Decode(strings.NewReader(tt.doc))
			if err != nil {
				t.Fatalf("Decode() error = %v", err)
			}

			_, err = th.Catalog()
			if !errors.Is(err, tt.want) {
				t.Fatalf("Catalog() error = %v, want %v", err, tt.want)
			}

			if n := len(multierr.Errors(err)); n != tt.count {
				t.Errorf("Catalog() reported %d errors, want %d: %v", n, tt.count, err)
			}

			if !strings.Contains(err.Error(), tt.mention) {
				t.Errorf("Catalog() error = %q, want mention of %q", err, tt.mention)
			}
		})
	}
}

func TestDecodeInvalid(t *testing.T) {
	for _, doc := range []string{
		"positional: [",
		"colours: [bold]",
	} {
		if _, err := Decode(strings.NewReader(doc)); !errors.Is(err, ErrDecode) {
			t.Errorf("Decode(%q) error = %v, want %v", doc, err, ErrDecode)
		}
	}
}

func TestExtend(t *testing.T) {
	th := &Theme{
		Name:       "base",
		Positional: []any{"bold"},
		Always:     map[string]any{"a": "dim"},
	}

	ext := th.Extend([]string{"fg.red"}, map[string]string{"a": "invert", "b": "underline"})

	if len(th.Positional) != 1 || th.Always["a"] != "dim" {
		t.Fatalf("Extend() modified the receiver: %+v", th)
	}

	cat, err := ext.Catalog()
	if err != nil {
		t.Fatalf("Catalog() error = %v", err)
	}

	if got, _ := cat.Positional(1); got != style.FgRed {
		t.Errorf("Positional(1) = %v, want %v", got, style.FgRed)
	}

	if got, _ := cat.Named("a"); got != style.Invert {
		t.Errorf("Named(a) = %v, want %v", got, style.Invert)
	}

	if got, _ := cat.Named("b"); got != style.Underline {
		t.Errorf("Named(b) = %v, want %v", got, style.Underline)
	}
}

func TestBuiltins(t *testing.T) {
	names := Builtins()
	if len(names) == 0 {
		t.Fatal("Builtins() is empty")
	}

	for _, name := range names {
		t.Run(name, func(t *testing.T) {
			th, err := Builtin(name)
			if err != nil {
				t.Fatalf("Builtin() error = %v", err)
			}

			if th.Name != name {
				t.Errorf("Name = %q, want %q", th.Name, name)
			}

			if _, err := th.Catalog(); err != nil {
				t.Errorf("Catalog() error = %v", err)
			}
		})
	}

	if _, err := Builtin("missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Builtin(missing) error = %v, want %v", err, ErrNotFound)
	}
}

func TestBuiltinPositional(t *testing.T) {
	tests := map[string][]style.Combination{
		"mono": {
			style.Bold,
			style.Underline,
			style.Bold | style.Underline,
			style.Dim,
			style.Invert,
		},
		"dark": {
			style.FgDarkCyan,
			style.FgDarkGreen,
			style.FgDarkYellow,
			style.FgDarkMagenta,
			style.FgGray | style.BgDarkGray,
		},
	}

	for name, want := range tests {
		t.Run(name, func(t *testing.T) {
			th, err := Builtin(name)
			if err != nil {
				t.Fatalf("Builtin(%q) error = %v", name, err)
			}

			cat, err := th.Catalog()
			if err != nil {
				t.Fatalf("Catalog() error = %v", err)
			}

			if cat.Len() != len(want) {
				t.Fatalf("Len() = %d, want %d", cat.Len(), len(want))
			}

			for i, w := range want {
				if got, _ := cat.Positional(i); got != w {
					t.Errorf("Positional(%d) = %v, want %v", i, got, w)
				}
			}
		})
	}
}

func TestFind(t *testing.T) {
	first, second := t.TempDir(), t.TempDir()

	write := func(dir, file, name string) string {
		t.Helper()

		p := filepath.Join(dir, file)
		if err := os.WriteFile(p, []byte("name: "+name+"\npositional: [bold]\n"), 0o600); err != nil {
			t.Fatal(err)
		}

		return p
	}

	write(first, "local.yml", "local-first")
	write(second, "local.yaml", "local-second")
	write(second, DefaultName+".yaml", "shadow")
	direct := write(t.TempDir(), "direct.yaml", "direct")

	tests := []struct {
		name string
		want string
	}{
		{"local", "local-first"},
		{DefaultName, "shadow"},
		{"", "shadow"},
		{"mono", "mono"},
		{direct, "direct"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			th, err := Find(tt.name, first, second)
			if err != nil {
				t.Fatalf("Find(%q) error = %v", tt.name, err)
			}

			if th.Name != tt.want {
				t.Errorf("Find(%q).Name = %q, want %q", tt.name, th.Name, tt.want)
			}
		})
	}

	if _, err := Find("missing", first, second); !errors.Is(err, ErrNotFound) {
		t.Errorf("Find(missing) error = %v, want %v", err, ErrNotFound)
	}

	list := List(first, second)

	var local, def Info

	for _, in := range list {
		switch in.Name {
		case "local":
			local = in
		case DefaultName:
			def = in
		}
	}

	if filepath.Dir(local.Source) != first {
		t.Errorf("List() local source = %q, want in %q", local.Source, first)
	}

	if filepath.Dir(def.Source) != second {
		t.Errorf("List() default source = %q, want in %q", def.Source, second)
	}
}

func TestEncodeRoundTrip(t *testing.T) {
	th, err := Builtin(DefaultName)
	if err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := th.Encode(&buf); err != nil {
		t.Fatalf("Encode() error = %v", err)
	}

	back, err := Decode(&buf)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}

	a, _ := th.Catalog()
	b, err := back.Catalog()
	if err != nil {
		t.Fatalf("Catalog() error = %v", err)
	}

	if a.Len() != b.Len() || len(a.Names()) != len(b.Names()) {
		t.Errorf("round trip changed the catalog: %d/%d positional, %v/%v names",
			a.Len(), b.Len(), a.Names(), b.Names())
	}
}

