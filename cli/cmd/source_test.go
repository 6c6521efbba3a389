package cmd

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestOpenSources(t *testing.T) {
	dir := t.TempDir()

	write := func(name, content string) string {
		t.Helper()

		p := filepath.Join(dir, name)
		if err := os.WriteFile(p, []byte(content), 0o600); err != nil {
			t.Fatal(err)
		}

		return p
	}

	first := write("first.txt", "first")
	second := write("second.txt", "second")

	link := filepath.Join(dir, "link.txt")
	if err := os.Symlink(first, link); err != nil {
		t.Fatal(err)
	}

	t.Chdir(dir)

	tests := []struct {
		name    string
		sources []string
		want    string
		wantNil bool
	}{
		{"empty", nil, "", true},
		{"single file", []string{first}, "first", false},
		{"multiple files", []string{first, second}, "firstsecond", false},
		{"duplicate paths", []string{first, first, first}, "first", false},
		{"relative and absolute", []string{"first.txt", first}, "first", false},
		{"symlink", []string{first, link}, "first", false},
		{"stdin last", []string{"-", first}, "firststdin", false},
		{"stdin collapsed", []string{"-", "-", "-"}, "stdin", false},
		{"nonexistent skipped", []string{"/nonexistent/a", second, "/nonexistent/b"}, "second", false},
		{"all nonexistent", []string{"/nonexistent/a", "/nonexistent/b"}, "", true},
		{"directory skipped", []string{dir}, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := OpenSources(strings.NewReader("stdin"), tt.sources)

			if tt.wantNil {
				if src != nil {
					t.Fatalf("OpenSources(%v) = %v, want nil", tt.sources, src)
				}

				return
			}

			if src == nil {
				t.Fatalf("OpenSources(%v) = nil", tt.sources)
			}

			defer src.Close()

			data, err := io.ReadAll(src)
			if err != nil {
				t.Fatalf("reading sources: %v", err)
			}

			if string(data) != tt.want {
				t.Errorf("read %q, want %q", data, tt.want)
			}
		})
	}
}

func TestSourcesStdin(t *testing.T) {
	stdin := strings.NewReader("x")

	if src := OpenSources(stdin, []string{"-"}); src.Stdin() != stdin {
		t.Error("Stdin() did not return the stdin reader")
	}

	dir := t.TempDir()
	p := filepath.Join(dir, "f")

	if err := os.WriteFile(p, nil, 0o600); err != nil {
		t.Fatal(err)
	}

	src := OpenSources(stdin, []string{p})
	defer src.Close()

	if src.Stdin() != nil {
		t.Error("Stdin() is not nil without '-'")
	}

	if src.IsZero() {
		t.Error("IsZero() with one file = true")
	}
}
