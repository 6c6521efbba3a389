package style

import (
	"errors"
	"strings"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want Combination
	}{
		{"bare attribute", "bold", Bold},
		{"attr namespace", "attr.blink", Blink},
		{"foreground", "fg.red", FgRed},
		{"background", "bg.darkblue", BgDarkBlue},
		{"combined", "bold + fg.red + bg.white", Bold | FgRed | BgWhite},
		{"repeated flag", "bold + bold", Bold},
		{"integer literal", "2", Bold},
		{"integer with flag", "underline + 2", Underline | Bold},
		{"integer first", "2 + underline", Underline | Bold},
		{"case folded", "Bold + FG.Red", Bold | FgRed},
		{"parenthesized", "(dim + fg.cyan) + invert", Dim | FgCyan | Invert},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.src)
			if err != nil {
				t.Fatalf("Parse(%q) error: %v", tt.src, err)
			}

			if got != tt.want {
				t.Errorf("Parse(%q) = %#x, want %#x", tt.src, uint64(got), uint64(tt.want))
			}
		})
	}
}

func TestParse_UnknownName(t *testing.T) {
	tests := []struct {
		src     string
		missing string
	}{
		{"bolt", "bolt"},
		{"fg.rde", "fg.rde"},
		{"bold + bg.purple", "bg.purple"},
	}

	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			_, err := Parse(tt.src)
			if !errors.Is(err, ErrUnknownName) {
				t.Fatalf("Parse(%q) error = %v, want ErrUnknownName", tt.src, err)
			}

			if !strings.Contains(err.Error(), tt.missing) {
				t.Errorf("error %q does not name %q", err, tt.missing)
			}
		})
	}
}

func TestParse_Suggestions(t *testing.T) {
	_, err := Parse("undrline")

	var e *Error
	if !errors.As(err, &e) {
		t.Fatalf("Parse error = %v, want *Error", err)
	}

	if !strings.Contains(e.LogValue().String(), "underline") {
		t.Errorf("suggestions %v do not include underline", e.LogValue())
	}
}

func TestParse_Invalid(t *testing.T) {
	for _, src := range []string{"", "   ", "bold +", `"bold"`} {
		if _, err := Parse(src); !errors.Is(err, ErrInvalidExpr) {
			t.Errorf("Parse(%q) error = %v, want ErrInvalidExpr", src, err)
		}
	}
}

func TestParse_NotCombination(t *testing.T) {
	for _, src := range []string{"1 == 1", `"bold"`, "1.5"} {
		_, err := Parse(src)
		if !errors.Is(err, ErrInvalidExpr) {
			t.Errorf("Parse(%q) error = %v, want ErrInvalidExpr", src, err)
		}
	}
}

func TestParse_OutOfRange(t *testing.T) {
	for _, src := range []string{"2199023255552", "-1"} {
		if _, err := Parse(src); !errors.Is(err, ErrOutOfRange) {
			t.Errorf("Parse(%q) error = %v, want ErrOutOfRange", src, err)
		}
	}
}

func TestError_Is(t *testing.T) {
	err := ErrOutOfRange.With().Wrap(errors.New("cause"))

	if !errors.Is(err, ErrOutOfRange) {
		t.Error("derived error is not ErrOutOfRange")
	}

	if errors.Is(err, ErrUnknownName) {
		t.Error("derived error matched another sentinel")
	}

	if got, want := err.Error(), "flag combination out of range: cause"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}
