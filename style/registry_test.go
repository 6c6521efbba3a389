package style

import (
	"errors"
	"slices"
	"testing"
)

func TestRegistry_BitLayout(t *testing.T) {
	r := Default()

	if got, want := r.Len(), 41; got != want {
		t.Fatalf("Len() = %d, want %d", got, want)
	}

	if got, want := r.Limit(), Combination(1)<<41; got != want {
		t.Fatalf("Limit() = %d, want %d", got, want)
	}

	var (
		i    int
		prev = CategoryAttr
		all  Combination
	)

	for f := range r.Flags() {
		if f.Bit != Combination(1)<<i {
			t.Errorf("%s: Bit = %#x, want 1<<%d", f, uint64(f.Bit), i)
		}

		if f.Category < prev {
			t.Errorf("%s: category out of declared order", f)
		}

		if all&f.Bit != 0 {
			t.Errorf("%s: bit collides", f)
		}

		prev = f.Category
		all |= f.Bit
		i++
	}

	if all != r.Limit()-1 {
		t.Errorf("union of bits = %#x, want %#x", uint64(all), uint64(r.Limit()-1))
	}
}

func TestRegistry_DefaultIsShared(t *testing.T) {
	if Default() != Default() {
		t.Fatal("Default() returned distinct registries")
	}
}

func TestEncode(t *testing.T) {
	tests := []struct {
		name string
		in   Combination
		want string
	}{
		{"zero", 0, ""},
		{"reset", Reset, "0"},
		{"bold", Bold, "1"},
		{"bold red", Bold | FgRed, "1;91"},
		{"order independent of operands", BgWhite | FgRed | Underline, "4;91;107"},
		{"dark colors", FgDarkRed | BgDarkBlue, "31;44"},
		{"default fg and bg", FgDefault | BgDefault, "39;49"},
		{"all attrs", Reset | Bold | Dim | Underline | Blink | Invert | Hidden, "0;1;2;4;5;7;8"},
		{"highest flag", BgWhite, "107"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Encode(tt.in)
			if err != nil {
				t.Fatalf("Encode(%#x) error: %v", uint64(tt.in), err)
			}

			if got != tt.want {
				t.Errorf("Encode(%#x) = %q, want %q", uint64(tt.in), got, tt.want)
			}
		})
	}
}

func TestEncode_OutOfRange(t *testing.T) {
	for _, c := range []Combination{Limit(), Limit() | Bold, ^Combination(0)} {
		_, err := Encode(c)
		if !errors.Is(err, ErrOutOfRange) {
			t.Errorf("Encode(%#x) error = %v, want ErrOutOfRange", uint64(c), err)
		}

		if Valid(c) {
			t.Errorf("Valid(%#x) = true", uint64(c))
		}
	}

	if !Valid(Limit() - 1) {
		t.Error("Valid(Limit()-1) = false")
	}
}

func TestLookup(t *testing.T) {
	r := Default()

	f, ok := r.Lookup(CategoryFill, "DarkCyan")
	if !ok {
		t.Fatal("Lookup(fill, DarkCyan) not found")
	}

	if f.Code != 46 || f.Bit != BgDarkCyan {
		t.Errorf("Lookup(fill, DarkCyan) = %+v", f)
	}

	if _, ok := r.Lookup(CategoryAttr, "red"); ok {
		t.Error("Lookup(attr, red) found a flag")
	}

	if _, ok := r.Lookup(Category(7), "bold"); ok {
		t.Error("Lookup with invalid category found a flag")
	}
}

func TestNames(t *testing.T) {
	attrs := Default().Names(CategoryAttr)
	want := []string{"reset", "bold", "dim", "underline", "blink", "invert", "hidden"}

	if !slices.Equal(attrs, want) {
		t.Errorf("Names(attr) = %v, want %v", attrs, want)
	}

	fg, bg := Default().Names(CategoryColor), Default().Names(CategoryFill)
	if !slices.Equal(fg, bg) || len(fg) != 17 {
		t.Errorf("color and fill names differ: %v vs %v", fg, bg)
	}
}

func TestParseCategory(t *testing.T) {
	tests := map[string]Category{
		"attr": CategoryAttr,
		"FG":   CategoryColor,
		"fill": CategoryFill,
		"bg":   CategoryFill,
	}

	for in, want := range tests {
		got, ok := ParseCategory(in)
		if !ok || got != want {
			t.Errorf("ParseCategory(%q) = %v, %v; want %v", in, got, ok, want)
		}
	}

	if _, ok := ParseCategory("nope"); ok {
		t.Error("ParseCategory(nope) succeeded")
	}
}

func TestCombination_Has(t *testing.T) {
	c := Bold | FgRed

	if !c.Has(Bold) || !c.Has(FgRed) || !c.Has(Bold|FgRed) {
		t.Error("Has missed a set flag")
	}

	if c.Has(Dim) || c.Has(Bold|Dim) || c.Has(0) {
		t.Error("Has reported an unset flag")
	}
}

func TestCombination_String(t *testing.T) {
	c := Bold | FgRed | BgWhite

	if got, want := c.String(), "bold + fg.red + bg.white"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}

	back, err := Parse(c.String())
	if err != nil || back != c {
		t.Errorf("Parse(String()) = %v, %v; want %v", back, err, c)
	}
}
