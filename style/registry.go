package style

import (
	"iter"
	"log/slog"
	"slices"
	"strconv"
	"strings"
	"sync"
)

// Combination is a bitwise-OR'd set of flags.
type Combination uint64

// Has reports whether every bit of f is set in c.
func (c Combination) Has(f Combination) bool { return f != 0 && c&f == f }

// Category groups flags that affect the same aspect of displayed text.
type Category int

// Flag categories, in the order their bits are assigned and encoded.
const (
	CategoryAttr Category = iota
	CategoryColor
	CategoryFill
)

var categoryName = [...]string{
	CategoryAttr:  "attr",
	CategoryColor: "color",
	CategoryFill:  "fill",
}

// Categories returns every category in declared order.
func Categories() []Category {
	return []Category{CategoryAttr, CategoryColor, CategoryFill}
}

func (c Category) String() string {
	if c < 0 || int(c) >= len(categoryName) {
		return "category(" + strconv.Itoa(int(c)) + ")"
	}

	return categoryName[c]
}

// ParseCategory returns the category with the given name.
// The foreground and background aliases "fg" and "bg" are accepted.
func ParseCategory(s string) (Category, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "attr", "attribute":
		return CategoryAttr, true
	case "color", "fg", "foreground":
		return CategoryColor, true
	case "fill", "bg", "background":
		return CategoryFill, true
	}

	return 0, false
}

// Flag is a single named display attribute.
type Flag struct {
	Category Category
	Name     string
	Code     int
	Bit      Combination
}

func (f Flag) String() string { return f.Category.String() + "." + f.Name }

type flagDef struct {
	name string
	code int
}

// colors lists the 17 color names shared by foreground and background.
// Background codes are the foreground codes plus 10.
var colors = []flagDef{
	{"default", 39},
	{"black", 30},
	{"darkred", 31},
	{"darkgreen", 32},
	{"darkyellow", 33},
	{"darkblue", 34},
	{"darkmagenta", 35},
	{"darkcyan", 36},
	{"gray", 37},
	{"darkgray", 90},
	{"red", 91},
	{"green", 92},
	{"yellow", 93},
	{"blue", 94},
	{"magenta", 95},
	{"cyan", 96},
	{"white", 97},
}

func table() [][]flagDef {
	attr := []flagDef{
		{"reset", 0},
		{"bold", 1},
		{"dim", 2},
		{"underline", 4},
		{"blink", 5},
		{"invert", 7},
		{"hidden", 8},
	}

	fill := make([]flagDef, len(colors))
	for i, c := range colors {
		fill[i] = flagDef{c.name, c.code + 10}
	}

	return [][]flagDef{
		CategoryAttr:  attr,
		CategoryColor: slices.Clone(colors),
		CategoryFill:  fill,
	}
}

// Registry is the immutable set of known flags.
type Registry struct {
	flags []Flag
	index [len(categoryName)]map[string]int
	limit Combination
}

// Default returns the process-wide registry, building it on first use.
var Default = sync.OnceValue(func() *Registry { return build(table()) })

func build(groups [][]flagDef) *Registry {
	r := &Registry{}

	bit := Combination(1)

	for cat, defs := range groups {
		r.index[cat] = make(map[string]int, len(defs))

		for _, d := range defs {
			r.index[cat][d.name] = len(r.flags)
			r.flags = append(r.flags, Flag{
				Category: Category(cat),
				Name:     d.name,
				Code:     d.code,
				Bit:      bit,
			})
			bit <<= 1
		}
	}

	r.limit = bit

	return r
}

// Limit returns one past the highest assignable bit.
func (r *Registry) Limit() Combination { return r.limit }

// Valid reports whether c is within [0, Limit).
func (r *Registry) Valid(c Combination) bool { return c < r.limit }

// Len returns the number of flags.
func (r *Registry) Len() int { return len(r.flags) }

// Flags yields every flag in declared order.
func (r *Registry) Flags() iter.Seq[Flag] {
	return func(yield func(Flag) bool) {
		for _, f := range r.flags {
			if !yield(f) {
				return
			}
		}
	}
}

// Lookup returns the flag with the given name in category cat.
// Names are matched case-insensitively.
func (r *Registry) Lookup(cat Category, name string) (Flag, bool) {
	if cat < 0 || int(cat) >= len(r.index) {
		return Flag{}, false
	}

	i, ok := r.index[cat][strings.ToLower(name)]
	if !ok {
		return Flag{}, false
	}

	return r.flags[i], true
}

// Names returns the flag names of category cat in declared order.
func (r *Registry) Names(cat Category) []string {
	var names []string

	for f := range r.Flags() {
		if f.Category == cat {
			names = append(names, f.Name)
		}
	}

	return names
}

// Encode returns the semicolon-joined codes of every flag set in c,
// ordered by category and then by declaration.
func (r *Registry) Encode(c Combination) (string, error) {
	if !r.Valid(c) {
		return "", ErrOutOfRange.With(
			slog.Uint64("combination", uint64(c)),
			slog.Uint64("limit", uint64(r.limit)),
		)
	}

	var sb strings.Builder

	for _, f := range r.flags {
		if c&f.Bit == 0 {
			continue
		}

		if sb.Len() > 0 {
			sb.WriteByte(';')
		}

		sb.WriteString(strconv.Itoa(f.Code))
	}

	return sb.String(), nil
}

// Decompose returns the flags set in c in encoding order.
func (r *Registry) Decompose(c Combination) []Flag {
	var set []Flag

	for _, f := range r.flags {
		if c&f.Bit != 0 {
			set = append(set, f)
		}
	}

	return set
}

// Encode encodes c with the default registry.
func Encode(c Combination) (string, error) { return Default().Encode(c) }

// Valid reports whether c is valid in the default registry.
func Valid(c Combination) bool { return Default().Valid(c) }

// Limit returns the default registry's limit.
func Limit() Combination { return Default().Limit() }

// String renders c as a style expression accepted by [Parse].
func (c Combination) String() string {
	if !Valid(c) {
		return strconv.FormatUint(uint64(c), 10)
	}

	set := Default().Decompose(c)
	if len(set) == 0 {
		return "0"
	}

	part := make([]string, len(set))

	for i, f := range set {
		switch f.Category {
		case CategoryAttr:
			part[i] = f.Name
		case CategoryColor:
			part[i] = "fg." + f.Name
		case CategoryFill:
			part[i] = "bg." + f.Name
		}
	}

	return strings.Join(part, " + ")
}
