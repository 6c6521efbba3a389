package markup

import (
	"fmt"
	"log/slog"
	"maps"
	"slices"

	"github.com/ardnew/ecstasy/style"
)

// Catalog is an immutable set of styles: an ordered positional list and a
// table of defaults keyed by phrase text.
type Catalog struct {
	positional []style.Combination
	always     map[string]style.Combination
}

// Entry contributes styles to a [Catalog].
type Entry interface {
	apply(*Catalog)
}

type single style.Combination

func (e single) apply(c *Catalog) {
	c.positional = append(c.positional, style.Combination(e))
}

type list []style.Combination

func (e list) apply(c *Catalog) { c.positional = append(c.positional, e...) }

type named map[string]style.Combination

func (e named) apply(c *Catalog) {
	maps.Copy(c.always, e)
}

type alias struct {
	style style.Combination
	names []string
}

func (e alias) apply(c *Catalog) {
	for _, name := range e.names {
		c.always[name] = e.style
	}
}

// Style returns an entry appending one positional style.
func Style(c style.Combination) Entry { return single(c) }

// Styles returns an entry appending positional styles in order.
func Styles(cs ...style.Combination) Entry { return list(slices.Clone(cs)) }

// Named returns an entry binding each phrase text to a default style.
func Named(m map[string]style.Combination) Entry { return named(maps.Clone(m)) }

// Alias returns an entry binding several phrase texts to one default style.
func Alias(c style.Combination, names ...string) Entry {
	return alias{style: c, names: slices.Clone(names)}
}

// NewCatalog combines entries in order. Later name bindings replace earlier
// ones. Every style must be valid in the default registry.
func NewCatalog(entries ...Entry) (*Catalog, error) {
	c := &Catalog{always: map[string]style.Combination{}}

	for _, e := range entries {
		if e != nil {
			e.apply(c)
		}
	}

	reg := style.Default()

	for i, v := range c.positional {
		if !reg.Valid(v) {
			return nil, ErrFlag.With(
				slog.Int("position", i),
				slog.Uint64("value", uint64(v)),
			).Wrap(fmt.Errorf("flag value %d is out of range", uint64(v)))
		}
	}

	for _, k := range slices.Sorted(maps.Keys(c.always)) {
		if v := c.always[k]; !reg.Valid(v) {
			return nil, ErrFlag.With(
				slog.String("name", k),
				slog.Uint64("value", uint64(v)),
			).Wrap(fmt.Errorf("flag value %d is out of range", uint64(v)))
		}
	}

	return c, nil
}

// MustCatalog is like [NewCatalog] but panics on error.
func MustCatalog(entries ...Entry) *Catalog {
	c, err := NewCatalog(entries...)
	if err != nil {
		panic(err)
	}

	return c
}

// Len returns the number of positional styles.
func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}

	return len(c.positional)
}

// Positional returns the style at index i, counting from the end when i is
// negative.
func (c *Catalog) Positional(i int) (style.Combination, bool) {
	if i < 0 {
		i += c.Len()
	}

	if i < 0 || i >= c.Len() {
		return 0, false
	}

	return c.positional[i], true
}

// Named returns the default style bound to name.
func (c *Catalog) Named(name string) (style.Combination, bool) {
	if c == nil {
		return 0, false
	}

	v, ok := c.always[name]

	return v, ok
}

// Names returns the names with a default style, sorted.
func (c *Catalog) Names() []string {
	if c == nil {
		return nil
	}

	return slices.Sorted(maps.Keys(c.always))
}

// Empty reports whether the catalog holds no styles at all.
func (c *Catalog) Empty() bool {
	return c == nil || len(c.positional) == 0 && len(c.always) == 0
}

// Entries returns entries reproducing c, for extending it with
// [NewCatalog].
func (c *Catalog) Entries() []Entry {
	if c == nil {
		return nil
	}

	return []Entry{Styles(c.positional...), Named(c.always)}
}

// selector resolves phrase styles against a catalog for one render call.
type selector struct {
	cat    *Catalog
	cursor int
}

// resolve combines the positional styles at indices.
func (s *selector) resolve(indices []int) (style.Combination, error) {
	var c style.Combination

	for _, i := range indices {
		v, ok := s.cat.Positional(i)
		if !ok {
			return 0, ErrArgumentRange.With(
				slog.Int("index", i),
				slog.Int("len", s.cat.Len()),
			).Wrap(fmt.Errorf("positional argument '%d' is out of range", i))
		}

		c |= v
	}

	return c, nil
}

// next returns the style at the cursor without advancing it.
func (s *selector) next(text string) (style.Combination, error) {
	if v, ok := s.cat.Positional(s.cursor); ok {
		return v, nil
	}

	n := s.cat.Len()
	verb := "were"

	if n == 1 {
		verb = "was"
	}

	return 0, ErrNotEnoughArguments.With(
		slog.Int("requested", s.cursor+1),
		slog.Int("supplied", n),
		slog.String("text", text),
	).Wrap(fmt.Errorf("requested %s formatting argument for '%s' but only %d %s supplied",
		Ordinal(s.cursor+1), text, n, verb))
}

// lookupByName returns the default style bound to a phrase's text.
func (s *selector) lookupByName(text string) (style.Combination, bool) {
	return s.cat.Named(text)
}

// styleOf determines the combination for p, advancing the cursor as needed.
func (s *selector) styleOf(p Phrase) (style.Combination, error) {
	def, hasDef := s.lookupByName(p.Text)
	useDef := hasDef && !p.Override

	if p.Explicit() {
		c, err := s.resolve(p.Arguments)
		if err != nil {
			return 0, err
		}

		if useDef {
			c |= def
		}

		return c, nil
	}

	if hasDef && !p.Increment && !p.Override {
		return def, nil
	}

	c, err := s.next(p.Text)
	if err != nil {
		return 0, err
	}

	if p.Increment || !p.Override {
		s.cursor++
	}

	if useDef {
		c |= def
	}

	return c, nil
}
