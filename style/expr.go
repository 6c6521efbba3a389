package style

import (
	"log/slog"
	"strings"
	"sync"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/ast"
	"github.com/sahilm/fuzzy"
)

// maxSuggestions bounds the names offered for an unknown identifier.
const maxSuggestions = 3

// Member namespaces accepted in expressions.
const (
	nsAttr = "attr"
	nsFg   = "fg"
	nsBg   = "bg"
)

type exprEnv struct {
	vars  map[string]any
	names []string // every spelling accepted, for suggestions
}

var defaultEnv = sync.OnceValue(func() *exprEnv { return newExprEnv(Default()) })

func newExprEnv(r *Registry) *exprEnv {
	ns := map[string]map[string]Combination{
		nsAttr: {},
		nsFg:   {},
		nsBg:   {},
	}

	env := &exprEnv{vars: make(map[string]any, r.Len()+len(ns))}

	for f := range r.Flags() {
		switch f.Category {
		case CategoryAttr:
			ns[nsAttr][f.Name] = f.Bit
			env.vars[f.Name] = f.Bit
			env.names = append(env.names, f.Name, nsAttr+"."+f.Name)
		case CategoryColor:
			ns[nsFg][f.Name] = f.Bit
			env.names = append(env.names, nsFg+"."+f.Name)
		case CategoryFill:
			ns[nsBg][f.Name] = f.Bit
			env.names = append(env.names, nsBg+"."+f.Name)
		}
	}

	for k, m := range ns {
		env.vars[k] = m
	}

	return env
}

// suggest returns the accepted names closest to name.
func (e *exprEnv) suggest(name string) []string {
	matches := fuzzy.Find(strings.ToLower(name), e.names)
	out := make([]string, 0, min(len(matches), maxSuggestions))

	for _, m := range matches {
		if len(out) == maxSuggestions {
			break
		}

		out = append(out, m.Str)
	}

	return out
}

// namePatcher folds identifiers to their registered spelling and records
// every name that is not registered.
type namePatcher struct {
	env     *exprEnv
	unknown []string
	seen    map[string]bool
}

// Visit implements ast.Visitor.
func (p *namePatcher) Visit(node *ast.Node) {
	switch n := (*node).(type) {
	case *ast.IdentifierNode:
		if _, ok := p.env.vars[n.Value]; ok {
			return
		}

		if lower := strings.ToLower(n.Value); p.has(lower) {
			ast.Patch(node, &ast.IdentifierNode{Value: lower})

			return
		}

		p.miss(n.Value)

	case *ast.MemberNode:
		id, ok := n.Node.(*ast.IdentifierNode)
		if !ok {
			return
		}

		m, ok := p.env.vars[strings.ToLower(id.Value)].(map[string]Combination)
		if !ok {
			return
		}

		prop, ok := n.Property.(*ast.StringNode)
		if !ok {
			p.miss(id.Value + "[?]")

			return
		}

		if _, ok := m[prop.Value]; ok {
			return
		}

		if lower := strings.ToLower(prop.Value); m[lower] != 0 {
			ast.Patch(node, &ast.MemberNode{
				Node:     n.Node,
				Property: &ast.StringNode{Value: lower},
			})

			return
		}

		p.miss(id.Value + "." + prop.Value)
	}
}

func (p *namePatcher) has(name string) bool {
	_, ok := p.env.vars[name]

	return ok
}

func (p *namePatcher) miss(name string) {
	if p.seen == nil {
		p.seen = map[string]bool{}
	}

	if p.seen[name] {
		return
	}

	p.seen[name] = true
	p.unknown = append(p.unknown, name)
}

func combine(params ...any) (any, error) {
	var c Combination

	for _, p := range params {
		switch v := p.(type) {
		case Combination:
			c |= v
		case int:
			if v < 0 {
				return nil, ErrOutOfRange.With(slog.Int("value", v))
			}

			c |= Combination(v)
		}
	}

	return c, nil
}

// Parse evaluates a style expression against the default registry.
func Parse(src string) (Combination, error) {
	return parse(defaultEnv(), src)
}

// MustParse is like [Parse] but panics on error.
func MustParse(src string) Combination {
	c, err := Parse(src)
	if err != nil {
		panic(err)
	}

	return c
}

func parse(env *exprEnv, src string) (Combination, error) {
	if strings.TrimSpace(src) == "" {
		return 0, ErrInvalidExpr.With(slog.String("expr", src))
	}

	names := &namePatcher{env: env}

	program, err := expr.Compile(src,
		expr.Env(env.vars),
		expr.Function("combine", combine,
			new(func(Combination, Combination) Combination),
			new(func(Combination, int) Combination),
			new(func(int, Combination) Combination),
		),
		expr.Patch(names),
		expr.Operator("+", "combine"),
	)

	if len(names.unknown) > 0 {
		attrs := []slog.Attr{slog.String("expr", src)}

		for _, u := range names.unknown {
			attrs = append(attrs, slog.Group(u,
				slog.Any("suggest", env.suggest(u))))
		}

		return 0, ErrUnknownName.With(attrs...).Wrap(unknownNames(names.unknown))
	}

	if err != nil {
		return 0, ErrInvalidExpr.With(slog.String("expr", src)).Wrap(err)
	}

	out, err := expr.Run(program, env.vars)
	if err != nil {
		return 0, ErrInvalidExpr.With(slog.String("expr", src)).Wrap(err)
	}

	c, cerr := toCombination(out)
	if cerr != nil {
		return 0, cerr.With(slog.String("expr", src))
	}

	if !Default().Valid(c) {
		return 0, ErrOutOfRange.With(
			slog.String("expr", src),
			slog.Uint64("combination", uint64(c)),
		)
	}

	return c, nil
}

func toCombination(v any) (Combination, *Error) {
	switch n := v.(type) {
	case Combination:
		return n, nil
	case int:
		if n < 0 {
			return 0, ErrOutOfRange.With(slog.Int("value", n))
		}

		return Combination(n), nil
	case int64:
		if n < 0 {
			return 0, ErrOutOfRange.With(slog.Int64("value", n))
		}

		return Combination(n), nil
	case uint64:
		return Combination(n), nil
	}

	return 0, ErrInvalidExpr.With(slog.Any("result", v))
}

type unknownNames []string

func (u unknownNames) Error() string { return strings.Join(u, ", ") }
