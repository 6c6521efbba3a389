package markup

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/ardnew/ecstasy/style"
)

// Control sequence framing of a styled phrase.
const (
	csi      = "\033["
	sgrEnd   = "m"
	resetSGR = csi + "0;"
)

// Result is the outcome of [Beautify].
type Result struct {
	Text        string
	Diagnostics []Diagnostic
	Tree        *Tree
}

// Beautify scans text and renders it with the styles of cat.
func Beautify(
	ctx context.Context,
	text string,
	cat *Catalog,
	opts ...Option,
) (Result, error) {
	tree, err := Parse(ctx, text, opts...)
	if err != nil {
		return Result{}, err
	}

	out, err := tree.Render(ctx, cat)
	if err != nil {
		return Result{}, err
	}

	return Result{Text: out, Diagnostics: tree.Diagnostics(), Tree: tree}, nil
}

// renderer writes one tree with one selector.
type renderer struct {
	ctx  context.Context
	tree *Tree
	sel  *selector
	reg  *style.Registry
	sb   strings.Builder
}

// Render decorates the tree's text with the styles of cat.
//
// Phrases are styled depth-first in document order. Each phrase is wrapped
// as ESC[<codes>m<text>ESC[0;<parent codes>m, so leaving a nested phrase
// restores the style of the phrase enclosing it. Each call resolves
// positional styles from the start of the catalog.
func (t *Tree) Render(ctx context.Context, cat *Catalog) (string, error) {
	if len(t.roots) == 0 {
		return t.text, nil
	}

	if cat.Empty() {
		return "", ErrNoStyles.With(slog.Int("phrases", t.Len()))
	}

	r := &renderer{
		ctx:  ctx,
		tree: t,
		sel:  &selector{cat: cat},
		reg:  style.Default(),
	}

	r.sb.Grow(len(t.text) + t.Len()*16)

	if err := r.span(0, len(t.text), t.roots, ""); err != nil {
		t.cfg.logger.DebugContext(ctx, "render failed", slog.Any("error", err))

		return "", err
	}

	t.cfg.logger.TraceContext(ctx, "rendered",
		slog.Int("phrases", t.Len()),
		slog.Int("cursor", r.sel.cursor))

	return r.sb.String(), nil
}

// span writes t.text[from:to], styling the phrases ids found in it.
func (r *renderer) span(from, to int, ids []PhraseID, parent string) error {
	closeLen := runeLen(r.tree.cfg.close)

	for _, id := range ids {
		p := r.tree.phrases[id]

		r.sb.WriteString(r.tree.text[from:p.Open])

		c, err := r.sel.styleOf(p)
		if err != nil {
			var e *Error
			if errors.As(err, &e) {
				err = e.With(slog.Any("pos", p.Position))
			}

			return err
		}

		codes, err := r.reg.Encode(c)
		if err != nil {
			return ErrFlag.With(slog.Any("pos", p.Position)).Wrap(err)
		}

		r.tree.cfg.logger.TraceContext(r.ctx, "style",
			slog.Int("id", int(id)),
			slog.String("text", p.Text),
			slog.String("codes", codes))

		r.sb.WriteString(csi)
		r.sb.WriteString(codes)
		r.sb.WriteString(sgrEnd)

		start, end := r.tree.content(p)
		if err := r.span(start, end, p.Children, codes); err != nil {
			return err
		}

		r.sb.WriteString(resetSGR)
		r.sb.WriteString(parent)
		r.sb.WriteString(sgrEnd)

		from = p.Close + closeLen
	}

	r.sb.WriteString(r.tree.text[from:to])

	return nil
}
