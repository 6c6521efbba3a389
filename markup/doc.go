// Package markup decorates text containing lightweight markup with terminal
// display attributes.
//
// A phrase is a region bounded by delimiters, "<" and ">" by default.
// Phrases nest. Each phrase is assigned a [style.Combination] from a
// [Catalog]:
//
//   - by order of appearance: the first implicit phrase takes the first
//     positional style, the next takes the second, and so on, depth-first;
//   - by name: a phrase whose text is bound in the catalog takes that style;
//   - by position: an argument sequence at the very start of a phrase names
//     positional styles to combine, e.g. "<(0,2)text>", with negative indices
//     counting from the end.
//
// An argument sequence may carry an override marker "!", which ignores any
// style bound to the phrase's text, and an increment marker "+", which
// advances the positional cursor even when a named style applies:
//
//	cat := markup.MustCatalog(
//		markup.Styles(style.Bold, style.FgRed),
//		markup.Alias(style.Underline, "TODO", "FIXME"),
//	)
//
//	res, err := markup.Beautify(ctx, "<hello> <world>, <TODO>", cat)
//
// A meta character preceded by an escape marker ("\" by default) is
// literal. Stray meta characters are kept literally and reported as
// [Diagnostic] values alongside the result.
//
// Scanning and rendering are separate: [Parse] returns a [Tree] that can be
// inspected and rendered with any number of catalogs. A [Catalog] is
// immutable and may be shared by concurrent renders.
package markup
