// Package style holds the process-wide registry of terminal display
// attributes and encodes flag combinations as SGR parameter text.
//
// # Flags
//
// Every flag belongs to one of three categories, enumerated in a fixed order:
// [CategoryAttr] (reset, bold, dim, ...), [CategoryColor] (foreground) and
// [CategoryFill] (background). Each flag is assigned a unique power-of-two
// [Combination] by walking the categories in that order, so flags of
// different categories never collide:
//
//	style.Bold | style.FgRed | style.BgWhite
//
// The registry is built exactly once, on first use, and is read-only
// afterwards. It is safe for concurrent use.
//
// # Encoding
//
// [Encode] turns a combination into the semicolon-delimited codes expected
// between "ESC[" and "m":
//
//	codes, err := style.Encode(style.Bold | style.FgRed) // "1;91"
//
// Combinations at or above [Limit] are rejected with [ErrOutOfRange].
//
// # Expressions
//
// [Parse] evaluates a small expression language over flag names, used by
// theme files and the command line:
//
//	bold + fg.red + bg.white
//	underline + attr.blink
//
// Attribute names may be written bare or under "attr"; foreground and
// background colors are written under "fg" and "bg". The + operator combines
// flags.
package style
