package theme

import "github.com/ardnew/ecstasy/markup"

// Predefined errors (sentinel values).
var (
	ErrEntry    = markup.NewError("unrecognized catalog element")
	ErrDecode   = markup.NewError("invalid theme document")
	ErrNotFound = markup.NewError("theme not found")
)
