package preview

import "errors"

// Sentinel errors.
var (
	ErrOutOfBounds = errors.New("index out of range")
	ErrNoCatalog   = errors.New("no style catalog")
)
