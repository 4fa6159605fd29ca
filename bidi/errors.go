package bidi

import "errors"

// ErrCorrupt indicates the delta payload is not a syntactically valid
// sequence of bidi records.
var ErrCorrupt = errors.New("bidi: corrupt delta")

// ErrMismatchedBase indicates the delta payload references a copy
// region that doesn't exist in the supplied before buffer.
var ErrMismatchedBase = errors.New("bidi: delta references a byte range absent from before")
