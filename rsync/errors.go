package rsync

import "errors"

// ErrCorrupt indicates the delta payload is not a syntactically valid
// sequence of rsync operations, mirroring binarydist.ErrCorrupt.
var ErrCorrupt = errors.New("rsync: corrupt delta")

// ErrMismatchedBase indicates the delta payload references a block index
// or span that doesn't exist in the supplied before buffer.
var ErrMismatchedBase = errors.New("rsync: delta references block range absent from before")
