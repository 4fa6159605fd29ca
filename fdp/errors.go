// Package fdp wires the fingerprint, delta-codec and compressor
// components into the patch pipeline and its two binary containers:
// Patch, for a single before/after pair, and PatchSet, for a whole ZIP
// archive's worth of per-entry operations. See archivediff for the
// archive-level driver built on top of this package.
package fdp

import "errors"

// Sentinel error kinds. Every error this package returns satisfies
// errors.Is against exactly one of these, so callers can distinguish
// cases without string-matching error messages.
var (
	// ErrMismatchedBase means the supplied before buffer's fingerprint
	// doesn't match the one recorded in the patch, or (in archivediff)
	// that an apply step can't resolve a patch-set entry against the
	// before archive.
	ErrMismatchedBase = errors.New("fdp: before does not match patch's recorded fingerprint")

	// ErrCorruptDelta means a delta payload is syntactically invalid,
	// a compressed frame is truncated, or a decoded result's fingerprint
	// disagrees with the patch's after_fingerprint.
	ErrCorruptDelta = errors.New("fdp: delta payload is corrupt")

	// ErrCorruptFormat means a Patch or PatchSet container is truncated,
	// has the wrong magic, or otherwise violates the schema.
	ErrCorruptFormat = errors.New("fdp: container is corrupt or truncated")

	// ErrUnsupportedAlgorithm means an algorithm tag is syntactically
	// valid but not one this version of the package implements.
	ErrUnsupportedAlgorithm = errors.New("fdp: unsupported algorithm tag")

	// ErrIncompletePatchSet means the before archive has a path the
	// patch set doesn't account for.
	ErrIncompletePatchSet = errors.New("fdp: patch set does not cover every entry of the before archive")
)
