// Package wire provides the low-level binary framing fdp's container
// formats are built on: magic tags, fixed-width integers, and
// length-prefixed byte strings, all little-endian. It plays the same role
// as wharf's own wire package (WriteContext/ReadContext pairs with
// ExpectMagic-style guards) but reads and writes explicit fields instead
// of protobuf messages — spec.md §9 calls for defining the on-disk layout
// explicitly rather than reusing a reflection serializer, so this package
// has no dependency on golang/protobuf.
package wire

import "encoding/binary"

// Endianness is the byte order used by every fdp container format.
var Endianness = binary.LittleEndian

// MaxBlobSize bounds any single length-prefixed or length-implied field a
// caller parses out of a container, so a corrupted length doesn't turn
// into an attempt to allocate gigabytes before a read has a chance to
// fail on truncation.
const MaxBlobSize = 1 << 31
