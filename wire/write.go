package wire

import "io"

// WriteContext accumulates a container's bytes in the order its fields are
// written. It never returns partial writes: Err must be checked once at the
// end, the same "accumulate, check once" shape wharf's WriteContext uses
// around its writer.
type WriteContext struct {
	w   io.Writer
	err error
}

// NewWriteContext wraps w for sequential field writes.
func NewWriteContext(w io.Writer) *WriteContext {
	return &WriteContext{w: w}
}

// Err returns the first error encountered by any Write* call, if any.
func (c *WriteContext) Err() error {
	return c.err
}

func (c *WriteContext) write(p []byte) {
	if c.err != nil {
		return
	}
	_, c.err = c.w.Write(p)
}

// Magic writes a fixed 4-byte format tag, e.g. "FDP1".
func (c *WriteContext) Magic(tag string) {
	if len(tag) != 4 {
		panic("wire: magic must be exactly 4 bytes")
	}
	c.write([]byte(tag))
}

// Uint8 writes a single byte, typically an algorithm or operation tag.
func (c *WriteContext) Uint8(v uint8) {
	c.write([]byte{v})
}

// Uint32 writes a 4-byte little-endian unsigned integer.
func (c *WriteContext) Uint32(v uint32) {
	var buf [4]byte
	Endianness.PutUint32(buf[:], v)
	c.write(buf[:])
}

// Uint64 writes an 8-byte little-endian unsigned integer.
func (c *WriteContext) Uint64(v uint64) {
	var buf [8]byte
	Endianness.PutUint64(buf[:], v)
	c.write(buf[:])
}

// Bytes writes raw bytes with no length prefix — used for fixed-width
// fields like fingerprints, where the reader already knows the size.
func (c *WriteContext) Bytes(b []byte) {
	c.write(b)
}

// Blob32 writes a 4-byte length prefix followed by b, for fields whose
// size fits comfortably in 32 bits (e.g. an archive entry path).
func (c *WriteContext) Blob32(b []byte) {
	c.Uint32(uint32(len(b)))
	c.write(b)
}

// Blob64 writes an 8-byte length prefix followed by b, for fields that may
// be arbitrarily large (e.g. a patch payload or an added file's contents).
func (c *WriteContext) Blob64(b []byte) {
	c.Uint64(uint64(len(b)))
	c.write(b)
}
