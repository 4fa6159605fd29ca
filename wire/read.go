package wire

import (
	"errors"
	"io"
)

// ErrMagicMismatch is returned by ExpectMagic when the leading 4 bytes of
// the input don't match the expected format tag.
var ErrMagicMismatch = errors.New("wire: magic mismatch")

// ErrTruncated is returned whenever a read runs past the end of the input
// before a field is complete. Callers map this to their own "corrupt
// format" error kind.
var ErrTruncated = errors.New("wire: truncated input")

// ReadContext consumes a container's bytes in the order its fields were
// written. Like WriteContext, it latches the first error and every
// subsequent call becomes a no-op, so callers can chain several reads and
// check Err() once.
type ReadContext struct {
	r   io.Reader
	err error
}

// NewReadContext wraps r for sequential field reads.
func NewReadContext(r io.Reader) *ReadContext {
	return &ReadContext{r: r}
}

// Err returns the first error encountered by any read call, if any.
func (c *ReadContext) Err() error {
	return c.err
}

func (c *ReadContext) read(p []byte) {
	if c.err != nil {
		return
	}
	_, err := io.ReadFull(c.r, p)
	if err != nil {
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			c.err = ErrTruncated
		} else {
			c.err = err
		}
	}
}

// ExpectMagic reads 4 bytes and fails with ErrMagicMismatch if they don't
// equal tag.
func (c *ReadContext) ExpectMagic(tag string) {
	if len(tag) != 4 {
		panic("wire: magic must be exactly 4 bytes")
	}
	var buf [4]byte
	c.read(buf[:])
	if c.err != nil {
		return
	}
	if string(buf[:]) != tag {
		c.err = ErrMagicMismatch
	}
}

// Uint8 reads a single byte.
func (c *ReadContext) Uint8() uint8 {
	var buf [1]byte
	c.read(buf[:])
	return buf[0]
}

// Uint32 reads a 4-byte little-endian unsigned integer.
func (c *ReadContext) Uint32() uint32 {
	var buf [4]byte
	c.read(buf[:])
	if c.err != nil {
		return 0
	}
	return Endianness.Uint32(buf[:])
}

// Uint64 reads an 8-byte little-endian unsigned integer.
func (c *ReadContext) Uint64() uint64 {
	var buf [8]byte
	c.read(buf[:])
	if c.err != nil {
		return 0
	}
	return Endianness.Uint64(buf[:])
}

// Bytes reads exactly n raw bytes.
func (c *ReadContext) Bytes(n int) []byte {
	if n < 0 || n > MaxBlobSize {
		c.err = ErrTruncated
		return nil
	}
	buf := make([]byte, n)
	c.read(buf)
	if c.err != nil {
		return nil
	}
	return buf
}

// Blob32 reads a 4-byte length prefix followed by that many bytes.
func (c *ReadContext) Blob32() []byte {
	n := c.Uint32()
	if c.err != nil {
		return nil
	}
	return c.Bytes(int(n))
}

// Blob64 reads an 8-byte length prefix followed by that many bytes.
func (c *ReadContext) Blob64() []byte {
	n := c.Uint64()
	if c.err != nil {
		return nil
	}
	return c.Bytes(int(n))
}
