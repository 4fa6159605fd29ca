package fdp

import (
	"bytes"
	"io"

	"github.com/pkg/errors"

	"github.com/wharfpatch/fdp/wire"
)

// patchSetMagic is the version 1 schema tag for a PatchSet container
// (§6.3).
const patchSetMagic = "FDS1"

// Operation tags are a closed set (§3): exactly one of Modified, Added,
// Deleted, Unchanged per archive entry path.
type Operation interface {
	opTag() uint8
}

// Modified records that a path exists in both archives with differing
// content; Patch reconstructs after's bytes from before's.
type Modified struct {
	Patch *Patch
}

// Added records that a path exists only in the after archive; Data is
// its literal content.
type Added struct {
	Data []byte
}

// Deleted records that a path exists only in the before archive.
type Deleted struct{}

// Unchanged records that a path exists in both archives with identical
// content (by fingerprint).
type Unchanged struct{}

func (Modified) opTag() uint8  { return 0 }
func (Added) opTag() uint8     { return 1 }
func (Deleted) opTag() uint8   { return 2 }
func (Unchanged) opTag() uint8 { return 3 }

// PatchSetEntry pairs an archive entry path with its Operation. PatchSet
// keeps these in lexicographic path order, per §3's PatchSet invariant —
// the order is part of the format, not an incidental property of how
// entries were produced.
type PatchSetEntry struct {
	Path      string
	Operation Operation
}

// PatchSet is an ordered path→Operation mapping describing a whole
// archive's worth of per-entry changes (§3).
type PatchSet struct {
	Entries []PatchSetEntry
}

// ToBytes serializes ps to the byte-exact layout of §6.3, in the order
// its Entries slice is already in (archivediff is responsible for
// building that slice in lexicographic order; ToBytes trusts it, the
// same way it doesn't re-sort a Patch's already-fixed fields).
func (ps *PatchSet) ToBytes() []byte {
	var buf bytes.Buffer
	w := wire.NewWriteContext(&buf)
	w.Magic(patchSetMagic)
	w.Uint64(uint64(len(ps.Entries)))

	for _, entry := range ps.Entries {
		w.Blob32([]byte(entry.Path))
		w.Uint8(entry.Operation.opTag())

		switch op := entry.Operation.(type) {
		case Modified:
			w.Bytes(op.Patch.ToBytes())
		case Added:
			w.Blob64(op.Data)
		case Deleted, Unchanged:
			// empty op_body
		}
	}
	return buf.Bytes()
}

// PatchSetFromBytes parses a PatchSet container.
func PatchSetFromBytes(b []byte) (*PatchSet, error) {
	br := bytes.NewReader(b)
	r := wire.NewReadContext(br)
	r.ExpectMagic(patchSetMagic)
	count := r.Uint64()
	if err := r.Err(); err != nil {
		return nil, errors.Wrap(ErrCorruptFormat, err.Error())
	}

	entries := make([]PatchSetEntry, 0, count)
	for i := uint64(0); i < count; i++ {
		path := r.Blob32()
		opTag := r.Uint8()
		if err := r.Err(); err != nil {
			return nil, errors.Wrap(ErrCorruptFormat, err.Error())
		}

		var op Operation
		switch opTag {
		case 0:
			// A Modified entry embeds a full Patch container; since we
			// don't know its length up front, readEmbeddedPatch reads its
			// fixed header for payload_len and then consumes exactly
			// that one Patch from br.
			patch, err := readEmbeddedPatch(br)
			if err != nil {
				return nil, err
			}
			op = Modified{Patch: patch}
		case 1:
			data := r.Blob64()
			if err := r.Err(); err != nil {
				return nil, errors.Wrap(ErrCorruptFormat, err.Error())
			}
			op = Added{Data: data}
		case 2:
			op = Deleted{}
		case 3:
			op = Unchanged{}
		default:
			return nil, errors.Wrapf(ErrUnsupportedAlgorithm, "patch set op tag %d", opTag)
		}

		entries = append(entries, PatchSetEntry{Path: string(path), Operation: op})
	}

	if r.Err() != nil {
		return nil, errors.Wrap(ErrCorruptFormat, r.Err().Error())
	}

	return &PatchSet{Entries: entries}, nil
}

// readEmbeddedPatch parses one Patch container starting at br's current
// position, leaving br positioned right after it. PatchFromBytes wants a
// []byte, not a reader, so this peeks the Patch's fixed header to learn
// payload_len, slices exactly magic+header+payload out of br, and hands
// that to PatchFromBytes.
func readEmbeddedPatch(br *bytes.Reader) (*Patch, error) {
	const fixedHeaderLen = 4 + 1 + 1 + 1 + 16 + 16 + 8 // magic..payload_len
	header := make([]byte, fixedHeaderLen)
	if _, err := io.ReadFull(br, header); err != nil {
		return nil, errors.Wrap(ErrCorruptFormat, "truncated embedded patch header")
	}

	payloadLen := wire.Endianness.Uint64(header[fixedHeaderLen-8:])
	if payloadLen > wire.MaxBlobSize {
		return nil, errors.Wrap(ErrCorruptFormat, "embedded patch payload length exceeds maximum")
	}
	payload := make([]byte, payloadLen)
	if payloadLen > 0 {
		if _, err := io.ReadFull(br, payload); err != nil {
			return nil, errors.Wrap(ErrCorruptFormat, "truncated embedded patch payload")
		}
	}

	full := make([]byte, 0, fixedHeaderLen+int(payloadLen))
	full = append(full, header...)
	full = append(full, payload...)

	return PatchFromBytes(full)
}
