package rsync

import (
	"bytes"

	"github.com/wharfpatch/fdp/wire"
)

// opKind tags the two record shapes a delta payload is built from.
type opKind uint8

const (
	opCopy opKind = iota
	opData
)

// operation is one entry of the op stream a delta payload carries: either
// a span of contiguous blocks to copy out of before, or a run of literal
// bytes that weren't found anywhere in before's signature.
type operation struct {
	kind opKind

	// set when kind == opCopy
	blockIndex int64
	span       int64

	// set when kind == opData
	data []byte
}

// Encode computes a RollingHash delta: a signature of before indexed by
// weak checksum, then a single pass over after using the classic
// rsync two-tier rolling checksum to locate block-aligned matches,
// adapted from sync.ComputeDiff.
func Encode(before, after []byte) ([]byte, error) {
	lib := newLibrary(signature(before))
	ops := computeOps(after, lib)
	return serializeOps(ops)
}

// computeOps scans after against lib, combining contiguous block matches
// into copy spans and literal runs into data records. Unlike sync's
// stream-oriented ComputeDiff, it operates directly over an in-memory
// slice with index arithmetic instead of a bufio.Scanner.
//
// The final BlockSize-sized window before the end of after is tried as a
// whole but, if unmatched, is never rolled further byte-by-byte (there's
// no full next window left to roll into) — it's flushed as literal data
// along with whatever trails it. This trades a little compression in the
// last block's neighborhood for a much simpler, unconditionally correct
// implementation; round-tripping never depends on finding that match.
func computeOps(after []byte, lib *library) []operation {
	n := len(after)
	var ops []operation
	literalStart := 0
	pos := 0

	flushLiteral := func(end int) {
		if end > literalStart {
			ops = appendData(ops, after[literalStart:end])
			literalStart = end
		}
	}

	var a, b, w uint32
	haveWindow := false

	for pos < n {
		if pos-literalStart >= maxLiteralRun {
			flushLiteral(pos)
			literalStart = pos
		}

		winLen := BlockSize
		atEnd := false
		if pos+winLen >= n {
			winLen = n - pos
			atEnd = true
		}
		block := after[pos : pos+winLen]

		if !haveWindow {
			w, a, b = weakHash(block)
			haveWindow = true
		}

		var shortSize int32
		if winLen < BlockSize {
			shortSize = int32(winLen)
		}

		if bh, ok := lib.find(w, strongHash(block), shortSize); ok {
			flushLiteral(pos)
			ops = appendCopy(ops, bh.blockIndex)
			pos += winLen
			literalStart = pos
			haveWindow = false
			continue
		}

		if atEnd {
			flushLiteral(n)
			pos = n
			break
		}

		popped := after[pos]
		pushed := after[pos+winLen]
		w, a, b = rollWeakHash(a, b, winLen, popped, pushed)
		pos++
	}
	flushLiteral(pos)
	return ops
}

// appendCopy extends the previous op in ops if it's a contiguous copy
// span, otherwise appends a new one-block copy op.
func appendCopy(ops []operation, blockIndex int64) []operation {
	if len(ops) > 0 {
		last := &ops[len(ops)-1]
		if last.kind == opCopy && last.blockIndex+last.span == blockIndex {
			last.span++
			return ops
		}
	}
	return append(ops, operation{kind: opCopy, blockIndex: blockIndex, span: 1})
}

// appendData extends the previous op in ops if it's already a data run,
// otherwise appends a new one.
func appendData(ops []operation, data []byte) []operation {
	if len(ops) > 0 {
		last := &ops[len(ops)-1]
		if last.kind == opData {
			last.data = append(last.data, data...)
			return ops
		}
	}
	buf := make([]byte, len(data))
	copy(buf, data)
	return append(ops, operation{kind: opData, data: buf})
}

// Decode replays a RollingHash delta against before, reconstructing
// after. Adapted from binarydist.Patch's control-op application loop,
// generalized from bsdiff's add/copy/seek triples to this codec's
// block-index/span/data records.
func Decode(before, delta []byte) ([]byte, error) {
	ops, err := deserializeOps(delta)
	if err != nil {
		return nil, err
	}

	var lastBlockIndex int64 = -1
	if len(before) > 0 {
		lastBlockIndex = int64((len(before) - 1) / BlockSize)
	}

	var out []byte
	for _, op := range ops {
		switch op.kind {
		case opCopy:
			if op.span <= 0 || op.blockIndex < 0 || op.blockIndex > lastBlockIndex ||
				op.blockIndex+op.span-1 > lastBlockIndex {
				return nil, ErrMismatchedBase
			}
			start := op.blockIndex * BlockSize
			var end int64
			if op.blockIndex+op.span-1 == lastBlockIndex {
				end = int64(len(before))
			} else {
				end = start + op.span*BlockSize
			}
			if end <= start || end > int64(len(before)) {
				return nil, ErrMismatchedBase
			}
			out = append(out, before[start:end]...)
		case opData:
			out = append(out, op.data...)
		default:
			return nil, ErrCorrupt
		}
	}
	return out, nil
}

func serializeOps(ops []operation) ([]byte, error) {
	var buf bytes.Buffer
	w := wire.NewWriteContext(&buf)
	for _, op := range ops {
		switch op.kind {
		case opCopy:
			w.Uint8(0)
			w.Uint64(uint64(op.blockIndex))
			w.Uint64(uint64(op.span))
		case opData:
			w.Uint8(1)
			w.Blob64(op.data)
		}
	}
	if err := w.Err(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func deserializeOps(delta []byte) ([]operation, error) {
	br := bytes.NewReader(delta)
	r := wire.NewReadContext(br)

	var ops []operation
	for br.Len() > 0 {
		tag := r.Uint8()
		if r.Err() != nil {
			break
		}
		switch tag {
		case 0:
			idx := r.Uint64()
			span := r.Uint64()
			ops = append(ops, operation{kind: opCopy, blockIndex: int64(idx), span: int64(span)})
		case 1:
			data := r.Blob64()
			ops = append(ops, operation{kind: opData, data: data})
		default:
			return nil, ErrCorrupt
		}
	}
	if r.Err() != nil {
		return nil, ErrCorrupt
	}
	return ops, nil
}
