// Package rsync implements the RollingHash delta codec: an rsync-style
// two-tier rolling checksum over fixed-size blocks of before, adapted
// from wharf's sync package. The teacher's sync.SyncContext streams a
// recipe for one file at a time out of a multi-file FilePool; this
// package instead implements the flat Codec contract fdp needs —
// Encode(before, after) / Decode(before, delta) over two in-memory byte
// slices — since that's the unit the spec's delta codecs operate on.
package rsync

import "crypto/md5"

// BlockSize is a compromise between wasted hashing work on padding and
// inefficient diffs, the same tradeoff wharf's pwr.BlockSize documents.
// 1024 mirrors fast_rsync's own default block size for this domain.
const BlockSize = 1024

// maxLiteralRun caps how much literal data accumulates between copy
// operations before being flushed, bounding peak memory use during
// Encode. Mirrors sync.MaxDataOp.
const maxLiteralRun = 4 * 1024 * 1024

// strongHashSize is the length of the strong (collision-resistant) hash
// used to disambiguate weak-hash collisions.
const strongHashSize = md5.Size

// blockHash is the signature of one block of before.
type blockHash struct {
	blockIndex int64
	weak       uint32
	strong     [strongHashSize]byte
	// shortSize is non-zero only for the final, possibly short, block.
	shortSize int32
}

// library indexes a set of blockHash signatures by weak hash for O(1)
// candidate lookup during Encode, mirroring sync.BlockLibrary.
type library struct {
	byWeak map[uint32][]blockHash
}

func newLibrary(hashes []blockHash) *library {
	byWeak := make(map[uint32][]blockHash, len(hashes))
	for _, h := range hashes {
		byWeak[h.weak] = append(byWeak[h.weak], h)
	}
	return &library{byWeak: byWeak}
}

func (lib *library) find(weak uint32, strong [strongHashSize]byte, shortSize int32) (blockHash, bool) {
	for _, candidate := range lib.byWeak[weak] {
		if candidate.shortSize == shortSize && candidate.strong == strong {
			return candidate, true
		}
	}
	return blockHash{}, false
}
