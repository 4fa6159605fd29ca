package rsync

import "crypto/md5"

// rollingModulus bounds the two halves of the Adler-style weak checksum,
// exactly as sync.go's _M constant does.
const rollingModulus = 1 << 16

// weakHash computes the rsync rolling checksum of block, returning the
// combined value and its two halves (needed to update the checksum
// incrementally as the window slides by one byte).
func weakHash(block []byte) (sum, a, b uint32) {
	var sumA, sumB uint32
	for i, v := range block {
		sumA += uint32(v)
		sumB += (uint32(len(block)-1) - uint32(i) + 1) * uint32(v)
	}
	a = sumA % rollingModulus
	b = sumB % rollingModulus
	sum = a + rollingModulus*b
	return
}

// rollWeakHash slides the rolling checksum window forward by one byte:
// popping popped off the front and pushing pushed onto the back.
func rollWeakHash(a, b uint32, windowLen int, popped, pushed byte) (sum, newA, newB uint32) {
	newA = (a - uint32(popped) + uint32(pushed)) % rollingModulus
	newB = (b - uint32(windowLen)*uint32(popped) + newA) % rollingModulus
	sum = newA + rollingModulus*newB
	return
}

func strongHash(block []byte) [strongHashSize]byte {
	return md5.Sum(block)
}

// signature splits before into BlockSize blocks and computes a blockHash
// for each, the same traversal sync.CreateSignature performs over a
// bufio.Scanner, adapted to operate over an in-memory slice.
func signature(before []byte) []blockHash {
	var hashes []blockHash
	var blockIndex int64
	for offset := 0; offset < len(before); offset += BlockSize {
		end := offset + BlockSize
		if end > len(before) {
			end = len(before)
		}
		block := before[offset:end]

		weak, _, _ := weakHash(block)
		h := blockHash{
			blockIndex: blockIndex,
			weak:       weak,
			strong:     strongHash(block),
		}
		if len(block) < BlockSize {
			h.shortSize = int32(len(block))
		}
		hashes = append(hashes, h)
		blockIndex++
	}
	return hashes
}
