// Package compress implements the two interchangeable byte transforms
// (C3) a Patch payload can be wrapped in: a no-op passthrough and a
// high-ratio dictionary coder at its maximum practical level.
//
// The dictionary coder is github.com/DataDog/zstd, called exactly the way
// wharf's own pools/blockpool/compression.go already calls it — via
// zstd.CompressLevel(dst, src, level) / zstd.Decompress(dst, src) — just
// at level 21 (near-maximum ratio) instead of blockpool's level 9
// (optimized for streaming throughput).
package compress

import (
	"github.com/DataDog/zstd"
	"github.com/pkg/errors"
)

// ZstdLevel is the compression level used by DictionaryLevel21. It is
// deliberately not the library's absolute maximum (22, "ultra", which
// requires extra memory budgeting on the decoder side) — 21 is the
// highest level usable without opting into zstd's ultra window sizes.
const ZstdLevel = 21

// Identity returns input unchanged: the "None" compressor.
func Identity(input []byte) []byte {
	return input
}

// DecodeIdentity mirrors Identity on the decompress side.
func DecodeIdentity(input []byte) []byte {
	return input
}

// Zstd compresses input at ZstdLevel.
func Zstd(input []byte) ([]byte, error) {
	out, err := zstd.CompressLevel(nil, input, ZstdLevel)
	if err != nil {
		return nil, errors.Wrap(err, "zstd compress")
	}
	return out, nil
}

// DecodeZstd decompresses a frame produced by Zstd. It returns an error
// for truncated or otherwise invalid frames; callers map this to
// ErrCorruptDelta.
func DecodeZstd(input []byte) ([]byte, error) {
	out, err := zstd.Decompress(nil, input)
	if err != nil {
		return nil, errors.Wrap(err, "zstd decompress")
	}
	return out, nil
}
