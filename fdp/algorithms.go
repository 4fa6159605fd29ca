package fdp

import (
	"github.com/pkg/errors"

	"github.com/wharfpatch/fdp/bidi"
	"github.com/wharfpatch/fdp/compress"
	"github.com/wharfpatch/fdp/rsync"
)

// DeltaAlgorithm tags which of the two delta codecs produced (or should
// decode) a Patch's payload. The tag is the wire value from §6.2, not an
// implementation detail: it is serialized as-is.
type DeltaAlgorithm uint8

const (
	RollingHash     DeltaAlgorithm = 0x01
	SuffixArrayBidi DeltaAlgorithm = 0x02
)

// CompressAlgorithm tags which compressor wraps a Patch's payload.
type CompressAlgorithm uint8

const (
	None              CompressAlgorithm = 0x00
	DictionaryLevel21 CompressAlgorithm = 0x01
)

// Codec is the shared contract both delta engines implement. Patch
// dispatch looks one of these up by DeltaAlgorithm tag rather than
// holding a concrete reference, as a closed static table instead of a
// runtime registry since the set of algorithms is fixed at compile time.
type Codec interface {
	Encode(before, after []byte) ([]byte, error)
	Decode(before, delta []byte) ([]byte, error)
}

type rsyncCodec struct{}

func (rsyncCodec) Encode(before, after []byte) ([]byte, error) { return rsync.Encode(before, after) }
func (rsyncCodec) Decode(before, delta []byte) ([]byte, error) { return rsync.Decode(before, delta) }

type bidiCodec struct{}

func (bidiCodec) Encode(before, after []byte) ([]byte, error) { return bidi.Encode(before, after) }
func (bidiCodec) Decode(before, delta []byte) ([]byte, error) { return bidi.Decode(before, delta) }

var codecsByTag = map[DeltaAlgorithm]Codec{
	RollingHash:     rsyncCodec{},
	SuffixArrayBidi: bidiCodec{},
}

func codecFor(tag DeltaAlgorithm) (Codec, error) {
	c, ok := codecsByTag[tag]
	if !ok {
		return nil, errors.Wrapf(ErrUnsupportedAlgorithm, "delta algorithm tag 0x%02x", uint8(tag))
	}
	return c, nil
}

// compressFunc/decompressFunc let the compressor table hold plain
// functions instead of an interface — None has no state and no error
// path, so an interface would buy nothing here.
type compressFunc func([]byte) ([]byte, error)
type decompressFunc func([]byte) ([]byte, error)

var compressorsByTag = map[CompressAlgorithm]compressFunc{
	None:              func(b []byte) ([]byte, error) { return compress.Identity(b), nil },
	DictionaryLevel21: compress.Zstd,
}

var decompressorsByTag = map[CompressAlgorithm]decompressFunc{
	None:              func(b []byte) ([]byte, error) { return compress.DecodeIdentity(b), nil },
	DictionaryLevel21: compress.DecodeZstd,
}

func compressorFor(tag CompressAlgorithm) (compressFunc, error) {
	f, ok := compressorsByTag[tag]
	if !ok {
		return nil, errors.Wrapf(ErrUnsupportedAlgorithm, "compress algorithm tag 0x%02x", uint8(tag))
	}
	return f, nil
}

func decompressorFor(tag CompressAlgorithm) (decompressFunc, error) {
	f, ok := decompressorsByTag[tag]
	if !ok {
		return nil, errors.Wrapf(ErrUnsupportedAlgorithm, "compress algorithm tag 0x%02x", uint8(tag))
	}
	return f, nil
}

func validDeltaTag(tag DeltaAlgorithm) bool {
	_, ok := codecsByTag[tag]
	return ok
}

func validCompressTag(tag CompressAlgorithm) bool {
	_, ok := compressorsByTag[tag]
	return ok
}
