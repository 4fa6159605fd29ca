package fdp

import (
	"bytes"

	"github.com/pkg/errors"

	"github.com/wharfpatch/fdp/fingerprint"
	"github.com/wharfpatch/fdp/wire"
)

// patchMagic is the version 1 schema tag for a standalone Patch
// container (§6.2). PatchSet embeds these verbatim for Modified entries.
const patchMagic = "FDP1"

// digestMD5 is the only digest_tag value this version understands; the
// byte exists so a later schema can introduce a stronger digest without
// breaking readers of this one.
const digestMD5 = 0x01

// Patch is an immutable record bundling a delta payload with enough
// metadata (algorithm tags, endpoint fingerprints) to apply it and to
// verify the result, per spec §3's Patch invariant P1.
type Patch struct {
	DeltaAlgorithm    DeltaAlgorithm
	CompressAlgorithm CompressAlgorithm
	BeforeFingerprint fingerprint.Fingerprint
	AfterFingerprint  fingerprint.Fingerprint
	Payload           []byte
}

// ToBytes serializes p to the byte-exact layout of §6.2. Two semantically
// equal Patches always produce identical bytes (INV-6).
func (p *Patch) ToBytes() []byte {
	var buf bytes.Buffer
	w := wire.NewWriteContext(&buf)
	w.Magic(patchMagic)
	w.Uint8(uint8(p.DeltaAlgorithm))
	w.Uint8(uint8(p.CompressAlgorithm))
	w.Uint8(digestMD5)
	w.Bytes(p.BeforeFingerprint.Bytes())
	w.Bytes(p.AfterFingerprint.Bytes())
	w.Blob64(p.Payload)
	// w.Err() cannot fail here: buf is an in-memory bytes.Buffer, whose
	// Write never returns an error.
	return buf.Bytes()
}

// PatchFromBytes parses a Patch container, validating the magic, digest
// tag and algorithm tags as it goes.
func PatchFromBytes(b []byte) (*Patch, error) {
	r := wire.NewReadContext(bytes.NewReader(b))
	r.ExpectMagic(patchMagic)
	deltaTag := DeltaAlgorithm(r.Uint8())
	compressTag := CompressAlgorithm(r.Uint8())
	digestTag := r.Uint8()
	beforeFP := r.Bytes(fingerprint.Size)
	afterFP := r.Bytes(fingerprint.Size)
	payload := r.Blob64()

	if err := r.Err(); err != nil {
		return nil, errors.Wrap(ErrCorruptFormat, err.Error())
	}
	if digestTag != digestMD5 {
		return nil, errors.Wrapf(ErrUnsupportedAlgorithm, "digest tag 0x%02x", digestTag)
	}
	if !validDeltaTag(deltaTag) {
		return nil, errors.Wrapf(ErrUnsupportedAlgorithm, "delta algorithm tag 0x%02x", uint8(deltaTag))
	}
	if !validCompressTag(compressTag) {
		return nil, errors.Wrapf(ErrUnsupportedAlgorithm, "compress algorithm tag 0x%02x", uint8(compressTag))
	}

	return &Patch{
		DeltaAlgorithm:    deltaTag,
		CompressAlgorithm: compressTag,
		BeforeFingerprint: fingerprint.FromBytes(beforeFP),
		AfterFingerprint:  fingerprint.FromBytes(afterFP),
		Payload:           payload,
	}, nil
}
