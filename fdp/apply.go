package fdp

import (
	stderrors "errors"

	"github.com/wharfpatch/fdp/bidi"
	"github.com/wharfpatch/fdp/rsync"
)

// Apply reconstructs after from before and patch, exactly as §4.4's
// apply steps 1-5. Every integrity check is mandatory: there is no
// "unchecked" apply, since a delta decoder can succeed on malformed
// input without the post-apply fingerprint check catching it otherwise.
func Apply(before []byte, p *Patch) ([]byte, error) {
	if !Fingerprint(before).Equal(p.BeforeFingerprint) {
		return nil, ErrMismatchedBase
	}

	decompressor, err := decompressorFor(p.CompressAlgorithm)
	if err != nil {
		return nil, err
	}
	raw, err := decompressor(p.Payload)
	if err != nil {
		return nil, wrapCorruptDelta(err)
	}

	codec, err := codecFor(p.DeltaAlgorithm)
	if err != nil {
		return nil, err
	}
	after, err := codec.Decode(before, raw)
	if err != nil {
		return nil, translateCodecError(err)
	}

	if !Fingerprint(after).Equal(p.AfterFingerprint) {
		return nil, ErrCorruptDelta
	}
	return after, nil
}

func wrapCorruptDelta(err error) error {
	if err == nil {
		return nil
	}
	return &wrappedErr{kind: ErrCorruptDelta, cause: err}
}

// translateCodecError maps a codec package's own sentinel (rsync.Err*,
// bidi.Err*) onto the shared taxonomy §7 defines, so callers of Apply
// only ever need to check fdp's sentinels regardless of which codec
// produced the patch.
func translateCodecError(err error) error {
	switch {
	case stderrors.Is(err, rsync.ErrMismatchedBase), stderrors.Is(err, bidi.ErrMismatchedBase):
		return &wrappedErr{kind: ErrMismatchedBase, cause: err}
	case stderrors.Is(err, rsync.ErrCorrupt), stderrors.Is(err, bidi.ErrCorrupt):
		return &wrappedErr{kind: ErrCorruptDelta, cause: err}
	default:
		return &wrappedErr{kind: ErrCorruptDelta, cause: err}
	}
}

// wrappedErr lets a codec-level cause remain inspectable (via Unwrap)
// while still satisfying errors.Is against one of this package's
// sentinel kinds, the same "kind + cause" shape pkg/errors.Wrap gives a
// caller for errors it didn't define itself.
type wrappedErr struct {
	kind  error
	cause error
}

func (w *wrappedErr) Error() string { return w.kind.Error() + ": " + w.cause.Error() }
func (w *wrappedErr) Is(target error) bool { return target == w.kind }
func (w *wrappedErr) Unwrap() error { return w.cause }
