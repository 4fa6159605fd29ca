package fdp

import (
	"github.com/pkg/errors"

	validation "github.com/go-ozzo/ozzo-validation"
)

// Validate checks that p's algorithm tags are ones this package
// implements. Diff calls this right after building a Patch;
// PatchFromBytes makes the same tag checks inline while parsing one
// rather than calling Validate. There's no ozzo
// rule that isn't a tautology to apply here: tag validity is a map
// lookup, and the fingerprints are fixed-width arrays with nothing to
// bound-check, so both are handled as bare sentinel errors.
func (p *Patch) Validate() error {
	if !validDeltaTag(p.DeltaAlgorithm) {
		return ErrUnsupportedAlgorithm
	}
	if !validCompressTag(p.CompressAlgorithm) {
		return ErrUnsupportedAlgorithm
	}
	return nil
}

// Validate checks that every path in ps is non-empty and that paths are
// unique (PS1), and that every Modified operation's embedded patch is
// itself valid. Non-emptiness is routed through ozzo-validation's
// Required rule, which has a real input to reject here; uniqueness is a
// cross-entry invariant no per-field ozzo rule can see, so it stays a
// plain map check.
func (ps *PatchSet) Validate() error {
	seen := make(map[string]struct{}, len(ps.Entries))
	for _, entry := range ps.Entries {
		if err := validation.Validate(entry.Path, validation.Required); err != nil {
			return errors.Wrapf(ErrCorruptFormat, "path %q: %v", entry.Path, err)
		}
		if _, dup := seen[entry.Path]; dup {
			return ErrCorruptFormat
		}
		seen[entry.Path] = struct{}{}

		if m, ok := entry.Operation.(Modified); ok {
			if err := m.Patch.Validate(); err != nil {
				return err
			}
		}
	}
	return nil
}
