package archivediff

import (
	"archive/zip"
	"os"
	"time"

	"github.com/pkg/errors"

	"github.com/wharfpatch/fdp/fdp"
	"github.com/wharfpatch/fdp/state"
)

// ApplyArchive reconstructs an output archive from the before archive
// and a patch set, exactly as §4.6's apply_archive steps 1-3.
//
// Patch sets carry no entry metadata beyond content (§3's Operation
// variants hold only bytes/a Patch) — per the Non-goal that an applied
// archive need only be content-equivalent, not bit-identical, Added and
// Modified entries get a fresh timestamp on write; Unchanged entries
// keep the before archive's modification time. Every entry is written
// with a new deflate header carrying only its name and that time.
func ApplyArchive(beforePath string, ps *fdp.PatchSet, outPath string) error {
	return ApplyArchiveConsumer(beforePath, ps, outPath, nil)
}

// ApplyArchiveConsumer is ApplyArchive with an ambient state.Consumer.
func ApplyArchiveConsumer(beforePath string, ps *fdp.PatchSet, outPath string, consumer *state.Consumer) error {
	before, err := openZipIndex(beforePath)
	if err != nil {
		return err
	}
	defer before.Close()

	outFile, err := os.Create(outPath)
	if err != nil {
		return errors.Wrap(err, "create output archive")
	}
	defer outFile.Close()

	zw := zip.NewWriter(outFile)

	covered := make(map[string]struct{}, len(ps.Entries))
	for i, entry := range ps.Entries {
		consumer.Progress(100.0 * float64(i) / float64(len(ps.Entries)))
		covered[entry.Path] = struct{}{}

		if err := applyEntry(zw, before, entry); err != nil {
			zw.Close()
			return err
		}
	}

	for path := range before.byPath {
		if _, ok := covered[path]; !ok {
			zw.Close()
			return errors.Wrapf(fdp.ErrIncompletePatchSet, "path %q not covered by patch set", path)
		}
	}

	if err := zw.Close(); err != nil {
		return errors.Wrap(err, "finalize output archive")
	}
	return nil
}

func applyEntry(zw *zip.Writer, before *zipIndex, entry fdp.PatchSetEntry) error {
	switch op := entry.Operation.(type) {
	case fdp.Unchanged:
		bf, ok := before.byPath[entry.Path]
		if !ok {
			return errors.Wrapf(fdp.ErrMismatchedBase, "path %q missing from before archive", entry.Path)
		}
		data, err := readEntryBytes(bf)
		if err != nil {
			return err
		}
		return writeZipEntry(zw, entry.Path, data, bf.Modified)

	case fdp.Deleted:
		return nil

	case fdp.Added:
		return writeZipEntry(zw, entry.Path, op.Data, time.Now())

	case fdp.Modified:
		bf, ok := before.byPath[entry.Path]
		if !ok {
			return errors.Wrapf(fdp.ErrMismatchedBase, "path %q missing from before archive", entry.Path)
		}
		beforeBytes, err := readEntryBytes(bf)
		if err != nil {
			return err
		}
		afterBytes, err := fdp.Apply(beforeBytes, op.Patch)
		if err != nil {
			return err
		}
		return writeZipEntry(zw, entry.Path, afterBytes, time.Now())

	default:
		return errors.Errorf("archivediff: unknown operation type for path %q", entry.Path)
	}
}
