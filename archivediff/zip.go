package archivediff

import (
	"archive/zip"
	"io"
	"sort"
	"time"

	"github.com/pkg/errors"
)

// zipIndex is an opened archive's entries keyed by exact name bytes,
// grounded on archiver/zip.go's direct use of archive/zip for ZIP
// extraction: open, iterate .File, read via .Open().
type zipIndex struct {
	rc     *zip.ReadCloser
	byPath map[string]*zip.File
}

func openZipIndex(path string) (*zipIndex, error) {
	rc, err := zip.OpenReader(path)
	if err != nil {
		return nil, errors.Wrap(err, "open zip archive")
	}

	byPath := make(map[string]*zip.File, len(rc.File))
	for _, f := range rc.File {
		if _, dup := byPath[f.Name]; dup {
			rc.Close()
			return nil, errors.Wrapf(ErrMalformedArchive, "duplicate entry %q", f.Name)
		}
		byPath[f.Name] = f
	}
	return &zipIndex{rc: rc, byPath: byPath}, nil
}

func (idx *zipIndex) Close() error {
	return idx.rc.Close()
}

// readEntryBytes reads f's full decompressed content. archive/zip only
// ever implements store and deflate internally, so Open/Read failing on
// an unrecognized method is exactly the "reader doesn't implement this
// compression method" case §6.4 calls UnsupportedEntry.
func readEntryBytes(f *zip.File) ([]byte, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, errors.Wrap(ErrUnsupportedEntry, err.Error())
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, errors.Wrap(ErrUnsupportedEntry, err.Error())
	}
	return data, nil
}

// unionSortedPaths returns the union of both indices' entry paths in
// lexicographic order — the iteration order §3/§4.6 require a PatchSet
// to carry.
func unionSortedPaths(before, after *zipIndex) []string {
	set := make(map[string]struct{}, len(before.byPath)+len(after.byPath))
	for p := range before.byPath {
		set[p] = struct{}{}
	}
	for p := range after.byPath {
		set[p] = struct{}{}
	}
	paths := make([]string, 0, len(set))
	for p := range set {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

func writeZipEntry(zw *zip.Writer, path string, data []byte, modTime time.Time) error {
	fh := &zip.FileHeader{
		Name:     path,
		Method:   zip.Deflate,
		Modified: modTime,
	}

	w, err := zw.CreateHeader(fh)
	if err != nil {
		return errors.Wrap(err, "create output zip entry")
	}
	if _, err := w.Write(data); err != nil {
		return errors.Wrap(err, "write output zip entry")
	}
	return nil
}
