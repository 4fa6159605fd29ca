package archivediff

import "errors"

// ErrUnsupportedEntry means a ZIP entry uses a compression method this
// reader doesn't implement (only deflate and store are, via the standard
// library's archive/zip).
var ErrUnsupportedEntry = errors.New("archivediff: zip entry uses an unsupported compression method")

// ErrMalformedArchive means a ZIP file has a structural problem, most
// commonly a duplicate entry name.
var ErrMalformedArchive = errors.New("archivediff: malformed zip archive")
