package fdp

import "github.com/wharfpatch/fdp/fingerprint"

// Fingerprint is the 128-bit content digest (C1) used throughout the
// patch pipeline for pre/post integrity checks and unchanged-entry
// detection.
func Fingerprint(data []byte) fingerprint.Fingerprint {
	return fingerprint.Sum(data)
}
