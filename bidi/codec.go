package bidi

import (
	"bytes"

	"github.com/wharfpatch/fdp/wire"
)

// record is one bsdiff-style control triple: copy copyLength bytes out of
// before starting at copyOffset, add diff to them byte-by-byte to recover
// the corresponding run of after, then append extra verbatim. Records tile
// after contiguously: record k's data run starts exactly where record
// k-1's extra run ended.
type record struct {
	copyOffset int64
	copyLength int64
	diff       []byte // len(diff) == copyLength
	extra      []byte
}

// Encode computes a SuffixArrayBidi delta: a suffix array over before,
// scanned against with the same binary-search matching strategy
// bsdiff/diff_partitioned.go's analyzeBlock uses, de-parallelized to a
// single pass over the whole of after (equivalent to that function
// running with one partition and one block).
func Encode(before, after []byte) ([]byte, error) {
	records := computeRecords(before, after)
	return serializeRecords(records)
}

// computeRecords is bsdiff/diff_partitioned.go's analyzeBlock, stripped
// of its partition offset (always 0 here, since this is a single pass
// over the whole buffer) and its channel-based match delivery (matches
// are appended to a plain slice instead).
func computeRecords(before, after []byte) []record {
	if len(before) == 0 {
		if len(after) == 0 {
			return nil
		}
		return []record{{extra: append([]byte(nil), after...)}}
	}

	sa := buildSuffixArray(before)
	obuf, nbuf := before, after
	obuflen, nbuflen := len(obuf), len(nbuf)

	var records []record

	var scan, pos, length int
	var lastscan, lastpos, lastoffset int

	for scan < nbuflen {
		var oldscore int
		scan += length

		for scsc := scan; scan < nbuflen; scan++ {
			pos, length = search(sa, obuf, nbuf[scan:], 0, len(sa)-1)

			for ; scsc < scan+length; scsc++ {
				if scsc+lastoffset < obuflen && scsc+lastoffset >= 0 &&
					obuf[scsc+lastoffset] == nbuf[scsc] {
					oldscore++
				}
			}

			if (length == oldscore && length != 0) || length > oldscore+8 {
				break
			}

			if scan+lastoffset < obuflen && scan+lastoffset >= 0 && obuf[scan+lastoffset] == nbuf[scan] {
				oldscore--
			}
		}

		if length != oldscore || scan == nbuflen {
			var s, sf int
			lenf := 0
			for i := 0; lastscan+i < scan && lastpos+i < obuflen; i++ {
				if obuf[lastpos+i] == nbuf[lastscan+i] {
					s++
				}
				if s*2-i > sf*2-lenf {
					sf = s
					lenf = i + 1
				}
			}

			lenb := 0
			if scan < nbuflen {
				var s, sb int
				for i := 1; scan >= lastscan+i && pos >= i; i++ {
					if obuf[pos-i] == nbuf[scan-i] {
						s++
					}
					if s*2-i > sb*2-lenb {
						sb = s
						lenb = i
					}
				}
			}

			if lastscan+lenf > scan-lenb {
				overlap := (lastscan + lenf) - (scan - lenb)
				var s, ss, lens int
				for i := 0; i < overlap; i++ {
					if nbuf[lastscan+lenf-overlap+i] == obuf[lastpos+lenf-overlap+i] {
						s++
					}
					if nbuf[scan-lenb+i] == obuf[pos-lenb+i] {
						s--
					}
					if s > ss {
						ss = s
						lens = i + 1
					}
				}
				lenf += lens - overlap
				lenb -= lens
			}

			addOldStart := lastpos
			addNewStart := lastscan
			addLength := lenf
			copyEnd := scan - lenb

			if addLength > 0 || addNewStart+addLength != copyEnd {
				diff := make([]byte, addLength)
				for i := 0; i < addLength; i++ {
					diff[i] = nbuf[addNewStart+i] - obuf[addOldStart+i]
				}
				records = append(records, record{
					copyOffset: int64(addOldStart),
					copyLength: int64(addLength),
					diff:       diff,
					extra:      append([]byte(nil), nbuf[addNewStart+addLength:copyEnd]...),
				})
			}

			lastscan = scan - lenb
			lastpos = pos - lenb
			lastoffset = pos - scan
		}
	}

	return records
}

// Decode replays a SuffixArrayBidi delta against before, reconstructing
// after by walking the records in order: copy+undiff, then append extra.
// Adapted from binarydist.Patch's add/extra application loop, simplified
// by this codec's absolute (rather than seek-relative) copy offsets.
func Decode(before, delta []byte) ([]byte, error) {
	records, err := deserializeRecords(delta)
	if err != nil {
		return nil, err
	}

	var out []byte
	for _, rec := range records {
		if rec.copyLength > 0 {
			if rec.copyOffset < 0 || rec.copyOffset+rec.copyLength > int64(len(before)) {
				return nil, ErrMismatchedBase
			}
			region := before[rec.copyOffset : rec.copyOffset+rec.copyLength]
			for i := int64(0); i < rec.copyLength; i++ {
				out = append(out, region[i]+rec.diff[i])
			}
		}
		out = append(out, rec.extra...)
	}
	return out, nil
}

func serializeRecords(records []record) ([]byte, error) {
	var buf bytes.Buffer
	w := wire.NewWriteContext(&buf)
	for _, rec := range records {
		w.Uint64(uint64(rec.copyOffset))
		w.Uint64(uint64(rec.copyLength))
		w.Bytes(rec.diff)
		w.Blob64(rec.extra)
	}
	if err := w.Err(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func deserializeRecords(delta []byte) ([]record, error) {
	br := bytes.NewReader(delta)
	r := wire.NewReadContext(br)

	var records []record
	for br.Len() > 0 {
		copyOffset := r.Uint64()
		copyLength := r.Uint64()
		if r.Err() != nil {
			break
		}
		diff := r.Bytes(int(copyLength))
		extra := r.Blob64()
		if r.Err() != nil {
			break
		}
		records = append(records, record{
			copyOffset: int64(copyOffset),
			copyLength: int64(copyLength),
			diff:       diff,
			extra:      extra,
		})
	}
	if r.Err() != nil {
		return nil, ErrCorrupt
	}
	return records, nil
}
