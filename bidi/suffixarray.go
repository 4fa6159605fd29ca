// Package bidi implements the SuffixArrayBidi delta codec: a single
// full suffix array over before, searched with the classic bsdiff
// binary-search-over-suffix-array matching strategy, adapted from
// bsdiff/math.go and bsdiff/psa.go. Unlike the teacher's PSA, which
// partitions before across goroutines for throughput on very large
// inputs, this builds one unpartitioned array via gosaca directly —
// sufficient at this module's scope, and simpler to reason about.
package bidi

import (
	"bytes"

	"github.com/jgallagher/gosaca"
)

// buildSuffixArray sorts every suffix of buf, the same construction
// bsdiff.NewPSA delegates to gosaca.WorkSpace.ComputeSuffixArray for,
// just without partitioning buf across workers first.
func buildSuffixArray(buf []byte) []int {
	sa := make([]int, len(buf))
	if len(buf) == 0 {
		return sa
	}
	ws := &gosaca.WorkSpace{}
	ws.ComputeSuffixArray(buf, sa)
	return sa
}

// matchLen returns the number of leading bytes a and b have in common.
func matchLen(a, b []byte) int {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	i := 0
	for i < n && a[i] == b[i] {
		i++
	}
	return i
}

// search finds, via binary search over the suffix array sa (covering
// buf[0:] ordered by suffix, searched across index range [st, en]), the
// suffix with the longest common prefix with target. Ported directly
// from bsdiff/math.go's search.
func search(sa []int, buf, target []byte, st, en int) (pos, n int) {
	if en-st < 2 {
		x := matchLen(buf[sa[st]:], target)
		y := matchLen(buf[sa[en]:], target)
		if x > y {
			return sa[st], x
		}
		return sa[en], y
	}

	x := st + (en-st)/2
	if bytes.Compare(buf[sa[x]:], target) < 0 {
		return search(sa, buf, target, x, en)
	}
	return search(sa, buf, target, st, x)
}
