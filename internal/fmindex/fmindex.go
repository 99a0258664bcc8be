// Package fmindex implements the full-text substring index the search
// stage runs approximate backward search over: a suffix array, its derived
// Burrows-Wheeler transform, a less (C) table, a sampled occurrence table,
// and the FM-index backward-search primitives built on top of them.
//
// None of the example repos in this codebase's retrieval pack expose a
// suffix-array/BWT/FM-index primitive (DESIGN.md records the search), so
// this package is a direct implementation rather than a thin adapter over
// a third-party library.
package fmindex

import "fmt"

// Interval is a half-open range [L, R) into the suffix array, representing
// the set of suffixes currently matching some pattern suffix during
// backward search.
type Interval struct {
	L, R int
}

// Empty reports whether the interval matches no suffixes.
func (iv Interval) Empty() bool { return iv.L >= iv.R }

// Len is the number of suffixes the interval currently matches.
func (iv Interval) Len() int { return iv.R - iv.L }

// Index is a built, read-only FM-index over some text.
type Index struct {
	text []byte
	sa   []int
	bwt  []byte
	less *lessTable
	occ  *occTable
}

// Build constructs an Index over text. symbols must list every distinct
// byte that occurs in text (the working alphabet plus the '$' / '#'
// sentinels); sampleRate controls the occurrence table's memory/speed
// trade-off (spec.md's "occurrence sampling factor").
func Build(text []byte, symbols []byte, sampleRate int) (*Index, error) {
	if len(text) == 0 {
		return nil, fmt.Errorf("fmindex: cannot build an index over empty text")
	}
	allowed := make(map[byte]bool, len(symbols))
	for _, c := range symbols {
		allowed[c] = true
	}
	for i, c := range text {
		if !allowed[c] {
			return nil, fmt.Errorf("fmindex: text byte %q at position %d is not in the index alphabet", c, i)
		}
	}

	sa := buildSuffixArray(text)
	bwt := buildBWT(text, sa)
	less := newLessTable(text, symbols)
	occ := newOccTable(bwt, symbols, sampleRate)

	return &Index{text: text, sa: sa, bwt: bwt, less: less, occ: occ}, nil
}

// InitInterval returns the interval matching the empty pattern: the whole
// suffix array.
func (idx *Index) InitInterval() Interval {
	return Interval{L: 0, R: len(idx.sa)}
}

// Extend refines iv by prepending symbol c to the (reversed) pattern
// matched so far — one step of FM-index backward search. The returned
// interval is empty when no suffix extends with c.
func (idx *Index) Extend(iv Interval, c byte) Interval {
	lessC := idx.less.Less(c)
	return Interval{
		L: lessC + idx.occ.Rank(c, iv.L),
		R: lessC + idx.occ.Rank(c, iv.R),
	}
}

// Locate returns every text position within iv, i.e. the starting offsets
// (in the original text) of every suffix matching the interval's pattern.
func (idx *Index) Locate(iv Interval) []int {
	if iv.Empty() {
		return nil
	}
	out := make([]int, iv.Len())
	copy(out, idx.sa[iv.L:iv.R])
	return out
}

// SuffixArray exposes the raw, fully materialized suffix array.
func (idx *Index) SuffixArray() []int { return idx.sa }

// BWT exposes the raw Burrows-Wheeler transform, mostly for tests.
func (idx *Index) BWT() []byte { return idx.bwt }
