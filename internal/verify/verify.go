// Package verify turns Search's unoriented Candidates into oriented,
// distance-confirmed Solutions: spec.md §4.5.
package verify

import (
	"github.com/biogo-overlaps/overlaps/internal/config"
	"github.com/biogo-overlaps/overlaps/internal/corpus"
	"github.com/biogo-overlaps/overlaps/internal/overlap"
)

// Verifier confirms candidates against the corpus under one Config.
type Verifier struct {
	maps *corpus.Maps
	cfg  *config.Config
}

// New returns a Verifier.
func New(maps *corpus.Maps, cfg *config.Config) *Verifier {
	return &Verifier{maps: maps, cfg: cfg}
}

// Confirm computes the actual alignment of the candidate's overlapping
// regions and, if it passes the error-rate and length thresholds and the
// inclusion policy, returns a canonicalized Solution. The second return
// value is false when the candidate should be dropped.
func (v *Verifier) Confirm(idA int, cand overlap.Candidate) (overlap.Solution, bool) {
	idB := cand.IDB
	lenA := v.maps.Length(idA)
	lenB := v.maps.Length(idB)

	a1, a2, a3 := cand.A1(), cand.A2(), cand.A3(lenA)
	b1, b2, b3 := cand.B1(), cand.B2(), cand.B3(lenB)

	if !v.cfg.Inclusions && isContainment(a1, a3, b1, b3) {
		return overlap.Solution{}, false
	}

	logicalA := reverseBytes(v.maps.String(idA))
	logicalB := reverseBytes(v.maps.String(idB))
	regionA := logicalA[a1 : a1+a2]
	regionB := logicalB[b1 : b1+b2]

	overlapLen := a2
	if b2 > overlapLen {
		overlapLen = b2
	}
	maxErrors := int(v.cfg.ErrRate * float64(overlapLen))

	var errors int
	if v.cfg.EditDistance {
		errors = bandedEditDistance(regionA, regionB, maxErrors+1)
	} else {
		n, ok := hammingDistance(regionA, regionB)
		if !ok {
			return overlap.Solution{}, false
		}
		errors = n
	}

	if overlapLen < v.cfg.Thresh {
		return overlap.Solution{}, false
	}
	if errors > maxErrors {
		return overlap.Solution{}, false
	}

	sol := overlap.Solution{
		IDA:            idA,
		IDB:            idB,
		OverhangLeftA:  cand.OverhangLeftA,
		OverhangRightB: b3 - a3,
		OverlapA:       a2,
		OverlapB:       b2,
		Errors:         uint32(errors),
	}
	if v.maps.IsSecondary(idA) != v.maps.IsSecondary(idB) {
		sol.Orientation = overlap.Reversed
		sol.UnReverse()
	}
	if sol.IDA > sol.IDB {
		sol.VFlip()
	}
	return sol, true
}

// isContainment reports whether the matched region spans one whole
// sequence end-to-end (both its left and right offsets are zero), the
// condition spec.md §4.4 step 5 discards unless --inclusions is set.
func isContainment(a1, a3, b1, b3 int) bool {
	return (a1 == 0 && a3 == 0) || (b1 == 0 && b3 == 0)
}

func reverseBytes(s []byte) []byte {
	out := make([]byte, len(s))
	for i, c := range s {
		out[len(s)-1-i] = c
	}
	return out
}

// hammingDistance counts mismatching positions between two equal-length
// byte slices. ok is false when the lengths differ, which should not
// happen for a Hamming-mode candidate (Search always emits OverlapA ==
// OverlapB); callers treat it as a failed verification rather than panic,
// since a malformed candidate must never crash the worker pool.
func hammingDistance(a, b []byte) (int, bool) {
	if len(a) != len(b) {
		return 0, false
	}
	n := 0
	for i := range a {
		if a[i] != b[i] {
			n++
		}
	}
	return n, true
}

// bandedEditDistance computes Levenshtein distance between a and b,
// restricted to a diagonal band of half-width maxErrors+1: cells outside
// the band are treated as unreachable (a large sentinel), which is sound
// whenever the true distance is <= maxErrors, since any alignment path
// achieving that distance cannot stray further than maxErrors off the main
// diagonal. When the true distance exceeds the band, this returns a value
// larger than maxErrors (possibly not the exact distance), which is fine:
// the caller only needs to know the candidate fails the error threshold.
func bandedEditDistance(a, b []byte, band int) int {
	const inf = 1 << 30
	n, m := len(a), len(b)
	prev := make([]int, m+1)
	cur := make([]int, m+1)
	for j := 0; j <= m; j++ {
		if j <= band {
			prev[j] = j
		} else {
			prev[j] = inf
		}
	}
	for i := 1; i <= n; i++ {
		lo := i - band
		if lo < 0 {
			lo = 0
		}
		hi := i + band
		if hi > m {
			hi = m
		}
		for j := range cur {
			cur[j] = inf
		}
		if i-band <= 0 {
			cur[0] = i
		}
		for j := lo; j <= hi; j++ {
			if j == 0 {
				continue
			}
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			best := prev[j-1] + cost
			if del := prev[j] + 1; del < best {
				best = del
			}
			if ins := cur[j-1] + 1; ins < best {
				best = ins
			}
			cur[j] = best
		}
		prev, cur = cur, prev
	}
	return prev[m]
}
