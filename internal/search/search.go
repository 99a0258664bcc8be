// Package search implements the candidate generator of spec.md §4.4: a
// blockwise approximate backward search over the corpus's FM-index that
// turns one query id into every plausible (unoriented) overlap Candidate
// against the rest of the corpus.
//
// original_source's own candidate generator (src/search.rs) was not kept
// in this repository's retrieval pack — only main.rs, prepare.rs,
// structs.rs and modes/kucherov.rs were — so this package is built
// directly from spec.md §4.4's prose description, as its Open Question 2
// explicitly allows (DESIGN.md records the derivation).
package search

import (
	"fmt"

	"github.com/biogo-overlaps/overlaps/internal/config"
	"github.com/biogo-overlaps/overlaps/internal/corpus"
	"github.com/biogo-overlaps/overlaps/internal/fmindex"
	"github.com/biogo-overlaps/overlaps/internal/mode"
	"github.com/biogo-overlaps/overlaps/internal/overlap"
)

// Searcher generates candidates for one query id at a time against a
// shared, already-built index.
type Searcher struct {
	index *fmindex.Index
	mode  mode.Mode
	maps  *corpus.Maps
	cfg   *config.Config
	alpha []byte
}

// New returns a Searcher ready to answer GenerateCandidates for any id in
// maps.
func New(index *fmindex.Index, md mode.Mode, maps *corpus.Maps, cfg *config.Config) *Searcher {
	return &Searcher{index: index, mode: md, maps: maps, cfg: cfg, alpha: cfg.Alphabet()}
}

type candidateKey struct {
	idB           int
	overhangLeftA int
	overlapLen    int
}

// GenerateCandidates runs the blockwise backward search for idA and returns
// every surviving Candidate (deduplicated by target id / geometry, but not
// yet oriented or distance-verified — that is Verify's job).
//
// Edge cases handled here, per spec.md §4.4 and §8: a query shorter than
// the threshold yields no candidates; hitting a sentinel during backward
// extension empties that branch's interval and terminates it naturally
// (Extend only ever receives real alphabet symbols, never '$'/'#', so a
// branch landing on a sentinel position in the text simply fails to
// extend); self-hits (idB == idA) are discarded.
func (s *Searcher) GenerateCandidates(idA int) []overlap.Candidate {
	pattern := s.maps.String(idA)
	m := len(pattern)
	if m < s.cfg.Thresh {
		return nil
	}

	blocks := s.mode.BlockLengths(m, s.cfg.ErrRate, s.cfg.Thresh)
	cum := make([]int, len(blocks))
	total := 0
	for i, bl := range blocks {
		total += bl
		cum[i] = total
	}
	sParam := s.mode.FewestSuffixBlocks()

	// The loosest (final-block) error bound spec.md §4.4 step 3 ever
	// allows; pruning eagerly against it can never discard a branch that
	// would otherwise survive to a later check, since the bound is
	// non-decreasing in completed block count.
	maxErrorsEver := len(blocks) - sParam + 1
	if maxErrorsEver < 0 {
		maxErrorsEver = 0
	}

	g := &generator{
		s:             s,
		pattern:       pattern,
		idA:           idA,
		m:             m,
		cum:           cum,
		sParam:        sParam,
		maxErrorsEver: maxErrorsEver,
		seen:          make(map[candidateKey]bool),
	}
	g.dfs(s.index.InitInterval(), 0, 0)
	return g.results
}

type generator struct {
	s             *Searcher
	pattern       []byte
	idA           int
	m             int
	cum           []int
	sParam        int
	maxErrorsEver int
	seen          map[candidateKey]bool
	results       []overlap.Candidate
}

func completedBlocksAt(consumed int, cum []int) int {
	n := 0
	for _, v := range cum {
		if v > consumed {
			break
		}
		n++
	}
	return n
}

// dfs extends the matched pattern suffix one character at a time,
// prepending pattern[m-1-consumed] (the next character reading the query
// backward, per FM-index backward search), branching into every other
// alphabet symbol as a substitution error. Per spec.md §4.4 step 3, the
// accumulated error count is checked against the block budget at block
// boundaries, pruning over-budget branches there; admissibility for
// candidate emission (step 4) is otherwise re-checked after every single
// character, not only at boundaries. A true overlap's natural end (where
// its source string runs out and backward extension starts following an
// unrelated occurrence elsewhere in the corpus, or dies against a
// sentinel) essentially never lands exactly on a Kucherov block boundary,
// so restricting locate() to boundaries would silently drop real
// candidates; this costs extra locate() calls but never a false negative.
func (g *generator) dfs(iv fmindex.Interval, consumed, errors int) {
	if iv.Empty() || errors > g.maxErrorsEver {
		return
	}
	if consumed == g.m {
		g.checkBoundary(iv, consumed, errors, completedBlocksAt(consumed, g.cum))
		return
	}

	pos := g.m - 1 - consumed
	correct := g.pattern[pos]
	prevCompleted := completedBlocksAt(consumed, g.cum)

	for _, c := range g.s.alpha {
		nextErrors := errors
		if c != correct {
			nextErrors++
			if nextErrors > g.maxErrorsEver {
				continue
			}
		}
		nextIV := g.s.index.Extend(iv, c)
		if nextIV.Empty() {
			continue
		}
		nextConsumed := consumed + 1
		completed := completedBlocksAt(nextConsumed, g.cum)

		if completed > prevCompleted && nextErrors > completed-g.sParam+1 {
			continue // pruned: error budget exceeded at this boundary
		}
		if nextConsumed < g.m {
			g.checkBoundary(nextIV, nextConsumed, nextErrors, completed)
		}
		g.dfs(nextIV, nextConsumed, nextErrors)
	}
}

// checkBoundary admits the current interval as a candidate source once
// mode.IsCandidate holds, then classifies every located text position
// against the two boundary-touching geometries spec.md §4.4 step 4
// describes: a match anchored at some id B's start (B's real suffix
// meets A's real prefix — the ordinary dovetail overlap) or, once the
// whole query is consumed, a match anchored at B's end (A is a prefix of
// B — a containment candidate). Interior (non-boundary-touching) hits are
// repeat noise and are silently dropped; they cannot represent a valid
// suffix-prefix overlap.
func (g *generator) checkBoundary(iv fmindex.Interval, consumed, errors, completedBlocks int) {
	if !g.s.mode.IsCandidate(consumed, completedBlocks, g.s.cfg.Thresh, errors) {
		return
	}
	for _, pos := range g.s.index.Locate(iv) {
		idB, startB := g.s.maps.IDContaining(pos)
		if idB == g.idA {
			continue
		}
		lenB := g.s.maps.Length(idB)

		if pos == startB {
			g.emit(idB, consumed, consumed-lenB)
		}
		if consumed == g.m && pos+consumed == startB+lenB {
			g.emit(idB, consumed, 0)
		}
	}
}

func (g *generator) emit(idB, overlapLen, overhangLeftA int) {
	k := candidateKey{idB: idB, overhangLeftA: overhangLeftA, overlapLen: overlapLen}
	if g.seen[k] {
		return
	}
	g.seen[k] = true
	g.results = append(g.results, overlap.Candidate{
		IDB:           idB,
		OverlapA:      overlapLen,
		OverlapB:      overlapLen,
		OverhangLeftA: overhangLeftA,
		DebugStr:      fmt.Sprintf("idA=%d idB=%d overlap=%d", g.idA, idB, overlapLen),
	})
}
