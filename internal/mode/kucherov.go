package mode

import (
	"fmt"
	"math"
)

// Kucherov implements the Kucherov-S block-partitioning strategy: an
// ordered-list-of-exact-match-blocks filter parameterized by an integer
// safety margin S, ported from original_source/src/modes/kucherov.rs.
type Kucherov struct {
	S int
}

// NewKucherov validates S (must be >= 1, per spec.md §4.3 and §7) and
// returns a ready-to-use Mode.
func NewKucherov(s int) (*Kucherov, error) {
	if s < 1 {
		return nil, fmt.Errorf("mode: Kucherov's S parameter must be >= 1, got %d", s)
	}
	return &Kucherov{S: s}, nil
}

func (k *Kucherov) String() string {
	return fmt.Sprintf("Kucherov S=%d", k.S)
}

func (k *Kucherov) GuaranteedExtraBlocks() int { return k.S }

func (k *Kucherov) FewestSuffixBlocks() int { return k.S }

func (k *Kucherov) Filter(completedBlocks, totalPatternBlocks, _blind int) int {
	if completedBlocks < totalPatternBlocks-k.S {
		return completedBlocks
	}
	return totalPatternBlocks - k.S
}

func (k *Kucherov) IsCandidate(generousOverlapLen, completedBlocks, thresh, errors int) bool {
	c1 := generousOverlapLen >= thresh
	c2 := completedBlocks > 0
	c3 := completedBlocks >= k.S-1 && errors <= completedBlocks-k.S+1
	return c1 && c2 && c3
}

// BlockLengths implements the algorithm of spec.md §4.3(a). It is a direct
// port of KucherovMode::get_block_lengths in original_source, translated
// term-for-term (same float ceil/floor arithmetic) rather than rewritten
// with integer-only formulas, so that edge-case rounding matches the
// source exactly.
func (k *Kucherov) BlockLengths(pattLen int, errRate float64, thresh int) []int {
	if pattLen < thresh {
		return []int{pattLen}
	}

	var ls []int
	for l := thresh; l <= pattLen; l++ {
		fLen := float64(l)
		if math.Ceil(errRate*(fLen-1)) < math.Ceil(errRate*fLen) {
			ls = append(ls, l)
		}
	}
	ls = append(ls, pattLen+1)

	kBlocks := maxInt(1, int(math.Ceil(errRate*float64(ls[0])))) + k.S - 1
	bigL := maxInt(ceilDiv(ls[0]-1, kBlocks), ls[0]-thresh)

	var p int
	if kBlocks-1 == 0 {
		// (ls[0]-1-bigL) is exactly 0 whenever kBlocks==1 (bigL ends up
		// equal to ls[0]-1 in that case), so the division this avoids is
		// 0/0 in the limit.
		p = 0
	} else {
		p = int(math.Floor(float64(ls[0]-1-bigL) / float64(kBlocks-1)))
	}
	firstHalfLen := p*(kBlocks-1) + bigL
	longer := ls[0] - 1 - firstHalfLen

	blockLengths := make([]int, 0, kBlocks+len(ls)-1)
	for i := 0; i < kBlocks-1-longer; i++ {
		blockLengths = append(blockLengths, p)
	}
	for i := 0; i < longer; i++ {
		blockLengths = append(blockLengths, p+1)
	}
	blockLengths = append(blockLengths, bigL)
	for i := 0; i < len(ls)-1; i++ {
		blockLengths = append(blockLengths, ls[i+1]-ls[i])
	}

	return blockLengths
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// ceilDiv computes ceil(a/b) via float64 arithmetic, matching the source's
// ((a as f32)/(b as f32)).ceil() rather than an integer ceiling formula,
// since a can be 0 and b can be 1 — equivalent either way, but this keeps
// BlockLengths a faithful term-for-term port.
func ceilDiv(a, b int) int {
	return int(math.Ceil(float64(a) / float64(b)))
}
