package mode

import (
	"testing"

	check "gopkg.in/check.v1"
)

func Test(t *testing.T) { check.TestingT(t) }

type S struct{}

var _ = check.Suite(&S{})

func sum(xs []int) int {
	total := 0
	for _, x := range xs {
		total += x
	}
	return total
}

// TestBlockLengthPostConditions checks spec.md §4.3's two post-conditions
// hold for a spread of (m, errRate, thresh, S) satisfying the documented
// preconditions m >= thresh >= 1, errRate in (0,1), S >= 1. This is
// invariant 6 of spec.md §8.
func (s *S) TestBlockLengthPostConditions(c *check.C) {
	for _, sParam := range []int{1, 2, 3} {
		km, err := NewKucherov(sParam)
		c.Assert(err, check.IsNil)
		for _, thresh := range []int{1, 3, 5, 10} {
			for _, m := range []int{thresh, thresh + 1, thresh + 5, thresh + 30} {
				for _, errRate := range []float64{0.01, 0.05, 0.1, 0.2, 0.3} {
					blocks := km.BlockLengths(m, errRate, thresh)
					c.Assert(len(blocks) > 0, check.Equals, true)

					if m < thresh {
						continue // first-block shortcut case, no k-block structure.
					}

					// Recompute k exactly as BlockLengths does, to locate
					// the boundary the post-conditions apply to.
					l0 := firstIncreaseLength(m, errRate, thresh)
					k := maxInt(1, int(ceilFloat(errRate*float64(l0)))) + sParam - 1
					c.Assert(len(blocks) >= k, check.Equals, true)
					c.Check(sum(blocks[:k]), check.Equals, l0-1)
					c.Check(blocks[k-1] >= l0-thresh, check.Equals, true)
				}
			}
		}
	}
}

// firstIncreaseLength mirrors the ls[0] computation in BlockLengths,
// independently, purely for test oracle purposes.
func firstIncreaseLength(pattLen int, errRate float64, thresh int) int {
	for l := thresh; l <= pattLen; l++ {
		fLen := float64(l)
		if ceilFloat(errRate*(fLen-1)) < ceilFloat(errRate*fLen) {
			return l
		}
	}
	return pattLen + 1
}

func ceilFloat(x float64) float64 {
	i := int(x)
	if float64(i) < x {
		return float64(i + 1)
	}
	return float64(i)
}

func (s *S) TestBlockLengthsShortPattern(c *check.C) {
	km, err := NewKucherov(1)
	c.Assert(err, check.IsNil)
	c.Check(km.BlockLengths(3, 0.1, 5), check.DeepEquals, []int{3})
}

func (s *S) TestExactModeReducesToZeroErrorBudget(c *check.C) {
	// S=1: IsCandidate itself never has a zero budget once a block is
	// complete; with 3 completed blocks it allows 3-1+1 = 3 errors, so an
	// error-free candidate passes and a fourth error is rejected. The zero
	// error rate is enforced by the verifier, not by this predicate.
	km, err := NewKucherov(1)
	c.Assert(err, check.IsNil)
	c.Check(km.IsCandidate(10, 3, 5, 0), check.Equals, true)
	c.Check(km.IsCandidate(10, 3, 5, 4), check.Equals, false)
}

func (s *S) TestNewKucherovRejectsBadS(c *check.C) {
	_, err := NewKucherov(0)
	c.Check(err, check.NotNil)
	_, err = NewKucherov(-1)
	c.Check(err, check.NotNil)
}

func (s *S) TestIsCandidateRequiresThreshold(c *check.C) {
	km, err := NewKucherov(2)
	c.Assert(err, check.IsNil)
	c.Check(km.IsCandidate(4, 5, 5, 0), check.Equals, false) // below thresh
	c.Check(km.IsCandidate(5, 0, 5, 0), check.Equals, false) // completedBlocks must be > 0
}
