package verify

import (
	"testing"

	check "gopkg.in/check.v1"

	"github.com/biogo-overlaps/overlaps/internal/config"
	"github.com/biogo-overlaps/overlaps/internal/corpus"
	"github.com/biogo-overlaps/overlaps/internal/overlap"
)

func Test(t *testing.T) { check.TestingT(t) }

type S struct{}

var _ = check.Suite(&S{})

func (s *S) TestConfirmsCleanDovetailOverlap(c *check.C) {
	b := corpus.NewBuilder()
	c.Assert(b.AddRecord("A", []byte("CCCCAAA"), false), check.IsNil)
	c.Assert(b.AddRecord("B", []byte("GGGGCCCC"), false), check.IsNil)
	maps := b.Finish()

	cfg := &config.Config{ErrRate: 0.2, Thresh: 4}
	v := New(maps, cfg)

	cand := overlap.Candidate{IDB: 1, OverlapA: 4, OverlapB: 4, OverhangLeftA: -4}
	sol, ok := v.Confirm(0, cand)
	c.Assert(ok, check.Equals, true)
	c.Check(sol.IDA, check.Equals, 0)
	c.Check(sol.IDB, check.Equals, 1)
	c.Check(sol.OverhangLeftA, check.Equals, -4)
	c.Check(sol.OverhangRightB, check.Equals, -3)
	c.Check(sol.Errors, check.Equals, uint32(0))
	c.Check(sol.Orientation, check.Equals, overlap.Normal)
}

func (s *S) TestDiscardsContainmentByDefault(c *check.C) {
	b := corpus.NewBuilder()
	c.Assert(b.AddRecord("A", []byte("CCCCAAA"), false), check.IsNil)
	c.Assert(b.AddRecord("B", []byte("GGGCCCCAAA"), false), check.IsNil)
	maps := b.Finish()

	cand := overlap.Candidate{IDB: 1, OverlapA: 7, OverlapB: 7, OverhangLeftA: -3}

	cfg := &config.Config{ErrRate: 0.2, Thresh: 4}
	_, ok := New(maps, cfg).Confirm(0, cand)
	c.Check(ok, check.Equals, false)

	cfg.Inclusions = true
	sol, ok := New(maps, cfg).Confirm(0, cand)
	c.Assert(ok, check.Equals, true)
	c.Check(sol.OverlapA, check.Equals, 7)
}

func (s *S) TestRejectsOverErrorRate(c *check.C) {
	b := corpus.NewBuilder()
	c.Assert(b.AddRecord("A", []byte("CCCCAAA"), false), check.IsNil)
	c.Assert(b.AddRecord("B", []byte("GGGGCCCT"), false), check.IsNil) // last overlap base differs
	maps := b.Finish()

	cfg := &config.Config{ErrRate: 0.01, Thresh: 4}
	cand := overlap.Candidate{IDB: 1, OverlapA: 4, OverlapB: 4, OverhangLeftA: -4}
	_, ok := New(maps, cfg).Confirm(0, cand)
	c.Check(ok, check.Equals, false)
}

func (s *S) TestOrientationReversedWhenSecondaryIDInvolved(c *check.C) {
	b := corpus.NewBuilder()
	c.Assert(b.AddRecord("A", []byte("AAACCCC"), true), check.IsNil) // ids 0 (primary), 1 (secondary, read as CCCCAAA)
	c.Assert(b.AddRecord("B", []byte("GGGGCCCC"), false), check.IsNil) // id 2
	maps := b.Finish()

	cfg := &config.Config{ErrRate: 0.2, Thresh: 4}
	cand := overlap.Candidate{IDB: 2, OverlapA: 4, OverlapB: 4, OverhangLeftA: -4}
	sol, ok := New(maps, cfg).Confirm(1, cand)
	c.Assert(ok, check.Equals, true)
	c.Check(sol.Orientation, check.Equals, overlap.Reversed)
}

func (s *S) TestBandedEditDistanceToleratesOneIndel(c *check.C) {
	c.Check(bandedEditDistance([]byte("ACGTACGT"), []byte("ACGTACGT"), 2), check.Equals, 0)
	c.Check(bandedEditDistance([]byte("ACGTACGT"), []byte("ACGTCGT"), 2), check.Equals, 1)
}
