package search

import (
	"testing"

	check "gopkg.in/check.v1"

	"github.com/biogo-overlaps/overlaps/internal/config"
	"github.com/biogo-overlaps/overlaps/internal/corpus"
	"github.com/biogo-overlaps/overlaps/internal/fmindex"
	"github.com/biogo-overlaps/overlaps/internal/mode"
)

func Test(t *testing.T) { check.TestingT(t) }

type S struct{}

var _ = check.Suite(&S{})

func buildCorpus(c *check.C, records map[string]string, order []string, reversals bool) *corpus.Maps {
	b := corpus.NewBuilder()
	for _, name := range order {
		c.Assert(b.AddRecord(name, []byte(records[name]), reversals), check.IsNil)
	}
	return b.Finish()
}

func buildIndex(c *check.C, maps *corpus.Maps, cfg *config.Config) *fmindex.Index {
	idx, err := fmindex.Build(maps.Text(), cfg.IndexAlphabet(), 4)
	c.Assert(err, check.IsNil)
	return idx
}

// TestFindsFullContainmentOverlap builds a 10bp B and a 7bp A that is
// exactly B's trailing substring (A fully consumed, overlap reaching B's
// real end but not B's start) and checks the search surfaces it with the
// geometry spec.md §4.4 describes.
func (s *S) TestFindsFullContainmentOverlap(c *check.C) {
	records := map[string]string{"A": "CCCCAAA", "B": "GGGCCCCAAA"}
	maps := buildCorpus(c, records, []string{"A", "B"}, false)
	cfg := &config.Config{ErrRate: 0.2, Thresh: 4, ModeName: "kucherov", ModeArgs: []string{"1"}}
	km, err := mode.New(cfg.ModeName, cfg.ModeArgs)
	c.Assert(err, check.IsNil)
	idx := buildIndex(c, maps, cfg)

	sr := New(idx, km, maps, cfg)
	cands := sr.GenerateCandidates(0) // id0 == "A"

	var found *struct {
		overhang, overlapA, overlapB int
	}
	for _, cand := range cands {
		if cand.IDB == 1 && cand.OverlapA == 7 {
			found = &struct{ overhang, overlapA, overlapB int }{cand.OverhangLeftA, cand.OverlapA, cand.OverlapB}
		}
	}
	c.Assert(found, check.NotNil)
	c.Check(found.overhang, check.Equals, -3)
	c.Check(found.overlapA, check.Equals, 7)
	c.Check(found.overlapB, check.Equals, 7)
}

func (s *S) TestShortPatternYieldsNoCandidates(c *check.C) {
	records := map[string]string{"A": "CC", "B": "GGGCCCCAAA"}
	maps := buildCorpus(c, records, []string{"A", "B"}, false)
	cfg := &config.Config{ErrRate: 0.2, Thresh: 4, ModeName: "kucherov", ModeArgs: []string{"1"}}
	km, err := mode.New(cfg.ModeName, cfg.ModeArgs)
	c.Assert(err, check.IsNil)
	idx := buildIndex(c, maps, cfg)

	sr := New(idx, km, maps, cfg)
	c.Check(sr.GenerateCandidates(0), check.IsNil)
}

func (s *S) TestSelfHitsDiscarded(c *check.C) {
	records := map[string]string{"A": "CCCCAAAGGG"}
	maps := buildCorpus(c, records, []string{"A"}, false)
	cfg := &config.Config{ErrRate: 0.2, Thresh: 4, ModeName: "kucherov", ModeArgs: []string{"1"}}
	km, err := mode.New(cfg.ModeName, cfg.ModeArgs)
	c.Assert(err, check.IsNil)
	idx := buildIndex(c, maps, cfg)

	sr := New(idx, km, maps, cfg)
	for _, cand := range sr.GenerateCandidates(0) {
		c.Check(cand.IDB == 0, check.Equals, false)
	}
}
