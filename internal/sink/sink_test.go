package sink

import (
	"bytes"
	"errors"
	"testing"

	check "gopkg.in/check.v1"

	"github.com/biogo-overlaps/overlaps/internal/corpus"
	"github.com/biogo-overlaps/overlaps/internal/overlap"
)

func Test(t *testing.T) { check.TestingT(t) }

type S struct{}

var _ = check.Suite(&S{})

func buildMaps(c *check.C) *corpus.Maps {
	b := corpus.NewBuilder()
	c.Assert(b.AddRecord("r1", []byte("ACGT"), false), check.IsNil)
	c.Assert(b.AddRecord("r2", []byte("GGCC"), false), check.IsNil)
	return b.Finish()
}

func (s *S) TestWritesHeaderAndRow(c *check.C) {
	maps := buildMaps(c)
	var buf bytes.Buffer
	w, err := New(&buf, maps, true)
	c.Assert(err, check.IsNil)

	sol := overlap.Solution{IDA: 0, IDB: 1, Orientation: overlap.Normal, OverhangLeftA: -2, OverhangRightB: 3, OverlapA: 4, OverlapB: 4, Errors: 1}
	c.Assert(w.Write(sol), check.IsNil)
	c.Assert(w.Flush(), check.IsNil)

	out := buf.String()
	c.Check(out, check.Equals, Header+"\n"+"r1\tr2\tN\t-2\t3\t4\t4\t1\n")
}

func (s *S) TestNoHeaderWhenFormatLineFalse(c *check.C) {
	maps := buildMaps(c)
	var buf bytes.Buffer
	w, err := New(&buf, maps, false)
	c.Assert(err, check.IsNil)
	c.Assert(w.Write(overlap.Solution{IDA: 1, IDB: 0, Orientation: overlap.Reversed}), check.IsNil)
	c.Assert(w.Flush(), check.IsNil)
	c.Check(buf.String(), check.Equals, "r2\tr1\tI\t0\t0\t0\t0\t0\n")
}

type failingWriter struct{}

func (failingWriter) Write(p []byte) (int, error) { return 0, errors.New("disk full") }

func (s *S) TestFlushFailureMarksFailed(c *check.C) {
	maps := buildMaps(c)
	w, err := New(failingWriter{}, maps, false)
	c.Assert(err, check.IsNil)
	c.Assert(w.Write(overlap.Solution{IDA: 0, IDB: 1}), check.IsNil) // buffered, not yet flushed
	c.Check(w.Flush(), check.NotNil)
	c.Check(w.Failed(), check.Equals, true)
}
