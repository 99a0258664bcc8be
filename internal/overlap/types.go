// Package overlap holds the data types shared by the search, verify and
// pipeline stages of the overlap engine: unoriented Candidates produced by
// the seed search, and oriented Solutions produced by verification.
package overlap

import "fmt"

// Orientation records whether a Solution derives from both strings in
// their stored orientation (Normal) or from the paired reverse id
// (Reversed).
type Orientation int

const (
	Normal Orientation = iota
	Reversed
)

// String renders the single-letter form used in the TSV output format.
func (o Orientation) String() string {
	if o == Normal {
		return "N"
	}
	return "I"
}

// Candidate is an unoriented, unverified potential overlap between the
// query pattern and some target id B, as produced by Search.
type Candidate struct {
	IDB            int
	OverlapA       int
	OverlapB       int
	OverhangLeftA  int
	DebugStr       string
}

// A1 is the start offset of the matched region within the query string A.
func (c *Candidate) A1() int {
	if c.OverhangLeftA > 0 {
		return c.OverhangLeftA
	}
	return 0
}

// B1 is the start offset of the matched region within the target string B.
func (c *Candidate) B1() int {
	if c.OverhangLeftA < 0 {
		return -c.OverhangLeftA
	}
	return 0
}

// A2 is the length of the matched region on A.
func (c *Candidate) A2() int { return c.OverlapA }

// B2 is the length of the matched region on B.
func (c *Candidate) B2() int { return c.OverlapB }

// A3 is the length of the unpaired suffix of A beyond the matched region,
// given the full length of A.
func (c *Candidate) A3(aLen int) int {
	if aLen < c.A1()+c.OverlapA {
		panic(fmt.Sprintf("overlap: candidate overruns A: len=%d a1=%d overlapA=%d", aLen, c.A1(), c.OverlapA))
	}
	return aLen - c.A1() - c.A2()
}

// B3 is the length of the unpaired suffix of B beyond the matched region,
// given the full length of B.
func (c *Candidate) B3(bLen int) int {
	if bLen < c.B1()+c.OverlapB {
		panic(fmt.Sprintf("overlap: candidate overruns B: len=%d b1=%d overlapB=%d", bLen, c.B1(), c.OverlapB))
	}
	return bLen - c.B1() - c.B2()
}

// Solution is a verified, oriented overlap record.
type Solution struct {
	IDA            int
	IDB            int
	Orientation    Orientation
	OverhangLeftA  int
	OverhangRightB int
	OverlapA       int
	OverlapB       int
	Errors         uint32
	CIGAR          string
}

// Key is the tuple that determines Solution equality and hashing: errors
// and CIGAR are explicitly excluded. Output ordering does not use Key;
// internal/pipeline sorts by record names.
type Key struct {
	IDA            int
	IDB            int
	Orientation    Orientation
	OverhangLeftA  int
	OverhangRightB int
	OverlapA       int
	OverlapB       int
}

// Key returns the identity tuple for this Solution.
func (s *Solution) Key() Key {
	return Key{
		IDA:            s.IDA,
		IDB:            s.IDB,
		Orientation:    s.Orientation,
		OverhangLeftA:  s.OverhangLeftA,
		OverhangRightB: s.OverhangRightB,
		OverlapA:       s.OverlapA,
		OverlapB:       s.OverlapB,
	}
}

// VFlip swaps A and B, negating both overhangs. Applying it twice is the
// identity.
func (s *Solution) VFlip() {
	s.OverhangLeftA *= -1
	s.OverhangRightB *= -1
	s.IDA, s.IDB = s.IDB, s.IDA
	s.OverlapA, s.OverlapB = s.OverlapB, s.OverlapA
}

// UnReverse swaps left and right overhangs, then negates both. Applying it
// twice is the identity.
func (s *Solution) UnReverse() {
	s.OverhangLeftA, s.OverhangRightB = s.OverhangRightB, s.OverhangLeftA
	s.OverhangLeftA *= -1
	s.OverhangRightB *= -1
}
