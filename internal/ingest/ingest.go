// Package ingest loads a multi-record FASTA file into a corpus.Builder,
// the concrete collaborator spec.md §6 leaves unspecified beyond the
// (name, bytes) contract it feeds Maps.
package ingest

import (
	"fmt"
	"io"

	"github.com/biogo/biogo/alphabet"
	"github.com/biogo/biogo/io/seqio"
	"github.com/biogo/biogo/io/seqio/fasta"
	"github.com/biogo/biogo/seq/linear"

	"github.com/biogo-overlaps/overlaps/internal/corpus"
)

// ParseError is the Parse-kind fatal error spec.md §7 requires: a malformed
// or rejected record, reported with its 0-based index in the input file.
type ParseError struct {
	RecordIndex int
	Name        string
	Err         error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("ingest: record %d (%q): %v", e.RecordIndex, e.Name, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Load reads every record from r as FASTA, the same fasta.NewReader/
// seqio.NewScanner idiom seqstats.go and packseqs.go use, and feeds each
// one to b.AddRecord. The reader's template uses alphabet.DNAredundant
// (rather than the plain 4-letter alphabet.DNA most of the pack's
// fixed-ACGT tools use) since records containing N must parse cleanly
// whether or not nAlphabet strips them afterwards. Bytes are case-folded
// to upper case; N is stripped unless nAlphabet is true (in which case it
// passes through as a 5th symbol), matching spec.md §6's "case folded to
// upper... otherwise strip N" input-format note. reversals is forwarded
// unchanged to AddRecord.
func Load(r io.Reader, b *corpus.Builder, nAlphabet, reversals bool) error {
	template := linear.NewSeq("", nil, alphabet.DNAredundant)
	fr := fasta.NewReader(r, template)
	sc := seqio.NewScanner(fr)

	idx := 0
	for sc.Next() {
		s := sc.Seq().(*linear.Seq)
		name := s.Name()
		raw := make([]byte, len(s.Seq))
		for i, l := range s.Seq {
			raw[i] = byte(l)
		}

		clean := cleanBytes(raw, nAlphabet)
		if err := b.AddRecord(name, clean, reversals); err != nil {
			return &ParseError{RecordIndex: idx, Name: name, Err: err}
		}
		idx++
	}
	if err := sc.Error(); err != nil {
		return &ParseError{RecordIndex: idx, Name: "", Err: err}
	}
	return nil
}

func cleanBytes(raw []byte, nAlphabet bool) []byte {
	out := make([]byte, 0, len(raw))
	for _, c := range raw {
		if c >= 'a' && c <= 'z' {
			c -= 'a' - 'A'
		}
		if c == 'N' && !nAlphabet {
			continue
		}
		out = append(out, c)
	}
	return out
}
