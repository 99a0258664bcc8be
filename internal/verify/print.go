package verify

import (
	"fmt"

	"github.com/biogo/biogo/align"
	"github.com/biogo/biogo/alphabet"
	"github.com/biogo/biogo/seq/linear"
)

// alnScores is the match/mismatch/gap triple kortschak-loopy's cmd/catch
// uses for its --align flag default.
var alnScores = [3]int{1, -2, -3}

// makeTable builds a square align.SW scoring matrix sized to alpha.Len(),
// with the gap row/col at index 0, exactly as
// kortschak-loopy/cmd/catch/catch.go's makeTable does.
func makeTable(alpha alphabet.Alphabet, scores [3]int) align.SW {
	match, mismatch, gap := scores[0], scores[1], scores[2]
	sw := make(align.SW, alpha.Len())
	for i := range sw {
		row := make([]int, alpha.Len())
		for j := range row {
			row[j] = mismatch
		}
		row[i] = match
		sw[i] = row
	}
	for i := range sw {
		sw[0][i] = gap
		sw[i][0] = gap
	}
	return sw
}

// DebugAlignment renders the Smith-Waterman alignment of two confirmed
// overlap regions for --print, grounded on
// kortschak-loopy/cmd/catch/catch.go's makeTable/sw.Align/align.Format
// usage (including its alphabet.DNAgapped sequences, required so the
// matrix's gap row/col at index 0 lines up with the alphabet's own gap
// letter). It is purely cosmetic: the authoritative distance check is
// hammingDistance/bandedEditDistance in verify.go, never this.
func DebugAlignment(regionA, regionB []byte) (string, error) {
	sw := makeTable(alphabet.DNAgapped, alnScores)

	a := linear.NewSeq("A", alphabet.BytesToLetters(regionA), alphabet.DNAgapped)
	b := linear.NewSeq("B", alphabet.BytesToLetters(regionB), alphabet.DNAgapped)

	aln, err := sw.Align(a, b)
	if err != nil {
		return "", fmt.Errorf("verify: debug alignment failed: %w", err)
	}

	fa := align.Format(a, b, aln, '-')
	out := ""
	for _, seg := range fa {
		out += fmt.Sprintln(seg)
	}
	return out, nil
}
