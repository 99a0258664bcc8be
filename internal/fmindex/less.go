package fmindex

// lessTable holds, for each symbol c, the number of positions in the text
// whose byte value is strictly smaller than c — the standard FM-index "C"
// array used to translate a symbol into the start of its block in the
// suffix array.
type lessTable struct {
	less map[byte]int
}

func newLessTable(text []byte, symbols []byte) *lessTable {
	counts := make(map[byte]int, len(symbols))
	for _, c := range symbols {
		counts[c] = 0
	}
	for _, c := range text {
		counts[c]++
	}

	ordered := make([]byte, len(symbols))
	copy(ordered, symbols)
	// Sort symbols by byte value: suffix array order is plain byte order.
	for i := 1; i < len(ordered); i++ {
		for j := i; j > 0 && ordered[j-1] > ordered[j]; j-- {
			ordered[j-1], ordered[j] = ordered[j], ordered[j-1]
		}
	}

	less := make(map[byte]int, len(symbols))
	running := 0
	for _, c := range ordered {
		less[c] = running
		running += counts[c]
	}
	return &lessTable{less: less}
}

func (l *lessTable) Less(c byte) int {
	return l.less[c]
}
