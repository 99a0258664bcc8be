package fmindex

import "sort"

// buildSuffixArray computes the suffix array of text by the prefix-doubling
// (Manber-Myers) method: O(n log n) comparisons per round, O(n log^2 n)
// overall with the sort.Slice calls below. The FM-index built on it relies
// on text ending with a byte smaller than every other byte in text (the
// corpus's '#' terminator); Build does not check this.
func buildSuffixArray(text []byte) []int {
	n := len(text)
	sa := make([]int, n)
	rank := make([]int, n)
	tmp := make([]int, n)

	for i := 0; i < n; i++ {
		sa[i] = i
		rank[i] = int(text[i])
	}

	for k := 1; ; k *= 2 {
		key := func(i int) (int, int) {
			r1 := rank[i]
			r2 := -1
			if i+k < n {
				r2 = rank[i+k]
			}
			return r1, r2
		}
		sort.Slice(sa, func(a, b int) bool {
			a1, a2 := key(sa[a])
			b1, b2 := key(sa[b])
			if a1 != b1 {
				return a1 < b1
			}
			return a2 < b2
		})

		tmp[sa[0]] = 0
		for i := 1; i < n; i++ {
			tmp[sa[i]] = tmp[sa[i-1]]
			a1, a2 := key(sa[i-1])
			b1, b2 := key(sa[i])
			if a1 != b1 || a2 != b2 {
				tmp[sa[i]]++
			}
		}
		copy(rank, tmp)

		if rank[sa[n-1]] == n-1 {
			break
		}
	}

	return sa
}

// buildBWT derives the Burrows-Wheeler transform from text and its suffix
// array: bwt[i] = text[sa[i]-1], or text[n-1] when sa[i] == 0.
func buildBWT(text []byte, sa []int) []byte {
	n := len(text)
	bwt := make([]byte, n)
	for i, s := range sa {
		if s == 0 {
			bwt[i] = text[n-1]
		} else {
			bwt[i] = text[s-1]
		}
	}
	return bwt
}
