package arabic

// Levenshtein returns the edit distance between a and b, counted in runes.
// Uses the two-row dynamic programming formulation; cost is O(len(a)*len(b)).
func Levenshtein(a, b string) int {
	if a == b {
		return 0
	}
	ra := []rune(a)
	rb := []rune(b)
	if len(ra) == 0 {
		return len(rb)
	}
	if len(rb) == 0 {
		return len(ra)
	}

	prev := make([]int, len(rb)+1)
	curr := make([]int, len(rb)+1)
	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(ra); i++ {
		curr[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			del := prev[j] + 1
			ins := curr[j-1] + 1
			sub := prev[j-1] + cost
			m := del
			if ins < m {
				m = ins
			}
			if sub < m {
				m = sub
			}
			curr[j] = m
		}
		prev, curr = curr, prev
	}
	return prev[len(rb)]
}

// Similarity returns a score in [0,1] for how close a and b are:
// 1 - distance/max(len(a), len(b)), with lengths counted in runes.
// Identical strings score 1; an empty string against a non-empty one scores 0.
func Similarity(a, b string) float64 {
	if a == b {
		return 1.0
	}
	la := len([]rune(a))
	lb := len([]rune(b))
	if la == 0 || lb == 0 {
		return 0.0
	}
	max := la
	if lb > max {
		max = lb
	}
	return 1.0 - float64(Levenshtein(a, b))/float64(max)
}
