package services

import "strings"

// Confidence bonuses. A candidate starting with the query earns both: the
// bonuses stack, then the total is clamped to 1.
const (
	prefixBonus    = 0.2
	substringBonus = 0.1
)

// EditDistance returns the Levenshtein distance between a and b: the minimum
// number of single-rune insertions, deletions and substitutions transforming
// one into the other. No transpositions, cost 1 per edit.
func EditDistance(a, b string) int {
	ra := []rune(a)
	rb := []rune(b)

	if len(ra) == 0 {
		return len(rb)
	}
	if len(rb) == 0 {
		return len(ra)
	}

	// Standard DP recurrence, one row at a time.
	prev := make([]int, len(ra)+1)
	curr := make([]int, len(ra)+1)
	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(rb); i++ {
		curr[0] = i
		for j := 1; j <= len(ra); j++ {
			cost := 1
			if rb[i-1] == ra[j-1] {
				cost = 0
			}
			curr[j] = min3(
				prev[j-1]+cost, // substitute
				curr[j-1]+1,    // insert
				prev[j]+1,      // delete
			)
		}
		prev, curr = curr, prev
	}

	return prev[len(ra)]
}

// Similarity returns a normalised, case-insensitive similarity in [0,1]:
// 1 - editDistance/maxLen. Two empty strings are identical (1).
func Similarity(a, b string) float64 {
	la := strings.ToLower(a)
	lb := strings.ToLower(b)

	maxLen := len([]rune(la))
	if n := len([]rune(lb)); n > maxLen {
		maxLen = n
	}
	if maxLen == 0 {
		return 1
	}

	return 1 - float64(EditDistance(la, lb))/float64(maxLen)
}

// Confidence blends similarity with positional bonuses: +0.2 when the
// candidate starts with the query, +0.1 when it contains the query anywhere,
// clamped to 1.
func Confidence(query, candidate string) float64 {
	lq := strings.ToLower(query)
	lc := strings.ToLower(candidate)

	score := Similarity(query, candidate)
	if strings.HasPrefix(lc, lq) {
		score += prefixBonus
	}
	if strings.Contains(lc, lq) {
		score += substringBonus
	}

	if score > 1 {
		return 1
	}
	return score
}

func min3(a, b, c int) int {
	if b < a {
		a = b
	}
	if c < a {
		a = c
	}
	return a
}
