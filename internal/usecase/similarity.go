package usecase

import (
	"strings"
	"unicode"
)

// similarityRatio returns a case-insensitive similarity score in [0,100] between two strings.
// It is the indel-normalized edit distance: 100 * (1 - distance / (len(a)+len(b))),
// where a substitution costs two edits (one deletion plus one insertion).
// The ratio is symmetric and two empty strings are identical.
func similarityRatio(a, b string) float64 {
	r1 := []rune(strings.ToLower(a))
	r2 := []rune(strings.ToLower(b))

	total := len(r1) + len(r2)
	if total == 0 {
		return 100
	}

	distance := editDistance(r1, r2, 2)
	return 100 * float64(total-distance) / float64(total)
}

// editDistance calculates the edit distance between two rune slices with unit
// insertion/deletion cost and the given substitution cost.
func editDistance(r1, r2 []rune, substitutionCost int) int {
	m := len(r1)
	n := len(r2)
	if m == 0 {
		return n
	}
	if n == 0 {
		return m
	}

	// Two rows instead of the full matrix
	prev := make([]int, n+1)
	curr := make([]int, n+1)

	for j := 0; j <= n; j++ {
		prev[j] = j
	}

	for i := 1; i <= m; i++ {
		curr[0] = i
		for j := 1; j <= n; j++ {
			cost := 0
			if r1[i-1] != r2[j-1] {
				cost = substitutionCost
			}
			curr[j] = min(
				prev[j]+1,      // deletion
				curr[j-1]+1,    // insertion
				prev[j-1]+cost, // substitution
			)
		}
		prev, curr = curr, prev
	}

	return prev[n]
}

// wordSet splits text into its distinct lowercase words.
// Letters, digits, '+' and '#' are word characters so "c++" and "c#" survive.
func wordSet(text string) map[string]struct{} {
	words := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !(unicode.IsLetter(r) || unicode.IsDigit(r) || r == '+' || r == '#')
	})

	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}
