// Package correction maps raw, possibly misspelled search terms onto the
// closest term seen before.
package correction

import (
	"math"
	"sort"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
)

// Process folds case, replaces every rune that is not a letter or digit with a
// space and trims the result.
func Process(s string) string {
	folded := cases.Fold().String(s)
	cleaned := strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return r
		}
		return ' '
	}, folded)
	return strings.TrimSpace(cleaned)
}

// sortedTokens processes s and re-joins its tokens in lexical order.
func sortedTokens(s string) string {
	tokens := strings.Fields(Process(s))
	sort.Strings(tokens)
	return strings.Join(tokens, " ")
}

// TokenSortRatio scores a and b in [0,100] after sorting their tokens, so
// "biscuit chocolate" and "chocolate biscuit" score 100.
func TokenSortRatio(a, b string) int {
	return Ratio(sortedTokens(a), sortedTokens(b))
}

// Ratio is the Levenshtein indel similarity of a and b scaled to [0,100]:
// 2*LCS / (len(a)+len(b)), rounded. Either string empty scores 0, so two
// inputs that are both blank after Process never match each other. Halves
// round away from zero, not to even.
func Ratio(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	total := len(ra) + len(rb)
	if len(ra) == 0 || len(rb) == 0 {
		return 0
	}
	lcs := longestCommonSubsequence(ra, rb)
	return int(math.Round(100 * float64(2*lcs) / float64(total)))
}

func longestCommonSubsequence(a, b []rune) int {
	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for i := 1; i <= len(a); i++ {
		for j := 1; j <= len(b); j++ {
			switch {
			case a[i-1] == b[j-1]:
				curr[j] = prev[j-1] + 1
			case prev[j] >= curr[j-1]:
				curr[j] = prev[j]
			default:
				curr[j] = curr[j-1]
			}
		}
		prev, curr = curr, prev
	}
	return prev[len(b)]
}
