package fuzzy

import (
	"math"
	"strings"
	"unicode/utf8"
)

// MinScore is the sentinel returned when either input is empty. Ranking
// treats anything strictly above it as a match.
const MinScore = math.MinInt32 / 2

// Score computes the relevance of candidateNorm for queryNorm. Both inputs
// must already be normalized via Normalize. Higher is better; exact matches
// short-circuit to 500.
func Score(queryNorm, candidateNorm string) int {
	if queryNorm == "" || candidateNorm == "" {
		return MinScore
	}
	if queryNorm == candidateNorm {
		return 500
	}

	score := 0

	// Global prefix bonus
	if strings.HasPrefix(candidateNorm, queryNorm) {
		score += 120
	}

	// Subsequence and adjacency bonuses
	if positions, ok := subsequencePositions(queryNorm, candidateNorm); ok {
		score += 60
		score += bestConsecutiveStreak(positions) * 6
		score += boundaryHits(positions, candidateNorm) * 8
	}

	// Token-level features
	qTokens := strings.Fields(queryNorm)
	cTokens := strings.Fields(candidateNorm)
	if len(qTokens) > 0 && len(cTokens) > 0 {
		exact := tokenExactMatches(qTokens, cTokens)
		score += exact * 40
		score += tokenPrefixMatches(qTokens, cTokens) * 24
		score += tokenOverlapCount(qTokens, cTokens) * 18
	}

	// Acronym match (e.g. "eb" -> "enchanted book")
	if isAcronymSubsequence(queryNorm, cTokens) {
		score += 45
	}

	// Edit distance penalty (bounded)
	score -= boundedLev(queryNorm, candidateNorm, 3) * 12

	// Length proximity
	lenDiff := len(candidateNorm) - len(queryNorm)
	if lenDiff < 0 {
		lenDiff = -lenDiff
	}
	if lenDiff > 12 {
		lenDiff = 12
	}
	score -= lenDiff

	return score
}

// isSubsequence reports whether every rune of needle appears in hay in
// order, not necessarily contiguously.
func isSubsequence(needle, hay string) bool {
	rest := hay
	for _, ch := range needle {
		idx := strings.IndexRune(rest, ch)
		if idx < 0 {
			return false
		}
		rest = rest[idx+utf8.RuneLen(ch):]
	}
	return true
}

func tokenExactMatches(a, b []string) int {
	setA := make(map[string]struct{}, len(a))
	for _, t := range a {
		setA[t] = struct{}{}
	}
	setB := make(map[string]struct{}, len(b))
	for _, t := range b {
		setB[t] = struct{}{}
	}
	count := 0
	for t := range setA {
		if _, ok := setB[t]; ok {
			count++
		}
	}
	return count
}

func tokenPrefixMatches(a, b []string) int {
	count := 0
	for _, qa := range a {
		for _, t := range b {
			if strings.HasPrefix(t, qa) {
				count++
				break
			}
		}
	}
	return count
}

// tokenOverlapCount intentionally reuses the exact-intersection count,
// doubling that signal's weight in the final score.
func tokenOverlapCount(a, b []string) int {
	return tokenExactMatches(a, b)
}

func isAcronymSubsequence(queryNorm string, cTokens []string) bool {
	if len(cTokens) == 0 || len(queryNorm) > len(cTokens) {
		return false
	}
	var acronym strings.Builder
	for _, t := range cTokens {
		r, _ := utf8.DecodeRuneInString(t)
		if r != utf8.RuneError {
			acronym.WriteRune(r)
		}
	}
	return isSubsequence(queryNorm, acronym.String())
}

// subsequencePositions finds, for each rune of needle, the first occurrence
// in hay strictly after the previous match, and returns the matched byte
// offsets. Returns false if any rune is unmatched.
func subsequencePositions(needle, hay string) ([]int, bool) {
	positions := make([]int, 0, len(needle))
	start := 0
	last := 0
	for _, ch := range needle {
		idx := strings.IndexRune(hay[start:], ch)
		if idx < 0 {
			return nil, false
		}
		pos := start + idx
		positions = append(positions, pos)
		last = pos
		start = pos + utf8.RuneLen(ch)
	}
	if len(positions) == 0 {
		return nil, false
	}
	for i := 1; i < len(positions); i++ {
		if positions[i-1] >= positions[i] {
			// Monotonicity broken (shouldn't happen): fall back to the last
			// matched position rather than failing outright.
			return []int{last}, true
		}
	}
	return positions, true
}

// bestConsecutiveStreak returns the length of the longest run of adjacent
// match positions.
func bestConsecutiveStreak(positions []int) int {
	if len(positions) == 0 {
		return 0
	}
	best, cur := 1, 1
	for i := 1; i < len(positions); i++ {
		if positions[i] == positions[i-1]+1 {
			cur++
			if cur > best {
				best = cur
			}
		} else {
			cur = 1
		}
	}
	return best
}

// boundaryHits counts match positions that land at the start of hay or
// immediately after a space.
func boundaryHits(positions []int, hay string) int {
	if len(positions) == 0 {
		return 0
	}
	boundaries := map[int]struct{}{0: {}}
	for i, ch := range hay {
		if ch == ' ' && i+1 < len(hay) {
			boundaries[i+1] = struct{}{}
		}
	}
	count := 0
	for _, p := range positions {
		if _, ok := boundaries[p]; ok {
			count++
		}
	}
	return count
}

// boundedLev computes the Levenshtein distance between a and b, stopping
// early and reporting bound+1 once every cell in a row exceeds bound.
func boundedLev(a, b string, bound int) int {
	ab, bb := []byte(a), []byte(b)
	n, m := len(ab), len(bb)
	if n == 0 {
		return minInt(m, bound+1)
	}
	if m == 0 {
		return minInt(n, bound+1)
	}

	prev := make([]int, m+1)
	curr := make([]int, m+1)
	for j := 0; j <= m; j++ {
		prev[j] = j
	}

	for i := 1; i <= n; i++ {
		curr[0] = i
		rowMin := curr[0]

		for j := 1; j <= m; j++ {
			cost := 1
			if ab[i-1] == bb[j-1] {
				cost = 0
			}
			curr[j] = minInt(prev[j]+1, minInt(curr[j-1]+1, prev[j-1]+cost))
			if curr[j] < rowMin {
				rowMin = curr[j]
			}
		}

		if rowMin > bound {
			return bound + 1
		}
		prev, curr = curr, prev
	}
	return minInt(prev[m], bound+1)
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
