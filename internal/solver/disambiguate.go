package solver

import (
	"sort"
	"strings"

	mapset "github.com/deckarep/golang-set/v2"

	"github.com/robalobadob/wordle/apps/go-solver/internal/pattern"
)

// ShouldProbe reports whether the state is close enough to convergence for a probe
// guess: something was tried, fewer than maxTried guesses were spent, and more than
// two candidates remain.
func ShouldProbe(triedCount, poolSize, maxTried int) bool {
	return triedCount >= 1 && triedCount < maxTried && poolSize > 2
}

// AmbiguousPositions returns the positions where the candidates disagree.
func AmbiguousPositions(candidates []string) []int {
	var out []int
	if len(candidates) == 0 {
		return out
	}
	for i := 0; i < pattern.Size; i++ {
		first := candidates[0][i]
		for _, w := range candidates[1:] {
			if w[i] != first {
				out = append(out, i)
				break
			}
		}
	}
	return out
}

// Disambiguate picks a probe guess from universe when the candidates differ in exactly
// one or two positions. The probe is meant to be wasted: its feedback tells the
// ambiguous letters apart.
//
//   - One ambiguous position: the letters found there, in first-seen order.
//   - Two ambiguous positions: the sorted letters of each position, concatenated and
//     cut to five.
//
// The universe word containing the most of those letters wins; earlier words win ties
// and tried words are skipped. It reports false for any other number of ambiguous
// positions, or when no untried word covers a single letter.
func Disambiguate(universe, candidates []string, tried mapset.Set[string]) (string, bool) {
	var letters []byte
	switch pos := AmbiguousPositions(candidates); len(pos) {
	case 1:
		letters = lettersAt(candidates, pos[0], false)
	case 2:
		letters = append(lettersAt(candidates, pos[0], true), lettersAt(candidates, pos[1], true)...)
		if len(letters) > pattern.Size {
			letters = letters[:pattern.Size]
		}
	default:
		return "", false
	}

	best, bestCover := "", 0
	for _, w := range universe {
		if tried != nil && tried.Contains(w) {
			continue
		}
		if c := coverage(w, letters); c > bestCover {
			best, bestCover = w, c
		}
	}
	return best, bestCover > 0
}

// lettersAt collects the distinct letters at position i, in first-seen order or sorted.
func lettersAt(candidates []string, i int, sorted bool) []byte {
	var seen [26]bool
	var out []byte
	for _, w := range candidates {
		c := w[i]
		if !seen[c-'a'] {
			seen[c-'a'] = true
			out = append(out, c)
		}
	}
	if sorted {
		sort.Slice(out, func(a, b int) bool { return out[a] < out[b] })
	}
	return out
}

// coverage counts the entries of letters that occur anywhere in w.
func coverage(w string, letters []byte) int {
	n := 0
	for _, c := range letters {
		if strings.IndexByte(w, c) >= 0 {
			n++
		}
	}
	return n
}
