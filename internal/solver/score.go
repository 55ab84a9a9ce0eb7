// apps/go-solver/internal/solver/score.go
//
// Frequency heuristic and information-gain ranking.
// Responsibilities:
//   - Letter frequency tables derived from the current candidates.
//   - Heuristic word score (absolute + positional frequency, repeated-letter penalty).
//   - Entropy of a guess over the candidates (expected bits of feedback).
//   - Two-stage selection: top-K by score, then maximum entropy within the shortlist.
package solver

import (
	"math"
	"sort"

	mapset "github.com/deckarep/golang-set/v2"

	"github.com/robalobadob/wordle/apps/go-solver/internal/pattern"
)

// Frequencies holds letter counts over a set of words.
//   - Letter[c]: total occurrences of letter c (every occurrence counts).
//   - Positional[i][c]: number of words with letter c at position i.
type Frequencies struct {
	Letter     [26]int
	Positional [pattern.Size][26]int
}

// NewFrequencies scans words from scratch.
func NewFrequencies(words []string) Frequencies {
	var f Frequencies
	for _, w := range words {
		for i := 0; i < pattern.Size; i++ {
			c := w[i] - 'a'
			f.Letter[c]++
			f.Positional[i][c]++
		}
	}
	return f
}

// Score rates word against the frequency tables. Tried words score negative infinity.
//
// Each distinct letter adds its absolute frequency once; every position adds the
// positional frequency of its letter. The sum is scaled by distinct/5 so words with
// repeated letters rank lower.
func Score(word string, f Frequencies, tried mapset.Set[string]) float64 {
	if tried != nil && tried.Contains(word) {
		return math.Inf(-1)
	}
	var seen [26]bool
	distinct, sum := 0, 0
	for i := 0; i < pattern.Size; i++ {
		c := word[i] - 'a'
		if !seen[c] {
			seen[c] = true
			distinct++
			sum += f.Letter[c]
		}
		sum += f.Positional[i][c]
	}
	return float64(sum) * float64(distinct) / pattern.Size
}

// Entropy returns the expected information, in bits, of the feedback guess would
// receive if every candidate were equally likely to be the target.
func Entropy(guess string, candidates []string) float64 {
	if len(candidates) == 0 {
		return 0
	}
	// partitions are summed in first-seen order so equal entropies round identically
	slot := make(map[pattern.Pattern]int, len(candidates))
	var counts []int
	for _, w := range candidates {
		p := pattern.Compute(guess, w)
		i, ok := slot[p]
		if !ok {
			i = len(counts)
			slot[p] = i
			counts = append(counts, 0)
		}
		counts[i]++
	}
	n := float64(len(candidates))
	h := 0.0
	for _, c := range counts {
		p := float64(c) / n
		h -= p * math.Log2(p)
	}
	return h
}

type scored struct {
	word  string
	score float64
}

// shortlist ranks the untried candidates by Score, descending, keeping word-list order
// among equal scores, and truncates to k.
func shortlist(candidates []string, f Frequencies, tried mapset.Set[string], k int) []scored {
	ranked := make([]scored, 0, len(candidates))
	for _, w := range candidates {
		if tried != nil && tried.Contains(w) {
			continue
		}
		ranked = append(ranked, scored{word: w, score: Score(w, f, tried)})
	}
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].score > ranked[j].score })
	if k > 0 && len(ranked) > k {
		ranked = ranked[:k]
	}
	return ranked
}

// pickByEntropy returns the shortlisted word with the highest entropy over candidates.
// Ties go to the earlier shortlist entry.
func pickByEntropy(top []scored, candidates []string) (string, bool) {
	if len(top) == 0 {
		return "", false
	}
	best, bestH := top[0].word, math.Inf(-1)
	for _, s := range top {
		if h := Entropy(s.word, candidates); h > bestH {
			best, bestH = s.word, h
		}
	}
	return best, true
}

// SelectBestGuess scores every untried pool word against frequency tables built from
// the pool, shortlists the top k, and returns the shortlisted word of maximum entropy.
// It reports false when every pool word has already been tried.
func SelectBestGuess(pool Pool, tried mapset.Set[string], k int) (string, bool) {
	words := pool.Words()
	return pickByEntropy(shortlist(words, NewFrequencies(words), tried, k), words)
}
