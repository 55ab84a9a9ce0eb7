package solver

import (
	"github.com/bits-and-blooms/bitset"

	"github.com/robalobadob/wordle/apps/go-solver/internal/pattern"
)

// Pool is the set of words still consistent with every observed (guess, pattern) pair.
// Membership is a bitset over indices into the ordered universe, so iteration always
// follows word-list order. Pools are values; Filter never mutates its receiver.
type Pool struct {
	universe []string
	set      *bitset.BitSet
}

// NewPool returns a pool holding every word of universe.
func NewPool(universe []string) Pool {
	set := bitset.New(uint(len(universe)))
	for i := range universe {
		set.Set(uint(i))
	}
	return Pool{universe: universe, set: set}
}

// Filter keeps the words that could have produced p for guess.
// If nothing survives, the result is a singleton holding the first universe word and
// the second return value is true: feedback contradicted every known word.
func (p Pool) Filter(guess string, pat pattern.Pattern) (Pool, bool) {
	next := bitset.New(uint(len(p.universe)))
	for i, ok := p.set.NextSet(0); ok; i, ok = p.set.NextSet(i + 1) {
		if pattern.Matches(p.universe[i], guess, pat) {
			next.Set(i)
		}
	}
	if next.None() && len(p.universe) > 0 {
		next.Set(0)
		return Pool{universe: p.universe, set: next}, true
	}
	return Pool{universe: p.universe, set: next}, false
}

// Len returns the number of candidates.
func (p Pool) Len() int {
	if p.set == nil {
		return 0
	}
	return int(p.set.Count())
}

// Words returns the candidates in universe order.
func (p Pool) Words() []string {
	out := make([]string, 0, p.Len())
	if p.set == nil {
		return out
	}
	for i, ok := p.set.NextSet(0); ok; i, ok = p.set.NextSet(i + 1) {
		out = append(out, p.universe[i])
	}
	return out
}

// Universe returns the full ordered word list the pool was built from.
func (p Pool) Universe() []string { return p.universe }
