package solver

import mapset "github.com/deckarep/golang-set/v2"

// Turn is the read-only view a Strategy gets of the selector for one turn.
type Turn struct {
	Universe   []string
	Candidates []string
	Freq       Frequencies
	Tried      []string
	TriedSet   mapset.Set[string]
}

// Strategy proposes the next guess, or declines so the next strategy in the chain runs.
type Strategy interface {
	Name() string
	Propose(t *Turn) (string, bool)
}

// probeStrategy fires near convergence and spends a turn splitting the candidates.
type probeStrategy struct {
	maxTried int
}

func (probeStrategy) Name() string { return "probe" }

func (s probeStrategy) Propose(t *Turn) (string, bool) {
	if !ShouldProbe(len(t.Tried), len(t.Candidates), s.maxTried) {
		return "", false
	}
	return Disambiguate(t.Universe, t.Candidates, t.TriedSet)
}

// scoreStrategy shortlists by frequency score and picks the maximum-entropy word.
type scoreStrategy struct {
	k int
}

func (scoreStrategy) Name() string { return "score" }

func (s scoreStrategy) Propose(t *Turn) (string, bool) {
	return pickByEntropy(shortlist(t.Candidates, t.Freq, t.TriedSet, s.k), t.Candidates)
}

// untriedStrategy is the last resort once every candidate was tried (only reachable
// after a pool fallback): the first untried word of the universe.
type untriedStrategy struct{}

func (untriedStrategy) Name() string { return "untried" }

func (untriedStrategy) Propose(t *Turn) (string, bool) {
	for _, w := range t.Universe {
		if !t.TriedSet.Contains(w) {
			return w, true
		}
	}
	return "", false
}

// DefaultChain returns the strategies in priority order: probe, score, untried.
func DefaultChain(cfg Config) []Strategy {
	cfg = cfg.withDefaults()
	return []Strategy{
		probeStrategy{maxTried: cfg.ProbeTurns},
		scoreStrategy{k: cfg.TopK},
		untriedStrategy{},
	}
}
