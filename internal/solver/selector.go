// apps/go-solver/internal/solver/selector.go
//
// Turn-by-turn guess selection for a single game.
// Responsibilities:
//   - Own the candidate pool, its frequency tables, and the tried list.
//   - Narrow the pool with the feedback for the last guess.
//   - Walk the strategy chain (probe → score → untried) for the next guess.
//
// Turn protocol:
//   AwaitingFirstGuess → AwaitingFeedback (repeating) → Solved | Exhausted
//
// Notes:
//   - A Selector is single-game, single-goroutine state. Run independent games on
//     independent Selectors; callers sharing one across goroutines must lock.
//   - Deciding that the game is over belongs to the caller; Solved is only recorded
//     when all-exact feedback arrives.
package solver

import (
	mapset "github.com/deckarep/golang-set/v2"

	"github.com/robalobadob/wordle/apps/go-solver/internal/pattern"
)

// Feedback is what the game loop reports for the previous guess: a pattern, NoFeedback
// on the first call, or one of the reserved rejection sentinels.
type Feedback string

const (
	NoFeedback           Feedback = ""
	FeedbackInvalidWord  Feedback = "Please enter a five-letter word"
	FeedbackAlreadyTried Feedback = "You have already tried that word"
)

// Reserved reports whether f is a sentinel that must not narrow the pool.
func (f Feedback) Reserved() bool {
	return f == NoFeedback || f == FeedbackInvalidWord || f == FeedbackAlreadyTried
}

// State is the selector's position in the turn protocol.
type State int

const (
	AwaitingFirstGuess State = iota
	AwaitingFeedback
	Solved
	Exhausted
)

func (s State) String() string {
	switch s {
	case AwaitingFirstGuess:
		return "awaiting_first_guess"
	case AwaitingFeedback:
		return "awaiting_feedback"
	case Solved:
		return "solved"
	case Exhausted:
		return "exhausted"
	}
	return "unknown"
}

// Selector chooses guesses for one game against a fixed word list.
type Selector struct {
	cfg      Config
	chain    []Strategy
	universe []string

	pool      Pool
	freq      Frequencies
	tried     []string
	triedSet  mapset.Set[string]
	state     State
	fallbacks int
}

// New returns a Selector over universe, which must be non-empty.
func New(universe []string, cfg Config) *Selector {
	cfg = cfg.withDefaults()
	s := &Selector{
		cfg:      cfg,
		chain:    DefaultChain(cfg),
		universe: universe,
	}
	s.Reset()
	return s
}

// Reset starts a new game: full pool, empty tried list.
func (s *Selector) Reset() {
	s.pool = NewPool(s.universe)
	s.freq = NewFrequencies(s.universe)
	s.tried = nil
	s.triedSet = mapset.NewThreadUnsafeSet[string]()
	s.state = AwaitingFirstGuess
	s.fallbacks = 0
}

// NextGuess consumes the feedback for the previous guess and returns the next one.
//
//  1. Pattern feedback (not a sentinel) narrows the pool using the last tried guess.
//     All-exact feedback marks the game Solved and returns that guess again.
//  2. The first strategy in the chain that proposes a word wins.
//  3. The word is appended to the tried list and returned.
//
// It returns "" and enters Exhausted once every word of the universe has been tried.
func (s *Selector) NextGuess(fb Feedback) string {
	if s.state == Solved {
		return s.tried[len(s.tried)-1]
	}
	if !fb.Reserved() && len(s.tried) > 0 {
		last := s.tried[len(s.tried)-1]
		p := pattern.Pattern(fb)
		s.narrow(last, p)
		if pattern.Solved(p) {
			s.state = Solved
			return last
		}
	}

	t := &Turn{
		Universe:   s.universe,
		Candidates: s.pool.Words(),
		Freq:       s.freq,
		Tried:      s.tried,
		TriedSet:   s.triedSet,
	}
	for _, st := range s.chain {
		guess, ok := st.Propose(t)
		if !ok {
			continue
		}
		s.cfg.Logger.Debug().
			Str("strategy", st.Name()).
			Str("guess", guess).
			Int("candidates", len(t.Candidates)).
			Int("turn", len(s.tried)+1).
			Msg("guess selected")
		s.tried = append(s.tried, guess)
		s.triedSet.Add(guess)
		s.state = AwaitingFeedback
		return guess
	}

	s.state = Exhausted
	s.cfg.Logger.Warn().Int("tried", len(s.tried)).Msg("every word has been tried")
	return ""
}

// narrow filters the pool and refreshes the frequency tables.
func (s *Selector) narrow(guess string, p pattern.Pattern) {
	next, fellBack := s.pool.Filter(guess, p)
	if fellBack {
		s.fallbacks++
		s.cfg.Logger.Warn().
			Str("guess", guess).
			Str("pattern", string(p)).
			Str("fallback", s.universe[0]).
			Msg("feedback contradicts every candidate; pool reset to fallback word")
	}
	s.pool = next
	s.freq = NewFrequencies(next.Words())
}

// State returns the current protocol state.
func (s *Selector) State() State { return s.state }

// Tried returns a copy of the guesses issued so far, in order.
func (s *Selector) Tried() []string { return append([]string(nil), s.tried...) }

// Candidates returns the current pool in word-list order.
func (s *Selector) Candidates() []string { return s.pool.Words() }

// Frequencies returns the tables for the current pool.
func (s *Selector) Frequencies() Frequencies { return s.freq }

// Fallbacks counts how often feedback contradicted every candidate this game.
func (s *Selector) Fallbacks() int { return s.fallbacks }

// Degraded reports whether the pool was ever reset by the empty-pool fallback, in
// which case later guesses no longer reflect the feedback.
func (s *Selector) Degraded() bool { return s.fallbacks > 0 }
