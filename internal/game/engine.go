// apps/go-solver/internal/game/engine.go
//
// Referee for a single hidden-word game.
// Responsibilities:
//   - Create new games with a fixed answer and 6 rows.
//   - Validate guesses (length, alphabetic, not repeated, optionally in the word list).
//   - Score accepted guesses with the pattern engine.
//   - Track state transitions: playing → won/lost.
//   - Translate rejections into the solver's reserved feedback sentinels.
//
// Notes:
//   - Rejected guesses do not consume a row.
package game

import (
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/robalobadob/wordle/apps/go-solver/internal/pattern"
	"github.com/robalobadob/wordle/apps/go-solver/internal/solver"
)

const defaultRows = 6

var (
	ErrFinished     = errors.New("game finished")
	ErrInvalidGuess = errors.New("invalid guess")
	ErrAlreadyTried = errors.New("already tried")
	ErrNotInList    = errors.New("not in word list")
)

// New constructs a game around answer. allowed, if non-nil, restricts legal guesses.
func New(answer string, allowed func(string) bool) *Game {
	return &Game{
		ID:      uuid.NewString(),
		Answer:  strings.ToLower(strings.TrimSpace(answer)),
		Rows:    defaultRows,
		Guesses: []string{},
		allowed: allowed,
	}
}

// ApplyGuess validates and scores a guess, mutating the game state.
// Returns: the pattern, the new state, or an error.
//
// Validation rules:
//   - Game must not be finished.
//   - Guess must be exactly 5 letters a–z.
//   - Guess must not repeat an earlier guess.
//   - Guess must pass the allowed check, when one is set.
//
// State transitions:
//   - All exact → Finished = true, Won = true.
//   - Else if the number of guesses reaches g.Rows → Finished = true (loss).
func (g *Game) ApplyGuess(guess string) (pattern.Pattern, State, error) {
	if g.Finished {
		return "", g.State(), ErrFinished
	}
	guess = strings.ToLower(strings.TrimSpace(guess))
	if len(guess) != pattern.Size || !isAlpha(guess) {
		return "", g.State(), ErrInvalidGuess
	}
	for _, prev := range g.Guesses {
		if prev == guess {
			return "", g.State(), ErrAlreadyTried
		}
	}
	if g.allowed != nil && !g.allowed(guess) {
		return "", g.State(), ErrNotInList
	}

	p := pattern.Compute(guess, g.Answer)
	g.Guesses = append(g.Guesses, guess)

	if pattern.Solved(p) {
		g.Finished, g.Won = true, true
	} else if len(g.Guesses) >= g.Rows {
		g.Finished = true
	}
	return p, g.State(), nil
}

// State reports the current game state.
func (g *Game) State() State {
	if g.Finished {
		if g.Won {
			return StateWon
		}
		return StateLost
	}
	return StatePlaying
}

// FeedbackFor turns the outcome of ApplyGuess into solver feedback.
// Malformed and out-of-list guesses map to FeedbackInvalidWord, repeats to
// FeedbackAlreadyTried; neither narrows the solver's candidates.
func FeedbackFor(p pattern.Pattern, err error) solver.Feedback {
	switch {
	case err == nil:
		return solver.Feedback(p)
	case errors.Is(err, ErrAlreadyTried):
		return solver.FeedbackAlreadyTried
	default:
		return solver.FeedbackInvalidWord
	}
}

// isAlpha checks that a string consists only of lowercase a–z.
func isAlpha(s string) bool {
	for _, r := range s {
		if r < 'a' || r > 'z' {
			return false
		}
	}
	return true
}
