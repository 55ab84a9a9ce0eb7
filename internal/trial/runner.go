// apps/go-solver/internal/trial/runner.go
//
// Repeated games of the solver against the referee.
// Responsibilities:
//   - Play one game: selector proposes, referee scores, feedback flows back
//     (rejections as the reserved sentinels).
//   - Run N rounds with deterministic targets and aggregate the score:
//     solved ratio, average guesses, elapsed time.
//
// Notes:
//   - The Selector is Reset before every round; nothing carries over between games.
//   - Cancellation is checked between rounds; a cancelled run returns what it has.
package trial

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/robalobadob/wordle/apps/go-solver/internal/game"
	"github.com/robalobadob/wordle/apps/go-solver/internal/solver"
)

var (
	ErrNoWords = errors.New("trial: word list is empty")
	ErrRounds  = errors.New("trial: rounds must be positive")
)

// GameResult is the outcome of one round.
type GameResult struct {
	Round    int      `json:"round"`
	Target   string   `json:"target"`
	Guesses  []string `json:"guesses"`
	Solved   bool     `json:"solved"`
	Degraded bool     `json:"degraded"`
}

// Turns returns the number of accepted guesses.
func (r GameResult) Turns() int { return len(r.Guesses) }

// Summary aggregates a run.
type Summary struct {
	ID         string        `json:"id"`
	StartedAt  time.Time     `json:"startedAt"`
	Rounds     int           `json:"rounds"`
	Solved     int           `json:"solved"`
	AvgGuesses float64       `json:"avgGuesses"`
	Elapsed    time.Duration `json:"elapsedNs"`
	TopK       int           `json:"topK"`
	Words      int           `json:"words"`
	Games      []GameResult  `json:"games,omitempty"`
}

// SolvedRatio returns the share of rounds that ended in a win.
func (s Summary) SolvedRatio() float64 {
	if s.Rounds == 0 {
		return 0
	}
	return float64(s.Solved) / float64(s.Rounds)
}

// Runner plays rounds over a fixed word list.
type Runner struct {
	Words  []string
	Config solver.Config
	Salt   string
	Logger zerolog.Logger
}

// Play runs sel against g until the referee finishes the game or the selector has
// nothing left to propose.
func Play(sel *solver.Selector, g *game.Game) GameResult {
	fb := solver.NoFeedback
	for !g.Finished {
		guess := sel.NextGuess(fb)
		if guess == "" {
			break
		}
		p, _, err := g.ApplyGuess(guess)
		fb = game.FeedbackFor(p, err)
	}
	return GameResult{
		Target:   g.Answer,
		Guesses:  append([]string(nil), g.Guesses...),
		Solved:   g.Won,
		Degraded: sel.Degraded(),
	}
}

// Run plays rounds games. onRound, if non-nil, is called after each game.
func (r *Runner) Run(ctx context.Context, rounds int, onRound func(GameResult)) (Summary, error) {
	if len(r.Words) == 0 {
		return Summary{}, ErrNoWords
	}
	if rounds <= 0 {
		return Summary{}, ErrRounds
	}

	cfg := r.Config
	if cfg.TopK <= 0 {
		cfg.TopK = solver.DefaultTopK
	}
	sum := Summary{
		ID:        uuid.NewString(),
		StartedAt: time.Now().UTC(),
		TopK:      cfg.TopK,
		Words:     len(r.Words),
		Games:     make([]GameResult, 0, rounds),
	}
	start := time.Now()
	sel := solver.New(r.Words, cfg)
	totalGuesses := 0

	var err error
	for round := 0; round < rounds; round++ {
		if err = ctx.Err(); err != nil {
			break
		}
		sel.Reset()
		target := r.Words[Target(r.Salt, round, len(r.Words))]
		res := Play(sel, game.New(target, nil))
		res.Round = round

		sum.Rounds++
		totalGuesses += res.Turns()
		if res.Solved {
			sum.Solved++
		}
		sum.Games = append(sum.Games, res)
		r.Logger.Debug().
			Int("round", round).
			Str("target", target).
			Strs("guesses", res.Guesses).
			Bool("solved", res.Solved).
			Msg("round finished")
		if onRound != nil {
			onRound(res)
		}
	}

	sum.Elapsed = time.Since(start)
	if sum.Rounds > 0 {
		sum.AvgGuesses = float64(totalGuesses) / float64(sum.Rounds)
	}
	r.Logger.Info().
		Str("run", sum.ID).
		Int("rounds", sum.Rounds).
		Float64("solved", sum.SolvedRatio()).
		Float64("avgGuesses", sum.AvgGuesses).
		Dur("elapsed", sum.Elapsed).
		Msg("run finished")
	return sum, err
}
