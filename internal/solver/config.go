// apps/go-solver/internal/solver/config.go
//
// Tuning knobs for the guess selector.
//
//   - TopK: size of the frequency-ranked shortlist that is re-ranked by entropy.
//     Larger K improves guess quality at a per-turn cost of O(K·|pool|).
//   - ProbeTurns: the probe strategy only fires while fewer than this many guesses
//     have been tried.
//   - Logger: receives diagnostics (pool fallbacks, strategy decisions).
package solver

import "github.com/rs/zerolog"

const (
	DefaultTopK       = 10
	DefaultProbeTurns = 5
)

// Config configures a Selector. Non-positive values fall back to the defaults.
type Config struct {
	TopK       int
	ProbeTurns int
	Logger     zerolog.Logger
}

// DefaultConfig returns K=10, probes during the first 5 turns, and a no-op logger.
func DefaultConfig() Config {
	return Config{
		TopK:       DefaultTopK,
		ProbeTurns: DefaultProbeTurns,
		Logger:     zerolog.Nop(),
	}
}

func (c Config) withDefaults() Config {
	if c.TopK <= 0 {
		c.TopK = DefaultTopK
	}
	if c.ProbeTurns <= 0 {
		c.ProbeTurns = DefaultProbeTurns
	}
	return c
}
