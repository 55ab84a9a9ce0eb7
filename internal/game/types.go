// apps/go-solver/internal/game/types.go
//
// Core type definitions for the referee.
// Defines:
//   - State: coarse game state (playing/won/lost).
//   - Game: state for a single hidden-word game the solver plays against.

package game

// State is the referee's view of a game.
type State string

const (
	StatePlaying State = "playing"
	StateWon     State = "won"
	StateLost    State = "lost"
)

// Game holds the state of a single game.
type Game struct {
	ID       string            // Unique game identifier (UUID).
	Answer   string            // The hidden word (always lowercase).
	Rows     int               // Maximum number of accepted guesses (6).
	Guesses  []string          // Accepted guesses so far (lowercased).
	Finished bool              // True once the game is over (won or lost).
	Won      bool              // True if the game was finished with a win.
	allowed  func(string) bool // Optional legality check; nil accepts any 5-letter word.
}
