// apps/go-solver/internal/pattern/pattern.go
//
// Feedback patterns for a single guess against a single target.
// Responsibilities:
//   - Compute the pattern a guess produces against a target (two-pass scoring).
//   - Decide whether a word could have produced a given pattern (Matches).
//   - Parse and validate externally supplied feedback strings.
//
// Symbols:
//   - 'a'..'z': exact positional match (the letter itself).
//   - '-':      letter present elsewhere in the target.
//   - '+':      letter absent, after accounting for multiplicity.
//
// Notes:
//   - Words are 5 lowercase ASCII letters; inputs are validated by callers.
//   - Matches is the exact inverse of Compute: Matches(t, g, Compute(g, t)) always holds.
package pattern

import (
	"errors"
	"fmt"
)

// Size is the fixed word length.
const Size = 5

const (
	Present byte = '-'
	Absent  byte = '+'
)

var (
	ErrLength   = errors.New("pattern: must be exactly 5 symbols")
	ErrSymbol   = errors.New("pattern: symbol must be a-z, '-' or '+'")
	ErrMismatch = errors.New("pattern: exact letter differs from the guess")
)

// Pattern is a 5-symbol feedback string.
type Pattern string

// Compute returns the pattern guess would produce if target were the hidden word.
//
// Pass 1:
//   - Emit the letter on exact matches and count the remaining (non-hit) target letters.
//
// Pass 2:
//   - For each unresolved position: emit '-' if the guess letter still has a remaining
//     count (and consume it), otherwise '+'.
//
// Exact matches consume letters before present-elsewhere matches can, so a repeated
// guess letter is only credited as often as it occurs in the target.
func Compute(guess, target string) Pattern {
	var out [Size]byte
	var counts [26]int

	for i := 0; i < Size; i++ {
		if guess[i] == target[i] {
			out[i] = guess[i]
		} else {
			counts[idx(target[i])]++
		}
	}

	for i := 0; i < Size; i++ {
		if out[i] != 0 {
			continue
		}
		j := idx(guess[i])
		if counts[j] > 0 {
			out[i] = Present
			counts[j]--
		} else {
			out[i] = Absent
		}
	}
	return Pattern(out[:])
}

// Matches reports whether word, taken as the target, would have produced p for guess.
//
// Exact symbols are checked and consumed from word's letter counts first; only then are
// '-' (letter elsewhere, count still positive) and '+' (count exhausted) evaluated.
func Matches(word, guess string, p Pattern) bool {
	var rem [26]int
	for i := 0; i < Size; i++ {
		rem[idx(word[i])]++
	}

	for i := 0; i < Size; i++ {
		s := p[i]
		if !isLetter(s) {
			continue
		}
		if word[i] != s {
			return false
		}
		rem[idx(s)]--
	}

	for i := 0; i < Size; i++ {
		g := idx(guess[i])
		switch p[i] {
		case Present:
			if word[i] == guess[i] || rem[g] <= 0 {
				return false
			}
			rem[g]--
		case Absent:
			if rem[g] > 0 {
				return false
			}
		}
	}
	return true
}

// Solved reports whether every symbol of p is an exact match.
func Solved(p Pattern) bool {
	if len(p) != Size {
		return false
	}
	for i := 0; i < Size; i++ {
		if !isLetter(p[i]) {
			return false
		}
	}
	return true
}

// Parse validates externally supplied feedback.
// Letters are accepted in either case and normalized to lowercase.
func Parse(s string) (Pattern, error) {
	if len(s) != Size {
		return "", ErrLength
	}
	var out [Size]byte
	for i := 0; i < Size; i++ {
		c := s[i]
		if c >= 'A' && c <= 'Z' {
			c += 'a' - 'A'
		}
		if !isLetter(c) && c != Present && c != Absent {
			return "", fmt.Errorf("position %d (%q): %w", i, s[i], ErrSymbol)
		}
		out[i] = c
	}
	return Pattern(out[:]), nil
}

// Agrees checks that every exact-letter symbol of p repeats the letter guess has at
// that position. Feedback failing this could not come from scoring guess.
func Agrees(guess string, p Pattern) error {
	if len(guess) != Size || len(p) != Size {
		return ErrLength
	}
	for i := 0; i < Size; i++ {
		if isLetter(p[i]) && p[i] != guess[i] {
			return fmt.Errorf("position %d (%q, guessed %q): %w", i, p[i], guess[i], ErrMismatch)
		}
	}
	return nil
}

// idx maps a lowercase ASCII letter to 0..25.
func idx(c byte) int { return int(c - 'a') }

func isLetter(c byte) bool { return c >= 'a' && c <= 'z' }
