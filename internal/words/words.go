// apps/go-solver/internal/words/words.go
//
// Provides the word list shared by the solver, the referee, and the benchmark.
//
// Responsibilities:
//   - Load a word list from a file (.txt one word per line, .yaml/.yml a sequence)
//     or fall back to the embedded default list.
//   - Normalize and validate words (exactly 5 letters a–z, lowercased, deduplicated,
//     first occurrence wins).
//   - Keep a process-wide list for the HTTP service (Init/List/IsAllowed/Stats).
//
// Initialization behavior (Init):
//   1. If WORDS_FILE is set, load that file.
//   2. Otherwise use the embedded assets/words.txt.
//
// Environment variables:
//   WORDS_FILE=/path/to/words.txt (or .yaml)
//
// Constraints:
//   • The list serves as both the legal-guess set and the candidate universe.
//   • Order matters: the first word is the solver's fallback candidate.
//   • Initialization is run once (sync.Once).

package words

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/robalobadob/wordle/apps/go-solver/assets"
)

var (
	ErrEmpty       = errors.New("words: list is empty")
	ErrNotSequence = errors.New("words: yaml document must be a sequence of words")
)

var (
	initOnce   sync.Once
	list       []string            // ordered universe
	allowedSet map[string]struct{} // lookup over list
	initialErr error
)

// Init loads the process-wide list exactly once.
// Returns an error if the list cannot be read or ends up empty.
func Init() error {
	initOnce.Do(func() {
		var err error
		if path := os.Getenv("WORDS_FILE"); path != "" {
			list, err = ReadFile(path)
		} else {
			list, err = Default()
		}
		if err != nil {
			initialErr = err
			return
		}
		allowedSet = toSet(list)
	})
	return initialErr
}

// List returns the process-wide list loaded by Init.
func List() []string { return list }

// IsAllowed reports whether w is in the process-wide list.
func IsAllowed(w string) bool {
	_, ok := allowedSet[strings.ToLower(strings.TrimSpace(w))]
	return ok
}

// Stats returns the number of loaded words.
func Stats() int { return len(list) }

// Default returns the embedded word list, normalized.
func Default() ([]string, error) {
	raw, err := assets.WordList()
	if err != nil {
		return nil, fmt.Errorf("read embedded list: %w", err)
	}
	return Normalize(raw)
}

// ReadFile loads a word list from path. Files ending in .yaml or .yml are parsed as a
// YAML sequence; anything else is read one word per line ('#' starts a comment line).
func ReadFile(path string) ([]string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return readYAML(path)
	default:
		return readLines(path)
	}
}

// readLines loads one word per line from a file.
func readLines(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var raw []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		raw = append(raw, line)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return Normalize(raw)
}

// readYAML loads a top-level YAML sequence of scalars. Scalars are taken verbatim, so
// words such as "false" or "yes" are not reinterpreted as booleans.
func readYAML(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if len(doc.Content) == 0 {
		return nil, ErrEmpty
	}
	seq := doc.Content[0]
	if seq.Kind != yaml.SequenceNode {
		return nil, fmt.Errorf("%s: %w", path, ErrNotSequence)
	}
	raw := make([]string, 0, len(seq.Content))
	for _, n := range seq.Content {
		if n.Kind == yaml.ScalarNode {
			raw = append(raw, n.Value)
		}
	}
	return Normalize(raw)
}

// Normalize lowercases and trims raw, drops anything that is not 5 letters a–z,
// and removes duplicates while keeping first occurrences in order.
func Normalize(raw []string) ([]string, error) {
	out := make([]string, 0, len(raw))
	seen := make(map[string]struct{}, len(raw))
	for _, r := range raw {
		w := strings.TrimSpace(strings.ToLower(r))
		if !Valid(w) {
			continue
		}
		if _, dup := seen[w]; dup {
			continue
		}
		seen[w] = struct{}{}
		out = append(out, w)
	}
	if len(out) == 0 {
		return nil, ErrEmpty
	}
	return out, nil
}

// Valid reports whether w is exactly 5 lowercase ASCII letters.
func Valid(w string) bool {
	return len(w) == 5 && isAlpha(w)
}

// toSet converts a list of strings into a lookup set.
func toSet(list []string) map[string]struct{} {
	m := make(map[string]struct{}, len(list))
	for _, w := range list {
		m[w] = struct{}{}
	}
	return m
}

// isAlpha reports whether s is all lowercase ASCII letters.
func isAlpha(s string) bool {
	for _, r := range s {
		if r < 'a' || r > 'z' {
			return false
		}
	}
	return true
}
