// apps/go-solver/cmd/wordlebench/main.go
//
// Command-line front end for the solver.
// Modes:
//   - -r N: play N rounds of solver vs referee; CSV "ratio,avg,seconds" on stdout, or with
//     -p every game plus a readable summary. -db persists the run.
//   - -m:   the solver suggests words and you type the feedback.
//   - default: you guess against the referee.
package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"math/rand"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/schollz/progressbar/v3"

	"github.com/robalobadob/wordle/apps/go-solver/assets"
	"github.com/robalobadob/wordle/apps/go-solver/internal/game"
	"github.com/robalobadob/wordle/apps/go-solver/internal/pattern"
	"github.com/robalobadob/wordle/apps/go-solver/internal/results"
	"github.com/robalobadob/wordle/apps/go-solver/internal/solver"
	"github.com/robalobadob/wordle/apps/go-solver/internal/trial"
	"github.com/robalobadob/wordle/apps/go-solver/internal/words"
)

func main() {
	_ = godotenv.Load()
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	os.Exit(run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

type options struct {
	rounds    int
	print     bool
	manual    bool
	wordsFile string
	topK      int
	dbPath    string
	salt      string
}

// run parses args and dispatches to a mode. It returns the process exit code.
func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("wordlebench", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var o options
	fs.IntVar(&o.rounds, "r", 0, "number of rounds to play")
	fs.BoolVar(&o.print, "p", false, "print every game and a readable summary")
	fs.BoolVar(&o.manual, "m", false, "manual feedback mode: the solver guesses, you score")
	fs.StringVar(&o.wordsFile, "words", os.Getenv("WORDS_FILE"), "word list (.txt or .yaml); embedded list when empty")
	fs.IntVar(&o.topK, "k", solver.DefaultTopK, "shortlist size re-ranked by entropy")
	fs.StringVar(&o.dbPath, "db", "", "SQLite file to persist the run in")
	fs.StringVar(&o.salt, "salt", getEnv("TRIAL_SALT", "local_dev_salt"), "key for target selection")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if o.rounds > 0 && o.manual {
		fmt.Fprintln(stderr, "Cannot use both -r and -m")
		return 2
	}

	logger := zerolog.New(zerolog.ConsoleWriter{Out: stderr}).With().Timestamp().Logger()
	if lvl, err := zerolog.ParseLevel(getEnv("LOG_LEVEL", "warn")); err == nil {
		logger = logger.Level(lvl)
	}

	list, err := loadWords(o.wordsFile)
	if err != nil {
		fmt.Fprintln(stderr, "Error loading words:", err)
		return 1
	}
	cfg := solver.Config{TopK: o.topK, ProbeTurns: solver.DefaultProbeTurns, Logger: logger}

	switch {
	case o.rounds > 0:
		err = bench(ctx, o, list, cfg, stdout, stderr)
	case o.manual:
		err = manualFeedback(list, cfg, stdin, stdout)
	default:
		err = play(list, stdin, stdout)
	}
	if err != nil {
		fmt.Fprintln(stderr, "Error:", err)
		return 1
	}
	return 0
}

func loadWords(path string) ([]string, error) {
	if path == "" {
		return words.Default()
	}
	return words.ReadFile(path)
}

// bench plays o.rounds games and reports the score.
func bench(ctx context.Context, o options, list []string, cfg solver.Config, stdout, stderr io.Writer) error {
	runner := &trial.Runner{Words: list, Config: cfg, Salt: o.salt, Logger: cfg.Logger}

	var onRound func(trial.GameResult)
	if o.print {
		onRound = func(g trial.GameResult) {
			for _, guess := range g.Guesses {
				fmt.Fprintln(stdout, pattern.Compute(guess, g.Target))
			}
			fmt.Fprintln(stdout)
		}
	} else {
		bar := progressbar.NewOptions(o.rounds,
			progressbar.OptionSetWriter(stderr),
			progressbar.OptionSetDescription("rounds"),
			progressbar.OptionShowCount(),
			progressbar.OptionClearOnFinish(),
		)
		defer func() { _ = bar.Finish() }()
		onRound = func(trial.GameResult) { _ = bar.Add(1) }
	}

	sum, err := runner.Run(ctx, o.rounds, onRound)
	if err != nil {
		return err
	}

	if o.dbPath != "" {
		if err := persist(ctx, o.dbPath, sum); err != nil {
			return fmt.Errorf("persist run: %w", err)
		}
	}

	secs := sum.Elapsed.Seconds()
	if o.print {
		fmt.Fprintf(stdout, "Proportion of words guessed correctly: %.2f%%\n", sum.SolvedRatio()*100)
		fmt.Fprintf(stdout, "Average number of guesses: %.4f\n", sum.AvgGuesses)
		fmt.Fprintf(stdout, "Total execution time: %.2f seconds\n", secs)
		return nil
	}
	fmt.Fprintf(stdout, "%.2f%%,%.4f,%.2f\n", sum.SolvedRatio()*100, sum.AvgGuesses, secs)
	return nil
}

func persist(ctx context.Context, path string, sum trial.Summary) error {
	db, err := results.Open(path)
	if err != nil {
		return err
	}
	defer db.Close()
	if err := results.Migrate(db, assets.Migrations()); err != nil {
		return err
	}
	return results.NewStore(db).InsertRun(ctx, sum)
}

const manualHelp = `Welcome to manual feedback mode!
The solver suggests words, and you provide feedback:
  a letter  in the correct position (green)
  -         in the word but in the wrong position (yellow)
  +         not in the word (gray)
Example: "a++++" means only "a" is correct and in position 1.
Enter the word itself when the guess was correct.
`

// manualFeedback lets the user score the solver's guesses against a word they have in mind.
func manualFeedback(list []string, cfg solver.Config, stdin io.Reader, stdout io.Writer) error {
	fmt.Fprint(stdout, manualHelp)
	sel := solver.New(list, cfg)
	sc := bufio.NewScanner(stdin)
	fb := solver.NoFeedback

	for turn := 1; ; turn++ {
		guess := sel.NextGuess(fb)
		if guess == "" {
			fmt.Fprintln(stdout, "Every word has been tried; the feedback must have been inconsistent.")
			return nil
		}
		fmt.Fprintf(stdout, "Solver suggests: %s\n", guess)

		for {
			fmt.Fprint(stdout, "Enter your feedback (or the word if correct): ")
			if !sc.Scan() {
				if err := sc.Err(); err != nil {
					return err
				}
				return io.ErrUnexpectedEOF
			}
			line := strings.ToLower(strings.TrimSpace(sc.Text()))
			if line == guess {
				fmt.Fprintf(stdout, "Great! The word was guessed in %d attempts.\n", turn)
				return nil
			}
			p, err := pattern.Parse(line)
			if err != nil {
				switch {
				case errors.Is(err, pattern.ErrLength):
					fmt.Fprintln(stdout, "Please enter exactly 5 characters of feedback")
				default:
					fmt.Fprintln(stdout, "Invalid feedback format. Use letters, +, or -")
				}
				continue
			}
			if err := pattern.Agrees(guess, p); err != nil {
				fmt.Fprintf(stdout, "Letters in the feedback must match %s at the same position\n", guess)
				continue
			}
			fb = solver.Feedback(p)
			break
		}
	}
}

// play lets the user guess a random word from list against the referee.
func play(list []string, stdin io.Reader, stdout io.Writer) error {
	allowed := make(map[string]struct{}, len(list))
	for _, w := range list {
		allowed[w] = struct{}{}
	}
	g := game.New(list[rand.Intn(len(list))], func(w string) bool {
		_, ok := allowed[w]
		return ok
	})

	fmt.Fprintf(stdout, "Welcome! Let's play wordle! You have %d guesses.\n", g.Rows)
	sc := bufio.NewScanner(stdin)
	start := time.Now()
	for !g.Finished {
		fmt.Fprintf(stdout, "Guess %d: ", len(g.Guesses)+1)
		if !sc.Scan() {
			if err := sc.Err(); err != nil {
				return err
			}
			return io.ErrUnexpectedEOF
		}
		p, _, err := g.ApplyGuess(sc.Text())
		if err != nil {
			if errors.Is(err, game.ErrNotInList) {
				fmt.Fprintln(stdout, "That word is not in the list")
				continue
			}
			fmt.Fprintln(stdout, game.FeedbackFor(p, err))
			continue
		}
		fmt.Fprintln(stdout, p)
	}

	if g.Won {
		fmt.Fprintf(stdout, "You got it in %d guesses (%s).\n", len(g.Guesses), time.Since(start).Round(time.Second))
	} else {
		fmt.Fprintf(stdout, "Out of guesses. The word was %s.\n", g.Answer)
	}
	return nil
}

// getEnv returns the value of k or def if unset/empty.
func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
