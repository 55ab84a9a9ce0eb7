// apps/go-solver/main.go
//
// Entry point for the solver service.
// Responsibilities:
//   - Load .env, set the zerolog level.
//   - Load the word list (embedded, or WORDS_FILE).
//   - Open and migrate the results database unless RESULTS_DB is "off".
//   - Serve the HTTP API on PORT.
package main

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordle/apps/go-solver/assets"
	"github.com/robalobadob/wordle/apps/go-solver/internal/httpserver"
	"github.com/robalobadob/wordle/apps/go-solver/internal/results"
	"github.com/robalobadob/wordle/apps/go-solver/internal/solver"
	"github.com/robalobadob/wordle/apps/go-solver/internal/words"
)

func main() {
	_ = godotenv.Load()
	if lvl, err := zerolog.ParseLevel(getEnv("LOG_LEVEL", "info")); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}

	if err := words.Init(); err != nil {
		log.Fatal().Err(err).Msg("failed to load word list")
	}
	log.Info().Int("words", words.Stats()).Msg("word list loaded")

	var rs *results.Store
	if dsn := getEnv("RESULTS_DB", "./data/results.db"); dsn != "off" {
		db, err := results.Open(dsn)
		if err != nil {
			log.Fatal().Err(err).Str("dsn", dsn).Msg("open results db")
		}
		defer db.Close()
		if err := results.Migrate(db, assets.Migrations()); err != nil {
			log.Fatal().Err(err).Msg("migrate results db")
		}
		rs = results.NewStore(db)
	}

	srv := httpserver.New(httpserver.Config{
		Words: words.List(),
		Solver: solver.Config{
			TopK:       envInt("SOLVER_TOP_K", solver.DefaultTopK),
			ProbeTurns: envInt("SOLVER_PROBE_TURNS", solver.DefaultProbeTurns),
			Logger:     log.Logger,
		},
		Results: rs,
		Secret:  getEnv("SESSION_SECRET", "dev_secret_change_me"),
		TTL:     time.Duration(envInt("SESSION_TTL_HOURS", 24)) * time.Hour,
		Salt:    getEnv("TRIAL_SALT", "local_dev_salt"),
	})
	port := getEnv("PORT", "5175")
	log.Info().Str("port", port).Msg("starting go-solver")
	if err := srv.Start(":" + port); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}

// getEnv returns the value of k or def if unset/empty.
func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

// envInt parses k as an int, falling back to def when unset or malformed.
func envInt(k string, def int) int {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Warn().Str("key", k).Str("value", v).Msg("ignoring malformed integer")
		return def
	}
	return n
}
