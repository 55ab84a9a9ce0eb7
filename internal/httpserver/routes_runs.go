package httpserver

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordle/apps/go-solver/internal/trial"
)

const maxRounds = 500

// mountRuns registers trial-run routes.
func (s *Server) mountRuns() {
	s.r.Route("/runs", func(r chi.Router) {
		r.Post("/", s.handleRunCreate)
		r.Get("/", s.handleRunList)
		r.Get("/{id}/games", s.handleRunGames)
	})
}

type runReq struct {
	Rounds int `json:"rounds"`
}
type runRes struct {
	trial.Summary
	SolvedRatio float64 `json:"solvedRatio"`
	Persisted   bool    `json:"persisted"`
}

// handleRunCreate plays a trial and, when a results store is configured, persists it.
// Persistence failures are logged and reported through "persisted"; the summary is
// still returned.
func (s *Server) handleRunCreate(w http.ResponseWriter, r *http.Request) {
	var req runReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"bad_json"}`, http.StatusBadRequest)
		return
	}
	if req.Rounds < 1 || req.Rounds > maxRounds {
		http.Error(w, `{"error":"rounds must be between 1 and 500"}`, http.StatusBadRequest)
		return
	}

	runner := &trial.Runner{
		Words:  s.cfg.Words,
		Config: s.cfg.Solver,
		Salt:   s.cfg.Salt,
		Logger: log.Logger,
	}
	sum, err := runner.Run(r.Context(), req.Rounds, nil)
	if err != nil {
		log.Warn().Err(err).Int("rounds", sum.Rounds).Msg("trial run interrupted")
		http.Error(w, `{"error":"run_interrupted"}`, http.StatusServiceUnavailable)
		return
	}

	res := runRes{Summary: sum, SolvedRatio: sum.SolvedRatio()}
	if s.cfg.Results != nil {
		if err := s.cfg.Results.InsertRun(r.Context(), sum); err != nil {
			log.Warn().Err(err).Str("run", sum.ID).Msg("persist trial run")
		} else {
			res.Persisted = true
		}
	}
	res.Games = nil // GET /runs/{id}/games serves them
	_ = json.NewEncoder(w).Encode(res)
}

// handleRunList returns recent runs, newest first.
func (s *Server) handleRunList(w http.ResponseWriter, r *http.Request) {
	if s.cfg.Results == nil {
		http.Error(w, `{"error":"results_disabled"}`, http.StatusServiceUnavailable)
		return
	}
	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			http.Error(w, `{"error":"bad_limit"}`, http.StatusBadRequest)
			return
		}
		limit = n
	}
	runs, err := s.cfg.Results.Recent(r.Context(), limit)
	if err != nil {
		log.Error().Err(err).Msg("list runs")
		http.Error(w, `{"error":"db_error"}`, http.StatusInternalServerError)
		return
	}
	_ = json.NewEncoder(w).Encode(runs)
}

// handleRunGames returns the games of one persisted run.
func (s *Server) handleRunGames(w http.ResponseWriter, r *http.Request) {
	if s.cfg.Results == nil {
		http.Error(w, `{"error":"results_disabled"}`, http.StatusServiceUnavailable)
		return
	}
	games, err := s.cfg.Results.Games(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		log.Error().Err(err).Msg("list run games")
		http.Error(w, `{"error":"db_error"}`, http.StatusInternalServerError)
		return
	}
	if len(games) == 0 {
		http.Error(w, `{"error":"not_found"}`, http.StatusNotFound)
		return
	}
	_ = json.NewEncoder(w).Encode(games)
}
