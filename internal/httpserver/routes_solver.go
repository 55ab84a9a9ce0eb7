package httpserver

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordle/apps/go-solver/internal/pattern"
	"github.com/robalobadob/wordle/apps/go-solver/internal/solver"
)

// maxListed caps the words returned by GET /solver/candidates.
const maxListed = 100

// mountSolver registers the solver session routes.
func (s *Server) mountSolver() {
	s.r.Post("/solver/new", s.handleSolverNew)
	s.r.Group(func(r chi.Router) {
		r.Use(s.requireSession)
		r.Post("/solver/feedback", s.handleSolverFeedback)
		r.Get("/solver/candidates", s.handleSolverCandidates)
	})
}

type solverNewRes struct {
	SessionID  string    `json:"sessionId"`
	Token      string    `json:"token"`
	ExpiresAt  time.Time `json:"expiresAt"`
	Guess      string    `json:"guess"`
	Candidates int       `json:"candidates"`
}

// handleSolverNew starts a session and returns the opening guess.
func (s *Server) handleSolverNew(w http.ResponseWriter, r *http.Request) {
	sess := &solverSession{id: uuid.NewString(), sel: solver.New(s.cfg.Words, s.cfg.Solver)}
	guess := sess.sel.NextGuess(solver.NoFeedback)

	tok, exp, err := s.tokens.sign(sess.id)
	if err != nil {
		log.Error().Err(err).Msg("sign session token")
		http.Error(w, `{"error":"sign_failed"}`, http.StatusInternalServerError)
		return
	}
	if err := s.sessions.Save(r.Context(), sess.id, sess); err != nil {
		log.Error().Err(err).Msg("save session")
		http.Error(w, `{"error":"save_failed"}`, http.StatusInternalServerError)
		return
	}
	_ = json.NewEncoder(w).Encode(solverNewRes{
		SessionID:  sess.id,
		Token:      tok,
		ExpiresAt:  exp.UTC(),
		Guess:      guess,
		Candidates: len(sess.sel.Candidates()),
	})
}

type feedbackReq struct {
	Feedback string `json:"feedback"`
}
type feedbackRes struct {
	Guess      string `json:"guess"`
	State      string `json:"state"`
	Candidates int    `json:"candidates"`
	Degraded   bool   `json:"degraded"`
}

// handleSolverFeedback reports the pattern for the last guess and returns the next one.
// The reserved rejection messages are passed through untouched; anything else must be
// a valid pattern whose letters agree with the last guess.
func (s *Server) handleSolverFeedback(w http.ResponseWriter, r *http.Request) {
	var req feedbackReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"bad_json"}`, http.StatusBadRequest)
		return
	}
	fb := solver.Feedback(req.Feedback)
	if !fb.Reserved() {
		p, err := pattern.Parse(req.Feedback)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		fb = solver.Feedback(p)
	}

	sess := currentSession(r)
	sess.mu.Lock()
	if tried := sess.sel.Tried(); !fb.Reserved() && len(tried) > 0 {
		if err := pattern.Agrees(tried[len(tried)-1], pattern.Pattern(fb)); err != nil {
			sess.mu.Unlock()
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
	}
	guess := sess.sel.NextGuess(fb)
	res := feedbackRes{
		Guess:      guess,
		State:      sess.sel.State().String(),
		Candidates: len(sess.sel.Candidates()),
		Degraded:   sess.sel.Degraded(),
	}
	sess.mu.Unlock()

	_ = json.NewEncoder(w).Encode(res)
}

// handleSolverCandidates lists the current pool (first 100 words).
func (s *Server) handleSolverCandidates(w http.ResponseWriter, r *http.Request) {
	sess := currentSession(r)
	sess.mu.Lock()
	words := sess.sel.Candidates()
	sess.mu.Unlock()

	total := len(words)
	if len(words) > maxListed {
		words = words[:maxListed]
	}
	_ = json.NewEncoder(w).Encode(map[string]any{"count": total, "words": words})
}
