package httpserver

import (
	"encoding/json"
	"errors"
	"math/rand"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordle/apps/go-solver/internal/game"
	"github.com/robalobadob/wordle/apps/go-solver/internal/pattern"
	"github.com/robalobadob/wordle/apps/go-solver/internal/trial"
)

// gameSession guards one referee game.
type gameSession struct {
	mu sync.Mutex
	g  *game.Game
}

// mountGame registers the referee routes.
func (s *Server) mountGame() {
	s.r.Post("/game/new", s.handleNewGame)
	s.r.Post("/game/guess", s.handleGuess)
}

// newGameReq/Res payloads for POST /game/new.
type newGameReq struct {
	Answer string `json:"answer"` // optional fixed answer (testing)
	Daily  bool   `json:"daily"`  // today's deterministic answer
}
type newGameRes struct {
	GameID string `json:"gameId"`
	Rows   int    `json:"rows"`
}

// handleNewGame creates a new in-memory game. The answer is, in order of preference,
// the requested one, today's word, or a random word from the list.
func (s *Server) handleNewGame(w http.ResponseWriter, r *http.Request) {
	var req newGameReq
	_ = json.NewDecoder(r.Body).Decode(&req)

	answer := strings.ToLower(strings.TrimSpace(req.Answer))
	switch {
	case answer != "":
		if !s.allowed.Contains(answer) {
			http.Error(w, `{"error":"answer_not_in_list"}`, http.StatusBadRequest)
			return
		}
	case req.Daily:
		answer = s.cfg.Words[trial.DailyTarget(time.Now(), s.cfg.Salt, len(s.cfg.Words))]
	default:
		answer = s.cfg.Words[rand.Intn(len(s.cfg.Words))]
	}

	g := game.New(answer, s.isAllowed)
	if err := s.games.Save(r.Context(), g.ID, &gameSession{g: g}); err != nil {
		log.Error().Err(err).Msg("save game")
		http.Error(w, `{"error":"save_failed"}`, http.StatusInternalServerError)
		return
	}
	_ = json.NewEncoder(w).Encode(newGameRes{GameID: g.ID, Rows: g.Rows})
}

// guessReq/Res payloads for POST /game/guess.
type guessReq struct {
	GameID string `json:"gameId"`
	Guess  string `json:"guess"`
}
type guessRes struct {
	Pattern pattern.Pattern `json:"pattern"`
	State   game.State      `json:"state"` // "playing" | "won" | "lost"
	Answer  string          `json:"answer,omitempty"`
}

// handleGuess applies a guess to an in-memory game. The answer is revealed once the
// game is over.
func (s *Server) handleGuess(w http.ResponseWriter, r *http.Request) {
	var req guessReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"bad_json"}`, http.StatusBadRequest)
		return
	}
	gs, err := s.games.Get(r.Context(), req.GameID)
	if err != nil {
		http.Error(w, `{"error":"not_found"}`, http.StatusNotFound)
		return
	}

	gs.mu.Lock()
	p, state, err := gs.g.ApplyGuess(req.Guess)
	answer := gs.g.Answer
	gs.mu.Unlock()

	if err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, game.ErrFinished) {
			status = http.StatusConflict
		}
		writeError(w, status, err.Error())
		return
	}

	res := guessRes{Pattern: p, State: state}
	if state != game.StatePlaying {
		res.Answer = answer
	}
	_ = json.NewEncoder(w).Encode(res)
}
