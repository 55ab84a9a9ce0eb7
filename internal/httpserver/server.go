// apps/go-solver/internal/httpserver/server.go
//
// HTTP server wiring for the solver service.
// Responsibilities:
//   - Router + middleware (JSON, CORS, timeouts, panic recovery, request IDs).
//   - Public endpoints: "/", "/health", "/debug/words".
//   - Solver sessions: POST /solver/new, then bearer-token POST /solver/feedback and
//     GET /solver/candidates.
//   - Referee games: POST /game/new, POST /game/guess.
//   - Trial runs: POST /runs, GET /runs, GET /runs/{id}/games (persisted when a results
//     store is configured).
//
// Notes:
//   - CORS is origin-aware and credentials-enabled.
//   - Sessions and games live in memory; only trial runs reach the database.
package httpserver

import (
	"encoding/json"
	"net/http"
	"os"
	"time"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/robalobadob/wordle/apps/go-solver/internal/results"
	"github.com/robalobadob/wordle/apps/go-solver/internal/solver"
	"github.com/robalobadob/wordle/apps/go-solver/internal/store"
)

const (
	defaultSecret = "dev_secret_change_me"
	defaultTTL    = 24 * time.Hour
)

// Config carries everything the handlers need. Words must be non-empty.
type Config struct {
	Words   []string
	Solver  solver.Config
	Results *results.Store // nil disables run persistence
	Secret  string         // HS256 key for session tokens
	TTL     time.Duration  // session token lifetime
	Salt    string         // key for trial and daily target selection
}

// Server bundles router, in-memory session stores, and the optional results store.
type Server struct {
	r        *chi.Mux
	cfg      Config
	allowed  mapset.Set[string]
	tokens   *tokenIssuer
	sessions store.Store[*solverSession]
	games    store.Store[*gameSession]
}

// New constructs a Server, installs middleware, and registers routes.
func New(cfg Config) *Server {
	if cfg.Secret == "" {
		cfg.Secret = defaultSecret
	}
	if cfg.TTL <= 0 {
		cfg.TTL = defaultTTL
	}
	s := &Server{
		r:        chi.NewRouter(),
		cfg:      cfg,
		allowed:  mapset.NewSet(cfg.Words...),
		tokens:   &tokenIssuer{secret: []byte(cfg.Secret), ttl: cfg.TTL},
		sessions: store.NewMemory[*solverSession](),
		games:    store.NewMemory[*gameSession](),
	}

	// --- middleware ---
	s.r.Use(chimw.RequestID)                 // add X-Request-ID
	s.r.Use(chimw.RealIP)                    // set RemoteAddr from X-Forwarded-For etc.
	s.r.Use(chimw.Recoverer)                 // recover from panics
	s.r.Use(chimw.Timeout(30 * time.Second)) // bound handler time (trial runs included)
	s.r.Use(jsonContentType)                 // default JSON responses
	s.r.Use(corsFromEnv)                     // credentials-friendly CORS

	// --- diagnostics ---
	s.r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"service":"wordle-solver","endpoints":["/health","POST /solver/new","POST /solver/feedback","GET /solver/candidates","POST /game/new","POST /game/guess","POST /runs","GET /runs"]}`))
	})
	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"ok":true}`))
	})
	s.r.Get("/debug/words", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]int{"words": len(s.cfg.Words)})
	})

	s.mountSolver()
	s.mountGame()
	s.mountRuns()

	// JSON 404 for easier debugging
	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"not_found","path":"`+r.URL.Path+`"}`, http.StatusNotFound)
	})

	return s
}

// Start begins serving HTTP on addr.
func (s *Server) Start(addr string) error { return http.ListenAndServe(addr, s.r) }

// Router exposes the internal router (useful for tests).
func (s *Server) Router() chi.Router { return s.r }

// ----------------------------- middleware ----------------------------------

// jsonContentType sets a default JSON Content-Type header on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

// corsFromEnv enables credentialed CORS for a single origin.
// Uses CLIENT_ORIGIN env var; defaults to http://localhost:5173.
func corsFromEnv(next http.Handler) http.Handler {
	origin := getEnv("CLIENT_ORIGIN", "http://localhost:5173")
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Vary", "Origin")
		w.Header().Set("Access-Control-Allow-Origin", origin)
		w.Header().Set("Access-Control-Allow-Credentials", "true")
		w.Header().Set("Access-Control-Allow-Methods", "GET,POST,OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// ------------------------------- small util --------------------------------

// isAllowed reports whether w is in the server's word list.
func (s *Server) isAllowed(w string) bool { return s.allowed.Contains(w) }

// writeError writes a JSON error body with the given status.
func writeError(w http.ResponseWriter, status int, code string) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": code})
}

// getEnv returns the value of k or def if unset/empty.
func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
