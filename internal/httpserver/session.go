// apps/go-solver/internal/httpserver/session.go
//
// Anonymous solver sessions.
// Responsibilities:
//   - Sign HS256 session tokens whose subject is the session ID.
//   - requireSession: extract a bearer token, verify it, load the session into context.
//
// Notes:
//   - There are no accounts; the token only proves the caller created the session.
//   - A valid token for a session that no longer exists (process restart) is a 401.
package httpserver

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordle/apps/go-solver/internal/solver"
)

// solverSession guards one Selector; handlers lock mu for every turn.
type solverSession struct {
	mu  sync.Mutex
	id  string
	sel *solver.Selector
}

type tokenIssuer struct {
	secret []byte
	ttl    time.Duration
}

// sign creates an HS256 JWT for session id.
func (t *tokenIssuer) sign(id string) (string, time.Time, error) {
	now := time.Now()
	exp := now.Add(t.ttl)
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   id,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(exp),
	})
	ss, err := tok.SignedString(t.secret)
	return ss, exp, err
}

// verify parses tok and returns the session ID it was issued for.
func (t *tokenIssuer) verify(tok string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	parsed, err := jwt.ParseWithClaims(tok, claims, func(*jwt.Token) (interface{}, error) {
		return t.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return "", err
	}
	if !parsed.Valid || claims.Subject == "" {
		return "", errors.New("invalid token")
	}
	return claims.Subject, nil
}

// bearer extracts a token from the Authorization header.
func bearer(r *http.Request) string {
	if a := r.Header.Get("Authorization"); strings.HasPrefix(strings.ToLower(a), "bearer ") {
		return strings.TrimSpace(a[7:])
	}
	return ""
}

// ctxSessionKey is the context key type for storing the solver session.
type ctxSessionKey struct{}

// requireSession enforces a valid session token and injects the session into context.
func (s *Server) requireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tok := bearer(r)
		if tok == "" {
			http.Error(w, `{"error":"Unauthorized"}`, http.StatusUnauthorized)
			return
		}
		id, err := s.tokens.verify(tok)
		if err != nil {
			http.Error(w, `{"error":"Invalid token"}`, http.StatusUnauthorized)
			return
		}
		sess, err := s.sessions.Get(r.Context(), id)
		if err != nil {
			log.Warn().Err(err).Str("session", id).Msg("token for unknown session")
			http.Error(w, `{"error":"Invalid token"}`, http.StatusUnauthorized)
			return
		}
		ctx := context.WithValue(r.Context(), ctxSessionKey{}, sess)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// currentSession returns the session placed into context by requireSession.
func currentSession(r *http.Request) *solverSession {
	sess, _ := r.Context().Value(ctxSessionKey{}).(*solverSession)
	return sess
}
