package server

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"creatorlens/internal/core"
	"creatorlens/internal/persistence"
)

type contextKey string

const userContextKey contextKey = "user"

// requireUser resolves the bearer API token to a user and stores it on the
// request context. Demo mode skips authentication entirely; the analysis
// handler short-circuits to the fixture before it ever reads the user.
func (s *Server) requireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.demoActive() {
			next.ServeHTTP(w, r)
			return
		}

		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			s.respondError(w, http.StatusUnauthorized, "Missing Authorization header")
			return
		}

		token := strings.TrimPrefix(authHeader, "Bearer ")
		if token == authHeader || token == "" {
			s.respondError(w, http.StatusUnauthorized, "Authorization header must be a bearer token")
			return
		}

		user, err := s.db.Users().GetByToken(r.Context(), token)
		if err != nil {
			if errors.Is(err, persistence.ErrNotFound) {
				s.respondError(w, http.StatusUnauthorized, "Invalid API token")
				return
			}
			s.log.Error("User lookup failed", "error", err)
			s.respondError(w, http.StatusInternalServerError, "Failed to authenticate request")
			return
		}

		ctx := context.WithValue(r.Context(), userContextKey, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// userFrom returns the authenticated user stored by requireUser.
func userFrom(ctx context.Context) *core.User {
	user, _ := ctx.Value(userContextKey).(*core.User)
	return user
}
