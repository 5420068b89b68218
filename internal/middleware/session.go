package middleware

import (
	"context"
	"net/http"

	"library-admin/internal/session"
)

type contextKey string

const sessionContextKey contextKey = "session"

// Sessions attaches the caller's session to the request context, starting a
// new one when the cookie is missing or stale.
func Sessions(m *session.Manager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess, exists := m.FromRequest(r)
			if !exists {
				sess = m.CreateSession()
				session.SetSessionCookie(w, sess.ID)
			}
			ctx := context.WithValue(r.Context(), sessionContextKey, sess)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetSessionFromContext returns the session Sessions stored, or nil.
func GetSessionFromContext(ctx context.Context) *session.Session {
	sess, ok := ctx.Value(sessionContextKey).(*session.Session)
	if !ok {
		return nil
	}
	return sess
}

// WithSession stores sess in ctx. Handlers tests use it to skip the cookie
// round trip.
func WithSession(ctx context.Context, sess *session.Session) context.Context {
	return context.WithValue(ctx, sessionContextKey, sess)
}
