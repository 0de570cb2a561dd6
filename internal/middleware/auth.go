package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/polashmiya/eGadget-Ecommerce/internal/service"
	"github.com/polashmiya/eGadget-Ecommerce/internal/session"

	"go.uber.org/zap"
)

type contextKey string

const (
	sessionStoreKey contextKey = "session_store"
	sessionIDKey    contextKey = "session_id"
)

// SessionTokenHeader carries a freshly issued session token back to the
// client when a request arrived without a usable one.
const SessionTokenHeader = "X-Session-Token"

// SessionMiddleware resolves the caller's session from a bearer token
// and places its store in the request context. Requests without a valid
// token get a brand-new session; anonymous visitors have carts too, so
// this never rejects. The new token travels back in the
// X-Session-Token response header.
func SessionMiddleware(auth service.AuthService, sessions *session.Manager, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var (
				store *session.Store
				id    string
			)

			if tokenString := extractToken(r); tokenString != "" {
				if claims, err := auth.ValidateToken(tokenString); err == nil {
					if s, ok := sessions.Get(claims.SessionID); ok {
						store, id = s, claims.SessionID
					}
				} else {
					logger.Debug("Session token rejected", zap.Error(err))
				}
			}

			if store == nil {
				id, store = sessions.Create()
				token, err := auth.IssueSessionToken(id)
				if err != nil {
					logger.Error("Failed to issue session token", zap.Error(err))
					RespondWithError(w, http.StatusInternalServerError, "internal server error")
					return
				}
				w.Header().Set(SessionTokenHeader, token)
			}

			ctx := context.WithValue(r.Context(), sessionStoreKey, store)
			ctx = context.WithValue(ctx, sessionIDKey, id)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAuth rejects requests whose session has no signed-in user.
func RequireAuth(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			store, ok := SessionFromContext(r.Context())
			if !ok {
				logger.Warn("Session missing from context")
				RespondWithError(w, http.StatusUnauthorized, "authentication required")
				return
			}

			if !store.IsAuthenticated() {
				RespondWithError(w, http.StatusUnauthorized, "authentication required")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// SessionFromContext returns the session store placed by
// SessionMiddleware.
func SessionFromContext(ctx context.Context) (*session.Store, bool) {
	store, ok := ctx.Value(sessionStoreKey).(*session.Store)
	return store, ok
}

// SessionIDFromContext returns the resolved session id.
func SessionIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(sessionIDKey).(string)
	return id, ok
}

// WithSession places a session store in ctx. Exposed for handler tests.
func WithSession(ctx context.Context, id string, store *session.Store) context.Context {
	ctx = context.WithValue(ctx, sessionStoreKey, store)
	return context.WithValue(ctx, sessionIDKey, id)
}

func extractToken(r *http.Request) string {
	if authHeader := r.Header.Get("Authorization"); authHeader != "" {
		parts := strings.Split(authHeader, " ")
		if len(parts) == 2 && parts[0] == "Bearer" {
			return parts[1]
		}
		return ""
	}
	return r.Header.Get(SessionTokenHeader)
}
