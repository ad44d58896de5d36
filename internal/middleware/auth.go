package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/google/uuid"
)

// ctxKey is unexported so no other package can collide with our context keys.
type ctxKey int

const userIDKey ctxKey = iota

// TokenVerifier validates a bearer token and returns the user it identifies.
// Satisfied by *auth.TokenIssuer.
type TokenVerifier interface {
	Verify(token string) (uuid.UUID, error)
}

// RequireAuth returns a middleware that rejects requests without a valid
// "Authorization: Bearer <token>" header and stores the authenticated user's
// ID in the request context for handlers to read via UserID.
func RequireAuth(verifier TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := bearerToken(r.Header.Get("Authorization"))
			if !ok {
				writeUnauthenticated(w, "missing bearer token")
				return
			}

			userID, err := verifier.Verify(token)
			if err != nil {
				writeUnauthenticated(w, "invalid or expired token")
				return
			}

			next.ServeHTTP(w, r.WithContext(WithUserID(r.Context(), userID)))
		})
	}
}

// UserID returns the authenticated user's ID from the request context.
// The second return is false on routes not wrapped by RequireAuth.
func UserID(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(userIDKey).(uuid.UUID)
	return id, ok
}

// WithUserID returns a context carrying the given user ID.
// Exported so handler tests can authenticate requests without minting tokens.
func WithUserID(ctx context.Context, userID uuid.UUID) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// bearerToken extracts the token from an "Authorization: Bearer x" header.
func bearerToken(header string) (string, bool) {
	const prefix = "Bearer "
	if len(header) <= len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return "", false
	}
	return strings.TrimSpace(header[len(prefix):]), true
}

// writeUnauthenticated writes the standard 401 error envelope. The body shape
// matches handler error responses so clients parse every error the same way.
func writeUnauthenticated(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_, _ = w.Write([]byte(`{"error":{"code":"unauthenticated","message":"` + message + `"}}`))
}
