package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"parley/internal/auth"
	"parley/internal/httputil"
)

// publicPaths are reachable without a session: health checks, the
// register/login pair, and read-only shared conversations.
var publicPaths = map[string]bool{
	"/health":            true,
	"/api/auth/register": true,
	"/api/auth/login":    true,
}

// Auth verifies the session cookie and injects the user ID into the request
// context. Requests to public paths pass through untouched.
func Auth(sessions *auth.SessionManager, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if publicPaths[r.URL.Path] || strings.HasPrefix(r.URL.Path, "/share/") {
				next.ServeHTTP(w, r)
				return
			}

			cookie, err := r.Cookie(auth.SessionCookieName)
			if err != nil {
				httputil.RespondError(w, http.StatusUnauthorized, "authentication required")
				return
			}

			userID, err := sessions.Verify(cookie.Value)
			if err != nil {
				logger.Debug("session rejected", "path", r.URL.Path)
				httputil.RespondError(w, http.StatusUnauthorized, "invalid or expired session")
				return
			}

			next.ServeHTTP(w, httputil.WithUserID(r, userID))
		})
	}
}
