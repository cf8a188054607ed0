package middleware

import (
	"log/slog"
	"net/http"
	"runtime/debug"

	"parley/internal/httputil"
)

// Recovery turns a handler panic into a 500 problem response instead of a
// dropped connection. http.ErrAbortHandler is re-raised: it is net/http's
// sanctioned way to abort a response and must not be converted to a 500.
func Recovery(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					if err == http.ErrAbortHandler {
						panic(err)
					}

					logger.Error("panic recovered",
						"error", err,
						"method", r.Method,
						"path", r.URL.Path,
						"remote", r.RemoteAddr,
						"stack", string(debug.Stack()),
					)

					httputil.RespondError(w, http.StatusInternalServerError, "internal server error")
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}
