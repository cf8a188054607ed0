package handler

import (
	"log/slog"
	"net/http"

	"parley/internal/auth"
	"parley/internal/domain/services"
	"parley/internal/httputil"
)

// AuthHandler handles registration, login, logout, and account deletion.
type AuthHandler struct {
	identity services.IdentityService
	sessions *auth.SessionManager
	logger   *slog.Logger
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(identity services.IdentityService, sessions *auth.SessionManager, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		identity: identity,
		sessions: sessions,
		logger:   logger,
	}
}

// userResponse is the public shape of an account.
type userResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

// Register creates a new account
// POST /api/auth/register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req services.RegisterRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	user, err := h.identity.Register(r.Context(), &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, userResponse{ID: user.ID, Username: user.Username})
}

// Login verifies credentials and starts a session
// POST /api/auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	user, err := h.identity.Authenticate(r.Context(), req.Username, req.Password)
	if err != nil {
		handleError(w, err)
		return
	}

	token, err := h.sessions.Issue(user.ID)
	if err != nil {
		handleError(w, err)
		return
	}

	http.SetCookie(w, h.sessions.Cookie(token))
	httputil.RespondJSON(w, http.StatusOK, userResponse{ID: user.ID, Username: user.Username})
}

// Logout clears the session cookie
// POST /api/auth/logout
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, h.sessions.ClearedCookie())
	w.WriteHeader(http.StatusNoContent)
}

// DeleteAccount removes the account and everything it owns
// DELETE /api/users/me
func (h *AuthHandler) DeleteAccount(w http.ResponseWriter, r *http.Request) {
	userID := httputil.GetUserID(r)

	if err := h.identity.DeleteAccount(r.Context(), userID); err != nil {
		handleError(w, err)
		return
	}

	http.SetCookie(w, h.sessions.ClearedCookie())
	w.WriteHeader(http.StatusNoContent)
}
