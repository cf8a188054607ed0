package middleware

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"parley/internal/auth"
	"parley/internal/httputil"
)

func testAuth(t *testing.T) (*auth.SessionManager, func(http.Handler) http.Handler) {
	t.Helper()

	sessions, err := auth.NewSessionManager("test-secret", time.Hour, false)
	if err != nil {
		t.Fatalf("NewSessionManager failed: %v", err)
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	return sessions, Auth(sessions, logger)
}

func TestAuthPassesPublicPaths(t *testing.T) {
	_, mw := testAuth(t)

	for _, path := range []string{"/health", "/api/auth/register", "/api/auth/login", "/share/some-token"} {
		called := false
		next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { called = true })

		w := httptest.NewRecorder()
		mw(next).ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))

		if !called {
			t.Errorf("%s: handler not reached without session", path)
		}
	}
}

func TestAuthRejectsMissingCookie(t *testing.T) {
	_, mw := testAuth(t)

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler reached without a session cookie")
	})

	w := httptest.NewRecorder()
	mw(next).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/conversations", nil))

	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
}

func TestAuthRejectsBadToken(t *testing.T) {
	_, mw := testAuth(t)

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler reached with an invalid session")
	})

	r := httptest.NewRequest(http.MethodGet, "/api/conversations", nil)
	r.AddCookie(&http.Cookie{Name: auth.SessionCookieName, Value: "garbage"})
	w := httptest.NewRecorder()
	mw(next).ServeHTTP(w, r)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
}

func TestAuthInjectsUserID(t *testing.T) {
	sessions, mw := testAuth(t)

	token, err := sessions.Issue("u1")
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	var gotUserID string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUserID = httputil.GetUserID(r)
	})

	r := httptest.NewRequest(http.MethodGet, "/api/conversations", nil)
	r.AddCookie(&http.Cookie{Name: auth.SessionCookieName, Value: token})
	mw(next).ServeHTTP(httptest.NewRecorder(), r)

	if gotUserID != "u1" {
		t.Errorf("user ID in context = %q, want u1", gotUserID)
	}
}
