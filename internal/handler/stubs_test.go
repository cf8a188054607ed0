package handler

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"

	"parley/internal/domain/models"
	"parley/internal/domain/services"
	"parley/internal/httputil"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// authedRequest builds a request carrying an authenticated user ID, as the
// auth middleware would.
func authedRequest(method, target, userID string, body io.Reader) *http.Request {
	r := httptest.NewRequest(method, target, body)
	return httputil.WithUserID(r, userID)
}

type stubConversationService struct {
	conv   *models.Conversation
	convs  []models.Conversation
	detail *services.ConversationDetail
	err    error

	lastID        string
	lastRequester string
	lastTitle     string
}

func (s *stubConversationService) Create(ctx context.Context, ownerID string) (*models.Conversation, error) {
	s.lastRequester = ownerID
	if s.err != nil {
		return nil, s.err
	}
	return s.conv, nil
}

func (s *stubConversationService) List(ctx context.Context, ownerID string) ([]models.Conversation, error) {
	s.lastRequester = ownerID
	if s.err != nil {
		return nil, s.err
	}
	return s.convs, nil
}

func (s *stubConversationService) Get(ctx context.Context, id, requesterID string) (*services.ConversationDetail, error) {
	s.lastID, s.lastRequester = id, requesterID
	if s.err != nil {
		return nil, s.err
	}
	return s.detail, nil
}

func (s *stubConversationService) Rename(ctx context.Context, id, requesterID, title string) (*models.Conversation, error) {
	s.lastID, s.lastRequester, s.lastTitle = id, requesterID, title
	if s.err != nil {
		return nil, s.err
	}
	return s.conv, nil
}

func (s *stubConversationService) Delete(ctx context.Context, id, requesterID string) error {
	s.lastID, s.lastRequester = id, requesterID
	return s.err
}

type stubTurnService struct {
	reply string
	err   error

	lastText string
}

func (s *stubTurnService) SubmitTurn(ctx context.Context, conversationID, requesterID, text string) (string, error) {
	s.lastText = text
	if s.err != nil {
		return "", s.err
	}
	return s.reply, nil
}

type stubExportService struct {
	result *services.ExportResult
	url    string
	detail *services.ConversationDetail
	err    error

	lastFormat string
	lastToken  string
}

func (s *stubExportService) Export(ctx context.Context, id, requesterID, format string) (*services.ExportResult, error) {
	s.lastFormat = format
	if s.err != nil {
		return nil, s.err
	}
	return s.result, nil
}

func (s *stubExportService) Share(ctx context.Context, id, requesterID string) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	return s.url, nil
}

func (s *stubExportService) ResolvePublic(ctx context.Context, token string) (*services.ConversationDetail, error) {
	s.lastToken = token
	if s.err != nil {
		return nil, s.err
	}
	return s.detail, nil
}

type stubIdentityService struct {
	user *models.User
	err  error
}

func (s *stubIdentityService) Register(ctx context.Context, req *services.RegisterRequest) (*models.User, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.user, nil
}

func (s *stubIdentityService) Authenticate(ctx context.Context, username, password string) (*models.User, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.user, nil
}

func (s *stubIdentityService) DeleteAccount(ctx context.Context, userID string) error {
	return s.err
}
