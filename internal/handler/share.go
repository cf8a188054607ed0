package handler

import (
	"log/slog"
	"net/http"
	"time"

	"parley/internal/domain/services"
	"parley/internal/httputil"
)

// ShareHandler serves shared conversations to unauthenticated readers.
type ShareHandler struct {
	exporter services.ExportService
	logger   *slog.Logger
}

// NewShareHandler creates a new share handler
func NewShareHandler(exporter services.ExportService, logger *slog.Logger) *ShareHandler {
	return &ShareHandler{
		exporter: exporter,
		logger:   logger,
	}
}

// sharedMessageView includes timestamps, unlike the owner's chat view, so a
// public page can show when the exchange happened.
type sharedMessageView struct {
	Sender    string `json:"sender"`
	Content   string `json:"content"`
	Timestamp string `json:"timestamp"`
}

type sharedConversationView struct {
	Title     string              `json:"title"`
	CreatedAt string              `json:"created_at"`
	Messages  []sharedMessageView `json:"messages"`
}

// ViewShared renders a public conversation read-only
// GET /share/{token}
func (h *ShareHandler) ViewShared(w http.ResponseWriter, r *http.Request) {
	token, ok := PathParam(w, r, "token", "Share token")
	if !ok {
		return
	}

	detail, err := h.exporter.ResolvePublic(r.Context(), token)
	if err != nil {
		handleError(w, err)
		return
	}

	view := sharedConversationView{
		Title:     detail.Conversation.Title,
		CreatedAt: detail.Conversation.CreatedAt.Format(time.RFC3339),
		Messages:  make([]sharedMessageView, 0, len(detail.Messages)),
	}
	for _, m := range detail.Messages {
		view.Messages = append(view.Messages, sharedMessageView{
			Sender:    string(m.Sender),
			Content:   m.Content,
			Timestamp: m.CreatedAt.Format(time.RFC3339),
		})
	}

	httputil.RespondJSON(w, http.StatusOK, view)
}
