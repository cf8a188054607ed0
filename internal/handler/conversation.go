package handler

import (
	"fmt"
	"log/slog"
	"net/http"

	"parley/internal/domain/services"
	"parley/internal/httputil"
)

// ConversationHandler handles conversation HTTP requests.
// Handlers only talk to services, never repositories.
type ConversationHandler struct {
	conversations services.ConversationService
	turns         services.TurnService
	exporter      services.ExportService
	logger        *slog.Logger
}

// NewConversationHandler creates a new conversation handler
func NewConversationHandler(
	conversations services.ConversationService,
	turns services.TurnService,
	exporter services.ExportService,
	logger *slog.Logger,
) *ConversationHandler {
	return &ConversationHandler{
		conversations: conversations,
		turns:         turns,
		exporter:      exporter,
		logger:        logger,
	}
}

// conversationListItem is the sidebar shape: just id and title.
type conversationListItem struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// messageView is a message as rendered to the chat UI.
type messageView struct {
	Content string `json:"content"`
	Sender  string `json:"sender"`
}

// conversationView is a conversation with its messages in log order.
type conversationView struct {
	Title    string        `json:"title"`
	Messages []messageView `json:"messages"`
}

// Create starts a new conversation
// POST /api/conversations
func (h *ConversationHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID := httputil.GetUserID(r)

	conv, err := h.conversations.Create(r.Context(), userID)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, conv)
}

// List retrieves the caller's conversations, newest first
// GET /api/conversations
func (h *ConversationHandler) List(w http.ResponseWriter, r *http.Request) {
	userID := httputil.GetUserID(r)

	convs, err := h.conversations.List(r.Context(), userID)
	if err != nil {
		handleError(w, err)
		return
	}

	items := make([]conversationListItem, 0, len(convs))
	for _, c := range convs {
		items = append(items, conversationListItem{ID: c.ID, Title: c.Title})
	}

	httputil.RespondJSON(w, http.StatusOK, items)
}

// Get retrieves one conversation with its messages
// GET /api/conversations/{id}
func (h *ConversationHandler) Get(w http.ResponseWriter, r *http.Request) {
	convID, ok := PathParam(w, r, "id", "Conversation ID")
	if !ok {
		return
	}

	userID := httputil.GetUserID(r)
	detail, err := h.conversations.Get(r.Context(), convID, userID)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, toConversationView(detail))
}

// Rename sets an explicit title
// PATCH /api/conversations/{id}
func (h *ConversationHandler) Rename(w http.ResponseWriter, r *http.Request) {
	convID, ok := PathParam(w, r, "id", "Conversation ID")
	if !ok {
		return
	}

	var req struct {
		Title string `json:"title"`
	}
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	userID := httputil.GetUserID(r)
	conv, err := h.conversations.Rename(r.Context(), convID, userID, req.Title)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, conv)
}

// Delete removes a conversation and its messages
// DELETE /api/conversations/{id}
func (h *ConversationHandler) Delete(w http.ResponseWriter, r *http.Request) {
	convID, ok := PathParam(w, r, "id", "Conversation ID")
	if !ok {
		return
	}

	userID := httputil.GetUserID(r)
	if err := h.conversations.Delete(r.Context(), convID, userID); err != nil {
		handleError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// SendMessage submits one chat turn and returns the model's reply
// POST /api/conversations/{id}/messages
func (h *ConversationHandler) SendMessage(w http.ResponseWriter, r *http.Request) {
	convID, ok := PathParam(w, r, "id", "Conversation ID")
	if !ok {
		return
	}

	var req struct {
		Message string `json:"message"`
	}
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	userID := httputil.GetUserID(r)
	reply, err := h.turns.SubmitTurn(r.Context(), convID, userID, req.Message)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, map[string]string{"response": reply})
}

// Share publishes the conversation and returns its share URL
// POST /api/conversations/{id}/share
func (h *ConversationHandler) Share(w http.ResponseWriter, r *http.Request) {
	convID, ok := PathParam(w, r, "id", "Conversation ID")
	if !ok {
		return
	}

	userID := httputil.GetUserID(r)
	shareURL, err := h.exporter.Share(r.Context(), convID, userID)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, map[string]string{"share_url": shareURL})
}

// Export downloads the conversation as a file
// GET /api/conversations/{id}/export?format=txt|json
func (h *ConversationHandler) Export(w http.ResponseWriter, r *http.Request) {
	convID, ok := PathParam(w, r, "id", "Conversation ID")
	if !ok {
		return
	}

	format := r.URL.Query().Get("format")
	if format == "" {
		format = services.ExportFormatText
	}

	userID := httputil.GetUserID(r)
	result, err := h.exporter.Export(r.Context(), convID, userID, format)
	if err != nil {
		handleError(w, err)
		return
	}

	w.Header().Set("Content-Type", result.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s", result.Filename))
	w.WriteHeader(http.StatusOK)
	w.Write(result.Data)
}

func toConversationView(detail *services.ConversationDetail) conversationView {
	view := conversationView{
		Title:    detail.Conversation.Title,
		Messages: make([]messageView, 0, len(detail.Messages)),
	}
	for _, m := range detail.Messages {
		view.Messages = append(view.Messages, messageView{
			Content: m.Content,
			Sender:  string(m.Sender),
		})
	}
	return view
}
