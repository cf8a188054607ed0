package chat

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"parley/internal/domain/models"
	"parley/internal/domain/repositories"
	"parley/internal/domain/services"
)

// Exporter implements the ExportService interface.
type Exporter struct {
	convs    repositories.ConversationRepository
	messages repositories.MessageRepository
	baseURL  string
	logger   *slog.Logger
}

// NewExporter creates a new exporter. baseURL is the externally visible
// origin used to build absolute share links.
func NewExporter(
	convs repositories.ConversationRepository,
	messages repositories.MessageRepository,
	baseURL string,
	logger *slog.Logger,
) services.ExportService {
	return &Exporter{
		convs:    convs,
		messages: messages,
		baseURL:  strings.TrimRight(baseURL, "/"),
		logger:   logger,
	}
}

// exportedMessage is one entry of the structured export format.
type exportedMessage struct {
	Sender    string `json:"sender"`
	Content   string `json:"content"`
	Timestamp string `json:"timestamp"`
}

// exportedConversation is the structured export format.
type exportedConversation struct {
	Title     string            `json:"title"`
	CreatedAt string            `json:"created_at"`
	Messages  []exportedMessage `json:"messages"`
}

// Export renders the conversation for download. Anything other than "json"
// falls back to plain text.
func (e *Exporter) Export(ctx context.Context, id, requesterID, format string) (*services.ExportResult, error) {
	conv, err := ownedConversation(ctx, e.convs, id, requesterID)
	if err != nil {
		return nil, err
	}

	msgs, err := e.messages.ListByConversation(ctx, id)
	if err != nil {
		return nil, err
	}

	if format == services.ExportFormatJSON {
		data, err := json.MarshalIndent(structuredExport(conv, msgs), "", "  ")
		if err != nil {
			return nil, fmt.Errorf("encode export: %w", err)
		}
		return &services.ExportResult{
			Filename:    fmt.Sprintf("conversation_%s.json", conv.ID),
			ContentType: "application/json",
			Data:        data,
		}, nil
	}

	return &services.ExportResult{
		Filename:    fmt.Sprintf("conversation_%s.txt", conv.ID),
		ContentType: "text/plain",
		Data:        []byte(textExport(conv, msgs)),
	}, nil
}

// Share publishes the conversation and returns its absolute share URL. The
// token is minted once; later calls reuse it and only re-assert visibility.
func (e *Exporter) Share(ctx context.Context, id, requesterID string) (string, error) {
	if _, err := ownedConversation(ctx, e.convs, id, requesterID); err != nil {
		return "", err
	}

	token, err := e.convs.Publish(ctx, id, uuid.NewString())
	if err != nil {
		return "", err
	}

	e.logger.Info("conversation shared", "id", id, "user_id", requesterID)

	return e.baseURL + "/share/" + token, nil
}

// ResolvePublic looks up a conversation by share token for read-only access.
func (e *Exporter) ResolvePublic(ctx context.Context, token string) (*services.ConversationDetail, error) {
	conv, err := e.convs.GetByShareToken(ctx, token)
	if err != nil {
		return nil, err
	}

	msgs, err := e.messages.ListByConversation(ctx, conv.ID)
	if err != nil {
		return nil, err
	}

	return &services.ConversationDetail{
		Conversation: *conv,
		Messages:     msgs,
	}, nil
}

func structuredExport(conv *models.Conversation, msgs []models.Message) *exportedConversation {
	out := &exportedConversation{
		Title:     conv.Title,
		CreatedAt: conv.CreatedAt.Format(time.RFC3339),
		Messages:  make([]exportedMessage, 0, len(msgs)),
	}
	for _, m := range msgs {
		out.Messages = append(out.Messages, exportedMessage{
			Sender:    string(m.Sender),
			Content:   m.Content,
			Timestamp: m.CreatedAt.Format(time.RFC3339),
		})
	}
	return out
}

func textExport(conv *models.Conversation, msgs []models.Message) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Title: %s\n\n", conv.Title)
	for _, m := range msgs {
		fmt.Fprintf(&b, "[%s - %s]\n%s\n\n",
			capitalize(string(m.Sender)),
			m.CreatedAt.Format("2006-01-02 15:04"),
			m.Content,
		)
	}
	return b.String()
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
