package repositories

import (
	"context"

	"parley/internal/domain/models"
)

// MessageRepository persists the append-only message log.
type MessageRepository interface {
	// Append inserts a message and assigns it the next per-conversation
	// sequence number. The (conversation_id, seq) uniqueness constraint
	// turns a concurrent double-submit into a conflict at commit instead
	// of an interleaved log.
	Append(ctx context.Context, msg *models.Message) error

	// ListByConversation returns messages in log order (ascending seq).
	ListByConversation(ctx context.Context, conversationID string) ([]models.Message, error)

	DeleteByConversation(ctx context.Context, conversationID string) error
}
