package services

import (
	"context"

	"parley/internal/domain/models"
)

// ConversationDetail bundles a conversation with its ordered message log.
type ConversationDetail struct {
	Conversation models.Conversation
	Messages     []models.Message
}

// ConversationService manages conversation lifecycle. Every id-taking
// operation verifies ownership and fails with domain.ErrForbidden when the
// requester is not the owner, never trusting checks made elsewhere.
type ConversationService interface {
	// Create starts a new private conversation with the default title.
	Create(ctx context.Context, ownerID string) (*models.Conversation, error)

	// List returns the owner's conversations, newest-created first.
	List(ctx context.Context, ownerID string) ([]models.Conversation, error)

	// Get returns the conversation and its messages in log order.
	Get(ctx context.Context, id, requesterID string) (*ConversationDetail, error)

	// Rename sets an explicit title, replacing automatic derivation.
	Rename(ctx context.Context, id, requesterID, title string) (*models.Conversation, error)

	// Delete removes the conversation and all its messages atomically.
	Delete(ctx context.Context, id, requesterID string) error
}

// TurnService orchestrates one chat turn: persist the user message, call the
// model with the full history, persist the reply, and derive a title for
// still-untitled conversations. All writes commit as one unit; a failed
// generation call rolls back everything including the user message.
type TurnService interface {
	SubmitTurn(ctx context.Context, conversationID, requesterID, text string) (string, error)
}
