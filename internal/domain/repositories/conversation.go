package repositories

import (
	"context"

	"parley/internal/domain/models"
)

// ConversationRepository persists conversations. Ownership checks live in
// the service layer: GetByID loads regardless of owner so services can
// distinguish "not found" from "not yours".
type ConversationRepository interface {
	Create(ctx context.Context, conv *models.Conversation) error

	// GetByID returns domain.ErrNotFound if no such conversation exists.
	GetByID(ctx context.Context, id string) (*models.Conversation, error)

	// ListByUser returns the user's conversations, newest-created first.
	ListByUser(ctx context.Context, userID string) ([]models.Conversation, error)

	// ListIDsByUser returns just the conversation IDs for cascade deletes.
	ListIDsByUser(ctx context.Context, userID string) ([]string, error)

	UpdateTitle(ctx context.Context, id, title string) error

	// Publish sets the share token if none exists yet and flips the
	// conversation public. It returns the canonical token, so repeated
	// calls are idempotent.
	Publish(ctx context.Context, id, token string) (string, error)

	// GetByShareToken resolves a public conversation by its share token.
	// Returns domain.ErrNotFound unless the token matches AND the
	// conversation is public.
	GetByShareToken(ctx context.Context, token string) (*models.Conversation, error)

	Delete(ctx context.Context, id string) error
}
