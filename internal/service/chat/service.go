// Package chat implements conversation lifecycle, the turn orchestrator,
// and export/share formatting.
package chat

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"parley/internal/config"
	"parley/internal/domain"
	"parley/internal/domain/models"
	"parley/internal/domain/repositories"
	"parley/internal/domain/services"
)

// Service implements the ConversationService interface.
type Service struct {
	convs     repositories.ConversationRepository
	messages  repositories.MessageRepository
	txManager repositories.TransactionManager
	logger    *slog.Logger
}

// NewService creates a new conversation service
func NewService(
	convs repositories.ConversationRepository,
	messages repositories.MessageRepository,
	txManager repositories.TransactionManager,
	logger *slog.Logger,
) services.ConversationService {
	return &Service{
		convs:     convs,
		messages:  messages,
		txManager: txManager,
		logger:    logger,
	}
}

// Create starts a new private conversation with the default title.
func (s *Service) Create(ctx context.Context, ownerID string) (*models.Conversation, error) {
	conv := &models.Conversation{
		ID:        uuid.NewString(),
		UserID:    ownerID,
		Title:     models.DefaultConversationTitle,
		CreatedAt: time.Now(),
	}

	if err := s.convs.Create(ctx, conv); err != nil {
		return nil, err
	}

	s.logger.Info("conversation created", "id", conv.ID, "user_id", ownerID)

	return conv, nil
}

// List returns the owner's conversations, newest-created first.
func (s *Service) List(ctx context.Context, ownerID string) ([]models.Conversation, error) {
	return s.convs.ListByUser(ctx, ownerID)
}

// Get returns the conversation and its messages in log order.
func (s *Service) Get(ctx context.Context, id, requesterID string) (*services.ConversationDetail, error) {
	conv, err := ownedConversation(ctx, s.convs, id, requesterID)
	if err != nil {
		return nil, err
	}

	msgs, err := s.messages.ListByConversation(ctx, id)
	if err != nil {
		return nil, err
	}

	return &services.ConversationDetail{
		Conversation: *conv,
		Messages:     msgs,
	}, nil
}

// Rename sets an explicit title.
func (s *Service) Rename(ctx context.Context, id, requesterID, title string) (*models.Conversation, error) {
	title = strings.TrimSpace(title)
	if err := validation.Validate(title,
		validation.Required,
		validation.Length(1, config.MaxConversationTitleLength),
	); err != nil {
		return nil, fmt.Errorf("%w: title: %v", domain.ErrValidation, err)
	}

	conv, err := ownedConversation(ctx, s.convs, id, requesterID)
	if err != nil {
		return nil, err
	}

	if err := s.convs.UpdateTitle(ctx, id, title); err != nil {
		return nil, err
	}
	conv.Title = title

	s.logger.Info("conversation renamed", "id", id, "user_id", requesterID)

	return conv, nil
}

// Delete removes the conversation and its messages atomically.
func (s *Service) Delete(ctx context.Context, id, requesterID string) error {
	if _, err := ownedConversation(ctx, s.convs, id, requesterID); err != nil {
		return err
	}

	err := s.txManager.ExecTx(ctx, func(ctx context.Context) error {
		if err := s.messages.DeleteByConversation(ctx, id); err != nil {
			return err
		}
		return s.convs.Delete(ctx, id)
	})
	if err != nil {
		return err
	}

	s.logger.Info("conversation deleted", "id", id, "user_id", requesterID)

	return nil
}

// ownedConversation loads a conversation and enforces ownership. Every
// id-taking path goes through here; ownership is never assumed from an
// earlier check.
func ownedConversation(ctx context.Context, convs repositories.ConversationRepository, id, requesterID string) (*models.Conversation, error) {
	conv, err := convs.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if conv.UserID != requesterID {
		return nil, fmt.Errorf("conversation %s: %w", id, domain.ErrForbidden)
	}

	return conv, nil
}
