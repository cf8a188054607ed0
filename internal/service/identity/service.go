package identity

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"parley/internal/config"
	"parley/internal/domain"
	"parley/internal/domain/models"
	"parley/internal/domain/repositories"
	"parley/internal/domain/services"
)

// Service implements the IdentityService interface.
type Service struct {
	users     repositories.UserRepository
	convs     repositories.ConversationRepository
	messages  repositories.MessageRepository
	txManager repositories.TransactionManager
	logger    *slog.Logger
}

// NewService creates a new identity service
func NewService(
	users repositories.UserRepository,
	convs repositories.ConversationRepository,
	messages repositories.MessageRepository,
	txManager repositories.TransactionManager,
	logger *slog.Logger,
) services.IdentityService {
	return &Service{
		users:     users,
		convs:     convs,
		messages:  messages,
		txManager: txManager,
		logger:    logger,
	}
}

// Register creates a new account with a bcrypt-hashed password.
func (s *Service) Register(ctx context.Context, req *services.RegisterRequest) (*models.User, error) {
	if err := validateRegisterRequest(req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &models.User{
		ID:           uuid.NewString(),
		Username:     req.Username,
		PasswordHash: string(hash),
		CreatedAt:    time.Now(),
	}

	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("user registered", "id", user.ID, "username", user.Username)

	return user, nil
}

// Authenticate verifies credentials. Unknown usernames and wrong passwords
// both surface as ErrInvalidCredentials so the response never reveals which
// check failed.
func (s *Service) Authenticate(ctx context.Context, username, password string) (*models.User, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, domain.ErrInvalidCredentials
	}

	return user, nil
}

// DeleteAccount removes the user and everything they own as one transaction:
// messages first, then conversations, then the user row.
func (s *Service) DeleteAccount(ctx context.Context, userID string) error {
	err := s.txManager.ExecTx(ctx, func(ctx context.Context) error {
		ids, err := s.convs.ListIDsByUser(ctx, userID)
		if err != nil {
			return err
		}

		for _, id := range ids {
			if err := s.messages.DeleteByConversation(ctx, id); err != nil {
				return err
			}
			if err := s.convs.Delete(ctx, id); err != nil {
				return err
			}
		}

		return s.users.Delete(ctx, userID)
	})
	if err != nil {
		return err
	}

	s.logger.Info("account deleted", "user_id", userID)

	return nil
}

func validateRegisterRequest(req *services.RegisterRequest) error {
	if err := validation.ValidateStruct(req,
		validation.Field(&req.Username,
			validation.Required,
			validation.Length(config.MinUsernameLength, config.MaxUsernameLength),
		),
		validation.Field(&req.Password,
			validation.Required,
			validation.Length(config.MinPasswordLength, config.MaxPasswordLength),
		),
		validation.Field(&req.ConfirmPassword, validation.Required),
	); err != nil {
		return err
	}

	if req.ConfirmPassword != req.Password {
		return errors.New("passwords do not match")
	}

	return nil
}
