package services

import (
	"context"

	"parley/internal/domain/models"
)

// RegisterRequest carries the registration form fields.
type RegisterRequest struct {
	Username        string `json:"username"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
}

// IdentityService manages accounts and credential checks.
type IdentityService interface {
	// Register creates a new account. Fails with domain.ErrUsernameTaken
	// if the username exists, or domain.ErrValidation on bad input.
	Register(ctx context.Context, req *RegisterRequest) (*models.User, error)

	// Authenticate verifies credentials. Fails with
	// domain.ErrInvalidCredentials without revealing whether the username
	// or the password was wrong.
	Authenticate(ctx context.Context, username, password string) (*models.User, error)

	// DeleteAccount removes the user and, in the same transaction, every
	// conversation and message the user owns.
	DeleteAccount(ctx context.Context, userID string) error
}
