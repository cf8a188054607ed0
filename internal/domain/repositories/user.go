package repositories

import (
	"context"

	"parley/internal/domain/models"
)

// UserRepository persists user accounts.
type UserRepository interface {
	// Create inserts a new user. Returns domain.ErrUsernameTaken if the
	// username is already claimed (case-sensitive exact match).
	Create(ctx context.Context, user *models.User) error

	// GetByUsername returns domain.ErrNotFound if no such user exists.
	GetByUsername(ctx context.Context, username string) (*models.User, error)

	// GetByID returns domain.ErrNotFound if no such user exists.
	GetByID(ctx context.Context, id string) (*models.User, error)

	// Delete removes the user row only. Cascading deletion of owned
	// conversations is an explicit service-level procedure.
	Delete(ctx context.Context, id string) error
}
