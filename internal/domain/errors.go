package domain

import "errors"

// Sentinel errors shared across layers. Services wrap these with %w so
// callers can classify failures with errors.Is while keeping context.
var (
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("already exists")
	ErrValidation   = errors.New("validation failed")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")

	// ErrUsernameTaken is returned by registration when the username is
	// already claimed.
	ErrUsernameTaken = errors.New("username already taken")

	// ErrInvalidCredentials deliberately does not distinguish an unknown
	// username from a wrong password.
	ErrInvalidCredentials = errors.New("invalid username or password")

	// ErrEmptyMessage is returned before any write when a user submits an
	// empty chat message.
	ErrEmptyMessage = errors.New("message cannot be empty")

	// ErrGenerationFailed is returned when the upstream model call fails.
	// The whole turn is rolled back; callers never see a partial turn.
	ErrGenerationFailed = errors.New("generation failed")
)
