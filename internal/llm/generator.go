package llm

import "context"

// Role tags a turn in the history sent to the model.
type Role string

const (
	RoleUser  Role = "user"
	RoleModel Role = "model"
)

// Turn is one role-tagged entry of conversation history.
type Turn struct {
	Role Role
	Text string
}

// Generator is the external generation capability. Both calls are
// synchronous single attempts; retries and timeouts are the caller's
// collaborators, not this layer's.
//
// Implementations are injected into the turn orchestrator so tests can
// substitute a scripted fake.
type Generator interface {
	// Chat generates a reply from the full ordered history.
	Chat(ctx context.Context, history []Turn) (string, error)

	// Prompt generates from a single free-form prompt (used for title
	// derivation).
	Prompt(ctx context.Context, prompt string) (string, error)

	// Name returns the provider name (e.g. "gemini").
	Name() string
}
