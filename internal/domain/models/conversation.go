package models

import "time"

// DefaultConversationTitle is the placeholder assigned at creation and
// replaced once, automatically, after the first completed turn.
const DefaultConversationTitle = "New Chat"

// Conversation is a chat session owned by exactly one user.
//
// A conversation is publicly readable iff IsPublic is true and ShareToken is
// set. The token is minted once by the share operation and never rotated.
type Conversation struct {
	ID         string    `json:"id"`
	UserID     string    `json:"user_id"`
	Title      string    `json:"title"`
	IsPublic   bool      `json:"is_public"`
	ShareToken *string   `json:"share_token,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}
