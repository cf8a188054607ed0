package models

import "time"

// Sender identifies who authored a message. Closed two-value set.
type Sender string

const (
	SenderUser  Sender = "user"
	SenderModel Sender = "model"
)

// Message is one entry in a conversation's append-only log. Messages are
// never updated or deleted individually; they go away only when their
// conversation is deleted.
//
// Seq is a per-conversation monotonic counter assigned inside the commit
// transaction. It defines the order presented to both the model and the UI,
// and its uniqueness constraint rejects concurrent double-submits instead of
// letting them interleave.
type Message struct {
	ID             string    `json:"id"`
	ConversationID string    `json:"conversation_id"`
	Seq            int       `json:"seq"`
	Sender         Sender    `json:"sender"`
	Content        string    `json:"content"`
	CreatedAt      time.Time `json:"created_at"`
}
