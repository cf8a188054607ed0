package services

import "context"

// Export formats.
const (
	ExportFormatText = "txt"
	ExportFormatJSON = "json"
)

// ExportResult is a rendered conversation ready for file download.
type ExportResult struct {
	Filename    string
	ContentType string
	Data        []byte
}

// ExportService renders conversations for download and manages public
// share links.
type ExportService interface {
	// Export renders the conversation in the given format. Unknown
	// formats fall back to plain text.
	Export(ctx context.Context, id, requesterID, format string) (*ExportResult, error)

	// Share returns the absolute public URL for the conversation, minting
	// the share token on first use. Idempotent.
	Share(ctx context.Context, id, requesterID string) (string, error)

	// ResolvePublic looks up a conversation by share token. Fails with
	// domain.ErrNotFound unless the conversation is public and the token
	// matches exactly.
	ResolvePublic(ctx context.Context, token string) (*ConversationDetail, error)
}
