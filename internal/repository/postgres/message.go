package postgres

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	"parley/internal/domain"
	"parley/internal/domain/models"
	"parley/internal/domain/repositories"
)

// PostgresMessageRepository implements the MessageRepository interface using
// PostgreSQL
type PostgresMessageRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
	logger *slog.Logger
}

// NewMessageRepository creates a new PostgresMessageRepository
func NewMessageRepository(config *RepositoryConfig) repositories.MessageRepository {
	return &PostgresMessageRepository{
		pool:   config.Pool,
		tables: config.Tables,
		logger: config.Logger,
	}
}

// Append inserts a message with the next per-conversation sequence number.
// The subselect and the (conversation_id, seq) unique constraint together
// make concurrent appends to the same conversation fail at commit instead
// of interleaving.
func (r *PostgresMessageRepository) Append(ctx context.Context, msg *models.Message) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (id, conversation_id, seq, sender, content, created_at)
		VALUES ($1, $2,
			(SELECT COALESCE(MAX(seq), 0) + 1 FROM %s WHERE conversation_id = $2),
			$3, $4, $5)
		RETURNING seq
	`, r.tables.Messages, r.tables.Messages)

	executor := GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query,
		msg.ID,
		msg.ConversationID,
		msg.Sender,
		msg.Content,
		msg.CreatedAt,
	).Scan(&msg.Seq)

	if err != nil {
		if IsPgDuplicateError(err) {
			return fmt.Errorf("concurrent append to conversation %s: %w", msg.ConversationID, domain.ErrConflict)
		}
		return fmt.Errorf("append message: %w", err)
	}

	return nil
}

// ListByConversation retrieves messages in log order
func (r *PostgresMessageRepository) ListByConversation(ctx context.Context, conversationID string) ([]models.Message, error) {
	query := fmt.Sprintf(`
		SELECT id, conversation_id, seq, sender, content, created_at
		FROM %s
		WHERE conversation_id = $1
		ORDER BY seq
	`, r.tables.Messages)

	executor := GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query, conversationID)
	if err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}
	defer rows.Close()

	var msgs []models.Message
	for rows.Next() {
		var msg models.Message
		err := rows.Scan(
			&msg.ID,
			&msg.ConversationID,
			&msg.Seq,
			&msg.Sender,
			&msg.Content,
			&msg.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan message: %w", err)
		}
		msgs = append(msgs, msg)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate messages: %w", err)
	}

	// Return empty slice instead of nil
	if msgs == nil {
		msgs = []models.Message{}
	}

	return msgs, nil
}

// DeleteByConversation removes every message in a conversation
func (r *PostgresMessageRepository) DeleteByConversation(ctx context.Context, conversationID string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE conversation_id = $1`, r.tables.Messages)

	executor := GetExecutor(ctx, r.pool)
	if _, err := executor.Exec(ctx, query, conversationID); err != nil {
		return fmt.Errorf("delete messages: %w", err)
	}

	return nil
}
