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

// PostgresConversationRepository implements the ConversationRepository
// interface using PostgreSQL
type PostgresConversationRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
	logger *slog.Logger
}

// NewConversationRepository creates a new PostgresConversationRepository
func NewConversationRepository(config *RepositoryConfig) repositories.ConversationRepository {
	return &PostgresConversationRepository{
		pool:   config.Pool,
		tables: config.Tables,
		logger: config.Logger,
	}
}

// Create inserts a new conversation
func (r *PostgresConversationRepository) Create(ctx context.Context, conv *models.Conversation) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (id, user_id, title, is_public, share_token, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, r.tables.Conversations)

	executor := GetExecutor(ctx, r.pool)
	_, err := executor.Exec(ctx, query,
		conv.ID,
		conv.UserID,
		conv.Title,
		conv.IsPublic,
		conv.ShareToken,
		conv.CreatedAt,
	)

	if err != nil {
		return fmt.Errorf("create conversation: %w", err)
	}

	return nil
}

// GetByID retrieves a conversation by ID without an ownership filter; the
// service layer distinguishes not-found from not-owned.
func (r *PostgresConversationRepository) GetByID(ctx context.Context, id string) (*models.Conversation, error) {
	query := fmt.Sprintf(`
		SELECT id, user_id, title, is_public, share_token, created_at
		FROM %s
		WHERE id = $1
	`, r.tables.Conversations)

	var conv models.Conversation
	executor := GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query, id).Scan(
		&conv.ID,
		&conv.UserID,
		&conv.Title,
		&conv.IsPublic,
		&conv.ShareToken,
		&conv.CreatedAt,
	)

	if err != nil {
		if IsPgNoRowsError(err) {
			return nil, fmt.Errorf("conversation %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get conversation: %w", err)
	}

	return &conv, nil
}

// ListByUser retrieves a user's conversations, newest-created first
func (r *PostgresConversationRepository) ListByUser(ctx context.Context, userID string) ([]models.Conversation, error) {
	query := fmt.Sprintf(`
		SELECT id, user_id, title, is_public, share_token, created_at
		FROM %s
		WHERE user_id = $1
		ORDER BY created_at DESC
	`, r.tables.Conversations)

	executor := GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list conversations: %w", err)
	}
	defer rows.Close()

	var convs []models.Conversation
	for rows.Next() {
		var conv models.Conversation
		err := rows.Scan(
			&conv.ID,
			&conv.UserID,
			&conv.Title,
			&conv.IsPublic,
			&conv.ShareToken,
			&conv.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan conversation: %w", err)
		}
		convs = append(convs, conv)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate conversations: %w", err)
	}

	// Return empty slice instead of nil
	if convs == nil {
		convs = []models.Conversation{}
	}

	return convs, nil
}

// ListIDsByUser returns the user's conversation IDs for cascade deletes
func (r *PostgresConversationRepository) ListIDsByUser(ctx context.Context, userID string) ([]string, error) {
	query := fmt.Sprintf(`
		SELECT id FROM %s WHERE user_id = $1
	`, r.tables.Conversations)

	executor := GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list conversation ids: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan conversation id: %w", err)
		}
		ids = append(ids, id)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate conversation ids: %w", err)
	}

	return ids, nil
}

// UpdateTitle sets a conversation's title
func (r *PostgresConversationRepository) UpdateTitle(ctx context.Context, id, title string) error {
	query := fmt.Sprintf(`
		UPDATE %s SET title = $1 WHERE id = $2
	`, r.tables.Conversations)

	executor := GetExecutor(ctx, r.pool)
	result, err := executor.Exec(ctx, query, title, id)
	if err != nil {
		return fmt.Errorf("update title: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("conversation %s: %w", id, domain.ErrNotFound)
	}

	return nil
}

// Publish flips the conversation public and sets the share token if it has
// none yet. COALESCE keeps the first minted token, making repeat calls
// idempotent; RETURNING surfaces the canonical token either way.
func (r *PostgresConversationRepository) Publish(ctx context.Context, id, token string) (string, error) {
	query := fmt.Sprintf(`
		UPDATE %s
		SET share_token = COALESCE(share_token, $1), is_public = TRUE
		WHERE id = $2
		RETURNING share_token
	`, r.tables.Conversations)

	var canonical string
	executor := GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query, token, id).Scan(&canonical)
	if err != nil {
		if IsPgNoRowsError(err) {
			return "", fmt.Errorf("conversation %s: %w", id, domain.ErrNotFound)
		}
		return "", fmt.Errorf("publish conversation: %w", err)
	}

	return canonical, nil
}

// GetByShareToken resolves a public conversation by its share token
func (r *PostgresConversationRepository) GetByShareToken(ctx context.Context, token string) (*models.Conversation, error) {
	query := fmt.Sprintf(`
		SELECT id, user_id, title, is_public, share_token, created_at
		FROM %s
		WHERE share_token = $1 AND is_public = TRUE
	`, r.tables.Conversations)

	var conv models.Conversation
	executor := GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query, token).Scan(
		&conv.ID,
		&conv.UserID,
		&conv.Title,
		&conv.IsPublic,
		&conv.ShareToken,
		&conv.CreatedAt,
	)

	if err != nil {
		if IsPgNoRowsError(err) {
			return nil, fmt.Errorf("shared conversation: %w", domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get shared conversation: %w", err)
	}

	return &conv, nil
}

// Delete removes the conversation row. Its messages must already be gone.
func (r *PostgresConversationRepository) Delete(ctx context.Context, id string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, r.tables.Conversations)

	executor := GetExecutor(ctx, r.pool)
	result, err := executor.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete conversation: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("conversation %s: %w", id, domain.ErrNotFound)
	}

	return nil
}
