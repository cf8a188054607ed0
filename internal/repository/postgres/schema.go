package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// EnsureSchema creates the tables if they do not exist.
//
// Foreign keys are plain references without ON DELETE CASCADE: cascading
// deletion is an explicit, transactional procedure in the service layer so
// the ownership graph is visible in code rather than hidden in constraints.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool, tables *TableNames) error {
	schema := fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %[1]s (
			id UUID PRIMARY KEY,
			username TEXT UNIQUE NOT NULL,
			password_hash TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL
		);

		CREATE TABLE IF NOT EXISTS %[2]s (
			id UUID PRIMARY KEY,
			user_id UUID NOT NULL REFERENCES %[1]s(id),
			title TEXT NOT NULL DEFAULT 'New Chat',
			is_public BOOLEAN NOT NULL DEFAULT FALSE,
			share_token UUID UNIQUE,
			created_at TIMESTAMPTZ NOT NULL
		);

		CREATE INDEX IF NOT EXISTS %[2]s_user_created_idx
			ON %[2]s (user_id, created_at DESC);

		CREATE TABLE IF NOT EXISTS %[3]s (
			id UUID PRIMARY KEY,
			conversation_id UUID NOT NULL REFERENCES %[2]s(id),
			seq INT NOT NULL,
			sender TEXT NOT NULL CHECK (sender IN ('user', 'model')),
			content TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL,
			UNIQUE (conversation_id, seq)
		);
	`, tables.Users, tables.Conversations, tables.Messages)

	if _, err := pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}

	return nil
}
