// Seed sets up the schema and optionally creates a demo account with one
// conversation, for local development.
package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"

	"parley/internal/config"
	"parley/internal/domain/models"
	"parley/internal/repository/postgres"
)

func main() {
	schemaOnly := flag.Bool("schema-only", false, "Only set up schema, don't seed demo data")
	flag.Parse()

	// Load .env file
	_ = godotenv.Load()

	cfg := config.Load()

	// SAFETY: never seed demo data into production
	if cfg.Environment == "prod" && !*schemaOnly {
		log.Fatalf("Refusing to seed demo data in production environment")
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	ctx := context.Background()
	pool, err := postgres.CreateConnectionPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	tables := postgres.NewTableNames(cfg.TablePrefix)
	if err := postgres.EnsureSchema(ctx, pool, tables); err != nil {
		log.Fatalf("Failed to ensure schema: %v", err)
	}
	logger.Info("schema ready", "prefix", cfg.TablePrefix)

	if *schemaOnly {
		return
	}

	repoConfig := &postgres.RepositoryConfig{
		Pool:   pool,
		Tables: tables,
		Logger: logger,
	}
	users := postgres.NewUserRepository(repoConfig)
	convs := postgres.NewConversationRepository(repoConfig)
	msgs := postgres.NewMessageRepository(repoConfig)

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("Failed to hash demo password: %v", err)
	}

	user := &models.User{
		ID:           uuid.NewString(),
		Username:     "demo",
		PasswordHash: string(hash),
		CreatedAt:    time.Now(),
	}
	if err := users.Create(ctx, user); err != nil {
		log.Fatalf("Failed to create demo user (already seeded?): %v", err)
	}

	conv := &models.Conversation{
		ID:        uuid.NewString(),
		UserID:    user.ID,
		Title:     "Capital of France",
		CreatedAt: time.Now(),
	}
	if err := convs.Create(ctx, conv); err != nil {
		log.Fatalf("Failed to create demo conversation: %v", err)
	}

	demo := []struct {
		sender  models.Sender
		content string
	}{
		{models.SenderUser, "What is the capital of France?"},
		{models.SenderModel, "The capital of France is Paris."},
	}
	for _, d := range demo {
		msg := &models.Message{
			ID:             uuid.NewString(),
			ConversationID: conv.ID,
			Sender:         d.sender,
			Content:        d.content,
			CreatedAt:      time.Now(),
		}
		if err := msgs.Append(ctx, msg); err != nil {
			log.Fatalf("Failed to append demo message: %v", err)
		}
	}

	logger.Info("demo data seeded", "username", user.Username, "conversation_id", conv.ID)
}
