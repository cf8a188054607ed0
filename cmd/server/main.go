package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/cors"

	"parley/internal/auth"
	"parley/internal/config"
	"parley/internal/handler"
	"parley/internal/llm"
	"parley/internal/llm/gemini"
	"parley/internal/llm/static"
	"parley/internal/middleware"
	"parley/internal/repository/postgres"
	"parley/internal/service/chat"
	"parley/internal/service/identity"
)

func main() {
	// Load .env file (silently ignore if it doesn't exist - for production)
	_ = godotenv.Load()

	// Load configuration
	cfg := config.Load()

	// Setup structured logging
	logLevel := slog.LevelInfo
	if cfg.Environment == "dev" {
		logLevel = slog.LevelDebug
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	logger.Info("server starting",
		"environment", cfg.Environment,
		"port", cfg.Port,
		"table_prefix", cfg.TablePrefix,
	)

	// Session manager for cookie-based auth
	sessions, err := auth.NewSessionManager(cfg.SessionSecret, cfg.SessionTTL, cfg.Environment != "dev")
	if err != nil {
		log.Fatalf("Failed to create session manager: %v", err)
	}

	// Create pgx connection pool
	ctx := context.Background()
	pool, err := postgres.CreateConnectionPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to create connection pool: %v", err)
	}
	defer pool.Close()

	logger.Info("database connected")

	// Create table names and make sure the schema exists
	tables := postgres.NewTableNames(cfg.TablePrefix)
	if err := postgres.EnsureSchema(ctx, pool, tables); err != nil {
		log.Fatalf("Failed to ensure schema: %v", err)
	}

	// Create repositories
	repoConfig := &postgres.RepositoryConfig{
		Pool:   pool,
		Tables: tables,
		Logger: logger,
	}
	userRepo := postgres.NewUserRepository(repoConfig)
	convRepo := postgres.NewConversationRepository(repoConfig)
	msgRepo := postgres.NewMessageRepository(repoConfig)
	txManager := postgres.NewTransactionManager(pool)

	// Load prompt templates and set up the generation provider
	prompts, err := llm.LoadPrompts()
	if err != nil {
		log.Fatalf("Failed to load prompt config: %v", err)
	}

	generator, err := setupGenerator(ctx, cfg, prompts, logger)
	if err != nil {
		log.Fatalf("Failed to setup generator: %v", err)
	}

	// Create services
	identityService := identity.NewService(userRepo, convRepo, msgRepo, txManager, logger)
	conversationService := chat.NewService(convRepo, msgRepo, txManager, logger)
	turnService := chat.NewTurnOrchestrator(convRepo, msgRepo, txManager, generator, prompts, logger)
	exportService := chat.NewExporter(convRepo, msgRepo, cfg.BaseURL, logger)

	// Create handlers
	authHandler := handler.NewAuthHandler(identityService, sessions, logger)
	convHandler := handler.NewConversationHandler(conversationService, turnService, exportService, logger)
	shareHandler := handler.NewShareHandler(exportService, logger)

	logger.Info("services initialized", "provider", generator.Name())

	// Create HTTP router (Go 1.22+ enhanced patterns)
	mux := http.NewServeMux()

	// Health check
	mux.HandleFunc("GET /health", handler.HealthCheck)

	// Auth routes
	mux.HandleFunc("POST /api/auth/register", authHandler.Register)
	mux.HandleFunc("POST /api/auth/login", authHandler.Login)
	mux.HandleFunc("POST /api/auth/logout", authHandler.Logout)
	mux.HandleFunc("DELETE /api/users/me", authHandler.DeleteAccount)

	// Conversation routes
	mux.HandleFunc("POST /api/conversations", convHandler.Create)
	mux.HandleFunc("GET /api/conversations", convHandler.List)
	mux.HandleFunc("GET /api/conversations/{id}", convHandler.Get)
	mux.HandleFunc("PATCH /api/conversations/{id}", convHandler.Rename)
	mux.HandleFunc("DELETE /api/conversations/{id}", convHandler.Delete)
	mux.HandleFunc("POST /api/conversations/{id}/messages", convHandler.SendMessage)
	mux.HandleFunc("POST /api/conversations/{id}/share", convHandler.Share)
	mux.HandleFunc("GET /api/conversations/{id}/export", convHandler.Export)

	// Public share route
	mux.HandleFunc("GET /share/{token}", shareHandler.ViewShared)

	// Build middleware chain
	var h http.Handler = mux

	// Apply middleware in reverse order (they wrap each other)
	// Order: CORS → Recovery → Auth → Routes
	h = middleware.Auth(sessions, logger)(h)
	h = middleware.Recovery(logger)(h)

	// CORS - must be before auth to handle OPTIONS pre-flight requests
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   strings.Split(cfg.CORSOrigins, ","),
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Origin", "Content-Type", "Accept"},
		AllowCredentials: true,
	})
	h = corsHandler.Handler(h)

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      h,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 0, // Disabled: generation calls can outlive any fixed deadline
		IdleTimeout:  60 * time.Second,
	}

	logger.Info("server listening", "port", cfg.Port)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// setupGenerator constructs the generation provider named by configuration.
// DEFAULT_MODEL overrides the provider's embedded default.
func setupGenerator(ctx context.Context, cfg *config.Config, prompts *llm.PromptConfig, logger *slog.Logger) (llm.Generator, error) {
	model := cfg.DefaultModel
	if model == "" {
		model = prompts.DefaultModel(cfg.DefaultProvider)
	}

	switch cfg.DefaultProvider {
	case "gemini":
		gen, err := gemini.NewProvider(ctx, cfg.GeminiAPIKey, model, prompts.SystemInstruction)
		if err != nil {
			return nil, err
		}
		logger.Info("generator initialized", "provider", gen.Name(), "model", model)
		return gen, nil

	case "static":
		logger.Warn("generator initialized with static provider (development only)")
		return static.NewProvider(), nil

	default:
		return nil, fmt.Errorf("unknown provider %q", cfg.DefaultProvider)
	}
}
