package chat

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"parley/internal/config"
	"parley/internal/domain"
	"parley/internal/domain/models"
	"parley/internal/domain/repositories"
	"parley/internal/domain/services"
	"parley/internal/llm"
)

// TurnOrchestrator implements the TurnService interface. The generator is
// injected so tests can substitute a scripted fake.
type TurnOrchestrator struct {
	convs     repositories.ConversationRepository
	messages  repositories.MessageRepository
	txManager repositories.TransactionManager
	generator llm.Generator
	prompts   *llm.PromptConfig
	logger    *slog.Logger
}

// NewTurnOrchestrator creates a new turn orchestrator
func NewTurnOrchestrator(
	convs repositories.ConversationRepository,
	messages repositories.MessageRepository,
	txManager repositories.TransactionManager,
	generator llm.Generator,
	prompts *llm.PromptConfig,
	logger *slog.Logger,
) services.TurnService {
	return &TurnOrchestrator{
		convs:     convs,
		messages:  messages,
		txManager: txManager,
		generator: generator,
		prompts:   prompts,
		logger:    logger,
	}
}

// SubmitTurn runs one chat turn. Everything between the empty check and the
// return happens inside a single transaction: the user message, the model
// reply, and a possible derived title all commit together, and a failed
// generation call leaves no trace in the log.
func (o *TurnOrchestrator) SubmitTurn(ctx context.Context, conversationID, requesterID, text string) (string, error) {
	if text == "" {
		return "", fmt.Errorf("submit turn: %w", domain.ErrEmptyMessage)
	}

	conv, err := ownedConversation(ctx, o.convs, conversationID, requesterID)
	if err != nil {
		return "", err
	}

	var reply string
	err = o.txManager.ExecTx(ctx, func(ctx context.Context) error {
		history, err := o.messages.ListByConversation(ctx, conv.ID)
		if err != nil {
			return err
		}

		userMsg := &models.Message{
			ID:             uuid.NewString(),
			ConversationID: conv.ID,
			Sender:         models.SenderUser,
			Content:        text,
			CreatedAt:      time.Now(),
		}
		if err := o.messages.Append(ctx, userMsg); err != nil {
			return err
		}

		// Full role-tagged history: every prior message in log order,
		// then the new user turn.
		turns := make([]llm.Turn, 0, len(history)+1)
		for _, m := range history {
			turns = append(turns, llm.Turn{Role: roleOf(m.Sender), Text: m.Content})
		}
		turns = append(turns, llm.Turn{Role: llm.RoleUser, Text: text})

		out, err := o.generator.Chat(ctx, turns)
		if err != nil {
			o.logger.Error("generation failed",
				"conversation_id", conv.ID,
				"provider", o.generator.Name(),
				"error", err,
			)
			return fmt.Errorf("%w: %v", domain.ErrGenerationFailed, err)
		}
		reply = out

		modelMsg := &models.Message{
			ID:             uuid.NewString(),
			ConversationID: conv.ID,
			Sender:         models.SenderModel,
			Content:        reply,
			CreatedAt:      time.Now(),
		}
		if err := o.messages.Append(ctx, modelMsg); err != nil {
			return err
		}

		// First real turn of an untitled conversation: derive a title
		// from the opening question. Best-effort — a failed title call
		// must not cost the user a successful chat turn.
		if len(history) <= 1 && conv.Title == models.DefaultConversationTitle {
			o.deriveTitle(ctx, conv.ID, text)
		}

		return nil
	})
	if err != nil {
		return "", err
	}

	return reply, nil
}

// deriveTitle asks the generator for a short title and stores it. Failures
// of the generation call are logged and swallowed; the conversation keeps
// its sentinel title and can be retitled on a later first turn or renamed
// explicitly.
func (o *TurnOrchestrator) deriveTitle(ctx context.Context, conversationID, question string) {
	raw, err := o.generator.Prompt(ctx, o.prompts.TitlePrompt(question))
	if err != nil {
		o.logger.Warn("title derivation failed",
			"conversation_id", conversationID,
			"error", err,
		)
		return
	}

	title := sanitizeTitle(raw)
	if title == "" {
		return
	}

	if err := o.convs.UpdateTitle(ctx, conversationID, title); err != nil {
		o.logger.Warn("title update failed",
			"conversation_id", conversationID,
			"error", err,
		)
		return
	}

	o.logger.Info("title derived", "conversation_id", conversationID, "title", title)
}

// sanitizeTitle strips quotes and whitespace from model output and clamps
// the result to the title length limit.
func sanitizeTitle(raw string) string {
	title := strings.TrimSpace(strings.ReplaceAll(raw, `"`, ""))
	if runes := []rune(title); len(runes) > config.MaxConversationTitleLength {
		title = strings.TrimSpace(string(runes[:config.MaxConversationTitleLength]))
	}
	return title
}

func roleOf(sender models.Sender) llm.Role {
	if sender == models.SenderModel {
		return llm.RoleModel
	}
	return llm.RoleUser
}
