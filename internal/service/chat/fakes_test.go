package chat

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sort"

	"parley/internal/domain"
	"parley/internal/domain/models"
	"parley/internal/domain/repositories"
	"parley/internal/llm"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fakeConvRepo is an in-memory ConversationRepository.
type fakeConvRepo struct {
	convs map[string]models.Conversation
}

func newFakeConvRepo() *fakeConvRepo {
	return &fakeConvRepo{convs: make(map[string]models.Conversation)}
}

func (r *fakeConvRepo) Create(ctx context.Context, conv *models.Conversation) error {
	r.convs[conv.ID] = *conv
	return nil
}

func (r *fakeConvRepo) GetByID(ctx context.Context, id string) (*models.Conversation, error) {
	conv, ok := r.convs[id]
	if !ok {
		return nil, fmt.Errorf("conversation %s: %w", id, domain.ErrNotFound)
	}
	return &conv, nil
}

func (r *fakeConvRepo) ListByUser(ctx context.Context, userID string) ([]models.Conversation, error) {
	out := make([]models.Conversation, 0)
	for _, c := range r.convs {
		if c.UserID == userID {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *fakeConvRepo) ListIDsByUser(ctx context.Context, userID string) ([]string, error) {
	convs, _ := r.ListByUser(ctx, userID)
	ids := make([]string, 0, len(convs))
	for _, c := range convs {
		ids = append(ids, c.ID)
	}
	return ids, nil
}

func (r *fakeConvRepo) UpdateTitle(ctx context.Context, id, title string) error {
	conv, ok := r.convs[id]
	if !ok {
		return fmt.Errorf("conversation %s: %w", id, domain.ErrNotFound)
	}
	conv.Title = title
	r.convs[id] = conv
	return nil
}

func (r *fakeConvRepo) Publish(ctx context.Context, id, token string) (string, error) {
	conv, ok := r.convs[id]
	if !ok {
		return "", fmt.Errorf("conversation %s: %w", id, domain.ErrNotFound)
	}
	if conv.ShareToken == nil {
		conv.ShareToken = &token
	}
	conv.IsPublic = true
	r.convs[id] = conv
	return *conv.ShareToken, nil
}

func (r *fakeConvRepo) GetByShareToken(ctx context.Context, token string) (*models.Conversation, error) {
	for _, c := range r.convs {
		if c.IsPublic && c.ShareToken != nil && *c.ShareToken == token {
			conv := c
			return &conv, nil
		}
	}
	return nil, fmt.Errorf("share token: %w", domain.ErrNotFound)
}

func (r *fakeConvRepo) Delete(ctx context.Context, id string) error {
	if _, ok := r.convs[id]; !ok {
		return fmt.Errorf("conversation %s: %w", id, domain.ErrNotFound)
	}
	delete(r.convs, id)
	return nil
}

func (r *fakeConvRepo) snapshot() map[string]models.Conversation {
	snap := make(map[string]models.Conversation, len(r.convs))
	for k, v := range r.convs {
		snap[k] = v
	}
	return snap
}

// fakeMessageRepo is an in-memory MessageRepository that assigns sequence
// numbers the way the real one does. Setting failAppendAt makes the Nth
// Append call return appendErr, standing in for a unique violation on
// (conversation_id, seq) when two turns race.
type fakeMessageRepo struct {
	byConv map[string][]models.Message

	appendErr    error
	failAppendAt int
	appendCalls  int
}

func newFakeMessageRepo() *fakeMessageRepo {
	return &fakeMessageRepo{byConv: make(map[string][]models.Message)}
}

func (r *fakeMessageRepo) Append(ctx context.Context, msg *models.Message) error {
	r.appendCalls++
	if r.failAppendAt != 0 && r.appendCalls == r.failAppendAt {
		return r.appendErr
	}

	msg.Seq = len(r.byConv[msg.ConversationID]) + 1
	r.byConv[msg.ConversationID] = append(r.byConv[msg.ConversationID], *msg)
	return nil
}

func (r *fakeMessageRepo) ListByConversation(ctx context.Context, conversationID string) ([]models.Message, error) {
	msgs := r.byConv[conversationID]
	out := make([]models.Message, len(msgs))
	copy(out, msgs)
	return out, nil
}

func (r *fakeMessageRepo) DeleteByConversation(ctx context.Context, conversationID string) error {
	delete(r.byConv, conversationID)
	return nil
}

func (r *fakeMessageRepo) snapshot() map[string][]models.Message {
	snap := make(map[string][]models.Message, len(r.byConv))
	for k, v := range r.byConv {
		msgs := make([]models.Message, len(v))
		copy(msgs, v)
		snap[k] = msgs
	}
	return snap
}

// fakeTxManager snapshots both repos before running fn and restores them if
// fn fails, so tests observe real rollback semantics.
type fakeTxManager struct {
	convs *fakeConvRepo
	msgs  *fakeMessageRepo
}

func (m *fakeTxManager) ExecTx(ctx context.Context, fn repositories.TxFn) error {
	convSnap := m.convs.snapshot()
	msgSnap := m.msgs.snapshot()

	if err := fn(ctx); err != nil {
		m.convs.convs = convSnap
		m.msgs.byConv = msgSnap
		return err
	}
	return nil
}

// fakeGenerator returns scripted replies and records every call.
type fakeGenerator struct {
	chatReply   string
	chatErr     error
	promptReply string
	promptErr   error

	chatCalls   [][]llm.Turn
	promptCalls []string
}

func (g *fakeGenerator) Chat(ctx context.Context, turns []llm.Turn) (string, error) {
	recorded := make([]llm.Turn, len(turns))
	copy(recorded, turns)
	g.chatCalls = append(g.chatCalls, recorded)

	if g.chatErr != nil {
		return "", g.chatErr
	}
	return g.chatReply, nil
}

func (g *fakeGenerator) Prompt(ctx context.Context, prompt string) (string, error) {
	g.promptCalls = append(g.promptCalls, prompt)

	if g.promptErr != nil {
		return "", g.promptErr
	}
	return g.promptReply, nil
}

func (g *fakeGenerator) Name() string { return "fake" }

func testPrompts() *llm.PromptConfig {
	return &llm.PromptConfig{
		SystemInstruction: "You are a helpful AI assistant.",
		TitleInstruction:  "Generate a short title for this question: '%s'",
	}
}
