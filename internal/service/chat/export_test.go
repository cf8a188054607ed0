package chat

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"parley/internal/domain"
	"parley/internal/domain/models"
	"parley/internal/domain/services"
)

func newExportFixture(t *testing.T) (*fakeConvRepo, *fakeMessageRepo, services.ExportService) {
	t.Helper()

	convs := newFakeConvRepo()
	msgs := newFakeMessageRepo()

	return convs, msgs, NewExporter(convs, msgs, "https://parley.example/", testLogger())
}

func seedExportData(convs *fakeConvRepo, msgs *fakeMessageRepo) {
	created := time.Date(2026, 8, 20, 9, 30, 0, 0, time.UTC)
	convs.convs["c1"] = models.Conversation{ID: "c1", UserID: "u1", Title: "Capital of France", CreatedAt: created}
	msgs.byConv["c1"] = []models.Message{
		{ConversationID: "c1", Seq: 1, Sender: models.SenderUser, Content: "What is the capital of France?", CreatedAt: created.Add(time.Minute)},
		{ConversationID: "c1", Seq: 2, Sender: models.SenderModel, Content: "The capital of France is Paris.", CreatedAt: created.Add(2 * time.Minute)},
	}
}

func TestExportText(t *testing.T) {
	convs, msgs, exp := newExportFixture(t)
	seedExportData(convs, msgs)

	result, err := exp.Export(context.Background(), "c1", "u1", services.ExportFormatText)
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}
	if result.Filename != "conversation_c1.txt" {
		t.Errorf("filename = %q, want conversation_c1.txt", result.Filename)
	}
	if result.ContentType != "text/plain" {
		t.Errorf("content type = %q, want text/plain", result.ContentType)
	}

	want := "Title: Capital of France\n\n" +
		"[User - 2026-08-20 09:31]\nWhat is the capital of France?\n\n" +
		"[Model - 2026-08-20 09:32]\nThe capital of France is Paris.\n\n"
	if got := string(result.Data); got != want {
		t.Errorf("text export:\n%q\nwant:\n%q", got, want)
	}
}

func TestExportJSON(t *testing.T) {
	convs, msgs, exp := newExportFixture(t)
	seedExportData(convs, msgs)

	result, err := exp.Export(context.Background(), "c1", "u1", services.ExportFormatJSON)
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}
	if result.Filename != "conversation_c1.json" {
		t.Errorf("filename = %q, want conversation_c1.json", result.Filename)
	}
	if result.ContentType != "application/json" {
		t.Errorf("content type = %q, want application/json", result.ContentType)
	}

	var got struct {
		Title     string `json:"title"`
		CreatedAt string `json:"created_at"`
		Messages  []struct {
			Sender    string `json:"sender"`
			Content   string `json:"content"`
			Timestamp string `json:"timestamp"`
		} `json:"messages"`
	}
	if err := json.Unmarshal(result.Data, &got); err != nil {
		t.Fatalf("export is not valid JSON: %v", err)
	}
	if got.Title != "Capital of France" {
		t.Errorf("title = %q", got.Title)
	}
	if got.CreatedAt != "2026-08-20T09:30:00Z" {
		t.Errorf("created_at = %q, want RFC3339", got.CreatedAt)
	}
	if len(got.Messages) != 2 {
		t.Fatalf("got %d messages, want 2", len(got.Messages))
	}
	if got.Messages[0].Sender != "user" || got.Messages[1].Sender != "model" {
		t.Errorf("senders = %s,%s, want user,model in log order", got.Messages[0].Sender, got.Messages[1].Sender)
	}
	if got.Messages[0].Timestamp != "2026-08-20T09:31:00Z" {
		t.Errorf("timestamp = %q, want RFC3339", got.Messages[0].Timestamp)
	}
}

func TestExportUnknownFormatFallsBackToText(t *testing.T) {
	convs, msgs, exp := newExportFixture(t)
	seedExportData(convs, msgs)

	result, err := exp.Export(context.Background(), "c1", "u1", "csv")
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}
	if result.ContentType != "text/plain" || !strings.HasSuffix(result.Filename, ".txt") {
		t.Errorf("unknown format produced %s %s, want text fallback", result.ContentType, result.Filename)
	}
}

func TestExportOwnership(t *testing.T) {
	convs, msgs, exp := newExportFixture(t)
	seedExportData(convs, msgs)

	if _, err := exp.Export(context.Background(), "c1", "u2", services.ExportFormatText); !errors.Is(err, domain.ErrForbidden) {
		t.Errorf("err = %v, want ErrForbidden", err)
	}
	if _, err := exp.Export(context.Background(), "missing", "u1", services.ExportFormatText); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestShareMintsStableURL(t *testing.T) {
	convs, msgs, exp := newExportFixture(t)
	seedExportData(convs, msgs)

	first, err := exp.Share(context.Background(), "c1", "u1")
	if err != nil {
		t.Fatalf("Share failed: %v", err)
	}
	if !strings.HasPrefix(first, "https://parley.example/share/") {
		t.Errorf("share URL = %q, want baseURL prefix without double slash", first)
	}

	second, err := exp.Share(context.Background(), "c1", "u1")
	if err != nil {
		t.Fatalf("second Share failed: %v", err)
	}
	if second != first {
		t.Errorf("second share URL %q differs from first %q, want idempotent token", second, first)
	}

	conv, _ := convs.GetByID(context.Background(), "c1")
	if !conv.IsPublic {
		t.Error("conversation not public after Share")
	}
}

func TestShareOwnership(t *testing.T) {
	convs, msgs, exp := newExportFixture(t)
	seedExportData(convs, msgs)

	if _, err := exp.Share(context.Background(), "c1", "u2"); !errors.Is(err, domain.ErrForbidden) {
		t.Errorf("err = %v, want ErrForbidden", err)
	}
	conv, _ := convs.GetByID(context.Background(), "c1")
	if conv.IsPublic {
		t.Error("non-owner made the conversation public")
	}
}

func TestResolvePublic(t *testing.T) {
	convs, msgs, exp := newExportFixture(t)
	seedExportData(convs, msgs)

	url, err := exp.Share(context.Background(), "c1", "u1")
	if err != nil {
		t.Fatalf("Share failed: %v", err)
	}
	token := url[strings.LastIndex(url, "/")+1:]

	detail, err := exp.ResolvePublic(context.Background(), token)
	if err != nil {
		t.Fatalf("ResolvePublic failed: %v", err)
	}
	if detail.Conversation.ID != "c1" {
		t.Errorf("resolved conversation = %q, want c1", detail.Conversation.ID)
	}
	if len(detail.Messages) != 2 {
		t.Errorf("got %d messages, want 2", len(detail.Messages))
	}

	if _, err := exp.ResolvePublic(context.Background(), "no-such-token"); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound for unknown token", err)
	}
}

func TestResolvePublicIgnoresPrivateConversations(t *testing.T) {
	convs, msgs, exp := newExportFixture(t)
	seedExportData(convs, msgs)

	// Token present but conversation never published.
	token := "dead-token"
	conv := convs.convs["c1"]
	conv.ShareToken = &token
	conv.IsPublic = false
	convs.convs["c1"] = conv

	if _, err := exp.ResolvePublic(context.Background(), token); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound for private conversation", err)
	}
}
