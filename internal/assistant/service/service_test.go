package service

import (
	"encoding/json"
	"strings"
	"testing"

	"nexus_backend/internal/assistant/transport"
)

func TestBuildUserMessageIncludesContextAndData(t *testing.T) {
	req := transport.ChatRequest{
		Type:  "invoices",
		Query: "Quelles factures sont en retard ?",
		Data:  json.RawMessage(`[{"number":"INV-2026-0001","status":"overdue"}]`),
	}

	msg := buildUserMessage(req)
	if msg.Role != "user" {
		t.Fatalf("expected user role, got %q", msg.Role)
	}
	if len(msg.Parts) != 1 {
		t.Fatalf("expected a single part, got %d", len(msg.Parts))
	}

	text := msg.Parts[0].Text
	if !strings.Contains(text, "factures") {
		t.Fatalf("expected invoice context prompt in message, got %q", text)
	}
	if !strings.Contains(text, "INV-2026-0001") {
		t.Fatalf("expected dashboard data in message, got %q", text)
	}
	if !strings.Contains(text, "Question: Quelles factures sont en retard ?") {
		t.Fatalf("expected query in message, got %q", text)
	}
}

func TestBuildUserMessageSkipsUnknownContext(t *testing.T) {
	req := transport.ChatRequest{
		Type:  "general",
		Query: "Bonjour",
	}

	text := buildUserMessage(req).Parts[0].Text
	if strings.Contains(text, "Données du tableau de bord") {
		t.Fatalf("expected no data section without data, got %q", text)
	}
	if !strings.HasSuffix(text, "Question: Bonjour") {
		t.Fatalf("expected message to end with the question, got %q", text)
	}
}
