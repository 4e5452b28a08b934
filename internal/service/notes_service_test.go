package service

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"deck-converter/internal/domain"
)

func TestNotesService_NotConfigured(t *testing.T) {
	svc := NewNotesService("", "", "", noopLogger{})
	if svc != nil {
		t.Fatal("expected nil service without an API key")
	}

	_, err := svc.GenerateNotes(context.Background(), []string{"hello"})
	if !errors.Is(err, domain.ErrNotesNotConfigured) {
		t.Fatalf("expected ErrNotesNotConfigured, got %v", err)
	}
	if svc.Model() != "" {
		t.Fatalf("expected empty model on nil service, got %q", svc.Model())
	}
}

func TestNotesService_GenerateNotes(t *testing.T) {
	var requests int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("unexpected authorization header: %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"choices": []map[string]interface{}{
				{"message": map[string]string{"role": "assistant", "content": "  Speak slowly.  "}},
			},
		})
	}))
	defer server.Close()

	svc := NewNotesService("test-key", server.URL, "test-model", noopLogger{})
	if svc.Model() != "test-model" {
		t.Fatalf("unexpected model: %q", svc.Model())
	}

	notes, err := svc.GenerateNotes(context.Background(), []string{"Intro slide", "", "Closing"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(notes) != 3 {
		t.Fatalf("expected 3 notes, got %d", len(notes))
	}
	if notes[0].Notes != "Speak slowly." {
		t.Errorf("expected trimmed note, got %q", notes[0].Notes)
	}
	// Empty slides are skipped without an API call.
	if notes[1].Notes != "" {
		t.Errorf("expected empty note for empty slide, got %q", notes[1].Notes)
	}
	if requests != 2 {
		t.Errorf("expected 2 completion requests, got %d", requests)
	}
}

func TestNotesService_FailureDegradesToEmptyNote(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"message":"rate limited"}}`, http.StatusTooManyRequests)
	}))
	defer server.Close()

	svc := NewNotesService("test-key", server.URL, "test-model", noopLogger{})
	notes, err := svc.GenerateNotes(context.Background(), []string{"Intro"})
	if err != nil {
		t.Fatalf("per-slide failures must not fail the deck: %v", err)
	}
	if notes[0].Notes != "" {
		t.Fatalf("expected empty note after failure, got %q", notes[0].Notes)
	}
}

func TestNotesService_CanceledContext(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "slow", http.StatusInternalServerError)
	}))
	defer server.Close()

	svc := NewNotesService("test-key", server.URL, "test-model", noopLogger{})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.GenerateNotes(ctx, []string{"Intro"})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
