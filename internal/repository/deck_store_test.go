package repository

import (
	"errors"
	"fmt"
	"testing"

	"deck-converter/internal/domain"
)

type noopLogger struct{}

func (noopLogger) Info(msg string, fields ...interface{})             {}
func (noopLogger) Error(msg string, err error, fields ...interface{}) {}
func (noopLogger) Debug(msg string, fields ...interface{})            {}
func (noopLogger) Warn(msg string, fields ...interface{})             {}

func TestMemoryDeckStore_PutGet(t *testing.T) {
	store := NewMemoryDeckStore(4, noopLogger{})

	deck := &domain.Deck{ID: "d1", OriginalName: "deck.pptx"}
	if err := store.Put(deck); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := store.Get("d1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.OriginalName != "deck.pptx" {
		t.Fatalf("unexpected deck: %+v", got)
	}
}

func TestMemoryDeckStore_GetMissing(t *testing.T) {
	store := NewMemoryDeckStore(4, noopLogger{})

	if _, err := store.Get("nope"); !errors.Is(err, domain.ErrDeckNotFound) {
		t.Fatalf("expected ErrDeckNotFound, got %v", err)
	}
}

func TestMemoryDeckStore_EvictsOldest(t *testing.T) {
	store := NewMemoryDeckStore(2, noopLogger{})

	for i := 1; i <= 3; i++ {
		id := fmt.Sprintf("d%d", i)
		if err := store.Put(&domain.Deck{ID: id}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	if _, err := store.Get("d1"); !errors.Is(err, domain.ErrDeckNotFound) {
		t.Fatalf("expected oldest deck to be evicted, got %v", err)
	}
	for _, id := range []string{"d2", "d3"} {
		if _, err := store.Get(id); err != nil {
			t.Fatalf("expected %s to survive eviction: %v", id, err)
		}
	}
}

func TestMemoryDeckStore_PutSameIDDoesNotEvict(t *testing.T) {
	store := NewMemoryDeckStore(2, noopLogger{})

	store.Put(&domain.Deck{ID: "d1"})
	store.Put(&domain.Deck{ID: "d2"})
	store.Put(&domain.Deck{ID: "d2", OriginalName: "updated.pptx"})

	if _, err := store.Get("d1"); err != nil {
		t.Fatalf("replacing a deck must not evict others: %v", err)
	}
	got, err := store.Get("d2")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.OriginalName != "updated.pptx" {
		t.Fatalf("expected replacement to win, got %+v", got)
	}
}

func TestMemoryDeckStore_Delete(t *testing.T) {
	store := NewMemoryDeckStore(4, noopLogger{})

	store.Put(&domain.Deck{ID: "d1"})
	if err := store.Delete("d1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := store.Get("d1"); !errors.Is(err, domain.ErrDeckNotFound) {
		t.Fatalf("expected deck to be gone, got %v", err)
	}
	if err := store.Delete("d1"); !errors.Is(err, domain.ErrDeckNotFound) {
		t.Fatalf("expected ErrDeckNotFound on double delete, got %v", err)
	}
}
