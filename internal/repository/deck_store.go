package repository

import (
	"sync"

	"deck-converter/internal/domain"
)

// MemoryDeckStore keeps uploaded decks in memory with a bounded
// capacity. When full, the oldest deck is evicted; the studio is a
// working surface, not an archive.
type MemoryDeckStore struct {
	mu       sync.Mutex
	decks    map[string]*domain.Deck
	order    []string
	capacity int
	logger   domain.Logger
}

// NewMemoryDeckStore creates a store holding at most capacity decks.
func NewMemoryDeckStore(capacity int, logger domain.Logger) *MemoryDeckStore {
	if capacity < 1 {
		capacity = 16
	}
	return &MemoryDeckStore{
		decks:    make(map[string]*domain.Deck),
		capacity: capacity,
		logger:   logger,
	}
}

// Put stores a deck, evicting the oldest one when at capacity.
func (s *MemoryDeckStore) Put(deck *domain.Deck) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.decks[deck.ID]; !exists && len(s.decks) >= s.capacity {
		oldest := s.order[0]
		s.order = s.order[1:]
		delete(s.decks, oldest)
		s.logger.Debug("Evicted oldest deck", "id", oldest)
	}

	if _, exists := s.decks[deck.ID]; !exists {
		s.order = append(s.order, deck.ID)
	}
	s.decks[deck.ID] = deck
	return nil
}

// Get returns a stored deck by ID.
func (s *MemoryDeckStore) Get(id string) (*domain.Deck, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	deck, ok := s.decks[id]
	if !ok {
		return nil, domain.ErrDeckNotFound
	}
	return deck, nil
}

// Delete removes a deck.
func (s *MemoryDeckStore) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.decks[id]; !ok {
		return domain.ErrDeckNotFound
	}
	delete(s.decks, id)
	for i, stored := range s.order {
		if stored == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}
