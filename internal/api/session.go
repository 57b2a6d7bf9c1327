package api

import (
	"sync"

	"github.com/fireminder/fireminder/internal/scheduler"
)

// sessionStore holds per-deck review-session flags. Skips and bumps shape the
// current queue only; they are never written to storage and vanish on restart.
type sessionStore struct {
	mu    sync.Mutex
	decks map[string]*deckSession
}

type deckSession struct {
	skipped map[string]bool
	bumped  map[string]bool
}

func newSessionStore() *sessionStore {
	return &sessionStore{decks: make(map[string]*deckSession)}
}

func (s *sessionStore) deck(deckID string) *deckSession {
	ds, ok := s.decks[deckID]
	if !ok {
		ds = &deckSession{skipped: make(map[string]bool), bumped: make(map[string]bool)}
		s.decks[deckID] = ds
	}
	return ds
}

func (s *sessionStore) Skip(deckID, cardID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.deck(deckID).skipped[cardID] = true
}

func (s *sessionStore) UndoSkip(deckID, cardID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.deck(deckID).skipped, cardID)
}

func (s *sessionStore) Bump(deckID, cardID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.deck(deckID).bumped[cardID] = true
}

func (s *sessionStore) UndoBump(deckID, cardID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.deck(deckID).bumped, cardID)
}

// Forget drops a card's flags entirely, for when the card is reviewed,
// retired or deleted mid-session.
func (s *sessionStore) Forget(deckID, cardID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ds := s.deck(deckID)
	delete(ds.skipped, cardID)
	delete(ds.bumped, cardID)
}

// Snapshot copies a deck's flags into the shape the scheduler consumes.
func (s *sessionStore) Snapshot(deckID string) scheduler.Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	ds := s.deck(deckID)
	session := scheduler.Session{
		Skipped: make(map[string]bool, len(ds.skipped)),
		Bumped:  make(map[string]bool, len(ds.bumped)),
	}
	for id := range ds.skipped {
		session.Skipped[id] = true
	}
	for id := range ds.bumped {
		session.Bumped[id] = true
	}
	return session
}

// Clear wipes every deck's flags, used when the simulated date changes.
func (s *sessionStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.decks = make(map[string]*deckSession)
}
