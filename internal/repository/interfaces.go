package repository

import (
	"context"
	"time"

	"github.com/fireminder/fireminder/internal/models"
)

// DeckRepository handles deck data access
type DeckRepository interface {
	Insert(ctx context.Context, deck models.Deck) error
	Get(ctx context.Context, id string) (*models.Deck, error)
	List(ctx context.Context) ([]models.Deck, error)
	Update(ctx context.Context, deck models.Deck) error
	// Delete removes the deck; its cards cascade.
	Delete(ctx context.Context, id string) error
	// DeleteCreatedAfter discards decks created after the given real moment
	// (used when ending a simulated-time session).
	DeleteCreatedAfter(ctx context.Context, t time.Time) (int64, error)
}

// CardRepository handles card data access
type CardRepository interface {
	Insert(ctx context.Context, card models.Card) error
	// Get returns the card with its history, or nil when absent.
	Get(ctx context.Context, id string) (*models.Card, error)
	ListByDeck(ctx context.Context, deckID string, filter models.CardFilter) ([]models.Card, error)
	// ApplyReview persists a review patch and appends its history entry in
	// one transaction; either both land or neither does.
	ApplyReview(ctx context.Context, id string, update models.CardUpdate) error
	UpdateContent(ctx context.Context, id, content string) error
	MoveToDeck(ctx context.Context, id, deckID string) error
	SetRetired(ctx context.Context, id string) error
	SetDeleted(ctx context.Context, id string) error
	DeleteCreatedAfter(ctx context.Context, t time.Time) (int64, error)
}
