package services

import (
	"context"
	"strings"

	"github.com/fireminder/fireminder/internal/clock"
	"github.com/fireminder/fireminder/internal/errors"
	"github.com/fireminder/fireminder/internal/logger"
	"github.com/fireminder/fireminder/internal/models"
	"github.com/fireminder/fireminder/internal/repository"
	"github.com/google/uuid"
)

// CreateDeckInput carries the user-supplied fields for a new deck. Invalid
// scheduling values are sanitized, not rejected.
type CreateDeckInput struct {
	Name             string `json:"name" validate:"required"`
	StartingInterval int    `json:"starting_interval"`
	IntervalUnit     string `json:"interval_unit"`
	QueueLimit       int    `json:"queue_limit"`
	MaxNewCards      int    `json:"max_new_cards"`
}

// UpdateDeckInput patches a deck; nil fields keep their current value.
type UpdateDeckInput struct {
	Name             *string `json:"name,omitempty"`
	StartingInterval *int    `json:"starting_interval,omitempty"`
	IntervalUnit     *string `json:"interval_unit,omitempty"`
	QueueLimit       *int    `json:"queue_limit,omitempty"`
	MaxNewCards      *int    `json:"max_new_cards,omitempty"`
}

// DeckService handles deck-related business logic
type DeckService interface {
	CreateDeck(ctx context.Context, input CreateDeckInput) (*models.Deck, error)
	GetDeck(ctx context.Context, id string) (*models.Deck, error)
	ListDecks(ctx context.Context) ([]models.Deck, error)
	UpdateDeck(ctx context.Context, id string, input UpdateDeckInput) (*models.Deck, error)
	DeleteDeck(ctx context.Context, id string) error
}

type deckService struct {
	decks repository.DeckRepository
	clk   clock.Clock
	real  clock.Clock
}

// NewDeckService creates a new DeckService. clk drives civil dates and may be
// simulated; real must be the wall clock so created_at_real survives time
// travel.
func NewDeckService(decks repository.DeckRepository, clk clock.Clock, real clock.Clock) DeckService {
	if real == nil {
		real = clock.System{}
	}
	return &deckService{decks: decks, clk: clk, real: real}
}

func (s *deckService) CreateDeck(ctx context.Context, input CreateDeckInput) (*models.Deck, error) {
	log := logger.FromContext(ctx)

	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, errors.NewValidationError("name", "must not be empty")
	}

	settings := models.DeckSettings{
		StartingInterval: input.StartingInterval,
		IntervalUnit:     models.ParseIntervalUnit(input.IntervalUnit),
		QueueLimit:       input.QueueLimit,
		MaxNewCards:      input.MaxNewCards,
	}.Sanitized()

	deck := models.Deck{
		ID:               uuid.NewString(),
		Name:             name,
		StartingInterval: settings.StartingInterval,
		IntervalUnit:     settings.IntervalUnit,
		QueueLimit:       settings.QueueLimit,
		MaxNewCards:      settings.MaxNewCards,
		CreatedAt:        clock.Today(s.clk),
		CreatedAtReal:    s.real.Now(),
	}

	log.Debug("creating deck: id=%s name=%q", deck.ID, deck.Name)
	if err := s.decks.Insert(ctx, deck); err != nil {
		log.Error("failed to insert deck: %v", err)
		return nil, errors.NewInternalError(err)
	}
	return &deck, nil
}

func (s *deckService) GetDeck(ctx context.Context, id string) (*models.Deck, error) {
	deck, err := s.decks.Get(ctx, id)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	if deck == nil {
		return nil, errors.NewNotFoundError("deck", id)
	}
	return deck, nil
}

func (s *deckService) ListDecks(ctx context.Context) ([]models.Deck, error) {
	decks, err := s.decks.List(ctx)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	return decks, nil
}

func (s *deckService) UpdateDeck(ctx context.Context, id string, input UpdateDeckInput) (*models.Deck, error) {
	log := logger.FromContext(ctx)

	deck, err := s.GetDeck(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, errors.NewValidationError("name", "must not be empty")
		}
		deck.Name = name
	}
	if input.StartingInterval != nil {
		deck.StartingInterval = *input.StartingInterval
	}
	if input.IntervalUnit != nil {
		deck.IntervalUnit = models.ParseIntervalUnit(*input.IntervalUnit)
	}
	if input.QueueLimit != nil {
		deck.QueueLimit = *input.QueueLimit
	}
	if input.MaxNewCards != nil {
		deck.MaxNewCards = *input.MaxNewCards
	}

	settings := deck.Settings()
	deck.StartingInterval = settings.StartingInterval
	deck.QueueLimit = settings.QueueLimit
	deck.MaxNewCards = settings.MaxNewCards

	log.Debug("updating deck: id=%s", id)
	if err := s.decks.Update(ctx, *deck); err != nil {
		log.Error("failed to update deck: %v", err)
		return nil, errors.NewInternalError(err)
	}
	return deck, nil
}

func (s *deckService) DeleteDeck(ctx context.Context, id string) error {
	log := logger.FromContext(ctx)

	if _, err := s.GetDeck(ctx, id); err != nil {
		return err
	}

	log.Debug("deleting deck and its cards: id=%s", id)
	if err := s.decks.Delete(ctx, id); err != nil {
		log.Error("failed to delete deck: %v", err)
		return errors.NewInternalError(err)
	}
	return nil
}
