package services

import (
	"context"
	"strings"

	"github.com/fireminder/fireminder/internal/clock"
	"github.com/fireminder/fireminder/internal/dates"
	"github.com/fireminder/fireminder/internal/errors"
	"github.com/fireminder/fireminder/internal/logger"
	"github.com/fireminder/fireminder/internal/models"
	"github.com/fireminder/fireminder/internal/repository"
	"github.com/google/uuid"
)

// CreateCardInput carries the user-supplied fields for a new card.
type CreateCardInput struct {
	Content          string `json:"content" validate:"required"`
	Reminder         string `json:"reminder"`
	StartingInterval int    `json:"starting_interval"`       // 0 means deck default
	ScheduleDate     string `json:"schedule_date,omitempty"` // explicit first due date
}

// UpdateCardInput patches a card outside review; nil fields keep their value.
type UpdateCardInput struct {
	Content *string `json:"content,omitempty"`
	DeckID  *string `json:"deck_id,omitempty"`
}

// CardService handles card-related business logic
type CardService interface {
	CreateCard(ctx context.Context, deckID string, input CreateCardInput) (*models.Card, error)
	GetCard(ctx context.Context, id string) (*models.Card, error)
	ListCards(ctx context.Context, deckID string, includeRetired, includeDeleted bool) ([]models.Card, error)
	UpdateCard(ctx context.Context, id string, input UpdateCardInput) (*models.Card, error)
	RetireCard(ctx context.Context, id string) error
	DeleteCard(ctx context.Context, id string) error
}

type cardService struct {
	decks repository.DeckRepository
	cards repository.CardRepository
	clk   clock.Clock
	real  clock.Clock
}

// NewCardService creates a new CardService.
func NewCardService(decks repository.DeckRepository, cards repository.CardRepository, clk clock.Clock, real clock.Clock) CardService {
	if real == nil {
		real = clock.System{}
	}
	return &cardService{decks: decks, cards: cards, clk: clk, real: real}
}

func (s *cardService) CreateCard(ctx context.Context, deckID string, input CreateCardInput) (*models.Card, error) {
	log := logger.FromContext(ctx)

	content := strings.TrimSpace(input.Content)
	if content == "" {
		return nil, errors.NewValidationError("content", "must not be empty")
	}

	deck, err := s.decks.Get(ctx, deckID)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	if deck == nil {
		return nil, errors.NewNotFoundError("deck", deckID)
	}
	settings := deck.Settings()

	startingInterval := settings.StartingInterval
	if input.StartingInterval > 0 {
		startingInterval = input.StartingInterval
	}

	now := s.clk.Now()
	today := dates.Format(now)

	// First due date: explicit schedule wins, otherwise one starting interval
	// from today.
	nextDue := dates.Format(dates.AddInterval(now, startingInterval, settings.IntervalUnit))
	if input.ScheduleDate != "" {
		if _, err := dates.Parse(input.ScheduleDate); err != nil {
			return nil, errors.NewValidationError("schedule_date", "must be a YYYY-MM-DD date")
		}
		nextDue = input.ScheduleDate
	}

	card := models.Card{
		ID:              uuid.NewString(),
		DeckID:          deckID,
		Content:         content,
		Reminder:        strings.TrimSpace(input.Reminder),
		CurrentInterval: startingInterval,
		CreatedAt:       today,
		CreatedAtReal:   s.real.Now(),
		NextDueDate:     nextDue,
	}

	log.Debug("creating card: id=%s deck_id=%s due=%s", card.ID, deckID, nextDue)
	if err := s.cards.Insert(ctx, card); err != nil {
		log.Error("failed to insert card: %v", err)
		return nil, errors.NewInternalError(err)
	}
	return &card, nil
}

func (s *cardService) GetCard(ctx context.Context, id string) (*models.Card, error) {
	card, err := s.cards.Get(ctx, id)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	if card == nil {
		return nil, errors.NewNotFoundError("card", id)
	}
	return card, nil
}

func (s *cardService) ListCards(ctx context.Context, deckID string, includeRetired, includeDeleted bool) ([]models.Card, error) {
	if _, err := s.deck(ctx, deckID); err != nil {
		return nil, err
	}
	cards, err := s.cards.ListByDeck(ctx, deckID, models.CardFilter{
		IncludeRetired: includeRetired,
		IncludeDeleted: includeDeleted,
		WithHistory:    true,
	})
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	return cards, nil
}

func (s *cardService) UpdateCard(ctx context.Context, id string, input UpdateCardInput) (*models.Card, error) {
	log := logger.FromContext(ctx)

	card, err := s.GetCard(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.DeckID != nil && *input.DeckID != card.DeckID {
		if _, err := s.deck(ctx, *input.DeckID); err != nil {
			return nil, err
		}
		log.Debug("moving card: id=%s deck_id=%s", id, *input.DeckID)
		if err := s.cards.MoveToDeck(ctx, id, *input.DeckID); err != nil {
			log.Error("failed to move card: %v", err)
			return nil, errors.NewInternalError(err)
		}
		card.DeckID = *input.DeckID
	}

	if input.Content != nil {
		content := strings.TrimSpace(*input.Content)
		if content == "" {
			return nil, errors.NewValidationError("content", "must not be empty")
		}
		if content != card.Content {
			if err := s.cards.UpdateContent(ctx, id, content); err != nil {
				log.Error("failed to update card content: %v", err)
				return nil, errors.NewInternalError(err)
			}
			card.Content = content
		}
	}

	return card, nil
}

func (s *cardService) RetireCard(ctx context.Context, id string) error {
	if _, err := s.GetCard(ctx, id); err != nil {
		return err
	}
	if err := s.cards.SetRetired(ctx, id); err != nil {
		return errors.NewInternalError(err)
	}
	return nil
}

func (s *cardService) DeleteCard(ctx context.Context, id string) error {
	if _, err := s.GetCard(ctx, id); err != nil {
		return err
	}
	if err := s.cards.SetDeleted(ctx, id); err != nil {
		return errors.NewInternalError(err)
	}
	return nil
}

func (s *cardService) deck(ctx context.Context, id string) (*models.Deck, error) {
	deck, err := s.decks.Get(ctx, id)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	if deck == nil {
		return nil, errors.NewNotFoundError("deck", id)
	}
	return deck, nil
}
