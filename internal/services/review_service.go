package services

import (
	"context"

	"github.com/fireminder/fireminder/internal/clock"
	"github.com/fireminder/fireminder/internal/errors"
	"github.com/fireminder/fireminder/internal/logger"
	"github.com/fireminder/fireminder/internal/models"
	"github.com/fireminder/fireminder/internal/repository"
	"github.com/fireminder/fireminder/internal/scheduler"
)

// ReviewInput is the outcome of a single review presentation.
type ReviewInput struct {
	Choice        string `json:"choice" validate:"required,oneof=shorter default longer"`
	Reflection    string `json:"reflection"`
	EditedContent string `json:"edited_content"`
}

// ReviewService computes due queues and applies review outcomes
type ReviewService interface {
	Queue(ctx context.Context, deckID string, session scheduler.Session) ([]models.Card, error)
	Review(ctx context.Context, cardID string, input ReviewInput) (*models.Card, error)
}

type reviewService struct {
	decks repository.DeckRepository
	cards repository.CardRepository
	clk   clock.Clock
}

// NewReviewService creates a new ReviewService.
func NewReviewService(decks repository.DeckRepository, cards repository.CardRepository, clk clock.Clock) ReviewService {
	return &reviewService{decks: decks, cards: cards, clk: clk}
}

func (s *reviewService) Queue(ctx context.Context, deckID string, session scheduler.Session) ([]models.Card, error) {
	log := logger.FromContext(ctx)

	deck, err := s.decks.Get(ctx, deckID)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	if deck == nil {
		return nil, errors.NewNotFoundError("deck", deckID)
	}

	cards, err := s.cards.ListByDeck(ctx, deckID, models.CardFilter{WithHistory: true})
	if err != nil {
		log.Error("failed to list deck cards: %v", err)
		return nil, errors.NewInternalError(err)
	}

	today := clock.Today(s.clk)
	queue := scheduler.ComputeDueQueue(cards, deck.Settings(), today, session)
	log.Debug("computed queue: deck_id=%s today=%s size=%d", deckID, today, len(queue))
	return queue, nil
}

func (s *reviewService) Review(ctx context.Context, cardID string, input ReviewInput) (*models.Card, error) {
	log := logger.FromContext(ctx)

	card, err := s.cards.Get(ctx, cardID)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	if card == nil {
		return nil, errors.NewNotFoundError("card", cardID)
	}
	if card.Retired || card.Deleted {
		return nil, errors.NewBadRequestError("card is not reviewable")
	}

	deck, err := s.decks.Get(ctx, card.DeckID)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	if deck == nil {
		return nil, errors.NewNotFoundError("deck", card.DeckID)
	}

	choice := scheduler.ParseChoice(input.Choice)
	update := scheduler.ApplyReview(*card, deck.Settings(), s.clk.Now(), choice, input.Reflection, input.EditedContent)

	log.Debug("reviewing card: id=%s choice=%s interval=%d->%d due=%s",
		cardID, choice, card.CurrentInterval, update.CurrentInterval, update.NextDueDate)

	// The write must land before the in-memory view changes: a storage failure
	// leaves the card exactly as it was.
	if err := s.cards.ApplyReview(ctx, cardID, update); err != nil {
		log.Error("failed to persist review: %v", err)
		return nil, errors.NewInternalError(err)
	}

	reviewed := update.Apply(*card)
	return &reviewed, nil
}
