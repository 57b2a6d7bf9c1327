package services

import (
	"context"

	"github.com/fireminder/fireminder/internal/clock"
	"github.com/fireminder/fireminder/internal/errors"
	"github.com/fireminder/fireminder/internal/logger"
	"github.com/fireminder/fireminder/internal/repository"
)

// TimeStatus describes the app's current notion of today.
type TimeStatus struct {
	Today     string `json:"today"`
	Simulated bool   `json:"simulated"`
}

// TimeService controls the simulated clock
type TimeService interface {
	Status(ctx context.Context) TimeStatus
	SetDate(ctx context.Context, date string) (TimeStatus, error)
	ClearDate(ctx context.Context) TimeStatus
	// Reset returns to real time and discards every deck and card created
	// while the simulated date was in effect.
	Reset(ctx context.Context) (TimeStatus, error)
}

type timeService struct {
	clk   *clock.Simulated
	decks repository.DeckRepository
	cards repository.CardRepository
}

// NewTimeService creates a new TimeService.
func NewTimeService(clk *clock.Simulated, decks repository.DeckRepository, cards repository.CardRepository) TimeService {
	return &timeService{clk: clk, decks: decks, cards: cards}
}

func (s *timeService) Status(ctx context.Context) TimeStatus {
	return TimeStatus{Today: clock.Today(s.clk), Simulated: s.clk.Active()}
}

func (s *timeService) SetDate(ctx context.Context, date string) (TimeStatus, error) {
	log := logger.FromContext(ctx)
	if err := s.clk.Set(date); err != nil {
		return TimeStatus{}, errors.NewValidationError("date", "must be a YYYY-MM-DD date")
	}
	log.Info("simulated date set: %s", date)
	return s.Status(ctx), nil
}

func (s *timeService) ClearDate(ctx context.Context) TimeStatus {
	logger.FromContext(ctx).Info("simulated date cleared")
	s.clk.Clear()
	return s.Status(ctx)
}

func (s *timeService) Reset(ctx context.Context) (TimeStatus, error) {
	log := logger.FromContext(ctx)

	startedAt := s.clk.StartedAt()
	if startedAt.IsZero() {
		s.clk.Clear()
		return s.Status(ctx), nil
	}

	// Cards go first so deck cascades never race the card delete.
	cardsDeleted, err := s.cards.DeleteCreatedAfter(ctx, startedAt)
	if err != nil {
		log.Error("failed to discard simulated cards: %v", err)
		return TimeStatus{}, errors.NewInternalError(err)
	}
	decksDeleted, err := s.decks.DeleteCreatedAfter(ctx, startedAt)
	if err != nil {
		log.Error("failed to discard simulated decks: %v", err)
		return TimeStatus{}, errors.NewInternalError(err)
	}

	s.clk.Clear()
	log.Info("time travel reset: discarded %d cards, %d decks", cardsDeleted, decksDeleted)
	return s.Status(ctx), nil
}
