package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/fireminder/fireminder/internal/clock"
	"github.com/fireminder/fireminder/internal/dates"
	"github.com/fireminder/fireminder/internal/errors"
	"github.com/fireminder/fireminder/internal/models"
	"github.com/fireminder/fireminder/internal/repository"
)

// StatsService computes deck summaries and calendar views
type StatsService interface {
	DeckStats(ctx context.Context, deckID string) (*models.DeckStats, error)
	Calendar(ctx context.Context, deckID string, year int, month time.Month) (*models.CalendarMonth, error)
}

type statsService struct {
	decks repository.DeckRepository
	cards repository.CardRepository
	clk   clock.Clock
}

// NewStatsService creates a new StatsService.
func NewStatsService(decks repository.DeckRepository, cards repository.CardRepository, clk clock.Clock) StatsService {
	return &statsService{decks: decks, cards: cards, clk: clk}
}

func (s *statsService) DeckStats(ctx context.Context, deckID string) (*models.DeckStats, error) {
	cards, err := s.deckCards(ctx, deckID, false)
	if err != nil {
		return nil, err
	}

	today := clock.Today(s.clk)
	stats := models.DeckStats{}

	var futureDue []string
	for _, c := range cards {
		if c.Retired {
			stats.Retired++
			continue
		}
		stats.Active++
		if c.NextDueDate > today {
			futureDue = append(futureDue, c.NextDueDate)
			if !c.Reviewed() {
				stats.Scheduled++
			}
		}
	}

	if len(futureDue) > 0 {
		sort.Strings(futureDue)
		days, err := dates.DaysBetween(today, futureDue[0])
		if err == nil {
			stats.NextDueIn = &days
		}
	}
	return &stats, nil
}

func (s *statsService) Calendar(ctx context.Context, deckID string, year int, month time.Month) (*models.CalendarMonth, error) {
	if month < time.January || month > time.December {
		return nil, errors.NewValidationError("month", "must be between 1 and 12")
	}

	cards, err := s.deckCards(ctx, deckID, true)
	if err != nil {
		return nil, err
	}

	today := clock.Today(s.clk)
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.Local)
	daysInMonth := first.AddDate(0, 1, -1).Day()

	cal := models.CalendarMonth{
		Year:           year,
		Month:          int(month),
		StartDayOfWeek: int(first.Weekday()),
		Days:           make([]models.CalendarDay, 0, daysInMonth),
	}

	for d := 1; d <= daysInMonth; d++ {
		date := fmt.Sprintf("%04d-%02d-%02d", year, int(month), d)

		reviewed := 0
		due := 0
		for _, c := range cards {
			for _, h := range c.History {
				if h.Date == date {
					reviewed++
					break
				}
			}
			if !c.Retired && c.NextDueDate == date {
				due++
			}
		}

		cal.Days = append(cal.Days, models.CalendarDay{
			Day:           d,
			Date:          date,
			IsPast:        date < today,
			IsToday:       date == today,
			ReviewedCount: reviewed,
			DueCount:      due,
		})
	}
	return &cal, nil
}

func (s *statsService) deckCards(ctx context.Context, deckID string, withHistory bool) ([]models.Card, error) {
	deck, err := s.decks.Get(ctx, deckID)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	if deck == nil {
		return nil, errors.NewNotFoundError("deck", deckID)
	}
	cards, err := s.cards.ListByDeck(ctx, deckID, models.CardFilter{
		IncludeRetired: true,
		WithHistory:    withHistory,
	})
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	return cards, nil
}
