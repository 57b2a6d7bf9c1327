package services

import (
	"context"
	"testing"
	"time"

	apperrors "github.com/fireminder/fireminder/internal/errors"
	"github.com/fireminder/fireminder/internal/models"
	"github.com/fireminder/fireminder/internal/testutil/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestStatsService_DeckStats(t *testing.T) {
	decks := new(mocks.MockDeckRepository)
	cards := new(mocks.MockCardRepository)
	clk := fixedClock{midday(t, "2025-03-10")}

	decks.On("Get", mock.Anything, "deck-1").Return(testDeck(), nil)
	cards.On("ListByDeck", mock.Anything, "deck-1", models.CardFilter{IncludeRetired: true}).
		Return([]models.Card{
			{ID: "overdue", LastReviewDate: "2025-03-01", NextDueDate: "2025-03-09"},
			{ID: "scheduled", NextDueDate: "2025-03-15"},
			{ID: "upcoming", LastReviewDate: "2025-03-09", NextDueDate: "2025-03-12"},
			{ID: "done", Retired: true, NextDueDate: "2025-03-11"},
		}, nil)

	svc := NewStatsService(decks, cards, clk)
	stats, err := svc.DeckStats(context.Background(), "deck-1")
	require.NoError(t, err)

	assert.Equal(t, 3, stats.Active)
	assert.Equal(t, 1, stats.Retired)
	assert.Equal(t, 1, stats.Scheduled, "never reviewed and not yet due")
	require.NotNil(t, stats.NextDueIn)
	assert.Equal(t, 2, *stats.NextDueIn, "soonest future due date")
}

func TestStatsService_DeckStats_NothingUpcoming(t *testing.T) {
	decks := new(mocks.MockDeckRepository)
	cards := new(mocks.MockCardRepository)
	clk := fixedClock{midday(t, "2025-03-10")}

	decks.On("Get", mock.Anything, "deck-1").Return(testDeck(), nil)
	cards.On("ListByDeck", mock.Anything, "deck-1", mock.Anything).
		Return([]models.Card{
			{ID: "due-now", LastReviewDate: "2025-03-01", NextDueDate: "2025-03-10"},
		}, nil)

	svc := NewStatsService(decks, cards, clk)
	stats, err := svc.DeckStats(context.Background(), "deck-1")
	require.NoError(t, err)
	assert.Nil(t, stats.NextDueIn)
}

func TestStatsService_Calendar(t *testing.T) {
	decks := new(mocks.MockDeckRepository)
	cards := new(mocks.MockCardRepository)
	clk := fixedClock{midday(t, "2025-03-10")}

	decks.On("Get", mock.Anything, "deck-1").Return(testDeck(), nil)
	cards.On("ListByDeck", mock.Anything, "deck-1", models.CardFilter{IncludeRetired: true, WithHistory: true}).
		Return([]models.Card{
			{
				ID: "card-1", NextDueDate: "2025-03-20",
				LastReviewDate: "2025-03-05",
				History:        []models.ReviewRecord{{Date: "2025-03-05", Interval: 3, IntervalUnit: models.UnitDays}},
			},
			{ID: "card-2", Retired: true, NextDueDate: "2025-03-20"},
		}, nil)

	svc := NewStatsService(decks, cards, clk)
	cal, err := svc.Calendar(context.Background(), "deck-1", 2025, time.March)
	require.NoError(t, err)

	assert.Equal(t, 2025, cal.Year)
	assert.Equal(t, 3, cal.Month)
	assert.Equal(t, int(time.Saturday), cal.StartDayOfWeek)
	require.Len(t, cal.Days, 31)

	assert.Equal(t, 1, cal.Days[4].ReviewedCount, "review on march 5th")
	assert.True(t, cal.Days[4].IsPast)
	assert.True(t, cal.Days[9].IsToday)
	assert.Equal(t, 1, cal.Days[19].DueCount, "retired cards never count as due")
}

func TestStatsService_Calendar_BadMonth(t *testing.T) {
	decks := new(mocks.MockDeckRepository)
	cards := new(mocks.MockCardRepository)

	svc := NewStatsService(decks, cards, fixedClock{midday(t, "2025-03-10")})
	_, err := svc.Calendar(context.Background(), "deck-1", 2025, time.Month(13))

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.ErrCodeValidation, appErr.Code)
}
