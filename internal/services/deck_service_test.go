package services

import (
	"context"
	"testing"

	apperrors "github.com/fireminder/fireminder/internal/errors"
	"github.com/fireminder/fireminder/internal/models"
	"github.com/fireminder/fireminder/internal/testutil/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestDeckService_CreateDeck_SanitizesSettings(t *testing.T) {
	decks := new(mocks.MockDeckRepository)
	clk := fixedClock{midday(t, "2025-03-10")}

	var inserted models.Deck
	decks.On("Insert", mock.Anything, mock.AnythingOfType("models.Deck")).
		Run(func(args mock.Arguments) { inserted = args.Get(1).(models.Deck) }).
		Return(nil)

	svc := NewDeckService(decks, clk, clk)
	deck, err := svc.CreateDeck(context.Background(), CreateDeckInput{
		Name:             "  Spanish  ",
		StartingInterval: -3,
		IntervalUnit:     "fortnights",
		QueueLimit:       -1,
		MaxNewCards:      0,
	})
	require.NoError(t, err)

	assert.Equal(t, "Spanish", deck.Name)
	assert.Equal(t, 2, deck.StartingInterval)
	assert.Equal(t, models.UnitDays, deck.IntervalUnit)
	assert.Equal(t, 0, deck.QueueLimit, "negative limit means unlimited")
	assert.Equal(t, 1, deck.MaxNewCards)
	assert.Equal(t, "2025-03-10", deck.CreatedAt)
	assert.NotEmpty(t, deck.ID)
	assert.Equal(t, deck.ID, inserted.ID)
}

func TestDeckService_CreateDeck_EmptyName(t *testing.T) {
	decks := new(mocks.MockDeckRepository)
	svc := NewDeckService(decks, fixedClock{midday(t, "2025-03-10")}, nil)

	_, err := svc.CreateDeck(context.Background(), CreateDeckInput{Name: "   "})

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.ErrCodeValidation, appErr.Code)
	decks.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
}

func TestDeckService_UpdateDeck_PartialPatch(t *testing.T) {
	decks := new(mocks.MockDeckRepository)
	clk := fixedClock{midday(t, "2025-03-10")}

	decks.On("Get", mock.Anything, "deck-1").Return(testDeck(), nil)
	var updated models.Deck
	decks.On("Update", mock.Anything, mock.AnythingOfType("models.Deck")).
		Run(func(args mock.Arguments) { updated = args.Get(1).(models.Deck) }).
		Return(nil)

	limit := 10
	svc := NewDeckService(decks, clk, clk)
	deck, err := svc.UpdateDeck(context.Background(), "deck-1", UpdateDeckInput{QueueLimit: &limit})
	require.NoError(t, err)

	assert.Equal(t, "Spanish", deck.Name, "unset fields stay as they were")
	assert.Equal(t, 10, deck.QueueLimit)
	assert.Equal(t, 10, updated.QueueLimit)
}

func TestDeckService_DeleteDeck_NotFound(t *testing.T) {
	decks := new(mocks.MockDeckRepository)
	decks.On("Get", mock.Anything, "nope").Return(nil, nil)

	svc := NewDeckService(decks, fixedClock{midday(t, "2025-03-10")}, nil)
	err := svc.DeleteDeck(context.Background(), "nope")

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.ErrCodeNotFound, appErr.Code)
}
