package services

import (
	"context"
	"errors"
	"testing"
	"time"

	apperrors "github.com/fireminder/fireminder/internal/errors"
	"github.com/fireminder/fireminder/internal/models"
	"github.com/fireminder/fireminder/internal/scheduler"
	"github.com/fireminder/fireminder/internal/testutil/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// fixedClock pins Now for deterministic scheduling.
type fixedClock struct{ t time.Time }

func (c fixedClock) Now() time.Time { return c.t }

func midday(t *testing.T, date string) time.Time {
	t.Helper()
	parsed, err := time.ParseInLocation("2006-01-02", date, time.Local)
	require.NoError(t, err)
	return parsed.Add(12 * time.Hour)
}

func testDeck() *models.Deck {
	return &models.Deck{
		ID:               "deck-1",
		Name:             "Spanish",
		StartingInterval: 2,
		IntervalUnit:     models.UnitDays,
		QueueLimit:       5,
		MaxNewCards:      1,
	}
}

func TestReviewService_Queue(t *testing.T) {
	decks := new(mocks.MockDeckRepository)
	cards := new(mocks.MockCardRepository)
	clk := fixedClock{midday(t, "2025-03-10")}

	due := models.Card{ID: "card-due", DeckID: "deck-1", CurrentInterval: 2,
		LastReviewDate: "2025-03-08", NextDueDate: "2025-03-10"}
	notDue := models.Card{ID: "card-later", DeckID: "deck-1", CurrentInterval: 2,
		LastReviewDate: "2025-03-09", NextDueDate: "2025-03-11"}

	decks.On("Get", mock.Anything, "deck-1").Return(testDeck(), nil)
	cards.On("ListByDeck", mock.Anything, "deck-1", models.CardFilter{WithHistory: true}).
		Return([]models.Card{due, notDue}, nil)

	svc := NewReviewService(decks, cards, clk)
	queue, err := svc.Queue(context.Background(), "deck-1", scheduler.Session{})
	require.NoError(t, err)
	require.Len(t, queue, 1)
	assert.Equal(t, "card-due", queue[0].ID)
	decks.AssertExpectations(t)
	cards.AssertExpectations(t)
}

func TestReviewService_Queue_SkippedExcluded(t *testing.T) {
	decks := new(mocks.MockDeckRepository)
	cards := new(mocks.MockCardRepository)
	clk := fixedClock{midday(t, "2025-03-10")}

	due := models.Card{ID: "card-due", DeckID: "deck-1", CurrentInterval: 2,
		LastReviewDate: "2025-03-08", NextDueDate: "2025-03-10"}

	decks.On("Get", mock.Anything, "deck-1").Return(testDeck(), nil)
	cards.On("ListByDeck", mock.Anything, "deck-1", mock.Anything).
		Return([]models.Card{due}, nil)

	svc := NewReviewService(decks, cards, clk)
	session := scheduler.Session{Skipped: map[string]bool{"card-due": true}}
	queue, err := svc.Queue(context.Background(), "deck-1", session)
	require.NoError(t, err)
	assert.Empty(t, queue)
}

func TestReviewService_Queue_DeckNotFound(t *testing.T) {
	decks := new(mocks.MockDeckRepository)
	cards := new(mocks.MockCardRepository)
	decks.On("Get", mock.Anything, "nope").Return(nil, nil)

	svc := NewReviewService(decks, cards, fixedClock{midday(t, "2025-03-10")})
	_, err := svc.Queue(context.Background(), "nope", scheduler.Session{})

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.ErrCodeNotFound, appErr.Code)
}

func TestReviewService_Review_Default(t *testing.T) {
	decks := new(mocks.MockDeckRepository)
	cards := new(mocks.MockCardRepository)
	clk := fixedClock{midday(t, "2025-03-10")}

	card := &models.Card{ID: "card-1", DeckID: "deck-1", Content: "hola",
		CurrentInterval: 2, LastReviewDate: "2025-03-08", NextDueDate: "2025-03-10"}

	cards.On("Get", mock.Anything, "card-1").Return(card, nil)
	decks.On("Get", mock.Anything, "deck-1").Return(testDeck(), nil)
	cards.On("ApplyReview", mock.Anything, "card-1", mock.MatchedBy(func(u models.CardUpdate) bool {
		return u.CurrentInterval == 3 && u.NextDueDate == "2025-03-13" && u.LastReviewDate == "2025-03-10"
	})).Return(nil)

	svc := NewReviewService(decks, cards, clk)
	reviewed, err := svc.Review(context.Background(), "card-1", ReviewInput{Choice: "default", Reflection: "easy"})
	require.NoError(t, err)
	assert.Equal(t, 3, reviewed.CurrentInterval)
	assert.Equal(t, "2025-03-13", reviewed.NextDueDate)
	require.Len(t, reviewed.History, 1)
	assert.Equal(t, "easy", reviewed.History[0].Reflection)
	cards.AssertExpectations(t)
}

func TestReviewService_Review_StorageFailureLeavesCardUntouched(t *testing.T) {
	decks := new(mocks.MockDeckRepository)
	cards := new(mocks.MockCardRepository)
	clk := fixedClock{midday(t, "2025-03-10")}

	card := &models.Card{ID: "card-1", DeckID: "deck-1",
		CurrentInterval: 2, LastReviewDate: "2025-03-08", NextDueDate: "2025-03-10"}

	cards.On("Get", mock.Anything, "card-1").Return(card, nil)
	decks.On("Get", mock.Anything, "deck-1").Return(testDeck(), nil)
	cards.On("ApplyReview", mock.Anything, "card-1", mock.Anything).
		Return(errors.New("disk full"))

	svc := NewReviewService(decks, cards, clk)
	reviewed, err := svc.Review(context.Background(), "card-1", ReviewInput{Choice: "default"})

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.ErrCodeInternal, appErr.Code)
	assert.Nil(t, reviewed)
	// the loaded card was never mutated
	assert.Equal(t, 2, card.CurrentInterval)
	assert.Empty(t, card.History)
}

func TestReviewService_Review_RetiredRejected(t *testing.T) {
	decks := new(mocks.MockDeckRepository)
	cards := new(mocks.MockCardRepository)

	card := &models.Card{ID: "card-1", DeckID: "deck-1", Retired: true, CurrentInterval: 2}
	cards.On("Get", mock.Anything, "card-1").Return(card, nil)

	svc := NewReviewService(decks, cards, fixedClock{midday(t, "2025-03-10")})
	_, err := svc.Review(context.Background(), "card-1", ReviewInput{Choice: "default"})

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.ErrCodeBadRequest, appErr.Code)
}

func TestReviewService_Review_NotFound(t *testing.T) {
	decks := new(mocks.MockDeckRepository)
	cards := new(mocks.MockCardRepository)
	cards.On("Get", mock.Anything, "nope").Return(nil, nil)

	svc := NewReviewService(decks, cards, fixedClock{midday(t, "2025-03-10")})
	_, err := svc.Review(context.Background(), "nope", ReviewInput{Choice: "default"})

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.ErrCodeNotFound, appErr.Code)
}
