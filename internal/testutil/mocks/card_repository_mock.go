package mocks

import (
	"context"
	"time"

	"github.com/fireminder/fireminder/internal/models"
	"github.com/stretchr/testify/mock"
)

// MockCardRepository is a mock implementation of repository.CardRepository
type MockCardRepository struct {
	mock.Mock
}

func (m *MockCardRepository) Insert(ctx context.Context, c models.Card) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockCardRepository) Get(ctx context.Context, id string) (*models.Card, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Card), args.Error(1)
}

func (m *MockCardRepository) ListByDeck(ctx context.Context, deckID string, filter models.CardFilter) ([]models.Card, error) {
	args := m.Called(ctx, deckID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Card), args.Error(1)
}

func (m *MockCardRepository) ApplyReview(ctx context.Context, id string, update models.CardUpdate) error {
	args := m.Called(ctx, id, update)
	return args.Error(0)
}

func (m *MockCardRepository) UpdateContent(ctx context.Context, id, content string) error {
	args := m.Called(ctx, id, content)
	return args.Error(0)
}

func (m *MockCardRepository) MoveToDeck(ctx context.Context, id, deckID string) error {
	args := m.Called(ctx, id, deckID)
	return args.Error(0)
}

func (m *MockCardRepository) SetRetired(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockCardRepository) SetDeleted(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockCardRepository) DeleteCreatedAfter(ctx context.Context, t time.Time) (int64, error) {
	args := m.Called(ctx, t)
	return args.Get(0).(int64), args.Error(1)
}
