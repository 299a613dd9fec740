package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/vytor/flashdeck/internal/models"
)

// MockDeckRepository is a mock implementation of repository.DeckRepository
type MockDeckRepository struct {
	mock.Mock
}

func (m *MockDeckRepository) Load(ctx context.Context, classID string) (*models.DeckSnapshot, error) {
	args := m.Called(ctx, classID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.DeckSnapshot), args.Error(1)
}

func (m *MockDeckRepository) Save(ctx context.Context, classID string, snapshot models.DeckSnapshot) error {
	args := m.Called(ctx, classID, snapshot)
	return args.Error(0)
}

func (m *MockDeckRepository) LoadClassID(ctx context.Context) (string, bool, error) {
	args := m.Called(ctx)
	return args.String(0), args.Bool(1), args.Error(2)
}

func (m *MockDeckRepository) SaveClassID(ctx context.Context, classID string) error {
	args := m.Called(ctx, classID)
	return args.Error(0)
}
