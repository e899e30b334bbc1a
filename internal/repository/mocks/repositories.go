package mocks

import (
	"context"
	"time"

	"memori-server/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// Mock IdeaRepository
type IdeaRepository struct {
	mock.Mock
}

func (m *IdeaRepository) Create(ctx context.Context, idea *models.Idea) error {
	args := m.Called(ctx, idea)
	return args.Error(0)
}

func (m *IdeaRepository) GetByID(ctx context.Context, id int64, userID uuid.UUID) (*models.Idea, error) {
	args := m.Called(ctx, id, userID)
	if idea, ok := args.Get(0).(*models.Idea); ok {
		return idea, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *IdeaRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Idea, error) {
	args := m.Called(ctx, userID)
	if ideas, ok := args.Get(0).([]models.Idea); ok {
		return ideas, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *IdeaRepository) Delete(ctx context.Context, id int64, userID uuid.UUID) error {
	args := m.Called(ctx, id, userID)
	return args.Error(0)
}

func (m *IdeaRepository) SetBreakdownGenerated(ctx context.Context, id int64, content string, generatedAt time.Time) error {
	args := m.Called(ctx, id, content, generatedAt)
	return args.Error(0)
}

func (m *IdeaRepository) SetBreakdownContent(ctx context.Context, id int64, content string) error {
	args := m.Called(ctx, id, content)
	return args.Error(0)
}

func (m *IdeaRepository) SetBreakdownRestored(ctx context.Context, id int64, content string) error {
	args := m.Called(ctx, id, content)
	return args.Error(0)
}

// Mock BreakdownHistoryRepository
type BreakdownHistoryRepository struct {
	mock.Mock
}

func (m *BreakdownHistoryRepository) Append(ctx context.Context, ideaID int64, userID uuid.UUID, content string) (int, error) {
	args := m.Called(ctx, ideaID, userID, content)
	return args.Int(0), args.Error(1)
}

func (m *BreakdownHistoryRepository) ListByIdea(ctx context.Context, ideaID int64, limit, offset int) ([]models.SceneBreakdownVersion, int, error) {
	args := m.Called(ctx, ideaID, limit, offset)
	if entries, ok := args.Get(0).([]models.SceneBreakdownVersion); ok {
		return entries, args.Int(1), args.Error(2)
	}
	return nil, args.Int(1), args.Error(2)
}

func (m *BreakdownHistoryRepository) GetVersion(ctx context.Context, ideaID int64, version int) (string, error) {
	args := m.Called(ctx, ideaID, version)
	return args.String(0), args.Error(1)
}

// Mock CoinRepository
type CoinRepository struct {
	mock.Mock
}

func (m *CoinRepository) GetOrCreateBalance(ctx context.Context, userID uuid.UUID) (int, error) {
	args := m.Called(ctx, userID)
	return args.Int(0), args.Error(1)
}

func (m *CoinRepository) Debit(ctx context.Context, userID uuid.UUID, amount int) (int, error) {
	args := m.Called(ctx, userID, amount)
	return args.Int(0), args.Error(1)
}
