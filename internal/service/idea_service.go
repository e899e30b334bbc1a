package service

import (
	"context"
	"fmt"

	"memori-server/internal/models"
	"memori-server/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// IdeaService manages idea capture CRUD.
type IdeaService interface {
	Create(ctx context.Context, userID uuid.UUID, text, ideaType string) (*models.Idea, error)
	Get(ctx context.Context, userID uuid.UUID, ideaID int64) (*models.Idea, error)
	List(ctx context.Context, userID uuid.UUID) ([]models.Idea, error)
	Delete(ctx context.Context, userID uuid.UUID, ideaID int64) error
}

type ideaServiceImpl struct {
	ideaRepo repository.IdeaRepository
	logger   *zap.Logger
}

// NewIdeaService creates a new IdeaService.
func NewIdeaService(ideaRepo repository.IdeaRepository, logger *zap.Logger) IdeaService {
	return &ideaServiceImpl{
		ideaRepo: ideaRepo,
		logger:   logger.Named("IdeaService"),
	}
}

func (s *ideaServiceImpl) Create(ctx context.Context, userID uuid.UUID, text, ideaType string) (*models.Idea, error) {
	idea := &models.Idea{
		UserID: userID,
		Text:   text,
		Type:   ideaType,
	}
	if err := s.ideaRepo.Create(ctx, idea); err != nil {
		return nil, fmt.Errorf("error creating idea: %w", err)
	}
	s.logger.Info("Idea captured", zap.String("userID", userID.String()), zap.Int64("ideaID", idea.ID))
	return idea, nil
}

func (s *ideaServiceImpl) Get(ctx context.Context, userID uuid.UUID, ideaID int64) (*models.Idea, error) {
	return s.ideaRepo.GetByID(ctx, ideaID, userID)
}

func (s *ideaServiceImpl) List(ctx context.Context, userID uuid.UUID) ([]models.Idea, error) {
	return s.ideaRepo.ListByUser(ctx, userID)
}

func (s *ideaServiceImpl) Delete(ctx context.Context, userID uuid.UUID, ideaID int64) error {
	return s.ideaRepo.Delete(ctx, ideaID, userID)
}
