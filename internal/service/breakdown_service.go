package service

import (
	"context"
	"fmt"
	"time"

	"memori-server/internal/models"
	"memori-server/internal/openai"
	"memori-server/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	// GenerationCost is the number of coins one generation call consumes.
	GenerationCost = 1

	defaultHistoryLimit = 50
	maxHistoryLimit     = 100
)

// GenerationGateway produces scene breakdown content from a script.
type GenerationGateway interface {
	GenerateSceneBreakdown(ctx context.Context, script string, language models.Language, opts openai.GenerationOptions) (string, error)
}

// GenerateParams is the input of a generation request. Language may be empty,
// in which case it is detected from the script. CustomPrompt and Patterns are
// caller-supplied prompt customization forwarded to the gateway per request.
type GenerateParams struct {
	IdeaID       int64
	Script       string
	Language     models.Language
	CustomPrompt string
	Patterns     []models.ScenePattern
}

// GenerateResult is the outcome of a successful generation.
type GenerateResult struct {
	Content          string
	Version          int
	RemainingBalance int
}

// BreakdownService orchestrates scene breakdown generation, manual edits,
// history listing and version restore.
type BreakdownService interface {
	// Generate debits one coin, calls the generation gateway and appends the
	// result as a new history version. The debit is not refunded when the
	// gateway call fails afterwards; callers see the error and a reduced
	// balance.
	Generate(ctx context.Context, userID uuid.UUID, params GenerateParams) (*GenerateResult, error)

	// ManualUpdate overwrites the idea's current breakdown content. No coin
	// is spent, no history entry is created and the generation timestamp is
	// left untouched.
	ManualUpdate(ctx context.Context, userID uuid.UUID, ideaID int64, content string) error

	// Restore copies a historical version back into the idea's current
	// content and clears the generation timestamp. The history itself and
	// the version sequence are unchanged.
	Restore(ctx context.Context, userID uuid.UUID, ideaID int64, version int) (string, error)

	// ListHistory returns a page of history entries, newest first, plus the
	// total count for the idea.
	ListHistory(ctx context.Context, userID uuid.UUID, ideaID int64, limit, offset int) ([]models.SceneBreakdownVersion, int, error)

	// GetBalance returns the user's coin balance, creating the account with
	// the default balance on first contact.
	GetBalance(ctx context.Context, userID uuid.UUID) (int, error)
}

type breakdownServiceImpl struct {
	ideaRepo    repository.IdeaRepository
	historyRepo repository.BreakdownHistoryRepository
	coinRepo    repository.CoinRepository
	gateway     GenerationGateway
	logger      *zap.Logger
}

// NewBreakdownService creates a new BreakdownService.
func NewBreakdownService(
	ideaRepo repository.IdeaRepository,
	historyRepo repository.BreakdownHistoryRepository,
	coinRepo repository.CoinRepository,
	gateway GenerationGateway,
	logger *zap.Logger,
) BreakdownService {
	return &breakdownServiceImpl{
		ideaRepo:    ideaRepo,
		historyRepo: historyRepo,
		coinRepo:    coinRepo,
		gateway:     gateway,
		logger:      logger.Named("BreakdownService"),
	}
}

func (s *breakdownServiceImpl) Generate(ctx context.Context, userID uuid.UUID, params GenerateParams) (*GenerateResult, error) {
	log := s.logger.With(zap.String("userID", userID.String()), zap.Int64("ideaID", params.IdeaID))
	log.Info("Generate called")

	idea, err := s.ideaRepo.GetByID(ctx, params.IdeaID, userID)
	if err != nil {
		return nil, err
	}

	balance, err := s.coinRepo.GetOrCreateBalance(ctx, idea.UserID)
	if err != nil {
		return nil, fmt.Errorf("error checking coin balance: %w", err)
	}
	if balance < GenerationCost {
		log.Warn("Generation rejected: no coins left", zap.Int("balance", balance))
		return nil, models.ErrInsufficientCoins
	}

	remaining, err := s.coinRepo.Debit(ctx, idea.UserID, GenerationCost)
	if err != nil {
		return nil, err
	}

	language := params.Language
	if language == "" {
		language = DetectLanguage(params.Script)
		log.Debug("Language detected from script", zap.String("language", string(language)))
	}

	// The coin is already spent at this point. A gateway failure surfaces to
	// the caller with the reduced balance; the debit is not reversed.
	content, err := s.gateway.GenerateSceneBreakdown(ctx, params.Script, language, openai.GenerationOptions{
		CustomPrompt: params.CustomPrompt,
		Patterns:     params.Patterns,
	})
	if err != nil {
		log.Error("Generation gateway call failed", zap.Error(err))
		return nil, err
	}

	version, err := s.historyRepo.Append(ctx, params.IdeaID, idea.UserID, content)
	if err != nil {
		return nil, fmt.Errorf("error saving generation history: %w", err)
	}

	if err := s.ideaRepo.SetBreakdownGenerated(ctx, params.IdeaID, content, time.Now().UTC()); err != nil {
		return nil, fmt.Errorf("error updating idea breakdown: %w", err)
	}

	log.Info("Scene breakdown generated", zap.Int("version", version), zap.Int("remainingBalance", remaining))
	return &GenerateResult{
		Content:          content,
		Version:          version,
		RemainingBalance: remaining,
	}, nil
}

func (s *breakdownServiceImpl) ManualUpdate(ctx context.Context, userID uuid.UUID, ideaID int64, content string) error {
	log := s.logger.With(zap.String("userID", userID.String()), zap.Int64("ideaID", ideaID))

	if _, err := s.ideaRepo.GetByID(ctx, ideaID, userID); err != nil {
		return err
	}

	if err := s.ideaRepo.SetBreakdownContent(ctx, ideaID, content); err != nil {
		return fmt.Errorf("error updating idea breakdown: %w", err)
	}
	log.Info("Scene breakdown updated manually")
	return nil
}

func (s *breakdownServiceImpl) Restore(ctx context.Context, userID uuid.UUID, ideaID int64, version int) (string, error) {
	log := s.logger.With(zap.String("userID", userID.String()), zap.Int64("ideaID", ideaID), zap.Int("version", version))

	if _, err := s.ideaRepo.GetByID(ctx, ideaID, userID); err != nil {
		return "", err
	}

	content, err := s.historyRepo.GetVersion(ctx, ideaID, version)
	if err != nil {
		return "", err
	}

	if err := s.ideaRepo.SetBreakdownRestored(ctx, ideaID, content); err != nil {
		return "", fmt.Errorf("error restoring idea breakdown: %w", err)
	}
	log.Info("Scene breakdown restored")
	return content, nil
}

func (s *breakdownServiceImpl) ListHistory(ctx context.Context, userID uuid.UUID, ideaID int64, limit, offset int) ([]models.SceneBreakdownVersion, int, error) {
	if _, err := s.ideaRepo.GetByID(ctx, ideaID, userID); err != nil {
		return nil, 0, err
	}

	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	if limit > maxHistoryLimit {
		limit = maxHistoryLimit
	}
	if offset < 0 {
		offset = 0
	}

	return s.historyRepo.ListByIdea(ctx, ideaID, limit, offset)
}

func (s *breakdownServiceImpl) GetBalance(ctx context.Context, userID uuid.UUID) (int, error) {
	return s.coinRepo.GetOrCreateBalance(ctx, userID)
}
