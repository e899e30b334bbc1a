package handler

import (
	"time"

	"memori-server/internal/models"
)

// APIError is the standardized JSON error response body.
type APIError struct {
	Message string `json:"message"`
}

// --- Scene breakdown DTOs ---

type scenePatternDTO struct {
	Name        string `json:"name" validate:"max=100"`
	Description string `json:"description" validate:"max=500"`
}

type generateSceneBreakdownRequest struct {
	IdeaID       int64             `json:"ideaId" validate:"required,gt=0"`
	Script       string            `json:"script" validate:"required,min=50,max=5000"`
	Language     string            `json:"language" validate:"omitempty,oneof=english indonesian spanish"`
	CustomPrompt string            `json:"customPrompt" validate:"omitempty,max=2000"`
	Patterns     []scenePatternDTO `json:"patterns" validate:"omitempty,max=20,dive"`
}

type generateSceneBreakdownResponse struct {
	Success          bool   `json:"success"`
	Content          string `json:"content"`
	Version          int    `json:"version"`
	RemainingBalance int    `json:"remainingBalance"`
}

type updateSceneBreakdownRequest struct {
	IdeaID  int64  `json:"ideaId" validate:"required,gt=0"`
	Content string `json:"content" validate:"max=65535"`
}

type restoreSceneBreakdownRequest struct {
	IdeaID  int64 `json:"ideaId" validate:"required,gt=0"`
	Version int   `json:"version" validate:"required,gt=0"`
}

type restoreSceneBreakdownResponse struct {
	Success bool   `json:"success"`
	Content string `json:"content"`
}

type successResponse struct {
	Success bool `json:"success"`
}

// sceneBreakdownVersionDTO mirrors a history row for the client.
type sceneBreakdownVersionDTO struct {
	ID          int64     `json:"id"`
	IdeaID      int64     `json:"idea_id"`
	Content     string    `json:"content"`
	Version     int       `json:"version"`
	GeneratedAt time.Time `json:"generated_at"`
}

type sceneBreakdownHistoryResponse struct {
	Versions []sceneBreakdownVersionDTO `json:"versions"`
	Total    int                        `json:"total"`
}

func toVersionDTOs(entries []models.SceneBreakdownVersion) []sceneBreakdownVersionDTO {
	dtos := make([]sceneBreakdownVersionDTO, 0, len(entries))
	for _, e := range entries {
		dtos = append(dtos, sceneBreakdownVersionDTO{
			ID:          e.ID,
			IdeaID:      e.IdeaID,
			Content:     e.Content,
			Version:     e.Version,
			GeneratedAt: e.GeneratedAt,
		})
	}
	return dtos
}

// --- Coin DTOs ---

type coinBalanceResponse struct {
	Coins int `json:"coins"`
}

// --- Idea DTOs ---

type createIdeaRequest struct {
	Text string `json:"text" validate:"required,max=10000"`
	Type string `json:"type" validate:"omitempty,max=100"`
}

type ideaDTO struct {
	ID                        int64      `json:"id"`
	Text                      string     `json:"text"`
	Type                      string     `json:"type"`
	SceneBreakdown            *string    `json:"scene_breakdown,omitempty"`
	SceneBreakdownGeneratedAt *time.Time `json:"scene_breakdown_generated_at,omitempty"`
	CreatedAt                 time.Time  `json:"created_at"`
}

func toIdeaDTO(idea *models.Idea) ideaDTO {
	return ideaDTO{
		ID:                        idea.ID,
		Text:                      idea.Text,
		Type:                      idea.Type,
		SceneBreakdown:            idea.SceneBreakdown,
		SceneBreakdownGeneratedAt: idea.SceneBreakdownGeneratedAt,
		CreatedAt:                 idea.CreatedAt,
	}
}
