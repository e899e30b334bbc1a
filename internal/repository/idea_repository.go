package repository

import (
	"context"
	"time"

	"memori-server/internal/models"

	"github.com/google/uuid"
)

// IdeaRepository persists captured ideas and their current scene breakdown.
//
// Reads and deletes always filter by user_id: a caller can only see their own
// ideas, so a missing row and a foreign row are both models.ErrNotFound.
type IdeaRepository interface {
	// Create inserts a new idea and fills in its assigned ID and CreatedAt.
	Create(ctx context.Context, idea *models.Idea) error

	// GetByID retrieves an idea owned by userID.
	GetByID(ctx context.Context, id int64, userID uuid.UUID) (*models.Idea, error)

	// ListByUser retrieves all ideas of a user, newest first.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Idea, error)

	// Delete removes an idea owned by userID.
	Delete(ctx context.Context, id int64, userID uuid.UUID) error

	// SetBreakdownGenerated stores freshly generated breakdown content and
	// stamps scene_breakdown_generated_at. Generation path only.
	SetBreakdownGenerated(ctx context.Context, id int64, content string, generatedAt time.Time) error

	// SetBreakdownContent stores manually edited content. The generation
	// timestamp is left untouched.
	SetBreakdownContent(ctx context.Context, id int64, content string) error

	// SetBreakdownRestored stores content copied from history and clears
	// scene_breakdown_generated_at, marking the state as restored rather
	// than freshly generated.
	SetBreakdownRestored(ctx context.Context, id int64, content string) error
}
