package repository

import (
	"context"

	"memori-server/internal/models"

	"github.com/google/uuid"
)

// BreakdownHistoryRepository is the append-only ledger of generated scene
// breakdowns. Entries are never updated or deleted.
type BreakdownHistoryRepository interface {
	// Append persists a new history entry with the next version for the idea
	// (1 for the first entry) and returns the assigned version. Safe under
	// concurrent callers for the same idea: the (idea_id, version) unique
	// constraint guarantees no two callers get the same version.
	Append(ctx context.Context, ideaID int64, userID uuid.UUID, content string) (int, error)

	// ListByIdea returns a window of entries ordered by generation time
	// descending, plus the total entry count for the idea regardless of the
	// window.
	ListByIdea(ctx context.Context, ideaID int64, limit, offset int) ([]models.SceneBreakdownVersion, int, error)

	// GetVersion returns the content snapshot of an exact (ideaID, version)
	// pair, or models.ErrVersionNotFound.
	GetVersion(ctx context.Context, ideaID int64, version int) (string, error)
}
