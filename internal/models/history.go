package models

import (
	"time"

	"github.com/google/uuid"
)

// SceneBreakdownVersion is an immutable snapshot of a breakdown taken at
// generation time. Rows are append-only: versions per idea start at 1 and
// grow by exactly 1 per generation, enforced by a unique (idea_id, version)
// constraint. Restore copies a snapshot back into the idea without creating
// a new row.
type SceneBreakdownVersion struct {
	ID          int64     `json:"id"`
	IdeaID      int64     `json:"idea_id"`
	UserID      uuid.UUID `json:"user_id"`
	Content     string    `json:"content"`
	Version     int       `json:"version"`
	GeneratedAt time.Time `json:"generated_at"`
}
