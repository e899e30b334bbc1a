package models

import (
	"time"

	"github.com/google/uuid"
)

// Idea is a captured content draft. SceneBreakdown holds the current
// breakdown content (JSON-encoded scene array, or legacy free text).
// SceneBreakdownGeneratedAt is set only by the generation path; manual
// edits leave it untouched and restores clear it, so the client can tell
// AI-fresh content from edited or historical content.
type Idea struct {
	ID                        int64      `json:"id"`
	UserID                    uuid.UUID  `json:"user_id"`
	Text                      string     `json:"text"`
	Type                      string     `json:"type"`
	SceneBreakdown            *string    `json:"scene_breakdown,omitempty"`
	SceneBreakdownGeneratedAt *time.Time `json:"scene_breakdown_generated_at,omitempty"`
	CreatedAt                 time.Time  `json:"created_at"`
}
