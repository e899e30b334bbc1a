package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"memori-server/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// Compile-time check
var _ IdeaRepository = (*pgIdeaRepository)(nil)

type pgIdeaRepository struct {
	db     DBTX
	logger *zap.Logger
}

// NewPgIdeaRepository creates a new PostgreSQL-backed IdeaRepository.
func NewPgIdeaRepository(db DBTX, logger *zap.Logger) IdeaRepository {
	return &pgIdeaRepository{
		db:     db,
		logger: logger.Named("PgIdeaRepo"),
	}
}

func (r *pgIdeaRepository) Create(ctx context.Context, idea *models.Idea) error {
	query := `
        INSERT INTO ideas (user_id, text, type)
        VALUES ($1, $2, $3)
        RETURNING id, created_at
    `
	logFields := []zap.Field{zap.String("userID", idea.UserID.String()), zap.String("type", idea.Type)}
	r.logger.Debug("Creating idea", logFields...)

	err := r.db.QueryRow(ctx, query, idea.UserID, idea.Text, idea.Type).Scan(&idea.ID, &idea.CreatedAt)
	if err != nil {
		r.logger.Error("Failed to create idea", append(logFields, zap.Error(err))...)
		return fmt.Errorf("failed to create idea: %w", err)
	}
	r.logger.Info("Idea created", append(logFields, zap.Int64("ideaID", idea.ID))...)
	return nil
}

func (r *pgIdeaRepository) GetByID(ctx context.Context, id int64, userID uuid.UUID) (*models.Idea, error) {
	query := `
        SELECT id, user_id, text, type, scene_breakdown, scene_breakdown_generated_at, created_at
        FROM ideas
        WHERE id = $1 AND user_id = $2
    `
	idea := &models.Idea{}
	logFields := []zap.Field{zap.Int64("ideaID", id), zap.String("userID", userID.String())}

	err := r.db.QueryRow(ctx, query, id, userID).Scan(
		&idea.ID, &idea.UserID, &idea.Text, &idea.Type,
		&idea.SceneBreakdown, &idea.SceneBreakdownGeneratedAt, &idea.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Warn("Idea not found for user", logFields...)
			return nil, models.ErrNotFound
		}
		r.logger.Error("Failed to get idea by ID", append(logFields, zap.Error(err))...)
		return nil, fmt.Errorf("failed to get idea %d: %w", id, err)
	}
	return idea, nil
}

func (r *pgIdeaRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Idea, error) {
	query := `
        SELECT id, user_id, text, type, scene_breakdown, scene_breakdown_generated_at, created_at
        FROM ideas
        WHERE user_id = $1
        ORDER BY created_at DESC
    `
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		r.logger.Error("Failed to list ideas", zap.String("userID", userID.String()), zap.Error(err))
		return nil, fmt.Errorf("failed to list ideas: %w", err)
	}
	defer rows.Close()

	ideas := make([]models.Idea, 0)
	for rows.Next() {
		var idea models.Idea
		if err := rows.Scan(
			&idea.ID, &idea.UserID, &idea.Text, &idea.Type,
			&idea.SceneBreakdown, &idea.SceneBreakdownGeneratedAt, &idea.CreatedAt,
		); err != nil {
			r.logger.Error("Failed to scan idea row", zap.String("userID", userID.String()), zap.Error(err))
			return nil, fmt.Errorf("failed to scan idea row: %w", err)
		}
		ideas = append(ideas, idea)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate idea rows: %w", err)
	}
	return ideas, nil
}

func (r *pgIdeaRepository) Delete(ctx context.Context, id int64, userID uuid.UUID) error {
	query := `DELETE FROM ideas WHERE id = $1 AND user_id = $2`
	logFields := []zap.Field{zap.Int64("ideaID", id), zap.String("userID", userID.String())}

	tag, err := r.db.Exec(ctx, query, id, userID)
	if err != nil {
		r.logger.Error("Failed to delete idea", append(logFields, zap.Error(err))...)
		return fmt.Errorf("failed to delete idea %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		r.logger.Warn("Idea to delete not found for user", logFields...)
		return models.ErrNotFound
	}
	r.logger.Info("Idea deleted", logFields...)
	return nil
}

func (r *pgIdeaRepository) SetBreakdownGenerated(ctx context.Context, id int64, content string, generatedAt time.Time) error {
	query := `
        UPDATE ideas
        SET scene_breakdown = $2, scene_breakdown_generated_at = $3
        WHERE id = $1
    `
	return r.updateBreakdown(ctx, "generated", query, id, content, generatedAt)
}

func (r *pgIdeaRepository) SetBreakdownContent(ctx context.Context, id int64, content string) error {
	// Manual edit: scene_breakdown_generated_at stays as it was.
	query := `
        UPDATE ideas
        SET scene_breakdown = $2
        WHERE id = $1
    `
	return r.updateBreakdown(ctx, "manual", query, id, content)
}

func (r *pgIdeaRepository) SetBreakdownRestored(ctx context.Context, id int64, content string) error {
	// Restored, not regenerated: the generation timestamp is cleared.
	query := `
        UPDATE ideas
        SET scene_breakdown = $2, scene_breakdown_generated_at = NULL
        WHERE id = $1
    `
	return r.updateBreakdown(ctx, "restored", query, id, content)
}

func (r *pgIdeaRepository) updateBreakdown(ctx context.Context, mode, query string, id int64, args ...any) error {
	logFields := []zap.Field{zap.Int64("ideaID", id), zap.String("mode", mode)}

	tag, err := r.db.Exec(ctx, query, append([]any{id}, args...)...)
	if err != nil {
		r.logger.Error("Failed to update scene breakdown", append(logFields, zap.Error(err))...)
		return fmt.Errorf("failed to update scene breakdown for idea %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		r.logger.Warn("Idea to update not found", logFields...)
		return models.ErrNotFound
	}
	r.logger.Debug("Scene breakdown updated", logFields...)
	return nil
}
