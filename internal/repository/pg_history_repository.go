package repository

import (
	"context"
	"errors"
	"fmt"

	"memori-server/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
)

// appendMaxAttempts bounds version-conflict retries in Append.
const appendMaxAttempts = 3

// Compile-time check
var _ BreakdownHistoryRepository = (*pgBreakdownHistoryRepository)(nil)

type pgBreakdownHistoryRepository struct {
	db     DBTX
	logger *zap.Logger
}

// NewPgBreakdownHistoryRepository creates a new PostgreSQL-backed BreakdownHistoryRepository.
func NewPgBreakdownHistoryRepository(db DBTX, logger *zap.Logger) BreakdownHistoryRepository {
	return &pgBreakdownHistoryRepository{
		db:     db,
		logger: logger.Named("PgBreakdownHistoryRepo"),
	}
}

// Append inserts the next version for the idea in a single statement, so the
// version read and the insert cannot interleave with another writer. If two
// callers still race to the same version, the (idea_id, version) unique
// constraint rejects one of them and we retry with a fresh max.
func (r *pgBreakdownHistoryRepository) Append(ctx context.Context, ideaID int64, userID uuid.UUID, content string) (int, error) {
	query := `
        INSERT INTO scene_breakdown_history (idea_id, user_id, content, version)
        SELECT $1, $2, $3, COALESCE(MAX(version), 0) + 1
        FROM scene_breakdown_history
        WHERE idea_id = $1
        RETURNING version
    `
	logFields := []zap.Field{zap.Int64("ideaID", ideaID), zap.String("userID", userID.String())}

	var lastErr error
	for attempt := 1; attempt <= appendMaxAttempts; attempt++ {
		var version int
		err := r.db.QueryRow(ctx, query, ideaID, userID, content).Scan(&version)
		if err == nil {
			r.logger.Info("History entry appended", append(logFields, zap.Int("version", version))...)
			return version, nil
		}

		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			r.logger.Warn("Version conflict on history append, retrying",
				append(logFields, zap.Int("attempt", attempt))...)
			lastErr = err
			continue
		}

		r.logger.Error("Failed to append history entry", append(logFields, zap.Error(err))...)
		return 0, fmt.Errorf("failed to append scene breakdown history: %w", err)
	}

	r.logger.Error("History append exhausted retries", append(logFields, zap.Error(lastErr))...)
	return 0, fmt.Errorf("failed to append scene breakdown history after %d attempts: %w", appendMaxAttempts, lastErr)
}

func (r *pgBreakdownHistoryRepository) ListByIdea(ctx context.Context, ideaID int64, limit, offset int) ([]models.SceneBreakdownVersion, int, error) {
	countQuery := `SELECT COUNT(*) FROM scene_breakdown_history WHERE idea_id = $1`
	logFields := []zap.Field{zap.Int64("ideaID", ideaID), zap.Int("limit", limit), zap.Int("offset", offset)}

	var total int
	if err := r.db.QueryRow(ctx, countQuery, ideaID).Scan(&total); err != nil {
		r.logger.Error("Failed to count history entries", append(logFields, zap.Error(err))...)
		return nil, 0, fmt.Errorf("failed to count scene breakdown history: %w", err)
	}

	query := `
        SELECT id, idea_id, user_id, content, version, generated_at
        FROM scene_breakdown_history
        WHERE idea_id = $1
        ORDER BY generated_at DESC
        LIMIT $2 OFFSET $3
    `
	rows, err := r.db.Query(ctx, query, ideaID, limit, offset)
	if err != nil {
		r.logger.Error("Failed to list history entries", append(logFields, zap.Error(err))...)
		return nil, 0, fmt.Errorf("failed to list scene breakdown history: %w", err)
	}
	defer rows.Close()

	entries := make([]models.SceneBreakdownVersion, 0, limit)
	for rows.Next() {
		var entry models.SceneBreakdownVersion
		if err := rows.Scan(&entry.ID, &entry.IdeaID, &entry.UserID, &entry.Content, &entry.Version, &entry.GeneratedAt); err != nil {
			r.logger.Error("Failed to scan history row", append(logFields, zap.Error(err))...)
			return nil, 0, fmt.Errorf("failed to scan scene breakdown history row: %w", err)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate scene breakdown history rows: %w", err)
	}
	return entries, total, nil
}

func (r *pgBreakdownHistoryRepository) GetVersion(ctx context.Context, ideaID int64, version int) (string, error) {
	query := `
        SELECT content
        FROM scene_breakdown_history
        WHERE idea_id = $1 AND version = $2
    `
	logFields := []zap.Field{zap.Int64("ideaID", ideaID), zap.Int("version", version)}

	var content string
	err := r.db.QueryRow(ctx, query, ideaID, version).Scan(&content)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Warn("History version not found", logFields...)
			return "", models.ErrVersionNotFound
		}
		r.logger.Error("Failed to get history version", append(logFields, zap.Error(err))...)
		return "", fmt.Errorf("failed to get scene breakdown version %d for idea %d: %w", version, ideaID, err)
	}
	return content, nil
}
