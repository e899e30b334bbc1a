package repository

import (
	"context"
	"errors"
	"fmt"

	"memori-server/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// Compile-time check
var _ CoinRepository = (*pgCoinRepository)(nil)

type pgCoinRepository struct {
	db     DBTX
	logger *zap.Logger
}

// NewPgCoinRepository creates a new PostgreSQL-backed CoinRepository.
func NewPgCoinRepository(db DBTX, logger *zap.Logger) CoinRepository {
	return &pgCoinRepository{
		db:     db,
		logger: logger.Named("PgCoinRepo"),
	}
}

func (r *pgCoinRepository) GetOrCreateBalance(ctx context.Context, userID uuid.UUID) (int, error) {
	logFields := []zap.Field{zap.String("userID", userID.String())}

	insertQuery := `
        INSERT INTO user_coins (user_id, coins)
        VALUES ($1, $2)
        ON CONFLICT (user_id) DO NOTHING
    `
	tag, err := r.db.Exec(ctx, insertQuery, userID, DefaultCoinBalance)
	if err != nil {
		r.logger.Error("Failed to ensure coin account", append(logFields, zap.Error(err))...)
		return 0, fmt.Errorf("failed to ensure coin account: %w", err)
	}
	if tag.RowsAffected() > 0 {
		r.logger.Info("Coin account created with default balance",
			append(logFields, zap.Int("coins", DefaultCoinBalance))...)
	}

	var coins int
	selectQuery := `SELECT coins FROM user_coins WHERE user_id = $1`
	if err := r.db.QueryRow(ctx, selectQuery, userID).Scan(&coins); err != nil {
		r.logger.Error("Failed to read coin balance", append(logFields, zap.Error(err))...)
		return 0, fmt.Errorf("failed to read coin balance: %w", err)
	}
	return coins, nil
}

// Debit decrements the balance with a conditional update guarded by the
// stored value, so two concurrent debits can never pass the check together
// and drive the balance negative.
func (r *pgCoinRepository) Debit(ctx context.Context, userID uuid.UUID, amount int) (int, error) {
	if amount <= 0 {
		return 0, fmt.Errorf("%w: debit amount must be positive", models.ErrInvalidInput)
	}
	logFields := []zap.Field{zap.String("userID", userID.String()), zap.Int("amount", amount)}

	query := `
        UPDATE user_coins
        SET coins = coins - $2, updated_at = NOW()
        WHERE user_id = $1 AND coins >= $2
        RETURNING coins
    `
	var remaining int
	err := r.db.QueryRow(ctx, query, userID, amount).Scan(&remaining)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Warn("Debit rejected: insufficient coins", logFields...)
			return 0, models.ErrInsufficientCoins
		}
		r.logger.Error("Failed to debit coins", append(logFields, zap.Error(err))...)
		return 0, fmt.Errorf("failed to debit coins: %w", err)
	}
	r.logger.Info("Coins debited", append(logFields, zap.Int("remaining", remaining))...)
	return remaining, nil
}
