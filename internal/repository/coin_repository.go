package repository

import (
	"context"

	"github.com/google/uuid"
)

// DefaultCoinBalance seeds a lazily created coin account.
const DefaultCoinBalance = 10

// CoinRepository manages per-user coin balances gating generation calls.
type CoinRepository interface {
	// GetOrCreateBalance returns the user's balance, creating the account
	// with DefaultCoinBalance on first contact.
	GetOrCreateBalance(ctx context.Context, userID uuid.UUID) (int, error)

	// Debit atomically decrements the balance by amount and returns the new
	// balance. Returns models.ErrInsufficientCoins when the balance is too
	// low; concurrent debits can never drive the balance negative.
	Debit(ctx context.Context, userID uuid.UUID, amount int) (int, error)
}
