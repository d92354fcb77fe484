package ports

import (
	"context"
	"errors"
)

// ErrNoAccount is returned when an account has no chip balance at all,
// i.e. it was never funded through onboarding or a gateway deposit.
var ErrNoAccount = errors.New("account has no chip balance")

// EconomyPort defines the interface for the custodial chip ledger.
// Balances are owned by the host; the engine only reads them and issues
// atomic update requests, never caching a copy across calls.
type EconomyPort interface {
	// GetBalance retrieves the current chip balance for a user.
	// Returns ErrNoAccount if the user has never been funded.
	GetBalance(ctx context.Context, userID string) (int64, error)

	// Credit adds chips to a user's balance and returns the balance after.
	// amount must be positive.
	Credit(ctx context.Context, userID string, amount int64, metadata map[string]interface{}) (int64, error)

	// Debit removes chips from a user's balance and returns the balance
	// after. The host rejects the whole update if it would go negative.
	Debit(ctx context.Context, userID string, amount int64, metadata map[string]interface{}) (int64, error)
}
