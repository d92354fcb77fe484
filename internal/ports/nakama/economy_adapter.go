package nakama

import (
	"context"
	"encoding/json"
	"fmt"

	"blackjack/internal/ports"

	"github.com/heroiclabs/nakama-common/runtime"
)

// CurrencyKey is the wallet entry holding the player's chip balance.
const CurrencyKey = "chips"

// NakamaEconomyAdapter implements ports.EconomyPort using Nakama's wallet
// system. The wallet is the custodial ledger: every change is a delta the
// host applies atomically per user, never a blind overwrite.
type NakamaEconomyAdapter struct {
	nk runtime.NakamaModule
}

// NewNakamaEconomyAdapter creates a new economy adapter.
func NewNakamaEconomyAdapter(nk runtime.NakamaModule) *NakamaEconomyAdapter {
	return &NakamaEconomyAdapter{
		nk: nk,
	}
}

// GetBalance retrieves the current chip balance for a user. A wallet with
// no chips entry at all means the account was never funded.
func (a *NakamaEconomyAdapter) GetBalance(ctx context.Context, userID string) (int64, error) {
	account, err := a.nk.AccountGetId(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to get account: %w", err)
	}

	var wallet map[string]int64
	if err := json.Unmarshal([]byte(account.Wallet), &wallet); err != nil {
		return 0, fmt.Errorf("failed to unmarshal wallet: %w", err)
	}

	balance, ok := wallet[CurrencyKey]
	if !ok {
		return 0, ports.ErrNoAccount
	}
	return balance, nil
}

// Credit adds chips to the user's wallet and returns the balance after.
func (a *NakamaEconomyAdapter) Credit(ctx context.Context, userID string, amount int64, metadata map[string]interface{}) (int64, error) {
	if amount <= 0 {
		return 0, fmt.Errorf("credit amount must be positive: %d", amount)
	}
	return a.applyChange(ctx, userID, amount, metadata)
}

// Debit removes chips from the user's wallet and returns the balance
// after. Nakama rejects the update if the balance would go negative.
func (a *NakamaEconomyAdapter) Debit(ctx context.Context, userID string, amount int64, metadata map[string]interface{}) (int64, error) {
	if amount <= 0 {
		return 0, fmt.Errorf("debit amount must be positive: %d", amount)
	}
	return a.applyChange(ctx, userID, -amount, metadata)
}

func (a *NakamaEconomyAdapter) applyChange(ctx context.Context, userID string, change int64, metadata map[string]interface{}) (int64, error) {
	changeset := map[string]int64{
		CurrencyKey: change,
	}

	updated, _, err := a.nk.WalletUpdate(ctx, userID, changeset, metadata, true)
	if err != nil {
		return 0, fmt.Errorf("failed to update wallet for user %s: %w", userID, err)
	}
	return updated[CurrencyKey], nil
}

var _ ports.EconomyPort = (*NakamaEconomyAdapter)(nil)
