package nakama

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"blackjack/internal/ports"

	"github.com/heroiclabs/nakama-common/runtime"
)

const depositCollection = "gateway_deposits"

// NakamaGatewayLedgerAdapter records gateway chip transfers exactly once.
// The per-transfer marker is a create-only storage write committed in the
// same MultiUpdate as the wallet credit, so a replayed deposit
// notification cannot credit twice.
type NakamaGatewayLedgerAdapter struct {
	nk runtime.NakamaModule
}

// NewNakamaGatewayLedgerAdapter creates a new gateway ledger adapter.
func NewNakamaGatewayLedgerAdapter(nk runtime.NakamaModule) *NakamaGatewayLedgerAdapter {
	return &NakamaGatewayLedgerAdapter{nk: nk}
}

// RecordDepositOnce credits amount and stores the transfer marker
// atomically. Returns applied=false when txID was already recorded.
func (a *NakamaGatewayLedgerAdapter) RecordDepositOnce(ctx context.Context, userID, txID string, amount int64, metadata map[string]interface{}) (int64, bool, error) {
	if userID == "" || txID == "" {
		return 0, false, fmt.Errorf("userID and txID are required")
	}
	if amount <= 0 {
		return 0, false, fmt.Errorf("amount must be positive")
	}

	marker := map[string]interface{}{
		"amount":      amount,
		"recorded_at": time.Now().UTC().Format(time.RFC3339),
	}
	value, err := json.Marshal(marker)
	if err != nil {
		return 0, false, fmt.Errorf("failed to marshal deposit marker: %w", err)
	}

	storageWrites := []*runtime.StorageWrite{
		{
			Collection:      depositCollection,
			Key:             txID,
			UserID:          userID,
			Value:           string(value),
			Version:         "*",
			PermissionRead:  runtime.STORAGE_PERMISSION_NO_READ,
			PermissionWrite: runtime.STORAGE_PERMISSION_NO_WRITE,
		},
	}

	walletUpdates := []*runtime.WalletUpdate{
		{
			UserID:    userID,
			Changeset: map[string]int64{CurrencyKey: amount},
			Metadata:  metadata,
		},
	}

	_, walletResults, err := a.nk.MultiUpdate(ctx, nil, storageWrites, nil, walletUpdates, true)
	if err != nil {
		if errors.Is(err, runtime.ErrStorageRejectedVersion) {
			return 0, false, nil
		}
		return 0, false, fmt.Errorf("failed to record deposit %s: %w", txID, err)
	}

	var balanceAfter int64
	if len(walletResults) > 0 {
		balanceAfter = walletResults[0].Updated[CurrencyKey]
	}
	return balanceAfter, true, nil
}

var _ ports.GatewayLedgerPort = (*NakamaGatewayLedgerAdapter)(nil)
