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

const (
	startingStackCollection = "onboarding"
	startingStackKey        = "starting_stack_v1"
)

// NakamaStartingStackAdapter grants the starting chip stack using Nakama
// storage + wallet updates. The create-only marker write and the chip
// credit go through one MultiUpdate, so a replayed grant changes nothing.
type NakamaStartingStackAdapter struct {
	nk runtime.NakamaModule
}

// NewNakamaStartingStackAdapter creates a new starting stack adapter.
func NewNakamaStartingStackAdapter(nk runtime.NakamaModule) *NakamaStartingStackAdapter {
	return &NakamaStartingStackAdapter{nk: nk}
}

// GrantStartingStackOnce credits the starting chips and records a marker
// atomically.
func (a *NakamaStartingStackAdapter) GrantStartingStackOnce(ctx context.Context, userID string, amount int64, metadata map[string]interface{}) (bool, error) {
	if userID == "" {
		return false, fmt.Errorf("userID is required")
	}
	if amount <= 0 {
		return false, fmt.Errorf("amount must be positive")
	}

	marker := map[string]interface{}{
		"amount":     amount,
		"granted_at": time.Now().UTC().Format(time.RFC3339),
	}
	value, err := json.Marshal(marker)
	if err != nil {
		return false, fmt.Errorf("failed to marshal starting stack marker: %w", err)
	}

	storageWrites := []*runtime.StorageWrite{
		{
			Collection:      startingStackCollection,
			Key:             startingStackKey,
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

	_, _, err = a.nk.MultiUpdate(ctx, nil, storageWrites, nil, walletUpdates, true)
	if err != nil {
		if errors.Is(err, runtime.ErrStorageRejectedVersion) {
			return false, nil
		}
		return false, fmt.Errorf("failed to grant starting stack: %w", err)
	}

	return true, nil
}

var _ ports.StartingStackPort = (*NakamaStartingStackAdapter)(nil)
