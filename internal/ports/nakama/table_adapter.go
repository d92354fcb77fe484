package nakama

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"blackjack/internal/domain"
	"blackjack/internal/ports"

	"github.com/heroiclabs/nakama-common/runtime"
)

const (
	sessionCollection = "blackjack"
	sessionKey        = "session"
)

// NakamaTableAdapter implements ports.TablePort on Nakama storage and the
// wallet. The session row is version-guarded, so a commit built on a stale
// read is rejected by the host; the wallet change rides in the same
// MultiUpdate and applies only when the session write does.
type NakamaTableAdapter struct {
	nk runtime.NakamaModule
}

// NewNakamaTableAdapter creates a new table adapter.
func NewNakamaTableAdapter(nk runtime.NakamaModule) *NakamaTableAdapter {
	return &NakamaTableAdapter{nk: nk}
}

// GetSession loads the round row and its storage version for a user.
// Returns (nil, "", nil) when the user never placed a bet.
func (a *NakamaTableAdapter) GetSession(ctx context.Context, userID string) (*domain.Session, string, error) {
	objects, err := a.nk.StorageRead(ctx, []*runtime.StorageRead{
		{
			Collection: sessionCollection,
			Key:        sessionKey,
			UserID:     userID,
		},
	})
	if err != nil {
		return nil, "", fmt.Errorf("failed to read session: %w", err)
	}
	if len(objects) == 0 {
		return nil, "", nil
	}

	var session domain.Session
	if err := json.Unmarshal([]byte(objects[0].Value), &session); err != nil {
		return nil, "", fmt.Errorf("failed to unmarshal session: %w", err)
	}
	return &session, objects[0].Version, nil
}

// Commit saves the session and applies the chip change in one atomic host
// update. Returns the chip balance after the change; when write.Change is
// zero no wallet entry is touched and the returned balance is zero.
func (a *NakamaTableAdapter) Commit(ctx context.Context, userID string, write ports.SessionWrite) (int64, error) {
	if write.Session == nil {
		return 0, fmt.Errorf("session is required")
	}

	value, err := json.Marshal(write.Session)
	if err != nil {
		return 0, fmt.Errorf("failed to marshal session: %w", err)
	}

	storageWrites := []*runtime.StorageWrite{
		{
			Collection:      sessionCollection,
			Key:             sessionKey,
			UserID:          userID,
			Value:           string(value),
			Version:         write.Version,
			PermissionRead:  runtime.STORAGE_PERMISSION_OWNER_READ,
			PermissionWrite: runtime.STORAGE_PERMISSION_NO_WRITE,
		},
	}

	var walletUpdates []*runtime.WalletUpdate
	if write.Change != 0 {
		walletUpdates = append(walletUpdates, &runtime.WalletUpdate{
			UserID:    userID,
			Changeset: map[string]int64{CurrencyKey: write.Change},
			Metadata:  write.Metadata,
		})
	}

	_, walletResults, err := a.nk.MultiUpdate(ctx, nil, storageWrites, nil, walletUpdates, true)
	if err != nil {
		if errors.Is(err, runtime.ErrStorageRejectedVersion) {
			return 0, ports.ErrVersionConflict
		}
		return 0, fmt.Errorf("failed to commit session for user %s: %w", userID, err)
	}

	if len(walletResults) > 0 {
		return walletResults[0].Updated[CurrencyKey], nil
	}
	return 0, nil
}

var _ ports.TablePort = (*NakamaTableAdapter)(nil)
