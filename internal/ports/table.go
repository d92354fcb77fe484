package ports

import (
	"context"
	"errors"

	"blackjack/internal/domain"
)

// VersionCreate requires the write to create the record; it fails when a
// session row already exists for the key.
const VersionCreate = "*"

// ErrVersionConflict is returned when a committed session version no longer
// matches the stored one, i.e. the row changed between read and write.
var ErrVersionConflict = errors.New("session version conflict")

// SessionWrite couples a session save with an optional chip balance change.
// Implementations must apply both or neither.
type SessionWrite struct {
	Session *domain.Session
	// Version is the session version read before this invocation, or
	// VersionCreate when no row existed. Guards against blind overwrites.
	Version string
	// Change is the chip delta to apply alongside the save. Negative for
	// escrow debits, positive for payouts, zero for hand-only updates.
	Change   int64
	Metadata map[string]interface{}
}

// TablePort persists per-account round state and settles chips against it.
type TablePort interface {
	// GetSession loads the session row for a user together with its storage
	// version. Returns (nil, "", nil) when the user has no row yet.
	GetSession(ctx context.Context, userID string) (*domain.Session, string, error)

	// Commit atomically saves the session and applies the wallet change.
	// Returns the chip balance after the change. A stale Version fails the
	// whole commit with ErrVersionConflict and no effect.
	Commit(ctx context.Context, userID string, write SessionWrite) (int64, error)
}
