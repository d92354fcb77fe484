package ports

import "context"

// StartingStackPort grants the starting chip stack at most once per user.
type StartingStackPort interface {
	// GrantStartingStackOnce attempts to credit the one-time starting
	// stack. Returns granted=false when the stack was already granted.
	GrantStartingStackOnce(ctx context.Context, userID string, amount int64, metadata map[string]interface{}) (bool, error)
}
