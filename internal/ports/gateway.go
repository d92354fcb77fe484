package ports

import "context"

// GatewayLedgerPort records external chip transfers exactly once.
type GatewayLedgerPort interface {
	// RecordDepositOnce credits amount and stores a marker for txID in one
	// atomic update. Returns applied=false when txID was already recorded.
	RecordDepositOnce(ctx context.Context, userID, txID string, amount int64, metadata map[string]interface{}) (int64, bool, error)
}
