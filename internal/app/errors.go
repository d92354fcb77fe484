package app

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidAmount rejects zero or negative bet amounts.
	ErrInvalidAmount = errors.New("bet amount must be positive")
	// ErrBetTooLarge rejects bets over the configured table cap.
	ErrBetTooLarge = errors.New("bet amount exceeds table limit")
	// ErrNoActiveSession rejects actions issued before any bet.
	ErrNoActiveSession = errors.New("no round in progress")
	// ErrSessionAlreadyActive rejects a bet while a round is in progress.
	ErrSessionAlreadyActive = errors.New("round already in progress")
	// ErrDoubleDownNotEligible rejects double down after a hit.
	ErrDoubleDownNotEligible = errors.New("double down requires a two-card hand")
	// ErrWithdrawDuringRound rejects withdrawals while a stake is escrowed.
	ErrWithdrawDuringRound = errors.New("cannot withdraw while a round is in progress")
	// ErrUnauthorized rejects gateway messages that fail identity checks.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrDepositReplayed rejects a deposit notification seen before.
	ErrDepositReplayed = errors.New("deposit already processed")
	// ErrInternalInvariant marks unreachable engine states. It indicates a
	// logic defect; the operation aborts with no writes applied.
	ErrInternalInvariant = errors.New("internal invariant violated")
)

// InsufficientBalanceError reports an escrow debit exceeding the balance.
type InsufficientBalanceError struct {
	Balance int64
}

func (e *InsufficientBalanceError) Error() string {
	return fmt.Sprintf("balance is too low: %d", e.Balance)
}

// WrongDoubleDownAmountError reports a double down whose amount does not
// match the session's stake.
type WrongDoubleDownAmountError struct {
	Expected int64
}

func (e *WrongDoubleDownAmountError) Error() string {
	return fmt.Sprintf("double down amount must equal the bet: %d", e.Expected)
}
