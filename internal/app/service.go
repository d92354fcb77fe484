package app

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"blackjack/internal/domain"
	"blackjack/internal/ports"

	"github.com/google/uuid"
)

// CommandKind identifies a player action within a round.
type CommandKind string

const (
	CommandHit        CommandKind = "hit"
	CommandStand      CommandKind = "stand"
	CommandDoubleDown CommandKind = "double_down"
)

// Command is a player action. Amount is only meaningful for double down,
// where it must equal the round's stake.
type Command struct {
	Kind   CommandKind
	Amount int64
}

// Round states reported to callers after an action.
const (
	StateContinue = "continue"
	StateEnd      = "end"
)

// BetResult reports the opening deal of a new round.
type BetResult struct {
	RoundID      string
	BetAmount    int64
	BalanceAfter int64
	DealerHand   domain.Hand
	PlayerHand   domain.Hand
}

// ActionResult reports the effect of a player action. Result, Verdict and
// BalanceChange are only set when State is StateEnd.
type ActionResult struct {
	Action        CommandKind
	State         string
	Draw          *domain.Rank
	Result        domain.GameResult
	Verdict       domain.Verdict
	BalanceChange int64
	DealerHand    domain.Hand
	PlayerHand    domain.Hand
}

// Service contains the blackjack use-cases: the per-account session state
// machine coupled to the chip ledger. One invocation per call; every
// operation either fully commits its ledger and session effects or none.
type Service struct {
	economy   ports.EconomyPort
	table     ports.TablePort
	transfers ports.GatewayLedgerPort
	rng       *rand.Rand
	maxBet    int64
}

// NewService constructs a Service with the provided collaborators.
// rng may be nil to use a time-seeded default; maxBet 0 disables the cap.
func NewService(economy ports.EconomyPort, table ports.TablePort, transfers ports.GatewayLedgerPort, rng *rand.Rand, maxBet int64) *Service {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Service{
		economy:   economy,
		table:     table,
		transfers: transfers,
		rng:       rng,
		maxBet:    maxBet,
	}
}

// Bet escrows the stake and deals the opening hands, starting a new round.
// Valid only when no round is in progress for the account. The escrow
// debit and the session create commit in one atomic host update.
func (s *Service) Bet(ctx context.Context, userID string, amount int64) (*BetResult, error) {
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}
	if s.maxBet > 0 && amount > s.maxBet {
		return nil, ErrBetTooLarge
	}

	session, version, err := s.table.GetSession(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}
	if session != nil && session.InProgress {
		return nil, ErrSessionAlreadyActive
	}
	if version == "" {
		version = ports.VersionCreate
	}

	balance, err := s.economy.GetBalance(ctx, userID)
	if err != nil {
		return nil, err
	}
	if balance < amount {
		return nil, &InsufficientBalanceError{Balance: balance}
	}

	dealerHand, playerHand := domain.FirstDeal(s.rng)
	next := &domain.Session{
		InProgress: true,
		TotalStake: amount,
		DealerHand: dealerHand,
		PlayerHand: playerHand,
		RoundID:    uuid.NewString(),
	}

	balanceAfter, err := s.table.Commit(ctx, userID, ports.SessionWrite{
		Session: next,
		Version: version,
		Change:  -amount,
		Metadata: map[string]interface{}{
			"round_id": next.RoundID,
			"reason":   "bet_escrow",
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to commit bet: %w", err)
	}

	return &BetResult{
		RoundID:      next.RoundID,
		BetAmount:    amount,
		BalanceAfter: balanceAfter,
		DealerHand:   dealerHand,
		PlayerHand:   playerHand,
	}, nil
}

// Action applies a player command to the account's round in progress.
// Hit may leave the round open; stand and double down always resolve it,
// as does a hit that busts.
func (s *Service) Action(ctx context.Context, userID string, cmd Command) (*ActionResult, error) {
	session, version, err := s.table.GetSession(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}
	if session == nil || !session.InProgress {
		return nil, ErrNoActiveSession
	}

	// extraDebit is the double-down escrow, netted into the terminal commit
	// so the debit and the payout apply together or not at all.
	var extraDebit int64

	switch cmd.Kind {
	case CommandHit:
		draw := domain.DrawOne(s.rng)
		session.PlayerHand = append(session.PlayerHand, draw)

		if !session.PlayerHand.Busted() {
			if _, err := s.table.Commit(ctx, userID, ports.SessionWrite{
				Session: session,
				Version: version,
				Metadata: map[string]interface{}{
					"round_id": session.RoundID,
					"reason":   "hit",
				},
			}); err != nil {
				return nil, fmt.Errorf("failed to commit hit: %w", err)
			}
			return &ActionResult{
				Action:     CommandHit,
				State:      StateContinue,
				Draw:       &draw,
				DealerHand: session.DealerHand,
				PlayerHand: session.PlayerHand,
			}, nil
		}

	case CommandDoubleDown:
		if cmd.Amount != session.TotalStake {
			return nil, &WrongDoubleDownAmountError{Expected: session.TotalStake}
		}
		if len(session.PlayerHand) != 2 {
			return nil, ErrDoubleDownNotEligible
		}

		balance, err := s.economy.GetBalance(ctx, userID)
		if err != nil {
			return nil, err
		}
		if balance < cmd.Amount {
			return nil, &InsufficientBalanceError{Balance: balance}
		}

		extraDebit = cmd.Amount
		session.TotalStake += cmd.Amount
		session.PlayerHand = append(session.PlayerHand, domain.DrawOne(s.rng))

	case CommandStand:
		// No hand mutation; the round closes as dealt.

	default:
		return nil, fmt.Errorf("%w: unknown command %q", ErrInternalInvariant, cmd.Kind)
	}

	return s.resolve(ctx, userID, session, version, cmd.Kind, extraDebit)
}

// resolve closes the round: the dealer plays out unless the player already
// busted, the hands are judged, and the payout plus session update commit
// in one atomic host update.
func (s *Service) resolve(ctx context.Context, userID string, session *domain.Session, version string, action CommandKind, extraDebit int64) (*ActionResult, error) {
	if !session.PlayerHand.Busted() {
		session.DealerHand = domain.DealerPlay(session.DealerHand, s.rng)
	}

	verdict := domain.Judge(session.DealerHand, session.PlayerHand)
	result, err := verdict.Result()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInternalInvariant, err)
	}

	var payout int64
	switch result {
	case domain.ResultWin:
		payout = session.TotalStake * 2
	case domain.ResultDraw:
		payout = session.TotalStake
	case domain.ResultLose:
		payout = 0
	default:
		return nil, fmt.Errorf("%w: unhandled result %q", ErrInternalInvariant, result)
	}

	session.InProgress = false
	_, err = s.table.Commit(ctx, userID, ports.SessionWrite{
		Session: session,
		Version: version,
		Change:  payout - extraDebit,
		Metadata: map[string]interface{}{
			"round_id": session.RoundID,
			"reason":   "resolution",
			"result":   string(result),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to commit resolution: %w", err)
	}

	return &ActionResult{
		Action:        action,
		State:         StateEnd,
		Result:        result,
		Verdict:       verdict,
		BalanceChange: payout,
		DealerHand:    session.DealerHand,
		PlayerHand:    session.PlayerHand,
	}, nil
}

// Deposit credits chips notified by the token gateway. Each gateway
// transfer id is applied at most once.
func (s *Service) Deposit(ctx context.Context, userID, txID string, amount int64) (int64, error) {
	if amount <= 0 {
		return 0, ErrInvalidAmount
	}
	if txID == "" {
		return 0, fmt.Errorf("deposit transfer id is required")
	}

	balanceAfter, applied, err := s.transfers.RecordDepositOnce(ctx, userID, txID, amount, map[string]interface{}{
		"reason": "gateway_deposit",
		"tx_id":  txID,
	})
	if err != nil {
		return 0, fmt.Errorf("failed to record deposit: %w", err)
	}
	if !applied {
		return 0, ErrDepositReplayed
	}
	return balanceAfter, nil
}

// Withdraw debits chips for payout through the token gateway. Blocked
// while a round is in progress, since the escrowed stake is not the
// player's to move until resolution.
func (s *Service) Withdraw(ctx context.Context, userID string, amount int64) (int64, error) {
	if amount <= 0 {
		return 0, ErrInvalidAmount
	}

	session, _, err := s.table.GetSession(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to load session: %w", err)
	}
	if session != nil && session.InProgress {
		return 0, ErrWithdrawDuringRound
	}

	balance, err := s.economy.GetBalance(ctx, userID)
	if err != nil {
		return 0, err
	}
	if balance < amount {
		return 0, &InsufficientBalanceError{Balance: balance}
	}

	balanceAfter, err := s.economy.Debit(ctx, userID, amount, map[string]interface{}{
		"reason": "gateway_withdrawal",
	})
	if err != nil {
		return 0, fmt.Errorf("failed to debit withdrawal: %w", err)
	}
	return balanceAfter, nil
}

// GetDeposit returns the chip balance for an account. Accounts that were
// never funded report zero.
func (s *Service) GetDeposit(ctx context.Context, userID string) (int64, error) {
	balance, err := s.economy.GetBalance(ctx, userID)
	if errors.Is(err, ports.ErrNoAccount) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return balance, nil
}

// GetGameState returns the current or last-resolved round for an account.
func (s *Service) GetGameState(ctx context.Context, userID string) (*domain.Session, error) {
	session, _, err := s.table.GetSession(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}
	if session == nil {
		return nil, ErrNoActiveSession
	}
	return session, nil
}
