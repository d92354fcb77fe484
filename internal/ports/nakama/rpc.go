package nakama

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"blackjack/internal/app"
	"blackjack/internal/config"
	"blackjack/internal/ports"

	"github.com/heroiclabs/nakama-common/runtime"
)

// newService wires the blackjack use-cases onto the Nakama adapters for a
// single invocation.
func newService(nk runtime.NakamaModule) *app.Service {
	cfg := config.GetGameConfig()
	return app.NewService(
		NewNakamaEconomyAdapter(nk),
		NewNakamaTableAdapter(nk),
		NewNakamaGatewayLedgerAdapter(nk),
		nil,
		cfg.MaxBet,
	)
}

func newGatewayService() *app.GatewayService {
	cfg := config.GetGameConfig()
	return app.NewGatewayService(cfg.Gateway.Secret, cfg.Gateway.Issuer)
}

func callerID(ctx context.Context) (string, error) {
	userID, ok := ctx.Value(runtime.RUNTIME_CTX_USER_ID).(string)
	if !ok || userID == "" {
		return "", runtime.NewError("no user session", codePermissionDenied)
	}
	return userID, nil
}

// toRuntimeError maps app errors onto gRPC-style codes for clients.
func toRuntimeError(err error) error {
	var short *app.InsufficientBalanceError
	var wrongDD *app.WrongDoubleDownAmountError

	switch {
	case errors.Is(err, app.ErrInvalidAmount),
		errors.Is(err, app.ErrBetTooLarge),
		errors.As(err, &wrongDD):
		return runtime.NewError(err.Error(), codeInvalidArgument)
	case errors.As(err, &short),
		errors.Is(err, app.ErrSessionAlreadyActive),
		errors.Is(err, app.ErrDoubleDownNotEligible),
		errors.Is(err, app.ErrWithdrawDuringRound),
		errors.Is(err, app.ErrDepositReplayed):
		return runtime.NewError(err.Error(), codeFailedPrecondition)
	case errors.Is(err, app.ErrNoActiveSession),
		errors.Is(err, ports.ErrNoAccount):
		return runtime.NewError(err.Error(), codeNotFound)
	case errors.Is(err, app.ErrUnauthorized):
		return runtime.NewError(err.Error(), codePermissionDenied)
	default:
		return runtime.NewError(err.Error(), codeInternal)
	}
}

func marshalResponse(logger runtime.Logger, v interface{}) (string, error) {
	out, err := json.Marshal(v)
	if err != nil {
		logger.Error("Failed to marshal RPC response: %v", err)
		return "", runtime.NewError("failed to marshal response", codeInternal)
	}
	return string(out), nil
}

type betRequest struct {
	Amount int64 `json:"amount"`
}

type betResponse struct {
	Action       string   `json:"action"`
	RoundID      string   `json:"round_id"`
	BetAmount    int64    `json:"bet_amount"`
	BalanceAfter int64    `json:"balance_after"`
	DealerCards  []string `json:"dealer_cards"`
	PlayerCards  []string `json:"player_cards"`
}

// RpcBet stakes chips from the caller's balance and deals a new round.
func RpcBet(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, payload string) (string, error) {
	userID, err := callerID(ctx)
	if err != nil {
		return "", err
	}

	var req betRequest
	if err := json.Unmarshal([]byte(payload), &req); err != nil {
		return "", runtime.NewError("invalid bet payload", codeInvalidArgument)
	}

	result, err := newService(nk).Bet(ctx, userID, req.Amount)
	if err != nil {
		logger.Error("RpcBet [User:%s]: %v", userID, err)
		return "", toRuntimeError(err)
	}

	logger.Info("RpcBet [User:%s]: round %s staked %d", userID, result.RoundID, result.BetAmount)
	return marshalResponse(logger, betResponse{
		Action:       "bet",
		RoundID:      result.RoundID,
		BetAmount:    result.BetAmount,
		BalanceAfter: result.BalanceAfter,
		DealerCards:  result.DealerHand.Strings(),
		PlayerCards:  result.PlayerHand.Strings(),
	})
}

type actionRequest struct {
	Command string `json:"command"`
	Amount  int64  `json:"amount,omitempty"`
}

type actionResponse struct {
	Action        string   `json:"action"`
	State         string   `json:"state"`
	Draw          string   `json:"draw,omitempty"`
	Result        string   `json:"result,omitempty"`
	Judge         string   `json:"judge,omitempty"`
	BalanceChange int64    `json:"balance_change"`
	DealerCards   []string `json:"dealer_cards"`
	PlayerCards   []string `json:"player_cards"`
}

// RpcAction plays one command against the caller's round in progress.
func RpcAction(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, payload string) (string, error) {
	userID, err := callerID(ctx)
	if err != nil {
		return "", err
	}

	var req actionRequest
	if err := json.Unmarshal([]byte(payload), &req); err != nil {
		return "", runtime.NewError("invalid action payload", codeInvalidArgument)
	}

	var cmd app.Command
	switch app.CommandKind(req.Command) {
	case app.CommandHit:
		cmd = app.Command{Kind: app.CommandHit}
	case app.CommandStand:
		cmd = app.Command{Kind: app.CommandStand}
	case app.CommandDoubleDown:
		cmd = app.Command{Kind: app.CommandDoubleDown, Amount: req.Amount}
	default:
		return "", runtime.NewError("unknown command", codeInvalidArgument)
	}

	result, err := newService(nk).Action(ctx, userID, cmd)
	if err != nil {
		logger.Error("RpcAction [User:%s]: %s failed: %v", userID, req.Command, err)
		return "", toRuntimeError(err)
	}

	resp := actionResponse{
		Action:      string(result.Action),
		State:       result.State,
		DealerCards: result.DealerHand.Strings(),
		PlayerCards: result.PlayerHand.Strings(),
	}
	if result.Draw != nil {
		resp.Draw = result.Draw.String()
	}
	if result.State == app.StateEnd {
		resp.Result = string(result.Result)
		resp.Judge = result.Verdict.String()
		resp.BalanceChange = result.BalanceChange
		logger.Info("RpcAction [User:%s]: round ended %s (%s)", userID, result.Result, result.Verdict)
	}
	return marshalResponse(logger, resp)
}

type depositRequest struct {
	Token string `json:"token"`
}

type depositResponse struct {
	Action       string `json:"action"`
	TxID         string `json:"tx_id"`
	Amount       int64  `json:"amount"`
	BalanceAfter int64  `json:"balance_after"`
}

// RpcDeposit credits chips from a signed gateway transfer notification.
// Called server-to-server by the token gateway; the beneficiary account is
// named inside the verified token, not by the transport session.
func RpcDeposit(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, payload string) (string, error) {
	var req depositRequest
	if err := json.Unmarshal([]byte(payload), &req); err != nil {
		return "", runtime.NewError("invalid deposit payload", codeInvalidArgument)
	}

	claim, err := newGatewayService().VerifyDeposit(req.Token)
	if err != nil {
		logger.Warn("RpcDeposit: rejected notification: %v", err)
		return "", toRuntimeError(err)
	}

	balanceAfter, err := newService(nk).Deposit(ctx, claim.UserID, claim.TxID, claim.Amount)
	if err != nil {
		logger.Error("RpcDeposit [User:%s]: tx %s failed: %v", claim.UserID, claim.TxID, err)
		return "", toRuntimeError(err)
	}

	logger.Info("RpcDeposit [User:%s]: credited %d (tx %s)", claim.UserID, claim.Amount, claim.TxID)
	return marshalResponse(logger, depositResponse{
		Action:       "deposit",
		TxID:         claim.TxID,
		Amount:       claim.Amount,
		BalanceAfter: balanceAfter,
	})
}

type withdrawRequest struct {
	Amount int64 `json:"amount"`
}

type withdrawResponse struct {
	Action       string `json:"action"`
	Amount       int64  `json:"amount"`
	BalanceAfter int64  `json:"balance_after"`
	Voucher      string `json:"voucher"`
}

// RpcWithdraw debits chips from the caller's balance and returns a signed
// voucher the gateway pays tokens out against.
func RpcWithdraw(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, payload string) (string, error) {
	userID, err := callerID(ctx)
	if err != nil {
		return "", err
	}

	var req withdrawRequest
	if err := json.Unmarshal([]byte(payload), &req); err != nil {
		return "", runtime.NewError("invalid withdraw payload", codeInvalidArgument)
	}

	balanceAfter, err := newService(nk).Withdraw(ctx, userID, req.Amount)
	if err != nil {
		logger.Error("RpcWithdraw [User:%s]: %v", userID, err)
		return "", toRuntimeError(err)
	}

	voucher, err := newGatewayService().SignWithdrawal(userID, req.Amount)
	if err != nil {
		// The debit is already committed; the voucher can be re-minted by
		// support tooling, so surface the failure loudly.
		logger.Error("RpcWithdraw [User:%s]: debited %d but voucher signing failed: %v", userID, req.Amount, err)
		return "", runtime.NewError("failed to sign withdrawal voucher", codeInternal)
	}

	logger.Info("RpcWithdraw [User:%s]: debited %d", userID, req.Amount)
	return marshalResponse(logger, withdrawResponse{
		Action:       "withdraw",
		Amount:       req.Amount,
		BalanceAfter: balanceAfter,
		Voucher:      voucher,
	})
}

type accountRequest struct {
	Account string `json:"account,omitempty"`
}

type depositQueryResponse struct {
	Account string `json:"account"`
	Balance int64  `json:"balance"`
}

// RpcGetDeposit reports the chip balance for an account. The account field
// defaults to the caller.
func RpcGetDeposit(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, payload string) (string, error) {
	account, err := resolveAccount(ctx, payload)
	if err != nil {
		return "", err
	}

	balance, err := newService(nk).GetDeposit(ctx, account)
	if err != nil {
		logger.Error("RpcGetDeposit [User:%s]: %v", account, err)
		return "", toRuntimeError(err)
	}

	return marshalResponse(logger, depositQueryResponse{
		Account: account,
		Balance: balance,
	})
}

type gameStateResponse struct {
	RoundID    string   `json:"round_id"`
	InProgress bool     `json:"in_progress"`
	TotalStake int64    `json:"total_stake"`
	DealerHand []string `json:"dealer_hand"`
	PlayerHand []string `json:"player_hand"`
}

// RpcGetGameState reports the current or last-resolved round for an
// account. The account field defaults to the caller.
func RpcGetGameState(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, payload string) (string, error) {
	account, err := resolveAccount(ctx, payload)
	if err != nil {
		return "", err
	}

	session, err := newService(nk).GetGameState(ctx, account)
	if err != nil {
		logger.Error("RpcGetGameState [User:%s]: %v", account, err)
		return "", toRuntimeError(err)
	}

	return marshalResponse(logger, gameStateResponse{
		RoundID:    session.RoundID,
		InProgress: session.InProgress,
		TotalStake: session.TotalStake,
		DealerHand: session.DealerHand.Strings(),
		PlayerHand: session.PlayerHand.Strings(),
	})
}

func resolveAccount(ctx context.Context, payload string) (string, error) {
	var req accountRequest
	if payload != "" {
		if err := json.Unmarshal([]byte(payload), &req); err != nil {
			return "", runtime.NewError("invalid query payload", codeInvalidArgument)
		}
	}
	if req.Account != "" {
		return req.Account, nil
	}
	return callerID(ctx)
}

// RegisterRPCs registers all blackjack RPC handlers.
func RegisterRPCs(initializer runtime.Initializer) error {
	handlers := map[string]func(context.Context, runtime.Logger, *sql.DB, runtime.NakamaModule, string) (string, error){
		RpcIdBet:          RpcBet,
		RpcIdAction:       RpcAction,
		RpcIdDeposit:      RpcDeposit,
		RpcIdWithdraw:     RpcWithdraw,
		RpcIdGetDeposit:   RpcGetDeposit,
		RpcIdGetGameState: RpcGetGameState,
	}
	for id, handler := range handlers {
		if err := initializer.RegisterRpc(id, handler); err != nil {
			return err
		}
	}
	return nil
}
