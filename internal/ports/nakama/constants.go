package nakama

// Nakama RPC ids exposed by the blackjack module.
const (
	// RpcIdBet stakes chips and deals the opening hands.
	RpcIdBet = "bet"
	// RpcIdAction plays hit, stand or double down on the round in progress.
	RpcIdAction = "action"
	// RpcIdDeposit credits chips from a signed gateway notification.
	RpcIdDeposit = "deposit"
	// RpcIdWithdraw debits chips and mints a gateway withdrawal voucher.
	RpcIdWithdraw = "withdraw"
	// RpcIdGetDeposit reports an account's chip balance.
	RpcIdGetDeposit = "get_deposit"
	// RpcIdGetGameState reports an account's current or last-resolved round.
	RpcIdGetGameState = "get_game_state"
)

// gRPC-style status codes for runtime.NewError.
const (
	codeInvalidArgument    = 3
	codeNotFound           = 5
	codePermissionDenied   = 7
	codeFailedPrecondition = 9
	codeInternal           = 13
)
