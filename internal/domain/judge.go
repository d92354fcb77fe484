package domain

import "fmt"

// VerdictKind classifies how a completed round ended.
type VerdictKind int

const (
	DealerBusted VerdictKind = iota
	PlayerBusted
	DealerWin
	PlayerWin
	PlayerBlackjackWin
	Push
)

// Verdict is the judged outcome of a round together with the final scores.
type Verdict struct {
	Kind   VerdictKind
	Dealer int
	Player int
}

// GameResult is the payout class of a verdict.
type GameResult string

const (
	ResultWin  GameResult = "win"
	ResultLose GameResult = "lose"
	ResultDraw GameResult = "draw"
)

// Judge classifies a pair of completed hands. Rules are checked in order;
// the first match wins:
//
//  1. both are two-card 21s            -> push
//  2. player two-card 21               -> player blackjack win
//  3. dealer two-card 21               -> dealer win
//  4. player over 21                   -> player busted
//  5. dealer over 21                   -> dealer busted
//  6. higher score wins, equal pushes
//
// Scores and hand lengths fully partition the outcome space, so Judge is
// total over any pair of hands.
func Judge(dealer, player Hand) Verdict {
	d, p := dealer.Score(), player.Score()
	dealerNatural := len(dealer) == 2 && d == Blackjack
	playerNatural := len(player) == 2 && p == Blackjack

	switch {
	case dealerNatural && playerNatural:
		return Verdict{Kind: Push, Dealer: d, Player: p}
	case playerNatural:
		return Verdict{Kind: PlayerBlackjackWin, Dealer: d, Player: p}
	case dealerNatural:
		return Verdict{Kind: DealerWin, Dealer: d, Player: p}
	case p > Blackjack:
		return Verdict{Kind: PlayerBusted, Dealer: d, Player: p}
	case d > Blackjack:
		return Verdict{Kind: DealerBusted, Dealer: d, Player: p}
	case d < p:
		return Verdict{Kind: PlayerWin, Dealer: d, Player: p}
	case d > p:
		return Verdict{Kind: DealerWin, Dealer: d, Player: p}
	default:
		return Verdict{Kind: Push, Dealer: d, Player: p}
	}
}

// Result maps a verdict onto its payout class. A kind outside the known set
// is a logic defect and must abort the operation, never default silently.
func (v Verdict) Result() (GameResult, error) {
	switch v.Kind {
	case DealerBusted, PlayerWin, PlayerBlackjackWin:
		return ResultWin, nil
	case PlayerBusted, DealerWin:
		return ResultLose, nil
	case Push:
		return ResultDraw, nil
	default:
		return "", fmt.Errorf("unhandled verdict kind %d", v.Kind)
	}
}

func (v Verdict) String() string {
	switch v.Kind {
	case DealerBusted:
		return fmt.Sprintf("dealer_busted(%d)", v.Dealer)
	case PlayerBusted:
		return fmt.Sprintf("player_busted(%d)", v.Player)
	case DealerWin:
		return fmt.Sprintf("dealer_win(%d,%d)", v.Dealer, v.Player)
	case PlayerWin:
		return fmt.Sprintf("player_win(%d,%d)", v.Dealer, v.Player)
	case PlayerBlackjackWin:
		return fmt.Sprintf("player_blackjack_win(%d,%d)", v.Dealer, v.Player)
	case Push:
		return fmt.Sprintf("draw(%d,%d)", v.Dealer, v.Player)
	default:
		return fmt.Sprintf("verdict(%d)", v.Kind)
	}
}
