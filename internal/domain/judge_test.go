package domain

import "testing"

func TestJudgeDecisionOrder(t *testing.T) {
	cases := []struct {
		name   string
		dealer Hand
		player Hand
		want   Verdict
	}{
		{"both naturals push", Hand{Ace, King}, Hand{Ace, Queen}, Verdict{Push, 21, 21}},
		{"player blackjack", Hand{Ten, Seven}, Hand{Ace, Jack}, Verdict{PlayerBlackjackWin, 17, 21}},
		{"dealer natural beats plain 21", Hand{Ace, King}, Hand{Seven, Seven, Seven}, Verdict{DealerWin, 21, 21}},
		{"player busted", Hand{Ten, Seven}, Hand{Ten, Eight, Five}, Verdict{PlayerBusted, 17, 23}},
		{"dealer busted", Hand{Ten, Five, King}, Hand{Ten, Jack}, Verdict{DealerBusted, 25, 20}},
		{"both busted player loses", Hand{Ten, Five, King}, Hand{Ten, Eight, Five}, Verdict{PlayerBusted, 25, 23}},
		{"player higher", Hand{Ten, Seven}, Hand{Ten, Nine}, Verdict{PlayerWin, 17, 19}},
		{"dealer higher", Hand{Ten, Nine}, Hand{Ten, Seven}, Verdict{DealerWin, 19, 17}},
		{"plain draw", Hand{Ten, Ten}, Hand{Ten, Jack}, Verdict{Push, 20, 20}},
		{"three card 21 is not blackjack", Hand{Ten, Ten}, Hand{Seven, Seven, Seven}, Verdict{PlayerWin, 20, 21}},
	}
	for _, tc := range cases {
		if got := Judge(tc.dealer, tc.player); got != tc.want {
			t.Errorf("%s: judge = %+v, want %+v", tc.name, got, tc.want)
		}
	}
}

func TestVerdictResult(t *testing.T) {
	cases := []struct {
		kind VerdictKind
		want GameResult
	}{
		{DealerBusted, ResultWin},
		{PlayerWin, ResultWin},
		{PlayerBlackjackWin, ResultWin},
		{PlayerBusted, ResultLose},
		{DealerWin, ResultLose},
		{Push, ResultDraw},
	}
	for _, tc := range cases {
		got, err := Verdict{Kind: tc.kind}.Result()
		if err != nil {
			t.Fatalf("kind %d: unexpected error: %v", tc.kind, err)
		}
		if got != tc.want {
			t.Errorf("kind %d: result = %q, want %q", tc.kind, got, tc.want)
		}
	}
}

func TestVerdictResultRejectsUnknownKind(t *testing.T) {
	if _, err := (Verdict{Kind: VerdictKind(99)}).Result(); err == nil {
		t.Fatal("unknown verdict kind must fail, not default")
	}
}

func TestVerdictString(t *testing.T) {
	v := Judge(Hand{Ten, Seven}, Hand{Ace, Jack})
	if got := v.String(); got != "player_blackjack_win(17,21)" {
		t.Errorf("judge string = %q", got)
	}
	v = Judge(Hand{Ten, Ten}, Hand{Ten, Jack})
	if got := v.String(); got != "draw(20,20)" {
		t.Errorf("judge string = %q", got)
	}
}
