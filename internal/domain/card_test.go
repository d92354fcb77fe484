package domain

import "testing"

func TestScoreKnownHands(t *testing.T) {
	cases := []struct {
		name string
		hand Hand
		want int
	}{
		{"empty", Hand{}, 0},
		{"single ace", Hand{Ace}, 11},
		{"three aces", Hand{Ace, Ace, Ace}, 13},
		{"natural", Hand{Ace, King}, 21},
		{"hard ace", Hand{Ace, Eight, Four}, 13},
		{"no aces faces", Hand{King, Queen, Jack}, 30},
		{"pips", Hand{Two, Three, Four, Five}, 14},
		{"ten ace", Hand{Ten, Ace}, 21},
		{"soft seventeen", Hand{Ace, Six}, 17},
		{"ace demoted", Hand{Ten, Nine, Ace}, 20},
		{"two aces", Hand{Ace, Ace}, 12},
	}
	for _, tc := range cases {
		if got := tc.hand.Score(); got != tc.want {
			t.Errorf("%s: score = %d, want %d", tc.name, got, tc.want)
		}
	}
}

func TestScoreIgnoresOrder(t *testing.T) {
	orderings := []Hand{
		{Ace, Eight, Four},
		{Eight, Ace, Four},
		{Four, Eight, Ace},
		{Eight, Four, Ace},
	}
	for _, h := range orderings {
		if got := h.Score(); got != 13 {
			t.Errorf("score(%v) = %d, want 13", h, got)
		}
	}
}

func TestScoreWithoutAcesIsFaceSum(t *testing.T) {
	hand := Hand{Two, Seven, Ten, King}
	if got := hand.Score(); got != 2+7+10+10 {
		t.Errorf("score = %d, want %d", got, 29)
	}
}

func TestScoreDoesNotMutateHand(t *testing.T) {
	hand := Hand{King, Ace, Two}
	_ = hand.Score()
	if hand[0] != King || hand[1] != Ace || hand[2] != Two {
		t.Errorf("hand reordered by Score: %v", hand)
	}
}

func TestBusted(t *testing.T) {
	if (Hand{Ten, Ten, Two}).Busted() != true {
		t.Error("22 should bust")
	}
	if (Hand{Ten, Ten, Ace}).Busted() {
		t.Error("21 should not bust")
	}
}

func TestRankStrings(t *testing.T) {
	hand := Hand{Two, Ten, Jack, Queen, King, Ace}
	want := []string{"2", "10", "J", "Q", "K", "A"}
	got := hand.Strings()
	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("card %d = %q, want %q", i, got[i], want[i])
		}
	}
}
