package domain

import "sort"

// Rank is a single card rank. Suits carry no weight in blackjack scoring,
// so a card is just its rank.
type Rank int

const (
	Two Rank = iota
	Three
	Four
	Five
	Six
	Seven
	Eight
	Nine
	Ten
	Jack
	Queen
	King
	Ace
)

// RankCount is the size of the rank domain.
const RankCount = 13

// Blackjack is the score an unbeatable hand totals.
const Blackjack = 21

var rankNames = [RankCount]string{
	"2", "3", "4", "5", "6", "7", "8", "9", "10", "J", "Q", "K", "A",
}

func (r Rank) String() string {
	if r < Two || r > Ace {
		return "?"
	}
	return rankNames[r]
}

// Hand is an ordered sequence of ranks. Order reflects deal order and is
// preserved for display; scoring re-sorts internally.
type Hand []Rank

// Score totals the hand. Cards are evaluated in ascending rank order so
// every Ace is valued against the total of all other cards: 11 when that
// stays within 21, otherwise 1.
func (h Hand) Score() int {
	sorted := make(Hand, len(h))
	copy(sorted, h)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	score := 0
	for _, r := range sorted {
		switch {
		case r >= Two && r <= Ten:
			score += int(r) + 2
		case r == Jack || r == Queen || r == King:
			score += 10
		case r == Ace:
			if score+11 <= Blackjack {
				score += 11
			} else {
				score++
			}
		}
	}
	return score
}

// Busted reports whether the hand scores over 21.
func (h Hand) Busted() bool {
	return h.Score() > Blackjack
}

// Strings renders each card for response payloads.
func (h Hand) Strings() []string {
	out := make([]string, 0, len(h))
	for _, r := range h {
		out = append(out, r.String())
	}
	return out
}
