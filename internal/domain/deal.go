package domain

import "math/rand"

// DealerStand is the score at which the dealer stops drawing. The dealer
// stands on any 17, soft included.
const DealerStand = 17

// DrawOne samples one rank uniformly. Draws are independent (infinite
// shoe): no removal, no reshuffle state.
func DrawOne(rng *rand.Rand) Rank {
	return Rank(rng.Intn(RankCount))
}

// FirstDeal produces the opening hands: one card to the dealer, then two to
// the player, in that draw order. The dealer opens with a single visible
// card and no hole card.
func FirstDeal(rng *rand.Rand) (dealer, player Hand) {
	dealer = Hand{DrawOne(rng)}
	player = Hand{DrawOne(rng), DrawOne(rng)}
	return dealer, player
}

// DealerPlay runs the dealer policy to completion: draw while the hand
// scores under 17. Returns a new hand; the input is not mutated.
func DealerPlay(dealer Hand, rng *rand.Rand) Hand {
	out := make(Hand, len(dealer))
	copy(out, dealer)
	for out.Score() < DealerStand {
		out = append(out, DrawOne(rng))
	}
	return out
}
