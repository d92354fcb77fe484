package domain

// Session is the per-account record of the current or most recently
// resolved round. A resolved session (InProgress false) keeps its final
// hands for queries and is overwritten by the next bet.
type Session struct {
	InProgress bool   `json:"in_progress"`
	TotalStake int64  `json:"total_stake"`
	DealerHand Hand   `json:"dealer_hand"`
	PlayerHand Hand   `json:"player_hand"`
	RoundID    string `json:"round_id"`
}
