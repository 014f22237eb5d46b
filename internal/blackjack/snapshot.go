package blackjack

import (
	"github.com/lox/blackjack/internal/deck"
)

// Snapshot is a read-only view of a round for presentation layers.
// While the round is in play the dealer's hole card is withheld: only
// the upcard and its showing value are included. Renderers and
// transports consume snapshots so the state machine stays free of any
// presentation concern.
type Snapshot struct {
	Player          Player
	State           State
	Bet             int
	PlayerCards     []deck.Card
	PlayerValue     int
	PlayerBlackjack bool
	DealerCards     []deck.Card
	DealerValue     int
	DealerBlackjack bool
	HoleHidden      bool
	DealerShowing   int
	Result          *Result
}

// Snapshot captures the current public state of the round
func (r *Round) Snapshot() Snapshot {
	snap := Snapshot{
		Player:          r.player,
		State:           r.state,
		Bet:             r.bet,
		PlayerCards:     r.playerHand.Cards(),
		PlayerValue:     r.playerHand.Value(),
		PlayerBlackjack: r.playerHand.IsBlackjack(),
	}

	if r.state == StatePlaying {
		// Dealer shows only the upcard until the player's turn is over
		dealerCards := r.dealerHand.Cards()
		if len(dealerCards) > 0 {
			snap.DealerCards = dealerCards[:1]
			snap.DealerShowing = dealerCards[0].PointValue()
		}
		snap.HoleHidden = true
		return snap
	}

	snap.DealerCards = r.dealerHand.Cards()
	snap.DealerValue = r.dealerHand.Value()
	snap.DealerBlackjack = r.dealerHand.IsBlackjack()

	if result, ok := r.Result(); ok {
		snap.Result = &result
	}

	return snap
}
