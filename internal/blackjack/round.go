package blackjack

import (
	"github.com/lox/blackjack/internal/deck"
)

// Player identifies the owner of a round. The engine treats it as an
// opaque reference; only the ID is used as a map key by the session
// registry.
type Player struct {
	ID   string
	Name string
}

// State represents the lifecycle of a round. States only move forward.
type State int

const (
	// StatePlaying means the player may still hit or stand
	StatePlaying State = iota

	// StateDealerTurn is transient: dealer resolution runs to completion
	// synchronously, so callers never observe it at rest
	StateDealerTurn

	// StateFinished means the round is over and hands are immutable
	StateFinished
)

// String returns the string representation of a state
func (s State) String() string {
	switch s {
	case StatePlaying:
		return "playing"
	case StateDealerTurn:
		return "dealer_turn"
	case StateFinished:
		return "finished"
	default:
		return "unknown"
	}
}

// Outcome classifies the result of a finished round
type Outcome string

const (
	OutcomeWin       Outcome = "win"
	OutcomeBlackjack Outcome = "blackjack"
	OutcomeLose      Outcome = "lose"
	OutcomePush      Outcome = "push"
)

// Result is the evaluated outcome of a finished round
type Result struct {
	Outcome Outcome `json:"outcome"`
	Message string  `json:"message"`
}

// Round is the state machine for one blackjack game. It exclusively
// owns one deck and two hands and enforces action legality per state.
// A round does not manage its own lifetime; the session registry
// creates and destroys it.
type Round struct {
	player     Player
	deck       *deck.Deck
	playerHand Hand
	dealerHand Hand
	state      State
	bet        int
}

// NewRound creates a round for the given player drawing from the given
// deck. The round is not dealt until Start is called.
func NewRound(player Player, d *deck.Deck) *Round {
	return &Round{
		player: player,
		deck:   d,
		state:  StatePlaying,
	}
}

// Start deals the opening hands, alternating player/dealer/player/dealer
// from the shared deck, and moves the round into play. A natural player
// blackjack short-circuits straight through dealer resolution to
// finished, granting the player zero decisions. The bet amount is
// recorded but takes no part in outcome evaluation; it is a reserved
// extension point for wagering.
func (r *Round) Start(bet int) {
	r.bet = bet
	r.state = StatePlaying

	r.playerHand.AddCard(r.deck.Draw())
	r.dealerHand.AddCard(r.deck.Draw())
	r.playerHand.AddCard(r.deck.Draw())
	r.dealerHand.AddCard(r.deck.Draw())

	if r.playerHand.IsBlackjack() {
		r.playDealerHand()
	}
}

// Hit draws one card into the player hand. It reports false without
// mutating anything when the round is not in play, since stale actions
// are an expected timing outcome in an event-driven host. A bust
// finishes the round immediately; the dealer never resolves.
func (r *Round) Hit() bool {
	if r.state != StatePlaying {
		return false
	}

	r.playerHand.AddCard(r.deck.Draw())

	if r.playerHand.IsBust() {
		r.state = StateFinished
	}

	return true
}

// Stand ends the player's turn and resolves the dealer hand. It reports
// false without mutating anything when the round is not in play.
func (r *Round) Stand() bool {
	if r.state != StatePlaying {
		return false
	}

	r.state = StateDealerTurn
	r.playDealerHand()
	return true
}

// playDealerHand draws for the dealer until the hand value reaches 17.
// Soft totals are already folded into the hand value, so there is no
// distinct soft-17 rule. The loop always terminates: the deck is
// inexhaustible and the dealer total is non-decreasing.
func (r *Round) playDealerHand() {
	for r.dealerHand.Value() < 17 {
		r.dealerHand.AddCard(r.deck.Draw())
	}
	r.state = StateFinished
}

// State returns the current state of the round
func (r *Round) State() State {
	return r.state
}

// Player returns the owner of the round
func (r *Round) Player() Player {
	return r.player
}

// Bet returns the bet recorded at start
func (r *Round) Bet() int {
	return r.bet
}

// Result evaluates the outcome of a finished round. The second return
// is false until the round is finished. The priority order is load
// bearing: bust is checked before the blackjack comparisons, so a hand
// that reads as bust never wins regardless of the opposing hand.
func (r *Round) Result() (Result, bool) {
	if r.state != StateFinished {
		return Result{}, false
	}

	playerValue := r.playerHand.Value()
	dealerValue := r.dealerHand.Value()
	playerBJ := r.playerHand.IsBlackjack()
	dealerBJ := r.dealerHand.IsBlackjack()

	switch {
	case r.playerHand.IsBust():
		return Result{Outcome: OutcomeLose, Message: "Bust! You lose."}, true
	case r.dealerHand.IsBust():
		return Result{Outcome: OutcomeWin, Message: "Dealer busts! You win."}, true
	case playerBJ && !dealerBJ:
		return Result{Outcome: OutcomeBlackjack, Message: "Blackjack! You win."}, true
	case !playerBJ && dealerBJ:
		return Result{Outcome: OutcomeLose, Message: "Dealer has blackjack. You lose."}, true
	case playerValue > dealerValue:
		return Result{Outcome: OutcomeWin, Message: "You win!"}, true
	case dealerValue > playerValue:
		return Result{Outcome: OutcomeLose, Message: "Dealer wins."}, true
	default:
		return Result{Outcome: OutcomePush, Message: "Push. It's a tie."}, true
	}
}
