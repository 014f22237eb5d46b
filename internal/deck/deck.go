package deck

import (
	rand "math/rand/v2"
)

// Deck represents an ordered pool of playing cards. A deck never runs
// out: drawing from an empty deck transparently rebuilds and reshuffles
// a full 52-card deck first. This trades away strict single-deck
// card-counting semantics for a game that can always continue, and is
// deliberate rather than something to fix with a multi-deck shoe.
type Deck struct {
	cards []Card
	rng   *rand.Rand
}

// New creates a full 52-card deck shuffled with the provided rng.
func New(rng *rand.Rand) *Deck {
	d := &Deck{
		cards: make([]Card, 0, 52),
		rng:   rng,
	}
	d.Reset()
	return d
}

// NewStacked creates a deck whose next draws are exactly the given
// cards, in order. Drawing past the stacked cards falls back to the
// auto-reshuffle behaviour. Intended for deterministic tests.
func NewStacked(rng *rand.Rand, cards ...Card) *Deck {
	d := &Deck{
		cards: append([]Card(nil), cards...),
		rng:   rng,
	}
	return d
}

// Reset rebuilds the full 52-card deck in canonical suit/rank order and
// shuffles it in place.
func (d *Deck) Reset() {
	d.cards = d.cards[:0]

	for suit := Spades; suit <= Clubs; suit++ {
		for rank := Two; rank <= Ace; rank++ {
			d.cards = append(d.cards, NewCard(suit, rank))
		}
	}

	d.Shuffle()
}

// Shuffle randomizes the order of cards in the deck using Fisher-Yates,
// giving every permutation equal probability.
func (d *Deck) Shuffle() {
	for i := len(d.cards) - 1; i > 0; i-- {
		j := d.rng.IntN(i + 1)
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	}
}

// Draw removes and returns the top card. An empty deck is reset and
// reshuffled first, so Draw always succeeds.
func (d *Deck) Draw() Card {
	if len(d.cards) == 0 {
		d.Reset()
	}

	card := d.cards[0]
	d.cards = d.cards[1:]
	return card
}

// Remaining returns the number of cards left in the deck
func (d *Deck) Remaining() int {
	return len(d.cards)
}
