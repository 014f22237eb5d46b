package blackjack

import (
	"strings"

	"github.com/lox/blackjack/internal/deck"
)

// Hand is an ordered collection of cards belonging to one side of the
// table. Order reflects deal order and matters only for display; the
// total is always computed from the current cards, never stored.
type Hand struct {
	cards []deck.Card
}

// AddCard appends a card to the hand
func (h *Hand) AddCard(card deck.Card) {
	h.cards = append(h.cards, card)
}

// Cards returns a copy of the cards in deal order
func (h *Hand) Cards() []deck.Card {
	return append([]deck.Card(nil), h.cards...)
}

// Len returns the number of cards in the hand
func (h *Hand) Len() int {
	return len(h.cards)
}

// Value computes the blackjack total of the hand. Aces start at 11 and
// are softened to 1 one at a time while the total exceeds 21, so a hand
// like A,A,9 reads as 21 rather than 31.
func (h *Hand) Value() int {
	value := 0
	aces := 0

	for _, card := range h.cards {
		if card.IsAce() {
			aces++
		}
		value += card.PointValue()
	}

	for value > 21 && aces > 0 {
		value -= 10
		aces--
	}

	return value
}

// IsBust returns true if the hand value exceeds 21
func (h *Hand) IsBust() bool {
	return h.Value() > 21
}

// IsBlackjack returns true for a natural: exactly two cards totalling 21.
// Three-card 21s are deliberately not blackjacks.
func (h *Hand) IsBlackjack() bool {
	return len(h.cards) == 2 && h.Value() == 21
}

// String returns the cards joined for display (e.g., "A♠ K♥")
func (h *Hand) String() string {
	parts := make([]string, len(h.cards))
	for i, card := range h.cards {
		parts[i] = card.String()
	}
	return strings.Join(parts, " ")
}
