package blackjack

import (
	"testing"

	"github.com/lox/blackjack/internal/deck"
)

func handOf(cards ...deck.Card) *Hand {
	h := &Hand{}
	for _, c := range cards {
		h.AddCard(c)
	}
	return h
}

func TestHandValue(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name  string
		cards []deck.Card
		want  int
	}{
		{
			name:  "two aces and a nine softens one ace",
			cards: []deck.Card{deck.NewCard(deck.Spades, deck.Ace), deck.NewCard(deck.Hearts, deck.Ace), deck.NewCard(deck.Clubs, deck.Nine)},
			want:  21,
		},
		{
			name:  "three aces and an eight softens two aces",
			cards: []deck.Card{deck.NewCard(deck.Spades, deck.Ace), deck.NewCard(deck.Hearts, deck.Ace), deck.NewCard(deck.Diamonds, deck.Ace), deck.NewCard(deck.Clubs, deck.Eight)},
			want:  21,
		},
		{
			name:  "two face cards",
			cards: []deck.Card{deck.NewCard(deck.Spades, deck.King), deck.NewCard(deck.Hearts, deck.Queen)},
			want:  20,
		},
		{
			name:  "ace and king is twenty-one",
			cards: []deck.Card{deck.NewCard(deck.Spades, deck.Ace), deck.NewCard(deck.Hearts, deck.King)},
			want:  21,
		},
		{
			name:  "hard bust",
			cards: []deck.Card{deck.NewCard(deck.Spades, deck.King), deck.NewCard(deck.Hearts, deck.Queen), deck.NewCard(deck.Clubs, deck.Five)},
			want:  25,
		},
		{
			name:  "empty hand",
			cards: nil,
			want:  0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := handOf(tt.cards...).Value(); got != tt.want {
				t.Errorf("Value() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestHandIsBlackjack(t *testing.T) {
	t.Parallel()

	natural := handOf(deck.NewCard(deck.Spades, deck.Ace), deck.NewCard(deck.Hearts, deck.King))
	if !natural.IsBlackjack() {
		t.Error("Expected A,K to be a blackjack")
	}

	// A three-card 21 is not a natural
	threeCard := handOf(
		deck.NewCard(deck.Spades, deck.Seven),
		deck.NewCard(deck.Hearts, deck.Seven),
		deck.NewCard(deck.Clubs, deck.Seven),
	)
	if threeCard.Value() != 21 {
		t.Fatalf("Expected 7,7,7 to total 21, got %d", threeCard.Value())
	}
	if threeCard.IsBlackjack() {
		t.Error("Expected 7,7,7 not to be a blackjack")
	}

	twenty := handOf(deck.NewCard(deck.Spades, deck.King), deck.NewCard(deck.Hearts, deck.Queen))
	if twenty.IsBlackjack() {
		t.Error("Expected K,Q not to be a blackjack")
	}
}

func TestHandIsBust(t *testing.T) {
	t.Parallel()

	h := handOf(deck.NewCard(deck.Spades, deck.King), deck.NewCard(deck.Hearts, deck.Queen))
	if h.IsBust() {
		t.Error("Expected 20 not to be bust")
	}

	h.AddCard(deck.NewCard(deck.Clubs, deck.Five))
	if !h.IsBust() {
		t.Error("Expected 25 to be bust")
	}

	// An ace softens rather than busting
	soft := handOf(
		deck.NewCard(deck.Spades, deck.King),
		deck.NewCard(deck.Hearts, deck.Ace),
		deck.NewCard(deck.Clubs, deck.Five),
	)
	if soft.IsBust() {
		t.Errorf("Expected K,A,5 to soften to %d, not bust", soft.Value())
	}
}

func TestHandCardsReturnsCopy(t *testing.T) {
	t.Parallel()

	h := handOf(deck.NewCard(deck.Spades, deck.King), deck.NewCard(deck.Hearts, deck.Queen))
	cards := h.Cards()
	cards[0] = deck.NewCard(deck.Clubs, deck.Two)

	if h.Cards()[0] != deck.NewCard(deck.Spades, deck.King) {
		t.Error("Mutating the returned slice must not affect the hand")
	}
}

func TestHandString(t *testing.T) {
	t.Parallel()

	h := handOf(deck.NewCard(deck.Spades, deck.Ace), deck.NewCard(deck.Hearts, deck.King))
	if got := h.String(); got != "A♠ K♥" {
		t.Errorf("String() = %q, want %q", got, "A♠ K♥")
	}
}
