// Package render turns read-only round snapshots into styled terminal
// text. It is the only place presentation decisions live; the engine
// never learns how it is displayed.
package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/lox/blackjack/internal/blackjack"
	"github.com/lox/blackjack/internal/deck"
)

// HiddenCard is the face shown for the dealer's hole card
const HiddenCard = "🂠"

// Card renders a single card, red suits in red
func Card(c deck.Card) string {
	if c.IsRed() {
		return RedCardStyle.Render(c.String())
	}
	return BlackCardStyle.Render(c.String())
}

// Cards renders a card sequence in deal order, appending a face-down
// card when the hand has one hidden.
func Cards(cards []deck.Card, holeHidden bool) string {
	parts := make([]string, 0, len(cards)+1)
	for _, c := range cards {
		parts = append(parts, Card(c))
	}
	if holeHidden {
		parts = append(parts, HiddenCardStyle.Render(HiddenCard))
	}
	return strings.Join(parts, " ")
}

// Table renders the full table view for a snapshot
func Table(snap blackjack.Snapshot) string {
	var b strings.Builder

	b.WriteString(TitleStyle.Render("Blackjack"))
	b.WriteString(fmt.Sprintf(" %s vs Dealer\n\n", snap.Player.Name))

	playerValue := fmt.Sprintf("(%d)", snap.PlayerValue)
	if snap.PlayerBlackjack {
		playerValue = "BLACKJACK!"
	}
	b.WriteString(fmt.Sprintf("%s  %s %s\n",
		LabelStyle.Render("Your hand:"),
		Cards(snap.PlayerCards, false),
		ValueStyle.Render(playerValue)))

	if snap.HoleHidden {
		b.WriteString(fmt.Sprintf("%s  %s %s\n",
			LabelStyle.Render("Dealer:   "),
			Cards(snap.DealerCards, true),
			ValueStyle.Render(fmt.Sprintf("showing %d", snap.DealerShowing))))
	} else {
		dealerValue := fmt.Sprintf("(%d)", snap.DealerValue)
		if snap.DealerBlackjack {
			dealerValue = "BLACKJACK!"
		}
		b.WriteString(fmt.Sprintf("%s  %s %s\n",
			LabelStyle.Render("Dealer:   "),
			Cards(snap.DealerCards, false),
			ValueStyle.Render(dealerValue)))
	}

	if snap.Result != nil {
		b.WriteString("\n")
		b.WriteString(resultStyle(snap.Result.Outcome).Render(snap.Result.Message))
		b.WriteString("\n")
	}

	return b.String()
}

func resultStyle(outcome blackjack.Outcome) lipgloss.Style {
	switch outcome {
	case blackjack.OutcomeWin, blackjack.OutcomeBlackjack:
		return WinStyle
	case blackjack.OutcomeLose:
		return LoseStyle
	default:
		return PushStyle
	}
}
