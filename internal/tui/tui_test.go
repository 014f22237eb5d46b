package tui

import (
	"io"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/blackjack/internal/blackjack"
	"github.com/lox/blackjack/internal/randutil"
	"github.com/lox/blackjack/internal/session"
)

var testPlayer = blackjack.Player{ID: "u1", Name: "alice"}

func testModel(t *testing.T) (*Model, *session.Registry) {
	t.Helper()
	logger := log.New(io.Discard)
	registry := session.NewRegistry(logger, randutil.New(42))
	m := NewModel(registry, testPlayer, logger)
	m.Init()
	m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	return m, registry
}

func keyPress(m *Model, key string) {
	var msg tea.KeyMsg
	switch key {
	case "ctrl+c":
		msg = tea.KeyMsg(tea.Key{Type: tea.KeyCtrlC})
	case "esc":
		msg = tea.KeyMsg(tea.Key{Type: tea.KeyEsc})
	default:
		msg = tea.KeyMsg(tea.Key{Type: tea.KeyRunes, Runes: []rune(key)})
	}
	m.Update(msg)
}

func TestInitDealsARound(t *testing.T) {
	t.Parallel()
	m, registry := testModel(t)

	require.True(t, registry.HasActive(testPlayer.ID))
	assert.NotEmpty(t, m.History())
}

func TestHitAndStandDriveTheRound(t *testing.T) {
	t.Parallel()
	m, registry := testModel(t)

	// Re-deal until the round is in play, then stand to finish it
	round, _ := registry.Get(testPlayer.ID)
	for round.State() != blackjack.StatePlaying {
		keyPress(m, "n")
		round, _ = registry.Get(testPlayer.ID)
	}

	keyPress(m, "s")
	assert.Equal(t, blackjack.StateFinished, round.State())

	history := m.History()
	require.NotEmpty(t, history)
	assert.Contains(t, history[len(history)-1], "dealer")
}

func TestStaleActionShowsHint(t *testing.T) {
	t.Parallel()
	m, registry := testModel(t)

	round, _ := registry.Get(testPlayer.ID)
	for round.State() != blackjack.StatePlaying {
		keyPress(m, "n")
		round, _ = registry.Get(testPlayer.ID)
	}
	keyPress(m, "s")

	keyPress(m, "h")
	assert.Contains(t, m.View(), "Press n to deal again")
}

func TestNewGameReplacesRound(t *testing.T) {
	t.Parallel()
	m, registry := testModel(t)

	first, _ := registry.Get(testPlayer.ID)
	keyPress(m, "n")
	second, ok := registry.Get(testPlayer.ID)

	require.True(t, ok)
	assert.NotSame(t, first, second)
}

func TestQuitEndsGame(t *testing.T) {
	t.Parallel()
	m, registry := testModel(t)

	keyPress(m, "q")
	assert.False(t, registry.HasActive(testPlayer.ID))
	assert.Contains(t, m.View(), "Thanks for playing")
}

func TestViewShowsTableAndHelp(t *testing.T) {
	t.Parallel()
	m, _ := testModel(t)

	view := m.View()
	assert.True(t, strings.Contains(view, "alice"), "expected player name in view")
	assert.Contains(t, view, "h hit")
}
