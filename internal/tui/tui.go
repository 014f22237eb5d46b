// Package tui implements the interactive terminal front end. It is one
// of the hosts driving the engine: every key press becomes exactly one
// action against the player's round, processed to completion before the
// next is considered.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/lox/blackjack/internal/blackjack"
	"github.com/lox/blackjack/internal/render"
	"github.com/lox/blackjack/internal/session"
)

// Model is the Bubble Tea model for a local blackjack session
type Model struct {
	registry *session.Registry
	player   blackjack.Player
	logger   *log.Logger

	historyView viewport.Model
	history     []string
	errLine     string

	width       int
	height      int
	initialized bool
	quitting    bool
}

// NewModel creates a TUI model playing against the given registry
func NewModel(registry *session.Registry, player blackjack.Player, logger *log.Logger) *Model {
	vp := viewport.New(10, 5)
	vp.SetContent("")

	return &Model{
		registry:    registry,
		player:      player,
		logger:      logger.WithPrefix("tui"),
		historyView: vp,
		history:     []string{},
	}
}

// Init deals the first round
func (m *Model) Init() tea.Cmd {
	m.newGame()
	return nil
}

// Update handles messages in the TUI
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.historyView.Width = msg.Width - 4
		m.historyView.Height = max(msg.Height-14, 3)
		m.initialized = true

	case tea.KeyMsg:
		m.errLine = ""
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			m.quitting = true
			m.registry.End(m.player.ID)
			return m, tea.Quit
		case "h":
			m.hit()
		case "s":
			m.stand()
		case "n":
			m.newGame()
		case "up", "k":
			m.historyView.ScrollUp(1)
		case "down", "j":
			m.historyView.ScrollDown(1)
		}
	}

	var cmd tea.Cmd
	m.historyView, cmd = m.historyView.Update(msg)
	return m, cmd
}

// newGame replaces any current round with a fresh one. The explicit
// replace semantics live here at the boundary; the registry itself
// rejects duplicates.
func (m *Model) newGame() {
	m.registry.End(m.player.ID)

	round, err := m.registry.Create(m.player)
	if err != nil {
		m.errLine = err.Error()
		m.logger.Error("Failed to create game", "error", err)
		return
	}

	m.logHand("New hand dealt")
	if round.State() == blackjack.StateFinished {
		m.logResult(round)
	}
}

func (m *Model) hit() {
	round, ok := m.registry.Get(m.player.ID)
	if !ok {
		m.errLine = "No game in progress. Press n to deal."
		return
	}

	if !round.Hit() {
		m.errLine = "The hand is over. Press n to deal again."
		return
	}

	if round.State() == blackjack.StateFinished {
		m.logResult(round)
	}
}

func (m *Model) stand() {
	round, ok := m.registry.Get(m.player.ID)
	if !ok {
		m.errLine = "No game in progress. Press n to deal."
		return
	}

	if !round.Stand() {
		m.errLine = "The hand is over. Press n to deal again."
		return
	}

	m.logResult(round)
}

func (m *Model) logResult(round *blackjack.Round) {
	result, ok := round.Result()
	if !ok {
		return
	}

	snap := round.Snapshot()
	m.logHand(fmt.Sprintf("%s  (you %d, dealer %d)", result.Message, snap.PlayerValue, snap.DealerValue))
}

func (m *Model) logHand(line string) {
	m.history = append(m.history, line)
	m.historyView.SetContent(strings.Join(m.history, "\n"))
	m.historyView.GotoBottom()
}

// View renders the TUI
func (m *Model) View() string {
	if m.quitting {
		return "Thanks for playing!\n"
	}
	if !m.initialized {
		return "Loading..."
	}

	var table string
	if round, ok := m.registry.Get(m.player.ID); ok {
		table = render.Table(round.Snapshot())
	} else {
		table = "No game in progress."
	}

	sections := []string{
		TableStyle.Render(table),
		HistoryStyle.Render(m.historyView.View()),
	}

	if m.errLine != "" {
		sections = append(sections, ErrorStyle.Render(m.errLine))
	}

	sections = append(sections, HelpStyle.Render("h hit • s stand • n new hand • q quit"))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// History returns the logged hand lines, for tests
func (m *Model) History() []string {
	return append([]string(nil), m.history...)
}
