package main

import (
	"io"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/lox/blackjack/internal/blackjack"
	"github.com/lox/blackjack/internal/randutil"
	"github.com/lox/blackjack/internal/session"
	"github.com/lox/blackjack/internal/tui"
)

// PlayCmd runs a local interactive game in the terminal
type PlayCmd struct {
	Name    string `kong:"default='player',help='Display name at the table'"`
	Seed    *int64 `kong:"help='Deterministic RNG seed for all shuffles (optional)'"`
	LogFile string `kong:"help='Write debug logs to this file'"`
}

func (c *PlayCmd) Run() error {
	// The TUI owns the terminal, so logs go to a file or nowhere
	logger := log.New(io.Discard)
	if c.LogFile != "" {
		f, err := os.OpenFile(c.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return err
		}
		defer f.Close()
		logger = log.NewWithOptions(f, log.Options{ReportTimestamp: true})
		logger.SetLevel(log.DebugLevel)
	}

	seed := time.Now().UnixNano()
	if c.Seed != nil {
		seed = *c.Seed
	}

	registry := session.NewRegistry(logger, randutil.New(seed))
	player := blackjack.Player{ID: c.Name, Name: c.Name}

	model := tui.NewModel(registry, player, logger)
	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
