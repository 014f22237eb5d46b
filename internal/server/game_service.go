package server

import (
	"errors"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/lox/blackjack/internal/blackjack"
	"github.com/lox/blackjack/internal/session"
)

// ErrNoGame is returned for actions from a player without a round
var ErrNoGame = errors.New("no active game")

// GameService routes player actions into the session registry and owns
// the host-side concerns the engine deliberately does not: replacing a
// game on request and sweeping finished rounds after an idle delay.
// The delay timer runs on a quartz clock so tests can drive it.
type GameService struct {
	registry     *session.Registry
	logger       *log.Logger
	clock        quartz.Clock
	cleanupDelay time.Duration

	mu       sync.Mutex
	cleanups map[string]*quartz.Timer
}

// NewGameService creates a game service around the given registry
func NewGameService(registry *session.Registry, logger *log.Logger, clock quartz.Clock, cleanupDelay time.Duration) *GameService {
	return &GameService{
		registry:     registry,
		logger:       logger.WithPrefix("game-service"),
		clock:        clock,
		cleanupDelay: cleanupDelay,
		cleanups:     make(map[string]*quartz.Timer),
	}
}

// NewGame starts a game for the player. With replace set any existing
// game is ended first; otherwise a duplicate is rejected with the
// registry's structured error.
func (gs *GameService) NewGame(player blackjack.Player, replace bool) (blackjack.Snapshot, error) {
	if replace {
		gs.cancelCleanup(player.ID)
		gs.registry.End(player.ID)
	}

	round, err := gs.registry.Create(player)
	if err != nil {
		return blackjack.Snapshot{}, err
	}

	snap := round.Snapshot()
	if snap.State == blackjack.StateFinished {
		// Natural blackjack: the round is already over
		gs.scheduleCleanup(player.ID)
	}
	return snap, nil
}

// Hit draws a card for the player. The bool reports whether the action
// was accepted; a stale hit on a finished round is not an error.
func (gs *GameService) Hit(playerID string) (blackjack.Snapshot, bool, error) {
	round, ok := gs.registry.Get(playerID)
	if !ok {
		return blackjack.Snapshot{}, false, ErrNoGame
	}

	accepted := round.Hit()
	if accepted && round.State() == blackjack.StateFinished {
		gs.scheduleCleanup(playerID)
	}
	return round.Snapshot(), accepted, nil
}

// Stand ends the player's turn and resolves the dealer
func (gs *GameService) Stand(playerID string) (blackjack.Snapshot, bool, error) {
	round, ok := gs.registry.Get(playerID)
	if !ok {
		return blackjack.Snapshot{}, false, ErrNoGame
	}

	accepted := round.Stand()
	if accepted && round.State() == blackjack.StateFinished {
		gs.scheduleCleanup(playerID)
	}
	return round.Snapshot(), accepted, nil
}

// Quit ends the player's game immediately, reporting whether one existed
func (gs *GameService) Quit(playerID string) bool {
	gs.cancelCleanup(playerID)
	return gs.registry.End(playerID)
}

// Snapshot returns the current state of the player's round
func (gs *GameService) Snapshot(playerID string) (blackjack.Snapshot, error) {
	round, ok := gs.registry.Get(playerID)
	if !ok {
		return blackjack.Snapshot{}, ErrNoGame
	}
	return round.Snapshot(), nil
}

// scheduleCleanup arms the finished-game sweep for a player, replacing
// any previously armed timer.
func (gs *GameService) scheduleCleanup(playerID string) {
	gs.mu.Lock()
	defer gs.mu.Unlock()

	if timer, ok := gs.cleanups[playerID]; ok {
		timer.Stop()
	}

	gs.cleanups[playerID] = gs.clock.AfterFunc(gs.cleanupDelay, func() {
		gs.mu.Lock()
		delete(gs.cleanups, playerID)
		gs.mu.Unlock()

		// Only sweep rounds that are still finished; a replacement game
		// created after this timer was armed must survive it
		if round, ok := gs.registry.Get(playerID); ok && round.State() == blackjack.StateFinished {
			gs.logger.Debug("Sweeping finished game", "player", playerID)
			gs.registry.End(playerID)
		}
	})
}

func (gs *GameService) cancelCleanup(playerID string) {
	gs.mu.Lock()
	defer gs.mu.Unlock()

	if timer, ok := gs.cleanups[playerID]; ok {
		timer.Stop()
		delete(gs.cleanups, playerID)
	}
}
