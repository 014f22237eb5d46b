package session

import (
	"errors"
	"fmt"
	"sync"

	rand "math/rand/v2"

	"github.com/charmbracelet/log"
	"github.com/lox/blackjack/internal/blackjack"
	"github.com/lox/blackjack/internal/deck"
	"github.com/lox/blackjack/internal/randutil"
)

// ErrActiveGame is returned by Create when the player already has a
// round in progress. Callers recover by prompting the player to quit
// or by replacing the game at the boundary.
var ErrActiveGame = errors.New("you already have an active game")

// Registry maps a player identity to at most one in-progress round. It
// is the sole owner of round lifetime: no other component creates or
// destroys rounds. One registry lives for the duration of the hosting
// process and is passed by reference to whatever owns the event loop.
//
// Hosts are expected to serialize actions per player, but the map is
// still guarded so concurrent hosts cannot race Create into two rounds.
type Registry struct {
	logger *log.Logger
	mu     sync.RWMutex
	rounds map[string]*blackjack.Round
	rng    *rand.Rand
}

// NewRegistry constructs an empty registry. The rng seeds each round's
// deck, so a seeded registry produces reproducible games.
func NewRegistry(logger *log.Logger, rng *rand.Rand) *Registry {
	return &Registry{
		logger: logger.WithPrefix("session"),
		rounds: make(map[string]*blackjack.Round),
		rng:    rng,
	}
}

// Create constructs a round for the player, starts it with a zero bet
// and stores it keyed by the player ID. The check and the insert are
// atomic: a player with an existing round gets ErrActiveGame and the
// existing round is left untouched.
func (r *Registry) Create(player blackjack.Player) (*blackjack.Round, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.rounds[player.ID]; ok {
		return nil, fmt.Errorf("%w: quit it before starting another", ErrActiveGame)
	}

	// Each round exclusively owns its deck; decks get their own rng so
	// rounds can shuffle concurrently without sharing state.
	round := blackjack.NewRound(player, deck.New(randutil.New(r.rng.Int64())))
	round.Start(0)
	r.rounds[player.ID] = round

	r.logger.Info("Created game", "player", player.ID, "state", round.State())
	return round, nil
}

// Get returns the round for the player ID, if any
func (r *Registry) Get(playerID string) (*blackjack.Round, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	round, ok := r.rounds[playerID]
	return round, ok
}

// End removes and discards the player's round. It reports whether a
// round existed; removing an absent entry is not an error.
func (r *Registry) End(playerID string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.rounds[playerID]; !ok {
		return false
	}

	delete(r.rounds, playerID)
	r.logger.Info("Ended game", "player", playerID)
	return true
}

// HasActive reports whether the player currently has a round
func (r *Registry) HasActive(playerID string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.rounds[playerID]
	return ok
}

// Count returns the number of active rounds
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.rounds)
}
