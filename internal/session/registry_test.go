package session

import (
	"errors"
	"fmt"
	"io"
	"sync"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/blackjack/internal/blackjack"
	"github.com/lox/blackjack/internal/randutil"
)

func testRegistry(t *testing.T) *Registry {
	t.Helper()
	return NewRegistry(log.New(io.Discard), randutil.New(42))
}

func TestCreateAndGet(t *testing.T) {
	t.Parallel()
	reg := testRegistry(t)
	player := blackjack.Player{ID: "u1", Name: "alice"}

	round, err := reg.Create(player)
	require.NoError(t, err)
	require.NotNil(t, round)

	// A started round has 2+2 cards dealt
	snap := round.Snapshot()
	assert.Len(t, snap.PlayerCards, 2)

	got, ok := reg.Get("u1")
	require.True(t, ok)
	assert.Same(t, round, got)
	assert.True(t, reg.HasActive("u1"))
}

func TestCreateRejectsDuplicate(t *testing.T) {
	t.Parallel()
	reg := testRegistry(t)
	player := blackjack.Player{ID: "u1", Name: "alice"}

	first, err := reg.Create(player)
	require.NoError(t, err)

	second, err := reg.Create(player)
	require.ErrorIs(t, err, ErrActiveGame)
	assert.Nil(t, second)

	// The existing round is left untouched
	got, ok := reg.Get("u1")
	require.True(t, ok)
	assert.Same(t, first, got)
}

func TestEndThenCreateSucceeds(t *testing.T) {
	t.Parallel()
	reg := testRegistry(t)
	player := blackjack.Player{ID: "u1", Name: "alice"}

	_, err := reg.Create(player)
	require.NoError(t, err)

	assert.True(t, reg.End("u1"))
	assert.False(t, reg.HasActive("u1"))

	_, err = reg.Create(player)
	assert.NoError(t, err)
}

func TestEndIsIdempotent(t *testing.T) {
	t.Parallel()
	reg := testRegistry(t)

	assert.False(t, reg.End("missing"))
	assert.False(t, reg.End("missing"))
}

func TestGetAbsent(t *testing.T) {
	t.Parallel()
	reg := testRegistry(t)

	round, ok := reg.Get("missing")
	assert.False(t, ok)
	assert.Nil(t, round)
	assert.False(t, reg.HasActive("missing"))
}

func TestPlayersAreIndependent(t *testing.T) {
	t.Parallel()
	reg := testRegistry(t)

	r1, err := reg.Create(blackjack.Player{ID: "u1", Name: "alice"})
	require.NoError(t, err)
	r2, err := reg.Create(blackjack.Player{ID: "u2", Name: "bob"})
	require.NoError(t, err)

	assert.NotSame(t, r1, r2)
	assert.Equal(t, 2, reg.Count())

	reg.End("u1")
	assert.False(t, reg.HasActive("u1"))
	assert.True(t, reg.HasActive("u2"))
}

func TestConcurrentCreateAdmitsExactlyOne(t *testing.T) {
	t.Parallel()
	reg := testRegistry(t)
	player := blackjack.Player{ID: "u1", Name: "alice"}

	const attempts = 32
	var wg sync.WaitGroup
	errs := make([]error, attempts)

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = reg.Create(player)
		}(i)
	}
	wg.Wait()

	created := 0
	for _, err := range errs {
		if err == nil {
			created++
		} else {
			require.True(t, errors.Is(err, ErrActiveGame), "unexpected error: %v", err)
		}
	}
	assert.Equal(t, 1, created)
	assert.Equal(t, 1, reg.Count())
}

func TestConcurrentCreateEndDistinctPlayers(t *testing.T) {
	t.Parallel()
	reg := testRegistry(t)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			id := fmt.Sprintf("u%d", i)
			_, err := reg.Create(blackjack.Player{ID: id})
			require.NoError(t, err)
			reg.End(id)
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 0, reg.Count())
}
