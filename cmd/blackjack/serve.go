package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/coder/quartz"
	"golang.org/x/sync/errgroup"

	"github.com/lox/blackjack/cmd/blackjack/shared"
	"github.com/lox/blackjack/internal/randutil"
	"github.com/lox/blackjack/internal/server"
	"github.com/lox/blackjack/internal/session"
)

// ServeCmd runs the WebSocket server
type ServeCmd struct {
	Config string `kong:"default='blackjack.hcl',help='Path to HCL config file'"`
	Addr   string `kong:"help='Override listen address from config'"`
	Debug  bool   `kong:"help='Enable debug logging'"`
	Seed   *int64 `kong:"help='Deterministic RNG seed for all shuffles (optional)'"`
}

func (c *ServeCmd) Run() error {
	logger := shared.SetupLogger(c.Debug)

	cfg, err := server.LoadServerConfig(c.Config)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	shared.ApplyLevel(logger, cfg.Server.LogLevel, c.Debug)

	// Seed resolution: flag beats config beats wall clock
	var seed int64
	switch {
	case c.Seed != nil:
		seed = *c.Seed
		logger.Info("Using deterministic seed", "seed", seed)
	case cfg.Game.Seed != 0:
		seed = cfg.Game.Seed
		logger.Info("Using deterministic seed", "seed", seed)
	default:
		seed = time.Now().UnixNano()
		logger.Info("Using random seed", "seed", seed)
	}

	addr := cfg.GetServerAddress()
	if c.Addr != "" {
		addr = c.Addr
	}

	registry := session.NewRegistry(logger, randutil.New(seed))
	gameService := server.NewGameService(registry, logger, quartz.NewReal(), cfg.CleanupDelay())
	s := server.NewServer(addr, logger, gameService)

	logger.Info("Starting blackjack server",
		"address", addr,
		"cleanup_delay", cfg.CleanupDelay())

	ctx := shared.SetupSignalHandler(logger)
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := s.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return s.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
