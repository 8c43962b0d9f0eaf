package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"neural-snake/audio"
	"neural-snake/game"
	"neural-snake/ui"
	"neural-snake/ui/window"
)

// session wires the collaborators every interactive front-end shares
type session struct {
	world  *game.World
	hud    *ui.HUD
	player *audio.Player
}

func newSession(logger *zap.Logger) (*session, error) {
	world, err := newWorld(cfg, logger)
	if err != nil {
		return nil, err
	}

	s := &session{
		world: world,
		hud:   ui.NewHUD(),
	}
	world.Bus().Subscribe(s.hud.Observe)

	if cfg.Audio.Enabled {
		s.player = audio.NewPlayer(logger)
		if err := s.player.Initialize(); err == nil {
			world.Bus().Subscribe(s.player.Observe)
		}
	}
	return s, nil
}

func (s *session) close() {
	if s.player != nil {
		s.player.Close()
	}
}

func runTerminal(cmd *cobra.Command, args []string) error {
	// The screen owns the terminal, so only log when a file is configured.
	gameLogger := logger
	if cfg.Logging.File == "" {
		gameLogger = zap.NewNop()
	}

	s, err := newSession(gameLogger)
	if err != nil {
		return err
	}
	defer s.close()

	interval, err := cfg.Game.Interval()
	if err != nil {
		return err
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("failed to create screen: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return ui.NewTerminal(screen, s.world, s.hud, interval, gameLogger).Run(ctx)
}

func runWindow(cmd *cobra.Command, args []string) error {
	s, err := newSession(logger)
	if err != nil {
		return err
	}
	defer s.close()

	interval, err := cfg.Game.Interval()
	if err != nil {
		return err
	}

	logger.Info("opening window",
		zap.Int("width", cfg.Window.Width),
		zap.Int("height", cfg.Window.Height),
		zap.Duration("tick_interval", interval))

	window.NewRenderer(s.world, s.hud, interval,
		int32(cfg.Window.Width), int32(cfg.Window.Height), int32(cfg.Window.FPS), logger).Run()
	return nil
}
