package main

import (
	"errors"
	"fmt"
	"io"

	"go.uber.org/zap"

	"neural-snake/config"
	"neural-snake/game/autopilot"
	"neural-snake/game/manager"
)

// runDemo plays games headless with the autopilot and reports the session
// statistics to out.
func runDemo(cfg *config.Config, logger *zap.Logger, games, maxTicks int, out io.Writer) (*manager.StateManager, error) {
	if games <= 0 {
		return nil, errors.New("games must be positive")
	}

	world, err := newWorld(cfg, logger)
	if err != nil {
		return nil, err
	}

	stats := manager.NewStateManager()
	world.Bus().Subscribe(stats.Observe)
	network := manager.NewNetworkManager()
	world.Bus().Subscribe(network.Observe)

	pilot := autopilot.New(world.Grid())
	for episode := 0; episode < games; episode++ {
		result := pilot.Play(world, maxTicks)
		logger.Info("episode finished",
			zap.Int("episode", episode+1),
			zap.Int("score", result.Score),
			zap.Int("length", result.Length),
			zap.Uint64("ticks", result.Ticks),
			zap.Stringer("state", result.State),
			zap.String("intelligence", string(network.Intelligence())))
	}

	logger.Info("demo finished",
		zap.Int("games", stats.GetGamesPlayed()),
		zap.Int("high_score", stats.GetHighScore()),
		zap.Float64("average_score", stats.GetAverageScore()),
		zap.Float64("median_score", stats.GetMedianScore()),
		zap.Duration("average_duration", stats.GetAverageDuration()))

	fmt.Fprintf(out, "Games finished: %d of %d\n", stats.GetGamesPlayed(), games)
	fmt.Fprintf(out, "High score:     %d\n", stats.GetHighScore())
	fmt.Fprintf(out, "Average score:  %.2f\n", stats.GetAverageScore())
	fmt.Fprintf(out, "Median score:   %.2f\n", stats.GetMedianScore())
	return stats, nil
}
