package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"neural-snake/game"
	"neural-snake/game/types"
)

// Config holds all neural-snake configuration.
type Config struct {
	Game    GameConfig    `yaml:"game"`
	Window  WindowConfig  `yaml:"window"`
	Audio   AudioConfig   `yaml:"audio"`
	Logging LoggingConfig `yaml:"logging"`
}

// GameConfig fixes the grid world. The grid edge is surface_size / tile_size.
type GameConfig struct {
	SurfaceSize    int    `yaml:"surface_size"`
	TileSize       int    `yaml:"tile_size"`
	StartX         int    `yaml:"start_x"`
	StartY         int    `yaml:"start_y"`
	InitialHeading string `yaml:"initial_heading"` // up, right, down, left
	TickInterval   string `yaml:"tick_interval"`
	Seed           uint64 `yaml:"seed"` // 0 seeds from the clock
}

// WindowConfig configures the raylib front-end
type WindowConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
	FPS    int `yaml:"fps"`
}

type AudioConfig struct {
	Enabled bool `yaml:"enabled"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // json, console
	File   string `yaml:"file"`   // empty means stderr
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Game: GameConfig{
			SurfaceSize:    types.DefaultSurfaceSize,
			TileSize:       types.DefaultTileSize,
			StartX:         types.DefaultStartCell.X,
			StartY:         types.DefaultStartCell.Y,
			InitialHeading: "right",
			TickInterval:   "150ms",
		},
		Window: WindowConfig{
			Width:  800,
			Height: 520,
			FPS:    60,
		},
		Audio: AudioConfig{
			Enabled: true,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// Load loads configuration from a YAML file. A missing file yields the
// defaults.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case os.IsNotExist(err):
		case err != nil:
			return nil, fmt.Errorf("failed to read config: %w", err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config: %w", err)
			}
		}
	}

	if err := cfg.applyEnvOverrides(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save saves configuration to a YAML file.
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides.
func (c *Config) applyEnvOverrides() error {
	if v := os.Getenv("NEURAL_SNAKE_SEED"); v != "" {
		seed, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid NEURAL_SNAKE_SEED: %w", err)
		}
		c.Game.Seed = seed
	}
	if v := os.Getenv("NEURAL_SNAKE_TICK_INTERVAL"); v != "" {
		c.Game.TickInterval = v
	}
	if v := os.Getenv("NEURAL_SNAKE_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv("NEURAL_SNAKE_AUDIO"); v != "" {
		enabled, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid NEURAL_SNAKE_AUDIO: %w", err)
		}
		c.Audio.Enabled = enabled
	}
	return nil
}

// Validate checks the values that cannot be defaulted
func (c *Config) Validate() error {
	if c.Game.TileSize <= 0 {
		return fmt.Errorf("tile_size must be positive, got %d", c.Game.TileSize)
	}
	if _, err := c.Game.Interval(); err != nil {
		return err
	}
	if _, err := c.Game.Settings(); err != nil {
		return err
	}
	return nil
}

// Interval parses tick_interval
func (g GameConfig) Interval() (time.Duration, error) {
	d, err := time.ParseDuration(g.TickInterval)
	if err != nil {
		return 0, fmt.Errorf("invalid tick_interval %q: %w", g.TickInterval, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("tick_interval must be positive, got %s", d)
	}
	return d, nil
}

// Grid derives the square grid from the surface and tile sizes
func (g GameConfig) Grid() types.Grid {
	return types.NewSquareGrid(g.SurfaceSize, g.TileSize)
}

// Settings converts the game section into world settings
func (g GameConfig) Settings() (game.Settings, error) {
	heading, err := types.ParseHeading(g.InitialHeading)
	if err != nil {
		return game.Settings{}, fmt.Errorf("invalid initial_heading: %w", err)
	}
	grid := g.Grid()
	start := types.Cell{X: g.StartX, Y: g.StartY}
	if grid.Width < 2 {
		return game.Settings{}, fmt.Errorf("%w: surface_size %d / tile_size %d", game.ErrInvalidGrid, g.SurfaceSize, g.TileSize)
	}
	if !grid.Contains(start) {
		return game.Settings{}, fmt.Errorf("%w: %s", game.ErrStartOutOfBounds, start)
	}
	return game.Settings{
		Grid:           grid,
		Start:          start,
		InitialHeading: heading,
	}, nil
}
