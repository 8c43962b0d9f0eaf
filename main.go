package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"neural-snake/config"
	"neural-snake/game"
	"neural-snake/game/manager"
	"neural-snake/logging"
)

var (
	configPath string
	verbose    bool

	cfg    *config.Config
	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "neural-snake",
	Short: "Snake that grows a (pretend) neural network",
	Long: `Neural Snake is the classic snake game on a square grid. Every goal
eaten lengthens the snake and adds a layer to the network shown beside it.

Run without arguments to play in the terminal.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(configPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		logger, err = logging.New(cfg.Logging, verbose)
		if err != nil {
			return err
		}
		logger.Debug("config loaded", zap.String("path", configPath))
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: runTerminal,
}

var termCmd = &cobra.Command{
	Use:   "term",
	Short: "Play in the terminal",
	RunE:  runTerminal,
}

var windowCmd = &cobra.Command{
	Use:   "window",
	Short: "Play in a desktop window",
	RunE:  runWindow,
}

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Let the autopilot play headless games and report statistics",
	Long: `Runs a number of games steered by the built-in autopilot without any
display, then logs the session statistics.

Example:
  neural-snake demo --games 50 --max-ticks 2000`,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := runDemo(cfg, logger, demoGames, demoMaxTicks, cmd.OutOrStdout())
		return err
	},
}

var quizCmd = &cobra.Command{
	Use:   "quiz",
	Short: "Answer a few neural network questions",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runQuiz(cmd.InOrStdin(), cmd.OutOrStdout())
	},
}

var (
	demoGames    int
	demoMaxTicks int
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to YAML config (default: built-in settings)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")

	demoCmd.Flags().IntVar(&demoGames, "games", 10, "Number of games to play")
	demoCmd.Flags().IntVar(&demoMaxTicks, "max-ticks", 5000, "Tick cap per game (0 for none)")

	rootCmd.AddCommand(termCmd)
	rootCmd.AddCommand(windowCmd)
	rootCmd.AddCommand(demoCmd)
	rootCmd.AddCommand(quizCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// newWorld builds a world from the game section of cfg
func newWorld(cfg *config.Config, logger *zap.Logger) (*game.World, error) {
	settings, err := cfg.Game.Settings()
	if err != nil {
		return nil, err
	}
	world, err := game.NewWorld(settings,
		game.WithLogger(logger),
		game.WithRand(manager.NewRandSource(cfg.Game.Seed)),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create world: %w", err)
	}
	return world, nil
}
