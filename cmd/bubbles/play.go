package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/bubble-arcade/internal/games/bubbles"
	"github.com/vovakirdan/bubble-arcade/internal/platform/tui"
)

var flagNoSound bool

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play in the terminal",
	Long: `Start a game directly in the terminal.

Controls:
  Mouse        - Aim; click to fire
  Left/Right   - Rotate aim (a/d also work)
  Space/Up     - Fire
  P/Esc        - Pause
  R            - Retry
  Ctrl+S       - Save a screenshot
  Q/Ctrl+C     - Quit

Difficulty options:
  easy   - Slow ceiling, few starting rows
  normal - Default pacing
  hard   - Fast ceiling, crowded start
  fixed  - Use the config values unchanged

Examples:
  bubbles play
  bubbles play --difficulty hard
  bubbles play --catalog ./pieces.yaml
  bubbles play --seed 42 --no-sound`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	playCmd.Flags().BoolVar(&flagNoSound, "no-sound", false, "Play without sound")
}

func runPlay(_ *cobra.Command, _ []string) {
	logger, closeLog := newLogger(true)
	defer closeLog()

	cfg, _, cat, err := loadSettings(logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	game := bubbles.NewWithSettings(bubbles.Settings{Config: cfg, Catalog: cat})

	// Open replay storage
	store := openStore(logger)

	opts := tui.Options{
		Store:  store,
		Logger: logger,
		Verify: verifyReplay,
	}
	if !flagNoSound {
		opts.Sound = soundLoader(logger, cfg)
	}

	// Run the game
	runErr := tui.Run(game, runtimeConfig(), opts)

	// Close store before potential exit
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}
