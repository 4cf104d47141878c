package main

import (
	"fmt"
	"math"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/bubble-arcade/internal/games/bubbles"
	"github.com/vovakirdan/bubble-arcade/internal/platform/gui"
)

var (
	flagScale    float64
	flagAimSpeed float64
)

var windowCmd = &cobra.Command{
	Use:   "window",
	Short: "Play in a desktop window",
	Long: `Open a desktop window and play with the mouse or keyboard.

Controls:
  Mouse        - Aim; click to fire
  Left/Right   - Rotate aim while held
  Space/Up     - Fire
  P            - Pause
  R            - Retry
  Esc/Q        - Quit (the game is saved as a replay)

Examples:
  bubbles window
  bubbles window --scale 3 --difficulty easy`,
	Args: cobra.NoArgs,
	Run:  runWindow,
}

func init() {
	windowCmd.Flags().Float64Var(&flagScale, "scale", 2, "Window pixels per playfield pixel")
	windowCmd.Flags().Float64Var(&flagAimSpeed, "aim-speed", 90, "Keyboard aim speed in degrees per second")
}

func runWindow(_ *cobra.Command, _ []string) {
	logger, closeLog := newLogger(false)
	defer closeLog()

	cfg, _, cat, err := loadSettings(logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	store := openStore(logger)
	if store != nil {
		defer store.Close()
	}

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	opts := gui.Options{
		Config:   bubbles.SessionConfig(cfg),
		Catalog:  cat,
		Seed:     seed,
		TickRate: flagFPS,
		Scale:    flagScale,
		AimSpeed: flagAimSpeed * math.Pi / 180,
		Store:    store,
		Logger:   logger,
	}
	if load := soundLoader(logger, cfg); load != nil {
		opts.Sound = load
	}

	if err := gui.Run(opts); err != nil {
		fmt.Fprintf(os.Stderr, "Error running window: %v\n", err)
		os.Exit(1)
	}
}
