package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/bubble-arcade/internal/games/bubbles"
	"github.com/vovakirdan/bubble-arcade/internal/platform/tui"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start with a menu",
	Long: `Start in interactive menu mode.

Use arrow keys or j/k to navigate, Left/Right to change difficulty and
Enter to select. B returns to the menu from a paused or finished game.

Controls:
  Up/Down/j/k  - Navigate menu
  Left/Right   - Change difficulty
  Enter/Space  - Select
  Q            - Quit

Examples:
  bubbles menu
  bubbles menu --fps 30
  bubbles menu --db ./bubbles.db`,
	Args: cobra.NoArgs,
	Run:  runMenu,
}

func runMenu(_ *cobra.Command, _ []string) {
	logger, closeLog := newLogger(true)
	defer closeLog()

	cfg, preset, _, err := loadSettings(logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// Open replay storage
	store := openStore(logger)
	if store != nil {
		defer store.Close()
	}

	opts := tui.Options{
		Store:   store,
		Logger:  logger,
		Sound:   soundLoader(logger, cfg),
		NewGame: gameFactory(),
		Verify:  verifyReplay,
	}

	// Same flow as an SSH session, run locally
	model := tui.NewSessionModel(bubbles.GameID, preset, runtimeConfig(), opts)
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseAllMotion())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
