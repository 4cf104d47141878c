// bubbles is a bubble shooter for the terminal, a desktop window or SSH.
//
// Usage:
//
//	bubbles play              - Play in the terminal
//	bubbles menu              - Start menu with difficulty picker and replays
//	bubbles window            - Play in a desktop window
//	bubbles serve             - Start SSH server for remote play
//	bubbles replays list      - List saved replays
//	bubbles replays verify    - Re-simulate saved replays
//	bubbles catalog           - Print the effective piece catalog
//	bubbles list              - List registered games
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 60)
//	--seed <value>        - Set RNG seed for reproducible gameplay
//	--db <path>           - Set database path (default: ~/.arcade/bubbles.db)
//	--config <path>       - Custom game config YAML
//	--catalog <path>      - Piece catalog file (YAML or JSON)
//	--difficulty <name>   - Difficulty preset: easy, normal, hard, fixed
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	// Import games to register them
	_ "github.com/vovakirdan/bubble-arcade/internal/games/bubbles"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagCatalog    string
	flagDifficulty string
	flagLogLevel   string
	flagLogFile    string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "bubbles",
	Short: "Bubbles - a bubble shooter for your terminal",
	Long: `Bubbles is a bubble shooter: aim, fire, and clear the board by
matching three or more pieces of the same color.

Available commands:
  play     - Play directly in the terminal
  menu     - Interactive menu with difficulty picker and replays
  window   - Play in a desktop window with sound
  serve    - Start SSH server for remote play
  replays  - List, verify and delete saved replays
  catalog  - Print the effective piece catalog
  list     - Show registered games

Examples:
  bubbles play
  bubbles play --difficulty hard
  bubbles window --scale 3
  bubbles serve --ssh :2222
  bubbles replays verify`,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.arcade/bubbles.db", "Path to replay database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	rootCmd.PersistentFlags().StringVar(&flagCatalog, "catalog", "", "Path to piece catalog file (YAML or JSON)")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file (terminal modes discard logs otherwise)")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(windowCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(replaysCmd)
	rootCmd.AddCommand(catalogCmd)
}
