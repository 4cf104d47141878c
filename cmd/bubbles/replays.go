package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/bubble-arcade/internal/games/bubbles"
	"github.com/vovakirdan/bubble-arcade/internal/platform/tui"
	"github.com/vovakirdan/bubble-arcade/internal/storage"
)

var flagReplayLimit int

var replaysCmd = &cobra.Command{
	Use:   "replays",
	Short: "Browse saved replays",
	Long: `Games are saved as replays when they end. A replay holds the seed and
every input, so re-simulating it must reach the recorded final state.

Without a subcommand, opens the interactive replay browser.

Examples:
  bubbles replays
  bubbles replays list --limit 50
  bubbles replays verify
  bubbles replays verify 1f0c2a7e-...
  bubbles replays delete 1f0c2a7e-...`,
	Args: cobra.NoArgs,
	Run:  runReplaysBrowser,
}

var replaysListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved replays",
	Args:  cobra.NoArgs,
	Run:   runReplaysList,
}

var replaysVerifyCmd = &cobra.Command{
	Use:   "verify [id...]",
	Short: "Re-simulate replays and check their final state",
	Long:  `Verifies the given replays, or every listed replay when no ID is given.`,
	Run:   runReplaysVerify,
}

var replaysDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a replay",
	Args:  cobra.ExactArgs(1),
	Run:   runReplaysDelete,
}

func init() {
	replaysCmd.PersistentFlags().IntVar(&flagReplayLimit, "limit", 20, "Maximum number of replays to list")
	replaysCmd.AddCommand(replaysListCmd)
	replaysCmd.AddCommand(replaysVerifyCmd)
	replaysCmd.AddCommand(replaysDeleteCmd)
}

// mustOpenStore opens the replay database or exits.
func mustOpenStore() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening replay database: %v\n", err)
		os.Exit(1)
	}
	return store
}

func runReplaysBrowser(_ *cobra.Command, _ []string) {
	store := mustOpenStore()
	defer store.Close()

	cfg := runtimeConfig()
	if _, err := tui.RunReplays(store, verifyReplay, bubbles.GameID, cfg.ScreenW, cfg.ScreenH); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runReplaysList(_ *cobra.Command, _ []string) {
	store := mustOpenStore()
	defer store.Close()

	replays, err := store.ListReplays(bubbles.GameID, flagReplayLimit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving replays: %v\n", err)
		os.Exit(1)
	}

	if len(replays) == 0 {
		fmt.Println("No replays recorded yet.")
		fmt.Println()
		fmt.Println("Play 'bubbles play' to record one!")
		return
	}

	fmt.Printf("  %-36s  %-8s  %-7s  %-8s  %s\n", "ID", "Score", "Outcome", "Ticks", "Date")
	fmt.Printf("  %-36s  %-8s  %-7s  %-8s  %s\n", "--", "-----", "-------", "-----", "----")
	for _, r := range replays {
		fmt.Printf("  %-36s  %-8d  %-7s  %-8d  %s\n",
			r.ID, r.Score, r.Outcome, r.Ticks, r.CreatedAt.Format("2006-01-02 15:04"))
	}
}

func runReplaysVerify(_ *cobra.Command, args []string) {
	store := mustOpenStore()
	defer store.Close()

	ids := args
	if len(ids) == 0 {
		replays, err := store.ListReplays(bubbles.GameID, flagReplayLimit)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error retrieving replays: %v\n", err)
			os.Exit(1)
		}
		for _, r := range replays {
			ids = append(ids, r.ID)
		}
	}

	failed := 0
	for _, id := range ids {
		r, err := store.LoadReplay(id)
		if err != nil {
			fmt.Printf("  %s  error: %v\n", id, err)
			failed++
			continue
		}
		snap, err := bubbles.VerifyReplay(r)
		switch {
		case errors.Is(err, bubbles.ErrReplayMismatch):
			fmt.Printf("  %s  MISMATCH (recorded %d/%s, replayed %d/%s)\n",
				id, r.Score, r.Outcome, snap.Score, snap.Phase)
			failed++
		case err != nil:
			fmt.Printf("  %s  error: %v\n", id, err)
			failed++
		default:
			fmt.Printf("  %s  ok (score %d, %s)\n", id, snap.Score, snap.Phase)
		}
	}

	fmt.Println()
	fmt.Printf("%d verified, %d failed\n", len(ids)-failed, failed)
	if failed > 0 {
		os.Exit(1)
	}
}

func runReplaysDelete(_ *cobra.Command, args []string) {
	store := mustOpenStore()
	defer store.Close()

	if err := store.DeleteReplay(args[0]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Deleted replay %s\n", args[0])
}
