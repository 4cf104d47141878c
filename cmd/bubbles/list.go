package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/bubble-arcade/internal/registry"
	"github.com/vovakirdan/bubble-arcade/internal/storage"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List registered games",
	Long:  `Shows the games registered in this build and how many replays each has saved.`,
	Args:  cobra.NoArgs,
	Run:   runList,
}

func runList(_ *cobra.Command, _ []string) {
	games := registry.List()

	if len(games) == 0 {
		fmt.Println("No games available.")
		return
	}

	// Replay counts are optional
	store, err := storage.Open(flagDBPath)
	if err != nil {
		store = nil
	} else {
		defer store.Close()
	}

	// Calculate column widths
	maxIDLen := 2 // "ID" header
	for _, g := range games {
		if len(g.ID) > maxIDLen {
			maxIDLen = len(g.ID)
		}
	}

	fmt.Printf("  %-*s  %-12s  %s\n", maxIDLen, "ID", "Title", "Replays")
	fmt.Printf("  %-*s  %-12s  %s\n", maxIDLen, "--", "-----", "-------")

	for _, g := range games {
		count := "-"
		if store != nil {
			if n, err := store.CountReplays(g.ID); err == nil {
				count = fmt.Sprint(n)
			}
		}
		fmt.Printf("  %-*s  %-12s  %s\n", maxIDLen, g.ID, g.Title, count)
	}

	fmt.Println()
	fmt.Println("Run 'bubbles play' to start a game.")
}
