package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/bubble-arcade/internal/config"
	"github.com/vovakirdan/bubble-arcade/internal/games/bubbles/catalog"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Print the effective piece catalog",
	Long: `Resolves the piece catalog the same way play does (--catalog file,
else the config's pieces) and prints the result with every entry that was
dropped or adjusted.

Examples:
  bubbles catalog
  bubbles catalog --catalog ./pieces.json`,
	Args: cobra.NoArgs,
	Run:  runCatalog,
}

func runCatalog(_ *cobra.Command, _ []string) {
	cfg, err := config.LoadBubbles(flagConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	cat, issues, loadErr := catalog.Build(flagCatalog, cfg.Pieces)
	if loadErr != nil {
		fmt.Printf("Catalog file unusable, using config pieces: %v\n\n", loadErr)
	}

	fmt.Printf("  %-12s  %-8s  %-6s  %s\n", "ID", "Color", "Weight", "Bonus")
	fmt.Printf("  %-12s  %-8s  %-6s  %s\n", "--", "-----", "------", "-----")
	for _, pt := range cat {
		bonus := ""
		if pt.Bonus {
			bonus = "yes"
		}
		fmt.Printf("  %-12s  %-8s  %-6d  %s\n", pt.ID, pt.Color, pt.Weight, bonus)
	}

	if len(issues) > 0 {
		fmt.Println()
		fmt.Println("Issues:")
		for _, issue := range issues {
			fmt.Printf("  %s\n", issue)
		}
	}
}
