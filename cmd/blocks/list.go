package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-blocks/internal/registry"
	"github.com/vovakirdan/tui-blocks/internal/storage"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all available modes",
	Long:  `Shows a list of all game modes with your best score and run count.`,
	Args:  cobra.NoArgs,
	Run:   runList,
}

func runList(_ *cobra.Command, _ []string) {
	games := registry.List()

	if len(games) == 0 {
		fmt.Println("No modes available.")
		return
	}

	// Stats are optional; a missing database just leaves the columns empty.
	var stats map[string]*storage.GameStats
	if store, err := storage.Open(flagDBPath); err == nil {
		stats, _ = store.GetAllGamesStats()
		store.Close()
	}

	fmt.Println("Available modes:")
	fmt.Println()

	// Calculate column widths
	maxIDLen := 2 // "ID" header
	maxTitleLen := 5
	for _, g := range games {
		maxIDLen = max(maxIDLen, len(g.ID))
		maxTitleLen = max(maxTitleLen, len(g.Title))
	}

	fmt.Printf("  %-*s  %-*s  %10s  %5s\n", maxIDLen, "ID", maxTitleLen, "Title", "Best", "Runs")
	fmt.Printf("  %-*s  %-*s  %10s  %5s\n", maxIDLen, "--", maxTitleLen, "-----", "----", "----")
	for _, g := range games {
		best, runs := "-", "-"
		if s, ok := stats[g.ID]; ok {
			best = fmt.Sprint(s.HighScore)
			runs = fmt.Sprint(s.GamesCount)
		}
		fmt.Printf("  %-*s  %-*s  %10s  %5s\n", maxIDLen, g.ID, maxTitleLen, g.Title, best, runs)
	}

	fmt.Println()
	fmt.Println("Run 'blocks play <id>' to play a mode.")
}
