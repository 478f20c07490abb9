package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-blocks/internal/games/blocks"
	"github.com/vovakirdan/tui-blocks/internal/registry"
	"github.com/vovakirdan/tui-blocks/internal/storage"
)

var (
	flagScoresLimit int
	flagScoresClear bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores [mode]",
	Short: "Show high scores for a mode",
	Long: `Display the top high scores for a mode (default: blocks).

Examples:
  blocks scores
  blocks scores blocks_sprint --limit 20
  blocks scores --clear`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of scores to show (0 = all)")
	scoresCmd.Flags().BoolVar(&flagScoresClear, "clear", false, "Delete all scores for the mode")
}

func runScores(_ *cobra.Command, args []string) error {
	gameID := blocks.IDMarathon
	if len(args) == 1 {
		gameID = args[0]
	}
	if !registry.Exists(gameID) {
		return fmt.Errorf("unknown mode %q (run 'blocks list' to see available modes)", gameID)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	if flagScoresClear {
		if err := store.ClearScores(gameID); err != nil {
			return err
		}
		fmt.Printf("Scores for %s cleared.\n", registry.Title(gameID))
		return nil
	}

	var scores []storage.ScoreEntry
	if flagScoresLimit <= 0 {
		scores, err = store.AllScores(gameID)
	} else {
		scores, err = store.TopScores(gameID, flagScoresLimit)
	}
	if err != nil {
		return err
	}

	fmt.Printf("High Scores - %s\n", registry.Title(gameID))
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'blocks play %s' to set the first high score!\n", gameID)
		return nil
	}

	fmt.Printf("  %-4s  %-10s  %-6s  %-5s  %-10s  %s\n", "Rank", "Score", "Lines", "Level", "Character", "Date")
	fmt.Printf("  %-4s  %-10s  %-6s  %-5s  %-10s  %s\n", "----", "-----", "-----", "-----", "---------", "----")
	for i, entry := range scores {
		fmt.Printf("  %-4d  %-10d  %-6d  %-5d  %-10s  %s\n",
			i+1, entry.Score, entry.Lines, entry.Level, entry.Character,
			entry.CreatedAt.Format("2006-01-02 15:04"))
	}

	fmt.Println()
	if stats, err := store.GetGameStats(gameID); err == nil {
		fmt.Printf("Best: %d  Runs: %d  Avg: %.0f  Lines: %d  Best level: %d\n",
			stats.HighScore, stats.GamesCount, stats.AvgScore, stats.TotalLines, stats.BestLevel)
	}
	return nil
}
