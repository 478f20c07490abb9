package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-blocks/internal/games/blocks"
	"github.com/vovakirdan/tui-blocks/internal/platform/tui"
	"github.com/vovakirdan/tui-blocks/internal/registry"
)

var flagResume bool

var playCmd = &cobra.Command{
	Use:   "play [mode]",
	Short: "Play a mode",
	Long: `Start playing. The mode defaults to blocks (marathon).

Controls:
  Left/A, Right/D   - Move
  Down/S            - Soft drop
  Space             - Hard drop
  Up/W/X, Z         - Rotate clockwise, counter-clockwise
  C/Shift+Tab       - Hold
  P/Esc             - Pause
  R                 - Restart (after game over)
  B                 - Back (when paused or over)
  Ctrl+S            - Screenshot to ~/.blocks/screenshots
  Q/Ctrl+C          - Quit

Difficulty options:
  easy   - Start at level 1
  normal - Start at level 3
  hard   - Start at level 6
  fixed  - Level never changes

An unfinished marathon is saved when you quit; --resume continues it.

Examples:
  blocks play
  blocks play blocks_sprint
  blocks play --difficulty hard --character miner
  blocks play --resume --profile alice
  blocks play --config ./my-blocks.yaml`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

func init() {
	playCmd.Flags().BoolVar(&flagResume, "resume", false, "Continue the profile's saved game")
}

func runPlay(_ *cobra.Command, args []string) error {
	gameID := blocks.IDMarathon
	if len(args) == 1 {
		gameID = args[0]
	}
	if !registry.Exists(gameID) {
		return fmt.Errorf("unknown mode %q (run 'blocks list' to see available modes)", gameID)
	}
	if flagResume && gameID != blocks.IDMarathon {
		return fmt.Errorf("--resume only applies to %s", blocks.IDMarathon)
	}

	logger, closeLog := openLogger()
	defer closeLog()

	store := openStore(logger)
	if store != nil {
		defer store.Close()
	}

	if err := prepareGame(store, logger, flagResume); err != nil {
		return err
	}

	game, err := registry.Create(gameID)
	if err != nil {
		return err
	}

	logger.Info("game started", "game", gameID, "profile", flagProfile)
	_, err = tui.Run(game, runtimeConfig(), tui.GameOptions{
		Store:   store,
		Profile: flagProfile,
		Logger:  logger,
	})
	if err != nil {
		return fmt.Errorf("running game: %w", err)
	}
	return nil
}
