package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-blocks/internal/config"
	"github.com/vovakirdan/tui-blocks/internal/platform/tui"
	"github.com/vovakirdan/tui-blocks/internal/registry"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start with the interactive menu",
	Long: `Start in interactive menu mode.

Pick marathon or sprint, choose a character and theme, or browse high
scores. After a game you return to the menu.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Select
  Tab          - High scores
  Q            - Quit

Examples:
  blocks menu
  blocks menu --profile alice
  blocks menu --fps 30 --db ./blocks.db`,
	Args: cobra.NoArgs,
	RunE: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) error {
	if _, err := config.ParseDifficulty(flagDifficulty); err != nil {
		return err
	}

	logger, closeLog := openLogger()
	defer closeLog()

	store := openStore(logger)
	if store != nil {
		defer store.Close()
	}

	cfg := runtimeConfig()

	for {
		menuResult, err := tui.RunMenu(store, flagProfile, cfg)
		if err != nil {
			return err
		}
		cfg = menuResult.Config

		switch menuResult.Choice {
		case tui.ChoiceQuit, tui.ChoiceNone:
			return nil

		case tui.ChoiceScores:
			goBack, err := tui.RunScoreboard(store, cfg.ScreenW, cfg.ScreenH)
			if err != nil {
				return err
			}
			if !goBack {
				return nil
			}

		case tui.ChoiceCharacter:
			gameCfg, cfgErr := config.LoadBlocks(flagConfig)
			if cfgErr != nil {
				logger.Warn("invalid game config, using defaults", "error", cfgErr)
			}
			sel, ok, quit, err := tui.RunCharacterSelect(gameCfg, store, flagProfile, cfg.ScreenW, cfg.ScreenH)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Warning: could not save selection: %v\n", err)
				logger.Warn("could not save selection", "error", err)
			}
			if quit {
				return nil
			}
			if ok {
				// The menu choice replaces the flags for the rest of the session.
				flagCharacter, flagTheme = sel.Character, sel.Theme
				logger.Info("character selected", "character", sel.Character, "theme", sel.Theme)
			}

		case tui.ChoicePlay, tui.ChoiceResume:
			if err := prepareGame(store, logger, menuResult.Choice == tui.ChoiceResume); err != nil {
				return err
			}
			game, err := registry.Create(menuResult.GameID)
			if err != nil {
				return err
			}

			logger.Info("game started", "game", menuResult.GameID, "profile", flagProfile)
			back, err := tui.Run(game, cfg, tui.GameOptions{
				Store:   store,
				Profile: flagProfile,
				Logger:  logger,
			})
			if err != nil {
				return fmt.Errorf("running game: %w", err)
			}
			if !back {
				return nil
			}
		}
	}
}
