// blocks is a falling-block puzzle game for the terminal.
//
// Usage:
//
//	blocks list              - List available modes
//	blocks play [mode]       - Play a mode (default: blocks)
//	blocks menu              - Start menu with character select and scores
//	blocks serve             - Start SSH server for remote play
//	blocks scores [mode]     - Show high scores for a mode
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 60)
//	--seed <value>        - Set RNG seed for reproducible gameplay
//	--db <path>           - Set database path (default: ~/.blocks/blocks.db)
//	--config <path>       - Custom game config YAML
//	--difficulty <name>   - easy, normal, hard or fixed
//	--character <id>      - Character for this run
//	--theme <name>        - Theme for this run
//	--profile <name>      - Profile for character, theme and saved games
//	--log <path>          - Log file (default: ~/.blocks/blocks.log)
//	--ghost, --grid, --particles - Display settings (default: on)
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-blocks/internal/config"
	"github.com/vovakirdan/tui-blocks/internal/core"
	"github.com/vovakirdan/tui-blocks/internal/games/blocks"
	"github.com/vovakirdan/tui-blocks/internal/games/blocks/engine"
	"github.com/vovakirdan/tui-blocks/internal/platform/tui"
	"github.com/vovakirdan/tui-blocks/internal/storage"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
	flagCharacter  string
	flagTheme      string
	flagProfile    string
	flagLogPath    string
	flagGhost      bool
	flagGrid       bool
	flagParticles  bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "blocks",
	Short: "Blocks - a falling-block puzzle for your terminal",
	Long: `Blocks is a falling-block puzzle game with power-ups, characters,
themes and secret codes.

Available commands:
  list     - Show all available modes
  play     - Play a mode directly
  menu     - Interactive menu with character select and scores
  serve    - Start SSH server for remote play
  scores   - View high scores

Examples:
  blocks play
  blocks play blocks_sprint --difficulty hard
  blocks play --resume
  blocks menu --profile alice
  blocks serve --ssh :2222
  blocks scores blocks_sprint`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	pf.Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	pf.StringVar(&flagDBPath, "db", "~/.blocks/blocks.db", "Path to scores database")
	pf.StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	pf.StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	pf.StringVar(&flagCharacter, "character", "", "Character ID (default: the profile's choice)")
	pf.StringVar(&flagTheme, "theme", "", "Theme name (default: the profile's choice)")
	pf.StringVar(&flagProfile, "profile", storage.DefaultProfile, "Profile for character, theme and saved games")
	pf.StringVar(&flagLogPath, "log", "", "Log file (default: ~/.blocks/blocks.log)")
	pf.BoolVar(&flagGhost, "ghost", true, "Show the ghost piece")
	pf.BoolVar(&flagGrid, "grid", true, "Show grid dots on empty cells")
	pf.BoolVar(&flagParticles, "particles", true, "Show line clear particles")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
}

// openLogger opens the log file. The TUI owns the terminal, so logs
// never go to stderr; a log that cannot be opened is discarded.
func openLogger() (*log.Logger, func()) {
	path := flagLogPath
	if path == "" {
		path = filepath.Join(config.AppDir(), "blocks.log")
	}
	discard := log.New(io.Discard)

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return discard, func() {}
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return discard, func() {}
	}
	logger := log.NewWithOptions(f, log.Options{
		ReportTimestamp: true,
		Prefix:          "blocks",
	})
	return logger, func() { f.Close() }
}

// runtimeConfig sizes the screen from the terminal.
func runtimeConfig() core.RuntimeConfig {
	width, height := 80, 24 // Defaults
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}
	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
}

// openStore opens the database, warning and continuing without it on
// failure.
func openStore(logger *log.Logger) *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		logger.Warn("could not open scores database", "path", flagDBPath, "error", err)
		return nil
	}
	return store
}

// prepareGame sets the package defaults the next blocks game picks up:
// flags first, then the profile's stored choices.
func prepareGame(store *storage.Store, logger *log.Logger, resume bool) error {
	preset, err := config.ParseDifficulty(flagDifficulty)
	if err != nil {
		return err
	}
	blocks.SetConfigPath(flagConfig)
	blocks.SetDifficultyPreset(string(preset))
	blocks.SetEvents(tui.NewLogEvents(logger))

	settings := engine.DefaultSettings()
	settings.ShowGhost = flagGhost
	settings.ShowGrid = flagGrid
	settings.Particles = flagParticles
	blocks.SetSettings(settings)

	character, theme := flagCharacter, flagTheme
	if store != nil {
		if character == "" {
			if id, err := store.Character(flagProfile); err == nil {
				character = id
			}
		}
		if theme == "" {
			if name, err := store.Theme(flagProfile); err == nil {
				theme = name
			}
		}
	}
	blocks.SetCharacter(character)
	blocks.SetTheme(theme)

	if !resume {
		return nil
	}
	if store == nil {
		return errors.New("cannot resume without a scores database")
	}
	snap, ok, err := store.LoadSnapshot(flagProfile)
	if err != nil {
		return fmt.Errorf("cannot load saved game: %w", err)
	}
	if !ok {
		fmt.Fprintf(os.Stderr, "No saved game for profile %q, starting a new one.\n", flagProfile)
		return nil
	}
	blocks.SetResume(snap)
	logger.Info("resuming", "profile", flagProfile, "score", snap.Score, "level", snap.Level)
	return nil
}
