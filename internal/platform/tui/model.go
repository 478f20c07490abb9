package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/vovakirdan/tui-blocks/internal/core"
	"github.com/vovakirdan/tui-blocks/internal/games/blocks/engine"
	"github.com/vovakirdan/tui-blocks/internal/registry"
	"github.com/vovakirdan/tui-blocks/internal/storage"
)

// snapshotter is implemented by games whose progress can be resumed.
type snapshotter interface {
	Snapshot() engine.Snapshot
}

// GameOptions configure a GameModel.
type GameOptions struct {
	Store   *storage.Store // nil disables scores and snapshots
	Profile string         // storage profile; defaults to storage.DefaultProfile
	Logger  *log.Logger

	// Standalone makes "back to menu" end the program, for hosts
	// without a menu around the game.
	Standalone bool
}

// GameModel runs one game and persists its results.
type GameModel struct {
	game       registry.Game
	screen     *core.Screen
	config     core.RuntimeConfig
	opts       GameOptions
	logger     *log.Logger
	inputFrame core.InputFrame
	gameState  core.GameState
	keyMapper  *KeyMapper
	runID      string
	quitting   bool
	backToMenu bool
	scoreSaved bool
}

// NewGameModel creates a model for game. The game is reset in Init.
func NewGameModel(game registry.Game, cfg core.RuntimeConfig, opts GameOptions) GameModel {
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if cfg.TickRate <= 0 {
		cfg.TickRate = core.DefaultConfig().TickRate
	}
	if opts.Profile == "" {
		opts.Profile = storage.DefaultProfile
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	return GameModel{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		config:     cfg,
		opts:       opts,
		logger:     logger,
		inputFrame: core.NewInputFrame(),
		keyMapper:  NewKeyMapper(),
		runID:      uuid.NewString(),
	}
}

// Init resets the game and starts the tick loop.
func (m GameModel) Init() tea.Cmd {
	m.game.Reset(m.config)
	return tickCmd(m.config.TickRate)
}

// Update handles messages.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		return m.handleResize(msg)
	case TickMsg:
		return m.handleTick()
	}
	return m, nil
}

// handleKey queues input for the next tick. Quit, back and screenshots
// are handled here.
func (m GameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	action, isQuit := m.keyMapper.MapKeyToFrame(msg, &m.inputFrame)
	if isQuit {
		m.persistProgress()
		m.quitting = true
		return m, tea.Quit
	}

	// Back only leaves a paused or finished run; during play it is just a
	// key for the sequence detector. Restart is ignored by the game until
	// the run is over.
	if action == core.ActionBack && (m.gameState.Paused || m.gameState.Ended()) {
		m.persistProgress()
		m.backToMenu = true
		if m.opts.Standalone {
			return m, tea.Quit
		}
	}
	return m, nil
}

// handleResize only resizes the buffer; the board size is fixed by config
// so the run continues.
func (m GameModel) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, msg.Height)
	return m, nil
}

// handleTick advances the simulation and records finished runs.
func (m GameModel) handleTick() (tea.Model, tea.Cmd) {
	wasEnded := m.gameState.Ended()

	result := m.game.Step(m.inputFrame)
	m.gameState = result.State
	m.inputFrame.Clear()

	if wasEnded && !m.gameState.Ended() {
		// Restarted.
		m.runID = uuid.NewString()
		m.scoreSaved = false
	}

	if m.gameState.Ended() && !m.scoreSaved {
		m.saveScore()
		m.scoreSaved = true
	}

	if m.backToMenu || m.quitting {
		return m, nil
	}
	return m, tickCmd(m.config.TickRate)
}

// saveScore records the finished run and drops any resumable snapshot.
func (m *GameModel) saveScore() {
	store := m.opts.Store
	if store == nil {
		return
	}
	if err := store.ClearSnapshot(m.opts.Profile); err != nil {
		m.logger.Warn("could not clear snapshot", "profile", m.opts.Profile, "error", err)
	}
	if m.gameState.Score <= 0 {
		return
	}

	entry := storage.ScoreEntry{
		RunID:  m.runID,
		GameID: m.game.ID(),
		Score:  m.gameState.Score,
		Lines:  m.gameState.Lines,
		Level:  m.gameState.Level,
	}
	if s, ok := m.game.(snapshotter); ok {
		entry.Character = s.Snapshot().Character
	}
	if _, err := store.SaveScore(entry); err != nil {
		m.logger.Warn("could not save score", "game", entry.GameID, "error", err)
		return
	}
	m.logger.Info("score saved",
		"game", entry.GameID,
		"profile", m.opts.Profile,
		"score", entry.Score,
		"lines", entry.Lines,
		"run", entry.RunID,
	)
}

// persistProgress stores a snapshot of an unfinished run so it can be
// resumed later. Finished runs were already cleared by saveScore.
func (m *GameModel) persistProgress() {
	store := m.opts.Store
	if store == nil || m.gameState.Ended() {
		return
	}
	s, ok := m.game.(snapshotter)
	if !ok {
		return
	}
	if m.gameState.Score == 0 && m.gameState.Lines == 0 {
		return
	}
	if err := store.SaveSnapshot(m.opts.Profile, s.Snapshot()); err != nil {
		m.logger.Warn("could not save snapshot", "profile", m.opts.Profile, "error", err)
		return
	}
	m.logger.Info("snapshot saved", "profile", m.opts.Profile, "score", m.gameState.Score)
}

// saveScreenshot writes the current screen to ~/.blocks/screenshots.
func (m *GameModel) saveScreenshot() {
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		m.logger.Warn("could not save screenshot", "error", err)
		return
	}
	dir := filepath.Join(home, ".blocks", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.logger.Warn("could not save screenshot", "error", err)
		return
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("could not save screenshot", "error", err)
		return
	}
	m.logger.Info("screenshot saved", "path", path)
}

// View renders the game.
func (m GameModel) View() string {
	if m.quitting {
		return ""
	}
	m.game.Render(m.screen)
	return RenderScreen(m.screen)
}

// IsQuitting returns true if user requested to quit entirely.
func (m GameModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m GameModel) BackToMenu() bool {
	return m.backToMenu
}

// State returns the state seen on the last tick.
func (m GameModel) State() core.GameState {
	return m.gameState
}

// Run plays game in the terminal until the player quits or goes back.
// It reports whether the player asked for the menu.
func Run(game registry.Game, cfg core.RuntimeConfig, opts GameOptions) (backToMenu bool, err error) {
	opts.Standalone = true
	model := NewGameModel(game, cfg, opts)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	final, err := p.Run()
	if err != nil {
		return false, err
	}
	if gm, ok := final.(GameModel); ok {
		return gm.BackToMenu(), nil
	}
	return false, nil
}
