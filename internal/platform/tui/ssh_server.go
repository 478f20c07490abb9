package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/bubbletea"

	"github.com/vovakirdan/tui-blocks/internal/config"
	"github.com/vovakirdan/tui-blocks/internal/core"
	"github.com/vovakirdan/tui-blocks/internal/games/blocks"
	"github.com/vovakirdan/tui-blocks/internal/registry"
	"github.com/vovakirdan/tui-blocks/internal/storage"
)

// SSHServerConfig holds configuration for the SSH server.
type SSHServerConfig struct {
	// Address is the host:port to listen on (e.g., ":23234").
	Address string

	// HostKeyPath is the path to the host key file.
	// If empty, a key will be auto-generated at ~/.blocks/host_key.
	HostKeyPath string

	// DBPath is the path to the scores database.
	DBPath string

	// ConfigPath overrides the game config for every session.
	ConfigPath string

	// Difficulty is the preset applied to every session.
	Difficulty config.DifficultyPreset

	// TickRate is the simulation rate for every session.
	TickRate int

	// IdleTimeout is how long to wait before closing idle connections.
	IdleTimeout time.Duration
}

// DefaultSSHServerConfig returns a config with sensible defaults.
func DefaultSSHServerConfig() SSHServerConfig {
	return SSHServerConfig{
		Address:     ":23234",
		DBPath:      "~/.blocks/blocks.db",
		TickRate:    60,
		IdleTimeout: 30 * time.Minute,
	}
}

// SSHServer wraps a Wish SSH server. Each SSH user gets their own
// profile for character, theme and resumable snapshot.
type SSHServer struct {
	config SSHServerConfig
	server *ssh.Server
	store  *storage.Store
	logger *log.Logger
}

// NewSSHServer creates a new SSH server with the given configuration.
func NewSSHServer(cfg SSHServerConfig) (*SSHServer, error) {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "blocks-ssh",
	})

	if cfg.TickRate <= 0 {
		cfg.TickRate = 60
	}

	// Open storage
	store, err := storage.Open(cfg.DBPath)
	if err != nil {
		logger.Warn("could not open scores database", "error", err)
		// Continue without storage
	}

	if _, err := config.LoadBlocks(cfg.ConfigPath); err != nil {
		logger.Warn("invalid game config, using defaults", "path", cfg.ConfigPath, "error", err)
	}

	srv := &SSHServer{
		config: cfg,
		store:  store,
		logger: logger,
	}

	// Resolve host key path
	hostKeyPath := cfg.HostKeyPath
	if hostKeyPath == "" {
		hostKeyPath = filepath.Join(config.AppDir(), "host_key")
	}

	// Ensure host key directory exists
	hostKeyDir := filepath.Dir(hostKeyPath)
	if mkdirErr := os.MkdirAll(hostKeyDir, 0o700); mkdirErr != nil {
		return nil, fmt.Errorf("cannot create host key directory: %w", mkdirErr)
	}

	opts := []ssh.Option{
		wish.WithAddress(cfg.Address),
		wish.WithHostKeyPath(hostKeyPath),
		wish.WithIdleTimeout(cfg.IdleTimeout),
		wish.WithMiddleware(
			bubbletea.Middleware(srv.teaHandler),
			srv.loggingMiddleware,
		),
	}

	server, err := wish.NewServer(opts...)
	if err != nil {
		if store != nil {
			store.Close()
		}
		return nil, fmt.Errorf("cannot create SSH server: %w", err)
	}

	srv.server = server
	return srv, nil
}

// teaHandler creates a Bubble Tea program for each SSH session.
func (s *SSHServer) teaHandler(sshSession ssh.Session) (tea.Model, []tea.ProgramOption) {
	pty, _, ok := sshSession.Pty()
	if !ok {
		s.logger.Warn("no PTY requested", "user", sshSession.User())
		return nil, nil
	}

	cfg := core.RuntimeConfig{
		ScreenW:  pty.Window.Width,
		ScreenH:  pty.Window.Height,
		TickRate: s.config.TickRate,
		Seed:     time.Now().UnixNano(),
	}

	model := NewSessionModel(SessionOptions{
		Store:      s.store,
		Profile:    sshSession.User(),
		ConfigPath: s.config.ConfigPath,
		Difficulty: s.config.Difficulty,
		Logger:     s.logger.With("user", sshSession.User()),
	}, cfg)

	return model, []tea.ProgramOption{
		tea.WithAltScreen(),
	}
}

// loggingMiddleware logs SSH session events.
func (s *SSHServer) loggingMiddleware(next ssh.Handler) ssh.Handler {
	return func(sshSession ssh.Session) {
		start := time.Now()
		s.logger.Info("session started",
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
		)
		next(sshSession)
		s.logger.Info("session ended",
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
			"duration", time.Since(start).Round(time.Second),
		)
	}
}

// ListenAndServe starts the SSH server and blocks until shutdown.
func (s *SSHServer) ListenAndServe() error {
	s.logger.Info("starting SSH server", "address", s.config.Address)

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	go func() {
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			s.logger.Error("server error", "error", err)
		}
	}()

	<-done
	s.logger.Info("shutting down...")
	return s.Shutdown()
}

// Shutdown gracefully stops the server.
func (s *SSHServer) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if s.store != nil {
		s.store.Close()
	}

	return s.server.Shutdown(ctx)
}

// Addr returns the server's listen address string.
func (s *SSHServer) Addr() string {
	return s.config.Address
}

// SessionOptions configure a SessionModel.
type SessionOptions struct {
	Store      *storage.Store
	Profile    string
	ConfigPath string
	Difficulty config.DifficultyPreset
	Logger     *log.Logger
}

type sessionState int

const (
	stateMenu sessionState = iota
	stateCharacter
	stateScores
	stateGame
)

// SessionModel manages the full flow inside one program:
// menu -> game | character | scores -> menu.
type SessionModel struct {
	opts      SessionOptions
	config    core.RuntimeConfig
	state     sessionState
	menu      MenuModel
	character CharacterModel
	scores    ScoreboardModel
	gameModel *GameModel
	quitting  bool
}

// NewSessionModel creates a new session model.
func NewSessionModel(opts SessionOptions, cfg core.RuntimeConfig) SessionModel {
	if opts.Profile == "" {
		opts.Profile = storage.DefaultProfile
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	return SessionModel{
		opts:   opts,
		config: cfg,
		menu:   NewMenuModel(opts.Store, opts.Profile, cfg),
	}
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	return m.menu.Init()
}

// Update handles messages for the session.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.config.ScreenW = wsm.Width
		m.config.ScreenH = wsm.Height
	}

	switch m.state {
	case stateGame:
		return m.updateGame(msg)
	case stateCharacter:
		return m.updateCharacter(msg)
	case stateScores:
		return m.updateScores(msg)
	}
	return m.updateMenu(msg)
}

func (m SessionModel) toMenu() (tea.Model, tea.Cmd) {
	m.state = stateMenu
	m.gameModel = nil
	m.menu = NewMenuModel(m.opts.Store, m.opts.Profile, m.config)
	return m, m.menu.Init()
}

// updateMenu handles updates when in menu mode. The menu's own quit
// command is dropped unless the player really quit.
func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	newMenu, cmd := m.menu.Update(msg)
	if menuModel, ok := newMenu.(MenuModel); ok {
		m.menu = menuModel
	}

	if m.menu.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	selected := m.menu.Selected()
	if selected == nil {
		return m, cmd
	}
	m.config = m.menu.Config()

	switch selected.Choice {
	case ChoicePlay, ChoiceResume:
		return m.startGame(selected.GameID, selected.Choice == ChoiceResume)
	case ChoiceCharacter:
		cfg, err := config.LoadBlocks(m.opts.ConfigPath)
		if err != nil {
			m.opts.Logger.Warn("invalid game config, using defaults", "error", err)
		}
		m.character = NewCharacterModel(cfg, m.opts.Store, m.opts.Profile, m.config.ScreenW, m.config.ScreenH)
		m.state = stateCharacter
		return m, m.character.Init()
	case ChoiceScores:
		m.scores = NewScoreboardModel(m.opts.Store, m.config.ScreenW, m.config.ScreenH)
		m.state = stateScores
		return m, m.scores.Init()
	}
	return m.toMenu()
}

// startGame builds the game with the profile's preferences.
func (m SessionModel) startGame(gameID string, resume bool) (tea.Model, tea.Cmd) {
	game, err := registry.Create(gameID)
	if err != nil {
		m.opts.Logger.Error("cannot create game", "game", gameID, "error", err)
		return m.toMenu()
	}

	if bg, ok := game.(*blocks.Game); ok {
		bg.Configure(m.blocksOptions(resume))
	}

	gameModel := NewGameModel(game, m.config, GameOptions{
		Store:   m.opts.Store,
		Profile: m.opts.Profile,
		Logger:  m.opts.Logger,
	})
	m.gameModel = &gameModel
	m.state = stateGame
	m.opts.Logger.Info("game started", "game", gameID, "resume", resume)

	return m, m.gameModel.Init()
}

func (m SessionModel) blocksOptions(resume bool) blocks.Options {
	opts := blocks.Options{
		ConfigPath: m.opts.ConfigPath,
		Difficulty: m.opts.Difficulty,
		Events:     NewLogEvents(m.opts.Logger),
	}
	store := m.opts.Store
	if store == nil {
		return opts
	}

	if id, err := store.Character(m.opts.Profile); err == nil {
		opts.Character = id
	}
	if theme, err := store.Theme(m.opts.Profile); err == nil {
		opts.Theme = theme
	}
	if resume {
		snap, ok, err := store.LoadSnapshot(m.opts.Profile)
		switch {
		case err != nil:
			m.opts.Logger.Warn("cannot load snapshot", "error", err)
		case ok:
			opts.Resume = &snap
		}
	}
	return opts
}

func (m SessionModel) updateCharacter(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.character.Update(msg)
	if cm, ok := newModel.(CharacterModel); ok {
		m.character = cm
	}

	if m.character.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}
	if m.character.IsGoingBack() {
		if err := m.character.Err(); err != nil {
			m.opts.Logger.Warn("cannot save character", "error", err)
		} else if sel, ok := m.character.Selection(); ok {
			m.opts.Logger.Info("character selected", "character", sel.Character, "theme", sel.Theme)
		}
		return m.toMenu()
	}
	return m, cmd
}

func (m SessionModel) updateScores(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.scores.Update(msg)
	if sm, ok := newModel.(ScoreboardModel); ok {
		m.scores = sm
	}

	if m.scores.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}
	if m.scores.IsGoingBack() {
		return m.toMenu()
	}
	return m, cmd
}

// updateGame handles updates when in game mode.
func (m SessionModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.gameModel.Update(msg)
	if gameModel, ok := newModel.(GameModel); ok {
		m.gameModel = &gameModel
	}

	if m.gameModel.BackToMenu() {
		return m.toMenu()
	}

	if m.gameModel.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	return m, cmd
}

// View renders the current view.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}

	switch m.state {
	case stateGame:
		if m.gameModel != nil {
			return m.gameModel.View()
		}
	case stateCharacter:
		return m.character.View()
	case stateScores:
		return m.scores.View()
	}
	return m.menu.View()
}
