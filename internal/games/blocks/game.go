// Package blocks adapts the falling-block engine to the platform's Game
// interface and registers the marathon and sprint modes.
package blocks

import (
	"fmt"
	"sync"
	"time"

	"github.com/vovakirdan/tui-blocks/internal/config"
	"github.com/vovakirdan/tui-blocks/internal/core"
	"github.com/vovakirdan/tui-blocks/internal/games/blocks/engine"
	"github.com/vovakirdan/tui-blocks/internal/registry"
)

// Mode IDs.
const (
	IDMarathon = "blocks"
	IDSprint   = "blocks_sprint"
)

// Mode represents the game mode.
type Mode int

const (
	ModeMarathon Mode = iota // play until a spawn is blocked
	ModeSprint               // finish after sprint_lines lines
)

// Options are the per-run choices made outside the game: CLI flags, the
// player's profile and the host's event sink.
type Options struct {
	ConfigPath string
	Difficulty config.DifficultyPreset
	Character  string
	Theme      string
	Events     engine.Events
	Settings   *engine.Settings
	Resume     *engine.Snapshot // restored once, on the next Reset
}

var (
	defaultsMu sync.Mutex
	defaults   Options
)

// SetConfigPath sets the custom config path for new games.
func SetConfigPath(path string) {
	defaultsMu.Lock()
	defer defaultsMu.Unlock()
	defaults.ConfigPath = path
}

// SetDifficultyPreset sets the difficulty preset for new games.
// Unknown names clear the preset.
func SetDifficultyPreset(preset string) {
	p, err := config.ParseDifficulty(preset)
	if err != nil {
		p = ""
	}
	defaultsMu.Lock()
	defer defaultsMu.Unlock()
	defaults.Difficulty = p
}

// SetCharacter selects the character for new games.
func SetCharacter(id string) {
	defaultsMu.Lock()
	defer defaultsMu.Unlock()
	defaults.Character = id
}

// SetTheme selects the palette for new games.
func SetTheme(name string) {
	defaultsMu.Lock()
	defer defaultsMu.Unlock()
	defaults.Theme = name
}

// SetEvents installs the event sink for new games.
func SetEvents(e engine.Events) {
	defaultsMu.Lock()
	defer defaultsMu.Unlock()
	defaults.Events = e
}

// SetSettings overrides the default settings for new games.
func SetSettings(st engine.Settings) {
	defaultsMu.Lock()
	defer defaultsMu.Unlock()
	defaults.Settings = &st
}

// SetResume makes the next new game restore snap on its first Reset.
func SetResume(snap engine.Snapshot) {
	defaultsMu.Lock()
	defer defaultsMu.Unlock()
	defaults.Resume = &snap
}

// takeDefaults copies the package defaults, consuming the resume snapshot.
func takeDefaults() Options {
	defaultsMu.Lock()
	defer defaultsMu.Unlock()
	opts := defaults
	defaults.Resume = nil
	return opts
}

const toastTicks = 120

// Game implements registry.Game for both modes.
type Game struct {
	mode    Mode
	opts    Options
	cfg     config.BlocksConfig
	session *engine.Session
	runtime core.RuntimeConfig

	dt       time.Duration
	tick     uint64
	restarts int64
	toasts   *toastLog
	cfgErr   error
}

// New creates a marathon game.
func New() *Game {
	return &Game{mode: ModeMarathon, opts: takeDefaults()}
}

// NewSprint creates a sprint game.
func NewSprint() *Game {
	return &Game{mode: ModeSprint, opts: takeDefaults()}
}

func init() {
	registry.Register(IDMarathon, func() registry.Game { return New() })
	registry.Register(IDSprint, func() registry.Game { return NewSprint() })
}

// Configure replaces the options. Call it before Reset; the SSH server
// uses it to give each user their own profile.
func (g *Game) Configure(opts Options) {
	g.opts = opts
}

// ID returns the mode identifier.
func (g *Game) ID() string {
	if g.mode == ModeSprint {
		return IDSprint
	}
	return IDMarathon
}

// Title returns the display name.
func (g *Game) Title() string {
	if g.mode == ModeSprint {
		return "Blocks (Sprint)"
	}
	return "Blocks"
}

// Reset loads the configuration and starts a fresh session.
func (g *Game) Reset(rt core.RuntimeConfig) {
	if rt.TickRate <= 0 {
		rt.TickRate = 60
	}
	g.runtime = rt
	g.dt = time.Second / time.Duration(rt.TickRate)
	g.tick = 0

	cfg, err := config.LoadBlocks(g.opts.ConfigPath)
	g.cfgErr = err
	config.ApplyBlocksPreset(&cfg, g.opts.Difficulty)
	g.cfg = cfg

	theme := g.opts.Theme
	if !cfg.HasTheme(theme) {
		theme = cfg.DefaultTheme
	}

	g.toasts = newToastLog(g.opts.Events)
	sessionOpts := []engine.Option{
		engine.WithCharacter(g.opts.Character),
		engine.WithTheme(theme),
		engine.WithEvents(g.toasts),
	}
	if g.opts.Settings != nil {
		sessionOpts = append(sessionOpts, engine.WithSettings(*g.opts.Settings))
	}

	seed := rt.Seed + g.restarts
	g.session = engine.NewSession(EngineConfig(cfg, seed, g.mode == ModeSprint), sessionOpts...)

	if g.opts.Resume != nil {
		snap := *g.opts.Resume
		g.opts.Resume = nil
		g.session.Deserialize(snap)
		if !cfg.HasTheme(g.session.Theme()) {
			g.session.SetTheme(theme)
		}
		g.toasts.add("Resumed at level %d", g.session.Score().Level)
	}
}

// Step applies the frame's input then advances the session by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.tick++

	if in.Has(core.ActionRestart) && g.session.Done() {
		g.restarts++
		g.Reset(g.runtime)
		return core.StepResult{State: g.State()}
	}

	for _, key := range in.Keys {
		g.session.FeedKey(key)
	}

	intents := make([]engine.Intent, 0, len(in.Actions))
	for _, a := range in.Actions {
		if it := intentFor(a); it != engine.IntentNone {
			intents = append(intents, it)
		}
	}
	g.session.Update(g.dt, intents)
	g.toasts.step()

	return core.StepResult{State: g.State()}
}

func intentFor(a core.Action) engine.Intent {
	switch a {
	case core.ActionLeft:
		return engine.IntentLeft
	case core.ActionRight:
		return engine.IntentRight
	case core.ActionSoftDrop:
		return engine.IntentSoftDrop
	case core.ActionHardDrop:
		return engine.IntentHardDrop
	case core.ActionRotateCW:
		return engine.IntentRotateCW
	case core.ActionRotateCCW:
		return engine.IntentRotateCCW
	case core.ActionHold:
		return engine.IntentHold
	case core.ActionPause:
		return engine.IntentPause
	default:
		return engine.IntentNone
	}
}

// State returns the platform summary.
func (g *Game) State() core.GameState {
	if g.session == nil {
		return core.GameState{}
	}
	sc := g.session.Score()
	return core.GameState{
		Score:    sc.Score,
		Lines:    sc.Lines,
		Level:    sc.Level,
		GameOver: g.session.GameOver(),
		Finished: g.session.Finished(),
		Paused:   g.session.Paused(),
	}
}

// Session exposes the running session for persistence.
func (g *Game) Session() *engine.Session {
	return g.session
}

// Snapshot captures the running session.
func (g *Game) Snapshot() engine.Snapshot {
	return g.session.Serialize()
}

// Config returns the configuration loaded by the last Reset.
func (g *Game) Config() config.BlocksConfig {
	return g.cfg
}

// ConfigError returns the error from the last config load, if any. The
// game still runs on defaults when it is set.
func (g *Game) ConfigError() error {
	return g.cfgErr
}

// toastLog forwards events to the host sink and keeps short messages for
// the HUD.
type toastLog struct {
	next engine.Events
	msgs []toast
}

type toast struct {
	text string
	left int
}

func newToastLog(next engine.Events) *toastLog {
	if next == nil {
		next = engine.NopEvents{}
	}
	return &toastLog{next: next}
}

func (t *toastLog) add(format string, args ...any) {
	t.msgs = append(t.msgs, toast{text: fmt.Sprintf(format, args...), left: toastTicks})
	if len(t.msgs) > 3 {
		t.msgs = t.msgs[len(t.msgs)-3:]
	}
}

func (t *toastLog) step() {
	alive := t.msgs[:0]
	for _, m := range t.msgs {
		m.left--
		if m.left > 0 {
			alive = append(alive, m)
		}
	}
	t.msgs = alive
}

func (t *toastLog) current() []string {
	out := make([]string, len(t.msgs))
	for i, m := range t.msgs {
		out[i] = m.text
	}
	return out
}

func (t *toastLog) LinesCleared(rows, points, combo int) {
	t.next.LinesCleared(rows, points, combo)
	switch {
	case rows >= 4:
		t.add("TETRIS! +%d", points)
	case combo > 1:
		t.add("Combo x%d +%d", combo, points)
	}
}

func (t *toastLog) LevelUp(level int) {
	t.next.LevelUp(level)
	t.add("Level %d", level)
}

func (t *toastLog) PowerUpActivated(kind engine.PowerUpKind, d time.Duration) {
	t.next.PowerUpActivated(kind, d)
	t.add("%s!", kind)
}

func (t *toastLog) PowerUpExpired(kind engine.PowerUpKind) {
	t.next.PowerUpExpired(kind)
}

func (t *toastLog) EasterEgg(id string) {
	t.next.EasterEgg(id)
	t.add("Secret found: %s", id)
}

func (t *toastLog) AchievementUnlocked(a engine.Achievement) {
	t.next.AchievementUnlocked(a)
	t.add("Achievement: %s +%d", a.Name, a.Points)
}

func (t *toastLog) GameOver(score int) {
	t.next.GameOver(score)
}

var _ engine.Events = (*toastLog)(nil)
