package engine

import (
	"math/rand"
	"time"
)

// Config carries every tunable the session needs. The host builds it from
// the YAML config; DefaultConfig matches the embedded defaults.
type Config struct {
	Rows    int
	Cols    int
	Preview int

	Scoring ScoringRules
	Levels  LevelRules

	PowerUpDurations map[PowerUpKind]time.Duration
	PowerSpawnChance float64

	EasterEggs   []EasterEgg
	Characters   []Character
	Achievements []Achievement

	// SprintLines ends the session as finished once reached; 0 plays forever.
	SprintLines int

	ParticleLife time.Duration
	MaxParticles int

	Seed int64
}

// DefaultConfig returns the built-in marathon rules.
func DefaultConfig() Config {
	return Config{
		Rows:    20,
		Cols:    10,
		Preview: 3,
		Scoring: DefaultScoringRules(),
		Levels:  DefaultLevelRules(),
		PowerUpDurations: map[PowerUpKind]time.Duration{
			PowerFreeze: 10 * time.Second,
			PowerGhost:  15 * time.Second,
			PowerMulti:  20 * time.Second,
		},
		PowerSpawnChance: 0.05,
		EasterEggs:       DefaultEasterEggs(),
		Characters:       DefaultCharacters(),
		Achievements:     DefaultAchievements(),
		ParticleLife:     600 * time.Millisecond,
		MaxParticles:     200,
		Seed:             1,
	}
}

// Intent is a discrete player action.
type Intent int

const (
	IntentNone Intent = iota
	IntentLeft
	IntentRight
	IntentSoftDrop
	IntentHardDrop
	IntentRotateCW
	IntentRotateCCW
	IntentHold
	IntentPause
)

// kicks are the column offsets tried, in order, when a rotation collides.
var kicks = []int{0, -1, 1, -2, 2}

// Option customises a new session.
type Option func(*Session)

// WithCharacter selects the character by id; unknown ids fall back to steve.
func WithCharacter(id string) Option {
	return func(s *Session) {
		s.character = FindCharacter(s.cfg.Characters, id)
	}
}

// WithEvents installs an event sink.
func WithEvents(e Events) Option {
	return func(s *Session) {
		if e != nil {
			s.events = e
		}
	}
}

// WithSettings replaces the default settings.
func WithSettings(st Settings) Option {
	return func(s *Session) {
		s.settings = st
	}
}

// WithTheme selects the palette name reported to the renderer.
func WithTheme(name string) Option {
	return func(s *Session) {
		if name != "" {
			s.theme = name
		}
	}
}

// Session owns the whole game state for one player. It is not safe for
// concurrent use; the game loop is its only owner.
type Session struct {
	cfg    Config
	rng    *rand.Rand
	events Events

	grid     *Grid
	bag      *Bag
	current  Piece
	held     Kind
	canHold  bool
	scorer   *Scorer
	powerUps *PowerUps
	eggs     *EggDetector

	character Character
	settings  Settings
	theme     string

	stats        Stats
	achievements map[string]bool
	particles    []Particle

	gravity  time.Duration
	gameTime time.Duration
	paused   bool
	gameOver bool
	finished bool
}

// NewSession creates a session and spawns the first piece.
func NewSession(cfg Config, opts ...Option) *Session {
	if cfg.Preview < 0 {
		cfg.Preview = 0
	}
	s := &Session{
		cfg:      cfg,
		rng:      rand.New(rand.NewSource(cfg.Seed)),
		events:   NopEvents{},
		scorer:   NewScorer(cfg.Scoring, cfg.Levels),
		powerUps: NewPowerUps(),
		settings: DefaultSettings(),
		theme:    "classic",
	}
	s.character = FindCharacter(cfg.Characters, DefaultCharacterID)
	for _, opt := range opts {
		opt(s)
	}
	s.Reset()
	return s
}

// Reset starts a fresh game. Character, settings and theme are kept.
func (s *Session) Reset() {
	s.grid = NewGrid(s.cfg.Rows, s.cfg.Cols)
	s.bag = NewBag(s.rng)
	s.scorer.Reset()
	s.powerUps.Clear()
	s.eggs = NewEggDetector(s.cfg.EasterEggs)
	s.stats = Stats{}
	s.achievements = make(map[string]bool)
	s.particles = nil
	s.held = KindNone
	s.gravity = 0
	s.gameTime = 0
	s.paused = false
	s.gameOver = false
	s.finished = false
	s.spawnNext()
}

// Update applies the queued intents in order, then advances timers and
// gravity by dt. At most one gravity step happens per call. While paused
// only IntentPause is honoured and no time passes.
func (s *Session) Update(dt time.Duration, intents []Intent) {
	for _, in := range intents {
		s.Apply(in)
	}
	if s.paused || s.Done() || dt <= 0 {
		return
	}

	s.gameTime += dt
	s.stats.TimeAliveMs = s.gameTime.Milliseconds()

	for _, kind := range s.powerUps.Tick(dt) {
		s.events.PowerUpExpired(kind)
	}
	if len(s.particles) > 0 {
		s.particles = stepParticles(s.particles, dt)
	}

	interval := s.Interval()
	s.gravity += dt
	if s.gravity >= interval {
		s.gravity -= interval
		if s.gravity > interval {
			s.gravity = interval
		}
		s.fall()
	}
	s.checkAchievements()
}

// Apply performs a single intent and reports whether it changed anything.
func (s *Session) Apply(in Intent) bool {
	switch in {
	case IntentPause:
		return s.TogglePause()
	case IntentLeft:
		return s.Move(-1)
	case IntentRight:
		return s.Move(1)
	case IntentSoftDrop:
		return s.SoftDrop()
	case IntentHardDrop:
		return s.HardDrop() >= 0
	case IntentRotateCW:
		return s.Rotate(RotateCW)
	case IntentRotateCCW:
		return s.Rotate(RotateCCW)
	case IntentHold:
		return s.Hold()
	default:
		return false
	}
}

func (s *Session) acceptsInput() bool {
	return !s.paused && !s.Done()
}

// Move shifts the current piece dCol columns if the target is valid.
func (s *Session) Move(dCol int) bool {
	if !s.acceptsInput() || dCol == 0 {
		return false
	}
	if !IsValidPosition(s.grid, s.current, 0, dCol) {
		return false
	}
	s.current = s.current.Moved(0, dCol)
	return true
}

// Rotate turns the current piece, trying a short list of column kicks.
// A rotation that fits nowhere is rejected and the piece is unchanged.
func (s *Session) Rotate(dir RotateDir) bool {
	if !s.acceptsInput() {
		return false
	}
	turned := s.current.Rotated(dir)
	for _, dc := range kicks {
		if IsValidPosition(s.grid, turned, 0, dc) {
			s.current = turned.Moved(0, dc)
			return true
		}
	}
	return false
}

// SoftDrop moves the piece down one row for SoftDrop points, or locks it
// when it is resting.
func (s *Session) SoftDrop() bool {
	if !s.acceptsInput() {
		return false
	}
	if IsValidPosition(s.grid, s.current, 1, 0) {
		s.current = s.current.Moved(1, 0)
		s.scorer.AddPoints(s.scorer.Rules().SoftDrop)
		s.gravity = 0
		return true
	}
	s.lockCurrent()
	return true
}

// HardDrop drops the piece to its resting row and locks it. It returns the
// number of rows fallen, or -1 when input is not accepted.
func (s *Session) HardDrop() int {
	if !s.acceptsInput() {
		return -1
	}
	rows := s.dropDistance()
	s.current = s.current.Moved(rows, 0)
	s.scorer.AddPoints(rows * s.scorer.Rules().HardDrop)
	s.lockCurrent()
	return rows
}

// Hold stores the current kind and brings out the previously held one, or
// the next one from the queue. Allowed once per spawned piece.
func (s *Session) Hold() bool {
	if !s.acceptsInput() || !s.canHold {
		return false
	}
	kind := s.current.Kind
	if s.held == KindNone {
		s.held = kind
		s.place(s.nextKind())
	} else {
		s.held, kind = kind, s.held
		s.place(kind)
	}
	s.canHold = false
	return true
}

// TogglePause flips the pause flag. It has no effect once the game ended.
func (s *Session) TogglePause() bool {
	if s.Done() {
		return false
	}
	s.paused = !s.paused
	return true
}

// FeedKey passes a raw key name to the easter-egg detector, whether or not
// the game is paused, and applies the effects of any egg that fired.
// Keys are ignored after the game ended.
func (s *Session) FeedKey(key string) []EasterEgg {
	if s.Done() || key == "" {
		return nil
	}
	fired := s.eggs.Feed(key)
	for _, egg := range fired {
		s.scorer.AddPoints(egg.Effect.Score)
		s.events.EasterEgg(egg.ID)
		if s.powerUps.Add(egg.Effect.PowerUp, egg.Effect.Duration) {
			s.events.PowerUpActivated(egg.Effect.PowerUp, egg.Effect.Duration)
		}
	}
	if len(fired) > 0 {
		s.checkAchievements()
	}
	return fired
}

func (s *Session) fall() {
	if IsValidPosition(s.grid, s.current, 1, 0) {
		s.current = s.current.Moved(1, 0)
		return
	}
	s.lockCurrent()
}

func (s *Session) dropDistance() int {
	rows := 0
	for IsValidPosition(s.grid, s.current, rows+1, 0) {
		rows++
	}
	return rows
}

func (s *Session) lockCurrent() {
	p := s.current
	s.grid.Lock(p)
	s.stats.TotalPieces++
	s.gravity = 0

	level := s.scorer.State().Level
	full := s.grid.FullRows()
	n := s.grid.ClearFullRows()
	if n > 0 && s.settings.Particles {
		s.particles = emitRowParticles(s.particles, s.rng, full, s.grid.Cols(), s.cfg.ParticleLife, s.cfg.MaxParticles)
	}

	res := s.scorer.OnLock(n, s.scoreMultiplier())
	if n > 0 {
		rules := s.scorer.Rules()
		if s.character.Ability == AbilityClearBonus {
			s.scorer.AddPoints(rules.ClearBonus * n * level)
		}
		if s.grid.IsEmpty() {
			s.stats.PerfectClears++
			s.scorer.AddPoints(rules.PerfectClear * level)
		}
		s.stats.recordClear(n, res.Combo)
		s.events.LinesCleared(n, res.Points, res.Combo)
	}
	if res.LevelChanged {
		s.events.LevelUp(res.Level)
	}
	if p.PowerUp != PowerNone {
		s.activatePiecePower(p)
	}
	s.checkAchievements()

	if s.cfg.SprintLines > 0 && s.scorer.State().Lines >= s.cfg.SprintLines {
		s.finished = true
		s.events.GameOver(s.scorer.State().Score)
		return
	}
	s.spawnNext()
}

func (s *Session) activatePiecePower(p Piece) {
	switch p.PowerUp {
	case PowerBomb:
		row, col := p.Center()
		s.grid.ClearArea(row, col, 1)
		s.events.PowerUpActivated(PowerBomb, 0)
	case PowerClear:
		s.grid.ClearRow(s.grid.Rows() - 1)
		s.events.PowerUpActivated(PowerClear, 0)
	default:
		d := s.cfg.PowerUpDurations[p.PowerUp]
		if s.powerUps.Add(p.PowerUp, d) {
			s.events.PowerUpActivated(p.PowerUp, d)
		}
	}
}

func (s *Session) scoreMultiplier() float64 {
	m := s.character.ScoreMultiplier
	if s.powerUps.IsActive(PowerMulti) {
		m *= 2
	}
	return m
}

func (s *Session) nextKind() Kind {
	if s.powerUps.IsActive(PowerTetrisRain) {
		return KindI
	}
	return s.bag.Next()
}

func (s *Session) spawnNext() {
	s.canHold = true
	s.place(s.nextKind())
}

// place makes kind the current piece at the spawn anchor. A blocked spawn
// ends the game unless GODMODE is running, which wipes the field instead.
func (s *Session) place(kind Kind) {
	p := NewPiece(kind, s.grid.Cols())
	if s.cfg.PowerSpawnChance > 0 && s.rng.Float64() < s.cfg.PowerSpawnChance {
		p.PowerUp = PieceCarriedPowerUps[s.rng.Intn(len(PieceCarriedPowerUps))]
	}
	s.current = p
	s.gravity = 0

	if IsValidPosition(s.grid, p, 0, 0) {
		return
	}
	if s.powerUps.IsActive(PowerGodMode) {
		s.grid.Clear()
		s.powerUps.Remove(PowerGodMode)
		s.events.PowerUpExpired(PowerGodMode)
		return
	}
	s.gameOver = true
	s.events.GameOver(s.scorer.State().Score)
}

// Interval returns the effective gravity interval: the level curve scaled
// by character speed, doubled while FREEZE runs.
func (s *Session) Interval() time.Duration {
	d := time.Duration(float64(s.scorer.Interval()) / s.character.Speed)
	if s.powerUps.IsActive(PowerFreeze) {
		d *= 2
	}
	return max(d, time.Millisecond)
}

// Grid returns the playfield. Callers must treat it as read-only.
func (s *Session) Grid() *Grid { return s.grid }

// Current returns the falling piece.
func (s *Session) Current() Piece { return s.current }

// Ghost returns the current piece projected to its resting row.
func (s *Session) Ghost() Piece {
	return s.current.Moved(s.dropDistance(), 0)
}

// ShowGhost reports whether the renderer should draw the ghost.
func (s *Session) ShowGhost() bool {
	return s.settings.ShowGhost || s.powerUps.IsActive(PowerGhost)
}

// Held returns the held kind, or KindNone.
func (s *Session) Held() Kind { return s.held }

// CanHold reports whether Hold is currently allowed.
func (s *Session) CanHold() bool { return s.canHold }

// Preview returns the upcoming kinds.
func (s *Session) Preview() []Kind { return s.bag.Peek(s.cfg.Preview) }

func (s *Session) Score() ScoreState { return s.scorer.State() }
func (s *Session) Stats() Stats { return s.stats }
func (s *Session) Settings() Settings { return s.settings }
func (s *Session) Character() Character { return s.character }
func (s *Session) Theme() string { return s.theme }
func (s *Session) Particles() []Particle { return s.particles }
func (s *Session) PowerUps() []ActivePowerUp { return s.powerUps.Active() }
func (s *Session) GameTime() time.Duration { return s.gameTime }

// SetSettings replaces the settings mid-game.
func (s *Session) SetSettings(st Settings) { s.settings = st }

// SetTheme changes the palette name; empty names are ignored.
func (s *Session) SetTheme(name string) {
	if name != "" {
		s.theme = name
	}
}

// PowerActive reports whether kind is running.
func (s *Session) PowerActive(kind PowerUpKind) bool { return s.powerUps.IsActive(kind) }

// Eggs returns the activated easter-egg ids, sorted.
func (s *Session) Eggs() []string { return s.eggs.Activated() }

// Achievements returns the unlocked achievement ids in definition order.
func (s *Session) Achievements() []string {
	var ids []string
	for _, a := range s.cfg.Achievements {
		if s.achievements[a.ID] {
			ids = append(ids, a.ID)
		}
	}
	return ids
}

// Paused reports whether the session is paused.
func (s *Session) Paused() bool { return s.paused }

// GameOver reports whether a spawn was blocked.
func (s *Session) GameOver() bool { return s.gameOver }

// Finished reports whether a sprint target was reached.
func (s *Session) Finished() bool { return s.finished }

// Done reports whether the session ended either way.
func (s *Session) Done() bool { return s.gameOver || s.finished }
