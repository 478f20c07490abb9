package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	NopEvents
	cleared      []int
	levels       []int
	activated    []PowerUpKind
	expired      []PowerUpKind
	eggs         []string
	achievements []string
	gameOvers    int
}

func (r *recorder) LinesCleared(rows, _, _ int) { r.cleared = append(r.cleared, rows) }
func (r *recorder) LevelUp(level int)          { r.levels = append(r.levels, level) }
func (r *recorder) PowerUpActivated(k PowerUpKind, _ time.Duration) {
	r.activated = append(r.activated, k)
}
func (r *recorder) PowerUpExpired(k PowerUpKind)      { r.expired = append(r.expired, k) }
func (r *recorder) EasterEgg(id string)               { r.eggs = append(r.eggs, id) }
func (r *recorder) AchievementUnlocked(a Achievement) { r.achievements = append(r.achievements, a.ID) }
func (r *recorder) GameOver(int)                      { r.gameOvers++ }

func testConfig() Config {
	cfg := DefaultConfig()
	cfg.PowerSpawnChance = 0
	cfg.Seed = 42
	return cfg
}

func newTestSession(t *testing.T, opts ...Option) (*Session, *recorder) {
	t.Helper()
	rec := &recorder{}
	s := NewSession(testConfig(), append([]Option{WithEvents(rec)}, opts...)...)
	require.False(t, s.Done())
	return s, rec
}

// setupSingle places an I piece over a bottom row with a four-wide gap.
func setupSingle(s *Session) {
	fillRow(s.grid, s.grid.Rows()-1, 4, 5, 6, 7)
	s.current = NewPiece(KindI, s.grid.Cols())
}

func TestSessionSpawn(t *testing.T) {
	s, _ := newTestSession(t)

	p := s.Current()
	assert.True(t, p.Kind.Valid())
	assert.Equal(t, 0, p.Row)
	assert.Equal(t, 4, p.Col)
	assert.True(t, s.CanHold())
	assert.Len(t, s.Preview(), 3)
	assert.Equal(t, "classic", s.Theme())
	assert.Equal(t, "steve", s.Character().ID)
}

func TestSessionMoveBlockedAtWall(t *testing.T) {
	s, _ := newTestSession(t)

	for s.Move(-1) {
	}
	assert.Equal(t, 0, s.Current().Col)
	assert.False(t, s.Move(-1))

	for s.Move(1) {
	}
	assert.Equal(t, s.grid.Cols()-s.Current().Width(), s.Current().Col)
}

func TestSessionRotateKicksOffWall(t *testing.T) {
	s, _ := newTestSession(t)
	p := NewPiece(KindT, 10).Rotated(RotateCW)
	p.Row, p.Col = 5, 8
	s.current = p

	require.True(t, s.Rotate(RotateCW))
	assert.Equal(t, 7, s.Current().Col)
	assert.Equal(t, 2, s.Current().Rotation)
}

func TestSessionRotateRejected(t *testing.T) {
	s, _ := newTestSession(t)
	p := NewPiece(KindI, 10)
	p.Row, p.Col = 19, 3
	s.current = p

	assert.False(t, s.Rotate(RotateCW))
	assert.Equal(t, p.Shape, s.Current().Shape)
	assert.Equal(t, 3, s.Current().Col)
	assert.Equal(t, 0, s.Current().Rotation)
}

func TestSessionHardDrop(t *testing.T) {
	s, _ := newTestSession(t)
	s.current = NewPiece(KindT, 10)

	rows := s.HardDrop()

	assert.Equal(t, 18, rows)
	assert.Equal(t, 36, s.Score().Score)
	assert.Equal(t, 1, s.Stats().TotalPieces)
	assert.Equal(t, KindT, s.grid.Cell(19, 4))
	assert.Equal(t, 0, s.Current().Row, "next piece spawned")
}

func TestSessionSoftDrop(t *testing.T) {
	s, _ := newTestSession(t)
	s.current = NewPiece(KindO, 10)

	require.True(t, s.SoftDrop())
	assert.Equal(t, 1, s.Current().Row)
	assert.Equal(t, 1, s.Score().Score)

	s.current.Row = 18
	require.True(t, s.SoftDrop(), "resting piece locks")
	assert.Equal(t, 1, s.Stats().TotalPieces)
	assert.Equal(t, KindO, s.grid.Cell(19, 4))
}

func TestSessionLineClear(t *testing.T) {
	s, rec := newTestSession(t)
	setupSingle(s)
	s.grid.Set(18, 0, KindZ)

	s.HardDrop()

	assert.Equal(t, 1, s.Score().Lines)
	assert.Equal(t, 1, s.Score().Combo)
	assert.Equal(t, 38+100+10, s.Score().Score, "hard drop, single, first line")
	assert.Equal(t, 1, s.Stats().Singles)
	assert.Equal(t, KindZ, s.grid.Cell(19, 0))
	assert.Equal(t, []int{1}, rec.cleared)
	assert.Equal(t, []string{AchFirstLine}, rec.achievements)
	assert.NotEmpty(t, s.Particles())
}

func TestSessionPerfectClear(t *testing.T) {
	s, rec := newTestSession(t)
	setupSingle(s)

	s.HardDrop()

	assert.Equal(t, 1, s.Stats().PerfectClears)
	assert.Equal(t, 38+100+2000+10+200, s.Score().Score)
	assert.ElementsMatch(t, []string{AchFirstLine, AchPerfectionist}, rec.achievements)
}

func TestSessionCharacterModifiers(t *testing.T) {
	s, _ := newTestSession(t, WithCharacter("miner"))
	setupSingle(s)
	s.grid.Set(18, 0, KindZ)
	s.HardDrop()
	assert.Equal(t, 38+120+10, s.Score().Score)

	s, _ = newTestSession(t, WithCharacter("builder"))
	setupSingle(s)
	s.grid.Set(18, 0, KindZ)
	s.HardDrop()
	assert.Equal(t, 38+100+50+10, s.Score().Score)

	s, _ = newTestSession(t, WithCharacter("alex"))
	alexSpeed := 1.15
	assert.Equal(t, time.Duration(float64(500*time.Millisecond)/alexSpeed), s.Interval())

	s, _ = newTestSession(t, WithCharacter("nobody"))
	assert.Equal(t, "steve", s.Character().ID)
}

func TestSessionGravity(t *testing.T) {
	s, _ := newTestSession(t)
	s.settings.Particles = false
	interval := s.Interval()

	s.Update(interval/2, nil)
	assert.Equal(t, 0, s.Current().Row)

	s.Update(interval/2, nil)
	assert.Equal(t, 1, s.Current().Row)

	s.Update(10*interval, nil)
	assert.Equal(t, 2, s.Current().Row, "one gravity step per update")
}

func TestSessionIntentsBeforeGravity(t *testing.T) {
	s, _ := newTestSession(t)
	col := s.Current().Col

	s.Update(s.Interval(), []Intent{IntentLeft, IntentLeft})

	assert.Equal(t, col-2, s.Current().Col)
	assert.Equal(t, 1, s.Current().Row)
}

func TestSessionPauseFreezesEverything(t *testing.T) {
	s, _ := newTestSession(t)
	s.powerUps.Add(PowerFreeze, time.Second)

	s.Update(0, []Intent{IntentPause})
	require.True(t, s.Paused())

	s.Update(time.Minute, []Intent{IntentLeft, IntentHardDrop})
	assert.Equal(t, 0, s.Current().Row)
	assert.Equal(t, 4, s.Current().Col)
	assert.Equal(t, time.Duration(0), s.GameTime())
	assert.Equal(t, time.Second, s.powerUps.Remaining(PowerFreeze))
	assert.False(t, s.Move(1))
	assert.False(t, s.Hold())

	s.Update(0, []Intent{IntentPause})
	assert.False(t, s.Paused())
	assert.True(t, s.Move(1))
}

func TestSessionEggsWhilePaused(t *testing.T) {
	s, rec := newTestSession(t)
	s.TogglePause()

	var fired []EasterEgg
	for _, k := range Konami {
		fired = append(fired, s.FeedKey(k)...)
	}

	require.Len(t, fired, 1)
	assert.Equal(t, 30000, s.Score().Score)
	assert.True(t, s.PowerActive(PowerMulti))
	assert.Equal(t, []string{"KONAMI"}, rec.eggs)
	assert.Equal(t, []string{"KONAMI"}, s.Eggs())
}

func TestSessionMultiDoublesLineScore(t *testing.T) {
	s, _ := newTestSession(t)
	s.powerUps.Add(PowerMulti, time.Minute)
	setupSingle(s)
	s.grid.Set(18, 0, KindZ)

	s.HardDrop()

	assert.Equal(t, 38+200+10, s.Score().Score)
}

func TestSessionTetrisRain(t *testing.T) {
	s, rec := newTestSession(t)
	for _, k := range letters("tetris") {
		s.FeedKey(k)
	}
	require.True(t, s.PowerActive(PowerTetrisRain))
	assert.Contains(t, rec.activated, PowerTetrisRain)

	for i := 0; i < 3; i++ {
		s.HardDrop()
		assert.Equal(t, KindI, s.Current().Kind)
	}
}

func TestSessionFreezeSlowsGravity(t *testing.T) {
	s, _ := newTestSession(t)
	base := s.Interval()
	s.powerUps.Add(PowerFreeze, time.Second)
	assert.Equal(t, 2*base, s.Interval())

	s.Update(time.Second, nil)
	assert.False(t, s.PowerActive(PowerFreeze))
	assert.Equal(t, base, s.Interval())
}

func TestSessionHold(t *testing.T) {
	s, _ := newTestSession(t)
	first := s.Current().Kind
	next := s.Preview()[0]

	require.True(t, s.Hold())
	assert.Equal(t, first, s.Held())
	assert.Equal(t, next, s.Current().Kind)
	assert.False(t, s.Hold(), "once per piece")

	s.HardDrop()
	second := s.Current().Kind
	require.True(t, s.Hold())
	assert.Equal(t, first, s.Current().Kind)
	assert.Equal(t, second, s.Held())
}

func TestSessionGameOver(t *testing.T) {
	s, rec := newTestSession(t)
	fillRow(s.grid, 0, 9)
	fillRow(s.grid, 1, 9)

	s.spawnNext()

	assert.True(t, s.GameOver())
	assert.True(t, s.Done())
	assert.Equal(t, 1, rec.gameOvers)
	assert.False(t, s.Move(-1))
	assert.False(t, s.TogglePause())
	assert.Nil(t, s.FeedKey("t"))
}

func TestSessionGodModeSavesSpawn(t *testing.T) {
	s, rec := newTestSession(t)
	s.powerUps.Add(PowerGodMode, 10*time.Second)
	fillRow(s.grid, 0, 9)
	fillRow(s.grid, 1, 9)

	s.spawnNext()

	assert.False(t, s.GameOver())
	assert.True(t, s.grid.IsEmpty())
	assert.False(t, s.PowerActive(PowerGodMode))
	assert.Contains(t, rec.expired, PowerGodMode)
}

func TestSessionBombPiece(t *testing.T) {
	s, rec := newTestSession(t)
	p := NewPiece(KindO, 10)
	p.PowerUp = PowerBomb
	s.current = p
	s.grid.Set(19, 6, KindS)
	s.grid.Set(19, 0, KindS)

	s.HardDrop()

	assert.Equal(t, KindNone, s.grid.Cell(19, 4))
	assert.Equal(t, KindNone, s.grid.Cell(18, 5))
	assert.Equal(t, KindNone, s.grid.Cell(19, 6))
	assert.Equal(t, KindS, s.grid.Cell(19, 0))
	assert.Contains(t, rec.activated, PowerBomb)
}

func TestSessionClearPiece(t *testing.T) {
	s, _ := newTestSession(t)
	fillRow(s.grid, 19, 0, 1)
	p := NewPiece(KindO, 10)
	p.PowerUp = PowerClear
	s.current = p

	s.HardDrop()

	// The O rested on the partial bottom row; removing that row lowers it.
	assert.Equal(t, 0, countFilledRow(s.grid, 17))
	assert.Equal(t, 2, countFilledRow(s.grid, 18))
	assert.Equal(t, KindO, s.grid.Cell(19, 4))
	assert.Equal(t, 2, countFilledRow(s.grid, 19))
}

func TestSessionTimedPiecePower(t *testing.T) {
	s, _ := newTestSession(t)
	p := NewPiece(KindO, 10)
	p.PowerUp = PowerGhost
	s.current = p
	s.settings.ShowGhost = false

	s.HardDrop()

	assert.True(t, s.PowerActive(PowerGhost))
	assert.True(t, s.ShowGhost())
}

func TestSessionSprintFinishes(t *testing.T) {
	cfg := testConfig()
	cfg.SprintLines = 1
	rec := &recorder{}
	s := NewSession(cfg, WithEvents(rec))
	setupSingle(s)
	s.grid.Set(18, 0, KindZ)

	s.HardDrop()

	assert.True(t, s.Finished())
	assert.False(t, s.GameOver())
	assert.True(t, s.Done())
	assert.Equal(t, 1, rec.gameOvers)
	assert.Equal(t, -1, s.HardDrop())
}

func TestSessionLevelUpEvent(t *testing.T) {
	cfg := testConfig()
	cfg.Levels.LinesPerLevel = 1
	rec := &recorder{}
	s := NewSession(cfg, WithEvents(rec))
	setupSingle(s)
	s.grid.Set(18, 0, KindZ)

	s.HardDrop()

	assert.Equal(t, []int{2}, rec.levels)
	assert.Equal(t, 2, s.Score().Level)
}

func TestSessionGhost(t *testing.T) {
	s, _ := newTestSession(t)
	s.current = NewPiece(KindI, 10)
	assert.Equal(t, 19, s.Ghost().Row)

	s.grid.Set(10, 5, KindT)
	assert.Equal(t, 9, s.Ghost().Row)
	assert.Equal(t, 0, s.Current().Row, "projection does not move the piece")
}

func TestSessionMarathonAchievement(t *testing.T) {
	s, rec := newTestSession(t)
	s.gameTime = 30*time.Minute - time.Millisecond

	s.Update(time.Millisecond, nil)

	assert.Contains(t, rec.achievements, AchMarathonRunner)
	assert.Contains(t, s.Achievements(), AchMarathonRunner)
	assert.Equal(t, 300, s.Score().Score)
}

func TestSessionReset(t *testing.T) {
	s, _ := newTestSession(t, WithCharacter("alex"), WithTheme("neon"))
	setupSingle(s)
	s.HardDrop()
	s.FeedKey("t")
	require.NotZero(t, s.Score().Score)

	s.Reset()

	assert.Equal(t, ScoreState{Level: 1}, s.Score())
	assert.Equal(t, Stats{}, s.Stats())
	assert.True(t, s.grid.IsEmpty())
	assert.Empty(t, s.Achievements())
	assert.Equal(t, "alex", s.Character().ID)
	assert.Equal(t, "neon", s.Theme())
}
