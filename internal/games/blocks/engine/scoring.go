package engine

import (
	"math"
	"time"
)

// ScoringRules holds the point values used by the Scorer.
type ScoringRules struct {
	LineScores      []int   // base reward for 1, 2, 3, 4 rows
	SoftDrop        int     // per row
	HardDrop        int     // per row
	ComboMultiplier float64 // compounded once per consecutive clearing lock
	PerfectClear    int     // times level
	ClearBonus      int     // per row times level, clear_bonus ability only
}

// DefaultScoringRules returns the classic table: 100/300/500/800.
func DefaultScoringRules() ScoringRules {
	return ScoringRules{
		LineScores:      []int{100, 300, 500, 800},
		SoftDrop:        1,
		HardDrop:        2,
		ComboMultiplier: 1.5,
		PerfectClear:    2000,
		ClearBonus:      50,
	}
}

// Base returns the base reward for clearing n rows at level 1, combo 0.
// Counts past the table grow by 400 per extra row.
func (r ScoringRules) Base(n int) int {
	if n <= 0 || len(r.LineScores) == 0 {
		return 0
	}
	if n <= len(r.LineScores) {
		return r.LineScores[n-1]
	}
	last := r.LineScores[len(r.LineScores)-1]
	return last + 400*(n-len(r.LineScores))
}

// FallCurve is the gravity interval as a function of level:
// max(Min, Initial * Decay^(level-1)).
type FallCurve struct {
	Initial time.Duration
	Min     time.Duration
	Decay   float64
}

// DefaultFallCurve returns 500ms decaying by 5% per level, floored at 50ms.
func DefaultFallCurve() FallCurve {
	return FallCurve{
		Initial: 500 * time.Millisecond,
		Min:     50 * time.Millisecond,
		Decay:   0.95,
	}
}

// Interval returns the gravity interval for level.
func (c FallCurve) Interval(level int) time.Duration {
	if level < 1 {
		level = 1
	}
	d := time.Duration(float64(c.Initial) * math.Pow(c.Decay, float64(level-1)))
	if d < c.Min {
		return c.Min
	}
	return d
}

// LevelRules controls level progression.
type LevelRules struct {
	LinesPerLevel int
	MaxLevel      int
	StartLevel    int
	Fixed         bool // level stays at StartLevel
	Curve         FallCurve
}

// DefaultLevelRules returns 10 lines per level up to level 15.
func DefaultLevelRules() LevelRules {
	return LevelRules{
		LinesPerLevel: 10,
		MaxLevel:      15,
		StartLevel:    1,
		Curve:         DefaultFallCurve(),
	}
}

// ScoreState is the scoring snapshot exposed to renderers and persistence.
type ScoreState struct {
	Score int
	Lines int
	Level int
	Combo int
}

// LockResult describes what a lock contributed.
type LockResult struct {
	Rows         int
	Points       int
	Combo        int // combo after this lock
	LevelChanged bool
	Level        int
}

// Scorer tracks score, lines, combo and level, and the gravity interval
// derived from the level.
type Scorer struct {
	rules    ScoringRules
	levels   LevelRules
	state    ScoreState
	interval time.Duration
}

// NewScorer creates a scorer at the configured start level.
func NewScorer(rules ScoringRules, levels LevelRules) *Scorer {
	if levels.LinesPerLevel <= 0 {
		levels.LinesPerLevel = 10
	}
	if levels.MaxLevel < 1 {
		levels.MaxLevel = 1
	}
	levels.StartLevel = clampInt(levels.StartLevel, 1, levels.MaxLevel)
	s := &Scorer{rules: rules, levels: levels}
	s.Reset()
	return s
}

// Reset returns to zero score at the start level.
func (s *Scorer) Reset() {
	s.state = ScoreState{Level: s.levels.StartLevel}
	s.interval = s.levels.Curve.Interval(s.state.Level)
}

// State returns the current score state.
func (s *Scorer) State() ScoreState {
	return s.state
}

// Rules returns the scoring rules.
func (s *Scorer) Rules() ScoringRules {
	return s.rules
}

// Interval returns the gravity interval for the current level.
func (s *Scorer) Interval() time.Duration {
	return s.interval
}

// ComboFactor returns the multiplier applied at the current combo count.
// It is 1 at combo 0 and compounds by ComboMultiplier per step.
func (s *Scorer) ComboFactor() float64 {
	if s.state.Combo <= 0 || s.rules.ComboMultiplier <= 1 {
		return 1
	}
	return math.Pow(s.rules.ComboMultiplier, float64(s.state.Combo))
}

// LineReward computes the points for clearing n rows now, without
// changing state. multiplier folds in power-ups and character modifiers.
func (s *Scorer) LineReward(n int, multiplier float64) int {
	if n <= 0 {
		return 0
	}
	if multiplier <= 0 {
		multiplier = 1
	}
	points := float64(s.rules.Base(n)*s.state.Level) * s.ComboFactor() * multiplier
	return int(points)
}

// OnLock records a lock that cleared n rows.
func (s *Scorer) OnLock(n int, multiplier float64) LockResult {
	if n <= 0 {
		s.state.Combo = 0
		return LockResult{Level: s.state.Level}
	}

	points := s.LineReward(n, multiplier)
	s.state.Score += points
	s.state.Combo++
	s.state.Lines += n

	changed := s.updateLevel()
	return LockResult{
		Rows:         n,
		Points:       points,
		Combo:        s.state.Combo,
		LevelChanged: changed,
		Level:        s.state.Level,
	}
}

// AddPoints adds a flat bonus. Negative values are ignored.
func (s *Scorer) AddPoints(points int) {
	if points > 0 {
		s.state.Score += points
	}
}

// Restore replaces score, lines and level, e.g. from a saved snapshot.
// Level is clamped to [StartLevel, MaxLevel], or pinned to StartLevel
// when the level is fixed; combo restarts at 0.
func (s *Scorer) Restore(score, lines, level int) {
	if s.levels.Fixed {
		level = s.levels.StartLevel
	}
	s.state = ScoreState{
		Score: max(score, 0),
		Lines: max(lines, 0),
		Level: clampInt(level, s.levels.StartLevel, s.levels.MaxLevel),
	}
	s.interval = s.levels.Curve.Interval(s.state.Level)
}

// updateLevel recomputes the level from total lines. Level never drops.
func (s *Scorer) updateLevel() bool {
	if s.levels.Fixed {
		return false
	}
	derived := s.state.Lines/s.levels.LinesPerLevel + 1
	derived = clampInt(max(derived, s.levels.StartLevel), 1, s.levels.MaxLevel)
	if derived <= s.state.Level {
		return false
	}
	s.state.Level = derived
	s.interval = s.levels.Curve.Interval(derived)
	return true
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
