package tui

import (
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-blocks/internal/games/blocks/engine"
)

// LogEvents writes game events to a structured logger.
type LogEvents struct {
	Logger *log.Logger
}

// NewLogEvents returns an event sink logging through l. A nil logger
// uses the charm default.
func NewLogEvents(l *log.Logger) *LogEvents {
	if l == nil {
		l = log.Default()
	}
	return &LogEvents{Logger: l}
}

func (e *LogEvents) LinesCleared(rows, points, combo int) {
	e.Logger.Debug("lines cleared", "rows", rows, "points", points, "combo", combo)
}

func (e *LogEvents) LevelUp(level int) {
	e.Logger.Info("level up", "level", level)
}

func (e *LogEvents) PowerUpActivated(kind engine.PowerUpKind, d time.Duration) {
	e.Logger.Info("power-up activated", "kind", kind.String(), "duration", d)
}

func (e *LogEvents) PowerUpExpired(kind engine.PowerUpKind) {
	e.Logger.Debug("power-up expired", "kind", kind.String())
}

func (e *LogEvents) EasterEgg(id string) {
	e.Logger.Info("easter egg", "id", id)
}

func (e *LogEvents) AchievementUnlocked(a engine.Achievement) {
	e.Logger.Info("achievement unlocked", "id", a.ID, "points", a.Points)
}

func (e *LogEvents) GameOver(score int) {
	e.Logger.Info("game over", "score", score)
}

var _ engine.Events = (*LogEvents)(nil)
