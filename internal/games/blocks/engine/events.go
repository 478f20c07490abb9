package engine

import "time"

// Events receives notable session events. The platform uses it for logs
// and toasts; the engine never depends on what the sink does.
type Events interface {
	LinesCleared(rows, points, combo int)
	LevelUp(level int)
	PowerUpActivated(kind PowerUpKind, d time.Duration)
	PowerUpExpired(kind PowerUpKind)
	EasterEgg(id string)
	AchievementUnlocked(a Achievement)
	GameOver(score int)
}

// NopEvents ignores every event.
type NopEvents struct{}

func (NopEvents) LinesCleared(int, int, int)                  {}
func (NopEvents) LevelUp(int)                                 {}
func (NopEvents) PowerUpActivated(PowerUpKind, time.Duration) {}
func (NopEvents) PowerUpExpired(PowerUpKind)                  {}
func (NopEvents) EasterEgg(string)                            {}
func (NopEvents) AchievementUnlocked(Achievement)             {}
func (NopEvents) GameOver(int)                                {}

var _ Events = NopEvents{}
