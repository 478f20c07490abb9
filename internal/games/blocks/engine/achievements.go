package engine

import "time"

// Achievement ids.
const (
	AchFirstLine      = "FIRST_LINE"
	AchTetrisMaster   = "TETRIS_MASTER"
	AchSpeedDemon     = "SPEED_DEMON"
	AchPerfectionist  = "PERFECTIONIST"
	AchComboKing      = "COMBO_KING"
	AchMarathonRunner = "MARATHON_RUNNER"
	AchSecretMaster   = "SECRET_MASTER"
)

// Achievement is a one-time milestone worth bonus points.
type Achievement struct {
	ID          string
	Name        string
	Description string
	Points      int
}

// DefaultAchievements returns the built-in milestones.
func DefaultAchievements() []Achievement {
	return []Achievement{
		{ID: AchFirstLine, Name: "First Line", Description: "Clear your first line", Points: 10},
		{ID: AchTetrisMaster, Name: "Tetris Master", Description: "Clear 4 lines at once", Points: 50},
		{ID: AchSpeedDemon, Name: "Speed Demon", Description: "Reach level 10", Points: 100},
		{ID: AchPerfectionist, Name: "Perfectionist", Description: "Clear the entire board", Points: 200},
		{ID: AchComboKing, Name: "Combo King", Description: "10 consecutive line clears", Points: 150},
		{ID: AchMarathonRunner, Name: "Marathon Runner", Description: "Survive 30 minutes", Points: 300},
		{ID: AchSecretMaster, Name: "Secret Master", Description: "Find all easter eggs", Points: 500},
	}
}

const marathonTime = 30 * time.Minute

// achieved evaluates the condition for id against the session.
func (s *Session) achieved(id string) bool {
	switch id {
	case AchFirstLine:
		return s.scorer.State().Lines >= 1
	case AchTetrisMaster:
		return s.stats.Tetrises >= 1
	case AchSpeedDemon:
		return s.scorer.State().Level >= 10
	case AchPerfectionist:
		return s.stats.PerfectClears >= 1
	case AchComboKing:
		return s.stats.MaxCombo >= 10
	case AchMarathonRunner:
		return s.gameTime >= marathonTime
	case AchSecretMaster:
		return s.eggs.AllActivated()
	default:
		return false
	}
}

// checkAchievements unlocks every newly satisfied milestone.
func (s *Session) checkAchievements() {
	for _, a := range s.cfg.Achievements {
		if s.achievements[a.ID] || !s.achieved(a.ID) {
			continue
		}
		s.achievements[a.ID] = true
		s.scorer.AddPoints(a.Points)
		s.events.AchievementUnlocked(a)
	}
}
