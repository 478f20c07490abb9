package core

// RuntimeConfig is passed to games on Reset.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Simulation ticks per second (default 60)
	Seed     int64 // RNG seed; 0 means the platform picks one from the clock
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     0,
	}
}

// GameState is the summary a game reports to the platform.
type GameState struct {
	Score    int
	Lines    int
	Level    int
	GameOver bool // a spawn was blocked
	Finished bool // a goal such as a sprint target was reached
	Paused   bool
}

// Ended reports whether the run is over for any reason.
func (s GameState) Ended() bool {
	return s.GameOver || s.Finished
}

// StepResult is returned by Game.Step after each tick.
type StepResult struct {
	State GameState
}
