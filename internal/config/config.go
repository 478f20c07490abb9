// Package config provides YAML-based game configuration loading and
// difficulty presets for the blocks game.
package config

// BlocksConfig contains all configuration for the falling-block game.
type BlocksConfig struct {
	Grid         GridConfig             `yaml:"grid"`
	Game         GameConfig             `yaml:"game"`
	Scoring      ScoringConfig          `yaml:"scoring"`
	PowerUps     PowerUpConfig          `yaml:"power_ups"`
	EasterEggs   []EasterEggConfig      `yaml:"easter_eggs"`
	Characters   []CharacterConfig      `yaml:"characters"`
	Themes       map[string]ThemeConfig `yaml:"themes"`
	Effects      EffectsConfig          `yaml:"effects"`
	Difficulty   DifficultyConfig       `yaml:"difficulty"`
	DefaultTheme string                 `yaml:"default_theme"`
}

// GridConfig is the single playfield contract: rows x cols.
type GridConfig struct {
	Rows int `yaml:"rows"`
	Cols int `yaml:"cols"`
}

// GameConfig defines gravity and level progression.
type GameConfig struct {
	InitialFallMs int     `yaml:"initial_fall_ms"`
	MinFallMs     int     `yaml:"min_fall_ms"`
	FallDecay     float64 `yaml:"fall_decay"`
	LinesPerLevel int     `yaml:"lines_per_level"`
	MaxLevel      int     `yaml:"max_level"`
	PreviewPieces int     `yaml:"preview_pieces"`
	SprintLines   int     `yaml:"sprint_lines"`
}

// ScoringConfig defines line rewards and bonuses.
type ScoringConfig struct {
	Single          int     `yaml:"single"`
	Double          int     `yaml:"double"`
	Triple          int     `yaml:"triple"`
	Tetris          int     `yaml:"tetris"`
	SoftDrop        int     `yaml:"soft_drop"`
	HardDrop        int     `yaml:"hard_drop"`
	ComboMultiplier float64 `yaml:"combo_multiplier"`
	PerfectClear    int     `yaml:"perfect_clear"`
	ClearBonus      int     `yaml:"clear_bonus"`
}

// PowerUpConfig defines timed effect durations keyed by power-up name.
type PowerUpConfig struct {
	SpawnChance float64        `yaml:"spawn_chance"`
	DurationsMs map[string]int `yaml:"durations_ms"`
}

// EasterEggConfig is a secret key sequence and what it grants.
type EasterEggConfig struct {
	ID         string   `yaml:"id"`
	Code       []string `yaml:"code"`
	Score      int      `yaml:"score"`
	PowerUp    string   `yaml:"power_up"`
	DurationMs int      `yaml:"duration_ms"`
}

// CharacterConfig is a selectable cosmetic modifier record.
type CharacterConfig struct {
	ID              string  `yaml:"id"`
	Name            string  `yaml:"name"`
	Speed           float64 `yaml:"speed"`
	ScoreMultiplier float64 `yaml:"score_multiplier"`
	Ability         string  `yaml:"ability"`
	Description     string  `yaml:"description"`
}

// ThemeConfig names the colors of a palette. Piece colors are keyed by
// piece letter (I, O, T, S, Z, J, L).
type ThemeConfig struct {
	Pieces map[string]string `yaml:"pieces"`
	Border string            `yaml:"border"`
	Ghost  string            `yaml:"ghost"`
	Text   string            `yaml:"text"`
	Accent string            `yaml:"accent"`
}

// EffectsConfig tunes cosmetic effects.
type EffectsConfig struct {
	ParticleLifeMs int `yaml:"particle_life_ms"`
	MaxParticles   int `yaml:"max_particles"`
}

// DifficultyConfig selects the start level and whether levels progress.
type DifficultyConfig struct {
	StartLevel int  `yaml:"start_level"`
	Fixed      bool `yaml:"fixed"` // level never changes
}
