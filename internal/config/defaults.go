package config

import (
	_ "embed"
)

//go:embed defaults/blocks.yaml
var defaultBlocksYAML []byte

// DefaultTheme is used when no or an unknown theme is selected.
const DefaultTheme = "classic"

// DefaultBlocksConfig returns the hardcoded default configuration.
// It matches defaults/blocks.yaml.
func DefaultBlocksConfig() BlocksConfig {
	return BlocksConfig{
		Grid: GridConfig{
			Rows: 20,
			Cols: 10,
		},
		Game: GameConfig{
			InitialFallMs: 500,
			MinFallMs:     50,
			FallDecay:     0.95,
			LinesPerLevel: 10,
			MaxLevel:      15,
			PreviewPieces: 3,
			SprintLines:   40,
		},
		Scoring: ScoringConfig{
			Single:          100,
			Double:          300,
			Triple:          500,
			Tetris:          800,
			SoftDrop:        1,
			HardDrop:        2,
			ComboMultiplier: 1.5,
			PerfectClear:    2000,
			ClearBonus:      50,
		},
		PowerUps: PowerUpConfig{
			SpawnChance: 0.05,
			DurationsMs: map[string]int{
				"FREEZE": 10000,
				"GHOST":  15000,
				"MULTI":  20000,
			},
		},
		EasterEggs: []EasterEggConfig{
			{
				ID:         "KONAMI",
				Code:       []string{"ArrowUp", "ArrowUp", "ArrowDown", "ArrowDown", "ArrowLeft", "ArrowRight", "ArrowLeft", "ArrowRight", "b", "a"},
				Score:      30000,
				PowerUp:    "MULTI",
				DurationMs: 30000,
			},
			{ID: "TETRIS", Code: []string{"t", "e", "t", "r", "i", "s"}, PowerUp: "TETRIS_RAIN", DurationMs: 10000},
			{ID: "RAINBOW", Code: []string{"r", "a", "i", "n", "b", "o", "w"}, PowerUp: "RAINBOW", DurationMs: 20000},
			{ID: "MATRIX", Code: []string{"m", "a", "t", "r", "i", "x"}, PowerUp: "MATRIX", DurationMs: 15000},
			{ID: "GODMODE", Code: []string{"g", "o", "d", "m", "o", "d", "e"}, PowerUp: "GODMODE", DurationMs: 10000},
		},
		Characters: []CharacterConfig{
			{ID: "steve", Name: "Steve", Speed: 1.0, ScoreMultiplier: 1.0, Ability: "balanced", Description: "The Classic Builder - balanced stats"},
			{ID: "alex", Name: "Alex", Speed: 1.15, ScoreMultiplier: 0.95, Ability: "fast_movement", Description: "The Adventurer - faster pieces, slightly lower score"},
			{ID: "miner", Name: "Miner", Speed: 0.9, ScoreMultiplier: 1.2, Ability: "bonus_points", Description: "The Resource Master - slower but earns 20% more"},
			{ID: "builder", Name: "Builder", Speed: 0.85, ScoreMultiplier: 1.0, Ability: "clear_bonus", Description: "The Architect - slowest, bonus for every cleared line"},
		},
		Themes: map[string]ThemeConfig{
			"classic": {
				Pieces: map[string]string{"I": "cyan", "O": "yellow", "T": "purple", "S": "green", "Z": "red", "J": "blue", "L": "orange"},
				Border: "gray", Ghost: "dark_gray", Text: "white", Accent: "bright_yellow",
			},
			"neon": {
				Pieces: map[string]string{"I": "bright_cyan", "O": "bright_yellow", "T": "bright_magenta", "S": "bright_green", "Z": "bright_red", "J": "bright_blue", "L": "pink"},
				Border: "bright_magenta", Ghost: "gray", Text: "bright_white", Accent: "bright_cyan",
			},
			"retro": {
				Pieces: map[string]string{"I": "green", "O": "lime", "T": "bright_green", "S": "green", "Z": "lime", "J": "bright_green", "L": "green"},
				Border: "green", Ghost: "dark_gray", Text: "bright_green", Accent: "lime",
			},
			"ocean": {
				Pieces: map[string]string{"I": "teal", "O": "bright_cyan", "T": "navy", "S": "cyan", "Z": "blue", "J": "bright_blue", "L": "white"},
				Border: "blue", Ghost: "navy", Text: "bright_cyan", Accent: "teal",
			},
		},
		Effects: EffectsConfig{
			ParticleLifeMs: 600,
			MaxParticles:   200,
		},
		Difficulty: DifficultyConfig{
			StartLevel: 1,
			Fixed:      false,
		},
		DefaultTheme: DefaultTheme,
	}
}
