package config

import (
	"fmt"
	"strings"
)

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// Presets lists the known presets in menu order.
var Presets = []DifficultyPreset{DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed}

// ParseDifficulty converts a flag value into a preset.
// An empty string means no preset.
func ParseDifficulty(s string) (DifficultyPreset, error) {
	if s == "" {
		return "", nil
	}
	p := DifficultyPreset(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Presets {
		if p == known {
			return p, nil
		}
	}
	return "", fmt.Errorf("config: unknown difficulty %q (want easy, normal, hard or fixed)", s)
}

// StartLevelForPreset returns the level a preset starts at.
func StartLevelForPreset(preset DifficultyPreset) int {
	switch preset {
	case DifficultyNormal:
		return 3
	case DifficultyHard:
		return 6
	default:
		return 1
	}
}

// IsFixedPreset returns true if the preset disables level progression.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}

// ApplyBlocksPreset modifies the config based on a difficulty preset.
// The fixed preset keeps the configured start level and freezes it.
func ApplyBlocksPreset(cfg *BlocksConfig, preset DifficultyPreset) {
	switch preset {
	case "":
		return
	case DifficultyFixed:
		cfg.Difficulty.Fixed = true
	default:
		cfg.Difficulty.Fixed = false
		cfg.Difficulty.StartLevel = StartLevelForPreset(preset)
	}

	switch preset {
	case DifficultyEasy:
		cfg.PowerUps.SpawnChance = 0.1
	case DifficultyHard:
		cfg.PowerUps.SpawnChance = 0.02
	}
}
