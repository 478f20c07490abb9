package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// AppDirName is the per-user directory under $HOME holding configs,
// the database and logs.
const AppDirName = ".blocks"

// LoadBlocks loads the blocks configuration.
// Search order: customPath -> ~/.blocks/configs/blocks.yaml ->
// ./configs/blocks.yaml -> embedded default -> DefaultBlocksConfig.
//
// Files are decoded on top of the defaults, so a file only needs the
// fields it changes.
func LoadBlocks(customPath string) (BlocksConfig, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return DefaultBlocksConfig(), fmt.Errorf("config: read %s: %w", customPath, err)
		}
		cfg, err := parseBlocks(data)
		if err != nil {
			return DefaultBlocksConfig(), fmt.Errorf("config: parse %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory, then local configs directory
	for _, path := range []string{userConfigPath("blocks.yaml"), filepath.Join("configs", "blocks.yaml")} {
		if path == "" {
			continue
		}
		if data, err := os.ReadFile(path); err == nil {
			if cfg, err := parseBlocks(data); err == nil {
				return cfg, nil
			}
		}
	}

	// Use embedded default YAML
	cfg, err := parseBlocks(defaultBlocksYAML)
	if err != nil {
		return DefaultBlocksConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// parseBlocks decodes data over the defaults and normalizes the result.
func parseBlocks(data []byte) (BlocksConfig, error) {
	cfg := DefaultBlocksConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	cfg.Normalize()
	return cfg, nil
}

// Normalize replaces out-of-range values with their defaults so the game
// never sees a zero-sized grid or a non-positive interval.
func (c *BlocksConfig) Normalize() {
	def := DefaultBlocksConfig()

	if c.Grid.Rows < 4 {
		c.Grid.Rows = def.Grid.Rows
	}
	if c.Grid.Cols < 4 {
		c.Grid.Cols = def.Grid.Cols
	}
	if c.Game.InitialFallMs <= 0 {
		c.Game.InitialFallMs = def.Game.InitialFallMs
	}
	if c.Game.MinFallMs <= 0 || c.Game.MinFallMs > c.Game.InitialFallMs {
		c.Game.MinFallMs = min(def.Game.MinFallMs, c.Game.InitialFallMs)
	}
	if c.Game.FallDecay <= 0 || c.Game.FallDecay > 1 {
		c.Game.FallDecay = def.Game.FallDecay
	}
	if c.Game.LinesPerLevel <= 0 {
		c.Game.LinesPerLevel = def.Game.LinesPerLevel
	}
	if c.Game.MaxLevel < 1 {
		c.Game.MaxLevel = def.Game.MaxLevel
	}
	c.Game.PreviewPieces = max(0, min(c.Game.PreviewPieces, 6))
	if c.Game.SprintLines < 0 {
		c.Game.SprintLines = def.Game.SprintLines
	}
	if c.Scoring.ComboMultiplier < 1 {
		c.Scoring.ComboMultiplier = def.Scoring.ComboMultiplier
	}
	if c.PowerUps.SpawnChance < 0 || c.PowerUps.SpawnChance > 1 {
		c.PowerUps.SpawnChance = def.PowerUps.SpawnChance
	}
	if len(c.Characters) == 0 {
		c.Characters = def.Characters
	}
	if len(c.Themes) == 0 {
		c.Themes = def.Themes
	}
	if _, ok := c.Themes[c.DefaultTheme]; !ok {
		c.DefaultTheme = DefaultTheme
	}
	if c.Effects.ParticleLifeMs <= 0 {
		c.Effects.ParticleLifeMs = def.Effects.ParticleLifeMs
	}
	if c.Effects.MaxParticles < 0 {
		c.Effects.MaxParticles = 0
	}
	c.Difficulty.StartLevel = max(1, min(c.Difficulty.StartLevel, c.Game.MaxLevel))
}

// HasTheme reports whether name is a configured theme.
func (c BlocksConfig) HasTheme(name string) bool {
	_, ok := c.Themes[name]
	return ok
}

// HasCharacter reports whether id is a configured character.
func (c BlocksConfig) HasCharacter(id string) bool {
	for _, ch := range c.Characters {
		if ch.ID == id {
			return true
		}
	}
	return false
}

// AppDir returns ~/.blocks, or ".blocks" when the home directory is unknown.
func AppDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return AppDirName
	}
	return filepath.Join(home, AppDirName)
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, AppDirName, "configs", filename)
}
