package blocks

import (
	"time"

	"github.com/vovakirdan/tui-blocks/internal/config"
	"github.com/vovakirdan/tui-blocks/internal/games/blocks/engine"
)

func ms(n int) time.Duration {
	return time.Duration(n) * time.Millisecond
}

// EngineConfig converts the YAML configuration into session rules.
// sprint enables the line target; otherwise the session plays until a
// spawn is blocked. Unknown power-up names are skipped.
func EngineConfig(cfg config.BlocksConfig, seed int64, sprint bool) engine.Config {
	ec := engine.Config{
		Rows:    cfg.Grid.Rows,
		Cols:    cfg.Grid.Cols,
		Preview: cfg.Game.PreviewPieces,
		Scoring: engine.ScoringRules{
			LineScores:      []int{cfg.Scoring.Single, cfg.Scoring.Double, cfg.Scoring.Triple, cfg.Scoring.Tetris},
			SoftDrop:        cfg.Scoring.SoftDrop,
			HardDrop:        cfg.Scoring.HardDrop,
			ComboMultiplier: cfg.Scoring.ComboMultiplier,
			PerfectClear:    cfg.Scoring.PerfectClear,
			ClearBonus:      cfg.Scoring.ClearBonus,
		},
		Levels: engine.LevelRules{
			LinesPerLevel: cfg.Game.LinesPerLevel,
			MaxLevel:      cfg.Game.MaxLevel,
			StartLevel:    cfg.Difficulty.StartLevel,
			Fixed:         cfg.Difficulty.Fixed,
			Curve: engine.FallCurve{
				Initial: ms(cfg.Game.InitialFallMs),
				Min:     ms(cfg.Game.MinFallMs),
				Decay:   cfg.Game.FallDecay,
			},
		},
		PowerUpDurations: make(map[engine.PowerUpKind]time.Duration, len(cfg.PowerUps.DurationsMs)),
		PowerSpawnChance: cfg.PowerUps.SpawnChance,
		Achievements:     engine.DefaultAchievements(),
		ParticleLife:     ms(cfg.Effects.ParticleLifeMs),
		MaxParticles:     cfg.Effects.MaxParticles,
		Seed:             seed,
	}

	for name, d := range cfg.PowerUps.DurationsMs {
		if kind, ok := engine.ParsePowerUp(name); ok {
			ec.PowerUpDurations[kind] = ms(d)
		}
	}

	for _, egg := range cfg.EasterEggs {
		if egg.ID == "" || len(egg.Code) == 0 {
			continue
		}
		kind, _ := engine.ParsePowerUp(egg.PowerUp)
		ec.EasterEggs = append(ec.EasterEggs, engine.EasterEgg{
			ID:   egg.ID,
			Code: egg.Code,
			Effect: engine.EggEffect{
				Score:    egg.Score,
				PowerUp:  kind,
				Duration: ms(egg.DurationMs),
			},
		})
	}

	for _, ch := range cfg.Characters {
		ec.Characters = append(ec.Characters, engine.Character{
			ID:              ch.ID,
			Name:            ch.Name,
			Speed:           ch.Speed,
			ScoreMultiplier: ch.ScoreMultiplier,
			Ability:         engine.Ability(ch.Ability),
			Description:     ch.Description,
		})
	}

	if sprint {
		ec.SprintLines = cfg.Game.SprintLines
	}
	return ec
}
