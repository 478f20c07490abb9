package engine

import (
	"math/rand"
	"time"
)

// Stats are per-session counters.
type Stats struct {
	TotalPieces   int   `yaml:"total_pieces"`
	Singles       int   `yaml:"singles"`
	Doubles       int   `yaml:"doubles"`
	Triples       int   `yaml:"triples"`
	Tetrises      int   `yaml:"tetrises"`
	PerfectClears int   `yaml:"perfect_clears"`
	MaxCombo      int   `yaml:"max_combo"`
	TimeAliveMs   int64 `yaml:"time_alive_ms"`
}

// PiecesPerSecond returns the placement rate over the time alive.
func (s Stats) PiecesPerSecond() float64 {
	if s.TimeAliveMs <= 0 {
		return 0
	}
	return float64(s.TotalPieces) / (float64(s.TimeAliveMs) / 1000)
}

func (s *Stats) recordClear(rows, combo int) {
	switch {
	case rows <= 0:
		return
	case rows == 1:
		s.Singles++
	case rows == 2:
		s.Doubles++
	case rows == 3:
		s.Triples++
	default:
		s.Tetrises++
	}
	s.MaxCombo = max(s.MaxCombo, combo)
}

// Settings are player preferences carried in the snapshot.
type Settings struct {
	Music       bool
	SFX         bool
	ShowGhost   bool
	ShowGrid    bool
	Particles   bool
	ScreenShake bool
}

// DefaultSettings enables everything.
func DefaultSettings() Settings {
	return Settings{
		Music:       true,
		SFX:         true,
		ShowGhost:   true,
		ShowGrid:    true,
		Particles:   true,
		ScreenShake: true,
	}
}

// Map returns the settings keyed by their snapshot names.
func (s Settings) Map() map[string]bool {
	return map[string]bool{
		"music":        s.Music,
		"sfx":          s.SFX,
		"show_ghost":   s.ShowGhost,
		"show_grid":    s.ShowGrid,
		"particles":    s.Particles,
		"screen_shake": s.ScreenShake,
	}
}

// Merge overlays m onto s; names missing from m keep their current value
// and unknown names are ignored.
func (s Settings) Merge(m map[string]bool) Settings {
	fields := map[string]*bool{
		"music":        &s.Music,
		"sfx":          &s.SFX,
		"show_ghost":   &s.ShowGhost,
		"show_grid":    &s.ShowGrid,
		"particles":    &s.Particles,
		"screen_shake": &s.ScreenShake,
	}
	for name, v := range m {
		if f, ok := fields[name]; ok {
			*f = v
		}
	}
	return s
}

// Particle is a short-lived visual spark in grid coordinates.
type Particle struct {
	Row, Col   float64
	VRow, VCol float64 // cells per second
	Life       time.Duration
	Kind       Kind
}

// emitRowParticles spawns sparks along the given cleared rows,
// capped at limit live particles.
func emitRowParticles(ps []Particle, rng *rand.Rand, rows []int, cols int, life time.Duration, limit int) []Particle {
	for _, r := range rows {
		for c := 0; c < cols; c++ {
			if len(ps) >= limit {
				return ps
			}
			ps = append(ps, Particle{
				Row:  float64(r),
				Col:  float64(c),
				VRow: -2 - rng.Float64()*4,
				VCol: rng.Float64()*6 - 3,
				Life: life,
				Kind: AllKinds[rng.Intn(len(AllKinds))],
			})
		}
	}
	return ps
}

// stepParticles moves particles and drops the expired ones in place.
func stepParticles(ps []Particle, dt time.Duration) []Particle {
	sec := dt.Seconds()
	alive := ps[:0]
	for _, p := range ps {
		p.Life -= dt
		if p.Life <= 0 {
			continue
		}
		p.Row += p.VRow * sec
		p.Col += p.VCol * sec
		alive = append(alive, p)
	}
	return alive
}
