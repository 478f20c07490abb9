package engine

import (
	"sort"
	"strings"
	"time"

	"github.com/kamstrup/intmap"
)

// PowerUpKind identifies a power-up effect.
type PowerUpKind int

const (
	PowerNone       PowerUpKind = iota
	PowerBomb                   // instant: clears the 3x3 square around the locked piece
	PowerFreeze                 // gravity interval doubled
	PowerGhost                  // ghost piece forced on
	PowerMulti                  // line score doubled
	PowerClear                  // instant: removes the bottom row
	PowerTetrisRain             // every spawn is an I piece
	PowerRainbow                // cosmetic
	PowerMatrix                 // cosmetic
	PowerGodMode                // a blocked spawn clears the field instead of ending the game
)

var powerUpNames = map[PowerUpKind]string{
	PowerBomb:       "BOMB",
	PowerFreeze:     "FREEZE",
	PowerGhost:      "GHOST",
	PowerMulti:      "MULTI",
	PowerClear:      "CLEAR",
	PowerTetrisRain: "TETRIS_RAIN",
	PowerRainbow:    "RAINBOW",
	PowerMatrix:     "MATRIX",
	PowerGodMode:    "GODMODE",
}

// String returns the upper-case name of the power-up.
func (k PowerUpKind) String() string {
	if name, ok := powerUpNames[k]; ok {
		return name
	}
	return "NONE"
}

// ParsePowerUp looks a power-up up by name (case-insensitive).
func ParsePowerUp(name string) (PowerUpKind, bool) {
	for k, n := range powerUpNames {
		if strings.EqualFold(n, name) {
			return k, true
		}
	}
	return PowerNone, false
}

// PieceCarriedPowerUps can be attached to a spawned piece.
var PieceCarriedPowerUps = []PowerUpKind{PowerBomb, PowerFreeze, PowerGhost, PowerMulti, PowerClear}

// ActivePowerUp is a timed effect with its remaining duration.
type ActivePowerUp struct {
	Kind      PowerUpKind
	Remaining time.Duration
}

// PowerUps is the timer registry. Each kind is active at most once;
// adding an active kind refreshes its remaining time.
type PowerUps struct {
	active *intmap.Map[PowerUpKind, time.Duration]
}

// NewPowerUps creates an empty registry.
func NewPowerUps() *PowerUps {
	return &PowerUps{active: intmap.New[PowerUpKind, time.Duration](8)}
}

// Add starts or refreshes kind for d. Non-positive durations are instant
// effects and are not stored; Add reports whether the kind was stored.
func (p *PowerUps) Add(kind PowerUpKind, d time.Duration) bool {
	if kind == PowerNone || d <= 0 {
		return false
	}
	p.active.Put(kind, d)
	return true
}

// Remove ends kind early.
func (p *PowerUps) Remove(kind PowerUpKind) {
	p.active.Del(kind)
}

// IsActive reports whether kind is running.
func (p *PowerUps) IsActive(kind PowerUpKind) bool {
	return p.active.Has(kind)
}

// Remaining returns the time left for kind, or 0.
func (p *PowerUps) Remaining(kind PowerUpKind) time.Duration {
	d, _ := p.active.Get(kind)
	return d
}

// Len returns the number of active power-ups.
func (p *PowerUps) Len() int {
	return p.active.Len()
}

// Tick advances every timer by delta and drops the ones that ran out.
// It returns the kinds that expired.
func (p *PowerUps) Tick(delta time.Duration) []PowerUpKind {
	if delta <= 0 || p.active.Len() == 0 {
		return nil
	}

	var expired []PowerUpKind
	updated := make(map[PowerUpKind]time.Duration, p.active.Len())
	p.active.ForEach(func(k PowerUpKind, d time.Duration) bool {
		left := d - delta
		if left <= 0 {
			expired = append(expired, k)
		} else {
			updated[k] = left
		}
		return true
	})

	for _, k := range expired {
		p.active.Del(k)
	}
	for k, d := range updated {
		p.active.Put(k, d)
	}
	sort.Slice(expired, func(i, j int) bool { return expired[i] < expired[j] })
	return expired
}

// Active lists the running power-ups ordered by kind.
func (p *PowerUps) Active() []ActivePowerUp {
	out := make([]ActivePowerUp, 0, p.active.Len())
	p.active.ForEach(func(k PowerUpKind, d time.Duration) bool {
		out = append(out, ActivePowerUp{Kind: k, Remaining: d})
		return true
	})
	sort.Slice(out, func(i, j int) bool { return out[i].Kind < out[j].Kind })
	return out
}

// Clear drops every active power-up.
func (p *PowerUps) Clear() {
	p.active.Clear()
}
