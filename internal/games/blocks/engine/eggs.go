package engine

import (
	"slices"
	"sort"
	"time"
)

// EggEffect is what an easter egg grants when it fires.
type EggEffect struct {
	Score    int
	PowerUp  PowerUpKind
	Duration time.Duration
}

// EasterEgg is a secret key sequence and its one-time effect.
type EasterEgg struct {
	ID     string
	Code   []string // raw key names, compared case-sensitively
	Effect EggEffect
}

// Konami is the classic up-up-down-down sequence.
var Konami = []string{
	"ArrowUp", "ArrowUp", "ArrowDown", "ArrowDown",
	"ArrowLeft", "ArrowRight", "ArrowLeft", "ArrowRight",
	"b", "a",
}

// DefaultEasterEggs returns the built-in codes.
func DefaultEasterEggs() []EasterEgg {
	return []EasterEgg{
		{ID: "KONAMI", Code: Konami, Effect: EggEffect{Score: 30000, PowerUp: PowerMulti, Duration: 30 * time.Second}},
		{ID: "TETRIS", Code: letters("tetris"), Effect: EggEffect{PowerUp: PowerTetrisRain, Duration: 10 * time.Second}},
		{ID: "RAINBOW", Code: letters("rainbow"), Effect: EggEffect{PowerUp: PowerRainbow, Duration: 20 * time.Second}},
		{ID: "MATRIX", Code: letters("matrix"), Effect: EggEffect{PowerUp: PowerMatrix, Duration: 15 * time.Second}},
		{ID: "GODMODE", Code: letters("godmode"), Effect: EggEffect{PowerUp: PowerGodMode, Duration: 10 * time.Second}},
	}
}

func letters(word string) []string {
	out := make([]string, 0, len(word))
	for _, r := range word {
		out = append(out, string(r))
	}
	return out
}

// EggDetector matches the most recent key presses against the registered
// codes. The window holds as many keys as the longest code, so unrelated
// keys typed earlier never affect a match.
type EggDetector struct {
	eggs      []EasterEgg
	window    []string
	capacity  int
	activated map[string]bool
}

// NewEggDetector creates a detector for eggs. Codes with no keys are dropped.
func NewEggDetector(eggs []EasterEgg) *EggDetector {
	d := &EggDetector{activated: make(map[string]bool)}
	for _, egg := range eggs {
		if len(egg.Code) == 0 {
			continue
		}
		d.eggs = append(d.eggs, egg)
		d.capacity = max(d.capacity, len(egg.Code))
	}
	d.window = make([]string, 0, d.capacity)
	return d
}

// Feed appends key to the window and returns the eggs that fired for the
// first time because of it.
func (d *EggDetector) Feed(key string) []EasterEgg {
	if d.capacity == 0 {
		return nil
	}
	if len(d.window) == d.capacity {
		copy(d.window, d.window[1:])
		d.window = d.window[:d.capacity-1]
	}
	d.window = append(d.window, key)

	var fired []EasterEgg
	for _, egg := range d.eggs {
		if d.activated[egg.ID] || len(d.window) < len(egg.Code) {
			continue
		}
		tail := d.window[len(d.window)-len(egg.Code):]
		if slices.Equal(tail, egg.Code) {
			d.activated[egg.ID] = true
			fired = append(fired, egg)
		}
	}
	return fired
}

// IsActivated reports whether the egg with id has fired.
func (d *EggDetector) IsActivated(id string) bool {
	return d.activated[id]
}

// Activated returns the fired egg ids, sorted.
func (d *EggDetector) Activated() []string {
	ids := make([]string, 0, len(d.activated))
	for id := range d.activated {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// AllActivated reports whether every registered egg has fired.
func (d *EggDetector) AllActivated() bool {
	if len(d.eggs) == 0 {
		return false
	}
	for _, egg := range d.eggs {
		if !d.activated[egg.ID] {
			return false
		}
	}
	return true
}

// Restore marks ids as already fired without applying effects.
func (d *EggDetector) Restore(ids []string) {
	for _, id := range ids {
		d.activated[id] = true
	}
}

// Recent returns a copy of the key window, oldest first.
func (d *EggDetector) Recent() []string {
	return append([]string(nil), d.window...)
}

// Capacity returns the window size.
func (d *EggDetector) Capacity() int {
	return d.capacity
}

// Count returns how many eggs are registered.
func (d *EggDetector) Count() int {
	return len(d.eggs)
}
