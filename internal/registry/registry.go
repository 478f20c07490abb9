// Package registry maps game mode IDs to factories. Modes register
// themselves from init(), so commands and menus only need the ID.
package registry

import (
	"cmp"
	"fmt"
	"slices"
	"sync"

	"github.com/vovakirdan/tui-blocks/internal/core"
)

// Game is what the platform drives. Implementations hold pure rules
// state; the platform owns timing, key decoding and terminal output.
type Game interface {
	// ID is the stable mode name used by the CLI and the score table
	// (e.g. "blocks", "blocks_sprint").
	ID() string

	// Title is the display name.
	Title() string

	// Reset starts a fresh run. Called at start and on restart.
	Reset(cfg core.RuntimeConfig)

	// Step advances one fixed tick, applying the frame's input first.
	Step(in core.InputFrame) core.StepResult

	// Render draws into a pre-cleared screen.
	Render(dst *core.Screen)

	State() core.GameState
}

// GameInfo describes a registered mode.
type GameInfo struct {
	ID    string
	Title string
}

// Factory creates a new game instance.
type Factory func() Game

type entry struct {
	factory Factory
	title   string
}

var (
	mu      sync.RWMutex
	entries = make(map[string]entry)
)

// Register adds a factory under id. It panics on a duplicate id.
func Register(id string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := entries[id]; exists {
		panic(fmt.Sprintf("registry: game %q already registered", id))
	}
	entries[id] = entry{factory: f, title: f().Title()}
}

// List returns all registered modes sorted by ID.
func List() []GameInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]GameInfo, 0, len(entries))
	for id, e := range entries {
		result = append(result, GameInfo{ID: id, Title: e.title})
	}
	slices.SortFunc(result, func(a, b GameInfo) int {
		return cmp.Compare(a.ID, b.ID)
	})
	return result
}

// Create instantiates the mode registered under id.
func Create(id string) (Game, error) {
	mu.RLock()
	e, ok := entries[id]
	mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("registry: unknown game %q", id)
	}
	return e.factory(), nil
}

// Exists reports whether id is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := entries[id]
	return ok
}

// Title returns the display name for id, or id itself when unknown.
func Title(id string) string {
	mu.RLock()
	defer mu.RUnlock()

	if e, ok := entries[id]; ok {
		return e.title
	}
	return id
}
