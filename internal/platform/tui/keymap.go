package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-blocks/internal/core"
)

// GameKeyMap holds the in-game bindings.
type GameKeyMap struct {
	Left      key.Binding
	Right     key.Binding
	SoftDrop  key.Binding
	HardDrop  key.Binding
	RotateCW  key.Binding
	RotateCCW key.Binding
	Hold      key.Binding
	Pause     key.Binding
	Restart   key.Binding
	Back      key.Binding
	Quit      key.Binding
}

// DefaultGameKeyMap returns the standard bindings.
func DefaultGameKeyMap() GameKeyMap {
	return GameKeyMap{
		Left: key.NewBinding(
			key.WithKeys("left", "a"),
			key.WithHelp("←/a", "left"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "d"),
			key.WithHelp("→/d", "right"),
		),
		SoftDrop: key.NewBinding(
			key.WithKeys("down", "s"),
			key.WithHelp("↓/s", "soft drop"),
		),
		HardDrop: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "hard drop"),
		),
		RotateCW: key.NewBinding(
			key.WithKeys("up", "w", "x"),
			key.WithHelp("↑/w/x", "rotate"),
		),
		RotateCCW: key.NewBinding(
			key.WithKeys("z"),
			key.WithHelp("z", "rotate ccw"),
		),
		Hold: key.NewBinding(
			key.WithKeys("c", "shift+tab"),
			key.WithHelp("c", "hold"),
		),
		Pause: key.NewBinding(
			key.WithKeys("p", "esc"),
			key.WithHelp("p/esc", "pause"),
		),
		Restart: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "restart"),
		),
		Back: key.NewBinding(
			key.WithKeys("b"),
			key.WithHelp("b", "menu"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp returns key bindings for the short help view.
func (k GameKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Left, k.Right, k.RotateCW, k.HardDrop, k.Hold, k.Pause}
}

// FullHelp returns key bindings for the full help view.
func (k GameKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Left, k.Right, k.SoftDrop, k.HardDrop},
		{k.RotateCW, k.RotateCCW, k.Hold},
		{k.Pause, k.Restart, k.Back, k.Quit},
	}
}

// KeyMapper translates Bubble Tea key messages to game actions.
type KeyMapper struct {
	keys     GameKeyMap
	bindings []actionBinding
}

type actionBinding struct {
	binding key.Binding
	action  core.Action
}

// NewKeyMapper creates a new key mapper with default bindings.
func NewKeyMapper() *KeyMapper {
	return NewKeyMapperWith(DefaultGameKeyMap())
}

// NewKeyMapperWith creates a key mapper for custom bindings.
func NewKeyMapperWith(keys GameKeyMap) *KeyMapper {
	return &KeyMapper{
		keys: keys,
		bindings: []actionBinding{
			{keys.Left, core.ActionLeft},
			{keys.Right, core.ActionRight},
			{keys.SoftDrop, core.ActionSoftDrop},
			{keys.HardDrop, core.ActionHardDrop},
			{keys.RotateCW, core.ActionRotateCW},
			{keys.RotateCCW, core.ActionRotateCCW},
			{keys.Hold, core.ActionHold},
			{keys.Pause, core.ActionPause},
			{keys.Restart, core.ActionRestart},
			{keys.Back, core.ActionBack},
		},
	}
}

// Keys returns the bindings, for help views.
func (km *KeyMapper) Keys() GameKeyMap {
	return km.keys
}

// MapKey translates a key message to a game action.
// Returns the action (may be ActionNone) and whether it's a quit request.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) (action core.Action, isQuit bool) {
	if key.Matches(msg, km.keys.Quit) {
		return core.ActionQuit, true
	}
	for _, b := range km.bindings {
		if key.Matches(msg, b.binding) {
			return b.action, false
		}
	}
	return core.ActionNone, false
}

// MapKeyToFrame records the action and the raw key name in frame and
// returns the action. Every key except quit reaches the frame, so secret
// sequences see keys that also carry a host meaning such as back.
func (km *KeyMapper) MapKeyToFrame(msg tea.KeyMsg, frame *core.InputFrame) (action core.Action, isQuit bool) {
	action, isQuit = km.MapKey(msg)
	if isQuit {
		return action, true
	}
	frame.Set(action)
	frame.AddKey(RawKey(msg))
	return action, false
}

// RawKey names a key the way secret sequences spell it: arrows become
// ArrowUp/ArrowDown/ArrowLeft/ArrowRight and printable keys stay as
// typed. Anything else returns "".
func RawKey(msg tea.KeyMsg) string {
	switch msg.Type {
	case tea.KeyUp:
		return "ArrowUp"
	case tea.KeyDown:
		return "ArrowDown"
	case tea.KeyLeft:
		return "ArrowLeft"
	case tea.KeyRight:
		return "ArrowRight"
	case tea.KeySpace:
		return " "
	case tea.KeyRunes:
		if len(msg.Runes) == 1 && !msg.Alt {
			return string(msg.Runes)
		}
	}
	return ""
}

// MenuAction represents a menu-specific action derived from input.
type MenuAction int

const (
	MenuActionNone MenuAction = iota
	MenuActionUp
	MenuActionDown
	MenuActionLeft
	MenuActionRight
	MenuActionSelect
	MenuActionBack
	MenuActionQuit
)

// MapKeyToMenuAction translates a key to a menu action.
func (km *KeyMapper) MapKeyToMenuAction(msg tea.KeyMsg) MenuAction {
	switch msg.String() {
	case "ctrl+c", "q":
		return MenuActionQuit
	case "w", "up", "k": // vim-style k for up
		return MenuActionUp
	case "s", "down", "j": // vim-style j for down
		return MenuActionDown
	case "a", "left", "h":
		return MenuActionLeft
	case "d", "right", "l":
		return MenuActionRight
	case "enter", " ":
		return MenuActionSelect
	case "b", "esc":
		return MenuActionBack
	}
	return MenuActionNone
}
