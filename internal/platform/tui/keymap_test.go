package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-blocks/internal/core"
)

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestMapKey(t *testing.T) {
	km := NewKeyMapper()

	tests := []struct {
		name     string
		msg      tea.KeyMsg
		expected core.Action
		quit     bool
	}{
		{"left arrow", tea.KeyMsg{Type: tea.KeyLeft}, core.ActionLeft, false},
		{"a", runeKey('a'), core.ActionLeft, false},
		{"right arrow", tea.KeyMsg{Type: tea.KeyRight}, core.ActionRight, false},
		{"d", runeKey('d'), core.ActionRight, false},
		{"down arrow", tea.KeyMsg{Type: tea.KeyDown}, core.ActionSoftDrop, false},
		{"s", runeKey('s'), core.ActionSoftDrop, false},
		{"up arrow", tea.KeyMsg{Type: tea.KeyUp}, core.ActionRotateCW, false},
		{"w", runeKey('w'), core.ActionRotateCW, false},
		{"x", runeKey('x'), core.ActionRotateCW, false},
		{"z", runeKey('z'), core.ActionRotateCCW, false},
		{"space", tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}, core.ActionHardDrop, false},
		{"c", runeKey('c'), core.ActionHold, false},
		{"shift+tab", tea.KeyMsg{Type: tea.KeyShiftTab}, core.ActionHold, false},
		{"p", runeKey('p'), core.ActionPause, false},
		{"esc", tea.KeyMsg{Type: tea.KeyEscape}, core.ActionPause, false},
		{"r", runeKey('r'), core.ActionRestart, false},
		{"b", runeKey('b'), core.ActionBack, false},
		{"q", runeKey('q'), core.ActionQuit, true},
		{"ctrl+c", tea.KeyMsg{Type: tea.KeyCtrlC}, core.ActionQuit, true},
		{"unbound", runeKey('y'), core.ActionNone, false},
	}

	for _, tc := range tests {
		action, quit := km.MapKey(tc.msg)
		if action != tc.expected || quit != tc.quit {
			t.Errorf("%s: MapKey() = %v, %v; expected %v, %v", tc.name, action, quit, tc.expected, tc.quit)
		}
	}
}

func TestRawKey(t *testing.T) {
	tests := []struct {
		msg      tea.KeyMsg
		expected string
	}{
		{tea.KeyMsg{Type: tea.KeyUp}, "ArrowUp"},
		{tea.KeyMsg{Type: tea.KeyDown}, "ArrowDown"},
		{tea.KeyMsg{Type: tea.KeyLeft}, "ArrowLeft"},
		{tea.KeyMsg{Type: tea.KeyRight}, "ArrowRight"},
		{runeKey('b'), "b"},
		{runeKey('A'), "A"},
		{tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'a'}, Alt: true}, ""},
		{tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("ab")}, ""},
		{tea.KeyMsg{Type: tea.KeyEnter}, ""},
	}

	for _, tc := range tests {
		if got := RawKey(tc.msg); got != tc.expected {
			t.Errorf("RawKey(%v) = %q, expected %q", tc.msg, got, tc.expected)
		}
	}
}

func TestMapKeyToFrame(t *testing.T) {
	km := NewKeyMapper()
	frame := core.NewInputFrame()

	km.MapKeyToFrame(tea.KeyMsg{Type: tea.KeyUp}, &frame)
	if action, _ := km.MapKeyToFrame(runeKey('b'), &frame); action != core.ActionBack {
		t.Errorf("b mapped to %v, expected Back", action)
	}
	km.MapKeyToFrame(runeKey('y'), &frame)

	if len(frame.Actions) != 2 || frame.Actions[0] != core.ActionRotateCW || frame.Actions[1] != core.ActionBack {
		t.Errorf("Actions = %v, expected [RotateCW Back]", frame.Actions)
	}
	expectedKeys := []string{"ArrowUp", "b", "y"}
	if len(frame.Keys) != len(expectedKeys) {
		t.Fatalf("Keys = %v, expected %v", frame.Keys, expectedKeys)
	}
	for i, k := range expectedKeys {
		if frame.Keys[i] != k {
			t.Errorf("Keys[%d] = %q, expected %q", i, frame.Keys[i], k)
		}
	}

	if _, isQuit := km.MapKeyToFrame(runeKey('q'), &frame); !isQuit {
		t.Error("q should be a quit request")
	}
	if len(frame.Keys) != len(expectedKeys) {
		t.Errorf("quit should not reach the frame, Keys = %v", frame.Keys)
	}
}

func TestMapKeyToMenuAction(t *testing.T) {
	km := NewKeyMapper()

	tests := []struct {
		msg      tea.KeyMsg
		expected MenuAction
	}{
		{tea.KeyMsg{Type: tea.KeyUp}, MenuActionUp},
		{runeKey('k'), MenuActionUp},
		{tea.KeyMsg{Type: tea.KeyDown}, MenuActionDown},
		{runeKey('j'), MenuActionDown},
		{tea.KeyMsg{Type: tea.KeyLeft}, MenuActionLeft},
		{tea.KeyMsg{Type: tea.KeyRight}, MenuActionRight},
		{tea.KeyMsg{Type: tea.KeyEnter}, MenuActionSelect},
		{tea.KeyMsg{Type: tea.KeyEscape}, MenuActionBack},
		{runeKey('q'), MenuActionQuit},
		{runeKey('y'), MenuActionNone},
	}

	for _, tc := range tests {
		if got := km.MapKeyToMenuAction(tc.msg); got != tc.expected {
			t.Errorf("MapKeyToMenuAction(%v) = %v, expected %v", tc.msg, got, tc.expected)
		}
	}
}
