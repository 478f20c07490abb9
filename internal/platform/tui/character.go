package tui

import (
	"fmt"
	"slices"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-blocks/internal/config"
	"github.com/vovakirdan/tui-blocks/internal/storage"
)

// CharacterSelection is the confirmed choice.
type CharacterSelection struct {
	Character string
	Theme     string
}

// CharacterModel lets the player pick a character and cycle themes.
// Confirmed choices are stored in the player's profile.
type CharacterModel struct {
	characters []config.CharacterConfig
	themes     []string
	cursor     int
	themeIdx   int
	width      int
	height     int
	store      *storage.Store
	profile    string
	keyMapper  *KeyMapper
	selection  CharacterSelection
	confirmed  bool
	quitting   bool
	back       bool
	err        error
}

// NewCharacterModel creates the selection screen, starting at the
// profile's current character and theme.
func NewCharacterModel(cfg config.BlocksConfig, store *storage.Store, profile string, width, height int) CharacterModel {
	if profile == "" {
		profile = storage.DefaultProfile
	}

	themes := make([]string, 0, len(cfg.Themes))
	for name := range cfg.Themes {
		themes = append(themes, name)
	}
	slices.Sort(themes)

	m := CharacterModel{
		characters: cfg.Characters,
		themes:     themes,
		width:      width,
		height:     height,
		store:      store,
		profile:    profile,
		keyMapper:  NewKeyMapper(),
	}

	current, theme := "", cfg.DefaultTheme
	if store != nil {
		if id, err := store.Character(profile); err == nil {
			current = id
		}
		if name, err := store.Theme(profile); err == nil && name != "" {
			theme = name
		}
	}
	for i, ch := range m.characters {
		if ch.ID == current {
			m.cursor = i
		}
	}
	if i := slices.Index(themes, theme); i >= 0 {
		m.themeIdx = i
	}
	return m
}

// Init initializes the model.
func (m CharacterModel) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (m CharacterModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	}
	return m, nil
}

func (m CharacterModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keyMapper.MapKeyToMenuAction(msg) {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit
	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}
	case MenuActionDown:
		if m.cursor < len(m.characters)-1 {
			m.cursor++
		}
	case MenuActionLeft:
		if len(m.themes) > 0 {
			m.themeIdx = (m.themeIdx - 1 + len(m.themes)) % len(m.themes)
		}
	case MenuActionRight:
		if len(m.themes) > 0 {
			m.themeIdx = (m.themeIdx + 1) % len(m.themes)
		}
	case MenuActionSelect:
		m.confirm()
		return m, tea.Quit
	case MenuActionBack:
		m.back = true
		return m, tea.Quit
	}
	return m, nil
}

// confirm records the selection and saves it to the profile.
func (m *CharacterModel) confirm() {
	if len(m.characters) > 0 {
		m.selection.Character = m.characters[m.cursor].ID
	}
	if len(m.themes) > 0 {
		m.selection.Theme = m.themes[m.themeIdx]
	}
	m.confirmed = true

	if m.store == nil {
		return
	}
	if m.selection.Character != "" {
		if err := m.store.SetCharacter(m.profile, m.selection.Character); err != nil {
			m.err = err
			return
		}
	}
	if m.selection.Theme != "" {
		if err := m.store.SetTheme(m.profile, m.selection.Theme); err != nil {
			m.err = err
		}
	}
}

var characterDescStyle = lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("245"))

// View renders the selection screen.
func (m CharacterModel) View() string {
	if m.quitting || m.back || m.confirmed {
		return ""
	}

	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerStyled("CHOOSE YOUR CHARACTER", menuTitleStyle, m.width))
	b.WriteString("\n\n")

	for i, ch := range m.characters {
		line := fmt.Sprintf("  %-10s x%.1f score  %.1fx speed", ch.Name, ch.ScoreMultiplier, ch.Speed)
		style := lipgloss.NewStyle()
		if i == m.cursor {
			line = ">" + line[1:]
			style = menuSelectedStyle
		}
		b.WriteString(centerStyled(line, style, m.width))
		b.WriteString("\n")
	}

	if len(m.characters) > 0 {
		ch := m.characters[m.cursor]
		b.WriteString("\n")
		b.WriteString(centerStyled(ch.Description, characterDescStyle, m.width))
		b.WriteString("\n")
		if ch.Ability != "" {
			b.WriteString(centerStyled("Ability: "+ch.Ability, menuDimStyle, m.width))
			b.WriteString("\n")
		}
	}

	if len(m.themes) > 0 {
		b.WriteString("\n")
		b.WriteString(centerText(fmt.Sprintf("Theme: < %s >", m.themes[m.themeIdx]), m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	controls := "Up/Down: Character  |  Left/Right: Theme  |  Enter: Save  |  Esc: Back"
	b.WriteString(centerStyled(controls, menuDimStyle, m.width))
	b.WriteString("\n")

	return b.String()
}

// Selection returns the confirmed choice.
func (m CharacterModel) Selection() (CharacterSelection, bool) {
	return m.selection, m.confirmed
}

// Err returns the error from saving the selection, if any.
func (m CharacterModel) Err() error {
	return m.err
}

// IsQuitting returns true if user requested to quit.
func (m CharacterModel) IsQuitting() bool {
	return m.quitting
}

// IsGoingBack returns true once the screen is done, confirmed or not.
func (m CharacterModel) IsGoingBack() bool {
	return m.back || m.confirmed
}

// RunCharacterSelect runs the selection screen. It returns the confirmed
// choice, or ok=false when the player backed out or quit.
func RunCharacterSelect(cfg config.BlocksConfig, store *storage.Store, profile string, width, height int) (sel CharacterSelection, ok, quit bool, err error) {
	model := NewCharacterModel(cfg, store, profile, width, height)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return CharacterSelection{}, false, false, err
	}

	m, ok := finalModel.(CharacterModel)
	if !ok {
		return CharacterSelection{}, false, true, nil
	}
	if m.Err() != nil {
		return CharacterSelection{}, false, false, m.Err()
	}
	sel, confirmed := m.Selection()
	return sel, confirmed, m.IsQuitting(), nil
}
