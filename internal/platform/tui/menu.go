package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-blocks/internal/core"
	"github.com/vovakirdan/tui-blocks/internal/games/blocks"
	"github.com/vovakirdan/tui-blocks/internal/registry"
	"github.com/vovakirdan/tui-blocks/internal/storage"
)

// MenuChoice is what a menu entry does.
type MenuChoice int

const (
	ChoiceNone MenuChoice = iota
	ChoicePlay
	ChoiceResume
	ChoiceCharacter
	ChoiceScores
	ChoiceQuit
)

// MenuItem represents a selectable entry in the menu.
type MenuItem struct {
	Choice MenuChoice
	GameID string // set for ChoicePlay and ChoiceResume
	Title  string
}

// MenuModel is the Bubble Tea model for the main menu.
type MenuModel struct {
	items     []MenuItem
	cursor    int
	width     int
	height    int
	store     *storage.Store
	profile   string
	config    core.RuntimeConfig
	keyMapper *KeyMapper
	quitting  bool
	selected  *MenuItem
	best      int
}

// NewMenuModel creates a new menu model. A resume entry is offered when
// profile has a saved snapshot.
func NewMenuModel(store *storage.Store, profile string, cfg core.RuntimeConfig) MenuModel {
	if profile == "" {
		profile = storage.DefaultProfile
	}

	items := make([]MenuItem, 0, 6)
	if store != nil {
		if snap, ok, err := store.LoadSnapshot(profile); err == nil && ok {
			items = append(items, MenuItem{
				Choice: ChoiceResume,
				GameID: blocks.IDMarathon,
				Title:  fmt.Sprintf("Continue (level %d, %d pts)", snap.Level, snap.Score),
			})
		}
	}
	items = append(items,
		MenuItem{Choice: ChoicePlay, GameID: blocks.IDMarathon, Title: registry.Title(blocks.IDMarathon)},
		MenuItem{Choice: ChoicePlay, GameID: blocks.IDSprint, Title: registry.Title(blocks.IDSprint)},
		MenuItem{Choice: ChoiceCharacter, Title: "Character & Theme"},
		MenuItem{Choice: ChoiceScores, Title: "High Scores"},
		MenuItem{Choice: ChoiceQuit, Title: "Quit"},
	)

	m := MenuModel{
		items:     items,
		width:     cfg.ScreenW,
		height:    cfg.ScreenH,
		store:     store,
		profile:   profile,
		config:    cfg,
		keyMapper: NewKeyMapper(),
	}
	if store != nil {
		if best, err := store.HighScore(blocks.IDMarathon); err == nil {
			m.best = best
		}
	}
	return m
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input for menu navigation.
func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "tab" {
		m.selected = &MenuItem{Choice: ChoiceScores}
		return m, tea.Quit
	}

	switch m.keyMapper.MapKeyToMenuAction(msg) {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit

	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}

	case MenuActionDown:
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}

	case MenuActionSelect:
		selected := m.items[m.cursor]
		if selected.Choice == ChoiceQuit {
			m.quitting = true
			return m, tea.Quit
		}
		m.selected = &selected
		return m, tea.Quit
	}

	return m, nil
}

var (
	menuTitleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("51"))
	menuSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	menuDimStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerStyled("  B L O C K S  ", menuTitleStyle, m.width))
	b.WriteString("\n\n")
	if m.best > 0 {
		b.WriteString(centerStyled(fmt.Sprintf("Best: %d", m.best), menuDimStyle, m.width))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	for i, item := range m.items {
		line := "  " + item.Title
		style := lipgloss.NewStyle()
		if i == m.cursor {
			line = "> " + item.Title
			style = menuSelectedStyle
		}
		b.WriteString(centerStyled(line, style, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	controls := "Up/Down: Navigate  |  Enter: Select  |  Tab: Scores  |  Q: Quit"
	b.WriteString(centerStyled(controls, menuDimStyle, m.width))
	b.WriteString("\n")

	return b.String()
}

// Selected returns the selected menu item, or nil if none selected.
func (m MenuModel) Selected() *MenuItem {
	return m.selected
}

// IsQuitting returns true if user requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// Config returns the current runtime config (may have been updated by resize).
func (m MenuModel) Config() core.RuntimeConfig {
	return m.config
}

// centerText centers text within given width.
func centerText(text string, width int) string {
	n := lipgloss.Width(text)
	if n >= width {
		return text
	}
	return strings.Repeat(" ", (width-n)/2) + text
}

func centerStyled(text string, style lipgloss.Style, width int) string {
	return centerText(style.Render(text), width)
}

// MenuResult holds the result of running the menu.
type MenuResult struct {
	Choice MenuChoice
	GameID string
	Config core.RuntimeConfig
}

// RunMenu runs the menu and returns the selection result.
func RunMenu(store *storage.Store, profile string, cfg core.RuntimeConfig) (MenuResult, error) {
	model := NewMenuModel(store, profile, cfg)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return MenuResult{Config: cfg}, err
	}

	m, ok := finalModel.(MenuModel)
	if !ok || m.IsQuitting() || m.Selected() == nil {
		return MenuResult{Choice: ChoiceQuit, Config: cfg}, nil
	}

	sel := m.Selected()
	return MenuResult{
		Choice: sel.Choice,
		GameID: sel.GameID,
		Config: m.Config(),
	}, nil
}
