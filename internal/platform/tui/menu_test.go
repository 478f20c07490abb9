package tui

import (
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-blocks/internal/config"
	"github.com/vovakirdan/tui-blocks/internal/core"
	"github.com/vovakirdan/tui-blocks/internal/games/blocks"
	"github.com/vovakirdan/tui-blocks/internal/games/blocks/engine"
	"github.com/vovakirdan/tui-blocks/internal/storage"
)

func openTestStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestMenuItems(t *testing.T) {
	store := openTestStore(t)
	cfg := core.RuntimeConfig{ScreenW: 80, ScreenH: 24}

	m := NewMenuModel(store, "", cfg)
	require.NotEmpty(t, m.items)
	assert.Equal(t, ChoicePlay, m.items[0].Choice)
	assert.Equal(t, blocks.IDMarathon, m.items[0].GameID)

	require.NoError(t, store.SaveSnapshot(storage.DefaultProfile, engine.Snapshot{Score: 1200, Level: 2}))
	m = NewMenuModel(store, "", cfg)
	assert.Equal(t, ChoiceResume, m.items[0].Choice)
	assert.Contains(t, m.items[0].Title, "1200")
}

func TestMenuNavigation(t *testing.T) {
	m := NewMenuModel(nil, "", core.RuntimeConfig{ScreenW: 80, ScreenH: 24})

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyUp})
	m = next.(MenuModel)
	assert.Equal(t, 0, m.cursor, "cursor stays at the top")

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m = next.(MenuModel)
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(MenuModel)

	require.NotNil(t, m.Selected())
	assert.Equal(t, blocks.IDSprint, m.Selected().GameID)
	assert.NotNil(t, cmd)

	m = NewMenuModel(nil, "", core.RuntimeConfig{})
	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = next.(MenuModel)
	require.NotNil(t, m.Selected())
	assert.Equal(t, ChoiceScores, m.Selected().Choice)
}

func TestMenuQuitEntry(t *testing.T) {
	m := NewMenuModel(nil, "", core.RuntimeConfig{})
	m.cursor = len(m.items) - 1

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(MenuModel)
	assert.True(t, m.IsQuitting())
	assert.Nil(t, m.Selected())
}

func TestCharacterModelSavesSelection(t *testing.T) {
	store := openTestStore(t)
	cfg := config.DefaultBlocksConfig()

	m := NewCharacterModel(cfg, store, "alice", 80, 24)
	assert.Equal(t, 0, m.cursor)

	for _, msg := range []tea.Msg{
		tea.KeyMsg{Type: tea.KeyDown},
		tea.KeyMsg{Type: tea.KeyRight},
		tea.KeyMsg{Type: tea.KeyEnter},
	} {
		next, _ := m.Update(msg)
		m = next.(CharacterModel)
	}

	sel, ok := m.Selection()
	require.True(t, ok)
	require.NoError(t, m.Err())
	assert.Equal(t, cfg.Characters[1].ID, sel.Character)
	assert.True(t, m.IsGoingBack())

	id, err := store.Character("alice")
	require.NoError(t, err)
	assert.Equal(t, sel.Character, id)
	theme, err := store.Theme("alice")
	require.NoError(t, err)
	assert.Equal(t, sel.Theme, theme)
	assert.True(t, cfg.HasTheme(theme))

	// Other profiles are untouched.
	id, err = store.Character("bob")
	require.NoError(t, err)
	assert.Equal(t, engine.DefaultCharacterID, id)

	// Reopening starts at the saved choice.
	m = NewCharacterModel(cfg, store, "alice", 80, 24)
	assert.Equal(t, 1, m.cursor)
	assert.Equal(t, sel.Theme, m.themes[m.themeIdx])
}

func TestCharacterModelBack(t *testing.T) {
	store := openTestStore(t)
	m := NewCharacterModel(config.DefaultBlocksConfig(), store, "alice", 80, 24)

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m = next.(CharacterModel)
	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyEscape})
	m = next.(CharacterModel)

	_, ok := m.Selection()
	assert.False(t, ok)
	assert.True(t, m.IsGoingBack())

	id, err := store.Character("alice")
	require.NoError(t, err)
	assert.Equal(t, engine.DefaultCharacterID, id)
}

func TestSessionModelFlow(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	store := openTestStore(t)
	require.NoError(t, store.SetCharacter("carol", "miner"))

	s := NewSessionModel(SessionOptions{Store: store, Profile: "carol"}, core.RuntimeConfig{ScreenW: 80, ScreenH: 30, TickRate: 60})

	update := func(msg tea.Msg) {
		next, _ := s.Update(msg)
		s = next.(SessionModel)
	}

	// Enter starts marathon with the profile's character.
	update(tea.KeyMsg{Type: tea.KeyEnter})
	require.Equal(t, stateGame, s.state)
	bg, ok := s.gameModel.game.(*blocks.Game)
	require.True(t, ok)
	assert.Equal(t, "miner", bg.Session().Character().ID)

	update(TickMsg{})
	update(runeKey('p'))
	update(TickMsg{})
	update(runeKey('b'))
	assert.Equal(t, stateMenu, s.state)
	assert.Nil(t, s.gameModel)

	// Scores and back.
	update(tea.KeyMsg{Type: tea.KeyTab})
	require.Equal(t, stateScores, s.state)
	update(tea.KeyMsg{Type: tea.KeyEscape})
	assert.Equal(t, stateMenu, s.state)

	update(runeKey('q'))
	assert.True(t, s.quitting)
	assert.Empty(t, s.View())
}

func TestScoreboardSprintRanksByLines(t *testing.T) {
	store := openTestStore(t)
	for _, e := range []storage.ScoreEntry{
		{GameID: blocks.IDMarathon, Score: 7000, Lines: 30, Level: 4},
		{GameID: blocks.IDSprint, Score: 9000, Lines: 20, Level: 3},
		{GameID: blocks.IDSprint, Score: 5000, Lines: 40, Level: 4},
	} {
		_, err := store.SaveScore(e)
		require.NoError(t, err)
	}

	m := NewScoreboardModel(store, 120, 30)
	require.Equal(t, blocks.IDMarathon, m.games[m.gameCursor].ID)
	assert.Equal(t, "Score", m.columns[0].title)
	require.Len(t, m.scores, 1)

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRight})
	m = next.(ScoreboardModel)
	require.Equal(t, blocks.IDSprint, m.games[m.gameCursor].ID)
	assert.Equal(t, "Lines", m.columns[0].title)
	require.Len(t, m.scores, 2)
	assert.Equal(t, 40, m.scores[0].Lines)

	rows := m.table.Rows()
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"#1", "40", "5000"}, []string(rows[0][:3]))
}
