package engine

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnapshotRoundTrip(t *testing.T) {
	s, _ := newTestSession(t, WithCharacter("miner"), WithTheme("ocean"))
	setupSingle(s)
	s.HardDrop()
	for _, k := range Konami {
		s.FeedKey(k)
	}
	st := s.Settings()
	st.Music = false
	st.ScreenShake = false
	s.SetSettings(st)
	s.stats.TimeAliveMs = 12345

	snap := s.Serialize()
	data, err := EncodeSnapshot(snap)
	require.NoError(t, err)

	decoded, err := DecodeSnapshot(data)
	require.NoError(t, err)
	if diff := cmp.Diff(snap, decoded, cmpopts.EquateEmpty()); diff != "" {
		t.Errorf("DecodeSnapshot() mismatch (-want +got):\n%s", diff)
	}

	restored := NewSession(testConfig())
	restored.Deserialize(decoded)
	if diff := cmp.Diff(snap, restored.Serialize(), cmpopts.EquateEmpty()); diff != "" {
		t.Errorf("Deserialize(Serialize()) mismatch (-want +got):\n%s", diff)
	}

	assert.Equal(t, s.Score().Score, restored.Score().Score)
	assert.Equal(t, s.Score().Lines, restored.Score().Lines)
	assert.Equal(t, s.Score().Level, restored.Score().Level)
	assert.Equal(t, "miner", restored.Character().ID)
	assert.Equal(t, "ocean", restored.Theme())
	assert.False(t, restored.Settings().Music)
	assert.True(t, restored.Settings().ShowGhost)
}

func TestSnapshotRestoredEggsStayUsed(t *testing.T) {
	s, _ := newTestSession(t)
	s.Deserialize(Snapshot{Level: 1, EasterEggs: []string{"KONAMI"}})

	for _, k := range Konami {
		assert.Empty(t, s.FeedKey(k))
	}
	assert.Equal(t, 0, s.Score().Score)
}

func TestDecodeSnapshotDefaults(t *testing.T) {
	snap, err := DecodeSnapshot([]byte("score: 10\n"))
	require.NoError(t, err)
	assert.Equal(t, 10, snap.Score)
	assert.Equal(t, 1, snap.Level)

	s, _ := newTestSession(t)
	s.Deserialize(snap)
	assert.Equal(t, DefaultSettings(), s.Settings())
	assert.Equal(t, "steve", s.Character().ID)
	assert.Equal(t, "classic", s.Theme())
	assert.Equal(t, 10, s.Score().Score)
}

func TestDecodeSnapshotInvalid(t *testing.T) {
	_, err := DecodeSnapshot([]byte("score: [1, 2"))
	assert.Error(t, err)
}

func TestSettingsMerge(t *testing.T) {
	got := DefaultSettings().Merge(map[string]bool{
		"sfx":       false,
		"show_grid": false,
		"unknown":   false,
	})

	want := DefaultSettings()
	want.SFX = false
	want.ShowGrid = false
	assert.Equal(t, want, got)
	assert.Equal(t, want, DefaultSettings().Merge(want.Map()))
}

func TestStatsPiecesPerSecond(t *testing.T) {
	assert.Equal(t, 0.0, Stats{TotalPieces: 10}.PiecesPerSecond())
	assert.InDelta(t, 2.5, Stats{TotalPieces: 10, TimeAliveMs: 4000}.PiecesPerSecond(), 1e-9)
}
