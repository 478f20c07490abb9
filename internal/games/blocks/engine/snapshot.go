package engine

import (
	"fmt"
	"time"

	"gopkg.in/yaml.v3"
)

// SnapshotVersion is written into every snapshot.
const SnapshotVersion = 1

// Snapshot is the persisted subset of a session. The board itself is not
// saved; a resumed session starts on an empty field with the restored
// score, lines and level.
type Snapshot struct {
	Version      int             `yaml:"version"`
	Score        int             `yaml:"score"`
	Lines        int             `yaml:"lines"`
	Level        int             `yaml:"level"`
	Stats        Stats           `yaml:"stats"`
	Settings     map[string]bool `yaml:"settings"`
	EasterEggs   []string        `yaml:"easter_eggs,omitempty"`
	Achievements []string        `yaml:"achievements,omitempty"`
	Character    string          `yaml:"character"`
	Theme        string          `yaml:"theme"`
}

// Serialize captures the session.
func (s *Session) Serialize() Snapshot {
	st := s.scorer.State()
	return Snapshot{
		Version:      SnapshotVersion,
		Score:        st.Score,
		Lines:        st.Lines,
		Level:        st.Level,
		Stats:        s.stats,
		Settings:     s.settings.Map(),
		EasterEggs:   s.eggs.Activated(),
		Achievements: s.Achievements(),
		Character:    s.character.ID,
		Theme:        s.theme,
	}
}

// Deserialize restores a snapshot into the session. Missing fields keep
// their initial values; unknown characters fall back to the default one.
func (s *Session) Deserialize(snap Snapshot) {
	s.scorer.Restore(snap.Score, snap.Lines, snap.Level)
	s.stats = snap.Stats
	s.gameTime = time.Duration(max(snap.Stats.TimeAliveMs, 0)) * time.Millisecond
	s.settings = DefaultSettings().Merge(snap.Settings)
	s.eggs.Restore(snap.EasterEggs)
	for _, id := range snap.Achievements {
		s.achievements[id] = true
	}
	if snap.Character != "" {
		s.character = FindCharacter(s.cfg.Characters, snap.Character)
	}
	s.SetTheme(snap.Theme)
}

// EncodeSnapshot renders snap as YAML.
func EncodeSnapshot(snap Snapshot) ([]byte, error) {
	data, err := yaml.Marshal(snap)
	if err != nil {
		return nil, fmt.Errorf("engine: encode snapshot: %w", err)
	}
	return data, nil
}

// DecodeSnapshot parses YAML produced by EncodeSnapshot.
func DecodeSnapshot(data []byte) (Snapshot, error) {
	var snap Snapshot
	if err := yaml.Unmarshal(data, &snap); err != nil {
		return Snapshot{}, fmt.Errorf("engine: decode snapshot: %w", err)
	}
	if snap.Level < 1 {
		snap.Level = 1
	}
	return snap, nil
}
