package storage

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/vovakirdan/tui-blocks/internal/games/blocks/engine"
)

// Profile keys.
const (
	keySnapshot  = "snapshot"
	keyCharacter = "character"
	keyTheme     = "theme"
)

// DefaultProfile is used by the local TUI. SSH sessions use the user name.
const DefaultProfile = "local"

// SetValue stores value under (profile, key), replacing any previous value.
func (s *Store) SetValue(profile, key, value string) error {
	_, err := s.db.Exec(
		`INSERT INTO profile_kv (profile, key, value, updated_at)
		 VALUES (?, ?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT(profile, key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP`,
		profile, key, value,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot set %s/%s: %w", profile, key, err)
	}
	return nil
}

// Value returns the value stored under (profile, key). ok is false when
// nothing was stored.
func (s *Store) Value(profile, key string) (value string, ok bool, err error) {
	err = s.db.QueryRow(
		"SELECT value FROM profile_kv WHERE profile = ? AND key = ?",
		profile, key,
	).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("storage: cannot get %s/%s: %w", profile, key, err)
	}
	return value, true, nil
}

// DeleteValue removes (profile, key). Missing keys are not an error.
func (s *Store) DeleteValue(profile, key string) error {
	if _, err := s.db.Exec("DELETE FROM profile_kv WHERE profile = ? AND key = ?", profile, key); err != nil {
		return fmt.Errorf("storage: cannot delete %s/%s: %w", profile, key, err)
	}
	return nil
}

// SaveSnapshot stores a session snapshot for the profile as YAML.
func (s *Store) SaveSnapshot(profile string, snap engine.Snapshot) error {
	data, err := engine.EncodeSnapshot(snap)
	if err != nil {
		return fmt.Errorf("storage: %w", err)
	}
	return s.SetValue(profile, keySnapshot, string(data))
}

// LoadSnapshot returns the profile's last snapshot. ok is false when the
// profile has none.
func (s *Store) LoadSnapshot(profile string) (engine.Snapshot, bool, error) {
	raw, ok, err := s.Value(profile, keySnapshot)
	if err != nil || !ok {
		return engine.Snapshot{}, false, err
	}
	snap, err := engine.DecodeSnapshot([]byte(raw))
	if err != nil {
		return engine.Snapshot{}, false, fmt.Errorf("storage: %w", err)
	}
	return snap, true, nil
}

// ClearSnapshot forgets the profile's snapshot.
func (s *Store) ClearSnapshot(profile string) error {
	return s.DeleteValue(profile, keySnapshot)
}

// SetCharacter remembers the profile's selected character.
func (s *Store) SetCharacter(profile, id string) error {
	return s.SetValue(profile, keyCharacter, id)
}

// Character returns the profile's character, or the default one.
func (s *Store) Character(profile string) (string, error) {
	id, ok, err := s.Value(profile, keyCharacter)
	if err != nil {
		return engine.DefaultCharacterID, err
	}
	if !ok || id == "" {
		return engine.DefaultCharacterID, nil
	}
	return id, nil
}

// SetTheme remembers the profile's theme.
func (s *Store) SetTheme(profile, name string) error {
	return s.SetValue(profile, keyTheme, name)
}

// Theme returns the profile's theme, or "" when none was chosen.
func (s *Store) Theme(profile string) (string, error) {
	name, _, err := s.Value(profile, keyTheme)
	return name, err
}
