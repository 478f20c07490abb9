package config

import "testing"

func TestParseDifficulty(t *testing.T) {
	tests := []struct {
		in       string
		expected DifficultyPreset
		wantErr  bool
	}{
		{"", "", false},
		{"easy", DifficultyEasy, false},
		{"HARD", DifficultyHard, false},
		{" fixed ", DifficultyFixed, false},
		{"nightmare", "", true},
	}

	for _, tc := range tests {
		got, err := ParseDifficulty(tc.in)
		if (err != nil) != tc.wantErr {
			t.Errorf("ParseDifficulty(%q) error = %v, wantErr %v", tc.in, err, tc.wantErr)
		}
		if got != tc.expected {
			t.Errorf("ParseDifficulty(%q) = %q, expected %q", tc.in, got, tc.expected)
		}
	}
}

func TestApplyBlocksPreset(t *testing.T) {
	tests := []struct {
		preset     DifficultyPreset
		startLevel int
		fixed      bool
	}{
		{DifficultyEasy, 1, false},
		{DifficultyNormal, 3, false},
		{DifficultyHard, 6, false},
	}

	for _, tc := range tests {
		cfg := DefaultBlocksConfig()
		ApplyBlocksPreset(&cfg, tc.preset)
		if cfg.Difficulty.StartLevel != tc.startLevel {
			t.Errorf("%s: StartLevel = %d, expected %d", tc.preset, cfg.Difficulty.StartLevel, tc.startLevel)
		}
		if cfg.Difficulty.Fixed != tc.fixed {
			t.Errorf("%s: Fixed = %v, expected %v", tc.preset, cfg.Difficulty.Fixed, tc.fixed)
		}
	}

	cfg := DefaultBlocksConfig()
	cfg.Difficulty.StartLevel = 4
	ApplyBlocksPreset(&cfg, DifficultyFixed)
	if !cfg.Difficulty.Fixed || cfg.Difficulty.StartLevel != 4 {
		t.Errorf("fixed preset should freeze the configured level, got %+v", cfg.Difficulty)
	}

	cfg = DefaultBlocksConfig()
	ApplyBlocksPreset(&cfg, "")
	if cfg.Difficulty != DefaultBlocksConfig().Difficulty {
		t.Error("empty preset should leave difficulty untouched")
	}
}
