package config

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	var cfg WhackConfig
	if err := yaml.Unmarshal(DefaultYAML(), &cfg); err != nil {
		t.Fatalf("embedded defaults do not parse: %v", err)
	}
	if !reflect.DeepEqual(cfg, DefaultWhackConfig()) {
		t.Errorf("embedded defaults differ from DefaultWhackConfig():\n%+v\n%+v", cfg, DefaultWhackConfig())
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestLoadCustomYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "whack.yaml")
	data := "game:\n  duration: 45\nspawn:\n  visible: 2.0\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Game.Duration != 45 || cfg.Spawn.Visible != 2.0 {
		t.Errorf("overrides not applied: %+v", cfg)
	}
	// Untouched fields keep their defaults
	if cfg.Spawn.MinInterval != 0.4 || cfg.Entities.HostileScore != -50 || len(cfg.Difficulty.Steps) != 2 {
		t.Errorf("defaults lost: %+v", cfg)
	}
}

func TestLoadCustomTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "whack.toml")
	data := `
[game]
duration = 60
layout = "wide"

[entities]
hostile_weight = 3

[[difficulty.steps]]
at = 20
visible = 0.6
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Game.Duration != 60 || cfg.Game.Layout != "wide" || cfg.Entities.HostileWeight != 3 {
		t.Errorf("toml values not applied: %+v", cfg)
	}
	if len(cfg.Difficulty.Steps) != 1 || cfg.Difficulty.Steps[0].At != 20 || cfg.Difficulty.Steps[0].MaxInterval != 0 {
		t.Errorf("steps = %+v, expected a single step at 20", cfg.Difficulty.Steps)
	}
	if cfg.Entities.BenignWeight != 8 {
		t.Errorf("BenignWeight = %d, expected default 8", cfg.Entities.BenignWeight)
	}
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()

	if _, err := Load(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("missing custom file should fail")
	}

	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("game: [not, a, map"), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err := Load(bad)
	if err == nil || !strings.HasPrefix(err.Error(), "config: parse") {
		t.Errorf("expected a parse error, got %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*WhackConfig)
		ok     bool
	}{
		{"defaults", func(*WhackConfig) {}, true},
		{"zero duration", func(c *WhackConfig) { c.Game.Duration = 0 }, false},
		{"inverted interval", func(c *WhackConfig) { c.Spawn.MinInterval = 1; c.Spawn.MaxInterval = 0.5 }, false},
		{"zero visible", func(c *WhackConfig) { c.Spawn.Visible = 0 }, false},
		{"no weights", func(c *WhackConfig) { c.Entities.BenignWeight = 0; c.Entities.HostileWeight = 0 }, false},
		{"benign only", func(c *WhackConfig) { c.Entities.HostileWeight = 0 }, true},
		{"negative lead-in", func(c *WhackConfig) { c.Countdown.LeadIn = -1 }, false},
		{"inverted scan", func(c *WhackConfig) { c.Surface.ScanMin = 3 }, false},
		{"unsorted steps", func(c *WhackConfig) { c.Difficulty.Steps[0].At = 90 }, false},
		{"inverted step", func(c *WhackConfig) { c.Difficulty.Steps[1].MinInterval = 0.9 }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultWhackConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if (err == nil) != tt.ok {
				t.Errorf("Validate() error = %v, expected ok=%v", err, tt.ok)
			}
		})
	}
}

func TestSettings(t *testing.T) {
	cfg := DefaultWhackConfig()
	s := cfg.Settings(9)

	if s.Duration != 90 || s.Slots != 9 {
		t.Errorf("duration=%d slots=%d", s.Duration, s.Slots)
	}
	if s.HostileWeight != 2 || s.BenignWeight != 8 || s.HostileDelta != -50 || s.BenignDelta != 10 {
		t.Errorf("entity settings = %+v", s)
	}
	if s.CountdownFrom != 3 || s.CountdownLeadIn != 0.5 || s.RestartDelay != 0.25 {
		t.Errorf("timing settings = %+v", s)
	}
	if len(s.Schedule) != 2 || s.Schedule[1].At != 60 || s.Schedule[1].Visible != 0.5 {
		t.Errorf("schedule = %+v", s.Schedule)
	}

	cfg.Difficulty.Enabled = false
	if s := cfg.Settings(4); len(s.Schedule) != 0 {
		t.Errorf("disabled difficulty should yield no schedule, got %+v", s.Schedule)
	}
}

func TestParsePreset(t *testing.T) {
	tests := []struct {
		in   string
		want DifficultyPreset
		ok   bool
	}{
		{"", DifficultyNormal, true},
		{"easy", DifficultyEasy, true},
		{" HARD ", DifficultyHard, true},
		{"fixed", DifficultyFixed, true},
		{"nightmare", "", false},
	}
	for _, tt := range tests {
		got, err := ParsePreset(tt.in)
		if (err == nil) != tt.ok || got != tt.want {
			t.Errorf("ParsePreset(%q) = %q, %v", tt.in, got, err)
		}
	}
}

func TestApplyPreset(t *testing.T) {
	normal := DefaultWhackConfig()
	ApplyPreset(&normal, DifficultyNormal)
	if !reflect.DeepEqual(normal, DefaultWhackConfig()) {
		t.Error("normal preset should not change the config")
	}

	easy := DefaultWhackConfig()
	ApplyPreset(&easy, DifficultyEasy)
	if easy.Spawn.Visible != 1.25 || easy.Spawn.MaxInterval != 1.0 {
		t.Errorf("easy spawn = %+v", easy.Spawn)
	}
	if easy.Difficulty.Steps[0].MinInterval != 0 {
		t.Error("unset step fields must stay unset")
	}

	hard := DefaultWhackConfig()
	ApplyPreset(&hard, DifficultyHard)
	if hard.Spawn.Visible != 0.75 || hard.Entities.HostileWeight != 3 {
		t.Errorf("hard = %+v %+v", hard.Spawn, hard.Entities)
	}

	fixed := DefaultWhackConfig()
	ApplyPreset(&fixed, DifficultyFixed)
	if fixed.Difficulty.Enabled {
		t.Error("fixed preset should disable the schedule")
	}
	if len(fixed.Settings(9).Schedule) != 0 {
		t.Error("fixed preset should produce no schedule")
	}
}

func TestMarshalRoundTripsThroughLoad(t *testing.T) {
	cfg := DefaultWhackConfig()
	cfg.Game.Layout = "big"

	data, err := Marshal(cfg)
	if err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(t.TempDir(), "out.yaml")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(got, cfg) {
		t.Errorf("round trip mismatch:\n%+v\n%+v", got, cfg)
	}
}
