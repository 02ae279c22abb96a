package config

import (
	"fmt"
	"strings"
)

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// Presets lists the accepted preset names.
var Presets = []DifficultyPreset{DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed}

// ParsePreset converts a flag value into a preset. An empty string means normal.
func ParsePreset(name string) (DifficultyPreset, error) {
	if name == "" {
		return DifficultyNormal, nil
	}
	p := DifficultyPreset(strings.ToLower(strings.TrimSpace(name)))
	for _, known := range Presets {
		if p == known {
			return p, nil
		}
	}
	return "", fmt.Errorf("config: unknown difficulty %q (want easy, normal, hard or fixed)", name)
}

// PaceForPreset returns the factor applied to spawn intervals and visibility.
// Larger is slower and easier.
func PaceForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 1.25
	case DifficultyHard:
		return 0.75
	default:
		return 1.0
	}
}

// IsFixedPreset returns true if the preset disables the difficulty schedule.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}

// ApplyPreset modifies the config based on a difficulty preset.
func ApplyPreset(cfg *WhackConfig, preset DifficultyPreset) {
	if IsFixedPreset(preset) {
		cfg.Difficulty.Enabled = false
		return
	}

	pace := PaceForPreset(preset)
	if pace == 1.0 {
		return
	}
	cfg.Spawn.MinInterval *= pace
	cfg.Spawn.MaxInterval *= pace
	cfg.Spawn.Visible *= pace
	for i := range cfg.Difficulty.Steps {
		cfg.Difficulty.Steps[i].MinInterval *= pace
		cfg.Difficulty.Steps[i].MaxInterval *= pace
		cfg.Difficulty.Steps[i].Visible *= pace
	}

	// Hard runs hide more hostiles among the benign ones
	if preset == DifficultyHard && cfg.Entities.HostileWeight > 0 {
		cfg.Entities.HostileWeight++
	}
}
