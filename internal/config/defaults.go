package config

import (
	_ "embed"
)

//go:embed defaults/whack.yaml
var defaultWhackYAML []byte

// DefaultWhackConfig returns the built-in configuration.
// It matches defaults/whack.yaml and is used when the embedded file fails to parse.
func DefaultWhackConfig() WhackConfig {
	return WhackConfig{
		Game: GameConfig{
			Duration:     90,
			Layout:       "classic",
			RestartDelay: 0.25,
		},
		Spawn: SpawnConfig{
			MinInterval: 0.4,
			MaxInterval: 0.8,
			Visible:     1.0,
		},
		Entities: EntitiesConfig{
			BenignWeight:  8,
			HostileWeight: 2,
			BenignScore:   10,
			HostileScore:  -50,
		},
		Countdown: CountdownConfig{
			From:   3,
			Step:   1.0,
			LeadIn: 0.5,
		},
		Surface: SurfaceConfig{
			ScanMin: 1.0,
			ScanMax: 2.5,
		},
		Difficulty: DifficultyConfig{
			Enabled: true,
			Steps: []StepConfig{
				{At: 30, MaxInterval: 0.6, Visible: 0.75},
				{At: 60, MaxInterval: 0.5, Visible: 0.5},
			},
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultWhackYAML
}
