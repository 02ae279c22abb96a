// Package config provides YAML-based game configuration loading and
// difficulty presets for the whack-a-mole garden.
package config

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/tui-whackamole/internal/session"
)

// WhackConfig contains all tunable game parameters.
type WhackConfig struct {
	Game       GameConfig       `yaml:"game" toml:"game"`
	Spawn      SpawnConfig      `yaml:"spawn" toml:"spawn"`
	Entities   EntitiesConfig   `yaml:"entities" toml:"entities"`
	Countdown  CountdownConfig  `yaml:"countdown" toml:"countdown"`
	Surface    SurfaceConfig    `yaml:"surface" toml:"surface"`
	Difficulty DifficultyConfig `yaml:"difficulty" toml:"difficulty"`
}

// GameConfig defines run length and layout.
type GameConfig struct {
	Duration     int     `yaml:"duration" toml:"duration"` // seconds
	Layout       string  `yaml:"layout" toml:"layout"`
	RestartDelay float64 `yaml:"restart_delay" toml:"restart_delay"`
}

// SpawnConfig defines initial spawn pacing, in seconds.
type SpawnConfig struct {
	MinInterval float64 `yaml:"min_interval" toml:"min_interval"`
	MaxInterval float64 `yaml:"max_interval" toml:"max_interval"`
	Visible     float64 `yaml:"visible" toml:"visible"`
}

// EntitiesConfig defines the draw weights and score deltas of both kinds.
type EntitiesConfig struct {
	BenignWeight  int `yaml:"benign_weight" toml:"benign_weight"`
	HostileWeight int `yaml:"hostile_weight" toml:"hostile_weight"`
	BenignScore   int `yaml:"benign_score" toml:"benign_score"`
	HostileScore  int `yaml:"hostile_score" toml:"hostile_score"`
}

// CountdownConfig defines the pre-run countdown.
type CountdownConfig struct {
	From   int     `yaml:"from" toml:"from"`
	Step   float64 `yaml:"step" toml:"step"`
	LeadIn float64 `yaml:"lead_in" toml:"lead_in"`
}

// SurfaceConfig bounds how long the simulated surface scan takes, in seconds.
type SurfaceConfig struct {
	ScanMin float64 `yaml:"scan_min" toml:"scan_min"`
	ScanMax float64 `yaml:"scan_max" toml:"scan_max"`
}

// DifficultyConfig defines the time-based difficulty schedule.
type DifficultyConfig struct {
	Enabled bool         `yaml:"enabled" toml:"enabled"`
	Steps   []StepConfig `yaml:"steps" toml:"steps"`
}

// StepConfig is one schedule entry. Zero fields keep the current value.
type StepConfig struct {
	At          float64 `yaml:"at" toml:"at"`
	MinInterval float64 `yaml:"min_interval,omitempty" toml:"min_interval,omitempty"`
	MaxInterval float64 `yaml:"max_interval,omitempty" toml:"max_interval,omitempty"`
	Visible     float64 `yaml:"visible,omitempty" toml:"visible,omitempty"`
}

// Validate reports every impossible value in the config.
func (c WhackConfig) Validate() error {
	var errs []error
	if c.Game.Duration <= 0 {
		errs = append(errs, fmt.Errorf("game.duration must be positive, got %d", c.Game.Duration))
	}
	if c.Game.RestartDelay < 0 {
		errs = append(errs, fmt.Errorf("game.restart_delay must not be negative"))
	}
	if c.Spawn.MinInterval <= 0 || c.Spawn.MaxInterval < c.Spawn.MinInterval {
		errs = append(errs, fmt.Errorf("spawn interval must satisfy 0 < min <= max, got %v..%v",
			c.Spawn.MinInterval, c.Spawn.MaxInterval))
	}
	if c.Spawn.Visible <= 0 {
		errs = append(errs, fmt.Errorf("spawn.visible must be positive, got %v", c.Spawn.Visible))
	}
	if c.Entities.BenignWeight < 0 || c.Entities.HostileWeight < 0 {
		errs = append(errs, errors.New("entity weights must not be negative"))
	}
	if c.Entities.BenignWeight+c.Entities.HostileWeight <= 0 {
		errs = append(errs, errors.New("at least one entity weight must be positive"))
	}
	if c.Countdown.From < 0 || c.Countdown.Step < 0 || c.Countdown.LeadIn < 0 {
		errs = append(errs, errors.New("countdown values must not be negative"))
	}
	if c.Surface.ScanMin < 0 || c.Surface.ScanMax < c.Surface.ScanMin {
		errs = append(errs, fmt.Errorf("surface scan must satisfy 0 <= min <= max, got %v..%v",
			c.Surface.ScanMin, c.Surface.ScanMax))
	}
	for i, s := range c.Difficulty.Steps {
		if i > 0 && s.At < c.Difficulty.Steps[i-1].At {
			errs = append(errs, fmt.Errorf("difficulty.steps[%d] at %vs comes before the previous step", i, s.At))
		}
		if s.MinInterval > 0 && s.MaxInterval > 0 && s.MaxInterval < s.MinInterval {
			errs = append(errs, fmt.Errorf("difficulty.steps[%d] has min_interval above max_interval", i))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("config: %w", errors.Join(errs...))
	}
	return nil
}

// Settings converts the config into session settings for a layout with the given
// number of slots.
func (c WhackConfig) Settings(slots int) session.Settings {
	s := session.Settings{
		Duration:        c.Game.Duration,
		Slots:           slots,
		SpawnMin:        c.Spawn.MinInterval,
		SpawnMax:        c.Spawn.MaxInterval,
		Visible:         c.Spawn.Visible,
		BenignWeight:    c.Entities.BenignWeight,
		HostileWeight:   c.Entities.HostileWeight,
		BenignDelta:     c.Entities.BenignScore,
		HostileDelta:    c.Entities.HostileScore,
		CountdownFrom:   c.Countdown.From,
		CountdownStep:   c.Countdown.Step,
		CountdownLeadIn: c.Countdown.LeadIn,
		RestartDelay:    c.Game.RestartDelay,
	}
	if c.Difficulty.Enabled {
		for _, st := range c.Difficulty.Steps {
			s.Schedule = append(s.Schedule, session.DifficultyStep{
				At:       st.At,
				SpawnMin: st.MinInterval,
				SpawnMax: st.MaxInterval,
				Visible:  st.Visible,
			})
		}
	}
	return s
}
