package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// FileName is the config file looked up in the search directories.
const FileName = "whack.yaml"

// Load loads the game configuration.
// Search order: customPath -> ~/.whack/configs/whack.yaml -> ./configs/whack.yaml -> embedded default
//
// A custom path ending in .toml is decoded as TOML. Only a custom path reports read
// or parse errors; the other locations are skipped when unusable. Missing fields keep
// their default values.
func Load(customPath string) (WhackConfig, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return WhackConfig{}, fmt.Errorf("config: read %s: %w", customPath, err)
		}
		cfg, err := decode(customPath, data)
		if err != nil {
			return WhackConfig{}, fmt.Errorf("config: parse %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := UserConfigPath(); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if cfg, err := decode(userCfgPath, data); err == nil {
				return cfg, nil
			}
		}
	}

	// Try local configs directory
	local := filepath.Join("configs", FileName)
	if data, err := os.ReadFile(local); err == nil {
		if cfg, err := decode(local, data); err == nil {
			return cfg, nil
		}
	}

	// Use embedded default YAML
	var cfg WhackConfig
	if err := yaml.Unmarshal(defaultWhackYAML, &cfg); err != nil {
		return DefaultWhackConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// decode parses data over the hardcoded defaults, choosing the format by extension.
func decode(path string, data []byte) (WhackConfig, error) {
	cfg := DefaultWhackConfig()
	var err error
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		var md toml.MetaData
		md, err = toml.Decode(string(data), &cfg)
		// TOML arrays decode into the existing elements, so a file with its own
		// steps is decoded again without the default ones.
		if err == nil && md.IsDefined("difficulty", "steps") {
			cfg.Difficulty.Steps = nil
			_, err = toml.Decode(string(data), &cfg)
		}
	default:
		err = yaml.Unmarshal(data, &cfg)
	}
	if err != nil {
		return WhackConfig{}, err
	}
	return cfg, nil
}

// Marshal renders the config as YAML.
func Marshal(cfg WhackConfig) ([]byte, error) {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("config: marshal: %w", err)
	}
	return data, nil
}

// UserConfigPath returns the path to the user config file, or empty if home is unavailable.
func UserConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".whack", "configs", FileName)
}
