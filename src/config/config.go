package config

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// UIConfig stores display preferences restored between sessions
type UIConfig struct {
	LastTempo  float64 `json:"lastTempo,omitempty"`
	LastPreset string  `json:"lastPreset,omitempty"`
}

// Config is the main configuration structure
type Config struct {
	Voice     string   `json:"voice,omitempty"`
	PresetDir string   `json:"presetDir,omitempty"`
	MidiIn    bool     `json:"midiIn"`
	UI        UIConfig `json:"ui,omitempty"`
}

// DefaultConfig returns a config with sensible defaults
func DefaultConfig() *Config {
	dir, err := ConfigDir()
	presetDir := "presets"
	if err == nil {
		presetDir = filepath.Join(dir, "presets")
	}
	return &Config{
		Voice:     "formant",
		PresetDir: presetDir,
		MidiIn:    true,
		UI: UIConfig{
			LastTempo: 120,
		},
	}
}

// ConfigDir returns the config directory path
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "euclidean-seq"), nil
}

// ConfigPath returns the full path to config.json
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// Load reads the config from disk, or returns defaults if not found
func Load() (*Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return DefaultConfig(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, err
	}

	cfg := DefaultConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Save writes the config to disk
func (c *Config) Save() error {
	dir, err := ConfigDir()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	path, err := ConfigPath()
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}
