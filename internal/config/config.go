// Package config loads pocketpet's YAML configuration.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"pocketpet/internal/pet"
)

// TestConfigDir is used for testing to override the config directory
var TestConfigDir string

// Config holds all application configuration
type Config struct {
	Name    string             `yaml:"name"`
	Storage Storage            `yaml:"storage"`
	Timers  Timers             `yaml:"timers"`
	Actions Actions            `yaml:"actions"`
	Items   []pet.ItemTemplate `yaml:"items"`
	LogFile string             `yaml:"log_file"`
}

// Storage selects where stats are persisted
type Storage struct {
	Backend string `yaml:"backend"` // file, sqlite or memory
	Path    string `yaml:"path"`
}

// Timers holds the periodic trigger intervals
type Timers struct {
	DecayInterval     time.Duration `yaml:"decay_interval"`
	ReplenishInterval time.Duration `yaml:"replenish_interval"`
}

// Actions holds how much each gesture raises happiness
type Actions struct {
	Tap       int `yaml:"tap"`
	LongPress int `yaml:"long_press"`
}

// Dir returns the directory holding config, state and logs
func Dir() (string, error) {
	if TestConfigDir != "" {
		return TestConfigDir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to find home directory: %w", err)
	}
	return filepath.Join(home, ".config", "pocketpet"), nil
}

// DefaultPath returns the default config file location
func DefaultPath() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// Default returns the built-in configuration
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Load reads configuration from a YAML file. A missing file yields the
// defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", path, err)
	}
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Name == "" {
		c.Name = pet.DefaultPetName
	}
	if c.Storage.Backend == "" {
		c.Storage.Backend = "file"
	}
	if c.Timers.DecayInterval == 0 {
		c.Timers.DecayInterval = pet.DecayInterval
	}
	if c.Timers.ReplenishInterval == 0 {
		c.Timers.ReplenishInterval = pet.ReplenishInterval
	}
	if c.Actions.Tap == 0 {
		c.Actions.Tap = pet.TapHappinessIncrease
	}
	if c.Actions.LongPress == 0 {
		c.Actions.LongPress = pet.LongPressHappinessIncrease
	}
	if len(c.Items) == 0 {
		c.Items = pet.DefaultItemTemplates()
	}
}

// Validate reports the first problem with the configuration
func (c *Config) Validate() error {
	switch c.Storage.Backend {
	case "file", "sqlite", "memory":
	default:
		return fmt.Errorf("unknown storage backend %q", c.Storage.Backend)
	}
	if c.Timers.DecayInterval < 0 || c.Timers.ReplenishInterval < 0 {
		return errors.New("timer intervals must be positive")
	}
	if c.Actions.Tap < 0 || c.Actions.LongPress < 0 {
		return errors.New("action amounts must not be negative")
	}
	if c.Actions.Tap > pet.MaxStat || c.Actions.LongPress > pet.MaxStat {
		return fmt.Errorf("action amounts must be at most %d", pet.MaxStat)
	}

	seen := make(map[string]bool)
	for i, item := range c.Items {
		if item.Name == "" {
			return fmt.Errorf("item %d has no name", i)
		}
		if seen[item.Name] {
			return fmt.Errorf("duplicate item %q", item.Name)
		}
		seen[item.Name] = true
		if item.Effect < -pet.MaxStat || item.Effect > pet.MaxStat {
			return fmt.Errorf("item %q: effect %d outside [%d, %d]", item.Name, item.Effect, -pet.MaxStat, pet.MaxStat)
		}
		if _, err := pet.ParseStat(string(item.Target)); err != nil {
			return fmt.Errorf("item %q: %w", item.Name, err)
		}
	}
	return nil
}

// EngineConfig converts the configuration into engine settings
func (c *Config) EngineConfig() *pet.EngineConfig {
	return &pet.EngineConfig{
		Name:            c.Name,
		Templates:       c.Items,
		TapAmount:       c.Actions.Tap,
		LongPressAmount: c.Actions.LongPress,
	}
}

// LogPath returns where logs are written
func (c *Config) LogPath(dir string) string {
	if c.LogFile != "" {
		return c.LogFile
	}
	return filepath.Join(dir, "pocketpet.log")
}
