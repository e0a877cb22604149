package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"fitcalc/internal/analysis"
)

// Config represents the application configuration
type Config struct {
	Server   ServerConfig   `json:"server"`
	Log      LogConfig      `json:"log"`
	Defaults DefaultsConfig `json:"defaults"`
}

// ServerConfig holds HTTP API settings
type ServerConfig struct {
	Port int `json:"port"`
}

// LogConfig holds logging settings
type LogConfig struct {
	Level string `json:"level"`
}

// DefaultsConfig holds the values the forms start with
type DefaultsConfig struct {
	Sex      string  `json:"sex"`
	HeightCM float64 `json:"height_cm"`
	NeckCM   float64 `json:"neck_cm"`
	WaistCM  float64 `json:"waist_cm"`
	HipCM    float64 `json:"hip_cm"`
	WeightKG float64 `json:"weight_kg"`
	AgeYears float64 `json:"age_years"`
	Activity string  `json:"activity"`
}

// ErrNoConfig is returned when the config file doesn't exist
var ErrNoConfig = errors.New("config file not found")

// HomeEnv overrides the config directory
const HomeEnv = "FITCALC_HOME"

// DefaultConfig returns the default configuration
func DefaultConfig() Config {
	return Config{
		Server: ServerConfig{
			Port: 8471,
		},
		Log: LogConfig{
			Level: "info",
		},
		Defaults: DefaultsConfig{
			Sex:      "man",
			HeightCM: 170,
			NeckCM:   40,
			WaistCM:  85,
			HipCM:    95,
			WeightKG: 77,
			AgeYears: 30,
			Activity: "sedentary",
		},
	}
}

// Load reads the configuration from ~/.fitcalc/config.json
func Load() (*Config, error) {
	path, err := getConfigPath()
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, ErrNoConfig
	}
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	cfg.applyDefaults()
	return &cfg, nil
}

// LoadOrDefault is Load, falling back to DefaultConfig when no file exists
func LoadOrDefault() (*Config, error) {
	cfg, err := Load()
	if errors.Is(err, ErrNoConfig) {
		d := DefaultConfig()
		return &d, nil
	}
	return cfg, err
}

// applyDefaults fills zero values from DefaultConfig
func (c *Config) applyDefaults() {
	defaults := DefaultConfig()
	if c.Server.Port == 0 {
		c.Server.Port = defaults.Server.Port
	}
	if c.Log.Level == "" {
		c.Log.Level = defaults.Log.Level
	}

	d := &c.Defaults
	if d.Sex == "" {
		d.Sex = defaults.Defaults.Sex
	}
	if d.HeightCM == 0 {
		d.HeightCM = defaults.Defaults.HeightCM
	}
	if d.NeckCM == 0 {
		d.NeckCM = defaults.Defaults.NeckCM
	}
	if d.WaistCM == 0 {
		d.WaistCM = defaults.Defaults.WaistCM
	}
	if d.HipCM == 0 {
		d.HipCM = defaults.Defaults.HipCM
	}
	if d.WeightKG == 0 {
		d.WeightKG = defaults.Defaults.WeightKG
	}
	if d.AgeYears == 0 {
		d.AgeYears = defaults.Defaults.AgeYears
	}
	if d.Activity == "" {
		d.Activity = defaults.Defaults.Activity
	}
}

// Save writes the configuration to ~/.fitcalc/config.json
func Save(cfg *Config) error {
	path, err := getConfigPath()
	if err != nil {
		return err
	}

	// Ensure directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}

// CreateExample creates an example config file if none exists
func CreateExample() error {
	path, err := getConfigPath()
	if err != nil {
		return err
	}

	if _, err := os.Stat(path); err == nil {
		return nil // Config exists, don't overwrite
	}

	example := DefaultConfig()
	return Save(&example)
}

// Validate checks that the config values can be used
func (c *Config) Validate() error {
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be between 0 and 65535, got %d", c.Server.Port)
	}

	switch strings.ToLower(c.Log.Level) {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level must be one of debug, info, warn, error, got %q", c.Log.Level)
	}

	if c.Defaults.Sex != "" {
		if _, err := analysis.ParseSex(c.Defaults.Sex); err != nil {
			return fmt.Errorf("defaults.sex must be \"man\" or \"vrouw\", got %q", c.Defaults.Sex)
		}
	}
	if c.Defaults.Activity != "" {
		if _, err := analysis.ParseActivityLevel(c.Defaults.Activity); err != nil {
			return fmt.Errorf("defaults.activity %q is not a known activity level", c.Defaults.Activity)
		}
	}

	return nil
}

// getConfigPath returns the path to the config file
func getConfigPath() (string, error) {
	dir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// GetConfigDir returns the path to the config directory
func GetConfigDir() (string, error) {
	if dir := os.Getenv(HomeEnv); dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}
	return filepath.Join(home, ".fitcalc"), nil
}
