package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

type Config struct {
	Icons    string `koanf:"icons"`     // "nerd", "unicode", or "none"
	AudioDir string `koanf:"audio_dir"` // narration output; empty means the XDG data dir

	// Speech engine (enables synthesis when configured)
	Engine EngineConfig `koanf:"engine"`

	// Manuscript import settings
	Import ImportConfig `koanf:"import"`
}

// EngineConfig holds speech engine configuration.
type EngineConfig struct {
	URL            string  `koanf:"url"`             // e.g., "http://localhost:8880"
	Voice          string  `koanf:"voice"`           // narration voice name (default: "default")
	Speed          float64 `koanf:"speed"`           // synthesis speed multiplier (default: 1.0)
	TimeoutSeconds int     `koanf:"timeout_seconds"` // per-request timeout (default: 120)
}

// ImportConfig holds manuscript import configuration.
type ImportConfig struct {
	MaxSegmentChars int `koanf:"max_segment_chars"` // sentence packing bound (default: 250)
}

func Load() (*Config, error) {
	k := koanf.New(".")

	// Try config files in order of priority (last wins)
	configPaths := getConfigPaths()

	for _, path := range configPaths {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
				return nil, err
			}
		}
	}

	cfg := &Config{}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, err
	}

	// Expand ~ in audio_dir
	if cfg.AudioDir != "" {
		cfg.AudioDir = expandPath(cfg.AudioDir)
	}

	// Normalize engine URL (remove trailing slash)
	cfg.Engine.URL = strings.TrimSuffix(cfg.Engine.URL, "/")

	return cfg, nil
}

func getConfigPaths() []string {
	paths := []string{}

	// 1. ~/.config/fable/config.toml
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", "fable", "config.toml"))
	}

	// 2. ./config.toml (pwd, highest priority)
	paths = append(paths, "config.toml")

	return paths
}

func expandPath(path string) string {
	if path != "" && path[0] == '~' {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}

// HasEngineConfig returns true if the speech engine is configured. Without
// it the app still imports and plays; it just cannot synthesize.
func (c *Config) HasEngineConfig() bool {
	return c.Engine.URL != ""
}

// GetEngineConfig returns the engine configuration with defaults applied.
func (c *Config) GetEngineConfig() EngineConfig {
	cfg := c.Engine

	// Apply defaults
	if cfg.Voice == "" {
		cfg.Voice = "default"
	}
	if cfg.Speed <= 0 {
		cfg.Speed = 1.0
	}
	if cfg.TimeoutSeconds <= 0 {
		cfg.TimeoutSeconds = 120
	}

	return cfg
}

// GetImportConfig returns the import configuration with defaults applied.
func (c *Config) GetImportConfig() ImportConfig {
	cfg := c.Import

	if cfg.MaxSegmentChars <= 0 {
		cfg.MaxSegmentChars = 250
	}

	return cfg
}
