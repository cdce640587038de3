package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"game-loop/internal/input"
	"game-loop/internal/logger"

	"gopkg.in/yaml.v3"
)

// DefaultPath is the path to the game config file, relative to the process working directory.
const DefaultPath = "config/game.yaml"

// Backend names accepted by Config.Backend.
const (
	BackendRaylib   = "raylib"
	BackendTerminal = "terminal"
	BackendHeadless = "headless"
)

// Window is the initial window geometry.
type Window struct {
	Title  string `yaml:"title"`
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
}

// Log selects level and file for the logger.
type Log struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// Config holds everything the game loop reads at startup. Persisted as YAML.
type Config struct {
	Window        Window `yaml:"window"`
	TargetFPS     int    `yaml:"target_fps"`
	Fullscreen    bool   `yaml:"fullscreen"`
	FullscreenKey string `yaml:"fullscreen_key"`
	ShowFPS       bool   `yaml:"show_fps"`
	ShowMemAlloc  bool   `yaml:"show_mem_alloc"`
	Backend       string `yaml:"backend"`
	Log           Log    `yaml:"log"`
}

// Default returns an 800x600 windowed raylib setup at 60 fps with 9 as the fullscreen key.
func Default() Config {
	return Config{
		Window: Window{
			Title:  "SDL2 tutorial",
			Width:  800,
			Height: 600,
		},
		TargetFPS:     60,
		FullscreenKey: "9",
		Backend:       BackendRaylib,
		Log: Log{
			Level: "info",
			File:  logger.DefaultFilePath,
		},
	}
}

// Load reads the config at path on top of Default(). A missing file is not an error.
// If the file cannot be parsed, Default() is returned together with the parse error so the
// caller can warn and continue.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Default(), fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes cfg as YAML to path, creating the directory if needed.
func Save(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	data, err := Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Marshal encodes cfg as YAML.
func Marshal(cfg Config) ([]byte, error) {
	return yaml.Marshal(cfg)
}

// ApplyEnv overrides fields from GAME_* environment variables. Unset variables are skipped;
// malformed numbers and booleans are reported.
func ApplyEnv(cfg *Config) error {
	if v, ok := os.LookupEnv("GAME_TITLE"); ok {
		cfg.Window.Title = v
	}
	if v, ok := os.LookupEnv("GAME_BACKEND"); ok {
		cfg.Backend = v
	}
	if v, ok := os.LookupEnv("GAME_LOG_LEVEL"); ok {
		cfg.Log.Level = v
	}
	ints := []struct {
		key string
		dst *int
	}{
		{"GAME_WIDTH", &cfg.Window.Width},
		{"GAME_HEIGHT", &cfg.Window.Height},
		{"GAME_TARGET_FPS", &cfg.TargetFPS},
	}
	for _, e := range ints {
		v, ok := os.LookupEnv(e.key)
		if !ok {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", e.key, err)
		}
		*e.dst = n
	}
	if v, ok := os.LookupEnv("GAME_FULLSCREEN"); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("GAME_FULLSCREEN: %w", err)
		}
		cfg.Fullscreen = b
	}
	return nil
}

// Validate checks geometry, frame rate, key name and backend.
func (c Config) Validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("invalid window size %dx%d", c.Window.Width, c.Window.Height)
	}
	if c.TargetFPS < 1 || c.TargetFPS > 1000 {
		return fmt.Errorf("target_fps %d out of range [1, 1000]", c.TargetFPS)
	}
	if _, err := input.ParseKey(c.FullscreenKey); err != nil {
		return fmt.Errorf("fullscreen_key: %w", err)
	}
	switch c.Backend {
	case BackendRaylib, BackendTerminal, BackendHeadless:
	default:
		return fmt.Errorf("unknown backend %q", c.Backend)
	}
	return nil
}

// ToggleKey returns the parsed fullscreen key. Call Validate first.
func (c Config) ToggleKey() input.Key {
	k, err := input.ParseKey(c.FullscreenKey)
	if err != nil {
		return input.Key9
	}
	return k
}
