// Package config is the YAML configuration surface for the panel player.
// Defaults and validation live here so the rest of the code can assume a
// well-formed config.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"gopkg.in/yaml.v3"
)

// Config is the top-level YAML configuration shared by the firmware and
// the simulator.
type Config struct {
	Matrix     MatrixConfig     `yaml:"matrix"`
	Brightness BrightnessConfig `yaml:"brightness"`
	Input      InputConfig      `yaml:"input"`
	Overlay    OverlayConfig    `yaml:"overlay"`
	Playback   PlaybackConfig   `yaml:"playback"`
	Sim        SimConfig        `yaml:"sim"`
	Logging    LoggingConfig    `yaml:"logging"`
}

type MatrixConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// BrightnessConfig bounds panel brightness. Max stops short of the
// electrical 255 ceiling because the battery cannot drive full white.
type BrightnessConfig struct {
	Initial int `yaml:"initial"`
	Step    int `yaml:"step"`
	Max     int `yaml:"max"`
}

type InputConfig struct {
	// CooldownMS is the minimum time between accepted remote commands,
	// debouncing noisy IR repeats.
	CooldownMS int `yaml:"cooldown_ms"`

	// Pin is the IR receiver data pin on the hardware build.
	Pin int `yaml:"pin"`
}

type OverlayConfig struct {
	TimeoutMS int `yaml:"timeout_ms"`
}

type PlaybackConfig struct {
	// GifsDir is the catalog directory. Relative paths resolve against
	// the simulator's -base-path.
	GifsDir string `yaml:"gifs_dir"`

	// Navigation selects how Left/Right take effect: "immediate" applies
	// the new index and clears the screen at once; "staged" records a
	// pending index that the driver applies on its next tick.
	Navigation string `yaml:"navigation"`

	// DefaultFrameDelayMS substitutes for implausible per-frame delays.
	DefaultFrameDelayMS int `yaml:"default_frame_delay_ms"`

	// MinFrameDelayMS is the plausibility floor; reported delays below
	// it are replaced by the default.
	MinFrameDelayMS int `yaml:"min_frame_delay_ms"`
}

type SimConfig struct {
	Scale  int  `yaml:"scale"`
	Gap    bool `yaml:"gap"`
	WSPort int  `yaml:"ws_port"`
}

type LoggingConfig struct {
	Level string `yaml:"level"`
}

// Navigation modes.
const (
	NavigationImmediate = "immediate"
	NavigationStaged    = "staged"
)

// Default returns a fully-populated Config. Values match the hardware
// build: 64x64 panel, brightness 26 step 26 max 180, 400ms cooldown,
// 3000ms overlay timeout.
func Default() Config {
	return Config{
		Matrix: MatrixConfig{Width: 64, Height: 64},
		Brightness: BrightnessConfig{
			Initial: 26,
			Step:    26,
			Max:     180,
		},
		Input: InputConfig{
			CooldownMS: 400,
			Pin:        16,
		},
		Overlay: OverlayConfig{TimeoutMS: 3000},
		Playback: PlaybackConfig{
			GifsDir:             "gifs",
			Navigation:          NavigationImmediate,
			DefaultFrameDelayMS: 100,
			MinFrameDelayMS:     10,
		},
		Sim: SimConfig{
			Scale:  1,
			Gap:    true,
			WSPort: 3001,
		},
		Logging: LoggingConfig{Level: "info"},
	}
}

// DefaultPath returns the per-user config location.
func DefaultPath() string {
	return filepath.Join(xdg.ConfigHome, "bonnaroo-led", "config.yaml")
}

// Load reads path over the defaults. A missing file at the default
// location is fine (defaults apply); an explicitly requested file must
// exist.
func Load(path string, explicit bool) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) && !explicit {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks invariants the control loop depends on.
func (c Config) Validate() error {
	if c.Matrix.Width <= 0 || c.Matrix.Height <= 0 {
		return fmt.Errorf("matrix dimensions must be positive, got %dx%d", c.Matrix.Width, c.Matrix.Height)
	}
	if c.Brightness.Max <= 0 || c.Brightness.Max > 255 {
		return fmt.Errorf("brightness.max must be in (0,255], got %d", c.Brightness.Max)
	}
	if c.Brightness.Initial < 0 || c.Brightness.Initial > c.Brightness.Max {
		return fmt.Errorf("brightness.initial must be in [0,%d], got %d", c.Brightness.Max, c.Brightness.Initial)
	}
	if c.Brightness.Step <= 0 {
		return fmt.Errorf("brightness.step must be positive, got %d", c.Brightness.Step)
	}
	if c.Input.CooldownMS < 0 {
		return fmt.Errorf("input.cooldown_ms must be >= 0, got %d", c.Input.CooldownMS)
	}
	if c.Overlay.TimeoutMS <= 0 {
		return fmt.Errorf("overlay.timeout_ms must be positive, got %d", c.Overlay.TimeoutMS)
	}
	switch c.Playback.Navigation {
	case NavigationImmediate, NavigationStaged:
	default:
		return fmt.Errorf("playback.navigation must be %q or %q, got %q",
			NavigationImmediate, NavigationStaged, c.Playback.Navigation)
	}
	if c.Playback.DefaultFrameDelayMS <= 0 {
		return fmt.Errorf("playback.default_frame_delay_ms must be positive, got %d", c.Playback.DefaultFrameDelayMS)
	}
	if c.Playback.MinFrameDelayMS < 0 {
		return fmt.Errorf("playback.min_frame_delay_ms must be >= 0, got %d", c.Playback.MinFrameDelayMS)
	}
	if c.Sim.Scale < 1 || c.Sim.Scale > 20 {
		return fmt.Errorf("sim.scale must be in [1,20], got %d", c.Sim.Scale)
	}
	if c.Sim.WSPort < 0 || c.Sim.WSPort > 65535 {
		return fmt.Errorf("sim.ws_port must be a valid port, got %d", c.Sim.WSPort)
	}
	return nil
}
