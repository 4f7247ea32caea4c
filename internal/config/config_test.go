package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// TestDefault_IsValid tests that the defaults pass validation.
func TestDefault_IsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Errorf("Default().Validate() = %v, want nil", err)
	}
}

// TestLoad_MissingDefaultFile tests that a missing file at the default
// location falls back to defaults.
func TestLoad_MissingDefaultFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"), false)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Brightness.Step != 26 {
		t.Errorf("brightness.step = %d, want default 26", cfg.Brightness.Step)
	}
}

// TestLoad_MissingExplicitFile tests that an explicitly requested file
// must exist.
func TestLoad_MissingExplicitFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml"), true); err == nil {
		t.Error("expected error for missing explicit config file")
	}
}

// TestLoad_OverridesDefaults tests partial YAML over the defaults.
func TestLoad_OverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	body := `
brightness:
  initial: 52
  step: 26
  max: 180
playback:
  navigation: staged
`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path, true)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Brightness.Initial != 52 {
		t.Errorf("brightness.initial = %d, want 52", cfg.Brightness.Initial)
	}
	if cfg.Playback.Navigation != NavigationStaged {
		t.Errorf("playback.navigation = %q, want staged", cfg.Playback.Navigation)
	}
	// Untouched sections keep defaults.
	if cfg.Input.CooldownMS != 400 {
		t.Errorf("input.cooldown_ms = %d, want default 400", cfg.Input.CooldownMS)
	}
}

// TestValidate_Rejections tests representative invalid configs.
func TestValidate_Rejections(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"zero width", func(c *Config) { c.Matrix.Width = 0 }, "matrix"},
		{"initial over max", func(c *Config) { c.Brightness.Initial = 200 }, "brightness.initial"},
		{"zero step", func(c *Config) { c.Brightness.Step = 0 }, "brightness.step"},
		{"negative cooldown", func(c *Config) { c.Input.CooldownMS = -1 }, "cooldown"},
		{"bad navigation", func(c *Config) { c.Playback.Navigation = "later" }, "navigation"},
		{"scale too large", func(c *Config) { c.Sim.Scale = 21 }, "scale"},
	}

	for _, tc := range cases {
		cfg := Default()
		tc.mutate(&cfg)
		err := cfg.Validate()
		if err == nil {
			t.Errorf("%s: Validate() = nil, want error", tc.name)
			continue
		}
		if !strings.Contains(err.Error(), tc.want) {
			t.Errorf("%s: error %q does not mention %q", tc.name, err, tc.want)
		}
	}
}
