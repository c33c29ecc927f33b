package config

import (
	"errors"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/san-kum/tslab/internal/dynamo"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Generator != "mackey_glass" {
		t.Errorf("expected generator mackey_glass, got %s", cfg.Generator)
	}
	if cfg.MackeyGlass.Tau != 17 || cfg.MackeyGlass.DeltaT != 10 {
		t.Errorf("unexpected mackey-glass defaults: %+v", cfg.MackeyGlass)
	}
	if cfg.Lorenz.State0 != [3]float64{-13, -14, 47} {
		t.Errorf("unexpected lorenz state0: %v", cfg.Lorenz.State0)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.yaml")
	data := []byte("generator: lorenz\nn: 500\nlorenz:\n  rho: 99.5\n")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.Generator != "lorenz" || cfg.N != 500 {
		t.Errorf("unexpected config: %+v", cfg)
	}
	if cfg.Lorenz.Rho != 99.5 {
		t.Errorf("expected rho 99.5, got %f", cfg.Lorenz.Rho)
	}
	if cfg.Lorenz.Sigma != DefaultSigma {
		t.Errorf("unset sigma should keep default, got %f", cfg.Lorenz.Sigma)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.yaml")
	cfg := DefaultConfig()
	cfg.Seed = 42
	cfg.MackeyGlass.Tau = 30

	if err := Save(path, cfg); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if loaded.Seed != 42 || loaded.MackeyGlass.Tau != 30 {
		t.Errorf("round trip lost values: %+v", loaded)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   error
	}{
		{"zero n", func(c *Config) { c.N = 0 }, dynamo.ErrInvalidArgument},
		{"zero tau", func(c *Config) { c.MackeyGlass.Tau = 0 }, dynamo.ErrInvalidArgument},
		{"zero delta_t", func(c *Config) { c.MackeyGlass.DeltaT = 0 }, dynamo.ErrInvalidArgument},
		{"lorenz dt", func(c *Config) { c.Generator = "lorenz"; c.Lorenz.Dt = 0 }, dynamo.ErrInvalidArgument},
		{"unknown generator", func(c *Config) { c.Generator = "henon" }, dynamo.ErrUnknownMethod},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestParams(t *testing.T) {
	cfg := DefaultConfig()
	p := cfg.Params()
	if p["tau"] != 17 || p["delta_t"] != 10 || p["n"] != 1000 {
		t.Errorf("unexpected params: %v", p)
	}

	cfg.Generator = "lorenz"
	p = cfg.Params()
	if p["rho"] != 28 || p["z0"] != 47 {
		t.Errorf("unexpected lorenz params: %v", p)
	}
}

func TestGetPreset(t *testing.T) {
	cfg := GetPreset("mackey_glass", "mg30")
	if cfg == nil {
		t.Fatal("expected preset, got nil")
	}
	if cfg.MackeyGlass.Tau != 30 {
		t.Errorf("expected tau 30, got %d", cfg.MackeyGlass.Tau)
	}
	if cfg.N != DefaultN {
		t.Errorf("preset should keep default n, got %d", cfg.N)
	}

	if GetPreset("mackey_glass", "mg30") == cfg {
		t.Error("presets must return a fresh config")
	}
}

func TestGetPreset_NotFound(t *testing.T) {
	if cfg := GetPreset("mackey_glass", "nonexistent"); cfg != nil {
		t.Error("expected nil for nonexistent preset")
	}
	if cfg := GetPreset("nonexistent", "mg17"); cfg != nil {
		t.Error("expected nil for nonexistent generator")
	}
}

func TestListPresets(t *testing.T) {
	want := []string{"classic", "fixed_point", "periodic"}
	for range 5 {
		if presets := ListPresets("lorenz"); !slices.Equal(presets, want) {
			t.Fatalf("expected sorted lorenz presets %v, got %v", want, presets)
		}
	}
	if presets := ListPresets("nonexistent"); presets != nil {
		t.Error("expected nil for nonexistent generator")
	}
}
