package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Canvas.Width != 800 || cfg.Canvas.Height != 600 {
		t.Errorf("expected 800x600 canvas, got %vx%v", cfg.Canvas.Width, cfg.Canvas.Height)
	}
	if cfg.Photon.Step != 5 {
		t.Errorf("expected photon step 5, got %v", cfg.Photon.Step)
	}
	if cfg.Motion.StretchIntervalMs != 200 {
		t.Errorf("expected 200ms stretch interval, got %d", cfg.Motion.StretchIntervalMs)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "molvib.yaml")
	cfg := DefaultConfig()
	cfg.FPS = 30
	cfg.Motion.RotationStep = 3

	if err := Save(path, cfg); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if loaded.FPS != 30 || loaded.Motion.RotationStep != 3 {
		t.Errorf("round trip lost values: %+v", loaded)
	}
}

func TestLoadPartialKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partial.yaml")
	if err := os.WriteFile(path, []byte("fps: 24\nphoton:\n  step: 10\n"), 0644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.FPS != 24 || cfg.Photon.Step != 10 {
		t.Errorf("overrides not applied: fps=%d step=%v", cfg.FPS, cfg.Photon.Step)
	}
	if cfg.Photon.Y != DefaultPhotonY || cfg.Canvas.Width != DefaultWidth {
		t.Errorf("defaults lost: y=%v width=%v", cfg.Photon.Y, cfg.Canvas.Width)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero width", func(c *Config) { c.Canvas.Width = 0 }},
		{"negative step", func(c *Config) { c.Photon.Step = -1 }},
		{"zero radius", func(c *Config) { c.Photon.Radius = 0 }},
		{"zero fps", func(c *Config) { c.FPS = 0 }},
		{"zero rotation limit", func(c *Config) { c.Motion.RotationLimit = 0 }},
		{"negative interval", func(c *Config) { c.Motion.BendIntervalMs = -5 }},
		{"zero stretch step", func(c *Config) { c.Motion.StretchStep = 0 }},
		{"zero rotation step", func(c *Config) { c.Motion.RotationStep = 0 }},
		{"negative breathe step", func(c *Config) { c.Motion.BreatheStep = -1 }},
		{"zero bend amplitude", func(c *Config) { c.Motion.BendAmplitude = 0 }},
		{"zero breathe limit", func(c *Config) { c.Motion.BreatheLimit = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); !errors.Is(err, ErrInvalid) {
				t.Errorf("expected ErrInvalid, got %v", err)
			}
		})
	}
}

func TestGetScenario(t *testing.T) {
	sc := GetScenario("co-stretch")
	if sc == nil {
		t.Fatal("expected scenario, got nil")
	}
	if sc.Species != "CO" || len(sc.Emissions) != 1 || sc.Emissions[0].Kind != "ir" {
		t.Errorf("unexpected scenario %+v", sc)
	}
	if GetScenario("nonexistent") != nil {
		t.Error("expected nil for nonexistent scenario")
	}
}

func TestListScenarios(t *testing.T) {
	names := ListScenarios()
	if len(names) != len(Scenarios) {
		t.Fatalf("expected %d names, got %d", len(Scenarios), len(names))
	}
	for i := 1; i < len(names); i++ {
		if names[i-1] > names[i] {
			t.Errorf("names not sorted: %v", names)
		}
	}
}

func TestLoadScenario(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "good.yaml")
	body := "name: custom\nspecies: H2O\nframes: 50\nemissions:\n  - frame: 3\n    kind: ir\n"
	if err := os.WriteFile(good, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}
	sc, err := LoadScenario(good)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if sc.Species != "H2O" || sc.Frames != 50 || sc.Emissions[0].Frame != 3 {
		t.Errorf("unexpected scenario %+v", sc)
	}

	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("name: nothing\nframes: 10\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadScenario(bad); !errors.Is(err, ErrInvalid) {
		t.Errorf("expected ErrInvalid, got %v", err)
	}
}
