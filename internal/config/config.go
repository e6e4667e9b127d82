package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultWidth             = 800.0
	DefaultHeight            = 600.0
	DefaultPhotonStep        = 5.0
	DefaultPhotonY           = 300.0
	DefaultPhotonRadius      = 5.0
	DefaultStretchStep       = 10.0
	DefaultStretchIntervalMs = 200
	DefaultRotationStep      = 2.0
	DefaultRotationLimit     = 120.0
	DefaultBendAmplitude     = 10.0
	DefaultBendIntervalMs    = 200
	DefaultBreatheStep       = 1.0
	DefaultBreatheLimit      = 10.0
	DefaultFPS               = 60
	DefaultTheme             = "minimal"
	DefaultDataDir           = ".molvib"
)

var ErrInvalid = errors.New("config: invalid")

type Config struct {
	Canvas  CanvasConfig `yaml:"canvas"`
	Photon  PhotonConfig `yaml:"photon"`
	Motion  MotionConfig `yaml:"motion"`
	FPS     int          `yaml:"fps"`
	Theme   string       `yaml:"theme"`
	DataDir string       `yaml:"data_dir"`
}

type CanvasConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

type PhotonConfig struct {
	Step   float64 `yaml:"step"`
	Y      float64 `yaml:"y"`
	Radius float64 `yaml:"radius"`
}

type MotionConfig struct {
	StretchStep       float64 `yaml:"stretch_step"`
	StretchIntervalMs int     `yaml:"stretch_interval_ms"`
	RotationStep      float64 `yaml:"rotation_step"`
	RotationLimit     float64 `yaml:"rotation_limit"`
	BendAmplitude     float64 `yaml:"bend_amplitude"`
	BendIntervalMs    int     `yaml:"bend_interval_ms"`
	BreatheStep       float64 `yaml:"breathe_step"`
	BreatheLimit      float64 `yaml:"breathe_limit"`
}

func DefaultConfig() *Config {
	return &Config{
		Canvas: CanvasConfig{
			Width:  DefaultWidth,
			Height: DefaultHeight,
		},
		Photon: PhotonConfig{
			Step:   DefaultPhotonStep,
			Y:      DefaultPhotonY,
			Radius: DefaultPhotonRadius,
		},
		Motion: MotionConfig{
			StretchStep:       DefaultStretchStep,
			StretchIntervalMs: DefaultStretchIntervalMs,
			RotationStep:      DefaultRotationStep,
			RotationLimit:     DefaultRotationLimit,
			BendAmplitude:     DefaultBendAmplitude,
			BendIntervalMs:    DefaultBendIntervalMs,
			BreatheStep:       DefaultBreatheStep,
			BreatheLimit:      DefaultBreatheLimit,
		},
		FPS:     DefaultFPS,
		Theme:   DefaultTheme,
		DataDir: DefaultDataDir,
	}
}

// Load reads a YAML file on top of the defaults, so a file only needs the
// keys it changes.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Validate() error {
	switch {
	case c.Canvas.Width <= 0 || c.Canvas.Height <= 0:
		return fmt.Errorf("%w: canvas must be positive, got %vx%v", ErrInvalid, c.Canvas.Width, c.Canvas.Height)
	case c.Photon.Step <= 0:
		return fmt.Errorf("%w: photon step must be positive, got %v", ErrInvalid, c.Photon.Step)
	case c.Photon.Radius <= 0:
		return fmt.Errorf("%w: photon radius must be positive, got %v", ErrInvalid, c.Photon.Radius)
	case c.FPS <= 0:
		return fmt.Errorf("%w: fps must be positive, got %d", ErrInvalid, c.FPS)
	case c.Motion.StretchStep <= 0 || c.Motion.RotationStep <= 0 || c.Motion.BreatheStep <= 0:
		return fmt.Errorf("%w: motion steps must be positive", ErrInvalid)
	case c.Motion.BendAmplitude <= 0:
		return fmt.Errorf("%w: bend amplitude must be positive, got %v", ErrInvalid, c.Motion.BendAmplitude)
	case c.Motion.BreatheLimit <= 0:
		return fmt.Errorf("%w: breathe limit must be positive, got %v", ErrInvalid, c.Motion.BreatheLimit)
	case c.Motion.RotationLimit <= 0:
		return fmt.Errorf("%w: rotation limit must be positive, got %v", ErrInvalid, c.Motion.RotationLimit)
	case c.Motion.StretchIntervalMs < 0 || c.Motion.BendIntervalMs < 0:
		return fmt.Errorf("%w: intervals cannot be negative", ErrInvalid)
	}
	return nil
}
