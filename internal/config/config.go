package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/lander/internal/dynamo"
	"github.com/san-kum/lander/internal/landing"
)

const (
	DefaultDt         = 0.01
	DefaultDuration   = 30.0
	DefaultSettleTime = 1.0
	DefaultGravity    = 40.0
	DefaultStartY     = 100.0
	DefaultSpacing    = 10.0
	DefaultSamples    = 201
	DefaultBaseY      = 600.0
	DefaultKp         = 1.2
	DefaultKi         = 0.05
	DefaultKd         = 0.4
	DefaultSafeSpeed  = 20.0
)

type Config struct {
	Craft      string             `yaml:"craft"`
	CraftFile  string             `yaml:"craft_file,omitempty"`
	Layout     string             `yaml:"layout"`
	Integrator string             `yaml:"integrator"`
	Controller string             `yaml:"controller"`
	Dt         float64            `yaml:"dt"`
	Duration   float64            `yaml:"duration"`
	SettleTime float64            `yaml:"settle_time"`
	Seed       int64              `yaml:"seed"`
	Gravity    float64            `yaml:"gravity"`
	Start      StartConfig        `yaml:"start"`
	Thresholds landing.Thresholds `yaml:"thresholds"`
	Terrain    TerrainConfig      `yaml:"terrain"`
	Autopilot  AutopilotConfig    `yaml:"autopilot"`
	Script     []ScriptStep       `yaml:"script,omitempty"`
}

// StartConfig is the initial pose and motion of the craft's reference corner.
// Angles are degrees, omega degrees per second. Jitter perturbs x and vx by
// up to that amount, drawn from the run seed.
type StartConfig struct {
	X      float64 `yaml:"x"`
	Y      float64 `yaml:"y"`
	Angle  float64 `yaml:"angle"`
	VX     float64 `yaml:"vx"`
	VY     float64 `yaml:"vy"`
	Omega  float64 `yaml:"omega"`
	Jitter float64 `yaml:"jitter,omitempty"`
}

type TerrainConfig struct {
	Kind      string    `yaml:"kind" json:"kind"` // flat, rolling or heights
	Spacing   float64   `yaml:"spacing" json:"spacing"`
	Samples   int       `yaml:"samples" json:"samples"`
	BaseY     float64   `yaml:"base_y" json:"base_y"`
	Roughness float64   `yaml:"roughness" json:"roughness"`
	PadWidth  int       `yaml:"pad_width" json:"pad_width"`
	Origin    int       `yaml:"origin,omitempty" json:"origin,omitempty"`
	Heights   []float64 `yaml:"heights,omitempty" json:"heights,omitempty"`
}

type AutopilotConfig struct {
	Kp        float64 `yaml:"kp"`
	Ki        float64 `yaml:"ki"`
	Kd        float64 `yaml:"kd"`
	SafeSpeed float64 `yaml:"safe_speed"`
}

// Set assigns a gain by its yaml name.
func (a *AutopilotConfig) Set(name string, v float64) error {
	switch name {
	case "kp":
		a.Kp = v
	case "ki":
		a.Ki = v
	case "kd":
		a.Kd = v
	case "safe_speed":
		a.SafeSpeed = v
	default:
		return fmt.Errorf("unknown autopilot parameter %q: %w", name, dynamo.ErrUnknownName)
	}
	return nil
}

// ScriptStep holds a command over the time window [from, to).
type ScriptStep struct {
	From     float64 `yaml:"from"`
	To       float64 `yaml:"to"`
	Main     bool    `yaml:"main"`
	Throttle float64 `yaml:"throttle"`
	Gimbal   float64 `yaml:"gimbal"`
	CCW      bool    `yaml:"ccw"`
	CW       bool    `yaml:"cw"`
}

func DefaultConfig() *Config {
	return &Config{
		Craft:      "lunar_lander_mark1",
		Layout:     "lunar_lander_mark1",
		Integrator: "euler",
		Controller: "none",
		Dt:         DefaultDt,
		Duration:   DefaultDuration,
		SettleTime: DefaultSettleTime,
		Gravity:    DefaultGravity,
		Start:      StartConfig{Y: DefaultStartY},
		Thresholds: landing.DefaultThresholds(),
		Terrain: TerrainConfig{
			Kind:    "flat",
			Spacing: DefaultSpacing,
			Samples: DefaultSamples,
			BaseY:   DefaultBaseY,
		},
		Autopilot: AutopilotConfig{
			Kp:        DefaultKp,
			Ki:        DefaultKi,
			Kd:        DefaultKd,
			SafeSpeed: DefaultSafeSpeed,
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
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

// Validate checks the values the simulator cannot run without.
func (c *Config) Validate() error {
	switch {
	case c.Dt <= 0:
		return fmt.Errorf("dt must be positive, got %g", c.Dt)
	case c.Duration <= 0:
		return fmt.Errorf("duration must be positive, got %g", c.Duration)
	case c.Terrain.Spacing <= 0:
		return fmt.Errorf("terrain spacing must be positive, got %g", c.Terrain.Spacing)
	}
	switch c.Terrain.Kind {
	case "flat", "rolling":
		if c.Terrain.Samples < 2 {
			return fmt.Errorf("terrain needs at least 2 samples, got %d", c.Terrain.Samples)
		}
	case "heights":
		if len(c.Terrain.Heights) < 2 {
			return fmt.Errorf("terrain needs at least 2 heights, got %d", len(c.Terrain.Heights))
		}
	default:
		return fmt.Errorf("unknown terrain kind %q", c.Terrain.Kind)
	}
	return nil
}
