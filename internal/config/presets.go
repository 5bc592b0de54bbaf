package config

import (
	"sort"

	"github.com/san-kum/lander/internal/landing"
)

// scenario fills the common fields of a preset around DefaultConfig values.
func scenario(edit func(*Config)) *Config {
	cfg := DefaultConfig()
	edit(cfg)
	return cfg
}

func ramp(n int, base, step float64) []float64 {
	h := make([]float64, n)
	for i := range h {
		h[i] = base + step*float64(i-n/2)
	}
	return h
}

var Presets = map[string]*Config{
	"gentle": scenario(func(c *Config) {
		c.Start.Y = 500
		c.Duration = 10
	}),
	"freefall": scenario(func(c *Config) {
		c.Duration = 15
	}),
	"spin": scenario(func(c *Config) {
		c.Start = StartConfig{Y: 490, Omega: 30}
		c.Duration = 10
	}),
	"tilted": scenario(func(c *Config) {
		c.Start = StartConfig{Y: 490, Angle: 15}
		c.Duration = 10
	}),
	"slope": scenario(func(c *Config) {
		c.Start.Y = 480
		c.Duration = 10
		c.Terrain = TerrainConfig{Kind: "heights", Spacing: DefaultSpacing, Origin: 20, Heights: ramp(41, DefaultBaseY, -6)}
	}),
	"autopilot": scenario(func(c *Config) {
		c.Controller = "autopilot"
	}),
	"hills": scenario(func(c *Config) {
		c.Controller = "autopilot"
		c.Seed = 7
		c.Start.Jitter = 30
		c.Duration = 40
		c.Terrain = TerrainConfig{
			Kind:      "rolling",
			Spacing:   DefaultSpacing,
			Samples:   DefaultSamples,
			BaseY:     DefaultBaseY,
			Roughness: 4,
			PadWidth:  12,
		}
	}),
	"scripted": scenario(func(c *Config) {
		c.Controller = "script"
		c.Script = []ScriptStep{
			{From: 2, To: 4, Main: true, Throttle: 1},
			{From: 5, To: 9, Main: true, Throttle: 0.5},
		}
	}),
	"strict": scenario(func(c *Config) {
		c.Start.Y = 500
		c.Duration = 10
		c.Thresholds = landing.Thresholds{
			MaxVelocity:        400,
			MaxAngularVelocity: 5,
			MaxSlope:           5,
			MaxAngleGap:        3,
		}
	}),
}

// GetPreset returns a copy of the named scenario, or nil.
func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	out := *cfg
	out.Script = append([]ScriptStep(nil), cfg.Script...)
	out.Terrain.Heights = append([]float64(nil), cfg.Terrain.Heights...)
	return &out
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
