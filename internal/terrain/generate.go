package terrain

import (
	"math"
	"math/rand"
)

// Flat returns a level strip of n samples at height y, centered on x = 0.
func Flat(n int, spacing, y, floor float64) (*Strip, error) {
	heights := make([]float64, n)
	for i := range heights {
		heights[i] = y
	}
	return NewStrip(heights, spacing, n/2, floor)
}

// FromHeights builds a strip from explicit samples with sample origin at x = 0.
// A zero floor sits 100 units below the lowest point.
func FromHeights(heights []float64, spacing float64, origin int, floor float64) (*Strip, error) {
	if floor == 0 && len(heights) > 0 {
		floor = maxOf(heights) + 100
	}
	return NewStrip(heights, spacing, origin, floor)
}

// RollingConfig parameterises Rolling.
type RollingConfig struct {
	Seed      int64
	Samples   int
	Spacing   float64
	BaseY     float64
	Roughness float64
	PadWidth  int
	Floor     float64
}

// Rolling generates hills by a smoothed random walk around BaseY and flattens
// PadWidth samples around x = 0 into a landing pad.
func Rolling(cfg RollingConfig) (*Strip, error) {
	rng := rand.New(rand.NewSource(cfg.Seed))
	n := cfg.Samples

	raw := make([]float64, n)
	drift := 0.0
	for i := range raw {
		drift += (rng.Float64()*2 - 1) * cfg.Roughness
		drift *= 0.9
		raw[i] = cfg.BaseY + drift
	}

	heights := make([]float64, n)
	for i := range heights {
		sum, count := 0.0, 0
		for j := i - 2; j <= i+2; j++ {
			if j >= 0 && j < n {
				sum += raw[j]
				count++
			}
		}
		heights[i] = sum / float64(count)
	}

	origin := n / 2
	if cfg.PadWidth > 0 {
		first := origin - cfg.PadWidth/2
		last := first + cfg.PadWidth
		padY := heights[clamp(origin, 0, n-1)]
		for i := clamp(first, 0, n); i < clamp(last, 0, n); i++ {
			heights[i] = padY
		}
	}

	floor := cfg.Floor
	if floor == 0 {
		floor = maxOf(heights) + 100
	}
	return NewStrip(heights, cfg.Spacing, origin, floor)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func maxOf(xs []float64) float64 {
	m := math.Inf(-1)
	for _, x := range xs {
		m = math.Max(m, x)
	}
	return m
}
