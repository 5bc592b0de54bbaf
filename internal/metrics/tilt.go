package metrics

import (
	"math"

	"github.com/san-kum/lander/internal/dynamo"
	"github.com/san-kum/lander/internal/sim"
)

// MaxTilt is the largest deviation from level, in degrees.
type MaxTilt struct {
	name string
	max  float64
}

func NewMaxTilt() *MaxTilt {
	return &MaxTilt{name: "max_tilt"}
}

func (m *MaxTilt) Name() string { return m.name }

func (m *MaxTilt) Observe(f sim.Frame) {
	m.max = math.Max(m.max, dynamo.AngleGap(f.Angle))
}

func (m *MaxTilt) Value() float64 { return m.max }

func (m *MaxTilt) Reset() { m.max = 0 }

// Standard returns the metric set every flight records.
func Standard() []sim.Metric {
	return []sim.Metric{
		NewPeakSpeed(),
		NewTouchdownSpeed(),
		NewEngineTime(),
		NewAirTime(),
		NewMaxTilt(),
	}
}
