package metrics

import (
	"math"

	"github.com/san-kum/lander/internal/landing"
	"github.com/san-kum/lander/internal/sim"
)

// PeakSpeed is the highest speed seen during the run.
type PeakSpeed struct {
	name string
	peak float64
}

func NewPeakSpeed() *PeakSpeed {
	return &PeakSpeed{name: "peak_speed"}
}

func (p *PeakSpeed) Name() string { return p.name }

func (p *PeakSpeed) Observe(f sim.Frame) {
	p.peak = math.Max(p.peak, f.Velocity.Length())
}

func (p *PeakSpeed) Value() float64 { return p.peak }

func (p *PeakSpeed) Reset() { p.peak = 0 }

// TouchdownSpeed is the speed on the frame a verdict latched, or -1 while the
// craft has not touched down.
type TouchdownSpeed struct {
	name  string
	speed float64
	seen  bool
}

func NewTouchdownSpeed() *TouchdownSpeed {
	return &TouchdownSpeed{name: "touchdown_speed", speed: -1}
}

func (s *TouchdownSpeed) Name() string { return s.name }

func (s *TouchdownSpeed) Observe(f sim.Frame) {
	if s.seen || f.Status == landing.Flying {
		return
	}
	s.speed = f.Velocity.Length()
	s.seen = true
}

func (s *TouchdownSpeed) Value() float64 { return s.speed }

func (s *TouchdownSpeed) Reset() {
	s.speed = -1
	s.seen = false
}
