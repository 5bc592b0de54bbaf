package control

import (
	"fmt"
	"math"

	"github.com/san-kum/lander/internal/dynamo"
)

// PID is a textbook loop on one scalar. Gains and limits are addressed by the
// same names the autopilot config uses.
type PID struct {
	Kp     float64
	Ki     float64
	Kd     float64
	Target float64
	// IntegralLimit clamps the accumulated error; zero leaves it unbounded.
	IntegralLimit float64
	// OutputLimit clamps the returned value; zero leaves it unbounded.
	OutputLimit float64

	integral float64
	prevErr  float64
	prevT    float64
	primed   bool
}

func NewPID(kp, ki, kd, target float64) *PID {
	return &PID{Kp: kp, Ki: ki, Kd: kd, Target: target}
}

// Update returns the loop output for a measurement taken at time t. The first
// call after a reset is proportional only, and repeated timestamps skip the
// integral and derivative terms.
func (p *PID) Update(measured, t float64) float64 {
	e := p.Target - measured
	if !p.primed {
		p.primed = true
		p.prevErr, p.prevT = e, t
		return p.clamp(p.Kp * e)
	}

	dt := t - p.prevT
	if dt <= 0 {
		return p.clamp(p.Kp*e + p.Ki*p.integral)
	}

	p.integral = limit(p.integral+e*dt, p.IntegralLimit)
	rate := (e - p.prevErr) / dt
	p.prevErr, p.prevT = e, t
	return p.clamp(p.Kp*e + p.Ki*p.integral + p.Kd*rate)
}

func (p *PID) clamp(u float64) float64 { return limit(u, p.OutputLimit) }

func limit(v, bound float64) float64 {
	if bound <= 0 {
		return v
	}
	return math.Max(-bound, math.Min(bound, v))
}

func (p *PID) Reset() {
	p.integral, p.prevErr, p.prevT = 0, 0, 0
	p.primed = false
}

// Params reports the tunable values by name.
func (p *PID) Params() map[string]float64 {
	return map[string]float64{
		"kp":             p.Kp,
		"ki":             p.Ki,
		"kd":             p.Kd,
		"target":         p.Target,
		"integral_limit": p.IntegralLimit,
		"output_limit":   p.OutputLimit,
	}
}

func (p *PID) SetParam(name string, value float64) error {
	switch name {
	case "kp":
		p.Kp = value
	case "ki":
		p.Ki = value
	case "kd":
		p.Kd = value
	case "target":
		p.Target = value
	case "integral_limit":
		p.IntegralLimit = value
	case "output_limit":
		p.OutputLimit = value
	default:
		return fmt.Errorf("pid parameter %q: %w", name, dynamo.ErrUnknownName)
	}
	return nil
}
