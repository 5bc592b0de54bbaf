package control

import (
	"fmt"
	"math"

	"github.com/san-kum/lander/internal/craft"
	"github.com/san-kum/lander/internal/dynamo"
	"github.com/san-kum/lander/internal/sim"
)

// Autopilot flies a descent profile. A PID loop tracks a target sink rate
// that shrinks with altitude toward SafeSpeed/2 at the ground; attitude is
// held level by firing the rotation thrusters in bang-bang fashion on a
// switching line of angle plus RateGain times angular velocity.
//
// Main engine demand is quantised to the three throttle settings a pilot has
// on the keyboard: full, half and quarter.
type Autopilot struct {
	SafeSpeed float64 // touchdown sink rate budget
	Slope     float64 // target sink rate gained per unit of altitude
	Deadband  float64 // degrees
	RateGain  float64 // seconds
	DriftGain float64 // gimbal per unit of horizontal speed

	descent *PID
}

func NewAutopilot(kp, ki, kd, safeSpeed float64) *Autopilot {
	pid := NewPID(kp, ki, kd, 0)
	pid.IntegralLimit = 20
	return &Autopilot{
		SafeSpeed: safeSpeed,
		Slope:     0.3,
		Deadband:  1,
		RateGain:  0.5,
		DriftGain: 0.05,
		descent:   pid,
	}
}

// TargetSinkRate is the descent speed the autopilot wants at altitude alt.
func (a *Autopilot) TargetSinkRate(alt float64) float64 {
	alt = math.Max(alt, 0)
	return math.Min(a.SafeSpeed/2+a.Slope*alt, 4*a.SafeSpeed)
}

func (a *Autopilot) Compute(obs sim.Observation, t float64) craft.Command {
	var cmd craft.Command

	a.descent.Target = a.TargetSinkRate(obs.Altitude)
	// y grows downward, so a positive Velocity.Y is the sink rate.
	demand := -a.descent.Update(obs.Velocity.Y, t)
	if demand > 0 {
		cmd.Main = true
		cmd.Throttle = throttleStep(demand)
		cmd.Gimbal = math.Max(-1, math.Min(1, -a.DriftGain*obs.Velocity.X))
	}

	s := dynamo.WrapDegrees(obs.Angle) + a.RateGain*obs.AngularVelocity
	switch {
	case s > a.Deadband:
		cmd.CCW = true
	case s < -a.Deadband:
		cmd.CW = true
	}
	return cmd
}

func throttleStep(demand float64) float64 {
	switch {
	case demand >= 2:
		return 1
	case demand >= 1:
		return 0.5
	default:
		return 0.25
	}
}

func (a *Autopilot) Reset() { a.descent.Reset() }

// Params reports the descent loop gains and the touchdown budget.
func (a *Autopilot) Params() map[string]float64 {
	p := a.descent.Params()
	delete(p, "target")
	p["safe_speed"] = a.SafeSpeed
	return p
}

func (a *Autopilot) SetParam(name string, value float64) error {
	switch name {
	case "safe_speed":
		a.SafeSpeed = value
		return nil
	case "target":
		return fmt.Errorf("autopilot target follows altitude: %w", dynamo.ErrParameterBounds)
	}
	return a.descent.SetParam(name, value)
}
