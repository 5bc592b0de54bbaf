package craft

import (
	"math"

	"github.com/san-kum/lander/internal/dynamo"
	"github.com/san-kum/lander/internal/physics"
)

// Engine is a throttleable, gimballed thruster mounted on a ship. Its nominal
// force is what it produces at full throttle with the nozzle centered.
type Engine struct {
	Nominal   physics.Force
	MaxGimbal float64 // degrees

	throttle float64
	gimbal   float64
	on       bool
}

func NewEngine(nominal physics.Force, maxGimbal float64) *Engine {
	nominal.Field = false
	nominal.Active = false
	return &Engine{Nominal: nominal, MaxGimbal: maxGimbal, throttle: 1}
}

func (e *Engine) On() bool          { return e.on }
func (e *Engine) Throttle() float64 { return e.throttle }
func (e *Engine) Gimbal() float64   { return e.gimbal }

// SetThrottle scales the nominal magnitude; values are clamped to [0, 1].
func (e *Engine) SetThrottle(fraction float64) {
	e.throttle = math.Max(0, math.Min(1, fraction))
}

// SetGimbal deflects the nozzle by a fraction of MaxGimbal in [-1, 1].
func (e *Engine) SetGimbal(fraction float64) {
	e.gimbal = math.Max(-1, math.Min(1, fraction))
}

// Force is the engine's current effective force.
func (e *Engine) Force() physics.Force {
	f := e.Nominal
	f.Magnitude *= e.throttle
	f.Direction = f.Direction.Rotate(e.gimbal * e.MaxGimbal * dynamo.Rad)
	f.Active = e.on
	return f
}
