package sim

import (
	"github.com/san-kum/lander/internal/craft"
	"github.com/san-kum/lander/internal/dynamo"
	"github.com/san-kum/lander/internal/landing"
	"github.com/san-kum/lander/internal/physics"
	"github.com/san-kum/lander/internal/terrain"
)

// Stepper advances a body by dt and leaves its accelerations fresh for the
// next call.
type Stepper interface {
	Step(b *physics.Body, dt float64)
}

// Ground is a surface the simulator can also test for contact.
type Ground interface {
	terrain.Surface
	Contact(points []dynamo.Vec2) bool
	Clearance(points []dynamo.Vec2) float64
}

// Observation is what a controller sees each frame. Altitude is the clearance
// of the lowest hull corner above the ground.
type Observation struct {
	Position        dynamo.Vec2
	Center          dynamo.Vec2
	Velocity        dynamo.Vec2
	Angle           float64
	AngularVelocity float64
	Altitude        float64
	Status          landing.Status
}

type Controller interface {
	Compute(obs Observation, t float64) craft.Command
}

// Frame is one recorded simulation instant.
type Frame struct {
	Time            float64
	Position        dynamo.Vec2
	Center          dynamo.Vec2
	Velocity        dynamo.Vec2
	Angle           float64
	AngularVelocity float64
	Altitude        float64
	Contact         bool
	Status          landing.Status
	Command         craft.Command
	ActiveEngines   int
}

type Metric interface {
	Name() string
	Observe(f Frame)
	Value() float64
	Reset()
}

type Observer interface {
	OnFrame(f Frame)
}

type Config struct {
	Dt            float64
	Duration      float64
	Seed          int64
	SettleTime    float64 // seconds to wait after touchdown for the verdict to be announced
	ValidateState bool
}

type Result struct {
	Frames      []Frame
	Outcome     landing.Status
	StatusText  string
	TouchdownAt float64 // seconds; negative when the craft never touched down
	Metrics     map[string]float64
	StepsTaken  int
	Errors      []error
}

// Touchdown returns the frame on which the verdict latched.
func (r *Result) Touchdown() (Frame, bool) {
	if r.TouchdownAt < 0 {
		return Frame{}, false
	}
	for _, f := range r.Frames {
		if f.Time >= r.TouchdownAt {
			return f, true
		}
	}
	return Frame{}, false
}
