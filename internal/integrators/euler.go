package integrators

import (
	"math"

	"github.com/san-kum/lander/internal/dynamo"
	"github.com/san-kum/lander/internal/physics"
)

// Euler advances a corner-tracked body by one explicit step.
//
// The step order is a contract, not an implementation detail:
//
//  1. the new corner position uses the velocity and angular velocity from
//     before this step, minus the arc the corner sweeps while the body turns
//     about its center of mass;
//  2. the new angle uses the pre-step angular velocity;
//  3. velocities take the accelerations computed at the end of the previous
//     step;
//  4. the pose is committed;
//  5. accelerations are recomputed at the new angle for the next call.
//
// dt must be positive; it is not checked.
type Euler struct{}

func NewEuler() *Euler {
	return &Euler{}
}

func (e *Euler) Name() string { return "euler" }

func (e *Euler) Step(b *physics.Body, dt float64) {
	pos := b.Position()
	angle := b.Angle()
	v := b.Velocity()
	omega := b.AngularVelocity()

	sweep := dynamo.Polar(dynamo.Rad*omega*b.Diag()*dt, dynamo.Rad*angle+b.Bearing()+math.Pi/2)
	newPos := pos.Add(v.Scale(dt)).Sub(sweep)
	newAngle := angle + omega*dt

	b.SetVelocity(
		v.Add(b.Acceleration().Scale(dt)),
		omega+b.AngularAcceleration()*dt,
	)
	b.SetPose(newPos, newAngle)
	b.Refresh()
}
