package physics

import (
	"math"

	"github.com/san-kum/lander/internal/dynamo"
)

// Aggregate folds the active forces of b into net linear and angular
// acceleration. Forces are visited in registration order so repeated runs sum
// identically.
//
// Thrust is rotated from body-local axes into the world frame by the body's
// current angle and divided by mass; its torque uses the lever arm between the
// anchor and the center of mass, both given as fractions of the extents.
// Field forces are already accelerations and bypass mass entirely.
func Aggregate(b *Body) (dynamo.Vec2, float64) {
	var accel dynamo.Vec2
	var alpha float64

	sin, cos := math.Sincos(dynamo.Rad * b.angle)
	for _, name := range b.order {
		f := b.forces[name]
		if !f.Active {
			continue
		}
		if f.Field {
			accel = accel.Add(f.Direction)
			continue
		}

		fx := f.Magnitude * f.Direction.X
		fy := f.Magnitude * f.Direction.Y

		accel.X += (fx*cos - fy*sin) / b.mass
		accel.Y += (fx*sin + fy*cos) / b.mass

		alpha += fx * b.height * (b.com.Y - f.Anchor.Y) / b.inertia
		alpha -= fy * b.width * (b.com.X - f.Anchor.X) / b.inertia
	}

	return accel, alpha
}
