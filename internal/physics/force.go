package physics

import "github.com/san-kum/lander/internal/dynamo"

// Force is a single influence on a body.
//
// A field force is a world-frame acceleration: Direction is used as is and
// Magnitude is ignored, so the same field accelerates bodies of any mass
// identically. A thrust force pushes with Magnitude along Direction in
// body-local axes and is applied at Anchor, given as a fraction of the body's
// width and height.
type Force struct {
	Field     bool        `json:"field" yaml:"field"`
	Magnitude float64     `json:"magnitude" yaml:"magnitude"`
	Direction dynamo.Vec2 `json:"direction" yaml:"direction"`
	Anchor    dynamo.Vec2 `json:"anchor" yaml:"anchor"`
	Active    bool        `json:"active" yaml:"active"`
}

// NewField returns an active uniform acceleration field.
func NewField(accel dynamo.Vec2) Force {
	return Force{Field: true, Direction: accel, Active: true}
}

// NewThrust returns an inactive body-anchored force.
func NewThrust(magnitude float64, dir, anchor dynamo.Vec2) Force {
	return Force{Magnitude: magnitude, Direction: dir, Anchor: anchor}
}

// Local returns the force vector in body-local axes.
func (f Force) Local() dynamo.Vec2 {
	return f.Direction.Scale(f.Magnitude)
}

// inert is what lookups of unknown names yield.
var inert = Force{Field: true}
