package physics

import (
	"fmt"
	"math"
	"sort"

	"github.com/san-kum/lander/internal/dynamo"
)

// Params is the initial parameter set of a body.
type Params struct {
	Position        dynamo.Vec2
	Width, Height   float64
	Angle           float64
	Mass            float64
	Inertia         float64
	COM             dynamo.Vec2
	Velocity        dynamo.Vec2
	AngularVelocity float64
}

// Body is a rectangular rigid body tracked by one corner of its bounding
// rectangle rather than by its center of mass.
//
// The corner-to-COM distance and bearing are fixed at construction; rotation
// only changes the angle, never the body-local geometry.
type Body struct {
	position dynamo.Vec2
	angle    float64

	width, height float64
	mass          float64
	inertia       float64
	com           dynamo.Vec2

	velocity            dynamo.Vec2
	angularVelocity     float64
	acceleration        dynamo.Vec2
	angularAcceleration float64

	diag    float64
	bearing float64

	forces map[string]Force
	order  []string
}

func NewBody(p Params) (*Body, error) {
	switch {
	case p.Mass <= 0:
		return nil, fmt.Errorf("mass %g: %w", p.Mass, dynamo.ErrParameterBounds)
	case p.Inertia <= 0:
		return nil, fmt.Errorf("moment of inertia %g: %w", p.Inertia, dynamo.ErrParameterBounds)
	case p.Width <= 0 || p.Height <= 0:
		return nil, fmt.Errorf("size %gx%g: %w", p.Width, p.Height, dynamo.ErrParameterBounds)
	}

	b := &Body{
		position:        p.Position,
		angle:           p.Angle,
		width:           p.Width,
		height:          p.Height,
		mass:            p.Mass,
		inertia:         p.Inertia,
		com:             p.COM,
		velocity:        p.Velocity,
		angularVelocity: p.AngularVelocity,
		forces:          make(map[string]Force),
	}

	offset := b.comOffset()
	b.diag = offset.Length()
	if offset.X != 0 {
		b.bearing = math.Atan2(offset.Y, offset.X)
	}
	return b, nil
}

// comOffset is the corner-to-COM vector in body-local world units.
func (b *Body) comOffset() dynamo.Vec2 {
	return b.com.Hadamard(dynamo.V(b.width, b.height))
}

func (b *Body) Position() dynamo.Vec2        { return b.position }
func (b *Body) Angle() float64               { return b.angle }
func (b *Body) Width() float64               { return b.width }
func (b *Body) Height() float64              { return b.height }
func (b *Body) Mass() float64                { return b.mass }
func (b *Body) Inertia() float64             { return b.inertia }
func (b *Body) COM() dynamo.Vec2             { return b.com }
func (b *Body) Velocity() dynamo.Vec2        { return b.velocity }
func (b *Body) AngularVelocity() float64     { return b.angularVelocity }
func (b *Body) Acceleration() dynamo.Vec2    { return b.acceleration }
func (b *Body) AngularAcceleration() float64 { return b.angularAcceleration }
func (b *Body) Diag() float64                { return b.diag }
func (b *Body) Bearing() float64             { return b.bearing }

func (b *Body) SetPose(pos dynamo.Vec2, angle float64) { b.position, b.angle = pos, angle }

func (b *Body) SetVelocity(v dynamo.Vec2, omega float64) {
	b.velocity, b.angularVelocity = v, omega
}

// Refresh recomputes the net accelerations from the active forces at the
// current orientation.
func (b *Body) Refresh() {
	b.acceleration, b.angularAcceleration = Aggregate(b)
}

// Halt zeroes every rate of the body, leaving its pose and forces alone.
func (b *Body) Halt() {
	b.velocity, b.angularVelocity = dynamo.Vec2{}, 0
	b.acceleration, b.angularAcceleration = dynamo.Vec2{}, 0
}

// AddForce registers f under name; an existing entry is overwritten.
func (b *Body) AddForce(name string, f Force) {
	if _, ok := b.forces[name]; !ok {
		b.order = append(b.order, name)
	}
	b.forces[name] = f
}

func (b *Body) RemoveForce(name string) {
	if _, ok := b.forces[name]; !ok {
		return
	}
	delete(b.forces, name)
	for i, n := range b.order {
		if n == name {
			b.order = append(b.order[:i], b.order[i+1:]...)
			break
		}
	}
}

// SetForceActive toggles a registered force. Unknown names are ignored.
func (b *Body) SetForceActive(name string, active bool) {
	f, ok := b.forces[name]
	if !ok {
		return
	}
	f.Active = active
	b.forces[name] = f
}

// GetForce returns the named force, or an inactive zero field force when the
// name is not registered.
func (b *Body) GetForce(name string) Force {
	if f, ok := b.forces[name]; ok {
		return f
	}
	return inert
}

func (b *Body) HasForce(name string) bool {
	_, ok := b.forces[name]
	return ok
}

// ForceNames returns the registered names in sorted order.
func (b *Body) ForceNames() []string {
	names := make([]string, 0, len(b.forces))
	for name := range b.forces {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (b *Body) IsValid() bool {
	return b.position.IsValid() && b.velocity.IsValid() &&
		!math.IsNaN(b.angle) && !math.IsInf(b.angle, 0) &&
		!math.IsNaN(b.angularVelocity) && !math.IsInf(b.angularVelocity, 0)
}
