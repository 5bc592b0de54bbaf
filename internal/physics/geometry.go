package physics

import "github.com/san-kum/lander/internal/dynamo"

// Center returns the world position of the center of mass.
func (b *Body) Center() dynamo.Vec2 {
	return b.position.Add(dynamo.Polar(b.diag, dynamo.Rad*b.angle+b.bearing))
}

// ToWorld maps a body-local offset from the reference corner to world space.
func (b *Body) ToWorld(local dynamo.Vec2) dynamo.Vec2 {
	return b.position.Add(local.Rotate(dynamo.Rad * b.angle))
}

// Vertices returns the four corners of the rotated bounding rectangle,
// starting at the reference corner and going around through the width edge.
func (b *Body) Vertices() [4]dynamo.Vec2 {
	return [4]dynamo.Vec2{
		b.position,
		b.ToWorld(dynamo.V(b.width, 0)),
		b.ToWorld(dynamo.V(b.width, b.height)),
		b.ToWorld(dynamo.V(0, b.height)),
	}
}

// VelocityEndpoint returns the velocity arrow drawn from the center of mass,
// scaled by mass.
func (b *Body) VelocityEndpoint() (from, to dynamo.Vec2) {
	from = b.Center()
	return from, from.Add(b.velocity.Scale(b.mass))
}

// ForceSegment returns the arrow of an active named force. Thrust arrows start
// at the anchor; field arrows start at the center of mass and are scaled by
// mass so they read as the weight the field imposes.
func (b *Body) ForceSegment(name string) (from, to dynamo.Vec2, ok bool) {
	f, exists := b.forces[name]
	if !exists || !f.Active {
		return dynamo.Vec2{}, dynamo.Vec2{}, false
	}
	if f.Field {
		from = b.Center()
		return from, from.Add(f.Direction.Scale(b.mass)), true
	}
	anchor := f.Anchor.Hadamard(dynamo.V(b.width, b.height))
	return b.ToWorld(anchor), b.ToWorld(anchor.Add(f.Local())), true
}
