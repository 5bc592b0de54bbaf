package dynamo

import "math"

// Vec2 is a 2D vector with x and y components.
type Vec2 struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

func V(x, y float64) Vec2 { return Vec2{X: x, Y: y} }

func (v Vec2) Add(o Vec2) Vec2 { return Vec2{X: v.X + o.X, Y: v.Y + o.Y} }

func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{X: v.X - o.X, Y: v.Y - o.Y} }

func (v Vec2) Scale(f float64) Vec2 { return Vec2{X: v.X * f, Y: v.Y * f} }

// Hadamard returns the component-wise product.
func (v Vec2) Hadamard(o Vec2) Vec2 { return Vec2{X: v.X * o.X, Y: v.Y * o.Y} }

func (v Vec2) Length() float64 { return math.Sqrt(v.X*v.X + v.Y*v.Y) }

// LengthSquared returns magnitude squared (cheaper for threshold comparisons)
func (v Vec2) LengthSquared() float64 { return v.X*v.X + v.Y*v.Y }

// Rotate rotates the vector by angle (in radians)
func (v Vec2) Rotate(rad float64) Vec2 {
	sin, cos := math.Sincos(rad)
	return Vec2{
		X: v.X*cos - v.Y*sin,
		Y: v.X*sin + v.Y*cos,
	}
}

// Angle returns the bearing of the vector in radians.
func (v Vec2) Angle() float64 { return math.Atan2(v.Y, v.X) }

func (v Vec2) IsValid() bool {
	return !math.IsNaN(v.X) && !math.IsNaN(v.Y) && !math.IsInf(v.X, 0) && !math.IsInf(v.Y, 0)
}

// Polar builds a vector of length r at bearing rad.
func Polar(r, rad float64) Vec2 {
	sin, cos := math.Sincos(rad)
	return Vec2{X: r * cos, Y: r * sin}
}
