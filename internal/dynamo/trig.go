package dynamo

import "math"

// Rad converts degrees to radians.
const Rad = math.Pi / 180

// Deg converts radians to degrees.
const Deg = 180 / math.Pi

// WrapDegrees maps an angle in degrees onto [-180, 180).
func WrapDegrees(a float64) float64 {
	a = math.Mod(a+180, 360)
	if a < 0 {
		a += 360
	}
	return a - 180
}

// AngleGap returns the magnitude of an angular difference after wrapping,
// so 350 and -10 both yield 10.
func AngleGap(diff float64) float64 {
	return math.Abs(WrapDegrees(diff))
}

// Heading reduces an unbounded orientation to (-360, 360) keeping its sign,
// the way a truncating modulo does.
func Heading(angle float64) float64 {
	return math.Mod(angle, 360)
}
